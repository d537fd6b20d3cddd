package mastodon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is a Mastodon object id. Servers send it as a JSON string,
// some compatible implementations send a number; both decode here.
type ID string

// UnmarshalJSON accepts "123", 123 and null
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Int64 parses the id as a number, as needed for max_id arithmetic
func (id ID) Int64() (int64, error) {
	return strconv.ParseInt(string(id), 10, 64)
}

// Account is the subset of the account entity returned by the lookup endpoint
type Account struct {
	ID          ID     `json:"id"`
	Username    string `json:"username"`
	Acct        string `json:"acct"`
	DisplayName string `json:"display_name"`
	URL         string `json:"url"`
}

// Status is the subset of the status entity needed to build diary entries.
// Missing fields decode to their zero values.
type Status struct {
	ID         ID     `json:"id"`
	CreatedAt  string `json:"created_at"`
	Content    string `json:"content"`
	URL        string `json:"url"`
	Visibility string `json:"visibility"`
}
