package mastodon

import (
	"fmt"
	"net/url"
	"strings"

	errs "mastodiary/pkg/errors"
)

const (
	// LookupEndpoint resolves an acct name to an account
	LookupEndpoint = "/api/v1/accounts/lookup"

	// StatusesEndpoint lists an account's statuses, newest first
	StatusesEndpoint = "/api/v1/accounts/%s/statuses"
)

// Profile identifies a user on a specific server
type Profile struct {
	Host     string
	Username string
}

// BaseURL returns the API root for the profile's server
func (p Profile) BaseURL() string {
	return "https://" + p.Host
}

// ParseProfileURL splits a profile URL like https://mastodon.social/@alice into host and username
func ParseProfileURL(raw string) (Profile, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Profile{}, errs.New(errs.ErrorTypeInvalidURL, "profile URL is empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Profile{}, errs.Wrap(errs.ErrorTypeInvalidURL, fmt.Sprintf("invalid profile URL %q", raw), err)
	}
	if u.Host == "" {
		return Profile{}, errs.New(errs.ErrorTypeInvalidURL, fmt.Sprintf("profile URL %q has no host", raw))
	}

	username := SanitizeUsername(lastSegment(u.Path))
	if username == "" {
		return Profile{}, errs.New(errs.ErrorTypeInvalidURL, fmt.Sprintf("profile URL %q has no username", raw))
	}

	return Profile{Host: u.Host, Username: username}, nil
}

func lastSegment(path string) string {
	path = strings.TrimRight(path, "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

// SanitizeUsername removes the leading @ and surrounding whitespace from a username
func SanitizeUsername(username string) string {
	username = strings.TrimSpace(username)
	return strings.TrimPrefix(username, "@")
}

// GetLookupURL constructs the URL for resolving an acct name
func GetLookupURL(baseURL, username string) string {
	params := url.Values{}
	params.Set("acct", username)

	return fmt.Sprintf("%s%s?%s", strings.TrimRight(baseURL, "/"), LookupEndpoint, params.Encode())
}

// GetStatusesURL constructs the URL for one page of an account's statuses.
// maxID is omitted for the first page.
func GetStatusesURL(baseURL, accountID, maxID string) string {
	u := fmt.Sprintf("%s"+StatusesEndpoint, strings.TrimRight(baseURL, "/"), url.PathEscape(accountID))
	if maxID == "" {
		return u
	}

	params := url.Values{}
	params.Set("max_id", maxID)
	return u + "?" + params.Encode()
}
