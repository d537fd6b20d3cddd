package mastodon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	errs "mastodiary/pkg/errors"
	"mastodiary/pkg/logger"
)

// maxErrorBody bounds how much of an error response is kept for diagnostics
const maxErrorBody = 200

// Client is a read-only, unauthenticated Mastodon REST client for one server
type Client struct {
	httpClient *http.Client
	headers    map[string]string
	baseURL    string
	logger     logger.Logger
}

// NewClient creates a client for the server at baseURL, e.g. https://mastodon.social
func NewClient(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		headers: map[string]string{
			"Accept":     "application/json",
			"User-Agent": "mastodiary/1.0",
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  log,
	}
}

// SetHeader sets a custom header for the client
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest performs an HTTP request with the configured headers
func (c *Client) doRequest(req *http.Request) (*http.Response, error) {
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	c.logger.DebugWithFields("sending HTTP request", map[string]interface{}{
		"method": req.Method,
		"url":    req.URL.String(),
	})

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"url":      req.URL.String(),
			"error":    err.Error(),
			"duration": duration,
		})
		return nil, errs.Wrap(errs.ErrorTypeNetwork, fmt.Sprintf("GET %s failed", req.URL), err)
	}

	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"url":      req.URL.String(),
		"status":   resp.StatusCode,
		"duration": duration,
	})

	return resp, nil
}

// GetJSON performs a GET request and decodes the JSON response into target
func (c *Client) GetJSON(ctx context.Context, url string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errs.Wrap(errs.ErrorTypeNetwork, "failed to create request", err)
	}

	resp, err := c.doRequest(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &errs.Error{
			Type:    errs.ErrorTypeNetwork,
			Message: "failed to read response body",
			Code:    resp.StatusCode,
			Err:     err,
		}
	}

	if err := c.checkResponseStatus(resp, body); err != nil {
		return err
	}

	if err := json.Unmarshal(body, target); err != nil {
		c.logger.ErrorWithFields("failed to parse JSON response", map[string]interface{}{
			"url":          url,
			"error":        err.Error(),
			"body_preview": preview(body),
		})
		return &errs.Error{
			Type:    errs.ErrorTypeNetwork,
			Message: fmt.Sprintf("failed to decode response from %s", url),
			Code:    resp.StatusCode,
			Err:     err,
		}
	}

	return nil
}

// checkResponseStatus turns non-2xx responses into typed errors
func (c *Client) checkResponseStatus(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	c.logger.WarnWithFields("unexpected API response", map[string]interface{}{
		"status":       resp.StatusCode,
		"url":          resp.Request.URL.String(),
		"body_preview": preview(body),
	})

	var apiErr struct {
		Error string `json:"error"`
	}
	message := http.StatusText(resp.StatusCode)
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
		message = apiErr.Error
	}

	errorType := errs.ErrorTypeNetwork
	if resp.StatusCode == http.StatusNotFound {
		errorType = errs.ErrorTypeUserNotFound
	}

	return &errs.Error{
		Type:    errorType,
		Message: message,
		Code:    resp.StatusCode,
	}
}

func preview(body []byte) string {
	s := string(body)
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody] + "..."
	}
	return s
}

// LookupAccount resolves a username on this server to its account
func (c *Client) LookupAccount(ctx context.Context, username string) (*Account, error) {
	url := GetLookupURL(c.baseURL, username)

	c.logger.DebugWithFields("looking up account", map[string]interface{}{
		"username": username,
		"url":      url,
	})

	var account Account
	if err := c.GetJSON(ctx, url, &account); err != nil {
		if errs.IsType(err, errs.ErrorTypeUserNotFound) {
			return nil, errs.Wrap(errs.ErrorTypeUserNotFound, fmt.Sprintf("user %q does not exist", username), err)
		}
		return nil, err
	}

	if account.ID == "" {
		return nil, errs.New(errs.ErrorTypeUserNotFound, fmt.Sprintf("user %q does not exist", username))
	}

	c.logger.DebugWithFields("resolved account", map[string]interface{}{
		"username":   username,
		"account_id": string(account.ID),
	})

	return &account, nil
}

// FetchStatusesPage fetches one page of statuses older than maxID (all when maxID is empty)
func (c *Client) FetchStatusesPage(ctx context.Context, accountID ID, maxID string) ([]Status, error) {
	url := GetStatusesURL(c.baseURL, string(accountID), maxID)

	var page []Status
	if err := c.GetJSON(ctx, url, &page); err != nil {
		if errs.IsType(err, errs.ErrorTypeUserNotFound) {
			// A 404 on the timeline is a server problem, the account was just resolved
			return nil, &errs.Error{Type: errs.ErrorTypeNetwork, Message: "statuses not found", Code: http.StatusNotFound, Err: err}
		}
		return nil, err
	}

	return page, nil
}

// FetchAllStatuses walks the timeline with max_id pagination until an empty page.
// Statuses are returned in server order, newest first. Any failed page aborts the walk.
func (c *Client) FetchAllStatuses(ctx context.Context, accountID ID) ([]Status, error) {
	var all []Status
	maxID := ""

	for page := 1; ; page++ {
		statuses, err := c.FetchStatusesPage(ctx, accountID, maxID)
		if err != nil {
			c.logger.WithError(err).WithField("page", page).Error("failed to fetch statuses page")
			return nil, err
		}

		if len(statuses) == 0 {
			c.logger.InfoWithFields("reached end of timeline", map[string]interface{}{
				"pages":    page - 1,
				"statuses": len(all),
			})
			return all, nil
		}

		all = append(all, statuses...)

		oldest := statuses[len(statuses)-1].ID
		n, err := oldest.Int64()
		if err != nil {
			return nil, errs.Wrap(errs.ErrorTypeNetwork, fmt.Sprintf("status id %q is not numeric", oldest), err)
		}
		maxID = strconv.FormatInt(n-1, 10)

		c.logger.DebugWithFields("fetched statuses page", map[string]interface{}{
			"page":        page,
			"statuses":    len(statuses),
			"next_max_id": maxID,
		})
	}
}
