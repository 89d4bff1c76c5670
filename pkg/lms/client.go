package lms

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNotConfigured is returned when a request is attempted before Configure
// has been called with a base URL and token.
var ErrNotConfigured = errors.New("lms client not configured")

// UpstreamError is a non-success HTTP status from the LMS API. The status
// and body are surfaced verbatim; no retry is attempted.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("lms api error: status %d: %s", e.Status, e.Body)
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Configure normalizes the base URL (trailing slashes stripped, /api/v1
// appended if absent) and stores the bearer token. Must be called before
// any request; calling it again replaces the previous credentials.
func (c *Client) Configure(baseURL, token string) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL != "" && !strings.HasSuffix(baseURL, "/api/v1") {
		baseURL += "/api/v1"
	}
	c.baseURL = baseURL
	c.token = token
}

func (c *Client) Configured() bool {
	return c.baseURL != "" && c.token != ""
}

func (c *Client) get(path string, out interface{}) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("lms request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("lms request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("lms decode: %w", err)
	}
	return nil
}

// TestConnection issues a lightweight identity check. Any failure reports
// false; it never returns an error.
func (c *Client) TestConnection() bool {
	var self struct {
		ID int64 `json:"id"`
	}
	return c.get("/users/self", &self) == nil
}
