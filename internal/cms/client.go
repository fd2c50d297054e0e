// Package cms is the client for the remote content store's REST API. It
// covers the prompt, category, and media collections and the list-query
// dialect the store expects (bracket-encoded where filters, comma-joined
// sort fields, relation-expansion depth).
package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Client talks to the content store. All requests carry the store's
// API-key authorization header and are issued sequentially; there are no
// retries.
type Client struct {
	Host       string
	APIKey     string
	HTTPClient *http.Client
}

// New creates a store client for the given host and API key.
func New(host, apiKey string) *Client {
	return &Client{
		Host:       host,
		APIKey:     apiKey,
		HTTPClient: &http.Client{},
	}
}

func decodeJSON(r io.Reader, out any) error {
	return json.NewDecoder(r).Decode(out)
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Authorization", "users API-Key "+c.APIKey)
}

// get issues an authenticated GET against an API path and decodes the JSON
// response into out. A non-2xx status is a transport error carrying the
// status text.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.Host + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", path, err)
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("store request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("store API error: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

// writeJSON issues an authenticated write (POST or PATCH) with a JSON body
// and decodes the response into out. Write failures carry the response body
// in the error, since the store reports validation detail there.
func (c *Client) writeJSON(ctx context.Context, method, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding %s payload: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.Host+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", path, err)
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("store request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("store write failed: %s - %s", resp.Status, string(detail))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
