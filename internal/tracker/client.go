// Package tracker is a minimal client for the issue tracker's REST API,
// covering just the two calls the sync pipeline needs: reading an issue
// and closing it.
package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const apiBase = "https://api.github.com"

// Label is an issue label; only the name is used.
type Label struct {
	Name string `json:"name"`
}

// Issue is the subset of an issue record the sync pipeline reads.
type Issue struct {
	Number    int     `json:"number"`
	Title     string  `json:"title"`
	Body      string  `json:"body"`
	State     string  `json:"state"`
	CreatedAt string  `json:"created_at"`
	Labels    []Label `json:"labels"`
}

// HasLabel reports whether the issue carries the named label.
func (i *Issue) HasLabel(name string) bool {
	for _, l := range i.Labels {
		if l.Name == name {
			return true
		}
	}
	return false
}

// IsOpen reports whether the issue is still open.
func (i *Issue) IsOpen() bool { return i.State == "open" }

// Client talks to the tracker API for one repository.
type Client struct {
	Token      string
	Repository string // "owner/name"
	HTTPClient *http.Client
	BaseURL    string // overridable for tests
}

// New creates a tracker client for the given repository.
func New(token, repository string) *Client {
	return &Client{
		Token:      token,
		Repository: repository,
		HTTPClient: &http.Client{},
		BaseURL:    apiBase,
	}
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding %s payload: %w", path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Accept", "application/vnd.github+json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("tracker request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("tracker API error: %s - %s", resp.Status, string(detail))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

// GetIssue fetches an issue by number.
func (c *Client) GetIssue(ctx context.Context, number string) (*Issue, error) {
	var issue Issue
	path := fmt.Sprintf("/repos/%s/issues/%s", c.Repository, number)
	if err := c.do(ctx, http.MethodGet, path, nil, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// CloseIssue sets an issue's state to closed.
func (c *Client) CloseIssue(ctx context.Context, number string) error {
	path := fmt.Sprintf("/repos/%s/issues/%s", c.Repository, number)
	payload := struct {
		State string `json:"state"`
	}{State: "closed"}
	return c.do(ctx, http.MethodPatch, path, payload, nil)
}
