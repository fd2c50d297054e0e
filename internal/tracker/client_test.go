package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetIssue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/acme/prompts/issues/42" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"number": 42,
			"title": "[Prompt] Cat poster",
			"body": "### Prompt\nmeow",
			"state": "open",
			"created_at": "2026-02-03T04:05:06Z",
			"labels": [{"name": "prompt-submission"}, {"name": "approved"}]
		}`)
	}))
	defer srv.Close()

	c := &Client{Token: "tok", Repository: "acme/prompts", HTTPClient: srv.Client(), BaseURL: srv.URL}
	issue, err := c.GetIssue(context.Background(), "42")
	if err != nil {
		t.Fatalf("GetIssue: %v", err)
	}
	if issue.Number != 42 {
		t.Errorf("number = %d, want 42", issue.Number)
	}
	if !issue.IsOpen() {
		t.Error("IsOpen = false, want true")
	}
	if !issue.HasLabel("prompt-submission") {
		t.Error("HasLabel(prompt-submission) = false, want true")
	}
	if issue.HasLabel("rejected") {
		t.Error("HasLabel(rejected) = true, want false")
	}
}

func TestCloseIssue(t *testing.T) {
	var gotMethod string
	var gotState string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		var payload struct {
			State string `json:"state"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decoding payload: %v", err)
		}
		gotState = payload.State
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"number": 42, "state": "closed"}`)
	}))
	defer srv.Close()

	c := &Client{Token: "tok", Repository: "acme/prompts", HTTPClient: srv.Client(), BaseURL: srv.URL}
	if err := c.CloseIssue(context.Background(), "42"); err != nil {
		t.Fatalf("CloseIssue: %v", err)
	}
	if gotMethod != http.MethodPatch {
		t.Errorf("method = %s, want PATCH", gotMethod)
	}
	if gotState != "closed" {
		t.Errorf("state = %q, want %q", gotState, "closed")
	}
}

func TestGetIssueTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := &Client{Token: "tok", Repository: "acme/prompts", HTTPClient: srv.Client(), BaseURL: srv.URL}
	if _, err := c.GetIssue(context.Background(), "42"); err == nil {
		t.Error("expected error for 404, got nil")
	}
}
