package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all environment-derived settings, resolved once at process
// start and passed by reference into every component. No package in this
// module reads the environment after Resolve returns.
type Config struct {
	StoreHost   string // content store base URL (CMS_HOST)
	StoreAPIKey string // content store API key (CMS_API_KEY)

	TrackerToken string // issue tracker token (GITHUB_TOKEN)
	Repository   string // "owner/name" of the tracker repository (GITHUB_REPOSITORY)
	IssueNumber  string // triggering issue number (ISSUE_NUMBER)
	IssueBody    string // triggering issue body (ISSUE_BODY)

	OutputDir string // directory for rendered README files (PROMPTSYNC_OUTPUT, default ".")
}

// Resolve reads the process environment into a Config. Validation is
// deferred to the per-pipeline Require helpers so that each command only
// demands the settings it actually uses.
func Resolve() *Config {
	cfg := &Config{
		StoreHost:    strings.TrimRight(os.Getenv("CMS_HOST"), "/"),
		StoreAPIKey:  os.Getenv("CMS_API_KEY"),
		TrackerToken: os.Getenv("GITHUB_TOKEN"),
		Repository:   os.Getenv("GITHUB_REPOSITORY"),
		IssueNumber:  os.Getenv("ISSUE_NUMBER"),
		IssueBody:    os.Getenv("ISSUE_BODY"),
		OutputDir:    os.Getenv("PROMPTSYNC_OUTPUT"),
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	return cfg
}

// RequireStore validates the settings needed to talk to the content store.
func (c *Config) RequireStore() error {
	if c.StoreHost == "" {
		return fmt.Errorf("CMS_HOST not provided")
	}
	if c.StoreAPIKey == "" {
		return fmt.Errorf("CMS_API_KEY not provided")
	}
	return nil
}

// RequireSync validates the settings needed by the submission sync
// pipeline, on top of the store settings. A missing issue number is fatal;
// an empty issue body is tolerated.
func (c *Config) RequireSync() error {
	if err := c.RequireStore(); err != nil {
		return err
	}
	if c.TrackerToken == "" {
		return fmt.Errorf("GITHUB_TOKEN not provided")
	}
	if c.Repository == "" || !strings.Contains(c.Repository, "/") {
		return fmt.Errorf("GITHUB_REPOSITORY not provided (expected owner/name)")
	}
	if c.IssueNumber == "" {
		return fmt.Errorf("ISSUE_NUMBER not provided")
	}
	return nil
}
