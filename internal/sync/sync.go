// Package sync drives the submission pipeline: one approved tracker issue
// in, one published prompt record in the store out.
package sync

import (
	"context"
	"fmt"

	"github.com/banana-labs/promptsync/internal/cms"
	"github.com/banana-labs/promptsync/internal/issueform"
	"github.com/banana-labs/promptsync/internal/model"
	"github.com/banana-labs/promptsync/internal/output"
	"github.com/banana-labs/promptsync/internal/tracker"
)

// Store is the slice of the cms client the pipeline writes through.
type Store interface {
	UploadImage(ctx context.Context, imageURL string) (*model.Media, error)
	FindPromptByIssue(ctx context.Context, issueNumber string) (*model.Prompt, error)
	CreatePrompt(ctx context.Context, draft cms.PromptDraft) (*model.Prompt, error)
	UpdatePrompt(ctx context.Context, id int, draft cms.PromptDraft) (*model.Prompt, error)
}

// Tracker is the slice of the tracker client the pipeline uses.
type Tracker interface {
	GetIssue(ctx context.Context, number string) (*tracker.Issue, error)
	CloseIssue(ctx context.Context, number string) error
}

// Syncer runs the submission pipeline. Out carries progress and warnings
// and must be non-nil.
type Syncer struct {
	Store   Store
	Tracker Tracker
	Out     *output.Writer
}

// Result reports what one run did.
type Result struct {
	Skipped    bool   `json:"skipped"`
	SkipReason string `json:"skip_reason,omitempty"`
	PromptID   int    `json:"prompt_id,omitempty"`
	Created    bool   `json:"created"`
	Uploaded   int    `json:"uploaded"`
	Failed     int    `json:"failed"`
	Closed     bool   `json:"closed"`
}

// Run processes one submission event. Steps are strictly ordered: label
// gate, field parse, image upload, record lookup, upsert, issue close.
// A single image's upload failure is logged and skipped; every other
// failure aborts the run. Nothing written earlier is rolled back when a
// later step fails.
func (s *Syncer) Run(ctx context.Context, issueNumber, issueBody string) (*Result, error) {
	issue, err := s.Tracker.GetIssue(ctx, issueNumber)
	if err != nil {
		return nil, fmt.Errorf("fetching issue #%s: %w", issueNumber, err)
	}

	if !issue.HasLabel(model.SubmissionLabel) {
		return &Result{
			Skipped:    true,
			SkipReason: fmt.Sprintf("issue #%s does not have the %q label", issueNumber, model.SubmissionLabel),
		}, nil
	}

	s.Out.Info("Processing approved issue #%s", issueNumber)

	fields := issueform.ParseFields(issueBody)
	originalURLs := issueform.SplitImageURLs(fields.Get(issueform.FieldImageURLs))

	s.Out.Info("Uploading %d image(s) to the store", len(originalURLs))
	result := &Result{}
	var mediaIDs []int
	for _, url := range originalURLs {
		media, err := s.Store.UploadImage(ctx, url)
		if err != nil {
			// One broken image must not sink the submission.
			s.Out.Warn("failed to upload image %s: %v", url, err)
			result.Failed++
			continue
		}
		mediaIDs = append(mediaIDs, media.ID)
		result.Uploaded++
	}

	existing, err := s.Store.FindPromptByIssue(ctx, issueNumber)
	if err != nil {
		return nil, err
	}

	draft := buildDraft(fields, issue, issueNumber, originalURLs, mediaIDs)

	var prompt *model.Prompt
	if existing != nil {
		s.Out.Info("Updating existing prompt (id %d)", existing.ID)
		prompt, err = s.Store.UpdatePrompt(ctx, existing.ID, draft)
	} else {
		s.Out.Info("Creating new prompt")
		prompt, err = s.Store.CreatePrompt(ctx, draft)
	}
	if err != nil {
		return nil, err
	}
	result.PromptID = prompt.ID
	result.Created = existing == nil

	if issue.IsOpen() {
		if err := s.Tracker.CloseIssue(ctx, issueNumber); err != nil {
			return nil, fmt.Errorf("closing issue #%s: %w", issueNumber, err)
		}
		result.Closed = true
		s.Out.Info("Closed issue #%s", issueNumber)
	} else {
		s.Out.Info("Issue #%s is already closed", issueNumber)
	}

	return result, nil
}

// buildDraft assembles the write payload from the parsed fields. Missing
// title, content, and description intentionally fall back to empty strings
// rather than validation errors.
func buildDraft(fields issueform.Fields, issue *tracker.Issue, issueNumber string, originalURLs []string, mediaIDs []int) cms.PromptDraft {
	author := model.Author{Name: fields.Get(issueform.FieldAuthorName)}
	if link := fields.Get(issueform.FieldAuthorLink); link != "" {
		author.Link = &link
	}

	languageName := fields.Get(issueform.FieldLanguage)
	if languageName == "" {
		languageName = fields.Get(issueform.FieldPromptLanguage)
	}
	if languageName == "" {
		languageName = "English"
	}

	draft := cms.PromptDraft{
		Model:             model.ModelTag,
		Title:             fields.Get(issueform.FieldTitle),
		Content:           fields.Get(issueform.FieldPrompt),
		Description:       fields.Get(issueform.FieldDescription),
		SourceMedia:       originalURLs,
		Author:            author,
		Language:          issueform.ParseLanguage(languageName),
		SourcePublishedAt: issue.CreatedAt,
		SourceMeta:        map[string]string{model.SourceMetaIssueKey: issueNumber},
	}

	if len(mediaIDs) > 0 {
		draft.Media = mediaIDs
	}
	if link := fields.Get(issueform.FieldSourceLink); link != "" {
		draft.SourceLink = link
	}
	if raw := fields.Get(issueform.FieldNeedReferenceImages); raw != "" {
		need := issueform.ParseBool(raw)
		draft.NeedReferenceImages = &need
	}

	return draft
}
