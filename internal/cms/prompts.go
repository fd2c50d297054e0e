package cms

import (
	"context"
	"fmt"
	"net/http"

	"github.com/banana-labs/promptsync/internal/model"
)

// Page sizes for the listing queries. Featured prompts come from a single
// page; each use-case category contributes at most one page.
const (
	featuredPageSize = 30
	categoryPageSize = 20

	// relationDepth is deep enough to inline related media and category
	// objects on each prompt.
	relationDepth = 2
)

type promptListResponse struct {
	Docs      []model.Prompt `json:"docs"`
	TotalDocs int            `json:"totalDocs"`
}

// ResolveImages returns a copy of the prompt with SourceMedia replaced by
// its effective image list: the non-empty URLs of resolved media entries in
// entry order when the store inlined any, otherwise the raw source URLs
// with the video thumbnail appended if present. A prompt is displayable
// downstream iff the result has at least one image.
func ResolveImages(p model.Prompt) model.Prompt {
	var images []string
	if p.Media != nil {
		for _, m := range p.Media {
			if m.URL != nil && *m.URL != "" {
				images = append(images, *m.URL)
			}
		}
	} else {
		images = append(images, p.SourceMedia...)
		if p.Video != nil && p.Video.Thumbnail != "" {
			images = append(images, p.Video.Thumbnail)
		}
	}
	p.SourceMedia = images
	return p
}

// FetchFeaturedPrompts retrieves one page of prompts for the model tag,
// ordered featured-first, keeps only those actually flagged featured and
// left with at least one effective image, and returns them together with
// the store-reported total document count. The total counts the unfiltered
// collection; it is a display statistic, not a pipeline count.
func (c *Client) FetchFeaturedPrompts(ctx context.Context, locale string) ([]model.Prompt, int, error) {
	q := listQuery{
		limit:  featuredPageSize,
		sort:   []string{"-featured", "sort", "-sourcePublishedAt"},
		depth:  relationDepth,
		locale: locale,
		where: []whereClause{
			{path: "model", op: opEquals, value: model.ModelTag},
		},
	}

	var resp promptListResponse
	if err := c.get(ctx, "/api/prompts", q.encode(), &resp); err != nil {
		return nil, 0, fmt.Errorf("fetching featured prompts: %w", err)
	}

	var docs []model.Prompt
	for _, p := range resp.Docs {
		if !p.IsFeatured() {
			continue
		}
		p = ResolveImages(p)
		if len(p.SourceMedia) == 0 {
			continue
		}
		docs = append(docs, p)
	}
	return docs, resp.TotalDocs, nil
}

// FetchPromptsByCategory retrieves the prompts related to one use-case
// category, drops those without effective images, and prefixes each kept
// title with the category's display title. The mutation applies to copies;
// shared records are never touched.
func (c *Client) FetchPromptsByCategory(ctx context.Context, categoryID int, categoryTitle, locale string) ([]model.Prompt, error) {
	q := listQuery{
		limit:  categoryPageSize,
		sort:   []string{"sort", "-sourcePublishedAt"},
		depth:  relationDepth,
		locale: locale,
		where: []whereClause{
			{path: "model", op: opEquals, value: model.ModelTag},
			{path: "imageCategories.useCases", op: opContains, value: categoryIDValue(categoryID)},
		},
	}

	var resp promptListResponse
	if err := c.get(ctx, "/api/prompts", q.encode(), &resp); err != nil {
		return nil, fmt.Errorf("fetching prompts for category %q: %w", categoryTitle, err)
	}

	var docs []model.Prompt
	for _, p := range resp.Docs {
		p = ResolveImages(p)
		if len(p.SourceMedia) == 0 {
			continue
		}
		p.Title = categoryTitle + " - " + p.Title
		docs = append(docs, p)
	}
	return docs, nil
}

// FetchAllPrompts assembles the full listing for a locale: featured
// prompts first, then each use-case category's prompts in category order,
// deduplicated by id with first occurrence winning (the seen-set is seeded
// with the featured ids, so a featured prompt never reappears under a
// category). Returns the ordered list and the store-reported total.
func (c *Client) FetchAllPrompts(ctx context.Context, locale string, allCategories []model.FilterCategory) ([]model.Prompt, int, error) {
	featured, total, err := c.FetchFeaturedPrompts(ctx, locale)
	if err != nil {
		return nil, 0, err
	}

	seen := make(map[int]struct{}, len(featured))
	for _, p := range featured {
		seen[p.ID] = struct{}{}
	}

	docs := featured
	for _, cat := range model.UseCaseCategories(allCategories) {
		prompts, err := c.FetchPromptsByCategory(ctx, cat.ID, cat.Title, locale)
		if err != nil {
			return nil, 0, err
		}
		for _, p := range prompts {
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			docs = append(docs, p)
		}
	}

	return docs, total, nil
}

// Stats reports listing counts for display.
type Stats struct {
	Total    int `json:"total"`
	Featured int `json:"featured"`
}

// Sorted is a prompt list partitioned into featured and regular sublists.
type Sorted struct {
	All      []model.Prompt
	Featured []model.Prompt
	Regular  []model.Prompt
	Stats    Stats
}

// SortPrompts stably partitions a prompt list by the featured flag,
// preserving relative order within each sublist. Stats.Total is the
// caller-supplied total when positive, falling back to the list length.
func SortPrompts(prompts []model.Prompt, total int) Sorted {
	var featured, regular []model.Prompt
	for _, p := range prompts {
		if p.IsFeatured() {
			featured = append(featured, p)
		} else {
			regular = append(regular, p)
		}
	}
	if total <= 0 {
		total = len(prompts)
	}
	return Sorted{
		All:      prompts,
		Featured: featured,
		Regular:  regular,
		Stats:    Stats{Total: total, Featured: len(featured)},
	}
}

// PromptDraft is the partial payload for prompt writes. Optional fields are
// omitted entirely when unset rather than sent as nulls.
type PromptDraft struct {
	Model               string            `json:"model"`
	Title               string            `json:"title"`
	Content             string            `json:"content"`
	Description         string            `json:"description"`
	SourceMedia         []string          `json:"sourceMedia"`
	Author              model.Author      `json:"author"`
	Language            string            `json:"language"`
	SourcePublishedAt   string            `json:"sourcePublishedAt"`
	SourceMeta          map[string]string `json:"sourceMeta"`
	Media               []int             `json:"media,omitempty"`
	SourceLink          string            `json:"sourceLink,omitempty"`
	NeedReferenceImages *bool             `json:"needReferenceImages,omitempty"`
}

// FindPromptByIssue looks up the prompt whose source metadata records the
// given tracker issue number, or nil when no such record exists.
func (c *Client) FindPromptByIssue(ctx context.Context, issueNumber string) (*model.Prompt, error) {
	q := listQuery{
		limit: 1,
		depth: relationDepth,
		where: []whereClause{
			{path: "sourceMeta." + model.SourceMetaIssueKey, op: opEquals, value: issueNumber},
			{path: "model", op: opEquals, value: model.ModelTag},
		},
	}

	var resp promptListResponse
	if err := c.get(ctx, "/api/prompts", q.encode(), &resp); err != nil {
		return nil, fmt.Errorf("finding prompt for issue #%s: %w", issueNumber, err)
	}
	if len(resp.Docs) == 0 {
		return nil, nil
	}
	return &resp.Docs[0], nil
}

// CreatePrompt creates a new prompt record, published directly with no
// draft state.
func (c *Client) CreatePrompt(ctx context.Context, draft PromptDraft) (*model.Prompt, error) {
	var created model.Prompt
	if err := c.writeJSON(ctx, http.MethodPost, "/api/prompts", draft, &created); err != nil {
		return nil, fmt.Errorf("creating prompt: %w", err)
	}
	return &created, nil
}

// UpdatePrompt patches an existing prompt record.
func (c *Client) UpdatePrompt(ctx context.Context, id int, draft PromptDraft) (*model.Prompt, error) {
	var updated model.Prompt
	if err := c.writeJSON(ctx, http.MethodPatch, fmt.Sprintf("/api/prompts/%d", id), draft, &updated); err != nil {
		return nil, fmt.Errorf("updating prompt %d: %w", id, err)
	}
	return &updated, nil
}
