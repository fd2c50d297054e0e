package model

// Fixed tags and keys used when talking to the store.
const (
	// ModelTag scopes every prompt query and write to this model's records.
	ModelTag = "nano-banana-pro"

	// CampaignTag scopes category queries to this campaign's taxonomy.
	CampaignTag = "nano-banana-pro-prompts"

	// TaxonomyRootSlug is the parent slug identifying use-case categories.
	TaxonomyRootSlug = "use-cases"

	// SourceMetaIssueKey is the sourceMeta key holding the originating
	// tracker issue number.
	SourceMetaIssueKey = "github_issue"

	// SubmissionLabel must be present on an issue for the sync pipeline
	// to process it.
	SubmissionLabel = "prompt-submission"
)

// Author is the attributed creator of a prompt.
type Author struct {
	Name string  `json:"name"`
	Link *string `json:"link,omitempty"`
}

// Video is an optional video attachment with a preview thumbnail.
type Video struct {
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// ImageCategories groups a prompt's category relations by taxonomy axis.
type ImageCategories struct {
	UseCases []Category `json:"useCases,omitempty"`
	Styles   []Category `json:"styles,omitempty"`
	Subjects []Category `json:"subjects,omitempty"`
}

// Prompt is a prompt record as read from the store. Optional fields are
// pointers so that absent and zero values stay distinguishable.
type Prompt struct {
	ID                  int              `json:"id"`
	Model               string           `json:"model,omitempty"`
	Title               string           `json:"title"`
	Description         string           `json:"description"`
	Content             string           `json:"content"`
	TranslatedContent   string           `json:"translatedContent,omitempty"`
	SourceLink          string           `json:"sourceLink,omitempty"`
	SourcePublishedAt   string           `json:"sourcePublishedAt"`
	SourceMedia         []string         `json:"sourceMedia"`
	Video               *Video           `json:"video,omitempty"`
	Media               []Media          `json:"media,omitempty"`
	Author              Author           `json:"author"`
	Language            string           `json:"language"`
	Featured            *bool            `json:"featured,omitempty"`
	Sort                *int             `json:"sort,omitempty"`
	NeedReferenceImages *bool            `json:"needReferenceImages,omitempty"`
	SourceMeta          map[string]any   `json:"sourceMeta,omitempty"`
	ImageCategories     *ImageCategories `json:"imageCategories,omitempty"`
}

// IsFeatured reports whether the prompt carries an explicit featured flag.
func (p *Prompt) IsFeatured() bool {
	return p.Featured != nil && *p.Featured
}
