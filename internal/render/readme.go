package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	humanize "github.com/dustin/go-humanize"

	"github.com/banana-labs/promptsync/internal/model"
)

// Stats summarizes a rendered listing: Total is the store-reported total
// when available, Featured the number of featured entries.
type Stats struct {
	Total    int `json:"total"`
	Featured int `json:"featured"`
}

// ReadmePage is the data for one localized README document.
type ReadmePage struct {
	Lang       Language
	Stats      Stats
	Featured   []model.Prompt
	Regular    []model.Prompt
	Categories []model.FilterCategory
}

const readmeTemplate = `# Awesome Nano Banana Pro Prompts

A curated collection of prompts for the Nano Banana Pro image model, synced from the community prompt store.

{{range $i, $l := languages}}{{if $i}} · {{end}}[{{$l.Name}}]({{$l.ReadmeFile}}){{end}}

**{{comma .Stats.Total}} prompts** collected, **{{comma .Stats.Featured}}** featured.
{{if .Featured}}
## Featured
{{range .Featured}}
### {{.Title}}

{{imageRow .}}
` + "```" + `
{{promptText .}}
` + "```" + `
{{attribution .}}
{{end}}{{end}}{{if .Regular}}
## All Prompts
{{range .Regular}}
### {{.Title}}

{{imageRow .}}
` + "```" + `
{{promptText .}}
` + "```" + `
{{attribution .}}
{{end}}{{end}}
---

Contributions welcome: open a prompt-submission issue and it will be synced here once approved.
`

var anchorUnsafe = regexp.MustCompile(`[^a-z0-9\p{Han}\p{Hiragana}\p{Katakana}\p{Hangul} -]`)

// Anchor converts a heading title to its markdown anchor slug.
func Anchor(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = anchorUnsafe.ReplaceAllString(s, "")
	return strings.ReplaceAll(s, " ", "-")
}

func readmeFuncs() template.FuncMap {
	return template.FuncMap{
		"languages": func() []Language { return SupportedLanguages },
		"comma":     func(n int) string { return humanize.Comma(int64(n)) },
		"anchor":    Anchor,
		"imageRow": func(p model.Prompt) string {
			if len(p.SourceMedia) == 0 {
				return ""
			}
			cells := make([]string, len(p.SourceMedia))
			for i, url := range p.SourceMedia {
				cells[i] = fmt.Sprintf(`<img src="%s" width="260" alt="%s">`, url, p.Title)
			}
			return strings.Join(cells, " ")
		},
		"promptText": func(p model.Prompt) string {
			if p.TranslatedContent != "" {
				return p.TranslatedContent
			}
			return p.Content
		},
		"attribution": func(p model.Prompt) string {
			var b strings.Builder
			if p.Author.Name != "" {
				if p.Author.Link != nil && *p.Author.Link != "" {
					fmt.Fprintf(&b, "By [%s](%s)", p.Author.Name, *p.Author.Link)
				} else {
					fmt.Fprintf(&b, "By %s", p.Author.Name)
				}
			}
			if p.SourceLink != "" {
				if b.Len() > 0 {
					b.WriteString(" · ")
				}
				fmt.Fprintf(&b, "[Source](%s)", p.SourceLink)
			}
			return b.String()
		},
	}
}

var readmeTpl = template.Must(
	template.New("readme").Funcs(readmeFuncs()).Parse(readmeTemplate),
)

// RenderReadme renders one localized README document.
func RenderReadme(page ReadmePage) ([]byte, error) {
	var buf bytes.Buffer
	if err := readmeTpl.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("rendering readme for %s: %w", page.Lang.Code, err)
	}
	return buf.Bytes(), nil
}

// WriteReadme renders the page and overwrites the language's README file
// under dir in full. No incremental diffing is attempted.
func WriteReadme(dir string, page ReadmePage) (string, error) {
	data, err := RenderReadme(page)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, page.Lang.ReadmeFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
