// Package issueform parses the heading-delimited form bodies that the
// tracker's submission template produces, and normalizes their free-text
// fields into the values the store expects.
package issueform

import (
	"regexp"
	"strings"
)

// Canonical field ids produced by the submission form.
const (
	FieldTitle               = "prompt_title"
	FieldPrompt              = "prompt"
	FieldDescription         = "description"
	FieldImageURLs           = "image_urls"
	FieldAuthorName          = "author_name"
	FieldAuthorLink          = "author_link"
	FieldSourceLink          = "source_link"
	FieldLanguage            = "language"
	FieldPromptLanguage      = "prompt_language"
	FieldNeedReferenceImages = "need_reference_images"
)

// noResponsePlaceholder is what the tracker substitutes for a form field
// the submitter left blank.
const noResponsePlaceholder = "_No response_"

// fieldAliases maps label-derived field names to their canonical field ids.
// Labels are converted mechanically (lowercase, whitespace to underscores),
// so a display label like "Original Author" arrives as original_author even
// though the form schema calls the field author_name.
var fieldAliases = map[string]string{
	"generated_image_urls":   FieldImageURLs,
	"original_author":        FieldAuthorName,
	"author_profile_link":    FieldAuthorLink,
	FieldPromptLanguage:      FieldLanguage,
	"need_reference_images_": FieldNeedReferenceImages, // label carries a trailing space
}

// Fields maps normalized field names to cleaned values. A key that parsed
// to an empty or placeholder value is present with an empty value, so
// presence of the heading and presence of a usable value stay separate
// questions.
type Fields map[string]string

// Get returns the cleaned value for a field, or "" when absent.
func (f Fields) Get(key string) string { return f[key] }

// Has reports whether the field carries a non-absent value.
func (f Fields) Has(key string) bool { return f[key] != "" }

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeLabel converts a form heading label to its field-name form:
// lowercased, with every whitespace run replaced by an underscore. The
// label is deliberately not trimmed first; a trailing space in the display
// label becomes a trailing underscore, which the alias table accounts for.
func NormalizeLabel(label string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(label), "_")
}

// CleanValue trims a raw field value and collapses the tracker's
// no-response placeholder to absent.
func CleanValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == noResponsePlaceholder {
		return ""
	}
	return trimmed
}

// ParseFields splits a form body into (label, value) pairs at "### "
// heading boundaries, normalizes labels and cleans values, then applies
// the alias table. When a canonical field and its alias are both present,
// the alias's cleaned value wins if non-absent, otherwise the canonical
// value is kept; both keys remain in the result for compatibility.
// Unknown headings pass through verbatim. Text before the first heading
// is ignored.
func ParseFields(body string) Fields {
	keys, raw := splitHeadings(body)

	fields := make(Fields, len(keys))
	for _, key := range keys {
		mappedKey, isAlias := fieldAliases[key]
		if !isAlias {
			mappedKey = key
		}
		cleaned := CleanValue(raw[key])

		if existing, ok := fields[mappedKey]; ok && existing != "" && isAlias {
			if cleaned != "" {
				fields[mappedKey] = cleaned
			}
		} else {
			fields[mappedKey] = cleaned
		}
		if isAlias {
			fields[key] = cleaned
		}
	}
	return fields
}

// splitHeadings collects the raw (unclean) value for each normalized
// heading, preserving document order. A repeated heading keeps its first
// position but takes the later value.
func splitHeadings(body string) ([]string, map[string]string) {
	var keys []string
	raw := make(map[string]string)

	var current string
	var value []string
	flush := func() {
		if current == "" {
			return
		}
		if _, seen := raw[current]; !seen {
			keys = append(keys, current)
		}
		raw[current] = strings.TrimSpace(strings.Join(value, "\n"))
	}

	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "### ") {
			flush()
			current = NormalizeLabel(strings.TrimPrefix(line, "### "))
			value = value[:0]
			continue
		}
		if current != "" {
			value = append(value, line)
		}
	}
	flush()

	return keys, raw
}

// SplitImageURLs parses a newline-separated image-URLs field, keeping only
// trimmed entries that start with "http".
func SplitImageURLs(text string) []string {
	var urls []string
	for _, line := range strings.Split(text, "\n") {
		url := strings.TrimSpace(line)
		if url != "" && strings.HasPrefix(url, "http") {
			urls = append(urls, url)
		}
	}
	return urls
}

// ParseBool interprets a dropdown boolean value; only a case-insensitive
// "true" is true.
func ParseBool(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "true")
}
