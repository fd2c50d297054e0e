package model

import (
	"encoding/json"
	"fmt"
)

// ParentRef is a category's parent reference as stored by the API, which
// serializes it either as a bare numeric id or as an embedded category
// object. The union is resolved here, at decode time, so nothing downstream
// has to inspect raw JSON shapes.
type ParentRef struct {
	ID     *int
	Object *Category
}

// IsZero reports whether the reference is absent.
func (r ParentRef) IsZero() bool {
	return r.ID == nil && r.Object == nil
}

// ResolvedID returns the parent id regardless of which form the reference
// took, or nil when absent.
func (r ParentRef) ResolvedID() *int {
	if r.Object != nil {
		id := r.Object.ID
		return &id
	}
	return r.ID
}

// ResolvedSlug returns the parent slug, which is only known when the parent
// arrived as an embedded object.
func (r ParentRef) ResolvedSlug() *string {
	if r.Object != nil {
		slug := r.Object.Slug
		return &slug
	}
	return nil
}

// UnmarshalJSON accepts null, a numeric id, or an embedded category object.
func (r *ParentRef) UnmarshalJSON(data []byte) error {
	*r = ParentRef{}
	if string(data) == "null" {
		return nil
	}
	var id int
	if err := json.Unmarshal(data, &id); err == nil {
		r.ID = &id
		return nil
	}
	var obj Category
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("parent reference is neither an id nor a category: %w", err)
	}
	r.Object = &obj
	return nil
}

// MarshalJSON re-encodes the reference in the same form it was decoded from.
func (r ParentRef) MarshalJSON() ([]byte, error) {
	switch {
	case r.Object != nil:
		return json.Marshal(r.Object)
	case r.ID != nil:
		return json.Marshal(*r.ID)
	default:
		return []byte("null"), nil
	}
}

// Category is a taxonomy record as read from the store.
type Category struct {
	ID       int       `json:"id"`
	Title    string    `json:"title"`
	Slug     string    `json:"slug"`
	Parent   ParentRef `json:"parent,omitempty"`
	Featured *bool     `json:"featured,omitempty"`
	Sort     *int      `json:"sort,omitempty"`
}

// FilterCategory is the flattened form used for filtering: the parent union
// is resolved into plain id/slug fields.
type FilterCategory struct {
	ID         int     `json:"id"`
	Title      string  `json:"title"`
	Slug       string  `json:"slug"`
	ParentID   *int    `json:"parentId"`
	ParentSlug *string `json:"parentSlug"`
	Featured   bool    `json:"featured"`
	Sort       *int    `json:"sort"`
}

// Flatten resolves each category's parent reference into a FilterCategory.
// ParentID and ParentSlug stay nil when the source reference does not
// resolve to the respective value.
func Flatten(cats []Category) []FilterCategory {
	out := make([]FilterCategory, len(cats))
	for i, c := range cats {
		out[i] = FilterCategory{
			ID:         c.ID,
			Title:      c.Title,
			Slug:       c.Slug,
			ParentID:   c.Parent.ResolvedID(),
			ParentSlug: c.Parent.ResolvedSlug(),
			Featured:   c.Featured != nil && *c.Featured,
			Sort:       c.Sort,
		}
	}
	return out
}

// FeaturedLeaves returns the categories that are marked featured and are
// leaves: no other category in the list references them as parent. The scan
// is quadratic, which is fine at taxonomy sizes.
func FeaturedLeaves(all []FilterCategory) []FilterCategory {
	var out []FilterCategory
	for _, cat := range all {
		if !cat.Featured {
			continue
		}
		isParent := false
		for _, other := range all {
			if other.ParentID != nil && *other.ParentID == cat.ID {
				isParent = true
				break
			}
		}
		if !isParent {
			out = append(out, cat)
		}
	}
	return out
}

// UseCaseCategories returns the categories whose parent slug is the
// use-case taxonomy root, preserving input order.
func UseCaseCategories(all []FilterCategory) []FilterCategory {
	var out []FilterCategory
	for _, cat := range all {
		if cat.ParentSlug != nil && *cat.ParentSlug == TaxonomyRootSlug {
			out = append(out, cat)
		}
	}
	return out
}
