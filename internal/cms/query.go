package cms

import (
	"fmt"
	"net/url"
	"strings"
)

// Filter comparison operators supported by the store's where syntax.
const (
	opEquals   = "equals"
	opContains = "contains"
)

// whereClause is one comparison on a (possibly nested) field path.
type whereClause struct {
	path  string
	op    string
	value string
}

// listQuery describes one list request: page size, sort order (a "-"
// prefix means descending), relation-expansion depth, locale, and filter
// clauses. Zero-valued fields are omitted from the encoded query.
type listQuery struct {
	limit  int
	sort   []string
	depth  int
	locale string
	where  []whereClause
}

// encode renders the query in the store's bracket syntax, e.g.
// where[imageCategories.useCases][contains]=12.
func (q listQuery) encode() url.Values {
	v := url.Values{}
	if q.limit > 0 {
		v.Set("limit", fmt.Sprintf("%d", q.limit))
	}
	if len(q.sort) > 0 {
		v.Set("sort", strings.Join(q.sort, ","))
	}
	if q.depth > 0 {
		v.Set("depth", fmt.Sprintf("%d", q.depth))
	}
	if q.locale != "" {
		v.Set("locale", q.locale)
	}
	for _, w := range q.where {
		v.Set(fmt.Sprintf("where[%s][%s]", w.path, w.op), w.value)
	}
	return v
}
