package cms

import (
	"context"
	"fmt"
	"strconv"

	"github.com/banana-labs/promptsync/internal/model"
)

type categoryListResponse struct {
	Docs      []model.Category `json:"docs"`
	TotalDocs int              `json:"totalDocs"`
}

// Categories is the result of a category fetch: the full flat taxonomy for
// the campaign plus the featured leaf subset.
type Categories struct {
	All      []model.FilterCategory
	Featured []model.FilterCategory
}

// FetchCategories retrieves every category for the campaign in one bulk
// request (pagination disabled via an oversized limit), ordered by
// ascending sort weight, and resolves each parent reference into the flat
// filter form.
func (c *Client) FetchCategories(ctx context.Context, locale string) (Categories, error) {
	q := listQuery{
		limit:  9999,
		sort:   []string{"sort"},
		locale: locale,
		where: []whereClause{
			{path: "campaign", op: opContains, value: model.CampaignTag},
		},
	}

	var resp categoryListResponse
	if err := c.get(ctx, "/api/prompt-categories", q.encode(), &resp); err != nil {
		return Categories{}, fmt.Errorf("fetching categories: %w", err)
	}

	all := model.Flatten(resp.Docs)
	return Categories{
		All:      all,
		Featured: model.FeaturedLeaves(all),
	}, nil
}

// categoryIDValue renders a category id for use in a where clause.
func categoryIDValue(id int) string {
	return strconv.Itoa(id)
}
