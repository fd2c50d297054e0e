package cms

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/banana-labs/promptsync/internal/model"
)

func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

func TestResolveImagesPrefersResolvedMedia(t *testing.T) {
	p := model.Prompt{
		Title:       "p",
		SourceMedia: []string{"raw"},
		Media: []model.Media{
			{ID: 1, URL: strPtr("a")},
			{ID: 2, URL: nil},
			{ID: 3, URL: strPtr("b")},
		},
	}

	got := ResolveImages(p)
	if len(got.SourceMedia) != 2 || got.SourceMedia[0] != "a" || got.SourceMedia[1] != "b" {
		t.Errorf("images = %v, want [a b]", got.SourceMedia)
	}
	// The original is untouched; the transform works on a copy.
	if len(p.SourceMedia) != 1 || p.SourceMedia[0] != "raw" {
		t.Errorf("input mutated: %v", p.SourceMedia)
	}
}

func TestResolveImagesFallsBackToSourceMedia(t *testing.T) {
	p := model.Prompt{
		SourceMedia: []string{"x"},
		Video:       &model.Video{URL: "v", Thumbnail: "y"},
	}

	got := ResolveImages(p)
	if len(got.SourceMedia) != 2 || got.SourceMedia[0] != "x" || got.SourceMedia[1] != "y" {
		t.Errorf("images = %v, want [x y]", got.SourceMedia)
	}
}

func TestResolveImagesEmptyMediaYieldsNoImages(t *testing.T) {
	// A present-but-empty media relation means "resolved to nothing",
	// not "fall back to source URLs".
	p := model.Prompt{
		SourceMedia: []string{"x"},
		Media:       []model.Media{},
	}

	if got := ResolveImages(p); len(got.SourceMedia) != 0 {
		t.Errorf("images = %v, want none", got.SourceMedia)
	}
}

func TestSortPromptsStablePartition(t *testing.T) {
	prompts := []model.Prompt{
		{ID: 1, Featured: boolPtr(true)},
		{ID: 2},
		{ID: 3, Featured: boolPtr(true)},
		{ID: 4},
		{ID: 5, Featured: boolPtr(false)},
	}

	sorted := SortPrompts(prompts, 99)

	wantFeatured := []int{1, 3}
	wantRegular := []int{2, 4, 5}
	if len(sorted.Featured) != len(wantFeatured) {
		t.Fatalf("featured len = %d, want %d", len(sorted.Featured), len(wantFeatured))
	}
	for i, id := range wantFeatured {
		if sorted.Featured[i].ID != id {
			t.Errorf("featured[%d] = %d, want %d", i, sorted.Featured[i].ID, id)
		}
	}
	for i, id := range wantRegular {
		if sorted.Regular[i].ID != id {
			t.Errorf("regular[%d] = %d, want %d", i, sorted.Regular[i].ID, id)
		}
	}
	if got := len(sorted.Featured) + len(sorted.Regular); got != len(prompts) {
		t.Errorf("partition lost entries: %d, want %d", got, len(prompts))
	}
	if sorted.Stats.Total != 99 {
		t.Errorf("stats.total = %d, want 99", sorted.Stats.Total)
	}
	if sorted.Stats.Featured != 2 {
		t.Errorf("stats.featured = %d, want 2", sorted.Stats.Featured)
	}
}

func TestSortPromptsTotalFallsBackToLength(t *testing.T) {
	sorted := SortPrompts([]model.Prompt{{ID: 1}, {ID: 2}}, 0)
	if sorted.Stats.Total != 2 {
		t.Errorf("stats.total = %d, want 2", sorted.Stats.Total)
	}
}

// promptJSON builds a minimal prompt document for fake store responses.
func promptJSON(id int, title string, featured bool, images ...string) string {
	media := ""
	for i, url := range images {
		if i > 0 {
			media += ","
		}
		media += fmt.Sprintf(`{"id":%d,"url":"%s","createdAt":"","updatedAt":""}`, 100+i, url)
	}
	return fmt.Sprintf(`{
		"id": %d,
		"title": "%s",
		"description": "",
		"content": "prompt text",
		"sourcePublishedAt": "2026-01-01T00:00:00.000Z",
		"sourceMedia": [],
		"media": [%s],
		"author": {"name": "someone"},
		"language": "en",
		"featured": %t
	}`, id, title, media, featured)
}

func docsJSON(total int, docs ...string) string {
	body := ""
	for i, d := range docs {
		if i > 0 {
			body += ","
		}
		body += d
	}
	return fmt.Sprintf(`{"docs":[%s],"totalDocs":%d}`, body, total)
}

// fakeStore serves /api/prompts, switching on the category filter clause.
func fakeStore(t *testing.T, featured string, byCategory map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/prompts" {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Authorization"); got != "users API-Key test-key" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		if id := r.URL.Query().Get("where[imageCategories.useCases][contains]"); id != "" {
			fmt.Fprint(w, byCategory[id])
			return
		}
		fmt.Fprint(w, featured)
	}))
}

func TestFetchFeaturedPromptsFilters(t *testing.T) {
	// p2 is not featured, p3 is featured but resolves to zero images.
	srv := fakeStore(t, docsJSON(57,
		promptJSON(1, "P1", true, "a"),
		promptJSON(2, "P2", false, "b"),
		promptJSON(3, "P3", true),
	), nil)
	defer srv.Close()

	c := &Client{Host: srv.URL, APIKey: "test-key", HTTPClient: srv.Client()}
	docs, total, err := c.FetchFeaturedPrompts(context.Background(), "en-US")
	if err != nil {
		t.Fatalf("FetchFeaturedPrompts: %v", err)
	}
	if total != 57 {
		t.Errorf("total = %d, want 57", total)
	}
	if len(docs) != 1 || docs[0].ID != 1 {
		t.Fatalf("docs = %v, want just P1", docs)
	}
	if docs[0].SourceMedia[0] != "a" {
		t.Errorf("images = %v, want [a]", docs[0].SourceMedia)
	}
}

func TestFetchPromptsByCategoryPrefixesTitles(t *testing.T) {
	srv := fakeStore(t, "", map[string]string{
		"10": docsJSON(2, promptJSON(4, "P4", false, "u4"), promptJSON(5, "P5", false)),
	})
	defer srv.Close()

	c := &Client{Host: srv.URL, APIKey: "test-key", HTTPClient: srv.Client()}
	docs, err := c.FetchPromptsByCategory(context.Background(), 10, "Posters", "en-US")
	if err != nil {
		t.Fatalf("FetchPromptsByCategory: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("docs len = %d, want 1 (P5 has no images)", len(docs))
	}
	if docs[0].Title != "Posters - P4" {
		t.Errorf("title = %q, want %q", docs[0].Title, "Posters - P4")
	}
}

func TestFetchAllPromptsDedupsFirstWins(t *testing.T) {
	srv := fakeStore(t,
		docsJSON(57, promptJSON(1, "P1", true, "a")),
		map[string]string{
			// Category 10 repeats the featured prompt and adds P4.
			"10": docsJSON(0, promptJSON(1, "P1", true, "a"), promptJSON(4, "P4", false, "u4")),
			// Category 11 repeats P4 under a different title and adds P5.
			"11": docsJSON(0, promptJSON(4, "P4", false, "u4"), promptJSON(5, "P5", false, "u5")),
		})
	defer srv.Close()

	useCases := model.TaxonomyRootSlug
	cats := []model.FilterCategory{
		{ID: 10, Title: "Posters", ParentSlug: &useCases},
		{ID: 11, Title: "Avatars", ParentSlug: &useCases},
		{ID: 12, Title: "Watercolor"}, // not a use-case child; never fetched
	}

	c := &Client{Host: srv.URL, APIKey: "test-key", HTTPClient: srv.Client()}
	docs, total, err := c.FetchAllPrompts(context.Background(), "en-US", cats)
	if err != nil {
		t.Fatalf("FetchAllPrompts: %v", err)
	}
	if total != 57 {
		t.Errorf("total = %d, want 57", total)
	}

	wantIDs := []int{1, 4, 5}
	if len(docs) != len(wantIDs) {
		t.Fatalf("docs len = %d, want %d", len(docs), len(wantIDs))
	}
	for i, id := range wantIDs {
		if docs[i].ID != id {
			t.Errorf("docs[%d].ID = %d, want %d", i, docs[i].ID, id)
		}
	}
	// First occurrence wins: P4 keeps the Posters prefix, and the featured
	// copy of P1 keeps its unprefixed title.
	if docs[0].Title != "P1" {
		t.Errorf("docs[0].Title = %q, want %q", docs[0].Title, "P1")
	}
	if docs[1].Title != "Posters - P4" {
		t.Errorf("docs[1].Title = %q, want %q", docs[1].Title, "Posters - P4")
	}
}

func TestFetchFeaturedPromptsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := &Client{Host: srv.URL, APIKey: "test-key", HTTPClient: srv.Client()}
	if _, _, err := c.FetchFeaturedPrompts(context.Background(), "en-US"); err == nil {
		t.Error("expected transport error, got nil")
	}
}

func TestFindPromptByIssue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("where[sourceMeta.github_issue][equals]"); got != "42" {
			t.Errorf("issue filter = %q, want %q", got, "42")
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, docsJSON(1, promptJSON(7, "Existing", false, "a")))
	}))
	defer srv.Close()

	c := &Client{Host: srv.URL, APIKey: "test-key", HTTPClient: srv.Client()}
	p, err := c.FindPromptByIssue(context.Background(), "42")
	if err != nil {
		t.Fatalf("FindPromptByIssue: %v", err)
	}
	if p == nil || p.ID != 7 {
		t.Errorf("prompt = %v, want id 7", p)
	}
}

func TestFindPromptByIssueAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, docsJSON(0))
	}))
	defer srv.Close()

	c := &Client{Host: srv.URL, APIKey: "test-key", HTTPClient: srv.Client()}
	p, err := c.FindPromptByIssue(context.Background(), "42")
	if err != nil {
		t.Fatalf("FindPromptByIssue: %v", err)
	}
	if p != nil {
		t.Errorf("prompt = %v, want nil", p)
	}
}
