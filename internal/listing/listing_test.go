package listing

import (
	"testing"
	"time"

	"devfolio/internal/domain"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func oid(n byte) primitive.ObjectID {
	var id primitive.ObjectID
	id[11] = n
	return id
}

func post(n byte, title string, mutate ...func(*domain.Post)) domain.Post {
	p := domain.Post{
		ID:        oid(n),
		Title:     title,
		Category:  "general",
		Status:    domain.StatusPublished,
		CreatedAt: base.Add(time.Duration(n) * time.Hour),
	}
	for _, m := range mutate {
		m(&p)
	}
	return p
}

func titles(posts []domain.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Title)
	}
	return out
}

func TestApply_SearchScenario(t *testing.T) {
	posts := []domain.Post{post(1, "React tips"), post(2, "Vue guide")}

	got := Apply(posts, domain.FilterOptions{
		Category:   domain.FilterAll,
		Status:     domain.FilterAll,
		SearchTerm: "react",
		SortKey:    domain.SortLatest,
		PageSize:   10,
	})

	require.Equal(t, []string{"React tips"}, titles(got))
}

func TestApply_SearchMatchesBodyAuthorAndTags(t *testing.T) {
	posts := []domain.Post{
		post(1, "a", func(p *domain.Post) { p.Content = "Deep dive into GOROUTINES" }),
		post(2, "b", func(p *domain.Post) { p.AuthorName = "Goran" }),
		post(3, "c", func(p *domain.Post) { p.Tags = []string{"rust", "golang"} }),
		post(4, "d", func(p *domain.Post) { p.Tags = []string{"python"} }),
	}

	got := Apply(posts, domain.FilterOptions{SearchTerm: "  go ", SortKey: domain.SortOldest})

	require.Equal(t, []string{"a", "b", "c"}, titles(got))
}

func TestApply_EmptySearchIsNoOp(t *testing.T) {
	posts := []domain.Post{post(1, "one"), post(2, "two"), post(3, "three")}
	opts := domain.FilterOptions{SortKey: domain.SortLatest, PageSize: 10}

	withoutTerm := Apply(posts, opts)
	for _, term := range []string{"", "   ", "\t\n"} {
		opts.SearchTerm = term
		require.Equal(t, withoutTerm, Apply(posts, opts), "term %q", term)
	}
	require.Len(t, withoutTerm, 3)
}

func TestApply_CategoryAndStatusFilters(t *testing.T) {
	posts := []domain.Post{
		post(1, "q1", func(p *domain.Post) { p.Category = "question" }),
		post(2, "q2", func(p *domain.Post) { p.Category = "question"; p.Status = domain.StatusDraft }),
		post(3, "n1", func(p *domain.Post) { p.Category = "notice" }),
	}

	got := Apply(posts, domain.FilterOptions{Category: "question", Status: domain.FilterAll, SortKey: domain.SortOldest})
	require.Equal(t, []string{"q1", "q2"}, titles(got))

	got = Apply(posts, domain.FilterOptions{Category: "question", Status: domain.StatusPublished})
	require.Equal(t, []string{"q1"}, titles(got))

	got = Apply(posts, domain.FilterOptions{Category: domain.FilterAll, Status: domain.StatusDraft})
	require.Equal(t, []string{"q2"}, titles(got))
}

func TestApply_SortKeys(t *testing.T) {
	posts := []domain.Post{
		post(1, "old", func(p *domain.Post) { p.Likes = 5; p.Views = 1 }),
		post(2, "mid", func(p *domain.Post) { p.Likes = 9; p.Views = 3 }),
		post(3, "new", func(p *domain.Post) { p.Likes = 1; p.Views = 7 }),
	}

	cases := map[domain.SortKey][]string{
		domain.SortLatest:     {"new", "mid", "old"},
		domain.SortOldest:     {"old", "mid", "new"},
		domain.SortPopular:    {"mid", "old", "new"},
		domain.SortMostViewed: {"new", "mid", "old"},
	}
	for key, want := range cases {
		t.Run(string(key), func(t *testing.T) {
			require.Equal(t, want, titles(Apply(posts, domain.FilterOptions{SortKey: key})))
		})
	}
}

func TestApply_TiesBrokenByIDAscending(t *testing.T) {
	same := func(p *domain.Post) { p.CreatedAt = base; p.Likes = 3; p.Views = 3 }
	// deliberately out of id order
	posts := []domain.Post{post(9, "i9", same), post(2, "i2", same), post(5, "i5", same)}

	for _, key := range []domain.SortKey{domain.SortLatest, domain.SortOldest, domain.SortPopular, domain.SortMostViewed} {
		got := Apply(posts, domain.FilterOptions{SortKey: key})
		require.Equal(t, []string{"i2", "i5", "i9"}, titles(got), "sort %s", key)
	}
}

func TestApply_PageSliceAndMalformedOptions(t *testing.T) {
	var posts []domain.Post
	for i := byte(1); i <= 15; i++ {
		posts = append(posts, post(i, string(rune('a'+i))))
	}

	got := Apply(posts, domain.FilterOptions{SortKey: "bogus", PageSize: -3})
	require.Len(t, got, domain.DefaultPageSize)
	// unknown sort key falls back to latest
	require.Equal(t, oid(15), got[0].ID)

	got = Apply(posts, domain.FilterOptions{PageSize: 4})
	require.Len(t, got, 4)
}

func TestApply_NeverGrowsAndDoesNotMutateInput(t *testing.T) {
	posts := []domain.Post{post(3, "c"), post(1, "a"), post(2, "b")}
	before := append([]domain.Post(nil), posts...)

	for _, opts := range []domain.FilterOptions{
		{},
		{SearchTerm: "zzz"},
		{Category: "general", PageSize: 1},
		{SortKey: domain.SortPopular, PageSize: 100},
	} {
		require.LessOrEqual(t, len(Apply(posts, opts)), len(posts))
	}
	require.Equal(t, before, posts)
}

func TestApply_WorksForProjects(t *testing.T) {
	projects := []domain.Project{
		{ID: oid(1), Title: "Weather app", Category: "web", Tags: []string{"api"}, CreatedAt: base},
		{ID: oid(2), Title: "CLI", Category: "tool", Description: "uses the weather API", CreatedAt: base.Add(time.Hour)},
	}

	got := Apply(projects, domain.FilterOptions{SearchTerm: "Weather"})
	require.Len(t, got, 2)
	require.Equal(t, oid(2), got[0].ID)
}
