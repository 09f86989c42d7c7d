package stats

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"devfolio/internal/domain"
)

// ReduceBoard folds posts into the board slice. TotalComments trusts the
// denormalized per-post counter.
func ReduceBoard(posts []domain.Post, now time.Time) domain.BoardStats {
	categories := make(map[string]int)
	created := make([]time.Time, 0, len(posts))
	comments := 0

	for _, p := range posts {
		categories[categoryOf(p.Category)]++
		comments += p.CommentCount
		created = append(created, p.CreatedAt)
	}

	distribution := append(
		[]domain.Bucket{{Name: domain.FilterAll, Count: len(posts)}},
		sortedBuckets(categories)...,
	)

	popular := append(make([]domain.Post, 0, len(posts)), posts...)
	slices.SortFunc(popular, func(a, b domain.Post) int {
		if c := cmp.Compare(b.Views, a.Views); c != 0 {
			return c
		}
		return strings.Compare(a.ID.Hex(), b.ID.Hex())
	})
	if len(popular) > TopPopular {
		popular = popular[:TopPopular]
	}

	return domain.BoardStats{
		TotalPosts:           len(posts),
		TotalComments:        comments,
		CategoryDistribution: distribution,
		PopularPosts:         popular,
		PostsOverTime:        MonthlySeries(created, now),
	}
}

// EmptyBoard is the board slice used when posts could not be fetched.
func EmptyBoard(now time.Time) domain.BoardStats {
	return ReduceBoard(nil, now)
}
