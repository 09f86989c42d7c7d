// Package listing implements the filter, sort and paginate pipeline shared by
// one-shot lists and the realtime board feed.
package listing

import (
	"cmp"
	"slices"
	"strings"

	"devfolio/internal/domain"

	"golang.org/x/text/cases"
)

// Apply runs category filter, status filter, search, sort and the page-1
// slice, in that order. The input slice is never modified.
func Apply[T domain.Record](records []T, opts domain.FilterOptions) []T {
	opts = opts.Normalized()

	// Casers are stateful, one per call.
	folder := cases.Fold()
	out := make([]T, 0, len(records))
	term := strings.TrimSpace(opts.SearchTerm)
	if term != "" {
		term = folder.String(term)
	}

	for _, r := range records {
		if opts.Category != domain.FilterAll && r.CategoryName() != opts.Category {
			continue
		}
		if opts.Status != domain.FilterAll && r.StatusName() != opts.Status {
			continue
		}
		// 空白搜尋不過濾
		if term != "" && !matches(folder, r, term) {
			continue
		}
		out = append(out, r)
	}

	slices.SortStableFunc(out, comparator[T](opts.SortKey))

	if len(out) > opts.PageSize {
		out = out[:opts.PageSize]
	}
	return out
}

// matches expects term already folded.
func matches(folder cases.Caser, r domain.Record, term string) bool {
	for _, field := range r.SearchText() {
		if strings.Contains(folder.String(field), term) {
			return true
		}
	}
	for _, tag := range r.TagList() {
		if strings.Contains(folder.String(tag), term) {
			return true
		}
	}
	return false
}

func comparator[T domain.Record](key domain.SortKey) func(a, b T) int {
	var primary func(a, b T) int
	switch key {
	case domain.SortOldest:
		primary = func(a, b T) int { return a.CreatedTime().Compare(b.CreatedTime()) }
	case domain.SortPopular:
		primary = func(a, b T) int { return cmp.Compare(b.LikeCount(), a.LikeCount()) }
	case domain.SortMostViewed:
		primary = func(a, b T) int { return cmp.Compare(b.ViewCount(), a.ViewCount()) }
	default:
		primary = func(a, b T) int { return b.CreatedTime().Compare(a.CreatedTime()) }
	}
	return func(a, b T) int {
		if c := primary(a, b); c != 0 {
			return c
		}
		return strings.Compare(a.RecordID(), b.RecordID())
	}
}
