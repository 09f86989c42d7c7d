// Package stats holds the pure folds that turn fetched records into the
// dashboard statistic slices. Nothing here performs I/O.
package stats

import (
	"cmp"
	"slices"
	"time"

	"devfolio/internal/domain"
)

// Fixed windows of the dashboard series.
const (
	SeriesMonths   = 6
	ActivityDays   = 7
	TopRecent      = 5
	TopPopular     = 5
	TopAuthors     = 5
	TopTechEntries = 10
	TopTechProject = 10
)

const monthLayout = "2006-01"

// monthWindow returns the first instant of each of the last n calendar
// months ending at now's month, oldest first.
func monthWindow(now time.Time, n int) []time.Time {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	out := make([]time.Time, n)
	for i := 0; i < n; i++ {
		out[i] = start.AddDate(0, i-(n-1), 0)
	}
	return out
}

// MonthlySeries counts created times per calendar month over the last
// SeriesMonths months. Months without records are present with zero.
func MonthlySeries(created []time.Time, now time.Time) []domain.MonthCount {
	months := monthWindow(now, SeriesMonths)
	series := make([]domain.MonthCount, len(months))
	index := make(map[string]int, len(months))
	for i, m := range months {
		label := m.Format(monthLayout)
		series[i] = domain.MonthCount{Month: label}
		index[label] = i
	}
	for _, t := range created {
		if i, ok := index[t.In(now.Location()).Format(monthLayout)]; ok {
			series[i].Count++
		}
	}
	return series
}

// sortedBuckets orders a tally by count descending then name.
func sortedBuckets(tally map[string]int) []domain.Bucket {
	out := make([]domain.Bucket, 0, len(tally))
	for name, count := range tally {
		out = append(out, domain.Bucket{Name: name, Count: count})
	}
	slices.SortFunc(out, func(a, b domain.Bucket) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

func categoryOf(category string) string {
	if category == "" {
		return domain.UncategorizedBucket
	}
	return category
}
