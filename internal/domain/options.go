package domain

// SortKey selects the comparator of the listing pipeline.
type SortKey string

const (
	SortLatest     SortKey = "latest"
	SortOldest     SortKey = "oldest"
	SortPopular    SortKey = "popular"
	SortMostViewed SortKey = "mostViewed"
)

// FilterAll disables the category or status filter.
const FilterAll = "all"

// DefaultPageSize is used when a caller supplies a non-positive page size.
const DefaultPageSize = 10

// FilterOptions is replaced wholesale on every change.
type FilterOptions struct {
	Category   string  `json:"category" form:"category"`
	Status     string  `json:"status" form:"status"`
	SearchTerm string  `json:"searchTerm" form:"search"`
	SortKey    SortKey `json:"sortKey" form:"sort"`
	PageSize   int     `json:"pageSize" form:"pageSize"`
}

// DefaultFilterOptions shows everything, newest first.
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		Category: FilterAll,
		Status:   FilterAll,
		SortKey:  SortLatest,
		PageSize: DefaultPageSize,
	}
}

func (k SortKey) Valid() bool {
	switch k {
	case SortLatest, SortOldest, SortPopular, SortMostViewed:
		return true
	}
	return false
}

// Normalized falls back to safe values instead of rejecting malformed options.
func (o FilterOptions) Normalized() FilterOptions {
	if o.Category == "" {
		o.Category = FilterAll
	}
	if o.Status == "" {
		o.Status = FilterAll
	}
	if !o.SortKey.Valid() {
		o.SortKey = SortLatest
	}
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	return o
}
