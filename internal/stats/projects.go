package stats

import (
	"slices"
	"strings"
	"time"

	"devfolio/internal/domain"
)

// ReduceProjects folds projects into the project slice. Every project lands
// in exactly one category bucket and one integration bucket.
func ReduceProjects(projects []domain.Project, now time.Time) domain.ProjectStats {
	categories := make(map[string]int)
	integration := map[string]int{
		domain.APIKeyRequired: 0,
		domain.APIKeyOptional: 0,
		domain.APIKeyNone:     0,
	}
	created := make([]time.Time, 0, len(projects))

	for _, p := range projects {
		categories[categoryOf(p.Category)]++
		integration[integrationOf(p.APIKeyRequirement)]++
		created = append(created, p.CreatedAt)
	}

	recent := append(make([]domain.Project, 0, len(projects)), projects...)
	slices.SortFunc(recent, newestFirst)
	if len(recent) > TopRecent {
		recent = recent[:TopRecent]
	}

	return domain.ProjectStats{
		TotalProjects:        len(projects),
		CategoryDistribution: sortedBuckets(categories),
		IntegrationDistribution: []domain.Bucket{
			{Name: domain.APIKeyRequired, Count: integration[domain.APIKeyRequired]},
			{Name: domain.APIKeyOptional, Count: integration[domain.APIKeyOptional]},
			{Name: domain.APIKeyNone, Count: integration[domain.APIKeyNone]},
		},
		RecentProjects:   recent,
		ProjectsOverTime: MonthlySeries(created, now),
	}
}

// integrationOf maps unknown or missing requirements to none.
func integrationOf(requirement string) string {
	switch strings.ToLower(strings.TrimSpace(requirement)) {
	case domain.APIKeyRequired:
		return domain.APIKeyRequired
	case domain.APIKeyOptional:
		return domain.APIKeyOptional
	default:
		return domain.APIKeyNone
	}
}

func newestFirst(a, b domain.Project) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(a.ID.Hex(), b.ID.Hex())
}
