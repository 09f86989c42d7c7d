package stats

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"devfolio/internal/domain"
)

// ReduceTechStack builds technology and tool frequency tables over all
// projects. Names are trimmed and compared case-sensitively.
func ReduceTechStack(projects []domain.Project) domain.TechStackStats {
	technologies := make(map[string]int)
	tools := make(map[string]int)
	perProject := make([]domain.ProjectTechCount, 0, len(projects))

	for _, p := range projects {
		techCount := tallyNames(technologies, p.Technologies)
		toolCount := tallyNames(tools, p.Tools)
		perProject = append(perProject, domain.ProjectTechCount{
			ProjectID:    p.ID.Hex(),
			Title:        p.Title,
			Technologies: techCount,
			Tools:        toolCount,
			Total:        techCount + toolCount,
		})
	}

	slices.SortFunc(perProject, func(a, b domain.ProjectTechCount) int {
		if c := cmp.Compare(b.Total, a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.ProjectID, b.ProjectID)
	})
	if len(perProject) > TopTechProject {
		perProject = perProject[:TopTechProject]
	}

	return domain.TechStackStats{
		TopTechnologies:   topUsage(technologies, len(projects)),
		TopTools:          topUsage(tools, len(projects)),
		ProjectTechCounts: perProject,
	}
}

// EmptyTechStack is the tech stack slice used when projects could not be fetched.
func EmptyTechStack() domain.TechStackStats {
	return ReduceTechStack(nil)
}

// tallyNames counts each distinct non-empty name once per project, so a
// tally never exceeds the project count. It returns the distinct names seen.
func tallyNames(tally map[string]int, names []string) int {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		tally[name]++
	}
	return len(seen)
}

func topUsage(tally map[string]int, totalProjects int) []domain.TechUsage {
	buckets := sortedBuckets(tally)
	if len(buckets) > TopTechEntries {
		buckets = buckets[:TopTechEntries]
	}
	out := make([]domain.TechUsage, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, domain.TechUsage{
			Name:       b.Name,
			Count:      b.Count,
			Percentage: percentage(b.Count, totalProjects),
		})
	}
	return out
}

func percentage(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}
