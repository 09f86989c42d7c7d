package stats

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"devfolio/internal/domain"
)

const estimatedNote = "No visit telemetry is collected; this series is a zero-filled placeholder."

// ReduceUsers folds registered users and posts into the user activity slice.
// visitors comes from the counters collection.
func ReduceUsers(users []domain.UserActivity, posts []domain.Post, visitors int64, now time.Time) domain.UserStats {
	type tally struct {
		name  string
		count int
	}
	byAuthor := make(map[string]*tally)
	for _, p := range posts {
		if p.AuthorID == "" {
			continue
		}
		t, ok := byAuthor[p.AuthorID]
		if !ok {
			t = &tally{name: p.AuthorName}
			byAuthor[p.AuthorID] = t
		}
		t.count++
	}

	contributors := make([]domain.Contributor, 0, len(byAuthor))
	for id, t := range byAuthor {
		contributors = append(contributors, domain.Contributor{AuthorID: id, DisplayName: t.name, PostCount: t.count})
	}
	slices.SortFunc(contributors, func(a, b domain.Contributor) int {
		if c := cmp.Compare(b.PostCount, a.PostCount); c != 0 {
			return c
		}
		return cmp.Compare(a.AuthorID, b.AuthorID)
	})
	if len(contributors) > TopAuthors {
		contributors = contributors[:TopAuthors]
	}

	return domain.UserStats{
		TotalUsers:      len(users),
		TotalVisitors:   visitors,
		TopContributors: contributors,
		HourlyVisits:    HourlyPlaceholder(),
		DailyActivity:   DailyPlaceholder(now),
	}
}

// EmptyUsers is the user slice used when users could not be fetched.
func EmptyUsers(now time.Time) domain.UserStats {
	return ReduceUsers(nil, nil, 0, now)
}

// HourlyPlaceholder has one zero point per hour of day.
func HourlyPlaceholder() domain.EstimatedSeries {
	points := make([]domain.Bucket, 24)
	for h := range points {
		points[h] = domain.Bucket{Name: fmt.Sprintf("%02d:00", h)}
	}
	return domain.EstimatedSeries{Available: false, Note: estimatedNote, Points: points}
}

// DailyPlaceholder has one zero point per day of the last ActivityDays days.
func DailyPlaceholder(now time.Time) domain.EstimatedSeries {
	points := make([]domain.Bucket, ActivityDays)
	for i := range points {
		day := now.AddDate(0, 0, i-(ActivityDays-1))
		points[i] = domain.Bucket{Name: day.Format(time.DateOnly)}
	}
	return domain.EstimatedSeries{Available: false, Note: estimatedNote, Points: points}
}
