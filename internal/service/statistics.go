package service

import (
	"context"
	"fmt"
	"time"

	"devfolio/internal/domain"
	"devfolio/internal/repository"
	"devfolio/internal/stats"

	"github.com/sirupsen/logrus"
)

// StatisticsService fetches each collection and folds it with the stats
// package. It does not cache and does not degrade; see DashboardCache.
type StatisticsService struct {
	Projects repository.RecordStore[domain.Project]
	Posts    repository.RecordStore[domain.Post]
	Users    repository.RecordStore[domain.UserActivity]
	Counters repository.CounterRepository
}

func NewStatisticsService(
	projects repository.RecordStore[domain.Project],
	posts repository.RecordStore[domain.Post],
	users repository.RecordStore[domain.UserActivity],
	counters repository.CounterRepository,
) *StatisticsService {
	return &StatisticsService{Projects: projects, Posts: posts, Users: users, Counters: counters}
}

func (s *StatisticsService) ProjectStats(ctx context.Context, now time.Time) (domain.ProjectStats, error) {
	projects, err := s.Projects.FetchAll(ctx)
	if err != nil {
		return domain.ProjectStats{}, fmt.Errorf("project statistics: %w", err)
	}
	return stats.ReduceProjects(projects, now), nil
}

func (s *StatisticsService) BoardStats(ctx context.Context, now time.Time) (domain.BoardStats, error) {
	posts, err := s.Posts.FetchAll(ctx)
	if err != nil {
		return domain.BoardStats{}, fmt.Errorf("board statistics: %w", err)
	}
	return stats.ReduceBoard(posts, now), nil
}

func (s *StatisticsService) UserStats(ctx context.Context, now time.Time) (domain.UserStats, error) {
	users, err := s.Users.FetchAll(ctx)
	if err != nil {
		return domain.UserStats{}, fmt.Errorf("user statistics: %w", err)
	}
	posts, err := s.Posts.FetchAll(ctx)
	if err != nil {
		return domain.UserStats{}, fmt.Errorf("user statistics: %w", err)
	}

	// 訪客數讀不到時以 0 計
	visitors, err := s.Counters.Get(ctx, repository.VisitorCounter)
	if err != nil {
		logrus.Warnf("[Dashboard] 無法讀取訪客計數，以 0 計算: %v", err)
		visitors = 0
	}
	return stats.ReduceUsers(users, posts, visitors, now), nil
}

func (s *StatisticsService) TechStackStats(ctx context.Context, _ time.Time) (domain.TechStackStats, error) {
	projects, err := s.Projects.FetchAll(ctx)
	if err != nil {
		return domain.TechStackStats{}, fmt.Errorf("tech stack statistics: %w", err)
	}
	return stats.ReduceTechStack(projects), nil
}

// Reducers wires the service into a DashboardCache.
func (s *StatisticsService) Reducers() Reducers {
	return Reducers{
		Projects:  s.ProjectStats,
		Board:     s.BoardStats,
		Users:     s.UserStats,
		TechStack: s.TechStackStats,
	}
}
