package service

import (
	"context"
	"time"

	"devfolio/internal/domain"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DashboardRefresher is implemented by DashboardCache.
type DashboardRefresher interface {
	Get(ctx context.Context, forceRefresh bool) (*domain.DashboardSnapshot, error)
}

// CronService keeps the dashboard warm so most requests hit the cache.
type CronService struct {
	Cron      *cron.Cron
	Dashboard DashboardRefresher
	EntryIDs  map[string]cron.EntryID
	timeout   time.Duration
}

func NewCronService(dashboard DashboardRefresher) *CronService {
	return &CronService{
		Cron:      cron.New(),
		Dashboard: dashboard,
		EntryIDs:  make(map[string]cron.EntryID),
		timeout:   2 * time.Minute,
	}
}

// Start registers the warm-up job; an empty schedule disables it.
func (s *CronService) Start(schedule string) error {
	if schedule != "" {
		if err := s.registerJob("dashboard-refresh", schedule, s.RefreshDashboard); err != nil {
			return err
		}
	}
	s.Cron.Start()
	return nil
}

// Stop waits for a running job to finish.
func (s *CronService) Stop() {
	<-s.Cron.Stop().Done()
}

func (s *CronService) registerJob(name, schedule string, cmd func()) error {
	if id, ok := s.EntryIDs[name]; ok {
		s.Cron.Remove(id)
	}
	id, err := s.Cron.AddFunc(schedule, cmd)
	if err != nil {
		logrus.Errorf("[Cron] 排程註冊失敗 [%s]: %v", name, err)
		return err
	}
	s.EntryIDs[name] = id
	logrus.Infof("[Cron] 已排程自動任務 [%s]: %s", name, schedule)
	return nil
}

// RefreshDashboard forces a recomputation of the cached snapshot.
func (s *CronService) RefreshDashboard() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	snapshot, err := s.Dashboard.Get(ctx, true)
	if err != nil {
		logrus.Errorf("[Cron] 儀表板預熱失敗: %v", err)
		return
	}
	logrus.Infof("[Cron] 儀表板預熱完成 (degraded: %v, 耗時: %s)", snapshot.Degraded, time.Since(start))
}
