package service

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Incrementer is satisfied by every repository.RecordStore.
type Incrementer interface {
	Increment(ctx context.Context, id, field string, delta int) error
	Name() string
}

// CounterService bumps view/like/comment counters in the background.
// Failures are logged and never reach the caller.
type CounterService struct {
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewCounterService() *CounterService {
	return &CounterService{timeout: 5 * time.Second}
}

func (s *CounterService) Bump(target Incrementer, id, field string, delta int) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if err := target.Increment(ctx, id, field, delta); err != nil {
			logrus.Warnf("[Counter] %s/%s %s +%d 失敗 (已忽略): %v", target.Name(), id, field, delta, err)
		}
	}()
}

// Wait blocks until in-flight bumps finish.
func (s *CounterService) Wait() {
	s.wg.Wait()
}
