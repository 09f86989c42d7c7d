package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"devfolio/internal/domain"
	"devfolio/internal/stats"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// DashboardTTL is how long a snapshot is served without recomputation.
// Record writes do not invalidate the cache.
const DashboardTTL = 5 * time.Minute

// Reducers produce one dashboard slice each. The project reducer's error
// fails the whole refresh; the others degrade to zero-value slices.
type Reducers struct {
	Projects  func(ctx context.Context, now time.Time) (domain.ProjectStats, error)
	Board     func(ctx context.Context, now time.Time) (domain.BoardStats, error)
	Users     func(ctx context.Context, now time.Time) (domain.UserStats, error)
	TechStack func(ctx context.Context, now time.Time) (domain.TechStackStats, error)
}

// DegradedSliceError records a slice that was replaced by its zero value.
type DegradedSliceError struct {
	Slice string
	Err   error
}

func (e *DegradedSliceError) Error() string {
	return fmt.Sprintf("dashboard slice %s degraded: %v", e.Slice, e.Err)
}

func (e *DegradedSliceError) Unwrap() error { return e.Err }

type cacheEntry struct {
	value     *domain.DashboardSnapshot
	expiresAt time.Time
	seq       uint64
}

// single-flight keys; forced refreshes only share a flight with other
// forced refreshes
const (
	flightRefresh = "dashboard"
	flightForced  = "dashboard:force"
)

// DashboardCache holds one aggregated snapshot. Concurrent misses share a
// single refresh.
type DashboardCache struct {
	reducers Reducers
	now      func() time.Time
	ttl      time.Duration

	mu      sync.Mutex
	entry   cacheEntry
	lastSeq uint64
	flight  singleflight.Group
}

func NewDashboardCache(reducers Reducers, now func() time.Time) *DashboardCache {
	if now == nil {
		now = time.Now
	}
	return &DashboardCache{
		reducers: reducers,
		now:      now,
		ttl:      DashboardTTL,
	}
}

// Get returns the cached snapshot while it is fresh, otherwise recomputes.
// The fresh path performs no I/O.
func (c *DashboardCache) Get(ctx context.Context, forceRefresh bool) (*domain.DashboardSnapshot, error) {
	if !forceRefresh {
		c.mu.Lock()
		entry := c.entry
		c.mu.Unlock()
		if entry.value != nil && c.now().Before(entry.expiresAt) {
			return entry.value, nil
		}
	}

	// The refresh outlives a caller that goes away; its result still lands in the cache.
	refreshCtx := context.WithoutCancel(ctx)
	key := flightRefresh
	if forceRefresh {
		key = flightForced
	}
	ch := c.flight.DoChan(key, func() (any, error) {
		return c.refresh(refreshCtx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.DashboardSnapshot), nil
	}
}

// Last returns the most recent snapshot even when expired, or nil.
func (c *DashboardCache) Last() *domain.DashboardSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entry.value
}

func (c *DashboardCache) refresh(ctx context.Context) (*domain.DashboardSnapshot, error) {
	c.mu.Lock()
	c.lastSeq++
	seq := c.lastSeq
	c.mu.Unlock()

	start := c.now()
	snapshot := &domain.DashboardSnapshot{LastUpdated: start}

	var (
		mu       sync.Mutex
		degraded []*DegradedSliceError
	)
	degrade := func(slice string, err error) {
		mu.Lock()
		defer mu.Unlock()
		degraded = append(degraded, &DegradedSliceError{Slice: slice, Err: err})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		projects, err := c.reducers.Projects(gctx, start)
		if err != nil {
			return err
		}
		snapshot.Projects = projects
		return nil
	})
	g.Go(func() error {
		board, err := c.reducers.Board(gctx, start)
		if err != nil {
			degrade(domain.SliceBoard, err)
			board = stats.EmptyBoard(start)
		}
		snapshot.Board = board
		return nil
	})
	g.Go(func() error {
		users, err := c.reducers.Users(gctx, start)
		if err != nil {
			degrade(domain.SliceUsers, err)
			users = stats.EmptyUsers(start)
		}
		snapshot.Users = users
		return nil
	})
	g.Go(func() error {
		tech, err := c.reducers.TechStack(gctx, start)
		if err != nil {
			degrade(domain.SliceTechStack, err)
			tech = stats.EmptyTechStack()
		}
		snapshot.TechStack = tech
		return nil
	})

	if err := g.Wait(); err != nil {
		logrus.Errorf("[Dashboard] 儀表板更新失敗: %v", err)
		return nil, err
	}

	for _, dse := range degraded {
		snapshot.Degraded = append(snapshot.Degraded, dse.Slice)
		logrus.Warnf("[Dashboard] %v", dse)
	}
	slices.Sort(snapshot.Degraded)

	c.mu.Lock()
	// an older refresh finishing late must not replace a newer snapshot
	if seq > c.entry.seq {
		c.entry = cacheEntry{value: snapshot, expiresAt: start.Add(c.ttl), seq: seq}
	}
	c.mu.Unlock()

	logrus.Infof("[Dashboard] 快照已更新 (degraded: %v, 耗時: %s)", snapshot.Degraded, c.now().Sub(start))
	return snapshot, nil
}
