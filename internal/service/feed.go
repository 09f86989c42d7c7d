package service

import (
	"context"
	"sync"
	"time"

	"devfolio/internal/domain"
	"devfolio/internal/listing"
	"devfolio/internal/repository"

	"github.com/sirupsen/logrus"
)

// FeedController mirrors one collection through the listing pipeline.
//
// Every snapshot from the store replaces the visible set wholesale. All
// transitions are serialized under one lock and each publish carries a
// strictly increasing version, so an options change and an incoming snapshot
// can never publish out of order. Callbacks from a subscription that was
// stopped or replaced are discarded by generation.
type FeedController[T domain.Record] struct {
	store repository.RecordStore[T]
	now   func() time.Time

	mu          sync.Mutex
	status      domain.ConnectionStatus
	options     domain.FilterOptions
	snapshot    []T // last full set delivered by the store
	visible     []T
	failure     *domain.Failure
	version     uint64
	generation  uint64
	unsubscribe repository.Unsubscribe

	listeners    map[int]func(domain.FeedState[T])
	nextListener int
}

func NewFeedController[T domain.Record](store repository.RecordStore[T], now func() time.Time) *FeedController[T] {
	if now == nil {
		now = time.Now
	}
	return &FeedController[T]{
		store:     store,
		now:       now,
		status:    domain.ConnectionIdle,
		options:   domain.DefaultFilterOptions(),
		visible:   []T{},
		listeners: make(map[int]func(domain.FeedState[T])),
	}
}

// Start (re)opens the subscription with opts. A previous subscription is
// released first.
func (f *FeedController[T]) Start(ctx context.Context, opts domain.FilterOptions) {
	f.mu.Lock()
	previous := f.unsubscribe
	f.unsubscribe = nil
	f.generation++
	gen := f.generation
	f.status = domain.ConnectionConnecting
	f.options = opts.Normalized()
	f.failure = nil
	f.publishLocked()
	f.mu.Unlock()

	if previous != nil {
		previous()
	}

	logrus.Infof("[Feed] 開始訂閱 %s", f.store.Name())
	unsub := f.store.Subscribe(ctx,
		func(records []T) { f.onSnapshot(gen, records) },
		func(err error) { f.onError(gen, err) },
	)

	f.mu.Lock()
	if f.generation != gen || f.status == domain.ConnectionError {
		// stopped, restarted or failed while subscribing
		f.mu.Unlock()
		unsub()
		return
	}
	f.unsubscribe = unsub
	f.mu.Unlock()
}

// Retry restarts the subscription with the current options.
func (f *FeedController[T]) Retry(ctx context.Context) {
	f.Start(ctx, f.Options())
}

// UpdateOptions replaces the options and re-filters the held snapshot
// without a store round-trip.
func (f *FeedController[T]) UpdateOptions(opts domain.FilterOptions) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.options = opts.Normalized()
	if f.snapshot != nil {
		f.visible = listing.Apply(f.snapshot, f.options)
	}
	f.publishLocked()
}

// Stop releases the subscription. Later notifications are ignored.
func (f *FeedController[T]) Stop() {
	f.mu.Lock()
	if f.status == domain.ConnectionIdle && f.unsubscribe == nil {
		f.mu.Unlock()
		return
	}
	unsub := f.unsubscribe
	f.unsubscribe = nil
	f.generation++
	f.status = domain.ConnectionIdle
	f.publishLocked()
	f.mu.Unlock()

	if unsub != nil {
		unsub()
	}
	logrus.Infof("[Feed] 已停止訂閱 %s", f.store.Name())
}

func (f *FeedController[T]) State() domain.FeedState[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stateLocked()
}

func (f *FeedController[T]) Options() domain.FilterOptions {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.options
}

// Watch registers fn for every published state. fn runs under the
// controller lock: it must not block or call back into the controller.
func (f *FeedController[T]) Watch(fn func(domain.FeedState[T])) (cancel func()) {
	f.mu.Lock()
	id := f.nextListener
	f.nextListener++
	f.listeners[id] = fn
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		delete(f.listeners, id)
		f.mu.Unlock()
	}
}

func (f *FeedController[T]) onSnapshot(gen uint64, records []T) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.generation {
		return
	}
	if f.status != domain.ConnectionConnecting && f.status != domain.ConnectionConnected {
		return
	}
	f.status = domain.ConnectionConnected
	f.snapshot = records
	if f.snapshot == nil {
		f.snapshot = []T{}
	}
	f.visible = listing.Apply(f.snapshot, f.options)
	f.failure = nil
	f.publishLocked()
}

// onError moves to the error state. There is no automatic retry.
func (f *FeedController[T]) onError(gen uint64, err error) {
	f.mu.Lock()
	if gen != f.generation || f.status == domain.ConnectionError {
		f.mu.Unlock()
		return
	}
	unsub := f.unsubscribe
	f.unsubscribe = nil
	f.status = domain.ConnectionError
	f.failure = domain.Describe(err)
	f.publishLocked()
	f.mu.Unlock()

	logrus.Errorf("[Feed] %s 訂閱中斷: %v", f.store.Name(), err)
	if unsub != nil {
		unsub()
	}
}

func (f *FeedController[T]) stateLocked() domain.FeedState[T] {
	visible := make([]T, len(f.visible))
	copy(visible, f.visible)
	return domain.FeedState[T]{
		Version:          f.version,
		ConnectionStatus: f.status,
		CurrentOptions:   f.options,
		VisibleRecords:   visible,
		Failure:          f.failure,
		UpdatedAt:        f.now(),
	}
}

func (f *FeedController[T]) publishLocked() {
	f.version++
	state := f.stateLocked()
	for _, fn := range f.listeners {
		fn(state)
	}
}
