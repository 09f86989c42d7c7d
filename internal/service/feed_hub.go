package service

import (
	"context"
	"sync"
	"time"

	"devfolio/internal/domain"
	"devfolio/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// PostFeed is the board feed controller.
type PostFeed = FeedController[domain.Post]

// FeedSession is one open board view.
type FeedSession struct {
	ID         string
	Controller *PostFeed

	updates     chan domain.FeedState[domain.Post]
	cancelWatch func()
	lastSent    uint64
}

// Updates yields the latest published state; intermediate states may be
// skipped when the reader is slower than the store.
func (s *FeedSession) Updates() <-chan domain.FeedState[domain.Post] {
	return s.updates
}

// Fresh reports whether state is newer than anything handed out so far and
// records it. Only the session's single reader calls it.
func (s *FeedSession) Fresh(state domain.FeedState[domain.Post]) bool {
	if state.Version <= s.lastSent {
		return false
	}
	s.lastSent = state.Version
	return true
}

// FeedHub owns every open board feed. Subscriptions live on the hub's
// context, not on the request that opened them.
type FeedHub struct {
	store repository.RecordStore[domain.Post]
	now   func() time.Time
	ctx   context.Context
	stop  context.CancelFunc

	mu       sync.Mutex
	sessions map[string]*FeedSession
}

func NewFeedHub(store repository.RecordStore[domain.Post], now func() time.Time) *FeedHub {
	ctx, cancel := context.WithCancel(context.Background())
	return &FeedHub{
		store:    store,
		now:      now,
		ctx:      ctx,
		stop:     cancel,
		sessions: make(map[string]*FeedSession),
	}
}

// Open starts a new feed session with opts.
func (h *FeedHub) Open(opts domain.FilterOptions) *FeedSession {
	session := &FeedSession{
		ID:         uuid.NewString(),
		Controller: NewFeedController(h.store, h.now),
		updates:    make(chan domain.FeedState[domain.Post], 1),
	}
	session.cancelWatch = session.Controller.Watch(func(state domain.FeedState[domain.Post]) {
		offerLatest(session.updates, state)
	})

	h.mu.Lock()
	h.sessions[session.ID] = session
	count := len(h.sessions)
	h.mu.Unlock()

	logrus.Infof("[Feed] 開啟 session %s (目前 %d 個)", session.ID, count)
	session.Controller.Start(h.ctx, opts)
	return session
}

func (h *FeedHub) Get(id string) (*FeedSession, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[id]
	return s, ok
}

// Retry re-subscribes a session after an error.
func (h *FeedHub) Retry(id string) bool {
	s, ok := h.Get(id)
	if !ok {
		return false
	}
	s.Controller.Retry(h.ctx)
	return true
}

// Close stops and forgets a session. Unknown ids are ignored.
func (h *FeedHub) Close(id string) {
	h.mu.Lock()
	s, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()
	if !ok {
		return
	}
	s.Controller.Stop()
	s.cancelWatch()
	logrus.Infof("[Feed] 關閉 session %s", id)
}

// Shutdown closes every session.
func (h *FeedHub) Shutdown() {
	h.mu.Lock()
	ids := make([]string, 0, len(h.sessions))
	for id := range h.sessions {
		ids = append(ids, id)
	}
	h.mu.Unlock()

	for _, id := range ids {
		h.Close(id)
	}
	h.stop()
}

// offerLatest replaces whatever is buffered with state.
func offerLatest[S any](ch chan S, state S) {
	for {
		select {
		case ch <- state:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
