package service

import (
	"testing"
	"time"

	"devfolio/internal/domain"

	"github.com/stretchr/testify/require"
)

func nextState(t *testing.T, s *FeedSession) domain.FeedState[domain.Post] {
	t.Helper()
	select {
	case st := <-s.Updates():
		return st
	case <-time.After(time.Second):
		t.Fatal("no feed update")
		return domain.FeedState[domain.Post]{}
	}
}

func TestFeedHub_SessionLifecycle(t *testing.T) {
	store := &fakeFeedStore{}
	hub := NewFeedHub(store, newFakeClock().Now)
	defer hub.Shutdown()

	session := hub.Open(domain.FilterOptions{Category: "frontend"})
	require.NotEmpty(t, session.ID)

	got, ok := hub.Get(session.ID)
	require.True(t, ok)
	require.Same(t, session, got)

	require.Equal(t, domain.ConnectionConnecting, nextState(t, session).ConnectionStatus)

	store.push(feedPosts())
	state := nextState(t, session)
	require.Equal(t, domain.ConnectionConnected, state.ConnectionStatus)
	require.Len(t, state.VisibleRecords, 2)
	require.True(t, session.Fresh(state))
	require.False(t, session.Fresh(state))

	hub.Close(session.ID)
	hub.Close(session.ID)
	_, ok = hub.Get(session.ID)
	require.False(t, ok)
	_, unsubs := store.counts()
	require.Equal(t, 1, unsubs)
	require.False(t, hub.Retry(session.ID))
}

func TestFeedHub_SlowReaderSeesLatestState(t *testing.T) {
	store := &fakeFeedStore{}
	hub := NewFeedHub(store, newFakeClock().Now)
	defer hub.Shutdown()

	session := hub.Open(domain.DefaultFilterOptions())
	for i := 0; i < 5; i++ {
		store.push(feedPosts()[:i%3+1])
	}
	session.Controller.UpdateOptions(domain.FilterOptions{PageSize: 1})

	state := nextState(t, session)
	require.Equal(t, session.Controller.State().Version, state.Version)
	require.Len(t, state.VisibleRecords, 1)
}
