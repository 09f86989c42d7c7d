package api

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"devfolio/internal/domain"
	"devfolio/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type sseEvent struct {
	name string
	data string
}

func readEvent(t *testing.T, r *bufio.Reader) sseEvent {
	t.Helper()
	var ev sseEvent
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case line == "":
			if ev.name != "" {
				return ev
			}
		case strings.HasPrefix(line, "event:"):
			ev.name = strings.TrimPrefix(line, "event:")
		case strings.HasPrefix(line, "data:"):
			ev.data = strings.TrimPrefix(line, "data:")
		}
	}
}

func TestFeedStream_SessionLifecycle(t *testing.T) {
	env := newTestEnv(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	posts := []domain.Post{
		{ID: oid(1), Title: "alpha", Category: "tech", CreatedAt: base},
		{ID: oid(2), Title: "beta", Category: "life", CreatedAt: base.Add(time.Hour)},
	}
	unsubscribed := make(chan struct{})
	env.posts.On("Subscribe", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(func([]domain.Post))(posts)
		}).
		Return(repository.Unsubscribe(func() { close(unsubscribed) })).Once()

	srv := httptest.NewServer(env.router)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/feed?category=tech", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	reader := bufio.NewReader(resp.Body)

	first := readEvent(t, reader)
	require.Equal(t, "session", first.name)
	var session struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(first.data), &session))
	require.NotEmpty(t, session.ID)

	var state domain.FeedState[domain.Post]
	for state.ConnectionStatus != domain.ConnectionConnected {
		ev := readEvent(t, reader)
		require.Equal(t, "state", ev.name)
		require.NoError(t, json.Unmarshal([]byte(ev.data), &state))
	}
	require.Len(t, state.VisibleRecords, 1)
	assert.Equal(t, "alpha", state.VisibleRecords[0].Title)

	// 更換篩選條件只重新過濾
	w := env.do(http.MethodPut, "/api/v1/feed/"+session.ID+"/options", `{"category":"all","sortKey":"oldest"}`)
	require.Equal(t, http.StatusOK, w.Code)
	ev := readEvent(t, reader)
	require.NoError(t, json.Unmarshal([]byte(ev.data), &state))
	require.Len(t, state.VisibleRecords, 2)
	assert.Equal(t, "alpha", state.VisibleRecords[0].Title)

	w = env.do(http.MethodDelete, "/api/v1/feed/"+session.ID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	select {
	case <-unsubscribed:
	case <-time.After(2 * time.Second):
		t.Fatal("subscription was not released")
	}
	_, ok := env.hub.Get(session.ID)
	assert.False(t, ok)
	env.posts.AssertNumberOfCalls(t, "Subscribe", 1)
}

func TestFeed_UnknownSession(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, http.StatusNotFound, env.do(http.MethodPut, "/api/v1/feed/nope/options", `{}`).Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodPost, "/api/v1/feed/nope/retry", "").Code)
	assert.Equal(t, http.StatusNoContent, env.do(http.MethodDelete, "/api/v1/feed/nope", "").Code)
}
