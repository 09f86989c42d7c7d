package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"devfolio/internal/domain"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want domain.ErrorKind
	}{
		{"unauthorized", mongo.CommandError{Code: 13, Message: "not authorized on site"}, domain.KindPermission},
		{"auth failed", fmt.Errorf("find: %w", mongo.CommandError{Code: 18}), domain.KindPermission},
		{"deadline", context.DeadlineExceeded, domain.KindConnectivity},
		{"server selection", topology.ServerSelectionError{Wrapped: errors.New("no reachable servers")}, domain.KindConnectivity},
		{"disconnected", mongo.ErrClientDisconnected, domain.KindConnectivity},
		{"other command", mongo.CommandError{Code: 2, Message: "bad value"}, domain.KindUnknown},
		{"plain", errors.New("boom"), domain.KindUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Classify(tc.err))
		})
	}
}

func TestWrapErr(t *testing.T) {
	require.NoError(t, wrapErr("fetchAll", "posts", nil))

	err := wrapErr("fetchAll", "posts", mongo.CommandError{Code: 13})
	require.ErrorIs(t, err, domain.ErrPermission)
	require.NotErrorIs(t, err, domain.ErrConnectivity)

	var se *domain.StoreError
	require.ErrorAs(t, err, &se)
	require.Equal(t, "posts", se.Collection)
	require.Equal(t, "fetchAll", se.Op)

	// already classified errors pass through untouched
	require.Same(t, se, wrapErr("subscribe", "other", err))
}
