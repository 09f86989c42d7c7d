package service

import (
	"testing"
	"time"

	"devfolio/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestAuthService_TokenRoundTrip(t *testing.T) {
	clock := newFakeClock()
	auth := NewAuthService(nil, "test-secret", time.Hour)
	auth.now = clock.Now

	actor := domain.Actor{ID: oid(1).Hex(), Username: "admin", Role: domain.RoleAdmin}
	token, err := auth.IssueToken(actor)
	require.NoError(t, err)

	got, err := auth.Authenticate(token)
	require.NoError(t, err)
	require.Equal(t, actor, *got)

	clock.Advance(2 * time.Hour)
	_, err = auth.Authenticate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_RejectsForeignSignature(t *testing.T) {
	issuer := NewAuthService(nil, "other-secret", time.Hour)
	token, err := issuer.IssueToken(domain.Actor{ID: "x", Role: domain.RoleAdmin})
	require.NoError(t, err)

	verifier := NewAuthService(nil, "test-secret", time.Hour)
	_, err = verifier.Authenticate(token)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = verifier.Authenticate("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
