package service

import (
	"context"
	"testing"
	"time"

	"github.com/broadleaf/taskd/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestResolveReturnsTokenSubject(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	tokens := newTestSigner(t)

	user := seedUser(t, st, "grace@example.com", "password123")

	claims := jwtx.NewAccessClaims(user.Email, user.FullName, "taskd-test", 30*time.Minute, time.Now().UTC())
	raw, err := tokens.Sign(claims)
	require.NoError(t, err)

	identity := &IdentityService{Store: st, Verifier: tokens}

	resolved, err := identity.Resolve(ctx, raw)
	require.NoError(t, err)
	require.Equal(t, user.ID, resolved.ID)
	require.Equal(t, user.Email, resolved.Email)
}

func TestResolveRejectsExpiredToken(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	tokens := newTestSigner(t)

	user := seedUser(t, st, "heidi@example.com", "password123")

	// Issued an hour ago with a one-minute lifetime.
	issued := time.Now().UTC().Add(-time.Hour)
	claims := jwtx.NewAccessClaims(user.Email, user.FullName, "taskd-test", time.Minute, issued)
	raw, err := tokens.Sign(claims)
	require.NoError(t, err)

	identity := &IdentityService{Store: st, Verifier: tokens}

	_, err = identity.Resolve(ctx, raw)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestResolveRejectsForeignSignature(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	tokens := newTestSigner(t)

	user := seedUser(t, st, "ivan@example.com", "password123")

	other, err := jwtx.NewHS256(jwtx.AlgHS256, []byte("some-other-secret"), "taskd-test")
	require.NoError(t, err)

	claims := jwtx.NewAccessClaims(user.Email, user.FullName, "taskd-test", 30*time.Minute, time.Now().UTC())
	raw, err := other.Sign(claims)
	require.NoError(t, err)

	identity := &IdentityService{Store: st, Verifier: tokens}

	_, err = identity.Resolve(ctx, raw)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestResolveRejectsGarbage(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	identity := &IdentityService{Store: st, Verifier: newTestSigner(t)}

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := identity.Resolve(ctx, raw)
		require.ErrorIs(t, err, ErrUnauthenticated)
	}
}

func TestResolveRejectsDeletedAccount(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	tokens := newTestSigner(t)

	// Token with a subject that has no matching account.
	claims := jwtx.NewAccessClaims("ghost@example.com", "Ghost", "taskd-test", 30*time.Minute, time.Now().UTC())
	raw, err := tokens.Sign(claims)
	require.NoError(t, err)

	identity := &IdentityService{Store: st, Verifier: tokens}

	_, err = identity.Resolve(ctx, raw)
	require.ErrorIs(t, err, ErrUnauthenticated)
}
