package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/broadleaf/taskd/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "taskd-test"

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestHS256(t *testing.T) *jwtx.HS256 {
	t.Helper()
	h, err := jwtx.NewHS256(jwtx.AlgHS256, testSecret, testIssuer)
	require.NoError(t, err)
	return h
}

func TestNewHS256_Validation(t *testing.T) {
	t.Run("rejects unsupported algorithm", func(t *testing.T) {
		_, err := jwtx.NewHS256("RS256", testSecret, testIssuer)
		require.ErrorIs(t, err, jwtx.ErrAlgMismatch)
	})

	t.Run("rejects empty secret", func(t *testing.T) {
		_, err := jwtx.NewHS256(jwtx.AlgHS256, nil, testIssuer)
		require.Error(t, err)
	})
}

func TestSignVerifyRoundTrip(t *testing.T) {
	h := newTestHS256(t)

	claims := jwtx.NewAccessClaims("a@x.com", "Alice", testIssuer, time.Hour, time.Now().UTC())
	token, err := h.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := h.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", got.Subject)
	require.Equal(t, "Alice", got.FullName)
	require.Equal(t, testIssuer, got.Issuer)
	require.NotEmpty(t, got.ID, "jti should be populated")
}

func TestVerify_Expired(t *testing.T) {
	h := newTestHS256(t)

	// Issue a token whose lifetime already elapsed.
	issued := time.Now().UTC().Add(-2 * time.Hour)
	claims := jwtx.NewAccessClaims("a@x.com", "Alice", testIssuer, time.Hour, issued)

	token, err := h.Sign(claims)
	require.NoError(t, err)

	_, err = h.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestVerify_Tampered(t *testing.T) {
	h := newTestHS256(t)

	claims := jwtx.NewAccessClaims("a@x.com", "Alice", testIssuer, time.Hour, time.Now().UTC())
	token, err := h.Sign(claims)
	require.NoError(t, err)

	segments := strings.Split(token, ".")
	require.Len(t, segments, 3)

	// Flipping a character in any segment must fail verification.
	for i, seg := range segments {
		mutated := make([]string, 3)
		copy(mutated, segments)

		flip := byte('A')
		if seg[0] == 'A' {
			flip = 'B'
		}
		mutated[i] = string(flip) + seg[1:]

		_, err := h.Verify(strings.Join(mutated, "."))
		require.Error(t, err, "segment %d", i)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	h := newTestHS256(t)

	other, err := jwtx.NewHS256(jwtx.AlgHS256, []byte("another-secret-entirely-32-bytes"), testIssuer)
	require.NoError(t, err)

	claims := jwtx.NewAccessClaims("a@x.com", "Alice", testIssuer, time.Hour, time.Now().UTC())
	token, err := other.Sign(claims)
	require.NoError(t, err)

	_, err = h.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestVerify_IssuerMismatch(t *testing.T) {
	h := newTestHS256(t)

	foreign, err := jwtx.NewHS256(jwtx.AlgHS256, testSecret, "someone-else")
	require.NoError(t, err)

	claims := jwtx.NewAccessClaims("a@x.com", "Alice", "someone-else", time.Hour, time.Now().UTC())
	token, err := foreign.Sign(claims)
	require.NoError(t, err)

	_, err = h.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestVerify_Malformed(t *testing.T) {
	h := newTestHS256(t)

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := h.Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrMalformed, "input %q", raw)
	}
}
