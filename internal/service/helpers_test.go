package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/broadleaf/taskd/internal/domain"
	"github.com/broadleaf/taskd/internal/store/drivers/sqlite"
	"github.com/broadleaf/taskd/pkg/cryptox"
	"github.com/broadleaf/taskd/pkg/idx"
	"github.com/broadleaf/taskd/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "taskd-service-test-*")
	if err != nil {
		os.Exit(1)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()

	_ = os.RemoveAll(dir)
	os.Exit(code)
}

// newTestStore opens an in-memory sqlite store with migrations applied.
func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTestSigner(t *testing.T) *jwtx.HS256 {
	t.Helper()

	tokens, err := jwtx.NewHS256(jwtx.AlgHS256, []byte("test-secret-please-ignore"), "taskd-test")
	require.NoError(t, err)
	return tokens
}

// seedUser inserts a user with a hashed password directly through the store.
func seedUser(t *testing.T, st *sqlite.Store, email, password string) domain.User {
	t.Helper()
	ctx := context.Background()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		FullName:     "Test User",
		PasswordHash: hash,
	}
	require.NoError(t, st.Users().CreateUser(ctx, user))

	stored, err := st.Users().GetUserByEmail(ctx, email)
	require.NoError(t, err)
	return stored
}
