package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/broadleaf/taskd/internal/domain"
	"github.com/broadleaf/taskd/internal/store"
	"github.com/broadleaf/taskd/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func insertUser(t *testing.T, st *Store, email string) domain.User {
	t.Helper()
	ctx := context.Background()

	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		FullName:     "Store Test",
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
	}
	require.NoError(t, st.Users().CreateUser(ctx, user))

	stored, err := st.Users().GetUserByEmail(ctx, email)
	require.NoError(t, err)
	return stored
}

func TestUsersRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	user := insertUser(t, st, "store@example.com")
	require.False(t, user.CreatedAt.IsZero())
	require.False(t, user.UpdatedAt.IsZero())

	byID, err := st.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Email, byID.Email)
	require.Equal(t, user.PasswordHash, byID.PasswordHash)

	_, err = st.Users().GetUserByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.Users().GetUserByEmail(ctx, "missing@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	insertUser(t, st, "dup@example.com")

	err := st.Users().CreateUser(ctx, domain.User{
		ID:           idx.New().String(),
		Email:        "dup@example.com",
		FullName:     "Duplicate",
		PasswordHash: "hash",
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestTasksNullableColumns(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	owner := insertUser(t, st, "nulls@example.com")

	// Bare task: no description, no due date.
	bare := domain.Task{ID: idx.New().String(), OwnerID: owner.ID, Title: "Bare"}
	require.NoError(t, st.Tasks().CreateTask(ctx, bare))

	got, err := st.Tasks().GetTask(ctx, bare.ID)
	require.NoError(t, err)
	require.Empty(t, got.Description)
	require.Nil(t, got.DueDate)
	require.False(t, got.Completed)

	// Fully populated task round-trips both optionals.
	due := time.Date(2026, 11, 5, 17, 30, 0, 0, time.UTC)
	full := domain.Task{
		ID:          idx.New().String(),
		OwnerID:     owner.ID,
		Title:       "Full",
		Description: "Everything set",
		DueDate:     &due,
	}
	require.NoError(t, st.Tasks().CreateTask(ctx, full))

	got, err = st.Tasks().GetTask(ctx, full.ID)
	require.NoError(t, err)
	require.Equal(t, "Everything set", got.Description)
	require.NotNil(t, got.DueDate)
	require.True(t, due.Equal(*got.DueDate))
}

func TestOwnedWritesScopeByOwner(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	owner := insertUser(t, st, "owner@example.com")
	stranger := insertUser(t, st, "stranger@example.com")

	task := domain.Task{ID: idx.New().String(), OwnerID: owner.ID, Title: "Guarded"}
	require.NoError(t, st.Tasks().CreateTask(ctx, task))

	change := domain.TaskChange{Title: "Taken over"}

	// Writes keyed to the wrong owner touch zero rows.
	require.ErrorIs(t, st.Tasks().UpdateOwnedTask(ctx, stranger.ID, task.ID, change), store.ErrNotFound)
	require.ErrorIs(t, st.Tasks().CompleteOwnedTask(ctx, stranger.ID, task.ID), store.ErrNotFound)
	require.ErrorIs(t, st.Tasks().DeleteOwnedTask(ctx, stranger.ID, task.ID), store.ErrNotFound)

	_, err := st.Tasks().GetOwnedTask(ctx, stranger.ID, task.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	// The right owner succeeds.
	require.NoError(t, st.Tasks().UpdateOwnedTask(ctx, owner.ID, task.ID, change))

	got, err := st.Tasks().GetOwnedTask(ctx, owner.ID, task.ID)
	require.NoError(t, err)
	require.Equal(t, "Taken over", got.Title)
}

func TestUpdateClearsOptionalColumns(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	owner := insertUser(t, st, "replace@example.com")

	due := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)
	task := domain.Task{
		ID:          idx.New().String(),
		OwnerID:     owner.ID,
		Title:       "Before",
		Description: "Has description",
		DueDate:     &due,
	}
	require.NoError(t, st.Tasks().CreateTask(ctx, task))

	// Replacement with empty optionals writes NULLs.
	require.NoError(t, st.Tasks().UpdateOwnedTask(ctx, owner.ID, task.ID, domain.TaskChange{
		Title: "After",
	}))

	got, err := st.Tasks().GetTask(ctx, task.ID)
	require.NoError(t, err)
	require.Equal(t, "After", got.Title)
	require.Empty(t, got.Description)
	require.Nil(t, got.DueDate)
}

func TestListTasksByOwnerWindow(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	owner := insertUser(t, st, "list@example.com")
	other := insertUser(t, st, "other@example.com")

	var ids []string
	for i := 0; i < 4; i++ {
		task := domain.Task{ID: idx.New().String(), OwnerID: owner.ID, Title: "t"}
		require.NoError(t, st.Tasks().CreateTask(ctx, task))
		ids = append(ids, task.ID)
	}
	require.NoError(t, st.Tasks().CreateTask(ctx, domain.Task{
		ID: idx.New().String(), OwnerID: other.ID, Title: "not in window",
	}))

	page, err := st.Tasks().ListTasksByOwner(ctx, owner.ID, 1, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, ids[1], page[0].ID)
	require.Equal(t, ids[2], page[1].ID)

	// An empty result is a non-nil empty slice.
	none, err := st.Tasks().ListTasksByOwner(ctx, owner.ID, 50, 10)
	require.NoError(t, err)
	require.NotNil(t, none)
	require.Empty(t, none)
}

func TestCompletedSurvivesScan(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	owner := insertUser(t, st, "done@example.com")

	task := domain.Task{ID: idx.New().String(), OwnerID: owner.ID, Title: "Flag check"}
	require.NoError(t, st.Tasks().CreateTask(ctx, task))
	require.NoError(t, st.Tasks().CompleteOwnedTask(ctx, owner.ID, task.ID))

	got, err := st.Tasks().GetTask(ctx, task.ID)
	require.NoError(t, err)
	require.True(t, got.Completed)

	listed, err := st.Tasks().ListTasksByOwner(ctx, owner.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.True(t, listed[0].Completed)
}
