package store

import (
	"context"
	"errors"

	"github.com/broadleaf/taskd/internal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Tasks() Tasks

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login and token resolution.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error
}

type Tasks interface {
	// GetTask returns a task by id regardless of owner. Callers that act on
	// behalf of a user should prefer GetOwnedTask.
	GetTask(ctx context.Context, id string) (domain.Task, error)

	// GetOwnedTask returns the task only when it belongs to ownerID.
	// A task owned by someone else reports ErrNotFound, same as a missing
	// row, so existence never leaks across accounts.
	GetOwnedTask(ctx context.Context, ownerID, id string) (domain.Task, error)

	// ListTasksByOwner returns the owner's tasks ordered by creation,
	// windowed by offset/limit.
	ListTasksByOwner(ctx context.Context, ownerID string, offset, limit int) ([]domain.Task, error)

	// CreateTask inserts a new task (id is provided by the app via ULID).
	CreateTask(ctx context.Context, t domain.Task) error

	// UpdateOwnedTask replaces title/description/due_date on the owner's
	// task and bumps updated_at. ErrNotFound when no owned row matches.
	UpdateOwnedTask(ctx context.Context, ownerID, id string, change domain.TaskChange) error

	// CompleteOwnedTask flips completed to true on the owner's task.
	// Idempotent; completing a completed task is not an error.
	CompleteOwnedTask(ctx context.Context, ownerID, id string) error

	// DeleteOwnedTask permanently removes the owner's task.
	DeleteOwnedTask(ctx context.Context, ownerID, id string) error
}
