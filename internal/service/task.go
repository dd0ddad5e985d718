package service

import (
	"context"
	"errors"
	"strings"

	"github.com/broadleaf/taskd/internal/domain"
	"github.com/broadleaf/taskd/internal/store"
	"github.com/broadleaf/taskd/pkg/idx"
)

var (
	// ErrTaskNotFound is reported both when a task does not exist and when
	// it belongs to another user. Collapsing the two keeps one user's task
	// ids from confirming anything about another's.
	ErrTaskNotFound = errors.New("task_not_found")

	ErrTitleRequired = errors.New("title_required")
)

const (
	// DefaultListLimit caps a task listing when the caller does not ask for
	// a window.
	DefaultListLimit = 100
	maxListLimit     = 100
)

// TaskService implements owner-scoped CRUD over tasks. Every operation takes
// the current (already resolved) user; ownership is enforced at query time so
// no operation can ever touch another user's rows.
type TaskService struct {
	Store store.Store
}

// Authorize gates access to a fetched task. Tasks owned by someone else
// report ErrTaskNotFound, never a "forbidden" that would confirm existence.
func (s *TaskService) Authorize(current domain.User, task domain.Task) (domain.Task, error) {
	if task.OwnerID != current.ID {
		return domain.Task{}, ErrTaskNotFound
	}
	return task, nil
}

// Create inserts a new task owned by the current user.
func (s *TaskService) Create(
	ctx context.Context,
	current domain.User,
	change domain.TaskChange,
) (domain.Task, error) {
	if strings.TrimSpace(change.Title) == "" {
		return domain.Task{}, ErrTitleRequired
	}

	task := domain.Task{
		ID:          idx.New().String(),
		OwnerID:     current.ID,
		Title:       change.Title,
		Description: change.Description,
		DueDate:     change.DueDate,
	}

	if err := s.Store.Tasks().CreateTask(ctx, task); err != nil {
		return domain.Task{}, err
	}

	return s.Store.Tasks().GetTask(ctx, task.ID)
}

// List returns a window of the current user's tasks in creation order.
func (s *TaskService) List(
	ctx context.Context,
	current domain.User,
	skip, limit int,
) ([]domain.Task, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > maxListLimit {
		limit = DefaultListLimit
	}
	return s.Store.Tasks().ListTasksByOwner(ctx, current.ID, skip, limit)
}

// Get fetches one task and authorizes the current user against it.
func (s *TaskService) Get(
	ctx context.Context,
	current domain.User,
	taskID string,
) (domain.Task, error) {
	task, err := s.Store.Tasks().GetTask(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Task{}, ErrTaskNotFound
		}
		return domain.Task{}, err
	}
	return s.Authorize(current, task)
}

// Update replaces title/description/due date on the current user's task and
// returns the stored result. The completed flag is untouched.
func (s *TaskService) Update(
	ctx context.Context,
	current domain.User,
	taskID string,
	change domain.TaskChange,
) (domain.Task, error) {
	if strings.TrimSpace(change.Title) == "" {
		return domain.Task{}, ErrTitleRequired
	}

	if err := s.Store.Tasks().UpdateOwnedTask(ctx, current.ID, taskID, change); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Task{}, ErrTaskNotFound
		}
		return domain.Task{}, err
	}

	return s.Store.Tasks().GetOwnedTask(ctx, current.ID, taskID)
}

// Complete marks the current user's task done. The transition is one-way and
// idempotent: completing an already-completed task succeeds and changes
// nothing besides updated_at.
func (s *TaskService) Complete(
	ctx context.Context,
	current domain.User,
	taskID string,
) (domain.Task, error) {
	if err := s.Store.Tasks().CompleteOwnedTask(ctx, current.ID, taskID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Task{}, ErrTaskNotFound
		}
		return domain.Task{}, err
	}

	return s.Store.Tasks().GetOwnedTask(ctx, current.ID, taskID)
}

// Delete permanently removes the current user's task.
func (s *TaskService) Delete(ctx context.Context, current domain.User, taskID string) error {
	if err := s.Store.Tasks().DeleteOwnedTask(ctx, current.ID, taskID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	return nil
}
