package domain

import "time"

// Task is one unit of work owned by exactly one user. OwnerID is set at
// creation and never changes; all access is scoped through it.
type Task struct {
	ID          string
	OwnerID     string
	Title       string
	Description string     // optional, empty when unset
	DueDate     *time.Time // optional
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskChange carries the replaceable fields for a full task update. The
// completed flag is deliberately absent; completion is its own one-way
// transition.
type TaskChange struct {
	Title       string
	Description string
	DueDate     *time.Time
}
