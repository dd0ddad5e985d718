package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/broadleaf/taskd/internal/domain"
	"github.com/broadleaf/taskd/internal/store"
)

type tasksRepo struct {
	db *sql.DB
}

const taskColumns = `id, owner_id, title, description, due_date, completed, created_at, updated_at`

func scanTask(row *sql.Row) (domain.Task, error) {
	var (
		t       domain.Task
		desc    sql.NullString
		dueDate sql.NullTime
	)
	err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &desc, &dueDate,
		&t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Task{}, mapNotFound(err)
	}
	if desc.Valid {
		t.Description = desc.String
	}
	t.DueDate = mapOptionalTime(dueDate)
	return t, nil
}

func (r *tasksRepo) GetTask(ctx context.Context, id string) (domain.Task, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	return scanTask(row)
}

func (r *tasksRepo) GetOwnedTask(ctx context.Context, ownerID, id string) (domain.Task, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ? AND owner_id = ?`, id, ownerID)
	return scanTask(row)
}

func (r *tasksRepo) ListTasksByOwner(
	ctx context.Context,
	ownerID string,
	offset, limit int,
) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+taskColumns+` FROM tasks
		WHERE owner_id = ?
		ORDER BY created_at, id
		LIMIT ? OFFSET ?`,
		ownerID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		var (
			t       domain.Task
			desc    sql.NullString
			dueDate sql.NullTime
		)
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Title, &desc, &dueDate,
			&t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		if desc.Valid {
			t.Description = desc.String
		}
		t.DueDate = mapOptionalTime(dueDate)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *tasksRepo) CreateTask(ctx context.Context, t domain.Task) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, owner_id, title, description, due_date, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.OwnerID, t.Title, mapStringNull(t.Description),
		mapTimeNull(t.DueDate), t.Completed, now, now,
	)
	return mapConstraint(err)
}

func (r *tasksRepo) UpdateOwnedTask(
	ctx context.Context,
	ownerID, id string,
	change domain.TaskChange,
) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, due_date = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?`,
		change.Title, mapStringNull(change.Description), mapTimeNull(change.DueDate),
		time.Now().UTC(), id, ownerID,
	)
	return requireRow(res, err)
}

func (r *tasksRepo) CompleteOwnedTask(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET completed = 1, updated_at = ?
		WHERE id = ? AND owner_id = ?`,
		time.Now().UTC(), id, ownerID,
	)
	return requireRow(res, err)
}

func (r *tasksRepo) DeleteOwnedTask(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = ? AND owner_id = ?`, id, ownerID)
	return requireRow(res, err)
}

// requireRow maps zero-row writes to ErrNotFound. Owner scoping lives in the
// WHERE clause, so a miss means either "no such task" or "not yours" and the
// caller cannot tell which.
func requireRow(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func mapStringNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
