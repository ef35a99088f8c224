package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type TaskRepo struct {
	db *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *TaskRepo) ListAll(ctx context.Context) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, category, priority, due_date, status, created_at
		FROM tasks
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("task list: %w", err)
	}
	defer rows.Close()

	out := []Task{}
	for rows.Next() {
		t, err := scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task list rows: %w", err)
	}
	return out, nil
}

// ReplaceAll swaps the stored collection for tasks, keeping their order.
func (r *TaskRepo) ReplaceAll(ctx context.Context, ex execer, tasks []Task) error {
	if _, err := ex.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("task clear: %w", err)
	}
	for i, t := range tasks {
		createdAt := t.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		_, err := ex.ExecContext(ctx, `
			INSERT INTO tasks (id, position, title, description, category, priority, due_date, status, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, t.ID, i, t.Title, t.Description, t.Category, t.Priority, t.DueDate, t.Status, createdAt)
		if err != nil {
			return fmt.Errorf("task insert %s: %w", t.ID, err)
		}
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTaskRow(row scanner) (*Task, error) {
	var (
		id          string
		title       string
		description sql.NullString
		category    sql.NullString
		priority    sql.NullString
		dueDate     sql.NullString
		status      sql.NullString
		createdAt   sql.NullTime
	)

	if err := row.Scan(&id, &title, &description, &category, &priority, &dueDate, &status, &createdAt); err != nil {
		return nil, fmt.Errorf("task scan: %w", err)
	}

	var due *string
	if dueDate.Valid {
		v := dueDate.String
		due = &v
	}
	t := &Task{
		ID:          id,
		Title:       title,
		Description: description.String,
		Category:    category.String,
		Priority:    priority.String,
		DueDate:     due,
		Status:      status.String,
	}
	if createdAt.Valid {
		t.CreatedAt = createdAt.Time
	}
	return t, nil
}
