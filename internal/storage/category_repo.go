package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type CategoryRepo struct {
	db *sql.DB
}

func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

func (r *CategoryRepo) ListAll(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, color FROM categories ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("category list: %w", err)
	}
	defer rows.Close()

	out := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.Key, &c.Color); err != nil {
			return nil, fmt.Errorf("category scan: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("category rows: %w", err)
	}
	return out, nil
}

func (r *CategoryRepo) ReplaceAll(ctx context.Context, ex execer, categories []Category) error {
	if _, err := ex.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("category clear: %w", err)
	}
	for i, c := range categories {
		_, err := ex.ExecContext(ctx, `INSERT INTO categories (key, position, color) VALUES (?, ?, ?)`, c.Key, i, c.Color)
		if err != nil {
			return fmt.Errorf("category insert %q: %w", c.Key, err)
		}
	}
	return nil
}
