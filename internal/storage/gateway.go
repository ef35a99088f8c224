package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Gateway reads and writes the two persisted collections. Every save replaces
// the whole collection; the last writer wins.
type Gateway interface {
	LoadTasks(ctx context.Context) ([]Task, error)
	SaveTasks(ctx context.Context, tasks []Task) error
	LoadCategories(ctx context.Context) ([]Category, error)
	SaveCategories(ctx context.Context, categories []Category) error
	Close() error
}

// SQLiteGateway stores collections in a SQLite database.
type SQLiteGateway struct {
	db         *sql.DB
	tasks      *TaskRepo
	categories *CategoryRepo
}

func NewSQLiteGateway(db *sql.DB) *SQLiteGateway {
	return &SQLiteGateway{
		db:         db,
		tasks:      NewTaskRepo(db),
		categories: NewCategoryRepo(db),
	}
}

// OpenSQLiteGateway opens the database at path, migrates it and wraps it.
func OpenSQLiteGateway(ctx context.Context, path string) (*SQLiteGateway, error) {
	db, err := Open(ctx, path)
	if err != nil {
		return nil, err
	}
	return NewSQLiteGateway(db), nil
}

func (g *SQLiteGateway) LoadTasks(ctx context.Context) ([]Task, error) {
	return g.tasks.ListAll(ctx)
}

func (g *SQLiteGateway) SaveTasks(ctx context.Context, tasks []Task) error {
	return WithTx(ctx, g.db, func(tx *sql.Tx) error {
		return g.tasks.ReplaceAll(ctx, tx, tasks)
	})
}

func (g *SQLiteGateway) LoadCategories(ctx context.Context) ([]Category, error) {
	return g.categories.ListAll(ctx)
}

func (g *SQLiteGateway) SaveCategories(ctx context.Context, categories []Category) error {
	return WithTx(ctx, g.db, func(tx *sql.Tx) error {
		return g.categories.ReplaceAll(ctx, tx, categories)
	})
}

func (g *SQLiteGateway) Close() error {
	if err := g.db.Close(); err != nil {
		return fmt.Errorf("close sqlite: %w", err)
	}
	return nil
}
