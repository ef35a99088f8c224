package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileFormatVersion = 1

// Document is the on-disk layout used by FileGateway and `tm export`.
type Document struct {
	Version    int        `yaml:"version"`
	Tasks      []Task     `yaml:"tasks"`
	Categories []Category `yaml:"categories"`
}

// FileGateway keeps both collections in a single YAML file. A missing file
// reads as empty collections.
type FileGateway struct {
	path string
}

func NewFileGateway(path string) *FileGateway {
	return &FileGateway{path: path}
}

func (g *FileGateway) LoadTasks(ctx context.Context) ([]Task, error) {
	doc, err := g.read(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Tasks, nil
}

func (g *FileGateway) SaveTasks(ctx context.Context, tasks []Task) error {
	doc, err := g.read(ctx)
	if err != nil {
		return err
	}
	doc.Tasks = tasks
	return g.write(ctx, doc)
}

func (g *FileGateway) LoadCategories(ctx context.Context) ([]Category, error) {
	doc, err := g.read(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Categories, nil
}

func (g *FileGateway) SaveCategories(ctx context.Context, categories []Category) error {
	doc, err := g.read(ctx)
	if err != nil {
		return err
	}
	doc.Categories = categories
	return g.write(ctx, doc)
}

func (g *FileGateway) Close() error { return nil }

func (g *FileGateway) read(ctx context.Context) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(g.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewDocument(), nil
		}
		return nil, fmt.Errorf("read %s: %w", g.path, err)
	}
	doc := NewDocument()
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", g.path, err)
	}
	if doc.Tasks == nil {
		doc.Tasks = []Task{}
	}
	if doc.Categories == nil {
		doc.Categories = []Category{}
	}
	return doc, nil
}

// write replaces the file through a temp file + rename so readers never see a partial document.
func (g *FileGateway) write(ctx context.Context, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc.Version = fileFormatVersion
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", g.path, err)
	}

	dir := filepath.Dir(g.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(g.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, g.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", tmpName, err)
	}
	return nil
}

// NewDocument returns an empty document at the current format version.
func NewDocument() *Document {
	return &Document{
		Version:    fileFormatVersion,
		Tasks:      []Task{},
		Categories: []Category{},
	}
}

// Snapshot loads both collections from any Gateway into a Document.
func Snapshot(ctx context.Context, g Gateway) (*Document, error) {
	tasks, err := g.LoadTasks(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := g.LoadCategories(ctx)
	if err != nil {
		return nil, err
	}
	doc := NewDocument()
	doc.Tasks = append(doc.Tasks, tasks...)
	doc.Categories = append(doc.Categories, categories...)
	return doc, nil
}
