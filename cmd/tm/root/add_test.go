package root

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"taskmate/internal/config"
	"taskmate/internal/engine"
	"taskmate/internal/storage"
)

func useFileStore(t *testing.T, categories ...string) *storage.FileGateway {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.yaml")
	prev := cfg
	cfg = &config.Config{
		Storage:    config.StorageConfig{Driver: config.DriverFile, Path: path},
		Categories: config.CategoriesConfig{DefaultName: "Umum"},
	}
	t.Cleanup(func() { cfg = prev })

	gw := storage.NewFileGateway(path)
	var cats []storage.Category
	for i, name := range categories {
		cats = append(cats, storage.Category{Key: name, Color: engine.PickColor(i)})
	}
	if len(cats) > 0 {
		if err := gw.SaveCategories(context.Background(), cats); err != nil {
			t.Fatalf("seed categories: %v", err)
		}
	}
	return gw
}

func runAdd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newAddCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func TestAddDefaultsToFirstCategory(t *testing.T) {
	gw := useFileStore(t, "Kuliah", "Rumah")

	out, err := runAdd(t, "Essay")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out, "Essay") {
		t.Fatalf("out=%q, want the title echoed", out)
	}

	tasks, err := gw.LoadTasks(context.Background())
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("len(tasks)=%d, want 1", len(tasks))
	}
	got := tasks[0]
	if got.Title != "Essay" || got.Category != "Kuliah" {
		t.Fatalf("task=%+v, want Essay in Kuliah", got)
	}
	if got.Priority != string(engine.PriorityLow) || got.Status != string(engine.StatusTodo) || got.DueDate != nil {
		t.Fatalf("task=%+v, want Low/todo/no due date", got)
	}
}

func TestAddUsesFlags(t *testing.T) {
	gw := useFileStore(t, "Kuliah", "Rumah")

	if _, err := runAdd(t, "Dishes", "-c", "rumah", "-p", "high", "--due", "2025-06-01", "-d", "after dinner"); err != nil {
		t.Fatalf("add: %v", err)
	}
	tasks, _ := gw.LoadTasks(context.Background())
	if len(tasks) != 1 {
		t.Fatalf("len(tasks)=%d, want 1", len(tasks))
	}
	got := tasks[0]
	if got.Category != "Rumah" || got.Priority != string(engine.PriorityHigh) || got.Description != "after dinner" {
		t.Fatalf("task=%+v, want Rumah/High with description", got)
	}
	if got.DueDate == nil || *got.DueDate != "2025-06-01" {
		t.Fatalf("due=%v, want 2025-06-01", got.DueDate)
	}
}

func TestAddWithoutCategoriesFails(t *testing.T) {
	gw := useFileStore(t)

	if _, err := runAdd(t, "Essay"); !errors.Is(err, engine.ErrCategoryRequired) {
		t.Fatalf("err=%v, want ErrCategoryRequired", err)
	}
	tasks, _ := gw.LoadTasks(context.Background())
	if len(tasks) != 0 {
		t.Fatalf("len(tasks)=%d, want 0", len(tasks))
	}
}
