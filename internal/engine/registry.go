package engine

import (
	"context"
	"strings"
)

// AddCategory registers a new category and saves the registry. When the
// registry was empty and ResetTasksOnFirstCategory is set, the task list is
// saved as empty first.
func (s *Service) AddCategory(ctx context.Context, name string) (*Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrCategoryNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.loadCategories(ctx)
	if err != nil {
		return nil, err
	}
	updated, c, err := AddCategory(existing, name)
	if err != nil {
		return nil, err
	}

	if len(existing) == 0 && s.opts.ResetTasksOnFirstCategory {
		s.l.Infof(ctx, "engine.AddCategory: first category, resetting task list")
		if err := s.saveTasks(ctx, []Task{}); err != nil {
			return nil, err
		}
	}
	if err := s.saveCategories(ctx, updated); err != nil {
		return nil, err
	}
	return &c, nil
}

// RemoveCategory deletes a category no task references.
func (s *Service) RemoveCategory(ctx context.Context, name string) (*Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories, err := s.loadCategories(ctx)
	if err != nil {
		return nil, err
	}
	c, ok := FindCategory(categories, name)
	if !ok {
		return nil, ErrCategoryNotFound
	}
	tasks, err := s.loadTasks(ctx)
	if err != nil {
		return nil, err
	}
	if n := CountByCategory(tasks, c.Key); n > 0 {
		return nil, CategoryInUseError{Key: c.Key, Tasks: n}
	}

	updated := make([]Category, 0, len(categories))
	for _, existing := range categories {
		if existing.Key != c.Key {
			updated = append(updated, existing)
		}
	}
	if err := s.saveCategories(ctx, updated); err != nil {
		return nil, err
	}
	return &c, nil
}
