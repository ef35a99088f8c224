package engine

import (
	"context"
	"strings"
)

type CreateTaskInput struct {
	Title       string
	Description string
	Category    string
	Priority    string
	DueDate     string
}

// CreateTask validates in, then prepends the new task to the collection and
// saves it. Validation failures leave storage untouched.
func (s *Service) CreateTask(ctx context.Context, in CreateTaskInput) (*Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	categoryKey := strings.TrimSpace(in.Category)
	if categoryKey == "" {
		return nil, ErrCategoryRequired
	}
	due := strings.TrimSpace(in.DueDate)
	if due != "" && !ValidDueDate(due) {
		return nil, ErrInvalidDueDate
	}
	priority, err := ParsePriority(in.Priority)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	categories, err := s.loadCategories(ctx)
	if err != nil {
		return nil, err
	}
	category, ok := FindCategory(categories, categoryKey)
	if !ok {
		return nil, ErrUnknownCategory
	}

	existing, err := s.loadTasks(ctx)
	if err != nil {
		return nil, err
	}

	t := Task{
		ID:          s.opts.NewID(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Category:    category.Key,
		Priority:    priority,
		DueDate:     due,
		Status:      DefaultStatus,
		CreatedAt:   s.opts.Now().UTC(),
	}

	updated := make([]Task, 0, len(existing)+1)
	updated = append(updated, t)
	updated = append(updated, existing...)
	if err := s.saveTasks(ctx, updated); err != nil {
		return nil, err
	}

	s.l.Infof(ctx, "engine.CreateTask: created %s in %q", t.ID, t.Category)
	return &t, nil
}
