package engine

import (
	"strings"

	"taskmate/internal/storage"
)

// Normalize converts persisted records into Tasks, applying every default
// exactly once. fallbackCategory labels records without a category.
func Normalize(records []storage.Task, fallbackCategory string) []Task {
	out := make([]Task, 0, len(records))
	for _, r := range records {
		out = append(out, normalizeRecord(r, fallbackCategory))
	}
	return out
}

func normalizeRecord(r storage.Task, fallbackCategory string) Task {
	priority, err := ParsePriority(r.Priority)
	if err != nil {
		priority = DefaultPriority
	}
	status, err := ParseStatus(r.Status)
	if err != nil {
		status = DefaultStatus
	}
	category := strings.TrimSpace(r.Category)
	if category == "" {
		category = fallbackCategory
	}
	due := ""
	if r.DueDate != nil {
		due = strings.TrimSpace(*r.DueDate)
	}
	return Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Category:    category,
		Priority:    priority,
		DueDate:     due,
		Status:      status,
		CreatedAt:   r.CreatedAt,
	}
}

func toRecords(tasks []Task) []storage.Task {
	out := make([]storage.Task, 0, len(tasks))
	for _, t := range tasks {
		var due *string
		if t.DueDate != "" {
			v := t.DueDate
			due = &v
		}
		out = append(out, storage.Task{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Category:    t.Category,
			Priority:    string(t.Priority),
			DueDate:     due,
			Status:      string(t.Status),
			CreatedAt:   t.CreatedAt,
		})
	}
	return out
}

func categoriesFromRecords(records []storage.Category) []Category {
	out := make([]Category, 0, len(records))
	for _, r := range records {
		out = append(out, Category{Key: r.Key, Color: r.Color})
	}
	return out
}

func categoryRecords(categories []Category) []storage.Category {
	out := make([]storage.Category, 0, len(categories))
	for _, c := range categories {
		out = append(out, storage.Category{Key: c.Key, Color: c.Color})
	}
	return out
}
