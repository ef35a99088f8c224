package storage

import "time"

// Task is the persisted task record. Values are stored as given; defaults
// are applied by the engine when records are loaded.
type Task struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description,omitempty"`
	Category    string    `yaml:"category,omitempty"`
	Priority    string    `yaml:"priority,omitempty"`
	DueDate     *string   `yaml:"due_date,omitempty"`
	Status      string    `yaml:"status,omitempty"`
	CreatedAt   time.Time `yaml:"created_at,omitempty"`
}

type Category struct {
	Key   string `yaml:"key"`
	Color string `yaml:"color"`
}
