package engine

import (
	"errors"
	"fmt"
)

// ValidationError reports rejected user input. Nothing is mutated when one is
// returned. Values are comparable, so errors.Is works against the sentinels.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

var (
	ErrTitleRequired        = ValidationError{Field: "title", Message: "task title is required"}
	ErrCategoryRequired     = ValidationError{Field: "category", Message: "select a category first"}
	ErrUnknownCategory      = ValidationError{Field: "category", Message: "category does not exist"}
	ErrInvalidDueDate       = ValidationError{Field: "due_date", Message: "due date must use the YYYY-MM-DD format"}
	ErrInvalidPriority      = ValidationError{Field: "priority", Message: "priority must be Low, Medium or High"}
	ErrInvalidStatus        = ValidationError{Field: "status", Message: "status must be todo, pending or done"}
	ErrCategoryNameRequired = ValidationError{Field: "category", Message: "category name must not be empty"}
	ErrDuplicateCategory    = ValidationError{Field: "category", Message: "a category with that name already exists"}
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// PersistenceError wraps a storage failure. The durable state after one is
// unspecified: the write may or may not have landed.
type PersistenceError struct {
	Op  string
	Err error
}

func (e PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e PersistenceError) Unwrap() error { return e.Err }

// AmbiguousIDError is returned when an id prefix matches more than one task.
type AmbiguousIDError struct {
	Prefix  string
	Matches int
}

func (e AmbiguousIDError) Error() string {
	return fmt.Sprintf("id prefix %q matches %d tasks", e.Prefix, e.Matches)
}

// CategoryInUseError blocks removing a category that tasks still reference.
type CategoryInUseError struct {
	Key   string
	Tasks int
}

func (e CategoryInUseError) Error() string {
	return fmt.Sprintf("category %q is used by %d task(s)", e.Key, e.Tasks)
}
