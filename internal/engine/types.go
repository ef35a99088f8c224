package engine

import "time"

type Status string

const (
	StatusTodo    Status = "todo"
	StatusPending Status = "pending"
	StatusDone    Status = "done"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusPending, StatusDone:
		return true
	default:
		return false
	}
}

// DefaultStatus is assigned to new tasks and to records without a status.
const DefaultStatus Status = StatusTodo

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// DefaultPriority is used when a priority is missing or unrecognized.
const DefaultPriority Priority = PriorityLow

// Weight ranks priorities for display ordering; unknown values rank as Low.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}

// Meta is display metadata for an enum variant.
type Meta struct {
	Label string
	Color string
}

var statusMeta = map[Status]Meta{
	StatusTodo:    {Label: "To Do", Color: "#94a3b8"},
	StatusPending: {Label: "Pending", Color: "#f97316"},
	StatusDone:    {Label: "Done", Color: "#16a34a"},
}

var priorityMeta = map[Priority]Meta{
	PriorityHigh:   {Label: "High", Color: "#ef4444"},
	PriorityMedium: {Label: "Medium", Color: "#f59e0b"},
	PriorityLow:    {Label: "Low", Color: "#22c55e"},
}

// Statuses lists statuses in lifecycle order.
var Statuses = []Status{StatusTodo, StatusPending, StatusDone}

// Priorities lists priorities from highest to lowest.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Meta falls back to To Do metadata for unknown statuses.
func (s Status) Meta() Meta {
	if m, ok := statusMeta[s]; ok {
		return m
	}
	return statusMeta[DefaultStatus]
}

func (p Priority) Meta() Meta {
	if m, ok := priorityMeta[p]; ok {
		return m
	}
	return priorityMeta[DefaultPriority]
}

// Task is a normalized task: every field already carries its default.
type Task struct {
	ID          string
	Title       string
	Description string
	Category    string
	Priority    Priority
	DueDate     string // YYYY-MM-DD, empty when absent
	Status      Status
	CreatedAt   time.Time
}

func (t Task) HasDueDate() bool { return t.DueDate != "" }

type Category struct {
	Key   string
	Color string
}
