package engine

import (
	"sort"
	"strings"
)

// Filter selects tasks for display. A zero field matches every task.
type Filter struct {
	Status   Status
	Category string
	Priority Priority
}

// NewFilter builds a Filter from selector strings; "all" or "" matches everything.
func NewFilter(status, category, priority string) (Filter, error) {
	var f Filter
	if !isAll(status) {
		s, err := ParseStatus(status)
		if err != nil {
			return Filter{}, err
		}
		f.Status = s
	}
	if !isAll(priority) {
		p, err := ParsePriority(priority)
		if err != nil {
			return Filter{}, err
		}
		f.Priority = p
	}
	if !isAll(category) {
		f.Category = strings.TrimSpace(category)
	}
	return f, nil
}

// Match reports whether t satisfies every selector. Categories compare
// ignoring case, like every other category lookup.
func (f Filter) Match(t Task) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Category != "" && !strings.EqualFold(t.Category, f.Category) {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	return true
}

// Apply returns the tasks matching f in display order. The input is not modified.
func Apply(tasks []Task, f Filter) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	SortForDisplay(out)
	return out
}

// SortForDisplay orders tasks by priority (High first), then due date
// (earliest first, undated last). The sort is stable: remaining ties keep
// collection order.
func SortForDisplay(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return displayLess(tasks[i], tasks[j])
	})
}

func displayLess(a, b Task) bool {
	wa, wb := a.Priority.Weight(), b.Priority.Weight()
	if wa != wb {
		return wa > wb
	}
	switch {
	case !a.HasDueDate() && !b.HasDueDate():
		return false
	case !a.HasDueDate():
		return false
	case !b.HasDueDate():
		return true
	}
	// YYYY-MM-DD compares chronologically as a string.
	return a.DueDate < b.DueDate
}
