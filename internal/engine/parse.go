package engine

import (
	"regexp"
	"strings"
)

// FilterAll is the selector value that matches every task.
const FilterAll = "all"

var dueDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseStatus parses user input to a Status (case-insensitive).
func ParseStatus(input string) (Status, error) {
	s := Status(strings.TrimSpace(strings.ToLower(input)))
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ParsePriority parses user input to a Priority (case-insensitive).
// Empty input yields DefaultPriority.
func ParsePriority(input string) (Priority, error) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "":
		return DefaultPriority, nil
	case "low", "l":
		return PriorityLow, nil
	case "medium", "med", "m":
		return PriorityMedium, nil
	case "high", "h":
		return PriorityHigh, nil
	default:
		return "", ErrInvalidPriority
	}
}

// ValidDueDate reports whether s has the YYYY-MM-DD shape. Only the shape is
// checked: "2025-13-40" passes.
func ValidDueDate(s string) bool {
	return dueDatePattern.MatchString(s)
}

func isAll(selector string) bool {
	s := strings.TrimSpace(selector)
	return s == "" || strings.EqualFold(s, FilterAll)
}
