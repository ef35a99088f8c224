package engine

import "strings"

// ResolveID finds the task whose id equals ref or, failing that, the single
// task whose id starts with ref.
func ResolveID(tasks []Task, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, ErrTaskNotFound
	}
	match := -1
	matches := 0
	for i := range tasks {
		if tasks[i].ID == ref {
			return i, nil
		}
		if strings.HasPrefix(tasks[i].ID, ref) {
			match = i
			matches++
		}
	}
	switch matches {
	case 0:
		return -1, ErrTaskNotFound
	case 1:
		return match, nil
	default:
		return -1, AmbiguousIDError{Prefix: ref, Matches: matches}
	}
}
