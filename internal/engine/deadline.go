package engine

import "time"

type DeadlineKind int

const (
	DeadlineNone DeadlineKind = iota
	DeadlineOverdue
	DeadlineToday
	DeadlineTomorrow
	DeadlineUpcoming
)

// Deadline describes how a due date relates to today.
type Deadline struct {
	Kind     DeadlineKind
	DaysLeft int
}

// DeadlineFor classifies t's due date relative to today's calendar day in
// today's location. Dates that do not parse as real calendar days report
// DeadlineNone. Past due dates on done tasks are not overdue.
func DeadlineFor(t Task, today time.Time) Deadline {
	if !t.HasDueDate() {
		return Deadline{Kind: DeadlineNone}
	}
	loc := today.Location()
	due, err := time.ParseInLocation("2006-01-02", t.DueDate, loc)
	if err != nil {
		return Deadline{Kind: DeadlineNone}
	}
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)
	days := daysBetween(start, due)

	switch {
	case days < 0:
		if t.Status == StatusDone {
			return Deadline{Kind: DeadlineNone}
		}
		return Deadline{Kind: DeadlineOverdue, DaysLeft: days}
	case days == 0:
		return Deadline{Kind: DeadlineToday}
	case days == 1:
		return Deadline{Kind: DeadlineTomorrow, DaysLeft: 1}
	default:
		return Deadline{Kind: DeadlineUpcoming, DaysLeft: days}
	}
}

// daysBetween counts calendar days from a to b; DST shifts do not skew it.
func daysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
