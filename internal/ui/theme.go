package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"taskmate/internal/engine"
)

// TaskMate theme (CLI + TUI).

const (
	IconTask    = "📝"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconCycle   = "🔄"
	IconTrash   = "🗑️"
	IconTag     = "🏷️"
	IconCal     = "📅"
	IconError   = "🧨"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

func badge(label, hex string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(hex)).Render(label)
}

func StatusText(s engine.Status) string {
	m := s.Meta()
	return badge(m.Label, m.Color)
}

func PriorityText(p engine.Priority) string {
	m := p.Meta()
	return badge(m.Label, m.Color)
}

// CategoryBadge renders key in its registry color, gray when it dangles.
func CategoryBadge(key string, categories []engine.Category) string {
	return badge("#"+key, engine.ColorOfCategory(key, categories))
}

// DeadlineText describes t's due date relative to today; empty when it has none.
func DeadlineText(t engine.Task, today time.Time) string {
	d := engine.DeadlineFor(t, today)
	switch d.Kind {
	case engine.DeadlineOverdue:
		return Bad.Render(fmt.Sprintf("%s %s (overdue %dd)", IconCal, t.DueDate, -d.DaysLeft))
	case engine.DeadlineToday:
		return Warn.Render(IconCal + " today")
	case engine.DeadlineTomorrow:
		return Warn.Render(IconCal + " tomorrow")
	case engine.DeadlineUpcoming:
		return Muted.Render(fmt.Sprintf("%s %s (%dd left)", IconCal, t.DueDate, d.DaysLeft))
	default:
		if t.HasDueDate() {
			return Muted.Render(IconCal + " " + t.DueDate)
		}
		return ""
	}
}

// TaskLine renders one task as a single line for list output.
func TaskLine(t engine.Task, categories []engine.Category, today time.Time) string {
	parts := []string{
		Muted.Render(ShortID(t.ID)),
		StatusText(t.Status),
		PriorityText(t.Priority),
		t.Title,
		CategoryBadge(t.Category, categories),
	}
	if dl := DeadlineText(t, today); dl != "" {
		parts = append(parts, dl)
	}
	return strings.Join(parts, " ")
}

// ShortID is the id prefix shown to users; commands accept any unique prefix.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
