package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskmate/internal/engine"
	"taskmate/internal/ui"
)

type mode int

const (
	modeBrowse mode = iota
	modeConfirmDelete
	modeAdd
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	tasks      []engine.Task
	categories []engine.Category

	filter   engine.Filter
	selected int

	mode    mode
	pending *engine.Task
	input   textinput.Model

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	board *engine.Board
	err   error
}

type toggledMsg struct {
	res *engine.ToggleResult
	err error
}

type deletedMsg struct {
	task    engine.Task
	deleted bool
	err     error
}

type createdMsg struct {
	task *engine.Task
	err  error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	ti := textinput.New()
	ti.Placeholder = "New task title"
	ti.CharLimit = 120
	ti.Prompt = ui.IconPlus + " "
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		input:   ti,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		b, err := m.svc.Load(m.ctx)
		return loadedMsg{board: b, err: err}
	}
}

func (m boardModel) toggleCmd(id string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.ToggleTask(m.ctx, id)
		return toggledMsg{res: res, err: err}
	}
}

// deleteCmd runs after the board's own y/n prompt, so the engine is told the
// user already confirmed.
func (m boardModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		t, deleted, err := m.svc.DeleteTask(m.ctx, id, engine.Confirmed)
		return deletedMsg{task: t, deleted: deleted, err: err}
	}
}

func (m boardModel) createCmd(in engine.CreateTaskInput) tea.Cmd {
	return func() tea.Msg {
		t, err := m.svc.CreateTask(m.ctx, in)
		return createdMsg{task: t, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.tasks = msg.board.Tasks
		m.categories = msg.board.Categories
		m.clampSelection()
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case toggledMsg:
		if msg.err != nil {
			m.lastLog = "Toggle failed: " + msg.err.Error()
			return m, m.loadCmd()
		}
		m.lastLog = fmt.Sprintf("%s: %s → %s", msg.res.Task.Title, msg.res.From.Meta().Label, msg.res.Task.Status.Meta().Label)
		return m, m.loadCmd()
	case deletedMsg:
		if msg.err != nil {
			m.lastLog = "Delete failed: " + msg.err.Error()
			return m, m.loadCmd()
		}
		m.lastLog = fmt.Sprintf("Deleted %q.", msg.task.Title)
		return m, m.loadCmd()
	case createdMsg:
		if msg.err != nil {
			m.lastLog = "Add failed: " + msg.err.Error()
			return m, m.loadCmd()
		}
		m.lastLog = fmt.Sprintf("Added %q to %s.", msg.task.Title, msg.task.Category)
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch m.mode {
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		case modeAdd:
			return m.updateAdd(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m boardModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r":
		m.loading = true
		m.lastLog = "Refreshing…"
		return m, m.loadCmd()
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down", "j":
		if m.selected < len(m.visible())-1 {
			m.selected++
		}
		return m, nil
	case "enter", " ":
		t := m.current()
		if t == nil {
			return m, nil
		}
		return m, m.toggleCmd(t.ID)
	case "d", "x":
		t := m.current()
		if t == nil {
			return m, nil
		}
		m.pending = t
		m.mode = modeConfirmDelete
		return m, nil
	case "s":
		m.filter.Status = nextStatusFilter(m.filter.Status)
		m.clampSelection()
		return m, nil
	case "c":
		m.filter.Category = nextCategoryFilter(m.filter.Category, m.categories)
		m.clampSelection()
		return m, nil
	case "p":
		m.filter.Priority = nextPriorityFilter(m.filter.Priority)
		m.clampSelection()
		return m, nil
	case "a":
		if len(m.categories) == 0 {
			m.lastLog = "Add a category first: tm category add <name>"
			return m, nil
		}
		m.mode = modeAdd
		m.input.SetValue("")
		return m, m.input.Focus()
	}
	return m, nil
}

func (m boardModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	target := m.pending
	switch msg.String() {
	case "y", "Y":
		m.mode = modeBrowse
		m.pending = nil
		if target == nil {
			return m, nil
		}
		return m, m.deleteCmd(target.ID)
	case "n", "N", "esc", "q":
		m.mode = modeBrowse
		m.pending = nil
		m.lastLog = "Delete cancelled."
		return m, nil
	}
	return m, nil
}

func (m boardModel) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.input.Blur()
		m.lastLog = "Add cancelled."
		return m, nil
	case "enter":
		title := strings.TrimSpace(m.input.Value())
		m.mode = modeBrowse
		m.input.Blur()
		if title == "" {
			m.lastLog = "Add cancelled: empty title."
			return m, nil
		}
		return m, m.createCmd(engine.CreateTaskInput{
			Title:    title,
			Category: m.addCategory(),
			Priority: string(m.addPriority()),
		})
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// addCategory is the active category filter, or the first registered category.
func (m boardModel) addCategory() string {
	if m.filter.Category != "" {
		return m.filter.Category
	}
	if len(m.categories) > 0 {
		return m.categories[0].Key
	}
	return ""
}

func (m boardModel) addPriority() engine.Priority {
	if m.filter.Priority != "" {
		return m.filter.Priority
	}
	return engine.DefaultPriority
}

func (m boardModel) visible() []engine.Task {
	return engine.Apply(m.tasks, m.filter)
}

func (m boardModel) current() *engine.Task {
	v := m.visible()
	if m.selected < 0 || m.selected >= len(v) {
		return nil
	}
	t := v[m.selected]
	return &t
}

func (m *boardModel) clampSelection() {
	n := len(m.visible())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func nextStatusFilter(cur engine.Status) engine.Status {
	if cur == "" {
		return engine.Statuses[0]
	}
	for i, s := range engine.Statuses {
		if s == cur && i+1 < len(engine.Statuses) {
			return engine.Statuses[i+1]
		}
	}
	return ""
}

func nextPriorityFilter(cur engine.Priority) engine.Priority {
	if cur == "" {
		return engine.Priorities[0]
	}
	for i, p := range engine.Priorities {
		if p == cur && i+1 < len(engine.Priorities) {
			return engine.Priorities[i+1]
		}
	}
	return ""
}

// nextCategoryFilter cycles all → each registered category → all.
func nextCategoryFilter(cur string, categories []engine.Category) string {
	if len(categories) == 0 {
		return ""
	}
	if cur == "" {
		return categories[0].Key
	}
	for i, c := range categories {
		if c.Key == cur && i+1 < len(categories) {
			return categories[i+1].Key
		}
	}
	return ""
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress r to retry or q to quit.\n"
	}

	leftW := 28
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 20 {
			leftW = 20
		}
	}

	sidebar := lipgloss.NewStyle().Width(leftW).Render(m.renderSidebar())
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", m.renderMain())
	return m.renderHeader() + "\n\n" + body + "\n" + m.renderFooter()
}

func (m boardModel) renderHeader() string {
	done := len(engine.Apply(m.tasks, engine.Filter{Status: engine.StatusDone}))
	return ui.Heading(ui.IconTask, "TaskMate") + ui.Muted.Render(fmt.Sprintf(" | %d tasks | %d done | %d categories", len(m.tasks), done, len(m.categories)))
}

func (m boardModel) renderSidebar() string {
	lines := []string{ui.PanelTitle.Render("Filters")}
	lines = append(lines, "status:   "+filterLabel(string(m.filter.Status)))
	lines = append(lines, "category: "+filterLabel(m.filter.Category))
	lines = append(lines, "priority: "+filterLabel(string(m.filter.Priority)))
	lines = append(lines, "")
	lines = append(lines, ui.PanelTitle.Render("Keys"))
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- space/enter: toggle")
	lines = append(lines, "- d: delete")
	lines = append(lines, "- a: quick add")
	lines = append(lines, "- s/c/p: cycle filters")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return ui.Panel.Render(strings.Join(lines, "\n"))
}

func filterLabel(v string) string {
	if v == "" {
		return ui.Muted.Render(engine.FilterAll)
	}
	return ui.Key.Render(v)
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	tasks := m.visible()
	out := []string{ui.H2.Render(fmt.Sprintf("Tasks (%d)", len(tasks)))}
	if len(tasks) == 0 {
		if len(m.categories) == 0 {
			out = append(out, ui.Muted.Render("(no categories yet: tm category add <name>)"))
		} else {
			out = append(out, ui.Muted.Render("(nothing matches)"))
		}
		return strings.Join(out, "\n")
	}
	today := time.Now()
	for i, t := range tasks {
		cursor := "  "
		if i == m.selected {
			cursor = ui.SelectedRow.Render(">") + " "
		}
		out = append(out, cursor+ui.TaskLine(t, m.categories, today))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	switch m.mode {
	case modeConfirmDelete:
		if m.pending != nil {
			return ui.Warn.Render(fmt.Sprintf("Delete %q? [y/N]", m.pending.Title))
		}
	case modeAdd:
		hint := ui.Muted.Render(fmt.Sprintf("into %s, %s (enter to save, esc to cancel)", m.addCategory(), m.addPriority()))
		return m.input.View() + "\n" + hint
	}
	return "\n" + m.lastLog
}
