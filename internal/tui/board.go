package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"taskmate/internal/engine"
)

// RunBoard runs the interactive board until the user quits.
func RunBoard(ctx context.Context, svc *engine.Service, out io.Writer) error {
	m := newBoardModel(ctx, svc)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
