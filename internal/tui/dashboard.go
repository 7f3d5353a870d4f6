package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"lifecodex/internal/engine"
)

func RunDashboard(ctx context.Context, eng *engine.Engine, out io.Writer) error {
	m := newDashboardModel(ctx, eng)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
