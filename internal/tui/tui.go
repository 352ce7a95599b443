package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the countdown TUI and blocks until the user quits or ctx ends.
func Run(ctx context.Context, options Options) error {
	changes, stopWatching := options.Machine.Watch()
	defer stopWatching()

	options.Machine.SetReady(true)
	defer options.Machine.SetReady(false)
	if options.Ready != nil {
		options.Ready()
	}

	program := tea.NewProgram(
		NewModel(options, changes),
		tea.WithAltScreen(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
