package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the browser on session and blocks until the user quits or
// ctx is canceled.
func Run(ctx context.Context, session Session, opts ...Option) error {
	if session == nil {
		return fmt.Errorf("session is required")
	}
	if session.Folder() == "" {
		return fmt.Errorf("no folder is open")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	program := tea.NewProgram(
		newModel(ctx, session, cfg),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
