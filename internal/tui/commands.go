package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// moveCmd moves paths under tag in the background.
func moveCmd(ctx context.Context, session Session, tag string, paths []string) tea.Cmd {
	return func() tea.Msg {
		result, err := session.MoveSelected(ctx, tag, paths)
		return batchDoneMsg{
			result: result,
			err:    err,
			label:  fmt.Sprintf("Tagged %q", tag),
		}
	}
}

// autoTagCmd classifies and moves paths (all documents when empty).
func autoTagCmd(ctx context.Context, session Session, paths []string) tea.Cmd {
	return func() tea.Msg {
		result, err := session.AutoTagSelected(ctx, paths)
		return batchDoneMsg{
			result: result,
			err:    err,
			label:  "Auto-tagged",
		}
	}
}

func rescanCmd(session Session) tea.Cmd {
	return func() tea.Msg {
		return rescanDoneMsg{err: session.Rescan()}
	}
}
