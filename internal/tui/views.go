package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Veraticus/shelf/internal/cli"
)

// View renders the browser.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderList())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())

	if m.state == StateTagInput {
		b.WriteString("\n")
		b.WriteString(m.theme.RoundedBox.Render(m.input.View()))
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render(m.help.View(m.keymap)))
	return b.String()
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render(cli.ShelfIcon + " shelf")
	folder := m.theme.Subtitle.Render(m.session.Folder())
	counts := m.theme.Muted.Render(fmt.Sprintf("%d documents, %d selected", len(m.entries), len(m.selected)))
	return title + "  " + folder + "\n" + counts
}

func (m Model) renderList() string {
	if len(m.entries) == 0 {
		return m.theme.Muted.Render("  No PDF, DOCX or TXT documents in this folder.") + "\n"
	}

	var b strings.Builder
	end := m.offset + m.listHeight()
	if end > len(m.entries) {
		end = len(m.entries)
	}
	for i := m.offset; i < end; i++ {
		entry := m.entries[i]

		cursor := "  "
		if i == m.cursor {
			cursor = m.theme.Cursor.Render("> ")
		}
		check := "[ ]"
		name := m.theme.Normal.Render(relPath(m.session.Folder(), entry.Path))
		if m.selected[entry.Path] {
			check = m.theme.Selected.Render("[x]")
		}

		fmt.Fprintf(&b, "%s%s %s %s\n", cursor, check, m.theme.Kind.Render(entry.Kind.Label()), name)
	}
	if hidden := len(m.entries) - end; hidden > 0 {
		b.WriteString(m.theme.Muted.Render(fmt.Sprintf("  ... %d more", hidden)) + "\n")
	}
	return b.String()
}

func (m Model) renderStatus() string {
	if m.state == StateBusy {
		return m.spinner.View() + " " + m.theme.StatusInfo.Render(m.busyLabel+"...")
	}

	var lines []string
	if m.lastResult != nil {
		summary := cli.Summary(*m.lastResult)
		style := m.theme.StatusSuccess
		if m.lastResult.ErrorCount() > 0 {
			style = m.theme.StatusWarning
		}
		if m.lastLabel != "" {
			summary = m.lastLabel + ": " + summary
		}
		lines = append(lines, style.Render(summary))
		for _, line := range cli.ErrorLines(*m.lastResult, m.config.MaxErrors) {
			lines = append(lines, "  "+m.theme.Muted.Render(line))
		}
	}
	if m.lastErr != nil {
		lines = append(lines, m.theme.StatusError.Render(cli.ErrorIcon+" "+m.lastErr.Error()))
	}
	return strings.Join(lines, "\n")
}

func relPath(folder, path string) string {
	if folder == "" {
		return path
	}
	rel, err := filepath.Rel(folder, path)
	if err != nil {
		return path
	}
	return rel
}
