// Package tui implements the interactive document browser: pick documents
// from the open folder, then move them under a typed tag or let the
// classifier choose one per document.
package tui

import (
	"context"

	"github.com/Veraticus/shelf/internal/common"
	"github.com/Veraticus/shelf/internal/model"
	"github.com/Veraticus/shelf/internal/tag"
	"github.com/Veraticus/shelf/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Session is the folder state the browser works on.
type Session interface {
	Folder() string
	Entries() []model.FileEntry
	Rescan() error
	MoveSelected(ctx context.Context, rawTag string, selected []string) (model.MoveResult, error)
	AutoTagSelected(ctx context.Context, selected []string) (model.MoveResult, error)
}

// State represents the current state of the TUI.
type State int

const (
	StateList State = iota
	StateTagInput
	StateBusy
)

// Model holds the browser state.
type Model struct {
	ctx        context.Context
	session    Session
	lastErr    error
	lastResult *model.MoveResult
	selected   map[string]bool
	theme      themes.Theme
	spinner    spinner.Model
	input      textinput.Model
	help       help.Model
	keymap     KeyMap
	busyLabel  string
	lastLabel  string
	entries    []model.FileEntry
	config     Config
	cursor     int
	offset     int
	width      int
	height     int
	state      State
	quitting   bool
}

func newModel(ctx context.Context, session Session, cfg Config) Model {
	input := textinput.New()
	input.Placeholder = "e.g. Invoices"
	input.CharLimit = tag.MaxLength
	input.Prompt = "Tag: "

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = cfg.Theme.Cursor

	h := help.New()
	h.ShowAll = cfg.ShowHelp
	h.Width = cfg.Width

	return Model{
		ctx:      ctx,
		session:  session,
		theme:    cfg.Theme,
		config:   cfg,
		keymap:   DefaultKeyMap(),
		selected: make(map[string]bool),
		entries:  session.Entries(),
		input:    input,
		spinner:  spin,
		help:     h,
		width:    cfg.Width,
		height:   cfg.Height,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampCursor()
		return m, nil

	case spinner.TickMsg:
		if m.state != StateBusy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case batchDoneMsg:
		m.state = StateList
		m.lastLabel = msg.label
		m.lastErr = msg.err
		m.lastResult = nil
		if msg.err == nil || touched(msg.result) {
			result := msg.result
			m.lastResult = &result
		}
		m.refreshEntries()
		return m, nil

	case rescanDoneMsg:
		m.state = StateList
		m.lastErr = msg.err
		m.refreshEntries()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case StateBusy:
		return m, nil
	case StateTagInput:
		return m.handleTagInput(msg)
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Up):
		m.cursor--
	case key.Matches(msg, m.keymap.Down):
		m.cursor++
	case key.Matches(msg, m.keymap.PageUp):
		m.cursor -= m.listHeight()
	case key.Matches(msg, m.keymap.PageDown):
		m.cursor += m.listHeight()
	case key.Matches(msg, m.keymap.Home):
		m.cursor = 0
	case key.Matches(msg, m.keymap.End):
		m.cursor = len(m.entries) - 1
	case key.Matches(msg, m.keymap.ToggleSelect):
		if len(m.entries) > 0 {
			path := m.entries[m.cursor].Path
			if m.selected[path] {
				delete(m.selected, path)
			} else {
				m.selected[path] = true
			}
			m.cursor++
		}
	case key.Matches(msg, m.keymap.SelectAll):
		for _, entry := range m.entries {
			m.selected[entry.Path] = true
		}
	case key.Matches(msg, m.keymap.DeselectAll):
		m.selected = make(map[string]bool)
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keymap.Refresh):
		m.state = StateBusy
		m.busyLabel = "Rescanning"
		return m, tea.Batch(m.spinner.Tick, rescanCmd(m.session))
	case key.Matches(msg, m.keymap.Tag):
		if len(m.selected) == 0 {
			m.lastErr = common.ErrNoSelection
			return m, nil
		}
		m.state = StateTagInput
		m.input.SetValue("")
		return m, m.input.Focus()
	case key.Matches(msg, m.keymap.AutoTag):
		m.state = StateBusy
		m.busyLabel = "Auto-tagging"
		return m, tea.Batch(m.spinner.Tick, autoTagCmd(m.ctx, m.session, m.selectedPaths()))
	}

	m.clampCursor()
	return m, nil
}

func (m Model) handleTagInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Cancel):
		m.state = StateList
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keymap.Confirm):
		raw := m.input.Value()
		if _, err := tag.Validate(raw); err != nil {
			m.lastErr = err
			return m, nil
		}
		m.input.Blur()
		m.state = StateBusy
		m.busyLabel = "Moving"
		return m, tea.Batch(m.spinner.Tick, moveCmd(m.ctx, m.session, raw, m.selectedPaths()))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// selectedPaths returns the selection in listing order.
func (m Model) selectedPaths() []string {
	var paths []string
	for _, entry := range m.entries {
		if m.selected[entry.Path] {
			paths = append(paths, entry.Path)
		}
	}
	return paths
}

// refreshEntries reloads the listing and drops selections of files that
// are gone.
func (m *Model) refreshEntries() {
	m.entries = m.session.Entries()
	present := make(map[string]bool, len(m.entries))
	for _, entry := range m.entries {
		present[entry.Path] = true
	}
	for path := range m.selected {
		if !present[path] {
			delete(m.selected, path)
		}
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	height := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+height {
		m.offset = m.cursor - height + 1
	}
}

// listHeight is the number of entry rows that fit on screen.
func (m Model) listHeight() int {
	h := m.height - 10 - m.config.MaxErrors/2
	if h < 3 {
		return 3
	}
	return h
}

func touched(result model.MoveResult) bool {
	return result.Moved > 0 || result.Skipped > 0 || result.ErrorCount() > 0
}
