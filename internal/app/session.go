// Package app holds the state of one interactive session: the chosen
// folder, the documents currently visible in it and the engine that acts
// on them.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/Veraticus/shelf/internal/common"
	"github.com/Veraticus/shelf/internal/model"
	"github.com/Veraticus/shelf/internal/organizer"
)

// Batcher runs tag-and-move batches.
type Batcher interface {
	MoveWithTag(ctx context.Context, baseFolder, rawTag string, paths []string) (model.MoveResult, error)
	AutoTag(ctx context.Context, baseFolder string, paths []string) (model.MoveResult, error)
}

// ScanFunc lists the supported documents under a folder.
type ScanFunc func(root string) ([]model.FileEntry, error)

// Session tracks the selected folder and its documents. It is not safe for
// concurrent use.
type Session struct {
	engine  Batcher
	scan    ScanFunc
	logger  *slog.Logger
	folder  string
	entries []model.FileEntry
}

// Option configures a Session.
type Option func(*Session)

// WithScanner replaces the folder scanner.
func WithScanner(scan ScanFunc) Option {
	return func(s *Session) {
		s.scan = scan
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = common.LoggerOrDefault(logger)
	}
}

// NewSession creates a session with no folder selected.
func NewSession(engine Batcher, opts ...Option) *Session {
	s := &Session{
		engine: engine,
		scan:   organizer.Scan,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open selects folder and scans it.
func (s *Session) Open(folder string) error {
	if folder == "" {
		return common.ErrNoFolder
	}
	abs, err := filepath.Abs(folder)
	if err != nil {
		return fmt.Errorf("failed to resolve folder: %w", err)
	}

	entries, err := s.scan(abs)
	if err != nil {
		return err
	}
	s.folder = abs
	s.entries = entries
	s.logger.Debug("Opened folder", "folder", abs, "documents", len(entries))
	return nil
}

// Folder returns the selected folder, or "" if none is open.
func (s *Session) Folder() string {
	return s.folder
}

// Entries returns the documents found by the last scan.
func (s *Session) Entries() []model.FileEntry {
	return s.entries
}

// Rescan refreshes the entries of the selected folder.
func (s *Session) Rescan() error {
	if s.folder == "" {
		return common.ErrNoFolder
	}
	entries, err := s.scan(s.folder)
	if err != nil {
		return fmt.Errorf("failed to rescan %s: %w", s.folder, err)
	}
	s.entries = entries
	return nil
}

// MoveSelected moves the selected paths under the given tag and rescans.
// Validation errors return before anything is moved or rescanned.
func (s *Session) MoveSelected(ctx context.Context, rawTag string, selected []string) (model.MoveResult, error) {
	result, err := s.engine.MoveWithTag(ctx, s.folder, rawTag, selected)
	if err != nil {
		return result, err
	}
	return result, s.Rescan()
}

// AutoTagSelected classifies and moves the selected paths, or every
// visible document when nothing is selected, then rescans.
func (s *Session) AutoTagSelected(ctx context.Context, selected []string) (model.MoveResult, error) {
	paths := selected
	if len(paths) == 0 {
		paths = s.visiblePaths()
	}

	result, err := s.engine.AutoTag(ctx, s.folder, paths)
	if err != nil {
		return result, err
	}
	return result, s.Rescan()
}

func (s *Session) visiblePaths() []string {
	paths := make([]string, len(s.entries))
	for i, entry := range s.entries {
		paths[i] = entry.Path
	}
	return paths
}
