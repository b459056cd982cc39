package organizer

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/shelf/internal/model"
)

// Scan walks root recursively and returns every supported document in
// lexical walk order. Unreadable subdirectories are logged and skipped.
func Scan(root string) ([]model.FileEntry, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve folder: %w", err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to open folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a folder: %s", absRoot)
	}

	var entries []model.FileEntry
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == absRoot {
				return walkErr
			}
			slog.Warn("Skipping unreadable path", "path", path, "error", walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if kind, ok := model.KindFromPath(path); ok {
			entries = append(entries, model.FileEntry{Path: path, Kind: kind})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan folder: %w", err)
	}

	return entries, nil
}
