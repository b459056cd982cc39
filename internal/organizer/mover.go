package organizer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/shelf/internal/common"
	"github.com/Veraticus/shelf/internal/model"
)

// DefaultDirPerm is used for tag folders created by the Mover.
const DefaultDirPerm os.FileMode = 0o755

// Mover relocates batches of files into a destination folder.
type Mover struct {
	logger  *slog.Logger
	dirPerm os.FileMode
}

// NewMover creates a Mover. A nil logger uses slog.Default.
func NewMover(logger *slog.Logger) *Mover {
	return &Mover{
		logger:  common.LoggerOrDefault(logger),
		dirPerm: DefaultDirPerm,
	}
}

// MoveBatch moves every source into destDir, in order. Sources that are
// missing, not regular files, or already inside destDir are skipped.
// Per-file failures are recorded and never stop the batch; only a
// destination folder that cannot be created aborts it.
func (m *Mover) MoveBatch(destDir string, sources []string) model.MoveResult {
	var result model.MoveResult

	absDest, err := filepath.Abs(destDir)
	if err != nil {
		result.AddError(model.CreateFolderKey, fmt.Errorf("%w: %w", common.ErrFolderCreation, err).Error())
		return result
	}
	if err := os.MkdirAll(absDest, m.dirPerm); err != nil {
		m.logger.Error("Failed to create tag folder", "folder", absDest, "error", err)
		result.AddError(model.CreateFolderKey, fmt.Errorf("%w: %w", common.ErrFolderCreation, err).Error())
		return result
	}

	for _, src := range sources {
		info, err := os.Stat(src)
		if err != nil || !info.Mode().IsRegular() {
			m.logger.Debug("Skipping non-file source", "path", src)
			result.Skipped++
			continue
		}

		absSrc, err := filepath.Abs(src)
		if err != nil {
			result.AddError(src, err.Error())
			continue
		}
		if filepath.Dir(absSrc) == absDest {
			m.logger.Debug("Skipping file already in tag folder", "path", src)
			result.Skipped++
			continue
		}

		dest := UniquePath(absDest, filepath.Base(absSrc))
		if err := moveFile(absSrc, dest); err != nil {
			m.logger.Warn("Failed to move file", "path", src, "error", err)
			result.AddError(src, err.Error())
			continue
		}

		m.logger.Debug("Moved file", "from", absSrc, "to", dest)
		result.Moved++
		result.Moves = append(result.Moves, model.Move{Source: absSrc, Destination: dest})
	}

	return result
}
