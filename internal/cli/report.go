package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Veraticus/shelf/internal/model"
)

// DefaultMaxErrors is how many error details a report lists before
// collapsing the rest into a count.
const DefaultMaxErrors = 10

// Summary returns the one-line batch summary.
func Summary(result model.MoveResult) string {
	return fmt.Sprintf("Moved: %d | Skipped: %d | Errors: %d", result.Moved, result.Skipped, result.ErrorCount())
}

// ErrorLines lists the first maxErrors failures as "path: message", plus
// a trailing "... and N more" line when some were left out.
func ErrorLines(result model.MoveResult, maxErrors int) []string {
	if maxErrors <= 0 {
		maxErrors = DefaultMaxErrors
	}
	shown := result.FirstErrors(maxErrors)

	lines := make([]string, 0, len(shown)+1)
	for _, fileErr := range shown {
		lines = append(lines, fmt.Sprintf("%s: %s", fileErr.Path, fileErr.Message))
	}
	if rest := result.ErrorCount() - len(shown); rest > 0 {
		lines = append(lines, fmt.Sprintf("... and %d more", rest))
	}
	return lines
}

// RenderReport writes the styled summary of a batch to w.
func RenderReport(w io.Writer, result model.MoveResult, maxErrors int) error {
	var b strings.Builder

	switch {
	case result.Aborted():
		b.WriteString(FormatError("Batch aborted: " + result.Errors[0].Message))
		b.WriteString("\n")
		_, err := io.WriteString(w, b.String())
		return err
	case result.ErrorCount() == 0:
		b.WriteString(FormatSuccess(Summary(result)))
	default:
		b.WriteString(FormatWarning(Summary(result)))
	}
	b.WriteString("\n")

	for _, line := range ErrorLines(result, maxErrors) {
		if strings.HasPrefix(line, "... and ") {
			b.WriteString("  " + SubtleStyle.Render(line) + "\n")
			continue
		}
		b.WriteString("  " + ErrorStyle.Render(ErrorIcon) + " " + line + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderMoves writes one "source → destination" line per move, with paths
// shown relative to base where possible.
func RenderMoves(w io.Writer, base string, moves []model.Move) error {
	for _, move := range moves {
		line := fmt.Sprintf("  %s %s %s\n", relativeTo(base, move.Source), SubtleStyle.Render(ArrowIcon), relativeTo(base, move.Destination))
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}

func relativeTo(base, path string) string {
	if base == "" {
		return path
	}
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
