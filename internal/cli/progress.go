package cli

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/Veraticus/shelf/internal/engine"
	"github.com/schollz/progressbar/v3"
)

// ProgressObserver draws a progress bar while an auto-tag batch reads and
// classifies its documents.
type ProgressObserver struct {
	writer io.Writer
	bar    *progressbar.ProgressBar
}

// NewProgressObserver creates an observer drawing to writer.
func NewProgressObserver(writer io.Writer) *ProgressObserver {
	return &ProgressObserver{writer: writer}
}

// StageChanged implements engine.Observer.
func (p *ProgressObserver) StageChanged(stage engine.Stage) {
	switch stage {
	case engine.StageScanning:
		p.bar = nil
	case engine.StageMoving:
		if p.bar != nil && !p.bar.IsFinished() {
			if err := p.bar.Finish(); err != nil {
				slog.Warn("Failed to finish progress bar", "error", err)
			}
		}
		if _, err := fmt.Fprintln(p.writer, SubtleStyle.Render("Moving files...")); err != nil {
			slog.Warn("Failed to write progress", "error", err)
		}
	}
}

// FileProcessed implements engine.Observer. The bar is sized on the first
// tick of a batch.
func (p *ProgressObserver) FileProcessed(path string, _, total int) {
	if p.bar == nil {
		p.bar = p.newBar(total)
	}
	p.bar.Describe("[cyan]" + filepath.Base(path) + "[reset]")
	if err := p.bar.Add(1); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

func (p *ProgressObserver) newBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Reading documents...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(p.writer); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}
