package engine

import (
	"context"

	"github.com/Veraticus/shelf/internal/model"
)

// Classifier derives a tag from document text.
type Classifier interface {
	Classify(ctx context.Context, text string) (string, error)
}

// TextExtractor reads the plain text of a document.
type TextExtractor interface {
	Extract(path string) (string, error)
}

// Mover relocates a batch of files into one destination folder.
type Mover interface {
	MoveBatch(destDir string, sources []string) model.MoveResult
}

// Journal stores a record of every finished batch.
type Journal interface {
	SaveBatch(ctx context.Context, record model.BatchRecord) error
}

// Stage is the phase a batch is in.
type Stage int

// Batch stages, in the order a batch passes through them.
const (
	StageIdle Stage = iota
	StageScanning
	StageGrouping
	StageMoving
	StageReporting
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageScanning:
		return "scanning"
	case StageGrouping:
		return "grouping"
	case StageMoving:
		return "moving"
	case StageReporting:
		return "reporting"
	default:
		return "unknown"
	}
}

// Observer follows the progress of a batch.
type Observer interface {
	StageChanged(stage Stage)
	// FileProcessed is called once per input file after it was read and
	// classified; done counts from 1 to total.
	FileProcessed(path string, done, total int)
}

type nopObserver struct{}

func (nopObserver) StageChanged(Stage)             {}
func (nopObserver) FileProcessed(string, int, int) {}
