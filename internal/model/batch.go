package model

import "time"

// BatchMode distinguishes how the tag of a batch was chosen.
type BatchMode string

// Batch modes.
const (
	ModeManual BatchMode = "manual"
	ModeAuto   BatchMode = "auto"
)

// BatchRecord is the journal entry written after a batch finishes.
type BatchRecord struct {
	StartedAt  time.Time
	FinishedAt time.Time
	ID         string
	Mode       BatchMode
	BaseFolder string
	// Tag is set for manual batches; auto batches span several tags.
	Tag    string
	Result MoveResult
}

// Duration returns how long the batch ran.
func (b BatchRecord) Duration() time.Duration {
	return b.FinishedAt.Sub(b.StartedAt)
}
