package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/shelf/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrInvalidBatch   = errors.New("invalid batch record")
	ErrBatchNotFound  = errors.New("batch not found")
	ErrAmbiguousBatch = errors.New("batch id prefix matches more than one batch")
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateBatch checks the fields the journal relies on.
func validateBatch(record model.BatchRecord) error {
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidBatch)
	}
	switch record.Mode {
	case model.ModeManual, model.ModeAuto:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidBatch, record.Mode)
	}
	if record.StartedAt.IsZero() {
		return fmt.Errorf("%w: missing start time", ErrInvalidBatch)
	}
	if record.FinishedAt.Before(record.StartedAt) {
		return fmt.Errorf("%w: finished before it started", ErrInvalidBatch)
	}
	return nil
}
