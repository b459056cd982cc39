// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Filesystem errors.
	ErrFolderCreation = errors.New("could not create tag folder")
	ErrNoFolder       = errors.New("no base folder selected")
	ErrNoSelection    = errors.New("no files selected")

	// Tag errors.
	ErrInvalidTag = errors.New("invalid tag name")

	// Extraction errors.
	ErrExtraction           = errors.New("text extraction failed")
	ErrUnsupportedExtension = errors.New("unsupported file extension")
	ErrNoReadableText       = errors.New("no readable text found")

	// Classification errors.
	ErrClassificationFailed = errors.New("classification failed")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ExtractionError reports that the text of a document could not be read.
type ExtractionError struct {
	Err  error
	Name string
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to extract text from %s: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("failed to extract text from %s", e.Name)
}

// Unwrap exposes both ErrExtraction and the underlying cause.
func (e *ExtractionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrExtraction}
	}
	return []error{ErrExtraction, e.Err}
}

// NewExtractionError wraps err with the display name of the file.
func NewExtractionError(name string, err error) error {
	return &ExtractionError{Name: name, Err: err}
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsRetryable determines if an error should trigger a retry.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrMissingConfig) {
		return false
	}
	if errors.Is(err, ErrRateLimit) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
