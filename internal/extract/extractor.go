// Package extract reads the text of supported documents. Each document
// kind maps to exactly one Extractor.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/Veraticus/shelf/internal/common"
	"github.com/Veraticus/shelf/internal/model"
)

// Extractor reads the text content of one file.
type Extractor interface {
	Extract(path string) (string, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(path string) (string, error)

// Extract calls f(path).
func (f ExtractorFunc) Extract(path string) (string, error) {
	return f(path)
}

// Registry dispatches extraction by document kind.
type Registry struct {
	byKind map[model.DocumentKind]Extractor
}

// NewRegistry returns a registry wired with the built-in extractors for
// every supported kind.
func NewRegistry() *Registry {
	return &Registry{
		byKind: map[model.DocumentKind]Extractor{
			model.KindTXT:  ExtractorFunc(extractPlainText),
			model.KindDOCX: ExtractorFunc(extractDOCX),
			model.KindPDF:  ExtractorFunc(extractPDF),
		},
	}
}

// Register replaces the extractor used for kind.
func (r *Registry) Register(kind model.DocumentKind, e Extractor) {
	r.byKind[kind] = e
}

// Extract returns the text of the file at path. Files with an unknown
// extension fail with common.ErrUnsupportedExtension; any read or decode
// failure is reported as a *common.ExtractionError.
func (r *Registry) Extract(path string) (string, error) {
	name := filepath.Base(path)

	kind, ok := model.KindFromPath(path)
	if !ok {
		return "", fmt.Errorf("%w: %s", common.ErrUnsupportedExtension, name)
	}
	extractor, ok := r.byKind[kind]
	if !ok {
		return "", fmt.Errorf("%w: no extractor for %s", common.ErrUnsupportedExtension, kind)
	}

	text, err := extractor.Extract(path)
	if err != nil {
		var extractionErr *common.ExtractionError
		if errors.As(err, &extractionErr) {
			return "", err
		}
		return "", common.NewExtractionError(name, err)
	}
	return text, nil
}
