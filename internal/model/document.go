// Package model defines the core domain models used throughout the application.
package model

import (
	"path/filepath"
	"strings"
)

// DocumentKind identifies one of the supported document formats.
type DocumentKind string

// Supported document kinds.
const (
	KindPDF  DocumentKind = "pdf"
	KindDOCX DocumentKind = "docx"
	KindTXT  DocumentKind = "txt"
)

var kindsByExtension = map[string]DocumentKind{
	".pdf":  KindPDF,
	".docx": KindDOCX,
	".txt":  KindTXT,
}

// SupportedExtensions lists the recognized extensions in display order.
func SupportedExtensions() []string {
	return []string{".pdf", ".docx", ".txt"}
}

// KindFromPath returns the document kind for a path based on its
// case-insensitive extension.
func KindFromPath(path string) (DocumentKind, bool) {
	kind, ok := kindsByExtension[strings.ToLower(filepath.Ext(path))]
	return kind, ok
}

// Label returns the upper-case form shown in listings (PDF, DOCX, TXT).
func (k DocumentKind) Label() string {
	return strings.ToUpper(string(k))
}

// FileEntry is a document discovered during a folder scan.
type FileEntry struct {
	Path string
	Kind DocumentKind
}

// Name returns the base name of the entry.
func (e FileEntry) Name() string {
	return filepath.Base(e.Path)
}
