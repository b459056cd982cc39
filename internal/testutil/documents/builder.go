// Package documents builds throwaway folders of test documents with a
// fluent API.
//
// Example usage:
//
//	tree := documents.NewBuilder(t).
//		WithFixture(documents.FixtureThreeTopics).
//		WithDOCX("letters/offer.docx", "Dear applicant,", "We are pleased...").
//		Build()
//
//	paths := tree.Paths()
package documents

import (
	"archive/zip"
	"encoding/xml"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// Builder accumulates files and writes them under a temporary folder.
type Builder struct {
	t     *testing.T
	files map[string][]byte
	dirs  []string
}

// Tree is a folder written by Builder.
type Tree struct {
	t     *testing.T
	Root  string
	names []string
}

// NewBuilder creates an empty builder.
func NewBuilder(t *testing.T) *Builder {
	t.Helper()
	return &Builder{t: t, files: make(map[string][]byte)}
}

// WithText adds a plain-text file.
func (b *Builder) WithText(name, content string) *Builder {
	b.files[name] = []byte(content)
	return b
}

// WithBytes adds a file with raw content, e.g. a deliberately corrupt one.
func (b *Builder) WithBytes(name string, content []byte) *Builder {
	b.files[name] = content
	return b
}

// WithDOCX adds a minimal Word document with one paragraph per argument.
func (b *Builder) WithDOCX(name string, paragraphs ...string) *Builder {
	b.t.Helper()
	b.files[name] = DOCX(b.t, paragraphs...)
	return b
}

// WithDir adds an empty directory.
func (b *Builder) WithDir(name string) *Builder {
	b.dirs = append(b.dirs, name)
	return b
}

// WithFixture adds every file of a fixture.
func (b *Builder) WithFixture(fixture Fixture) *Builder {
	for name, content := range fixture {
		b.files[name] = []byte(content)
	}
	return b
}

// Build writes the tree into a fresh temporary directory.
func (b *Builder) Build() *Tree {
	b.t.Helper()
	root := b.t.TempDir()

	for _, dir := range b.dirs {
		if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(dir)), 0o755); err != nil {
			b.t.Fatalf("failed to create %s: %v", dir, err)
		}
	}

	names := make([]string, 0, len(b.files))
	for name, content := range b.files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			b.t.Fatalf("failed to create folder for %s: %v", name, err)
		}
		if err := os.WriteFile(path, content, 0o600); err != nil {
			b.t.Fatalf("failed to write %s: %v", name, err)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	return &Tree{t: b.t, Root: root, names: names}
}

// Path returns the absolute path of a file added to the builder.
func (tr *Tree) Path(name string) string {
	return filepath.Join(tr.Root, filepath.FromSlash(name))
}

// Paths returns the absolute paths of all files, sorted by name.
func (tr *Tree) Paths() []string {
	paths := make([]string, len(tr.names))
	for i, name := range tr.names {
		paths[i] = tr.Path(name)
	}
	return paths
}

// MustExist fails the test unless name exists relative to the root.
func (tr *Tree) MustExist(name string) {
	tr.t.Helper()
	if _, err := os.Stat(tr.Path(name)); err != nil {
		tr.t.Fatalf("expected %s to exist: %v", name, err)
	}
}

// DOCX returns the bytes of a minimal Word document.
func DOCX(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body strings.Builder
	body.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t xml:space="preserve">`)
		if err := xml.EscapeText(&body, []byte(p)); err != nil {
			t.Fatalf("failed to escape paragraph: %v", err)
		}
		body.WriteString(`</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf strings.Builder
	zw := zip.NewWriter(&buf)
	for name, content := range map[string]string{
		"[Content_Types].xml": `<?xml version="1.0"?><Types/>`,
		"word/document.xml":   body.String(),
	} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to add %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close docx: %v", err)
	}
	return []byte(buf.String())
}
