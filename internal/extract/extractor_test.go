package extract

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/Veraticus/shelf/internal/common"
	"github.com/Veraticus/shelf/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBytes(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func writeDOCX(t *testing.T, dir, name, documentXML string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	w, err := zw.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0"?><Types/>`))
	require.NoError(t, err)

	w, err = zw.Create(docxBody)
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)

	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

const wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

func TestPlainText(t *testing.T) {
	dir := t.TempDir()
	content := "This is an invoice report for Q1.\nSecond line — ünïcode.\n"
	path := writeBytes(t, dir, "report.txt", []byte(content))

	text, err := NewRegistry().Extract(path)

	require.NoError(t, err)
	assert.Equal(t, content, text)
}

func TestPlainTextToleratesInvalidBytes(t *testing.T) {
	dir := t.TempDir()
	path := writeBytes(t, dir, "broken.TXT", []byte("invoice \xff\xfe total"))

	text, err := NewRegistry().Extract(path)

	require.NoError(t, err)
	assert.True(t, utf8.ValidString(text))
	assert.True(t, strings.HasPrefix(text, "invoice "))
	assert.True(t, strings.HasSuffix(text, " total"))
	assert.Contains(t, text, "�")
}

func TestPlainTextStripsBOM(t *testing.T) {
	dir := t.TempDir()
	path := writeBytes(t, dir, "bom.txt", []byte("\xef\xbb\xbfhello"))

	text, err := NewRegistry().Extract(path)

	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestPlainTextUTF16(t *testing.T) {
	dir := t.TempDir()
	// "hi" in UTF-16LE with BOM.
	path := writeBytes(t, dir, "wide.txt", []byte{0xff, 0xfe, 'h', 0, 'i', 0})

	text, err := NewRegistry().Extract(path)

	require.NoError(t, err)
	assert.Equal(t, "hi", text)
}

func TestDOCX(t *testing.T) {
	dir := t.TempDir()
	path := writeDOCX(t, dir, "letter.docx", `<?xml version="1.0" encoding="UTF-8"?>
<w:document `+wordNS+`><w:body>
<w:p><w:r><w:t>Dear </w:t></w:r><w:r><w:t xml:space="preserve">customer,</w:t></w:r></w:p>
<w:p><w:r><w:t>Amount</w:t><w:tab/><w:t>4500 EUR</w:t></w:r></w:p>
<w:p/>
<w:tbl><w:tr><w:tc><w:p><w:r><w:t>Cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
<w:p><w:r><w:t>Line</w:t><w:br/><w:t>break</w:t></w:r></w:p>
</w:body></w:document>`)

	text, err := NewRegistry().Extract(path)

	require.NoError(t, err)
	assert.Equal(t, "Dear customer,\nAmount\t4500 EUR\n\nCell\nLine\nbreak", text)
}

func TestDOCXWithoutBody(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	_, err = zw.Create("other.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = NewRegistry().Extract(path)

	assert.ErrorIs(t, err, common.ErrExtraction)
	assert.ErrorIs(t, err, errNoDocumentBody)
}

func TestCorruptFilesFailWithExtractionError(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content []byte
	}{
		{name: "corrupt.docx", content: []byte("not a zip archive")},
		{name: "corrupt.pdf", content: []byte("not a pdf at all")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeBytes(t, dir, tt.name, tt.content)

			text, err := NewRegistry().Extract(path)

			assert.Empty(t, text)
			require.ErrorIs(t, err, common.ErrExtraction)
			var extractionErr *common.ExtractionError
			require.True(t, errors.As(err, &extractionErr))
			assert.Equal(t, tt.name, extractionErr.Name)
		})
	}
}

func TestMissingFile(t *testing.T) {
	_, err := NewRegistry().Extract(filepath.Join(t.TempDir(), "gone.txt"))

	assert.ErrorIs(t, err, common.ErrExtraction)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeBytes(t, dir, "photo.png", []byte("png"))

	text, err := NewRegistry().Extract(path)

	assert.Empty(t, text)
	assert.ErrorIs(t, err, common.ErrUnsupportedExtension)
	assert.NotErrorIs(t, err, common.ErrExtraction)
}

func TestRegisterOverridesKind(t *testing.T) {
	registry := NewRegistry()
	registry.Register(model.KindPDF, ExtractorFunc(func(path string) (string, error) {
		return "stub:" + filepath.Base(path), nil
	}))

	text, err := registry.Extract("/any/where/Scan.PDF")

	require.NoError(t, err)
	assert.Equal(t, "stub:Scan.PDF", text)
}

func TestRegistryKeepsExistingExtractionError(t *testing.T) {
	registry := NewRegistry()
	original := common.NewExtractionError("inner.pdf", errors.New("bad xref"))
	registry.Register(model.KindPDF, ExtractorFunc(func(string) (string, error) {
		return "", original
	}))

	_, err := registry.Extract("/docs/outer.pdf")

	assert.Same(t, original, err)
}
