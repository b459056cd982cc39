package extract

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF returns a minimal PDF with one Helvetica page per content
// stream. Cross-reference offsets are computed as the objects are written.
func buildPDF(pages ...string) []byte {
	const (
		catalogObj = 1
		pagesObj   = 2
		fontObj    = 3
		firstPage  = 4
	)

	objects := []string{
		fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R >>", pagesObj),
		"",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	kids := make([]string, 0, len(pages))
	for i, content := range pages {
		pageNum := firstPage + 2*i
		kids = append(kids, fmt.Sprintf("%d 0 R", pageNum))
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent %d 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>",
				pagesObj, fontObj, pageNum+1),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content)+1, content),
		)
	}
	objects[pagesObj-1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages))

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, body := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, offset := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offset)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root %d 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, catalogObj, xref)
	return buf.Bytes()
}

func textPage(s string) string {
	return fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", s)
}

func TestPDFPagesInOrder(t *testing.T) {
	path := writeBytes(t, t.TempDir(), "two.pdf", buildPDF(textPage("Invoice one"), textPage("Page two")))

	text, err := NewRegistry().Extract(path)
	require.NoError(t, err)

	first := strings.Index(text, "Invoice one")
	second := strings.Index(text, "Page two")
	require.GreaterOrEqual(t, first, 0, "text: %q", text)
	require.Greater(t, second, first, "text: %q", text)
	assert.Contains(t, text[first:second], "\n")
}

func TestPDFUnreadablePageIsEmpty(t *testing.T) {
	// Tj without an operand cannot be interpreted.
	path := writeBytes(t, t.TempDir(), "broken-page.pdf",
		buildPDF(textPage("Before"), "BT /F1 12 Tf Tj ET", textPage("After")))

	text, err := NewRegistry().Extract(path)
	require.NoError(t, err)
	assert.Contains(t, text, "Before")
	assert.Contains(t, text, "After")
	assert.Less(t, strings.Index(text, "Before"), strings.Index(text, "After"))

	f, reader, err := pdf.Open(path)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, 3, reader.NumPage())
	assert.Empty(t, pageText(reader, 2))
	assert.Contains(t, pageText(reader, 3), "After")
}

func TestPDFWithoutPages(t *testing.T) {
	path := writeBytes(t, t.TempDir(), "empty.pdf", buildPDF())

	text, err := NewRegistry().Extract(path)
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(text))
}

func TestPDFPageOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.pdf")
	writeBytes(t, filepath.Dir(path), filepath.Base(path), buildPDF(textPage("Only")))

	f, reader, err := pdf.Open(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Empty(t, pageText(reader, 5))
}
