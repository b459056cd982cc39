package extract

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// extractPlainText decodes a text file as UTF-8, or UTF-16 when a byte
// order mark says so. Invalid sequences become U+FFFD.
func extractPlainText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open text file: %w", err)
	}
	defer f.Close()

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	raw, err := io.ReadAll(transform.NewReader(f, decoder))
	if err != nil {
		return "", fmt.Errorf("read text file: %w", err)
	}
	return string(raw), nil
}
