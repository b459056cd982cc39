package organizer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// UniquePath returns a path inside destDir for filename that does not
// exist yet. Taken names get a " (n)" suffix on the stem, counting from 1.
// The filesystem is probed on every call.
func UniquePath(destDir, filename string) string {
	candidate := filepath.Join(destDir, filename)
	if !exists(candidate) {
		return candidate
	}

	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	for counter := 1; ; counter++ {
		candidate = filepath.Join(destDir, fmt.Sprintf("%s (%d)%s", stem, counter, ext))
		if !exists(candidate) {
			return candidate
		}
	}
}

// exists treats anything Lstat can see, including dangling symlinks, as
// taken. Probe errors count as free so the move itself reports them.
func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
