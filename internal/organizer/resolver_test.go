package organizer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
}

func TestUniquePath(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		filename string
		want     string
	}{
		{name: "empty folder", filename: "a.txt", want: "a.txt"},
		{name: "one collision", existing: []string{"a.txt"}, filename: "a.txt", want: "a (1).txt"},
		{name: "two collisions", existing: []string{"a.txt", "a (1).txt"}, filename: "a.txt", want: "a (2).txt"},
		{name: "gap is reused", existing: []string{"a.txt", "a (2).txt"}, filename: "a.txt", want: "a (1).txt"},
		{name: "no extension", existing: []string{"README"}, filename: "README", want: "README (1)"},
		{name: "double extension", existing: []string{"data.tar.gz"}, filename: "data.tar.gz", want: "data.tar (1).gz"},
		{name: "other names ignored", existing: []string{"b.txt"}, filename: "a.txt", want: "a.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, name := range tt.existing {
				touch(t, filepath.Join(dir, name))
			}

			assert.Equal(t, filepath.Join(dir, tt.want), UniquePath(dir, tt.filename))
		})
	}
}

func TestUniquePathIsNotCached(t *testing.T) {
	dir := t.TempDir()

	first := UniquePath(dir, "a.txt")
	assert.Equal(t, filepath.Join(dir, "a.txt"), first)

	touch(t, first)
	assert.Equal(t, filepath.Join(dir, "a (1).txt"), UniquePath(dir, "a.txt"))
}

func TestUniquePathCountsDirectoriesAsTaken(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "a.txt"), 0o755))

	assert.Equal(t, filepath.Join(dir, "a (1).txt"), UniquePath(dir, "a.txt"))
}
