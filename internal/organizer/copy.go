package organizer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
)

// moveFile renames src to dst, falling back to copy and remove when the
// two paths are on different devices.
func moveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}

	info, statErr := os.Stat(src)
	if statErr != nil {
		return statErr
	}
	if copyErr := copyFileMode(src, dst, info.Mode().Perm()); copyErr != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("copy across devices: %w", copyErr)
	}
	if removeErr := os.Remove(src); removeErr != nil {
		return fmt.Errorf("remove source after copy: %w", removeErr)
	}
	return nil
}

// copyFileMode streams src to dst, refusing to overwrite an existing dst.
func copyFileMode(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, mode)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
