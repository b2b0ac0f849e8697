// Package fileutil provides file and path utility functions.
package fileutil

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

// Sentinel errors for file utility operations.
var (
	ErrWriteFile = errors.New("failed to write file")
	ErrCopyFile  = errors.New("failed to copy file")
)

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// WriteFileAtomic writes data to path through a temporary file renamed into
// place, creating parent directories as needed. Readers never observe a
// partially written file.
func WriteFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteFile, path, err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteFile, path, err)
	}
	return nil
}

// CopyFileAtomic copies src to dst with WriteFileAtomic semantics.
func CopyFileAtomic(src, dst string) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCopyFile, err)
	}
	defer f.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCopyFile, dst, err)
	}
	if err := atomic.WriteFile(dst, f); err != nil {
		return fmt.Errorf("%w: %s -> %s: %v", ErrCopyFile, src, dst, err)
	}
	return nil
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "resumegen" -> false (name)
//   - "./resumegen.yaml" -> true (relative path)
//   - "/etc/resumegen.yaml" -> true (absolute)
//   - "C:\config\resumegen.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// StripPrefix returns the base name of path without prefix and reports
// whether the prefix was present. An empty prefix never matches.
func StripPrefix(path, prefix string) (string, bool) {
	base := filepath.Base(path)
	if prefix == "" || !strings.HasPrefix(base, prefix) {
		return base, false
	}
	return strings.TrimPrefix(base, prefix), true
}
