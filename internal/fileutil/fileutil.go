// Package fileutil provides file and path utility functions.
package fileutil

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeebo/blake3"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

// ValidateExtension checks that the extension is safe to append to a file name.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// Digest returns the hex-encoded BLAKE3-256 digest of data.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HasContent reports whether the regular file at path holds exactly data.
// Sizes are compared first so differing files are usually not read.
func HasContent(path string, data []byte) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() || info.Size() != int64(len(data)) {
		return false
	}
	existing, err := os.ReadFile(path) // #nosec G304 -- output path is user-provided
	if err != nil {
		return false
	}
	return blake3.Sum256(existing) == blake3.Sum256(data)
}

// EnsureParentDir creates the parent directories of path if missing.
func EnsureParentDir(path string, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, perm); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}

// WriteFileAtomic writes data to a temp file next to path and renames it
// into place, so readers never observe a partially written file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	tmpPath := tmpFile.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, writeErr := tmpFile.Write(data); writeErr != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("writing temp file: %w", writeErr)
	}
	if chmodErr := tmpFile.Chmod(perm); chmodErr != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("setting permissions: %w", chmodErr)
	}
	if closeErr := tmpFile.Close(); closeErr != nil {
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if renameErr := os.Rename(tmpPath, path); renameErr != nil {
		return fmt.Errorf("renaming temp file: %w", renameErr)
	}

	return nil
}
