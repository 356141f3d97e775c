package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands a path that starts with "~/" to the user's home directory.
//
// Usage example:
//
//	expanded := fileops.ExpandPath("~/.cargo/bin/rs-hack")
//	// Returns something like "/home/user/.cargo/bin/rs-hack"
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// ValidateDirectory checks that dirPath exists, is a directory and can be listed.
// It is used for the working directory rs-hack is started in.
func ValidateDirectory(dirPath string) error {
	if strings.TrimSpace(dirPath) == "" {
		return fmt.Errorf("directory path cannot be empty")
	}

	info, err := os.Stat(dirPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dirPath)
		}
		return fmt.Errorf("cannot access directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path is a file, not a directory: %s", dirPath)
	}

	dir, err := os.Open(dirPath)
	if err != nil {
		return fmt.Errorf("directory is not readable: %w", err)
	}
	dir.Close()

	return nil
}

// ValidateFileAccess checks that a regular file exists and is readable.
// Directories, FIFOs and devices are rejected before anything opens them.
//
// Usage example:
//
//	if err := fileops.ValidateFileAccess("/path/to/batch.yaml"); err != nil {
//	    return fmt.Errorf("cannot read batch spec: %w", err)
//	}
func ValidateFileAccess(filePath string) error {
	// Check if file exists
	info, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", filePath)
		}
		return fmt.Errorf("cannot access file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file: %s", filePath)
	}

	// Test read access
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("file is not readable: %w", err)
	}
	file.Close()

	return nil
}

// ValidateFileSizeLimit returns an error when filePath is larger than maxSize bytes.
func ValidateFileSizeLimit(filePath string, maxSize int64) error {
	if maxSize <= 0 {
		return fmt.Errorf("invalid size limit: %d", maxSize)
	}

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", filepath.Base(filePath))
		}
		return fmt.Errorf("cannot access file: %w", err)
	}

	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	if fileInfo.Size() > maxSize {
		return fmt.Errorf("file size %d bytes exceeds limit %d bytes", fileInfo.Size(), maxSize)
	}

	return nil
}
