package fileops

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func createTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", name, err)
	}
	return path
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"tilde prefix", "~/.cargo/bin/rs-hack", filepath.Join(home, ".cargo/bin/rs-hack")},
		{"plain name", "rs-hack", "rs-hack"},
		{"absolute path", "/usr/local/bin/rs-hack", "/usr/local/bin/rs-hack"},
		{"tilde without slash", "~rs-hack", "~rs-hack"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.in); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidateDirectory(t *testing.T) {
	tempDir := t.TempDir()
	file := createTestFile(t, tempDir, "lib.rs", "pub fn f() {}")

	tests := []struct {
		name      string
		path      string
		errorText string
	}{
		{"existing directory", tempDir, ""},
		{"empty path", "  ", "cannot be empty"},
		{"missing directory", filepath.Join(tempDir, "missing"), "does not exist"},
		{"file instead of directory", file, "not a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDirectory(tt.path)
			if tt.errorText == "" {
				if err != nil {
					t.Errorf("ValidateDirectory(%q) unexpected error: %v", tt.path, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateDirectory(%q) expected error containing %q", tt.path, tt.errorText)
			}
			if !strings.Contains(err.Error(), tt.errorText) {
				t.Errorf("ValidateDirectory(%q) error = %v, want %q", tt.path, err, tt.errorText)
			}
		})
	}
}

func TestValidateFileAccess(t *testing.T) {
	tempDir := t.TempDir()

	readableFile := createTestFile(t, tempDir, "readable.yaml", "operations: []")

	testDir := filepath.Join(tempDir, "testdir")
	if err := os.Mkdir(testDir, 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	t.Run("readable file check", func(t *testing.T) {
		if err := ValidateFileAccess(readableFile); err != nil {
			t.Errorf("Expected no error for readable file, got: %v", err)
		}
	})

	t.Run("non-existent file", func(t *testing.T) {
		err := ValidateFileAccess(filepath.Join(tempDir, "nonexistent.yaml"))
		if err == nil {
			t.Fatal("Expected error for non-existent file")
		}
		if !strings.Contains(err.Error(), "does not exist") {
			t.Errorf("Expected 'does not exist' error, got: %v", err)
		}
	})

	t.Run("directory instead of file", func(t *testing.T) {
		err := ValidateFileAccess(testDir)
		if err == nil {
			t.Fatal("Expected error when path is directory")
		}
		if !strings.Contains(err.Error(), "directory, not a file") {
			t.Errorf("Expected 'directory, not a file' error, got: %v", err)
		}
	})

	// Permission bits are not enforced for root.
	if os.Geteuid() != 0 && os.Getenv("CI") == "" {
		t.Run("unreadable file", func(t *testing.T) {
			unreadableFile := createTestFile(t, tempDir, "unreadable.yaml", "content")
			if err := os.Chmod(unreadableFile, 0000); err != nil {
				t.Skip("Cannot change file permissions")
			}
			defer func() {
				if err := os.Chmod(unreadableFile, 0644); err != nil {
					t.Logf("warning: failed to restore permissions: %v", err)
				}
			}()

			if err := ValidateFileAccess(unreadableFile); err == nil {
				t.Error("Expected error for unreadable file")
			}
		})
	}
}

func TestValidateFileSizeLimit(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name        string
		content     string
		maxSize     int64
		expectError bool
		errorText   string
		skipFile    bool // For testing non-existent files
	}{
		{
			name:    "file within size limit",
			content: "Small file content",
			maxSize: 100,
		},
		{
			name:        "file exceeds size limit",
			content:     strings.Repeat("Large content ", 100),
			maxSize:     50,
			expectError: true,
			errorText:   "exceeds limit",
		},
		{
			name:    "file at exact size limit",
			content: strings.Repeat("x", 50),
			maxSize: 50,
		},
		{
			name:        "file one byte over limit",
			content:     strings.Repeat("x", 51),
			maxSize:     50,
			expectError: true,
			errorText:   "exceeds limit",
		},
		{
			name:        "invalid size limit - zero",
			content:     "Content",
			maxSize:     0,
			expectError: true,
			errorText:   "invalid size limit",
		},
		{
			name:        "non-existent file",
			maxSize:     100,
			expectError: true,
			errorText:   "does not exist",
			skipFile:    true,
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testPath := filepath.Join(tempDir, "nonexistent-file.txt")
			if !tt.skipFile {
				testPath = createTestFile(t, tempDir, "spec-"+string(rune('a'+i))+".yaml", tt.content)
			}

			err := ValidateFileSizeLimit(testPath, tt.maxSize)
			if tt.expectError {
				if err == nil {
					t.Errorf("ValidateFileSizeLimit(%q, %d) expected error but got none", testPath, tt.maxSize)
				} else if !strings.Contains(err.Error(), tt.errorText) {
					t.Errorf("ValidateFileSizeLimit(%q, %d) error = %v, want error containing %q", testPath, tt.maxSize, err, tt.errorText)
				}
			} else if err != nil {
				t.Errorf("ValidateFileSizeLimit(%q, %d) unexpected error: %v", testPath, tt.maxSize, err)
			}
		})
	}
}

func TestValidateFileSizeLimitWithDirectory(t *testing.T) {
	subDir := filepath.Join(t.TempDir(), "subdir")
	if err := os.Mkdir(subDir, 0755); err != nil {
		t.Fatalf("Failed to create subdirectory: %v", err)
	}

	err := ValidateFileSizeLimit(subDir, 100)
	if err == nil {
		t.Error("ValidateFileSizeLimit should fail when given a directory")
	} else if !strings.Contains(err.Error(), "directory, not a file") {
		t.Errorf("ValidateFileSizeLimit error = %v, want error containing 'directory, not a file'", err)
	}
}
