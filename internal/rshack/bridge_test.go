package rshack

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"rshackmcp/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBinary writes an executable shell script standing in for rs-hack.
func fakeBinary(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes need a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "rs-hack")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func newTestBridge(t *testing.T, opts Options) *Bridge {
	t.Helper()
	logger, _ := logging.NewTestLogger()
	return NewBridge(opts, logger)
}

func TestRunBinaryNotFound(t *testing.T) {
	tests := []struct {
		name   string
		binary string
	}{
		{"name not on PATH", "rs-hack-missing-for-tests"},
		{"missing absolute path", filepath.Join(t.TempDir(), "rs-hack")},
	}

	argSets := [][]string{
		nil,
		{"history", "--limit", "10"},
		{"add-enum-variant", "--path", "src/types.rs", "--enum-name", "Status", "--variant", "Archived"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bridge := newTestBridge(t, Options{Binary: tt.binary})
			for _, args := range argSets {
				result := bridge.Run(context.Background(), args)
				assert.Equal(t, KindError, result.Kind)
				assert.Contains(t, result.Message, NotFoundMessage)
			}
		})
	}
}

func TestRunNotExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on windows")
	}
	path := filepath.Join(t.TempDir(), "rs-hack")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o644))

	result := newTestBridge(t, Options{Binary: path}).Run(context.Background(), []string{"history"})

	assert.Equal(t, KindError, result.Kind)
	assert.NotEqual(t, NotFoundMessage, result.Message)
	assert.Contains(t, result.Message, "permission denied")
}

func TestRunOutcomes(t *testing.T) {
	tests := []struct {
		name        string
		script      string
		wantKind    Kind
		wantOutput  string
		wantMessage string
		wantText    string
	}{
		{
			name:       "plain text success",
			script:     "echo '  Found 3 struct literals  '",
			wantKind:   KindText,
			wantOutput: "Found 3 struct literals",
			wantText:   "Found 3 struct literals",
		},
		{
			name:       "empty success",
			script:     "exit 0",
			wantKind:   KindText,
			wantOutput: "",
			wantText:   "",
		},
		{
			name:     "json object success",
			script:   `printf '%s\n' '{"run_id":"a05a626","files":["src/a.rs"]}'`,
			wantKind: KindData,
			wantText: "{\n  \"run_id\": \"a05a626\",\n  \"files\": [\n    \"src/a.rs\"\n  ]\n}",
		},
		{
			name:     "json array success",
			script:   `printf '%s\n' '[1, 2]'`,
			wantKind: KindData,
			wantText: "[\n  1,\n  2\n]",
		},
		{
			name:       "invalid json falls back to text",
			script:     "echo '{not json'",
			wantKind:   KindText,
			wantOutput: "{not json",
			wantText:   "{not json",
		},
		{
			name:       "trailing data after json is text",
			script:     `printf '%s\n' '{"a":1} and more'`,
			wantKind:   KindText,
			wantOutput: `{"a":1} and more`,
			wantText:   `{"a":1} and more`,
		},
		{
			name:        "non-zero exit uses stderr",
			script:      "echo 'partial output'; echo '  error: no such enum Status  ' >&2; exit 2",
			wantKind:    KindError,
			wantMessage: "error: no such enum Status",
		},
		{
			name:        "non-zero exit falls back to stdout",
			script:      "echo '  nothing matched  '; exit 1",
			wantKind:    KindError,
			wantMessage: "nothing matched",
		},
		{
			name:     "non-zero exit with json stdout is still data",
			script:   `printf '%s\n' '{"error":"conflict"}'; exit 3`,
			wantKind: KindData,
			wantText: "{\n  \"error\": \"conflict\"\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bridge := newTestBridge(t, Options{Binary: fakeBinary(t, tt.script)})

			result := bridge.Run(context.Background(), []string{"inspect"})

			assert.Equal(t, tt.wantKind, result.Kind)
			switch tt.wantKind {
			case KindError:
				assert.False(t, result.OK())
				assert.Equal(t, tt.wantMessage, result.Message)
			case KindText:
				assert.True(t, result.OK())
				assert.Equal(t, tt.wantOutput, result.Output)
				assert.Equal(t, tt.wantText, result.Text())
			case KindData:
				assert.True(t, result.OK())
				assert.NotNil(t, result.Data)
				assert.Equal(t, tt.wantText, result.Text())
			}
		})
	}
}

func TestRunForwardsArguments(t *testing.T) {
	binary := fakeBinary(t, `printf '%s\n' "$@"`)
	args := []string{"add-match-arm", "--path", "src/handler.rs", "--pattern", "Status::Archived", "--body", `"archived".to_string()`}

	t.Run("verbatim", func(t *testing.T) {
		result := newTestBridge(t, Options{Binary: binary}).Run(context.Background(), args)
		require.Equal(t, KindText, result.Kind)
		assert.Equal(t, args, strings.Split(result.Output, "\n"))
	})

	t.Run("local state flag is prepended", func(t *testing.T) {
		result := newTestBridge(t, Options{Binary: binary, LocalState: true}).Run(context.Background(), args)
		require.Equal(t, KindText, result.Kind)
		assert.Equal(t, append([]string{LocalStateFlag}, args...), strings.Split(result.Output, "\n"))
	})
}

func TestRunUsesWorkingDirectory(t *testing.T) {
	binary := fakeBinary(t, "pwd -P")
	dir := t.TempDir()
	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)

	result := newTestBridge(t, Options{Binary: binary, Dir: dir}).Run(context.Background(), []string{"history"})

	require.Equal(t, KindText, result.Kind)
	assert.Equal(t, want, result.Output)
}

func TestRunTimeout(t *testing.T) {
	binary := fakeBinary(t, "exec sleep 5")
	bridge := newTestBridge(t, Options{Binary: binary, Timeout: 50 * time.Millisecond})

	start := time.Now()
	result := bridge.Run(context.Background(), []string{"transform"})

	assert.Less(t, time.Since(start), 4*time.Second)
	assert.Equal(t, KindError, result.Kind)
	assert.Contains(t, result.Message, "interrupted")
}

func TestRunCancelledContext(t *testing.T) {
	binary := fakeBinary(t, "exec sleep 5")
	bridge := newTestBridge(t, Options{Binary: binary})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	result := bridge.Run(ctx, []string{"revert", "a05a626"})

	assert.Equal(t, KindError, result.Kind)
	assert.Contains(t, result.Message, "rs-hack revert interrupted")
}

func TestNewBridgeDefaultsBinary(t *testing.T) {
	bridge := newTestBridge(t, Options{})
	assert.Equal(t, "rs-hack", bridge.Binary())
}

func TestRunLogsFailures(t *testing.T) {
	logger, buf := logging.NewTestLogger()
	bridge := NewBridge(Options{Binary: "rs-hack-missing-for-tests"}, logger)

	bridge.Run(context.Background(), []string{"history"})

	assert.Contains(t, buf.String(), "rs-hack invocation failed")
	assert.Contains(t, buf.String(), "history")
}
