package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rshackmcp/internal/config"
	"rshackmcp/internal/logging"
	"rshackmcp/internal/rshack"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	logger, _ := logging.NewTestLogger()

	cmd := newRootCmd(logger)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

// isolate points every command at a config file that does not exist yet and
// clears environment overrides.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv(config.EnvBinary, "")
	t.Setenv(config.EnvWorkDir, "")
	return filepath.Join(t.TempDir(), "config.yaml")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "rshackmcp dev ("), out)
}

func TestToolsCommandRaw(t *testing.T) {
	cfgPath := isolate(t)

	out, err := execute(t, "", "--config", cfgPath, "tools", "--raw")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# rs-hack MCP tools"))
	assert.Contains(t, out, "## add_enum_variant")
	assert.Contains(t, out, "## clean_history")
}

func TestToolsCommandRendered(t *testing.T) {
	cfgPath := isolate(t)
	t.Setenv("GLAMOUR_STYLE", "notty")

	out, err := execute(t, "", "--config", cfgPath, "tools")

	require.NoError(t, err)
	assert.Contains(t, out, "rename_enum_variant")
	assert.Contains(t, out, "Editing tools preview")
}

func TestCallCommand(t *testing.T) {
	cfgPath := isolate(t)
	missing := filepath.Join(t.TempDir(), "rs-hack")

	t.Run("rs-hack failure is printed", func(t *testing.T) {
		out, err := execute(t, "", "--config", cfgPath, "--binary", missing, "call", "show_history")
		require.NoError(t, err)
		assert.Equal(t, "Error: "+rshack.NotFoundMessage+"\n", out)
	})

	t.Run("argument errors fail the command", func(t *testing.T) {
		_, err := execute(t, "", "--config", cfgPath, "--binary", missing, "call", "transform",
			"--args", `{"path":"src","node_type":"macro-call","action":"delete"}`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid action")
	})

	t.Run("unknown tool", func(t *testing.T) {
		_, err := execute(t, "", "--config", cfgPath, "call", "format_disk")
		assert.EqualError(t, err, `unknown tool "format_disk"`)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := execute(t, "", "--config", cfgPath, "call", "show_history", "--args", "{limit:3}")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid --args")
	})

	t.Run("tool name required", func(t *testing.T) {
		_, err := execute(t, "", "--config", cfgPath, "call")
		assert.Error(t, err)
	})
}

func TestParseToolArguments(t *testing.T) {
	tests := []struct {
		raw     string
		want    map[string]any
		wantErr bool
	}{
		{"", map[string]any{}, false},
		{"null", map[string]any{}, false},
		{`{"run_id":"a05a626","force":true}`, map[string]any{"run_id": "a05a626", "force": true}, false},
		{`{"limit":5}`, map[string]any{"limit": float64(5)}, false},
		{`["a"]`, nil, true},
		{`{`, nil, true},
	}

	for _, tt := range tests {
		got, err := parseToolArguments(tt.raw)
		if tt.wantErr {
			assert.Error(t, err, tt.raw)
			continue
		}
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestConfigPrecedence(t *testing.T) {
	cfgPath := isolate(t)
	require.NoError(t, os.WriteFile(cfgPath, []byte("binary: from-file\nlocal_state: true\ntimeout: 30s\n"), 0o600))

	show := func(t *testing.T, args ...string) config.Config {
		t.Helper()
		out, err := execute(t, "", append([]string{"--config", cfgPath}, append(args, "config", "show")...)...)
		require.NoError(t, err)
		var cfg config.Config
		require.NoError(t, yaml.Unmarshal([]byte(out), &cfg), out)
		return cfg
	}

	t.Run("file", func(t *testing.T) {
		cfg := show(t)
		assert.Equal(t, "from-file", cfg.Binary)
		assert.True(t, cfg.LocalState)
		assert.Equal(t, "30s", cfg.Timeout.String())
	})

	t.Run("env beats file", func(t *testing.T) {
		t.Setenv(config.EnvBinary, "from-env")
		assert.Equal(t, "from-env", show(t).Binary)
	})

	t.Run("flags beat env", func(t *testing.T) {
		t.Setenv(config.EnvBinary, "from-env")
		cfg := show(t, "--binary", "from-flag", "--local-state=false", "--timeout", "5s")
		assert.Equal(t, "from-flag", cfg.Binary)
		assert.False(t, cfg.LocalState)
		assert.Equal(t, "5s", cfg.Timeout.String())
	})

	t.Run("invalid work dir", func(t *testing.T) {
		_, err := execute(t, "", "--config", cfgPath, "--work-dir", filepath.Join(t.TempDir(), "missing"), "config", "show")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})
}

func TestConfigLogsGoToCommandLogger(t *testing.T) {
	cfgPath := isolate(t)
	logger, buf := logging.NewTestLogger()

	cmd := newRootCmd(logger)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--config", cfgPath, "config", "show"})

	require.NoError(t, cmd.Execute())
	assert.Same(t, logger, logging.GetDefault())
	assert.Contains(t, buf.String(), "No config file found, using defaults")
	assert.Contains(t, buf.String(), "Configuration resolved")
}

func TestConfigInit(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out, err := execute(t, "", "--config", cfgPath, "config", "init")
	require.NoError(t, err)
	assert.Equal(t, "Wrote "+cfgPath+"\n", out)

	loaded, err := config.LoadFrom(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultBinary, loaded.Binary)

	_, err = execute(t, "", "--config", cfgPath, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "", "--config", cfgPath, "config", "init", "--force")
	assert.NoError(t, err)

	out, err = execute(t, "", "--config", cfgPath, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, cfgPath+"\n", out)
}

func TestServeCommand(t *testing.T) {
	cfgPath := isolate(t)
	stdin := `{"jsonrpc":"2.0","id":1,"method":"tools/list"}` + "\n"

	t.Run("explicit", func(t *testing.T) {
		out, err := execute(t, stdin, "--config", cfgPath, "serve")
		require.NoError(t, err)
		assert.Contains(t, out, `"name":"add_enum_variant"`)
	})

	t.Run("default command", func(t *testing.T) {
		out, err := execute(t, stdin, "--config", cfgPath)
		require.NoError(t, err)
		assert.Contains(t, out, `"name":"revert_operation"`)
	})
}

func TestDetectGlamourStyleRespectsEnv(t *testing.T) {
	t.Setenv("GLAMOUR_STYLE", "light")
	assert.Equal(t, "light", detectGlamourStyle(0))
}

func TestRenderMarkdown(t *testing.T) {
	out, err := renderMarkdown("# Title\n\nSome *text*.", "notty")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "text")
}
