package main

import (
	"fmt"
	"os"
	"time"

	"rshackmcp/internal/config"
	"rshackmcp/internal/logging"
	"rshackmcp/internal/mcp"

	"github.com/spf13/cobra"
)

// app carries state shared by every subcommand.
type app struct {
	logger *logging.AppLogger
	getenv func(string) string

	configPath string
	binary     string
	workDir    string
	localState bool
	timeout    time.Duration
}

// newRootCmd installs logger as the package default so config and the
// commands share one sink.
func newRootCmd(logger *logging.AppLogger) *cobra.Command {
	logging.SetDefault(logger)
	a := &app{logger: logger, getenv: os.Getenv}

	root := &cobra.Command{
		Use:   "rshackmcp",
		Short: "Serve rs-hack Rust refactoring tools over MCP",
		Long: `rshackmcp exposes the rs-hack command line as Model Context Protocol tools.

Run without a subcommand (or with "serve") to start the stdio server.
To configure in Claude Code, add to .mcp.json:
  {"mcpServers": {"rs-hack": {"command": "rshackmcp", "args": ["serve"]}}}

Settings are read from the config file, then RS_HACK_BIN and
RS_HACK_WORKDIR, then the flags below.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runServe(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default "+config.ConfigPath()+")")
	flags.StringVar(&a.binary, "binary", "", "rs-hack executable name or path")
	flags.StringVar(&a.workDir, "work-dir", "", "directory rs-hack runs in")
	flags.BoolVar(&a.localState, "local-state", false, "keep rs-hack state in the project's .rs-hack directory")
	flags.DurationVar(&a.timeout, "timeout", 0, "bound each rs-hack invocation, e.g. 2m (0 disables)")

	root.AddCommand(
		a.newServeCmd(),
		a.newToolsCmd(),
		a.newCallCmd(),
		a.newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// loadConfig resolves settings: file, then environment, then flags.
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := a.configPath
	if path == "" {
		path = config.ConfigPath()
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyEnv(a.getenv)

	flags := cmd.Flags()
	if flags.Changed("binary") {
		cfg.Binary = a.binary
	}
	if flags.Changed("work-dir") {
		cfg.WorkDir = a.workDir
	}
	if flags.Changed("local-state") {
		cfg.LocalState = a.localState
	}
	if flags.Changed("timeout") {
		cfg.Timeout = a.timeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := a.logger.SetLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	a.logger.Debug("Configuration resolved",
		"path", path,
		"binary", cfg.Binary,
		"workDir", cfg.WorkDir,
		"localState", cfg.LocalState,
		"timeout", cfg.Timeout,
	)
	return cfg, nil
}

func (a *app) newMCPServer(cmd *cobra.Command) (*mcp.Server, error) {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return mcp.NewServer(cfg, a.logger, mcp.WithVersion(version)), nil
}
