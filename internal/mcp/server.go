package mcp

import (
	"context"
	"fmt"
	"io"

	"rshackmcp/internal/config"
	"rshackmcp/internal/logging"
	"rshackmcp/internal/rshack"
	"rshackmcp/internal/tools"

	"github.com/mark3labs/mcp-go/server"
)

// ServerName is announced to clients during initialize.
const ServerName = "rs-hack"

// Instructions is sent to clients during initialize.
const Instructions = `rs-hack provides AST-aware refactoring tools for Rust code.

Key principles:
- Every editing tool is a DRY RUN unless apply=true is passed
- Operations are idempotent, so re-running them is safe
- Use the inspect tools first to see what will be affected
- Paths accept glob patterns such as "src/**/*.rs" for multi-file edits
- Applied changes are recorded under a run ID and can be reverted

Workflow:
1. Explore with inspect_struct_literals, inspect_match_arms, inspect_enum_usage or inspect_macro_calls
2. Preview the edit (apply=false)
3. Apply it (apply=true)
4. Use show_history and revert_operation to undo

Tool selection:
- Adding code: add_struct_field, add_enum_variant, add_match_arm, add_derive, add_impl_method, add_use_statement, add_doc_comment
- Modifying code: transform, update_struct_field, update_enum_variant, update_match_arm, update_doc_comment
- Renaming: rename_enum_variant, rename_function
- Removing code: remove_struct_field, remove_enum_variant, remove_match_arm, remove_doc_comment
- Several edits as one run: run_batch
- Housekeeping: show_history, revert_operation, clean_history`

// Server represents an MCP server instance using mcp-go
type Server struct {
	config    *config.Config
	logger    *logging.AppLogger
	version   string
	runner    rshack.Runner
	registry  []server.ServerTool
	mcpServer *server.MCPServer
}

// Option customizes a Server.
type Option func(*Server)

// WithRunner replaces the rs-hack process bridge, mainly for tests.
func WithRunner(runner rshack.Runner) Option {
	return func(s *Server) {
		s.runner = runner
	}
}

// WithVersion sets the version announced to clients.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// NewServer creates a new MCP server instance. Nothing is started until
// Serve is called.
func NewServer(cfg *config.Config, logger *logging.AppLogger, opts ...Option) *Server {
	s := &Server{
		config:  cfg,
		logger:  logger,
		version: "dev",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// initializeComponents builds the runner, tool registry and mcp-go server.
// It is idempotent.
func (s *Server) initializeComponents() {
	if s.mcpServer != nil {
		return
	}

	if s.runner == nil {
		s.runner = rshack.NewBridge(rshack.Options{
			Binary:     s.config.Binary,
			Dir:        s.config.WorkDir,
			LocalState: s.config.LocalState,
			Timeout:    s.config.Timeout,
		}, s.logger)
	}

	svc := tools.NewService(s.runner, s.config.WorkDir, s.logger)
	s.registry = NewRegistry(svc, s.logger)

	s.mcpServer = server.NewMCPServer(ServerName, s.version,
		server.WithToolCapabilities(false),
		server.WithInstructions(Instructions),
		server.WithRecovery(),
	)
	s.mcpServer.AddTools(s.registry...)

	s.logger.Debug("MCP server components initialized",
		"tools", len(s.registry),
		"binary", s.config.Binary,
		"workDir", s.config.WorkDir,
	)
}

// Tools returns the tool registry, building it if needed.
func (s *Server) Tools() []server.ServerTool {
	s.initializeComponents()
	return s.registry
}

// Serve speaks newline-delimited JSON-RPC over in and out until in is
// exhausted or ctx is cancelled. Cancellation is not an error.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	s.initializeComponents()
	s.logger.Info("Starting MCP server", "tools", len(s.registry), "version", s.version)

	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(s.logger.StandardLog())

	if err := stdio.Listen(ctx, in, out); err != nil && ctx.Err() == nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the MCP server
func (s *Server) Stop() error {
	s.logger.Info("Stopping MCP server")
	// The stdio transport exits on EOF or context cancellation; nothing else is held.
	return nil
}
