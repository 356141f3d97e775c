// Package mcp exposes rs-hack's Rust refactoring operations as Model Context
// Protocol (MCP) tools using the mcp-go library.
//
// Each tool validates its arguments, delegates to the tools package and
// returns plain text: the rs-hack output, a dry-run preview, a confirmation
// message or "Error: <message>". rs-hack failures are never protocol errors;
// only unusable arguments (a missing required parameter, a value outside a
// declared enum) produce an MCP tool error result.
//
// # Implementation
//
// The package uses the mcp-go library (github.com/mark3labs/mcp-go). The
// tool table is built once by NewRegistry and handed to the server in a
// single AddTools call. The same table backs the catalog printed by the
// command-line "tools" command.
//
// # Safety
//
// Every editing tool runs rs-hack without --apply unless the caller passes
// apply=true, so the default behavior is a preview. Applied changes are
// recorded by rs-hack under a run ID and can be undone with revert_operation.
//
// # Usage
//
// The MCP server is typically started as a subprocess by AI assistants that
// support MCP integration. It can also be started manually for testing:
//
//	rshackmcp serve
//
// The server will read JSON-RPC requests from stdin and write responses to
// stdout until it receives EOF or is terminated. Logs go to stderr, or to
// the debug log file when DEBUG is set.
//
// # Architecture
//
// The Server struct contains:
//   - config: binary, working directory, local state and timeout settings
//   - logger: Application logger for debugging and audit
//   - runner: the rs-hack process bridge
//   - registry: the static tool table
//   - mcpServer: The underlying mcp-go server instance
//
// # References
//
// - MCP Specification: https://modelcontextprotocol.io/specification
// - mcp-go Library: https://github.com/mark3labs/mcp-go
package mcp
