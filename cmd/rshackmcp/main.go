// Package main is the entry point for the rshackmcp CLI application.
//
// rshackmcp serves rs-hack's AST-aware Rust refactoring operations as MCP
// tools over stdio. The startup sequence is:
//
// 1. Initialize logging (stderr, or the debug log file when DEBUG is set) and
//    install it as the package default
// 2. Load the config file, then apply environment and flag overrides
// 3. Validate the result and build the MCP server
// 4. Serve until the client closes stdin or the process is signalled
//
// The same tool registry backs the "tools" and "call" commands, which help
// when wiring the server into an assistant or debugging an rs-hack install.
package main

import (
	"os"

	"rshackmcp/internal/logging"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	appLogger := logging.NewAppLogger()

	if err := newRootCmd(appLogger).Execute(); err != nil {
		appLogger.Error("rshackmcp failed", "error", err)
		os.Exit(1)
	}
}
