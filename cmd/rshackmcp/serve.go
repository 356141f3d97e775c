package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func (a *app) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		Long: `Starts a Model Context Protocol (MCP) server over stdio.

The server reads newline-delimited JSON-RPC requests from stdin and writes
responses to stdout until stdin is closed or the process is interrupted.
Logs never go to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runServe(cmd)
		},
	}
}

func (a *app) runServe(cmd *cobra.Command) error {
	srv, err := a.newMCPServer(cmd)
	if err != nil {
		return err
	}
	defer srv.Stop()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
}
