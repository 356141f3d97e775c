package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"rshackmcp/internal/mcp"

	"github.com/spf13/cobra"
)

func (a *app) newCallCmd() *cobra.Command {
	var rawArgs string

	cmd := &cobra.Command{
		Use:   "call <tool>",
		Short: "Invoke one tool locally and print its result",
		Long: `Invokes a tool exactly as an MCP client would and prints the text it returns.

Arguments are a JSON object:
  rshackmcp call inspect_enum_usage --args '{"path":"src/**/*.rs","name":"Status::Draft"}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arguments, err := parseToolArguments(rawArgs)
			if err != nil {
				return err
			}

			srv, err := a.newMCPServer(cmd)
			if err != nil {
				return err
			}

			text, isError, err := mcp.Call(cmd.Context(), srv.Tools(), args[0], arguments)
			if err != nil {
				return err
			}
			if isError {
				return errors.New(text)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().StringVar(&rawArgs, "args", "{}", "tool arguments as a JSON object")
	return cmd
}

func parseToolArguments(raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return map[string]any{}, nil
	}

	var arguments map[string]any
	if err := json.Unmarshal([]byte(raw), &arguments); err != nil {
		return nil, fmt.Errorf("invalid --args: %w", err)
	}
	if arguments == nil {
		arguments = map[string]any{}
	}
	return arguments, nil
}
