package main

import (
	"fmt"
	"os"
	"time"

	"rshackmcp/internal/mcp"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

const catalogWordWrap = 100

func (a *app) newToolsCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the MCP tools and their parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv, err := a.newMCPServer(cmd)
			if err != nil {
				return err
			}

			md := mcp.CatalogMarkdown(srv.Tools())
			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), md)
				return err
			}

			out, err := renderMarkdown(md, detectGlamourStyle(50*time.Millisecond))
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print plain Markdown instead of rendering it")
	return cmd
}

func renderMarkdown(md, style string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(catalogWordWrap),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render tool catalog: %w", err)
	}
	return out, nil
}

// detectGlamourStyle respects GLAMOUR_STYLE when it names a concrete style and
// otherwise asks the terminal for its background, falling back to "dark" when
// the terminal does not answer within timeout.
func detectGlamourStyle(timeout time.Duration) string {
	style := os.Getenv("GLAMOUR_STYLE")
	if style != "" && style != "auto" {
		return style
	}

	ch := make(chan string, 1)
	go func() {
		if termenv.NewOutput(os.Stdout).HasDarkBackground() {
			ch <- "dark"
			return
		}
		ch <- "light"
	}()

	select {
	case s := <-ch:
		return s
	case <-time.After(timeout):
		return "dark"
	}
}
