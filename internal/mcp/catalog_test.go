package mcp

import (
	"fmt"
	"strings"
	"testing"

	"rshackmcp/internal/rshack"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
)

func TestCatalogMarkdown(t *testing.T) {
	registry, _ := newTestRegistry(t, rshack.TextResult(""))

	md := CatalogMarkdown(registry)

	assert.True(t, strings.HasPrefix(md, "# rs-hack MCP tools\n"))
	assert.Contains(t, md, fmt.Sprintf("%d tools.", len(allTools)))
	for _, name := range allTools {
		assert.Contains(t, md, "\n## "+name+"\n", name)
	}
	assert.Contains(t, md, "| `node_type` | string (macro-call, method-call, function-call, enum-usage, struct-literal, match-arm, identifier, type-ref) | yes |  |")
	assert.Contains(t, md, "| `apply` | boolean | no | `false` |")
	assert.Contains(t, md, "| `limit` | number | no | `10` |")
	assert.Contains(t, md, "| `style` | string (line, block) | no | `line` |")
}

func TestCatalogMarkdownWithoutParameters(t *testing.T) {
	registry := []server.ServerTool{{Tool: mcpgo.NewTool("ping", mcpgo.WithDescription("Health check"))}}

	md := CatalogMarkdown(registry)

	assert.Contains(t, md, "## ping\n\nHealth check\n\nNo parameters.\n")
}

func TestParameterNamesOrder(t *testing.T) {
	tool := mcpgo.NewTool("t",
		mcpgo.WithString("zeta", mcpgo.Required()),
		mcpgo.WithString("beta"),
		mcpgo.WithString("alpha", mcpgo.Required()),
		mcpgo.WithBoolean("apply"),
	)

	assert.Equal(t, []string{"zeta", "alpha", "apply", "beta"}, parameterNames(tool))
}

func TestEscapeCell(t *testing.T) {
	assert.Equal(t, `a \| b`, escapeCell("a | b"))
}
