package mcp

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// CatalogMarkdown renders the registry as a Markdown document, one section
// per tool with a parameter table.
func CatalogMarkdown(registry []server.ServerTool) string {
	var b strings.Builder

	b.WriteString("# rs-hack MCP tools\n\n")
	fmt.Fprintf(&b, "%d tools. Editing tools preview their changes unless `apply` is true.\n", len(registry))

	for _, t := range registry {
		fmt.Fprintf(&b, "\n## %s\n\n%s\n", t.Tool.Name, t.Tool.Description)

		params := parameterNames(t.Tool)
		if len(params) == 0 {
			b.WriteString("\nNo parameters.\n")
			continue
		}

		b.WriteString("\n| Parameter | Type | Required | Default | Description |\n")
		b.WriteString("|---|---|---|---|---|\n")
		for _, name := range params {
			prop, _ := t.Tool.InputSchema.Properties[name].(map[string]any)
			fmt.Fprintf(&b, "| `%s` | %s | %s | %s | %s |\n",
				name,
				propertyType(prop),
				yesNo(slices.Contains(t.Tool.InputSchema.Required, name)),
				propertyDefault(prop),
				escapeCell(propertyDescription(prop)),
			)
		}
	}

	return b.String()
}

// parameterNames lists required parameters in declaration order, then the
// optional ones alphabetically.
func parameterNames(tool mcpgo.Tool) []string {
	required := tool.InputSchema.Required
	names := slices.Clone(required)

	var optional []string
	for name := range tool.InputSchema.Properties {
		if !slices.Contains(required, name) {
			optional = append(optional, name)
		}
	}
	sort.Strings(optional)

	return append(names, optional...)
}

func propertyType(prop map[string]any) string {
	typ, _ := prop["type"].(string)
	if values, ok := prop["enum"].([]string); ok && len(values) > 0 {
		return fmt.Sprintf("%s (%s)", typ, strings.Join(values, ", "))
	}
	return typ
}

func propertyDefault(prop map[string]any) string {
	def, ok := prop["default"]
	if !ok {
		return ""
	}
	return fmt.Sprintf("`%v`", def)
}

func propertyDescription(prop map[string]any) string {
	desc, _ := prop["description"].(string)
	return desc
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
