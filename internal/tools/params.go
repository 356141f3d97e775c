package tools

import "slices"

// Format selects how inspect results are printed by rs-hack.
type Format string

const (
	FormatSnippets  Format = "snippets"
	FormatLocations Format = "locations"
	FormatJSON      Format = "json"
)

// DefaultFormat is used when a caller omits the format parameter.
const DefaultFormat = FormatSnippets

// NodeType is the kind of AST node transform operates on.
type NodeType string

const (
	NodeMacroCall     NodeType = "macro-call"
	NodeMethodCall    NodeType = "method-call"
	NodeFunctionCall  NodeType = "function-call"
	NodeEnumUsage     NodeType = "enum-usage"
	NodeStructLiteral NodeType = "struct-literal"
	NodeMatchArm      NodeType = "match-arm"
	NodeIdentifier    NodeType = "identifier"
	NodeTypeRef       NodeType = "type-ref"
)

// Action is what transform does to each matched node.
type Action string

const (
	ActionComment Action = "comment"
	ActionRemove  Action = "remove"
	ActionReplace Action = "replace"
)

// TargetType is the item kind add_derive attaches derives to.
type TargetType string

const (
	TargetStruct TargetType = "struct"
	TargetEnum   TargetType = "enum"
)

// DocTarget is the item kind a doc comment operation addresses.
type DocTarget string

const (
	DocStruct   DocTarget = "struct"
	DocEnum     DocTarget = "enum"
	DocFunction DocTarget = "function"
	DocField    DocTarget = "field"
	DocVariant  DocTarget = "variant"
)

// DocStyle selects /// line comments or /** */ blocks.
type DocStyle string

const (
	DocStyleLine  DocStyle = "line"
	DocStyleBlock DocStyle = "block"
)

const DefaultDocStyle = DocStyleLine

var (
	formats     = []Format{FormatSnippets, FormatLocations, FormatJSON}
	nodeTypes   = []NodeType{NodeMacroCall, NodeMethodCall, NodeFunctionCall, NodeEnumUsage, NodeStructLiteral, NodeMatchArm, NodeIdentifier, NodeTypeRef}
	actions     = []Action{ActionComment, ActionRemove, ActionReplace}
	targetTypes = []TargetType{TargetStruct, TargetEnum}
	docTargets  = []DocTarget{DocStruct, DocEnum, DocFunction, DocField, DocVariant}
	docStyles   = []DocStyle{DocStyleLine, DocStyleBlock}
)

// Formats lists the accepted Format values in schema order.
func Formats() []string { return stringsOf(formats) }

// NodeTypes lists the accepted NodeType values in schema order.
func NodeTypes() []string { return stringsOf(nodeTypes) }

// Actions lists the accepted Action values in schema order.
func Actions() []string { return stringsOf(actions) }

// TargetTypes lists the accepted TargetType values in schema order.
func TargetTypes() []string { return stringsOf(targetTypes) }

// DocTargets lists the accepted DocTarget values in schema order.
func DocTargets() []string { return stringsOf(docTargets) }

// DocStyles lists the accepted DocStyle values in schema order.
func DocStyles() []string { return stringsOf(docStyles) }

// Valid reports whether f is one of the declared formats.
func (f Format) Valid() bool { return slices.Contains(formats, f) }

// Valid reports whether n is one of the declared node types.
func (n NodeType) Valid() bool { return slices.Contains(nodeTypes, n) }

// Valid reports whether a is one of the declared actions.
func (a Action) Valid() bool { return slices.Contains(actions, a) }

// Valid reports whether t is one of the declared target types.
func (t TargetType) Valid() bool { return slices.Contains(targetTypes, t) }

func (d DocTarget) Valid() bool { return slices.Contains(docTargets, d) }

func (d DocStyle) Valid() bool { return slices.Contains(docStyles, d) }

func stringsOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
