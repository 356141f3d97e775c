package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rshackmcp/internal/logging"
	"rshackmcp/internal/tools"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Parameter descriptions shared by several tools.
const (
	pathDescription   = `File path or glob pattern (e.g. "src/**/*.rs")`
	formatDescription = "Output format: snippets (code), locations (file:line:col) or json"
	applyDescription  = "If true, write the changes. If false, only show a preview"
)

// textHandler returns the tool's text response, or an error when the
// arguments themselves are unusable.
type textHandler func(ctx context.Context, req mcpgo.CallToolRequest) (string, error)

// registry builds the static tool table. It holds no state besides its
// dependencies.
type registry struct {
	svc    *tools.Service
	logger *logging.AppLogger
}

// NewRegistry returns one ServerTool per rs-hack operation. The slice is
// built once and never mutated; callers may share it between goroutines.
func NewRegistry(svc *tools.Service, logger *logging.AppLogger) []server.ServerTool {
	r := &registry{svc: svc, logger: logger}

	return []server.ServerTool{
		r.inspectStructLiterals(),
		r.inspectMatchArms(),
		r.inspectEnumUsage(),
		r.inspectMacroCalls(),
		r.addStructField(),
		r.updateStructField(),
		r.removeStructField(),
		r.addEnumVariant(),
		r.updateEnumVariant(),
		r.removeEnumVariant(),
		r.renameEnumVariant(),
		r.addMatchArm(),
		r.updateMatchArm(),
		r.removeMatchArm(),
		r.transform(),
		r.addDerive(),
		r.addImplMethod(),
		r.addUseStatement(),
		r.renameFunction(),
		r.addDocComment(),
		r.updateDocComment(),
		r.removeDocComment(),
		r.runBatch(),
		r.showHistory(),
		r.revertOperation(),
		r.cleanHistory(),
	}
}

// Lookup finds a tool by name.
func Lookup(registry []server.ServerTool, name string) (server.ServerTool, bool) {
	for _, t := range registry {
		if t.Tool.Name == name {
			return t, true
		}
	}
	return server.ServerTool{}, false
}

// wrap turns a textHandler into an mcp-go handler. Argument problems become
// tool errors; everything rs-hack reports is returned as text.
func (r *registry) wrap(name string, fn textHandler) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		start := time.Now()
		r.logger.LogToolCall(name, req.GetArguments())

		text, err := fn(ctx, req)
		if err != nil {
			r.logger.Warn("Rejected tool call", "tool", name, "error", err)
			return mcpgo.NewToolResultError(err.Error()), nil
		}

		r.logger.LogPerformance(name, start)
		return mcpgo.NewToolResultText(text), nil
	}
}

type enumValue interface {
	~string
	Valid() bool
}

func checkEnum[T enumValue](key, value string, allowed []string) (T, error) {
	v := T(value)
	if !v.Valid() {
		return v, fmt.Errorf("invalid %s %q: must be one of %s", key, value, strings.Join(allowed, ", "))
	}
	return v, nil
}

func requireEnum[T enumValue](req mcpgo.CallToolRequest, key string, allowed []string) (T, error) {
	value, err := req.RequireString(key)
	if err != nil {
		return T(""), err
	}
	return checkEnum[T](key, value, allowed)
}

func optionalEnum[T enumValue](req mcpgo.CallToolRequest, key string, def T, allowed []string) (T, error) {
	return checkEnum[T](key, req.GetString(key, string(def)), allowed)
}

// requireStrings fetches several required string arguments in order.
func requireStrings(req mcpgo.CallToolRequest, keys ...string) ([]string, error) {
	values := make([]string, len(keys))
	for i, key := range keys {
		v, err := req.RequireString(key)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func pathParam() mcpgo.ToolOption {
	return mcpgo.WithString("path", mcpgo.Required(), mcpgo.Description(pathDescription))
}

func formatParam() mcpgo.ToolOption {
	return mcpgo.WithString("format",
		mcpgo.Description(formatDescription),
		mcpgo.Enum(tools.Formats()...),
		mcpgo.DefaultString(string(tools.DefaultFormat)),
	)
}

func applyParam() mcpgo.ToolOption {
	return mcpgo.WithBoolean("apply", mcpgo.Description(applyDescription), mcpgo.DefaultBool(false))
}

// Inspection

func (r *registry) inspectStructLiterals() server.ServerTool {
	tool := mcpgo.NewTool("inspect_struct_literals",
		mcpgo.WithDescription("Inspect struct literal initializations in Rust files. Returns each literal with its location and code."),
		pathParam(),
		mcpgo.WithString("name", mcpgo.Description(`Optional struct name filter, supports patterns like "*::Rectangle"`)),
		formatParam(),
	)

	return server.ServerTool{Tool: tool, Handler: r.wrap(tool.Name, func(ctx context.Context, req mcpgo.CallToolRequest) (string, error) {
		path, err := req.RequireString("path")
		if err != nil {
			return "", err
		}
		format, err := optionalEnum(req, "format", tools.DefaultFormat, tools.Formats())
		if err != nil {
			return "", err
		}
		return r.svc.InspectStructLiterals(ctx, tools.InspectStructLiteralsRequest{
			Path:   path,
			Name:   req.GetString("name", ""),
			Format: format,
		}), nil
	})}
}

func (r *registry) inspectMatchArms() server.ServerTool {
	tool := mcpgo.NewTool("inspect_match_arms",
		mcpgo.WithDescription("Inspect match expression arms in Rust files. Returns each arm with its pattern and code."),
		pathParam(),
		mcpgo.WithString("name", mcpgo.Description(`Optional pattern to match (e.g. "Status::Active")`)),
		formatParam(),
	)

	return server.ServerTool{Tool: tool, Handler: r.wrap(tool.Name, func(ctx context.Context, req mcpgo.CallToolRequest) (string, error) {
		path, err := req.RequireString("path")
		if err != nil {
			return "", err
		}
		format, err := optionalEnum(req, "format", tools.DefaultFormat, tools.Formats())
		if err != nil {
			return "", err
		}
		return r.svc.InspectMatchArms(ctx, tools.InspectMatchArmsRequest{
			Path:   path,
			Name:   req.GetString("name", ""),
			Format: format,
		}), nil
	})}
}

func (r *registry) inspectEnumUsage() server.ServerTool {
	tool := mcpgo.NewTool("inspect_enum_usage",
		mcpgo.WithDescription("Find every place an enum variant is referenced in Rust files."),
		pathParam(),
		mcpgo.WithString("name", mcpgo.Required(), mcpgo.Description(`Enum variant to find (e.g. "Operator::PropagateError")`)),
		formatParam(),
	)

	return server.ServerTool{Tool: tool, Handler: r.wrap(tool.Name, func(ctx context.Context, req mcpgo.CallToolRequest) (string, error) {
		args, err := requireStrings(req, "path", "name")
		if err != nil {
			return "", err
		}
		format, err := optionalEnum(req, "format", tools.DefaultFormat, tools.Formats())
		if err != nil {
			return "", err
		}
		return r.svc.InspectEnumUsage(ctx, tools.InspectEnumUsageRequest{
			Path:   args[0],
			Name:   args[1],
			Format: format,
		}), nil
	})}
}

func (r *registry) inspectMacroCalls() server.ServerTool {
	tool := mcpgo.NewTool("inspect_macro_calls",
		mcpgo.WithDescription(`Find macro invocations in Rust files, e.g. every eprintln! containing "[DEBUG]".`),
		pathParam(),
		mcpgo.WithString("name", mcpgo.Required(), mcpgo.Description(`Macro name without the bang (e.g. "eprintln", "todo")`)),
		mcpgo.WithString("content_filter", mcpgo.Description("Only report calls whose tokens contain this text")),
		formatParam(),
	)

	return server.ServerTool{Tool: tool, Handler: r.wrap(tool.Name, func(ctx context.Context, req mcpgo.CallToolRequest) (string, error) {
		args, err := requireStrings(req, "path", "name")
		if err != nil {
			return "", err
		}
		format, err := optionalEnum(req, "format", tools.DefaultFormat, tools.Formats())
		if err != nil {
			return "", err
		}
		return r.svc.InspectMacroCalls(ctx, tools.InspectMacroCallsRequest{
			Path:          args[0],
			Name:          args[1],
			ContentFilter: req.GetString("content_filter", ""),
			Format:        format,
		}), nil
	})}
}

// Structs

func (r *registry) addStructField() server.ServerTool {
	tool := mcpgo.NewTool("add_struct_field",
		mcpgo.WithDescription("Add a field to Rust struct definitions and, with literal_default, to every struct literal."),
		pathParam(),
		mcpgo.WithString("struct_name", mcpgo.Required(), mcpgo.Description(`Name of the struct, supports patterns like "*::Rectangle"`)),
		mcpgo.WithString("field", mcpgo.Required(), mcpgo.Description(`Field definition (e.g. "email: String"), or just the name to touch literals only`)),
		mcpgo.WithString("position", mcpgo.Description(`Where to add: "after:field", "before:field" or "Last"`)),
		mcpgo.WithString("literal_default", mcpgo.Description("Also add the field to struct literals with this value")),
		applyParam(),
	)

	return server.ServerTool{Tool: tool, Handler: r.wrap(tool.Name, func(ctx context.Context, req mcpgo.CallToolRequest) (string, error) {
		args, err := requireStrings(req, "path", "struct_name", "field")
		if err != nil {
			return "", err
		}
		return r.svc.AddStructField(ctx, tools.AddStructFieldRequest{
			Path:           args[0],
			StructName:     args[1],
			Field:          args[2],
			Position:       req.GetString("position", ""),
			LiteralDefault: req.GetString("literal_default", ""),
			Apply:          req.GetBool("apply", false),
		}), nil
	})}
}

func (r *registry) updateStructField() server.ServerTool {
	tool := mcpgo.NewTool("update_struct_field",
		mcpgo.WithDescription("Change the type or visibility of an existing struct field."),
		pathParam(),
		mcpgo.WithString("struct_name", mcpgo.Required(), mcpgo.Description("Name of the struct")),
		mcpgo.WithString("field", mcpgo.Required(), mcpgo.Description(`New field definition (e.g. "pub email: String")`)),
		applyParam(),
	)

	return server.ServerTool{Tool: tool, Handler: r.wrap(tool.Name, func(ctx context.Context, req mcpgo.CallToolRequest) (string, error) {
		args, err := requireStrings(req, "path", "struct_name", "field")
		if err != nil {
			return "", err
		}
		return r.svc.UpdateStructField(ctx, tools.UpdateStructFieldRequest{
			Path:       args[0],
			StructName: args[1],
			Field:      args[2],
			Apply:      req.GetBool("apply", false),
		}), nil
	})}
}

func (r *registry) removeStructField() server.ServerTool {
	tool := mcpgo.NewTool("remove_struct_field",
		mcpgo.WithDescription("Remove a field from a struct definition and from every literal of that struct."),
		pathParam(),
		mcpgo.WithString("struct_name", mcpgo.Required(), mcpgo.Description(`Name of the struct, or "Enum::Variant" for a struct-like variant`)),
		mcpgo.WithString("field_name", mcpgo.Required(), mcpgo.Description("Name of the field to remove")),
		mcpgo.WithBoolean("literal_only", mcpgo.Description("Only remove the field from struct literals, keep the definition"), mcpgo.DefaultBool(false)),
		applyParam(),
	)

	return server.ServerTool{Tool: tool, Handler: r.wrap(tool.Name, func(ctx context.Context, req mcpgo.CallToolRequest) (string, error) {
		args, err := requireStrings(req, "path", "struct_name", "field_name")
		if err != nil {
			return "", err
		}
		return r.svc.RemoveStructField(ctx, tools.RemoveStructFieldRequest{
			Path:        args[0],
			StructName:  args[1],
			FieldName:   args[2],
			LiteralOnly: req.GetBool("literal_only", false),
			Apply:       req.GetBool("apply", false),
		}), nil
	})}
}

// Enums

func (r *registry) addEnumVariant() server.ServerTool {
	tool := mcpgo.NewTool("add_enum_variant",
		mcpgo.WithDescription("Add a variant to a Rust enum."),
		pathParam(),
		mcpgo.WithString("enum_name", mcpgo.Required(), mcpgo.Description("Name of the enum")),
		mcpgo.WithString("variant", mcpgo.Required(), mcpgo.Description(`Variant definition (e.g. "Pending" or "Error { code: i32 }")`)),
		applyParam(),
	)

	return server.ServerTool{Tool: tool, Handler: r.wrap(tool.Name, func(ctx context.Context, req mcpgo.CallToolRequest) (string, error) {
		args, err := requireStrings(req, "path", "enum_name", "variant")
		if err != nil {
			return "", err
		}
		return r.svc.AddEnumVariant(ctx, tools.AddEnumVariantRequest{
			Path:     args[0],
			EnumName: args[1],
			Variant:  args[2],
			Apply:    req.GetBool("apply", false),
		}), nil
	})}
}

func (r *registry) updateEnumVariant() server.ServerTool {
	tool := mcpgo.NewTool("update_enum_variant",
		mcpgo.WithDescription("Replace the definition of an existing enum variant, e.g. to add fields."),
		pathParam(),
		mcpgo.WithString("enum_name", mcpgo.Required(), mcpgo.Description("Name of the enum")),
		mcpgo.WithString("variant", mcpgo.Required(), mcpgo.Description(`New variant definition (e.g. "Active { user_id: u32 }")`)),
		applyParam(),
	)

	return server.ServerTool{Tool: tool, Handler: r.wrap(tool.Name, func(ctx context.Context, req mcpgo.CallToolRequest) (string, error) {
		args, err := requireStrings(req, "path", "enum_name", "variant")
		if err != nil {
			return "", err
		}
		return r.svc.UpdateEnumVariant(ctx, tools.UpdateEnumVariantRequest{
			Path:     args[0],
			EnumName: args[1],
			Variant:  args[2],
			Apply:    req.GetBool("apply", false),
		}), nil
	})}
}

func (r *registry) removeEnumVariant() server.ServerTool {
	tool := mcpgo.NewTool("remove_enum_variant",
		mcpgo.WithDescription("Remove a variant from an enum definition."),
		pathParam(),
		mcpgo.WithString("enum_name", mcpgo.Required(), mcpgo.Description("Name of the enum")),
		mcpgo.WithString("variant_name", mcpgo.Required(), mcpgo.Description("Name of the variant to remove")),
		applyParam(),
	)

	return server.ServerTool{Tool: tool, Handler: r.wrap(tool.Name, func(ctx context.Context, req mcpgo.CallToolRequest) (string, error) {
		args, err := requireStrings(req, "path", "enum_name", "variant_name")
		if err != nil {
			return "", err
		}
		return r.svc.RemoveEnumVariant(ctx, tools.RemoveEnumVariantRequest{
			Path:        args[0],
			EnumName:    args[1],
			VariantName: args[2],
			Apply:       req.GetBool("apply", false),
		}), nil
	})}
}

func (r *registry) renameEnumVariant() server.ServerTool {
	tool := mcpgo.NewTool("rename_enum_variant",
		mcpgo.WithDescription("Rename an enum variant in its definition, match patterns, constructors and every other reference."),
		pathParam(),
		mcpgo.WithString("enum_name", mcpgo.Required(), mcpgo.Description("Name of the enum")),
		mcpgo.WithString("old_variant", mcpgo.Required(), mcpgo.Description("Current variant name")),
		mcpgo.WithString("new_variant", mcpgo.Required(), mcpgo.Description("New variant name")),
		applyParam(),
	)

	return server.ServerTool{Tool: tool, Handler: r.wrap(tool.Name, func(ctx context.Context, req mcpgo.CallToolRequest) (string, error) {
		args, err := requireStrings(req, "path", "enum_name", "old_variant", "new_variant")
		if err != nil {
			return "", err
		}
		return r.svc.RenameEnumVariant(ctx, tools.RenameEnumVariantRequest{
			Path:       args[0],
			EnumName:   args[1],
			OldVariant: args[2],
			NewVariant: args[3],
			Apply:      req.GetBool("apply", false),
		}), nil
	})}
}

// Match expressions

func (r *registry) addMatchArm() server.ServerTool {
	tool := mcpgo.NewTool("add_match_arm",
		mcpgo.WithDescription("Add an arm to match expressions, or with auto_detect add every missing variant of enum_name."),
		mcpgo.WithString("path", mcpgo.Required(), mcpgo.Description("File path")),
		mcpgo.WithString("pattern", mcpgo.Required(), mcpgo.Description(`Match pattern (e.g. "Status::Archived"); ignored with auto_detect`)),
		mcpgo.WithString("body", mcpgo.Required(), mcpgo.Description(`Arm body (e.g. "\"archived\".to_string()")`)),
		mcpgo.WithString("function", mcpgo.Description("Only edit matches inside this function")),
		mcpgo.WithString("enum_name", mcpgo.Description("Enum whose variants auto_detect completes")),
		mcpgo.WithBoolean("auto_detect", mcpgo.Description("Add an arm for every missing variant of enum_name"), mcpgo.DefaultBool(false)),
		applyParam(),
	)

	return server.ServerTool{Tool: tool, Handler: r.wrap(tool.Name, func(ctx context.Context, req mcpgo.CallToolRequest) (string, error) {
		args, err := requireStrings(req, "path", "pattern", "body")
		if err != nil {
			return "", err
		}
		return r.svc.AddMatchArm(ctx, tools.AddMatchArmRequest{
			Path:       args[0],
			Pattern:    args[1],
			Body:       args[2],
			Function:   req.GetString("function", ""),
			EnumName:   req.GetString("enum_name", ""),
			AutoDetect: req.GetBool("auto_detect", false),
			Apply:      req.GetBool("apply", false),
		}), nil
	})}
}

func (r *registry) updateMatchArm() server.ServerTool {
	tool := mcpgo.NewTool("update_match_arm",
		mcpgo.WithDescription("Replace the body of existing match arms with the given pattern."),
		pathParam(),
		mcpgo.WithString("pattern", mcpgo.Required(), mcpgo.Description(`Match pattern (e.g. "Status::Draft")`)),
		mcpgo.WithString("body", mcpgo.Required(), mcpgo.Description("New arm body")),
		mcpgo.WithString("function", mcpgo.Description("Only edit matches inside this function")),
		applyParam(),
	)

	return server.ServerTool{Tool: tool, Handler: r.wrap(tool.Name, func(ctx context.Context, req mcpgo.CallToolRequest) (string, error) {
		args, err := requireStrings(req, "path", "pattern", "body")
		if err != nil {
			return "", err
		}
		return r.svc.UpdateMatchArm(ctx, tools.UpdateMatchArmRequest{
			Path:     args[0],
			Pattern:  args[1],
			Body:     args[2],
			Function: req.GetString("function", ""),
			Apply:    req.GetBool("apply", false),
		}), nil
	})}
}

func (r *registry) removeMatchArm() server.ServerTool {
	tool := mcpgo.NewTool("remove_match_arm",
		mcpgo.WithDescription("Remove match arms with the given pattern."),
		pathParam(),
		mcpgo.WithString("pattern", mcpgo.Required(), mcpgo.Description(`Pattern of the arms to remove (e.g. "Status::Deleted")`)),
		mcpgo.WithString("function", mcpgo.Description("Only edit matches inside this function")),
		applyParam(),
	)

	return server.ServerTool{Tool: tool, Handler: r.wrap(tool.Name, func(ctx context.Context, req mcpgo.CallToolRequest) (string, error) {
		args, err := requireStrings(req, "path", "pattern")
		if err != nil {
			return "", err
		}
		return r.svc.RemoveMatchArm(ctx, tools.RemoveMatchArmRequest{
			Path:     args[0],
			Pattern:  args[1],
			Function: req.GetString("function", ""),
			Apply:    req.GetBool("apply", false),
		}), nil
	})}
}

// Generic transform

func (r *registry) transform() server.ServerTool {
	tool := mcpgo.NewTool("transform",
		mcpgo.WithDescription("Find AST nodes of any kind and comment them out, remove them or replace them."),
		pathParam(),
		mcpgo.WithString("node_type", mcpgo.Required(), mcpgo.Description("Kind of AST node to find"), mcpgo.Enum(tools.NodeTypes()...)),
		mcpgo.WithString("action", mcpgo.Required(), mcpgo.Description("What to do with each match"), mcpgo.Enum(tools.Actions()...)),
		mcpgo.WithString("name", mcpgo.Description(`Name filter (e.g. "eprintln" for macros)`)),
		mcpgo.WithString("content_filter", mcpgo.Description(`Content filter (e.g. "[DEBUG]")`)),
		mcpgo.WithString("replacement", mcpgo.Description(`Replacement code, used only when action is "replace"`)),
		applyParam(),
	)

	return server.ServerTool{Tool: tool, Handler: r.wrap(tool.Name, func(ctx context.Context, req mcpgo.CallToolRequest) (string, error) {
		path, err := req.RequireString("path")
		if err != nil {
			return "", err
		}
		nodeType, err := requireEnum[tools.NodeType](req, "node_type", tools.NodeTypes())
		if err != nil {
			return "", err
		}
		action, err := requireEnum[tools.Action](req, "action", tools.Actions())
		if err != nil {
			return "", err
		}
		return r.svc.Transform(ctx, tools.TransformRequest{
			Path:          path,
			NodeType:      nodeType,
			Action:        action,
			Name:          req.GetString("name", ""),
			ContentFilter: req.GetString("content_filter", ""),
			Replacement:   req.GetString("replacement", ""),
			Apply:         req.GetBool("apply", false),
		}), nil
	})}
}

// Derives, impl blocks and imports

func (r *registry) addDerive() server.ServerTool {
	tool := mcpgo.NewTool("add_derive",
		mcpgo.WithDescription("Add derive macros to structs or enums."),
		pathParam(),
		mcpgo.WithString("target_type", mcpgo.Required(), mcpgo.Description("Kind of item"), mcpgo.Enum(tools.TargetTypes()...)),
		mcpgo.WithString("name", mcpgo.Required(), mcpgo.Description("Name of the type")),
		mcpgo.WithString("derives", mcpgo.Required(), mcpgo.Description(`Comma-separated derives (e.g. "Clone,Debug,Serialize")`)),
		mcpgo.WithString("where_filter", mcpgo.Description(`Only touch items matching this filter (e.g. "derives_trait:Clone")`)),
		applyParam(),
	)

	return server.ServerTool{Tool: tool, Handler: r.wrap(tool.Name, func(ctx context.Context, req mcpgo.CallToolRequest) (string, error) {
		path, err := req.RequireString("path")
		if err != nil {
			return "", err
		}
		target, err := requireEnum[tools.TargetType](req, "target_type", tools.TargetTypes())
		if err != nil {
			return "", err
		}
		args, err := requireStrings(req, "name", "derives")
		if err != nil {
			return "", err
		}
		return r.svc.AddDerive(ctx, tools.AddDeriveRequest{
			Path:       path,
			TargetType: target,
			Name:       args[0],
			Derives:    args[1],
			Where:      req.GetString("where_filter", ""),
			Apply:      req.GetBool("apply", false),
		}), nil
	})}
}

func (r *registry) addImplMethod() server.ServerTool {
	tool := mcpgo.NewTool("add_impl_method",
		mcpgo.WithDescription("Add a method to the impl block of a struct or enum."),
		pathParam(),
		mcpgo.WithString("target", mcpgo.Required(), mcpgo.Description("Type whose impl block receives the method")),
		mcpgo.WithString("method", mcpgo.Required(), mcpgo.Description(`Full method source (e.g. "pub fn id(&self) -> u64 { self.id }")`)),
		mcpgo.WithString("position", mcpgo.Description(`Where to add: "top", "bottom", "after:method" or "before:method"`)),
		applyParam(),
	)

	return server.ServerTool{Tool: tool, Handler: r.wrap(tool.Name, func(ctx context.Context, req mcpgo.CallToolRequest) (string, error) {
		args, err := requireStrings(req, "path", "target", "method")
		if err != nil {
			return "", err
		}
		return r.svc.AddImplMethod(ctx, tools.AddImplMethodRequest{
			Path:     args[0],
			Target:   args[1],
			Method:   args[2],
			Position: req.GetString("position", ""),
			Apply:    req.GetBool("apply", false),
		}), nil
	})}
}

func (r *registry) addUseStatement() server.ServerTool {
	tool := mcpgo.NewTool("add_use_statement",
		mcpgo.WithDescription("Add a use statement to Rust files that do not already import the path."),
		pathParam(),
		mcpgo.WithString("use_path", mcpgo.Required(), mcpgo.Description(`Path to import (e.g. "std::collections::HashMap")`)),
		mcpgo.WithString("position", mcpgo.Description(`Where to add: "top" or "after:use_path"`)),
		applyParam(),
	)

	return server.ServerTool{Tool: tool, Handler: r.wrap(tool.Name, func(ctx context.Context, req mcpgo.CallToolRequest) (string, error) {
		args, err := requireStrings(req, "path", "use_path")
		if err != nil {
			return "", err
		}
		return r.svc.AddUse(ctx, tools.AddUseRequest{
			Path:     args[0],
			UsePath:  args[1],
			Position: req.GetString("position", ""),
			Apply:    req.GetBool("apply", false),
		}), nil
	})}
}

// Functions and documentation

func (r *registry) renameFunction() server.ServerTool {
	tool := mcpgo.NewTool("rename_function",
		mcpgo.WithDescription("Rename a function and every call site."),
		pathParam(),
		mcpgo.WithString("old_name", mcpgo.Required(), mcpgo.Description("Current function name")),
		mcpgo.WithString("new_name", mcpgo.Required(), mcpgo.Description("New function name")),
		mcpgo.WithString("function_path", mcpgo.Description(`Fully qualified path (e.g. "crate::utils::process_v2") so qualified calls and imports are renamed too`)),
		applyParam(),
	)

	return server.ServerTool{Tool: tool, Handler: r.wrap(tool.Name, func(ctx context.Context, req mcpgo.CallToolRequest) (string, error) {
		args, err := requireStrings(req, "path", "old_name", "new_name")
		if err != nil {
			return "", err
		}
		return r.svc.RenameFunction(ctx, tools.RenameFunctionRequest{
			Path:         args[0],
			OldName:      args[1],
			NewName:      args[2],
			FunctionPath: req.GetString("function_path", ""),
			Apply:        req.GetBool("apply", false),
		}), nil
	})}
}

func docTargetParam() mcpgo.ToolOption {
	return mcpgo.WithString("target_type", mcpgo.Required(), mcpgo.Description("Kind of item"), mcpgo.Enum(tools.DocTargets()...))
}

func docNameParam() mcpgo.ToolOption {
	return mcpgo.WithString("name", mcpgo.Required(), mcpgo.Description(`Item name (e.g. "User", "Status::Draft", "User::id")`))
}

// docTarget extracts the path, target_type and name shared by the doc comment tools.
func docTarget(req mcpgo.CallToolRequest) (string, tools.DocTarget, string, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return "", "", "", err
	}
	target, err := requireEnum[tools.DocTarget](req, "target_type", tools.DocTargets())
	if err != nil {
		return "", "", "", err
	}
	name, err := req.RequireString("name")
	if err != nil {
		return "", "", "", err
	}
	return path, target, name, nil
}

func (r *registry) addDocComment() server.ServerTool {
	tool := mcpgo.NewTool("add_doc_comment",
		mcpgo.WithDescription("Add a documentation comment to a struct, enum, function, field or variant."),
		pathParam(),
		docTargetParam(),
		docNameParam(),
		mcpgo.WithString("doc_comment", mcpgo.Required(), mcpgo.Description("Comment text without the /// prefix")),
		mcpgo.WithString("style",
			mcpgo.Description("line (///) or block (/** */)"),
			mcpgo.Enum(tools.DocStyles()...),
			mcpgo.DefaultString(string(tools.DefaultDocStyle)),
		),
		applyParam(),
	)

	return server.ServerTool{Tool: tool, Handler: r.wrap(tool.Name, func(ctx context.Context, req mcpgo.CallToolRequest) (string, error) {
		path, target, name, err := docTarget(req)
		if err != nil {
			return "", err
		}
		text, err := req.RequireString("doc_comment")
		if err != nil {
			return "", err
		}
		style, err := optionalEnum(req, "style", tools.DefaultDocStyle, tools.DocStyles())
		if err != nil {
			return "", err
		}
		return r.svc.AddDocComment(ctx, tools.AddDocCommentRequest{
			Path:       path,
			TargetType: target,
			Name:       name,
			Text:       text,
			Style:      style,
			Apply:      req.GetBool("apply", false),
		}), nil
	})}
}

func (r *registry) updateDocComment() server.ServerTool {
	tool := mcpgo.NewTool("update_doc_comment",
		mcpgo.WithDescription("Replace an existing documentation comment."),
		pathParam(),
		docTargetParam(),
		docNameParam(),
		mcpgo.WithString("doc_comment", mcpgo.Required(), mcpgo.Description("New comment text")),
		applyParam(),
	)

	return server.ServerTool{Tool: tool, Handler: r.wrap(tool.Name, func(ctx context.Context, req mcpgo.CallToolRequest) (string, error) {
		path, target, name, err := docTarget(req)
		if err != nil {
			return "", err
		}
		text, err := req.RequireString("doc_comment")
		if err != nil {
			return "", err
		}
		return r.svc.UpdateDocComment(ctx, tools.UpdateDocCommentRequest{
			Path:       path,
			TargetType: target,
			Name:       name,
			Text:       text,
			Apply:      req.GetBool("apply", false),
		}), nil
	})}
}

func (r *registry) removeDocComment() server.ServerTool {
	tool := mcpgo.NewTool("remove_doc_comment",
		mcpgo.WithDescription("Remove the documentation comment from an item."),
		pathParam(),
		docTargetParam(),
		docNameParam(),
		applyParam(),
	)

	return server.ServerTool{Tool: tool, Handler: r.wrap(tool.Name, func(ctx context.Context, req mcpgo.CallToolRequest) (string, error) {
		path, target, name, err := docTarget(req)
		if err != nil {
			return "", err
		}
		return r.svc.RemoveDocComment(ctx, tools.RemoveDocCommentRequest{
			Path:       path,
			TargetType: target,
			Name:       name,
			Apply:      req.GetBool("apply", false),
		}), nil
	})}
}

// Batch and history

func (r *registry) runBatch() server.ServerTool {
	tool := mcpgo.NewTool("run_batch",
		mcpgo.WithDescription("Run several rs-hack operations described in a JSON or YAML batch file as one tracked run."),
		mcpgo.WithString("spec", mcpgo.Required(), mcpgo.Description("Path of the batch specification file")),
		applyParam(),
	)

	return server.ServerTool{Tool: tool, Handler: r.wrap(tool.Name, func(ctx context.Context, req mcpgo.CallToolRequest) (string, error) {
		spec, err := req.RequireString("spec")
		if err != nil {
			return "", err
		}
		return r.svc.RunBatch(ctx, tools.BatchRequest{
			Spec:  spec,
			Apply: req.GetBool("apply", false),
		}), nil
	})}
}

func (r *registry) showHistory() server.ServerTool {
	tool := mcpgo.NewTool("show_history",
		mcpgo.WithDescription("Show recent rs-hack operations with their run IDs and status."),
		mcpgo.WithNumber("limit",
			mcpgo.Description("Number of recent operations to show"),
			mcpgo.DefaultNumber(tools.DefaultHistoryLimit),
		),
	)

	return server.ServerTool{Tool: tool, Handler: r.wrap(tool.Name, func(ctx context.Context, req mcpgo.CallToolRequest) (string, error) {
		return r.svc.ShowHistory(ctx, tools.HistoryRequest{
			Limit: req.GetInt("limit", tools.DefaultHistoryLimit),
		}), nil
	})}
}

func (r *registry) revertOperation() server.ServerTool {
	tool := mcpgo.NewTool("revert_operation",
		mcpgo.WithDescription("Revert a previous rs-hack operation by run ID."),
		mcpgo.WithString("run_id", mcpgo.Required(), mcpgo.Description(`Run ID from show_history (7-character hash, e.g. "a05a626")`)),
		mcpgo.WithBoolean("force", mcpgo.Description("Revert even if the files changed since"), mcpgo.DefaultBool(false)),
	)

	return server.ServerTool{Tool: tool, Handler: r.wrap(tool.Name, func(ctx context.Context, req mcpgo.CallToolRequest) (string, error) {
		runID, err := req.RequireString("run_id")
		if err != nil {
			return "", err
		}
		return r.svc.RevertOperation(ctx, tools.RevertRequest{
			RunID: runID,
			Force: req.GetBool("force", false),
		}), nil
	})}
}

func (r *registry) cleanHistory() server.ServerTool {
	tool := mcpgo.NewTool("clean_history",
		mcpgo.WithDescription("Delete rs-hack state and backups older than keep_days."),
		mcpgo.WithNumber("keep_days",
			mcpgo.Description("Keep runs newer than this many days"),
			mcpgo.DefaultNumber(tools.DefaultKeepDays),
		),
	)

	return server.ServerTool{Tool: tool, Handler: r.wrap(tool.Name, func(ctx context.Context, req mcpgo.CallToolRequest) (string, error) {
		return r.svc.CleanHistory(ctx, tools.CleanRequest{
			KeepDays: req.GetInt("keep_days", tools.DefaultKeepDays),
		}), nil
	})}
}

// Call invokes a registry tool directly, without a transport. It returns the
// text content of the result and whether the tool reported an error.
func Call(ctx context.Context, registry []server.ServerTool, name string, arguments map[string]any) (string, bool, error) {
	tool, ok := Lookup(registry, name)
	if !ok {
		return "", false, fmt.Errorf("unknown tool %q", name)
	}

	var req mcpgo.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = arguments

	result, err := tool.Handler(ctx, req)
	if err != nil {
		return "", false, fmt.Errorf("tool %s failed: %w", name, err)
	}

	var parts []string
	for _, content := range result.Content {
		if text, ok := mcpgo.AsTextContent(content); ok {
			parts = append(parts, text.Text)
		}
	}
	return strings.Join(parts, "\n"), result.IsError, nil
}
