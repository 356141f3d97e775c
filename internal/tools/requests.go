package tools

import "strconv"

// argv accumulates rs-hack command-line tokens.
type argv []string

func command(name string) argv { return argv{name} }

func (a argv) flag(name, value string) argv { return append(a, name, value) }

// optional adds the flag only when value is non-empty.
func (a argv) optional(name, value string) argv {
	if value == "" {
		return a
	}
	return a.flag(name, value)
}

// toggle adds a bare flag when on is set.
func (a argv) toggle(name string, on bool) argv {
	if !on {
		return a
	}
	return append(a, name)
}

func (a argv) apply(on bool) argv { return a.toggle("--apply", on) }

func formatOrDefault(f Format) string {
	if f == "" {
		return string(DefaultFormat)
	}
	return string(f)
}

// Inspection

type InspectStructLiteralsRequest struct {
	Path   string
	Name   string
	Format Format
}

func (r InspectStructLiteralsRequest) Args() []string {
	return command("inspect").
		flag("--path", r.Path).
		flag("--node-type", string(NodeStructLiteral)).
		flag("--format", formatOrDefault(r.Format)).
		optional("--name", r.Name)
}

type InspectMatchArmsRequest struct {
	Path   string
	Name   string
	Format Format
}

func (r InspectMatchArmsRequest) Args() []string {
	return command("inspect").
		flag("--path", r.Path).
		flag("--node-type", string(NodeMatchArm)).
		flag("--format", formatOrDefault(r.Format)).
		optional("--name", r.Name)
}

type InspectEnumUsageRequest struct {
	Path   string
	Name   string
	Format Format
}

func (r InspectEnumUsageRequest) Args() []string {
	return command("inspect").
		flag("--path", r.Path).
		flag("--node-type", string(NodeEnumUsage)).
		flag("--name", r.Name).
		flag("--format", formatOrDefault(r.Format))
}

type InspectMacroCallsRequest struct {
	Path          string
	Name          string
	ContentFilter string
	Format        Format
}

func (r InspectMacroCallsRequest) Args() []string {
	return command("inspect").
		flag("--path", r.Path).
		flag("--node-type", string(NodeMacroCall)).
		flag("--name", r.Name).
		flag("--format", formatOrDefault(r.Format)).
		optional("--content-filter", r.ContentFilter)
}

// Structs

type AddStructFieldRequest struct {
	Path           string
	StructName     string
	Field          string
	Position       string
	LiteralDefault string
	Apply          bool
}

func (r AddStructFieldRequest) Args() []string {
	return command("add-struct-field").
		flag("--path", r.Path).
		flag("--struct-name", r.StructName).
		flag("--field", r.Field).
		optional("--position", r.Position).
		optional("--literal-default", r.LiteralDefault).
		apply(r.Apply)
}

type UpdateStructFieldRequest struct {
	Path       string
	StructName string
	Field      string
	Apply      bool
}

func (r UpdateStructFieldRequest) Args() []string {
	return command("update-struct-field").
		flag("--path", r.Path).
		flag("--struct-name", r.StructName).
		flag("--field", r.Field).
		apply(r.Apply)
}

// RemoveStructFieldRequest drops a field from the definition and from every
// literal, or with LiteralOnly from literals alone.
type RemoveStructFieldRequest struct {
	Path        string
	StructName  string
	FieldName   string
	LiteralOnly bool
	Apply       bool
}

func (r RemoveStructFieldRequest) Args() []string {
	return command("remove-struct-field").
		flag("--paths", r.Path).
		flag("--struct-name", r.StructName).
		flag("--field-name", r.FieldName).
		toggle("--literal-only", r.LiteralOnly).
		apply(r.Apply)
}

// Enums

type AddEnumVariantRequest struct {
	Path     string
	EnumName string
	Variant  string
	Apply    bool
}

func (r AddEnumVariantRequest) Args() []string {
	return command("add-enum-variant").
		flag("--path", r.Path).
		flag("--enum-name", r.EnumName).
		flag("--variant", r.Variant).
		apply(r.Apply)
}

// UpdateEnumVariantRequest replaces the definition of the variant named in Variant.
type UpdateEnumVariantRequest struct {
	Path     string
	EnumName string
	Variant  string
	Apply    bool
}

func (r UpdateEnumVariantRequest) Args() []string {
	return command("update-enum-variant").
		flag("--paths", r.Path).
		flag("--enum-name", r.EnumName).
		flag("--variant", r.Variant).
		apply(r.Apply)
}

type RemoveEnumVariantRequest struct {
	Path        string
	EnumName    string
	VariantName string
	Apply       bool
}

func (r RemoveEnumVariantRequest) Args() []string {
	return command("remove-enum-variant").
		flag("--paths", r.Path).
		flag("--enum-name", r.EnumName).
		flag("--variant-name", r.VariantName).
		apply(r.Apply)
}

// RenameEnumVariantRequest renames a variant everywhere it is referenced.
// rs-hack takes --paths (plural) for this subcommand.
type RenameEnumVariantRequest struct {
	Path       string
	EnumName   string
	OldVariant string
	NewVariant string
	Apply      bool
}

func (r RenameEnumVariantRequest) Args() []string {
	return command("rename-enum-variant").
		flag("--paths", r.Path).
		flag("--enum-name", r.EnumName).
		flag("--old-variant", r.OldVariant).
		flag("--new-variant", r.NewVariant).
		apply(r.Apply)
}

// Match expressions

// AddMatchArmRequest adds one arm, or with AutoDetect every missing variant
// of EnumName sharing Body. Pattern is ignored in auto-detect mode.
type AddMatchArmRequest struct {
	Path       string
	Pattern    string
	Body       string
	Function   string
	EnumName   string
	AutoDetect bool
	Apply      bool
}

func (r AddMatchArmRequest) Args() []string {
	a := command("add-match-arm").flag("--path", r.Path)
	if r.AutoDetect {
		a = append(a, "--auto-detect")
		a = a.flag("--enum-name", r.EnumName).flag("--body", r.Body)
	} else {
		a = a.flag("--pattern", r.Pattern).flag("--body", r.Body)
	}
	return a.optional("--function", r.Function).apply(r.Apply)
}

type UpdateMatchArmRequest struct {
	Path     string
	Pattern  string
	Body     string
	Function string
	Apply    bool
}

func (r UpdateMatchArmRequest) Args() []string {
	return command("update-match-arm").
		flag("--paths", r.Path).
		flag("--pattern", r.Pattern).
		flag("--body", r.Body).
		optional("--function", r.Function).
		apply(r.Apply)
}

type RemoveMatchArmRequest struct {
	Path     string
	Pattern  string
	Function string
	Apply    bool
}

func (r RemoveMatchArmRequest) Args() []string {
	return command("remove-match-arm").
		flag("--paths", r.Path).
		flag("--pattern", r.Pattern).
		optional("--function", r.Function).
		apply(r.Apply)
}

// Functions

// RenameFunctionRequest renames a function and its call sites. FunctionPath,
// such as "crate::utils::process_v2", lets rs-hack follow use statements.
type RenameFunctionRequest struct {
	Path         string
	OldName      string
	NewName      string
	FunctionPath string
	Apply        bool
}

func (r RenameFunctionRequest) Args() []string {
	return command("rename-function").
		flag("--paths", r.Path).
		flag("--old-name", r.OldName).
		flag("--new-name", r.NewName).
		optional("--function-path", r.FunctionPath).
		apply(r.Apply)
}

// Generic transform

type TransformRequest struct {
	Path          string
	NodeType      NodeType
	Action        Action
	Name          string
	ContentFilter string
	// Replacement is only forwarded when Action is "replace".
	Replacement string
	Apply       bool
}

func (r TransformRequest) Args() []string {
	a := command("transform").
		flag("--path", r.Path).
		flag("--node-type", string(r.NodeType)).
		flag("--action", string(r.Action)).
		optional("--name", r.Name).
		optional("--content-filter", r.ContentFilter)
	if r.Action == ActionReplace {
		a = a.optional("--with", r.Replacement)
	}
	return a.apply(r.Apply)
}

// Derives, impl blocks and imports

type AddDeriveRequest struct {
	Path       string
	TargetType TargetType
	Name       string
	// Derives is a comma-separated list such as "Clone,Debug,Serialize".
	Derives string
	// Where is an rs-hack target filter such as "derives_trait:Clone".
	Where string
	Apply bool
}

func (r AddDeriveRequest) Args() []string {
	return command("add-derive").
		flag("--path", r.Path).
		flag("--target-type", string(r.TargetType)).
		flag("--name", r.Name).
		flag("--derives", r.Derives).
		optional("--where", r.Where).
		apply(r.Apply)
}

type AddImplMethodRequest struct {
	Path     string
	Target   string
	Method   string
	Position string
	Apply    bool
}

func (r AddImplMethodRequest) Args() []string {
	return command("add-impl-method").
		flag("--paths", r.Path).
		flag("--target", r.Target).
		flag("--method", r.Method).
		optional("--position", r.Position).
		apply(r.Apply)
}

type AddUseRequest struct {
	Path     string
	UsePath  string
	Position string
	Apply    bool
}

func (r AddUseRequest) Args() []string {
	return command("add-use").
		flag("--paths", r.Path).
		flag("--use-path", r.UsePath).
		optional("--position", r.Position).
		apply(r.Apply)
}

// Doc comments

type AddDocCommentRequest struct {
	Path       string
	TargetType DocTarget
	Name       string
	// Text is the comment body without the /// prefix.
	Text  string
	Style DocStyle
	Apply bool
}

func (r AddDocCommentRequest) Args() []string {
	style := r.Style
	if style == "" {
		style = DefaultDocStyle
	}
	return command("add-doc-comment").
		flag("--paths", r.Path).
		flag("--target-type", string(r.TargetType)).
		flag("--name", r.Name).
		flag("--doc-comment", r.Text).
		flag("--style", string(style)).
		apply(r.Apply)
}

type UpdateDocCommentRequest struct {
	Path       string
	TargetType DocTarget
	Name       string
	Text       string
	Apply      bool
}

func (r UpdateDocCommentRequest) Args() []string {
	return command("update-doc-comment").
		flag("--paths", r.Path).
		flag("--target-type", string(r.TargetType)).
		flag("--name", r.Name).
		flag("--doc-comment", r.Text).
		apply(r.Apply)
}

type RemoveDocCommentRequest struct {
	Path       string
	TargetType DocTarget
	Name       string
	Apply      bool
}

func (r RemoveDocCommentRequest) Args() []string {
	return command("remove-doc-comment").
		flag("--paths", r.Path).
		flag("--target-type", string(r.TargetType)).
		flag("--name", r.Name).
		apply(r.Apply)
}

// Batch

type BatchRequest struct {
	// Spec is the path of a JSON or YAML batch specification.
	Spec  string
	Apply bool
}

func (r BatchRequest) Args() []string {
	return command("batch").flag("--spec", r.Spec).apply(r.Apply)
}

// History

const (
	DefaultHistoryLimit = 10
	DefaultKeepDays     = 30
)

// HistoryRequest lists recent runs. Limit is forwarded as given; callers
// wanting the usual page size pass DefaultHistoryLimit.
type HistoryRequest struct {
	Limit int
}

func (r HistoryRequest) Args() []string {
	return command("history").flag("--limit", strconv.Itoa(r.Limit))
}

type RevertRequest struct {
	RunID string
	Force bool
}

func (r RevertRequest) Args() []string {
	return append(command("revert"), r.RunID).toggle("--force", r.Force)
}

// CleanRequest drops state older than KeepDays. Zero removes everything.
type CleanRequest struct {
	KeepDays int
}

func (r CleanRequest) Args() []string {
	return command("clean").flag("--keep-days", strconv.Itoa(r.KeepDays))
}
