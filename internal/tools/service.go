// Package tools maps typed rs-hack operations onto argument vectors and
// shapes the bridge's results into the text returned to MCP clients.
//
// Every exported Service method performs exactly one blocking rs-hack
// invocation. Nothing is retried, cached or batched.
package tools

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rshackmcp/internal/logging"
	"rshackmcp/internal/rshack"
	"rshackmcp/pkg/fileops"

	"gopkg.in/yaml.v3"
)

const (
	// DryRunBanner heads every preview response.
	DryRunBanner = "DRY RUN - Preview:"
	// StructFieldDryRunBanner is the add_struct_field variant of DryRunBanner.
	StructFieldDryRunBanner = "DRY RUN - Preview of changes:"
	// ApplyHint closes every preview response.
	ApplyHint = "Use apply=true to make changes."

	// MaxBatchSpecSize caps batch specification files read for pre-flight checks.
	MaxBatchSpecSize = 1 << 20
)

// Request is a typed rs-hack operation.
type Request interface {
	Args() []string
}

// Service runs Requests through a Runner.
type Service struct {
	runner  rshack.Runner
	workDir string
	logger  *logging.AppLogger
}

// NewService creates a Service. workDir is the directory rs-hack runs in
// (empty for the current directory); relative batch spec paths resolve against it.
func NewService(runner rshack.Runner, workDir string, logger *logging.AppLogger) *Service {
	return &Service{
		runner:  runner,
		workDir: workDir,
		logger:  logger,
	}
}

// FormatError renders a failure the same way for every tool.
func FormatError(message string) string {
	return "Error: " + message
}

// DryRun renders a preview response.
func DryRun(banner, output string) string {
	return fmt.Sprintf("%s\n%s\n\n%s", banner, output, ApplyHint)
}

// query runs a read-only request. Empty successful output becomes fallback.
func (s *Service) query(ctx context.Context, req Request, fallback string) string {
	result := s.runner.Run(ctx, req.Args())
	if !result.OK() {
		return FormatError(result.Message)
	}
	if text := result.Text(); text != "" {
		return text
	}
	return fallback
}

// mutate runs a request that edits files when apply is set.
func (s *Service) mutate(ctx context.Context, req Request, apply bool, banner, confirmation string) string {
	result := s.runner.Run(ctx, req.Args())
	if !result.OK() {
		return FormatError(result.Message)
	}
	text := result.Text()
	if !apply {
		return DryRun(banner, text)
	}
	if text == "" {
		return confirmation
	}
	return text
}

// NoMatches is returned by inspect tools when rs-hack prints nothing.
const NoMatches = "No matches found"

func (s *Service) InspectStructLiterals(ctx context.Context, req InspectStructLiteralsRequest) string {
	return s.query(ctx, req, NoMatches)
}

func (s *Service) InspectMatchArms(ctx context.Context, req InspectMatchArmsRequest) string {
	return s.query(ctx, req, NoMatches)
}

func (s *Service) InspectEnumUsage(ctx context.Context, req InspectEnumUsageRequest) string {
	return s.query(ctx, req, NoMatches)
}

func (s *Service) InspectMacroCalls(ctx context.Context, req InspectMacroCallsRequest) string {
	return s.query(ctx, req, NoMatches)
}

func (s *Service) AddStructField(ctx context.Context, req AddStructFieldRequest) string {
	return s.mutate(ctx, req, req.Apply, StructFieldDryRunBanner, "Successfully added struct field")
}

func (s *Service) UpdateStructField(ctx context.Context, req UpdateStructFieldRequest) string {
	return s.mutate(ctx, req, req.Apply, DryRunBanner, "Successfully updated struct field")
}

func (s *Service) RemoveStructField(ctx context.Context, req RemoveStructFieldRequest) string {
	return s.mutate(ctx, req, req.Apply, DryRunBanner, "Successfully removed struct field")
}

func (s *Service) AddEnumVariant(ctx context.Context, req AddEnumVariantRequest) string {
	return s.mutate(ctx, req, req.Apply, DryRunBanner, "Successfully added enum variant")
}

func (s *Service) UpdateEnumVariant(ctx context.Context, req UpdateEnumVariantRequest) string {
	return s.mutate(ctx, req, req.Apply, DryRunBanner, "Successfully updated enum variant")
}

func (s *Service) RemoveEnumVariant(ctx context.Context, req RemoveEnumVariantRequest) string {
	return s.mutate(ctx, req, req.Apply, DryRunBanner, "Successfully removed enum variant")
}

func (s *Service) RenameEnumVariant(ctx context.Context, req RenameEnumVariantRequest) string {
	confirmation := fmt.Sprintf("Successfully renamed %s to %s", req.OldVariant, req.NewVariant)
	return s.mutate(ctx, req, req.Apply, DryRunBanner, confirmation)
}

func (s *Service) AddMatchArm(ctx context.Context, req AddMatchArmRequest) string {
	return s.mutate(ctx, req, req.Apply, DryRunBanner, "Successfully added match arm(s)")
}

func (s *Service) UpdateMatchArm(ctx context.Context, req UpdateMatchArmRequest) string {
	return s.mutate(ctx, req, req.Apply, DryRunBanner, "Successfully updated match arm(s)")
}

func (s *Service) RemoveMatchArm(ctx context.Context, req RemoveMatchArmRequest) string {
	return s.mutate(ctx, req, req.Apply, DryRunBanner, "Successfully removed match arm(s)")
}

func (s *Service) RenameFunction(ctx context.Context, req RenameFunctionRequest) string {
	confirmation := fmt.Sprintf("Successfully renamed %s to %s", req.OldName, req.NewName)
	return s.mutate(ctx, req, req.Apply, DryRunBanner, confirmation)
}

func (s *Service) Transform(ctx context.Context, req TransformRequest) string {
	confirmation := fmt.Sprintf("Successfully performed %s operation", req.Action)
	return s.mutate(ctx, req, req.Apply, DryRunBanner, confirmation)
}

func (s *Service) AddDerive(ctx context.Context, req AddDeriveRequest) string {
	return s.mutate(ctx, req, req.Apply, DryRunBanner, "Successfully added derives")
}

func (s *Service) AddImplMethod(ctx context.Context, req AddImplMethodRequest) string {
	return s.mutate(ctx, req, req.Apply, DryRunBanner, "Successfully added impl method")
}

func (s *Service) AddUse(ctx context.Context, req AddUseRequest) string {
	return s.mutate(ctx, req, req.Apply, DryRunBanner, "Successfully added use statement")
}

func (s *Service) AddDocComment(ctx context.Context, req AddDocCommentRequest) string {
	return s.mutate(ctx, req, req.Apply, DryRunBanner, "Successfully added doc comment")
}

func (s *Service) UpdateDocComment(ctx context.Context, req UpdateDocCommentRequest) string {
	return s.mutate(ctx, req, req.Apply, DryRunBanner, "Successfully updated doc comment")
}

func (s *Service) RemoveDocComment(ctx context.Context, req RemoveDocCommentRequest) string {
	return s.mutate(ctx, req, req.Apply, DryRunBanner, "Successfully removed doc comment")
}

// RunBatch checks that the spec file is a readable YAML or JSON document
// before handing it to rs-hack. rs-hack receives the path that was checked.
func (s *Service) RunBatch(ctx context.Context, req BatchRequest) string {
	path, err := s.checkBatchSpec(req.Spec)
	if err != nil {
		s.logger.Warn("Rejected batch spec", "spec", req.Spec, "error", err)
		return FormatError(err.Error())
	}
	req.Spec = path
	return s.mutate(ctx, req, req.Apply, DryRunBanner, "Successfully applied batch operations")
}

func (s *Service) ShowHistory(ctx context.Context, req HistoryRequest) string {
	return s.query(ctx, req, "No history available")
}

func (s *Service) RevertOperation(ctx context.Context, req RevertRequest) string {
	return s.query(ctx, req, fmt.Sprintf("Successfully reverted operation %s", req.RunID))
}

func (s *Service) CleanHistory(ctx context.Context, req CleanRequest) string {
	return s.query(ctx, req, "Successfully cleaned old state data")
}

// checkBatchSpec resolves spec against the working directory and returns
// the resolved path once the file passes every check.
func (s *Service) checkBatchSpec(spec string) (string, error) {
	if strings.TrimSpace(spec) == "" {
		return "", errors.New("batch spec path cannot be empty")
	}

	path := fileops.ExpandPath(spec)
	if !filepath.IsAbs(path) && s.workDir != "" {
		path = filepath.Join(s.workDir, path)
	}

	if err := fileops.ValidateFileAccess(path); err != nil {
		return "", fmt.Errorf("invalid batch spec: %w", err)
	}
	if err := fileops.ValidateFileSizeLimit(path, MaxBatchSpecSize); err != nil {
		return "", fmt.Errorf("invalid batch spec: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("invalid batch spec: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return "", fmt.Errorf("invalid batch spec: %w", err)
	}
	if len(doc.Content) == 0 {
		return "", errors.New("invalid batch spec: document is empty")
	}

	return path, nil
}
