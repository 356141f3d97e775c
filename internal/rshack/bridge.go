// Package rshack runs the external rs-hack binary and normalizes its
// outcome into a Result.
//
// This is the only place where process failure modes are interpreted:
// callers never see exit codes, only a Result of kind text, data or error.
package rshack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
	"strings"
	"time"

	"rshackmcp/internal/logging"
)

// NotFoundMessage is returned when the rs-hack executable cannot be located.
const NotFoundMessage = "rs-hack not found. Install with: cargo install rs-hack"

// LocalStateFlag is the rs-hack global flag selecting a project-local state directory.
const LocalStateFlag = "--local-state"

// Runner executes one rs-hack invocation.
type Runner interface {
	Run(ctx context.Context, args []string) Result
}

// Options configures a Bridge.
type Options struct {
	// Binary is the executable name or path. Defaults to "rs-hack".
	Binary string
	// Dir is the working directory of the child process.
	Dir string
	// LocalState prepends --local-state to every invocation.
	LocalState bool
	// Timeout bounds each invocation when positive.
	Timeout time.Duration
}

// Bridge is the os/exec Runner. It holds no mutable state and is safe for
// concurrent use; every Run starts an independent child process.
type Bridge struct {
	opts   Options
	logger *logging.AppLogger
}

// NewBridge creates a Bridge.
func NewBridge(opts Options, logger *logging.AppLogger) *Bridge {
	if strings.TrimSpace(opts.Binary) == "" {
		opts.Binary = "rs-hack"
	}
	return &Bridge{opts: opts, logger: logger}
}

// Binary returns the configured executable.
func (b *Bridge) Binary() string {
	return b.opts.Binary
}

// Run executes rs-hack with args and waits for it to exit.
func (b *Bridge) Run(ctx context.Context, args []string) Result {
	if b.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.opts.Timeout)
		defer cancel()
	}

	argv := args
	if b.opts.LocalState {
		argv = append([]string{LocalStateFlag}, args...)
	}

	start := time.Now()
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, b.opts.Binary, argv...)
	cmd.Dir = b.opts.Dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	var result Result
	if ctxErr := ctx.Err(); ctxErr != nil && err != nil {
		result = ErrorResult(fmt.Sprintf("rs-hack %s interrupted: %v", firstArg(args), ctxErr))
	} else {
		result = interpret(err, stdout.String(), stderr.String())
	}

	b.logger.Debug("rs-hack invocation finished",
		"args", argv,
		"kind", result.Kind,
		"duration", time.Since(start),
	)
	if !result.OK() {
		b.logger.Warn("rs-hack invocation failed", "args", argv, "error", result.Message)
	}

	return result
}

// interpret maps the outcome of cmd.Run onto a Result.
func interpret(runErr error, stdout, stderr string) Result {
	var exitErr *exec.ExitError
	if runErr != nil && !errors.As(runErr, &exitErr) {
		if errors.Is(runErr, exec.ErrNotFound) || errors.Is(runErr, fs.ErrNotExist) {
			return ErrorResult(NotFoundMessage)
		}
		return ErrorResult(runErr.Error())
	}

	output := strings.TrimSpace(stdout)
	if strings.HasPrefix(output, "{") || strings.HasPrefix(output, "[") {
		if data, ok := decodeJSON(output); ok {
			return DataResult([]byte(output), data)
		}
	}

	if runErr == nil {
		return TextResult(output)
	}

	if msg := strings.TrimSpace(stderr); msg != "" {
		return ErrorResult(msg)
	}
	return ErrorResult(output)
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// decodeJSON accepts s only when it is exactly one JSON value.
func decodeJSON(s string) (any, bool) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, false
	}
	return v, true
}
