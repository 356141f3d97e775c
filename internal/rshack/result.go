package rshack

import (
	"bytes"
	"encoding/json"
)

// Kind tags which variant a Result holds.
type Kind int

const (
	// KindText is a successful run whose stdout was not JSON.
	KindText Kind = iota
	// KindData is a run whose stdout decoded as a single JSON value.
	KindData
	// KindError is a failed run, a missing binary or an exec error.
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindData:
		return "data"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Result is the outcome of one rs-hack invocation. Exactly one of Output,
// Data or Message is meaningful, selected by Kind.
type Result struct {
	Kind Kind

	// Output is the trimmed stdout of a KindText result.
	Output string

	// Data is the decoded stdout of a KindData result; Raw keeps the
	// original bytes so rendering preserves key order.
	Data any
	Raw  json.RawMessage

	// Message describes a KindError result.
	Message string
}

// TextResult builds a successful plain-text result.
func TextResult(output string) Result {
	return Result{Kind: KindText, Output: output}
}

// DataResult builds a successful structured result from raw JSON.
func DataResult(raw []byte, data any) Result {
	return Result{Kind: KindData, Raw: json.RawMessage(raw), Data: data}
}

// ErrorResult builds a failed result.
func ErrorResult(message string) Result {
	return Result{Kind: KindError, Message: message}
}

// OK reports whether the invocation succeeded.
func (r Result) OK() bool {
	return r.Kind != KindError
}

// Text renders a successful result: the output text, or the data as
// two-space indented JSON. It is empty for error results.
func (r Result) Text() string {
	switch r.Kind {
	case KindText:
		return r.Output
	case KindData:
		if len(r.Raw) > 0 {
			var buf bytes.Buffer
			if err := json.Indent(&buf, r.Raw, "", "  "); err == nil {
				return buf.String()
			}
		}
		out, err := json.MarshalIndent(r.Data, "", "  ")
		if err != nil {
			return string(r.Raw)
		}
		return string(out)
	default:
		return ""
	}
}
