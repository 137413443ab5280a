// Package diagnostic defines the stable, machine-readable Diagnostic
// wire format spec §6 requires ("object with file, span_start, span_end,
// severity, code, message, optional notes") and converts every stage's
// own error type (lexer.Error, []parser.Diagnostic, *types.Error,
// *eval.RuntimeError) into it. Keeping this conversion in one place is
// what gives the REPL/CLI a single pretty-printer and a single JSON
// encoder regardless of which pipeline stage produced the failure —
// grounded on the teacher's repl.go practice of formatting every kind of
// error through one colored-banner helper, generalized from "print to
// stdout" to "produce a serializable value first, then print it."
package diagnostic

import (
	"encoding/json"
	"fmt"

	"github.com/paiml/ruchy-sub009/token"
)

// Severity is one of the three levels spec §6's Diagnostic JSON allows.
type Severity string

const (
	Error   Severity = "error"
	Warning Severity = "warning"
	Info    Severity = "info"
)

// Note is a secondary annotation attached to a Diagnostic: same shape
// minus `code`, per spec §6.
type Note struct {
	File       string `json:"file"`
	SpanStart  int    `json:"span_start"`
	SpanEnd    int    `json:"span_end"`
	Severity   Severity `json:"severity"`
	Message    string `json:"message"`
}

// Diagnostic is the stable wire format: field order and names are fixed
// by spec §6 and must not change without a version bump to whatever
// consumes the JSON (the CLI's machine-readable output mode).
type Diagnostic struct {
	File      string   `json:"file"`
	SpanStart int      `json:"span_start"`
	SpanEnd   int      `json:"span_end"`
	Severity  Severity `json:"severity"`
	Code      string   `json:"code"`
	Message   string   `json:"message"`
	Notes     []Note   `json:"notes,omitempty"`

	// line/column kept alongside the byte offsets for the pretty printer's
	// caret rendering; not part of the stable wire shape (no json tag
	// needed beyond what's already above — these are derived, not wire).
	startLine, startCol int
}

// New builds a Diagnostic from a span and classification. code is a
// short symbolic identifier (e.g. "type.unification_failure",
// "lex.unterminated_string") stable across releases, per spec §6.
func New(span token.Span, severity Severity, code, message string) Diagnostic {
	return Diagnostic{
		File:      span.Start.File,
		SpanStart: span.Start.Offset,
		SpanEnd:   span.End.Offset,
		Severity:  severity,
		Code:      code,
		Message:   message,
		startLine: span.Start.Line,
		startCol:  span.Start.Column,
	}
}

// WithNote appends a note and returns the receiver for chaining.
func (d Diagnostic) WithNote(span token.Span, severity Severity, message string) Diagnostic {
	d.Notes = append(d.Notes, Note{
		File:      span.Start.File,
		SpanStart: span.Start.Offset,
		SpanEnd:   span.End.Offset,
		Severity:  severity,
		Message:   message,
	})

	return d
}

// JSON encodes a single Diagnostic in the spec §6 wire format.
func (d Diagnostic) JSON() ([]byte, error) {
	return json.Marshal(d)
}

// Pretty renders a single human-readable line with a source caret,
// matching spec §7's "single pretty-printed diagnostic per error with
// source caret and column."
func (d Diagnostic) Pretty(source string) string {
	loc := fmt.Sprintf("%d:%d", d.startLine, d.startCol)
	if d.File != "" {
		loc = d.File + ":" + loc
	}
	out := fmt.Sprintf("%s: %s: %s [%s]", loc, d.Severity, d.Message, d.Code)
	if line := sourceLine(source, d.startLine); line != "" {
		out += fmt.Sprintf("\n  %s\n  %s^", line, caretPad(d.startCol))
	}
	for _, n := range d.Notes {
		out += fmt.Sprintf("\nnote: %s", n.Message)
	}

	return out
}

func sourceLine(source string, line int) string {
	cur := 1
	start := 0
	for i, r := range source {
		if cur == line {
			end := len(source)
			for j := i; j < len(source); j++ {
				if source[j] == '\n' {
					end = j

					break
				}
			}

			return source[start:end]
		}
		if r == '\n' {
			cur++
			start = i + 1
		}
	}

	return ""
}

func caretPad(col int) string {
	if col <= 1 {
		return ""
	}
	pad := make([]byte, col-1)
	for i := range pad {
		pad[i] = ' '
	}

	return string(pad)
}

// Bag collects diagnostics across a pipeline run in emission order —
// spec §7's determinism requirement ("same order, same spans, same
// codes") is satisfied trivially by never reordering what's appended.
type Bag struct {
	Items []Diagnostic
}

func (b *Bag) Add(d Diagnostic) { b.Items = append(b.Items, d) }

func (b *Bag) HasErrors() bool {
	for _, d := range b.Items {
		if d.Severity == Error {
			return true
		}
	}

	return false
}

// JSON encodes the whole bag as a JSON array, the shape a driver's
// `--format json` flag emits.
func (b *Bag) JSON() ([]byte, error) {
	return json.Marshal(b.Items)
}
