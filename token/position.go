// Package token defines the lexical token vocabulary shared by the lexer
// and parser: token kinds, source positions, and spans.
package token

import "fmt"

// Position is a single point in a source file, 1-indexed for line/column
// to match editor conventions, plus the raw byte offset used internally
// for span arithmetic.
type Position struct {
	Offset int    // byte offset from the start of the file, 0-indexed
	Line   int    // 1-indexed line number
	Column int    // 1-indexed column number (in runes, not bytes)
	File   string // source file name, or "" for REPL/one-liner input
}

// String renders "file:line:column", eliding the file when empty.
func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}

	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Span is a half-open source range (start_offset, end_offset, file).
// Every token and AST node carries one; spans must survive canonicalization
// and any other tree transformation.
type Span struct {
	Start Position
	End   Position
}

// String renders the span as "start-end" using the start position's file.
func (s Span) String() string {
	return fmt.Sprintf("%s-%d:%d", s.Start, s.End.Line, s.End.Column)
}

// Join returns the smallest span covering both a and b. Used when building
// a composite AST node's span from its children's spans.
func Join(a, b Span) Span {
	start, end := a.Start, b.End
	if b.Start.Offset < a.Start.Offset {
		start = b.Start
	}
	if a.End.Offset > b.End.Offset {
		end = a.End
	}

	return Span{Start: start, End: end}
}
