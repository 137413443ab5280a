package types

import (
	"fmt"

	"github.com/paiml/ruchy-sub009/token"
)

// ErrorKind classifies a type error (spec §4.4 Errors).
type ErrorKind int

const (
	UnificationFailure ErrorKind = iota
	OccursCheckFailure
	UnboundIdentifier
	AmbiguousOverload
	RowConflict
)

func (k ErrorKind) String() string {
	switch k {
	case UnificationFailure:
		return "unification failure"
	case OccursCheckFailure:
		return "occurs check"
	case UnboundIdentifier:
		return "unbound identifier"
	case AmbiguousOverload:
		return "ambiguous overload"
	case RowConflict:
		return "row conflict"
	default:
		return "type error"
	}
}

// Error is a single diagnostic produced by inference. Span is the best
// (most specific) subterm the failure could be attributed to, per the
// spec invariant "reports the most specific failing subterm".
type Error struct {
	Kind    ErrorKind
	Message string
	Span    token.Span
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Span, e.Kind, e.Message)
}

func newError(kind ErrorKind, span token.Span, format string, args ...any) *Error {
	return &Error{Kind: kind, Span: span, Message: fmt.Sprintf(format, args...)}
}
