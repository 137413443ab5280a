package diagnostic

import (
	"github.com/paiml/ruchy-sub009/eval"
	"github.com/paiml/ruchy-sub009/lexer"
	"github.com/paiml/ruchy-sub009/parser"
	"github.com/paiml/ruchy-sub009/types"
)

// FromLex converts a lexer.Error into the wire format, code
// "lex.<kind>" (e.g. "lex.unterminated_string").
func FromLex(e *lexer.Error) Diagnostic {
	return New(e.Span, Error, "lex."+e.Kind.String(), e.Msg)
}

// FromParse converts a parser.Diagnostic.
func FromParse(d parser.Diagnostic) Diagnostic {
	return New(d.Span, Error, "parse.syntax_error", d.Message)
}

// FromType converts a *types.Error, code "type.<kind>".
func FromType(e *types.Error) Diagnostic {
	code := "type." + kindCode(e.Kind)

	return New(e.Span, Error, code, e.Message)
}

func kindCode(k types.ErrorKind) string {
	switch k {
	case types.UnificationFailure:
		return "unification_failure"
	case types.OccursCheckFailure:
		return "occurs_check"
	case types.UnboundIdentifier:
		return "unbound_identifier"
	case types.AmbiguousOverload:
		return "ambiguous_overload"
	case types.RowConflict:
		return "row_conflict"
	default:
		return "error"
	}
}

// FromRuntime converts an *eval.RuntimeError raised during evaluation,
// code "runtime.<kind>" derived from the error's own Kind (e.g.
// "runtime.non_exhaustive_match", "runtime.div_by_zero") rather than a
// caller-supplied literal, and using its own Span when the error carries
// one so the diagnostic points at the failing subterm, not the zero span.
func FromRuntime(e *eval.RuntimeError) Diagnostic {
	return New(e.Span, Error, "runtime."+e.Kind.String(), e.Error())
}
