package lexer

import "github.com/paiml/ruchy-sub009/token"

// ErrorKind classifies a lexical failure (spec §4.1).
type ErrorKind int

const (
	UnterminatedString ErrorKind = iota
	InvalidEscape
	InvalidNumber
	UnknownCharacter
	UnterminatedBlockComment
)

func (k ErrorKind) String() string {
	switch k {
	case UnterminatedString:
		return "unterminated_string"
	case InvalidEscape:
		return "invalid_escape"
	case InvalidNumber:
		return "invalid_number"
	case UnknownCharacter:
		return "unknown_character"
	case UnterminatedBlockComment:
		return "unterminated_block_comment"
	default:
		return "lex_error"
	}
}

// Error is a recoverable lexical diagnostic: the lexer always continues
// after recording one, per spec's "lex errors are always recoverable".
type Error struct {
	Kind ErrorKind
	Msg  string
	Span token.Span
}

func (e *Error) Error() string {
	return e.Span.Start.String() + ": " + e.Msg
}
