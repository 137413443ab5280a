package replstate

import (
	"github.com/paiml/ruchy-sub009/lexer"
	"github.com/paiml/ruchy-sub009/token"
)

// tokenizeBestEffort runs the lazy lexer to EOF, collecting every token
// it produces (including the synthetic ones recovery inserts); this is
// "best effort" in the sense that it never fails — lex errors are always
// recoverable, so the stream always reaches EOF (spec §4.1).
func tokenizeBestEffort(src string) ([]token.Token, []*lexer.Error) {
	l := lexer.New(src, "")
	var toks []token.Token
	for {
		t := l.Next()
		toks = append(toks, t)
		if t.IsEOF() {
			break
		}
	}

	return toks, l.Errors
}

// hasUnterminatedString reports whether the token stream contains a
// STRING_START with no matching STRING_END, or ends inside an
// interpolation hole (INTERP_START outnumbering INTERP_END) — either
// means the lexer hit EOF mid-string and synthesized a recovery token,
// so the line the user is typing is not yet complete.
func hasUnterminatedString(toks []token.Token) bool {
	open := 0
	holes := 0
	for _, t := range toks {
		switch t.Kind {
		case token.STRING_START:
			open++
		case token.STRING_END:
			open--
		case token.INTERP_START:
			holes++
		case token.INTERP_END:
			holes--
		}
	}

	return open > 0 || holes > 0
}
