package lexer

import "github.com/paiml/ruchy-sub009/token"

// TokenizeAll drains a fresh Lexer into a slice of tokens (including the
// trailing EOF) plus any recoverable lexical errors. This is the `tokenize`
// entry point from spec §4.1; session.LexErrors and the lexer tests use
// it, while the parser and the REPL's completeness check drive the lazy
// Lexer directly.
func TokenizeAll(src, file string) ([]token.Token, []*Error) {
	l := New(src, file)

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
