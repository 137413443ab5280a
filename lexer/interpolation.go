package lexer

import (
	"strings"

	"github.com/paiml/ruchy-sub009/token"
)

// beginInterpolatedString is entered right after consuming the `f` prefix,
// with the cursor on the opening quote. It emits StringStart and pushes a
// modeStringFragment frame so subsequent Next() calls scan literal text
// until a `{` (hole) or the closing quote, per spec §4.1.
func (l *Lexer) beginInterpolatedString(start token.Position) token.Token {
	l.advance() // opening quote
	l.pushFrame(modeStringFragment)

	return token.Token{Kind: token.STRING_START, Literal: "f\"", Span: l.span(start)}
}

// nextStringFragment scans literal text up to the next interpolation hole
// or the closing quote, honoring the same escape set as plain strings.
func (l *Lexer) nextStringFragment() token.Token {
	start := l.position()

	if l.eof() {
		l.errorAt(UnterminatedString, "unterminated interpolated string", l.span(start))
		l.popFrame()

		return token.Token{Kind: token.STRING_END, Span: l.span(start)}
	}

	if l.peek() == '"' {
		l.advance()
		l.popFrame()

		return token.Token{Kind: token.STRING_END, Literal: "\"", Span: l.span(start)}
	}

	if l.peek() == '{' {
		l.advance()
		l.pushFrame(modeInterpExpr)

		return token.Token{Kind: token.INTERP_START, Literal: "{", Span: l.span(start)}
	}

	var b strings.Builder
	for !l.eof() && l.peek() != '{' && l.peek() != '"' {
		if l.peek() == '\\' {
			l.advance()
			l.scanEscape(&b, start)

			continue
		}

		b.WriteRune(l.advance())
	}

	return token.Token{Kind: token.STRING_FRAGMENT, Literal: b.String(), Span: l.span(start)}
}

// closeInterpOrBrace is called when the cursor sits on a `}` while the top
// frame is modeInterpExpr. If the hole's own braces are still open, it is
// an ordinary RBRACE belonging to a nested block/struct expression;
// otherwise it closes the interpolation hole and resumes fragment scanning
// on the parent frame.
func (l *Lexer) closeInterpOrBrace(start token.Position) token.Token {
	top := &l.frames[len(l.frames)-1]
	if top.braceDepth > 0 {
		l.advance()
		top.braceDepth--

		return token.Token{Kind: token.RBRACE, Literal: "}", Span: l.span(start)}
	}

	l.advance()
	l.popFrame() // back to modeStringFragment

	return token.Token{Kind: token.INTERP_END, Literal: "}", Span: l.span(start)}
}
