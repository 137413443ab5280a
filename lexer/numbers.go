package lexer

import (
	"strings"

	"github.com/paiml/ruchy-sub009/token"
)

// scanNumber handles decimal/hex/octal/binary integers with underscore
// separators and decimal floats with an optional exponent (spec §4.1).
// No leading-zero octal ambiguity: a bare "0" followed by digits is a
// decimal literal (use 0o for octal), unlike C.
func (l *Lexer) scanNumber(start token.Position) token.Token {
	var b strings.Builder

	if l.peek() == '0' && (l.peekAt(1) == 'x' || l.peekAt(1) == 'X') {
		return l.scanRadix(start, "0123456789abcdefABCDEF")
	}

	if l.peek() == '0' && (l.peekAt(1) == 'o' || l.peekAt(1) == 'O') {
		return l.scanRadix(start, "01234567")
	}

	if l.peek() == '0' && (l.peekAt(1) == 'b' || l.peekAt(1) == 'B') {
		return l.scanRadix(start, "01")
	}

	isFloat := false

	for !l.eof() && (isDigit(l.peek()) || l.peek() == '_') {
		b.WriteRune(l.advance())
	}

	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		isFloat = true

		b.WriteRune(l.advance()) // .
		for !l.eof() && (isDigit(l.peek()) || l.peek() == '_') {
			b.WriteRune(l.advance())
		}
	}

	if l.peek() == 'e' || l.peek() == 'E' {
		save := b.String()
		var exp strings.Builder
		exp.WriteRune(l.advance())

		if l.peek() == '+' || l.peek() == '-' {
			exp.WriteRune(l.advance())
		}

		if !isDigit(l.peek()) {
			l.errorAt(InvalidNumber, "malformed exponent", l.span(start))

			return token.Token{Kind: token.FLOAT, Literal: save, Span: l.span(start)}
		}

		isFloat = true
		for !l.eof() && isDigit(l.peek()) {
			exp.WriteRune(l.advance())
		}

		b.WriteString(exp.String())
	}

	kind := token.INT
	if isFloat {
		kind = token.FLOAT
	}

	return token.Token{Kind: kind, Literal: strings.ReplaceAll(b.String(), "_", ""), Span: l.span(start)}
}

// scanRadix scans a 0x/0o/0b-prefixed integer literal whose digits are
// drawn from digits (already lowercase+uppercase for hex).
func (l *Lexer) scanRadix(start token.Position, digits string) token.Token {
	var b strings.Builder
	b.WriteRune(l.advance()) // '0'
	b.WriteRune(l.advance()) // x/o/b

	for !l.eof() && (strings.ContainsRune(digits, l.peek()) || l.peek() == '_') {
		b.WriteRune(l.advance())
	}

	lit := strings.ReplaceAll(b.String(), "_", "")
	if len(lit) <= 2 {
		l.errorAt(InvalidNumber, "radix literal has no digits", l.span(start))
	}

	return token.Token{Kind: token.INT, Literal: lit, Span: l.span(start)}
}
