package lexer

import "github.com/paiml/ruchy-sub009/token"

// threeCharOps lists three-rune operators (..=, <<=, >>=), which are
// checked before twoCharOps and oneCharOps. Matches the teacher's
// "check multi-character operators before single-char" ordering in
// lexer/lexer.go.
var threeCharOps = map[string]token.Kind{
	"..=": token.DOTDOTEQ,
	"<<=": token.SHLEQ,
	">>=": token.SHREQ,
}

var twoCharOps = map[string]token.Kind{
	"==": token.EQEQ, "!=": token.BANGEQ, "<=": token.LTEQ, ">=": token.GTEQ,
	"&&": token.AMPAMP, "||": token.PIPEPIPE, "::": token.COLONCOLON,
	"..": token.DOTDOT, "->": token.ARROW, "=>": token.FATARROW,
	"|>": token.PIPEGT, "<<": token.SHL, ">>": token.SHR,
	"+=": token.PLUSEQ, "-=": token.MINUSEQ, "*=": token.STAREQ, "/=": token.SLASHEQ,
}

var oneCharOps = map[rune]token.Kind{
	'(': token.LPAREN, ')': token.RPAREN, '{': token.LBRACE, '}': token.RBRACE,
	'[': token.LBRACKET, ']': token.RBRACKET,
	',': token.COMMA, ';': token.SEMI, ':': token.COLON, '.': token.DOT,
	'|': token.PIPE, '?': token.QUESTION,
	'+': token.PLUS, '-': token.MINUS, '*': token.STAR, '/': token.SLASH,
	'%': token.PERCENT, '^': token.CARET, '&': token.AMP, '!': token.BANG,
	'=': token.ASSIGN, '<': token.LT, '>': token.GT,
}

func (l *Lexer) scanPunct(start token.Position) token.Token {
	three := string([]rune{l.peekAt(0), l.peekAt(1), l.peekAt(2)})
	if kind, ok := threeCharOps[three]; ok {
		l.advance()
		l.advance()
		l.advance()

		return token.Token{Kind: kind, Literal: three, Span: l.span(start)}
	}

	two := string([]rune{l.peekAt(0), l.peekAt(1)})
	if kind, ok := twoCharOps[two]; ok {
		l.advance()
		l.advance()

		return token.Token{Kind: kind, Literal: two, Span: l.span(start)}
	}

	r := l.advance()
	if kind, ok := oneCharOps[r]; ok {
		return token.Token{Kind: kind, Literal: string(r), Span: l.span(start)}
	}

	l.errorAt(UnknownCharacter, "unexpected character: "+string(r), l.span(start))

	return token.Token{Kind: token.ILLEGAL, Literal: string(r), Span: l.span(start)}
}
