package parser

import (
	"github.com/paiml/ruchy-sub009/ast"
	"github.com/paiml/ruchy-sub009/token"
)

// parsePattern parses a single pattern with an optional trailing `as name`
// binding. `|`-separated alternatives are not handled here: a match arm
// collects them itself (parseMatch) into MatchArm.Patterns.
func (p *Parser) parsePattern() ast.Pattern {
	first := p.parsePatternPrimary()

	if p.at(token.AS) {
		p.advance()
		name, _ := p.expect(token.IDENT)
		first = ast.NewAsPattern(token.Span{Start: first.Span().Start, End: name.Span.End}, first, name.Literal)
	}

	return first
}

func (p *Parser) parsePatternPrimary() ast.Pattern {
	tok := p.cur

	switch tok.Kind {
	case token.UNDERSCOR:
		p.advance()

		return ast.NewWildcardPattern(tok.Span)
	case token.DOTDOT:
		p.advance()
		name := ""
		if p.at(token.IDENT) {
			n := p.advance()
			name = n.Literal
		}

		return ast.NewRestPattern(tok.Span, name)
	case token.INT, token.FLOAT, token.STRING, token.CHAR, token.TRUE, token.FALSE, token.NIL, token.MINUS:
		return p.parseLiteralOrRangePattern()
	case token.LPAREN:
		return p.parseTuplePattern()
	case token.LBRACKET:
		return p.parseListPattern()
	case token.IDENT:
		return p.parseIdentOrVariantOrStructPattern()
	default:
		p.advance()
		p.errorf(tok.Span, "unexpected %s in pattern position", tok.Kind)

		return ast.NewWildcardPattern(tok.Span)
	}
}

func (p *Parser) parseLiteralOrRangePattern() ast.Pattern {
	lit := p.parseLiteralExpr()

	if p.at(token.DOTDOT) || p.at(token.DOTDOTEQ) {
		inclusive := p.at(token.DOTDOTEQ)
		p.advance()
		high := p.parseLiteralExpr()

		return ast.NewRangePattern(token.Span{Start: lit.Span().Start, End: high.Span().End}, lit, high, inclusive)
	}

	return ast.NewLiteralPattern(lit.Span(), lit)
}

// parseLiteralExpr parses just the literal-expression forms valid inside
// a pattern (optionally unary-minus-prefixed numbers), reusing the
// expression literal constructors without routing through the full Pratt
// loop.
func (p *Parser) parseLiteralExpr() ast.Expr {
	if p.at(token.MINUS) {
		start := p.advance()
		inner := p.parseLiteralExpr()

		return ast.NewUnaryOp(token.Span{Start: start.Span.Start, End: inner.Span().End}, "-", inner)
	}

	return p.parsePrimary()
}

func (p *Parser) parseTuplePattern() ast.Pattern {
	start := p.advance() // (
	var elems []ast.Pattern
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		elems = append(elems, p.parsePattern())
		if !p.at(token.RPAREN) {
			p.expect(token.COMMA)
		}
	}
	end, _ := p.expect(token.RPAREN)

	rests := 0
	for _, e := range elems {
		if _, ok := e.(*ast.RestPattern); ok {
			rests++
			if rests > 1 {
				p.errorf(e.Span(), "a tuple pattern may contain at most one rest pattern")
			}
		}
	}

	return ast.NewTuplePattern(token.Span{Start: start.Span.Start, End: end.Span.End}, elems)
}

func (p *Parser) parseListPattern() ast.Pattern {
	start := p.advance() // [
	var elems []ast.Pattern
	for !p.at(token.RBRACKET) && !p.at(token.EOF) {
		elems = append(elems, p.parsePattern())
		if !p.at(token.RBRACKET) {
			p.expect(token.COMMA)
		}
	}
	end, _ := p.expect(token.RBRACKET)

	return ast.NewListPattern(token.Span{Start: start.Span.Start, End: end.Span.End}, elems)
}

// parseIdentOrVariantOrStructPattern disambiguates `name`, `Enum::Variant`,
// `Enum::Variant(...)`, and `Name { ... }` forms, all of which start with
// a bare identifier.
func (p *Parser) parseIdentOrVariantOrStructPattern() ast.Pattern {
	name := p.advance()

	if p.at(token.COLONCOLON) {
		p.advance()
		variant, _ := p.expect(token.IDENT)

		return p.parseVariantPayload(name, variant)
	}

	if p.at(token.LBRACE) && identLooksLikeStructName(name.Literal) {
		return p.parseStructPattern(name)
	}

	if p.at(token.LPAREN) && identLooksLikeStructName(name.Literal) {
		return p.parseVariantPayload(token.Token{}, name)
	}

	return ast.NewIdentPattern(name.Span, name.Literal)
}

func (p *Parser) parseVariantPayload(enumTok, variant token.Token) ast.Pattern {
	enumName := ""
	if enumTok.Literal != "" {
		enumName = enumTok.Literal
	}
	start := variant.Span
	if enumTok.Literal != "" {
		start = enumTok.Span
	}

	if p.at(token.LPAREN) {
		p.advance()
		var elems []ast.Pattern
		for !p.at(token.RPAREN) && !p.at(token.EOF) {
			elems = append(elems, p.parsePattern())
			if !p.at(token.RPAREN) {
				p.expect(token.COMMA)
			}
		}
		end, _ := p.expect(token.RPAREN)

		return ast.NewEnumVariantPattern(token.Span{Start: start.Start, End: end.Span.End}, enumName, variant.Literal, elems, nil)
	}

	if p.at(token.LBRACE) {
		sp := p.parseStructPattern(variant)
		sp.TypeName = enumName + "::" + variant.Literal

		return ast.NewEnumVariantPattern(token.Span{Start: start.Start, End: sp.Span().End}, enumName, variant.Literal, nil, sp.Fields)
	}

	return ast.NewEnumVariantPattern(token.Span{Start: start.Start, End: variant.Span.End}, enumName, variant.Literal, nil, nil)
}

func (p *Parser) parseStructPattern(name token.Token) *ast.StructPattern {
	p.advance() // {
	var fields []ast.StructFieldPattern
	hasRest := false

	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		if p.at(token.DOTDOT) {
			p.advance()
			hasRest = true

			break
		}

		fname, _ := p.expect(token.IDENT)
		if p.at(token.COLON) {
			p.advance()
			pat := p.parsePattern()
			fields = append(fields, ast.StructFieldPattern{Name: fname.Literal, Pattern: pat})
		} else {
			fields = append(fields, ast.StructFieldPattern{
				Name:      fname.Literal,
				Pattern:   ast.NewIdentPattern(fname.Span, fname.Literal),
				Shorthand: true,
			})
		}

		if !p.at(token.RBRACE) {
			p.expect(token.COMMA)
		}
	}
	end, _ := p.expect(token.RBRACE)

	return ast.NewStructPattern(token.Span{Start: name.Span.Start, End: end.Span.End}, name.Literal, fields, hasRest)
}
