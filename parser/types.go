package parser

import (
	"github.com/paiml/ruchy-sub009/ast"
	"github.com/paiml/ruchy-sub009/token"
)

// parseTypeExpr parses a syntactic type annotation: named types with
// optional bracketed type arguments, function types, tuple types, and
// record types with an optional trailing row variable.
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	switch p.cur.Kind {
	case token.FN:
		return p.parseFuncType()
	case token.LPAREN:
		return p.parseTupleType()
	case token.LBRACE:
		return p.parseRecordType()
	default:
		return p.parseNamedOrVarType()
	}
}

func (p *Parser) parseNamedOrVarType() ast.TypeExpr {
	tok, _ := p.expect(token.IDENT)

	if isLowerLeadingTypeVar(tok.Literal) {
		return ast.NewTypeVar(tok.Span, tok.Literal)
	}

	var args []ast.TypeExpr
	end := tok.Span
	// Generic type arguments use angle brackets (`List<int>`, `a::b::c<T,U>`)
	// per the type-expression grammar. A type annotation never contains a
	// comparison, so `<` is never ambiguous with less-than here — unlike
	// the turbofish position in an expression (spec's `<` disambiguation
	// rule), this position needs no lookahead at all.
	if p.at(token.LT) {
		p.advance()
		for !p.at(token.GT) && !p.at(token.SHR) && !p.at(token.EOF) {
			args = append(args, p.parseTypeExpr())
			if !p.at(token.GT) && !p.at(token.SHR) {
				p.expect(token.COMMA)
			}
		}
		end = p.expectTypeArgClose().Span
	}

	return ast.NewNamedType(token.Span{Start: tok.Span.Start, End: end.End}, tok.Literal, args)
}

// expectTypeArgClose consumes the '>' that closes a generic type argument
// list. Nested generics (`List<List<int>>`) lex their trailing `>>` as a
// single SHR token; this splits it into two synthetic '>' tokens the way
// a Rust-style parser does, so the outer parseNamedOrVarType call sees
// its own closing '>' without the lexer needing any parser-context state.
func (p *Parser) expectTypeArgClose() token.Token {
	if p.cur.Kind == token.SHR {
		orig := p.cur
		mid := token.Position{
			Offset: orig.Span.Start.Offset + 1,
			Line:   orig.Span.Start.Line,
			Column: orig.Span.Start.Column + 1,
			File:   orig.Span.Start.File,
		}
		closing := orig
		closing.Kind = token.GT
		closing.Literal = ">"
		closing.Span = token.Span{Start: orig.Span.Start, End: mid}

		p.cur = token.Token{Kind: token.GT, Literal: ">", Span: token.Span{Start: mid, End: orig.Span.End}}

		return closing
	}

	tok, _ := p.expect(token.GT)

	return tok
}

// isLowerLeadingTypeVar follows the same lowercase/uppercase convention
// used elsewhere in the grammar to disambiguate without backtracking:
// a single lowercase identifier with no type arguments is a type
// variable (`a`, `t`), while PascalCase identifiers name type
// constructors (`Int`, `List`). The primitive type names (`int`,
// `float`, `bool`, `char`, `string`, `unit`, `nil`) are named types, not
// type variables.
func isLowerLeadingTypeVar(name string) bool {
	switch name {
	case "", "int", "float", "bool", "char", "string", "unit", "nil":
		return false
	}
	r := []rune(name)[0]

	return r >= 'a' && r <= 'z'
}

func (p *Parser) parseFuncType() ast.TypeExpr {
	start := p.advance() // fn
	p.expect(token.LPAREN)

	var params []ast.TypeExpr
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		params = append(params, p.parseTypeExpr())
		if !p.at(token.RPAREN) {
			p.expect(token.COMMA)
		}
	}
	end, _ := p.expect(token.RPAREN)

	var ret ast.TypeExpr
	finalEnd := end.Span
	if _, ok := p.accept(token.ARROW); ok {
		ret = p.parseTypeExpr()
		finalEnd = ret.Span()
	}

	return ast.NewFuncType(token.Span{Start: start.Span.Start, End: finalEnd.End}, params, ret)
}

func (p *Parser) parseTupleType() ast.TypeExpr {
	start := p.advance() // (
	var elems []ast.TypeExpr
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		elems = append(elems, p.parseTypeExpr())
		if !p.at(token.RPAREN) {
			p.expect(token.COMMA)
		}
	}
	end, _ := p.expect(token.RPAREN)

	return ast.NewTupleType(token.Span{Start: start.Span.Start, End: end.Span.End}, elems)
}

func (p *Parser) parseRecordType() ast.TypeExpr {
	start := p.advance() // {
	var fields []ast.RecordTypeField
	row := ""

	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		if p.at(token.PIPE) {
			p.advance()
			rowTok, _ := p.expect(token.IDENT)
			row = rowTok.Literal

			break
		}

		name, _ := p.expect(token.IDENT)
		p.expect(token.COLON)
		typ := p.parseTypeExpr()
		fields = append(fields, ast.RecordTypeField{Name: name.Literal, Type: typ})

		if !p.at(token.RBRACE) {
			p.expect(token.COMMA)
		}
	}
	end, _ := p.expect(token.RBRACE)

	return ast.NewRecordType(token.Span{Start: start.Span.Start, End: end.Span.End}, fields, row)
}
