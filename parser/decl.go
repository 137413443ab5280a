package parser

import (
	"github.com/paiml/ruchy-sub009/ast"
	"github.com/paiml/ruchy-sub009/token"
)

// parseLet parses `let [mut]`/`var`/`const pattern [: Type] = value [in body]`.
// `let mut` and `var` bind mutably; `const` desugars to an immutable
// `let`; mutability tracking that the
// teacher's parser did via LetVars/Consts side tables (parser.go) is
// pushed into the LetIn node itself so later passes need no parser state.
func (p *Parser) parseLet() ast.Expr {
	kw := p.advance()
	mutable := kw.Kind == token.VAR
	if kw.Kind == token.LET && p.at(token.IDENT) && p.peek().Literal == "mut" {
		p.advance()
		mutable = true
	}

	rec := false
	if kw.Kind == token.LET && p.at(token.IDENT) && p.peek().Literal == "rec" {
		p.advance()
		rec = true
	}

	pat := p.parsePattern()

	var typeAnn ast.TypeExpr
	if _, ok := p.accept(token.COLON); ok {
		typeAnn = p.parseTypeExpr()
	}

	p.expect(token.ASSIGN)
	value := p.parseExpr(precLowest)

	var body ast.Expr
	end := value.Span()
	if _, ok := p.accept(token.IN); ok {
		body = p.parseExpr(precLowest)
		end = body.Span()
	}

	return ast.NewLetIn(token.Span{Start: kw.Span.Start, End: end.End}, pat, typeAnn, value, body, rec, mutable)
}

// parseFnDecl parses `fn name(params) [-> RetType] { body }`, producing a
// named Lambda (spec §3 treats a function declaration as sugar for
// `let name = |params| body`, folded by the canonicalizer).
func (p *Parser) parseFnDecl() ast.Expr {
	start := p.advance() // fn
	name, _ := p.expect(token.IDENT)
	params := p.parseParamList()

	var ret ast.TypeExpr
	if _, ok := p.accept(token.ARROW); ok {
		ret = p.parseTypeExpr()
	}

	body := p.parseBlock()

	return ast.NewLambda(token.Span{Start: start.Span.Start, End: body.Span().End}, name.Literal, params, ret, body)
}

func (p *Parser) parseParamList() []ast.Param {
	p.expect(token.LPAREN)
	var params []ast.Param
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		name, _ := p.expect(token.IDENT)
		var typ ast.TypeExpr
		if _, ok := p.accept(token.COLON); ok {
			typ = p.parseTypeExpr()
		}
		params = append(params, ast.Param{Name: name.Literal, Type: typ})
		if !p.at(token.RPAREN) {
			p.expect(token.COMMA)
		}
	}
	p.expect(token.RPAREN)

	return params
}

func (p *Parser) parseStructDecl() ast.Expr {
	start := p.advance() // struct
	name, _ := p.expect(token.IDENT)
	p.expect(token.LBRACE)

	var fields []ast.StructField
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		fname, _ := p.expect(token.IDENT)
		p.expect(token.COLON)
		typ := p.parseTypeExpr()
		fields = append(fields, ast.StructField{Name: fname.Literal, Type: typ})
		if !p.at(token.RBRACE) {
			p.expect(token.COMMA)
		}
	}
	end, _ := p.expect(token.RBRACE)

	return ast.NewStructDecl(token.Span{Start: start.Span.Start, End: end.Span.End}, name.Literal, fields)
}

func (p *Parser) parseEnumDecl() ast.Expr {
	start := p.advance() // enum
	name, _ := p.expect(token.IDENT)
	p.expect(token.LBRACE)

	var variants []ast.EnumVariant
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		vname, _ := p.expect(token.IDENT)
		v := ast.EnumVariant{Name: vname.Literal}

		if p.at(token.LPAREN) {
			p.advance()
			for !p.at(token.RPAREN) && !p.at(token.EOF) {
				v.Tuple = append(v.Tuple, p.parseTypeExpr())
				if !p.at(token.RPAREN) {
					p.expect(token.COMMA)
				}
			}
			p.expect(token.RPAREN)
		} else if p.at(token.LBRACE) {
			p.advance()
			for !p.at(token.RBRACE) && !p.at(token.EOF) {
				fname, _ := p.expect(token.IDENT)
				p.expect(token.COLON)
				typ := p.parseTypeExpr()
				v.Record = append(v.Record, ast.StructField{Name: fname.Literal, Type: typ})
				if !p.at(token.RBRACE) {
					p.expect(token.COMMA)
				}
			}
			p.expect(token.RBRACE)
		}

		variants = append(variants, v)
		if !p.at(token.RBRACE) {
			p.expect(token.COMMA)
		}
	}
	end, _ := p.expect(token.RBRACE)

	return ast.NewEnumDecl(token.Span{Start: start.Span.Start, End: end.Span.End}, name.Literal, variants)
}

func (p *Parser) parseTraitDecl() ast.Expr {
	start := p.advance() // trait
	name, _ := p.expect(token.IDENT)
	p.expect(token.LBRACE)

	var methods []ast.TraitMethod
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		p.expect(token.FN)
		mname, _ := p.expect(token.IDENT)
		params := p.parseParamList()

		var ret ast.TypeExpr
		if _, ok := p.accept(token.ARROW); ok {
			ret = p.parseTypeExpr()
		}

		m := ast.TraitMethod{Name: mname.Literal, Params: params, RetType: ret}
		if p.at(token.LBRACE) {
			m.Default = p.parseBlock()
		} else {
			p.expect(token.SEMI)
		}

		methods = append(methods, m)
	}
	end, _ := p.expect(token.RBRACE)

	return ast.NewTraitDecl(token.Span{Start: start.Span.Start, End: end.Span.End}, name.Literal, methods)
}

func (p *Parser) parseImplDecl() ast.Expr {
	start := p.advance() // impl
	first, _ := p.expect(token.IDENT)

	traitName := ""
	typeName := first.Literal
	if _, ok := p.accept(token.FOR); ok {
		typeTok, _ := p.expect(token.IDENT)
		traitName = first.Literal
		typeName = typeTok.Literal
	}

	p.expect(token.LBRACE)
	var methods []*ast.Lambda
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		m := p.parseFnDecl()
		if lam, ok := m.(*ast.Lambda); ok {
			methods = append(methods, lam)
		}
	}
	end, _ := p.expect(token.RBRACE)

	return ast.NewImplDecl(token.Span{Start: start.Span.Start, End: end.Span.End}, traitName, typeName, methods)
}

func (p *Parser) parseImportDecl() ast.Expr {
	start := p.advance() // import
	var path []string
	first, _ := p.expect(token.IDENT)
	path = append(path, first.Literal)

	for p.at(token.COLONCOLON) {
		p.advance()
		seg, _ := p.expect(token.IDENT)
		path = append(path, seg.Literal)
	}

	alias := ""
	end := first.Span
	if _, ok := p.accept(token.AS); ok {
		aliasTok, _ := p.expect(token.IDENT)
		alias = aliasTok.Literal
		end = aliasTok.Span
	}

	return ast.NewImportDecl(token.Span{Start: start.Span.Start, End: end.End}, path, alias)
}
