package parser

import (
	"strconv"
	"strings"

	"github.com/paiml/ruchy-sub009/ast"
	"github.com/paiml/ruchy-sub009/token"
)

// parseExpr is the Pratt loop: parse one prefix expression, then
// repeatedly fold in infix operators whose precedence exceeds minPrec.
func (p *Parser) parseExpr(minPrec int) ast.Expr {
	left := p.parsePrefix()

	for {
		if assignOp, ok := assignOps[p.cur.Kind]; ok && minPrec <= precLowest {
			left = p.parseCompoundAssign(left, assignOp)
			continue
		}

		if p.at(token.ASSIGN) && minPrec <= precLowest {
			left = p.parseAssign(left)
			continue
		}

		info, ok := opTable[p.cur.Kind]
		if !ok || info.prec < minPrec {
			return left
		}

		op := p.advance()
		nextMin := info.prec + 1
		if info.assoc == assocRight {
			nextMin = info.prec
		}

		if info.op == ".." || info.op == "..=" {
			left = p.parseRangeTail(left, op, info.op == "..=")
			continue
		}

		if info.op == "|>" {
			left = p.parsePipelineTail(left)
			continue
		}

		right := p.parseExpr(nextMin)
		left = ast.NewBinaryOp(token.Span{Start: left.Span().Start, End: right.Span().End}, info.op, left, right)
	}
}

func (p *Parser) parseRangeTail(left ast.Expr, op token.Token, inclusive bool) ast.Expr {
	// An end-less range (`a..`) is legal as an iterable; only parse a
	// right operand when one is plausibly present.
	if p.at(token.RPAREN) || p.at(token.RBRACKET) || p.at(token.RBRACE) ||
		p.at(token.COMMA) || p.at(token.SEMI) || p.at(token.EOF) {
		return ast.NewRangeLit(token.Span{Start: left.Span().Start, End: op.Span.End}, left, nil, inclusive)
	}

	right := p.parseExpr(precRange + 1)

	return ast.NewRangeLit(token.Span{Start: left.Span().Start, End: right.Span().End}, left, right, inclusive)
}

// parsePipelineTail parses the function side of `value |> func(args)` and
// folds it directly into a Call: `value` is spliced in as the first
// argument, or substituted for a bare `_` placeholder if one appears
// among the explicit arguments (spec §4.5). When the right-hand side is
// a bare function reference with no argument list (`x |> f`), it is
// wrapped into a one-argument Call instead.
func (p *Parser) parsePipelineTail(left ast.Expr) ast.Expr {
	right := p.parseExpr(precPipeline + 1)

	if call, ok := right.(*ast.Call); ok {
		placeholder := -1
		for i, a := range call.Args {
			if id, ok := a.(*ast.Ident); ok && id.Name == "_" {
				placeholder = i

				break
			}
		}

		args := make([]ast.Expr, len(call.Args))
		copy(args, call.Args)
		if placeholder >= 0 {
			args[placeholder] = left
		} else {
			args = append([]ast.Expr{left}, args...)
		}

		return ast.NewCall(token.Span{Start: left.Span().Start, End: call.Span().End}, call.Callee, args)
	}

	return ast.NewCall(token.Span{Start: left.Span().Start, End: right.Span().End}, right, []ast.Expr{left})
}

func (p *Parser) parseAssign(left ast.Expr) ast.Expr {
	p.advance() // =
	value := p.parseExpr(precLowest)
	pat := exprToPattern(left)

	return ast.NewLetIn(token.Span{Start: left.Span().Start, End: value.Span().End}, pat, nil, value, nil, false, true)
}

func (p *Parser) parseCompoundAssign(left ast.Expr, op string) ast.Expr {
	tok := p.advance()
	rhs := p.parseExpr(precLowest)
	folded := ast.NewBinaryOp(token.Span{Start: left.Span().Start, End: rhs.Span().End}, op, left, rhs)
	pat := exprToPattern(left)

	return ast.NewLetIn(token.Span{Start: left.Span().Start, End: tok.Span.End}, pat, nil, folded, nil, false, true)
}

// exprToPattern converts an already-parsed lvalue expression (currently
// only a bare identifier is supported) into the IdentPattern an
// assignment's desugared LetIn expects.
func exprToPattern(e ast.Expr) ast.Pattern {
	if id, ok := e.(*ast.Ident); ok {
		return ast.NewIdentPattern(id.Span(), id.Name)
	}

	return ast.NewWildcardPattern(e.Span())
}

// parsePrefix parses a prefix/unary expression or a primary expression if
// no prefix operator is present.
func (p *Parser) parsePrefix() ast.Expr {
	switch p.cur.Kind {
	case token.MINUS, token.BANG:
		tok := p.advance()
		operand := p.parseExpr(precUnary)

		return p.parsePostfix(ast.NewUnaryOp(token.Span{Start: tok.Span.Start, End: operand.Span().End}, tok.Kind.String(), operand))
	case token.AWAIT:
		tok := p.advance()
		inner := p.parseExpr(precUnary)

		return p.parsePostfix(ast.NewAwait(token.Span{Start: tok.Span.Start, End: inner.Span().End}, inner))
	default:
		return p.parsePostfix(p.parsePrimary())
	}
}

// parsePostfix folds call/index/field-access/try suffixes onto an
// already-parsed primary expression, left to right.
func (p *Parser) parsePostfix(e ast.Expr) ast.Expr {
	for {
		switch p.cur.Kind {
		case token.LPAREN:
			e = p.parseCallTail(e)
		case token.LBRACKET:
			p.advance()
			idx := p.parseExpr(precLowest)
			end, _ := p.expect(token.RBRACKET)
			e = ast.NewIndex(token.Span{Start: e.Span().Start, End: end.Span.End}, e, idx)
		case token.DOT:
			p.advance()
			name, _ := p.expect(token.IDENT)
			e = ast.NewFieldAccess(token.Span{Start: e.Span().Start, End: name.Span.End}, e, name.Literal)
		case token.COLONCOLON:
			p.advance()
			name, _ := p.expect(token.IDENT)
			e = ast.NewFieldAccess(token.Span{Start: e.Span().Start, End: name.Span.End}, e, name.Literal)
		case token.QUESTION:
			tok := p.advance()
			e = ast.NewTry(token.Span{Start: e.Span().Start, End: tok.Span.End}, e)
		default:
			return e
		}
	}
}

func (p *Parser) parseCallTail(callee ast.Expr) ast.Expr {
	p.advance() // (
	var args []ast.Expr
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		args = append(args, p.parseExpr(precLowest))
		if !p.at(token.RPAREN) {
			p.expect(token.COMMA)
		}
	}
	end, _ := p.expect(token.RPAREN)

	return ast.NewCall(token.Span{Start: callee.Span().Start, End: end.Span.End}, callee, args)
}

// parsePrimary parses a single atomic or bracketed expression.
func (p *Parser) parsePrimary() ast.Expr {
	tok := p.cur

	switch tok.Kind {
	case token.INT:
		p.advance()

		return ast.NewIntLit(tok.Span, parseIntLiteral(tok.Literal))
	case token.FLOAT:
		p.advance()
		v, _ := strconv.ParseFloat(tok.Literal, 64)

		return ast.NewFloatLit(tok.Span, v)
	case token.TRUE, token.FALSE:
		p.advance()

		return ast.NewBoolLit(tok.Span, tok.Kind == token.TRUE)
	case token.NIL:
		p.advance()

		return ast.NewNilLit(tok.Span)
	case token.CHAR:
		p.advance()
		r := rune(0)
		for _, rr := range tok.Literal {
			r = rr

			break
		}

		return ast.NewCharLit(tok.Span, r)
	case token.STRING:
		p.advance()

		return ast.NewStringLit(tok.Span, tok.Literal)
	case token.STRING_START:
		return p.parseInterpString()
	case token.IDENT:
		p.advance()
		if p.at(token.LBRACE) && identLooksLikeStructName(tok.Literal) {
			return p.parseStructLit(tok)
		}

		return ast.NewIdent(tok.Span, tok.Literal)
	case token.UNDERSCOR:
		p.advance()

		return ast.NewIdent(tok.Span, "_")
	case token.LPAREN:
		return p.parseParenOrTuple()
	case token.LBRACKET:
		return p.parseListLit()
	case token.PIPE:
		return p.parseLambda()
	case token.IF:
		return p.parseIf()
	case token.MATCH:
		return p.parseMatch()
	case token.LBRACE:
		return p.parseBlock()
	case token.WHILE, token.FOR, token.LOOP:
		return p.parseLoop()
	case token.BREAK:
		p.advance()
		if p.atExprBoundary() {
			return ast.NewBreak(tok.Span, nil)
		}
		v := p.parseExpr(precLowest)

		return ast.NewBreak(token.Span{Start: tok.Span.Start, End: v.Span().End}, v)
	case token.CONTINUE:
		p.advance()

		return ast.NewContinue(tok.Span)
	case token.RETURN:
		p.advance()
		if p.atExprBoundary() {
			return ast.NewReturn(tok.Span, nil)
		}
		v := p.parseExpr(precLowest)

		return ast.NewReturn(token.Span{Start: tok.Span.Start, End: v.Span().End}, v)
	case token.LET, token.VAR, token.CONST:
		return p.parseLet()
	case token.FN:
		return p.parseFnDecl()
	case token.ASYNC:
		p.advance()
		body := p.parseExpr(precUnary)

		return ast.NewAsync(token.Span{Start: tok.Span.Start, End: body.Span().End}, body)
	default:
		errNode := p.recover(tok.Span, "unexpected token in expression position: "+tok.Kind.String())

		return errNode
	}
}

func (p *Parser) atExprBoundary() bool {
	return p.at(token.SEMI) || p.at(token.RBRACE) || p.at(token.EOF) ||
		p.at(token.RPAREN) || p.at(token.RBRACKET) || p.at(token.COMMA)
}

// identLooksLikeStructName is a parse-time heuristic (spec §4.2 resolves
// the classic `Ident { ... }` struct-literal vs. block-after-identifier
// ambiguity by capitalization, the same convention the teacher's struct
// types use in parser_structs.go): identifiers starting with an
// uppercase letter may open a struct literal; lowercase ones never do,
// so `if cond { ... }` is never misparsed as a struct literal.
func identLooksLikeStructName(name string) bool {
	if name == "" {
		return false
	}
	r := []rune(name)[0]

	return r >= 'A' && r <= 'Z'
}

func (p *Parser) parseStructLit(name token.Token) ast.Expr {
	p.advance() // {
	var fields []ast.StructFieldInit
	seen := map[string]bool{}
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		fname, _ := p.expect(token.IDENT)
		p.expect(token.COLON)
		val := p.parseExpr(precLowest)
		// Duplicate field literals are a diagnostic, not a silent
		// last-write-wins overwrite (spec §3.6): implementation-defined
		// whether caught here or at type time, but it must be caught.
		if seen[fname.Literal] {
			p.errorf(fname.Span, "duplicate field %q in struct literal", fname.Literal)
		}
		seen[fname.Literal] = true
		fields = append(fields, ast.StructFieldInit{Name: fname.Literal, Value: val})
		if !p.at(token.RBRACE) {
			p.expect(token.COMMA)
		}
	}
	end, _ := p.expect(token.RBRACE)

	return ast.NewStructLit(token.Span{Start: name.Span.Start, End: end.Span.End}, name.Literal, fields)
}

func (p *Parser) parseParenOrTuple() ast.Expr {
	start := p.advance() // (
	if p.at(token.RPAREN) {
		end := p.advance()

		return ast.NewTupleLit(token.Span{Start: start.Span.Start, End: end.Span.End}, nil)
	}

	first := p.parseExpr(precLowest)
	if p.at(token.RPAREN) {
		end := p.advance()
		_ = end

		return first
	}

	elems := []ast.Expr{first}
	for p.at(token.COMMA) {
		p.advance()
		if p.at(token.RPAREN) {
			break
		}
		elems = append(elems, p.parseExpr(precLowest))
	}
	end, _ := p.expect(token.RPAREN)

	return ast.NewTupleLit(token.Span{Start: start.Span.Start, End: end.Span.End}, elems)
}

func (p *Parser) parseListLit() ast.Expr {
	start := p.advance() // [
	var elems []ast.Expr
	for !p.at(token.RBRACKET) && !p.at(token.EOF) {
		elems = append(elems, p.parseExpr(precLowest))
		if !p.at(token.RBRACKET) {
			p.expect(token.COMMA)
		}
	}
	end, _ := p.expect(token.RBRACKET)

	return ast.NewListLit(token.Span{Start: start.Span.Start, End: end.Span.End}, elems)
}

func (p *Parser) parseLambda() ast.Expr {
	start := p.advance() // |
	var params []ast.Param
	for !p.at(token.PIPE) && !p.at(token.EOF) {
		name, _ := p.expect(token.IDENT)
		var typ ast.TypeExpr
		if _, ok := p.accept(token.COLON); ok {
			typ = p.parseTypeExpr()
		}
		params = append(params, ast.Param{Name: name.Literal, Type: typ})
		if !p.at(token.PIPE) {
			p.expect(token.COMMA)
		}
	}
	p.expect(token.PIPE)

	var ret ast.TypeExpr
	if _, ok := p.accept(token.ARROW); ok {
		ret = p.parseTypeExpr()
	}

	body := p.parseExpr(precLowest)

	return ast.NewLambda(token.Span{Start: start.Span.Start, End: body.Span().End}, "", params, ret, body)
}

func (p *Parser) parseIf() ast.Expr {
	start := p.advance() // if
	cond := p.parseExpr(precLowest)
	then := p.parseBlock()

	var els ast.Expr
	if _, ok := p.accept(token.ELSE); ok {
		if p.at(token.IF) {
			els = p.parseIf()
		} else {
			els = p.parseBlock()
		}
	}

	end := then.Span()
	if els != nil {
		end = els.Span()
	}

	return ast.NewIf(token.Span{Start: start.Span.Start, End: end.End}, cond, then, els)
}

func (p *Parser) parseBlock() ast.Expr {
	start, _ := p.expect(token.LBRACE)
	var stmts []ast.Expr
	implicitUnit := true

	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		e := p.parseTopLevel()
		stmts = append(stmts, e)

		if p.at(token.SEMI) {
			for p.at(token.SEMI) {
				p.advance()
			}
			implicitUnit = true
		} else {
			implicitUnit = false
		}
	}
	end, _ := p.expect(token.RBRACE)

	return ast.NewBlock(token.Span{Start: start.Span.Start, End: end.Span.End}, stmts, implicitUnit || len(stmts) == 0)
}

func (p *Parser) parseMatch() ast.Expr {
	start := p.advance() // match
	scrutinee := p.parseExpr(precLowest)
	p.expect(token.LBRACE)

	var arms []ast.MatchArm
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		pats := []ast.Pattern{p.parsePattern()}
		for _, ok := p.accept(token.PIPE); ok; _, ok = p.accept(token.PIPE) {
			pats = append(pats, p.parsePattern())
		}

		var guard ast.Expr
		if _, ok := p.accept(token.IF); ok {
			guard = p.parseExpr(precLowest)
		}

		p.expect(token.FATARROW)
		body := p.parseExpr(precLowest)
		arms = append(arms, ast.MatchArm{Patterns: pats, Guard: guard, Body: body})

		if !p.at(token.RBRACE) {
			p.expect(token.COMMA)
		}
	}
	end, _ := p.expect(token.RBRACE)

	return ast.NewMatch(token.Span{Start: start.Span.Start, End: end.Span.End}, scrutinee, arms)
}

func (p *Parser) parseLoop() ast.Expr {
	switch p.cur.Kind {
	case token.WHILE:
		start := p.advance()
		cond := p.parseExpr(precLowest)
		body := p.parseBlock()

		return ast.NewLoop(token.Span{Start: start.Span.Start, End: body.Span().End}, ast.LoopWhile, cond, nil, nil, body)
	case token.FOR:
		start := p.advance()
		pat := p.parsePattern()
		p.expect(token.IN)
		iter := p.parseExpr(precLowest)
		body := p.parseBlock()

		return ast.NewLoop(token.Span{Start: start.Span.Start, End: body.Span().End}, ast.LoopFor, nil, pat, iter, body)
	default: // LOOP
		start := p.advance()
		body := p.parseBlock()

		return ast.NewLoop(token.Span{Start: start.Span.Start, End: body.Span().End}, ast.LoopBare, nil, nil, nil, body)
	}
}

// parseInterpString consumes the STRING_START .. STRING_END run produced
// by the lexer's re-entrant interpolation mode and folds it into a single
// InterpString node with an ordered fragment list. Nested interpolated
// strings inside a hole parse through the normal parseExpr recursion,
// since the lexer already re-entered normal-token mode for the hole.
func (p *Parser) parseInterpString() ast.Expr {
	start := p.advance() // STRING_START
	var frags []ast.InterpFragment
	end := start

	for {
		switch p.cur.Kind {
		case token.STRING_FRAGMENT:
			t := p.advance()
			frags = append(frags, ast.InterpFragment{Literal: t.Literal})
			end = t
		case token.INTERP_START:
			p.advance()
			e := p.parseExpr(precLowest)
			frags = append(frags, ast.InterpFragment{Expr: e})
			endTok, _ := p.expect(token.INTERP_END)
			end = endTok
		case token.STRING_END:
			end = p.advance()

			return ast.NewInterpString(token.Span{Start: start.Span.Start, End: end.Span.End}, frags)
		case token.EOF:
			return ast.NewInterpString(token.Span{Start: start.Span.Start, End: end.Span.End}, frags)
		default:
			errTok := p.advance()
			end = errTok
		}
	}
}

func parseIntLiteral(lit string) int64 {
	s := lit
	base := 10
	switch {
	case strings.HasPrefix(s, "0x"):
		base, s = 16, s[2:]
	case strings.HasPrefix(s, "0o"):
		base, s = 8, s[2:]
	case strings.HasPrefix(s, "0b"):
		base, s = 2, s[2:]
	}
	v, _ := strconv.ParseInt(s, base, 64)

	return v
}
