package canon

import (
	"github.com/paiml/ruchy-sub009/ast"
	"github.com/paiml/ruchy-sub009/token"
)

// expr is the single recursive-descent entry point that lowers one
// ast.Expr into its canonical form under the binding frames in sc. Every
// branch attaches sp, e's own span, to the node it builds, so the
// canonical tree traces back to real source positions (spec §3).
func (c *canonicalizer) expr(e ast.Expr, sc *scope) CExpr {
	sp := e.Span()

	switch n := e.(type) {
	case *ast.IntLit:
		return CInt{cbase: spanOf(sp), Value: n.Value}
	case *ast.FloatLit:
		return CFloat{cbase: spanOf(sp), Value: n.Value}
	case *ast.BoolLit:
		return CBool{cbase: spanOf(sp), Value: n.Value}
	case *ast.CharLit:
		return CChar{cbase: spanOf(sp), Value: n.Value}
	case *ast.StringLit:
		return CString{cbase: spanOf(sp), Value: n.Value}
	case *ast.NilLit:
		return CNil{cbase: spanOf(sp)}
	case *ast.Ident:
		return c.resolveVar(n.Name, sp, sc)
	case *ast.InterpString:
		return c.interpString(n, sc)
	case *ast.BinaryOp:
		return CBinary{cbase: spanOf(sp), Op: n.Op, Left: c.expr(n.Left, sc), Right: c.expr(n.Right, sc)}
	case *ast.UnaryOp:
		return CUnary{cbase: spanOf(sp), Op: n.Op, Operand: c.expr(n.Operand, sc)}
	case *ast.Call:
		args := make([]CExpr, len(n.Args))
		for i, a := range n.Args {
			args[i] = c.expr(a, sc)
		}

		return CApp{cbase: spanOf(sp), Func: c.expr(n.Callee, sc), Args: args}
	case *ast.FieldAccess:
		return CFieldAccess{cbase: spanOf(sp), Object: c.expr(n.Object, sc), Field: n.Field}
	case *ast.Index:
		return CIndex{cbase: spanOf(sp), Object: c.expr(n.Object, sc), Index: c.expr(n.Index, sc)}
	case *ast.If:
		var els CExpr
		if n.Else != nil {
			els = c.expr(n.Else, sc)
		}

		return CIf{cbase: spanOf(sp), Cond: c.expr(n.Cond, sc), Then: c.expr(n.Then, sc), Else: els}
	case *ast.Match:
		return c.match(n, sc)
	case *ast.Block:
		return c.block(n, sc)
	case *ast.LetIn:
		return c.letIn(n, sc)
	case *ast.Lambda:
		names := make([]string, len(n.Params))
		for i, prm := range n.Params {
			names[i] = prm.Name
		}
		inner := sc.push(names)

		return CLam{cbase: spanOf(sp), Name: n.Name, Params: names, Body: c.expr(n.Body, inner)}
	case *ast.Loop:
		return c.loop(n, sc)
	case *ast.Break:
		var v CExpr
		if n.Value != nil {
			v = c.expr(n.Value, sc)
		}

		return CBreak{cbase: spanOf(sp), Value: v}
	case *ast.Continue:
		return CContinue{cbase: spanOf(sp)}
	case *ast.Return:
		var v CExpr
		if n.Value != nil {
			v = c.expr(n.Value, sc)
		}

		return CReturn{cbase: spanOf(sp), Value: v}
	case *ast.Try:
		return CTry{cbase: spanOf(sp), Inner: c.expr(n.Inner, sc)}
	case *ast.Async:
		return CAsync{cbase: spanOf(sp), Body: c.expr(n.Body, sc)}
	case *ast.Await:
		return CAwait{cbase: spanOf(sp), Inner: c.expr(n.Inner, sc)}
	case *ast.ListLit:
		return CListLit{cbase: spanOf(sp), Elems: c.exprs(n.Elems, sc)}
	case *ast.TupleLit:
		return CTupleLit{cbase: spanOf(sp), Elems: c.exprs(n.Elems, sc)}
	case *ast.SetLit:
		return CSetLit{cbase: spanOf(sp), Elems: c.exprs(n.Elems, sc)}
	case *ast.MapLit:
		entries := make([]CMapEntry, len(n.Entries))
		for i, ent := range n.Entries {
			entries[i] = CMapEntry{Key: c.expr(ent.Key, sc), Value: c.expr(ent.Value, sc)}
		}

		return CMapLit{cbase: spanOf(sp), Entries: entries}
	case *ast.RangeLit:
		var start, end CExpr
		if n.Start != nil {
			start = c.expr(n.Start, sc)
		}
		if n.End != nil {
			end = c.expr(n.End, sc)
		}

		return CRangeLit{cbase: spanOf(sp), Start: start, End: end, Inclusive: n.Inclusive}
	case *ast.StructLit:
		fields := make([]CStructFieldInit, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = CStructFieldInit{Name: f.Name, Value: c.expr(f.Value, sc)}
		}

		return CStructLit{cbase: spanOf(sp), Name: n.Name, Fields: fields}
	case *ast.StructDecl:
		return CStructDecl{cbase: spanOf(sp), Name: n.Name, Fields: n.Fields}
	case *ast.EnumDecl:
		return CEnumDecl{cbase: spanOf(sp), Name: n.Name, Variants: n.Variants}
	case *ast.TraitDecl:
		methods := make([]CTraitMethod, len(n.Methods))
		for i, m := range n.Methods {
			names := make([]string, len(m.Params))
			for j, prm := range m.Params {
				names[j] = prm.Name
			}
			var def CExpr
			if m.Default != nil {
				def = c.expr(m.Default, sc.push(names))
			}
			methods[i] = CTraitMethod{Name: m.Name, Params: m.Params, RetType: m.RetType, Default: def}
		}

		return CTraitDecl{cbase: spanOf(sp), Name: n.Name, Methods: methods}
	case *ast.ImplDecl:
		methods := make([]CLam, len(n.Methods))
		for i, m := range n.Methods {
			names := make([]string, len(m.Params))
			for j, prm := range m.Params {
				names[j] = prm.Name
			}
			methods[i] = CLam{cbase: spanOf(m.Span()), Name: m.Name, Params: names, Body: c.expr(m.Body, sc.push(names))}
		}

		return CImplDecl{cbase: spanOf(sp), TraitName: n.TraitName, TypeName: n.TypeName, Methods: methods}
	case *ast.ImportDecl:
		return CImportDecl{cbase: spanOf(sp), Path: n.Path, Alias: n.Alias}
	case *ast.Error:
		return CError{cbase: spanOf(sp), Message: n.Message}
	default:
		return CError{cbase: spanOf(sp), Message: "canonicalize: unhandled node type"}
	}
}

func (c *canonicalizer) exprs(in []ast.Expr, sc *scope) []CExpr {
	out := make([]CExpr, len(in))
	for i, e := range in {
		out[i] = c.expr(e, sc)
	}

	return out
}

// interpString desugars `f"a{x}b"` into a single variadic application of
// a CFree("concat") builtin reference, with each hole wrapped in a
// `to_string` call (spec §4.3: string interpolation
// desugars to core function calls, not a special evaluator case).
func (c *canonicalizer) interpString(n *ast.InterpString, sc *scope) CExpr {
	sp := n.Span()
	if len(n.Fragments) == 0 {
		return CString{cbase: spanOf(sp), Value: ""}
	}

	parts := make([]CExpr, len(n.Fragments))
	for i, f := range n.Fragments {
		if f.Expr != nil {
			fsp := f.Expr.Span()
			parts[i] = CApp{
				cbase: spanOf(fsp),
				Func:  CFree{cbase: spanOf(fsp), Name: "to_string"},
				Args:  []CExpr{c.expr(f.Expr, sc)},
			}
		} else {
			parts[i] = CString{cbase: spanOf(sp), Value: f.Literal}
		}
	}

	return CApp{cbase: spanOf(sp), Func: CFree{cbase: spanOf(sp), Name: "concat"}, Args: parts}
}

// letIn lowers `let pat = value [in body]`. A bare IdentPattern becomes
// CLet; anything else becomes CLetPattern over the names the pattern
// binds, in the deterministic order patternNames produces. A block-level
// `let` (Body == nil) is resolved by block() against the remaining
// statements of its enclosing block, so letIn should only be reached
// directly for `let ... in ...` expression form or a final-position let.
func (c *canonicalizer) letIn(n *ast.LetIn, sc *scope) CExpr {
	sp := n.Span()
	value := c.expr(n.Value, sc)

	if ip, ok := n.Pattern.(*ast.IdentPattern); ok {
		inner := sc.push([]string{ip.Name})
		var body CExpr
		if n.Body != nil {
			body = c.expr(n.Body, inner)
		} else {
			body = CNil{cbase: spanOf(sp)}
		}

		return CLet{cbase: spanOf(sp), Name: ip.Name, Value: value, Body: body, Rec: n.Rec, Mutable: n.Mutable}
	}

	names := patternNames(n.Pattern)
	inner := sc.push(names)
	var body CExpr
	if n.Body != nil {
		body = c.expr(n.Body, inner)
	} else {
		body = CNil{cbase: spanOf(sp)}
	}

	return CLetPattern{cbase: spanOf(sp), Pattern: n.Pattern, Names: names, Value: value, Body: body, Mutable: n.Mutable}
}

// block flattens a sequence of statements, folding each block-level
// `let` into a CLet/CLetPattern whose Body is the canonicalized
// remainder of the block (spec §4.3 "let/block flattening").
func (c *canonicalizer) block(n *ast.Block, sc *scope) CExpr {
	return c.blockFrom(n.Stmts, n.ImplicitUnit, n.Span(), sc)
}

func (c *canonicalizer) blockFrom(stmts []ast.Expr, implicitUnit bool, sp token.Span, sc *scope) CExpr {
	if len(stmts) == 0 {
		return CBlock{cbase: spanOf(sp), ImplicitUnit: true}
	}

	head := stmts[0]
	rest := stmts[1:]
	restSpan := sp
	if len(rest) > 0 {
		restSpan = token.Join(rest[0].Span(), rest[len(rest)-1].Span())
	}

	if letNode, ok := head.(*ast.LetIn); ok && letNode.Body == nil {
		value := c.expr(letNode.Value, sc)

		if ip, ok := letNode.Pattern.(*ast.IdentPattern); ok {
			inner := sc.push([]string{ip.Name})
			body := c.blockFrom(rest, implicitUnit, restSpan, inner)

			return CLet{cbase: spanOf(sp), Name: ip.Name, Value: value, Body: body, Rec: letNode.Rec, Mutable: letNode.Mutable}
		}

		names := patternNames(letNode.Pattern)
		inner := sc.push(names)
		body := c.blockFrom(rest, implicitUnit, restSpan, inner)

		return CLetPattern{cbase: spanOf(sp), Pattern: letNode.Pattern, Names: names, Value: value, Body: body, Mutable: letNode.Mutable}
	}

	cHead := c.expr(head, sc)
	if len(rest) == 0 {
		if implicitUnit {
			return CBlock{cbase: spanOf(sp), Stmts: []CExpr{cHead}, ImplicitUnit: true}
		}

		return cHead
	}

	tail := c.blockFrom(rest, implicitUnit, restSpan, sc)
	if tb, ok := tail.(CBlock); ok {
		return CBlock{cbase: spanOf(sp), Stmts: append([]CExpr{cHead}, tb.Stmts...), ImplicitUnit: tb.ImplicitUnit}
	}

	return CBlock{cbase: spanOf(sp), Stmts: []CExpr{cHead, tail}, ImplicitUnit: implicitUnit}
}

func (c *canonicalizer) match(n *ast.Match, sc *scope) CExpr {
	scrutinee := c.expr(n.Scrutinee, sc)
	arms := make([]CMatchArm, len(n.Arms))

	for i, a := range n.Arms {
		var names []string
		for _, pat := range a.Patterns {
			names = patternNames(pat)

			break
		}
		inner := sc.push(names)

		var guard CExpr
		if a.Guard != nil {
			guard = c.expr(a.Guard, inner)
		}

		arms[i] = CMatchArm{
			Patterns: a.Patterns,
			Names:    names,
			Guard:    guard,
			Body:     c.expr(a.Body, inner),
		}
	}

	return CMatch{cbase: spanOf(n.Span()), Scrutinee: scrutinee, Arms: arms, Cache: &MatchCache{}}
}

func (c *canonicalizer) loop(n *ast.Loop, sc *scope) CExpr {
	sp := n.Span()

	switch n.Kind {
	case ast.LoopWhile:
		return CLoop{cbase: spanOf(sp), Kind: LoopWhile, Cond: c.expr(n.Cond, sc), Body: c.expr(n.Body, sc)}
	case ast.LoopFor:
		iter := c.expr(n.Iter, sc)
		names := patternNames(n.Pat)
		inner := sc.push(names)
		bindName := ""
		if ip, ok := n.Pat.(*ast.IdentPattern); ok {
			bindName = ip.Name
		}

		return CLoop{cbase: spanOf(sp), Kind: LoopFor, Pat: n.Pat, BindName: bindName, Iter: iter, Body: c.expr(n.Body, inner)}
	default:
		return CLoop{cbase: spanOf(sp), Kind: LoopBare, Body: c.expr(n.Body, sc)}
	}
}

// patternNames returns every identifier a pattern binds, in a
// deterministic left-to-right, depth-first order. Used both to build the
// binding frame a pattern's body/guard sees and (by the evaluator) to
// zip matched values back onto those same names.
func patternNames(p ast.Pattern) []string {
	var names []string
	collectPatternNames(p, &names)

	return names
}

func collectPatternNames(p ast.Pattern, out *[]string) {
	switch n := p.(type) {
	case *ast.IdentPattern:
		*out = append(*out, n.Name)
	case *ast.WildcardPattern, *ast.LiteralPattern, *ast.RangePattern:
		// no bindings
	case *ast.RestPattern:
		if n.Name != "" {
			*out = append(*out, n.Name)
		}
	case *ast.AsPattern:
		collectPatternNames(n.Inner, out)
		*out = append(*out, n.Name)
	case *ast.TuplePattern:
		for _, e := range n.Elems {
			collectPatternNames(e, out)
		}
	case *ast.ListPattern:
		for _, e := range n.Elems {
			collectPatternNames(e, out)
		}
	case *ast.StructPattern:
		for _, f := range n.Fields {
			collectPatternNames(f.Pattern, out)
		}
	case *ast.EnumVariantPattern:
		for _, e := range n.Elems {
			collectPatternNames(e, out)
		}
		for _, f := range n.Fields {
			collectPatternNames(f.Pattern, out)
		}
	case *ast.OrPattern:
		if len(n.Alternatives) > 0 {
			collectPatternNames(n.Alternatives[0], out)
		}
	case *ast.GuardPattern:
		collectPatternNames(n.Inner, out)
	}
}

func (c *canonicalizer) resolveVar(name string, sp token.Span, sc *scope) CExpr {
	if depth, index, ok := sc.resolve(name); ok {
		return CVar{cbase: spanOf(sp), Depth: depth, Index: index, Name: name}
	}

	return CFree{cbase: spanOf(sp), Name: name}
}
