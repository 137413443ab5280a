package parser_test

import (
	"testing"

	"github.com/paiml/ruchy-sub009/ast"
	"github.com/paiml/ruchy-sub009/parser"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, src string) ast.Expr {
	t.Helper()
	suite, errs := parser.Parse(src, "")
	require.Emptyf(t, errs, "parsing %q", src)
	require.Len(t, suite.Exprs, 1)

	return suite.Exprs[0]
}

func TestParseArithmeticPrecedence(t *testing.T) {
	e := parseOne(t, "1 + 2 * 3")
	bin, ok := e.(*ast.BinaryOp)
	require.True(t, ok)
	require.Equal(t, "+", bin.Op)

	rhs, ok := bin.Right.(*ast.BinaryOp)
	require.True(t, ok)
	require.Equal(t, "*", rhs.Op)
}

func TestParseLetIn(t *testing.T) {
	e := parseOne(t, "let x = 1 in x + 1")
	let, ok := e.(*ast.LetIn)
	require.True(t, ok)
	require.False(t, let.Mutable)
	require.NotNil(t, let.Body)
}

func TestParseVarIsMutable(t *testing.T) {
	e := parseOne(t, "var x = 1")
	let, ok := e.(*ast.LetIn)
	require.True(t, ok)
	require.True(t, let.Mutable)
}

func TestParseIfElse(t *testing.T) {
	e := parseOne(t, "if x { 1 } else { 2 }")
	ifExpr, ok := e.(*ast.If)
	require.True(t, ok)
	require.NotNil(t, ifExpr.Else)
}

func TestParseMatchWithGuardAndOrPattern(t *testing.T) {
	e := parseOne(t, `match x { 1 | 2 => "low", n if n > 10 => "high", _ => "mid" }`)
	m, ok := e.(*ast.Match)
	require.True(t, ok)
	require.Len(t, m.Arms, 3)
	require.Len(t, m.Arms[0].Patterns, 2)
	require.NotNil(t, m.Arms[1].Guard)
}

func TestParseLambdaAndCall(t *testing.T) {
	e := parseOne(t, "(|x, y| x + y)(1, 2)")
	call, ok := e.(*ast.Call)
	require.True(t, ok)
	require.Len(t, call.Args, 2)
	_, ok = call.Callee.(*ast.Lambda)
	require.True(t, ok)
}

func TestParsePipeline(t *testing.T) {
	e := parseOne(t, "xs |> map(double) |> sum()")
	_, ok := e.(*ast.Call)
	require.True(t, ok)
}

func TestParseListAndIndex(t *testing.T) {
	e := parseOne(t, "[1, 2, 3][0]")
	idx, ok := e.(*ast.Index)
	require.True(t, ok)
	lst, ok := idx.Object.(*ast.ListLit)
	require.True(t, ok)
	require.Len(t, lst.Elems, 3)
}

func TestParseInterpolatedString(t *testing.T) {
	e := parseOne(t, `f"hello {name}!"`)
	interp, ok := e.(*ast.InterpString)
	require.True(t, ok)
	require.Len(t, interp.Fragments, 3)
	require.Equal(t, "hello ", interp.Fragments[0].Literal)
	require.NotNil(t, interp.Fragments[1].Expr)
	require.Equal(t, "!", interp.Fragments[2].Literal)
}

func TestParseStructDeclAndLiteral(t *testing.T) {
	suite, errs := parser.Parse("struct Point { x: int, y: int }; Point { x: 1, y: 2 }", "")
	require.Empty(t, errs)
	require.Len(t, suite.Exprs, 2)

	decl, ok := suite.Exprs[0].(*ast.StructDecl)
	require.True(t, ok)
	require.Equal(t, "Point", decl.Name)
	require.Len(t, decl.Fields, 2)

	lit, ok := suite.Exprs[1].(*ast.StructLit)
	require.True(t, ok)
	require.Equal(t, "Point", lit.Name)
}

func TestParseStructLitDuplicateFieldIsDiagnostic(t *testing.T) {
	_, errs := parser.Parse("struct Point { x: int, y: int }; Point { x: 1, x: 2 }", "")
	require.NotEmpty(t, errs)
}

func TestParseGenericTypeAnnotationUsesAngleBrackets(t *testing.T) {
	e := parseOne(t, "let xs: List<int> = [1, 2, 3] in xs")
	letIn, ok := e.(*ast.LetIn)
	require.True(t, ok)
	named, ok := letIn.TypeAnn.(*ast.NamedType)
	require.True(t, ok)
	require.Equal(t, "List", named.Name)
	require.Len(t, named.Args, 1)
	arg, ok := named.Args[0].(*ast.NamedType)
	require.True(t, ok)
	require.Equal(t, "int", arg.Name)
}

func TestParseNestedGenericTypeSplitsShrToken(t *testing.T) {
	e := parseOne(t, "let xs: List<List<int>> = [] in xs")
	letIn, ok := e.(*ast.LetIn)
	require.True(t, ok)
	outer, ok := letIn.TypeAnn.(*ast.NamedType)
	require.True(t, ok)
	require.Equal(t, "List", outer.Name)
	require.Len(t, outer.Args, 1)
	inner, ok := outer.Args[0].(*ast.NamedType)
	require.True(t, ok)
	require.Equal(t, "List", inner.Name)
	require.Len(t, inner.Args, 1)
}

func TestParseEnumAndMatchVariant(t *testing.T) {
	src := `enum Shape { Circle(int), Square(int) }
match s { Shape::Circle(r) => r, Shape::Square(n) => n }`
	suite, errs := parser.Parse(src, "")
	require.Empty(t, errs)
	require.Len(t, suite.Exprs, 2)

	enumDecl, ok := suite.Exprs[0].(*ast.EnumDecl)
	require.True(t, ok)
	require.Len(t, enumDecl.Variants, 2)

	m, ok := suite.Exprs[1].(*ast.Match)
	require.True(t, ok)
	vp, ok := m.Arms[0].Patterns[0].(*ast.EnumVariantPattern)
	require.True(t, ok)
	require.Equal(t, "Circle", vp.VariantName)
}

func TestParseForLoopOverRange(t *testing.T) {
	e := parseOne(t, "for i in 0..10 { print(i) }")
	loop, ok := e.(*ast.Loop)
	require.True(t, ok)
	require.Equal(t, ast.LoopFor, loop.Kind)
	rng, ok := loop.Iter.(*ast.RangeLit)
	require.True(t, ok)
	require.False(t, rng.Inclusive)
}

func TestParseFnDecl(t *testing.T) {
	e := parseOne(t, "fn add(a: int, b: int) -> int { a + b }")
	fn, ok := e.(*ast.Lambda)
	require.True(t, ok)
	require.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	require.NotNil(t, fn.RetType)
}

func TestParseCompoundAssignDesugarsToLetIn(t *testing.T) {
	e := parseOne(t, "x += 1")
	let, ok := e.(*ast.LetIn)
	require.True(t, ok)
	require.True(t, let.Mutable)
	bin, ok := let.Value.(*ast.BinaryOp)
	require.True(t, ok)
	require.Equal(t, "+", bin.Op)
}

func TestParseMalformedExpressionRecoversWithErrorNode(t *testing.T) {
	suite, errs := parser.Parse("let x = ; 1 + 1", "")
	require.NotEmpty(t, errs)
	require.Len(t, suite.Exprs, 2)

	let, ok := suite.Exprs[0].(*ast.LetIn)
	require.True(t, ok)
	_, ok = let.Value.(*ast.Error)
	require.True(t, ok)

	_, ok = suite.Exprs[1].(*ast.BinaryOp)
	require.True(t, ok)
}

func TestParseTryOperator(t *testing.T) {
	e := parseOne(t, "risky()?")
	tr, ok := e.(*ast.Try)
	require.True(t, ok)
	_, ok = tr.Inner.(*ast.Call)
	require.True(t, ok)
}
