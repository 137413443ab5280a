package canon_test

import (
	"testing"

	"github.com/paiml/ruchy-sub009/canon"
	"github.com/paiml/ruchy-sub009/parser"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeResolvesLambdaParamToCVar(t *testing.T) {
	suite, errs := parser.Parse("|x| x + 1", "")
	require.Empty(t, errs)

	prog := canon.Canonicalize(suite)
	require.Len(t, prog.Exprs, 1)

	lam, ok := prog.Exprs[0].(canon.CLam)
	require.True(t, ok)

	bin, ok := lam.Body.(canon.CBinary)
	require.True(t, ok)

	v, ok := bin.Left.(canon.CVar)
	require.True(t, ok)
	require.Equal(t, 0, v.Depth)
	require.Equal(t, 0, v.Index)
}

func TestCanonicalizeFreeVariableIsUnresolved(t *testing.T) {
	suite, _ := parser.Parse("y", "")
	prog := canon.Canonicalize(suite)

	_, ok := prog.Exprs[0].(canon.CFree)
	require.True(t, ok)
}

func TestCanonicalizeIsDeterministic(t *testing.T) {
	src := "let x = 1 in if x > 0 { x } else { 0 - x }"
	suite1, _ := parser.Parse(src, "")
	suite2, _ := parser.Parse(src, "")

	prog1 := canon.Canonicalize(suite1)
	prog2 := canon.Canonicalize(suite2)

	require.Equal(t, prog1.Hash, prog2.Hash)
}

func TestCanonicalizeFlattensBlockLet(t *testing.T) {
	suite, errs := parser.Parse("{ let a = 1; let b = 2; a + b }", "")
	require.Empty(t, errs)

	prog := canon.Canonicalize(suite)
	outer, ok := prog.Exprs[0].(canon.CLet)
	require.True(t, ok)
	require.Equal(t, "a", outer.Name)

	inner, ok := outer.Body.(canon.CLet)
	require.True(t, ok)
	require.Equal(t, "b", inner.Name)

	bin, ok := inner.Body.(canon.CBinary)
	require.True(t, ok)
	require.Equal(t, "+", bin.Op)
}

func TestCanonicalizeStringInterpolationDesugarsToConcat(t *testing.T) {
	suite, errs := parser.Parse(`f"hi {name}"`, "")
	require.Empty(t, errs)

	prog := canon.Canonicalize(suite)
	app, ok := prog.Exprs[0].(canon.CApp)
	require.True(t, ok)

	fn, ok := app.Func.(canon.CFree)
	require.True(t, ok)
	require.Equal(t, "concat", fn.Name)
}
