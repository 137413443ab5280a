package types_test

import (
	"strings"
	"testing"

	"github.com/paiml/ruchy-sub009/canon"
	"github.com/paiml/ruchy-sub009/parser"
	"github.com/paiml/ruchy-sub009/types"
	"github.com/stretchr/testify/require"
)

func inferSrc(t *testing.T, src string) (types.Substitution, types.Monotype, []*types.Error) {
	t.Helper()
	suite, errs := parser.Parse(src, "")
	require.Empty(t, errs)
	prog := canon.Canonicalize(suite)
	require.Len(t, prog.Exprs, 1)

	env := types.NewEnv()
	return types.Infer(env, prog.Exprs[0])
}

func TestInferArithmetic(t *testing.T) {
	sub, ty, errs := inferSrc(t, "1 + 2")
	require.Empty(t, errs)
	require.Equal(t, types.Int, sub.Apply(ty))
}

func TestInferComparisonIsBool(t *testing.T) {
	_, ty, errs := inferSrc(t, "1 < 2")
	require.Empty(t, errs)
	require.Equal(t, types.Bool, ty)
}

func TestInferIfBranchesMustUnify(t *testing.T) {
	_, ty, errs := inferSrc(t, "if true { 1 } else { 2 }")
	require.Empty(t, errs)
	require.Equal(t, types.Int, ty)
}

func TestInferLambdaIdentityGeneralizes(t *testing.T) {
	_, ty, errs := inferSrc(t, "|x| x")
	require.Empty(t, errs)
	fn, ok := ty.(types.TFun)
	require.True(t, ok)
	require.Len(t, fn.Params, 1)
	_, isVar := fn.Params[0].(types.TVar)
	require.True(t, isVar)
}

func TestInferMismatchedIfBranchesIsUnificationFailure(t *testing.T) {
	_, _, errs := inferSrc(t, `if true { 1 } else { "x" }`)
	require.NotEmpty(t, errs)
	require.Equal(t, types.UnificationFailure, errs[0].Kind)
}

func TestInferMismatchedIfBranchesSpanPointsAtElseBranch(t *testing.T) {
	src := `if true { 1 } else { "x" }`
	_, _, errs := inferSrc(t, src)
	require.NotEmpty(t, errs)

	span := errs[0].Span
	want := strings.Index(src, `"x"`)
	require.Equal(t, want, span.Start.Offset)
	require.Equal(t, want+len(`"x"`), span.End.Offset)
}

func TestInferUnboundIdentifier(t *testing.T) {
	_, _, errs := inferSrc(t, "undefined_name")
	require.NotEmpty(t, errs)
	require.Equal(t, types.UnboundIdentifier, errs[0].Kind)
}

func TestInferListLiteralElementsUnify(t *testing.T) {
	_, ty, errs := inferSrc(t, "[1, 2, 3]")
	require.Empty(t, errs)
	app, ok := ty.(types.TApp)
	require.True(t, ok)
	require.Equal(t, "List", app.Name)
	require.Equal(t, types.Int, app.Args[0])
}
