package eval_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/paiml/ruchy-sub009/canon"
	"github.com/paiml/ruchy-sub009/envr"
	"github.com/paiml/ruchy-sub009/eval"
	"github.com/paiml/ruchy-sub009/parser"
	"github.com/paiml/ruchy-sub009/value"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src string) value.Value {
	t.Helper()
	suite, errs := parser.Parse(src, "")
	require.Empty(t, errs)
	prog := canon.Canonicalize(suite)

	ev := eval.New(eval.DefaultLimits(), nil)
	sc := envr.NewScope(nil)
	v, err := ev.EvalProgram(sc, prog)
	require.Nil(t, err)

	return v
}

func TestEvalArithmetic(t *testing.T) {
	require.Equal(t, value.Integer(7), run(t, "1 + 2 * 3"))
}

func TestEvalIntDivisionTruncates(t *testing.T) {
	require.Equal(t, value.Integer(-2), run(t, "-7 / 3"))
}

func TestEvalIntDivisionByZeroErrors(t *testing.T) {
	suite, errs := parser.Parse("1 / 0", "")
	require.Empty(t, errs)
	prog := canon.Canonicalize(suite)
	ev := eval.New(eval.DefaultLimits(), nil)
	_, err := ev.EvalProgram(envr.NewScope(nil), prog)
	require.NotNil(t, err)
	require.Equal(t, eval.KindDivByZero, err.Kind)
}

func TestEvalNonExhaustiveMatchReportsKindAndSpan(t *testing.T) {
	src := "match 1 { 2 => 2 }"
	suite, errs := parser.Parse(src, "")
	require.Empty(t, errs)
	prog := canon.Canonicalize(suite)
	ev := eval.New(eval.DefaultLimits(), nil)
	_, err := ev.EvalProgram(envr.NewScope(nil), prog)
	require.NotNil(t, err)
	require.Equal(t, eval.KindNonExhaustiveMatch, err.Kind)
	require.Equal(t, 0, err.Span.Start.Offset)
	require.Equal(t, len(src), err.Span.End.Offset)
}

func TestEvalExceedingHeapBoundRaisesResourceExceeded(t *testing.T) {
	src := "[1, 2, 3, 4, 5]"
	suite, errs := parser.Parse(src, "")
	require.Empty(t, errs)
	prog := canon.Canonicalize(suite)

	limits := eval.DefaultLimits()
	limits.MaxHeapBytes = 16
	ev := eval.New(limits, nil)
	_, err := ev.EvalProgram(envr.NewScope(nil), prog)
	require.NotNil(t, err)
	require.Equal(t, eval.KindResourceExceeded, err.Kind)
}

func TestEvalWithinHeapBoundSucceeds(t *testing.T) {
	suite, errs := parser.Parse("[1, 2, 3]", "")
	require.Empty(t, errs)
	prog := canon.Canonicalize(suite)

	limits := eval.DefaultLimits()
	ev := eval.New(limits, nil)
	v, err := ev.EvalProgram(envr.NewScope(nil), prog)
	require.Nil(t, err)
	lst, ok := v.(*value.List)
	require.True(t, ok)
	require.Len(t, lst.Elems, 3)
}

func TestEvalLetIn(t *testing.T) {
	require.Equal(t, value.Integer(5), run(t, "let x = 2 in x + 3"))
}

func TestEvalIfElse(t *testing.T) {
	require.Equal(t, value.Integer(1), run(t, "if false { 0 } else { 1 }"))
}

func TestEvalLambdaCall(t *testing.T) {
	require.Equal(t, value.Integer(9), run(t, "(|x| x * x)(3)"))
}

func TestEvalClosureCapturesEnclosingLet(t *testing.T) {
	require.Equal(t, value.Integer(12), run(t, "let n = 10 in let add = |x| x + n in add(2)"))
}

func TestEvalWhileLoopAccumulates(t *testing.T) {
	src := `
let mut i = 0
let mut sum = 0
while i < 5 {
    sum = sum + i
    i = i + 1
}
sum
`
	require.Equal(t, value.Integer(10), run(t, src))
}

func TestEvalForLoopOverRange(t *testing.T) {
	src := `
let mut total = 0
for n in 1..=4 {
    total = total + n
}
total
`
	require.Equal(t, value.Integer(10), run(t, src))
}

func TestEvalBreakWithValue(t *testing.T) {
	src := `
let mut i = 0
let r = loop {
    i = i + 1
    if i == 3 { break i * 10 }
}
r
`
	require.Equal(t, value.Integer(30), run(t, src))
}

func TestEvalMatchLiteral(t *testing.T) {
	require.Equal(t, value.Str("two"), run(t, `match 2 { 1 => "one", 2 => "two", _ => "many" }`))
}

func TestEvalMatchTupleDestructure(t *testing.T) {
	require.Equal(t, value.Integer(3), run(t, "match (1, 2) { (a, b) => a + b }"))
}

func TestEvalStructLiteralAndFieldAccess(t *testing.T) {
	src := `
struct Point { x: int, y: int }
let p = Point { x: 3, y: 4 }
p.x + p.y
`
	require.Equal(t, value.Integer(7), run(t, src))
}

func TestEvalEnumVariantConstruction(t *testing.T) {
	src := `
enum Shape {
    Circle(int),
    Square(int),
}
let s = Shape::Circle(5)
match s {
    Shape::Circle(r) => r * 2,
    Shape::Square(side) => side * 4,
}
`
	require.Equal(t, value.Integer(10), run(t, src))
}

func TestEvalStringInterpolationConcatenates(t *testing.T) {
	suite, errs := parser.Parse(`let x = 5 in f"x={x}"`, "")
	require.Empty(t, errs)
	prog := canon.Canonicalize(suite)

	globals := map[string]*value.Builtin{
		"to_string": {Name: "to_string", Arity: 1, Fn: func(args []value.Value) (value.Value, error) {
			return value.Str(args[0].String()), nil
		}},
		"concat": {Name: "concat", Arity: -1, Fn: func(args []value.Value) (value.Value, error) {
			var b strings.Builder
			for _, a := range args {
				s, ok := a.(value.Str)
				if !ok {
					return nil, errors.New("concat expects strings")
				}
				b.WriteString(string(s))
			}

			return value.Str(b.String()), nil
		}},
	}

	ev := eval.New(eval.DefaultLimits(), globals)
	v, err := ev.EvalProgram(envr.NewScope(nil), prog)
	require.Nil(t, err)
	require.Equal(t, value.Str("x=5"), v)
}

func TestEvalPipelineDesugarsToCall(t *testing.T) {
	src := "let double = |x| x * 2 in 3 |> double"
	require.Equal(t, value.Integer(6), run(t, src))
}
