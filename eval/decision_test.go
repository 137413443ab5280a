package eval_test

import (
	"testing"

	"github.com/paiml/ruchy-sub009/value"
	"github.com/stretchr/testify/require"
)

func TestEvalMatchEnumTagDispatchNoPayload(t *testing.T) {
	src := `
enum Light {
    Red,
    Yellow,
    Green,
}
let l = Light::Yellow
match l {
    Light::Red => 1,
    Light::Yellow => 2,
    Light::Green => 3,
}
`
	require.Equal(t, value.Integer(2), run(t, src))
}

func TestEvalMatchLiteralDispatchRepeatedEvaluation(t *testing.T) {
	src := `
let classify = |n| match n {
    0 => "zero",
    1 => "one",
    _ => "many",
}
[classify(0), classify(1), classify(2), classify(1)]
`
	got := run(t, src)
	list, ok := got.(*value.List)
	require.True(t, ok)
	require.Equal(t, []value.Value{
		value.Str("zero"), value.Str("one"), value.Str("many"), value.Str("one"),
	}, list.Elems)
}

func TestEvalMatchFallsBackWhenCatchAllIsNotLast(t *testing.T) {
	src := `
match 5 {
    _ => "always",
    5 => "five",
}
`
	require.Equal(t, value.Str("always"), run(t, src))
}

func TestEvalMatchFallsBackOnGuardedArm(t *testing.T) {
	src := `
match 4 {
    n if n > 2 => "big",
    _ => "small",
}
`
	require.Equal(t, value.Str("big"), run(t, src))
}
