package builtin

import (
	"math"

	"github.com/paiml/ruchy-sub009/value"
)

// numericBuiltins fills out spec §4.5's "standard arithmetic" surface
// beyond what operators already cover: the handful of named numeric
// helpers the teacher's objects/math.go exposes (floor/ceil/round/sqrt),
// generalized to the value.Value model.
var numericBuiltins = []*value.Builtin{
	{Name: "floor", Arity: 1, Fn: biFloor},
	{Name: "ceil", Arity: 1, Fn: biCeil},
	{Name: "round", Arity: 1, Fn: biRound},
	{Name: "sqrt", Arity: 1, Fn: biSqrt},
	{Name: "pow", Arity: 2, Fn: biPow},
}

func biFloor(args []value.Value) (value.Value, error) { return unaryFloatOp(args, "floor", math.Floor) }
func biCeil(args []value.Value) (value.Value, error)  { return unaryFloatOp(args, "ceil", math.Ceil) }
func biRound(args []value.Value) (value.Value, error) { return unaryFloatOp(args, "round", math.Round) }
func biSqrt(args []value.Value) (value.Value, error)  { return unaryFloatOp(args, "sqrt", math.Sqrt) }

func unaryFloatOp(args []value.Value, name string, op func(float64) float64) (value.Value, error) {
	f, ok := asFloat(args[0])
	if !ok {
		return nil, errf("%s expects a number, got %s", name, args[0].Kind())
	}

	return value.Float(op(f)), nil
}

func biPow(args []value.Value) (value.Value, error) {
	base, ok := asFloat(args[0])
	if !ok {
		return nil, errf("pow expects numbers, got %s", args[0].Kind())
	}
	exp, ok := asFloat(args[1])
	if !ok {
		return nil, errf("pow expects numbers, got %s", args[1].Kind())
	}

	return value.Float(math.Pow(base, exp)), nil
}
