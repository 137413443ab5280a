package builtin

import "github.com/paiml/ruchy-sub009/value"

// rangeBuiltins gives range values the one operation spec §4.5 calls
// out beyond iteration (which the evaluator's for-loop handles
// directly): materializing into a list.
var rangeBuiltins = []*value.Builtin{
	{Name: "to_list", Arity: 1, Fn: biRangeToList},
}

func biRangeToList(args []value.Value) (value.Value, error) {
	r, ok := args[0].(value.Range)
	if !ok {
		return nil, errf("to_list expects a range, got %s", args[0].Kind())
	}
	var out []value.Value
	step := r.Step()
	for n := r.Start; r.Contains(n); n += step {
		out = append(out, value.Integer(n))
	}

	return value.NewList(out), nil
}
