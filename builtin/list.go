package builtin

import (
	"sort"

	"github.com/paiml/ruchy-sub009/value"
)

// listBuiltins adapts the teacher's std/list.go Deque-flavored builtins
// (pushback/pushfront/popback/popfront/size) to spec §4.5's plain-array
// operation list (push/pop/map/filter/reduce/fold/zip/concat/reverse/
// sort/index/slice); push/pop mutate the receiver in place the way the
// teacher's pushbackList/popbackList do, everything else is a pure
// higher-order function over the closed value.Value set.
var listBuiltins = []*value.Builtin{
	{Name: "push", Arity: 2, Fn: biPush},
	{Name: "pop", Arity: 1, Fn: biPop},
	{Name: "map", Arity: 2, Fn: biMap},
	{Name: "filter", Arity: 2, Fn: biFilter},
	{Name: "reduce", Arity: 2, Fn: biReduce},
	{Name: "fold", Arity: 3, Fn: biFold},
	{Name: "zip", Arity: 2, Fn: biZip},
	{Name: "sort", Arity: -1, Fn: biSort},
	{Name: "index", Arity: 2, Fn: biIndex},
}

func asList(v value.Value, who string) (*value.List, error) {
	l, ok := v.(*value.List)
	if !ok {
		return nil, errf("%s expects a list, got %s", who, v.Kind())
	}

	return l, nil
}

func biPush(args []value.Value) (value.Value, error) {
	l, err := asList(args[0], "push")
	if err != nil {
		return nil, err
	}
	l.Elems = append(l.Elems, args[1])

	return l, nil
}

func biPop(args []value.Value) (value.Value, error) {
	l, err := asList(args[0], "pop")
	if err != nil {
		return nil, err
	}
	if len(l.Elems) == 0 {
		return nil, errf("pop: list is empty")
	}
	last := l.Elems[len(l.Elems)-1]
	l.Elems = l.Elems[:len(l.Elems)-1]

	return last, nil
}

// biMap applies `|> map(f)`-style function args in the order the
// pipeline desugaring puts them: list first, function second — the
// spec's "x |> g(_, 2) inserts x at the first argument position" rule
// generalized to the no-placeholder case of inserting x as argument 0.
func biMap(args []value.Value) (value.Value, error) {
	l, err := asList(args[0], "map")
	if err != nil {
		return nil, err
	}
	out := make([]value.Value, len(l.Elems))
	for i, e := range l.Elems {
		v, err := call(args[1], e)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return value.NewList(out), nil
}

func biFilter(args []value.Value) (value.Value, error) {
	l, err := asList(args[0], "filter")
	if err != nil {
		return nil, err
	}
	var out []value.Value
	for _, e := range l.Elems {
		v, err := call(args[1], e)
		if err != nil {
			return nil, err
		}
		if value.Truthy(v) {
			out = append(out, e)
		}
	}

	return value.NewList(out), nil
}

// biReduce folds over a non-empty list using its first element as the
// seed (no initial-value argument — that's fold's job), per spec §4.5
// distinguishing "reduce" from "fold".
func biReduce(args []value.Value) (value.Value, error) {
	l, err := asList(args[0], "reduce")
	if err != nil {
		return nil, err
	}
	if len(l.Elems) == 0 {
		return nil, errf("reduce: list is empty")
	}
	acc := l.Elems[0]
	for _, e := range l.Elems[1:] {
		acc, err = call(args[1], acc, e)
		if err != nil {
			return nil, err
		}
	}

	return acc, nil
}

func biFold(args []value.Value) (value.Value, error) {
	l, err := asList(args[0], "fold")
	if err != nil {
		return nil, err
	}
	acc := args[1]
	for _, e := range l.Elems {
		acc, err = call(args[2], acc, e)
		if err != nil {
			return nil, err
		}
	}

	return acc, nil
}

func biZip(args []value.Value) (value.Value, error) {
	a, err := asList(args[0], "zip")
	if err != nil {
		return nil, err
	}
	b, err := asList(args[1], "zip")
	if err != nil {
		return nil, err
	}
	n := len(a.Elems)
	if len(b.Elems) < n {
		n = len(b.Elems)
	}
	out := make([]value.Value, n)
	for i := 0; i < n; i++ {
		out[i] = value.NewTuple([]value.Value{a.Elems[i], b.Elems[i]})
	}

	return value.NewList(out), nil
}

// biSort accepts an optional comparator as a second argument (spec:
// "stable, total order required; comparator may be supplied"); without
// one it falls back to the natural order of numbers/strings.
func biSort(args []value.Value) (value.Value, error) {
	if len(args) == 0 || len(args) > 2 {
		return nil, errf("sort expects 1 or 2 arguments, got %d", len(args))
	}
	l, err := asList(args[0], "sort")
	if err != nil {
		return nil, err
	}
	out := make([]value.Value, len(l.Elems))
	copy(out, l.Elems)

	var sortErr error
	if len(args) == 2 {
		cmp := args[1]
		sort.SliceStable(out, func(i, j int) bool {
			if sortErr != nil {
				return false
			}
			v, err := call(cmp, out[i], out[j])
			if err != nil {
				sortErr = err

				return false
			}
			n, ok := v.(value.Integer)
			if !ok {
				sortErr = errf("sort comparator must return an integer")

				return false
			}

			return n < 0
		})
	} else {
		sort.SliceStable(out, func(i, j int) bool {
			lf, lok := asFloat(out[i])
			rf, rok := asFloat(out[j])
			if lok && rok {
				return lf < rf
			}
			ls, lok := out[i].(value.Str)
			rs, rok := out[j].(value.Str)
			if lok && rok {
				return ls < rs
			}
			if sortErr == nil {
				sortErr = errf("sort: elements of kind %s are not naturally ordered", out[i].Kind())
			}

			return false
		})
	}
	if sortErr != nil {
		return nil, sortErr
	}

	return value.NewList(out), nil
}

func biIndex(args []value.Value) (value.Value, error) {
	l, err := asList(args[0], "index")
	if err != nil {
		return nil, err
	}
	for i, e := range l.Elems {
		if value.Equal(e, args[1]) {
			return value.Integer(i), nil
		}
	}

	return value.Integer(-1), nil
}
