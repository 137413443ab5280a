package builtin

import "github.com/paiml/ruchy-sub009/value"

// setBuiltins covers the Set operations spec §4.5 implies alongside
// lists/maps (add, contains is shared with biContains in strings.go).
var setBuiltins = []*value.Builtin{
	{Name: "add", Arity: 2, Fn: biAdd},
}

func biAdd(args []value.Value) (value.Value, error) {
	s, ok := args[0].(*value.Set)
	if !ok {
		return nil, errf("add expects a set, got %s", args[0].Kind())
	}
	s.Add(args[1])

	return s, nil
}
