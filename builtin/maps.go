package builtin

import "github.com/paiml/ruchy-sub009/value"

// mapBuiltins adapts std/maps.go's Map builtins (get/set/remove/keys/
// values/has) to spec §4.5's Mapping operation list, defined over the
// insertion-ordered value.Mapping (spec: "iteration order defined as
// insertion order").
var mapBuiltins = []*value.Builtin{
	{Name: "get", Arity: 2, Fn: biGet},
	{Name: "set", Arity: 3, Fn: biSet},
	{Name: "remove", Arity: 2, Fn: biRemove},
	{Name: "keys", Arity: 1, Fn: biKeys},
	{Name: "values", Arity: 1, Fn: biValues},
	{Name: "items", Arity: 1, Fn: biItems},
}

func asMapping(v value.Value, who string) (*value.Mapping, error) {
	m, ok := v.(*value.Mapping)
	if !ok {
		return nil, errf("%s expects a map, got %s", who, v.Kind())
	}

	return m, nil
}

func biGet(args []value.Value) (value.Value, error) {
	m, err := asMapping(args[0], "get")
	if err != nil {
		return nil, err
	}
	key, err := asStr(args[1], "get")
	if err != nil {
		return nil, err
	}
	v, ok := m.Get(key)
	if !ok {
		return value.Nil{}, nil
	}

	return v, nil
}

func biSet(args []value.Value) (value.Value, error) {
	m, err := asMapping(args[0], "set")
	if err != nil {
		return nil, err
	}
	key, err := asStr(args[1], "set")
	if err != nil {
		return nil, err
	}
	m.Set(key, args[2])

	return m, nil
}

func biRemove(args []value.Value) (value.Value, error) {
	m, err := asMapping(args[0], "remove")
	if err != nil {
		return nil, err
	}
	key, err := asStr(args[1], "remove")
	if err != nil {
		return nil, err
	}
	m.Remove(key)

	return m, nil
}

func biKeys(args []value.Value) (value.Value, error) {
	m, err := asMapping(args[0], "keys")
	if err != nil {
		return nil, err
	}
	keys := m.Keys()
	out := make([]value.Value, len(keys))
	for i, k := range keys {
		out[i] = value.Str(k)
	}

	return value.NewList(out), nil
}

func biValues(args []value.Value) (value.Value, error) {
	m, err := asMapping(args[0], "values")
	if err != nil {
		return nil, err
	}
	keys := m.Keys()
	out := make([]value.Value, len(keys))
	for i, k := range keys {
		v, _ := m.Get(k)
		out[i] = v
	}

	return value.NewList(out), nil
}

func biItems(args []value.Value) (value.Value, error) {
	m, err := asMapping(args[0], "items")
	if err != nil {
		return nil, err
	}
	keys := m.Keys()
	out := make([]value.Value, len(keys))
	for i, k := range keys {
		v, _ := m.Get(k)
		out[i] = value.NewTuple([]value.Value{value.Str(k), v})
	}

	return value.NewList(out), nil
}
