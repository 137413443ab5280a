package builtin

import (
	"fmt"
	"strings"

	"github.com/paiml/ruchy-sub009/value"
)

// commonBuiltins mirrors objects/builtins.go's commonMethods group:
// print/println, length/size, tostring, typeof — generalized to the
// closed value.Value set instead of duck-typed GoMixObject.
var commonBuiltins = []*value.Builtin{
	{Name: "print", Arity: -1, Effect: value.EffectIO, Fn: biPrint},
	{Name: "println", Arity: -1, Effect: value.EffectIO, Fn: biPrintln},
	{Name: "to_string", Arity: 1, Effect: value.EffectPure, Fn: biToString},
	{Name: "typeof", Arity: 1, Effect: value.EffectPure, Fn: biTypeof},
	{Name: "length", Arity: 1, Effect: value.EffectPure, Fn: biLength},
	{Name: "size", Arity: 1, Effect: value.EffectPure, Fn: biLength},
	{Name: "concat", Arity: -1, Effect: value.EffectPure, Fn: biConcat},
	{Name: "assert", Arity: -1, Effect: value.EffectPure, Fn: biAssert},
	{Name: "sum", Arity: 1, Effect: value.EffectPure, Fn: biSum},
	{Name: "min", Arity: -1, Effect: value.EffectPure, Fn: biMin},
	{Name: "max", Arity: -1, Effect: value.EffectPure, Fn: biMax},
	{Name: "abs", Arity: 1, Effect: value.EffectPure, Fn: biAbs},
}

func biPrint(args []value.Value) (value.Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	fmt.Print(strings.Join(parts, " "))

	return value.Unit{}, nil
}

func biPrintln(args []value.Value) (value.Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	fmt.Println(strings.Join(parts, " "))

	return value.Unit{}, nil
}

func biToString(args []value.Value) (value.Value, error) {
	return value.Str(args[0].String()), nil
}

func biTypeof(args []value.Value) (value.Value, error) {
	return value.Str(args[0].Kind()), nil
}

func biLength(args []value.Value) (value.Value, error) {
	switch v := args[0].(type) {
	case value.Str:
		return value.Integer(len([]rune(string(v)))), nil
	case *value.List:
		return value.Integer(len(v.Elems)), nil
	case *value.Tuple:
		return value.Integer(len(v.Elems)), nil
	case *value.Mapping:
		return value.Integer(v.Len()), nil
	case *value.Set:
		return value.Integer(v.Len()), nil
	default:
		return nil, errf("length: unsupported value of kind %s", v.Kind())
	}
}

// biConcat concatenates strings (when every argument is a string, the
// interpolation desugaring's exclusive use case) or lists (when every
// argument is a list); mixed kinds are a runtime error.
func biConcat(args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return value.Str(""), nil
	}
	if _, ok := args[0].(value.Str); ok {
		var b strings.Builder
		for _, a := range args {
			s, ok := a.(value.Str)
			if !ok {
				return nil, errf("concat: cannot mix string and %s", a.Kind())
			}
			b.WriteString(string(s))
		}

		return value.Str(b.String()), nil
	}
	if _, ok := args[0].(*value.List); ok {
		var out []value.Value
		for _, a := range args {
			l, ok := a.(*value.List)
			if !ok {
				return nil, errf("concat: cannot mix list and %s", a.Kind())
			}
			out = append(out, l.Elems...)
		}

		return value.NewList(out), nil
	}

	return nil, errf("concat: unsupported value of kind %s", args[0].Kind())
}

func biAssert(args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return nil, errf("assert expects at least 1 argument")
	}
	if !value.Truthy(args[0]) {
		msg := "assertion failed"
		if len(args) > 1 {
			msg = args[1].String()
		}

		return nil, errf("%s", msg)
	}

	return value.Unit{}, nil
}

func biSum(args []value.Value) (value.Value, error) {
	l, ok := args[0].(*value.List)
	if !ok {
		return nil, errf("sum expects a list, got %s", args[0].Kind())
	}
	var fsum float64
	var isum int64
	allInt := true
	for _, e := range l.Elems {
		switch n := e.(type) {
		case value.Integer:
			isum += int64(n)
			fsum += float64(n)
		case value.Float:
			allInt = false
			fsum += float64(n)
		default:
			return nil, errf("sum: non-numeric element of kind %s", e.Kind())
		}
	}
	if allInt {
		return value.Integer(isum), nil
	}

	return value.Float(fsum), nil
}

func biMin(args []value.Value) (value.Value, error) { return minMax(args, true) }
func biMax(args []value.Value) (value.Value, error) { return minMax(args, false) }

func minMax(args []value.Value, wantMin bool) (value.Value, error) {
	vals := args
	if len(args) == 1 {
		if l, ok := args[0].(*value.List); ok {
			vals = l.Elems
		}
	}
	if len(vals) == 0 {
		return nil, errf("min/max: no arguments")
	}
	best := vals[0]
	bf, ok := asFloat(best)
	if !ok {
		return nil, errf("min/max: non-numeric element of kind %s", best.Kind())
	}
	for _, v := range vals[1:] {
		f, ok := asFloat(v)
		if !ok {
			return nil, errf("min/max: non-numeric element of kind %s", v.Kind())
		}
		if (wantMin && f < bf) || (!wantMin && f > bf) {
			best, bf = v, f
		}
	}

	return best, nil
}

func biAbs(args []value.Value) (value.Value, error) {
	switch n := args[0].(type) {
	case value.Integer:
		if n < 0 {
			return -n, nil
		}

		return n, nil
	case value.Float:
		if n < 0 {
			return -n, nil
		}

		return n, nil
	default:
		return nil, errf("abs: unsupported value of kind %s", n.Kind())
	}
}

func asFloat(v value.Value) (float64, bool) {
	switch n := v.(type) {
	case value.Integer:
		return float64(n), true
	case value.Float:
		return float64(n), true
	default:
		return 0, false
	}
}
