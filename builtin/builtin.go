// Package builtin is the free-function table the evaluator's CFree
// lookup falls back to: every name spec §4.5 enumerates for strings,
// lists, mappings, ranges, and numerics, plus the handful of ambient
// helpers (print, assert, to_string, typeof) a REPL session needs.
// Grounded on the teacher's std/*.go + objects/builtins.go "named
// Callback, registered into a table" idiom (objects/builtins.go's
// commonMethods/init() pattern, std/strings.go's stringMethods), generalized
// from per-kind method slices duck-typed on GoMixObject to a single flat
// table of *value.Builtin keyed by name, since this evaluator dispatches
// calls by name lookup rather than by receiver type (spec's pipeline
// operator calls free functions, not methods: `list |> map(f)`).
package builtin

import (
	"fmt"

	"github.com/paiml/ruchy-sub009/value"
)

// Runtime is the seam a builtin uses to call back into a Ruchy closure
// (map/filter/reduce/sort's comparator) — the same role the teacher's
// std.Runtime interface (std/builtins.go) plays for its "Runtime, args"
// callback signature, narrowed here to the one operation builtins
// actually need.
type Runtime interface {
	Call(fn value.Value, args []value.Value) (value.Value, error)
}

// rt is installed by the evaluator at session construction time
// (eval.NewWithBuiltins wires it via Install) so builtins never import package eval
// themselves — avoids the import cycle eval already has on builtin for
// its Globals table.
var rt Runtime

// Install wires a Runtime so higher-order builtins (map, filter, reduce,
// fold, sort-with-comparator) can invoke Ruchy callables. Must be called
// before any such builtin runs; Table() itself does not need it.
func Install(r Runtime) { rt = r }

func call(fn value.Value, args ...value.Value) (value.Value, error) {
	if rt == nil {
		return nil, errf("builtin runtime not installed: cannot call %s", fn.String())
	}

	return rt.Call(fn, args)
}

// Table builds the global builtin registry. Each call returns a fresh
// map (Builtin values are stateless) so a session can freely add its own
// without mutating a shared package-level table.
func Table() map[string]*value.Builtin {
	out := make(map[string]*value.Builtin)
	for _, group := range [][]*value.Builtin{commonBuiltins, stringBuiltins, listBuiltins, mapBuiltins, numericBuiltins, rangeBuiltins, setBuiltins} {
		for _, b := range group {
			out[b.Name] = b
		}
	}

	return out
}

func errf(format string, args ...any) error {
	return &builtinError{msg: fmt.Sprintf(format, args...)}
}

type builtinError struct{ msg string }

func (e *builtinError) Error() string { return e.msg }
