package eval

import (
	"github.com/paiml/ruchy-sub009/canon"
	"github.com/paiml/ruchy-sub009/envr"
	"github.com/paiml/ruchy-sub009/value"
)

// evalLet handles both a genuine `let`/`var` declaration and the
// assignment `name = value` form (the parser desugars both to the same
// LetIn shape; canon carries that ambiguity forward as CLet). A local
// binding frame is always pushed so within-expression references
// resolve lexically via CVar; additionally, if name already has a
// reachable binding in sc (a prior session-level `var`, e.g. a loop
// counter declared by an earlier top-level statement), that binding is
// updated too, so mutation performed from inside a later statement's
// block (which canon gives its own independent scope chain) is visible
// to the declaring statement's continuation. Scope.Assign only updates a
// binding that was declared mutable, so a local `let` that reuses the
// name of an outer mutable session binding also updates that binding,
// while an immutable outer binding is left unchanged.
func (ev *Evaluator) evalLet(sc *envr.Scope, fr *envr.Frame, n canon.CLet) (value.Value, ctrl, *RuntimeError) {
	v, c, err := ev.eval(sc, fr, n.Value)
	if err != nil || c.kind != ctrlNone {
		return v, c, err
	}

	sc.Assign(n.Name, v)

	if _, isNil := n.Body.(canon.CNil); isNil {
		return value.Unit{}, noCtrl, nil
	}

	inner := envr.PushFrame(fr, []value.Value{v})

	return ev.eval(sc, inner, n.Body)
}

func (ev *Evaluator) evalLetPattern(sc *envr.Scope, fr *envr.Frame, n canon.CLetPattern) (value.Value, ctrl, *RuntimeError) {
	v, c, err := ev.eval(sc, fr, n.Value)
	if err != nil || c.kind != ctrlNone {
		return v, c, err
	}

	bound := make([]value.Value, len(n.Names))
	ok, _ := matchPattern(n.Pattern, v, bound)
	if !ok {
		return nil, noCtrl, errf("pattern %s did not match its value", describePattern(n.Pattern))
	}
	for i, name := range n.Names {
		sc.Assign(name, bound[i])
	}

	if _, isNil := n.Body.(canon.CNil); isNil {
		return value.Unit{}, noCtrl, nil
	}

	inner := envr.PushFrame(fr, bound)

	return ev.eval(sc, inner, n.Body)
}

func (ev *Evaluator) evalBlock(sc *envr.Scope, fr *envr.Frame, n canon.CBlock) (value.Value, ctrl, *RuntimeError) {
	var last value.Value = value.Unit{}
	for _, stmt := range n.Stmts {
		v, c, err := ev.eval(sc, fr, stmt)
		if err != nil || c.kind != ctrlNone {
			return v, c, err
		}
		last = v
	}
	if n.ImplicitUnit {
		return value.Unit{}, noCtrl, nil
	}

	return last, noCtrl, nil
}

func (ev *Evaluator) evalIf(sc *envr.Scope, fr *envr.Frame, n canon.CIf) (value.Value, ctrl, *RuntimeError) {
	cond, c, err := ev.eval(sc, fr, n.Cond)
	if err != nil || c.kind != ctrlNone {
		return cond, c, err
	}
	if value.Truthy(cond) {
		return ev.eval(sc, fr, n.Then)
	}
	if n.Else != nil {
		return ev.eval(sc, fr, n.Else)
	}

	return value.Unit{}, noCtrl, nil
}
