package eval

import (
	"github.com/paiml/ruchy-sub009/ast"
	"github.com/paiml/ruchy-sub009/canon"
	"github.com/paiml/ruchy-sub009/envr"
	"github.com/paiml/ruchy-sub009/value"
)

func (ev *Evaluator) evalLoop(sc *envr.Scope, fr *envr.Frame, n canon.CLoop) (value.Value, ctrl, *RuntimeError) {
	switch n.Kind {
	case canon.LoopWhile:
		for {
			cond, c, err := ev.eval(sc, fr, n.Cond)
			if err != nil || c.kind != ctrlNone {
				return cond, c, err
			}
			if !value.Truthy(cond) {
				return value.Unit{}, noCtrl, nil
			}
			v, outer, err := ev.runLoopBody(sc, fr, n.Body)
			if err != nil || outer {
				return v, ctrlFor(v, outer), err
			}
		}

	case canon.LoopFor:
		iter, c, err := ev.eval(sc, fr, n.Iter)
		if err != nil || c.kind != ctrlNone {
			return iter, c, err
		}
		elems, rerr := toIterable(iter)
		if rerr != nil {
			return nil, noCtrl, rerr
		}
		names := patternNames(n.Pat)
		for _, elem := range elems {
			bound := make([]value.Value, len(names))
			idx := 0
			if n.Pat != nil && !matchInto(n.Pat, elem, bound, &idx) {
				continue
			}
			inner := envr.PushFrame(fr, bound)
			v, outer, err := ev.runLoopBody(sc, inner, n.Body)
			if err != nil || outer {
				return v, ctrlFor(v, outer), err
			}
		}

		return value.Unit{}, noCtrl, nil

	default: // LoopBare
		for {
			v, outer, err := ev.runLoopBody(sc, fr, n.Body)
			if err != nil || outer {
				return v, ctrlFor(v, outer), err
			}
		}
	}
}

// ctrlFor reports noCtrl for a plain break (the loop itself absorbs
// break and produces a value), or propagates further when runLoopBody
// surfaced a `return` that must keep unwinding past this loop.
func ctrlFor(v value.Value, outer bool) ctrl {
	if !outer {
		return noCtrl
	}
	if rc, ok := v.(returnMarker); ok {
		return ctrl{kind: ctrlReturn, value: rc.value}
	}

	return noCtrl
}

// returnMarker tags a value surfaced by runLoopBody as an unwinding
// `return`, distinguishing it from an ordinary break value (both are
// plain value.Value otherwise).
type returnMarker struct{ value value.Value }

func (returnMarker) Kind() string   { return "return-marker" }
func (r returnMarker) String() string { return r.value.String() }

// runLoopBody evaluates one iteration's body.
//
//   - (nil, false, nil): normal completion or `continue` — keep looping.
//   - (v, true, nil): `break` or `return` — see below.
//   - (nil, true, err): a runtime error.
//
// It returns (v, outer, err): outer is true when the loop must return
// immediately — either a `break value` (v is the break payload, plain)
// or a `return value` propagating further out (v wrapped in
// returnMarker so ctrlFor can tell the two apart).
func (ev *Evaluator) runLoopBody(sc *envr.Scope, fr *envr.Frame, body canon.CExpr) (v value.Value, outer bool, err *RuntimeError) {
	res, c, rerr := ev.eval(sc, fr, body)
	if rerr != nil {
		return nil, true, rerr
	}
	switch c.kind {
	case ctrlBreak:
		return c.value, true, nil
	case ctrlContinue:
		return nil, false, nil
	case ctrlReturn:
		return returnMarker{value: c.value}, true, nil
	default:
		_ = res

		return nil, false, nil
	}
}

func toIterable(v value.Value) ([]value.Value, *RuntimeError) {
	switch n := v.(type) {
	case *value.List:
		return n.Elems, nil
	case value.Range:
		var out []value.Value
		if n.Step() > 0 {
			end := n.End
			if n.Inclusive {
				end++
			}
			for i := n.Start; i < end; i++ {
				out = append(out, value.Integer(i))
			}
		} else {
			end := n.End
			if n.Inclusive {
				end--
			}
			for i := n.Start; i > end; i-- {
				out = append(out, value.Integer(i))
			}
		}

		return out, nil
	case *value.Set:
		return n.Values(), nil
	case *value.Tuple:
		return n.Elems, nil
	default:
		return nil, errf("value of kind %s is not iterable", v.Kind())
	}
}

// patternNames mirrors canon's unexported helper of the same name for
// the evaluator's own use (sizing a for-loop binding frame); kept as a
// thin duplicate rather than exporting canon internals across packages.
func patternNames(p ast.Pattern) []string {
	if p == nil {
		return nil
	}
	var names []string
	collectPatternNames(p, &names)

	return names
}

func collectPatternNames(p ast.Pattern, out *[]string) {
	switch n := p.(type) {
	case *ast.IdentPattern:
		*out = append(*out, n.Name)
	case *ast.RestPattern:
		if n.Name != "" {
			*out = append(*out, n.Name)
		}
	case *ast.AsPattern:
		collectPatternNames(n.Inner, out)
		*out = append(*out, n.Name)
	case *ast.TuplePattern:
		for _, e := range n.Elems {
			collectPatternNames(e, out)
		}
	case *ast.ListPattern:
		for _, e := range n.Elems {
			collectPatternNames(e, out)
		}
	case *ast.StructPattern:
		for _, f := range n.Fields {
			if f.Shorthand {
				*out = append(*out, f.Name)

				continue
			}
			collectPatternNames(f.Pattern, out)
		}
	case *ast.EnumVariantPattern:
		for _, e := range n.Elems {
			collectPatternNames(e, out)
		}
		for _, f := range n.Fields {
			if f.Shorthand {
				*out = append(*out, f.Name)

				continue
			}
			collectPatternNames(f.Pattern, out)
		}
	case *ast.OrPattern:
		if len(n.Alternatives) > 0 {
			collectPatternNames(n.Alternatives[0], out)
		}
	case *ast.GuardPattern:
		collectPatternNames(n.Inner, out)
	}
}
