package eval

import (
	"fmt"

	"github.com/paiml/ruchy-sub009/canon"
	"github.com/paiml/ruchy-sub009/envr"
	"github.com/paiml/ruchy-sub009/value"
)

func (ev *Evaluator) evalApp(sc *envr.Scope, fr *envr.Frame, n canon.CApp) (value.Value, ctrl, *RuntimeError) {
	fn, c, err := ev.eval(sc, fr, n.Func)
	if err != nil || c.kind != ctrlNone {
		return fn, c, err
	}

	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, c, err := ev.eval(sc, fr, a)
		if err != nil || c.kind != ctrlNone {
			return v, c, err
		}
		args[i] = v
	}

	return ev.apply(fn, args)
}

// apply invokes a callable value (closure or builtin) with args,
// enforcing the recursion/call-depth bound.
func (ev *Evaluator) apply(fn value.Value, args []value.Value) (value.Value, ctrl, *RuntimeError) {
	switch f := fn.(type) {
	case *value.Builtin:
		if f.Arity >= 0 && len(args) != f.Arity {
			return nil, noCtrl, errf("%s expects %d argument(s), got %d", f.Name, f.Arity, len(args))
		}
		res, err := f.Fn(args)
		if err != nil {
			if f.Name == "assert" {
				return nil, noCtrl, &RuntimeError{Kind: KindAssertionFailure, Message: err.Error()}
			}

			return nil, noCtrl, &RuntimeError{Message: err.Error()}
		}

		return res, noCtrl, nil

	case *value.Closure:
		if ev.depth >= ev.limits.MaxDepth {
			return nil, noCtrl, &RuntimeError{Kind: KindResourceExceeded, Message: fmt.Sprintf("stack depth exceeded (max %d)", ev.limits.MaxDepth)}
		}
		if len(args) != len(f.Params) {
			return nil, noCtrl, errf("%s expects %d argument(s), got %d", f.String(), len(f.Params), len(args))
		}

		body, ok := f.Body.(canon.CExpr)
		if !ok {
			return nil, noCtrl, errf("malformed closure body")
		}
		calleeScope, _ := f.Scope.(*envr.Scope)
		calleeFrame, _ := f.Frame.(*envr.Frame)
		newFrame := envr.PushFrame(calleeFrame, args)

		ev.depth++
		v, c, err := ev.eval(calleeScope, newFrame, body)
		ev.depth--
		if err != nil {
			return nil, noCtrl, err
		}
		if c.kind == ctrlReturn {
			return c.value, noCtrl, nil
		}
		if c.kind != ctrlNone {
			return nil, noCtrl, errf("%s inside function body with no enclosing loop", ctrlName(c.kind))
		}

		return v, noCtrl, nil

	default:
		return nil, noCtrl, &RuntimeError{Kind: KindNotCallable, Message: fmt.Sprintf("value of kind %s is not callable", fn.Kind())}
	}
}
