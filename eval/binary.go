package eval

import (
	"github.com/paiml/ruchy-sub009/canon"
	"github.com/paiml/ruchy-sub009/envr"
	"github.com/paiml/ruchy-sub009/token"
	"github.com/paiml/ruchy-sub009/value"
)

func (ev *Evaluator) evalBinary(sc *envr.Scope, fr *envr.Frame, n canon.CBinary) (value.Value, ctrl, *RuntimeError) {
	// && and || short-circuit: the right operand is only evaluated when
	// the left doesn't already decide the result (spec §3 evaluation
	// order invariant).
	if n.Op == "&&" || n.Op == "||" {
		l, c, err := ev.eval(sc, fr, n.Left)
		if err != nil || c.kind != ctrlNone {
			return l, c, err
		}
		lb := value.Truthy(l)
		if n.Op == "&&" && !lb {
			return value.Bool(false), noCtrl, nil
		}
		if n.Op == "||" && lb {
			return value.Bool(true), noCtrl, nil
		}

		return ev.eval(sc, fr, n.Right)
	}

	l, c, err := ev.eval(sc, fr, n.Left)
	if err != nil || c.kind != ctrlNone {
		return l, c, err
	}
	r, c, err := ev.eval(sc, fr, n.Right)
	if err != nil || c.kind != ctrlNone {
		return r, c, err
	}

	v, rerr := applyBinary(n.Op, l, r, n.Span())
	if rerr != nil {
		return nil, noCtrl, rerr
	}
	if s, ok := v.(value.Str); ok {
		if rerr := ev.charge(approxSize(s)); rerr != nil {
			return nil, noCtrl, rerr
		}
	}

	return v, noCtrl, nil
}

func applyBinary(op string, l, r value.Value, span token.Span) (value.Value, *RuntimeError) {
	switch op {
	case "==":
		return value.Bool(value.Equal(l, r)), nil
	case "!=":
		return value.Bool(!value.Equal(l, r)), nil
	}

	if op == "+" {
		if ls, ok := l.(value.Str); ok {
			rs, ok := r.(value.Str)
			if !ok {
				return nil, errf("cannot concatenate string with %s", r.Kind())
			}

			return value.Str(string(ls) + string(rs)), nil
		}
	}

	if li, lok := l.(value.Integer); lok {
		if ri, rok := r.(value.Integer); rok {
			return intBinary(op, int64(li), int64(ri), span)
		}
	}

	lf, lok := asFloat(l)
	rf, rok := asFloat(r)
	if lok && rok {
		return floatBinary(op, lf, rf)
	}

	return nil, errf("operator %s not defined for %s and %s", op, l.Kind(), r.Kind())
}

func asFloat(v value.Value) (float64, bool) {
	switch n := v.(type) {
	case value.Float:
		return float64(n), true
	case value.Integer:
		return float64(n), true
	default:
		return 0, false
	}
}

// intBinary implements integer arithmetic with the spec's chosen
// semantics: truncating division and sign-of-dividend modulo, division
// and modulo by zero are RuntimeErrors rather than a crash or an
// infinity (floats get IEEE semantics instead, see floatBinary).
func intBinary(op string, l, r int64, span token.Span) (value.Value, *RuntimeError) {
	switch op {
	case "+":
		return value.Integer(l + r), nil
	case "-":
		return value.Integer(l - r), nil
	case "*":
		return value.Integer(l * r), nil
	case "/":
		if r == 0 {
			return nil, errk(KindDivByZero, span, "integer division by zero")
		}

		return value.Integer(l / r), nil
	case "%":
		if r == 0 {
			return nil, errk(KindDivByZero, span, "integer modulo by zero")
		}

		return value.Integer(l % r), nil
	case "<":
		return value.Bool(l < r), nil
	case "<=":
		return value.Bool(l <= r), nil
	case ">":
		return value.Bool(l > r), nil
	case ">=":
		return value.Bool(l >= r), nil
	case "&":
		return value.Integer(l & r), nil
	case "|":
		return value.Integer(l | r), nil
	case "^":
		return value.Integer(l ^ r), nil
	case "<<":
		return value.Integer(l << uint(r)), nil
	case ">>":
		return value.Integer(l >> uint(r)), nil
	default:
		return nil, errf("unknown integer operator %s", op)
	}
}

func floatBinary(op string, l, r float64) (value.Value, *RuntimeError) {
	switch op {
	case "+":
		return value.Float(l + r), nil
	case "-":
		return value.Float(l - r), nil
	case "*":
		return value.Float(l * r), nil
	case "/":
		return value.Float(l / r), nil // IEEE: yields +/-Inf or NaN, never errors
	case "<":
		return value.Bool(l < r), nil
	case "<=":
		return value.Bool(l <= r), nil
	case ">":
		return value.Bool(l > r), nil
	case ">=":
		return value.Bool(l >= r), nil
	default:
		return nil, errf("operator %s not defined for float", op)
	}
}

func (ev *Evaluator) evalUnary(sc *envr.Scope, fr *envr.Frame, n canon.CUnary) (value.Value, ctrl, *RuntimeError) {
	v, c, err := ev.eval(sc, fr, n.Operand)
	if err != nil || c.kind != ctrlNone {
		return v, c, err
	}

	switch n.Op {
	case "-":
		switch x := v.(type) {
		case value.Integer:
			return value.Integer(-x), noCtrl, nil
		case value.Float:
			return value.Float(-x), noCtrl, nil
		default:
			return nil, noCtrl, errf("unary - not defined for %s", v.Kind())
		}
	case "!":
		return value.Bool(!value.Truthy(v)), noCtrl, nil
	case "~":
		if x, ok := v.(value.Integer); ok {
			return value.Integer(^x), noCtrl, nil
		}

		return nil, noCtrl, errf("unary ~ not defined for %s", v.Kind())
	default:
		return nil, noCtrl, errf("unknown unary operator %s", n.Op)
	}
}
