package eval

import (
	"github.com/paiml/ruchy-sub009/canon"
	"github.com/paiml/ruchy-sub009/envr"
	"github.com/paiml/ruchy-sub009/value"
)

// evalTry implements `expr?`: unwrap a Result::Ok/Option::Some payload,
// or propagate Result::Err/Option::None as an early return from the
// enclosing function (spec §3: "try / early-return (?) propagate error
// variants").
func (ev *Evaluator) evalTry(sc *envr.Scope, fr *envr.Frame, n canon.CTry) (value.Value, ctrl, *RuntimeError) {
	v, c, err := ev.eval(sc, fr, n.Inner)
	if err != nil || c.kind != ctrlNone {
		return v, c, err
	}

	ev2, ok := v.(*value.EnumVariant)
	if !ok {
		return v, noCtrl, nil
	}

	switch ev2.VariantName {
	case "Ok", "Some":
		if len(ev2.Tuple) > 0 {
			return ev2.Tuple[0], noCtrl, nil
		}

		return value.Unit{}, noCtrl, nil
	case "Err", "None":
		return value.Unit{}, ctrl{kind: ctrlReturn, value: ev2}, nil
	default:
		return v, noCtrl, nil
	}
}
