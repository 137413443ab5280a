package eval

import (
	"github.com/paiml/ruchy-sub009/canon"
	"github.com/paiml/ruchy-sub009/envr"
	"github.com/paiml/ruchy-sub009/value"
)

func (ev *Evaluator) evalFieldAccess(sc *envr.Scope, fr *envr.Frame, n canon.CFieldAccess) (value.Value, ctrl, *RuntimeError) {
	obj, c, err := ev.eval(sc, fr, n.Object)
	if err != nil || c.kind != ctrlNone {
		return obj, c, err
	}

	switch o := obj.(type) {
	case *value.Record:
		v, ok := o.Fields.Get(n.Field)
		if !ok {
			return nil, noCtrl, errf("%s has no field %s", o.TypeName, n.Field)
		}

		return v, noCtrl, nil

	case *value.EnumMarker:
		shape, ok := o.Variants[n.Field]
		if !ok {
			return nil, noCtrl, errf("%s has no variant %s", o.Name, n.Field)
		}
		if shape.TupleArity == 0 && shape.Fields == nil {
			return &value.EnumVariant{EnumName: o.Name, VariantName: n.Field}, noCtrl, nil
		}
		enumName, variantName, fields := o.Name, n.Field, shape.Fields
		arity := shape.TupleArity
		if fields != nil {
			arity = len(fields)
		}

		return &value.Builtin{
			Name:  o.Name + "::" + n.Field,
			Arity: arity,
			Fn: func(args []value.Value) (value.Value, error) {
				if fields != nil {
					m := value.NewMapping()
					for i, f := range fields {
						m.Set(f, args[i])
					}

					return &value.EnumVariant{EnumName: enumName, VariantName: variantName, Fields: m}, nil
				}

				return &value.EnumVariant{EnumName: enumName, VariantName: variantName, Tuple: args}, nil
			},
		}, noCtrl, nil

	case *value.Tuple:
		idx, ierr := tupleFieldIndex(n.Field)
		if ierr != nil || idx < 0 || idx >= len(o.Elems) {
			return nil, noCtrl, errf("tuple has no field %s", n.Field)
		}

		return o.Elems[idx], noCtrl, nil

	default:
		return nil, noCtrl, errf("value of kind %s has no field %s", obj.Kind(), n.Field)
	}
}

func tupleFieldIndex(field string) (int, error) {
	n := 0
	for _, r := range field {
		if r < '0' || r > '9' {
			return -1, errf("not a numeric tuple field: %s", field)
		}
		n = n*10 + int(r-'0')
	}

	return n, nil
}

func (ev *Evaluator) evalIndex(sc *envr.Scope, fr *envr.Frame, n canon.CIndex) (value.Value, ctrl, *RuntimeError) {
	obj, c, err := ev.eval(sc, fr, n.Object)
	if err != nil || c.kind != ctrlNone {
		return obj, c, err
	}
	idx, c, err := ev.eval(sc, fr, n.Index)
	if err != nil || c.kind != ctrlNone {
		return idx, c, err
	}

	switch o := obj.(type) {
	case *value.List:
		i, ok := idx.(value.Integer)
		if !ok {
			return nil, noCtrl, errf("list index must be an integer")
		}
		if int(i) < 0 || int(i) >= len(o.Elems) {
			return nil, noCtrl, errk(KindIndexOutOfRange, n.Span(), "index %d out of bounds for list of length %d", i, len(o.Elems))
		}

		return o.Elems[i], noCtrl, nil

	case *value.Tuple:
		i, ok := idx.(value.Integer)
		if !ok || int(i) < 0 || int(i) >= len(o.Elems) {
			return nil, noCtrl, errk(KindIndexOutOfRange, n.Span(), "invalid tuple index")
		}

		return o.Elems[i], noCtrl, nil

	case *value.Mapping:
		key, ok := idx.(value.Str)
		if !ok {
			return nil, noCtrl, errf("map key must be a string")
		}
		v, ok := o.Get(string(key))
		if !ok {
			return nil, noCtrl, errf("map has no key %q", string(key))
		}

		return v, noCtrl, nil

	default:
		return nil, noCtrl, errf("value of kind %s is not indexable", obj.Kind())
	}
}
