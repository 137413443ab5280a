package eval

import (
	"github.com/paiml/ruchy-sub009/canon"
	"github.com/paiml/ruchy-sub009/envr"
	"github.com/paiml/ruchy-sub009/value"
)

func (ev *Evaluator) evalExprs(sc *envr.Scope, fr *envr.Frame, exprs []canon.CExpr) ([]value.Value, ctrl, *RuntimeError) {
	out := make([]value.Value, len(exprs))
	for i, e := range exprs {
		v, c, err := ev.eval(sc, fr, e)
		if err != nil || c.kind != ctrlNone {
			return nil, c, err
		}
		out[i] = v
	}

	return out, noCtrl, nil
}

func (ev *Evaluator) evalListLit(sc *envr.Scope, fr *envr.Frame, n canon.CListLit) (value.Value, ctrl, *RuntimeError) {
	elems, c, err := ev.evalExprs(sc, fr, n.Elems)
	if err != nil || c.kind != ctrlNone {
		return nil, c, err
	}
	lst := value.NewList(elems)
	if rerr := ev.charge(approxSize(lst)); rerr != nil {
		return nil, noCtrl, rerr
	}

	return lst, noCtrl, nil
}

func (ev *Evaluator) evalTupleLit(sc *envr.Scope, fr *envr.Frame, n canon.CTupleLit) (value.Value, ctrl, *RuntimeError) {
	elems, c, err := ev.evalExprs(sc, fr, n.Elems)
	if err != nil || c.kind != ctrlNone {
		return nil, c, err
	}
	tup := value.NewTuple(elems)
	if rerr := ev.charge(approxSize(tup)); rerr != nil {
		return nil, noCtrl, rerr
	}

	return tup, noCtrl, nil
}

func (ev *Evaluator) evalSetLit(sc *envr.Scope, fr *envr.Frame, n canon.CSetLit) (value.Value, ctrl, *RuntimeError) {
	elems, c, err := ev.evalExprs(sc, fr, n.Elems)
	if err != nil || c.kind != ctrlNone {
		return nil, c, err
	}
	s := value.NewSet()
	for _, e := range elems {
		s.Add(e)
	}
	if rerr := ev.charge(approxSize(s)); rerr != nil {
		return nil, noCtrl, rerr
	}

	return s, noCtrl, nil
}

func (ev *Evaluator) evalMapLit(sc *envr.Scope, fr *envr.Frame, n canon.CMapLit) (value.Value, ctrl, *RuntimeError) {
	m := value.NewMapping()
	for _, entry := range n.Entries {
		k, c, err := ev.eval(sc, fr, entry.Key)
		if err != nil || c.kind != ctrlNone {
			return nil, c, err
		}
		v, c, err := ev.eval(sc, fr, entry.Value)
		if err != nil || c.kind != ctrlNone {
			return nil, c, err
		}
		ks, ok := k.(value.Str)
		if !ok {
			return nil, noCtrl, errf("map keys must be strings, got %s", k.Kind())
		}
		m.Set(string(ks), v)
	}
	if rerr := ev.charge(approxSize(m)); rerr != nil {
		return nil, noCtrl, rerr
	}

	return m, noCtrl, nil
}

func (ev *Evaluator) evalRangeLit(sc *envr.Scope, fr *envr.Frame, n canon.CRangeLit) (value.Value, ctrl, *RuntimeError) {
	start, c, err := ev.eval(sc, fr, n.Start)
	if err != nil || c.kind != ctrlNone {
		return nil, c, err
	}
	end, c, err := ev.eval(sc, fr, n.End)
	if err != nil || c.kind != ctrlNone {
		return nil, c, err
	}
	si, ok := start.(value.Integer)
	if !ok {
		return nil, noCtrl, errf("range bounds must be integers")
	}
	ei, ok := end.(value.Integer)
	if !ok {
		return nil, noCtrl, errf("range bounds must be integers")
	}

	return value.Range{Start: int64(si), End: int64(ei), Inclusive: n.Inclusive}, noCtrl, nil
}

func (ev *Evaluator) evalStructLit(sc *envr.Scope, fr *envr.Frame, n canon.CStructLit) (value.Value, ctrl, *RuntimeError) {
	rec := value.NewRecord(n.Name)
	seen := map[string]bool{}
	for _, f := range n.Fields {
		v, c, err := ev.eval(sc, fr, f.Value)
		if err != nil || c.kind != ctrlNone {
			return nil, c, err
		}
		// Defense-in-depth: the parser already rejects duplicate field
		// literals, but a struct literal reaching eval through any other
		// construction path (macro expansion, synthetic canon nodes)
		// still must not silently drop a field (spec §3.6).
		if seen[f.Name] {
			return nil, noCtrl, errk(KindDuplicateField, n.Span(), "duplicate field %q in struct literal", f.Name)
		}
		seen[f.Name] = true
		rec.Fields.Set(f.Name, v)
	}
	if rerr := ev.charge(approxSize(rec)); rerr != nil {
		return nil, noCtrl, rerr
	}

	return rec, noCtrl, nil
}
