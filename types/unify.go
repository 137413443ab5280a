package types

import "github.com/paiml/ruchy-sub009/token"

// Unify solves a ~ b, returning the most general substitution that makes
// them equal, or a type Error. Both a and b are assumed to already have
// any in-scope substitution applied by the caller.
func Unify(a, b Monotype, span token.Span) (Substitution, *Error) {
	switch l := a.(type) {
	case TVar:
		return bindVar(l, b, span)
	}

	if r, ok := b.(TVar); ok {
		return bindVar(r, a, span)
	}

	switch l := a.(type) {
	case TCon:
		r, ok := b.(TCon)
		if !ok || r.Name != l.Name {
			return nil, newError(UnificationFailure, span, "cannot unify %s with %s", a, b)
		}

		return Substitution{}, nil

	case TApp:
		r, ok := b.(TApp)
		if !ok || r.Name != l.Name || len(r.Args) != len(l.Args) {
			return nil, newError(UnificationFailure, span, "cannot unify %s with %s", a, b)
		}

		return unifyList(l.Args, r.Args, span)

	case TFun:
		r, ok := b.(TFun)
		if !ok || len(r.Params) != len(l.Params) {
			return nil, newError(UnificationFailure, span, "cannot unify %s with %s", a, b)
		}

		sub, err := unifyList(l.Params, r.Params, span)
		if err != nil {
			return nil, err
		}

		retSub, err := Unify(sub.Apply(l.Ret), sub.Apply(r.Ret), span)
		if err != nil {
			return nil, err
		}

		return Compose(retSub, sub), nil

	case TTuple:
		r, ok := b.(TTuple)
		if !ok || len(r.Elems) != len(l.Elems) {
			return nil, newError(UnificationFailure, span, "cannot unify %s with %s", a, b)
		}

		return unifyList(l.Elems, r.Elems, span)

	case TRecord:
		r, ok := b.(TRecord)
		if !ok {
			return nil, newError(UnificationFailure, span, "cannot unify %s with %s", a, b)
		}

		return unifyRecords(l, r, span)
	}

	return nil, newError(UnificationFailure, span, "cannot unify %s with %s", a, b)
}

func unifyList(as, bs []Monotype, span token.Span) (Substitution, *Error) {
	sub := Substitution{}
	for i := range as {
		s, err := Unify(sub.Apply(as[i]), sub.Apply(bs[i]), span)
		if err != nil {
			return nil, err
		}
		sub = Compose(s, sub)
	}

	return sub, nil
}

// unifyRecords implements row-polymorphic unification: fields present in
// both records must unify pairwise; fields present only in one side flow
// into the other side's row variable (spec §4.4: "`.field` access
// imposes a row constraint"). Two closed records (Row == nil on both)
// with different field sets is a RowConflict.
func unifyRecords(l, r TRecord, span token.Span) (Substitution, *Error) {
	lFields := map[string]Monotype{}
	for _, f := range l.Fields {
		lFields[f.Name] = f.Type
	}
	rFields := map[string]Monotype{}
	for _, f := range r.Fields {
		rFields[f.Name] = f.Type
	}

	sub := Substitution{}
	var onlyInL, onlyInR []TRecordField

	for name, lt := range lFields {
		if rt, ok := rFields[name]; ok {
			s, err := Unify(sub.Apply(lt), sub.Apply(rt), span)
			if err != nil {
				return nil, err
			}
			sub = Compose(s, sub)
		} else {
			onlyInL = append(onlyInL, TRecordField{Name: name, Type: lt})
		}
	}
	for name, rt := range rFields {
		if _, ok := lFields[name]; !ok {
			onlyInR = append(onlyInR, TRecordField{Name: name, Type: rt})
		}
	}

	switch {
	case len(onlyInL) == 0 && len(onlyInR) == 0:
		if l.Row != nil && r.Row != nil {
			s, err := Unify(*l.Row, *r.Row, span)
			if err != nil {
				return nil, err
			}
			sub = Compose(s, sub)
		}

		return sub, nil

	case r.Row != nil:
		// fields only in l flow into r's row variable.
		s, err := Unify(*r.Row, TRecord{Fields: onlyInL, Row: rowOrFresh(l.Row)}, span)
		if err != nil {
			return nil, err
		}

		return Compose(s, sub), nil

	case l.Row != nil:
		s, err := Unify(*l.Row, TRecord{Fields: onlyInR, Row: rowOrFresh(r.Row)}, span)
		if err != nil {
			return nil, err
		}

		return Compose(s, sub), nil

	default:
		return nil, newError(RowConflict, span, "records have incompatible field sets")
	}
}

func rowOrFresh(row *TVar) *TVar {
	if row != nil {
		return row
	}

	return nil
}

func bindVar(v TVar, m Monotype, span token.Span) (Substitution, *Error) {
	if same, ok := m.(TVar); ok && same.ID == v.ID {
		return Substitution{}, nil
	}

	if occurs(v, m) {
		return nil, newError(OccursCheckFailure, span, "type variable %s occurs in %s", v, m)
	}

	return Substitution{v.ID: m}, nil
}

func occurs(v TVar, m Monotype) bool {
	_, found := freeVars(m)[v.ID]

	return found
}
