package types

// Substitution is an idempotent mapping from type-variable IDs to
// monotypes (spec §4.4 invariant: "the substitution is an idempotent
// mapping"). Idempotency is maintained by always fully applying the
// existing substitution to a new binding's right-hand side before
// inserting it (see Compose).
type Substitution map[int]Monotype

// Apply recursively substitutes every type variable bound in s within m.
func (s Substitution) Apply(m Monotype) Monotype {
	if len(s) == 0 {
		return m
	}

	switch t := m.(type) {
	case TVar:
		if bound, ok := s[t.ID]; ok {
			return s.Apply(bound)
		}

		return t
	case TCon:
		return t
	case TApp:
		args := make([]Monotype, len(t.Args))
		for i, a := range t.Args {
			args[i] = s.Apply(a)
		}

		return TApp{Name: t.Name, Args: args}
	case TFun:
		params := make([]Monotype, len(t.Params))
		for i, p := range t.Params {
			params[i] = s.Apply(p)
		}

		return TFun{Params: params, Ret: s.Apply(t.Ret)}
	case TTuple:
		elems := make([]Monotype, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = s.Apply(e)
		}

		return TTuple{Elems: elems}
	case TRecord:
		fields := make([]TRecordField, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = TRecordField{Name: f.Name, Type: s.Apply(f.Type)}
		}

		row := t.Row
		if t.Row != nil {
			if applied := s.Apply(*t.Row); applied != Monotype(*t.Row) {
				if rv, ok := applied.(TVar); ok {
					row = &rv
				} else if rec, ok := applied.(TRecord); ok {
					// Row variable resolved to a further record: merge fields.
					merged := append(append([]TRecordField{}, fields...), rec.Fields...)

					return TRecord{Fields: merged, Row: rec.Row}
				}
			}
		}

		return TRecord{Fields: fields, Row: row}
	default:
		return m
	}
}

// ApplyPoly applies s to a Polytype's body, skipping the scheme's own
// bound variables (a generalized variable is never further substituted
// by an outer solve).
func (s Substitution) ApplyPoly(p Polytype) Polytype {
	filtered := Substitution{}
	bound := map[int]bool{}
	for _, v := range p.Vars {
		bound[v.ID] = true
	}
	for id, m := range s {
		if !bound[id] {
			filtered[id] = m
		}
	}

	return Polytype{Vars: p.Vars, Body: filtered.Apply(p.Body)}
}

// Compose returns the substitution equivalent to applying s1 after s2
// (i.e. s1 ∘ s2): apply s1 to every binding in s2, then add s1's own
// bindings on top. Composing this way keeps the result idempotent.
func Compose(s1, s2 Substitution) Substitution {
	out := Substitution{}
	for id, m := range s2 {
		out[id] = s1.Apply(m)
	}
	for id, m := range s1 {
		out[id] = m
	}

	return out
}

var nextTVarID int

// Fresh mints a new, globally unique type variable.
func Fresh() TVar {
	nextTVarID++

	return TVar{ID: nextTVarID}
}

// freeVars collects every unbound type-variable ID occurring in m.
func freeVars(m Monotype) map[int]bool {
	out := map[int]bool{}
	collectFreeVars(m, out)

	return out
}

func collectFreeVars(m Monotype, out map[int]bool) {
	switch t := m.(type) {
	case TVar:
		out[t.ID] = true
	case TApp:
		for _, a := range t.Args {
			collectFreeVars(a, out)
		}
	case TFun:
		for _, p := range t.Params {
			collectFreeVars(p, out)
		}
		collectFreeVars(t.Ret, out)
	case TTuple:
		for _, e := range t.Elems {
			collectFreeVars(e, out)
		}
	case TRecord:
		for _, f := range t.Fields {
			collectFreeVars(f.Type, out)
		}
		if t.Row != nil {
			out[t.Row.ID] = true
		}
	}
}
