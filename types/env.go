package types

// Env is a persistent (copy-on-extend) mapping from names to type
// schemes, shaped like the evaluator's lexical Scope chain so the two
// stay structurally parallel even though inference and evaluation run as
// separate passes.
type Env struct {
	bindings map[string]Polytype
	parent   *Env
}

// NewEnv creates an empty root environment, typically pre-populated with
// builtin schemes by the caller.
func NewEnv() *Env {
	return &Env{bindings: map[string]Polytype{}}
}

// Extend returns a child environment with name bound to scheme, leaving
// e unmodified — inference never mutates an enclosing scope's bindings.
func (e *Env) Extend(name string, scheme Polytype) *Env {
	return &Env{bindings: map[string]Polytype{name: scheme}, parent: e}
}

// ExtendAll extends with several bindings introduced by the same frame
// (e.g. every name a pattern binds), all visible to each other's
// siblings but not to each other's definitions. Nothing in this module
// calls it; infer.go extends the environment one name at a time.
func (e *Env) ExtendAll(names []string, schemes []Polytype) *Env {
	m := make(map[string]Polytype, len(names))
	for i, n := range names {
		m[n] = schemes[i]
	}

	return &Env{bindings: m, parent: e}
}

func (e *Env) Lookup(name string) (Polytype, bool) {
	for s := e; s != nil; s = s.parent {
		if scheme, ok := s.bindings[name]; ok {
			return scheme, true
		}
	}

	return Polytype{}, false
}

// FreeVars returns every type variable free somewhere in the environment
// — used by generalize to avoid quantifying a variable that's still
// constrained by an outer binding (spec §4.4: "∀α̅ where α̅ are free type
// variables of T not free in env").
func (e *Env) FreeVars() map[int]bool {
	out := map[int]bool{}
	for s := e; s != nil; s = s.parent {
		for _, scheme := range s.bindings {
			bound := map[int]bool{}
			for _, v := range scheme.Vars {
				bound[v.ID] = true
			}
			for id := range freeVars(scheme.Body) {
				if !bound[id] {
					out[id] = true
				}
			}
		}
	}

	return out
}

// Generalize closes over every free variable of m that is not also free
// in env, producing the polytype a let-binding gives its right-hand
// side (spec §4.4).
func Generalize(env *Env, m Monotype) Polytype {
	envFree := env.FreeVars()
	var vars []TVar
	for id := range freeVars(m) {
		if !envFree[id] {
			vars = append(vars, TVar{ID: id})
		}
	}

	return Polytype{Vars: vars, Body: m}
}

// Instantiate replaces every quantified variable of p with a fresh type
// variable, producing a fresh monotype each time the scheme is used —
// this is what makes `let id = |x| x in (id(1), id("a"))` type-check.
func Instantiate(p Polytype) Monotype {
	if len(p.Vars) == 0 {
		return p.Body
	}

	sub := Substitution{}
	for _, v := range p.Vars {
		sub[v.ID] = Fresh()
	}

	return sub.Apply(p.Body)
}
