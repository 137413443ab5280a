// Package envr holds the two binding environments the evaluator threads
// through a run: Scope, a name-keyed chain for session/top-level
// bindings (one REPL statement at a time, the way scope.Scope tracks
// variables across statements in the teacher), and Frame, a positional
// De Bruijn-indexed chain for the bindings canon already resolved inside
// a single expression (lambda params, `let` bodies). Canon's CVar carries
// Depth/Index precisely so the evaluator never does name lookups inside
// an expression; Scope only comes into play at CFree — an identifier
// canon could not resolve lexically, meaning it refers to something
// bound at session level (a previous `let`, an import, a builtin).
package envr

import "github.com/paiml/ruchy-sub009/value"

// Scope is a lexical scope boundary for session-level bindings: every
// top-level `let`/`fn`/`struct`/`enum` the REPL or a script executes
// lands in a Scope, and lookups walk outward through Parent until they
// either find a binding or fall through to the global builtin table.
type Scope struct {
	// Values maps a bound name to its current runtime value.
	Values map[string]value.Value

	// Mutable tracks which names were bound with `let mut` or `var`
	// (everything else is rejected by assignment at eval time).
	Mutable map[string]bool

	// Parent is the enclosing scope; nil marks the root/global scope.
	Parent *Scope
}

// NewScope creates a scope nested under parent (nil for the root scope).
func NewScope(parent *Scope) *Scope {
	return &Scope{
		Values:  make(map[string]value.Value),
		Mutable: make(map[string]bool),
		Parent:  parent,
	}
}

// Define binds name in this scope, shadowing any outer binding of the
// same name.
func (s *Scope) Define(name string, v value.Value, mutable bool) {
	s.Values[name] = v
	s.Mutable[name] = mutable
}

// Lookup searches this scope and its ancestors for name.
func (s *Scope) Lookup(name string) (value.Value, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if v, ok := sc.Values[name]; ok {
			return v, true
		}
	}

	return nil, false
}

// Assign updates an existing binding of name, searching outward from s.
// It reports false if name is unbound anywhere in the chain or was
// bound immutably.
func (s *Scope) Assign(name string, v value.Value) bool {
	for sc := s; sc != nil; sc = sc.Parent {
		if _, ok := sc.Values[name]; ok {
			if !sc.Mutable[name] {
				return false
			}
			sc.Values[name] = v

			return true
		}
	}

	return false
}

// IsMutable reports whether name, if bound anywhere in the chain, was
// declared mutable.
func (s *Scope) IsMutable(name string) bool {
	for sc := s; sc != nil; sc = sc.Parent {
		if _, ok := sc.Values[name]; ok {
			return sc.Mutable[name]
		}
	}

	return false
}

// Names lists every name bound directly in this scope (not ancestors),
// used by the REPL's `:bindings`/`:env` commands.
func (s *Scope) Names() []string {
	out := make([]string, 0, len(s.Values))
	for name := range s.Values {
		out = append(out, name)
	}

	return out
}

// Snapshot copies this scope's direct bindings, used by replstate to
// checkpoint/restore around a failed multi-statement evaluation.
func (s *Scope) Snapshot() map[string]value.Value {
	out := make(map[string]value.Value, len(s.Values))
	for k, v := range s.Values {
		out[k] = v
	}

	return out
}

// Restore replaces this scope's direct bindings with a prior Snapshot.
func (s *Scope) Restore(snap map[string]value.Value) {
	s.Values = make(map[string]value.Value, len(snap))
	for k, v := range snap {
		s.Values[k] = v
	}
}
