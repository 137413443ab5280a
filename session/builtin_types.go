package session

import (
	"sort"

	"github.com/paiml/ruchy-sub009/builtin"
	"github.com/paiml/ruchy-sub009/types"
)

// builtinEnv builds the type environment Infer needs for every CFree
// reference that turns out to be a builtin rather than a prior `let`.
// The builtin table (package builtin) carries names and arities but not
// Hindley-Milner signatures, so each one gets the most general scheme its
// arity allows: `forall a1..an r. (a1, ..., an) -> r`. This is deliberately
// looser than a hand-written signature per builtin (real to_uppercase is
// string -> string, not a1 -> r) — the tradeoff favored here is that no
// fixed-arity builtin call is ever rejected by inference it shouldn't be;
// the evaluator's own runtime type checks (builtin/*.go's asStr/asList/...)
// are what actually enforce a builtin's argument shapes, the same
// division of labor the teacher's std package has between its method
// tables (arity only) and runtime errors.
//
// A variadic builtin (Arity < 0: print, concat, assert, min, max...) gets
// the unconstrained scheme `forall a. a` instead of a TFun shape at all —
// this system's TFun unification requires exact parameter-count equality
// (types/unify.go), so no fixed arity can describe a variadic call site.
// Binding a bare type variable to whatever TFun{argTypes, retTv} the call
// site expects always succeeds (Unify's TVar case), which is the honest
// type for "a function of any arity" given this algorithm has no variadic
// function type of its own.
func builtinEnv() *types.Env {
	env := types.NewEnv()
	names := make([]string, 0)
	table := builtin.Table()
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names) // deterministic Env construction, not load-bearing for lookup

	for _, name := range names {
		b := table[name]
		if b.Arity < 0 {
			env = env.Extend(name, variadicScheme())

			continue
		}
		env = env.Extend(name, schemeForArity(b.Arity))
	}

	return env
}

func variadicScheme() types.Polytype {
	tv := types.Fresh()

	return types.Polytype{Vars: []types.TVar{tv}, Body: tv}
}

func schemeForArity(arity int) types.Polytype {
	params := make([]types.Monotype, arity)
	vars := make([]types.TVar, 0, arity+1)
	for i := range params {
		tv := types.Fresh()
		params[i] = tv
		vars = append(vars, tv)
	}
	ret := types.Fresh()
	vars = append(vars, ret)

	return types.Polytype{Vars: vars, Body: types.TFun{Params: params, Ret: ret}}
}
