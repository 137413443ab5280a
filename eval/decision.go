package eval

import (
	"fmt"

	"github.com/paiml/ruchy-sub009/ast"
	"github.com/paiml/ruchy-sub009/canon"
	"github.com/paiml/ruchy-sub009/envr"
	"github.com/paiml/ruchy-sub009/value"
)

// decisionTable is the compiled form of a match whose arms are each a
// single pattern headed by an enum tag or a literal (keyed by variant name
// or literal value), plus at most one trailing catch-all (a bare wildcard
// or identifier) — the shape a match overwhelmingly takes in practice: a
// switch on an enum tag or on a literal. Building this table once per
// CMatch node and caching it on canon.CMatch.Cache turns repeated
// evaluations of the same match into a single map lookup instead of a
// linear matchInto scan of every arm.
//
// Any arm outside this shape (tuple/list/struct/range/or patterns, guards,
// multiple patterns on one arm, a binding variant pattern, or a catch-all
// that isn't last) makes the whole match ineligible; compileDecision then
// caches a nil result and evalMatch falls back to its linear scan, which
// handles every match shape correctly regardless of eligibility.
type decisionTable struct {
	byKey    map[string]int
	catchAll int
}

func compileDecision(n canon.CMatch) *decisionTable {
	if n.Cache == nil {
		return buildDecisionTable(n.Arms)
	}
	if cached, ok := n.Cache.Data.(cachedDecision); ok {
		return cached.table
	}
	dt := buildDecisionTable(n.Arms)
	n.Cache.Data = cachedDecision{table: dt}

	return dt
}

// cachedDecision wraps a possibly-nil *decisionTable so a prior "this match
// isn't eligible" result is itself cached, instead of being retried (and
// rejected) on every evaluation.
type cachedDecision struct {
	table *decisionTable
}

func buildDecisionTable(arms []canon.CMatchArm) *decisionTable {
	dt := &decisionTable{byKey: make(map[string]int, len(arms)), catchAll: -1}

	for i, arm := range arms {
		if arm.Guard != nil || len(arm.Patterns) != 1 {
			return nil
		}

		key, isCatchAll, ok := decisionKey(arm.Patterns[0])
		if !ok {
			return nil
		}
		if isCatchAll {
			if i != len(arms)-1 {
				return nil
			}
			dt.catchAll = i

			continue
		}
		if _, dup := dt.byKey[key]; dup {
			return nil
		}
		dt.byKey[key] = i
	}

	return dt
}

func decisionKey(p ast.Pattern) (key string, isCatchAll, ok bool) {
	switch n := p.(type) {
	case *ast.WildcardPattern:
		return "", true, true

	case *ast.IdentPattern:
		return "", true, true

	case *ast.EnumVariantPattern:
		if len(n.Elems) > 0 || len(n.Fields) > 0 {
			return "", false, false
		}

		return "variant:" + n.VariantName, false, true

	case *ast.LiteralPattern:
		k, litOK := valueKey(literalValue(n.Value))
		if !litOK {
			return "", false, false
		}

		return k, false, true

	default:
		return "", false, false
	}
}

// valueKey reports the dispatch key a runtime value falls under, matching
// the key format decisionKey assigns literal/variant patterns, or ok=false
// if v's kind has no fast-path representation (records, lists, and the
// like are never produced by the pattern shapes compileDecision accepts,
// so they never need a key).
func valueKey(v value.Value) (key string, ok bool) {
	switch n := v.(type) {
	case *value.EnumVariant:
		return "variant:" + n.VariantName, true

	case value.Integer, value.Float, value.Bool, value.Char, value.Str:
		return fmt.Sprintf("lit:%T|%s", v, v.String()), true

	default:
		return "", false
	}
}

func (dt *decisionTable) lookup(v value.Value) (int, bool) {
	if key, ok := valueKey(v); ok {
		if idx, found := dt.byKey[key]; found {
			return idx, true
		}
	}
	if dt.catchAll >= 0 {
		return dt.catchAll, true
	}

	return 0, false
}

// evalArmAt evaluates the arm a decisionTable lookup selected. Every arm
// eligible for the fast path binds at most one name: a bare identifier
// catch-all binds the whole scrutinee, a wildcard catch-all and every
// literal/tag-only variant arm bind nothing.
func (ev *Evaluator) evalArmAt(sc *envr.Scope, fr *envr.Frame, arm canon.CMatchArm, scrutinee value.Value) (value.Value, ctrl, *RuntimeError) {
	bound := make([]value.Value, len(arm.Names))
	if len(bound) > 0 {
		bound[0] = scrutinee
	}

	inner := envr.PushFrame(fr, bound)

	return ev.eval(sc, inner, arm.Body)
}
