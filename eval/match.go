package eval

import (
	"fmt"

	"github.com/paiml/ruchy-sub009/ast"
	"github.com/paiml/ruchy-sub009/canon"
	"github.com/paiml/ruchy-sub009/envr"
	"github.com/paiml/ruchy-sub009/value"
)

func (ev *Evaluator) evalMatch(sc *envr.Scope, fr *envr.Frame, n canon.CMatch) (value.Value, ctrl, *RuntimeError) {
	scrutinee, c, err := ev.eval(sc, fr, n.Scrutinee)
	if err != nil || c.kind != ctrlNone {
		return scrutinee, c, err
	}

	if dt := compileDecision(n); dt != nil {
		idx, ok := dt.lookup(scrutinee)
		if !ok {
			return nil, noCtrl, errk(KindNonExhaustiveMatch, n.Span(), "no match arm matched value %s", scrutinee.String())
		}

		return ev.evalArmAt(sc, fr, n.Arms[idx], scrutinee)
	}

	for _, arm := range n.Arms {
		bound := make([]value.Value, len(arm.Names))
		matched := false
		for _, pat := range arm.Patterns {
			idx := 0
			if matchInto(pat, scrutinee, bound, &idx) {
				matched = true

				break
			}
		}
		if !matched {
			continue
		}

		inner := envr.PushFrame(fr, bound)
		if arm.Guard != nil {
			gv, c, err := ev.eval(sc, inner, arm.Guard)
			if err != nil || c.kind != ctrlNone {
				return gv, c, err
			}
			if !value.Truthy(gv) {
				continue
			}
		}

		return ev.eval(sc, inner, arm.Body)
	}

	return nil, noCtrl, errk(KindNonExhaustiveMatch, n.Span(), "no match arm matched value %s", scrutinee.String())
}

// matchPattern is the standalone entry point used by `let`-pattern
// binding (no guard, no alternatives).
func matchPattern(p ast.Pattern, v value.Value, bound []value.Value) (ok bool, consumed int) {
	idx := 0
	ok = matchInto(p, v, bound, &idx)

	return ok, idx
}

// matchInto attempts to match v against p, writing bound names into
// bound at *idx (advancing it), in the same depth-first left-to-right
// order canon.patternNames produces.
func matchInto(p ast.Pattern, v value.Value, bound []value.Value, idx *int) bool {
	switch n := p.(type) {
	case *ast.WildcardPattern:
		return true

	case *ast.LiteralPattern:
		lit := literalValue(n.Value)

		return value.Equal(lit, v)

	case *ast.IdentPattern:
		bound[*idx] = v
		*idx++

		return true

	case *ast.AsPattern:
		if !matchInto(n.Inner, v, bound, idx) {
			return false
		}
		bound[*idx] = v
		*idx++

		return true

	case *ast.RestPattern:
		if n.Name != "" {
			bound[*idx] = v
			*idx++
		}

		return true

	case *ast.TuplePattern:
		t, ok := v.(*value.Tuple)
		if !ok {
			return false
		}

		return matchSequence(n.Elems, t.Elems, bound, idx)

	case *ast.ListPattern:
		l, ok := v.(*value.List)
		if !ok {
			return false
		}

		return matchSequence(n.Elems, l.Elems, bound, idx)

	case *ast.StructPattern:
		r, ok := v.(*value.Record)
		if !ok || r.TypeName != n.TypeName {
			return false
		}
		for _, f := range n.Fields {
			fv, ok := r.Fields.Get(f.Name)
			if !ok {
				return false
			}
			if f.Shorthand {
				bound[*idx] = fv
				*idx++

				continue
			}
			if !matchInto(f.Pattern, fv, bound, idx) {
				return false
			}
		}
		if !n.HasRest && r.Fields.Len() != len(n.Fields) {
			return false
		}

		return true

	case *ast.EnumVariantPattern:
		ev, ok := v.(*value.EnumVariant)
		if !ok || ev.VariantName != n.VariantName {
			return false
		}
		if n.EnumName != "" && ev.EnumName != n.EnumName {
			return false
		}
		if len(n.Elems) > 0 {
			return matchSequence(n.Elems, ev.Tuple, bound, idx)
		}
		if len(n.Fields) > 0 {
			for _, f := range n.Fields {
				fv, ok := ev.Fields.Get(f.Name)
				if !ok {
					return false
				}
				if f.Shorthand {
					bound[*idx] = fv
					*idx++

					continue
				}
				if !matchInto(f.Pattern, fv, bound, idx) {
					return false
				}
			}
		}

		return true

	case *ast.RangePattern:
		lo, hi := literalValue(n.Low), literalValue(n.High)

		return inRange(lo, hi, v, n.Inclusive)

	case *ast.OrPattern:
		for _, alt := range n.Alternatives {
			scratch := *idx
			if matchInto(alt, v, bound, &scratch) {
				*idx = scratch

				return true
			}
		}

		return false

	case *ast.GuardPattern:
		// Per-arm guards are handled by evalMatch via MatchArm.Guard; a
		// GuardPattern nested inside a destructuring position only
		// contributes its structural match here.
		return matchInto(n.Inner, v, bound, idx)

	default:
		return false
	}
}

func matchSequence(pats []ast.Pattern, vals []value.Value, bound []value.Value, idx *int) bool {
	restAt := -1
	for i, p := range pats {
		if _, ok := p.(*ast.RestPattern); ok {
			restAt = i

			break
		}
	}
	if restAt < 0 {
		if len(pats) != len(vals) {
			return false
		}
		for i, p := range pats {
			if !matchInto(p, vals[i], bound, idx) {
				return false
			}
		}

		return true
	}

	before := pats[:restAt]
	after := pats[restAt+1:]
	if len(before)+len(after) > len(vals) {
		return false
	}
	for i, p := range before {
		if !matchInto(p, vals[i], bound, idx) {
			return false
		}
	}
	restLen := len(vals) - len(before) - len(after)
	restElems := append([]value.Value{}, vals[len(before):len(before)+restLen]...)
	if rp, ok := pats[restAt].(*ast.RestPattern); ok && rp.Name != "" {
		bound[*idx] = value.NewList(restElems)
		*idx++
	}
	for i, p := range after {
		if !matchInto(p, vals[len(before)+restLen+i], bound, idx) {
			return false
		}
	}

	return true
}

func inRange(lo, hi, v value.Value, inclusive bool) bool {
	toF := func(x value.Value) (float64, bool) {
		switch n := x.(type) {
		case value.Integer:
			return float64(n), true
		case value.Float:
			return float64(n), true
		case value.Char:
			return float64(n), true
		default:
			return 0, false
		}
	}
	lf, ok1 := toF(lo)
	hf, ok2 := toF(hi)
	vf, ok3 := toF(v)
	if !ok1 || !ok2 || !ok3 {
		return false
	}
	if inclusive {
		return vf >= lf && vf <= hf
	}

	return vf >= lf && vf < hf
}

func literalValue(e ast.Expr) value.Value {
	switch n := e.(type) {
	case *ast.IntLit:
		return value.Integer(n.Value)
	case *ast.FloatLit:
		return value.Float(n.Value)
	case *ast.BoolLit:
		return value.Bool(n.Value)
	case *ast.CharLit:
		return value.Char(n.Value)
	case *ast.StringLit:
		return value.Str(n.Value)
	case *ast.NilLit:
		return value.Nil{}
	default:
		return value.Nil{}
	}
}

func describePattern(p ast.Pattern) string {
	return fmt.Sprintf("%T", p)
}
