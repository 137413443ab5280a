package types

import (
	"github.com/paiml/ruchy-sub009/canon"
	"github.com/paiml/ruchy-sub009/token"
)

// locals is a simple slice-based stack of type-scheme frames mirroring
// canon's De Bruijn binding structure: CVar{Depth, Index} resolves by
// walking Depth frames up and indexing Index into that frame, exactly as
// canon.scope resolved names during canonicalization.
type locals struct {
	frames []frame
}

type frame struct {
	schemes []Polytype
}

func (l *locals) push(schemes []Polytype) *locals {
	return &locals{frames: append(append([]frame{}, l.frames...), frame{schemes: schemes})}
}

func (l *locals) resolve(depth, index int) (Polytype, bool) {
	i := len(l.frames) - 1 - depth
	if i < 0 || i >= len(l.frames) {
		return Polytype{}, false
	}
	fr := l.frames[i]
	if index < 0 || index >= len(fr.schemes) {
		return Polytype{}, false
	}

	return fr.schemes[index], true
}

// Infer computes a principal type for e under globals (builtin/global
// schemes, keyed by name — these back CFree references) via Algorithm W:
// constraints are solved bottom-up by unification as each subterm is
// visited, rather than collected into a separate pass (spec §4.4).
func Infer(globals *Env, e canon.CExpr) (Substitution, Monotype, []*Error) {
	inf := &inferencer{globals: globals}
	sub, typ := inf.infer(e, &locals{})

	return sub, typ, inf.errors
}

type inferencer struct {
	globals *Env
	errors  []*Error
}

func (inf *inferencer) fail(span token.Span, err *Error) Monotype {
	inf.errors = append(inf.errors, err)

	return Fresh()
}

func (inf *inferencer) unify(a, b Monotype, span token.Span) Substitution {
	sub, err := Unify(a, b, span)
	if err != nil {
		inf.errors = append(inf.errors, err)

		return Substitution{}
	}

	return sub
}

// infer is Algorithm W's core recursive step. It returns the substitution
// accumulated while inferring e and e's own (as-yet-unsubstituted-by-caller)
// type. Every unify/fail call below is given the span of the most specific
// subterm it concerns — e's own span by default, a child's span when the
// failure is better attributed to that child — so a diagnostic always
// points at real source text (spec §3, §4.4) instead of a zero span.
func (inf *inferencer) infer(e canon.CExpr, loc *locals) (Substitution, Monotype) {
	span := e.Span()

	switch n := e.(type) {
	case canon.CInt:
		return Substitution{}, Int
	case canon.CFloat:
		return Substitution{}, Float
	case canon.CBool:
		return Substitution{}, Bool
	case canon.CChar:
		return Substitution{}, Char
	case canon.CString:
		return Substitution{}, Str
	case canon.CNil:
		return Substitution{}, NilTy

	case canon.CVar:
		scheme, ok := loc.resolve(n.Depth, n.Index)
		if !ok {
			return Substitution{}, inf.fail(span, newError(UnboundIdentifier, span, "unbound variable %s", n.Name))
		}

		return Substitution{}, Instantiate(scheme)

	case canon.CFree:
		scheme, ok := inf.globals.Lookup(n.Name)
		if !ok {
			return Substitution{}, inf.fail(span, newError(UnboundIdentifier, span, "unbound identifier %q", n.Name))
		}

		return Substitution{}, Instantiate(scheme)

	case canon.CLam:
		paramTypes := make([]Monotype, len(n.Params))
		schemes := make([]Polytype, len(n.Params))
		for i := range n.Params {
			tv := Fresh()
			paramTypes[i] = tv
			schemes[i] = Mono(tv)
		}

		bodySub, bodyTy := inf.infer(n.Body, loc.push(schemes))
		params := make([]Monotype, len(paramTypes))
		for i, pt := range paramTypes {
			params[i] = bodySub.Apply(pt)
		}

		return bodySub, TFun{Params: params, Ret: bodyTy}

	case canon.CApp:
		fnSub, fnTy := inf.infer(n.Func, loc)
		argTypes := make([]Monotype, len(n.Args))
		sub := fnSub

		for i, a := range n.Args {
			argSub, argTy := inf.infer(a, loc)
			sub = Compose(argSub, sub)
			argTypes[i] = argTy
		}

		retTv := Fresh()
		expectedFn := TFun{Params: argTypes, Ret: retTv}
		s := inf.unify(sub.Apply(fnTy), sub.Apply(expectedFn), span)
		sub = Compose(s, sub)

		return sub, sub.Apply(retTv)

	case canon.CLet:
		valSub, valTy := inf.infer(n.Value, loc)
		valTy = valSub.Apply(valTy)
		scheme := Generalize(inf.globals, valTy)
		bodySub, bodyTy := inf.infer(n.Body, loc.push([]Polytype{scheme}))

		return Compose(bodySub, valSub), bodyTy

	case canon.CLetPattern:
		valSub, valTy := inf.infer(n.Value, loc)
		valTy = valSub.Apply(valTy)

		schemes := make([]Polytype, len(n.Names))
		for i := range n.Names {
			schemes[i] = Mono(Fresh())
		}
		_ = valTy // pattern-shaped destructuring refinement is approximated: each bound name gets its own fresh monotype.

		bodySub, bodyTy := inf.infer(n.Body, loc.push(schemes))

		return Compose(bodySub, valSub), bodyTy

	case canon.CIf:
		condSub, condTy := inf.infer(n.Cond, loc)
		s1 := inf.unify(condSub.Apply(condTy), Bool, n.Cond.Span())
		sub := Compose(s1, condSub)

		thenSub, thenTy := inf.infer(n.Then, loc)
		sub = Compose(thenSub, sub)

		if n.Else == nil {
			return sub, Unit
		}

		elseSub, elseTy := inf.infer(n.Else, loc)
		sub = Compose(elseSub, sub)
		s2 := inf.unify(sub.Apply(thenTy), sub.Apply(elseTy), n.Else.Span())
		sub = Compose(s2, sub)

		return sub, sub.Apply(thenTy)

	case canon.CMatch:
		scrutSub, _ := inf.infer(n.Scrutinee, loc)
		sub := scrutSub
		resultTv := Fresh()
		result := Monotype(resultTv)

		for _, arm := range n.Arms {
			schemes := make([]Polytype, len(arm.Names))
			for i := range arm.Names {
				schemes[i] = Mono(Fresh())
			}
			armLoc := loc.push(schemes)

			if arm.Guard != nil {
				gSub, gTy := inf.infer(arm.Guard, armLoc)
				sub = Compose(gSub, sub)
				s := inf.unify(sub.Apply(gTy), Bool, arm.Guard.Span())
				sub = Compose(s, sub)
			}

			bodySub, bodyTy := inf.infer(arm.Body, armLoc)
			sub = Compose(bodySub, sub)
			s := inf.unify(sub.Apply(result), sub.Apply(bodyTy), arm.Body.Span())
			sub = Compose(s, sub)
			result = sub.Apply(result)
		}

		return sub, result

	case canon.CBlock:
		sub := Substitution{}
		var last Monotype = Unit
		for _, st := range n.Stmts {
			s, t := inf.infer(st, loc)
			sub = Compose(s, sub)
			last = t
		}
		if n.ImplicitUnit {
			return sub, Unit
		}

		return sub, last

	case canon.CBinary:
		return inf.inferBinary(n, loc)

	case canon.CUnary:
		s, t := inf.infer(n.Operand, loc)

		switch n.Op {
		case "!":
			u := inf.unify(s.Apply(t), Bool, n.Operand.Span())

			return Compose(u, s), Bool
		default:
			return s, s.Apply(t)
		}

	case canon.CListLit:
		elemTv := Fresh()
		sub := Substitution{}
		elem := Monotype(elemTv)
		for _, el := range n.Elems {
			s, t := inf.infer(el, loc)
			sub = Compose(s, sub)
			u := inf.unify(sub.Apply(elem), sub.Apply(t), el.Span())
			sub = Compose(u, sub)
			elem = sub.Apply(elem)
		}

		return sub, ListOf(elem)

	case canon.CTupleLit:
		sub := Substitution{}
		elems := make([]Monotype, len(n.Elems))
		for i, el := range n.Elems {
			s, t := inf.infer(el, loc)
			sub = Compose(s, sub)
			elems[i] = t
		}
		for i := range elems {
			elems[i] = sub.Apply(elems[i])
		}

		return sub, TTuple{Elems: elems}

	case canon.CRangeLit:
		sub := Substitution{}
		elem := Monotype(Int)
		if n.Start != nil {
			s, t := inf.infer(n.Start, loc)
			sub = Compose(s, sub)
			elem = t
		}
		if n.End != nil {
			s, t := inf.infer(n.End, loc)
			sub = Compose(s, sub)
			u := inf.unify(sub.Apply(elem), sub.Apply(t), n.End.Span())
			sub = Compose(u, sub)
		}

		return sub, RangeOf(sub.Apply(elem))

	case canon.CFieldAccess:
		objSub, objTy := inf.infer(n.Object, loc)
		fieldTv := Fresh()
		rowTv := Fresh()
		expected := TRecord{Fields: []TRecordField{{Name: n.Field, Type: fieldTv}}, Row: &rowTv}
		s := inf.unify(objSub.Apply(objTy), expected, n.Object.Span())
		sub := Compose(s, objSub)

		return sub, sub.Apply(fieldTv)

	case canon.CIndex:
		objSub, objTy := inf.infer(n.Object, loc)
		idxSub, idxTy := inf.infer(n.Index, loc)
		sub := Compose(idxSub, objSub)
		u := inf.unify(sub.Apply(idxTy), Int, n.Index.Span())
		sub = Compose(u, sub)
		elemTv := Fresh()
		u2 := inf.unify(sub.Apply(objTy), ListOf(elemTv), n.Object.Span())
		sub = Compose(u2, sub)

		return sub, sub.Apply(elemTv)

	case canon.CLoop:
		sub := Substitution{}
		if n.Cond != nil {
			s, t := inf.infer(n.Cond, loc)
			sub = Compose(s, sub)
			u := inf.unify(sub.Apply(t), Bool, n.Cond.Span())
			sub = Compose(u, sub)
		}

		bodyLoc := loc
		if n.Kind == canon.LoopFor {
			bodyLoc = loc.push([]Polytype{Mono(Fresh())})
			if n.Iter != nil {
				inf.infer(n.Iter, loc)
			}
		}
		s, _ := inf.infer(n.Body, bodyLoc)
		sub = Compose(s, sub)

		return sub, Unit

	case canon.CBreak:
		if n.Value != nil {
			return inf.infer(n.Value, loc)
		}

		return Substitution{}, Unit

	case canon.CContinue:
		return Substitution{}, Unit

	case canon.CReturn:
		if n.Value != nil {
			return inf.infer(n.Value, loc)
		}

		return Substitution{}, Unit

	case canon.CTry:
		return inf.infer(n.Inner, loc)

	case canon.CAsync:
		s, t := inf.infer(n.Body, loc)

		return s, t

	case canon.CAwait:
		return inf.infer(n.Inner, loc)

	case canon.CStructLit:
		sub := Substitution{}
		fields := make([]TRecordField, len(n.Fields))
		for i, f := range n.Fields {
			s, t := inf.infer(f.Value, loc)
			sub = Compose(s, sub)
			fields[i] = TRecordField{Name: f.Name, Type: t}
		}
		for i := range fields {
			fields[i].Type = sub.Apply(fields[i].Type)
		}

		return sub, TRecord{Fields: fields}

	case canon.CError:
		return Substitution{}, inf.fail(span, newError(UnificationFailure, span, "cannot type a malformed expression: %s", n.Message))

	default:
		return Substitution{}, Fresh()
	}
}

func (inf *inferencer) inferBinary(n canon.CBinary, loc *locals) (Substitution, Monotype) {
	lSub, lTy := inf.infer(n.Left, loc)
	rSub, rTy := inf.infer(n.Right, loc)
	sub := Compose(rSub, lSub)

	switch n.Op {
	case "+", "-", "*", "/", "%":
		u := inf.unify(sub.Apply(lTy), sub.Apply(rTy), n.Right.Span())
		sub = Compose(u, sub)

		return sub, sub.Apply(lTy)
	case "==", "!=", "<", "<=", ">", ">=":
		u := inf.unify(sub.Apply(lTy), sub.Apply(rTy), n.Right.Span())
		sub = Compose(u, sub)

		return sub, Bool
	case "&&", "||":
		u1 := inf.unify(sub.Apply(lTy), Bool, n.Left.Span())
		sub = Compose(u1, sub)
		u2 := inf.unify(sub.Apply(rTy), Bool, n.Right.Span())
		sub = Compose(u2, sub)

		return sub, Bool
	default:
		u := inf.unify(sub.Apply(lTy), sub.Apply(rTy), n.Right.Span())
		sub = Compose(u, sub)

		return sub, sub.Apply(lTy)
	}
}
