// Package value defines Ruchy's runtime value model: a closed set of Go
// types implementing Value, switched over directly by the evaluator
// instead of a reflective Object interface with type-tag strings (the
// teacher's objects.GoMixObject/GoMixType pattern in objects/objects.go).
// Keeping the set closed lets every consumer (evaluator, builtins,
// formatter) exhaustively type-switch and get a compile error the moment
// a new variant is added somewhere it isn't yet handled.
package value

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Value is any runtime value a Ruchy program can hold.
type Value interface {
	Kind() string
	String() string
}

type Integer int64

func (Integer) Kind() string        { return "int" }
func (i Integer) String() string    { return strconv.FormatInt(int64(i), 10) }

type Float float64

func (Float) Kind() string     { return "float" }
func (f Float) String() string { return strconv.FormatFloat(float64(f), 'g', -1, 64) }

type Bool bool

func (Bool) Kind() string     { return "bool" }
func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

type Char rune

func (Char) Kind() string     { return "char" }
func (c Char) String() string { return string(rune(c)) }

type Str string

func (Str) Kind() string     { return "string" }
func (s Str) String() string { return string(s) }

// Unit is the value of expressions whose result carries no information
// (block tails discarded by `;`, statements, bare `return`).
type Unit struct{}

func (Unit) Kind() string   { return "unit" }
func (Unit) String() string { return "()" }

// Nil is the `nil` literal's value, distinct from Unit (spec's value
// model gives the programmer an explicit absent-value marker separate
// from "this expression produces nothing").
type Nil struct{}

func (Nil) Kind() string   { return "nil" }
func (Nil) String() string { return "nil" }

// List is a mutable, insertion-ordered sequence — Ruchy's array/vector
// type (teacher's objects.Array, generalized to hold any Value).
type List struct{ Elems []Value }

func NewList(elems []Value) *List { return &List{Elems: elems} }
func (*List) Kind() string        { return "list" }
func (l *List) String() string {
	parts := make([]string, len(l.Elems))
	for i, e := range l.Elems {
		parts[i] = e.String()
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// Tuple is a fixed-arity, immutable product value.
type Tuple struct{ Elems []Value }

func NewTuple(elems []Value) *Tuple { return &Tuple{Elems: elems} }
func (*Tuple) Kind() string         { return "tuple" }
func (t *Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}

	return "(" + strings.Join(parts, ", ") + ")"
}

// Set is an unordered collection of distinct values, compared by
// String() (Ruchy values are structurally printable; this is sufficient
// for the primitive/record value set the evaluator produces).
type Set struct {
	order []string
	byKey map[string]Value
}

func NewSet() *Set { return &Set{byKey: map[string]Value{}} }

func (*Set) Kind() string { return "set" }

func (s *Set) Add(v Value) {
	k := v.String()
	if _, ok := s.byKey[k]; ok {
		return
	}
	s.byKey[k] = v
	s.order = append(s.order, k)
}

func (s *Set) Contains(v Value) bool {
	_, ok := s.byKey[v.String()]

	return ok
}

func (s *Set) Len() int { return len(s.order) }

func (s *Set) Values() []Value {
	out := make([]Value, len(s.order))
	for i, k := range s.order {
		out[i] = s.byKey[k]
	}

	return out
}

func (s *Set) String() string {
	parts := make([]string, 0, len(s.order))
	for _, k := range s.order {
		parts = append(parts, s.byKey[k].String())
	}

	return "{" + strings.Join(parts, ", ") + "}"
}

// Mapping is an insertion-ordered string-keyed dictionary (spec requires
// deterministic iteration order, unlike Go's native map).
type Mapping struct {
	order []string
	data  map[string]Value
}

func NewMapping() *Mapping { return &Mapping{data: map[string]Value{}} }

func (*Mapping) Kind() string { return "map" }

func (m *Mapping) Set(key string, v Value) {
	if _, ok := m.data[key]; !ok {
		m.order = append(m.order, key)
	}
	m.data[key] = v
}

func (m *Mapping) Get(key string) (Value, bool) {
	v, ok := m.data[key]

	return v, ok
}

func (m *Mapping) Remove(key string) {
	if _, ok := m.data[key]; !ok {
		return
	}
	delete(m.data, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)

			break
		}
	}
}

func (m *Mapping) Keys() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)

	return out
}

func (m *Mapping) Len() int { return len(m.order) }

func (m *Mapping) String() string {
	parts := make([]string, 0, len(m.order))
	for _, k := range m.order {
		parts = append(parts, fmt.Sprintf("%s: %s", k, m.data[k].String()))
	}

	return "{" + strings.Join(parts, ", ") + "}"
}

// SortedKeys is a test/debug helper; Mapping iteration elsewhere always
// uses insertion order via Keys().
func (m *Mapping) SortedKeys() []string {
	out := m.Keys()
	sort.Strings(out)

	return out
}

// Range is a half-open or inclusive integer range, lazily iterable
// without materializing a List (spec §3/§4.5).
type Range struct {
	Start, End int64
	Inclusive  bool
}

func (Range) Kind() string { return "range" }
func (r Range) String() string {
	op := ".."
	if r.Inclusive {
		op = "..="
	}

	return fmt.Sprintf("%d%s%d", r.Start, op, r.End)
}

// Step reports the direction to iterate: +1 if End >= Start, else -1
// (spec: "sign-of-step direction").
func (r Range) Step() int64 {
	if r.End >= r.Start {
		return 1
	}

	return -1
}

// Contains reports whether n falls within the range.
func (r Range) Contains(n int64) bool {
	if r.Step() > 0 {
		if r.Inclusive {
			return n >= r.Start && n <= r.End
		}

		return n >= r.Start && n < r.End
	}
	if r.Inclusive {
		return n <= r.Start && n >= r.End
	}

	return n <= r.Start && n > r.End
}

// Record is a struct instance: a named type tag plus an insertion-ordered
// field set (row-polymorphic at the type level, concrete at runtime).
type Record struct {
	TypeName string
	Fields   *Mapping
}

func NewRecord(typeName string) *Record {
	return &Record{TypeName: typeName, Fields: NewMapping()}
}

func (*Record) Kind() string { return "struct" }
func (r *Record) String() string {
	parts := make([]string, 0, len(r.Fields.order))
	for _, k := range r.Fields.order {
		v, _ := r.Fields.Get(k)
		parts = append(parts, fmt.Sprintf("%s: %s", k, v.String()))
	}

	return fmt.Sprintf("%s { %s }", r.TypeName, strings.Join(parts, ", "))
}

// EnumVariant is a constructed value of an enum type: a tag plus either a
// positional or a named payload (at most one is non-empty).
type EnumVariant struct {
	EnumName    string
	VariantName string
	Tuple       []Value
	Fields      *Mapping
}

func (*EnumVariant) Kind() string { return "enum" }
func (e *EnumVariant) String() string {
	if len(e.Tuple) > 0 {
		parts := make([]string, len(e.Tuple))
		for i, v := range e.Tuple {
			parts[i] = v.String()
		}

		return fmt.Sprintf("%s::%s(%s)", e.EnumName, e.VariantName, strings.Join(parts, ", "))
	}
	if e.Fields != nil && e.Fields.Len() > 0 {
		return fmt.Sprintf("%s::%s %s", e.EnumName, e.VariantName, e.Fields.String())
	}

	return fmt.Sprintf("%s::%s", e.EnumName, e.VariantName)
}

// DataFrame is an opaque handle over a column-oriented dataset; core
// evaluation never inspects its contents, matching the spec's decision
// to keep DataFrame processing behind an opaque interface rather than a
// full tabular-data engine (an Open Question resolved in favor of
// minimal core-evaluator surface area).
type DataFrame struct {
	Columns []string
	Rows    [][]Value
}

func (*DataFrame) Kind() string { return "dataframe" }
func (d *DataFrame) String() string {
	return fmt.Sprintf("DataFrame{%d cols, %d rows}", len(d.Columns), len(d.Rows))
}

// EnumMarker is the value an enum declaration's name is bound to: not a
// constructible value itself, but a lookup table `Enum::Variant` resolves
// against to build an EnumVariant (see eval's field-access handling).
type EnumMarker struct {
	Name     string
	Variants map[string]EnumVariantShape
}

type EnumVariantShape struct {
	TupleArity int      // number of positional payload fields, 0 if none
	Fields     []string // record-style payload field names, nil if none
}

func (*EnumMarker) Kind() string     { return "enum-type" }
func (e *EnumMarker) String() string { return fmt.Sprintf("<enum %s>", e.Name) }

// Future is a reified future value: async evaluates its body eagerly
// (this evaluator has no thread pool) and wraps the result in an
// already-resolved Future, matching the spec's redesign note that
// suspension points must be explicit in the tree even though scheduling
// itself is delegated to an external runtime the core doesn't provide.
type Future struct {
	Resolved bool
	Result   Value
}

func (*Future) Kind() string { return "future" }
func (f *Future) String() string {
	if !f.Resolved {
		return "future(pending)"
	}

	return fmt.Sprintf("future(%s)", f.Result.String())
}

// Closure is a function value: the lambda's parameter names, its body
// (an opaque any to avoid value importing canon — eval type-asserts it
// back to *canon.CLam's body type), and the defining environment
// captured by reference, exactly as the spec's "Function (closure: code
// + captured environment)" requires.
type Closure struct {
	Name    string
	Params  []string
	Body    any
	Scope   any // *envr.Scope at the point of definition
	Frame   any // *envr.Frame at the point of definition
}

func (*Closure) Kind() string  { return "function" }
func (c *Closure) String() string {
	if c.Name != "" {
		return fmt.Sprintf("<fn %s/%d>", c.Name, len(c.Params))
	}

	return fmt.Sprintf("<lambda/%d>", len(c.Params))
}

// EffectTag classifies a Builtin the way the spec's built-in table does:
// pure, io, or nondeterministic, so a sandboxed REPL session can refuse
// to run anything above "pure".
type EffectTag int

const (
	EffectPure EffectTag = iota
	EffectIO
	EffectNondeterministic
)

func (t EffectTag) String() string {
	switch t {
	case EffectIO:
		return "io"
	case EffectNondeterministic:
		return "nondeterministic"
	default:
		return "pure"
	}
}

// Builtin is a native function: name, fixed arity (variadic when
// Arity < 0), effect classification, and the Go implementation.
type Builtin struct {
	Name   string
	Arity  int
	Effect EffectTag
	Fn     func(args []Value) (Value, error)
}

func (*Builtin) Kind() string     { return "builtin" }
func (b *Builtin) String() string { return fmt.Sprintf("<builtin %s>", b.Name) }

// Truthy implements Ruchy's boolean-coercion rule for `if`/`while`
// conditions and `&&`/`||` short-circuiting: only Bool participates;
// every other kind is a type error the inferencer should already have
// caught, so the evaluator treats a non-bool condition as false rather
// than panicking (defense in depth, not a sanctioned code path).
func Truthy(v Value) bool {
	b, ok := v.(Bool)

	return ok && bool(b)
}

// Equal implements Ruchy's `==` for primitive and structural values.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Integer:
		bv, ok := b.(Integer)

		return ok && av == bv
	case Float:
		bv, ok := b.(Float)

		return ok && av == bv
	case Bool:
		bv, ok := b.(Bool)

		return ok && av == bv
	case Char:
		bv, ok := b.(Char)

		return ok && av == bv
	case Str:
		bv, ok := b.(Str)

		return ok && av == bv
	case Unit:
		_, ok := b.(Unit)

		return ok
	case Nil:
		_, ok := b.(Nil)

		return ok
	case *Tuple:
		bv, ok := b.(*Tuple)
		if !ok || len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if !Equal(av.Elems[i], bv.Elems[i]) {
				return false
			}
		}

		return true
	case *List:
		bv, ok := b.(*List)
		if !ok || len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if !Equal(av.Elems[i], bv.Elems[i]) {
				return false
			}
		}

		return true
	default:
		return a.String() == b.String() && a.Kind() == b.Kind()
	}
}
