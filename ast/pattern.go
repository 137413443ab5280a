package ast

import "github.com/paiml/ruchy-sub009/token"

// Pattern is any node usable on the left side of a `let`, a match arm, or
// a for-loop binder (spec §3: "patterns: wildcard, literal, identifier,
// tuple, list, struct, enum variant, range, or-pattern, guard, rest,
// as-binding").
type Pattern interface {
	Node
	patternNode()
}

// WildcardPattern is `_`.
type WildcardPattern struct{ base }

func NewWildcardPattern(span token.Span) *WildcardPattern { return &WildcardPattern{base: newBase(span)} }
func (*WildcardPattern) patternNode()                     {}

// LiteralPattern matches a literal value exactly (int/float/bool/char/string/nil).
type LiteralPattern struct {
	base
	Value Expr // one of IntLit, FloatLit, BoolLit, CharLit, StringLit, NilLit
}

func NewLiteralPattern(span token.Span, value Expr) *LiteralPattern {
	return &LiteralPattern{base: newBase(span), Value: value}
}
func (*LiteralPattern) patternNode() {}

// IdentPattern binds the matched value to Name.
type IdentPattern struct {
	base
	Name string
}

func NewIdentPattern(span token.Span, name string) *IdentPattern {
	return &IdentPattern{base: newBase(span), Name: name}
}
func (*IdentPattern) patternNode() {}

// AsPattern binds Name to whatever Inner matches, in addition to Inner's
// own bindings: `pat as name`.
type AsPattern struct {
	base
	Inner Pattern
	Name  string
}

func NewAsPattern(span token.Span, inner Pattern, name string) *AsPattern {
	return &AsPattern{base: newBase(span), Inner: inner, Name: name}
}
func (*AsPattern) patternNode() {}

// RestPattern is `..` inside a list/tuple/struct pattern, optionally
// binding the remainder to Name (`..rest`); Name == "" for a bare `..`.
type RestPattern struct {
	base
	Name string
}

func NewRestPattern(span token.Span, name string) *RestPattern {
	return &RestPattern{base: newBase(span), Name: name}
}
func (*RestPattern) patternNode() {}

// TuplePattern destructures a tuple; at most one element may be a
// RestPattern (spec invariant, checked by parseTuplePattern).
type TuplePattern struct {
	base
	Elems []Pattern
}

func NewTuplePattern(span token.Span, elems []Pattern) *TuplePattern {
	return &TuplePattern{base: newBase(span), Elems: elems}
}
func (*TuplePattern) patternNode() {}

// ListPattern destructures a list, optionally with a single rest element.
type ListPattern struct {
	base
	Elems []Pattern
}

func NewListPattern(span token.Span, elems []Pattern) *ListPattern {
	return &ListPattern{base: newBase(span), Elems: elems}
}
func (*ListPattern) patternNode() {}

// StructFieldPattern is one `name: pattern` entry in a struct pattern;
// Shorthand records whether the source wrote `name` alone (binding a
// variable of the same name) versus `name: pattern`.
type StructFieldPattern struct {
	Name      string
	Pattern   Pattern
	Shorthand bool
}

// StructPattern is `Name { field: pat, ..., .. }`.
type StructPattern struct {
	base
	TypeName string
	Fields   []StructFieldPattern
	HasRest  bool
}

func NewStructPattern(span token.Span, typeName string, fields []StructFieldPattern, hasRest bool) *StructPattern {
	return &StructPattern{base: newBase(span), TypeName: typeName, Fields: fields, HasRest: hasRest}
}
func (*StructPattern) patternNode() {}

// EnumVariantPattern is `Enum::Variant(pat, ...)` or `Enum::Variant` (no
// payload) or `Enum::Variant { field: pat, ... }` for record-style variants.
type EnumVariantPattern struct {
	base
	EnumName   string // "" when inferred from scrutinee type
	VariantName string
	Elems      []Pattern            // tuple-style payload
	Fields     []StructFieldPattern // record-style payload
}

func NewEnumVariantPattern(span token.Span, enumName, variantName string, elems []Pattern, fields []StructFieldPattern) *EnumVariantPattern {
	return &EnumVariantPattern{base: newBase(span), EnumName: enumName, VariantName: variantName, Elems: elems, Fields: fields}
}
func (*EnumVariantPattern) patternNode() {}

// RangePattern matches a value falling within [Low, High] or [Low, High).
type RangePattern struct {
	base
	Low, High Expr
	Inclusive bool
}

func NewRangePattern(span token.Span, low, high Expr, inclusive bool) *RangePattern {
	return &RangePattern{base: newBase(span), Low: low, High: high, Inclusive: inclusive}
}
func (*RangePattern) patternNode() {}

// OrPattern is `pat1 | pat2 | ...`. The parser does not build this node:
// `|` alternatives of a match arm are kept in MatchArm.Patterns instead.
// No pass checks that alternatives bind the same names; canonicalization
// takes the bound names from the first alternative.
type OrPattern struct {
	base
	Alternatives []Pattern
}

func NewOrPattern(span token.Span, alts []Pattern) *OrPattern {
	return &OrPattern{base: newBase(span), Alternatives: alts}
}
func (*OrPattern) patternNode() {}

// GuardPattern attaches a boolean guard expression to an inner pattern.
// Most match arms carry their guard on MatchArm directly; GuardPattern
// exists for the rarer case of a guard nested inside an or-pattern
// alternative or destructuring position.
type GuardPattern struct {
	base
	Inner Pattern
	Cond  Expr
}

func NewGuardPattern(span token.Span, inner Pattern, cond Expr) *GuardPattern {
	return &GuardPattern{base: newBase(span), Inner: inner, Cond: cond}
}
func (*GuardPattern) patternNode() {}
