package ast

import "github.com/paiml/ruchy-sub009/token"

// Literal kinds (spec §3: literal, identifier, binary op, ...).

type IntLit struct {
	base
	Value int64
}

func NewIntLit(span token.Span, v int64) *IntLit { return &IntLit{base: newBase(span), Value: v} }
func (*IntLit) exprNode()                        {}

type FloatLit struct {
	base
	Value float64
}

func NewFloatLit(span token.Span, v float64) *FloatLit {
	return &FloatLit{base: newBase(span), Value: v}
}
func (*FloatLit) exprNode() {}

type BoolLit struct {
	base
	Value bool
}

func NewBoolLit(span token.Span, v bool) *BoolLit { return &BoolLit{base: newBase(span), Value: v} }
func (*BoolLit) exprNode()                        {}

type CharLit struct {
	base
	Value rune
}

func NewCharLit(span token.Span, v rune) *CharLit { return &CharLit{base: newBase(span), Value: v} }
func (*CharLit) exprNode()                        {}

// StringLit is a plain (non-interpolated) string literal.
type StringLit struct {
	base
	Value string
}

func NewStringLit(span token.Span, v string) *StringLit {
	return &StringLit{base: newBase(span), Value: v}
}
func (*StringLit) exprNode() {}

// InterpString desugars f"...{e}..." into an ordered list of fragments:
// each element is either a literal string piece or an embedded Expr.
// Canonicalization further desugars this into string concatenation calls
// (spec §4.3).
type InterpString struct {
	base
	Fragments []InterpFragment
}

type InterpFragment struct {
	Literal string // valid when Expr == nil
	Expr    Expr   // valid when non-nil
}

func NewInterpString(span token.Span, frags []InterpFragment) *InterpString {
	return &InterpString{base: newBase(span), Fragments: frags}
}
func (*InterpString) exprNode() {}

// NilLit is the `nil` literal.
type NilLit struct{ base }

func NewNilLit(span token.Span) *NilLit { return &NilLit{base: newBase(span)} }
func (*NilLit) exprNode()               {}

// Ident is an identifier reference.
type Ident struct {
	base
	Name string
}

func NewIdent(span token.Span, name string) *Ident { return &Ident{base: newBase(span), Name: name} }
func (*Ident) exprNode()                            {}

// BinaryOp is any infix operator application; the set of operators and
// their precedence/associativity live in the parser's data-driven table
// (spec §4.2), not here — the AST only records which operator fired.
type BinaryOp struct {
	base
	Op          string
	Left, Right Expr
}

func NewBinaryOp(span token.Span, op string, l, r Expr) *BinaryOp {
	return &BinaryOp{base: newBase(span), Op: op, Left: l, Right: r}
}
func (*BinaryOp) exprNode() {}

type UnaryOp struct {
	base
	Op      string
	Operand Expr
}

func NewUnaryOp(span token.Span, op string, e Expr) *UnaryOp {
	return &UnaryOp{base: newBase(span), Op: op, Operand: e}
}
func (*UnaryOp) exprNode() {}

// Call is a function/closure application.
type Call struct {
	base
	Callee Expr
	Args   []Expr
}

func NewCall(span token.Span, callee Expr, args []Expr) *Call {
	return &Call{base: newBase(span), Callee: callee, Args: args}
}
func (*Call) exprNode() {}

// FieldAccess is `obj.field`.
type FieldAccess struct {
	base
	Object Expr
	Field  string
}

func NewFieldAccess(span token.Span, obj Expr, field string) *FieldAccess {
	return &FieldAccess{base: newBase(span), Object: obj, Field: field}
}
func (*FieldAccess) exprNode() {}

// Index is `obj[idx]`.
type Index struct {
	base
	Object, Index Expr
}

func NewIndex(span token.Span, obj, idx Expr) *Index {
	return &Index{base: newBase(span), Object: obj, Index: idx}
}
func (*Index) exprNode() {}

// If is an if/else-if/else chain. Else is nil for a valueless if.
type If struct {
	base
	Cond       Expr
	Then, Else Expr
}

func NewIf(span token.Span, cond, then, els Expr) *If {
	return &If{base: newBase(span), Cond: cond, Then: then, Else: els}
}
func (*If) exprNode() {}

// MatchArm is one arm of a match expression: one or more or-alternative
// patterns, an optional guard, and a body.
type MatchArm struct {
	Patterns []Pattern
	Guard    Expr // nil if absent
	Body     Expr
}

type Match struct {
	base
	Scrutinee Expr
	Arms      []MatchArm
}

func NewMatch(span token.Span, scrutinee Expr, arms []MatchArm) *Match {
	return &Match{base: newBase(span), Scrutinee: scrutinee, Arms: arms}
}
func (*Match) exprNode() {}

// Block is `{ expr; expr; ...; tail }`. Trailing semicolons discard value;
// ImplicitUnit is true when the block has no tail expression (the last
// statement ended in `;`, or the block is empty).
type Block struct {
	base
	Stmts        []Expr
	ImplicitUnit bool
}

func NewBlock(span token.Span, stmts []Expr, implicitUnit bool) *Block {
	return &Block{base: newBase(span), Stmts: stmts, ImplicitUnit: implicitUnit}
}
func (*Block) exprNode() {}

// LetIn is `let pat = value in body` (spec §3: `let-in`). A bare `let pat
// = value` statement inside a block parses as LetIn with Body == nil and
// is desugared by the canonicalizer into a nested-let continuation using
// the remaining statements of its enclosing block.
type LetIn struct {
	base
	Pattern  Pattern
	TypeAnn  TypeExpr // nil if omitted
	Value    Expr
	Body     Expr // nil when used as a block-level statement
	Rec      bool // `let rec` recursive binding
	Mutable  bool // `let mut`/`var` vs `let`/`const`
}

func NewLetIn(span token.Span, pat Pattern, typeAnn TypeExpr, value, body Expr, rec, mutable bool) *LetIn {
	return &LetIn{base: newBase(span), Pattern: pat, TypeAnn: typeAnn, Value: value, Body: body, Rec: rec, Mutable: mutable}
}
func (*LetIn) exprNode() {}

// Lambda is `|params| body`, optionally with explicit parameter/return
// type annotations.
type Param struct {
	Name string
	Type TypeExpr // nil if omitted
}

type Lambda struct {
	base
	Params  []Param
	RetType TypeExpr // nil if omitted
	Body    Expr
	Name    string // non-empty for `fn name(...)` declarations
}

func NewLambda(span token.Span, name string, params []Param, ret TypeExpr, body Expr) *Lambda {
	return &Lambda{base: newBase(span), Name: name, Params: params, RetType: ret, Body: body}
}
func (*Lambda) exprNode() {}

// LoopKind distinguishes while/for/loop forms, which the canonicalizer
// carries into a single core CLoop node that keeps the kind (spec §4.3).
type LoopKind int

const (
	LoopWhile LoopKind = iota
	LoopFor
	LoopBare
)

type Loop struct {
	base
	Kind LoopKind
	Cond Expr     // while: condition; for: nil (Pat/Iter used instead)
	Pat  Pattern  // for: loop variable pattern
	Iter Expr     // for: iterable expression
	Body Expr
}

func NewLoop(span token.Span, kind LoopKind, cond Expr, pat Pattern, iter Expr, body Expr) *Loop {
	return &Loop{base: newBase(span), Kind: kind, Cond: cond, Pat: pat, Iter: iter, Body: body}
}
func (*Loop) exprNode() {}

type Break struct {
	base
	Value Expr // nil if bare `break`
}

func NewBreak(span token.Span, v Expr) *Break { return &Break{base: newBase(span), Value: v} }
func (*Break) exprNode()                       {}

type Continue struct{ base }

func NewContinue(span token.Span) *Continue { return &Continue{base: newBase(span)} }
func (*Continue) exprNode()                 {}

type Return struct {
	base
	Value Expr // nil if bare `return`
}

func NewReturn(span token.Span, v Expr) *Return { return &Return{base: newBase(span), Value: v} }
func (*Return) exprNode()                        {}

// Try is the `?`-operator: TryExpr evaluates Inner, short-circuiting an
// enclosing function with the error variant on failure.
type Try struct {
	base
	Inner Expr
}

func NewTry(span token.Span, inner Expr) *Try { return &Try{base: newBase(span), Inner: inner} }
func (*Try) exprNode()                        {}

// Async/Await (spec §5: core defines the shape; scheduling is external).
type Async struct {
	base
	Body Expr
}

func NewAsync(span token.Span, body Expr) *Async { return &Async{base: newBase(span), Body: body} }
func (*Async) exprNode()                         {}

type Await struct {
	base
	Inner Expr
}

func NewAwait(span token.Span, inner Expr) *Await { return &Await{base: newBase(span), Inner: inner} }
func (*Await) exprNode()                           {}

// Note: `x |> f(args)` (spec §4.5) is folded directly into a Call node
// by the parser — `x` is spliced in as f's first argument, or substituted
// for a bare `_` placeholder — so there is no separate Pipeline AST node;
// the pipeline operator never survives past parsing.

// Collection literals.

type ListLit struct {
	base
	Elems []Expr
}

func NewListLit(span token.Span, elems []Expr) *ListLit { return &ListLit{base: newBase(span), Elems: elems} }
func (*ListLit) exprNode()                               {}

type TupleLit struct {
	base
	Elems []Expr
}

func NewTupleLit(span token.Span, elems []Expr) *TupleLit {
	return &TupleLit{base: newBase(span), Elems: elems}
}
func (*TupleLit) exprNode() {}

type SetLit struct {
	base
	Elems []Expr
}

func NewSetLit(span token.Span, elems []Expr) *SetLit { return &SetLit{base: newBase(span), Elems: elems} }
func (*SetLit) exprNode()                              {}

type MapEntry struct{ Key, Value Expr }

type MapLit struct {
	base
	Entries []MapEntry
}

func NewMapLit(span token.Span, entries []MapEntry) *MapLit {
	return &MapLit{base: newBase(span), Entries: entries}
}
func (*MapLit) exprNode() {}

// RangeLit is `a..b` (exclusive) or `a..=b` (inclusive).
type RangeLit struct {
	base
	Start, End Expr
	Inclusive  bool
}

func NewRangeLit(span token.Span, start, end Expr, inclusive bool) *RangeLit {
	return &RangeLit{base: newBase(span), Start: start, End: end, Inclusive: inclusive}
}
func (*RangeLit) exprNode() {}

// StructLit is `Name { field: value, ... }`.
type StructFieldInit struct {
	Name  string
	Value Expr
}

type StructLit struct {
	base
	Name   string
	Fields []StructFieldInit
}

func NewStructLit(span token.Span, name string, fields []StructFieldInit) *StructLit {
	return &StructLit{base: newBase(span), Name: name, Fields: fields}
}
func (*StructLit) exprNode() {}
