package ast

import "github.com/paiml/ruchy-sub009/token"

// TypeExpr is a syntactic type annotation as written by the programmer —
// distinct from the inferencer's internal Monotype/Polytype representation
// (package types), which these are elaborated into (spec §3, §4.4).
type TypeExpr interface {
	Node
	typeExprNode()
}

// NamedType is a type constructor reference with optional type arguments,
// e.g. `int`, `List<int>`, `Map<string, int>`.
type NamedType struct {
	base
	Name string
	Args []TypeExpr
}

func NewNamedType(span token.Span, name string, args []TypeExpr) *NamedType {
	return &NamedType{base: newBase(span), Name: name, Args: args}
}
func (*NamedType) typeExprNode() {}

// TypeVar is a lowercase type variable written in source, e.g. `'a`.
type TypeVar struct {
	base
	Name string
}

func NewTypeVar(span token.Span, name string) *TypeVar {
	return &TypeVar{base: newBase(span), Name: name}
}
func (*TypeVar) typeExprNode() {}

// FuncType is `fn(T1, T2) -> R`.
type FuncType struct {
	base
	Params []TypeExpr
	Ret    TypeExpr
}

func NewFuncType(span token.Span, params []TypeExpr, ret TypeExpr) *FuncType {
	return &FuncType{base: newBase(span), Params: params, Ret: ret}
}
func (*FuncType) typeExprNode() {}

// TupleType is `(T1, T2, ...)`.
type TupleType struct {
	base
	Elems []TypeExpr
}

func NewTupleType(span token.Span, elems []TypeExpr) *TupleType {
	return &TupleType{base: newBase(span), Elems: elems}
}
func (*TupleType) typeExprNode() {}

// RecordTypeField is one `name: Type` entry of a record type annotation.
type RecordTypeField struct {
	Name string
	Type TypeExpr
}

// RecordType is `{ name: Type, ... | rho }`, where Row is the trailing
// row-variable name used for row-polymorphic record inference (spec
// §4.4); Row == "" when the record type is closed.
type RecordType struct {
	base
	Fields []RecordTypeField
	Row    string
}

func NewRecordType(span token.Span, fields []RecordTypeField, row string) *RecordType {
	return &RecordType{base: newBase(span), Fields: fields, Row: row}
}
func (*RecordType) typeExprNode() {}
