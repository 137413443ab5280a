package ast

import "github.com/paiml/ruchy-sub009/token"

// Declarations are expressions too (spec §3), evaluating to Unit and
// installing a binding as a side effect. These cover the supplemented
// struct/enum/trait/impl surface (SPEC_FULL.md "Supplemented Features").

// StructField is one field of a struct declaration.
type StructField struct {
	Name string
	Type TypeExpr
}

type StructDecl struct {
	base
	Name   string
	Fields []StructField
}

func NewStructDecl(span token.Span, name string, fields []StructField) *StructDecl {
	return &StructDecl{base: newBase(span), Name: name, Fields: fields}
}
func (*StructDecl) exprNode() {}

// EnumVariant is one variant of an enum declaration. A variant may carry
// a positional tuple payload, a record payload, or no payload at all;
// exactly one of Tuple/Record is non-nil, or both are nil/empty.
type EnumVariant struct {
	Name   string
	Tuple  []TypeExpr
	Record []StructField
}

type EnumDecl struct {
	base
	Name     string
	Variants []EnumVariant
}

func NewEnumDecl(span token.Span, name string, variants []EnumVariant) *EnumDecl {
	return &EnumDecl{base: newBase(span), Name: name, Variants: variants}
}
func (*EnumDecl) exprNode() {}

// TraitMethod is one method signature declared by a trait; Default is
// non-nil when the trait supplies a default implementation.
type TraitMethod struct {
	Name    string
	Params  []Param
	RetType TypeExpr
	Default Expr // *Lambda body, or nil
}

type TraitDecl struct {
	base
	Name    string
	Methods []TraitMethod
}

func NewTraitDecl(span token.Span, name string, methods []TraitMethod) *TraitDecl {
	return &TraitDecl{base: newBase(span), Name: name, Methods: methods}
}
func (*TraitDecl) exprNode() {}

// ImplDecl is `impl Trait for Type { ... }` (TraitName == "" for an
// inherent impl block with no trait).
type ImplDecl struct {
	base
	TraitName string
	TypeName  string
	Methods   []*Lambda
}

func NewImplDecl(span token.Span, traitName, typeName string, methods []*Lambda) *ImplDecl {
	return &ImplDecl{base: newBase(span), TraitName: traitName, TypeName: typeName, Methods: methods}
}
func (*ImplDecl) exprNode() {}

// ImportDecl is `import path::to::module as alias`; Alias == "" when the
// module is imported under its own name.
type ImportDecl struct {
	base
	Path  []string
	Alias string
}

func NewImportDecl(span token.Span, path []string, alias string) *ImportDecl {
	return &ImportDecl{base: newBase(span), Path: path, Alias: alias}
}
func (*ImportDecl) exprNode() {}
