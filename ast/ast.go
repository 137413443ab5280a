// Package ast defines Ruchy's surface abstract syntax tree: a tagged
// recursive structure of expression, pattern, type-expression, and
// declaration nodes (spec §3). Every node carries a span and a stable
// identity (NodeID), and the tree is a closed set of Go types switched
// over directly by the parser/canonicalizer/inferencer/evaluator — the
// "fixed set of expression variants with a single entry point" design
// note recommends, replacing the teacher's NodeVisitor mega-interface
// (parser/node.go) with ordinary type switches, Go's idiomatic dispatch.
package ast

import (
	"sync/atomic"

	"github.com/paiml/ruchy-sub009/token"
)

// NodeID is a process-wide unique node identity, assigned at construction.
// No pass in this module keys anything on it: the evaluator's per-match
// decision cache hangs off canon.CMatch.Cache instead.
type NodeID uint64

var nextID atomic.Uint64

// NewID mints a fresh NodeID. Exported so parser recovery helpers and
// synthetic-node construction elsewhere in the module can tag nodes they
// build outside the normal parse path.
func NewID() NodeID {
	return NodeID(nextID.Add(1))
}

// Node is implemented by every AST node: expressions, patterns, type
// expressions, and declarations alike.
type Node interface {
	ID() NodeID
	Span() token.Span
}

// base is embedded by every concrete node to provide ID()/Span() without
// per-node boilerplate.
type base struct {
	id      NodeID
	spanVal token.Span
}

func newBase(span token.Span) base {
	return base{id: NewID(), spanVal: span}
}

func (b base) ID() NodeID      { return b.id }
func (b base) Span() token.Span { return b.spanVal }

// Expr is any expression node. Declarations are expressions too (spec §3:
// "declarations are expressions in a block", evaluating to Unit).
type Expr interface {
	Node
	exprNode()
}

// Suite is the root of a parsed program (REPL input, file, or one-liner).
type Suite struct {
	base
	Exprs       []Expr
	Diagnostics []Diagnostic // parse-time diagnostics attached for convenience
}

func NewSuite(span token.Span, exprs []Expr) *Suite {
	return &Suite{base: newBase(span), Exprs: exprs}
}

func (*Suite) exprNode() {}

// Diagnostic is a lightweight parse-time note attached to the Suite; the
// full wire-format Diagnostic type lives in package diagnostic and is
// constructed from these plus later-stage errors.
type Diagnostic struct {
	Span    token.Span
	Kind    string
	Message string
}

// Error is a synthetic node the parser emits instead of dropping tokens on
// malformed input (spec §3 invariant: "parser never silently drops
// tokens... emits a synthetic Error node covering the offending span").
type Error struct {
	base
	Message string
	Skipped []token.Token
}

func NewError(span token.Span, message string, skipped []token.Token) *Error {
	return &Error{base: newBase(span), Message: message, Skipped: skipped}
}

func (*Error) exprNode() {}
