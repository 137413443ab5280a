package canon

import (
	"github.com/paiml/ruchy-sub009/ast"
	"github.com/paiml/ruchy-sub009/token"
)

// CExpr is any node in the canonical tree. The set is intentionally
// smaller than the surface ast.Expr set: while/for/loop collapse to CLoop,
// compound assignment collapses to CLet over a CBinary, and string
// interpolation collapses to one variadic CApp of the `concat` CFree,
// whose arguments are CString fragments and `to_string` calls on the
// holes (spec §4.3's desugaring rules).
//
// Every variant carries the span of the ast.Expr it was lowered from
// (spec §3: "spans must survive canonicalization and any other tree
// transformation"), via the embedded cbase, so a type or runtime
// diagnostic raised against a canonical node can still point at real
// source text instead of the zero span.
type CExpr interface {
	cexprNode()
	Span() token.Span
}

// cbase is embedded by every CExpr variant to carry its source span
// without per-node boilerplate, mirroring ast.base's ID()/Span() pattern.
type cbase struct {
	span token.Span
}

func (b cbase) Span() token.Span { return b.span }

func spanOf(span token.Span) cbase { return cbase{span: span} }

type CInt struct {
	cbase
	Value int64
}
type CFloat struct {
	cbase
	Value float64
}
type CBool struct {
	cbase
	Value bool
}
type CChar struct {
	cbase
	Value rune
}
type CString struct {
	cbase
	Value string
}
type CNil struct{ cbase }

func (CInt) cexprNode()    {}
func (CFloat) cexprNode()  {}
func (CBool) cexprNode()   {}
func (CChar) cexprNode()   {}
func (CString) cexprNode() {}
func (CNil) cexprNode()    {}

// CVar is a reference to a name bound by an enclosing CLam/CLet/CMatch
// frame, resolved to its De Bruijn coordinates at canonicalization time.
type CVar struct {
	cbase
	Depth int
	Index int
	Name  string // retained for diagnostics only; not used for resolution
}

func (CVar) cexprNode() {}

// CFree is a name that did not resolve to any enclosing binding —
// a global, a builtin, or (if nothing defines it) an unbound-identifier
// error surfaced later by the type inferencer.
type CFree struct {
	cbase
	Name string
}

func (CFree) cexprNode() {}

type CApp struct {
	cbase
	Func CExpr
	Args []CExpr
}

func (CApp) cexprNode() {}

// CLam introduces one binding frame containing Params, in order.
type CLam struct {
	cbase
	Name   string // non-empty for a named (fn-declared) lambda
	Params []string
	Body   CExpr
}

func (CLam) cexprNode() {}

// CLet introduces a single-name binding frame: `let name = value in body`.
// Multi-name pattern lets are lowered to CLetPattern.
type CLet struct {
	cbase
	Name    string
	Value   CExpr
	Body    CExpr
	Rec     bool
	Mutable bool
}

func (CLet) cexprNode() {}

// CLetPattern handles a pattern binding multiple names at once (tuple,
// list, struct, or-pattern bound identically on every arm). Names is the
// binding frame introduced for Body, in the deterministic order produced
// by ast pattern traversal.
type CLetPattern struct {
	cbase
	Pattern ast.Pattern
	Names   []string
	Value   CExpr
	Body    CExpr
	Mutable bool
}

func (CLetPattern) cexprNode() {}

type CIf struct {
	cbase
	Cond, Then, Else CExpr
}

func (CIf) cexprNode() {}

// CMatchArm binds Names (collected from Pattern in deterministic order)
// as a single frame visible to Guard and Body.
type CMatchArm struct {
	Patterns []ast.Pattern
	Names    []string
	Guard    CExpr
	Body     CExpr
}

type CMatch struct {
	cbase
	Scrutinee CExpr
	Arms      []CMatchArm
	Cache     *MatchCache
}

func (CMatch) cexprNode() {}

// MatchCache is a compilation slot the evaluator attaches a decision table
// to on first evaluation, so later evaluations of the same match reuse it
// instead of re-examining the arm list. Canonicalize allocates one per
// CMatch node and never populates or reads Data — every CMatch value
// copied from the same node (by value, through the CExpr interface) keeps
// the same Cache pointer, which is what makes the cache keyed by node
// identity rather than by value.
type MatchCache struct {
	Data any
}

// CBlock is a flattened sequence with no internal let-continuation —
// every LetIn found mid-block has already been folded into a CLet/
// CLetPattern wrapping the remaining statements as Body. A CBlock
// therefore contains only non-binding statements followed by an optional
// tail value; ImplicitUnit mirrors ast.Block.
type CBlock struct {
	cbase
	Stmts        []CExpr
	ImplicitUnit bool
}

func (CBlock) cexprNode() {}

type LoopKind = ast.LoopKind

const (
	LoopWhile = ast.LoopWhile
	LoopFor   = ast.LoopFor
	LoopBare  = ast.LoopBare
)

// CLoop unifies while/for/loop into a single core form: For loops carry a
// one-name (or pattern) binding frame over Body for the iteration
// variable.
type CLoop struct {
	cbase
	Kind     LoopKind
	Cond     CExpr
	Pat      ast.Pattern
	BindName string // for LoopFor: resolved binder name when Pat is a simple IdentPattern
	Iter     CExpr
	Body     CExpr
}

func (CLoop) cexprNode() {}

type CBreak struct {
	cbase
	Value CExpr
}
type CContinue struct{ cbase }
type CReturn struct {
	cbase
	Value CExpr
}

func (CBreak) cexprNode()    {}
func (CContinue) cexprNode() {}
func (CReturn) cexprNode()   {}

type CTry struct {
	cbase
	Inner CExpr
}
type CAsync struct {
	cbase
	Body CExpr
}
type CAwait struct {
	cbase
	Inner CExpr
}

func (CTry) cexprNode()   {}
func (CAsync) cexprNode() {}
func (CAwait) cexprNode() {}

type CBinary struct {
	cbase
	Op          string
	Left, Right CExpr
}

type CUnary struct {
	cbase
	Op      string
	Operand CExpr
}

func (CBinary) cexprNode() {}
func (CUnary) cexprNode()  {}

type CFieldAccess struct {
	cbase
	Object CExpr
	Field  string
}

type CIndex struct {
	cbase
	Object, Index CExpr
}

func (CFieldAccess) cexprNode() {}
func (CIndex) cexprNode()       {}

type CListLit struct {
	cbase
	Elems []CExpr
}
type CTupleLit struct {
	cbase
	Elems []CExpr
}
type CSetLit struct {
	cbase
	Elems []CExpr
}

func (CListLit) cexprNode()  {}
func (CTupleLit) cexprNode() {}
func (CSetLit) cexprNode()   {}

type CMapEntry struct{ Key, Value CExpr }
type CMapLit struct {
	cbase
	Entries []CMapEntry
}

func (CMapLit) cexprNode() {}

type CRangeLit struct {
	cbase
	Start, End CExpr
	Inclusive  bool
}

func (CRangeLit) cexprNode() {}

type CStructFieldInit struct {
	Name  string
	Value CExpr
}

type CStructLit struct {
	cbase
	Name   string
	Fields []CStructFieldInit
}

func (CStructLit) cexprNode() {}

// Declarations pass through largely unchanged; their "body" positions
// (trait defaults, impl methods) are independently canonicalized lambdas.
type CStructDecl struct {
	cbase
	Name   string
	Fields []ast.StructField
}

type CEnumDecl struct {
	cbase
	Name     string
	Variants []ast.EnumVariant
}

func (CStructDecl) cexprNode() {}
func (CEnumDecl) cexprNode()   {}

type CTraitMethod struct {
	Name    string
	Params  []ast.Param
	RetType ast.TypeExpr
	Default CExpr
}

type CTraitDecl struct {
	cbase
	Name    string
	Methods []CTraitMethod
}

func (CTraitDecl) cexprNode() {}

type CImplDecl struct {
	cbase
	TraitName string
	TypeName  string
	Methods   []CLam
}

func (CImplDecl) cexprNode() {}

type CImportDecl struct {
	cbase
	Path  []string
	Alias string
}

func (CImportDecl) cexprNode() {}

// CError carries a parse-time ast.Error through canonicalization
// unchanged, so a malformed program still canonicalizes to something the
// evaluator can report instead of dropping it.
type CError struct {
	cbase
	Message string
}

func (CError) cexprNode() {}
