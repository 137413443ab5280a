package parser

import "github.com/paiml/ruchy-sub009/token"

// Precedence levels, lowest to highest. Kept as an ordinary int scale
// (mirroring the teacher's PLUS_PRIORITY/MUL_PRIORITY style in what was
// parser/parser_precedence.go) but looked up through the opTable below
// instead of a switch, so the binding power of every operator lives in
// one data table.
const (
	precLowest = iota * 10
	precPipeline
	precOr
	precAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precRange
	precShift
	precAdditive
	precMultiplicative
	precUnary
	precPostfix
)

// assoc records associativity for the rare operators that bind
// right-to-left (currently none of the binary operators do; reserved for
// a future `**` exponent operator).
type assoc int

const (
	assocLeft assoc = iota
	assocRight
)

type opInfo struct {
	prec  int
	assoc assoc
	op    string // canonical operator spelling recorded on ast.BinaryOp
}

// opTable is the single source of truth for infix-operator precedence,
// associativity, and canonical spelling. Adding or retuning an operator
// means editing one table entry, never the Pratt loop (spec §4.2: "table
// is data, not code").
var opTable = map[token.Kind]opInfo{
	token.PIPEGT:    {precPipeline, assocLeft, "|>"},
	token.PIPEPIPE:  {precOr, assocLeft, "||"},
	token.AMPAMP:    {precAnd, assocLeft, "&&"},
	token.PIPE:      {precBitOr, assocLeft, "|"},
	token.CARET:     {precBitXor, assocLeft, "^"},
	token.AMP:       {precBitAnd, assocLeft, "&"},
	token.EQEQ:      {precEquality, assocLeft, "=="},
	token.BANGEQ:    {precEquality, assocLeft, "!="},
	token.LT:        {precRelational, assocLeft, "<"},
	token.LTEQ:      {precRelational, assocLeft, "<="},
	token.GT:        {precRelational, assocLeft, ">"},
	token.GTEQ:      {precRelational, assocLeft, ">="},
	token.DOTDOT:    {precRange, assocLeft, ".."},
	token.DOTDOTEQ:  {precRange, assocLeft, "..="},
	token.SHL:       {precShift, assocLeft, "<<"},
	token.SHR:       {precShift, assocLeft, ">>"},
	token.PLUS:      {precAdditive, assocLeft, "+"},
	token.MINUS:     {precAdditive, assocLeft, "-"},
	token.STAR:      {precMultiplicative, assocLeft, "*"},
	token.SLASH:     {precMultiplicative, assocLeft, "/"},
	token.PERCENT:   {precMultiplicative, assocLeft, "%"},
}

// assignOps maps compound-assignment tokens to the operator folded into
// the desugared `x = x OP rhs` form (spec §4.3 operator-to-function-call
// folding happens in canon; the parser only records which operator).
var assignOps = map[token.Kind]string{
	token.PLUSEQ:  "+",
	token.MINUSEQ: "-",
	token.STAREQ:  "*",
	token.SLASHEQ: "/",
	token.SHLEQ:   "<<",
	token.SHREQ:   ">>",
}
