// Package parser implements a recursive-descent parser with Pratt
// (operator-precedence) expression parsing for Ruchy source text. It
// converts a token.Stream into a *ast.Suite.
//
// The teacher's Pratt parser (formerly parser/parser.go) wired one
// prefix/infix parse function per token kind into hand-built Go maps.
// This parser keeps that dispatch shape but drives it from a single data
// table of precedence/associativity (precedence.go), so retuning an
// operator's binding power never touches the parse loop itself.
//
// The parser never panics on malformed input and never silently drops
// tokens: on a syntax error it records a diagnostic, synthesizes an
// ast.Error node spanning the tokens it skipped, and resynchronizes at
// the next statement boundary (panic-mode recovery) or at an expected
// closing delimiter (phrase-level recovery) — the teacher's "collect
// errors instead of panicking" philosophy, generalized to never lose a
// token.
package parser

import (
	"fmt"

	"github.com/paiml/ruchy-sub009/ast"
	"github.com/paiml/ruchy-sub009/lexer"
	"github.com/paiml/ruchy-sub009/token"
)

// Diagnostic is a parse-time error recorded in Parser.Errors.
type Diagnostic struct {
	Span    token.Span
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Span, d.Message)
}

// Parser holds all state needed to turn a token stream into an AST. It
// carries no Env/Consts/LetTypes side tables the way the teacher's did —
// name resolution and constant-ness belong to the canonicalizer and type
// inferencer, not the parser (spec §3: the parser's only job is shape).
type Parser struct {
	stream *token.Stream
	cur    token.Token

	Errors []Diagnostic
}

// New builds a Parser reading from src. file is used only for diagnostic
// spans.
func New(src, file string) *Parser {
	l := lexer.New(src, file)
	p := &Parser{stream: token.NewStream(l)}
	p.cur = p.stream.Advance()

	return p
}

// NewFromStream builds a Parser over an already-constructed token
// stream, letting a REPL reuse one lexer/stream across continuation
// lines.
func NewFromStream(s *token.Stream) *Parser {
	p := &Parser{stream: s}
	p.cur = p.stream.Advance()

	return p
}

func (p *Parser) peek() token.Token  { return p.cur }
func (p *Parser) peek1() token.Token { return p.stream.Peek(0) }

func (p *Parser) advance() token.Token {
	t := p.cur
	p.cur = p.stream.Advance()

	return t
}

func (p *Parser) at(k token.Kind) bool { return p.cur.Kind == k }

func (p *Parser) accept(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}

	return token.Token{}, false
}

// expect consumes the current token if it matches k, otherwise records a
// diagnostic and leaves the stream position unchanged so the caller can
// decide how to recover.
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}

	p.errorf(p.cur.Span, "expected %s, found %s %q", k, p.cur.Kind, p.cur.Literal)

	return token.Token{}, false
}

func (p *Parser) errorf(span token.Span, format string, args ...any) {
	p.Errors = append(p.Errors, Diagnostic{Span: span, Message: fmt.Sprintf(format, args...)})
}

// recover implements panic-mode recovery: skip tokens up to (but not
// including) the next statement boundary — SEMI, RBRACE, or EOF — and
// return a synthetic ast.Error node covering what was skipped, so no
// token is ever silently dropped (spec §3 invariant).
func (p *Parser) recover(start token.Span, message string) *ast.Error {
	var skipped []token.Token
	for !p.at(token.SEMI) && !p.at(token.RBRACE) && !p.at(token.EOF) {
		skipped = append(skipped, p.advance())
	}

	end := start
	if len(skipped) > 0 {
		end = token.Span{Start: start.Start, End: skipped[len(skipped)-1].Span.End}
	}
	p.errorf(end, "%s", message)

	return ast.NewError(end, message, skipped)
}

// Parse runs the full program grammar over src and returns the resulting
// suite along with any diagnostics.
func Parse(src, file string) (*ast.Suite, []Diagnostic) {
	p := New(src, file)

	return p.ParseSuite(), p.Errors
}

// ParseSuite parses the entire remaining token stream as a program: a
// sequence of top-level expressions/declarations separated by `;`, up to
// EOF.
func (p *Parser) ParseSuite() *ast.Suite {
	start := p.cur.Span
	var exprs []ast.Expr

	for !p.at(token.EOF) {
		e := p.parseTopLevel()
		if e != nil {
			exprs = append(exprs, e)
		}

		for p.at(token.SEMI) {
			p.advance()
		}
	}

	end := start
	if len(exprs) > 0 {
		end = exprs[len(exprs)-1].Span()
	}

	return ast.NewSuite(token.Span{Start: start.Start, End: end.End}, exprs)
}

// parseTopLevel parses one top-level item: a declaration or an
// expression statement.
func (p *Parser) parseTopLevel() ast.Expr {
	switch p.cur.Kind {
	case token.STRUCT:
		return p.parseStructDecl()
	case token.ENUM:
		return p.parseEnumDecl()
	case token.TRAIT:
		return p.parseTraitDecl()
	case token.IMPL:
		return p.parseImplDecl()
	case token.IMPORT:
		return p.parseImportDecl()
	case token.FN:
		return p.parseFnDecl()
	default:
		return p.parseExpr(precLowest)
	}
}
