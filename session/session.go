// Package session ties every pipeline stage — lexer, parser, canon,
// types, eval — into the single long-lived object a REPL or a `run`/
// `check` CLI invocation drives one input at a time: Session owns the
// session-level Scope (and its parallel type Env) that persists bindings
// across inputs, the replstate.Machine that tracks Ready/Parsing/
// Evaluating/Failed/Closed, and the config/history/snapshot files under
// the AMBIENT STACK. This plays the role the teacher's Repl struct
// (repl/repl.go) plays for go-mix, generalized from "owns banner/prompt
// strings" to "owns the whole multi-stage compiler pipeline plus its
// transactional state," per the redesign note that a Session value
// should replace scattered global REPL state.
package session

import (
	"fmt"
	"sort"
	"strings"

	"github.com/paiml/ruchy-sub009/ast"
	"github.com/paiml/ruchy-sub009/canon"
	"github.com/paiml/ruchy-sub009/diagnostic"
	"github.com/paiml/ruchy-sub009/envr"
	"github.com/paiml/ruchy-sub009/eval"
	"github.com/paiml/ruchy-sub009/lexer"
	"github.com/paiml/ruchy-sub009/parser"
	"github.com/paiml/ruchy-sub009/replstate"
	"github.com/paiml/ruchy-sub009/types"
	"github.com/paiml/ruchy-sub009/value"
)

// Session is the unit of REPL/script state: one Scope, one type
// environment, one Evaluator, all sharing a single config.
type Session struct {
	Config Config

	scope    *envr.Scope
	typeEnv  *types.Env
	evalr    *eval.Evaluator
	machine  *replstate.Machine
	history  []string
}

// New builds a Session from cfg. The builtin table (builtin.Table()
// values) is installed on the evaluator via eval.NewWithBuiltins, and the
// type environment starts from builtinEnv() schemes, so a bare identifier
// like `print` or `length` resolves the same way at both type-check and
// eval time; the session value scope itself starts empty. Depth and
// deadline come from cfg; the heap bound is eval.DefaultLimits'.
func New(cfg Config) *Session {
	limits := eval.DefaultLimits()
	limits.MaxDepth, limits.Deadline = cfg.Limits()
	ev := eval.NewWithBuiltins(limits)

	return &Session{
		Config:  cfg,
		scope:   envr.NewScope(nil),
		typeEnv: builtinEnv(),
		evalr:   ev,
		machine: replstate.NewMachine(),
	}
}

// Result is the outcome of one Eval call: either a value plus its
// inferred type, or a non-empty diagnostic bag (possibly a mix of parse,
// type, and runtime diagnostics — evaluation never runs past a type
// error, but a program can fail after producing some inference
// warnings, kept for the caller to display alongside the error).
type Result struct {
	Value  value.Value
	Type   types.Monotype
	Diags  diagnostic.Bag
}

// Ok reports whether Eval ran to completion without any error-severity
// diagnostic.
func (r Result) Ok() bool { return !r.Diags.HasErrors() }

// Eval runs one complete unit of source (already known to be a syntactically
// complete program, per replstate.IsComplete) through the full pipeline:
// parse -> canonicalize -> infer -> evaluate. On any stage's failure, the
// session's scope is left exactly as it was beforehand — the
// Snapshot/Restore transactional rule spec §4.6 requires for the REPL's
// Failed state.
func (s *Session) Eval(src string) Result {
	s.machine.BeginEval()

	suite, perrs := parser.Parse(src, "")

	var diags diagnostic.Bag
	for _, d := range perrs {
		diags.Add(diagnostic.FromParse(d))
	}
	for _, d := range suite.Diagnostics {
		diags.Add(diagnostic.New(d.Span, diagnostic.Error, "parse.recovered", d.Message))
	}
	if diags.HasErrors() {
		s.machine.Fail()

		return Result{Diags: diags}
	}

	prog := canon.Canonicalize(suite)

	checkpointScope := s.scope.Snapshot()
	checkpointTypes := s.typeEnv

	var lastTy types.Monotype = types.Unit
	for _, e := range prog.Exprs {
		_, ty, terrs := types.Infer(s.typeEnv, e)
		for _, te := range terrs {
			diags.Add(diagnostic.FromType(te))
		}
		if len(terrs) > 0 {
			continue
		}
		lastTy = ty
		s.typeEnv = extendTypeEnvForTopLevel(s.typeEnv, e, ty)
	}
	if diags.HasErrors() {
		s.typeEnv = checkpointTypes
		s.machine.Fail()

		return Result{Diags: diags}
	}

	v, rerr := s.evalr.EvalProgram(s.scope, prog)
	if rerr != nil {
		s.scope.Restore(checkpointScope)
		s.typeEnv = checkpointTypes
		diags.Add(diagnostic.FromRuntime(rerr))
		s.machine.Fail()

		return Result{Diags: diags}
	}

	s.machine.Succeed()
	s.history = append(s.history, src)

	return Result{Value: v, Type: lastTy, Diags: diags}
}

// extendTypeEnvForTopLevel mirrors evalTopLevel's persistence rule on the
// type side: a bare top-level `let`/`fn` must add its name to the shared
// type Env for a later top-level input to see it, the same structural gap
// between canon's per-input De Bruijn frames and the session's
// cross-input Scope that eval.evalTopLevel documents and works around.
func extendTypeEnvForTopLevel(env *types.Env, e canon.CExpr, exprTy types.Monotype) *types.Env {
	switch n := e.(type) {
	case canon.CLet:
		if _, isNil := n.Body.(canon.CNil); isNil {
			sub, valTy, _ := types.Infer(env, n.Value)

			return env.Extend(n.Name, types.Generalize(env, sub.Apply(valTy)))
		}
	case canon.CLam:
		if n.Name != "" {
			return env.Extend(n.Name, types.Generalize(env, exprTy))
		}
	}

	return env
}

// Machine exposes the REPL state machine so a driver (cmd/ruchy) can
// drive multiline accumulation before calling Eval.
func (s *Session) Machine() *replstate.Machine { return s.machine }

// Recover transitions a Failed session back to Ready, per spec (the
// rollback itself already happened inside Eval).
func (s *Session) Recover() { s.machine.Recover() }

// Scope exposes the session's live bindings for `:env`/`:bindings`.
func (s *Session) Scope() *envr.Scope { return s.scope }

// Bindings lists every name currently bound at the top level, sorted.
func (s *Session) Bindings() []string {
	names := s.scope.Names()
	sort.Strings(names)

	return names
}

// Reset discards every session binding (value and type), matching the
// REPL's `:reset` command.
func (s *Session) Reset() {
	s.scope = envr.NewScope(nil)
	s.typeEnv = builtinEnv()
}

// History returns every input evaluated successfully so far, oldest
// first.
func (s *Session) History() []string { return s.history }

// SeedHistory prepends entries loaded from a prior session's history
// file (LoadHistory) so `:history` shows continuity across restarts.
func (s *Session) SeedHistory(prior []string) {
	s.history = append(append([]string{}, prior...), s.history...)
}

// TypeOf type-checks src without evaluating it, for the `:type` REPL
// command and the `check` CLI subcommand.
func (s *Session) TypeOf(src string) (types.Monotype, diagnostic.Bag) {
	var diags diagnostic.Bag
	suite, perrs := parser.Parse(src, "")
	for _, d := range perrs {
		diags.Add(diagnostic.FromParse(d))
	}
	if diags.HasErrors() {
		return nil, diags
	}

	prog := canon.Canonicalize(suite)
	var ty types.Monotype = types.Unit
	scratch := s.typeEnv
	for _, e := range prog.Exprs {
		_, t, terrs := types.Infer(scratch, e)
		for _, te := range terrs {
			diags.Add(diagnostic.FromType(te))
		}
		ty = t
		scratch = extendTypeEnvForTopLevel(scratch, e, t)
	}

	return ty, diags
}

// AST renders src's parsed (pre-canonicalization) tree for the `:ast`
// REPL command and `parse` CLI subcommand.
func (s *Session) AST(src string) (*ast.Suite, diagnostic.Bag) {
	var diags diagnostic.Bag
	suite, perrs := parser.Parse(src, "")
	for _, d := range perrs {
		diags.Add(diagnostic.FromParse(d))
	}

	return suite, diags
}

// DumpAST renders a parsed suite as Go's own recursive struct
// representation — the spec's `:ast`/`parse --format ast` output is a
// debug view, not a stable wire format (that's what canon's provenance
// hash and the Diagnostic JSON shape are for), so reusing fmt's `%+v`
// here follows the same "don't hand-roll a pretty-printer for a debug
// path" restraint the teacher's own error values show by implementing
// Error() and leaving everything else to fmt.
func DumpAST(suite *ast.Suite) string {
	return fmt.Sprintf("%+v", suite)
}

// Canonical renders src's canonical tree plus its provenance hash for the
// `:canonical` REPL command.
func (s *Session) Canonical(src string) (*canon.Program, diagnostic.Bag) {
	var diags diagnostic.Bag
	suite, perrs := parser.Parse(src, "")
	for _, d := range perrs {
		diags.Add(diagnostic.FromParse(d))
	}
	if diags.HasErrors() {
		return nil, diags
	}

	return canon.Canonicalize(suite), diags
}

// LexErrors runs only the lexer over src, for diagnostics that want to
// report a tokenization failure before a parse is even attempted (the
// `lex` output mode the spec's CLI JSON format supports).
func LexErrors(src string) []diagnostic.Diagnostic {
	_, errs := lexer.TokenizeAll(src, "")
	out := make([]diagnostic.Diagnostic, len(errs))
	for i, e := range errs {
		out[i] = diagnostic.FromLex(e)
	}

	return out
}

// DescribeBuiltins lists every installed builtin name, sorted, for
// `:help`.
func DescribeBuiltins(names []string) string {
	sort.Strings(names)

	return strings.Join(names, ", ")
}
