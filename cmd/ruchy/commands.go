package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/paiml/ruchy-sub009/diagnostic"
	"github.com/paiml/ruchy-sub009/session"
	"github.com/paiml/ruchy-sub009/value"
)

func cmdParse(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	src, _, err := readInput(args, stdin)
	if err != nil {
		errColor.Fprintf(stderr, "[FILE ERROR] %v\n", err)

		return exitUserError
	}

	s := newSession()
	suite, diags := s.AST(src)
	if diags.HasErrors() {
		printDiagBag(diags, src, stderr)

		return exitParse
	}

	fmt.Fprintln(stdout, session.DumpAST(suite))

	return exitOK
}

// cmdTranspile emits the canonicalized form plus its provenance hash.
// Spec scopes this module to the core pipeline (lexer through tree-walking
// eval) and explicitly excludes native code generation from its
// Non-goals, so there is no lower-level target language for this build to
// lower into; the canonical tree is the lowest representation it
// produces, and is what this subcommand transpiles to.
func cmdTranspile(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	src, _, err := readInput(args, stdin)
	if err != nil {
		errColor.Fprintf(stderr, "[FILE ERROR] %v\n", err)

		return exitUserError
	}

	s := newSession()
	prog, diags := s.Canonical(src)
	if diags.HasErrors() {
		printDiagBag(diags, src, stderr)

		return exitParse
	}

	fmt.Fprintf(stdout, "// provenance %x\n", prog.Hash)
	for _, e := range prog.Exprs {
		fmt.Fprintf(stdout, "%#v\n", e)
	}

	return exitOK
}

func cmdRun(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	src, _, err := readInput(args, stdin)
	if err != nil {
		errColor.Fprintf(stderr, "[FILE ERROR] %v\n", err)

		return exitUserError
	}

	s := newSession()
	res := s.Eval(src)
	if !res.Ok() {
		printDiagBag(res.Diags, src, stderr)

		return severityExitCode(res.Diags)
	}
	if _, isUnit := res.Value.(value.Unit); !isUnit && res.Value != nil {
		fmt.Fprintln(stdout, res.Value.String())
	}

	return exitOK
}

func cmdCheck(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	src, _, err := readInput(args, stdin)
	if err != nil {
		errColor.Fprintf(stderr, "[FILE ERROR] %v\n", err)

		return exitUserError
	}

	s := newSession()
	ty, diags := s.TypeOf(src)
	if diags.HasErrors() {
		printDiagBag(diags, src, stderr)

		return severityExitCode(diags)
	}
	okColor.Fprintf(stdout, "%s\n", ty)

	return exitOK
}

// cmdEval evaluates a one-liner string given directly on the command
// line (spec: "reads a source string, parses as a program, evaluates,
// prints the final expression value (unless Unit), and exits").
func cmdEval(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		errColor.Fprintf(stderr, "[USAGE ERROR] eval requires a source string argument\n")

		return exitUsage
	}
	src := args[0]

	s := newSession()
	res := s.Eval(src)
	if !res.Ok() {
		printDiagBag(res.Diags, src, stderr)

		return severityExitCode(res.Diags)
	}
	if _, isUnit := res.Value.(value.Unit); !isUnit && res.Value != nil {
		fmt.Fprintln(stdout, res.Value.String())
	}

	return exitOK
}

// cmdFmt re-emits src unchanged after confirming it parses cleanly.
// Spec lists `fmt` as "format; delegated" — a real pretty-printer back
// into Ruchy surface syntax is a separate concern from this module's
// parse/infer/evaluate pipeline (no unparser exists anywhere in the
// pack this was built from), so this subcommand delegates to the
// identity transform and simply validates the input first, the way a
// formatter's fast-path no-op case behaves on already-formatted input.
func cmdFmt(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	src, _, err := readInput(args, stdin)
	if err != nil {
		errColor.Fprintf(stderr, "[FILE ERROR] %v\n", err)

		return exitUserError
	}

	s := newSession()
	_, diags := s.AST(src)
	if diags.HasErrors() {
		printDiagBag(diags, src, stderr)

		return exitParse
	}

	fmt.Fprint(stdout, src)

	return exitOK
}

func newSession() *session.Session {
	cfg, err := session.LoadConfig(".")
	if err != nil {
		cfg = session.DefaultConfig()
	}

	return session.New(cfg)
}

func printDiagBag(diags diagnostic.Bag, src string, w io.Writer) {
	for _, d := range diags.Items {
		errColor.Fprintln(w, d.Pretty(src))
	}
}

// severityExitCode distinguishes a type/runtime error (exit 1) from a
// parse error (exit 2), matching spec §6's exit-code table: any
// "parse.*"/"lex.*" coded diagnostic in the bag means the input never
// reached evaluation.
func severityExitCode(diags diagnostic.Bag) int {
	for _, d := range diags.Items {
		if isParseCode(d.Code) {
			return exitParse
		}
	}

	return exitUserError
}

func isParseCode(code string) bool {
	return strings.HasPrefix(code, "parse.") || strings.HasPrefix(code, "lex.")
}
