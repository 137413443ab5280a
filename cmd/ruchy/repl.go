package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/mattn/go-isatty"
	"github.com/paiml/ruchy-sub009/replstate"
	"github.com/paiml/ruchy-sub009/session"
	"github.com/paiml/ruchy-sub009/value"
)

const banner = `
  ____            _
 |  _ \ _   _  ___| |__  _   _
 | |_) | | | |/ __| '_ \| | | |
 |  _ <| |_| | (__| | | | |_| |
 |_| \_\\__,_|\___|_| |_|\__, |
                         |___/
`

// cmdRepl implements the interactive loop, grounded on the teacher's
// repl.Start shape (readline instance, banner print, loop-until-EOF) but
// driven through replstate.Machine for multiline accumulation and
// session.Session for the transactional checkpoint/restore rule instead
// of a single evaluator.Eval call per line.
func cmdRepl(_ []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := session.LoadConfig(".")
	if err != nil {
		cfg = session.DefaultConfig()
	}
	sess := session.New(cfg)

	if hist, herr := session.LoadHistory(cfg.HistoryPath); herr == nil {
		sess.SeedHistory(hist)
	}

	interactive := isatty.IsTerminal(os.Stdin.Fd())
	if interactive {
		printBanner(stdout)
	}

	rl, err := readline.New(prompt(sess))
	if err != nil {
		errColor.Fprintf(stderr, "[REPL ERROR] %v\n", err)

		return exitInternal
	}
	defer rl.Close()

	for {
		rl.SetPrompt(prompt(sess))
		line, rerr := rl.Readline()
		if rerr != nil {
			fmt.Fprintln(stdout, "bye")

			break
		}

		if sess.Machine().State() != replstate.Parsing {
			if handled := handleCommand(sess, strings.TrimSpace(line), stdout, stderr); handled {
				continue
			}
		}

		src, ready := sess.Machine().Submit(line)
		if !ready {
			continue
		}

		rl.SaveHistory(src)
		res := sess.Eval(src)
		if !res.Ok() {
			printDiagBag(res.Diags, src, stderr)
			sess.Recover()

			continue
		}
		if cfg.HistoryPath != "" {
			_ = session.AppendHistory(cfg.HistoryPath, src)
		}
		if _, isUnit := res.Value.(value.Unit); !isUnit && res.Value != nil {
			okColor.Fprintf(stdout, "=> %s : %s\n", res.Value.String(), res.Type)
		}
	}

	return exitOK
}

func prompt(sess *session.Session) string {
	if sess.Machine().State() == replstate.Parsing {
		return "...   "
	}

	return "ruchy> "
}

func printBanner(w io.Writer) {
	infoColor.Fprintln(w, banner)
	fmt.Fprintln(w, "type :help for commands, :quit to exit")
}

// handleCommand dispatches a leading `:` REPL command. It returns false
// when line is not a command, so the caller feeds it to the multiline
// accumulator instead.
func handleCommand(sess *session.Session, line string, stdout, stderr io.Writer) bool {
	if !strings.HasPrefix(line, ":") {
		return false
	}

	fields := strings.SplitN(line, " ", 2)
	cmd := fields[0]
	var rest string
	if len(fields) > 1 {
		rest = strings.TrimSpace(fields[1])
	}

	switch cmd {
	case ":help":
		printHelp(stdout)
	case ":quit", ":exit":
		sess.Machine().Close()
		fmt.Fprintln(stdout, "bye")
		os.Exit(exitOK)
	case ":type":
		ty, diags := sess.TypeOf(rest)
		if diags.HasErrors() {
			printDiagBag(diags, rest, stderr)
		} else {
			fmt.Fprintln(stdout, ty)
		}
	case ":ast":
		suite, diags := sess.AST(rest)
		if diags.HasErrors() {
			printDiagBag(diags, rest, stderr)
		} else {
			fmt.Fprintln(stdout, session.DumpAST(suite))
		}
	case ":canonical":
		prog, diags := sess.Canonical(rest)
		if diags.HasErrors() {
			printDiagBag(diags, rest, stderr)
		} else {
			fmt.Fprintf(stdout, "hash=%x exprs=%d\n", prog.Hash, len(prog.Exprs))
		}
	case ":env":
		for _, name := range sess.Bindings() {
			fmt.Fprintln(stdout, name)
		}
	case ":bindings":
		for _, name := range sess.Bindings() {
			if v, ok := sess.Scope().Lookup(name); ok {
				fmt.Fprintf(stdout, "%s = %s\n", name, v.String())
			}
		}
	case ":reset":
		sess.Reset()
		fmt.Fprintln(stdout, "scope reset")
	case ":load":
		if err := sess.Load(rest); err != nil {
			errColor.Fprintf(stderr, "[LOAD ERROR] %v\n", err)
		} else {
			fmt.Fprintln(stdout, "loaded", rest)
		}
	case ":save":
		path := rest
		if path == "" {
			cfg, _ := session.LoadConfig(".")
			path = cfg.SnapshotPath
		}
		if err := sess.Save(path); err != nil {
			errColor.Fprintf(stderr, "[SAVE ERROR] %v\n", err)
		} else {
			fmt.Fprintln(stdout, "saved", path)
		}
	case ":time":
		timeExpr(sess, rest, stdout, stderr)
	case ":history":
		for _, h := range sess.History() {
			fmt.Fprintln(stdout, h)
		}
	default:
		errColor.Fprintf(stderr, "[REPL] unknown command %q\n", cmd)
	}

	return true
}

func printHelp(w io.Writer) {
	for _, l := range []string{
		":help                show this message",
		":quit                exit the REPL",
		":type <expr>         print inferred type without evaluating",
		":ast <expr>          print surface AST",
		":canonical <expr>    print canonical form's hash and size",
		":env                 list bound names",
		":bindings            list bound names and values",
		":reset               clear the session to its initial state",
		":load <path>         restore bindings from a snapshot file",
		":save <path>         save bindings to a snapshot file",
		":time <expr>         evaluate and report wall time",
		":history             list evaluated inputs",
	} {
		fmt.Fprintln(w, l)
	}
}

func timeExpr(sess *session.Session, src string, stdout, stderr io.Writer) {
	start := time.Now()
	res := sess.Eval(src)
	elapsed := time.Since(start)
	if !res.Ok() {
		printDiagBag(res.Diags, src, stderr)

		return
	}
	if _, isUnit := res.Value.(value.Unit); !isUnit && res.Value != nil {
		fmt.Fprintln(stdout, res.Value.String())
	}
	fmt.Fprintf(stdout, "(%s)\n", elapsed)
}
