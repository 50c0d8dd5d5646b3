// Package replio implements the interactive prompt described (as an
// external collaborator) in spec.md §6: read a line, run it, clear the
// compile-error flag, loop until EOF. The teacher has no REPL of its
// own; this is grounded on akashmaji946-go-mix's repl package, which is
// the only REPL in the retrieved pack, built on the same
// chzyer/readline + fatih/color pairing used here.
package replio

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/golox/lox/pkg/lox"
)

// Prompt is the exact REPL prompt spec.md §6 pins down.
const Prompt = ":> "

var errorColor = color.New(color.FgRed)

// Session drives an interactive prompt over a *lox.Session, so the
// globals a line defines are visible to the next one.
type Session struct {
	lox *lox.Session
	out io.Writer
}

// New creates a replio.Session printing program output to stdout and
// errors (in red) to stderr.
func New(stdout, stderr io.Writer) *Session {
	return &Session{lox: lox.NewSession(stdout, &coloredWriter{w: stderr}), out: stdout}
}

// coloredWriter paints every write red before forwarding it, the same
// treatment go-mix's repl package gives parse/eval errors.
type coloredWriter struct {
	w io.Writer
}

func (c *coloredWriter) Write(p []byte) (int, error) {
	errorColor.Fprint(c.w, string(p))
	return len(p), nil
}

// Run starts the read-eval-print loop. It returns nil when the user types
// ".exit", sends EOF (Ctrl-D) or interrupts (Ctrl-C) — a normal exit for
// a REPL, per spec.md §6 ("EOF exits normally"). If readline fails to
// initialize, Run returns that error instead.
func (s *Session) Run() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          Prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       ".exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF (Ctrl-D) or readline.ErrInterrupt
			io.WriteString(s.out, "\n")
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			return nil
		}

		rl.SaveHistory(line)
		s.lox.RunLine(line)
	}
}
