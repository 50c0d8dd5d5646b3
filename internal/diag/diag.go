// Package diag implements the shared error-reporting sink used by the
// scanner, parser, resolver, and interpreter. Rather than the teacher's
// internal/errors.CompilerError, which renders source-line-and-caret
// context for a developer console, diag targets the exact plain-text
// diagnostic line formats this language pins down: callers needing
// richer rendering should wrap a Reporter, not replace it.
package diag

import (
	"fmt"
	"io"

	"github.com/golox/lox/internal/token"
)

// Reporter is constructed once per program run (file execution or one
// REPL line) and passed by reference to every pipeline stage. It is not
// safe for concurrent use; the pipeline is single-threaded by design.
type Reporter struct {
	out io.Writer

	hadCompileError bool
	hadRuntimeError bool
}

// New creates a Reporter writing diagnostics to out (typically os.Stderr).
func New(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// HadCompileError reports whether any lex, parse, or resolver error has
// been recorded since the last call to ClearCompileError.
func (r *Reporter) HadCompileError() bool { return r.hadCompileError }

// HadRuntimeError reports whether a runtime error has been recorded.
func (r *Reporter) HadRuntimeError() bool { return r.hadRuntimeError }

// ClearCompileError resets the compile-error flag; hadRuntimeError is
// never cleared. pkg/lox does not call it: every Session.Run and
// Session.RunLine call builds a fresh Reporter, so each REPL line
// already starts with both flags clear.
func (r *Reporter) ClearCompileError() { r.hadCompileError = false }

// Lex records a scanner error: "[line N] Error: <message>" — the
// scanner has no token to anchor a `<where>` clause to.
func (r *Reporter) Lex(line int, message string) {
	r.hadCompileError = true
	fmt.Fprintf(r.out, "[line %d] Error: %s\n", line, message)
}

// Parse records a parser or resolver error anchored at tok:
// "[line N] Error at end: <message>" at EOF, or
// "[line N] Error at '<lexeme>': <message>" otherwise.
func (r *Reporter) Parse(tok token.Token, message string) {
	r.hadCompileError = true
	where := fmt.Sprintf(" at '%s'", tok.Lexeme)
	if tok.Kind == token.EOF {
		where = " at end"
	}
	fmt.Fprintf(r.out, "[line %d] Error%s: %s\n", tok.Line, where, message)
}

// RuntimeError is the error type the interpreter returns when execution
// fails; it carries the most specific token available so Reporter.Runtime
// can report the offending line.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

// NewRuntimeError builds a RuntimeError anchored at tok.
func NewRuntimeError(tok token.Token, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

// Runtime records a runtime error: "[line N] RuntimeError: <message>".
func (r *Reporter) Runtime(err *RuntimeError) {
	r.hadRuntimeError = true
	fmt.Fprintf(r.out, "[line %d] RuntimeError: %s\n", err.Token.Line, err.Message)
}
