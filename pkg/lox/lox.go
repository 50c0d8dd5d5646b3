// Package lox is the public façade gluing the scanner, parser, resolver,
// and interpreter into the pipeline spec.md §2 describes, playing the
// same role as the teacher's pkg/dwscript top-level package.
package lox

import (
	"bytes"
	"fmt"
	"io"

	"github.com/golox/lox/internal/ast"
	"github.com/golox/lox/internal/diag"
	"github.com/golox/lox/internal/interp"
	"github.com/golox/lox/internal/lexer"
	"github.com/golox/lox/internal/parser"
	"github.com/golox/lox/internal/resolver"
	"github.com/golox/lox/internal/runtime"
)

// ExitCode mirrors spec.md §6's process exit codes for the CLI driver.
type ExitCode int

const (
	ExitOK           ExitCode = 0
	ExitUsage        ExitCode = 64
	ExitCompileError ExitCode = 65
	ExitRuntimeError ExitCode = 70
)

// Session runs source text against a persistent interpreter (so globals
// defined on one call to Run are visible to the next — the shape the
// REPL needs) and reports diagnostics to errOut.
//
// A compile-time error on any one Run call short-circuits that call's
// execution without touching the interpreter's state, per spec.md §2;
// it does not poison subsequent Run calls.
type Session struct {
	interp *interp.Interpreter
	errOut io.Writer
}

// NewSession creates a Session printing program output to stdout and
// diagnostics to stderr.
func NewSession(stdout, stderr io.Writer) *Session {
	printer := interp.NewPrinter(func(s string) { fmt.Fprint(stdout, s) })
	return &Session{interp: interp.New(printer), errOut: stderr}
}

// Run compiles and executes src, returning the exit code the CLI driver
// should surface (ExitOK, ExitCompileError, or ExitRuntimeError).
func (s *Session) Run(src string) ExitCode {
	report := diag.New(s.errOut)

	l := lexer.New(src)
	tokens := l.ConsumeAll()
	for _, lexErr := range l.Errors() {
		report.Lex(lexErr.Line, lexErr.Message)
	}

	statements := parser.New(tokens, report).Parse()
	if report.HadCompileError() {
		return ExitCompileError
	}

	resolver.New(report).Resolve(statements)
	if report.HadCompileError() {
		return ExitCompileError
	}

	if err := s.interp.Interpret(statements); err != nil {
		return s.reportRuntimeErr(report, err)
	}
	return ExitOK
}

// RunLine compiles and executes a single REPL line. Unlike Run, a bare
// expression statement that is neither an assignment nor a call has its
// value printed automatically (stringified the same way `print` would),
// instead of being silently discarded — a feature jlox-derived REPLs
// commonly add (see DESIGN.md's internal/replio entry) since a file
// driver has no use for echoing every expression's value but a human at
// a prompt does.
func (s *Session) RunLine(line string) ExitCode {
	report := diag.New(s.errOut)

	l := lexer.New(line)
	tokens := l.ConsumeAll()
	for _, lexErr := range l.Errors() {
		report.Lex(lexErr.Line, lexErr.Message)
	}

	statements := parser.New(tokens, report).Parse()
	if report.HadCompileError() {
		return ExitCompileError
	}

	resolver.New(report).Resolve(statements)
	if report.HadCompileError() {
		return ExitCompileError
	}

	if len(statements) == 1 {
		if exprStmt, ok := statements[0].(*ast.Expression); ok && !isAssignOrCall(exprStmt.Expr) {
			value, err := s.interp.EvaluateExpr(exprStmt.Expr)
			if err != nil {
				return s.reportRuntimeErr(report, err)
			}
			s.interp.Print(runtime.Stringify(value))
			return ExitOK
		}
	}

	if err := s.interp.Interpret(statements); err != nil {
		return s.reportRuntimeErr(report, err)
	}
	return ExitOK
}

func (s *Session) reportRuntimeErr(report *diag.Reporter, err error) ExitCode {
	rtErr, ok := err.(*diag.RuntimeError)
	if !ok {
		rtErr = &diag.RuntimeError{Message: err.Error()}
	}
	report.Runtime(rtErr)
	return ExitRuntimeError
}

// isAssignOrCall reports whether expr is an assignment or a call — the
// two expression shapes the REPL leaves alone, since they already have
// (or are commonly used purely for) a side effect and printing their
// value would be noisy or redundant.
func isAssignOrCall(expr ast.Expr) bool {
	switch expr.(type) {
	case *ast.Assign, *ast.Set, *ast.Call:
		return true
	default:
		return false
	}
}

// RunToString is a convenience wrapper for tests and fixture snapshots:
// it runs src against a fresh Session and returns everything written to
// stdout and stderr, plus the resulting exit code.
func RunToString(src string) (stdout, stderr string, code ExitCode) {
	var outBuf, errBuf bytes.Buffer
	code = NewSession(&outBuf, &errBuf).Run(src)
	return outBuf.String(), errBuf.String(), code
}
