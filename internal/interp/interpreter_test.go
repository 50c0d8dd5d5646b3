package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/golox/lox/internal/diag"
	"github.com/golox/lox/internal/lexer"
	"github.com/golox/lox/internal/parser"
	"github.com/golox/lox/internal/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run compiles and executes src against a fresh Interpreter, returning
// everything printed and the runtime error (if any). It mirrors the
// pipeline pkg/lox.Run wires together: scan, parse, resolve, interpret,
// short-circuiting before execution on any compile error.
func run(t *testing.T, src string) (output string, runtimeErr error) {
	t.Helper()
	var errBuf, outBuf bytes.Buffer
	report := diag.New(&errBuf)

	l := lexer.New(src)
	tokens := l.ConsumeAll()
	for _, lexErr := range l.Errors() {
		report.Lex(lexErr.Line, lexErr.Message)
	}
	require.False(t, report.HadCompileError(), "lexer reported an error for %q", src)

	stmts := parser.New(tokens, report).Parse()
	require.False(t, report.HadCompileError(), "parse error for %q: %s", src, errBuf.String())

	resolver.New(report).Resolve(stmts)
	require.False(t, report.HadCompileError(), "resolve error for %q: %s", src, errBuf.String())

	printer := NewPrinter(func(s string) { outBuf.WriteString(s) })
	err := New(printer).Interpret(stmts)
	return outBuf.String(), err
}

func TestInterpret_HelloWorld(t *testing.T) {
	out, err := run(t, `print "Hello, World!";`)
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!\n", out)
}

func TestInterpret_Arithmetic(t *testing.T) {
	out, err := run(t, "var a = 1; var b = 2; print a + b;")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)
}

func TestInterpret_IntegralNumbersPrintWithoutDecimal(t *testing.T) {
	out, err := run(t, "print 3.0;")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)
}

func TestInterpret_Fibonacci(t *testing.T) {
	out, err := run(t, `
		fun fib(n) { if (n < 2) return n; return fib(n - 1) + fib(n - 2); }
		print fib(10);
	`)
	require.NoError(t, err)
	assert.Equal(t, "55\n", out)
}

func TestInterpret_ClosureCapturesByReference(t *testing.T) {
	out, err := run(t, `
		fun make() { var x = 1; fun f() { return x; } x = 2; return f; }
		print make()();
	`)
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestInterpret_CounterClosureKeepsState(t *testing.T) {
	out, err := run(t, `
		fun make() { var c = 0; fun inc() { c = c + 1; return c; } return inc; }
		var f = make();
		print f();
		print f();
		print f();
	`)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestInterpret_SuperCallsUpTheChain(t *testing.T) {
	out, err := run(t, `
		class A { greet() { print "A"; } }
		class B < A { greet() { super.greet(); print "B"; } }
		B().greet();
	`)
	require.NoError(t, err)
	assert.Equal(t, "A\nB\n", out)
}

func TestInterpret_InitializerReturnsInstance(t *testing.T) {
	out, err := run(t, `class K { init(x) { this.x = x; } } print K(7).x;`)
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestInterpret_BareReturnInInitializerYieldsInstance(t *testing.T) {
	out, err := run(t, `class K { init() { return; } } print K();`)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "instance\n"))
}

func TestInterpret_MethodBindingKeepsThis(t *testing.T) {
	out, err := run(t, `
		class K { name() { return "K"; } }
		var a = K();
		var m = a.name;
		print m();
	`)
	require.NoError(t, err)
	assert.Equal(t, "K\n", out)
}

func TestInterpret_RuntimeErrorOnMixedAddition(t *testing.T) {
	_, err := run(t, `print "a" + 1;`)
	require.Error(t, err)
	rtErr, ok := err.(*diag.RuntimeError)
	require.True(t, ok, "expected *diag.RuntimeError, got %T", err)
	assert.Equal(t, "Operands must be two numbers or two strings.", rtErr.Message)
	assert.Equal(t, 1, rtErr.Token.Line)
}

func TestInterpret_DivisionByZeroIsNotAnError(t *testing.T) {
	out, err := run(t, "print 1 / 0;")
	require.NoError(t, err)
	assert.Equal(t, "+Inf\n", out)
}

func TestInterpret_UndefinedVariableIsRuntimeError(t *testing.T) {
	_, err := run(t, "print nope;")
	require.Error(t, err)
}

func TestInterpret_ForDesugaringEquivalence(t *testing.T) {
	forOut, err := run(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	require.NoError(t, err)
	whileOut, err := run(t, `{ var i = 0; while (i < 3) { print i; i = i + 1; } }`)
	require.NoError(t, err)
	assert.Equal(t, whileOut, forOut)
}

func TestInterpret_Truthiness(t *testing.T) {
	out, err := run(t, `
		if (0) print "zero truthy"; else print "zero falsy";
		if ("") print "empty string truthy"; else print "empty string falsy";
		if (nil) print "nil truthy"; else print "nil falsy";
		if (false) print "false truthy"; else print "false falsy";
	`)
	require.NoError(t, err)
	assert.Equal(t, "zero truthy\nempty string truthy\nnil falsy\nfalse falsy\n", out)
}

func TestInterpret_Equality(t *testing.T) {
	out, err := run(t, `
		print nil == nil;
		print nil == 0;
		print "a" == "a";
		print 1 == 1.0;
	`)
	require.NoError(t, err)
	assert.Equal(t, "true\nfalse\ntrue\ntrue\n", out)
}

func TestInterpret_UndefinedFieldReadFails(t *testing.T) {
	_, err := run(t, `class K {} print K().missing;`)
	require.Error(t, err)
	rtErr, ok := err.(*diag.RuntimeError)
	require.True(t, ok)
	assert.Contains(t, rtErr.Message, "Undefined property")
}

func TestInterpret_CallingNonCallableFails(t *testing.T) {
	_, err := run(t, `var a = 1; a();`)
	require.Error(t, err)
}

func TestInterpret_WrongArityFails(t *testing.T) {
	_, err := run(t, `fun f(a, b) { return a + b; } f(1);`)
	require.Error(t, err)
}

func TestInterpret_SuperclassNotAClassFails(t *testing.T) {
	_, err := run(t, `var NotAClass = 1; class K < NotAClass {}`)
	require.Error(t, err)
	rtErr, ok := err.(*diag.RuntimeError)
	require.True(t, ok)
	assert.Equal(t, "Superclass must be a class.", rtErr.Message)
}

func TestInterpret_ClockIsCallableWithZeroArity(t *testing.T) {
	out, err := run(t, `print clock() >= 0;`)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}
