// Package interp implements the tree-walking evaluator: statement
// execution, expression evaluation, callable invocation, and the
// class/instance/closure machinery described in spec.md §4.5.
package interp

import (
	"fmt"
	"time"

	"github.com/golox/lox/internal/ast"
	"github.com/golox/lox/internal/diag"
	"github.com/golox/lox/internal/runtime"
)

// returnSignal is the control-flow value a Return statement produces. It
// satisfies the error interface purely so it can ride the ordinary
// error return path of execute/executeBlock up to the
// enclosing Function.Call — ordinary runtime errors and a pending return
// are distinguished with a type assertion at that one boundary, per
// spec.md §9's "explicit control-flow result variant" recommendation.
// It never leaves the interp package.
type returnSignal struct {
	value runtime.Value
}

func (r *returnSignal) Error() string { return "return" }

// Printer is the sink `print` statements write to; pkg/lox wires this to
// os.Stdout, tests wire it to a buffer.
type Printer interface {
	Println(args ...interface{})
}

// Interpreter holds the global environment, the environment currently in
// scope, and the Printer that `print` writes to. Runtime errors are not
// reported here: they are returned to the caller as *diag.RuntimeError
// values. It has no
// dependency on internal/resolver: hop-count annotations are read
// directly off the AST nodes the resolver already mutated.
type Interpreter struct {
	globals *runtime.Environment
	env     *runtime.Environment
	out     Printer
}

// writerPrinter adapts a plain string-sink function to Printer; pkg/lox
// uses this to wire stdout (or a buffer, in REPL/tests) without pulling
// an io.Writer dependency into this package.
type writerPrinter struct {
	write func(string)
}

func (w writerPrinter) Println(args ...interface{}) {
	w.write(fmt.Sprintln(args...))
}

// NewPrinter adapts a plain string-sink function to Printer.
func NewPrinter(write func(string)) Printer {
	return writerPrinter{write: write}
}

// New builds an Interpreter with a fresh global environment pre-
// populated with the native clock() function.
func New(out Printer) *Interpreter {
	globals := runtime.NewEnvironment(nil)
	globals.Define("clock", NewNativeFunction("clock", 0, func(args []runtime.Value) (runtime.Value, error) {
		return float64(time.Now().UnixNano()) / float64(time.Second), nil
	}))
	return &Interpreter{globals: globals, env: globals, out: out}
}

// Interpret executes every top-level statement in order, stopping at the
// first runtime error (spec.md §7: a runtime error "terminates the run"
// in file mode, "the current line" in the REPL — callers construct a
// fresh Interpreter per REPL line to get that isolation, or reuse one
// across the whole session if they want globals to persist; pkg/lox
// documents which it does).
func (in *Interpreter) Interpret(statements []ast.Stmt) error {
	for _, stmt := range statements {
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Print writes s through the interpreter's configured Printer, the same
// sink `print` statements use. Exposed for the REPL's auto-print-
// expression feature, which prints a value outside of a Print statement.
func (in *Interpreter) Print(s string) {
	in.out.Println(s)
}

// EvaluateExpr evaluates a single expression in the interpreter's
// current (global, at top level) environment without executing it as a
// statement. It exists for the REPL's auto-print-expression feature: a
// bare expression line should print its value rather than discard it
// the way an Expression statement normally does.
func (in *Interpreter) EvaluateExpr(expr ast.Expr) (runtime.Value, error) {
	return in.evaluate(expr)
}

func (in *Interpreter) execute(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.Block:
		return in.executeBlock(s.Statements, runtime.NewEnvironment(in.env))

	case *ast.Class:
		return in.executeClass(s)

	case *ast.Expression:
		_, err := in.evaluate(s.Expr)
		return err

	case *ast.Function:
		fn := NewFunction(s, in.env, false)
		in.env.Define(s.Name.Lexeme, fn)
		return nil

	case *ast.If:
		cond, err := in.evaluate(s.Condition)
		if err != nil {
			return err
		}
		if runtime.IsTruthy(cond) {
			return in.execute(s.ThenBranch)
		} else if s.ElseBranch != nil {
			return in.execute(s.ElseBranch)
		}
		return nil

	case *ast.Print:
		value, err := in.evaluate(s.Expr)
		if err != nil {
			return err
		}
		in.out.Println(runtime.Stringify(value))
		return nil

	case *ast.Return:
		var value runtime.Value
		if s.Value != nil {
			v, err := in.evaluate(s.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return &returnSignal{value: value}

	case *ast.Var:
		var value runtime.Value
		if s.Initializer != nil {
			v, err := in.evaluate(s.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		in.env.Define(s.Name.Lexeme, value)
		return nil

	case *ast.While:
		for {
			cond, err := in.evaluate(s.Condition)
			if err != nil {
				return err
			}
			if !runtime.IsTruthy(cond) {
				return nil
			}
			if err := in.execute(s.Body); err != nil {
				return err
			}
		}

	default:
		panic("interp: unhandled statement type")
	}
}

// executeBlock runs statements under env, restoring the interpreter's
// previous environment on every exit path (normal, error, or a pending
// return), mirroring spec.md §4.5's Block semantics.
func (in *Interpreter) executeBlock(statements []ast.Stmt, env *runtime.Environment) error {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, stmt := range statements {
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// executeClass implements spec.md §4.5's Class statement: the
// superclass (if any) is evaluated and validated first, the class name
// is pre-bound to nil so methods can recursively reference it by name,
// then the method table is built with each closure capturing the
// (possibly super-carrying) defining environment.
func (in *Interpreter) executeClass(s *ast.Class) error {
	var superclass *Class
	if s.Superclass != nil {
		v, err := in.evaluate(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return diag.NewRuntimeError(s.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sc
	}

	in.env.Define(s.Name.Lexeme, nil)

	methodEnv := in.env
	if superclass != nil {
		methodEnv = runtime.NewEnvironment(in.env)
		methodEnv.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, method := range s.Methods {
		methods[method.Name.Lexeme] = NewFunction(method, methodEnv, method.Name.Lexeme == "init")
	}

	class := NewClass(s.Name.Lexeme, superclass, methods)
	in.env.Assign(s.Name.Lexeme, class)
	return nil
}
