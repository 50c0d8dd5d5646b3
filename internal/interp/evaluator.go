package interp

import (
	"github.com/golox/lox/internal/ast"
	"github.com/golox/lox/internal/diag"
	"github.com/golox/lox/internal/runtime"
	"github.com/golox/lox/internal/token"
)

func (in *Interpreter) evaluate(expr ast.Expr) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil

	case *ast.Grouping:
		return in.evaluate(e.Expression)

	case *ast.Unary:
		return in.evalUnary(e)

	case *ast.Binary:
		return in.evalBinary(e)

	case *ast.Logical:
		return in.evalLogical(e)

	case *ast.Variable:
		return in.lookupVariable(e.Name, e)

	case *ast.Assign:
		value, err := in.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		if depth, ok := e.Depth(); ok {
			in.env.AssignAt(depth, e.Name.Lexeme, value)
		} else if !in.globals.Assign(e.Name.Lexeme, value) {
			return nil, diag.NewRuntimeError(e.Name, "Undefined variable '%s'.", e.Name.Lexeme)
		}
		return value, nil

	case *ast.Call:
		return in.evalCall(e)

	case *ast.Get:
		return in.evalGet(e)

	case *ast.Set:
		return in.evalSet(e)

	case *ast.This:
		return in.lookupVariable(e.Keyword, e)

	case *ast.Super:
		return in.evalSuper(e)

	default:
		panic("interp: unhandled expression type")
	}
}

type resolvable interface {
	Depth() (int, bool)
}

// lookupVariable reads name, using the resolver's hop-count when node
// has one and falling through to the global environment otherwise, per
// spec.md §4.5.
func (in *Interpreter) lookupVariable(name token.Token, node resolvable) (runtime.Value, error) {
	if depth, ok := node.Depth(); ok {
		return in.env.GetAt(depth, name.Lexeme), nil
	}
	if v, ok := in.globals.Get(name.Lexeme); ok {
		return v, nil
	}
	return nil, diag.NewRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}

func (in *Interpreter) evalUnary(e *ast.Unary) (runtime.Value, error) {
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Operator.Kind {
	case token.Bang:
		return !runtime.IsTruthy(right), nil
	case token.Minus:
		n, ok := right.(float64)
		if !ok {
			return nil, diag.NewRuntimeError(e.Operator, "Operand must be a number.")
		}
		return -n, nil
	default:
		panic("interp: unhandled unary operator")
	}
}

func (in *Interpreter) evalLogical(e *ast.Logical) (runtime.Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Operator.Kind == token.Or {
		if runtime.IsTruthy(left) {
			return left, nil
		}
	} else {
		if !runtime.IsTruthy(left) {
			return left, nil
		}
	}
	return in.evaluate(e.Right)
}

func (in *Interpreter) evalBinary(e *ast.Binary) (runtime.Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Kind {
	case token.Plus:
		if ln, ok := left.(float64); ok {
			if rn, ok := right.(float64); ok {
				return ln + rn, nil
			}
		}
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs, nil
			}
		}
		return nil, diag.NewRuntimeError(e.Operator, "Operands must be two numbers or two strings.")

	case token.Minus, token.Star, token.Slash:
		ln, rn, err := bothNumbers(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		switch e.Operator.Kind {
		case token.Minus:
			return ln - rn, nil
		case token.Star:
			return ln * rn, nil
		default: // division by zero yields Inf/NaN, not an error, per spec.md §4.5
			return ln / rn, nil
		}

	case token.Greater, token.GreaterEqual, token.Less, token.LessEqual:
		ln, rn, err := bothNumbers(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		switch e.Operator.Kind {
		case token.Greater:
			return ln > rn, nil
		case token.GreaterEqual:
			return ln >= rn, nil
		case token.Less:
			return ln < rn, nil
		default:
			return ln <= rn, nil
		}

	case token.EqualEqual:
		return runtime.IsEqual(left, right), nil
	case token.BangEqual:
		return !runtime.IsEqual(left, right), nil

	default:
		panic("interp: unhandled binary operator")
	}
}

func bothNumbers(operator token.Token, left, right runtime.Value) (float64, float64, error) {
	ln, lok := left.(float64)
	rn, rok := right.(float64)
	if !lok || !rok {
		return 0, 0, diag.NewRuntimeError(operator, "Operands must be numbers.")
	}
	return ln, rn, nil
}

func (in *Interpreter) evalCall(e *ast.Call) (runtime.Value, error) {
	callee, err := in.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]runtime.Value, 0, len(e.Arguments))
	for _, argExpr := range e.Arguments {
		arg, err := in.evaluate(argExpr)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, diag.NewRuntimeError(e.Paren, "Can only call functions and classes.")
	}
	if len(args) != callable.Arity() {
		return nil, diag.NewRuntimeError(e.Paren, "Expected %d arguments but got %d.", callable.Arity(), len(args))
	}
	return callable.Call(in, args)
}

func (in *Interpreter) evalGet(e *ast.Get) (runtime.Value, error) {
	object, err := in.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*Instance)
	if !ok {
		return nil, diag.NewRuntimeError(e.Name, "Only instances have properties.")
	}
	return instance.Get(e, e.Name.Lexeme)
}

func (in *Interpreter) evalSet(e *ast.Set) (runtime.Value, error) {
	object, err := in.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*Instance)
	if !ok {
		return nil, diag.NewRuntimeError(e.Name, "Only instances have fields.")
	}
	value, err := in.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	instance.Set(e.Name.Lexeme, value)
	return value, nil
}

// evalSuper implements spec.md §4.5: "super" resolves to the superclass
// at its hop distance, "this" lives exactly one frame closer (the frame
// evalSuper's caller's method-binding introduced), and the method is
// looked up starting at the superclass.
func (in *Interpreter) evalSuper(e *ast.Super) (runtime.Value, error) {
	distance, ok := e.Depth()
	if !ok {
		panic("interp: unresolved super — resolver invariant violated")
	}
	superclass := in.env.GetAt(distance, "super").(*Class)
	instance := in.env.GetAt(distance-1, "this").(*Instance)

	method, ok := superclass.FindMethod(e.Method.Lexeme)
	if !ok {
		return nil, diag.NewRuntimeError(e.Method, "Undefined property '%s'.", e.Method.Lexeme)
	}
	return method.Bind(instance), nil
}
