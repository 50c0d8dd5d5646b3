package interp

import (
	"github.com/golox/lox/internal/ast"
	"github.com/golox/lox/internal/diag"
	"github.com/golox/lox/internal/runtime"
)

// Callable is implemented by every value that can appear on the left of
// a Call expression: native functions, user functions/closures, and
// classes (calling a class constructs an instance).
type Callable interface {
	Arity() int
	Call(in *Interpreter, args []runtime.Value) (runtime.Value, error)
	String() string
}

// Function is a user function or method: an immutable pairing of its
// declaration with the environment captured at definition time, per
// spec.md §3's "closure" record. IsInitializer marks methods named
// `init`, whose return value is always forced to the bound instance.
type Function struct {
	declaration   *ast.Function
	closure       *runtime.Environment
	isInitializer bool
}

// NewFunction wraps declaration, capturing closure as its defining
// environment.
func NewFunction(declaration *ast.Function, closure *runtime.Environment, isInitializer bool) *Function {
	return &Function{declaration: declaration, closure: closure, isInitializer: isInitializer}
}

func (f *Function) Arity() int { return len(f.declaration.Params) }

func (f *Function) String() string { return "<fn " + f.declaration.Name.Lexeme + ">" }

// Bind returns a new Function whose closure wraps f's closure with a
// fresh frame defining "this" as instance — spec.md §4.5's "bound
// method" construction, used by Get and Super.
func (f *Function) Bind(instance *Instance) *Function {
	env := runtime.NewEnvironment(f.closure)
	env.Define("this", instance)
	return &Function{declaration: f.declaration, closure: env, isInitializer: f.isInitializer}
}

// Call executes the function body in a fresh environment enclosed by the
// closure, with each parameter bound to its argument. A Return inside
// the body unwinds as a *returnSignal; Call translates it into the
// ordinary (value, nil) shape the rest of the evaluator expects.
func (f *Function) Call(in *Interpreter, args []runtime.Value) (runtime.Value, error) {
	env := runtime.NewEnvironment(f.closure)
	for i, param := range f.declaration.Params {
		env.Define(param.Lexeme, args[i])
	}

	err := in.executeBlock(f.declaration.Body, env)
	if sig, ok := err.(*returnSignal); ok {
		if f.isInitializer {
			return f.closure.GetAt(0, "this"), nil
		}
		return sig.value, nil
	}
	if err != nil {
		return nil, err
	}

	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	return nil, nil
}

// NativeFunction wraps host-provided functionality (currently just
// clock()) behind the Callable interface so the evaluator's Call
// handling never needs to special-case it.
type NativeFunction struct {
	name  string
	arity int
	fn    func(args []runtime.Value) (runtime.Value, error)
}

func NewNativeFunction(name string, arity int, fn func(args []runtime.Value) (runtime.Value, error)) *NativeFunction {
	return &NativeFunction{name: name, arity: arity, fn: fn}
}

func (n *NativeFunction) Arity() int { return n.arity }

func (n *NativeFunction) String() string { return "<native fn " + n.name + ">" }

func (n *NativeFunction) Call(in *Interpreter, args []runtime.Value) (runtime.Value, error) {
	return n.fn(args)
}

// Class is an immutable record of a class's name, optional superclass,
// and method table, per spec.md §3.
type Class struct {
	name       string
	superclass *Class
	methods    map[string]*Function
}

// NewClass builds a Class. superclass may be nil.
func NewClass(name string, superclass *Class, methods map[string]*Function) *Class {
	return &Class{name: name, superclass: superclass, methods: methods}
}

func (c *Class) String() string { return c.name }

// FindMethod looks up name on c, then walks the superclass chain.
func (c *Class) FindMethod(name string) (*Function, bool) {
	if fn, ok := c.methods[name]; ok {
		return fn, true
	}
	if c.superclass != nil {
		return c.superclass.FindMethod(name)
	}
	return nil, false
}

// Arity is the arity of `init`, or 0 if the class declares none.
func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Call allocates a new Instance and, if the class (or an ancestor)
// declares `init`, binds and invokes it with args.
func (c *Class) Call(in *Interpreter, args []runtime.Value) (runtime.Value, error) {
	instance := NewInstance(c)
	if init, ok := c.FindMethod("init"); ok {
		if _, err := init.Bind(instance).Call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Instance is a mutable open record: a class reference plus a field map
// populated lazily on first assignment. Reading an absent field (one
// never assigned and not a method) is a runtime error, per spec.md §3.
type Instance struct {
	class  *Class
	fields map[string]runtime.Value
}

// NewInstance allocates an instance of class with no fields set.
func NewInstance(class *Class) *Instance {
	return &Instance{class: class, fields: make(map[string]runtime.Value)}
}

func (i *Instance) String() string { return i.class.name + " instance" }

// Get implements spec.md §4.5's Get expression semantics: fields win
// over methods, and a found method is returned bound to this instance.
func (i *Instance) Get(name ast.Node, lexeme string) (runtime.Value, error) {
	if v, ok := i.fields[lexeme]; ok {
		return v, nil
	}
	if method, ok := i.class.FindMethod(lexeme); ok {
		return method.Bind(i), nil
	}
	return nil, diag.NewRuntimeError(name.Anchor(), "Undefined property '%s'.", lexeme)
}

// Set writes value into the field map unconditionally, creating the
// field on first assignment.
func (i *Instance) Set(lexeme string, value runtime.Value) {
	i.fields[lexeme] = value
}
