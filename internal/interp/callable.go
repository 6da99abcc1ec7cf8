package interp

import (
	"errors"
	"time"

	"github.com/loxrun/lox/internal/ast"
	"github.com/loxrun/lox/internal/control"
)

// Callable is any value that can appear as the callee of a Call expression:
// a native function, a user-defined function, a bound method, or a class
// (calling a class constructs an instance).
type Callable interface {
	Arity() int
	Call(in *Interpreter, args []Value) (Value, error)
	String() string
}

// NativeFunction wraps a host-implemented builtin. The only one required
// by spec.md is clock(); a host embedding the interpreter may register
// others with arbitrary arity via WithGlobal, so arity is carried
// explicitly rather than always reported as zero.
type NativeFunction struct {
	name  string
	arity int
	fn    func(args []Value) (Value, error)
}

// NewNativeFunction wraps fn as a callable of the given arity. A negative
// arity means "accepts any number of arguments" and skips the evaluator's
// arity check entirely.
func NewNativeFunction(name string, arity int, fn func(args []Value) (Value, error)) *NativeFunction {
	return &NativeFunction{name: name, arity: arity, fn: fn}
}

func (n *NativeFunction) Arity() int { return n.arity }

func (n *NativeFunction) Call(_ *Interpreter, args []Value) (Value, error) {
	return n.fn(args)
}

func (n *NativeFunction) String() string { return "<native fn>" }

func clockFunction() *NativeFunction {
	return NewNativeFunction("clock", 0, func(args []Value) (Value, error) {
		return float64(time.Now().UnixNano()) / float64(time.Second), nil
	})
}

// LoxFunction is a user-defined function value: the declaration AST plus
// the environment active when the function was declared (its closure).
type LoxFunction struct {
	decl          *ast.FunctionStmt
	closure       *Environment
	isInitializer bool
}

func NewLoxFunction(decl *ast.FunctionStmt, closure *Environment, isInitializer bool) *LoxFunction {
	return &LoxFunction{decl: decl, closure: closure, isInitializer: isInitializer}
}

func (f *LoxFunction) Arity() int { return len(f.decl.Params) }

func (f *LoxFunction) String() string { return "<fn " + f.decl.Name.Lexeme + ">" }

// Bind returns a new function whose closure additionally binds `this` to
// instance, turning a plain method declaration into a bound method.
func (f *LoxFunction) Bind(instance *Instance) *LoxFunction {
	env := NewEnclosedEnvironment(f.closure)
	env.Define("this", instance)
	return NewLoxFunction(f.decl, env, f.isInitializer)
}

func (f *LoxFunction) Call(in *Interpreter, args []Value) (Value, error) {
	env := NewEnclosedEnvironment(f.closure)
	for i, param := range f.decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	err := in.executeBlock(f.decl.Body, env)

	var ret *control.ReturnSignal
	if errors.As(err, &ret) {
		if f.isInitializer {
			return f.closure.GetAt(0, "this"), nil
		}
		return ret.Value, nil
	}
	if err != nil {
		return nil, err
	}

	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	return nil, nil
}
