// Package interp implements the tree-walking evaluator, its environment
// chain, and the callable/class/instance model.
package interp

import (
	"context"
	"fmt"
	"io"

	"github.com/loxrun/lox/internal/ast"
	"github.com/loxrun/lox/internal/control"
	"github.com/loxrun/lox/internal/diagnostics"
	"github.com/loxrun/lox/internal/lexer"
	"github.com/loxrun/lox/internal/resolver"
)

// Interpreter executes a resolved AST. It holds the global environment, the
// environment currently in scope, and the resolver's distance table.
type Interpreter struct {
	globals *Environment
	env     *Environment
	locals  resolver.Locals
	stdout  io.Writer
}

// New constructs an Interpreter. locals may be nil if the resolver found
// no locals to resolve (every name falls back to globals).
func New(stdout io.Writer, locals resolver.Locals) *Interpreter {
	globals := NewEnvironment()
	globals.Define("clock", clockFunction())
	if locals == nil {
		locals = resolver.Locals{}
	}
	return &Interpreter{globals: globals, env: globals, locals: locals, stdout: stdout}
}

// Globals exposes the global environment so a host can register additional
// native functions before running a program.
func (in *Interpreter) Globals() *Environment { return in.globals }

// Reconfigure points this Interpreter at a new output writer and a new
// resolver distance table, while keeping its existing global environment
// intact. A host re-using one Interpreter across several Eval calls (a
// REPL-style accumulation of top-level declarations) calls this between
// calls rather than constructing a fresh Interpreter each time.
func (in *Interpreter) Reconfigure(stdout io.Writer, locals resolver.Locals) {
	in.stdout = stdout
	if locals == nil {
		locals = resolver.Locals{}
	}
	in.locals = locals
}

// Interpret executes every statement in order. Execution stops at the
// first runtime error; ctx is polled once per top-level statement so a
// caller can bound a runaway script from outside.
func (in *Interpreter) Interpret(ctx context.Context, stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := in.Execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs a single statement. It returns nil on normal completion, a
// *control.ReturnSignal to unwind to the nearest enclosing call, or a
// *diagnostics.RuntimeError.
func (in *Interpreter) Execute(s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.ExpressionStmt:
		_, err := in.Evaluate(n.Expression)
		return err
	case *ast.PrintStmt:
		v, err := in.Evaluate(n.Expression)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.stdout, Stringify(v))
		return nil
	case *ast.VarStmt:
		var value Value
		if n.Initializer != nil {
			v, err := in.Evaluate(n.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		in.env.Define(n.Name.Lexeme, value)
		return nil
	case *ast.BlockStmt:
		return in.executeBlock(n.Statements, NewEnclosedEnvironment(in.env))
	case *ast.IfStmt:
		cond, err := in.Evaluate(n.Condition)
		if err != nil {
			return err
		}
		if IsTruthy(cond) {
			return in.Execute(n.Then)
		}
		if n.Else != nil {
			return in.Execute(n.Else)
		}
		return nil
	case *ast.WhileStmt:
		for {
			cond, err := in.Evaluate(n.Condition)
			if err != nil {
				return err
			}
			if !IsTruthy(cond) {
				return nil
			}
			if err := in.Execute(n.Body); err != nil {
				return err
			}
		}
	case *ast.FunctionStmt:
		fn := NewLoxFunction(n, in.env, false)
		in.env.Define(n.Name.Lexeme, fn)
		return nil
	case *ast.ReturnStmt:
		var value Value
		if n.Value != nil {
			v, err := in.Evaluate(n.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return &control.ReturnSignal{Value: value}
	case *ast.ClassStmt:
		return in.executeClass(n)
	}
	return nil
}

// executeBlock runs stmts against env, restoring the interpreter's current
// environment on every exit path: normal completion, a Return unwind, or a
// runtime error.
func (in *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) error {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, stmt := range stmts {
		if err := in.Execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) executeClass(n *ast.ClassStmt) error {
	var superclass *Class
	if n.Superclass != nil {
		v, err := in.Evaluate(n.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return diagnostics.NewRuntimeError(n.Superclass.Name.Line, "Superclass must be a class.")
		}
		superclass = sc
	}

	in.env.Define(n.Name.Lexeme, nil)

	if n.Superclass != nil {
		in.env = NewEnclosedEnvironment(in.env)
		in.env.Define("super", superclass)
	}

	methods := map[string]*LoxFunction{}
	for _, m := range n.Methods {
		methods[m.Name.Lexeme] = NewLoxFunction(m, in.env, m.Name.Lexeme == "init")
	}

	class := NewClass(n.Name.Lexeme, superclass, methods)

	if n.Superclass != nil {
		in.env = in.env.outer
	}

	return in.env.Assign(n.Name, class)
}

// Evaluate computes an expression's value.
func (in *Interpreter) Evaluate(e ast.Expr) (Value, error) {
	switch n := e.(type) {
	case *ast.Literal:
		return n.Value, nil
	case *ast.Grouping:
		return in.Evaluate(n.Inner)
	case *ast.Logical:
		return in.evalLogical(n)
	case *ast.Unary:
		return in.evalUnary(n)
	case *ast.Binary:
		return in.evalBinary(n)
	case *ast.Variable:
		return in.lookUpVariable(n.Name, n.ID())
	case *ast.Assign:
		return in.evalAssign(n)
	case *ast.Call:
		return in.evalCall(n)
	case *ast.Get:
		return in.evalGet(n)
	case *ast.Set:
		return in.evalSet(n)
	case *ast.This:
		return in.lookUpVariable(n.Keyword, n.ID())
	case *ast.Super:
		return in.evalSuper(n)
	}
	return nil, nil
}

func (in *Interpreter) lookUpVariable(name lexer.Token, id int64) (Value, error) {
	if distance, ok := in.locals[id]; ok {
		return in.env.GetAt(distance, name.Lexeme), nil
	}
	return in.globals.Get(name)
}

func (in *Interpreter) evalLogical(n *ast.Logical) (Value, error) {
	left, err := in.Evaluate(n.Left)
	if err != nil {
		return nil, err
	}
	if n.Op.Type == lexer.OR {
		if IsTruthy(left) {
			return left, nil
		}
	} else {
		if !IsTruthy(left) {
			return left, nil
		}
	}
	return in.Evaluate(n.Right)
}

func (in *Interpreter) evalUnary(n *ast.Unary) (Value, error) {
	right, err := in.Evaluate(n.Right)
	if err != nil {
		return nil, err
	}
	switch n.Op.Type {
	case lexer.BANG:
		return !IsTruthy(right), nil
	case lexer.MINUS:
		num, ok := right.(float64)
		if !ok {
			return nil, diagnostics.NewRuntimeError(n.Op.Line, "Operand must be a number.")
		}
		return -num, nil
	}
	return nil, nil
}

func (in *Interpreter) evalBinary(n *ast.Binary) (Value, error) {
	left, err := in.Evaluate(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.Evaluate(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op.Type {
	case lexer.PLUS:
		if lf, ok := left.(float64); ok {
			if rf, ok := right.(float64); ok {
				return lf + rf, nil
			}
		}
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs, nil
			}
		}
		return nil, diagnostics.NewRuntimeError(n.Op.Line, "Operands must be two numbers or two strings.")
	case lexer.MINUS:
		lf, rf, err := numberOperands(n.Op, left, right)
		if err != nil {
			return nil, err
		}
		return lf - rf, nil
	case lexer.STAR:
		lf, rf, err := numberOperands(n.Op, left, right)
		if err != nil {
			return nil, err
		}
		return lf * rf, nil
	case lexer.SLASH:
		lf, rf, err := numberOperands(n.Op, left, right)
		if err != nil {
			return nil, err
		}
		return lf / rf, nil
	case lexer.GREATER:
		lf, rf, err := numberOperands(n.Op, left, right)
		if err != nil {
			return nil, err
		}
		return lf > rf, nil
	case lexer.GREATER_EQUAL:
		lf, rf, err := numberOperands(n.Op, left, right)
		if err != nil {
			return nil, err
		}
		return lf >= rf, nil
	case lexer.LESS:
		lf, rf, err := numberOperands(n.Op, left, right)
		if err != nil {
			return nil, err
		}
		return lf < rf, nil
	case lexer.LESS_EQUAL:
		lf, rf, err := numberOperands(n.Op, left, right)
		if err != nil {
			return nil, err
		}
		return lf <= rf, nil
	case lexer.BANG_EQUAL:
		return !IsEqual(left, right), nil
	case lexer.EQUAL_EQUAL:
		return IsEqual(left, right), nil
	}
	return nil, nil
}

func numberOperands(op lexer.Token, left, right Value) (float64, float64, error) {
	lf, ok1 := left.(float64)
	rf, ok2 := right.(float64)
	if !ok1 || !ok2 {
		return 0, 0, diagnostics.NewRuntimeError(op.Line, "Operands must be numbers.")
	}
	return lf, rf, nil
}

func (in *Interpreter) evalAssign(n *ast.Assign) (Value, error) {
	value, err := in.Evaluate(n.Value)
	if err != nil {
		return nil, err
	}
	if distance, ok := in.locals[n.ID()]; ok {
		in.env.AssignAt(distance, n.Name, value)
		return value, nil
	}
	if err := in.globals.Assign(n.Name, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (in *Interpreter) evalCall(n *ast.Call) (Value, error) {
	callee, err := in.Evaluate(n.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		v, err := in.Evaluate(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, diagnostics.NewRuntimeError(n.Paren.Line, "Can only call functions and classes.")
	}
	if fn.Arity() >= 0 && len(args) != fn.Arity() {
		return nil, diagnostics.NewRuntimeError(n.Paren.Line, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}
	return fn.Call(in, args)
}

func (in *Interpreter) evalGet(n *ast.Get) (Value, error) {
	object, err := in.Evaluate(n.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*Instance)
	if !ok {
		return nil, diagnostics.NewRuntimeError(n.Name.Line, "Only instances have properties.")
	}
	return instance.Get(n.Name)
}

func (in *Interpreter) evalSet(n *ast.Set) (Value, error) {
	object, err := in.Evaluate(n.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*Instance)
	if !ok {
		return nil, diagnostics.NewRuntimeError(n.Name.Line, "Only instances have fields.")
	}
	value, err := in.Evaluate(n.Value)
	if err != nil {
		return nil, err
	}
	instance.Set(n.Name, value)
	return value, nil
}

func (in *Interpreter) evalSuper(n *ast.Super) (Value, error) {
	distance := in.locals[n.ID()]
	superclass := in.env.GetAt(distance, "super").(*Class)
	this := in.env.GetAt(distance-1, "this").(*Instance)

	method := superclass.FindMethod(n.Method.Lexeme)
	if method == nil {
		return nil, diagnostics.NewRuntimeError(n.Method.Line, "Undefined property '%s'.", n.Method.Lexeme)
	}
	return method.Bind(this), nil
}
