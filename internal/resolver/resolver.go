// Package resolver implements the static scope-analysis pass that runs
// between parsing and evaluation: for every local variable/this/super use
// it records the number of environment hops to its declaring scope, so the
// evaluator can look locals up in O(1) instead of walking a hash chain.
package resolver

import (
	"github.com/loxrun/lox/internal/ast"
	"github.com/loxrun/lox/internal/diagnostics"
	"github.com/loxrun/lox/internal/lexer"
)

type varState int

const (
	declared varState = iota
	defined
	used
)

type functionType int

const (
	funcNone functionType = iota
	funcFunction
	funcMethod
	funcInitializer
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

type binding struct {
	state varState
	token lexer.Token
}

// Locals maps each resolved expression node's stable id to its scope
// distance. Nodes absent from this map refer to globals.
type Locals map[int64]int

// Resolver performs the static pass described in SPEC_FULL.md §4.4.
type Resolver struct {
	sink    diagnostics.Sink
	scopes  []map[string]*binding
	locals  Locals
	curFn   functionType
	curCls  classType
}

// New constructs a Resolver reporting static errors to sink.
func New(sink diagnostics.Sink) *Resolver {
	return &Resolver{sink: sink, locals: Locals{}, curFn: funcNone, curCls: classNone}
}

// Resolve walks every top-level statement and returns the resulting
// resolution table. Top-level declarations live in the (unrepresented)
// global scope and are therefore never flagged as unused; only bindings
// declared inside a pushed scope are checked, as each scope pops.
func (r *Resolver) Resolve(stmts []ast.Stmt) Locals {
	r.resolveStmts(stmts)
	return r.locals
}

func (r *Resolver) report(tok lexer.Token, message string) {
	r.reportSeverity(diagnostics.SeverityError, tok, message)
}

// reportHint reports a non-fatal diagnostic: collected and surfaced like
// any other, but excluded from the sink's HadError gate so it never
// suppresses evaluation.
func (r *Resolver) reportHint(tok lexer.Token, message string) {
	r.reportSeverity(diagnostics.SeverityHint, tok, message)
}

func (r *Resolver) reportSeverity(sev diagnostics.Severity, tok lexer.Token, message string) {
	where := " at '" + tok.Lexeme + "'"
	if tok.Type == lexer.EOF {
		where = " at end"
	}
	r.sink.Report(diagnostics.Diagnostic{Stage: diagnostics.StageResolve, Severity: sev, Line: tok.Line, Where: where, Message: message})
}

// --- scope stack ---

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, map[string]*binding{})
}

func (r *Resolver) endScope() {
	top := r.scopes[len(r.scopes)-1]
	r.reportUnusedInScope(mapValues(top))
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func mapValues(m map[string]*binding) []*binding {
	out := make([]*binding, 0, len(m))
	for _, b := range m {
		out = append(out, b)
	}
	return out
}

func (r *Resolver) reportUnusedInScope(bindings []*binding) {
	// Within this scope, unused bindings are reported in ascending line
	// order; bindings declared on the same line are reported in no defined
	// order. Each scope reports when it pops, so an inner scope's unused
	// bindings are reported before those of the scopes enclosing it.
	ordered := append([]*binding(nil), bindings...)
	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			if ordered[j].token.Line < ordered[i].token.Line {
				ordered[i], ordered[j] = ordered[j], ordered[i]
			}
		}
	}
	for _, b := range ordered {
		if b.state != used {
			r.reportHint(b.token, "Unused variable.")
		}
	}
}

func (r *Resolver) declare(name lexer.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	scope[name.Lexeme] = &binding{state: declared, token: name}
}

func (r *Resolver) define(name lexer.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if b, ok := scope[name.Lexeme]; ok {
		b.state = defined
	} else {
		scope[name.Lexeme] = &binding{state: defined, token: name}
	}
}

// declareUsed seeds a pre-marked-used binding, for `this`/`super` synthetic
// scopes that spec §4.4 says are injected already-used.
func (r *Resolver) declareUsed(name string) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	scope[name] = &binding{state: used}
}

func (r *Resolver) resolveLocal(id int64, name lexer.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if b, ok := r.scopes[i][name.Lexeme]; ok {
			b.state = used
			r.locals[id] = len(r.scopes) - 1 - i
			return
		}
	}
	// unresolved: treat as global, no table entry.
}

// --- statements ---

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(n.Statements)
		r.endScope()
	case *ast.VarStmt:
		r.declare(n.Name)
		if n.Initializer != nil {
			r.resolveExpr(n.Initializer)
		}
		r.define(n.Name)
	case *ast.FunctionStmt:
		r.declare(n.Name)
		r.define(n.Name)
		r.resolveFunction(n, funcFunction)
	case *ast.ExpressionStmt:
		r.resolveExpr(n.Expression)
	case *ast.IfStmt:
		r.resolveExpr(n.Condition)
		r.resolveStmt(n.Then)
		if n.Else != nil {
			r.resolveStmt(n.Else)
		}
	case *ast.PrintStmt:
		r.resolveExpr(n.Expression)
	case *ast.ReturnStmt:
		if r.curFn == funcNone {
			r.report(n.Keyword, "Can't return from top-level code.")
		}
		if n.Value != nil {
			if r.curFn == funcInitializer {
				r.report(n.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(n.Value)
		}
	case *ast.WhileStmt:
		r.resolveExpr(n.Condition)
		r.resolveStmt(n.Body)
	case *ast.ClassStmt:
		r.resolveClass(n)
	}
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, kind functionType) {
	enclosingFn := r.curFn
	r.curFn = kind
	defer func() { r.curFn = enclosingFn }()

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()
}

func (r *Resolver) resolveClass(c *ast.ClassStmt) {
	enclosingCls := r.curCls
	r.curCls = classClass
	defer func() { r.curCls = enclosingCls }()

	r.declare(c.Name)
	r.define(c.Name)

	if c.Superclass != nil {
		if c.Superclass.Name.Lexeme == c.Name.Lexeme {
			r.report(c.Superclass.Name, "A class can't inherit from itself.")
		}
		r.curCls = classSubclass
		r.resolveExpr(c.Superclass)
		r.beginScope()
		r.declareUsed("super")
	}

	r.beginScope()
	r.declareUsed("this")

	for _, method := range c.Methods {
		kind := funcMethod
		if method.Name.Lexeme == "init" {
			kind = funcInitializer
		}
		r.resolveFunction(method, kind)
	}

	r.endScope() // this

	if c.Superclass != nil {
		r.endScope() // super
	}
}

// --- expressions ---

func (r *Resolver) resolveExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if b, ok := r.scopes[len(r.scopes)-1][n.Name.Lexeme]; ok && b.state == declared {
				r.report(n.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(n.ID(), n.Name)
	case *ast.Assign:
		r.resolveExpr(n.Value)
		r.resolveLocal(n.ID(), n.Name)
	case *ast.Binary:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)
	case *ast.Logical:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)
	case *ast.Unary:
		r.resolveExpr(n.Right)
	case *ast.Grouping:
		r.resolveExpr(n.Inner)
	case *ast.Call:
		r.resolveExpr(n.Callee)
		for _, a := range n.Args {
			r.resolveExpr(a)
		}
	case *ast.Get:
		r.resolveExpr(n.Object)
	case *ast.Set:
		r.resolveExpr(n.Value)
		r.resolveExpr(n.Object)
	case *ast.This:
		if r.curCls == classNone {
			r.report(n.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(n.ID(), n.Keyword)
	case *ast.Super:
		if r.curCls == classNone {
			r.report(n.Keyword, "Can't use 'super' outside of a class.")
			return
		} else if r.curCls != classSubclass {
			r.report(n.Keyword, "Can't use 'super' in a class with no superclass.")
			return
		}
		r.resolveLocal(n.ID(), n.Keyword)
	case *ast.Literal:
		// nothing to resolve
	}
}
