// Package ast defines the node types produced by the parser and consumed
// by the resolver and evaluator.
package ast

import "github.com/loxrun/lox/internal/lexer"

// nextID allocates the stable per-node identity SPEC_FULL.md requires: two
// textually identical expressions at different source positions must
// resolve independently, so identity can't be derived from content.
var nextID int64

func newID() int64 {
	nextID++
	return nextID
}

// Expr is any expression node. Every concrete type also exposes ID() so the
// resolver can key its distance table by node identity rather than by
// structural equality.
type Expr interface {
	exprNode()
	ID() int64
}

// Stmt is any statement node.
type Stmt interface {
	stmtNode()
}

type baseNode struct {
	id int64
}

func (b baseNode) ID() int64 { return b.id }

func newBase() baseNode { return baseNode{id: newID()} }

// Literal holds a nil, bool, float64, or string value straight from a
// token's literal field (or a true/false/nil keyword).
type Literal struct {
	baseNode
	Value any
}

func NewLiteral(value any) *Literal {
	return &Literal{baseNode: newBase(), Value: value}
}

func (*Literal) exprNode() {}

// Unary is `!expr` or `-expr`.
type Unary struct {
	baseNode
	Op    lexer.Token
	Right Expr
}

func NewUnary(op lexer.Token, right Expr) *Unary {
	return &Unary{baseNode: newBase(), Op: op, Right: right}
}

func (*Unary) exprNode() {}

// Binary is any arithmetic, comparison, or equality expression.
type Binary struct {
	baseNode
	Left  Expr
	Op    lexer.Token
	Right Expr
}

func NewBinary(left Expr, op lexer.Token, right Expr) *Binary {
	return &Binary{baseNode: newBase(), Left: left, Op: op, Right: right}
}

func (*Binary) exprNode() {}

// Logical is `and`/`or`, which short-circuit unlike Binary operators.
type Logical struct {
	baseNode
	Left  Expr
	Op    lexer.Token
	Right Expr
}

func NewLogical(left Expr, op lexer.Token, right Expr) *Logical {
	return &Logical{baseNode: newBase(), Left: left, Op: op, Right: right}
}

func (*Logical) exprNode() {}

// Grouping is a parenthesised expression.
type Grouping struct {
	baseNode
	Inner Expr
}

func NewGrouping(inner Expr) *Grouping {
	return &Grouping{baseNode: newBase(), Inner: inner}
}

func (*Grouping) exprNode() {}

// Variable is a bare identifier used as an expression.
type Variable struct {
	baseNode
	Name lexer.Token
}

func NewVariable(name lexer.Token) *Variable {
	return &Variable{baseNode: newBase(), Name: name}
}

func (*Variable) exprNode() {}

// Assign is `name = value`.
type Assign struct {
	baseNode
	Name  lexer.Token
	Value Expr
}

func NewAssign(name lexer.Token, value Expr) *Assign {
	return &Assign{baseNode: newBase(), Name: name, Value: value}
}

func (*Assign) exprNode() {}

// Call is `callee(args...)`. Paren records the closing paren's position so
// arity/call-target errors can be reported against it.
type Call struct {
	baseNode
	Callee Expr
	Paren  lexer.Token
	Args   []Expr
}

func NewCall(callee Expr, paren lexer.Token, args []Expr) *Call {
	return &Call{baseNode: newBase(), Callee: callee, Paren: paren, Args: args}
}

func (*Call) exprNode() {}

// Get is `object.name` read as a property/method access.
type Get struct {
	baseNode
	Object Expr
	Name   lexer.Token
}

func NewGet(object Expr, name lexer.Token) *Get {
	return &Get{baseNode: newBase(), Object: object, Name: name}
}

func (*Get) exprNode() {}

// Set is `object.name = value`.
type Set struct {
	baseNode
	Object Expr
	Name   lexer.Token
	Value  Expr
}

func NewSet(object Expr, name lexer.Token, value Expr) *Set {
	return &Set{baseNode: newBase(), Object: object, Name: name, Value: value}
}

func (*Set) exprNode() {}

// This is the `this` keyword used as an expression.
type This struct {
	baseNode
	Keyword lexer.Token
}

func NewThis(keyword lexer.Token) *This {
	return &This{baseNode: newBase(), Keyword: keyword}
}

func (*This) exprNode() {}

// Super is `super.method`.
type Super struct {
	baseNode
	Keyword lexer.Token
	Method  lexer.Token
}

func NewSuper(keyword, method lexer.Token) *Super {
	return &Super{baseNode: newBase(), Keyword: keyword, Method: method}
}

func (*Super) exprNode() {}

// --- Statements ---

// ExpressionStmt evaluates an expression and discards the result.
type ExpressionStmt struct {
	Expression Expr
}

func (*ExpressionStmt) stmtNode() {}

// PrintStmt evaluates an expression and writes its canonical string form.
type PrintStmt struct {
	Expression Expr
}

func (*PrintStmt) stmtNode() {}

// VarStmt declares a variable, optionally with an initializer.
type VarStmt struct {
	Name        lexer.Token
	Initializer Expr // nil if absent
}

func (*VarStmt) stmtNode() {}

// BlockStmt is a `{ ... }` sequence introducing a new lexical scope.
type BlockStmt struct {
	Statements []Stmt
}

func (*BlockStmt) stmtNode() {}

// IfStmt is `if (cond) then [else else_]`.
type IfStmt struct {
	Condition Expr
	Then      Stmt
	Else      Stmt // nil if absent
}

func (*IfStmt) stmtNode() {}

// WhileStmt is `while (cond) body`. `for` loops are desugared into this by
// the parser before the evaluator ever sees them.
type WhileStmt struct {
	Condition Expr
	Body      Stmt
}

func (*WhileStmt) stmtNode() {}

// FunctionStmt declares a named function; class methods use the same node,
// keeping their names.
type FunctionStmt struct {
	Name   lexer.Token
	Params []lexer.Token
	Body   []Stmt
}

func (*FunctionStmt) stmtNode() {}

// ReturnStmt unwinds the enclosing function call with Value (nil if
// omitted).
type ReturnStmt struct {
	Keyword lexer.Token
	Value   Expr // nil if absent
}

func (*ReturnStmt) stmtNode() {}

// ClassStmt declares a class, its optional superclass, and its methods.
type ClassStmt struct {
	Name       lexer.Token
	Superclass *Variable // nil if there is none
	Methods    []*FunctionStmt
}

func (*ClassStmt) stmtNode() {}
