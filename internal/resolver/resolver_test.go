package resolver

import (
	"testing"

	"github.com/loxrun/lox/internal/ast"
	"github.com/loxrun/lox/internal/diagnostics"
	"github.com/loxrun/lox/internal/lexer"
	"github.com/loxrun/lox/internal/parser"
)

func resolve(t *testing.T, source string) ([]ast.Stmt, Locals, *diagnostics.CollectingSink) {
	t.Helper()
	sink := diagnostics.NewCollectingSink()
	tokens := lexer.New(source, lexer.WithSink(sink)).Scan()
	stmts := parser.New(tokens, sink).Parse()
	locals := New(sink).Resolve(stmts)
	return stmts, locals, sink
}

func TestResolveClosureDistance(t *testing.T) {
	stmts, locals, sink := resolve(t, `
		var a = "global";
		{
			fun showA() { print a; }
			showA();
		}
	`)
	if sink.HadError() {
		t.Fatalf("unexpected errors: %v", sink.Diagnostics())
	}
	block := stmts[1].(*ast.BlockStmt)
	fn := block.Statements[0].(*ast.FunctionStmt)
	printStmt := fn.Body[0].(*ast.PrintStmt)
	variable := printStmt.Expression.(*ast.Variable)
	if _, ok := locals[variable.ID()]; ok {
		t.Errorf("expected global 'a' reference to have no resolution entry")
	}
}

func TestCannotReadLocalInOwnInitializer(t *testing.T) {
	_, _, sink := resolve(t, `{ var a = a; }`)
	if !sink.HadError() {
		t.Fatalf("expected an error")
	}
	if sink.Diagnostics()[0].Message != "Can't read local variable in its own initializer." {
		t.Errorf("got %v", sink.Diagnostics())
	}
}

func TestReturnOutsideFunctionIsError(t *testing.T) {
	_, _, sink := resolve(t, `return 1;`)
	found := false
	for _, d := range sink.Diagnostics() {
		if d.Message == "Can't return from top-level code." {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected top-level return error, got %v", sink.Diagnostics())
	}
}

func TestThisOutsideClassIsError(t *testing.T) {
	_, _, sink := resolve(t, `print this;`)
	found := false
	for _, d := range sink.Diagnostics() {
		if d.Message == "Can't use 'this' outside of a class." {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected this-outside-class error, got %v", sink.Diagnostics())
	}
}

func TestSuperWithoutSuperclassIsError(t *testing.T) {
	_, _, sink := resolve(t, `class A { hi() { super.hi(); } }`)
	found := false
	for _, d := range sink.Diagnostics() {
		if d.Message == "Can't use 'super' in a class with no superclass." {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected super-without-superclass error, got %v", sink.Diagnostics())
	}
}

func TestClassCannotInheritFromItself(t *testing.T) {
	_, _, sink := resolve(t, `class A < A {}`)
	found := false
	for _, d := range sink.Diagnostics() {
		if d.Message == "A class can't inherit from itself." {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected self-inheritance error, got %v", sink.Diagnostics())
	}
}

func TestUnusedLocalIsReported(t *testing.T) {
	_, _, sink := resolve(t, `{ var unused = 1; }`)
	found := false
	for _, d := range sink.Diagnostics() {
		if d.Message == "Unused variable." {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected unused-variable warning, got %v", sink.Diagnostics())
	}
}

func TestResolvedLocalDistanceForClosureCapture(t *testing.T) {
	// Closure counter: inside c's body, `i` lives one scope out (in
	// makeCounter's scope, with c's own scope pushed on top), so distance 1.
	stmts, locals, sink := resolve(t, `
		fun makeCounter() {
			var i = 0;
			fun c() { i = i + 1; return i; }
			return c;
		}
	`)
	if sink.HadError() {
		t.Fatalf("unexpected errors: %v", sink.Diagnostics())
	}
	outer := stmts[0].(*ast.FunctionStmt)
	inner := outer.Body[1].(*ast.FunctionStmt)
	assign := inner.Body[0].(*ast.ExpressionStmt).Expression.(*ast.Assign)
	if d, ok := locals[assign.ID()]; !ok || d != 1 {
		t.Errorf("expected assign to 'i' at distance 1, got %d (ok=%v)", d, ok)
	}
}
