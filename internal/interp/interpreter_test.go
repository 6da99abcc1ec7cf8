package interp

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/loxrun/lox/internal/diagnostics"
	"github.com/loxrun/lox/internal/lexer"
	"github.com/loxrun/lox/internal/parser"
	"github.com/loxrun/lox/internal/resolver"
)

// run lexes, parses, resolves, and interprets source, returning stdout and
// any error from the final top-level statement.
func run(t *testing.T, source string) (string, error) {
	t.Helper()
	sink := diagnostics.NewCollectingSink()
	tokens := lexer.New(source, lexer.WithSink(sink)).Scan()
	stmts := parser.New(tokens, sink).Parse()
	if sink.HadError() {
		t.Fatalf("unexpected static errors: %v", sink.Diagnostics())
	}

	locals := resolver.New(sink).Resolve(stmts)
	if sink.HadError() {
		t.Fatalf("unexpected resolve errors: %v", sink.Diagnostics())
	}

	var out bytes.Buffer
	in := New(&out, locals)
	err := in.Interpret(context.Background(), stmts)
	return out.String(), err
}

func TestArithmeticPrecedence(t *testing.T) {
	out, err := run(t, `print 1 + 2 * 3;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "7" {
		t.Fatalf("got %q, want 7", out)
	}
}

func TestStringConcatenation(t *testing.T) {
	out, _ := run(t, `print "foo" + "bar";`)
	if strings.TrimSpace(out) != "foobar" {
		t.Fatalf("got %q", out)
	}
}

func TestGlobalVsBlockClosureCapture(t *testing.T) {
	out, err := run(t, `
var a = "global";
{
  fun showA() {
    print a;
  }
  showA();
  var a = "block";
  showA();
}
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || lines[0] != "global" || lines[1] != "global" {
		t.Fatalf("got %v, want both calls to print global", lines)
	}
}

func TestClosureCounter(t *testing.T) {
	out, err := run(t, `
fun makeCounter() {
  var i = 0;
  fun count() {
    i = i + 1;
    print i;
  }
  return count;
}

var counter = makeCounter();
counter();
counter();
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "1\n2" {
		t.Fatalf("got %q", out)
	}
}

func TestClassMethodAndThis(t *testing.T) {
	out, err := run(t, `
class Cake {
  taste() {
    var adjective = "delicious";
    print "The " + this.flavor + " cake is " + adjective + "!";
  }
}

var cake = Cake();
cake.flavor = "German chocolate";
cake.taste();
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "The German chocolate cake is delicious!" {
		t.Fatalf("got %q", out)
	}
}

func TestInheritanceAndSuper(t *testing.T) {
	out, err := run(t, `
class Doughnut {
  cook() {
    print "Fry until golden brown.";
  }
}

class BostonCream < Doughnut {
  cook() {
    super.cook();
    print "Pipe full of custard and coat with chocolate.";
  }
}

BostonCream().cook();
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Fry until golden brown.\nPipe full of custard and coat with chocolate."
	if strings.TrimSpace(out) != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestRuntimeErrorOnBadOperand(t *testing.T) {
	_, err := run(t, `print "foo" - 1;`)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	var rerr *diagnostics.RuntimeError
	if !asRuntimeError(err, &rerr) {
		t.Fatalf("expected *diagnostics.RuntimeError, got %T: %v", err, err)
	}
	if rerr.Message != "Operands must be numbers." {
		t.Fatalf("got message %q", rerr.Message)
	}
}

func TestDivisionByZeroProducesInfinity(t *testing.T) {
	out, err := run(t, `print 1 / 0;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "+Inf" && strings.TrimSpace(out) != "Inf" {
		t.Fatalf("got %q", out)
	}
}

func TestUninitializedVarIsNil(t *testing.T) {
	out, err := run(t, `var x; print x;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "nil" {
		t.Fatalf("got %q", out)
	}
}

func TestLogicalOperatorsShortCircuit(t *testing.T) {
	out, err := run(t, `
print "hi" or 2;
print nil or "yes";
print false and "unreached";
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "hi\nyes\nfalse"
	if strings.TrimSpace(out) != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestWhileAndForLoops(t *testing.T) {
	out, err := run(t, `
var i = 0;
while (i < 3) {
  print i;
  i = i + 1;
}
for (var j = 0; j < 3; j = j + 1) {
  print j;
}
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "0\n1\n2\n0\n1\n2"
	if strings.TrimSpace(out) != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestClockIsRegisteredAndCallable(t *testing.T) {
	_, err := run(t, `print clock();`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAccessingUndefinedPropertyIsRuntimeError(t *testing.T) {
	_, err := run(t, `
class Foo {}
var f = Foo();
print f.bar;
`)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
}

// asRuntimeError is a small helper so the test file doesn't need to import
// errors just for this one assertion.
func asRuntimeError(err error, target **diagnostics.RuntimeError) bool {
	if re, ok := err.(*diagnostics.RuntimeError); ok {
		*target = re
		return true
	}
	return false
}
