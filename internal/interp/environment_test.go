package interp

import (
	"testing"

	"github.com/loxrun/lox/internal/lexer"
)

func tok(lexeme string) lexer.Token {
	return lexer.Token{Type: lexer.IDENTIFIER, Lexeme: lexeme, Line: 1}
}

func TestEnvironmentDefineAndGet(t *testing.T) {
	env := NewEnvironment()
	env.Define("a", 1.0)

	v, err := env.Get(tok("a"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 1.0 {
		t.Fatalf("got %v, want 1.0", v)
	}
}

func TestEnvironmentGetUndefinedReportsRuntimeError(t *testing.T) {
	env := NewEnvironment()
	_, err := env.Get(tok("missing"))
	if err == nil {
		t.Fatal("expected an error")
	}
	if err.Error() != "Undefined variable 'missing'.\n[line 1]" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestEnvironmentAssignWalksChain(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("a", 1.0)
	inner := NewEnclosedEnvironment(outer)

	if err := inner.Assign(tok("a"), 2.0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v, _ := outer.Get(tok("a"))
	if v != 2.0 {
		t.Fatalf("got %v, want 2.0", v)
	}
}

func TestEnvironmentAssignUndefinedIsError(t *testing.T) {
	env := NewEnvironment()
	if err := env.Assign(tok("missing"), 1.0); err == nil {
		t.Fatal("expected an error")
	}
}

func TestEnvironmentGetAtAndAssignAt(t *testing.T) {
	global := NewEnvironment()
	middle := NewEnclosedEnvironment(global)
	inner := NewEnclosedEnvironment(middle)
	middle.Define("a", 1.0)

	if v := inner.GetAt(1, "a"); v != 1.0 {
		t.Fatalf("got %v, want 1.0", v)
	}

	inner.AssignAt(1, tok("a"), 5.0)
	if v := middle.values["a"]; v != 5.0 {
		t.Fatalf("got %v, want 5.0", v)
	}
}

func TestEnvironmentRedefineOverwrites(t *testing.T) {
	env := NewEnvironment()
	env.Define("a", 1.0)
	env.Define("a", 2.0)

	v, _ := env.Get(tok("a"))
	if v != 2.0 {
		t.Fatalf("got %v, want 2.0 after redefine", v)
	}
}
