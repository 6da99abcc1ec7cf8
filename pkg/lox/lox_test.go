package lox

import (
	"context"
	"testing"

	"github.com/loxrun/lox/internal/interp"
)

func TestEvalPrintsOutput(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := engine.Eval(context.Background(), `print 1 + 2;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got diagnostics=%v runtimeErr=%q", result.Diagnostics, result.RuntimeErr)
	}
	if result.Output != "3\n" {
		t.Fatalf("got output %q", result.Output)
	}
}

func TestEvalReportsStaticError(t *testing.T) {
	engine, _ := New()
	result, err := engine.Eval(context.Background(), `print ;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success {
		t.Fatal("expected failure")
	}
	if len(result.Diagnostics) == 0 {
		t.Fatal("expected at least one diagnostic")
	}
}

func TestEvalReportsRuntimeError(t *testing.T) {
	engine, _ := New()
	result, err := engine.Eval(context.Background(), `print "a" - 1;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success {
		t.Fatal("expected failure")
	}
	if result.RuntimeErr == "" {
		t.Fatal("expected a runtime error message")
	}
}

func TestEvalPersistsGlobalsAcrossCalls(t *testing.T) {
	engine, _ := New()
	if _, err := engine.Eval(context.Background(), `var x = 10;`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := engine.Eval(context.Background(), `print x;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success || result.Output != "10\n" {
		t.Fatalf("got success=%v output=%q", result.Success, result.Output)
	}
}

func TestWithGlobalRegistersNativeFunction(t *testing.T) {
	engine, err := New(WithGlobal("double", func(args []interp.Value) (interp.Value, error) {
		n := args[0].(float64)
		return n * 2, nil
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := engine.Eval(context.Background(), `print double(21);`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success || result.Output != "42\n" {
		t.Fatalf("got success=%v output=%q", result.Success, result.Output)
	}
}
