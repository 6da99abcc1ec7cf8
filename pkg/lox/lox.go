// Package lox is the embeddable entry point: construct an Engine, register
// any host functions it should expose as globals, then Eval a script.
package lox

import (
	"bytes"
	"context"
	"io"

	"github.com/loxrun/lox/internal/diagnostics"
	"github.com/loxrun/lox/internal/interp"
	"github.com/loxrun/lox/internal/lexer"
	"github.com/loxrun/lox/internal/parser"
	"github.com/loxrun/lox/internal/resolver"
)

// NativeFunc is a host function exposed to scripts via WithGlobal. args and
// the return value are the same Value sum type the evaluator uses
// internally: nil, bool, float64, string, or a Callable/instance passed
// back in from an earlier Eval.
type NativeFunc func(args []interp.Value) (interp.Value, error)

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithOutput additionally writes a script's print output to w; it is still
// captured in Result.Output.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) { e.stdout = w }
}

// WithStderr additionally writes static diagnostics and the runtime error,
// one per line, to w; they are still reported in Result.Diagnostics and
// Result.RuntimeErr.
func WithStderr(w io.Writer) Option {
	return func(e *Engine) { e.stderr = w }
}

// WithGlobal registers a native function under name, callable from any
// script this Engine evaluates, alongside the built-in clock().
func WithGlobal(name string, fn NativeFunc) Option {
	return func(e *Engine) {
		e.pendingGlobals[name] = fn
	}
}

// Engine is a reusable evaluation context: globals registered on it persist
// across calls to Eval, matching top-level REPL-style accumulation.
type Engine struct {
	stdout         io.Writer
	stderr         io.Writer
	pendingGlobals map[string]NativeFunc
	interp         *interp.Interpreter
}

// New constructs an Engine. By default Eval captures output internally and
// reports it via Result.Output/Result.Diagnostics rather than writing to
// the process's real stdout/stderr.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{pendingGlobals: map[string]NativeFunc{}}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Result is the outcome of one Eval call.
type Result struct {
	Success     bool
	Output      string
	Diagnostics []string // static errors and hints, formatted, in report order
	RuntimeErr  string   // formatted runtime error, empty if none
}

// Eval lexes, parses, resolves, and interprets script. Static errors (scan,
// parse, resolve) abort before any statement runs and are reported via
// Result.Diagnostics with Success false. A runtime error aborts after
// partial output and is reported via Result.RuntimeErr, also with Success
// false. ctx is polled once per top-level statement.
func (e *Engine) Eval(ctx context.Context, script string) (result *Result, err error) {
	defer func() {
		if e.stderr == nil || result == nil {
			return
		}
		for _, d := range result.Diagnostics {
			io.WriteString(e.stderr, d+"\n")
		}
		if result.RuntimeErr != "" {
			io.WriteString(e.stderr, result.RuntimeErr+"\n")
		}
	}()

	sink := diagnostics.NewCollectingSink()

	tokens := lexer.New(script, lexer.WithSink(sink)).Scan()
	stmts := parser.New(tokens, sink).Parse()

	if sink.HadError() {
		return &Result{Success: false, Diagnostics: renderDiagnostics(sink)}, nil
	}

	locals := resolver.New(sink).Resolve(stmts)
	if sink.HadError() {
		return &Result{Success: false, Diagnostics: renderDiagnostics(sink)}, nil
	}

	var out bytes.Buffer
	writer := e.outputWriter(&out)

	if e.interp == nil {
		e.interp = interp.New(writer, locals)
		for name, fn := range e.pendingGlobals {
			e.interp.Globals().Define(name, interp.NewNativeFunction(name, -1, func(args []interp.Value) (interp.Value, error) {
				return fn(args)
			}))
		}
	} else {
		e.interp.Reconfigure(writer, locals)
	}

	if err := e.interp.Interpret(ctx, stmts); err != nil {
		result := &Result{Success: false, Output: out.String(), Diagnostics: renderDiagnostics(sink)}
		if rerr, ok := err.(*diagnostics.RuntimeError); ok {
			result.RuntimeErr = rerr.Error()
		} else {
			result.RuntimeErr = err.Error()
		}
		return result, nil
	}

	return &Result{Success: true, Output: out.String(), Diagnostics: renderDiagnostics(sink)}, nil
}

func (e *Engine) outputWriter(out *bytes.Buffer) io.Writer {
	if e.stdout != nil {
		return io.MultiWriter(out, e.stdout)
	}
	return out
}

func renderDiagnostics(sink *diagnostics.CollectingSink) []string {
	items := sink.Diagnostics()
	rendered := make([]string, len(items))
	for i, d := range items {
		rendered[i] = d.String()
	}
	return rendered
}
