package interp

import (
	"github.com/loxrun/lox/internal/diagnostics"
	"github.com/loxrun/lox/internal/lexer"
)

// Environment is a scope's name-to-value map plus a link to its enclosing
// scope. Unlike the donor project's case-insensitive identifier map (this
// language is case-sensitive), bindings live in a plain map[string]Value.
type Environment struct {
	values map[string]Value
	outer  *Environment
}

// NewEnvironment creates a root environment with no enclosing scope.
func NewEnvironment() *Environment {
	return &Environment{values: map[string]Value{}}
}

// NewEnclosedEnvironment creates an environment nested inside outer.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	return &Environment{values: map[string]Value{}, outer: outer}
}

// Define unconditionally installs a binding in this environment. Redefining
// an existing name overwrites it; this is how the global scope tolerates
// redeclaration.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Get returns the value bound to name, walking the enclosing chain.
func (e *Environment) Get(name lexer.Token) (Value, error) {
	if v, ok := e.values[name.Lexeme]; ok {
		return v, nil
	}
	if e.outer != nil {
		return e.outer.Get(name)
	}
	return nil, diagnostics.NewRuntimeError(name.Line, "Undefined variable '%s'.", name.Lexeme)
}

// Assign replaces the value bound to name in the nearest enclosing scope
// that already has a binding for it.
func (e *Environment) Assign(name lexer.Token, value Value) error {
	if _, ok := e.values[name.Lexeme]; ok {
		e.values[name.Lexeme] = value
		return nil
	}
	if e.outer != nil {
		return e.outer.Assign(name, value)
	}
	return diagnostics.NewRuntimeError(name.Line, "Undefined variable '%s'.", name.Lexeme)
}

// ancestor walks exactly distance hops up the enclosing chain.
func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.outer
	}
	return env
}

// GetAt reads name directly out of the environment distance hops up,
// bypassing the chain-walking fallback: the resolver already guarantees the
// binding exists there.
func (e *Environment) GetAt(distance int, name string) Value {
	return e.ancestor(distance).values[name]
}

// AssignAt writes name directly into the environment distance hops up.
func (e *Environment) AssignAt(distance int, name lexer.Token, value Value) {
	e.ancestor(distance).values[name.Lexeme] = value
}
