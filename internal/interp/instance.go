package interp

import (
	"github.com/loxrun/lox/internal/diagnostics"
	"github.com/loxrun/lox/internal/lexer"
)

// Instance is a runtime object: a reference to its class plus its own
// field map. Unlike the donor project's ObjectInstance, there is no
// reference-counting bookkeeping here (RefCount/Destroyed/
// DestroyCallDepth): Go's garbage collector owns instance lifetime.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: map[string]Value{}}
}

func (i *Instance) String() string { return i.Class.Name + " instance" }

// Get returns a field if present, otherwise the named method bound to this
// instance, otherwise a runtime error.
func (i *Instance) Get(name lexer.Token) (Value, error) {
	if v, ok := i.Fields[name.Lexeme]; ok {
		return v, nil
	}
	if method := i.Class.FindMethod(name.Lexeme); method != nil {
		return method.Bind(i), nil
	}
	return nil, diagnostics.NewRuntimeError(name.Line, "Undefined property '%s'.", name.Lexeme)
}

// Set unconditionally installs a field, creating it if absent.
func (i *Instance) Set(name lexer.Token, value Value) {
	i.Fields[name.Lexeme] = value
}
