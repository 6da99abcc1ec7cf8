package interp

// Class is the runtime value produced by a class declaration: a name, an
// optional superclass, and its own method table. Drastically simplified
// from the donor project's IClassInfo (no virtual tables, properties,
// operator overloads, interfaces, or class variables): single inheritance
// and a flat method map is all this language has.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*LoxFunction
}

func NewClass(name string, superclass *Class, methods map[string]*LoxFunction) *Class {
	return &Class{Name: name, Superclass: superclass, Methods: methods}
}

// FindMethod looks up name in this class's own table, then recurses into
// the superclass chain.
func (c *Class) FindMethod(name string) *LoxFunction {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

func (c *Class) String() string { return c.Name }

// Call constructs a fresh instance and, if an initializer is declared,
// binds and invokes it with args before returning the instance.
func (c *Class) Call(in *Interpreter, args []Value) (Value, error) {
	instance := NewInstance(c)
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.Bind(instance).Call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}
