package interp

import (
	"fmt"
	"time"

	"github.com/will14smith/rlox/pkg/ast"
)

// Function is a declared Lox function bound to the environment it closed
// over.
type Function struct {
	declaration *ast.FunctionStmt
	closure     *Environment
}

// Arity returns the declared parameter count.
func (f *Function) Arity() int {
	return len(f.declaration.Params)
}

// Call binds the arguments into a fresh scope nested in the closure and
// executes the body. A return statement anywhere in the body unwinds to
// here; falling off the end yields nil.
func (f *Function) Call(i *Interpreter, arguments []Value) (Value, error) {
	env := NewEnclosed(f.closure)
	for idx, param := range f.declaration.Params {
		env.Define(param.Lexeme, arguments[idx])
	}

	if err := i.executeBlock(f.declaration.Body, env); err != nil {
		if ret, ok := err.(*returnValue); ok {
			return ret.value, nil
		}
		return nil, err
	}
	return nil, nil
}

func (f *Function) String() string {
	return fmt.Sprintf("<fn %s>", f.declaration.Name.Lexeme)
}

// Class is a declared Lox class. Calling it constructs an instance.
type Class struct {
	Name    string
	methods map[string]*Function
}

// Arity returns 0: the grammar has no initializers, so construction never
// takes arguments.
func (c *Class) Arity() int {
	return 0
}

// Call constructs a new instance of the class.
func (c *Class) Call(i *Interpreter, arguments []Value) (Value, error) {
	return &Instance{
		ID:     newInstanceID(c.Name),
		class:  c,
		fields: make(map[string]Value),
	}, nil
}

func (c *Class) String() string {
	return c.Name
}

// Method looks up a method by name.
func (c *Class) Method(name string) (*Function, bool) {
	method, ok := c.methods[name]
	return method, ok
}

// Instance is a constructed object. ID is unique per instance.
type Instance struct {
	ID     string
	class  *Class
	fields map[string]Value
}

func (in *Instance) String() string {
	return in.class.Name + " instance"
}

// nativeFunction wraps a Go function as a Lox callable.
type nativeFunction struct {
	name  string
	arity int
	fn    func(arguments []Value) (Value, error)
}

func (n *nativeFunction) Arity() int {
	return n.arity
}

func (n *nativeFunction) Call(i *Interpreter, arguments []Value) (Value, error) {
	return n.fn(arguments)
}

func (n *nativeFunction) String() string {
	return "<native fn>"
}

// clock returns the seconds since the Unix epoch, the one built-in.
func clock() *nativeFunction {
	return &nativeFunction{
		name:  "clock",
		arity: 0,
		fn: func(arguments []Value) (Value, error) {
			return float64(time.Now().UnixNano()) / float64(time.Second), nil
		},
	}
}
