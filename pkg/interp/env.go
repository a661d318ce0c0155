package interp

import (
	"fmt"

	"github.com/will14smith/rlox/pkg/lexer"
)

// Environment is a scope: a name-to-value table with a pointer to the
// enclosing scope. Lookup walks outward; the outermost environment holds
// the globals.
type Environment struct {
	values map[string]Value
	parent *Environment
}

// NewEnvironment creates a top-level environment.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]Value)}
}

// NewEnclosed creates an environment nested inside parent.
func NewEnclosed(parent *Environment) *Environment {
	return &Environment{values: make(map[string]Value), parent: parent}
}

// Define binds a name in this scope, shadowing any outer binding.
// Redefining an existing name in the same scope overwrites it.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Get resolves a variable reference, walking enclosing scopes.
func (e *Environment) Get(name lexer.Token) (Value, error) {
	if value, ok := e.values[name.Lexeme]; ok {
		return value, nil
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return nil, &RuntimeError{
		Token:   name,
		Message: fmt.Sprintf("Undefined variable %q", name.Lexeme),
	}
}

// Assign updates an existing binding, walking enclosing scopes. Assigning
// to a name that was never defined is a runtime error, not an implicit
// global definition.
func (e *Environment) Assign(name lexer.Token, value Value) error {
	if _, ok := e.values[name.Lexeme]; ok {
		e.values[name.Lexeme] = value
		return nil
	}
	if e.parent != nil {
		return e.parent.Assign(name, value)
	}
	return &RuntimeError{
		Token:   name,
		Message: fmt.Sprintf("Undefined variable %q", name.Lexeme),
	}
}
