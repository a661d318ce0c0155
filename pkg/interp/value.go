// Package interp evaluates Lox syntax trees.
package interp

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Value is a Lox runtime value: nil, bool, float64, string, or a Callable.
type Value interface{}

// Callable is anything invocable with the call syntax: declared functions,
// native functions and classes.
type Callable interface {
	Arity() int
	Call(i *Interpreter, arguments []Value) (Value, error)
}

// Truthy reports Lox truthiness: nil and false are falsey, everything else
// is truthy.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	}
	return true
}

// Equal reports Lox equality. Values of different types are never equal.
func Equal(a, b Value) bool {
	if a == nil && b == nil {
		return true
	}
	switch av := a.(type) {
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	}
	return a == b
}

// Stringify renders a value the way print displays it.
func Stringify(v Value) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	case interface{ String() string }:
		return v.String()
	}
	return "<unknown>"
}

// newInstanceID builds a unique instance identifier from the class name,
// e.g. "counter_1b4e28ba-2fa1-11d2-883f-0016d3cca427".
func newInstanceID(className string) string {
	return strings.ToLower(className) + "_" + uuid.New().String()
}
