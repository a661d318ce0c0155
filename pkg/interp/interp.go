// Package interp evaluates Lox syntax trees.
//
// The interpreter walks the tree directly: statements execute against an
// environment chain and expressions evaluate to Values. Runtime errors
// carry the token they arose at so the driver can report source positions.
package interp

import (
	"fmt"
	"io"
	"os"

	"github.com/will14smith/rlox/pkg/ast"
	"github.com/will14smith/rlox/pkg/lexer"
)

// RuntimeError represents an evaluation error at a specific token.
type RuntimeError struct {
	Token   lexer.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error at line %d, col %d: %s",
		e.Token.Line, e.Token.Column, e.Message)
}

// returnValue unwinds a return statement through executeBlock up to the
// enclosing function call. It is never surfaced to callers.
type returnValue struct {
	value Value
}

func (*returnValue) Error() string {
	return "return outside function"
}

// Interpreter executes programs. One Interpreter holds one global scope, so
// a REPL can feed it successive programs and keep state between them.
type Interpreter struct {
	globals *Environment
	env     *Environment
	stdout  io.Writer
}

// New creates an interpreter writing print output to stdout.
func New() *Interpreter {
	return NewWithOutput(os.Stdout)
}

// NewWithOutput creates an interpreter writing print output to w.
func NewWithOutput(w io.Writer) *Interpreter {
	globals := NewEnvironment()
	globals.Define("clock", clock())

	return &Interpreter{
		globals: globals,
		env:     globals,
		stdout:  w,
	}
}

// Interpret executes a program. The first runtime error stops execution
// and is returned.
func (i *Interpreter) Interpret(program ast.Program) error {
	for _, stmt := range program {
		if err := i.execute(stmt); err != nil {
			if _, ok := err.(*returnValue); ok {
				return &RuntimeError{Message: "Cannot return from top-level code"}
			}
			return err
		}
	}
	return nil
}

func (i *Interpreter) execute(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := i.evaluate(s.Expression)
		return err

	case *ast.PrintStmt:
		value, err := i.evaluate(s.Expression)
		if err != nil {
			return err
		}
		fmt.Fprintln(i.stdout, Stringify(value))
		return nil

	case *ast.VarStmt:
		var value Value
		if s.Initializer != nil {
			var err error
			value, err = i.evaluate(s.Initializer)
			if err != nil {
				return err
			}
		}
		i.env.Define(s.Name.Lexeme, value)
		return nil

	case *ast.BlockStmt:
		return i.executeBlock(s.Statements, NewEnclosed(i.env))

	case *ast.IfStmt:
		condition, err := i.evaluate(s.Condition)
		if err != nil {
			return err
		}
		if Truthy(condition) {
			return i.execute(s.Then)
		}
		if s.Else != nil {
			return i.execute(s.Else)
		}
		return nil

	case *ast.WhileStmt:
		for {
			condition, err := i.evaluate(s.Condition)
			if err != nil {
				return err
			}
			if !Truthy(condition) {
				return nil
			}
			if err := i.execute(s.Body); err != nil {
				return err
			}
		}

	case *ast.FunctionStmt:
		i.env.Define(s.Name.Lexeme, &Function{declaration: s, closure: i.env})
		return nil

	case *ast.ClassStmt:
		methods := make(map[string]*Function)
		for _, method := range s.Methods {
			methods[method.Name.Lexeme] = &Function{declaration: method, closure: i.env}
		}
		i.env.Define(s.Name.Lexeme, &Class{Name: s.Name.Lexeme, methods: methods})
		return nil

	case *ast.ReturnStmt:
		var value Value
		if s.Value != nil {
			var err error
			value, err = i.evaluate(s.Value)
			if err != nil {
				return err
			}
		}
		return &returnValue{value: value}
	}

	return fmt.Errorf("unhandled statement type %T", stmt)
}

// executeBlock runs statements in the given environment, restoring the
// previous one afterwards.
func (i *Interpreter) executeBlock(statements []ast.Stmt, env *Environment) error {
	previous := i.env
	i.env = env
	defer func() { i.env = previous }()

	for _, stmt := range statements {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) evaluate(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil

	case *ast.Variable:
		return i.env.Get(e.Name)

	case *ast.Assign:
		value, err := i.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		if err := i.env.Assign(e.Name, value); err != nil {
			return nil, err
		}
		return value, nil

	case *ast.Logical:
		left, err := i.evaluate(e.Left)
		if err != nil {
			return nil, err
		}
		// Short-circuit: the left operand decides whether the right one is
		// evaluated at all, and the result is an operand, not a boolean.
		if e.Operator.Type == lexer.OR {
			if Truthy(left) {
				return left, nil
			}
		} else {
			if !Truthy(left) {
				return left, nil
			}
		}
		return i.evaluate(e.Right)

	case *ast.Binary:
		return i.evaluateBinary(e)

	case *ast.Unary:
		right, err := i.evaluate(e.Right)
		if err != nil {
			return nil, err
		}
		switch e.Operator.Type {
		case lexer.BANG:
			return !Truthy(right), nil
		case lexer.MINUS:
			n, ok := right.(float64)
			if !ok {
				return nil, &RuntimeError{Token: e.Operator, Message: "Operand must be a number"}
			}
			return -n, nil
		}
		return nil, &RuntimeError{Token: e.Operator, Message: "Unknown unary operator"}

	case *ast.Call:
		return i.evaluateCall(e)

	case *ast.Grouping:
		return i.evaluate(e.Expression)
	}

	return nil, fmt.Errorf("unhandled expression type %T", expr)
}

func (i *Interpreter) evaluateBinary(e *ast.Binary) (Value, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case lexer.BANG_EQUAL:
		return !Equal(left, right), nil
	case lexer.EQUAL_EQUAL:
		return Equal(left, right), nil

	case lexer.PLUS:
		if ln, ok := left.(float64); ok {
			if rn, ok := right.(float64); ok {
				return ln + rn, nil
			}
		}
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs, nil
			}
		}
		return nil, &RuntimeError{
			Token:   e.Operator,
			Message: "Operands must be two numbers or two strings",
		}
	}

	ln, lok := left.(float64)
	rn, rok := right.(float64)
	if !lok || !rok {
		return nil, &RuntimeError{Token: e.Operator, Message: "Operands must be numbers"}
	}

	switch e.Operator.Type {
	case lexer.MINUS:
		return ln - rn, nil
	case lexer.STAR:
		return ln * rn, nil
	case lexer.SLASH:
		if rn == 0 {
			return nil, &RuntimeError{Token: e.Operator, Message: "Division by zero"}
		}
		return ln / rn, nil
	case lexer.GREATER:
		return ln > rn, nil
	case lexer.GREATER_EQUAL:
		return ln >= rn, nil
	case lexer.LESS:
		return ln < rn, nil
	case lexer.LESS_EQUAL:
		return ln <= rn, nil
	}

	return nil, &RuntimeError{Token: e.Operator, Message: "Unknown binary operator"}
}

func (i *Interpreter) evaluateCall(e *ast.Call) (Value, error) {
	callee, err := i.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	arguments := make([]Value, 0, len(e.Arguments))
	for _, arg := range e.Arguments {
		value, err := i.evaluate(arg)
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, value)
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, &RuntimeError{
			Token:   e.Paren,
			Message: "Can only call functions and classes",
		}
	}

	if len(arguments) != callable.Arity() {
		return nil, &RuntimeError{
			Token:   e.Paren,
			Message: fmt.Sprintf("Expected %d arguments but got %d", callable.Arity(), len(arguments)),
		}
	}

	return callable.Call(i, arguments)
}
