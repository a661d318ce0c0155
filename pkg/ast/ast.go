// Package ast defines the node types produced by the Lox parser.
//
// Nodes form a closed set of tagged variants: every expression type
// implements the unexported exprNode marker and every statement type
// implements stmtNode, so downstream consumers (interpreter, printer, code
// generator) dispatch with an exhaustive type switch. Nodes are built
// bottom-up by the parser and never mutated afterwards.
package ast

import "github.com/will14smith/rlox/pkg/lexer"

// Expr represents an expression node.
type Expr interface {
	exprNode()
}

// Stmt represents a statement or declaration node.
type Stmt interface {
	stmtNode()
}

// Program is the root of a parse: the ordered top-level declarations.
type Program []Stmt

// Expressions

// Literal represents a number, string, boolean or nil literal.
// Value is float64, string, bool, or nil respectively.
type Literal struct {
	Value interface{}
}

func (*Literal) exprNode() {}

// Variable represents a reference to a named variable.
type Variable struct {
	Name lexer.Token
}

func (*Variable) exprNode() {}

// Assign represents: name = value. The parser guarantees the target is a
// plain identifier.
type Assign struct {
	Name  lexer.Token
	Value Expr
}

func (*Assign) exprNode() {}

// Logical represents: left and/or right. Kept separate from Binary because
// the operands short-circuit during evaluation.
type Logical struct {
	Left     Expr
	Operator lexer.Token
	Right    Expr
}

func (*Logical) exprNode() {}

// Binary represents: left op right for the arithmetic, comparison and
// equality operators.
type Binary struct {
	Left     Expr
	Operator lexer.Token
	Right    Expr
}

func (*Binary) exprNode() {}

// Unary represents: !operand or -operand.
type Unary struct {
	Operator lexer.Token
	Right    Expr
}

func (*Unary) exprNode() {}

// Call represents: callee(arguments...). Paren is the closing parenthesis,
// kept for error reporting at the call site.
type Call struct {
	Callee    Expr
	Paren     lexer.Token
	Arguments []Expr
}

func (*Call) exprNode() {}

// Grouping represents a parenthesized expression.
type Grouping struct {
	Expression Expr
}

func (*Grouping) exprNode() {}

// Statements

// ExpressionStmt wraps an expression evaluated for its side effects.
type ExpressionStmt struct {
	Expression Expr
}

func (*ExpressionStmt) stmtNode() {}

// PrintStmt represents: print expr;
type PrintStmt struct {
	Expression Expr
}

func (*PrintStmt) stmtNode() {}

// VarStmt represents: var name; or var name = initializer;
// Initializer is nil for an uninitialized declaration.
type VarStmt struct {
	Name        lexer.Token
	Initializer Expr
}

func (*VarStmt) stmtNode() {}

// BlockStmt represents a brace-delimited sequence of declarations.
type BlockStmt struct {
	Statements []Stmt
}

func (*BlockStmt) stmtNode() {}

// IfStmt represents an if statement. Else is nil when there is no else
// branch.
type IfStmt struct {
	Condition Expr
	Then      Stmt
	Else      Stmt
}

func (*IfStmt) stmtNode() {}

// WhileStmt represents a while loop. For loops are desugared into this node
// at parse time.
type WhileStmt struct {
	Condition Expr
	Body      Stmt
}

func (*WhileStmt) stmtNode() {}

// FunctionStmt represents a function declaration or a class method.
type FunctionStmt struct {
	Name   lexer.Token
	Params []lexer.Token
	Body   []Stmt
}

func (*FunctionStmt) stmtNode() {}

// ClassStmt represents a class declaration: a name and its methods.
type ClassStmt struct {
	Name    lexer.Token
	Methods []*FunctionStmt
}

func (*ClassStmt) stmtNode() {}

// ReturnStmt represents: return; or return value;
// Value is nil for a bare return. Keyword is the return token itself, kept
// for error reporting.
type ReturnStmt struct {
	Keyword lexer.Token
	Value   Expr
}

func (*ReturnStmt) stmtNode() {}
