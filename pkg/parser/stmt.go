package parser

import (
	"fmt"

	"github.com/will14smith/rlox/pkg/ast"
	"github.com/will14smith/rlox/pkg/lexer"
)

// Statement productions. declaration is the recovery boundary: when any
// production below it fails, the error is recorded here and the parser
// resynchronizes, so one malformed statement produces one error.

// declaration parses: classDecl | funDecl | varDecl | statement.
// It returns nil after an error, in which case the statement is omitted
// from the program.
func (p *Parser) declaration() ast.Stmt {
	var stmt ast.Stmt
	var err error

	switch {
	case p.match(lexer.CLASS):
		stmt, err = p.classDeclaration()
	case p.match(lexer.FUN):
		stmt, err = p.function("function")
	case p.match(lexer.VAR):
		stmt, err = p.varDeclaration()
	default:
		stmt, err = p.statement()
	}

	if err != nil {
		p.record(err)
		p.synchronize()
		return nil
	}
	return stmt
}

// classDeclaration parses: "class" IDENTIFIER "{" function* "}". The class
// keyword is already consumed. The grammar has no inheritance clause and no
// field declarations, only methods.
func (p *Parser) classDeclaration() (ast.Stmt, error) {
	name, err := p.expect(lexer.IDENTIFIER, "Expected class name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.LEFT_BRACE, "Expected '{' before class body"); err != nil {
		return nil, err
	}

	var methods []*ast.FunctionStmt
	for !p.check(lexer.RIGHT_BRACE) && !p.isAtEnd() {
		method, err := p.function("method")
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}

	if _, err := p.expect(lexer.RIGHT_BRACE, "Expected '}' after class body"); err != nil {
		return nil, err
	}

	return &ast.ClassStmt{Name: name, Methods: methods}, nil
}

// function parses a named function: IDENTIFIER "(" parameters? ")" block.
// kind is "function" or "method" and only affects error messages. The
// parameter list shares the call-site arity cap; overflow records a single
// error and parsing continues.
func (p *Parser) function(kind string) (*ast.FunctionStmt, error) {
	name, err := p.expect(lexer.IDENTIFIER, fmt.Sprintf("Expected %s name", kind))
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.LEFT_PAREN, fmt.Sprintf("Expected '(' after %s name", kind)); err != nil {
		return nil, err
	}

	var params []lexer.Token
	if !p.check(lexer.RIGHT_PAREN) {
		for {
			if len(params) == maxArity {
				p.addError(p.peek(), "Cannot have more than 255 parameters")
			}

			param, err := p.expect(lexer.IDENTIFIER, "Expected parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, param)

			if !p.match(lexer.COMMA) {
				break
			}
		}
	}

	if _, err := p.expect(lexer.RIGHT_PAREN, "Expected ')' after parameters"); err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.LEFT_BRACE, fmt.Sprintf("Expected '{' before %s body", kind)); err != nil {
		return nil, err
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}

	return &ast.FunctionStmt{Name: name, Params: params, Body: body}, nil
}

// varDeclaration parses: "var" IDENTIFIER ( "=" expression )? ";". The var
// keyword is already consumed. A missing initializer stays nil; defaulting
// is the consumer's business.
func (p *Parser) varDeclaration() (ast.Stmt, error) {
	name, err := p.expect(lexer.IDENTIFIER, "Expected variable name")
	if err != nil {
		return nil, err
	}

	var initializer ast.Expr
	if p.match(lexer.EQUAL) {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(lexer.SEMICOLON, "Expected ';' after variable declaration"); err != nil {
		return nil, err
	}

	return &ast.VarStmt{Name: name, Initializer: initializer}, nil
}

// statement dispatches on the leading token.
func (p *Parser) statement() (ast.Stmt, error) {
	switch {
	case p.match(lexer.FOR):
		return p.forStatement()
	case p.match(lexer.IF):
		return p.ifStatement()
	case p.match(lexer.PRINT):
		return p.printStatement()
	case p.match(lexer.RETURN):
		return p.returnStatement()
	case p.match(lexer.WHILE):
		return p.whileStatement()
	case p.match(lexer.LEFT_BRACE):
		statements, err := p.block()
		if err != nil {
			return nil, err
		}
		return &ast.BlockStmt{Statements: statements}, nil
	}

	return p.expressionStatement()
}

// forStatement parses a for loop and desugars it at parse time: the result
// is a while loop, wrapped in a block with the initializer when present,
// with the increment appended to the body when present. There is no For
// node; downstream consumers only ever see Block/While/Var.
func (p *Parser) forStatement() (ast.Stmt, error) {
	if _, err := p.expect(lexer.LEFT_PAREN, "Expected '(' after 'for'"); err != nil {
		return nil, err
	}

	var initializer ast.Stmt
	var err error
	switch {
	case p.match(lexer.SEMICOLON):
		initializer = nil
	case p.match(lexer.VAR):
		initializer, err = p.varDeclaration()
	default:
		initializer, err = p.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	// An omitted condition defaults to a literal true.
	var condition ast.Expr = &ast.Literal{Value: true}
	if !p.check(lexer.SEMICOLON) {
		condition, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.SEMICOLON, "Expected ';' after for condition"); err != nil {
		return nil, err
	}

	var increment ast.Expr
	if !p.check(lexer.RIGHT_PAREN) {
		increment, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.RIGHT_PAREN, "Expected ')' after for update"); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if increment != nil {
		body = &ast.BlockStmt{Statements: []ast.Stmt{
			body,
			&ast.ExpressionStmt{Expression: increment},
		}}
	}

	body = &ast.WhileStmt{Condition: condition, Body: body}

	if initializer != nil {
		body = &ast.BlockStmt{Statements: []ast.Stmt{initializer, body}}
	}

	return body, nil
}

// ifStatement parses: "if" "(" expression ")" statement ( "else" statement )?
// An else always binds to the nearest unmatched if: this production greedily
// consumes one following else, which resolves the dangling-else ambiguity
// without lookahead.
func (p *Parser) ifStatement() (ast.Stmt, error) {
	if _, err := p.expect(lexer.LEFT_PAREN, "Expected '(' after 'if'"); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RIGHT_PAREN, "Expected ')' after if condition"); err != nil {
		return nil, err
	}

	thenBranch, err := p.statement()
	if err != nil {
		return nil, err
	}

	var elseBranch ast.Stmt
	if p.match(lexer.ELSE) {
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}

	return &ast.IfStmt{Condition: condition, Then: thenBranch, Else: elseBranch}, nil
}

// printStatement parses: "print" expression ";"
func (p *Parser) printStatement() (ast.Stmt, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.SEMICOLON, "Expected ';' after value"); err != nil {
		return nil, err
	}

	return &ast.PrintStmt{Expression: value}, nil
}

// returnStatement parses: "return" expression? ";"
func (p *Parser) returnStatement() (ast.Stmt, error) {
	keyword := p.previous()

	var value ast.Expr
	var err error
	if !p.check(lexer.SEMICOLON) {
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(lexer.SEMICOLON, "Expected ';' after return value"); err != nil {
		return nil, err
	}

	return &ast.ReturnStmt{Keyword: keyword, Value: value}, nil
}

// whileStatement parses: "while" "(" expression ")" statement
func (p *Parser) whileStatement() (ast.Stmt, error) {
	if _, err := p.expect(lexer.LEFT_PAREN, "Expected '(' after 'while'"); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RIGHT_PAREN, "Expected ')' after while condition"); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	return &ast.WhileStmt{Condition: condition, Body: body}, nil
}

// block parses declarations until the closing brace. The opening brace is
// already consumed. Hitting EOF first is an error; the enclosing construct
// is abandoned.
func (p *Parser) block() ([]ast.Stmt, error) {
	statements := []ast.Stmt{}

	for !p.check(lexer.RIGHT_BRACE) && !p.isAtEnd() {
		stmt, err := p.blockDeclaration()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}

	if _, err := p.expect(lexer.RIGHT_BRACE, "Expected '}' after block"); err != nil {
		return nil, err
	}

	return statements, nil
}

// blockDeclaration parses one declaration inside a block, propagating the
// error instead of recovering locally. Recovery stays at the declaration
// production so a malformed statement aborts its whole enclosing block
// exactly once.
func (p *Parser) blockDeclaration() (ast.Stmt, error) {
	switch {
	case p.match(lexer.CLASS):
		return p.classDeclaration()
	case p.match(lexer.FUN):
		return p.function("function")
	case p.match(lexer.VAR):
		return p.varDeclaration()
	}
	return p.statement()
}

// expressionStatement parses: expression ";"
func (p *Parser) expressionStatement() (ast.Stmt, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.SEMICOLON, "Expected ';' after value"); err != nil {
		return nil, err
	}

	return &ast.ExpressionStmt{Expression: value}, nil
}
