package parser

import (
	"github.com/will14smith/rlox/pkg/ast"
	"github.com/will14smith/rlox/pkg/lexer"
)

// Expression productions, one function per precedence level. Each level
// parses the next tighter-binding level and loops while an operator of its
// own level is present, which makes every binary level left-associative.

// expression parses the lowest-precedence production.
func (p *Parser) expression() (ast.Expr, error) {
	return p.assignment()
}

// assignment parses: IDENTIFIER "=" assignment | or. The target is parsed
// as a full expression first; it must unwrap to a plain variable reference,
// anything else is a syntax error. The value side recurses into assignment
// again, making "=" right-associative.
func (p *Parser) assignment() (ast.Expr, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}

	if p.match(lexer.EQUAL) {
		equals := p.previous()

		value, err := p.assignment()
		if err != nil {
			return nil, err
		}

		target, ok := expr.(*ast.Variable)
		if !ok {
			return nil, p.errorAt(equals, "Invalid assignment target")
		}
		return &ast.Assign{Name: target.Name, Value: value}, nil
	}

	return expr, nil
}

// or parses: and ( "or" and )*
func (p *Parser) or() (ast.Expr, error) {
	expr, err := p.and()
	if err != nil {
		return nil, err
	}

	for p.match(lexer.OR) {
		operator := p.previous()

		right, err := p.and()
		if err != nil {
			return nil, err
		}

		expr = &ast.Logical{Left: expr, Operator: operator, Right: right}
	}

	return expr, nil
}

// and parses: equality ( "and" equality )*
func (p *Parser) and() (ast.Expr, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}

	for p.match(lexer.AND) {
		operator := p.previous()

		right, err := p.equality()
		if err != nil {
			return nil, err
		}

		expr = &ast.Logical{Left: expr, Operator: operator, Right: right}
	}

	return expr, nil
}

// equality parses: comparison ( ( "!=" | "==" ) comparison )*
func (p *Parser) equality() (ast.Expr, error) {
	expr, err := p.comparison()
	if err != nil {
		return nil, err
	}

	for p.match(lexer.BANG_EQUAL, lexer.EQUAL_EQUAL) {
		operator := p.previous()

		right, err := p.comparison()
		if err != nil {
			return nil, err
		}

		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}

	return expr, nil
}

// comparison parses: addition ( ( ">" | ">=" | "<" | "<=" ) addition )*
func (p *Parser) comparison() (ast.Expr, error) {
	expr, err := p.addition()
	if err != nil {
		return nil, err
	}

	for p.match(lexer.GREATER, lexer.GREATER_EQUAL, lexer.LESS, lexer.LESS_EQUAL) {
		operator := p.previous()

		right, err := p.addition()
		if err != nil {
			return nil, err
		}

		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}

	return expr, nil
}

// addition parses: multiplication ( ( "-" | "+" ) multiplication )*
func (p *Parser) addition() (ast.Expr, error) {
	expr, err := p.multiplication()
	if err != nil {
		return nil, err
	}

	for p.match(lexer.MINUS, lexer.PLUS) {
		operator := p.previous()

		right, err := p.multiplication()
		if err != nil {
			return nil, err
		}

		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}

	return expr, nil
}

// multiplication parses: unary ( ( "/" | "*" ) unary )*
func (p *Parser) multiplication() (ast.Expr, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}

	for p.match(lexer.SLASH, lexer.STAR) {
		operator := p.previous()

		right, err := p.unary()
		if err != nil {
			return nil, err
		}

		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}

	return expr, nil
}

// unary parses: ( "!" | "-" ) unary | call
func (p *Parser) unary() (ast.Expr, error) {
	if p.match(lexer.BANG, lexer.MINUS) {
		operator := p.previous()

		right, err := p.unary()
		if err != nil {
			return nil, err
		}

		return &ast.Unary{Operator: operator, Right: right}, nil
	}

	return p.call()
}

// call parses: primary ( "(" arguments? ")" )*. Each parenthesized suffix
// wraps the running expression in another Call node, so a()() works.
func (p *Parser) call() (ast.Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for p.match(lexer.LEFT_PAREN) {
		expr, err = p.finishCall(expr)
		if err != nil {
			return nil, err
		}
	}

	return expr, nil
}

// finishCall parses the argument list and closing parenthesis. The opening
// parenthesis is already consumed. Lists longer than maxArity record a
// single error but every argument is still parsed and kept.
func (p *Parser) finishCall(callee ast.Expr) (ast.Expr, error) {
	var arguments []ast.Expr

	if !p.check(lexer.RIGHT_PAREN) {
		for {
			if len(arguments) == maxArity {
				p.addError(p.peek(), "Cannot have more than 255 arguments")
			}

			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			arguments = append(arguments, arg)

			if !p.match(lexer.COMMA) {
				break
			}
		}
	}

	paren, err := p.expect(lexer.RIGHT_PAREN, "Expected ')' after arguments")
	if err != nil {
		return nil, err
	}

	return &ast.Call{Callee: callee, Paren: paren, Arguments: arguments}, nil
}

// primary parses literals, identifiers and parenthesized expressions. Any
// other token cannot start an expression and is left unconsumed for the
// synchronizer.
func (p *Parser) primary() (ast.Expr, error) {
	switch {
	case p.match(lexer.FALSE):
		return &ast.Literal{Value: false}, nil
	case p.match(lexer.TRUE):
		return &ast.Literal{Value: true}, nil
	case p.match(lexer.NIL):
		return &ast.Literal{Value: nil}, nil

	case p.match(lexer.NUMBER, lexer.STRING):
		return &ast.Literal{Value: p.previous().Literal}, nil

	case p.match(lexer.IDENTIFIER):
		return &ast.Variable{Name: p.previous()}, nil

	case p.match(lexer.LEFT_PAREN):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RIGHT_PAREN, "Expected ')' after expression"); err != nil {
			return nil, err
		}
		return &ast.Grouping{Expression: expr}, nil
	}

	return nil, p.errorAt(p.peek(), "Expected expression")
}
