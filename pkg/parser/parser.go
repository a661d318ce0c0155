// Package parser converts Lox token streams into syntax trees.
//
// The parser is a recursive-descent implementation with one function per
// grammar production. Expression productions live in expr.go and climb the
// operator precedence ladder; statement productions live in stmt.go. Errors
// never abort the whole parse: each failed declaration is recorded and the
// parser resynchronizes at the next statement boundary, so a single pass
// returns a best-effort tree plus every error found.
//
// The input must be terminated by exactly one EOF token; the lexer
// guarantees this.
package parser

import (
	"fmt"

	"github.com/will14smith/rlox/pkg/ast"
	"github.com/will14smith/rlox/pkg/lexer"
)

// maxArity bounds parameter and argument list lengths. Exceeding it is
// reported but does not stop the parse.
const maxArity = 255

// ParseError represents a syntax error at a specific token.
type ParseError struct {
	Token   lexer.Token `json:"token"`
	Message string      `json:"message"`
}

func (e *ParseError) Error() string {
	if e.Token.Type == lexer.EOF {
		return fmt.Sprintf("parse error at line %d, col %d at end: %s",
			e.Token.Line, e.Token.Column, e.Message)
	}
	return fmt.Sprintf("parse error at line %d, col %d at %q: %s",
		e.Token.Line, e.Token.Column, e.Token.Lexeme, e.Message)
}

// Parser holds the state for a single parse: the token stream, the read
// position and the errors collected so far. A Parser is not safe for
// concurrent use; parse independent streams with independent Parsers.
type Parser struct {
	tokens []lexer.Token
	pos    int
	errors []ParseError
}

// New creates a parser for the given token stream.
func New(tokens []lexer.Token) *Parser {
	return &Parser{
		tokens: tokens,
		pos:    0,
		errors: nil,
	}
}

// Parse parses the whole token stream and returns the program together with
// every syntax error encountered. When the error list is non-empty the
// program is best-effort: declarations that failed to parse are omitted.
// Strict callers must treat any error as overall failure; tooling may still
// use the partial tree.
func Parse(tokens []lexer.Token) (ast.Program, []ParseError) {
	return New(tokens).Parse()
}

// Parse runs the top-level program production.
func (p *Parser) Parse() (ast.Program, []ParseError) {
	program := ast.Program{}

	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			program = append(program, stmt)
		}
	}

	return program, p.errors
}

// Cursor operations. The position never moves past the EOF token.

// peek returns the current token without consuming it.
func (p *Parser) peek() lexer.Token {
	return p.peekAhead(0)
}

// peekAhead returns the token at current+offset without consuming anything.
// Offsets past the end of the stream return the EOF token.
func (p *Parser) peekAhead(offset int) lexer.Token {
	pos := p.pos + offset
	if pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[pos]
}

// previous returns the most recently consumed token.
func (p *Parser) previous() lexer.Token {
	if p.pos == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.pos-1]
}

// advance consumes and returns the current token.
func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if !p.isAtEnd() {
		p.pos++
	}
	return tok
}

// isAtEnd returns true when the current token is EOF.
func (p *Parser) isAtEnd() bool {
	return p.peek().Type == lexer.EOF
}

// check tests the current token's type without consuming it.
func (p *Parser) check(typ lexer.TokenType) bool {
	return p.peek().Type == typ
}

// match consumes the current token only if its type is one of the given
// types.
func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, typ := range types {
		if p.check(typ) {
			p.advance()
			return true
		}
	}
	return false
}

// expect consumes the current token if it has the given type, otherwise it
// returns a syntax error referencing the current token.
func (p *Parser) expect(typ lexer.TokenType, message string) (lexer.Token, error) {
	if p.check(typ) {
		return p.advance(), nil
	}
	return lexer.Token{}, p.errorAt(p.peek(), message)
}

// Error handling

// errorAt constructs a syntax error without recording it. Productions
// return the error up to declaration, which records it and resynchronizes.
func (p *Parser) errorAt(tok lexer.Token, message string) *ParseError {
	return &ParseError{Token: tok, Message: message}
}

// addError records a non-fatal error, such as an arity overflow, without
// interrupting the current production.
func (p *Parser) addError(tok lexer.Token, message string) {
	p.errors = append(p.errors, ParseError{Token: tok, Message: message})
}

// record stores an error raised by a failed production.
func (p *Parser) record(err error) {
	if pe, ok := err.(*ParseError); ok {
		p.errors = append(p.errors, *pe)
		return
	}
	p.errors = append(p.errors, ParseError{Token: p.peek(), Message: err.Error()})
}

// synchronize discards tokens until a likely statement boundary: just past
// a semicolon, in front of a declaration keyword, or EOF. The leading
// advance guarantees forward progress even when no boundary is found.
func (p *Parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Type == lexer.SEMICOLON {
			return
		}

		switch p.peek().Type {
		case lexer.CLASS, lexer.FUN, lexer.VAR, lexer.FOR,
			lexer.IF, lexer.WHILE, lexer.PRINT, lexer.RETURN:
			return
		}

		p.advance()
	}
}
