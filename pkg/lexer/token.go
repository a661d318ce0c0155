// Package lexer provides tokenization for Lox source code.
package lexer

// TokenType represents the type of a token.
type TokenType string

// Token types produced by the scanner.
const (
	// Single-character tokens
	LEFT_PAREN  TokenType = "LEFT_PAREN"  // (
	RIGHT_PAREN TokenType = "RIGHT_PAREN" // )
	LEFT_BRACE  TokenType = "LEFT_BRACE"  // {
	RIGHT_BRACE TokenType = "RIGHT_BRACE" // }
	COMMA       TokenType = "COMMA"       // ,
	DOT         TokenType = "DOT"         // .
	MINUS       TokenType = "MINUS"       // -
	PLUS        TokenType = "PLUS"        // +
	SEMICOLON   TokenType = "SEMICOLON"   // ;
	SLASH       TokenType = "SLASH"       // /
	STAR        TokenType = "STAR"        // *

	// One or two character tokens
	BANG          TokenType = "BANG"          // !
	BANG_EQUAL    TokenType = "BANG_EQUAL"    // !=
	EQUAL         TokenType = "EQUAL"         // =
	EQUAL_EQUAL   TokenType = "EQUAL_EQUAL"   // ==
	GREATER       TokenType = "GREATER"       // >
	GREATER_EQUAL TokenType = "GREATER_EQUAL" // >=
	LESS          TokenType = "LESS"          // <
	LESS_EQUAL    TokenType = "LESS_EQUAL"    // <=

	// Literals
	IDENTIFIER TokenType = "IDENTIFIER" // Variable/function/class names
	STRING     TokenType = "STRING"     // Double-quoted strings
	NUMBER     TokenType = "NUMBER"     // Numeric literals (e.g., 42, 3.14)

	// Keywords
	AND    TokenType = "AND"
	CLASS  TokenType = "CLASS"
	ELSE   TokenType = "ELSE"
	FALSE  TokenType = "FALSE"
	FUN    TokenType = "FUN"
	FOR    TokenType = "FOR"
	IF     TokenType = "IF"
	NIL    TokenType = "NIL"
	OR     TokenType = "OR"
	PRINT  TokenType = "PRINT"
	RETURN TokenType = "RETURN"
	SUPER  TokenType = "SUPER"
	THIS   TokenType = "THIS"
	TRUE   TokenType = "TRUE"
	VAR    TokenType = "VAR"
	WHILE  TokenType = "WHILE"

	// Special tokens
	ERROR TokenType = "ERROR" // Error token
	EOF   TokenType = "EOF"   // End of file
)

// Token represents a single token from the lexer.
// Literal holds the decoded value for NUMBER (float64) and STRING (string)
// tokens and is nil for everything else.
type Token struct {
	Type    TokenType   `json:"type"`
	Lexeme  string      `json:"lexeme"`
	Literal interface{} `json:"literal,omitempty"`
	Line    int         `json:"line"`
	Column  int         `json:"col"`
}

// NewToken creates a new token with the given properties.
func NewToken(typ TokenType, lexeme string, literal interface{}, line, col int) Token {
	return Token{
		Type:    typ,
		Lexeme:  lexeme,
		Literal: literal,
		Line:    line,
		Column:  col,
	}
}

// IsKeyword returns true if the token is a reserved word.
func (t Token) IsKeyword() bool {
	switch t.Type {
	case AND, CLASS, ELSE, FALSE, FUN, FOR, IF, NIL, OR,
		PRINT, RETURN, SUPER, THIS, TRUE, VAR, WHILE:
		return true
	}
	return false
}

// IsLiteral returns true if the token represents a literal value.
func (t Token) IsLiteral() bool {
	switch t.Type {
	case STRING, NUMBER, TRUE, FALSE, NIL:
		return true
	}
	return false
}

// keywords maps reserved words to their token types.
var keywords = map[string]TokenType{
	"and":    AND,
	"class":  CLASS,
	"else":   ELSE,
	"false":  FALSE,
	"fun":    FUN,
	"for":    FOR,
	"if":     IF,
	"nil":    NIL,
	"or":     OR,
	"print":  PRINT,
	"return": RETURN,
	"super":  SUPER,
	"this":   THIS,
	"true":   TRUE,
	"var":    VAR,
	"while":  WHILE,
}
