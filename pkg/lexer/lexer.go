// Package lexer provides tokenization for Lox source code.
//
// The scanner performs character-by-character processing of a source string
// and produces the token stream consumed by the parser. Comments and
// whitespace are discarded; the stream is always terminated by a single EOF
// token so the parser can rely on that invariant.
package lexer

import (
	"fmt"
	"io"
	"strconv"
)

// ScanError represents a lexical error with position information.
type ScanError struct {
	Message string `json:"message"`
	Line    int    `json:"line"`
	Column  int    `json:"col"`
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan error at line %d, col %d: %s", e.Line, e.Column, e.Message)
}

// Lexer tokenizes Lox source code.
type Lexer struct {
	input  string // The source code being tokenized
	start  int    // Start of the token currently being scanned
	pos    int    // Current position in input
	line   int    // Current line number (1-indexed)
	col    int    // Current column number (0-indexed)
	tokens []Token
	errors []ScanError
}

// New creates a new Lexer for the given input.
func New(input string) *Lexer {
	return &Lexer{
		input:  input,
		pos:    0,
		line:   1,
		col:    0,
		tokens: make([]Token, 0),
	}
}

// NewFromReader creates a new Lexer from an io.Reader.
func NewFromReader(r io.Reader) (*Lexer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return New(string(data)), nil
}

// Tokenize processes the entire input and returns all tokens plus any
// lexical errors. The token slice always ends with an EOF token, even when
// errors occurred, so a parse of the surviving tokens is still possible.
func (l *Lexer) Tokenize() ([]Token, []ScanError) {
	for !l.isAtEnd() {
		l.start = l.pos
		l.scanToken()
	}
	l.tokens = append(l.tokens, NewToken(EOF, "", nil, l.line, l.col))
	return l.tokens, l.errors
}

// Helper methods for character access and movement

func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekNext() byte {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

func (l *Lexer) advance() byte {
	ch := l.input[l.pos]
	l.pos++
	l.col++
	return ch
}

// match consumes the next character only if it equals expected.
func (l *Lexer) match(expected byte) bool {
	if l.isAtEnd() || l.input[l.pos] != expected {
		return false
	}
	l.pos++
	l.col++
	return true
}

func (l *Lexer) addToken(typ TokenType, literal interface{}) {
	lexeme := l.input[l.start:l.pos]
	startCol := l.col - len(lexeme)
	if startCol < 0 {
		startCol = 0
	}
	l.tokens = append(l.tokens, NewToken(typ, lexeme, literal, l.line, startCol))
}

func (l *Lexer) addError(message string) {
	l.errors = append(l.errors, ScanError{
		Message: message,
		Line:    l.line,
		Column:  l.col,
	})
}

// scanToken scans a single token starting at l.start.
func (l *Lexer) scanToken() {
	ch := l.advance()

	switch ch {
	case '(':
		l.addToken(LEFT_PAREN, nil)
	case ')':
		l.addToken(RIGHT_PAREN, nil)
	case '{':
		l.addToken(LEFT_BRACE, nil)
	case '}':
		l.addToken(RIGHT_BRACE, nil)
	case ',':
		l.addToken(COMMA, nil)
	case '.':
		l.addToken(DOT, nil)
	case '-':
		l.addToken(MINUS, nil)
	case '+':
		l.addToken(PLUS, nil)
	case ';':
		l.addToken(SEMICOLON, nil)
	case '*':
		l.addToken(STAR, nil)

	case '!':
		if l.match('=') {
			l.addToken(BANG_EQUAL, nil)
		} else {
			l.addToken(BANG, nil)
		}
	case '=':
		if l.match('=') {
			l.addToken(EQUAL_EQUAL, nil)
		} else {
			l.addToken(EQUAL, nil)
		}
	case '<':
		if l.match('=') {
			l.addToken(LESS_EQUAL, nil)
		} else {
			l.addToken(LESS, nil)
		}
	case '>':
		if l.match('=') {
			l.addToken(GREATER_EQUAL, nil)
		} else {
			l.addToken(GREATER, nil)
		}

	case '/':
		if l.match('/') {
			// Line comment, discarded
			for !l.isAtEnd() && l.peek() != '\n' {
				l.advance()
			}
		} else {
			l.addToken(SLASH, nil)
		}

	case ' ', '\r', '\t':
		// Whitespace, discarded
	case '\n':
		l.line++
		l.col = 0

	case '"':
		l.scanString()

	default:
		switch {
		case isDigit(ch):
			l.scanNumber()
		case isAlpha(ch):
			l.scanIdentifier()
		default:
			l.addError(fmt.Sprintf("unexpected character %q", ch))
		}
	}
}

// scanString scans a double-quoted string literal. The opening quote has
// already been consumed. Lox strings have no escape sequences and may span
// multiple lines.
func (l *Lexer) scanString() {
	for !l.isAtEnd() && l.peek() != '"' {
		if l.peek() == '\n' {
			l.line++
			l.col = -1
		}
		l.advance()
	}

	if l.isAtEnd() {
		l.addError("unterminated string")
		return
	}
	l.advance() // closing quote

	value := l.input[l.start+1 : l.pos-1]
	l.addToken(STRING, value)
}

// scanNumber scans an integer or decimal literal.
func (l *Lexer) scanNumber() {
	for isDigit(l.peek()) {
		l.advance()
	}

	// Fractional part: only consume the dot when a digit follows, so that
	// "1.foo" lexes as NUMBER DOT IDENTIFIER.
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	lexeme := l.input[l.start:l.pos]
	value, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		l.addError(fmt.Sprintf("invalid number literal %q", lexeme))
		return
	}
	l.addToken(NUMBER, value)
}

// scanIdentifier scans an identifier or reserved word.
func (l *Lexer) scanIdentifier() {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}

	lexeme := l.input[l.start:l.pos]
	if typ, ok := keywords[lexeme]; ok {
		l.addToken(typ, nil)
	} else {
		l.addToken(IDENTIFIER, nil)
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isAlphaNumeric(ch byte) bool {
	return isAlpha(ch) || isDigit(ch)
}
