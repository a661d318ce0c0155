package ast

import (
	"testing"

	"github.com/will14smith/rlox/pkg/lexer"
)

func ident(name string) lexer.Token {
	return lexer.Token{Type: lexer.IDENTIFIER, Lexeme: name, Line: 1}
}

func op(typ lexer.TokenType, lexeme string) lexer.Token {
	return lexer.Token{Type: typ, Lexeme: lexeme, Line: 1}
}

func TestFormatLiteral(t *testing.T) {
	tests := []struct {
		value interface{}
		want  string
	}{
		{nil, "nil"},
		{true, "true"},
		{false, "false"},
		{float64(42), "42"},
		{float64(3.5), "3.5"},
		{float64(0), "0"},
		{"abc", `"abc"`},
		{"", `""`},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatLiteral(tt.value); got != tt.want {
				t.Errorf("FormatLiteral(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestPrintExpr(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{
			"binary",
			&Binary{
				Left:     &Literal{Value: float64(1)},
				Operator: op(lexer.PLUS, "+"),
				Right:    &Literal{Value: float64(2)},
			},
			"1 + 2",
		},
		{
			"unary",
			&Unary{Operator: op(lexer.MINUS, "-"), Right: &Variable{Name: ident("x")}},
			"-x",
		},
		{
			"grouping",
			&Grouping{Expression: &Literal{Value: true}},
			"(true)",
		},
		{
			"assignment",
			&Assign{Name: ident("x"), Value: &Literal{Value: float64(1)}},
			"x = 1",
		},
		{
			"logical",
			&Logical{
				Left:     &Variable{Name: ident("a")},
				Operator: op(lexer.OR, "or"),
				Right:    &Variable{Name: ident("b")},
			},
			"a or b",
		},
		{
			"call",
			&Call{
				Callee: &Variable{Name: ident("f")},
				Arguments: []Expr{
					&Literal{Value: float64(1)},
					&Variable{Name: ident("x")},
				},
			},
			"f(1, x)",
		},
		{
			"call no args",
			&Call{Callee: &Variable{Name: ident("clock")}},
			"clock()",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PrintExpr(tt.expr); got != tt.want {
				t.Errorf("PrintExpr() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintStmt(t *testing.T) {
	tests := []struct {
		name string
		stmt Stmt
		want string
	}{
		{
			"print",
			&PrintStmt{Expression: &Literal{Value: "hi"}},
			"print \"hi\";\n",
		},
		{
			"var with initializer",
			&VarStmt{Name: ident("x"), Initializer: &Literal{Value: float64(1)}},
			"var x = 1;\n",
		},
		{
			"var bare",
			&VarStmt{Name: ident("x")},
			"var x;\n",
		},
		{
			"return bare",
			&ReturnStmt{Keyword: op(lexer.RETURN, "return")},
			"return;\n",
		},
		{
			"return value",
			&ReturnStmt{Keyword: op(lexer.RETURN, "return"), Value: &Literal{Value: nil}},
			"return nil;\n",
		},
		{
			"block",
			&BlockStmt{Statements: []Stmt{
				&ExpressionStmt{Expression: &Variable{Name: ident("x")}},
			}},
			"{\n    x;\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PrintStatement(tt.stmt); got != tt.want {
				t.Errorf("PrintStatement() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintIfIndentsBareBranch(t *testing.T) {
	stmt := &IfStmt{
		Condition: &Variable{Name: ident("a")},
		Then:      &PrintStmt{Expression: &Literal{Value: float64(1)}},
		Else: &BlockStmt{Statements: []Stmt{
			&PrintStmt{Expression: &Literal{Value: float64(2)}},
		}},
	}

	want := "if (a)\n    print 1;\nelse\n{\n    print 2;\n}\n"
	if got := PrintStatement(stmt); got != want {
		t.Errorf("PrintStatement() = %q, want %q", got, want)
	}
}

func TestPrintFunctionAndClass(t *testing.T) {
	fn := &FunctionStmt{
		Name:   ident("add"),
		Params: []lexer.Token{ident("a"), ident("b")},
		Body: []Stmt{
			&ReturnStmt{
				Keyword: op(lexer.RETURN, "return"),
				Value: &Binary{
					Left:     &Variable{Name: ident("a")},
					Operator: op(lexer.PLUS, "+"),
					Right:    &Variable{Name: ident("b")},
				},
			},
		},
	}

	want := "fun add(a, b) {\n    return a + b;\n}\n"
	if got := PrintStatement(fn); got != want {
		t.Errorf("PrintStatement(fn) = %q, want %q", got, want)
	}

	class := &ClassStmt{Name: ident("Calc"), Methods: []*FunctionStmt{fn}}
	wantClass := "class Calc {\n    add(a, b) {\n        return a + b;\n    }\n}\n"
	if got := PrintStatement(class); got != wantClass {
		t.Errorf("PrintStatement(class) = %q, want %q", got, wantClass)
	}
}

func TestPrintProgram(t *testing.T) {
	program := Program{
		&VarStmt{Name: ident("x"), Initializer: &Literal{Value: float64(1)}},
		&PrintStmt{Expression: &Variable{Name: ident("x")}},
	}

	want := "var x = 1;\nprint x;\n"
	if got := Print(program); got != want {
		t.Errorf("Print() = %q, want %q", got, want)
	}
}
