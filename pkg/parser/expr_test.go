package parser

import (
	"strings"
	"testing"

	"github.com/will14smith/rlox/pkg/ast"
	"github.com/will14smith/rlox/pkg/lexer"
)

// parseExpression scans the source as a single expression and parses it,
// failing the test on scan or parse errors.
func parseExpression(t *testing.T, source string) ast.Expr {
	t.Helper()

	tokens, errs := lexer.New(source).Tokenize()
	if len(errs) > 0 {
		t.Fatalf("Tokenize() errors = %v", errs)
	}

	p := New(tokens)
	expr, err := p.expression()
	if err != nil {
		t.Fatalf("expression() error = %v", err)
	}
	if len(p.errors) > 0 {
		t.Fatalf("expression() recorded errors = %v", p.errors)
	}
	return expr
}

func TestPrimary(t *testing.T) {
	tests := []struct {
		source string
		want   interface{}
	}{
		{"nil", nil},
		{"true", true},
		{"false", false},
		{"123", float64(123)},
		{"1.5", 1.5},
		{`"abc"`, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			expr := parseExpression(t, tt.source)
			lit, ok := expr.(*ast.Literal)
			if !ok {
				t.Fatalf("expected *ast.Literal, got %T", expr)
			}
			if lit.Value != tt.want {
				t.Errorf("Value = %v, want %v", lit.Value, tt.want)
			}
		})
	}
}

func TestPrimaryVariable(t *testing.T) {
	expr := parseExpression(t, "abc")
	variable, ok := expr.(*ast.Variable)
	if !ok {
		t.Fatalf("expected *ast.Variable, got %T", expr)
	}
	if variable.Name.Lexeme != "abc" {
		t.Errorf("Name = %q, want %q", variable.Name.Lexeme, "abc")
	}
}

func TestGrouping(t *testing.T) {
	expr := parseExpression(t, "(false)")
	grouping, ok := expr.(*ast.Grouping)
	if !ok {
		t.Fatalf("expected *ast.Grouping, got %T", expr)
	}
	if lit, ok := grouping.Expression.(*ast.Literal); !ok || lit.Value != false {
		t.Errorf("inner = %#v, want Literal(false)", grouping.Expression)
	}
}

func TestUnary(t *testing.T) {
	tests := []struct {
		source   string
		operator lexer.TokenType
	}{
		{"!false", lexer.BANG},
		{"-123", lexer.MINUS},
		{"!!true", lexer.BANG},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			expr := parseExpression(t, tt.source)
			unary, ok := expr.(*ast.Unary)
			if !ok {
				t.Fatalf("expected *ast.Unary, got %T", expr)
			}
			if unary.Operator.Type != tt.operator {
				t.Errorf("Operator = %s, want %s", unary.Operator.Type, tt.operator)
			}
		})
	}
}

func TestBinaryOperators(t *testing.T) {
	operators := []string{"/", "*", "-", "+", ">", ">=", "<", "<=", "!=", "=="}

	for _, op := range operators {
		t.Run(op, func(t *testing.T) {
			expr := parseExpression(t, "1 "+op+" 2")
			binary, ok := expr.(*ast.Binary)
			if !ok {
				t.Fatalf("expected *ast.Binary, got %T", expr)
			}
			if binary.Operator.Lexeme != op {
				t.Errorf("Operator = %q, want %q", binary.Operator.Lexeme, op)
			}
		})
	}
}

func TestBinaryLeftAssociativity(t *testing.T) {
	// 1 - 2 - 3 parses as (1 - 2) - 3
	expr := parseExpression(t, "1 - 2 - 3")

	outer, ok := expr.(*ast.Binary)
	if !ok {
		t.Fatalf("expected *ast.Binary, got %T", expr)
	}
	inner, ok := outer.Left.(*ast.Binary)
	if !ok {
		t.Fatalf("expected left operand *ast.Binary, got %T", outer.Left)
	}
	if lit := inner.Left.(*ast.Literal); lit.Value != float64(1) {
		t.Errorf("innermost left = %v, want 1", lit.Value)
	}
	if lit := outer.Right.(*ast.Literal); lit.Value != float64(3) {
		t.Errorf("outer right = %v, want 3", lit.Value)
	}
}

func TestPrecedence(t *testing.T) {
	// 1 + 2 * 3 parses as 1 + (2 * 3)
	expr := parseExpression(t, "1 + 2 * 3")

	add, ok := expr.(*ast.Binary)
	if !ok || add.Operator.Type != lexer.PLUS {
		t.Fatalf("expected + at the root, got %#v", expr)
	}
	mul, ok := add.Right.(*ast.Binary)
	if !ok || mul.Operator.Type != lexer.STAR {
		t.Fatalf("expected * on the right, got %#v", add.Right)
	}

	// (1 + 2) * 3 parses as (grouping) * 3
	expr = parseExpression(t, "(1 + 2) * 3")

	mul, ok = expr.(*ast.Binary)
	if !ok || mul.Operator.Type != lexer.STAR {
		t.Fatalf("expected * at the root, got %#v", expr)
	}
	if _, ok := mul.Left.(*ast.Grouping); !ok {
		t.Fatalf("expected grouping on the left, got %T", mul.Left)
	}
}

func TestLogicalPrecedence(t *testing.T) {
	// a or b and c parses as a or (b and c)
	expr := parseExpression(t, "a or b and c")

	or, ok := expr.(*ast.Logical)
	if !ok || or.Operator.Type != lexer.OR {
		t.Fatalf("expected or at the root, got %#v", expr)
	}
	and, ok := or.Right.(*ast.Logical)
	if !ok || and.Operator.Type != lexer.AND {
		t.Fatalf("expected and on the right, got %#v", or.Right)
	}
}

func TestAssignment(t *testing.T) {
	expr := parseExpression(t, "abc = 123")

	assign, ok := expr.(*ast.Assign)
	if !ok {
		t.Fatalf("expected *ast.Assign, got %T", expr)
	}
	if assign.Name.Lexeme != "abc" {
		t.Errorf("Name = %q, want %q", assign.Name.Lexeme, "abc")
	}
	if lit := assign.Value.(*ast.Literal); lit.Value != float64(123) {
		t.Errorf("Value = %v, want 123", lit.Value)
	}
}

func TestAssignmentRightAssociativity(t *testing.T) {
	// a = b = 3 parses as a = (b = 3)
	expr := parseExpression(t, "a = b = 3")

	outer, ok := expr.(*ast.Assign)
	if !ok {
		t.Fatalf("expected *ast.Assign, got %T", expr)
	}
	if outer.Name.Lexeme != "a" {
		t.Errorf("outer Name = %q, want %q", outer.Name.Lexeme, "a")
	}
	inner, ok := outer.Value.(*ast.Assign)
	if !ok {
		t.Fatalf("expected nested *ast.Assign, got %T", outer.Value)
	}
	if inner.Name.Lexeme != "b" {
		t.Errorf("inner Name = %q, want %q", inner.Name.Lexeme, "b")
	}
}

func TestInvalidAssignmentTarget(t *testing.T) {
	tokens, _ := lexer.New("1 = 2").Tokenize()
	p := New(tokens)

	_, err := p.expression()
	if err == nil {
		t.Fatal("expected error for invalid assignment target")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if !strings.Contains(pe.Message, "Invalid assignment target") {
		t.Errorf("Message = %q, want invalid assignment target", pe.Message)
	}
}

func TestCall(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		wantArgs int
	}{
		{"no args", "abc()", 0},
		{"one arg", "abc(123)", 1},
		{"two args", "abc(123, 456)", 2},
		{"nested call arg", "abc(def(1), 2)", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := parseExpression(t, tt.source)
			call, ok := expr.(*ast.Call)
			if !ok {
				t.Fatalf("expected *ast.Call, got %T", expr)
			}
			if len(call.Arguments) != tt.wantArgs {
				t.Errorf("got %d arguments, want %d", len(call.Arguments), tt.wantArgs)
			}
			if callee, ok := call.Callee.(*ast.Variable); !ok || callee.Name.Lexeme != "abc" {
				t.Errorf("Callee = %#v, want variable abc", call.Callee)
			}
		})
	}
}

func TestChainedCalls(t *testing.T) {
	// a()() wraps the first call in a second one.
	expr := parseExpression(t, "a()()")

	outer, ok := expr.(*ast.Call)
	if !ok {
		t.Fatalf("expected *ast.Call, got %T", expr)
	}
	inner, ok := outer.Callee.(*ast.Call)
	if !ok {
		t.Fatalf("expected nested *ast.Call callee, got %T", outer.Callee)
	}
	if _, ok := inner.Callee.(*ast.Variable); !ok {
		t.Fatalf("expected variable at the base, got %T", inner.Callee)
	}
}

func TestCallArityLimit(t *testing.T) {
	// 256 arguments: all parsed, exactly one error recorded.
	var sb strings.Builder
	sb.WriteString("f(")
	for i := 0; i < 256; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("1")
	}
	sb.WriteString(")")

	tokens, _ := lexer.New(sb.String()).Tokenize()
	p := New(tokens)

	expr, err := p.expression()
	if err != nil {
		t.Fatalf("expression() error = %v", err)
	}

	call, ok := expr.(*ast.Call)
	if !ok {
		t.Fatalf("expected *ast.Call, got %T", expr)
	}
	if len(call.Arguments) != 256 {
		t.Errorf("got %d arguments, want 256", len(call.Arguments))
	}
	if len(p.errors) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(p.errors), p.errors)
	}
	if !strings.Contains(p.errors[0].Message, "more than 255 arguments") {
		t.Errorf("Message = %q", p.errors[0].Message)
	}
}

func TestExpressionErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"unclosed grouping", "(false"},
		{"lone paren", "("},
		{"unclosed call", "f(1, 2"},
		{"operator only", "+"},
		{"trailing operator", "1 +"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, _ := lexer.New(tt.source).Tokenize()
			p := New(tokens)
			if _, err := p.expression(); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}
