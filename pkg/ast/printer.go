package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders a program back to canonical Lox source. The output is not
// byte-identical to the original input (for loops come back as their
// while-based desugaring, formatting is normalized) but re-lexing and
// re-parsing it yields a structurally equal tree.
func Print(program Program) string {
	var p printer
	for _, stmt := range program {
		p.stmt(stmt)
	}
	return p.sb.String()
}

// PrintExpr renders a single expression to canonical Lox source.
func PrintExpr(expr Expr) string {
	var p printer
	p.expr(expr)
	return p.sb.String()
}

// PrintStatement renders a single statement to canonical Lox source.
func PrintStatement(stmt Stmt) string {
	var p printer
	p.stmt(stmt)
	return p.sb.String()
}

type printer struct {
	sb     strings.Builder
	indent int
}

func (p *printer) write(s string) {
	p.sb.WriteString(s)
}

func (p *printer) writef(format string, args ...interface{}) {
	fmt.Fprintf(&p.sb, format, args...)
}

func (p *printer) line(s string) {
	p.write(strings.Repeat("    ", p.indent))
	p.write(s)
	p.write("\n")
}

func (p *printer) stmt(stmt Stmt) {
	switch s := stmt.(type) {
	case *ExpressionStmt:
		p.line(PrintExpr(s.Expression) + ";")

	case *PrintStmt:
		p.line("print " + PrintExpr(s.Expression) + ";")

	case *VarStmt:
		if s.Initializer != nil {
			p.line("var " + s.Name.Lexeme + " = " + PrintExpr(s.Initializer) + ";")
		} else {
			p.line("var " + s.Name.Lexeme + ";")
		}

	case *BlockStmt:
		p.line("{")
		p.indent++
		for _, inner := range s.Statements {
			p.stmt(inner)
		}
		p.indent--
		p.line("}")

	case *IfStmt:
		p.line("if (" + PrintExpr(s.Condition) + ")")
		p.nested(s.Then)
		if s.Else != nil {
			p.line("else")
			p.nested(s.Else)
		}

	case *WhileStmt:
		p.line("while (" + PrintExpr(s.Condition) + ")")
		p.nested(s.Body)

	case *FunctionStmt:
		p.function(s, "fun ")

	case *ClassStmt:
		p.line("class " + s.Name.Lexeme + " {")
		p.indent++
		for _, method := range s.Methods {
			p.function(method, "")
		}
		p.indent--
		p.line("}")

	case *ReturnStmt:
		if s.Value != nil {
			p.line("return " + PrintExpr(s.Value) + ";")
		} else {
			p.line("return;")
		}
	}
}

// nested prints the body of a control statement, indenting a bare statement
// but letting a block manage its own braces.
func (p *printer) nested(stmt Stmt) {
	if _, ok := stmt.(*BlockStmt); ok {
		p.stmt(stmt)
		return
	}
	p.indent++
	p.stmt(stmt)
	p.indent--
}

func (p *printer) function(fn *FunctionStmt, keyword string) {
	params := make([]string, len(fn.Params))
	for i, param := range fn.Params {
		params[i] = param.Lexeme
	}
	p.line(keyword + fn.Name.Lexeme + "(" + strings.Join(params, ", ") + ") {")
	p.indent++
	for _, inner := range fn.Body {
		p.stmt(inner)
	}
	p.indent--
	p.line("}")
}

func (p *printer) expr(expr Expr) {
	switch e := expr.(type) {
	case *Literal:
		p.write(FormatLiteral(e.Value))

	case *Variable:
		p.write(e.Name.Lexeme)

	case *Assign:
		p.write(e.Name.Lexeme)
		p.write(" = ")
		p.expr(e.Value)

	case *Logical:
		p.expr(e.Left)
		p.writef(" %s ", e.Operator.Lexeme)
		p.expr(e.Right)

	case *Binary:
		p.expr(e.Left)
		p.writef(" %s ", e.Operator.Lexeme)
		p.expr(e.Right)

	case *Unary:
		p.write(e.Operator.Lexeme)
		p.expr(e.Right)

	case *Call:
		p.expr(e.Callee)
		p.write("(")
		for i, arg := range e.Arguments {
			if i > 0 {
				p.write(", ")
			}
			p.expr(arg)
		}
		p.write(")")

	case *Grouping:
		p.write("(")
		p.expr(e.Expression)
		p.write(")")
	}
}

// FormatLiteral renders a literal value as Lox source text. Numbers use
// plain decimal notation so the output stays lexable.
func FormatLiteral(value interface{}) string {
	switch v := value.(type) {
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
		return "\"" + v + "\""
	default:
		return fmt.Sprintf("%v", v)
	}
}
