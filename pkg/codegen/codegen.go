// Package codegen generates standalone Go programs from Lox syntax trees.
//
// Every Lox value maps to interface{} and the operators go through small
// runtime helpers emitted into the generated file, so the output needs no
// imports beyond the standard library. Constructs the backend cannot
// express (classes, top-level return) are skipped with a warning instead of
// failing the whole program.
package codegen

import (
	"bytes"
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/will14smith/rlox/pkg/ast"
	"github.com/will14smith/rlox/pkg/lexer"
)

// Result contains the generated code and any warnings.
type Result struct {
	Code     string
	Warnings []string
	Skipped  []SkippedDecl
}

// SkippedDecl records a declaration that couldn't be compiled.
type SkippedDecl struct {
	Name   string
	Reason string
}

// Generate produces a Go main package from a Lox program.
func Generate(program ast.Program) (*Result, error) {
	g := &generator{
		warnings: []string{},
		skipped:  []SkippedDecl{},
		scopes:   []map[string]bool{},
	}
	return g.generate(program)
}

type generator struct {
	warnings []string
	skipped  []SkippedDecl
	scopes   []map[string]bool // declared names, innermost last
	fnDepth  int
}

func (g *generator) generate(program ast.Program) (*Result, error) {
	f := jen.NewFile("main")
	f.HeaderComment("Code generated by rlox compile. DO NOT EDIT.")

	g.generateHelpers(f)

	g.pushScope()
	g.declare("clock")

	body := []jen.Code{
		// Runtime errors panic inside the helpers; map them to exit code 70
		// like the interpreter does.
		jen.Defer().Func().Params().Block(
			jen.If(jen.Id("r").Op(":=").Recover(), jen.Id("r").Op("!=").Nil()).Block(
				jen.Qual("fmt", "Fprintln").Call(jen.Qual("os", "Stderr"), jen.Lit("runtime error:"), jen.Id("r")),
				jen.Qual("os", "Exit").Call(jen.Lit(70)),
			),
		).Call(),
		jen.Var().Id(mangle("clock")).Interface().Op("=").Op("&").Id("loxFn").Values(jen.Dict{
			jen.Id("arity"): jen.Lit(0),
			jen.Id("fn"): jen.Func().Params(jen.Id("args").Index().Interface()).Interface().Block(
				jen.Return(jen.Float64().Parens(jen.Qual("time", "Now").Call().Dot("UnixNano").Call()).
					Op("/").Float64().Parens(jen.Qual("time", "Second"))),
			),
		}),
		jen.Id("_").Op("=").Id(mangle("clock")),
	}

	for _, stmt := range program {
		body = append(body, g.stmt(stmt)...)
	}
	g.popScope()

	f.Func().Id("main").Params().Block(body...)

	buf := &bytes.Buffer{}
	if err := f.Render(buf); err != nil {
		return nil, fmt.Errorf("failed to render generated code: %w", err)
	}

	return &Result{
		Code:     buf.String(),
		Warnings: g.warnings,
		Skipped:  g.skipped,
	}, nil
}

// Scope tracking. Lox allows re-declaring a variable in the same scope; Go
// does not, so a re-declaration is lowered to an assignment.

func (g *generator) pushScope() {
	g.scopes = append(g.scopes, map[string]bool{})
}

func (g *generator) popScope() {
	g.scopes = g.scopes[:len(g.scopes)-1]
}

func (g *generator) declare(name string) bool {
	scope := g.scopes[len(g.scopes)-1]
	if scope[name] {
		return false
	}
	scope[name] = true
	return true
}

// mangle prefixes user identifiers so they can never collide with Go
// keywords or the emitted helpers.
func mangle(name string) string {
	return "v_" + name
}

// stmt lowers one statement to Go statements.
func (g *generator) stmt(stmt ast.Stmt) []jen.Code {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		// A top-level assignment lowers to a plain Go assignment; anything
		// else is evaluated into the blank identifier.
		if assign, ok := s.Expression.(*ast.Assign); ok {
			return []jen.Code{
				jen.Id(mangle(assign.Name.Lexeme)).Op("=").Add(g.expr(assign.Value)),
			}
		}
		return []jen.Code{jen.Id("_").Op("=").Add(g.expr(s.Expression))}

	case *ast.PrintStmt:
		return []jen.Code{jen.Id("loxPrint").Call(g.expr(s.Expression))}

	case *ast.VarStmt:
		name := mangle(s.Name.Lexeme)
		initializer := jen.Code(jen.Nil())
		if s.Initializer != nil {
			initializer = g.expr(s.Initializer)
		}
		if !g.declare(s.Name.Lexeme) {
			return []jen.Code{jen.Id(name).Op("=").Add(initializer)}
		}
		return []jen.Code{
			jen.Var().Id(name).Interface().Op("=").Add(initializer),
			jen.Id("_").Op("=").Id(name),
		}

	case *ast.BlockStmt:
		g.pushScope()
		var inner []jen.Code
		for _, child := range s.Statements {
			inner = append(inner, g.stmt(child)...)
		}
		g.popScope()
		return []jen.Code{jen.Block(inner...)}

	case *ast.IfStmt:
		g.pushScope()
		thenCodes := g.stmt(s.Then)
		g.popScope()

		out := jen.If(jen.Id("loxTruthy").Call(g.expr(s.Condition))).Block(thenCodes...)
		if s.Else != nil {
			g.pushScope()
			elseCodes := g.stmt(s.Else)
			g.popScope()
			out = out.Else().Block(elseCodes...)
		}
		return []jen.Code{out}

	case *ast.WhileStmt:
		g.pushScope()
		bodyCodes := g.stmt(s.Body)
		g.popScope()
		return []jen.Code{
			jen.For(jen.Id("loxTruthy").Call(g.expr(s.Condition))).Block(bodyCodes...),
		}

	case *ast.FunctionStmt:
		return g.functionStmt(s)

	case *ast.ClassStmt:
		g.skipped = append(g.skipped, SkippedDecl{
			Name:   s.Name.Lexeme,
			Reason: "classes are not supported by the Go backend",
		})
		return nil

	case *ast.ReturnStmt:
		if g.fnDepth == 0 {
			g.warnings = append(g.warnings,
				fmt.Sprintf("line %d: return outside a function was dropped", s.Keyword.Line))
			return nil
		}
		if s.Value != nil {
			return []jen.Code{jen.Return(g.expr(s.Value))}
		}
		return []jen.Code{jen.Return(jen.Nil())}
	}

	g.warnings = append(g.warnings, fmt.Sprintf("unsupported statement %T was dropped", stmt))
	return nil
}

// functionStmt lowers a function declaration to a loxFn bound to a
// variable. Declaring the variable first and assigning the closure after
// makes recursion work.
func (g *generator) functionStmt(s *ast.FunctionStmt) []jen.Code {
	name := mangle(s.Name.Lexeme)
	fresh := g.declare(s.Name.Lexeme)

	g.pushScope()
	g.fnDepth++
	var body []jen.Code
	for i, param := range s.Params {
		g.declare(param.Lexeme)
		body = append(body,
			jen.Id(mangle(param.Lexeme)).Op(":=").Id("args").Index(jen.Lit(i)),
			jen.Id("_").Op("=").Id(mangle(param.Lexeme)),
		)
	}
	for _, child := range s.Body {
		body = append(body, g.stmt(child)...)
	}
	body = append(body, jen.Return(jen.Nil()))
	g.fnDepth--
	g.popScope()

	fn := jen.Op("&").Id("loxFn").Values(jen.Dict{
		jen.Id("arity"): jen.Lit(len(s.Params)),
		jen.Id("fn"):    jen.Func().Params(jen.Id("args").Index().Interface()).Interface().Block(body...),
	})

	if !fresh {
		return []jen.Code{jen.Id(name).Op("=").Add(fn)}
	}
	return []jen.Code{
		jen.Var().Id(name).Interface(),
		jen.Id("_").Op("=").Id(name),
		jen.Id(name).Op("=").Add(fn),
	}
}

// expr lowers one expression to a Go expression.
func (g *generator) expr(expr ast.Expr) *jen.Statement {
	switch e := expr.(type) {
	case *ast.Literal:
		switch v := e.Value.(type) {
		case nil:
			return jen.Nil()
		case bool:
			return jen.Lit(v)
		case float64:
			return jen.Lit(v)
		case string:
			return jen.Lit(v)
		}
		return jen.Nil()

	case *ast.Variable:
		return jen.Id(mangle(e.Name.Lexeme))

	case *ast.Assign:
		// Assignment is an expression in Lox but a statement in Go; an
		// immediately-invoked closure keeps the value semantics.
		name := mangle(e.Name.Lexeme)
		return jen.Func().Params().Interface().Block(
			jen.Id(name).Op("=").Add(g.expr(e.Value)),
			jen.Return(jen.Id(name)),
		).Call()

	case *ast.Logical:
		left := g.expr(e.Left)
		right := g.expr(e.Right)
		// Short-circuit: evaluate the right side lazily and yield the
		// deciding operand, not a coerced boolean.
		cond := jen.Id("loxTruthy").Call(jen.Id("l"))
		if e.Operator.Type == lexer.AND {
			cond = jen.Op("!").Id("loxTruthy").Call(jen.Id("l"))
		}
		return jen.Func().Params().Interface().Block(
			jen.Id("l").Op(":=").Add(left),
			jen.If(cond).Block(jen.Return(jen.Id("l"))),
			jen.Return(right),
		).Call()

	case *ast.Binary:
		return jen.Id(binaryHelper(e.Operator.Type)).Call(g.expr(e.Left), g.expr(e.Right))

	case *ast.Unary:
		if e.Operator.Type == lexer.BANG {
			return jen.Id("loxNot").Call(g.expr(e.Right))
		}
		return jen.Id("loxNeg").Call(g.expr(e.Right))

	case *ast.Call:
		args := []jen.Code{g.expr(e.Callee)}
		for _, arg := range e.Arguments {
			args = append(args, g.expr(arg))
		}
		return jen.Id("loxCall").Call(args...)

	case *ast.Grouping:
		return jen.Parens(g.expr(e.Expression))
	}

	g.warnings = append(g.warnings, fmt.Sprintf("unsupported expression %T lowered to nil", expr))
	return jen.Nil()
}

// binaryHelper maps a binary operator token to its runtime helper.
func binaryHelper(typ lexer.TokenType) string {
	switch typ {
	case lexer.PLUS:
		return "loxAdd"
	case lexer.MINUS:
		return "loxSub"
	case lexer.STAR:
		return "loxMul"
	case lexer.SLASH:
		return "loxDiv"
	case lexer.EQUAL_EQUAL:
		return "loxEq"
	case lexer.BANG_EQUAL:
		return "loxNeq"
	case lexer.GREATER:
		return "loxGreater"
	case lexer.GREATER_EQUAL:
		return "loxGreaterEq"
	case lexer.LESS:
		return "loxLess"
	case lexer.LESS_EQUAL:
		return "loxLessEq"
	}
	return "loxEq"
}
