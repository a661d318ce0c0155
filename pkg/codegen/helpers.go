package codegen

import "github.com/dave/jennifer/jen"

// generateHelpers emits the runtime support the generated program relies
// on: the callable representation and the operator implementations. They
// mirror the interpreter's semantics, including the panics that main maps
// to exit code 70.
func (g *generator) generateHelpers(f *jen.File) {
	// Callable representation for functions.
	f.Type().Id("loxFn").Struct(
		jen.Id("arity").Int(),
		jen.Id("fn").Func().Params(jen.Id("args").Index().Interface()).Interface(),
	)
	f.Line()

	// Truthiness: nil and false are falsey, everything else is truthy.
	f.Func().Id("loxTruthy").Params(jen.Id("v").Interface()).Bool().Block(
		jen.Switch(jen.Id("v").Op(":=").Id("v").Assert(jen.Type())).Block(
			jen.Case(jen.Nil()).Block(jen.Return(jen.False())),
			jen.Case(jen.Bool()).Block(jen.Return(jen.Id("v"))),
		),
		jen.Return(jen.True()),
	)
	f.Line()

	f.Func().Id("loxNot").Params(jen.Id("v").Interface()).Interface().Block(
		jen.Return(jen.Op("!").Id("loxTruthy").Call(jen.Id("v"))),
	)
	f.Line()

	// loxNum asserts a numeric operand, panicking like a runtime error.
	f.Func().Id("loxNum").Params(jen.Id("v").Interface()).Float64().Block(
		jen.List(jen.Id("n"), jen.Id("ok")).Op(":=").Id("v").Assert(jen.Float64()),
		jen.If(jen.Op("!").Id("ok")).Block(
			jen.Panic(jen.Lit("Operands must be numbers")),
		),
		jen.Return(jen.Id("n")),
	)
	f.Line()

	f.Func().Id("loxNeg").Params(jen.Id("v").Interface()).Interface().Block(
		jen.Return(jen.Op("-").Id("loxNum").Call(jen.Id("v"))),
	)
	f.Line()

	// Addition works on two numbers or two strings.
	f.Func().Id("loxAdd").Params(jen.Id("a").Interface(), jen.Id("b").Interface()).Interface().Block(
		jen.If(
			jen.List(jen.Id("an"), jen.Id("ok")).Op(":=").Id("a").Assert(jen.Float64()),
			jen.Id("ok"),
		).Block(
			jen.If(
				jen.List(jen.Id("bn"), jen.Id("ok")).Op(":=").Id("b").Assert(jen.Float64()),
				jen.Id("ok"),
			).Block(
				jen.Return(jen.Id("an").Op("+").Id("bn")),
			),
		),
		jen.If(
			jen.List(jen.Id("as"), jen.Id("ok")).Op(":=").Id("a").Assert(jen.String()),
			jen.Id("ok"),
		).Block(
			jen.If(
				jen.List(jen.Id("bs"), jen.Id("ok")).Op(":=").Id("b").Assert(jen.String()),
				jen.Id("ok"),
			).Block(
				jen.Return(jen.Id("as").Op("+").Id("bs")),
			),
		),
		jen.Panic(jen.Lit("Operands must be two numbers or two strings")),
	)
	f.Line()

	numericOps := []struct {
		name string
		op   string
	}{
		{"loxSub", "-"},
		{"loxMul", "*"},
		{"loxGreater", ">"},
		{"loxGreaterEq", ">="},
		{"loxLess", "<"},
		{"loxLessEq", "<="},
	}
	for _, op := range numericOps {
		f.Func().Id(op.name).Params(jen.Id("a").Interface(), jen.Id("b").Interface()).Interface().Block(
			jen.Return(jen.Id("loxNum").Call(jen.Id("a")).Op(op.op).Id("loxNum").Call(jen.Id("b"))),
		)
		f.Line()
	}

	f.Func().Id("loxDiv").Params(jen.Id("a").Interface(), jen.Id("b").Interface()).Interface().Block(
		jen.Id("d").Op(":=").Id("loxNum").Call(jen.Id("b")),
		jen.If(jen.Id("d").Op("==").Lit(0)).Block(
			jen.Panic(jen.Lit("Division by zero")),
		),
		jen.Return(jen.Id("loxNum").Call(jen.Id("a")).Op("/").Id("d")),
	)
	f.Line()

	// Equality follows Lox rules: different types are never equal, which
	// interface comparison on the four value types already provides.
	f.Func().Id("loxEq").Params(jen.Id("a").Interface(), jen.Id("b").Interface()).Interface().Block(
		jen.Return(jen.Id("a").Op("==").Id("b")),
	)
	f.Line()

	f.Func().Id("loxNeq").Params(jen.Id("a").Interface(), jen.Id("b").Interface()).Interface().Block(
		jen.Return(jen.Id("a").Op("!=").Id("b")),
	)
	f.Line()

	f.Func().Id("loxCall").Params(
		jen.Id("callee").Interface(),
		jen.Id("args").Op("...").Interface(),
	).Interface().Block(
		jen.List(jen.Id("fn"), jen.Id("ok")).Op(":=").Id("callee").Assert(jen.Op("*").Id("loxFn")),
		jen.If(jen.Op("!").Id("ok")).Block(
			jen.Panic(jen.Lit("Can only call functions and classes")),
		),
		jen.If(jen.Len(jen.Id("args")).Op("!=").Id("fn").Dot("arity")).Block(
			jen.Panic(jen.Qual("fmt", "Sprintf").Call(
				jen.Lit("Expected %d arguments but got %d"),
				jen.Id("fn").Dot("arity"),
				jen.Len(jen.Id("args")),
			)),
		),
		jen.Return(jen.Id("fn").Dot("fn").Call(jen.Id("args"))),
	)
	f.Line()

	// loxStr renders a value the way print displays it.
	f.Func().Id("loxStr").Params(jen.Id("v").Interface()).String().Block(
		jen.Switch(jen.Id("v").Op(":=").Id("v").Assert(jen.Type())).Block(
			jen.Case(jen.Nil()).Block(jen.Return(jen.Lit("nil"))),
			jen.Case(jen.Bool()).Block(
				jen.If(jen.Id("v")).Block(jen.Return(jen.Lit("true"))),
				jen.Return(jen.Lit("false")),
			),
			jen.Case(jen.Float64()).Block(
				jen.Return(jen.Qual("strconv", "FormatFloat").Call(
					jen.Id("v"), jen.LitRune('f'), jen.Lit(-1), jen.Lit(64),
				)),
			),
			jen.Case(jen.String()).Block(jen.Return(jen.Id("v"))),
			jen.Case(jen.Op("*").Id("loxFn")).Block(jen.Return(jen.Lit("<fn>"))),
		),
		jen.Return(jen.Lit("<unknown>")),
	)
	f.Line()

	f.Func().Id("loxPrint").Params(jen.Id("v").Interface()).Block(
		jen.Qual("fmt", "Println").Call(jen.Id("loxStr").Call(jen.Id("v"))),
	)
	f.Line()
}
