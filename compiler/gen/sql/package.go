package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/lukesneeringer/selectable/compiler/gen"
)

// genPackage generates the per-record constant package ({record}/{record}.go):
// one const block with the label, table and column constants, the ordered
// Columns variable, ValidColumn and the ordering options.
func genPackage(h gen.GeneratorHelper, t *gen.Type) *jen.File {
	f := h.NewFilePath(h.RecordPkgPath(t), t.Package())

	// Single const block with all constants.
	f.Const().DefsFunc(func(defs *jen.Group) {
		defs.Commentf("Label holds the string label denoting the %s type in diagnostics.", t.Name)
		defs.Id("Label").Op("=").Lit(t.Label())

		defs.Commentf("Table holds the table name of the %s in the database.", t.Name)
		defs.Id("Table").Op("=").Lit(t.Table)

		for _, field := range t.Fields {
			defs.Commentf("%s holds the string denoting the %s field in the database.", field.Constant(), field.Name)
			defs.Id(field.Constant()).Op("=").Lit(field.Column())
		}
	})

	// Columns preserves the field declaration order of the record; the
	// selection expression and row scanning both follow it.
	f.Commentf("Columns holds all SQL columns for %s fields, in declaration order.", t.Name)
	f.Var().Id("Columns").Op("=").Index().String().ValuesFunc(func(vals *jen.Group) {
		for _, field := range t.Fields {
			vals.Id(field.Constant())
		}
	})

	f.Comment("ValidColumn reports if the column name is valid (part of the table columns).")
	f.Func().Id("ValidColumn").Params(jen.Id("column").String()).Bool().Block(
		jen.For(jen.Id("i").Op(":=").Range().Id("Columns")).Block(
			jen.If(jen.Id("column").Op("==").Id("Columns").Index(jen.Id("i"))).Block(
				jen.Return(jen.True()),
			),
		),
		jen.Return(jen.False()),
	)

	f.Commentf("OrderOption defines the ordering options for the %s queries.", t.Name)
	f.Type().Id("OrderOption").Func().Params(jen.Op("*").Qual(h.SQLPkg(), "Selector"))

	for _, field := range t.Fields {
		if field.Comparable() {
			genFieldOrderOption(h, f, field)
		}
	}

	return f
}

// genFieldOrderOption generates the ordering function for a field.
func genFieldOrderOption(h gen.GeneratorHelper, f *jen.File, field *gen.Field) {
	orderName := field.OrderName()

	f.Commentf("%s orders the results by the %s field.", orderName, field.Name)
	f.Func().Id(orderName).Params(
		jen.Id("opts").Op("...").Qual(h.SQLPkg(), "OrderTermOption"),
	).Id("OrderOption").Block(
		jen.Return(jen.Qual(h.SQLPkg(), "OrderByField").Call(
			jen.Id(field.Constant()),
			jen.Id("opts").Op("..."),
		).Dot("ToFunc").Call()),
	)
}
