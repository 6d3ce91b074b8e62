package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/lukesneeringer/selectable/compiler/gen"
	"github.com/lukesneeringer/selectable/schema/field"
)

// genSelect generates the selection entry point ({record}_select.go).
// The file lives in the record's own package so the Select method can
// attach to the record type. It contains the selection builder with its
// query construction, execution methods and row decoding.
func genSelect(h gen.GeneratorHelper, t *gen.Type) *jen.File {
	f := h.NewFilePath(h.Graph().Package, h.Pkg())

	genSelectEntry(h, f, t)
	genSelectionBuilder(h, f, t)
	genBuilderModifiers(h, f, t)
	genQueryMethod(h, f, t)
	genExecMethods(h, f, t)
	genScanValues(h, f, t)
	genAssignValues(h, f, t)

	return f
}

// genSelectEntry generates the Select method on the record type.
func genSelectEntry(h gen.GeneratorHelper, f *jen.File, t *gen.Type) {
	f.Commentf("Select returns a selection over the %s table that reads every", t.Table)
	f.Commentf("declared field of %s, in field declaration order.", t.Name)
	f.Func().Params(jen.Id(t.Name)).Id("Select").Params(
		jen.Id("drv").Qual(h.DialectPkg(), "Driver"),
	).Op("*").Id(t.SelectionName()).Block(
		jen.Return(jen.Op("&").Id(t.SelectionName()).Values(jen.Dict{
			jen.Id("drv"): jen.Id("drv"),
		})),
	)
}

// genSelectionBuilder generates the selection builder struct.
func genSelectionBuilder(h gen.GeneratorHelper, f *jen.File, t *gen.Type) {
	recordPkg := h.RecordPkgPath(t)

	f.Commentf("%s builds and executes the column selection for %s.", t.SelectionName(), t.Name)
	f.Type().Id(t.SelectionName()).Struct(
		jen.Id("drv").Qual(h.DialectPkg(), "Driver"),
		jen.Id("limit").Op("*").Int(),
		jen.Id("offset").Op("*").Int(),
		jen.Id("unique").Bool(),
		jen.Id("order").Index().Qual(recordPkg, "OrderOption"),
		jen.Id("predicates").Index().Add(h.PredicateType(t)),
	)
}

// genBuilderModifiers generates the chainable builder methods.
func genBuilderModifiers(h gen.GeneratorHelper, f *jen.File, t *gen.Type) {
	var (
		rcv       = t.SelectionReceiver()
		selName   = t.SelectionName()
		recordPkg = h.RecordPkgPath(t)
	)

	f.Comment("Where adds a new predicate to the selection builder.")
	f.Func().Params(jen.Id(rcv).Op("*").Id(selName)).Id("Where").Params(
		jen.Id("ps").Op("...").Add(h.PredicateType(t)),
	).Op("*").Id(selName).Block(
		jen.Id(rcv).Dot("predicates").Op("=").Append(jen.Id(rcv).Dot("predicates"), jen.Id("ps").Op("...")),
		jen.Return(jen.Id(rcv)),
	)

	f.Comment("Order specifies how the matched rows should be ordered.")
	f.Func().Params(jen.Id(rcv).Op("*").Id(selName)).Id("Order").Params(
		jen.Id("opts").Op("...").Qual(recordPkg, "OrderOption"),
	).Op("*").Id(selName).Block(
		jen.Id(rcv).Dot("order").Op("=").Append(jen.Id(rcv).Dot("order"), jen.Id("opts").Op("...")),
		jen.Return(jen.Id(rcv)),
	)

	f.Comment("Limit bounds the number of rows returned by the selection.")
	f.Func().Params(jen.Id(rcv).Op("*").Id(selName)).Id("Limit").Params(
		jen.Id("limit").Int(),
	).Op("*").Id(selName).Block(
		jen.Id(rcv).Dot("limit").Op("=").Op("&").Id("limit"),
		jen.Return(jen.Id(rcv)),
	)

	f.Comment("Offset skips the first rows of the selection.")
	f.Func().Params(jen.Id(rcv).Op("*").Id(selName)).Id("Offset").Params(
		jen.Id("offset").Int(),
	).Op("*").Id(selName).Block(
		jen.Id(rcv).Dot("offset").Op("=").Op("&").Id("offset"),
		jen.Return(jen.Id(rcv)),
	)

	f.Comment("Unique configures the selection to filter duplicate rows.")
	f.Func().Params(jen.Id(rcv).Op("*").Id(selName)).Id("Unique").Params(
		jen.Id("unique").Bool(),
	).Op("*").Id(selName).Block(
		jen.Id(rcv).Dot("unique").Op("=").Id("unique"),
		jen.Return(jen.Id(rcv)),
	)

	f.Comment("SelectedColumns returns the selected columns, in field declaration order.")
	f.Func().Params(jen.Id(rcv).Op("*").Id(selName)).Id("SelectedColumns").Params().Index().String().Block(
		jen.Return(jen.Append(jen.Index().String().Parens(jen.Nil()), jen.Qual(recordPkg, "Columns").Op("..."))),
	)
}

// genQueryMethod generates the Query method building the SQL selector.
func genQueryMethod(h gen.GeneratorHelper, f *jen.File, t *gen.Type) {
	var (
		rcv       = t.SelectionReceiver()
		selName   = t.SelectionName()
		recordPkg = h.RecordPkgPath(t)
	)

	f.Comment("Query returns the table-qualified SQL selector of the builder.")
	f.Func().Params(jen.Id(rcv).Op("*").Id(selName)).Id("Query").Params().Op("*").Qual(h.SQLPkg(), "Selector").Block(
		jen.Id("builder").Op(":=").Qual(h.SQLPkg(), "Dialect").Call(jen.Id(rcv).Dot("drv").Dot("Dialect").Call()),
		jen.Id("t1").Op(":=").Id("builder").Dot("Table").Call(jen.Qual(recordPkg, "Table")),
		jen.Id("selector").Op(":=").Id("builder").Dot("Select").Call(
			jen.Id("t1").Dot("Columns").Call(jen.Qual(recordPkg, "Columns").Op("...")).Op("..."),
		).Dot("From").Call(jen.Id("t1")),
		jen.For(jen.List(jen.Id("_"), jen.Id("p")).Op(":=").Range().Id(rcv).Dot("predicates")).Block(
			jen.Id("p").Call(jen.Id("selector")),
		),
		jen.For(jen.List(jen.Id("_"), jen.Id("o")).Op(":=").Range().Id(rcv).Dot("order")).Block(
			jen.Id("o").Call(jen.Id("selector")),
		),
		jen.If(jen.Id(rcv).Dot("unique")).Block(
			jen.Id("selector").Dot("Distinct").Call(),
		),
		jen.If(jen.Id(rcv).Dot("limit").Op("!=").Nil()).Block(
			jen.Id("selector").Dot("Limit").Call(jen.Op("*").Id(rcv).Dot("limit")),
		),
		jen.If(jen.Id(rcv).Dot("offset").Op("!=").Nil()).Block(
			jen.Id("selector").Dot("Offset").Call(jen.Op("*").Id(rcv).Dot("offset")),
		),
		jen.Return(jen.Id("selector")),
	)
}

// genExecMethods generates All, First, Only, Count and Exist.
func genExecMethods(h gen.GeneratorHelper, f *jen.File, t *gen.Type) {
	var (
		rcv       = t.SelectionReceiver()
		selName   = t.SelectionName()
		recordPkg = h.RecordPkgPath(t)
		label     = jen.Qual(recordPkg, "Label")
		queryErr  = func(op string) jen.Code {
			return jen.Qual(h.RuntimePkg(), "NewQueryError").Call(label, jen.Lit(op), jen.Id("err"))
		}
	)

	f.Comment("All executes the selection and returns the matched rows.")
	f.Func().Params(jen.Id(rcv).Op("*").Id(selName)).Id("All").Params(
		jen.Id("ctx").Qual("context", "Context"),
	).Params(jen.Index().Op("*").Id(t.Name), jen.Error()).Block(
		jen.List(jen.Id("query"), jen.Id("args")).Op(":=").Id(rcv).Dot("Query").Call().Dot("Query").Call(),
		jen.Var().Id("rows").Qual(h.SQLPkg(), "Rows"),
		jen.If(
			jen.Id("err").Op(":=").Id(rcv).Dot("drv").Dot("Query").Call(
				jen.Id("ctx"), jen.Id("query"), jen.Id("args"), jen.Op("&").Id("rows"),
			),
			jen.Id("err").Op("!=").Nil(),
		).Block(
			jen.Return(jen.Nil(), queryErr("All")),
		),
		jen.Defer().Id("rows").Dot("Close").Call(),
		jen.Var().Id("nodes").Index().Op("*").Id(t.Name),
		jen.For(jen.Id("rows").Dot("Next").Call()).Block(
			jen.Id("node").Op(":=").Op("&").Id(t.Name).Values(),
			jen.Id("values").Op(":=").Id("node").Dot("scanValues").Call(),
			jen.If(
				jen.Id("err").Op(":=").Id("rows").Dot("Scan").Call(jen.Id("values").Op("...")),
				jen.Id("err").Op("!=").Nil(),
			).Block(
				jen.Return(jen.Nil(), queryErr("All")),
			),
			jen.If(
				jen.Id("err").Op(":=").Id("node").Dot("assignValues").Call(
					jen.Qual(recordPkg, "Columns"), jen.Id("values"),
				),
				jen.Id("err").Op("!=").Nil(),
			).Block(
				jen.Return(jen.Nil(), jen.Id("err")),
			),
			jen.Id("nodes").Op("=").Append(jen.Id("nodes"), jen.Id("node")),
		),
		jen.If(
			jen.Id("err").Op(":=").Id("rows").Dot("Err").Call(),
			jen.Id("err").Op("!=").Nil(),
		).Block(
			jen.Return(jen.Nil(), queryErr("All")),
		),
		jen.Return(jen.Id("nodes"), jen.Nil()),
	)

	f.Commentf("First returns the first matched %s, or a NotFoundError when no row matched.", t.Name)
	f.Func().Params(jen.Id(rcv).Op("*").Id(selName)).Id("First").Params(
		jen.Id("ctx").Qual("context", "Context"),
	).Params(jen.Op("*").Id(t.Name), jen.Error()).Block(
		jen.List(jen.Id("nodes"), jen.Id("err")).Op(":=").Id(rcv).Dot("Limit").Call(jen.Lit(1)).Dot("All").Call(jen.Id("ctx")),
		jen.If(jen.Id("err").Op("!=").Nil()).Block(
			jen.Return(jen.Nil(), jen.Id("err")),
		),
		jen.If(jen.Len(jen.Id("nodes")).Op("==").Lit(0)).Block(
			jen.Return(jen.Nil(), jen.Qual(h.RuntimePkg(), "NewNotFoundError").Call(label)),
		),
		jen.Return(jen.Id("nodes").Index(jen.Lit(0)), jen.Nil()),
	)

	f.Commentf("Only returns the single matched %s. It fails with a NotSingularError", t.Name)
	f.Comment("when more than one row matched, and a NotFoundError when none did.")
	f.Func().Params(jen.Id(rcv).Op("*").Id(selName)).Id("Only").Params(
		jen.Id("ctx").Qual("context", "Context"),
	).Params(jen.Op("*").Id(t.Name), jen.Error()).Block(
		jen.List(jen.Id("nodes"), jen.Id("err")).Op(":=").Id(rcv).Dot("Limit").Call(jen.Lit(2)).Dot("All").Call(jen.Id("ctx")),
		jen.If(jen.Id("err").Op("!=").Nil()).Block(
			jen.Return(jen.Nil(), jen.Id("err")),
		),
		jen.Switch(jen.Len(jen.Id("nodes"))).Block(
			jen.Case(jen.Lit(1)).Block(
				jen.Return(jen.Id("nodes").Index(jen.Lit(0)), jen.Nil()),
			),
			jen.Case(jen.Lit(0)).Block(
				jen.Return(jen.Nil(), jen.Qual(h.RuntimePkg(), "NewNotFoundError").Call(label)),
			),
			jen.Default().Block(
				jen.Return(jen.Nil(), jen.Qual(h.RuntimePkg(), "NewNotSingularError").Call(label)),
			),
		),
	)

	f.Comment("Count returns the number of rows matched by the selection.")
	f.Func().Params(jen.Id(rcv).Op("*").Id(selName)).Id("Count").Params(
		jen.Id("ctx").Qual("context", "Context"),
	).Params(jen.Int(), jen.Error()).Block(
		jen.List(jen.Id("query"), jen.Id("args")).Op(":=").Id(rcv).Dot("Query").Call().Dot("ClearOrder").Call().Dot("Count").Call().Dot("Query").Call(),
		jen.Var().Id("rows").Qual(h.SQLPkg(), "Rows"),
		jen.If(
			jen.Id("err").Op(":=").Id(rcv).Dot("drv").Dot("Query").Call(
				jen.Id("ctx"), jen.Id("query"), jen.Id("args"), jen.Op("&").Id("rows"),
			),
			jen.Id("err").Op("!=").Nil(),
		).Block(
			jen.Return(jen.Lit(0), queryErr("Count")),
		),
		jen.Defer().Id("rows").Dot("Close").Call(),
		jen.Id("count").Op(":=").Lit(0),
		jen.If(jen.Id("rows").Dot("Next").Call()).Block(
			jen.If(
				jen.Id("err").Op(":=").Id("rows").Dot("Scan").Call(jen.Op("&").Id("count")),
				jen.Id("err").Op("!=").Nil(),
			).Block(
				jen.Return(jen.Lit(0), queryErr("Count")),
			),
		),
		jen.If(
			jen.Id("err").Op(":=").Id("rows").Dot("Err").Call(),
			jen.Id("err").Op("!=").Nil(),
		).Block(
			jen.Return(jen.Lit(0), queryErr("Count")),
		),
		jen.Return(jen.Id("count"), jen.Nil()),
	)

	f.Comment("Exist reports whether the selection matches at least one row.")
	f.Func().Params(jen.Id(rcv).Op("*").Id(selName)).Id("Exist").Params(
		jen.Id("ctx").Qual("context", "Context"),
	).Params(jen.Bool(), jen.Error()).Block(
		jen.Switch(jen.List(jen.Id("_"), jen.Id("err")).Op(":=").Id(rcv).Dot("First").Call(jen.Id("ctx")), jen.Id("err")).Block(
			jen.Case(jen.Nil()).Block(
				jen.Return(jen.True(), jen.Nil()),
			),
			jen.Default().Block(
				jen.If(jen.Qual(h.RuntimePkg(), "IsNotFound").Call(jen.Id("err"))).Block(
					jen.Return(jen.False(), jen.Nil()),
				),
				jen.Return(jen.False(), jen.Id("err")),
			),
		),
	)
}

// scanKind buckets a field by the scan destination its column uses.
func scanKind(f *gen.Field) string {
	switch {
	case f.IsString(), f.IsEnum():
		return "string"
	case f.IsBool():
		return "bool"
	case f.IsTime():
		return "time"
	case f.IsJSON():
		return "json"
	case f.IsBytes():
		return "bytes"
	case f.Type != nil && f.Type.Type.Float():
		return "float"
	case f.Type != nil && f.Type.Numeric():
		return "int"
	default:
		return "typed"
	}
}

// scanDest returns the code allocating the scan destination of a field.
func scanDest(h gen.GeneratorHelper, f *gen.Field) jen.Code {
	switch scanKind(f) {
	case "string":
		return jen.New(jen.Qual(h.SQLPkg(), "NullString"))
	case "bool":
		return jen.New(jen.Qual(h.SQLPkg(), "NullBool"))
	case "time":
		return jen.New(jen.Qual(h.SQLPkg(), "NullTime"))
	case "json", "bytes":
		return jen.New(jen.Index().Byte())
	case "float":
		return jen.New(jen.Qual(h.SQLPkg(), "NullFloat64"))
	case "int":
		return jen.New(jen.Qual(h.SQLPkg(), "NullInt64"))
	default:
		return jen.New(fieldBaseType(h, f))
	}
}

// genScanValues generates the scanValues method on the record type.
func genScanValues(h gen.GeneratorHelper, f *jen.File, t *gen.Type) {
	recordPkg := h.RecordPkgPath(t)

	// Group fields sharing a scan destination into one case clause.
	type destGroup struct {
		dest   jen.Code
		consts []jen.Code
	}
	var (
		order  []string
		groups = make(map[string]*destGroup)
	)
	for _, fld := range t.Fields {
		key := scanKind(fld)
		if key == "typed" {
			key = "typed:" + fld.Type.String()
		}
		g, ok := groups[key]
		if !ok {
			g = &destGroup{dest: scanDest(h, fld)}
			groups[key] = g
			order = append(order, key)
		}
		g.consts = append(g.consts, jen.Qual(recordPkg, fld.Constant()))
	}

	f.Comment("scanValues returns the scan destinations of one row, matching Columns.")
	f.Func().Params(jen.Op("*").Id(t.Name)).Id("scanValues").Params().Index().Any().Block(
		jen.Id("values").Op(":=").Make(jen.Index().Any(), jen.Len(jen.Qual(recordPkg, "Columns"))),
		jen.For(jen.Id("i").Op(":=").Range().Id("values")).Block(
			jen.Switch(jen.Qual(recordPkg, "Columns").Index(jen.Id("i"))).BlockFunc(func(sw *jen.Group) {
				for _, key := range order {
					g := groups[key]
					sw.Case(g.consts...).Block(
						jen.Id("values").Index(jen.Id("i")).Op("=").Add(g.dest),
					)
				}
			}),
		),
		jen.Return(jen.Id("values")),
	)
}

// genAssignValues generates the assignValues method on the record type.
func genAssignValues(h gen.GeneratorHelper, f *jen.File, t *gen.Type) {
	var (
		rcv       = t.Receiver()
		recordPkg = h.RecordPkgPath(t)
	)

	f.Comment("assignValues assigns scanned row values to the record fields.")
	f.Func().Params(jen.Id(rcv).Op("*").Id(t.Name)).Id("assignValues").Params(
		jen.Id("columns").Index().String(),
		jen.Id("values").Index().Any(),
	).Error().Block(
		jen.If(
			jen.List(jen.Id("m"), jen.Id("n")).Op(":=").List(jen.Len(jen.Id("values")), jen.Len(jen.Id("columns"))),
			jen.Id("m").Op("<").Id("n"),
		).Block(
			jen.Return(jen.Qual("fmt", "Errorf").Call(
				jen.Lit("mismatch number of scan values: %d != %d"), jen.Id("m"), jen.Id("n"),
			)),
		),
		jen.For(jen.Id("i").Op(":=").Range().Id("columns")).Block(
			jen.Switch(jen.Id("columns").Index(jen.Id("i"))).BlockFunc(func(sw *jen.Group) {
				for _, fld := range t.Fields {
					sw.Case(jen.Qual(recordPkg, fld.Constant())).Block(assignField(h, rcv, fld)...)
				}
			}),
		),
		jen.Return(jen.Nil()),
	)
}

// assignField returns the statements decoding one column into its field.
func assignField(h gen.GeneratorHelper, rcv string, fld *gen.Field) []jen.Code {
	var (
		target   = jen.Id(rcv).Dot(fld.StructField())
		badType  = jen.Return(jen.Qual("fmt", "Errorf").Call(
			jen.Lit("unexpected type %T for field "+fld.Column()), jen.Id("values").Index(jen.Id("i")),
		))
		assertTo = func(typ jen.Code) jen.Code {
			return jen.List(jen.Id("value"), jen.Id("ok")).Op(":=").
				Id("values").Index(jen.Id("i")).Assert(typ)
		}
		notOK = jen.If(jen.Op("!").Id("ok")).Block(badType)
	)

	switch scanKind(fld) {
	case "string":
		raw := jen.Id("value").Dot("String")
		val := jen.Code(raw)
		if fld.IsEnum() {
			val = jen.Add(fieldBaseType(h, fld)).Call(raw)
		}
		return assignNullable(fld, assertTo(jen.Op("*").Qual(h.SQLPkg(), "NullString")), notOK, target, val, fieldBaseType(h, fld))
	case "bool":
		return assignNullable(fld, assertTo(jen.Op("*").Qual(h.SQLPkg(), "NullBool")), notOK, target, jen.Id("value").Dot("Bool"), fieldBaseType(h, fld))
	case "time":
		return assignNullable(fld, assertTo(jen.Op("*").Qual(h.SQLPkg(), "NullTime")), notOK, target, jen.Id("value").Dot("Time"), fieldBaseType(h, fld))
	case "float":
		raw := jen.Id("value").Dot("Float64")
		val := jen.Code(raw)
		if fld.Type.Type != field.TypeFloat64 {
			val = jen.Add(fieldBaseType(h, fld)).Call(raw)
		}
		return assignNullable(fld, assertTo(jen.Op("*").Qual(h.SQLPkg(), "NullFloat64")), notOK, target, val, fieldBaseType(h, fld))
	case "int":
		raw := jen.Id("value").Dot("Int64")
		val := jen.Code(raw)
		if fld.Type.Type != field.TypeInt64 {
			val = jen.Add(fieldBaseType(h, fld)).Call(raw)
		}
		return assignNullable(fld, assertTo(jen.Op("*").Qual(h.SQLPkg(), "NullInt64")), notOK, target, val, fieldBaseType(h, fld))
	case "bytes":
		return []jen.Code{
			assertTo(jen.Op("*").Index().Byte()),
			notOK,
			jen.If(jen.Id("value").Op("!=").Nil()).Block(
				jen.Add(target).Op("=").Op("*").Id("value"),
			),
		}
	case "json":
		return []jen.Code{
			assertTo(jen.Op("*").Index().Byte()),
			notOK,
			jen.If(jen.Id("value").Op("!=").Nil().Op("&&").Len(jen.Op("*").Id("value")).Op(">").Lit(0)).Block(
				jen.If(
					jen.Id("err").Op(":=").Qual("encoding/json", "Unmarshal").Call(
						jen.Op("*").Id("value"), jen.Op("&").Add(target),
					),
					jen.Id("err").Op("!=").Nil(),
				).Block(
					jen.Return(jen.Qual("fmt", "Errorf").Call(
						jen.Lit("unmarshal field "+fld.Column()+": %w"), jen.Id("err"),
					)),
				),
			),
		}
	default: // typed destination implementing sql.Scanner
		assign := jen.Add(target).Op("=").Op("*").Id("value")
		if fld.Optional {
			assign = jen.Add(target).Op("=").Id("value")
		}
		return []jen.Code{
			assertTo(jen.Op("*").Add(fieldBaseType(h, fld))),
			notOK,
			jen.If(jen.Id("value").Op("!=").Nil()).Block(assign),
		}
	}
}

// assignNullable returns the decode statements for a Null* destination.
// Optional fields allocate the pointer only for valid (non-NULL) values.
func assignNullable(fld *gen.Field, assert, notOK jen.Code, target *jen.Statement, val jen.Code, base jen.Code) []jen.Code {
	if fld.Optional {
		return []jen.Code{
			assert,
			notOK,
			jen.If(jen.Id("value").Dot("Valid")).Block(
				jen.Add(target).Op("=").New(jen.Add(base)),
				jen.Op("*").Add(target).Op("=").Add(val),
			),
		}
	}
	return []jen.Code{
		assert,
		notOK,
		jen.Add(target).Op("=").Add(val),
	}
}
