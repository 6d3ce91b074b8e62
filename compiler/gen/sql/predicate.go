package sql

import (
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/lukesneeringer/selectable/compiler/gen"
	"github.com/lukesneeringer/selectable/schema/field"
)

// genPredicate generates the typed field predicates ({record}/where.go).
// Each field gets one package-level variable exposing the predicate
// methods of its column type:
//
//	user.EmailField.EQ("a@example.com")
//	user.CreatedAtField.GT(since)
//
// plus the And/Or/Not combinators for the record's predicate type.
func genPredicate(h gen.GeneratorHelper, t *gen.Type) *jen.File {
	f := h.NewFilePath(h.RecordPkgPath(t), t.Package())

	for _, fld := range t.Fields {
		info := genericFieldInfo(h, fld)
		if info.genericType == "" {
			continue // no predicate surface for this column type
		}
		f.Commentf("%s is the typed predicate for the %q field.", fld.FieldVar(), fld.Column())
		f.Var().Id(fld.FieldVar()).Op("=").
			Qual(h.SQLPkg(), info.genericType).
			Types(info.typeParams...).
			Call(jen.Id(fld.Constant()))
	}

	f.Comment("And groups predicates with the AND operator between them.")
	f.Func().Id("And").Params(
		jen.Id("predicates").Op("...").Add(h.PredicateType(t)),
	).Add(h.PredicateType(t)).Block(
		jen.Return(h.PredicateType(t)).Call(
			jen.Qual(h.SQLPkg(), "AndPredicates").Call(jen.Id("predicates").Op("...")),
		),
	)

	f.Comment("Or groups predicates with the OR operator between them.")
	f.Func().Id("Or").Params(
		jen.Id("predicates").Op("...").Add(h.PredicateType(t)),
	).Add(h.PredicateType(t)).Block(
		jen.Return(h.PredicateType(t)).Call(
			jen.Qual(h.SQLPkg(), "OrPredicates").Call(jen.Id("predicates").Op("...")),
		),
	)

	f.Comment("Not applies the not operator on the given predicate.")
	f.Func().Id("Not").Params(
		jen.Id("p").Add(h.PredicateType(t)),
	).Add(h.PredicateType(t)).Block(
		jen.Return(h.PredicateType(t)).Call(
			jen.Qual(h.SQLPkg(), "NotPredicates").Call(jen.Id("p")),
		),
	)

	return f
}

// genPredicatePackage generates the shared predicate package
// (predicate/predicate.go) with one predicate type per record.
func genPredicatePackage(h gen.GeneratorHelper) *jen.File {
	f := h.NewFilePath(h.PredicatePkg(), "predicate")
	for _, t := range h.Graph().Nodes {
		f.Commentf("%s is the predicate function for %s selectors.", t.Name, t.Package())
		f.Type().Id(t.Name).Func().Params(jen.Op("*").Qual(h.SQLPkg(), "Selector"))
	}
	return f
}

// fieldInfo describes the generic column type backing a field predicate.
type fieldInfo struct {
	genericType string
	typeParams  []jen.Code
}

// genericFieldInfo maps a field to the generic column type of dialect/sql.
// JSON columns have no predicate surface and map to the zero fieldInfo.
func genericFieldInfo(h gen.GeneratorHelper, f *gen.Field) fieldInfo {
	if f.Type == nil || f.IsJSON() {
		return fieldInfo{}
	}
	pred := []jen.Code{h.PredicateType(f.Owner())}
	switch {
	case f.IsString():
		return fieldInfo{"StringField", pred}
	case f.Type.Type == field.TypeInt:
		return fieldInfo{"IntField", pred}
	case f.Type.Type == field.TypeInt64:
		return fieldInfo{"Int64Field", pred}
	case f.Type.Type == field.TypeFloat64:
		return fieldInfo{"Float64Field", pred}
	case f.IsBool():
		return fieldInfo{"BoolField", pred}
	case f.IsTime():
		return fieldInfo{"TimeField", append(pred, fieldBaseType(h, f))}
	case f.IsEnum():
		return fieldInfo{"EnumField", append(pred, fieldBaseType(h, f))}
	case f.IsUUID():
		return fieldInfo{"UUIDField", append(pred, fieldBaseType(h, f))}
	default:
		return fieldInfo{"OtherField", append(pred, fieldBaseType(h, f))}
	}
}

// fieldBaseType returns the code of a field's base type for use inside
// the generated subpackages. Named types declared next to the record
// (empty PkgPath) are qualified with the record package.
func fieldBaseType(h gen.GeneratorHelper, f *gen.Field) jen.Code {
	if t := f.Type; t != nil && t.Ident != "" && t.PkgPath == "" {
		name := t.Ident
		if idx := strings.LastIndex(name, "."); idx >= 0 {
			name = name[idx+1:]
		}
		return jen.Qual(h.Graph().Package, name)
	}
	return h.BaseType(f)
}
