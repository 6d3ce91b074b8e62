package load

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/lukesneeringer/selectable/schema/field"
)

// directive is the comment marker that selects a struct type for record
// generation: //selectable:record table=<ident>
const directive = "selectable:record"

// A Config controls the loading of record declarations from Go packages.
type Config struct {
	// Path is the package pattern holding the record declarations
	// (e.g. "./schema" or "github.com/org/project/model").
	Path string

	// Names restricts loading to the given record type names.
	// An empty list loads every marked record in the package.
	Names []string

	// BuildFlags are custom build flags passed to the package loader.
	BuildFlags []string
}

// A Result holds the outcome of loading one package pattern.
type Result struct {
	// PkgPath is the import path of the loaded package.
	PkgPath string

	// Records are the extracted record descriptors, sorted by name.
	// Field order inside each record follows source declaration order.
	Records []*Record
}

// Load extracts record descriptors from the configured package. Each struct
// type carrying a record directive contributes one descriptor with its
// fields in declaration order. The first invalid record aborts the load.
func (c *Config) Load() (*Result, error) {
	if c.Path == "" {
		return nil, errors.New("load: missing package path")
	}
	pkgs, err := packages.Load(&packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles |
			packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo,
		BuildFlags: c.BuildFlags,
	}, c.Path)
	if err != nil {
		return nil, fmt.Errorf("load: loading package %q: %w", c.Path, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("load: no packages found in %q", c.Path)
	}
	result := &Result{PkgPath: pkgs[0].PkgPath}
	for _, pkg := range pkgs {
		if err := loadErrors(pkg); err != nil {
			return nil, err
		}
		records, err := c.scan(pkg)
		if err != nil {
			return nil, err
		}
		result.Records = append(result.Records, records...)
	}
	if err := c.filter(result); err != nil {
		return nil, err
	}
	sort.Slice(result.Records, func(i, j int) bool {
		return result.Records[i].Name < result.Records[j].Name
	})
	return result, nil
}

// loadErrors joins the loader diagnostics of a package into one error.
func loadErrors(pkg *packages.Package) error {
	if len(pkg.Errors) == 0 {
		return nil
	}
	errs := make([]error, 0, len(pkg.Errors))
	for i := range pkg.Errors {
		errs = append(errs, pkg.Errors[i])
	}
	return fmt.Errorf("load: package %s: %w", pkg.PkgPath, errors.Join(errs...))
}

// scan walks the package syntax trees and extracts every marked record.
func (c *Config) scan(pkg *packages.Package) ([]*Record, error) {
	var records []*Record
	for _, f := range pkg.Syntax {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				doc := ts.Doc
				if doc == nil && len(gd.Specs) == 1 {
					doc = gd.Doc
				}
				position := pkg.Fset.Position(ts.Pos())
				pos := fmt.Sprintf("%s:%d", filepath.Base(position.Filename), position.Line)
				table, marked, err := parseDirective(ts.Name.Name, pos, doc)
				if err != nil {
					return nil, err
				}
				if !marked {
					continue
				}
				st, ok := ts.Type.(*ast.StructType)
				if !ok {
					return nil, fmt.Errorf("load: record directive on non-struct type %s (%s)", ts.Name.Name, pos)
				}
				r, err := c.record(pkg, ts.Name.Name, table, st, pos)
				if err != nil {
					return nil, err
				}
				records = append(records, r)
			}
		}
	}
	return records, nil
}

// parseDirective scans the doc comment for the record directive and returns
// the table identifier. Declaring table= zero times fails with
// ErrMissingTable; more than once with ErrDuplicateTable.
func parseDirective(name, pos string, doc *ast.CommentGroup) (table string, marked bool, err error) {
	if doc == nil {
		return "", false, nil
	}
	for _, cm := range doc.List {
		text, ok := strings.CutPrefix(cm.Text, "//")
		if !ok {
			continue
		}
		text, ok = strings.CutPrefix(text, directive)
		if !ok || (text != "" && text[0] != ' ' && text[0] != '\t') {
			continue
		}
		marked = true
		for _, arg := range strings.Fields(text) {
			k, v, ok := strings.Cut(arg, "=")
			if !ok {
				return "", false, fmt.Errorf("load: record %s: malformed directive argument %q (%s)", name, arg, pos)
			}
			switch k {
			case "table":
				if table != "" {
					return "", false, NewRecordError(name, "", pos, fmt.Sprintf("table identifier given twice (%q and %q)", table, v), ErrDuplicateTable)
				}
				if v == "" {
					return "", false, NewRecordError(name, "", pos, "empty table identifier", ErrMissingTable)
				}
				table = v
			default:
				return "", false, fmt.Errorf("load: record %s: unknown directive argument %q (%s)", name, k, pos)
			}
		}
	}
	return table, marked, nil
}

// record builds and validates the descriptor for one marked struct.
func (c *Config) record(pkg *packages.Package, name, table string, st *ast.StructType, pos string) (*Record, error) {
	r := &Record{
		Name:    name,
		Table:   table,
		Package: pkg.PkgPath,
		Pos:     pos,
	}
	idx := 0
	for _, fl := range st.Fields.List {
		if len(fl.Names) == 0 {
			// Embedded fields do not participate in the selection.
			continue
		}
		var tag string
		if fl.Tag != nil {
			tag, _ = strconv.Unquote(fl.Tag.Value)
		}
		column, skip, explicit, err := parseTag(r.Name, fieldNames(fl), tag)
		if err != nil {
			return nil, err
		}
		if skip {
			continue
		}
		exported := 0
		for _, n := range fl.Names {
			if n.IsExported() {
				exported++
			}
		}
		if explicit && exported > 1 {
			return nil, NewRecordError(r.Name, fl.Names[0].Name, r.Pos, "column override on a declaration with multiple field names", ErrInvalidFieldName)
		}
		info, err := typeInfo(pkg, fl.Type)
		if err != nil {
			return nil, NewRecordError(r.Name, fl.Names[0].Name, r.Pos, err.Error(), ErrInvalidFieldName)
		}
		for _, n := range fl.Names {
			if !n.IsExported() {
				continue
			}
			r.Fields = append(r.Fields, &Field{
				Name:      n.Name,
				Column:    column,
				Info:      info,
				Optional:  info.Nillable,
				Position:  idx,
				StructTag: tag,
				Comment:   strings.TrimSpace(fl.Doc.Text()),
			})
			idx++
		}
	}
	return NewRecord(r)
}

// parseTag extracts the column override from the `db` struct tag.
// A value of "-" excludes the field from the selection.
func parseTag(record string, fieldName, tag string) (column string, skip, explicit bool, err error) {
	if tag == "" {
		return "", false, false, nil
	}
	v, ok := reflect.StructTag(tag).Lookup("db")
	if !ok {
		return "", false, false, nil
	}
	name, _, _ := strings.Cut(v, ",")
	switch name {
	case "-":
		return "", true, true, nil
	case "":
		return "", false, false, NewRecordError(record, fieldName, "", "empty column name in db tag", ErrInvalidFieldName)
	default:
		return name, false, true, nil
	}
}

// fieldNames joins the declared names of one field list entry.
func fieldNames(fl *ast.Field) string {
	names := make([]string, len(fl.Names))
	for i, n := range fl.Names {
		names[i] = n.Name
	}
	return strings.Join(names, ", ")
}

// filter restricts the result to the configured record names.
func (c *Config) filter(result *Result) error {
	if len(c.Names) == 0 {
		return nil
	}
	byName := make(map[string]*Record, len(result.Records))
	for _, r := range result.Records {
		byName[r.Name] = r
	}
	records := make([]*Record, 0, len(c.Names))
	for _, name := range c.Names {
		r, ok := byName[name]
		if !ok {
			return fmt.Errorf("load: record %q not found in %s", name, c.Path)
		}
		records = append(records, r)
	}
	result.Records = records
	return nil
}

// typeInfo maps the declared Go type of a field to its TypeInfo.
func typeInfo(pkg *packages.Package, expr ast.Expr) (*field.TypeInfo, error) {
	t := pkg.TypesInfo.TypeOf(expr)
	if t == nil {
		return nil, fmt.Errorf("no type information for field")
	}
	return infoOf(t, false)
}

// basicKinds maps go/types basic kinds to field types.
var basicKinds = map[types.BasicKind]field.Type{
	types.Bool:    field.TypeBool,
	types.String:  field.TypeString,
	types.Int:     field.TypeInt,
	types.Int8:    field.TypeInt8,
	types.Int16:   field.TypeInt16,
	types.Int32:   field.TypeInt32,
	types.Int64:   field.TypeInt64,
	types.Uint:    field.TypeUint,
	types.Uint8:   field.TypeUint8,
	types.Uint16:  field.TypeUint16,
	types.Uint32:  field.TypeUint32,
	types.Uint64:  field.TypeUint64,
	types.Float32: field.TypeFloat32,
	types.Float64: field.TypeFloat64,
}

func infoOf(t types.Type, nillable bool) (*field.TypeInfo, error) {
	switch t := types.Unalias(t).(type) {
	case *types.Basic:
		typ, ok := basicKinds[t.Kind()]
		if !ok {
			return nil, fmt.Errorf("unsupported field type %q", t.Name())
		}
		return &field.TypeInfo{Type: typ, Nillable: nillable}, nil
	case *types.Pointer:
		info, err := infoOf(t.Elem(), true)
		if err != nil {
			return nil, err
		}
		info.Nillable = true
		return info, nil
	case *types.Named:
		return namedInfo(t, nillable)
	case *types.Slice:
		if e, ok := t.Elem().(*types.Basic); ok && e.Kind() == types.Byte {
			return &field.TypeInfo{Type: field.TypeBytes, Nillable: nillable}, nil
		}
		return &field.TypeInfo{Type: field.TypeJSON, Ident: t.String(), Nillable: true}, nil
	case *types.Map:
		return &field.TypeInfo{Type: field.TypeJSON, Ident: t.String(), Nillable: true}, nil
	case *types.Interface:
		if t.Empty() {
			return &field.TypeInfo{Type: field.TypeJSON, Ident: "any", Nillable: true}, nil
		}
		return nil, fmt.Errorf("unsupported field type %q", t.String())
	default:
		return nil, fmt.Errorf("unsupported field type %q", t.String())
	}
}

// namedInfo resolves well-known named types and falls back to the
// underlying type for local declarations (e.g. type Role string).
func namedInfo(t *types.Named, nillable bool) (*field.TypeInfo, error) {
	obj := t.Obj()
	name, pkgPath, pkgName := obj.Name(), "", ""
	if p := obj.Pkg(); p != nil {
		pkgPath, pkgName = p.Path(), p.Name()
	}
	switch {
	case pkgPath == "time" && name == "Time":
		return &field.TypeInfo{Type: field.TypeTime, Ident: "time.Time", PkgPath: pkgPath, PkgName: pkgName, Nillable: nillable}, nil
	case pkgPath == "github.com/google/uuid" && name == "UUID":
		return &field.TypeInfo{Type: field.TypeUUID, Ident: "uuid.UUID", PkgPath: pkgPath, PkgName: pkgName, Nillable: nillable}, nil
	case pkgPath == "encoding/json" && name == "RawMessage":
		return &field.TypeInfo{Type: field.TypeJSON, Ident: "json.RawMessage", PkgPath: pkgPath, PkgName: pkgName, Nillable: true}, nil
	}
	ident := name
	if pkgName != "" {
		ident = pkgName + "." + name
	}
	if b, ok := t.Underlying().(*types.Basic); ok {
		typ, ok := basicKinds[b.Kind()]
		if !ok {
			return nil, fmt.Errorf("unsupported field type %q", ident)
		}
		if typ == field.TypeString {
			typ = field.TypeEnum
		}
		return &field.TypeInfo{Type: typ, Ident: ident, PkgPath: pkgPath, PkgName: pkgName, Nillable: nillable}, nil
	}
	return &field.TypeInfo{Type: field.TypeOther, Ident: ident, PkgPath: pkgPath, PkgName: pkgName, Nillable: nillable}, nil
}
