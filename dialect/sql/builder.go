package sql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lukesneeringer/selectable/dialect"
)

// Querier wraps the Query method. Builders that can render themselves into
// a statement and its bound arguments implement it.
type Querier interface {
	// Query returns the query representation of the element
	// and its arguments (if any).
	Query() (string, []any)
}

// Builder is the base struct shared by the SQL builders. It accumulates the
// statement text and its bound arguments, and renders identifiers and
// placeholders according to the configured dialect.
type Builder struct {
	sb      *strings.Builder
	dialect string
	args    []any
	total   int // total number of arguments in the statement tree, used for $n placeholders
	errs    []error
}

// Quote quotes the given identifier with the characters based
// on the configured dialect. It defaults to "`".
func (b *Builder) Quote(ident string) string {
	quote := "`"
	switch {
	case b.postgres():
		// Postgres does not support identifier quoting
		// with backticks.
		quote = `"`
	// An identifier for the sql package, like a(x) or a::text.
	case strings.ContainsAny(ident, "()*:"):
		return ident
	}
	return quote + ident + quote
}

// Ident appends the given string as an identifier.
func (b *Builder) Ident(s string) *Builder {
	switch {
	case len(s) == 0:
	case s != "*" && !b.isIdent(s) && !isFunc(s) && !isModifier(s):
		b.WriteString(b.Quote(s))
	case (isFunc(s) || isModifier(s)) && b.postgres():
		// Function calls and modifiers are not quoted,
		// but their arguments may need to be.
		b.WriteString(strings.ReplaceAll(s, "`", `"`))
	default:
		b.WriteString(s)
	}
	return b
}

// IdentComma calls Ident on all arguments and adds a comma between them.
func (b *Builder) IdentComma(s ...string) *Builder {
	for i := range s {
		if i > 0 {
			b.Comma()
		}
		b.Ident(s[i])
	}
	return b
}

// WriteString appends the given string to the statement.
func (b *Builder) WriteString(s string) *Builder {
	if b.sb == nil {
		b.sb = &strings.Builder{}
	}
	b.sb.WriteString(s)
	return b
}

// WriteByte appends the given byte to the statement.
func (b *Builder) WriteByte(c byte) *Builder {
	if b.sb == nil {
		b.sb = &strings.Builder{}
	}
	b.sb.WriteByte(c)
	return b
}

// Arg appends the given argument to the statement and writes
// its placeholder.
func (b *Builder) Arg(a any) *Builder {
	switch v := a.(type) {
	case nil:
		b.WriteString("NULL")
		return b
	case *raw:
		b.WriteString(v.s)
		return b
	case Querier:
		b.Join(v)
		return b
	}
	b.total++
	b.args = append(b.args, a)
	if b.postgres() {
		b.WriteString("$" + strconv.Itoa(b.total))
	} else {
		b.WriteString("?")
	}
	return b
}

// Args appends a list of arguments to the statement.
func (b *Builder) Args(a ...any) *Builder {
	for i := range a {
		if i > 0 {
			b.Comma()
		}
		b.Arg(a[i])
	}
	return b
}

// Comma adds a comma to the statement.
func (b *Builder) Comma() *Builder {
	return b.WriteString(", ")
}

// Pad adds a space to the statement.
func (b *Builder) Pad() *Builder {
	return b.WriteByte(' ')
}

// Wrap gets a callback, and wraps its result with parentheses.
func (b *Builder) Wrap(f func(*Builder)) *Builder {
	b.WriteByte('(')
	b.Nested(f)
	b.WriteByte(')')
	return b
}

// Nested gets a callback, and runs it on a builder that shares the
// argument counter with the receiver, then joins the result.
func (b *Builder) Nested(f func(*Builder)) *Builder {
	nb := &Builder{dialect: b.dialect, total: b.total}
	f(nb)
	b.WriteString(nb.String())
	b.args = append(b.args, nb.args...)
	b.total = nb.total
	b.errs = append(b.errs, nb.errs...)
	return b
}

// Join joins a list of queriers to the builder.
func (b *Builder) Join(qs ...Querier) *Builder {
	return b.join(qs, "")
}

// JoinComma joins a list of queriers with a comma between them.
func (b *Builder) JoinComma(qs ...Querier) *Builder {
	return b.join(qs, ", ")
}

func (b *Builder) join(qs []Querier, sep string) *Builder {
	for i, q := range qs {
		if i > 0 {
			b.WriteString(sep)
		}
		if d, ok := q.(interface{ SetDialect(string) }); ok {
			d.SetDialect(b.dialect)
		}
		if t, ok := q.(interface{ SetTotal(int) }); ok {
			t.SetTotal(b.total)
		}
		query, args := q.Query()
		b.WriteString(query)
		b.args = append(b.args, args...)
		b.total += len(args)
		if err, ok := q.(interface{ Err() error }); ok {
			b.AddError(err.Err())
		}
	}
	return b
}

// AddError appends an error to the builder errors.
func (b *Builder) AddError(err error) *Builder {
	if err != nil {
		b.errs = append(b.errs, err)
	}
	return b
}

// Err returns a concatenated error of all errors encountered during
// the query-building, or were added manually by calling AddError.
func (b *Builder) Err() error {
	if len(b.errs) == 0 {
		return nil
	}
	br := strings.Builder{}
	for i := range b.errs {
		if i > 0 {
			br.WriteString("; ")
		}
		br.WriteString(b.errs[i].Error())
	}
	return fmt.Errorf("%s", br.String())
}

// SetDialect sets the builder dialect. It's used for garnering dialect
// specific queries.
func (b *Builder) SetDialect(d string) {
	b.dialect = d
}

// Dialect returns the dialect of the builder.
func (b *Builder) Dialect() string {
	return b.dialect
}

// SetTotal sets the value of the total field, which is the argument
// offset of the statement the builder is nested in.
func (b *Builder) SetTotal(total int) {
	b.total = total
}

// String returns the accumulated statement text.
func (b *Builder) String() string {
	if b.sb == nil {
		return ""
	}
	return b.sb.String()
}

func (b *Builder) postgres() bool {
	return b.dialect == dialect.Postgres
}

// isIdent reports if the given string is a dialect-quoted identifier.
func (b *Builder) isIdent(s string) bool {
	switch {
	case b.postgres():
		return strings.Contains(s, `"`)
	default:
		return strings.Contains(s, "`")
	}
}

func isFunc(s string) bool {
	return strings.Contains(s, "(") && strings.Contains(s, ")")
}

func isModifier(s string) bool {
	for _, m := range [...]string{"DISTINCT", "ALL", "WITH ROLLUP"} {
		if strings.HasPrefix(s, m) {
			return true
		}
	}
	return false
}

// raw is a raw SQL fragment embedded as an argument.
type raw struct{ s string }

// Raw returns a raw SQL element that is written to the statement as-is,
// without a placeholder.
func Raw(s string) any { return &raw{s} }

// DialectBuilder prefixes all root builders with the given dialect.
type DialectBuilder struct {
	dialect string
}

// Dialect creates a new DialectBuilder with the given dialect name.
func Dialect(name string) *DialectBuilder {
	return &DialectBuilder{name}
}

// Select creates a Selector for the configured dialect.
//
//	Dialect(dialect.Postgres).
//		Select("id", "name").
//		From(Table("users"))
func (d *DialectBuilder) Select(columns ...string) *Selector {
	s := Select(columns...)
	s.SetDialect(d.dialect)
	return s
}

// Table creates a SelectTable for the configured dialect.
func (d *DialectBuilder) Table(name string) *SelectTable {
	t := Table(name)
	t.SetDialect(d.dialect)
	return t
}

// TableView is a view that returns a table view. Can be a Table or
// a Selector (in the future, a CTE as well).
type TableView interface {
	view()
}

// SelectTable is a table selection in a FROM clause.
type SelectTable struct {
	Builder
	as     string
	name   string
	schema string
	quote  bool
}

// Table returns a new table helper.
func Table(name string) *SelectTable {
	return &SelectTable{quote: true, name: name}
}

// Schema sets the schema name of the table.
func (s *SelectTable) Schema(name string) *SelectTable {
	s.schema = name
	return s
}

// As adds the AS clause to the table selection.
func (s *SelectTable) As(alias string) *SelectTable {
	s.as = alias
	return s
}

// C returns a formatted string for the table column.
func (s *SelectTable) C(column string) string {
	name := s.name
	if s.as != "" {
		name = s.as
	}
	b := &Builder{dialect: s.dialect}
	if s.quote {
		b.Ident(name)
	} else {
		b.WriteString(name)
	}
	b.WriteByte('.').Ident(column)
	return b.String()
}

// Columns returns a list of formatted strings for the table columns.
func (s *SelectTable) Columns(columns ...string) []string {
	names := make([]string, 0, len(columns))
	for _, c := range columns {
		names = append(names, s.C(c))
	}
	return names
}

// Unquote makes the table name to not be formatted as an identifier.
// It is useful when the table is a raw expression (e.g. a function call).
func (s *SelectTable) Unquote() *SelectTable {
	s.quote = false
	return s
}

// Name returns the table name.
func (s *SelectTable) Name() string {
	return s.name
}

// ref returns the table reference as written in the FROM clause.
func (s *SelectTable) ref() string {
	b := &Builder{dialect: s.dialect}
	if s.schema != "" {
		b.Ident(s.schema).WriteByte('.')
	}
	if s.quote {
		b.Ident(s.name)
	} else {
		b.WriteString(s.name)
	}
	if s.as != "" {
		b.WriteString(" AS ")
		b.Ident(s.as)
	}
	return b.String()
}

// implement the TableView interface.
func (*SelectTable) view() {}
func (*Selector) view()    {}

// join describes a JOIN clause of a Selector.
type join struct {
	on    *Predicate
	kind  string
	table TableView
}

// Selector is a builder for the SELECT statement. It holds the ordered
// selection, the source tables and the composed clauses, and renders them
// into a statement with Query.
type Selector struct {
	Builder
	as        string
	selection []string
	from      []TableView
	joins     []join
	where     *Predicate
	order     []string
	limit     *int
	offset    *int
	distinct  bool
}

// Select returns a new selector for the given columns.
//
//	t1 := Table("users")
//	Select(t1.Columns("id", "email")...).From(t1)
func Select(columns ...string) *Selector {
	return (&Selector{}).Select(columns...)
}

// Select changes the column selection of the statement.
// Empty selection means all columns ("*").
func (s *Selector) Select(columns ...string) *Selector {
	s.selection = make([]string, len(columns))
	copy(s.selection, columns)
	return s
}

// AppendSelect appends additional columns to the existing selection.
func (s *Selector) AppendSelect(columns ...string) *Selector {
	s.selection = append(s.selection, columns...)
	return s
}

// SelectedColumns returns the selected columns in the Selector,
// in selection order.
func (s *Selector) SelectedColumns() []string {
	columns := make([]string, len(s.selection))
	copy(columns, s.selection)
	return columns
}

// From sets the source table of the statement.
func (s *Selector) From(t TableView) *Selector {
	s.from = nil
	return s.AppendFrom(t)
}

// AppendFrom appends a new TableView to the FROM clause.
func (s *Selector) AppendFrom(t TableView) *Selector {
	s.from = append(s.from, t)
	if st, ok := t.(state); ok {
		st.SetDialect(s.dialect)
	}
	return s
}

// Distinct adds the DISTINCT keyword to the SELECT statement.
func (s *Selector) Distinct() *Selector {
	s.distinct = true
	return s
}

// SetDistinct sets explicitly if the returned rows are distinct or indistinct.
func (s *Selector) SetDistinct(v bool) *Selector {
	s.distinct = v
	return s
}

// Where sets or appends the given predicate to the statement.
func (s *Selector) Where(p *Predicate) *Selector {
	if s.where != nil {
		s.where = And(s.where, p)
	} else {
		s.where = p
	}
	return s
}

// P returns the predicate of the Selector.
func (s *Selector) P() *Predicate {
	return s.where
}

// Join appends an INNER JOIN to the statement.
func (s *Selector) Join(t TableView) *Selector {
	return s.join("JOIN", t)
}

// LeftJoin appends a LEFT OUTER JOIN to the statement.
func (s *Selector) LeftJoin(t TableView) *Selector {
	return s.join("LEFT JOIN", t)
}

func (s *Selector) join(kind string, t TableView) *Selector {
	s.joins = append(s.joins, join{kind: kind, table: t})
	if st, ok := t.(state); ok {
		st.SetDialect(s.dialect)
	}
	return s
}

// On sets the join condition of the last joined table.
func (s *Selector) On(c1, c2 string) *Selector {
	if len(s.joins) == 0 {
		s.AddError(fmt.Errorf("sql: missing join clause for on condition"))
		return s
	}
	j := &s.joins[len(s.joins)-1]
	p := P()
	p.eq(c1, Raw(c2))
	if j.on != nil {
		j.on = And(j.on, p)
	} else {
		j.on = p
	}
	return s
}

// C returns a formatted string for a selected column of this statement.
// When the statement selects from a single named table, the column is
// qualified with the table name (or alias).
func (s *Selector) C(column string) string {
	if len(s.from) > 0 {
		if t, ok := s.from[0].(*SelectTable); ok {
			return t.C(column)
		}
	}
	b := &Builder{dialect: s.dialect}
	b.Ident(column)
	return b.String()
}

// Table returns the selected table of the statement, if it is a named one.
func (s *Selector) Table() *SelectTable {
	if len(s.from) > 0 {
		if t, ok := s.from[0].(*SelectTable); ok {
			return t
		}
	}
	return nil
}

// OrderBy appends the ORDER BY clause to the statement.
func (s *Selector) OrderBy(columns ...string) *Selector {
	s.order = append(s.order, columns...)
	return s
}

// ClearOrder clears the ORDER BY clause.
func (s *Selector) ClearOrder() *Selector {
	s.order = nil
	return s
}

// Limit adds the LIMIT clause to the statement.
func (s *Selector) Limit(limit int) *Selector {
	s.limit = &limit
	return s
}

// Offset adds the OFFSET clause to the statement.
func (s *Selector) Offset(offset int) *Selector {
	s.offset = &offset
	return s
}

// Count changes the selection to a COUNT over the given columns.
// An empty list counts all rows.
func (s *Selector) Count(columns ...string) *Selector {
	column := "*"
	if len(columns) > 0 {
		b := &Builder{dialect: s.dialect}
		b.IdentComma(columns...)
		column = b.String()
	}
	s.selection = []string{"COUNT(" + column + ")"}
	return s
}

// Clone returns a duplicate of the selector, including all associated steps.
// It can be used to prepare common statements concurrently.
func (s *Selector) Clone() *Selector {
	if s == nil {
		return nil
	}
	c := *s
	c.Builder = Builder{dialect: s.dialect}
	c.selection = append([]string(nil), s.selection...)
	c.from = append([]TableView(nil), s.from...)
	c.joins = append([]join(nil), s.joins...)
	c.order = append([]string(nil), s.order...)
	if s.where != nil {
		c.where = s.where.clone()
	}
	return &c
}

// Query returns query representation of the SELECT statement.
func (s *Selector) Query() (string, []any) {
	b := &Builder{dialect: s.dialect, total: s.total}
	b.WriteString("SELECT ")
	if s.distinct {
		b.WriteString("DISTINCT ")
	}
	if len(s.selection) > 0 {
		b.IdentComma(s.selection...)
	} else {
		b.WriteString("*")
	}
	if len(s.from) > 0 {
		b.WriteString(" FROM ")
	}
	for i, t := range s.from {
		if i > 0 {
			b.Comma()
		}
		switch t := t.(type) {
		case *SelectTable:
			b.WriteString(t.ref())
		case *Selector:
			b.Wrap(func(nb *Builder) {
				nb.Join(t)
			})
			if t.as != "" {
				b.WriteString(" AS ")
				b.Ident(t.as)
			}
		}
	}
	for _, j := range s.joins {
		b.Pad().WriteString(j.kind).Pad()
		switch t := j.table.(type) {
		case *SelectTable:
			b.WriteString(t.ref())
		case *Selector:
			b.Wrap(func(nb *Builder) {
				nb.Join(t)
			})
		}
		if j.on != nil {
			b.WriteString(" ON ")
			b.Join(j.on)
		}
	}
	if s.where != nil {
		b.WriteString(" WHERE ")
		b.Join(s.where)
	}
	if len(s.order) > 0 {
		b.WriteString(" ORDER BY ")
		b.IdentComma(s.order...)
	}
	if s.limit != nil {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(*s.limit))
	}
	if s.offset != nil {
		b.WriteString(" OFFSET ")
		b.WriteString(strconv.Itoa(*s.offset))
	}
	s.total = b.total
	s.AddError(b.Err())
	return b.String(), b.args
}

// state is implemented by table views that carry a dialect.
type state interface {
	SetDialect(string)
}

// As sets the alias of the Selector when nested in a FROM clause.
func (s *Selector) As(alias string) *Selector {
	s.as = alias
	return s
}

var (
	_ Querier = (*Selector)(nil)
	_ Querier = (*Predicate)(nil)
)

// Predicate is a where predicate.
type Predicate struct {
	Builder
	depth int
	fns   []func(*Builder)
}

// P creates a new predicate.
//
//	P().EQ("name", "a8m").And().EQ("age", 30)
func P(fns ...func(*Builder)) *Predicate {
	return &Predicate{fns: fns}
}

// ExprP creates a new predicate from the given expression and arguments.
func ExprP(exr string, args ...any) *Predicate {
	return P(func(b *Builder) {
		b.Join(Expr(exr, args...))
	})
}

// And combines all given predicates with AND between them.
func And(preds ...*Predicate) *Predicate {
	p := P()
	return p.Append(func(b *Builder) {
		p.mayWrap(preds, b, "AND")
	})
}

// Or combines all given predicates with OR between them.
func Or(preds ...*Predicate) *Predicate {
	p := P()
	return p.Append(func(b *Builder) {
		p.mayWrap(preds, b, "OR")
	})
}

// Not wraps the given predicate with the not predicate.
//
//	Not(Or(EQ("name", "foo"), EQ("name", "bar")))
func Not(pred *Predicate) *Predicate {
	p := P()
	return p.Append(func(b *Builder) {
		b.WriteString("NOT ")
		p.mayWrap([]*Predicate{pred}, b, "")
	})
}

// Append appends a new function to the predicate callbacks.
func (p *Predicate) Append(f func(*Builder)) *Predicate {
	p.fns = append(p.fns, f)
	return p
}

// EQ returns a "=" predicate.
func EQ(col string, value any) *Predicate {
	return P().EQ(col, value)
}

// EQ appends a "=" predicate.
func (p *Predicate) EQ(col string, arg any) *Predicate {
	return p.Append(func(b *Builder) {
		b.Ident(col)
		b.WriteString(" = ")
		p.arg(b, arg)
	})
}

func (p *Predicate) eq(col string, arg any) *Predicate {
	return p.EQ(col, arg)
}

// NEQ returns a "<>" predicate.
func NEQ(col string, value any) *Predicate {
	return P().NEQ(col, value)
}

// NEQ appends a "<>" predicate.
func (p *Predicate) NEQ(col string, arg any) *Predicate {
	return p.Append(func(b *Builder) {
		b.Ident(col)
		b.WriteString(" <> ")
		p.arg(b, arg)
	})
}

// GT returns a ">" predicate.
func GT(col string, value any) *Predicate {
	return P().GT(col, value)
}

// GT appends a ">" predicate.
func (p *Predicate) GT(col string, arg any) *Predicate {
	return p.Append(func(b *Builder) {
		b.Ident(col)
		b.WriteString(" > ")
		p.arg(b, arg)
	})
}

// GTE returns a ">=" predicate.
func GTE(col string, value any) *Predicate {
	return P().GTE(col, value)
}

// GTE appends a ">=" predicate.
func (p *Predicate) GTE(col string, arg any) *Predicate {
	return p.Append(func(b *Builder) {
		b.Ident(col)
		b.WriteString(" >= ")
		p.arg(b, arg)
	})
}

// LT returns a "<" predicate.
func LT(col string, value any) *Predicate {
	return P().LT(col, value)
}

// LT appends a "<" predicate.
func (p *Predicate) LT(col string, arg any) *Predicate {
	return p.Append(func(b *Builder) {
		b.Ident(col)
		b.WriteString(" < ")
		p.arg(b, arg)
	})
}

// LTE returns a "<=" predicate.
func LTE(col string, value any) *Predicate {
	return P().LTE(col, value)
}

// LTE appends a "<=" predicate.
func (p *Predicate) LTE(col string, arg any) *Predicate {
	return p.Append(func(b *Builder) {
		b.Ident(col)
		b.WriteString(" <= ")
		p.arg(b, arg)
	})
}

// In returns an "IN" predicate.
func In(col string, args ...any) *Predicate {
	return P().In(col, args...)
}

// In appends an "IN" predicate. An empty list renders a FALSE predicate,
// since "IN ()" is not valid SQL.
func (p *Predicate) In(col string, args ...any) *Predicate {
	if len(args) == 0 {
		return p.False()
	}
	return p.Append(func(b *Builder) {
		b.Ident(col).WriteString(" IN ")
		b.Wrap(func(b *Builder) {
			if s, ok := args[0].(*Selector); ok {
				b.Join(s)
			} else {
				b.Args(args...)
			}
		})
	})
}

// InValues adds the IN predicate for a slice of typed values.
func InValues[T any](col string, args ...T) *Predicate {
	vs := make([]any, len(args))
	for i := range args {
		vs[i] = args[i]
	}
	return In(col, vs...)
}

// NotIn returns a "NOT IN" predicate.
func NotIn(col string, args ...any) *Predicate {
	return P().NotIn(col, args...)
}

// NotIn appends a "NOT IN" predicate. An empty list renders a TRUE
// predicate, mirroring In.
func (p *Predicate) NotIn(col string, args ...any) *Predicate {
	if len(args) == 0 {
		return p.True()
	}
	return p.Append(func(b *Builder) {
		b.Ident(col).WriteString(" NOT IN ")
		b.Wrap(func(b *Builder) {
			if s, ok := args[0].(*Selector); ok {
				b.Join(s)
			} else {
				b.Args(args...)
			}
		})
	})
}

// IsNull returns an "IS NULL" predicate.
func IsNull(col string) *Predicate {
	return P().IsNull(col)
}

// IsNull appends an "IS NULL" predicate.
func (p *Predicate) IsNull(col string) *Predicate {
	return p.Append(func(b *Builder) {
		b.Ident(col).WriteString(" IS NULL")
	})
}

// NotNull returns an "IS NOT NULL" predicate.
func NotNull(col string) *Predicate {
	return P().NotNull(col)
}

// NotNull appends an "IS NOT NULL" predicate.
func (p *Predicate) NotNull(col string) *Predicate {
	return p.Append(func(b *Builder) {
		b.Ident(col).WriteString(" IS NOT NULL")
	})
}

// Like returns a "LIKE" predicate.
func Like(col, pattern string) *Predicate {
	return P().Like(col, pattern)
}

// Like appends a "LIKE" predicate.
func (p *Predicate) Like(col, pattern string) *Predicate {
	return p.Append(func(b *Builder) {
		b.Ident(col).WriteString(" LIKE ")
		b.Arg(pattern)
	})
}

// escapeLike escapes the LIKE meta characters in the given literal.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// Contains returns a predicate that checks substring containment.
func Contains(col, sub string) *Predicate {
	return Like(col, "%"+escapeLike(sub)+"%")
}

// HasPrefix returns a predicate that checks the column prefix.
func HasPrefix(col, prefix string) *Predicate {
	return Like(col, escapeLike(prefix)+"%")
}

// HasSuffix returns a predicate that checks the column suffix.
func HasSuffix(col, suffix string) *Predicate {
	return Like(col, "%"+escapeLike(suffix))
}

// EqualFold returns a case-insensitive equality predicate.
func EqualFold(col, value string) *Predicate {
	p := P()
	return p.Append(func(b *Builder) {
		b.WriteString("LOWER(").Ident(col).WriteString(") = ")
		b.Arg(strings.ToLower(value))
	})
}

// ContainsFold returns a case-insensitive containment predicate.
func ContainsFold(col, sub string) *Predicate {
	p := P()
	return p.Append(func(b *Builder) {
		b.WriteString("LOWER(").Ident(col).WriteString(") LIKE ")
		b.Arg("%" + strings.ToLower(escapeLike(sub)) + "%")
	})
}

// False appends the FALSE keyword to the predicate.
func (p *Predicate) False() *Predicate {
	return p.Append(func(b *Builder) {
		b.WriteString("FALSE")
	})
}

// True appends the TRUE keyword to the predicate.
func (p *Predicate) True() *Predicate {
	return p.Append(func(b *Builder) {
		b.WriteString("TRUE")
	})
}

// Query returns query representation of the predicate.
func (p *Predicate) Query() (string, []any) {
	if p.sb != nil {
		p.sb.Reset()
		p.args = nil
	}
	for _, f := range p.fns {
		f(&p.Builder)
	}
	return p.String(), p.args
}

// arg writes either a bound argument or a raw fragment.
func (*Predicate) arg(b *Builder, a any) {
	switch a := a.(type) {
	case *raw:
		b.WriteString(a.s)
	case *Selector:
		b.Wrap(func(b *Builder) {
			b.Join(a)
		})
	default:
		b.Arg(a)
	}
}

// clone returns a shallow clone of p.
func (p *Predicate) clone() *Predicate {
	if p == nil {
		return p
	}
	return &Predicate{fns: append([]func(*Builder){}, p.fns...)}
}

// mayWrap wraps the predicates with parens when they are composite.
func (p *Predicate) mayWrap(preds []*Predicate, b *Builder, op string) {
	switch n := len(preds); {
	case n == 1:
		b.Join(preds[0])
		return
	case n > 1 && p.depth != 0:
		b.WriteByte('(')
		defer b.WriteByte(')')
	}
	for i := range preds {
		preds[i].depth = p.depth + 1
		if i > 0 {
			b.Pad().WriteString(op).Pad()
		}
		if len(preds[i].fns) > 1 {
			b.Wrap(func(b *Builder) {
				b.Join(preds[i])
			})
		} else {
			b.Join(preds[i])
		}
	}
}

// expr is a raw expression with optional arguments.
type expr struct {
	Builder
	s    string
	args []any
}

// Expr returns a raw SQL expression with optional bound arguments.
//
//	Expr("length(name) > ?", 10)
func Expr(exr string, args ...any) Querier {
	return &expr{s: exr, args: args}
}

// Query implements the Querier interface.
func (e *expr) Query() (string, []any) {
	return e.s, e.args
}

// Asc adds the ASC suffix for the given column.
func Asc(column string) string {
	b := &Builder{}
	b.Ident(column).WriteString(" ASC")
	return b.String()
}

// Desc adds the DESC suffix for the given column.
func Desc(column string) string {
	b := &Builder{}
	b.Ident(column).WriteString(" DESC")
	return b.String()
}

// OrderTermOptions holds the per-term ordering configuration.
type OrderTermOptions struct {
	// Desc orders in descending order.
	Desc bool
	// NullsFirst and NullsLast add the NULLS FIRST/LAST clause
	// on dialects that support it.
	NullsFirst bool
	NullsLast  bool
}

// OrderTermOption configures an order term.
type OrderTermOption func(*OrderTermOptions)

// OrderDesc orders the term in descending order.
func OrderDesc() OrderTermOption {
	return func(o *OrderTermOptions) {
		o.Desc = true
	}
}

// OrderAsc orders the term in ascending order. This is the default.
func OrderAsc() OrderTermOption {
	return func(o *OrderTermOptions) {
		o.Desc = false
	}
}

// OrderNullsFirst orders NULL values before all others.
func OrderNullsFirst() OrderTermOption {
	return func(o *OrderTermOptions) {
		o.NullsFirst = true
	}
}

// OrderNullsLast orders NULL values after all others.
func OrderNullsLast() OrderTermOption {
	return func(o *OrderTermOptions) {
		o.NullsLast = true
	}
}

// OrderTerm is a single term of an ORDER BY clause.
type OrderTerm interface {
	term()
}

// OrderFieldTerm orders by a column of the selected table.
type OrderFieldTerm struct {
	OrderTermOptions
	// Field is the column to order by.
	Field string
}

func (*OrderFieldTerm) term() {}

// OrderByField returns an ordering term by the given column.
func OrderByField(field string, opts ...OrderTermOption) *OrderFieldTerm {
	term := &OrderFieldTerm{Field: field}
	for _, opt := range opts {
		opt(&term.OrderTermOptions)
	}
	return term
}

// ToFunc returns the term as a Selector option, ready to be used
// as an ordering function in generated packages.
func (t *OrderFieldTerm) ToFunc() func(*Selector) {
	return func(s *Selector) {
		column := s.C(t.Field)
		switch {
		case t.Desc:
			column += " DESC"
		default:
			column += " ASC"
		}
		switch {
		case t.NullsFirst:
			column += " NULLS FIRST"
		case t.NullsLast:
			column += " NULLS LAST"
		}
		s.OrderBy(column)
	}
}

// FieldEQ returns a selector option that filters on the field
// being equal to the given value.
func FieldEQ(name string, v any) func(*Selector) {
	return func(s *Selector) {
		s.Where(EQ(s.C(name), v))
	}
}

// FieldNEQ returns a selector option that filters on the field
// being not equal to the given value.
func FieldNEQ(name string, v any) func(*Selector) {
	return func(s *Selector) {
		s.Where(NEQ(s.C(name), v))
	}
}

// FieldGT returns a selector option that filters on the field
// being greater than the given value.
func FieldGT(name string, v any) func(*Selector) {
	return func(s *Selector) {
		s.Where(GT(s.C(name), v))
	}
}

// FieldGTE returns a selector option that filters on the field
// being greater than or equal to the given value.
func FieldGTE(name string, v any) func(*Selector) {
	return func(s *Selector) {
		s.Where(GTE(s.C(name), v))
	}
}

// FieldLT returns a selector option that filters on the field
// being less than the given value.
func FieldLT(name string, v any) func(*Selector) {
	return func(s *Selector) {
		s.Where(LT(s.C(name), v))
	}
}

// FieldLTE returns a selector option that filters on the field
// being less than or equal to the given value.
func FieldLTE(name string, v any) func(*Selector) {
	return func(s *Selector) {
		s.Where(LTE(s.C(name), v))
	}
}

// FieldIn returns a selector option that filters on the field
// value being in the given list.
func FieldIn[T any](name string, vs ...T) func(*Selector) {
	return func(s *Selector) {
		v := make([]any, len(vs))
		for i := range vs {
			v[i] = vs[i]
		}
		s.Where(In(s.C(name), v...))
	}
}

// FieldNotIn returns a selector option that filters on the field
// value not being in the given list.
func FieldNotIn[T any](name string, vs ...T) func(*Selector) {
	return func(s *Selector) {
		v := make([]any, len(vs))
		for i := range vs {
			v[i] = vs[i]
		}
		s.Where(NotIn(s.C(name), v...))
	}
}

// FieldIsNull returns a selector option that filters on the field
// being NULL.
func FieldIsNull(name string) func(*Selector) {
	return func(s *Selector) {
		s.Where(IsNull(s.C(name)))
	}
}

// FieldNotNull returns a selector option that filters on the field
// being not NULL.
func FieldNotNull(name string) func(*Selector) {
	return func(s *Selector) {
		s.Where(NotNull(s.C(name)))
	}
}

// FieldContains returns a selector option that filters on the field
// containing the given substring.
func FieldContains(name, sub string) func(*Selector) {
	return func(s *Selector) {
		s.Where(Contains(s.C(name), sub))
	}
}

// FieldContainsFold returns a selector option that filters on the field
// containing the given substring, case-insensitive.
func FieldContainsFold(name, sub string) func(*Selector) {
	return func(s *Selector) {
		s.Where(ContainsFold(s.C(name), sub))
	}
}

// FieldHasPrefix returns a selector option that filters on the field
// having the given prefix.
func FieldHasPrefix(name, prefix string) func(*Selector) {
	return func(s *Selector) {
		s.Where(HasPrefix(s.C(name), prefix))
	}
}

// FieldHasSuffix returns a selector option that filters on the field
// having the given suffix.
func FieldHasSuffix(name, suffix string) func(*Selector) {
	return func(s *Selector) {
		s.Where(HasSuffix(s.C(name), suffix))
	}
}

// FieldEqualFold returns a selector option that filters on the field
// being equal to the given string, case-insensitive.
func FieldEqualFold(name, v string) func(*Selector) {
	return func(s *Selector) {
		s.Where(EqualFold(s.C(name), v))
	}
}

// AndPredicates combines the given predicate options with AND between them.
func AndPredicates[F PredicateFunc](preds ...F) func(*Selector) {
	return func(s *Selector) {
		s.Where(combine(s, preds, And))
	}
}

// OrPredicates combines the given predicate options with OR between them.
func OrPredicates[F PredicateFunc](preds ...F) func(*Selector) {
	return func(s *Selector) {
		s.Where(combine(s, preds, Or))
	}
}

// NotPredicates negates the conjunction of the given predicate options.
func NotPredicates[F PredicateFunc](preds ...F) func(*Selector) {
	return func(s *Selector) {
		s.Where(Not(combine(s, preds, And)))
	}
}

// combine evaluates the predicate options on a scratch selector that
// shares the FROM context, and merges their predicates with op.
func combine[F PredicateFunc](s *Selector, preds []F, op func(...*Predicate) *Predicate) *Predicate {
	ps := make([]*Predicate, 0, len(preds))
	for _, p := range preds {
		scratch := &Selector{Builder: Builder{dialect: s.dialect}, from: s.from}
		(func(*Selector))(p)(scratch)
		if scratch.where != nil {
			ps = append(ps, scratch.where)
		}
	}
	switch len(ps) {
	case 0:
		return P().True()
	case 1:
		return ps[0]
	default:
		return op(ps...)
	}
}
