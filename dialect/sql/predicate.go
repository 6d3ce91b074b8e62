package sql

// PredicateFunc constrains the predicate types declared in generated
// packages. Each record package declares its own predicate type based on
// func(*Selector), and the generic field types below produce values of
// that type directly.
type PredicateFunc interface {
	~func(*Selector)
}

// StringField is a string-valued column with typed predicate methods.
// Generated packages declare one package-level value per string column:
//
//	var EmailField = sql.StringField[predicate.User](FieldEmail)
//
// so call sites read user.EmailField.Contains("@example.com").
type StringField[P PredicateFunc] string

// Name returns the column name.
func (f StringField[P]) Name() string { return string(f) }

// EQ matches rows whose column equals v.
func (f StringField[P]) EQ(v string) P {
	return P(FieldEQ(string(f), v))
}

// NEQ matches rows whose column differs from v.
func (f StringField[P]) NEQ(v string) P {
	return P(FieldNEQ(string(f), v))
}

// In matches rows whose column is one of vs.
func (f StringField[P]) In(vs ...string) P {
	return P(FieldIn(string(f), vs...))
}

// NotIn matches rows whose column is none of vs.
func (f StringField[P]) NotIn(vs ...string) P {
	return P(FieldNotIn(string(f), vs...))
}

// GT matches rows whose column sorts after v.
func (f StringField[P]) GT(v string) P {
	return P(FieldGT(string(f), v))
}

// GTE matches rows whose column sorts at or after v.
func (f StringField[P]) GTE(v string) P {
	return P(FieldGTE(string(f), v))
}

// LT matches rows whose column sorts before v.
func (f StringField[P]) LT(v string) P {
	return P(FieldLT(string(f), v))
}

// LTE matches rows whose column sorts at or before v.
func (f StringField[P]) LTE(v string) P {
	return P(FieldLTE(string(f), v))
}

// Contains matches rows whose column contains v.
func (f StringField[P]) Contains(v string) P {
	return P(FieldContains(string(f), v))
}

// ContainsFold matches rows whose column contains v, case-insensitive.
func (f StringField[P]) ContainsFold(v string) P {
	return P(FieldContainsFold(string(f), v))
}

// HasPrefix matches rows whose column starts with v.
func (f StringField[P]) HasPrefix(v string) P {
	return P(FieldHasPrefix(string(f), v))
}

// HasSuffix matches rows whose column ends with v.
func (f StringField[P]) HasSuffix(v string) P {
	return P(FieldHasSuffix(string(f), v))
}

// EqualFold matches rows whose column equals v, case-insensitive.
func (f StringField[P]) EqualFold(v string) P {
	return P(FieldEqualFold(string(f), v))
}

// IsNull matches rows whose column is NULL.
func (f StringField[P]) IsNull() P {
	return P(FieldIsNull(string(f)))
}

// NotNull matches rows whose column is not NULL.
func (f StringField[P]) NotNull() P {
	return P(FieldNotNull(string(f)))
}

// IntField is an integer-valued column with typed predicate methods.
type IntField[P PredicateFunc] string

// Name returns the column name.
func (f IntField[P]) Name() string { return string(f) }

// EQ matches rows whose column equals v.
func (f IntField[P]) EQ(v int) P {
	return P(FieldEQ(string(f), v))
}

// NEQ matches rows whose column differs from v.
func (f IntField[P]) NEQ(v int) P {
	return P(FieldNEQ(string(f), v))
}

// In matches rows whose column is one of vs.
func (f IntField[P]) In(vs ...int) P {
	return P(FieldIn(string(f), vs...))
}

// NotIn matches rows whose column is none of vs.
func (f IntField[P]) NotIn(vs ...int) P {
	return P(FieldNotIn(string(f), vs...))
}

// GT matches rows whose column is greater than v.
func (f IntField[P]) GT(v int) P {
	return P(FieldGT(string(f), v))
}

// GTE matches rows whose column is greater than or equal to v.
func (f IntField[P]) GTE(v int) P {
	return P(FieldGTE(string(f), v))
}

// LT matches rows whose column is less than v.
func (f IntField[P]) LT(v int) P {
	return P(FieldLT(string(f), v))
}

// LTE matches rows whose column is less than or equal to v.
func (f IntField[P]) LTE(v int) P {
	return P(FieldLTE(string(f), v))
}

// IsNull matches rows whose column is NULL.
func (f IntField[P]) IsNull() P {
	return P(FieldIsNull(string(f)))
}

// NotNull matches rows whose column is not NULL.
func (f IntField[P]) NotNull() P {
	return P(FieldNotNull(string(f)))
}

// Int64Field is an int64-valued column with typed predicate methods.
type Int64Field[P PredicateFunc] string

// Name returns the column name.
func (f Int64Field[P]) Name() string { return string(f) }

// EQ matches rows whose column equals v.
func (f Int64Field[P]) EQ(v int64) P {
	return P(FieldEQ(string(f), v))
}

// NEQ matches rows whose column differs from v.
func (f Int64Field[P]) NEQ(v int64) P {
	return P(FieldNEQ(string(f), v))
}

// In matches rows whose column is one of vs.
func (f Int64Field[P]) In(vs ...int64) P {
	return P(FieldIn(string(f), vs...))
}

// NotIn matches rows whose column is none of vs.
func (f Int64Field[P]) NotIn(vs ...int64) P {
	return P(FieldNotIn(string(f), vs...))
}

// GT matches rows whose column is greater than v.
func (f Int64Field[P]) GT(v int64) P {
	return P(FieldGT(string(f), v))
}

// GTE matches rows whose column is greater than or equal to v.
func (f Int64Field[P]) GTE(v int64) P {
	return P(FieldGTE(string(f), v))
}

// LT matches rows whose column is less than v.
func (f Int64Field[P]) LT(v int64) P {
	return P(FieldLT(string(f), v))
}

// LTE matches rows whose column is less than or equal to v.
func (f Int64Field[P]) LTE(v int64) P {
	return P(FieldLTE(string(f), v))
}

// IsNull matches rows whose column is NULL.
func (f Int64Field[P]) IsNull() P {
	return P(FieldIsNull(string(f)))
}

// NotNull matches rows whose column is not NULL.
func (f Int64Field[P]) NotNull() P {
	return P(FieldNotNull(string(f)))
}

// Float64Field is a float64-valued column with typed predicate methods.
type Float64Field[P PredicateFunc] string

// Name returns the column name.
func (f Float64Field[P]) Name() string { return string(f) }

// EQ matches rows whose column equals v.
func (f Float64Field[P]) EQ(v float64) P {
	return P(FieldEQ(string(f), v))
}

// NEQ matches rows whose column differs from v.
func (f Float64Field[P]) NEQ(v float64) P {
	return P(FieldNEQ(string(f), v))
}

// In matches rows whose column is one of vs.
func (f Float64Field[P]) In(vs ...float64) P {
	return P(FieldIn(string(f), vs...))
}

// NotIn matches rows whose column is none of vs.
func (f Float64Field[P]) NotIn(vs ...float64) P {
	return P(FieldNotIn(string(f), vs...))
}

// GT matches rows whose column is greater than v.
func (f Float64Field[P]) GT(v float64) P {
	return P(FieldGT(string(f), v))
}

// GTE matches rows whose column is greater than or equal to v.
func (f Float64Field[P]) GTE(v float64) P {
	return P(FieldGTE(string(f), v))
}

// LT matches rows whose column is less than v.
func (f Float64Field[P]) LT(v float64) P {
	return P(FieldLT(string(f), v))
}

// LTE matches rows whose column is less than or equal to v.
func (f Float64Field[P]) LTE(v float64) P {
	return P(FieldLTE(string(f), v))
}

// IsNull matches rows whose column is NULL.
func (f Float64Field[P]) IsNull() P {
	return P(FieldIsNull(string(f)))
}

// NotNull matches rows whose column is not NULL.
func (f Float64Field[P]) NotNull() P {
	return P(FieldNotNull(string(f)))
}

// BoolField is a boolean-valued column with typed predicate methods.
type BoolField[P PredicateFunc] string

// Name returns the column name.
func (f BoolField[P]) Name() string { return string(f) }

// EQ matches rows whose column equals v.
func (f BoolField[P]) EQ(v bool) P {
	return P(FieldEQ(string(f), v))
}

// NEQ matches rows whose column differs from v.
func (f BoolField[P]) NEQ(v bool) P {
	return P(FieldNEQ(string(f), v))
}

// IsNull matches rows whose column is NULL.
func (f BoolField[P]) IsNull() P {
	return P(FieldIsNull(string(f)))
}

// NotNull matches rows whose column is not NULL.
func (f BoolField[P]) NotNull() P {
	return P(FieldNotNull(string(f)))
}

// TimeField is a time-valued column with typed predicate methods.
// T is the Go time type the record declares, usually time.Time.
type TimeField[P PredicateFunc, T any] string

// Name returns the column name.
func (f TimeField[P, T]) Name() string { return string(f) }

// EQ matches rows whose column equals v.
func (f TimeField[P, T]) EQ(v T) P {
	return P(FieldEQ(string(f), v))
}

// NEQ matches rows whose column differs from v.
func (f TimeField[P, T]) NEQ(v T) P {
	return P(FieldNEQ(string(f), v))
}

// In matches rows whose column is one of vs.
func (f TimeField[P, T]) In(vs ...T) P {
	return P(FieldIn(string(f), vs...))
}

// NotIn matches rows whose column is none of vs.
func (f TimeField[P, T]) NotIn(vs ...T) P {
	return P(FieldNotIn(string(f), vs...))
}

// GT matches rows whose column is after v.
func (f TimeField[P, T]) GT(v T) P {
	return P(FieldGT(string(f), v))
}

// GTE matches rows whose column is at or after v.
func (f TimeField[P, T]) GTE(v T) P {
	return P(FieldGTE(string(f), v))
}

// LT matches rows whose column is before v.
func (f TimeField[P, T]) LT(v T) P {
	return P(FieldLT(string(f), v))
}

// LTE matches rows whose column is at or before v.
func (f TimeField[P, T]) LTE(v T) P {
	return P(FieldLTE(string(f), v))
}

// IsNull matches rows whose column is NULL.
func (f TimeField[P, T]) IsNull() P {
	return P(FieldIsNull(string(f)))
}

// NotNull matches rows whose column is not NULL.
func (f TimeField[P, T]) NotNull() P {
	return P(FieldNotNull(string(f)))
}

// EnumField is a column backed by a string-kinded named type.
type EnumField[P PredicateFunc, T ~string] string

// Name returns the column name.
func (f EnumField[P, T]) Name() string { return string(f) }

// EQ matches rows whose column equals v.
func (f EnumField[P, T]) EQ(v T) P {
	return P(FieldEQ(string(f), v))
}

// NEQ matches rows whose column differs from v.
func (f EnumField[P, T]) NEQ(v T) P {
	return P(FieldNEQ(string(f), v))
}

// In matches rows whose column is one of vs.
func (f EnumField[P, T]) In(vs ...T) P {
	return P(FieldIn(string(f), vs...))
}

// NotIn matches rows whose column is none of vs.
func (f EnumField[P, T]) NotIn(vs ...T) P {
	return P(FieldNotIn(string(f), vs...))
}

// IsNull matches rows whose column is NULL.
func (f EnumField[P, T]) IsNull() P {
	return P(FieldIsNull(string(f)))
}

// NotNull matches rows whose column is not NULL.
func (f EnumField[P, T]) NotNull() P {
	return P(FieldNotNull(string(f)))
}

// UUIDField is a UUID-valued column. T is the UUID type the record
// declares, usually uuid.UUID.
type UUIDField[P PredicateFunc, T any] string

// Name returns the column name.
func (f UUIDField[P, T]) Name() string { return string(f) }

// EQ matches rows whose column equals v.
func (f UUIDField[P, T]) EQ(v T) P {
	return P(FieldEQ(string(f), v))
}

// NEQ matches rows whose column differs from v.
func (f UUIDField[P, T]) NEQ(v T) P {
	return P(FieldNEQ(string(f), v))
}

// In matches rows whose column is one of vs.
func (f UUIDField[P, T]) In(vs ...T) P {
	return P(FieldIn(string(f), vs...))
}

// NotIn matches rows whose column is none of vs.
func (f UUIDField[P, T]) NotIn(vs ...T) P {
	return P(FieldNotIn(string(f), vs...))
}

// GT matches rows whose column is greater than v.
func (f UUIDField[P, T]) GT(v T) P {
	return P(FieldGT(string(f), v))
}

// GTE matches rows whose column is greater than or equal to v.
func (f UUIDField[P, T]) GTE(v T) P {
	return P(FieldGTE(string(f), v))
}

// LT matches rows whose column is less than v.
func (f UUIDField[P, T]) LT(v T) P {
	return P(FieldLT(string(f), v))
}

// LTE matches rows whose column is less than or equal to v.
func (f UUIDField[P, T]) LTE(v T) P {
	return P(FieldLTE(string(f), v))
}

// IsNull matches rows whose column is NULL.
func (f UUIDField[P, T]) IsNull() P {
	return P(FieldIsNull(string(f)))
}

// NotNull matches rows whose column is not NULL.
func (f UUIDField[P, T]) NotNull() P {
	return P(FieldNotNull(string(f)))
}

// OtherField is a column whose Go type has no dedicated field type,
// such as JSON or driver-specific values. It keeps the predicate surface
// to comparisons the column type is known to support.
type OtherField[P PredicateFunc, T any] string

// Name returns the column name.
func (f OtherField[P, T]) Name() string { return string(f) }

// EQ matches rows whose column equals v.
func (f OtherField[P, T]) EQ(v T) P {
	return P(FieldEQ(string(f), v))
}

// NEQ matches rows whose column differs from v.
func (f OtherField[P, T]) NEQ(v T) P {
	return P(FieldNEQ(string(f), v))
}

// In matches rows whose column is one of vs.
func (f OtherField[P, T]) In(vs ...T) P {
	return P(FieldIn(string(f), vs...))
}

// NotIn matches rows whose column is none of vs.
func (f OtherField[P, T]) NotIn(vs ...T) P {
	return P(FieldNotIn(string(f), vs...))
}

// IsNull matches rows whose column is NULL.
func (f OtherField[P, T]) IsNull() P {
	return P(FieldIsNull(string(f)))
}

// NotNull matches rows whose column is not NULL.
func (f OtherField[P, T]) NotNull() P {
	return P(FieldNotNull(string(f)))
}
