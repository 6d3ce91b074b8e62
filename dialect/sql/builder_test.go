package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukesneeringer/selectable/dialect"
)

func TestSelector_Simple(t *testing.T) {
	query, args := Dialect(dialect.MySQL).
		Select("id", "name", "email").
		From(Table("users")).
		Query()
	assert.Equal(t, "SELECT `id`, `name`, `email` FROM `users`", query)
	assert.Empty(t, args)
}

func TestSelector_QualifiedColumns(t *testing.T) {
	t1 := Dialect(dialect.Postgres).Table("users")
	query, args := Dialect(dialect.Postgres).
		Select(t1.Columns("id", "email", "password_hash")...).
		From(t1).
		Query()
	assert.Equal(t, `SELECT "users"."id", "users"."email", "users"."password_hash" FROM "users"`, query)
	assert.Empty(t, args)
}

// Selection order follows the order columns were passed in, so repeated
// renderings of the same selector are identical.
func TestSelector_SelectionOrderStable(t *testing.T) {
	t1 := Dialect(dialect.SQLite).Table("users")
	s := Dialect(dialect.SQLite).
		Select(t1.Columns("email", "password_hash")...).
		From(t1)
	assert.Equal(t, []string{"`users`.`email`", "`users`.`password_hash`"}, s.SelectedColumns())
	first, _ := s.Query()
	second, _ := s.Clone().Query()
	assert.Equal(t, first, second)
	assert.Equal(t, "SELECT `users`.`email`, `users`.`password_hash` FROM `users`", first)
}

func TestSelector_EmptySelection(t *testing.T) {
	query, _ := Dialect(dialect.MySQL).Select().From(Table("users")).Query()
	assert.Equal(t, "SELECT * FROM `users`", query)
}

func TestSelector_Where(t *testing.T) {
	t.Run("mysql_placeholders", func(t *testing.T) {
		query, args := Dialect(dialect.MySQL).
			Select("id").
			From(Table("users")).
			Where(EQ("status", "active")).
			Query()
		assert.Equal(t, "SELECT `id` FROM `users` WHERE `status` = ?", query)
		assert.Equal(t, []any{"active"}, args)
	})

	t.Run("postgres_placeholders", func(t *testing.T) {
		query, args := Dialect(dialect.Postgres).
			Select("id").
			From(Table("users")).
			Where(And(EQ("status", "active"), GT("age", 18))).
			Query()
		assert.Equal(t, `SELECT "id" FROM "users" WHERE "status" = $1 AND "age" > $2`, query)
		assert.Equal(t, []any{"active", 18}, args)
	})

	t.Run("where_merges_with_and", func(t *testing.T) {
		query, args := Dialect(dialect.MySQL).
			Select("id").
			From(Table("users")).
			Where(EQ("status", "active")).
			Where(GT("age", 18)).
			Query()
		assert.Equal(t, "SELECT `id` FROM `users` WHERE `status` = ? AND `age` > ?", query)
		assert.Equal(t, []any{"active", 18}, args)
	})
}

func TestSelector_CompoundPredicates(t *testing.T) {
	query, args := Dialect(dialect.Postgres).
		Select("*").
		From(Table("users")).
		Where(
			And(
				EQ("status", "active"),
				Or(GT("age", 18), EQ("role", "admin")),
				NotNull("email"),
			),
		).
		Query()
	assert.Equal(t, `SELECT * FROM "users" WHERE "status" = $1 AND ("age" > $2 OR "role" = $3) AND "email" IS NOT NULL`, query)
	assert.Equal(t, []any{"active", 18, "admin"}, args)
}

func TestSelector_Not(t *testing.T) {
	query, args := Dialect(dialect.MySQL).
		Select("id").
		From(Table("users")).
		Where(Not(EQ("status", "banned"))).
		Query()
	assert.Equal(t, "SELECT `id` FROM `users` WHERE NOT `status` = ?", query)
	assert.Equal(t, []any{"banned"}, args)
}

func TestSelector_In(t *testing.T) {
	t.Run("values", func(t *testing.T) {
		query, args := Dialect(dialect.MySQL).
			Select("id").
			From(Table("users")).
			Where(In("department", "eng", "product")).
			Query()
		assert.Equal(t, "SELECT `id` FROM `users` WHERE `department` IN (?, ?)", query)
		assert.Equal(t, []any{"eng", "product"}, args)
	})

	t.Run("empty_in_is_false", func(t *testing.T) {
		query, args := Dialect(dialect.MySQL).
			Select("id").
			From(Table("users")).
			Where(In("department")).
			Query()
		assert.Equal(t, "SELECT `id` FROM `users` WHERE FALSE", query)
		assert.Empty(t, args)
	})

	t.Run("empty_not_in_is_true", func(t *testing.T) {
		query, _ := Dialect(dialect.MySQL).
			Select("id").
			From(Table("users")).
			Where(NotIn("department")).
			Query()
		assert.Equal(t, "SELECT `id` FROM `users` WHERE TRUE", query)
	})
}

func TestSelector_LikePredicates(t *testing.T) {
	query, args := Dialect(dialect.MySQL).
		Select("id").
		From(Table("users")).
		Where(And(
			Contains("name", "mei"),
			HasPrefix("email", "admin"),
			HasSuffix("email", ".org"),
		)).
		Query()
	assert.Equal(t, "SELECT `id` FROM `users` WHERE `name` LIKE ? AND `email` LIKE ? AND `email` LIKE ?", query)
	assert.Equal(t, []any{"%mei%", "admin%", "%.org"}, args)
}

// LIKE meta characters in the needle are escaped so they match literally.
func TestSelector_LikeEscaping(t *testing.T) {
	_, args := Dialect(dialect.MySQL).
		Select("id").
		From(Table("users")).
		Where(Contains("name", "100%_done")).
		Query()
	assert.Equal(t, []any{`%100\%\_done%`}, args)
}

func TestSelector_Fold(t *testing.T) {
	query, args := Dialect(dialect.Postgres).
		Select("id").
		From(Table("users")).
		Where(Or(EqualFold("name", "Mei"), ContainsFold("email", "CORP"))).
		Query()
	assert.Equal(t, `SELECT "id" FROM "users" WHERE LOWER("name") = $1 OR LOWER("email") LIKE $2`, query)
	assert.Equal(t, []any{"mei", "%corp%"}, args)
}

func TestSelector_OrderLimitOffset(t *testing.T) {
	t1 := Dialect(dialect.MySQL).Table("users")
	query, _ := Dialect(dialect.MySQL).
		Select(t1.C("id")).
		From(t1).
		OrderBy(Desc(t1.C("created_at")), Asc(t1.C("name"))).
		Limit(10).
		Offset(20).
		Query()
	assert.Equal(t, "SELECT `users`.`id` FROM `users` ORDER BY `users`.`created_at` DESC, `users`.`name` ASC LIMIT 10 OFFSET 20", query)
}

func TestSelector_Distinct(t *testing.T) {
	query, _ := Dialect(dialect.MySQL).
		Select("department").
		From(Table("users")).
		Distinct().
		Query()
	assert.Equal(t, "SELECT DISTINCT `department` FROM `users`", query)
}

func TestSelector_Count(t *testing.T) {
	query, _ := Dialect(dialect.Postgres).
		Select().
		From(Table("users")).
		Count().
		Query()
	assert.Equal(t, `SELECT COUNT(*) FROM "users"`, query)
}

func TestSelector_Join(t *testing.T) {
	users := Dialect(dialect.MySQL).Table("users").As("u")
	posts := Dialect(dialect.MySQL).Table("posts").As("p")
	query, args := Dialect(dialect.MySQL).
		Select(users.C("id"), posts.C("title")).
		From(users).
		Join(posts).On(users.C("id"), posts.C("user_id")).
		Where(EQ(users.C("active"), true)).
		Query()
	assert.Equal(t, "SELECT `u`.`id`, `p`.`title` FROM `users` AS `u` JOIN `posts` AS `p` ON `u`.`id` = `p`.`user_id` WHERE `u`.`active` = ?", query)
	assert.Equal(t, []any{true}, args)
}

func TestSelector_TableSchema(t *testing.T) {
	t1 := Dialect(dialect.Postgres).Table("users").Schema("public")
	query, _ := Dialect(dialect.Postgres).Select("id").From(t1).Query()
	assert.Equal(t, `SELECT "id" FROM "public"."users"`, query)
}

func TestSelector_OnWithoutJoin(t *testing.T) {
	s := Dialect(dialect.MySQL).Select("id").From(Table("users")).On("a", "b")
	s.Query()
	require.Error(t, s.Err())
}

func TestOrderByField(t *testing.T) {
	t.Run("asc_default", func(t *testing.T) {
		s := Dialect(dialect.MySQL).Select("id").From(Table("users"))
		OrderByField("email").ToFunc()(s)
		query, _ := s.Query()
		assert.Equal(t, "SELECT `id` FROM `users` ORDER BY `users`.`email` ASC", query)
	})

	t.Run("desc", func(t *testing.T) {
		s := Dialect(dialect.MySQL).Select("id").From(Table("users"))
		OrderByField("email", OrderDesc()).ToFunc()(s)
		query, _ := s.Query()
		assert.Equal(t, "SELECT `id` FROM `users` ORDER BY `users`.`email` DESC", query)
	})

	t.Run("nulls_last", func(t *testing.T) {
		s := Dialect(dialect.Postgres).Select("id").From(Table("users"))
		OrderByField("age", OrderDesc(), OrderNullsLast()).ToFunc()(s)
		query, _ := s.Query()
		assert.Equal(t, `SELECT "id" FROM "users" ORDER BY "users"."age" DESC NULLS LAST`, query)
	})
}

func TestFieldPredicates(t *testing.T) {
	t.Run("eq", func(t *testing.T) {
		s := Dialect(dialect.Postgres).Select("id").From(Table("users"))
		FieldEQ("email", "mei@example.com")(s)
		query, args := s.Query()
		assert.Equal(t, `SELECT "id" FROM "users" WHERE "users"."email" = $1`, query)
		assert.Equal(t, []any{"mei@example.com"}, args)
	})

	t.Run("in_typed", func(t *testing.T) {
		s := Dialect(dialect.MySQL).Select("id").From(Table("users"))
		FieldIn("id", 1, 2, 3)(s)
		query, args := s.Query()
		assert.Equal(t, "SELECT `id` FROM `users` WHERE `users`.`id` IN (?, ?, ?)", query)
		assert.Equal(t, []any{1, 2, 3}, args)
	})

	t.Run("null_checks", func(t *testing.T) {
		s := Dialect(dialect.MySQL).Select("id").From(Table("users"))
		FieldIsNull("deleted_at")(s)
		FieldNotNull("email")(s)
		query, _ := s.Query()
		assert.Equal(t, "SELECT `id` FROM `users` WHERE `users`.`deleted_at` IS NULL AND `users`.`email` IS NOT NULL", query)
	})

	t.Run("string_matching", func(t *testing.T) {
		s := Dialect(dialect.MySQL).Select("id").From(Table("users"))
		FieldContains("name", "mei")(s)
		query, args := s.Query()
		assert.Equal(t, "SELECT `id` FROM `users` WHERE `users`.`name` LIKE ?", query)
		assert.Equal(t, []any{"%mei%"}, args)
	})
}

func TestPredicateCombinators(t *testing.T) {
	type userPredicate func(*Selector)

	t.Run("and", func(t *testing.T) {
		s := Dialect(dialect.MySQL).Select("id").From(Table("users"))
		AndPredicates(
			userPredicate(FieldEQ("status", "active")),
			userPredicate(FieldGT("age", 18)),
		)(s)
		query, args := s.Query()
		assert.Equal(t, "SELECT `id` FROM `users` WHERE `users`.`status` = ? AND `users`.`age` > ?", query)
		assert.Equal(t, []any{"active", 18}, args)
	})

	t.Run("or", func(t *testing.T) {
		s := Dialect(dialect.MySQL).Select("id").From(Table("users"))
		OrPredicates(
			userPredicate(FieldEQ("role", "admin")),
			userPredicate(FieldEQ("role", "owner")),
		)(s)
		query, args := s.Query()
		assert.Equal(t, "SELECT `id` FROM `users` WHERE `users`.`role` = ? OR `users`.`role` = ?", query)
		assert.Equal(t, []any{"admin", "owner"}, args)
	})

	t.Run("not", func(t *testing.T) {
		s := Dialect(dialect.MySQL).Select("id").From(Table("users"))
		NotPredicates(userPredicate(FieldEQ("status", "banned")))(s)
		query, args := s.Query()
		assert.Equal(t, "SELECT `id` FROM `users` WHERE NOT `users`.`status` = ?", query)
		assert.Equal(t, []any{"banned"}, args)
	})
}

func TestTypedFields(t *testing.T) {
	type userPredicate func(*Selector)
	var (
		email = StringField[userPredicate]("email")
		age   = IntField[userPredicate]("age")
	)

	s := Dialect(dialect.Postgres).Select("id").From(Table("users"))
	email.Contains("@corp")(s)
	age.GTE(21)(s)
	query, args := s.Query()
	assert.Equal(t, `SELECT "id" FROM "users" WHERE "users"."email" LIKE $1 AND "users"."age" >= $2`, query)
	assert.Equal(t, []any{"%@corp%", 21}, args)
	assert.Equal(t, "email", email.Name())
}

func TestExprP(t *testing.T) {
	query, args := Dialect(dialect.MySQL).
		Select("id").
		From(Table("users")).
		Where(ExprP("LENGTH(name) > ?", 10)).
		Query()
	assert.Equal(t, "SELECT `id` FROM `users` WHERE LENGTH(name) > ?", query)
	assert.Equal(t, []any{10}, args)
}

func TestSelector_SubqueryIn(t *testing.T) {
	inner := Dialect(dialect.Postgres).Select("user_id").From(Table("admins"))
	query, args := Dialect(dialect.Postgres).
		Select("id").
		From(Table("users")).
		Where(In("id", inner)).
		Query()
	assert.Equal(t, `SELECT "id" FROM "users" WHERE "id" IN (SELECT "user_id" FROM "admins")`, query)
	assert.Empty(t, args)
}
