package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqlforge/sqlforge/compiler"
	"github.com/sqlforge/sqlforge/dialect"
	"github.com/sqlforge/sqlforge/postgres"
	"github.com/sqlforge/sqlforge/query"
	"github.com/sqlforge/sqlforge/schema"
	"github.com/sqlforge/sqlforge/value"
)

func usersTable() *schema.Table {
	return schema.NewTable("users").
		AddField("id", "bigint", value.KindInt64).
		AddField("name", "text", value.KindText).
		AddField("age", "integer", value.KindInt32).
		AddField("active", "boolean", value.KindBool).
		PrimaryKey("id")
}

func postsTable() *schema.Table {
	return schema.NewTable("posts").
		AddField("id", "bigint", value.KindInt64).
		AddField("user_id", "bigint", value.KindInt64).
		AddField("title", "text", value.KindText).
		PrimaryKey("id").
		ForeignKey("user_id", "users", "id")
}

// Scenario 1 of §8: basic SELECT with WHERE.
func TestCompile_SelectWhere(t *testing.T) {
	users := usersTable()
	name := schema.MustCol[string](users, "name", value.KindText)
	age := schema.MustCol[int32](users, "age", value.KindInt32)

	q := query.SelectCols(name).From(query.FromTable(users)).Where(query.Gt(age, int32(18)))
	cq, err := compiler.Compile(q, dialect.Postgres{}, compiler.Parameterized)
	require.NoError(t, err)
	require.Equal(t, `SELECT "name" FROM "users" WHERE ("age" > $1)`, cq.SQL())

	raw, ok := cq.Packet(postgres.PacketTag)
	require.True(t, ok)
	pkt := raw.(*postgres.Packet)
	require.Len(t, pkt.Values, 1)
	require.EqualValues(t, pgtypeInt4, pkt.OIDs[0])
}

// Scenario 2 of §8: JOIN.
func TestCompile_Join(t *testing.T) {
	users := usersTable()
	posts := postsTable()
	name := schema.MustCol[string](users, "name", value.KindText)
	title := schema.MustCol[string](posts, "title", value.KindText)
	userID := schema.MustCol[int64](users, "id", value.KindInt64)
	postUserID := schema.MustCol[int64](posts, "user_id", value.KindInt64)

	q := query.SelectCols(name, title).
		From(query.FromTable(users)).
		Join(query.FromTable(posts), query.Eq(postUserID, userID))
	cq, err := compiler.Compile(q, dialect.Postgres{}, compiler.Parameterized)
	require.NoError(t, err)
	require.Equal(t, `SELECT "name", "title" FROM "users" INNER JOIN "posts" ON ("user_id" = "id")`, cq.SQL())

	raw, ok := cq.Packet(postgres.PacketTag)
	require.True(t, ok)
	pkt := raw.(*postgres.Packet)
	require.Empty(t, pkt.Values)
}

// Scenario 3 of §8: GROUP BY + HAVING.
func TestCompile_GroupByHaving(t *testing.T) {
	users := usersTable()
	active := schema.MustCol[bool](users, "active", value.KindBool)
	id := schema.MustCol[int64](users, "id", value.KindInt64)

	q := query.SelectCols(active, query.Count(id).As("user_count")).
		From(query.FromTable(users)).
		GroupByCols(active).
		Having(query.Gt(query.Count(id), int32(5)))
	cq, err := compiler.Compile(q, dialect.Postgres{}, compiler.Parameterized)
	require.NoError(t, err)
	require.Equal(t,
		`SELECT "active", COUNT("id") AS "user_count" FROM "users" GROUP BY "active" HAVING (COUNT("id") > $1)`,
		cq.SQL())

	raw, ok := cq.Packet(postgres.PacketTag)
	require.True(t, ok)
	pkt := raw.(*postgres.Packet)
	require.Len(t, pkt.Values, 1)
}

// Scenario 5 of §8: NULL round trip through a parameter.
func TestCompile_NullParameter(t *testing.T) {
	q := query.SelectCols(query.Lit(value.Null))
	cq, err := compiler.Compile(q, dialect.Postgres{}, compiler.Parameterized)
	require.NoError(t, err)
	require.Equal(t, `SELECT $1`, cq.SQL())

	raw, ok := cq.Packet(postgres.PacketTag)
	require.True(t, ok)
	pkt := raw.(*postgres.Packet)
	require.Len(t, pkt.Values, 1)
	require.Nil(t, pkt.Values[0])
	require.EqualValues(t, 0, pkt.OIDs[0])
}

func TestCompile_InsertUpdateDelete(t *testing.T) {
	users := usersTable()

	ins := query.InsertInto(users).Into("name", "age").Values(value.Text("ada"), value.Int32(30))
	cq, err := compiler.Compile(ins, dialect.Postgres{}, compiler.Parameterized)
	require.NoError(t, err)
	require.Equal(t, `INSERT INTO "users" ("name", "age") VALUES ($1, $2)`, cq.SQL())

	upd := query.UpdateTable(users).Set("age", value.Int32(31)).Where(query.Eq(
		schema.MustCol[string](users, "name", value.KindText), "ada"))
	cq, err = compiler.Compile(upd, dialect.Postgres{}, compiler.Parameterized)
	require.NoError(t, err)
	require.Equal(t, `UPDATE "users" SET "age" = $1 WHERE ("name" = $2)`, cq.SQL())

	del := query.DeleteFrom(users).Where(query.Eq(
		schema.MustCol[int64](users, "id", value.KindInt64), int64(1)))
	cq, err = compiler.Compile(del, dialect.Postgres{}, compiler.Parameterized)
	require.NoError(t, err)
	require.Equal(t, `DELETE FROM "users" WHERE ("id" = $1)`, cq.SQL())
}

func TestCompile_CaseWithElse(t *testing.T) {
	users := usersTable()
	age := schema.MustCol[int32](users, "age", value.KindInt32)

	expr := query.CaseWhen(query.Gte(age, int32(18)), "adult").Else("minor").As("bucket")
	q := query.SelectCols(expr).From(query.FromTable(users))
	cq, err := compiler.Compile(q, dialect.Postgres{}, compiler.Parameterized)
	require.NoError(t, err)
	require.Equal(t,
		`SELECT CASE WHEN ("age" >= $1) THEN $2 ELSE $3 END AS "bucket" FROM "users"`,
		cq.SQL())
}

func TestCompile_Cte(t *testing.T) {
	users := usersTable()
	id := schema.MustCol[int64](users, "id", value.KindInt64)
	name := schema.MustCol[string](users, "name", value.KindText)

	inner := query.SelectCols(id, name).From(query.FromTable(users))
	cte := query.With("active_users", inner)
	main := query.SelectCols(schema.NewDynamicColumn(nil, "name")).From(query.FromCte(cte))
	wq := cte.Main(main)

	cq, err := compiler.Compile(wq, dialect.Postgres{}, compiler.Parameterized)
	require.NoError(t, err)
	require.Equal(t,
		`WITH "active_users" AS (SELECT "id", "name" FROM "users") SELECT "name" FROM "active_users"`,
		cq.SQL())
}

func TestCompile_SetOp(t *testing.T) {
	users := usersTable()
	name := schema.MustCol[string](users, "name", value.KindText)

	left := query.SelectCols(name).From(query.FromTable(users))
	right := query.SelectCols(name).From(query.FromTable(users))
	q := query.UnionAllQuery(left, right)

	cq, err := compiler.Compile(q, dialect.Postgres{}, compiler.Inline)
	require.NoError(t, err)
	require.Equal(t, `SELECT "name" FROM "users" UNION ALL SELECT "name" FROM "users"`, cq.SQL())
}

func TestCompile_InEmptyRejected(t *testing.T) {
	users := usersTable()
	id := schema.MustCol[int64](users, "id", value.KindInt64)
	_, err := query.In(id)
	require.Error(t, err)
	require.Contains(t, err.Error(), "at least one value required")
}

func TestCompile_Between(t *testing.T) {
	users := usersTable()
	age := schema.MustCol[int32](users, "age", value.KindInt32)

	q := query.SelectCols(age).From(query.FromTable(users)).Where(
		query.BetweenExpr(age, int32(18), int32(65)))
	cq, err := compiler.Compile(q, dialect.Postgres{}, compiler.Inline)
	require.NoError(t, err)
	require.Equal(t, `SELECT "age" FROM "users" WHERE "age" BETWEEN 18 AND 65`, cq.SQL())
}

// Pins the fix where parenthesization moved from the clause to each Binary
// node: a mixed AND/OR tree must keep its intended grouping instead of being
// flattened into one clause-level paren pair.
func TestCompile_NestedAndOrPrecedence(t *testing.T) {
	users := usersTable()
	age := schema.MustCol[int32](users, "age", value.KindInt32)
	active := schema.MustCol[bool](users, "active", value.KindBool)
	id := schema.MustCol[int64](users, "id", value.KindInt64)

	q := query.SelectCols(id).From(query.FromTable(users)).Where(
		query.And(query.Eq(active, true), query.Or(query.Gt(age, int32(18)), query.Lt(age, int32(5)))))
	cq, err := compiler.Compile(q, dialect.Postgres{}, compiler.Inline)
	require.NoError(t, err)
	require.Equal(t,
		`SELECT "id" FROM "users" WHERE (("active" = TRUE) AND (("age" > 18) OR ("age" < 5)))`,
		cq.SQL())
}

const pgtypeInt4 = 23
