package query_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqlforge/sqlforge/compiler"
	"github.com/sqlforge/sqlforge/dialect"
	"github.com/sqlforge/sqlforge/query"
	"github.com/sqlforge/sqlforge/schema"
	"github.com/sqlforge/sqlforge/value"
)

func TestInsert_FromRecord_AdoptsSchemaColumnOrder(t *testing.T) {
	users := usersTableForDML()
	rec := value.NewRecord(users)
	require.NoError(t, rec.SetByName("name", value.Text("ada")))
	require.NoError(t, rec.SetByName("age", value.Int32(30)))

	ins := query.InsertInto(users).FromRecord(rec)
	cq, err := compiler.Compile(ins, dialect.Postgres{}, compiler.Parameterized)
	require.NoError(t, err)
	require.Equal(t, `INSERT INTO "users" ("id", "name", "age") VALUES ($1, $2, $3)`, cq.SQL())
}

func TestInsert_Batch_AppendsOneRowPerRecord(t *testing.T) {
	users := usersTableForDML()
	r1 := value.NewRecord(users)
	require.NoError(t, r1.SetByName("name", value.Text("ada")))
	r2 := value.NewRecord(users)
	require.NoError(t, r2.SetByName("name", value.Text("bea")))

	ins := query.InsertInto(users).Into("id", "name", "age").Batch(r1, r2)
	cq, err := compiler.Compile(ins, dialect.Postgres{}, compiler.Parameterized)
	require.NoError(t, err)
	require.Equal(t, `INSERT INTO "users" ("id", "name", "age") VALUES ($1, $2, $3), ($4, $5, $6)`, cq.SQL())
}

func TestUpdate_WithoutWhere_IsUnconditional(t *testing.T) {
	users := usersTableForDML()
	upd := query.UpdateTable(users).Set("age", value.Int32(0))
	require.Equal(t, `UPDATE "users" SET "age" = 0`, compile(t, upd))
}

func TestDelete_WithoutWhere_IsUnconditional(t *testing.T) {
	users := usersTableForDML()
	del := query.DeleteFrom(users)
	require.Equal(t, `DELETE FROM "users"`, compile(t, del))
}

func usersTableForDML() *schema.Table {
	return schema.NewTable("users").
		AddField("id", "bigint", value.KindInt64).
		AddField("name", "text", value.KindText).
		AddField("age", "integer", value.KindInt32).
		PrimaryKey("id")
}
