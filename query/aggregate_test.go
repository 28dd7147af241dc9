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

func ordersTable() *schema.Table {
	return schema.NewTable("orders").
		AddField("id", "bigint", value.KindInt64).
		AddField("amount", "numeric", value.KindFloat64).
		PrimaryKey("id")
}

func compile(t *testing.T, q query.Query) string {
	t.Helper()
	cq, err := compiler.Compile(q, dialect.Postgres{}, compiler.Inline)
	require.NoError(t, err)
	return cq.SQL()
}

func TestAggregate_Sum(t *testing.T) {
	orders := ordersTable()
	amount := schema.MustCol[float64](orders, "amount", value.KindFloat64)
	q := query.SelectCols(query.Sum(amount).As("total")).From(query.FromTable(orders))
	require.Equal(t, `SELECT SUM("amount") AS "total" FROM "orders"`, compile(t, q))
}

func TestAggregate_AvgMinMax(t *testing.T) {
	orders := ordersTable()
	amount := schema.MustCol[float64](orders, "amount", value.KindFloat64)

	avg := query.SelectCols(query.Avg(amount)).From(query.FromTable(orders))
	require.Equal(t, `SELECT AVG("amount") FROM "orders"`, compile(t, avg))

	min := query.SelectCols(query.Min(amount)).From(query.FromTable(orders))
	require.Equal(t, `SELECT MIN("amount") FROM "orders"`, compile(t, min))

	max := query.SelectCols(query.Max(amount)).From(query.FromTable(orders))
	require.Equal(t, `SELECT MAX("amount") FROM "orders"`, compile(t, max))
}

func TestAggregate_CountAll(t *testing.T) {
	orders := ordersTable()
	q := query.SelectCols(query.CountAll().As("n")).From(query.FromTable(orders))
	require.Equal(t, `SELECT COUNT(*) AS "n" FROM "orders"`, compile(t, q))
}

func TestAggregate_CountDistinct(t *testing.T) {
	orders := ordersTable()
	id := schema.MustCol[int64](orders, "id", value.KindInt64)
	q := query.SelectCols(query.CountDistinct(id)).From(query.FromTable(orders))
	require.Equal(t, `SELECT COUNT(DISTINCT "id") FROM "orders"`, compile(t, q))
}
