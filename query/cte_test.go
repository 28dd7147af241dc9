package query_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqlforge/sqlforge/query"
	"github.com/sqlforge/sqlforge/schema"
	"github.com/sqlforge/sqlforge/value"
)

func TestCte_Recursive(t *testing.T) {
	nums := schema.NewTable("nums").AddField("n", "integer", value.KindInt32)
	n := schema.MustCol[int32](nums, "n", value.KindInt32)

	base := query.SelectCols(n).From(query.FromTable(nums))
	cte := query.With("series", base).Recursive()
	main := query.SelectCols(schema.NewDynamicColumn(nil, "n")).From(query.FromCte(cte))
	wq := cte.Main(main)

	require.Equal(t,
		`WITH RECURSIVE "series" AS (SELECT "n" FROM "nums") SELECT "n" FROM "series"`,
		compile(t, wq))
}

func TestCte_MultipleWithAnd(t *testing.T) {
	nums := schema.NewTable("nums").AddField("n", "integer", value.KindInt32)
	n := schema.MustCol[int32](nums, "n", value.KindInt32)

	first := query.With("a", query.SelectCols(n).From(query.FromTable(nums)))
	second := query.With("b", query.SelectCols(n).From(query.FromTable(nums)))
	main := query.SelectCols(schema.NewDynamicColumn(nil, "n")).From(query.FromCte(first))

	wq := first.Main(main).And(second)
	require.Equal(t,
		`WITH "a" AS (SELECT "n" FROM "nums") , "b" AS (SELECT "n" FROM "nums") SELECT "n" FROM "a"`,
		compile(t, wq))
}
