package query_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqlforge/sqlforge/query"
	"github.com/sqlforge/sqlforge/schema"
	"github.com/sqlforge/sqlforge/value"
)

func activeAndArchivedTables() (active, archived *schema.Table) {
	active = schema.NewTable("active_users").AddField("name", "text", value.KindText)
	archived = schema.NewTable("archived_users").AddField("name", "text", value.KindText)
	return
}

func TestSetOp_Union(t *testing.T) {
	active, archived := activeAndArchivedTables()
	left := query.SelectCols(schema.MustCol[string](active, "name", value.KindText)).From(query.FromTable(active))
	right := query.SelectCols(schema.MustCol[string](archived, "name", value.KindText)).From(query.FromTable(archived))

	q := query.UnionQuery(left, right)
	require.Equal(t,
		`SELECT "name" FROM "active_users" UNION SELECT "name" FROM "archived_users"`,
		compile(t, q))
}

func TestSetOp_Intersect(t *testing.T) {
	active, archived := activeAndArchivedTables()
	left := query.SelectCols(schema.MustCol[string](active, "name", value.KindText)).From(query.FromTable(active))
	right := query.SelectCols(schema.MustCol[string](archived, "name", value.KindText)).From(query.FromTable(archived))

	q := query.IntersectQuery(left, right)
	require.Equal(t,
		`SELECT "name" FROM "active_users" INTERSECT SELECT "name" FROM "archived_users"`,
		compile(t, q))
}

func TestSetOp_Except(t *testing.T) {
	active, archived := activeAndArchivedTables()
	left := query.SelectCols(schema.MustCol[string](active, "name", value.KindText)).From(query.FromTable(active))
	right := query.SelectCols(schema.MustCol[string](archived, "name", value.KindText)).From(query.FromTable(archived))

	q := query.ExceptQuery(left, right)
	require.Equal(t,
		`SELECT "name" FROM "active_users" EXCEPT SELECT "name" FROM "archived_users"`,
		compile(t, q))
}
