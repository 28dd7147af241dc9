package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqlforge/sqlforge/value"
)

func newUsers() *Table {
	return NewTable("users").
		AddField("id", "bigint", value.KindInt64).
		AddField("name", "text", value.KindText).
		AddField("age", "integer", value.KindInt32).
		PrimaryKey("id").
		Nullable("age", true).
		Unique("name")
}

func TestTableChainNoopOnMissingField(t *testing.T) {
	tbl := newUsers().PrimaryKey("does-not-exist")
	require.NotNil(t, tbl)
	require.False(t, tbl.FieldByName("name").PrimaryKey())
}

func TestTableInvariants(t *testing.T) {
	tbl := newUsers()
	require.Equal(t, 3, tbl.FieldCount())
	for i := 0; i < tbl.FieldCount(); i++ {
		require.Equal(t, tbl.Field(i).Name(), tbl.FieldName(i))
	}
	idx, ok := tbl.FieldIndex("age")
	require.True(t, ok)
	require.Equal(t, 2, idx)

	id := tbl.FieldByName("id")
	require.True(t, id.PrimaryKey())
	require.False(t, id.Nullable())
	age := tbl.FieldByName("age")
	require.True(t, age.Nullable())
}

func TestTableCloneIsDeep(t *testing.T) {
	tbl := newUsers()
	cp := tbl.Clone()
	cp.FieldByName("name").unique = false
	require.True(t, tbl.FieldByName("name").Unique())
	require.NotSame(t, tbl.Field(0), cp.Field(0))
	require.NotSame(t, tbl.Ref(), cp.Ref())
}

func TestColumnTypeMismatch(t *testing.T) {
	tbl := newUsers()
	_, err := Col[int64](tbl, "name", value.KindInt64)
	require.Error(t, err)
	require.Contains(t, err.Error(), "type mismatch")

	c, err := Col[int64](tbl, "id", value.KindInt64)
	require.NoError(t, err)
	require.Equal(t, "id", c.FieldName())
	require.Equal(t, "users", c.TableName())
}

func TestSharedTableRefRename(t *testing.T) {
	tbl := newUsers()
	c, err := Col[int64](tbl, "id", value.KindInt64)
	require.NoError(t, err)
	require.Equal(t, "users", c.TableName())
	tbl.Ref().Rename("u")
	require.Equal(t, "u", c.TableName())
}

func TestAllColumns(t *testing.T) {
	require.Equal(t, "", Star().TableName())
	tbl := newUsers()
	require.Equal(t, "users", TableStar(tbl).TableName())
}
