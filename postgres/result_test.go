package postgres_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"

	"github.com/sqlforge/sqlforge/postgres"
)

// fakeResult is a minimal NativeResult backing a single row, letting
// result_test exercise FieldView's decode dispatch without a live connection.
type fakeResult struct {
	fields []pgconn.FieldDescription
	row    [][]byte
}

func (r *fakeResult) Status() postgres.ResultStatus { return postgres.StatusTuplesOK }
func (r *fakeResult) NTuples() int                  { return 1 }
func (r *fakeResult) NFields() int                  { return len(r.fields) }
func (r *fakeResult) FName(col int) string          { return r.fields[col].Name }
func (r *fakeResult) FNumber(name string) (int, bool) {
	for i, f := range r.fields {
		if f.Name == name {
			return i, true
		}
	}
	return 0, false
}
func (r *fakeResult) FFormat(col int) int16       { return r.fields[col].Format }
func (r *fakeResult) FType(col int) uint32        { return r.fields[col].DataTypeOID }
func (r *fakeResult) GetValue(row, col int) []byte { return r.row[col] }
func (r *fakeResult) GetLength(row, col int) int   { return len(r.row[col]) }
func (r *fakeResult) GetIsNull(row, col int) bool  { return r.row[col] == nil }
func (r *fakeResult) ErrorField(code byte) string  { return "" }
func (r *fakeResult) ErrorMessage() string         { return "" }
func (r *fakeResult) Clear()                       {}

func field(name string, oid uint32, format int16) pgconn.FieldDescription {
	return pgconn.FieldDescription{Name: name, DataTypeOID: oid, Format: format}
}

func TestResultBlock_DecodesBinaryAndText(t *testing.T) {
	int4 := make([]byte, 4)
	binary.BigEndian.PutUint32(int4, 42)
	float8 := make([]byte, 8)
	binary.BigEndian.PutUint64(float8, math.Float64bits(3.5))

	res := &fakeResult{
		fields: []pgconn.FieldDescription{
			field("age", pgtype.Int4OID, 1),
			field("score", pgtype.Float8OID, 1),
			field("name", pgtype.TextOID, 0),
			field("flag", pgtype.BoolOID, 1),
			field("bio", pgtype.TextOID, 0),
		},
		row: [][]byte{int4, float8, []byte("ada"), {1}, nil},
	}
	b := postgres.NewResultBlock(res)
	require.Equal(t, 1, b.Rows())
	require.Equal(t, 5, b.Cols())

	age, err := postgres.Get(b, 0, 0, postgres.FieldView.AsInt32)
	require.NoError(t, err)
	require.Equal(t, int32(42), age)

	score, err := postgres.Get(b, 0, 1, postgres.FieldView.AsFloat64)
	require.NoError(t, err)
	require.Equal(t, 3.5, score)

	name, err := postgres.Get(b, 0, 2, postgres.FieldView.AsText)
	require.NoError(t, err)
	require.Equal(t, "ada", name)

	flag, err := postgres.Get(b, 0, 3, postgres.FieldView.AsBool)
	require.NoError(t, err)
	require.True(t, flag)

	bio, ok, err := postgres.GetOpt(b, 0, 4, postgres.FieldView.AsText)
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, bio)
}

func TestFieldView_NullTypedAccessFails(t *testing.T) {
	res := &fakeResult{
		fields: []pgconn.FieldDescription{field("age", pgtype.Int4OID, 1)},
		row:    [][]byte{nil},
	}
	b := postgres.NewResultBlock(res)
	_, err := postgres.Get(b, 0, 0, postgres.FieldView.AsInt32)
	require.Error(t, err)
	var ec *postgres.ErrorContext
	require.ErrorAs(t, err, &ec)
	require.Equal(t, "22002", ec.SQLSTATE)
}

func TestFieldView_TextBytea_DecodesHexPrefix(t *testing.T) {
	res := &fakeResult{
		fields: []pgconn.FieldDescription{field("payload", pgtype.ByteaOID, 0)},
		row:    [][]byte{[]byte(`\xdeadbeef`)},
	}
	b := postgres.NewResultBlock(res)
	got, err := postgres.Get(b, 0, 0, postgres.FieldView.AsBytes)
	require.NoError(t, err)
	require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, got)
}

func TestFieldView_TextFloat_RecognizesSpecialValues(t *testing.T) {
	res := &fakeResult{
		fields: []pgconn.FieldDescription{
			field("a", pgtype.Float8OID, 0),
			field("b", pgtype.Float8OID, 0),
		},
		row: [][]byte{[]byte("NaN"), []byte("-Infinity")},
	}
	b := postgres.NewResultBlock(res)
	a, err := postgres.Get(b, 0, 0, postgres.FieldView.AsFloat64)
	require.NoError(t, err)
	require.True(t, math.IsNaN(a))

	v, err := postgres.Get(b, 0, 1, postgres.FieldView.AsFloat64)
	require.NoError(t, err)
	require.True(t, math.IsInf(v, -1))
}
