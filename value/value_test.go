package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFieldValueEqual(t *testing.T) {
	require.True(t, Null.Equal(Null))
	require.False(t, Null.Equal(Int32(0)))
	require.True(t, Int32(5).Equal(Int32(5)))
	require.False(t, Int32(5).Equal(Int64(5)))
	require.True(t, Bytes([]byte{1, 2}).Equal(Bytes([]byte{1, 2})))
	require.True(t, Float64(math.NaN()).Equal(Float64(math.NaN())))
}

func TestFieldValueOwned(t *testing.T) {
	b := []byte{1, 2, 3}
	fv := Bytes(b).Owned()
	b[0] = 9
	got, ok := fv.AsBytes()
	require.True(t, ok)
	require.Equal(t, byte(1), got[0])
}

func TestFromUint64(t *testing.T) {
	fv := FromUint64(42)
	i, ok := fv.AsInt64()
	require.True(t, ok)
	require.EqualValues(t, 42, i)

	fv = FromUint64(math.MaxUint64)
	s, ok := fv.AsText()
	require.True(t, ok)
	require.Equal(t, "18446744073709551615", s)
}

type fakeSchema struct {
	names []string
}

func (f fakeSchema) FieldCount() int { return len(f.names) }
func (f fakeSchema) FieldName(i int) string { return f.names[i] }
func (f fakeSchema) FieldIndex(name string) (int, bool) {
	for i, n := range f.names {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

func TestRecord(t *testing.T) {
	s := fakeSchema{names: []string{"id", "name"}}
	r := NewRecord(s)
	require.Equal(t, 2, r.Len())
	require.True(t, r.At(0).IsNull())

	require.NoError(t, r.SetByName("name", Text("ada")))
	got, err := r.Get("name")
	require.NoError(t, err)
	require.Equal(t, "ada", got.String())

	_, err = r.Get("missing")
	require.Error(t, err)
}
