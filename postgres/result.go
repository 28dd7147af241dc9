// Package postgres also implements §4.10's zero-copy result reader layer:
// FieldView (one cell), RowView (one row), ResultBlock (the owning wrapper
// over a NativeResult). Decoding dispatches on the (format, OID) pair
// exactly as spec §4.10/§6 tabulates, including the text-format fallbacks
// for NaN/Infinity and the \x hex bytea prefix.
package postgres

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/sqlforge/sqlforge/value"
)

const (
	formatTextWire   int16 = 0
	formatBinaryWire int16 = 1
)

// FieldView is a non-owning view over one result cell: raw bytes plus the
// format/OID pair needed to decode them, and the null flag (§4.10).
type FieldView struct {
	raw    []byte
	isNull bool
	format int16
	oid    uint32
	column string
}

// IsNull reports the cell's null flag directly, short-circuiting any
// decode attempt (§4.10).
func (f FieldView) IsNull() bool { return f.isNull }

// AsFieldValue decodes the cell as a value.FieldValue, dispatching on
// (format, OID). Requesting a decode of a null cell returns
// (value.Null, nil) — callers that need the stricter "typed decode of a
// null fails" behavior use the Bool/Int32/... accessors below instead.
func (f FieldView) AsFieldValue() (value.FieldValue, error) {
	if f.isNull {
		return value.Null, nil
	}
	switch f.oid {
	case pgtype.BoolOID:
		v, err := f.AsBool()
		return value.Bool(v), err
	case pgtype.Int4OID:
		v, err := f.AsInt32()
		return value.Int32(v), err
	case pgtype.Int8OID:
		v, err := f.AsInt64()
		return value.Int64(v), err
	case pgtype.Float8OID:
		v, err := f.AsFloat64()
		return value.Float64(v), err
	case pgtype.ByteaOID:
		v, err := f.AsBytes()
		return value.Bytes(v), err
	default:
		v, err := f.AsText()
		return value.Text(v), err
	}
}

// AsBool decodes a boolean cell. Binary format is a single 0/1 byte; text
// format follows PostgreSQL's boolout ('t'/'f').
func (f FieldView) AsBool() (bool, error) {
	if f.isNull {
		return false, f.nullErr()
	}
	if f.format == formatBinaryWire {
		if len(f.raw) != 1 {
			return false, fmt.Errorf("postgres: malformed bool: %d bytes", len(f.raw))
		}
		return f.raw[0] != 0, nil
	}
	switch string(f.raw) {
	case "t", "true":
		return true, nil
	case "f", "false":
		return false, nil
	default:
		return false, fmt.Errorf("postgres: malformed text bool %q", f.raw)
	}
}

// AsInt32 decodes a 4-byte big-endian binary integer or, in text format,
// parses the decimal representation.
func (f FieldView) AsInt32() (int32, error) {
	if f.isNull {
		return 0, f.nullErr()
	}
	if f.format == formatBinaryWire {
		if len(f.raw) != 4 {
			return 0, fmt.Errorf("postgres: malformed int4: %d bytes", len(f.raw))
		}
		return int32(binary.BigEndian.Uint32(f.raw)), nil
	}
	n, err := strconv.ParseInt(string(f.raw), 10, 32)
	return int32(n), err
}

// AsInt64 decodes an 8-byte big-endian binary integer or, in text format,
// parses the decimal representation.
func (f FieldView) AsInt64() (int64, error) {
	if f.isNull {
		return 0, f.nullErr()
	}
	if f.format == formatBinaryWire {
		if len(f.raw) != 8 {
			return 0, fmt.Errorf("postgres: malformed int8: %d bytes", len(f.raw))
		}
		return int64(binary.BigEndian.Uint64(f.raw)), nil
	}
	return strconv.ParseInt(string(f.raw), 10, 64)
}

// AsFloat64 decodes an 8-byte big-endian IEEE-754 bit pattern in binary
// format; text format additionally recognizes NaN/Infinity/-Infinity
// (either case), per §4.10.
func (f FieldView) AsFloat64() (float64, error) {
	if f.isNull {
		return 0, f.nullErr()
	}
	if f.format == formatBinaryWire {
		if len(f.raw) != 8 {
			return 0, fmt.Errorf("postgres: malformed float8: %d bytes", len(f.raw))
		}
		return math.Float64frombits(binary.BigEndian.Uint64(f.raw)), nil
	}
	switch strings.ToLower(string(f.raw)) {
	case "nan":
		return math.NaN(), nil
	case "infinity":
		return math.Inf(1), nil
	case "-infinity":
		return math.Inf(-1), nil
	}
	return strconv.ParseFloat(string(f.raw), 64)
}

// AsText decodes a text-OID cell. Binary and text format carry identical
// UTF-8 bytes for this OID, so both branches just stringify the buffer.
func (f FieldView) AsText() (string, error) {
	if f.isNull {
		return "", f.nullErr()
	}
	return string(f.raw), nil
}

// AsBytes decodes a bytea cell: binary format borrows the buffer directly;
// text format decodes the \x… hex prefix PostgreSQL emits for bytea_output
// = hex (the default since 9.0).
func (f FieldView) AsBytes() ([]byte, error) {
	if f.isNull {
		return nil, f.nullErr()
	}
	if f.format == formatBinaryWire {
		return f.raw, nil
	}
	s := string(f.raw)
	if !strings.HasPrefix(s, `\x`) {
		return nil, fmt.Errorf("postgres: malformed text bytea %q", s)
	}
	out, err := hex.DecodeString(s[2:])
	if err != nil {
		return nil, fmt.Errorf("postgres: malformed text bytea %q: %w", s, err)
	}
	return out, nil
}

// nullErr is the NullConversion error of §4.10: requesting a concrete type
// on a null field fails with SQLSTATE 22002, naming the column.
func (f FieldView) nullErr() error {
	return &ErrorContext{Code: CodeDataError, SQLSTATE: "22002", Message: fmt.Sprintf("column %q is null", f.column)}
}

// RowView binds a NativeResult and a row index; At/col_index locate a cell
// or a column without copying the underlying buffer.
type RowView struct {
	result NativeResult
	row    int
}

// At builds a FieldView over column col of this row.
func (r RowView) At(col int) FieldView {
	return FieldView{
		raw:    r.result.GetValue(r.row, col),
		isNull: r.result.GetIsNull(r.row, col),
		format: r.result.FFormat(col),
		oid:    r.result.FType(col),
		column: r.result.FName(col),
	}
}

// Col looks up col's zero-based index by name, failing with "column not
// found" on miss, then builds its FieldView.
func (r RowView) Col(name string) (FieldView, error) {
	i, ok := r.result.FNumber(name)
	if !ok {
		return FieldView{}, fmt.Errorf("postgres: column not found: %q", name)
	}
	return r.At(i), nil
}

// ResultBlock owns a NativeResult, releasing it exactly once via clear
// (§4.10/§5). It never itself decides success/failure — errorFromResult
// does that at the executor boundary before a ResultBlock is constructed.
type ResultBlock struct {
	result NativeResult
}

// NewResultBlock takes ownership of result.
func NewResultBlock(result NativeResult) *ResultBlock { return &ResultBlock{result: result} }

func (b *ResultBlock) Rows() int { return b.result.NTuples() }
func (b *ResultBlock) Cols() int { return b.result.NFields() }

// Row binds row index i.
func (b *ResultBlock) Row(i int) RowView { return RowView{result: b.result, row: i} }

// ColumnName returns the name of column i.
func (b *ResultBlock) ColumnName(i int) string { return b.result.FName(i) }

// Get decodes row r, column c as T via fn, failing on a null cell the same
// way FieldView's typed accessors do.
func Get[T any](b *ResultBlock, r, c int, fn func(FieldView) (T, error)) (T, error) {
	return fn(b.Row(r).At(c))
}

// GetOpt decodes row r, column c as T via fn, returning (zero, false) on a
// null cell instead of an error — the "get_opt" convenience of §4.10.
func GetOpt[T any](b *ResultBlock, r, c int, fn func(FieldView) (T, error)) (T, bool, error) {
	fv := b.Row(r).At(c)
	if fv.IsNull() {
		var zero T
		return zero, false, nil
	}
	v, err := fn(fv)
	return v, true, err
}

// Clear releases the underlying native result. Safe to call more than
// once; subsequent calls are no-ops on the Go-GC-backed nativeResult.
func (b *ResultBlock) Clear() { b.result.Clear() }
