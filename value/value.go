// Package value defines the scalar value model shared by the schema, query
// and postgres packages: a closed sum type over the value kinds the wire
// protocol understands, and a row type bound to a table schema.
package value

import (
	"fmt"
	"math"
)

// Kind identifies which variant of FieldValue (or which native column type)
// is in play. It is a closed set mirroring the PostgreSQL binary encodings
// this module supports; there is no "unknown" escape hatch.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt32
	KindInt64
	KindFloat64
	KindText
	KindBytes
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindFloat64:
		return "float64"
	case KindText:
		return "text"
	case KindBytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// FieldValue is a tagged union over {Null, Bool, I32, I64, F64, Text, Bytes}.
// Only the field matching Kind is meaningful; equality is structural and is
// only defined between values of the same Kind.
type FieldValue struct {
	kind  Kind
	b     bool
	i32   int32
	i64   int64
	f64   float64
	text  string
	bytes []byte
}

// Null is the zero value of FieldValue.
var Null = FieldValue{kind: KindNull}

func Bool(v bool) FieldValue    { return FieldValue{kind: KindBool, b: v} }
func Int32(v int32) FieldValue  { return FieldValue{kind: KindInt32, i32: v} }
func Int64(v int64) FieldValue  { return FieldValue{kind: KindInt64, i64: v} }
func Float64(v float64) FieldValue { return FieldValue{kind: KindFloat64, f64: v} }
func Text(v string) FieldValue  { return FieldValue{kind: KindText, text: v} }

// Bytes borrows the given slice; callers that need the FieldValue to outlive
// the slice's owner must call Owned first.
func Bytes(v []byte) FieldValue { return FieldValue{kind: KindBytes, bytes: v} }

// Owned returns a copy of v whose Bytes payload (if any) does not alias the
// caller's backing array. All other variants are already copy-safe.
func (v FieldValue) Owned() FieldValue {
	if v.kind != KindBytes || v.bytes == nil {
		return v
	}
	cp := make([]byte, len(v.bytes))
	copy(cp, v.bytes)
	v.bytes = cp
	return v
}

func (v FieldValue) Kind() Kind   { return v.kind }
func (v FieldValue) IsNull() bool { return v.kind == KindNull }

func (v FieldValue) AsBool() (bool, bool)       { return v.b, v.kind == KindBool }
func (v FieldValue) AsInt32() (int32, bool)     { return v.i32, v.kind == KindInt32 }
func (v FieldValue) AsInt64() (int64, bool)     { return v.i64, v.kind == KindInt64 }
func (v FieldValue) AsFloat64() (float64, bool) { return v.f64, v.kind == KindFloat64 }
func (v FieldValue) AsText() (string, bool)     { return v.text, v.kind == KindText }
func (v FieldValue) AsBytes() ([]byte, bool)    { return v.bytes, v.kind == KindBytes }

// Equal reports structural equality. Values of different Kind are never
// equal, including Null compared against anything (SQL's three-valued logic
// is the caller's concern, not this type's).
func (v FieldValue) Equal(o FieldValue) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt32:
		return v.i32 == o.i32
	case KindInt64:
		return v.i64 == o.i64
	case KindFloat64:
		return v.f64 == o.f64 || (math.IsNaN(v.f64) && math.IsNaN(o.f64))
	case KindText:
		return v.text == o.text
	case KindBytes:
		if len(v.bytes) != len(o.bytes) {
			return false
		}
		for i := range v.bytes {
			if v.bytes[i] != o.bytes[i] {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (v FieldValue) String() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindInt32:
		return fmt.Sprintf("%d", v.i32)
	case KindInt64:
		return fmt.Sprintf("%d", v.i64)
	case KindFloat64:
		return fmt.Sprintf("%v", v.f64)
	case KindText:
		return v.text
	case KindBytes:
		return fmt.Sprintf("% x", v.bytes)
	default:
		return "<invalid>"
	}
}

// FromUint64 binds an unsigned 64-bit value. Values that fit in an int64
// bind as KindInt64 (the binary int8 wire encoding); values that overflow
// int64 bind as KindText so the server parses them as numeric, since this
// module's FieldValue has no dedicated unsigned variant (spec Open Question).
func FromUint64(v uint64) FieldValue {
	if v <= math.MaxInt64 {
		return Int64(int64(v))
	}
	return Text(fmt.Sprintf("%d", v))
}
