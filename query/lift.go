package query

import "github.com/sqlforge/sqlforge/value"

// Lift auto-wraps a raw Go scalar into a Literal unless it is already an
// Expr, matching spec §4.3/§9's "literal auto-lift" rule: comparison and
// logical operators accept raw scalars on either side and wrap them at
// construction — the only place the builder implicitly converts values.
func Lift(x any) Expr {
	switch v := x.(type) {
	case Expr:
		return v
	case value.FieldValue:
		return Literal{val: v}
	case nil:
		return Literal{val: value.Null}
	case bool:
		return Literal{val: value.Bool(v)}
	case int32:
		return Literal{val: value.Int32(v)}
	case int:
		return Literal{val: value.Int64(int64(v))}
	case int64:
		return Literal{val: value.Int64(v)}
	case float64:
		return Literal{val: value.Float64(v)}
	case string:
		return Literal{val: value.Text(v)}
	case []byte:
		return Literal{val: value.Bytes(v).Owned()}
	default:
		panic("query: cannot lift value of this type to a Literal")
	}
}
