package dialect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sqlforge/sqlforge/postgres"
	"github.com/sqlforge/sqlforge/value"
)

// Postgres is the (and for this module's scope, only) concrete Dialect:
// double-quoted identifiers, $N placeholders, LIMIT n OFFSET m, single-quote
// string escaping and \x hex byte escaping, per spec §4.7/§6.
type Postgres struct{}

var _ Dialect = Postgres{}

func (Postgres) QuoteIdentifier(out *strings.Builder, name string) {
	out.WriteByte('"')
	out.WriteString(strings.ReplaceAll(name, `"`, `""`))
	out.WriteByte('"')
}

func (Postgres) Placeholder(out *strings.Builder, oneBasedIndex int) {
	out.WriteByte('$')
	out.WriteString(strconv.Itoa(oneBasedIndex))
}

func (Postgres) LimitClause(count, offset int64) string {
	var b strings.Builder
	if count != 0 {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.FormatInt(count, 10))
	}
	if offset != 0 {
		b.WriteString(" OFFSET ")
		b.WriteString(strconv.FormatInt(offset, 10))
	}
	return b.String()
}

func (Postgres) FormatValue(out *strings.Builder, v value.FieldValue) error {
	switch v.Kind() {
	case value.KindNull:
		out.WriteString("NULL")
	case value.KindBool:
		b, _ := v.AsBool()
		if b {
			out.WriteString("TRUE")
		} else {
			out.WriteString("FALSE")
		}
	case value.KindInt32:
		i, _ := v.AsInt32()
		out.WriteString(strconv.FormatInt(int64(i), 10))
	case value.KindInt64:
		i, _ := v.AsInt64()
		out.WriteString(strconv.FormatInt(i, 10))
	case value.KindFloat64:
		f, _ := v.AsFloat64()
		out.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	case value.KindText:
		s, _ := v.AsText()
		out.WriteByte('\'')
		out.WriteString(strings.ReplaceAll(s, "'", "''"))
		out.WriteByte('\'')
	case value.KindBytes:
		b, _ := v.AsBytes()
		out.WriteString(`'\x`)
		const hex = "0123456789abcdef"
		for _, c := range b {
			out.WriteByte(hex[c>>4])
			out.WriteByte(hex[c&0x0f])
		}
		out.WriteByte('\'')
	default:
		return fmt.Errorf("dialect: postgres cannot format value of kind %s", v.Kind())
	}
	return nil
}

func (Postgres) NewParamSink() ParamSink { return postgres.NewParamSink() }

func (Postgres) SupportsReturning() bool        { return true }
func (Postgres) SupportsCTE() bool              { return true }
func (Postgres) SupportsWindowFunctions() bool  { return true }
func (Postgres) SupportsLateralJoins() bool     { return true }
