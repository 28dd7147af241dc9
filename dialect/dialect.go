// Package dialect abstracts the syntactic questions the SQL generator asks
// during a walk (§4.7): identifier quoting, placeholder syntax, LIMIT/OFFSET
// shape, inline value formatting, and a ParamSink factory for parameterized
// compiles. Grounded on the Dialect interface shape in
// other_examples/shipq's compile.Dialect and on ariga-atlas/sql/postgres's
// own quoting/placeholder helpers (driver.go).
package dialect

import (
	"strings"

	"github.com/sqlforge/sqlforge/value"
)

// ParamSink accumulates parameter values during a parameterized compile and
// produces an opaque, backend-specific packet (§4.9, §9 "opaque parameter
// packet"). Push returns the new parameter count so the generator can emit
// the matching placeholder index.
type ParamSink interface {
	Push(v value.FieldValue) int

	// Packet returns the accumulated packet, tagged so a CompiledQuery
	// consumer can downcast it by name (§4.8's "downcast by tag").
	Packet() (tag string, packet any)
}

// Dialect is the per-backend strategy object answering SQL-syntax
// questions (§4.7). The generator never quotes or escapes on its own.
type Dialect interface {
	// QuoteIdentifier appends name to out, escaped per dialect rule.
	QuoteIdentifier(out *strings.Builder, name string)

	// Placeholder appends the placeholder marker for the given 1-based
	// parameter index (PostgreSQL: $N).
	Placeholder(out *strings.Builder, oneBasedIndex int)

	// LimitClause returns the LIMIT/OFFSET fragment for count/offset,
	// omitting either side that is zero.
	LimitClause(count, offset int64) string

	// FormatValue inline-renders v into out (escaping strings/bytes),
	// used in Inline compiler mode.
	FormatValue(out *strings.Builder, v value.FieldValue) error

	// NewParamSink opens a fresh parameter accumulator for one compile.
	NewParamSink() ParamSink

	SupportsReturning() bool
	SupportsCTE() bool
	SupportsWindowFunctions() bool
	SupportsLateralJoins() bool
}
