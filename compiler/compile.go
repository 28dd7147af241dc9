package compiler

import (
	"github.com/sqlforge/sqlforge/dialect"
	"github.com/sqlforge/sqlforge/query"
)

// Compile walks q with a fresh Generator bound to d in the given mode and
// returns the finalized CompiledQuery.
func Compile(q query.Query, d dialect.Dialect, mode Mode) (CompiledQuery, error) {
	g := NewGenerator(d, mode)
	if err := q.Accept(g); err != nil {
		return CompiledQuery{}, err
	}
	return g.Finalize(), nil
}
