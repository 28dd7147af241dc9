// Package compiler implements the SQL generator (§4.6) — a concrete
// visitor.Visitor that concatenates SQL text and, in Parameterized mode,
// pushes every literal and DML value through the dialect's ParamSink. It is
// the component that turns a query AST into a compiler.CompiledQuery.
package compiler

import (
	"strings"

	"github.com/sqlforge/sqlforge/dialect"
	"github.com/sqlforge/sqlforge/value"
	"github.com/sqlforge/sqlforge/visitor"
)

// Mode selects whether literals are bound as parameters or formatted inline.
type Mode int

const (
	// Parameterized pushes every literal/DML value through a ParamSink and
	// emits the dialect's placeholder in its place.
	Parameterized Mode = iota
	// Inline formats every value directly into the SQL text — used for
	// logging and for contexts that cannot bind parameters.
	Inline
)

// Generator is the concrete F-visitor: formatting decisions (commas,
// spacing, clause ordering) live here; the Dialect only answers syntactic
// questions (quoting, placeholders, LIMIT shape, feature flags), per §4.6.
type Generator struct {
	dialect dialect.Dialect
	mode    Mode
	buf     strings.Builder
	sink    dialect.ParamSink

	unaryStack []visitor.UnaryOp
	cteStarted bool
}

// NewGenerator opens a generator bound to d in the given mode.
func NewGenerator(d dialect.Dialect, mode Mode) *Generator {
	g := &Generator{dialect: d, mode: mode}
	if mode == Parameterized {
		g.sink = d.NewParamSink()
	}
	return g
}

// Finalize moves the accumulated text and the sink's packet into a
// CompiledQuery (§4.6's "Finalization").
func (g *Generator) Finalize() CompiledQuery {
	cq := CompiledQuery{sql: g.buf.String()}
	if g.sink != nil {
		cq.packetTag, cq.packet = g.sink.Packet()
	}
	return cq
}

func (g *Generator) quote(name string) { g.dialect.QuoteIdentifier(&g.buf, name) }

func (g *Generator) emitValue(v value.FieldValue) error {
	if g.mode == Parameterized {
		idx := g.sink.Push(v)
		g.dialect.Placeholder(&g.buf, idx)
		return nil
	}
	return g.dialect.FormatValue(&g.buf, v)
}

func (g *Generator) emitAliased(v value.FieldValue, alias string) error {
	if err := g.emitValue(v); err != nil {
		return err
	}
	if alias != "" {
		g.buf.WriteString(" AS ")
		g.quote(alias)
	}
	return nil
}

// Columns, literals, wildcards.

func (g *Generator) VisitColumn(table, field, alias string) error {
	g.quote(field)
	if alias != "" {
		g.buf.WriteString(" AS ")
		g.quote(alias)
	}
	return nil
}

func (g *Generator) VisitLiteral(v value.FieldValue, alias string) error {
	return g.emitAliased(v, alias)
}

func (g *Generator) VisitNullLiteral() error {
	return g.emitAliased(value.Null, "")
}

func (g *Generator) VisitAllColumns(table string) error {
	if table != "" {
		g.quote(table)
		g.buf.WriteByte('.')
	}
	g.buf.WriteByte('*')
	return nil
}

func (g *Generator) ColumnSeparator() error {
	g.buf.WriteString(", ")
	return nil
}

// Binary / unary.

// EnterBinary/LeaveBinary wrap every binary node in its own parens — the
// only self-parenthesizing node kind, matching the original's
// visit_binary_expr_start/end. Clauses (WHERE/HAVING/JOIN ON) stay bare so
// nested mixed AND/OR/comparison trees keep their intended grouping instead
// of being flattened into one clause-level paren pair.
func (g *Generator) EnterBinary() error {
	g.buf.WriteByte('(')
	return nil
}

func (g *Generator) EmitBinaryOp(op visitor.BinaryOp) error {
	g.buf.WriteString(binaryOpText(op))
	return nil
}

func (g *Generator) LeaveBinary() error {
	g.buf.WriteByte(')')
	return nil
}

func binaryOpText(op visitor.BinaryOp) string {
	switch op {
	case visitor.OpEq:
		return " = "
	case visitor.OpNeq:
		return " <> "
	case visitor.OpLt:
		return " < "
	case visitor.OpLte:
		return " <= "
	case visitor.OpGt:
		return " > "
	case visitor.OpGte:
		return " >= "
	case visitor.OpAnd:
		return " AND "
	case visitor.OpOr:
		return " OR "
	case visitor.OpLike:
		return " LIKE "
	case visitor.OpNotLike:
		return " NOT LIKE "
	default:
		return " ? "
	}
}

func (g *Generator) EnterUnary() error { return nil }

func (g *Generator) EmitUnaryOp(op visitor.UnaryOp) error {
	g.unaryStack = append(g.unaryStack, op)
	if op == visitor.OpNot {
		g.buf.WriteString("NOT ")
	}
	return nil
}

func (g *Generator) LeaveUnary() error {
	n := len(g.unaryStack)
	op := g.unaryStack[n-1]
	g.unaryStack = g.unaryStack[:n-1]
	switch op {
	case visitor.OpIsNull:
		g.buf.WriteString(" IS NULL")
	case visitor.OpIsNotNull:
		g.buf.WriteString(" IS NOT NULL")
	}
	return nil
}

// BETWEEN / IN.

func (g *Generator) EnterBetween() error {
	g.buf.WriteString(" BETWEEN ")
	return nil
}

func (g *Generator) EmitAnd() error {
	g.buf.WriteString(" AND ")
	return nil
}

func (g *Generator) LeaveBetween() error { return nil }

func (g *Generator) EnterInList() error {
	g.buf.WriteString(" IN (")
	return nil
}

func (g *Generator) LeaveInList() error {
	g.buf.WriteByte(')')
	return nil
}

// Subquery / EXISTS.

func (g *Generator) EnterSubquery() error {
	g.buf.WriteByte('(')
	return nil
}

func (g *Generator) LeaveSubquery(alias string) error {
	g.buf.WriteByte(')')
	if alias != "" {
		g.buf.WriteString(" AS ")
		g.quote(alias)
	}
	return nil
}

func (g *Generator) EnterExists() error {
	g.buf.WriteString("EXISTS (")
	return nil
}

func (g *Generator) LeaveExists() error {
	g.buf.WriteByte(')')
	return nil
}

// Aggregates.

func (g *Generator) EnterCount(distinct bool) error {
	g.buf.WriteString("COUNT(")
	if distinct {
		g.buf.WriteString("DISTINCT ")
	}
	return nil
}

func (g *Generator) EnterSum() error { g.buf.WriteString("SUM("); return nil }
func (g *Generator) EnterAvg() error { g.buf.WriteString("AVG("); return nil }
func (g *Generator) EnterMin() error { g.buf.WriteString("MIN("); return nil }
func (g *Generator) EnterMax() error { g.buf.WriteString("MAX("); return nil }

func (g *Generator) LeaveAggregate(alias string) error {
	g.buf.WriteByte(')')
	if alias != "" {
		g.buf.WriteString(" AS ")
		g.quote(alias)
	}
	return nil
}

func (g *Generator) EmitOrderDirection(dir visitor.OrderDirection) error {
	if dir == visitor.Desc {
		g.buf.WriteString(" DESC")
	} else {
		g.buf.WriteString(" ASC")
	}
	return nil
}

// SELECT / FROM.

func (g *Generator) EnterSelect(distinct bool) error {
	g.buf.WriteString("SELECT ")
	if distinct {
		g.buf.WriteString("DISTINCT ")
	}
	return nil
}

func (g *Generator) LeaveSelect() error { return nil }

func (g *Generator) EnterFrom() error {
	g.buf.WriteString(" FROM ")
	return nil
}

func (g *Generator) EmitTableRef(name string) error {
	g.quote(name)
	return nil
}

func (g *Generator) EmitAlias(alias string) error {
	if alias != "" {
		g.buf.WriteString(" AS ")
		g.quote(alias)
	}
	return nil
}

func (g *Generator) LeaveFrom() error { return nil }

// WHERE / GROUP BY / HAVING / ORDER BY / LIMIT / JOIN.

// EnterWhere/LeaveWhere emit no parens of their own: the condition's own
// Binary nodes (or lack thereof, for a bare BETWEEN/IN/unary condition)
// already supply whatever grouping the expression needs.
func (g *Generator) EnterWhere() error {
	g.buf.WriteString(" WHERE ")
	return nil
}

func (g *Generator) LeaveWhere() error { return nil }

func (g *Generator) EnterGroupBy() error {
	g.buf.WriteString(" GROUP BY ")
	return nil
}

func (g *Generator) LeaveGroupBy() error { return nil }

// EnterHaving/LeaveHaving, like WHERE, leave grouping to the condition's
// own nodes.
func (g *Generator) EnterHaving() error {
	g.buf.WriteString(" HAVING ")
	return nil
}

func (g *Generator) LeaveHaving() error { return nil }

func (g *Generator) EnterOrderByClause() error {
	g.buf.WriteString(" ORDER BY ")
	return nil
}

func (g *Generator) LeaveOrderByClause() error { return nil }

func (g *Generator) EmitLimit(count, offset int64) error {
	g.buf.WriteString(g.dialect.LimitClause(count, offset))
	return nil
}

func (g *Generator) EnterJoin(kind visitor.JoinType, lateral bool) error {
	g.buf.WriteByte(' ')
	g.buf.WriteString(joinKeyword(kind))
	if lateral && g.dialect.SupportsLateralJoins() {
		g.buf.WriteString(" LATERAL")
	}
	g.buf.WriteByte(' ')
	return nil
}

func joinKeyword(kind visitor.JoinType) string {
	switch kind {
	case visitor.LeftJoin:
		return "LEFT JOIN"
	case visitor.RightJoin:
		return "RIGHT JOIN"
	case visitor.FullJoin:
		return "FULL JOIN"
	case visitor.CrossJoin:
		return "CROSS JOIN"
	default:
		return "INNER JOIN"
	}
}

// EmitJoinOn/LeaveJoin, like WHERE, leave grouping to the condition's own
// nodes.
func (g *Generator) EmitJoinOn() error {
	g.buf.WriteString(" ON ")
	return nil
}

func (g *Generator) LeaveJoin() error { return nil }

// DML.

func (g *Generator) EnterInsert() error {
	g.buf.WriteString("INSERT INTO ")
	return nil
}

func (g *Generator) EmitInsertColumns(names []string) error {
	g.buf.WriteString(" (")
	for i, n := range names {
		if i > 0 {
			g.buf.WriteString(", ")
		}
		g.quote(n)
	}
	g.buf.WriteByte(')')
	return nil
}

func (g *Generator) EmitInsertValues(rows [][]value.FieldValue) error {
	g.buf.WriteString(" VALUES ")
	for i, row := range rows {
		if i > 0 {
			g.buf.WriteString(", ")
		}
		g.buf.WriteByte('(')
		for j, v := range row {
			if j > 0 {
				g.buf.WriteString(", ")
			}
			if err := g.emitValue(v); err != nil {
				return err
			}
		}
		g.buf.WriteByte(')')
	}
	return nil
}

func (g *Generator) LeaveInsert() error { return nil }

func (g *Generator) EnterUpdate() error {
	g.buf.WriteString("UPDATE ")
	return nil
}

func (g *Generator) EmitUpdateSet(columns []string, values []value.FieldValue) error {
	g.buf.WriteString(" SET ")
	for i := range columns {
		if i > 0 {
			g.buf.WriteString(", ")
		}
		g.quote(columns[i])
		g.buf.WriteString(" = ")
		if err := g.emitValue(values[i]); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) LeaveUpdate() error { return nil }

func (g *Generator) EnterDelete() error {
	g.buf.WriteString("DELETE FROM ")
	return nil
}

func (g *Generator) LeaveDelete() error { return nil }

// Set operations.

func (g *Generator) EmitSetOp(kind visitor.SetOpKind) error {
	switch kind {
	case visitor.UnionAll:
		g.buf.WriteString(" UNION ALL ")
	case visitor.Intersect:
		g.buf.WriteString(" INTERSECT ")
	case visitor.Except:
		g.buf.WriteString(" EXCEPT ")
	default:
		g.buf.WriteString(" UNION ")
	}
	return nil
}

// CASE.

func (g *Generator) EnterCase() error {
	g.buf.WriteString("CASE")
	return nil
}

func (g *Generator) EnterWhen() error {
	g.buf.WriteString(" WHEN ")
	return nil
}

func (g *Generator) EmitWhenThen() error {
	g.buf.WriteString(" THEN ")
	return nil
}

func (g *Generator) LeaveWhen() error { return nil }

func (g *Generator) EnterElse() error {
	g.buf.WriteString(" ELSE ")
	return nil
}

func (g *Generator) LeaveElse() error { return nil }

func (g *Generator) LeaveCase(alias string) error {
	g.buf.WriteString(" END")
	if alias != "" {
		g.buf.WriteString(" AS ")
		g.quote(alias)
	}
	return nil
}

// CTE.

func (g *Generator) EnterCte(recursive bool) error {
	if !g.cteStarted {
		g.buf.WriteString("WITH ")
		if recursive {
			g.buf.WriteString("RECURSIVE ")
		}
		g.cteStarted = true
	} else {
		g.buf.WriteString(", ")
	}
	return nil
}

func (g *Generator) EmitCteName(name string) error {
	g.quote(name)
	return nil
}

func (g *Generator) EnterCteAs() error {
	g.buf.WriteString(" AS (")
	return nil
}

func (g *Generator) LeaveCte() error {
	g.buf.WriteString(") ")
	return nil
}
