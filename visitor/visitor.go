// Package visitor defines the double-dispatch interface the query AST
//(package query) walks through to produce SQL. Hook signatures take only
// primitives and value.FieldValue, never a query.* type, so this package has
// no dependency on query and query can depend on it without a cycle —
// grounded on original_source's query_visitor.hpp, whose "deducing this"
// template visitor exposes the same enter/emit/leave granularity per node
// kind (visit_binary_expr_start/visit_binary_op_impl/visit_binary_expr_end,
// visit_select_start(distinct)/visit_select_end, and so on).
package visitor

import "github.com/sqlforge/sqlforge/value"

// BinaryOp enumerates the binary operators of spec.md §3's Binary node.
type BinaryOp int

const (
	OpEq BinaryOp = iota
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
	OpAnd
	OpOr
	OpLike
	OpNotLike
)

// UnaryOp enumerates the unary operators of spec.md §3's Unary node.
type UnaryOp int

const (
	OpNot UnaryOp = iota
	OpIsNull
	OpIsNotNull
)

// OrderDirection is ASC or DESC.
type OrderDirection int

const (
	Asc OrderDirection = iota
	Desc
)

// JoinType enumerates the join kinds of spec.md §3's Join node.
type JoinType int

const (
	InnerJoin JoinType = iota
	LeftJoin
	RightJoin
	FullJoin
	CrossJoin
)

// SetOpKind enumerates the set operations of spec.md §3's SetOp node.
type SetOpKind int

const (
	Union SetOpKind = iota
	UnionAll
	Intersect
	Except
)

// Visitor is the double-dispatch target every query AST node's Accept method
// drives. Method names pair enter_*/leave_* (bracketing hooks, so a
// generator can emit wrapping syntax without the node itself knowing about
// it) with emit_*/visit_* (single events). Separators between list elements
// are the generator's job: signalled via ColumnSeparator for expression
// lists, and written inside EmitInsertColumns/EmitInsertValues for INSERT.
type Visitor interface {
	// Columns, literals, wildcards.
	VisitColumn(table, field, alias string) error
	VisitLiteral(v value.FieldValue, alias string) error
	VisitNullLiteral() error
	VisitAllColumns(table string) error

	// List-element separator, used for SELECT column lists, GROUP BY
	// lists, ORDER BY lists and IN value lists.
	ColumnSeparator() error

	// Binary / unary operators.
	EnterBinary() error
	EmitBinaryOp(op BinaryOp) error
	LeaveBinary() error
	EnterUnary() error
	EmitUnaryOp(op UnaryOp) error
	LeaveUnary() error

	// BETWEEN: operand already visited by the caller before EnterBetween.
	EnterBetween() error
	EmitAnd() error
	LeaveBetween() error

	// IN (v1, v2, ...): operand already visited before EnterInList.
	EnterInList() error
	LeaveInList() error

	// Subquery / EXISTS.
	EnterSubquery() error
	LeaveSubquery(alias string) error
	EnterExists() error
	LeaveExists() error

	// Aggregates: one Enter* per kind, shared Leave with optional alias.
	EnterCount(distinct bool) error
	EnterSum() error
	EnterAvg() error
	EnterMin() error
	EnterMax() error
	LeaveAggregate(alias string) error

	// ORDER BY direction, emitted after the ordered column has been visited.
	EmitOrderDirection(dir OrderDirection) error

	// SELECT.
	EnterSelect(distinct bool) error
	LeaveSelect() error

	// FROM.
	EnterFrom() error
	EmitTableRef(name string) error
	EmitAlias(alias string) error
	LeaveFrom() error

	// WHERE / GROUP BY / HAVING / ORDER BY clause / LIMIT / JOIN.
	EnterWhere() error
	LeaveWhere() error
	EnterGroupBy() error
	LeaveGroupBy() error
	EnterHaving() error
	LeaveHaving() error
	EnterOrderByClause() error
	LeaveOrderByClause() error
	EmitLimit(count, offset int64) error
	EnterJoin(kind JoinType, lateral bool) error
	EmitJoinOn() error
	LeaveJoin() error

	// DML.
	EnterInsert() error
	EmitInsertColumns(names []string) error
	EmitInsertValues(rows [][]value.FieldValue) error
	LeaveInsert() error
	EnterUpdate() error
	EmitUpdateSet(columns []string, values []value.FieldValue) error
	LeaveUpdate() error
	EnterDelete() error
	LeaveDelete() error

	// Set operations.
	EmitSetOp(kind SetOpKind) error

	// CASE.
	EnterCase() error
	EnterWhen() error
	EmitWhenThen() error
	LeaveWhen() error
	EnterElse() error
	LeaveElse() error
	LeaveCase(alias string) error

	// CTE.
	EnterCte(recursive bool) error
	EmitCteName(name string) error
	EnterCteAs() error
	LeaveCte() error
}
