// Package query implements the expression AST of spec §3/§4.3: one Go type
// per node kind, composed by value, consumed once by a visitor.Visitor walk.
// Builder-chain legality (§4.4) is enforced by giving each clause stage its
// own concrete Go type exposing only the chain methods SQL allows next —
// e.g. Having has no GroupBy method — so an illegal chain fails to compile
// rather than failing at a runtime capability check. This is stronger than
// the runtime tag-check the spec sketches and needs no separate mechanism.
package query

import "github.com/sqlforge/sqlforge/visitor"

// Expr is any node usable as a value or boolean expression: columns,
// literals, operators, subqueries, aggregates, CASE. schema.Column[T],
// schema.DynamicColumn and schema.AllColumns implement it directly.
type Expr interface {
	Accept(v visitor.Visitor) error
}

// Query is any node usable as a whole statement or FROM-able subquery:
// SELECT and its clause stages, set operations, CTEs, and the DML builders.
type Query interface {
	Accept(v visitor.Visitor) error
}
