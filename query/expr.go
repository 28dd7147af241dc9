package query

import (
	"github.com/sqlforge/sqlforge/value"
	"github.com/sqlforge/sqlforge/visitor"
)

// Literal wraps a scalar plus an optional output alias (spec §3). A Literal
// holding value.Null dispatches to VisitNullLiteral instead of VisitLiteral,
// merging spec's separate NullLiteral node into this one (the zero FieldValue
// already distinguishes it; a dedicated type would just duplicate Accept).
type Literal struct {
	val   value.FieldValue
	alias string
}

// Lit wraps v as a Literal expression.
func Lit(v value.FieldValue) Literal { return Literal{val: v} }

func (l Literal) As(alias string) Literal { l.alias = alias; return l }

func (l Literal) Accept(v visitor.Visitor) error {
	if l.val.IsNull() {
		return v.VisitNullLiteral()
	}
	return v.VisitLiteral(l.val, l.alias)
}

// Binary is a two-operand operator node; op is one of the comparison or
// logical operators enumerated in spec §3.
type Binary struct {
	op          visitor.BinaryOp
	left, right Expr
}

func binary(op visitor.BinaryOp, left, right any) Binary {
	return Binary{op: op, left: Lift(left), right: Lift(right)}
}

func Eq(left, right any) Binary     { return binary(visitor.OpEq, left, right) }
func Neq(left, right any) Binary    { return binary(visitor.OpNeq, left, right) }
func Lt(left, right any) Binary     { return binary(visitor.OpLt, left, right) }
func Lte(left, right any) Binary    { return binary(visitor.OpLte, left, right) }
func Gt(left, right any) Binary     { return binary(visitor.OpGt, left, right) }
func Gte(left, right any) Binary    { return binary(visitor.OpGte, left, right) }
func And(left, right any) Binary    { return binary(visitor.OpAnd, left, right) }
func Or(left, right any) Binary     { return binary(visitor.OpOr, left, right) }
func Like(left, right any) Binary   { return binary(visitor.OpLike, left, right) }
func NotLike(left, right any) Binary { return binary(visitor.OpNotLike, left, right) }

func (b Binary) Accept(v visitor.Visitor) error {
	if err := v.EnterBinary(); err != nil {
		return err
	}
	if err := b.left.Accept(v); err != nil {
		return err
	}
	if err := v.EmitBinaryOp(b.op); err != nil {
		return err
	}
	if err := b.right.Accept(v); err != nil {
		return err
	}
	return v.LeaveBinary()
}

// Unary is a single-operand operator node: NOT, IS NULL, IS NOT NULL.
type Unary struct {
	op      visitor.UnaryOp
	operand Expr
}

// Not negates operand. Not(Exists(q)) is how NOT EXISTS is built, per §4.3.
func Not(operand any) Unary { return Unary{op: visitor.OpNot, operand: Lift(operand)} }

func IsNull(operand any) Unary    { return Unary{op: visitor.OpIsNull, operand: Lift(operand)} }
func IsNotNull(operand any) Unary { return Unary{op: visitor.OpIsNotNull, operand: Lift(operand)} }

func (u Unary) Accept(v visitor.Visitor) error {
	if err := v.EnterUnary(); err != nil {
		return err
	}
	if err := v.EmitUnaryOp(u.op); err != nil {
		return err
	}
	if err := u.operand.Accept(v); err != nil {
		return err
	}
	return v.LeaveUnary()
}

// Between is `operand BETWEEN low AND high`.
type Between struct {
	operand, lower, upper Expr
}

func BetweenExpr(operand, lower, upper any) Between {
	return Between{operand: Lift(operand), lower: Lift(lower), upper: Lift(upper)}
}

func (b Between) Accept(v visitor.Visitor) error {
	if err := b.operand.Accept(v); err != nil {
		return err
	}
	if err := v.EnterBetween(); err != nil {
		return err
	}
	if err := b.lower.Accept(v); err != nil {
		return err
	}
	if err := v.EmitAnd(); err != nil {
		return err
	}
	if err := b.upper.Accept(v); err != nil {
		return err
	}
	return v.LeaveBetween()
}

// InList is `operand IN (v1, v2, ...)`. Decided Open Question (SPEC_FULL
// §3/query): an empty value list is rejected at compose time rather than
// silently compiled to `IN ()`.
type InList struct {
	operand Expr
	values  []Expr
}

// In builds operand IN (values...). It fails if values is empty.
func In(operand any, values ...any) (InList, error) {
	if len(values) == 0 {
		return InList{}, newQueryError("in: at least one value required")
	}
	lifted := make([]Expr, len(values))
	for i, val := range values {
		lifted[i] = Lift(val)
	}
	return InList{operand: Lift(operand), values: lifted}, nil
}

func (l InList) Accept(v visitor.Visitor) error {
	if err := l.operand.Accept(v); err != nil {
		return err
	}
	if err := v.EnterInList(); err != nil {
		return err
	}
	for i, e := range l.values {
		if i > 0 {
			if err := v.ColumnSeparator(); err != nil {
				return err
			}
		}
		if err := e.Accept(v); err != nil {
			return err
		}
	}
	return v.LeaveInList()
}

// Subquery wraps a Query as a scalar expression, with an optional alias.
type Subquery struct {
	query Query
	alias string
}

func SubqueryExpr(q Query) Subquery { return Subquery{query: q} }

func (s Subquery) As(alias string) Subquery { s.alias = alias; return s }

func (s Subquery) Accept(v visitor.Visitor) error {
	if err := v.EnterSubquery(); err != nil {
		return err
	}
	if err := s.query.Accept(v); err != nil {
		return err
	}
	return v.LeaveSubquery(s.alias)
}

// Exists is `EXISTS (query)`.
type Exists struct {
	query Query
}

func ExistsQuery(q Query) Exists { return Exists{query: q} }

// NotExists builds `NOT EXISTS (query)` as Not(ExistsQuery(q)), per §4.3.
func NotExists(q Query) Unary { return Not(Exists{query: q}) }

func (e Exists) Accept(v visitor.Visitor) error {
	if err := v.EnterExists(); err != nil {
		return err
	}
	if err := e.query.Accept(v); err != nil {
		return err
	}
	return v.LeaveExists()
}
