package query

import "github.com/sqlforge/sqlforge/visitor"

// OrderBy pairs an expression with a sort direction.
type OrderBy struct {
	column Expr
	dir    visitor.OrderDirection
}

func Asc(col Expr) OrderBy  { return OrderBy{column: col, dir: visitor.Asc} }
func Desc(col Expr) OrderBy { return OrderBy{column: col, dir: visitor.Desc} }

func (o OrderBy) Accept(v visitor.Visitor) error {
	if err := o.column.Accept(v); err != nil {
		return err
	}
	return v.EmitOrderDirection(o.dir)
}
