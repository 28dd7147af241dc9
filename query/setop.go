package query

import "github.com/sqlforge/sqlforge/visitor"

// SetOp is UNION / UNION ALL / INTERSECT / EXCEPT between two queries.
type SetOp struct {
	left, right Query
	kind        visitor.SetOpKind
}

func UnionQuery(left, right Query) SetOp {
	return SetOp{left: left, right: right, kind: visitor.Union}
}

func UnionAllQuery(left, right Query) SetOp {
	return SetOp{left: left, right: right, kind: visitor.UnionAll}
}

func IntersectQuery(left, right Query) SetOp {
	return SetOp{left: left, right: right, kind: visitor.Intersect}
}

func ExceptQuery(left, right Query) SetOp {
	return SetOp{left: left, right: right, kind: visitor.Except}
}

func (s SetOp) Accept(v visitor.Visitor) error {
	if err := s.left.Accept(v); err != nil {
		return err
	}
	if err := v.EmitSetOp(s.kind); err != nil {
		return err
	}
	return s.right.Accept(v)
}
