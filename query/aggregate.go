package query

import "github.com/sqlforge/sqlforge/visitor"

type aggKind int

const (
	aggCount aggKind = iota
	aggSum
	aggAvg
	aggMin
	aggMax
)

// Aggregate is Count/Sum/Avg/Min/Max, optionally DISTINCT (Count only) and
// optionally aliased. CountAll has no inner column, per spec §3.
type Aggregate struct {
	kind     aggKind
	distinct bool
	column   Expr
	alias    string
}

func Count(col Expr) Aggregate         { return Aggregate{kind: aggCount, column: col} }
func CountDistinct(col Expr) Aggregate { return Aggregate{kind: aggCount, distinct: true, column: col} }
func CountAll() Aggregate              { return Aggregate{kind: aggCount} }
func Sum(col Expr) Aggregate           { return Aggregate{kind: aggSum, column: col} }
func Avg(col Expr) Aggregate           { return Aggregate{kind: aggAvg, column: col} }
func Min(col Expr) Aggregate           { return Aggregate{kind: aggMin, column: col} }
func Max(col Expr) Aggregate           { return Aggregate{kind: aggMax, column: col} }

func (a Aggregate) As(alias string) Aggregate { a.alias = alias; return a }

func (a Aggregate) Accept(v visitor.Visitor) error {
	var err error
	switch a.kind {
	case aggCount:
		err = v.EnterCount(a.distinct)
	case aggSum:
		err = v.EnterSum()
	case aggAvg:
		err = v.EnterAvg()
	case aggMin:
		err = v.EnterMin()
	case aggMax:
		err = v.EnterMax()
	}
	if err != nil {
		return err
	}
	if a.column != nil {
		if err := a.column.Accept(v); err != nil {
			return err
		}
	} else if a.kind == aggCount {
		if err := v.VisitAllColumns(""); err != nil {
			return err
		}
	}
	return v.LeaveAggregate(a.alias)
}
