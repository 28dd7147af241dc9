package query

import (
	"github.com/sqlforge/sqlforge/schema"
	"github.com/sqlforge/sqlforge/visitor"
)

// fromSource is anything a FROM or JOIN clause can target: a table, a
// subquery, or a named CTE. Each emits its own table-ref-or-subquery
// followed by its alias.
type fromSource interface {
	acceptTarget(v visitor.Visitor) error
}

// TableSource targets a schema.Table directly.
type TableSource struct {
	table *schema.Table
	alias string
}

func FromTable(t *schema.Table) TableSource { return TableSource{table: t} }

func (s TableSource) As(alias string) TableSource { s.alias = alias; return s }

func (s TableSource) acceptTarget(v visitor.Visitor) error {
	if err := v.EmitTableRef(s.table.Name()); err != nil {
		return err
	}
	return v.EmitAlias(s.alias)
}

// QuerySource targets a derived table built from a nested Query.
type QuerySource struct {
	query Query
	alias string
}

func FromQuery(q Query) QuerySource { return QuerySource{query: q} }

func (s QuerySource) As(alias string) QuerySource { s.alias = alias; return s }

func (s QuerySource) acceptTarget(v visitor.Visitor) error {
	if err := s.query.Accept(v); err != nil {
		return err
	}
	return v.EmitAlias(s.alias)
}

// CteSource targets a Cte by the name it was declared under.
type CteSource struct {
	name  string
	alias string
}

func FromCte(c Cte) CteSource { return CteSource{name: c.Name()} }

func (s CteSource) As(alias string) CteSource { s.alias = alias; return s }

func (s CteSource) acceptTarget(v visitor.Visitor) error {
	if err := v.EmitTableRef(s.name); err != nil {
		return err
	}
	return v.EmitAlias(s.alias)
}

// Select is the root of a SELECT chain: a column list plus a distinct flag.
// Its only legal successor is From, per spec §4.4's table.
type Select struct {
	columns  []Expr
	distinct bool
}

// SelectCols starts a SELECT over the given column expressions.
func SelectCols(cols ...Expr) Select {
	return Select{columns: append([]Expr(nil), cols...)}
}

func (s Select) Distinct() Select { s.distinct = true; return s }

func (s Select) Accept(v visitor.Visitor) error {
	if err := v.EnterSelect(s.distinct); err != nil {
		return err
	}
	if err := acceptExprList(v, s.columns); err != nil {
		return err
	}
	return v.LeaveSelect()
}

// From attaches src as the FROM target.
func (s Select) From(src fromSource) From { return From{sel: s, src: src} }

// From is a FROM clause: a SELECT plus its table/subquery/CTE source.
// Legal successors: Join, Where, GroupBy, OrderBy, Limit.
type From struct {
	sel Select
	src fromSource
}

func (f From) Accept(v visitor.Visitor) error {
	if err := f.sel.Accept(v); err != nil {
		return err
	}
	if err := v.EnterFrom(); err != nil {
		return err
	}
	if err := f.src.acceptTarget(v); err != nil {
		return err
	}
	return v.LeaveFrom()
}

func (f From) Join(src fromSource, on Expr) Join {
	return Join{prev: f, src: src, on: on, kind: visitor.InnerJoin}
}

func (f From) LeftJoin(src fromSource, on Expr) Join {
	return Join{prev: f, src: src, on: on, kind: visitor.LeftJoin}
}

func (f From) RightJoin(src fromSource, on Expr) Join {
	return Join{prev: f, src: src, on: on, kind: visitor.RightJoin}
}

func (f From) FullJoin(src fromSource, on Expr) Join {
	return Join{prev: f, src: src, on: on, kind: visitor.FullJoin}
}

func (f From) CrossJoin(src fromSource, on Expr) Join {
	return Join{prev: f, src: src, on: on, kind: visitor.CrossJoin}
}

func (f From) Where(cond Expr) Where { return Where{prev: f, cond: cond} }

func (f From) GroupByCols(cols ...Expr) GroupBy {
	return GroupBy{prev: f, cols: append([]Expr(nil), cols...)}
}

func (f From) GroupByExpr(expr Expr) GroupBy { return GroupBy{prev: f, criteria: expr} }

func (f From) OrderBy(orders ...OrderBy) OrderByClause {
	return OrderByClause{prev: f, orders: append([]OrderBy(nil), orders...)}
}

func (f From) Limit(count, offset int64) Limit { return Limit{prev: f, count: count, offset: offset} }

// Join is a JOIN clause. Legal successors mirror From: further Join, Where,
// GroupBy, OrderBy, Limit.
type Join struct {
	prev    Query
	src     fromSource
	on      Expr
	kind    visitor.JoinType
	lateral bool
}

// Lateral marks the join LATERAL — a supplemented feature (SPEC_FULL §4):
// additive to JoinType, not a new join kind, honored only when the dialect
// reports SupportsLateralJoins.
func (j Join) Lateral() Join { j.lateral = true; return j }

func (j Join) Accept(v visitor.Visitor) error {
	if err := j.prev.Accept(v); err != nil {
		return err
	}
	if err := v.EnterJoin(j.kind, j.lateral); err != nil {
		return err
	}
	if err := j.src.acceptTarget(v); err != nil {
		return err
	}
	if err := v.EmitJoinOn(); err != nil {
		return err
	}
	if err := j.on.Accept(v); err != nil {
		return err
	}
	return v.LeaveJoin()
}

func (j Join) Join(src fromSource, on Expr) Join {
	return Join{prev: j, src: src, on: on, kind: visitor.InnerJoin}
}

func (j Join) LeftJoin(src fromSource, on Expr) Join {
	return Join{prev: j, src: src, on: on, kind: visitor.LeftJoin}
}

func (j Join) Where(cond Expr) Where { return Where{prev: j, cond: cond} }

func (j Join) GroupByCols(cols ...Expr) GroupBy {
	return GroupBy{prev: j, cols: append([]Expr(nil), cols...)}
}

func (j Join) GroupByExpr(expr Expr) GroupBy { return GroupBy{prev: j, criteria: expr} }

func (j Join) OrderBy(orders ...OrderBy) OrderByClause {
	return OrderByClause{prev: j, orders: append([]OrderBy(nil), orders...)}
}

func (j Join) Limit(count, offset int64) Limit { return Limit{prev: j, count: count, offset: offset} }

// Where is a WHERE clause. Legal successors: GroupBy, OrderBy, Limit.
type Where struct {
	prev Query
	cond Expr
}

func (w Where) Accept(v visitor.Visitor) error {
	if err := w.prev.Accept(v); err != nil {
		return err
	}
	if err := v.EnterWhere(); err != nil {
		return err
	}
	if err := w.cond.Accept(v); err != nil {
		return err
	}
	return v.LeaveWhere()
}

func (w Where) GroupByCols(cols ...Expr) GroupBy {
	return GroupBy{prev: w, cols: append([]Expr(nil), cols...)}
}

func (w Where) GroupByExpr(expr Expr) GroupBy { return GroupBy{prev: w, criteria: expr} }

func (w Where) OrderBy(orders ...OrderBy) OrderByClause {
	return OrderByClause{prev: w, orders: append([]OrderBy(nil), orders...)}
}

func (w Where) Limit(count, offset int64) Limit { return Limit{prev: w, count: count, offset: offset} }

// GroupBy is a GROUP BY clause, over either a column list or a single
// expression (spec §3's "GroupBy(query, columns…) or GroupBy(query,
// expression)"). Legal successors: Having, OrderBy, Limit.
type GroupBy struct {
	prev     Query
	cols     []Expr
	criteria Expr
}

func (g GroupBy) Accept(v visitor.Visitor) error {
	if err := g.prev.Accept(v); err != nil {
		return err
	}
	if err := v.EnterGroupBy(); err != nil {
		return err
	}
	if g.criteria != nil {
		if err := g.criteria.Accept(v); err != nil {
			return err
		}
	} else if err := acceptExprList(v, g.cols); err != nil {
		return err
	}
	return v.LeaveGroupBy()
}

func (g GroupBy) Having(cond Expr) Having { return Having{prev: g, cond: cond} }

func (g GroupBy) OrderBy(orders ...OrderBy) OrderByClause {
	return OrderByClause{prev: g, orders: append([]OrderBy(nil), orders...)}
}

func (g GroupBy) Limit(count, offset int64) Limit { return Limit{prev: g, count: count, offset: offset} }

// Having is a HAVING clause. Legal successors: OrderBy, Limit.
type Having struct {
	prev Query
	cond Expr
}

func (h Having) Accept(v visitor.Visitor) error {
	if err := h.prev.Accept(v); err != nil {
		return err
	}
	if err := v.EnterHaving(); err != nil {
		return err
	}
	if err := h.cond.Accept(v); err != nil {
		return err
	}
	return v.LeaveHaving()
}

func (h Having) OrderBy(orders ...OrderBy) OrderByClause {
	return OrderByClause{prev: h, orders: append([]OrderBy(nil), orders...)}
}

func (h Having) Limit(count, offset int64) Limit { return Limit{prev: h, count: count, offset: offset} }

// OrderByClause is an ORDER BY clause. Its only legal successor is Limit.
type OrderByClause struct {
	prev   Query
	orders []OrderBy
}

func (o OrderByClause) Accept(v visitor.Visitor) error {
	if err := o.prev.Accept(v); err != nil {
		return err
	}
	if err := v.EnterOrderByClause(); err != nil {
		return err
	}
	for i, ord := range o.orders {
		if i > 0 {
			if err := v.ColumnSeparator(); err != nil {
				return err
			}
		}
		if err := ord.Accept(v); err != nil {
			return err
		}
	}
	return v.LeaveOrderByClause()
}

func (o OrderByClause) Limit(count, offset int64) Limit {
	return Limit{prev: o, count: count, offset: offset}
}

// Limit is a LIMIT/OFFSET clause — terminal, per spec §4.4.
type Limit struct {
	prev   Query
	count  int64
	offset int64
}

func (l Limit) Accept(v visitor.Visitor) error {
	if err := l.prev.Accept(v); err != nil {
		return err
	}
	return v.EmitLimit(l.count, l.offset)
}

func acceptExprList(v visitor.Visitor, exprs []Expr) error {
	for i, e := range exprs {
		if i > 0 {
			if err := v.ColumnSeparator(); err != nil {
				return err
			}
		}
		if err := e.Accept(v); err != nil {
			return err
		}
	}
	return nil
}
