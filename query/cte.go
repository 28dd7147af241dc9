package query

import "github.com/sqlforge/sqlforge/visitor"

// Cte names a query so it can be referenced as a FROM source under that
// name. Recursive marks a WITH RECURSIVE clause.
type Cte struct {
	name      string
	recursive bool
	query     Query
}

func With(name string, q Query) Cte { return Cte{name: name, query: q} }

func (c Cte) Recursive() Cte { c.recursive = true; return c }

// Name is the identifier a From/Join builds a CteSource against.
func (c Cte) Name() string { return c.name }

// Main attaches q as the statement that follows the WITH clause, yielding a
// WithQuery. Append further CTEs to the result with And if more than one is
// needed.
func (c Cte) Main(q Query) WithQuery { return WithQuery{ctes: []Cte{c}, query: q} }

// WithQuery is one or more CTEs followed by the statement that uses them.
type WithQuery struct {
	ctes  []Cte
	query Query
}

// And appends another CTE to the WITH clause.
func (w WithQuery) And(c Cte) WithQuery {
	ctes := make([]Cte, len(w.ctes)+1)
	copy(ctes, w.ctes)
	ctes[len(w.ctes)] = c
	w.ctes = ctes
	return w
}

func (w WithQuery) Accept(v visitor.Visitor) error {
	for _, c := range w.ctes {
		if err := c.Accept(v); err != nil {
			return err
		}
	}
	return w.query.Accept(v)
}

func (c Cte) Accept(v visitor.Visitor) error {
	if err := v.EnterCte(c.recursive); err != nil {
		return err
	}
	if err := v.EmitCteName(c.name); err != nil {
		return err
	}
	if err := v.EnterCteAs(); err != nil {
		return err
	}
	if err := c.query.Accept(v); err != nil {
		return err
	}
	return v.LeaveCte()
}
