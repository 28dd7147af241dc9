package schema

import (
	"github.com/sqlforge/sqlforge/value"
	"github.com/sqlforge/sqlforge/visitor"
)

// Column is a typed handle to a field: {field reference, owning-table-name
// handle, optional alias}, parameterized by the field's native Go type for
// ergonomics at the call site. The type parameter is not retained at
// runtime; Field().Kind() still reports the value.Kind recorded on the field.
type Column[T any] struct {
	field *Field
	table *TableRef
	alias string
}

// Col builds a typed handle for name on t's schema. It fails with a type
// mismatch error if the field's recorded Kind does not match want.
func Col[T any](t *Table, name string, want value.Kind) (Column[T], error) {
	f := t.find(name)
	if f == nil {
		return Column[T]{}, typeMismatchError(name, want, value.KindNull)
	}
	if f.kind != want {
		return Column[T]{}, typeMismatchError(name, want, f.kind)
	}
	return Column[T]{field: f, table: t.ref}, nil
}

// MustCol is Col, panicking on error; intended for package-init-time column
// declarations where a mismatch is a programmer error.
func MustCol[T any](t *Table, name string, want value.Kind) Column[T] {
	c, err := Col[T](t, name, want)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Column[T]) Field() *Field    { return c.field }
func (c Column[T]) TableName() string {
	if c.table == nil {
		return ""
	}
	return c.table.Name()
}
func (c Column[T]) FieldName() string { return c.field.Name() }
func (c Column[T]) Alias() string     { return c.alias }

// As returns a copy of c carrying the given output alias.
func (c Column[T]) As(alias string) Column[T] {
	c.alias = alias
	return c
}

// Accept makes Column[T] a leaf node of the query AST: it double-dispatches
// into the visitor as a plain column reference, carrying its own alias.
func (c Column[T]) Accept(v visitor.Visitor) error {
	return v.VisitColumn(c.TableName(), c.FieldName(), c.alias)
}

// Dynamic erases the compile-time type, yielding a DynamicColumn usable in
// result-set contexts with no owning table schema (CTE bodies, set-op
// outputs).
func (c Column[T]) Dynamic() DynamicColumn {
	return DynamicColumn{field: c.field, table: c.table, alias: c.alias}
}

// DynamicColumn is the untyped counterpart of Column[T], for places where
// columns have no compile-time-checked native type: CTE result columns, set
// operation outputs, and columns built from ad-hoc names.
type DynamicColumn struct {
	field *Field // may be nil when the column has no owning schema at all
	table *TableRef
	name  string
	alias string
}

// NewDynamicColumn builds a column by bare name with no owning field
// schema, e.g. for referencing a CTE's output column.
func NewDynamicColumn(table *TableRef, name string) DynamicColumn {
	return DynamicColumn{table: table, name: name}
}

func (c DynamicColumn) FieldName() string {
	if c.field != nil {
		return c.field.Name()
	}
	return c.name
}

func (c DynamicColumn) TableName() string {
	if c.table == nil {
		return ""
	}
	return c.table.Name()
}

func (c DynamicColumn) Alias() string { return c.alias }

func (c DynamicColumn) As(alias string) DynamicColumn {
	c.alias = alias
	return c
}

// Accept makes DynamicColumn a leaf node of the query AST, same as Column[T].
func (c DynamicColumn) Accept(v visitor.Visitor) error {
	return v.VisitColumn(c.TableName(), c.FieldName(), c.alias)
}

// AllColumns is the `*` / `table.*` wildcard marker.
type AllColumns struct {
	table *TableRef
}

// Star builds an unqualified `*`.
func Star() AllColumns { return AllColumns{} }

// TableStar builds a `table.*` qualified by t's name handle.
func TableStar(t *Table) AllColumns { return AllColumns{table: t.ref} }

func (a AllColumns) TableName() string {
	if a.table == nil {
		return ""
	}
	return a.table.Name()
}

// Accept makes AllColumns a leaf node of the query AST.
func (a AllColumns) Accept(v visitor.Visitor) error {
	return v.VisitAllColumns(a.TableName())
}
