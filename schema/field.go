// Package schema models table/field schemas and the typed column handles
// built from them, grounded on ariga.io/atlas's schema.Table/Column DSL
// (sql/schema/schema.go, sql/schema/dsl.go) adapted from a DDL-description
// model to the query-builder's typed-handle model.
package schema

import (
	"fmt"

	"github.com/sqlforge/sqlforge/value"
)

// ForeignKeyRef names the table/column a field references.
type ForeignKeyRef struct {
	Table  string
	Column string
}

// Field is a named column in a Table schema, carrying a database-type
// string, a runtime type tag (value.Kind) and the flags §3 requires.
type Field struct {
	name     string
	dbType   string
	kind     value.Kind
	nullable bool
	primary  bool
	unique   bool
	indexed  bool
	fk       *ForeignKeyRef
	def      *value.FieldValue
	maxLen   int
}

// NewField declares a field. Flags default to false/unset; use Table's
// chain methods to mutate them after declaration.
func NewField(name, dbType string, kind value.Kind) *Field {
	return &Field{name: name, dbType: dbType, kind: kind}
}

func (f *Field) Name() string        { return f.name }
func (f *Field) DBType() string      { return f.dbType }
func (f *Field) Kind() value.Kind    { return f.kind }
func (f *Field) Nullable() bool      { return f.nullable }
func (f *Field) PrimaryKey() bool    { return f.primary }
func (f *Field) Unique() bool        { return f.unique }
func (f *Field) Indexed() bool       { return f.indexed }
func (f *Field) MaxLen() int         { return f.maxLen }

func (f *Field) ForeignKey() (ForeignKeyRef, bool) {
	if f.fk == nil {
		return ForeignKeyRef{}, false
	}
	return *f.fk, true
}

func (f *Field) Default() (value.FieldValue, bool) {
	if f.def == nil {
		return value.FieldValue{}, false
	}
	return *f.def, true
}

// clone returns a deep copy so that Table.Clone never shares *Field pointers
// between the original and the copy (§3 invariant).
func (f *Field) clone() *Field {
	cp := *f
	if f.fk != nil {
		fk := *f.fk
		cp.fk = &fk
	}
	if f.def != nil {
		d := *f.def
		cp.def = &d
	}
	return &cp
}

// typeMismatchError is returned by Col when the requested native
// type does not match the field's recorded value.Kind.
func typeMismatchError(field string, want, got value.Kind) error {
	return fmt.Errorf("schema: type mismatch for column %q: requested %s, field is %s", field, want, got)
}
