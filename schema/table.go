package schema

import "github.com/sqlforge/sqlforge/value"

// TableRef is the reference-counted table-name handle described in spec.md
// §3/§9 ("Shared table-name string"): every column built from the same
// From/subquery shares one *TableRef, so renaming the source (e.g. via an
// alias) is visible to every column that was built from it without copying.
type TableRef struct {
	name string
}

// NewTableRef returns a fresh, independently owned table-name handle.
func NewTableRef(name string) *TableRef { return &TableRef{name: name} }

func (r *TableRef) Name() string { return r.name }

// Rename mutates the shared handle in place; every Column holding this
// *TableRef observes the new name on its next Name() call.
func (r *TableRef) Rename(name string) { r.name = name }

// Table is a named, ordered collection of Field schemas. Field order is
// stable and the name→index map always agrees with the slice (§3 invariant).
type Table struct {
	ref     *TableRef
	fields  []*Field
	byName  map[string]int
}

// NewTable declares an empty table schema.
func NewTable(name string) *Table {
	return &Table{
		ref:    NewTableRef(name),
		byName: make(map[string]int),
	}
}

func (t *Table) Name() string    { return t.ref.Name() }
func (t *Table) Ref() *TableRef  { return t.ref }

// AddField appends a field declaration. Declare-before-modify is the
// caller's contract: chain methods below silently no-op on an unknown name.
func (t *Table) AddField(name, dbType string, kind value.Kind) *Table {
	t.fields = append(t.fields, NewField(name, dbType, kind))
	t.byName[name] = len(t.fields) - 1
	return t
}

func (t *Table) find(name string) *Field {
	i, ok := t.byName[name]
	if !ok {
		return nil
	}
	return t.fields[i]
}

// PrimaryKey marks name as part of the primary key. No-op if name is undeclared.
func (t *Table) PrimaryKey(name string) *Table {
	if f := t.find(name); f != nil {
		f.primary = true
	}
	return t
}

// Nullable sets the nullable flag on name. No-op if name is undeclared.
func (t *Table) Nullable(name string, v bool) *Table {
	if f := t.find(name); f != nil {
		f.nullable = v
	}
	return t
}

// ForeignKey records a reference from name to refTable.refColumn.
func (t *Table) ForeignKey(name, refTable, refColumn string) *Table {
	if f := t.find(name); f != nil {
		f.fk = &ForeignKeyRef{Table: refTable, Column: refColumn}
	}
	return t
}

// Unique marks name as unique.
func (t *Table) Unique(name string) *Table {
	if f := t.find(name); f != nil {
		f.unique = true
	}
	return t
}

// Indexed marks name as indexed.
func (t *Table) Indexed(name string) *Table {
	if f := t.find(name); f != nil {
		f.indexed = true
	}
	return t
}

// Default sets a default value for name.
func (t *Table) Default(name string, v value.FieldValue) *Table {
	if f := t.find(name); f != nil {
		f.def = &v
	}
	return t
}

// MaxLen sets a max length for name.
func (t *Table) MaxLen(name string, n int) *Table {
	if f := t.find(name); f != nil {
		f.maxLen = n
	}
	return t
}

// FieldCount implements value.TableSchema.
func (t *Table) FieldCount() int { return len(t.fields) }

// FieldName implements value.TableSchema.
func (t *Table) FieldName(i int) string { return t.fields[i].name }

// FieldIndex implements value.TableSchema.
func (t *Table) FieldIndex(name string) (int, bool) {
	i, ok := t.byName[name]
	return i, ok
}

// FieldKind implements value.KindSchema, letting value.Record type-check
// writes against each field's recorded native type (§4.2).
func (t *Table) FieldKind(i int) value.Kind { return t.fields[i].kind }

// Field returns the field declaration at schema-order index i.
func (t *Table) Field(i int) *Field { return t.fields[i] }

// FieldByName returns the field declaration named name, or nil.
func (t *Table) FieldByName(name string) *Field { return t.find(name) }

// Fields returns the fields in schema order. The slice aliases the Table's
// backing array; callers must not mutate it.
func (t *Table) Fields() []*Field { return t.fields }

// Clone returns a deep copy: a new Table, a new TableRef, and freshly
// allocated Field values, so callers may compose variants without aliasing.
func (t *Table) Clone() *Table {
	cp := &Table{
		ref:    NewTableRef(t.ref.name),
		byName: make(map[string]int, len(t.byName)),
	}
	cp.fields = make([]*Field, len(t.fields))
	for i, f := range t.fields {
		cp.fields[i] = f.clone()
	}
	for k, v := range t.byName {
		cp.byName[k] = v
	}
	return cp
}
