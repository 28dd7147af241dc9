package value

import "fmt"

// TableSchema is the subset of *schema.Table a Record needs. It is declared
// here (rather than importing the schema package) to avoid a dependency
// cycle: schema builds on value for Default literals, value builds a Record
// bound to a schema shape.
type TableSchema interface {
	FieldCount() int
	FieldName(i int) string
	FieldIndex(name string) (int, bool)
}

// KindSchema is an optional capability a TableSchema may implement so Record
// writes can type-check against the field's recorded native Kind, per §4.2
// ("field writes type-check against the field's recorded native type").
// schema.Table implements it; the fakeSchema test doubles in this package's
// tests do not, and writes against those simply skip the check.
type KindSchema interface {
	FieldKind(i int) Kind
}

func checkKind(schema TableSchema, i int, v FieldValue) error {
	ks, ok := schema.(KindSchema)
	if !ok || v.IsNull() {
		return nil
	}
	if want := ks.FieldKind(i); want != v.Kind() {
		return fmt.Errorf("value: type mismatch for field %q: field is %s, value is %s", schema.FieldName(i), want, v.Kind())
	}
	return nil
}

// Record is a row bound to a table schema: an ordered slice of fields
// aligned to the schema's field order, plus a name index for O(1) lookup.
type Record struct {
	schema TableSchema
	fields []FieldValue
}

// NewRecord returns a Record over schema with every cell set to Null.
func NewRecord(schema TableSchema) *Record {
	return &Record{
		schema: schema,
		fields: make([]FieldValue, schema.FieldCount()),
	}
}

// Len returns the number of fields, always equal to schema.FieldCount().
func (r *Record) Len() int { return len(r.fields) }

// At returns the field at the given schema-order index. It panics on an
// out-of-range index, matching the "trap in release" contract of §4.2.
func (r *Record) At(i int) FieldValue { return r.fields[i] }

// Set writes the field at index i, type-checking against the schema's
// recorded Kind when the schema supports it.
func (r *Record) Set(i int, v FieldValue) error {
	if err := checkKind(r.schema, i, v); err != nil {
		return err
	}
	r.fields[i] = v
	return nil
}

// Get looks up a field by name, failing with a descriptive error on miss.
func (r *Record) Get(name string) (FieldValue, error) {
	i, ok := r.schema.FieldIndex(name)
	if !ok {
		return FieldValue{}, fmt.Errorf("value: field not found: %q", name)
	}
	return r.fields[i], nil
}

// SetByName writes a field by name, failing with a descriptive error on miss
// or on a Kind mismatch against the schema's recorded native type.
func (r *Record) SetByName(name string, v FieldValue) error {
	i, ok := r.schema.FieldIndex(name)
	if !ok {
		return fmt.Errorf("value: field not found: %q", name)
	}
	if err := checkKind(r.schema, i, v); err != nil {
		return err
	}
	r.fields[i] = v
	return nil
}

// Each iterates fields in schema order.
func (r *Record) Each(fn func(name string, v FieldValue)) {
	for i, v := range r.fields {
		fn(r.schema.FieldName(i), v)
	}
}

// Values returns the fields in schema order. The returned slice aliases the
// Record's backing array; callers must not mutate it.
func (r *Record) Values() []FieldValue { return r.fields }
