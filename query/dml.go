package query

import (
	"github.com/sqlforge/sqlforge/schema"
	"github.com/sqlforge/sqlforge/value"
	"github.com/sqlforge/sqlforge/visitor"
)

// Insert accumulates a target table, a column list, and value rows. Values
// appends rows; FromRecord/Batch ingest from value.Record per spec §4.3.
type Insert struct {
	table   *schema.Table
	columns []string
	rows    [][]value.FieldValue
}

func InsertInto(t *schema.Table) Insert { return Insert{table: t} }

func (i Insert) Into(columns ...string) Insert {
	i.columns = append([]string(nil), columns...)
	return i
}

// Values appends one row. Repeated calls accumulate rows, per spec §4.3.
func (i Insert) Values(vals ...value.FieldValue) Insert {
	rows := make([][]value.FieldValue, len(i.rows)+1)
	copy(rows, i.rows)
	rows[len(i.rows)] = append([]value.FieldValue(nil), vals...)
	i.rows = rows
	return i
}

// FromRecord appends one row taken from r, adopting r's schema field order
// as the column list if none was set yet via Into.
func (i Insert) FromRecord(r *value.Record) Insert {
	var cols []string
	var vals []value.FieldValue
	r.Each(func(name string, v value.FieldValue) {
		cols = append(cols, name)
		vals = append(vals, v)
	})
	if len(i.columns) == 0 {
		i.columns = cols
	}
	return i.Values(vals...)
}

// Batch appends one row per record, in order.
func (i Insert) Batch(records ...*value.Record) Insert {
	for _, r := range records {
		i = i.FromRecord(r)
	}
	return i
}

func (i Insert) Accept(v visitor.Visitor) error {
	if err := v.EnterInsert(); err != nil {
		return err
	}
	if err := v.EmitTableRef(i.table.Name()); err != nil {
		return err
	}
	if err := v.EmitInsertColumns(i.columns); err != nil {
		return err
	}
	if err := v.EmitInsertValues(i.rows); err != nil {
		return err
	}
	return v.LeaveInsert()
}

type assignment struct {
	column string
	value  value.FieldValue
}

// Update accumulates a target table and a set of column assignments. Where
// closes the chain with a condition, per spec §4.4's "UPDATE/DELETE permits
// WHERE, terminal after."
type Update struct {
	table   *schema.Table
	assigns []assignment
}

func UpdateTable(t *schema.Table) Update { return Update{table: t} }

func (u Update) Set(column string, v value.FieldValue) Update {
	assigns := make([]assignment, len(u.assigns)+1)
	copy(assigns, u.assigns)
	assigns[len(u.assigns)] = assignment{column: column, value: v}
	u.assigns = assigns
	return u
}

func (u Update) Where(cond Expr) UpdateWhere { return UpdateWhere{update: u, cond: cond} }

func (u Update) Accept(v visitor.Visitor) error {
	if err := v.EnterUpdate(); err != nil {
		return err
	}
	if err := v.EmitTableRef(u.table.Name()); err != nil {
		return err
	}
	cols := make([]string, len(u.assigns))
	vals := make([]value.FieldValue, len(u.assigns))
	for i, a := range u.assigns {
		cols[i] = a.column
		vals[i] = a.value
	}
	if err := v.EmitUpdateSet(cols, vals); err != nil {
		return err
	}
	return v.LeaveUpdate()
}

// UpdateWhere is UPDATE ... WHERE — terminal.
type UpdateWhere struct {
	update Update
	cond   Expr
}

func (w UpdateWhere) Accept(v visitor.Visitor) error {
	if err := w.update.Accept(v); err != nil {
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

// Delete targets a table for deletion. Where closes the chain, terminal.
type Delete struct {
	table *schema.Table
}

func DeleteFrom(t *schema.Table) Delete { return Delete{table: t} }

func (d Delete) Where(cond Expr) DeleteWhere { return DeleteWhere{del: d, cond: cond} }

func (d Delete) Accept(v visitor.Visitor) error {
	if err := v.EnterDelete(); err != nil {
		return err
	}
	if err := v.EmitTableRef(d.table.Name()); err != nil {
		return err
	}
	return v.LeaveDelete()
}

// DeleteWhere is DELETE FROM ... WHERE — terminal.
type DeleteWhere struct {
	del  Delete
	cond Expr
}

func (w DeleteWhere) Accept(v visitor.Visitor) error {
	if err := w.del.Accept(v); err != nil {
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
