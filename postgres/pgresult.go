package postgres

import (
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"
)

// nativeResult is the concrete NativeResult this package's executors
// produce: a fully materialized row/column buffer, the Go analogue of a
// libpq PGresult once PQgetResult has finished streaming it. pgx's
// ResultReader is itself a streaming cursor (its Values() slice is only
// valid until the next NextRow call), so materializeResultReader copies
// every cell once, up front, giving the rest of this package something it
// can treat like an owned, randomly-indexable buffer per §4.10.
type nativeResult struct {
	status ResultStatus
	fields []pgconn.FieldDescription
	rows   [][][]byte // rows[r][c] is the raw cell, nil for SQL NULL

	errFields map[byte]string
	errMsg    string
}

var _ NativeResult = (*nativeResult)(nil)

func (r *nativeResult) Status() ResultStatus { return r.status }
func (r *nativeResult) NTuples() int         { return len(r.rows) }
func (r *nativeResult) NFields() int         { return len(r.fields) }

func (r *nativeResult) FName(col int) string { return r.fields[col].Name }

func (r *nativeResult) FNumber(name string) (int, bool) {
	for i, f := range r.fields {
		if f.Name == name {
			return i, true
		}
	}
	return 0, false
}

func (r *nativeResult) FFormat(col int) int16 { return r.fields[col].Format }
func (r *nativeResult) FType(col int) uint32  { return r.fields[col].DataTypeOID }

func (r *nativeResult) GetValue(row, col int) []byte { return r.rows[row][col] }
func (r *nativeResult) GetLength(row, col int) int   { return len(r.rows[row][col]) }
func (r *nativeResult) GetIsNull(row, col int) bool  { return r.rows[row][col] == nil }

func (r *nativeResult) ErrorField(code byte) string { return r.errFields[code] }
func (r *nativeResult) ErrorMessage() string        { return r.errMsg }

// Clear is a no-op: the Go garbage collector owns this memory, unlike
// PQclear's explicit PGresult release. Kept so ResultBlock.clear has a
// single call site regardless of backing representation.
func (r *nativeResult) Clear() {}

// materializeResultReader drains rr into a nativeResult, classifying the
// outcome exactly as §4.12 step 4 does: COMMAND_OK/TUPLES_OK on success,
// a fatal-error result (diagnostics attached) otherwise.
func materializeResultReader(rr *pgconn.ResultReader) (NativeResult, error) {
	var fields []pgconn.FieldDescription
	var rows [][][]byte
	for rr.NextRow() {
		if fields == nil {
			fields = rr.FieldDescriptions()
		}
		vals := rr.Values()
		row := make([][]byte, len(vals))
		for i, v := range vals {
			if v != nil {
				row[i] = append([]byte(nil), v...)
			}
		}
		rows = append(rows, row)
	}
	if fields == nil {
		fields = rr.FieldDescriptions()
	}
	tag, err := rr.Close()
	if err != nil {
		return resultFromError(err), nil
	}
	status := StatusCommandOK
	if len(fields) > 0 {
		status = StatusTuplesOK
	}
	_ = tag // CommandTag text is not part of this spec's result surface.
	return &nativeResult{status: status, fields: fields, rows: rows}, nil
}

// resultFromError builds a failed nativeResult from a pgconn error,
// extracting *pgconn.PgError's diagnostic fields the same way
// resultErrorField(PG_DIAG_*) would on a native PGresult, so
// errorFromResult (errors.go) can treat every failure uniformly regardless
// of whether it came from the sync or hijacked-async path.
func resultFromError(err error) *nativeResult {
	r := &nativeResult{status: StatusFatalError, errMsg: err.Error(), errFields: map[byte]string{}}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		r.errFields[DiagSQLSTATE] = pgErr.Code
		r.errFields[DiagMessagePrimary] = pgErr.Message
		r.errFields[DiagMessageDetail] = pgErr.Detail
		r.errFields[DiagMessageHint] = pgErr.Hint
		r.errFields[DiagContext] = pgErr.Where
		if pgErr.Position != 0 {
			r.errFields[DiagStatementPosition] = strconv.Itoa(int(pgErr.Position))
		}
		r.errMsg = pgErr.Message
	}
	return r
}
