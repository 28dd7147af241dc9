package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ConnStatus mirrors libpq's ConnStatusType, collapsed to the two states
// the executors actually branch on (§4.12 step 1's health check).
type ConnStatus int

const (
	StatusOK ConnStatus = iota
	StatusBad
)

// ResultStatus mirrors libpq's ExecStatusType (§6's native-client surface),
// trimmed to the values a query execution path can observe.
type ResultStatus int

const (
	StatusEmptyQuery ResultStatus = iota
	StatusCommandOK
	StatusTuplesOK
	StatusBadResponse
	StatusNonfatalError
	StatusFatalError
)

// NativeResult is the PGresult-equivalent surface §6 names: row/column
// counts, per-cell value/length/null/format/type accessors, and the
// diagnostic fields an error result carries. ResultBlock wraps one to
// provide the zero-copy FieldView/RowView reader layer of §4.10.
type NativeResult interface {
	Status() ResultStatus
	NTuples() int
	NFields() int
	FName(col int) string
	FNumber(name string) (int, bool)
	FFormat(col int) int16
	FType(col int) uint32
	GetValue(row, col int) []byte
	GetLength(row, col int) int
	GetIsNull(row, col int) bool
	// ErrorField returns one of the PG_DIAG_* diagnostic fields (see the
	// Diag* constants in errors.go), or "" if unset.
	ErrorField(code byte) string
	ErrorMessage() string
	// Clear releases the native result exactly once (§5's resource policy).
	Clear()
}

// NativeConn is the external collaborator §1/§6 names at its interface: a
// C-style PostgreSQL client connection. PgxConn adapts *pgconn.PgConn to
// it for the synchronous executor; the asynchronous executor additionally
// drives the hijacked frontend (hijacked_conn.go) through the same
// interface after PgConn.Hijack().
type NativeConn interface {
	Status() ConnStatus
	ErrorMessage() string
	Fd() int

	Exec(ctx context.Context, sql string) (NativeResult, error)
	ExecParams(ctx context.Context, sql string, pkt *Packet) (NativeResult, error)

	SendQuery(sql string) error
	SendQueryParams(sql string, pkt *Packet) error
	// Flush reports libpq's tri-state: 0 = done, 1 = more to write,
	// negative = error.
	Flush() (int, error)
	// ConsumeInput reports libpq's boolean: true = ok (caller re-checks
	// IsBusy), false = connection error.
	ConsumeInput() (bool, error)
	IsBusy() bool
	// GetResult returns the next pending result, or nil when none remain.
	GetResult() (NativeResult, error)
}

// PgxConn adapts *pgconn.PgConn — the same driver ariga-atlas reaches via
// database/sql and xaas-cloud-genai-toolbox depends on directly — to
// NativeConn for the synchronous executor (§4.12). Its Exec/ExecParams
// fully drain the wire exchange before returning, so the async-only parts
// of NativeConn (SendQuery*/Flush/ConsumeInput/IsBusy/GetResult) are unused
// on this path and implemented to fail loudly if ever called.
type PgxConn struct {
	conn *pgconn.PgConn
}

// NewPgxConn wraps an established *pgconn.PgConn for use by SyncExecutor.
func NewPgxConn(conn *pgconn.PgConn) *PgxConn { return &PgxConn{conn: conn} }

var _ NativeConn = (*PgxConn)(nil)

func (c *PgxConn) Status() ConnStatus {
	if c.conn == nil || c.conn.IsClosed() {
		return StatusBad
	}
	return StatusOK
}

// ErrorMessage reports a connection-level message when the connection is
// known bad. pgx surfaces failures as Go errors rather than libpq's
// side-channel PQerrorMessage, so this is only ever a fallback string for
// ErrorContext construction when no richer error is in hand.
func (c *PgxConn) ErrorMessage() string {
	if c.Status() == StatusBad {
		return "connection is closed"
	}
	return ""
}

// Fd returns the connection's raw socket descriptor. The async executor's
// reset check (§4.13 step 1) reads HijackedConn.Fd, not this method.
func (c *PgxConn) Fd() int {
	return connFd(c.conn.Conn())
}

// Exec runs sql with no parameters through pgconn's extended-query path,
// requesting binary result format, draining pgx's streaming ResultReader into one materialized NativeResult
// so the rest of this package can treat it like libpq's fully-buffered
// PGresult (§4.10).
func (c *PgxConn) Exec(ctx context.Context, sql string) (NativeResult, error) {
	rr := c.conn.ExecParams(ctx, sql, nil, nil, nil, []int16{1})
	return materializeResultReader(rr)
}

// ExecParams runs sql with the packet's already-encoded binary parameters,
// requesting binary results back, via pgconn's extended-query path — the
// parameterized counterpart of Exec.
func (c *PgxConn) ExecParams(ctx context.Context, sql string, pkt *Packet) (NativeResult, error) {
	rr := c.conn.ExecParams(ctx, sql, pkt.Values, pkt.OIDs, pkt.Formats, []int16{1})
	return materializeResultReader(rr)
}

func (c *PgxConn) SendQuery(sql string) error {
	return fmt.Errorf("postgres: SendQuery is not supported on a synchronous PgxConn")
}

func (c *PgxConn) SendQueryParams(sql string, pkt *Packet) error {
	return fmt.Errorf("postgres: SendQueryParams is not supported on a synchronous PgxConn")
}

func (c *PgxConn) Flush() (int, error) {
	return 0, fmt.Errorf("postgres: Flush is not supported on a synchronous PgxConn")
}

func (c *PgxConn) ConsumeInput() (bool, error) {
	return false, fmt.Errorf("postgres: ConsumeInput is not supported on a synchronous PgxConn")
}

func (c *PgxConn) IsBusy() bool { return false }

func (c *PgxConn) GetResult() (NativeResult, error) {
	return nil, fmt.Errorf("postgres: GetResult is not supported on a synchronous PgxConn")
}
