package postgres

import (
	"context"
	"log"
)

// SyncExecutor wraps an established native connection and blocks the
// calling goroutine inside the driver call, per §4.12/§5. It is
// non-reentrant per instance; distinct instances wrapping distinct
// connections may run on different goroutines concurrently.
type SyncExecutor struct {
	conn   NativeConn
	logger *log.Logger
}

// NewSyncExecutor borrows conn; logger is optional diagnostic tracing
// (SPEC_FULL §1's ambient-stack note — never a hard dependency).
func NewSyncExecutor(conn NativeConn, logger *log.Logger) *SyncExecutor {
	return &SyncExecutor{conn: conn, logger: logger}
}

// Execute runs sql with no parameters.
func (e *SyncExecutor) Execute(ctx context.Context, sql string) (*ResultBlock, error) {
	return e.run(func() (NativeResult, error) { return e.conn.Exec(ctx, sql) })
}

// ExecuteParams runs sql against the already-encoded parameter packet.
func (e *SyncExecutor) ExecuteParams(ctx context.Context, sql string, pkt *Packet) (*ResultBlock, error) {
	return e.run(func() (NativeResult, error) { return e.conn.ExecParams(ctx, sql, pkt) })
}

// run implements §4.12's four steps: health check, invoke, null-result
// check, and result-status dispatch.
func (e *SyncExecutor) run(call func() (NativeResult, error)) (*ResultBlock, error) {
	if e.conn.Status() == StatusBad {
		return nil, connectionError(e.conn)
	}
	res, err := call()
	if err != nil {
		e.logf("postgres: sync exec failed: %v", err)
		return nil, connectionError(e.conn)
	}
	if res == nil {
		return nil, connectionError(e.conn)
	}
	switch res.Status() {
	case StatusCommandOK, StatusTuplesOK:
		return NewResultBlock(res), nil
	default:
		ec := errorFromResult(res)
		res.Clear()
		return nil, ec
	}
}

func (e *SyncExecutor) logf(format string, args ...any) {
	if e.logger != nil {
		e.logger.Printf(format, args...)
	}
}
