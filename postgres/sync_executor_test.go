package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqlforge/sqlforge/postgres"
)

// fakeConn is a minimal NativeConn stand-in for exercising SyncExecutor's
// health-check/invoke/status-dispatch sequence without a live connection.
type fakeConn struct {
	status postgres.ConnStatus
	result postgres.NativeResult
	err    error
}

func (c *fakeConn) Status() postgres.ConnStatus { return c.status }
func (c *fakeConn) ErrorMessage() string        { return "connection is closed" }
func (c *fakeConn) Fd() int                      { return 7 }

func (c *fakeConn) Exec(ctx context.Context, sql string) (postgres.NativeResult, error) {
	return c.result, c.err
}
func (c *fakeConn) ExecParams(ctx context.Context, sql string, pkt *postgres.Packet) (postgres.NativeResult, error) {
	return c.result, c.err
}
func (c *fakeConn) SendQuery(sql string) error                          { return nil }
func (c *fakeConn) SendQueryParams(sql string, pkt *postgres.Packet) error { return nil }
func (c *fakeConn) Flush() (int, error)                                 { return 0, nil }
func (c *fakeConn) ConsumeInput() (bool, error)                         { return true, nil }
func (c *fakeConn) IsBusy() bool                                        { return false }
func (c *fakeConn) GetResult() (postgres.NativeResult, error)           { return nil, nil }

func TestSyncExecutor_Execute_Success(t *testing.T) {
	conn := &fakeConn{status: postgres.StatusOK, result: &fakeResult{}}
	exec := postgres.NewSyncExecutor(conn, nil)
	block, err := exec.Execute(context.Background(), "DELETE FROM users")
	require.NoError(t, err)
	require.NotNil(t, block)
}

func TestSyncExecutor_Execute_ConnectionBad(t *testing.T) {
	conn := &fakeConn{status: postgres.StatusBad}
	exec := postgres.NewSyncExecutor(conn, nil)
	_, err := exec.Execute(context.Background(), "SELECT 1")
	require.Error(t, err)
	var ec *postgres.ErrorContext
	require.ErrorAs(t, err, &ec)
	require.Equal(t, postgres.CodeConnectionLost, ec.Code)
}

func TestSyncExecutor_Execute_ServerError(t *testing.T) {
	errRes := &fakeErrorResult{sqlstate: "23505", msg: "duplicate key value"}
	conn := &fakeConn{status: postgres.StatusOK, result: errRes}
	exec := postgres.NewSyncExecutor(conn, nil)
	_, err := exec.Execute(context.Background(), "INSERT INTO users ...")
	require.Error(t, err)
	var ec *postgres.ErrorContext
	require.ErrorAs(t, err, &ec)
	require.Equal(t, postgres.CodeUniqueViolation, ec.Code)
}

// fakeErrorResult is a NativeResult reporting StatusFatalError with a fixed
// SQLSTATE, for exercising the executor's error-dispatch path.
type fakeErrorResult struct {
	sqlstate string
	msg      string
	cleared  bool
}

func (r *fakeErrorResult) Status() postgres.ResultStatus { return postgres.StatusFatalError }
func (r *fakeErrorResult) NTuples() int                  { return 0 }
func (r *fakeErrorResult) NFields() int                  { return 0 }
func (r *fakeErrorResult) FName(int) string               { return "" }
func (r *fakeErrorResult) FNumber(string) (int, bool)     { return 0, false }
func (r *fakeErrorResult) FFormat(int) int16              { return 0 }
func (r *fakeErrorResult) FType(int) uint32                { return 0 }
func (r *fakeErrorResult) GetValue(int, int) []byte        { return nil }
func (r *fakeErrorResult) GetLength(int, int) int          { return 0 }
func (r *fakeErrorResult) GetIsNull(int, int) bool         { return true }
func (r *fakeErrorResult) ErrorField(code byte) string {
	switch code {
	case postgres.DiagSQLSTATE:
		return r.sqlstate
	case postgres.DiagMessagePrimary:
		return r.msg
	default:
		return ""
	}
}
func (r *fakeErrorResult) ErrorMessage() string { return r.msg }
func (r *fakeErrorResult) Clear()               { r.cleared = true }
