package postgres

import (
	"context"
	"fmt"
	"log"

	"github.com/sqlforge/sqlforge/internal/reactor"
)

// AsyncExecutor drives a hijacked, non-blocking native connection through
// the cooperative state machine of §4.13: validate, send, flush loop,
// consume loop, collect. It must not be used from two goroutines
// concurrently (§5's "single-threaded cooperative" contract) and refuses
// to start a second query until the previous one's consume+collect has
// finished, per the ordering invariant in §4.13/§5.
type AsyncExecutor struct {
	conn     *HijackedConn
	reactor  *reactor.Reactor
	expectFd int
	busy     bool
	logger   *log.Logger
}

// NewAsyncExecutor takes ownership of a just-hijacked conn. The socket
// descriptor conn reports at construction time is pinned so validate can
// detect a reset out from under the executor (§4.13 step 1).
func NewAsyncExecutor(conn *HijackedConn, r *reactor.Reactor, logger *log.Logger) *AsyncExecutor {
	return &AsyncExecutor{conn: conn, reactor: r, expectFd: conn.Fd(), logger: logger}
}

// Execute sends sql with no parameters and awaits its single result.
func (e *AsyncExecutor) Execute(ctx context.Context, sql string) (*ResultBlock, error) {
	return e.run(ctx, func() error { return e.conn.SendQuery(sql) })
}

// ExecuteParams sends sql against the already-encoded parameter packet and
// awaits its single result.
func (e *AsyncExecutor) ExecuteParams(ctx context.Context, sql string, pkt *Packet) (*ResultBlock, error) {
	return e.run(ctx, func() error { return e.conn.SendQueryParams(sql, pkt) })
}

// run implements §4.13's six steps.
func (e *AsyncExecutor) run(ctx context.Context, send func() error) (*ResultBlock, error) {
	if e.busy {
		return nil, &ErrorContext{Code: CodeInvalidState, Message: "previous query has not finished draining"}
	}
	if err := e.validate(); err != nil {
		return nil, err
	}

	// 2. Send.
	if err := send(); err != nil {
		return nil, NewErrorContext(CodeConnectionError, fmt.Sprintf("send failed: %v", err))
	}
	e.busy = true
	defer func() { e.busy = false }()

	// 3. Flush loop: non-blocking flush; while more to write, await
	// writable, retry.
	for {
		n, err := e.conn.Flush()
		if err != nil {
			return nil, NewErrorContext(CodeConnectionError, fmt.Sprintf("flush failed: %v", err))
		}
		if n == 0 {
			break
		}
		if err := e.reactor.AwaitWritable(ctx, e.conn.Fd()); err != nil {
			return nil, asyncCancelError(err)
		}
	}

	// 4. Consume loop: await readable, consume-input, repeat while busy.
	for {
		if err := e.reactor.AwaitReadable(ctx, e.conn.Fd()); err != nil {
			return nil, asyncCancelError(err)
		}
		ok, err := e.conn.ConsumeInput()
		if err != nil || !ok {
			e.logf("postgres: async consume failed: %v", err)
			return nil, NewErrorContext(CodeConnectionLost, fmt.Sprintf("consume failed: %v", err))
		}
		if !e.conn.IsBusy() {
			break
		}
	}

	// 5. Collect: one expected result, then drain any residual ones.
	first, err := e.conn.GetResult()
	if err != nil {
		return nil, NewErrorContext(CodeConnectionError, fmt.Sprintf("get_result failed: %v", err))
	}
	for {
		extra, err := e.conn.GetResult()
		if err != nil || extra == nil {
			break
		}
		extra.Clear()
	}

	if first == nil {
		return nil, NewErrorContext(CodeInvalidArgument, "No result returned.")
	}
	switch first.Status() {
	case StatusCommandOK, StatusTuplesOK:
		return NewResultBlock(first), nil
	default:
		ec := errorFromResult(first)
		first.Clear()
		return nil, ec
	}
}

// validate re-checks the socket fd against the one observed at
// construction time, catching a connection reset under the executor
// (§4.13 step 1).
func (e *AsyncExecutor) validate() error {
	if e.conn.Status() == StatusBad {
		return NewErrorContext(CodeInvalidState, "socket is not open")
	}
	if got := e.conn.Fd(); got != e.expectFd {
		return &ErrorContext{
			Code:    CodeInvalidState,
			Message: errSocketReset.Error(),
			Detail:  fmt.Sprintf("expected fd %d, observed %d", e.expectFd, got),
		}
	}
	return nil
}

// asyncCancelError surfaces a reactor cancellation as the connection-state
// error §4.13's "Cancellation" clause describes: the executor remains
// usable afterward, but the caller sees InvalidState on this call and must
// let the next call's collect-and-drain run before issuing another query.
func asyncCancelError(err error) error {
	return &ErrorContext{Code: CodeInvalidState, Message: "operation cancelled", Detail: err.Error()}
}

// logf writes a diagnostic trace line when a logger was configured
// (SPEC_FULL §1 — optional, never a hard dependency).
func (e *AsyncExecutor) logf(format string, args ...any) {
	if e.logger != nil {
		e.logger.Printf(format, args...)
	}
}
