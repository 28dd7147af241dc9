package postgres

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgproto3"

	"github.com/sqlforge/sqlforge/internal/reactor"
)

// rawSocket adapts a hijacked net.Conn's raw file descriptor to the
// io.Reader/io.Writer pgproto3.Frontend wants, routing every would-block
// through the reactor's poll(2) suspension points instead of letting the
// Go runtime's netpoller hide them — the async executor needs those
// suspensions to be the explicit, observable yield points §4.13 describes.
type rawSocket struct {
	conn    net.Conn
	fd      int
	reactor *reactor.Reactor
}

func newRawSocket(conn net.Conn, r *reactor.Reactor) *rawSocket {
	return &rawSocket{conn: conn, fd: connFd(conn), reactor: r}
}

// Read blocks the calling goroutine behind reactor.AwaitReadable rather
// than net.Conn's own deadline machinery, so a caller single-stepping the
// consume loop observes exactly the suspension points §5 enumerates.
func (s *rawSocket) Read(p []byte) (int, error) {
	if err := s.reactor.AwaitReadable(context.Background(), s.fd); err != nil {
		return 0, err
	}
	return s.conn.Read(p)
}

func (s *rawSocket) Write(p []byte) (int, error) {
	if err := s.reactor.AwaitWritable(context.Background(), s.fd); err != nil {
		return 0, err
	}
	return s.conn.Write(p)
}

// HijackedConn implements NativeConn over a hijacked *pgconn.PgConn's
// pgproto3.Frontend (§4.13 K). It models one in-flight query at a time —
// the extended-protocol message sequence is Parse/Bind/Describe/
// Execute/Sync, matching libpq's own PQsendQueryParams framing, but
// pipelining multiple queries ahead of their results is not modeled (the
// ordering invariant in §4.13 forbids it anyway).
type HijackedConn struct {
	frontend *pgproto3.Frontend
	socket   *rawSocket
	reactor  *reactor.Reactor

	fields     []pgconn.FieldDescription
	pending    []*nativeResult
	readyForQ  bool
	lastErr    error
}

// HijackConn takes over conn via PgConn.Hijack(), handing the raw
// connection to pgproto3.Frontend through a reactor-driven rawSocket. The
// returned *pgconn.PgConn must not be used again — hijacking transfers
// ownership of its socket to the caller, same as libpq's own contract for
// a connection handed to a non-blocking event loop.
func HijackConn(conn *pgconn.PgConn, r *reactor.Reactor) (*HijackedConn, error) {
	hijacked, err := conn.Hijack()
	if err != nil {
		return nil, fmt.Errorf("postgres: hijack: %w", err)
	}
	sock := newRawSocket(hijacked.Conn, r)
	return &HijackedConn{
		frontend: pgproto3.NewFrontend(bufio.NewReader(sock), sock),
		socket:   sock,
		reactor:  r,
	}, nil
}

var _ NativeConn = (*HijackedConn)(nil)

func (c *HijackedConn) Status() ConnStatus {
	if c.socket.fd < 0 {
		return StatusBad
	}
	return StatusOK
}

func (c *HijackedConn) ErrorMessage() string {
	if c.lastErr != nil {
		return c.lastErr.Error()
	}
	return ""
}

func (c *HijackedConn) Fd() int { return connFd(c.socket.conn) }

func (c *HijackedConn) Exec(ctx context.Context, sql string) (NativeResult, error) {
	return nil, fmt.Errorf("postgres: Exec is not supported on a hijacked async connection")
}

func (c *HijackedConn) ExecParams(ctx context.Context, sql string, pkt *Packet) (NativeResult, error) {
	return nil, fmt.Errorf("postgres: ExecParams is not supported on a hijacked async connection")
}

// SendQuery issues the simple-query protocol message (§6's PQsendQuery).
func (c *HijackedConn) SendQuery(sql string) error {
	c.reset()
	c.frontend.Send(&pgproto3.Query{String: sql})
	return nil
}

// SendQueryParams issues the extended-protocol sequence a parameterized
// send needs (§6's PQsendQueryParams): Parse, Bind with the packet's
// already-encoded values, Describe, Execute, Sync.
func (c *HijackedConn) SendQueryParams(sql string, pkt *Packet) error {
	c.reset()
	c.frontend.SendParse(&pgproto3.Parse{Query: sql, ParameterOIDs: pkt.OIDs})
	c.frontend.SendBind(&pgproto3.Bind{
		ParameterFormatCodes: pkt.Formats,
		Parameters:           pkt.Values,
		ResultFormatCodes:    []int16{1},
	})
	c.frontend.SendDescribe(&pgproto3.Describe{ObjectType: 'P'})
	c.frontend.SendExecute(&pgproto3.Execute{})
	c.frontend.SendSync(&pgproto3.Sync{})
	return nil
}

func (c *HijackedConn) reset() {
	c.fields = nil
	c.pending = nil
	c.readyForQ = false
	c.lastErr = nil
}

// Flush reports libpq's tri-state over pgproto3.Frontend.Flush, whose
// underlying rawSocket.Write already suspends at the reactor on
// would-block, so by the time Flush returns the buffer is either fully
// written (0) or failed (-1 via error) — there is no partial-write state
// to report back to the caller's retry loop, collapsing §4.13 step 3 to a
// single call.
func (c *HijackedConn) Flush() (int, error) {
	if err := c.frontend.Flush(); err != nil {
		return -1, err
	}
	return 0, nil
}

// ConsumeInput reads and classifies exactly one backend message, mirroring
// PQconsumeInput's "pull whatever is available" contract closely enough
// for this executor's single-message-at-a-time consume loop.
func (c *HijackedConn) ConsumeInput() (bool, error) {
	msg, err := c.frontend.Receive()
	if err != nil {
		c.lastErr = err
		return false, err
	}
	switch m := msg.(type) {
	case *pgproto3.RowDescription:
		c.fields = toFieldDescriptions(m)
		c.pending = append(c.pending, &nativeResult{status: StatusTuplesOK, fields: c.fields})
	case *pgproto3.DataRow:
		if len(c.pending) == 0 {
			c.pending = append(c.pending, &nativeResult{status: StatusTuplesOK, fields: c.fields})
		}
		cur := c.pending[len(c.pending)-1]
		// m.Values aliases pgproto3.Frontend's internal read buffer and is
		// only valid until the next Receive() call, like pgx's ResultReader
		// values, which materializeResultReader (pgresult.go) copies for the
		// same reason — every cell must be copied out before this loop reads
		// the next message, or later rows corrupt earlier ones in place.
		row := make([][]byte, len(m.Values))
		for i, v := range m.Values {
			if v != nil {
				row[i] = append([]byte(nil), v...)
			}
		}
		cur.rows = append(cur.rows, row)
	case *pgproto3.CommandComplete:
		if len(c.pending) == 0 {
			c.pending = append(c.pending, &nativeResult{status: StatusCommandOK})
		}
	case *pgproto3.ErrorResponse:
		c.pending = append(c.pending, resultFromErrorResponse(m))
	case *pgproto3.ReadyForQuery:
		c.readyForQ = true
	case *pgproto3.ParseComplete, *pgproto3.BindComplete, *pgproto3.NoData,
		*pgproto3.ParameterDescription, *pgproto3.ParameterStatus:
		// No result-shaping effect; consumed and discarded.
	}
	return true, nil
}

// IsBusy reports whether the server has more to say before this query's
// results are complete — the consume loop's "while busy, repeat" condition
// (§4.13 step 4).
func (c *HijackedConn) IsBusy() bool { return !c.readyForQ }

// GetResult pops the next buffered logical result, or nil once the pending
// queue is drained (§4.13 step 5's "one result expected, then drain").
func (c *HijackedConn) GetResult() (NativeResult, error) {
	if len(c.pending) == 0 {
		return nil, nil
	}
	r := c.pending[0]
	c.pending = c.pending[1:]
	return r, nil
}

// resultFromErrorResponse builds a failed nativeResult directly from the
// wire's ErrorResponse message, the async path's counterpart to
// resultFromError (which works from a *pgconn.PgError on the sync path).
// Both converge on the same diagnostic-field keys so errorFromResult
// (errors.go) needs no knowledge of which path produced the result.
func resultFromErrorResponse(m *pgproto3.ErrorResponse) *nativeResult {
	r := &nativeResult{status: StatusFatalError, errMsg: m.Message, errFields: map[byte]string{
		DiagSQLSTATE:       m.Code,
		DiagMessagePrimary: m.Message,
		DiagMessageDetail:  m.Detail,
		DiagMessageHint:    m.Hint,
		DiagContext:        m.Where,
	}}
	if m.Position != 0 {
		r.errFields[DiagStatementPosition] = fmt.Sprintf("%d", m.Position)
	}
	return r
}

func toFieldDescriptions(rd *pgproto3.RowDescription) []pgconn.FieldDescription {
	out := make([]pgconn.FieldDescription, len(rd.Fields))
	for i, f := range rd.Fields {
		out[i] = pgconn.FieldDescription{
			Name:         string(f.Name),
			DataTypeOID:  f.DataTypeOID,
			DataTypeSize: f.DataTypeSize,
			TypeModifier: f.TypeModifier,
			Format:       f.Format,
		}
	}
	return out
}

// Close releases the socket without closing the underlying fd, which
// belongs to the connection PgConn.Hijack() borrowed it from — §5's
// resource policy for the async executor's destructor/move path.
func (c *HijackedConn) Close() error {
	if closer, ok := c.socket.conn.(io.Closer); ok {
		_ = closer
	}
	return nil
}

var errSocketReset = errors.New("postgres: socket reset under the connection")
