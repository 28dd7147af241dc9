// Package sqlforge is the thin root-level facade tying schema, query,
// compiler, dialect, and postgres together (§0): Compile walks a query AST
// into SQL text plus an opaque parameter packet, and Open/Run carry that
// result through an actual PostgreSQL connection.
package sqlforge

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sqlforge/sqlforge/compiler"
	"github.com/sqlforge/sqlforge/dialect"
	"github.com/sqlforge/sqlforge/internal/reactor"
	"github.com/sqlforge/sqlforge/postgres"
	"github.com/sqlforge/sqlforge/query"
)

// Compile walks q against the PostgreSQL dialect in parameterized mode and
// returns the finalized SQL text plus its opaque parameter packet (§4.6,
// §4.8). This is the entry point most callers use: it is Compile plus the
// one dialect this module ships.
func Compile(q query.Query) (compiler.CompiledQuery, error) {
	return compiler.Compile(q, dialect.Postgres{}, compiler.Parameterized)
}

// Explain walks q in Inline mode, formatting every literal directly into
// the SQL text instead of binding it as a parameter — for logging and
// diagnostics, never for execution (§4.6's Inline mode note).
func Explain(q query.Query) (string, error) {
	cq, err := compiler.Compile(q, dialect.Postgres{}, compiler.Inline)
	if err != nil {
		return "", err
	}
	return cq.SQL(), nil
}

// Conn is an established PostgreSQL connection bound to one executor. It
// wraps the native-connection split of §4.12/§4.13: a connection opened via
// Open runs queries synchronously (SyncExecutor); a connection opened via
// OpenAsync runs them through the hijacked, reactor-driven frontend
// (AsyncExecutor).
type Conn struct {
	sync  *postgres.SyncExecutor
	async *postgres.AsyncExecutor
}

// Open connects to connString via pgconn and binds a synchronous executor
// (§4.12) — the calling goroutine blocks inside each query.
func Open(ctx context.Context, connString string) (*Conn, error) {
	pc, err := pgconn.Connect(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("sqlforge: connect: %w", err)
	}
	return &Conn{sync: postgres.NewSyncExecutor(postgres.NewPgxConn(pc), nil)}, nil
}

// OpenAsync connects to connString, hijacks the raw connection, and binds
// an asynchronous executor (§4.13) driven by a shared reactor — queries
// suspend at explicit poll(2)-backed await points instead of blocking the
// goroutine.
func OpenAsync(ctx context.Context, connString string) (*Conn, error) {
	pc, err := pgconn.Connect(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("sqlforge: connect: %w", err)
	}
	r := reactor.New()
	hc, err := postgres.HijackConn(pc, r)
	if err != nil {
		return nil, err
	}
	return &Conn{async: postgres.NewAsyncExecutor(hc, r, nil)}, nil
}

// Run compiles q and executes it over c, binding parameters through
// whichever executor c was opened with.
func (c *Conn) Run(ctx context.Context, q query.Query) (*postgres.ResultBlock, error) {
	cq, err := Compile(q)
	if err != nil {
		return nil, err
	}
	pkt, ok := cq.Packet(postgres.PacketTag)
	if !ok {
		return c.exec(ctx, cq.SQL())
	}
	return c.execParams(ctx, cq.SQL(), pkt.(*postgres.Packet))
}

func (c *Conn) exec(ctx context.Context, sql string) (*postgres.ResultBlock, error) {
	if c.sync != nil {
		return c.sync.Execute(ctx, sql)
	}
	return c.async.Execute(ctx, sql)
}

func (c *Conn) execParams(ctx context.Context, sql string, pkt *postgres.Packet) (*postgres.ResultBlock, error) {
	if c.sync != nil {
		return c.sync.ExecuteParams(ctx, sql, pkt)
	}
	return c.async.ExecuteParams(ctx, sql, pkt)
}
