// Package reactor implements the minimal single-threaded cooperative
// scheduler backing the asynchronous PostgreSQL executor's suspension
// points (§4.13): await-socket-writable inside the flush loop and
// await-socket-readable inside the consume loop. It is a poll(2)-based
// stand-in for libpq's own non-blocking I/O model, scoped to exactly the
// two wait conditions the executor needs — not a general-purpose event
// loop.
package reactor

import (
	"context"
	"fmt"

	"golang.org/x/sys/unix"
)

// pollIntervalMillis bounds each unix.Poll call so a cancelled context is
// noticed promptly instead of blocking until the socket changes state —
// the "reactor may inject cancellation between any two suspensions" clause
// of §4.13/§5.
const pollIntervalMillis = 50

// Reactor awaits readiness on raw file descriptors. It carries no
// per-connection state: callers serialize their own use of one executor,
// per §5's "single-threaded cooperative" contract, so one Reactor may be
// shared across every executor in a process.
type Reactor struct{}

// New returns a Reactor ready for use.
func New() *Reactor { return &Reactor{} }

// AwaitWritable suspends until fd is writable, ctx is done, or an error
// occurs. This is suspension point (a) of §5.
func (r *Reactor) AwaitWritable(ctx context.Context, fd int) error {
	return r.await(ctx, fd, unix.POLLOUT)
}

// AwaitReadable suspends until fd is readable, ctx is done, or an error
// occurs. This is suspension point (b) of §5.
func (r *Reactor) AwaitReadable(ctx context.Context, fd int) error {
	return r.await(ctx, fd, unix.POLLIN)
}

func (r *Reactor) await(ctx context.Context, fd int, events int16) error {
	pfd := []unix.PollFd{{Fd: int32(fd), Events: events}}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		n, err := unix.Poll(pfd, pollIntervalMillis)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return fmt.Errorf("reactor: poll fd %d: %w", fd, err)
		}
		if n == 0 {
			continue // timed out; re-check ctx and poll again
		}
		if pfd[0].Revents&(unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0 {
			return fmt.Errorf("reactor: fd %d reported error/hangup (revents=%#x)", fd, pfd[0].Revents)
		}
		if pfd[0].Revents&events != 0 {
			return nil
		}
	}
}
