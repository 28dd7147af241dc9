package postgres

import (
	"net"
	"syscall"
)

// connFd extracts the raw file descriptor backing conn, or -1 if conn
// does not expose one (e.g. an in-memory pipe used in tests). Used both by
// PgxConn.Fd and by the hijacked connection the async executor drives.
func connFd(conn net.Conn) int {
	sc, ok := conn.(syscall.Conn)
	if !ok {
		return -1
	}
	raw, err := sc.SyscallConn()
	if err != nil {
		return -1
	}
	fd := -1
	_ = raw.Control(func(f uintptr) { fd = int(f) })
	return fd
}
