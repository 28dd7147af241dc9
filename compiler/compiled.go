package compiler

// CompiledQuery is the finalized SQL string plus the opaque, dialect-owned
// parameter packet (§4.8): the only two pieces of state a CompiledQuery
// owns, since Go's garbage collector is the "arena" here — there is no
// separate pinning handle to manage.
type CompiledQuery struct {
	sql       string
	packetTag string
	packet    any
}

// SQL returns the finalized SQL text.
func (q CompiledQuery) SQL() string { return q.sql }

// Packet recovers the opaque parameter packet if it was produced by the
// backend named by tag — the "downcast by tag" step of §4.8/§9. ok is false
// for a query compiled in Inline mode (no packet) or for the wrong tag.
func (q CompiledQuery) Packet(tag string) (packet any, ok bool) {
	if q.packetTag == "" || tag != q.packetTag {
		return nil, false
	}
	return q.packet, true
}
