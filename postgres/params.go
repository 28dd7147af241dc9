// Package postgres implements the PostgreSQL binding layer of spec §4.9-4.13:
// binary parameter encoding, zero-copy result views, SQLSTATE-to-error-kind
// mapping, and synchronous/asynchronous executors over jackc/pgx/v5's
// pgconn, the same driver ariga-atlas's sql/postgres connects through (by
// way of database/sql) and xaas-cloud-genai-toolbox depends on directly.
package postgres

import (
	"encoding/binary"
	"math"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/sqlforge/sqlforge/value"
)

// PacketTag identifies a Packet to CompiledQuery.Packet's downcast-by-tag
// helper (§4.8/§9).
const PacketTag = "postgres"

// Packet is the opaque, backend-specific parameter bundle a CompiledQuery
// carries: four parallel arrays plus their owning backing buffers, matching
// the wire-format table in spec §4.9/§6 exactly.
type Packet struct {
	Values  [][]byte
	Lengths []int32
	Formats []int16
	OIDs    []uint32
}

// ParamSink accumulates FieldValues into a Packet, implementing
// dialect.ParamSink. OIDs are taken from pgtype's constants rather than
// re-declared magic numbers, grounding the wire-format table on the actual
// driver's type catalogue.
type ParamSink struct {
	values  [][]byte
	lengths []int32
	formats []int16
	oids    []uint32
}

func NewParamSink() *ParamSink { return &ParamSink{} }

const (
	formatText   int16 = 0
	formatBinary int16 = 1
)

// Push encodes v per the table in spec §4.9 and returns the new parameter
// count (1-based), which the generator uses as the placeholder index.
func (s *ParamSink) Push(v value.FieldValue) int {
	switch v.Kind() {
	case value.KindNull:
		s.push(nil, formatBinary, 0)
	case value.KindBool:
		b, _ := v.AsBool()
		buf := []byte{0}
		if b {
			buf[0] = 1
		}
		s.push(buf, formatBinary, pgtype.BoolOID)
	case value.KindInt32:
		i, _ := v.AsInt32()
		buf := make([]byte, 4)
		binary.BigEndian.PutUint32(buf, uint32(i))
		s.push(buf, formatBinary, pgtype.Int4OID)
	case value.KindInt64:
		i, _ := v.AsInt64()
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, uint64(i))
		s.push(buf, formatBinary, pgtype.Int8OID)
	case value.KindFloat64:
		f, _ := v.AsFloat64()
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, math.Float64bits(f))
		s.push(buf, formatBinary, pgtype.Float8OID)
	case value.KindText:
		t, _ := v.AsText()
		s.push([]byte(t), formatText, pgtype.TextOID)
	case value.KindBytes:
		b, _ := v.AsBytes()
		s.push(b, formatBinary, pgtype.ByteaOID)
	}
	return len(s.values)
}

func (s *ParamSink) push(buf []byte, format int16, oid uint32) {
	s.values = append(s.values, buf)
	s.lengths = append(s.lengths, int32(len(buf)))
	s.formats = append(s.formats, format)
	s.oids = append(s.oids, oid)
}

// Packet implements dialect.ParamSink: it hands back the accumulated
// arrays tagged as PacketTag.
func (s *ParamSink) Packet() (string, any) {
	return PacketTag, &Packet{
		Values:  s.values,
		Lengths: s.lengths,
		Formats: s.formats,
		OIDs:    s.oids,
	}
}
