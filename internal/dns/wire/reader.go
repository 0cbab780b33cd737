package wire

import (
	"encoding/binary"

	"github.com/haukened/sr-dns/internal/dns/domain"
)

// Reader is a forward-only cursor over a complete DNS message buffer.
// Names inside resource record data are expanded against the full
// message, so records produced by a Reader carry no compression
// pointers.
type Reader struct {
	msg []byte
	off int
}

// NewReader returns a Reader positioned at the start of msg.
func NewReader(msg []byte) *Reader {
	return &Reader{msg: msg}
}

// Offset returns the current cursor position.
func (r *Reader) Offset() int {
	return r.off
}

// ReadHeader consumes the fixed 12-byte message header.
func (r *Reader) ReadHeader() (domain.Header, error) {
	if r.off+12 > len(r.msg) {
		return domain.Header{}, protoErrf("message shorter than header: %d bytes", len(r.msg)-r.off)
	}
	b := r.msg[r.off:]
	h := domain.Header{
		ID:              binary.BigEndian.Uint16(b[0:2]),
		Flags:           domain.Flags(binary.BigEndian.Uint16(b[2:4])),
		QuestionCount:   binary.BigEndian.Uint16(b[4:6]),
		AnswerCount:     binary.BigEndian.Uint16(b[6:8]),
		AuthorityCount:  binary.BigEndian.Uint16(b[8:10]),
		AdditionalCount: binary.BigEndian.Uint16(b[10:12]),
	}
	r.off += 12
	return h, nil
}

// ReadQuestion consumes one question section entry.
func (r *Reader) ReadQuestion() (domain.Question, error) {
	name, n, err := ReadName(r.msg, r.off)
	if err != nil {
		return domain.Question{}, err
	}
	r.off += n
	if r.off+4 > len(r.msg) {
		return domain.Question{}, protoErrf("truncated question at offset %d", r.off)
	}
	q := domain.Question{
		Name:  name,
		Type:  domain.RRType(binary.BigEndian.Uint16(r.msg[r.off : r.off+2])),
		Class: domain.RRClass(binary.BigEndian.Uint16(r.msg[r.off+2 : r.off+4])),
	}
	r.off += 4
	return q, nil
}

// ReadResourceRecord consumes one resource record. For record types whose
// RDATA embeds domain names (CNAME, NS, SOA, SRV) the data is rewritten
// with every name expanded, so it stays decodable after the message
// buffer is gone. All other types alias the message buffer and must be
// copied (ResourceRecord.Owned) before the buffer is released.
func (r *Reader) ReadResourceRecord() (domain.ResourceRecord, error) {
	name, n, err := ReadName(r.msg, r.off)
	if err != nil {
		return domain.ResourceRecord{}, err
	}
	r.off += n
	if r.off+10 > len(r.msg) {
		return domain.ResourceRecord{}, protoErrf("truncated record at offset %d", r.off)
	}
	rr := domain.ResourceRecord{
		Name:  name,
		Type:  domain.RRType(binary.BigEndian.Uint16(r.msg[r.off : r.off+2])),
		Class: domain.RRClass(binary.BigEndian.Uint16(r.msg[r.off+2 : r.off+4])),
		TTL:   binary.BigEndian.Uint32(r.msg[r.off+4 : r.off+8]),
	}
	rdLen := int(binary.BigEndian.Uint16(r.msg[r.off+8 : r.off+10]))
	r.off += 10
	if r.off+rdLen > len(r.msg) {
		return domain.ResourceRecord{}, protoErrf("truncated rdata at offset %d", r.off)
	}
	rdataOff := r.off
	r.off += rdLen

	rr.Data, err = r.expandRData(rr.Type, rdataOff, rdLen)
	if err != nil {
		return domain.ResourceRecord{}, err
	}
	return rr, nil
}

// expandRData rewrites name-bearing RDATA without compression pointers.
// Types without embedded names are returned as a slice aliasing the
// message buffer.
func (r *Reader) expandRData(t domain.RRType, off, length int) ([]byte, error) {
	switch t {
	case domain.RRTypeCNAME, domain.RRTypeNS:
		target, _, err := ReadName(r.msg, off)
		if err != nil {
			return nil, err
		}
		return AppendName(nil, target)
	case domain.RRTypeSRV:
		if length < 6 {
			return nil, protoErrf("SRV rdata too short: %d bytes", length)
		}
		target, _, err := ReadName(r.msg, off+6)
		if err != nil {
			return nil, err
		}
		data := make([]byte, 6, 6+len(target)+2)
		copy(data, r.msg[off:off+6])
		return AppendName(data, target)
	case domain.RRTypeSOA:
		return r.expandSOA(off, length)
	default:
		return r.msg[off : off+length], nil
	}
}

// expandSOA rewrites an SOA body with MNAME and RNAME expanded, followed
// by the five 32-bit fields.
func (r *Reader) expandSOA(off, length int) ([]byte, error) {
	mname, n, err := ReadName(r.msg, off)
	if err != nil {
		return nil, err
	}
	rname, m, err := ReadName(r.msg, off+n)
	if err != nil {
		return nil, err
	}
	if n+m+20 > length {
		return nil, protoErrf("SOA rdata too short: %d bytes", length)
	}
	data, err := AppendName(nil, mname)
	if err != nil {
		return nil, err
	}
	data, err = AppendName(data, rname)
	if err != nil {
		return nil, err
	}
	return append(data, r.msg[off+n+m:off+n+m+20]...), nil
}
