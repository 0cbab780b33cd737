// Package wire encodes and decodes the DNS wire format of RFC 1035:
// domain names with label compression, the fixed 12-byte header,
// questions, and resource records, plus the SRV and SOA record bodies.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

// ErrProtocol is the root of every malformed-message error produced by
// this package. Callers discriminate with errors.Is.
var ErrProtocol = errors.New("dns: protocol error")

const (
	maxLabelLength = 63  // single label, on the wire
	maxNameWire    = 255 // whole name, on the wire
	maxNameText    = 253 // whole name, presentation form
)

// protoErrf wraps a formatted message in ErrProtocol.
func protoErrf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrProtocol}, args...)...)
}

// AppendName appends the wire encoding of a textual domain name to dst:
// length-prefixed labels terminated by a zero byte. Compression pointers
// are never emitted; the resolver only writes questions, where sharing
// gains nothing.
func AppendName(dst []byte, name string) ([]byte, error) {
	name = strings.TrimSuffix(name, ".")
	if len(name) > maxNameText {
		return nil, protoErrf("name exceeds %d characters: %q", maxNameText, name)
	}
	if name == "" {
		return append(dst, 0), nil
	}
	for _, label := range strings.Split(name, ".") {
		if label == "" {
			return nil, protoErrf("empty label in name %q", name)
		}
		if len(label) > maxLabelLength {
			return nil, protoErrf("label exceeds %d bytes: %q", maxLabelLength, label)
		}
		dst = append(dst, byte(len(label)))
		dst = append(dst, label...)
	}
	return append(dst, 0), nil
}

// ReadName decodes a domain name from msg starting at off, resolving
// RFC 1035 compression pointers. It returns the textual name and the
// number of bytes the name occupies at the starting offset; bytes read
// through pointers do not count toward the caller's cursor.
//
// Pointer targets must lie strictly before the region being decoded:
// each pointer must refer to an offset lower than the offset where the
// current run of labels began. Forward and self pointers are rejected,
// which guarantees termination under adversarial input.
func ReadName(msg []byte, off int) (string, int, error) {
	if off < 0 || off >= len(msg) {
		return "", 0, protoErrf("name offset %d out of bounds", off)
	}
	var b strings.Builder
	pos := off
	consumed := 0
	bound := off // every pointer must target an offset < bound
	for {
		if pos >= len(msg) {
			return "", 0, protoErrf("truncated name at offset %d", pos)
		}
		c := msg[pos]
		switch c & 0xC0 {
		case 0x00:
			if c == 0 {
				if consumed == 0 {
					consumed = pos + 1 - off
				}
				name := b.String()
				if len(name) > maxNameText {
					return "", 0, protoErrf("decoded name exceeds %d characters", maxNameText)
				}
				return name, consumed, nil
			}
			end := pos + 1 + int(c)
			if end > len(msg) {
				return "", 0, protoErrf("truncated label at offset %d", pos)
			}
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			if b.Len()+int(c) > maxNameText {
				return "", 0, protoErrf("decoded name exceeds %d characters", maxNameText)
			}
			b.Write(msg[pos+1 : end])
			pos = end
		case 0xC0:
			if pos+1 >= len(msg) {
				return "", 0, protoErrf("truncated compression pointer at offset %d", pos)
			}
			ptr := int(binary.BigEndian.Uint16(msg[pos:pos+2]) & 0x3FFF)
			if ptr >= bound {
				return "", 0, protoErrf("compression pointer at offset %d does not go backward (target %d)", pos, ptr)
			}
			if consumed == 0 {
				consumed = pos + 2 - off
			}
			bound = ptr
			pos = ptr
		default:
			// 0x80 and 0x40 label tags are reserved by RFC 1035.
			return "", 0, protoErrf("reserved label type %#02x at offset %d", c&0xC0, pos)
		}
	}
}
