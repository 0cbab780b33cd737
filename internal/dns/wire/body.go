package wire

import "encoding/binary"

// SRV is the decoded body of an SRV record, RFC 2782.
type SRV struct {
	Priority uint16
	Weight   uint16
	Port     uint16
	Target   string
}

// ReadSRV decodes an SRV record body. The data must have its target name
// already expanded (as produced by Reader.ReadResourceRecord).
func ReadSRV(data []byte) (SRV, error) {
	if len(data) < 7 {
		return SRV{}, protoErrf("SRV rdata too short: %d bytes", len(data))
	}
	target, _, err := ReadName(data, 6)
	if err != nil {
		return SRV{}, err
	}
	return SRV{
		Priority: binary.BigEndian.Uint16(data[0:2]),
		Weight:   binary.BigEndian.Uint16(data[2:4]),
		Port:     binary.BigEndian.Uint16(data[4:6]),
		Target:   target,
	}, nil
}

// SOA is the decoded body of an SOA record, RFC 1035 section 3.3.13.
// Minimum is the negative-caching TTL of RFC 2308.
type SOA struct {
	MName   string
	RName   string
	Serial  uint32
	Refresh uint32
	Retry   uint32
	Expire  uint32
	Minimum uint32
}

// ReadSOA decodes an SOA record body with expanded names.
func ReadSOA(data []byte) (SOA, error) {
	mname, n, err := ReadName(data, 0)
	if err != nil {
		return SOA{}, err
	}
	rname, m, err := ReadName(data, n)
	if err != nil {
		return SOA{}, err
	}
	if n+m+20 > len(data) {
		return SOA{}, protoErrf("SOA rdata missing integer fields")
	}
	b := data[n+m:]
	return SOA{
		MName:   mname,
		RName:   rname,
		Serial:  binary.BigEndian.Uint32(b[0:4]),
		Refresh: binary.BigEndian.Uint32(b[4:8]),
		Retry:   binary.BigEndian.Uint32(b[8:12]),
		Expire:  binary.BigEndian.Uint32(b[12:16]),
		Minimum: binary.BigEndian.Uint32(b[16:20]),
	}, nil
}

// ReadCharacterStrings splits TXT record data into its RFC 1035
// character-strings: a length byte followed by that many bytes, repeated
// to exhaustion.
func ReadCharacterStrings(data []byte) ([]string, error) {
	var out []string
	for off := 0; off < len(data); {
		n := int(data[off])
		off++
		if off+n > len(data) {
			return nil, protoErrf("truncated character-string at offset %d", off-1)
		}
		out = append(out, string(data[off:off+n]))
		off += n
	}
	return out, nil
}
