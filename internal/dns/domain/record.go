package domain

import (
	"strings"
	"time"
)

// ResourceRecord is a single DNS resource record. Data holds the RDATA
// bytes; depending on provenance it may alias a transport buffer, in
// which case Owned must be called before the buffer is released.
type ResourceRecord struct {
	Name  string
	Type  RRType
	Class RRClass
	TTL   uint32
	Data  []byte
}

// Owned returns a copy of the record whose Data no longer aliases the
// buffer it was decoded from.
func (rr ResourceRecord) Owned() ResourceRecord {
	if len(rr.Data) > 0 {
		data := make([]byte, len(rr.Data))
		copy(data, rr.Data)
		rr.Data = data
	}
	return rr
}

// ExpiresAt returns the record's expiry instant relative to the time the
// carrying message was received.
func (rr ResourceRecord) ExpiresAt(started time.Time) time.Time {
	return started.Add(time.Duration(rr.TTL) * time.Second)
}

// EqualNames reports whether two domain names are equal under DNS
// case-insensitivity rules (ASCII folding only).
func EqualNames(a, b string) bool {
	return strings.EqualFold(a, b)
}
