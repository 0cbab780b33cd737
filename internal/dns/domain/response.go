// Package domain holds the value types shared by the resolver's codec,
// transport, and service layers: header fields, questions, resource
// records, and complete upstream responses.
package domain

import "time"

// Response represents a fully parsed DNS response with answer, authority,
// and additional sections, per RFC 1035 section 4.1.1. All record data is
// owned (copied out of any transport buffer).
type Response struct {
	Header     Header
	Started    time.Time
	Expires    time.Time
	Answers    []ResourceRecord
	Authority  []ResourceRecord
	Additional []ResourceRecord
}

// NewResponse constructs a Response, computing the message-wide expiry as
// started plus the minimum TTL over all records. A response carrying no
// records expires at started and must not be cached.
func NewResponse(h Header, started time.Time, answers, authority, additional []ResourceRecord) Response {
	resp := Response{
		Header:     h,
		Started:    started,
		Answers:    answers,
		Authority:  authority,
		Additional: additional,
	}
	resp.Expires = started.Add(resp.minTTL())
	return resp
}

// RCode returns the response code carried in the header flags.
func (resp Response) RCode() RCode {
	return resp.Header.Flags.RCode()
}

// HasRecords reports whether any section carries at least one record.
func (resp Response) HasRecords() bool {
	return len(resp.Answers)+len(resp.Authority)+len(resp.Additional) > 0
}

// minTTL returns the minimum TTL across all sections as a duration, or
// zero when the response carries no records.
func (resp Response) minTTL() time.Duration {
	min := uint32(0)
	first := true
	for _, section := range [][]ResourceRecord{resp.Answers, resp.Authority, resp.Additional} {
		for _, rr := range section {
			if first || rr.TTL < min {
				min = rr.TTL
				first = false
			}
		}
	}
	if first {
		return 0
	}
	return time.Duration(min) * time.Second
}
