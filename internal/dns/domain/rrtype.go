package domain

import "fmt"

// RRType represents a DNS resource record type (e.g. A, AAAA, SRV).
// See IANA DNS Parameters for assigned codes.
type RRType uint16

// DNS Resource Record Type constants. Only the types the resolver
// decodes are named; anything else is carried as opaque RDATA.
const (
	RRTypeA     RRType = 1  // A - IPv4 address
	RRTypeNS    RRType = 2  // NS - Name server
	RRTypeCNAME RRType = 5  // CNAME - Canonical name
	RRTypeSOA   RRType = 6  // SOA - Start of authority
	RRTypeTXT   RRType = 16 // TXT - Text
	RRTypeAAAA  RRType = 28 // AAAA - IPv6 address
	RRTypeSRV   RRType = 33 // SRV - Service
)

// IsQueryType returns true if the RRType is one the resolver issues
// questions for.
func (t RRType) IsQueryType() bool {
	switch t {
	case RRTypeA, RRTypeAAAA, RRTypeSRV, RRTypeTXT:
		return true
	default:
		return false
	}
}

// String returns the textual representation of the RRType.
// For unknown types, it returns "TYPE<value>" per RFC 3597.
func (t RRType) String() string {
	switch t {
	case RRTypeA:
		return "A"
	case RRTypeNS:
		return "NS"
	case RRTypeCNAME:
		return "CNAME"
	case RRTypeSOA:
		return "SOA"
	case RRTypeTXT:
		return "TXT"
	case RRTypeAAAA:
		return "AAAA"
	case RRTypeSRV:
		return "SRV"
	default:
		return fmt.Sprintf("TYPE%d", uint16(t))
	}
}
