package srdns

import (
	"net/netip"
	"time"

	"github.com/haukened/sr-dns/internal/dns/wire"
)

// AddressResult is one resolved address and the instant it stops being
// valid.
type AddressResult struct {
	ExpiresAt time.Time
	Addr      netip.Addr
}

// ServiceResult is one resolved SRV record, RFC 2782. Addresses carries
// any A/AAAA records the server volunteered for Target in the additional
// section. Ordering follows the answer section; callers apply the
// RFC 2782 priority/weight selection policy themselves.
type ServiceResult struct {
	ExpiresAt time.Time
	Priority  uint16
	Weight    uint16
	Port      uint16
	Target    string
	Addresses []AddressResult
}

// TxtResult is one resolved TXT record: the raw RDATA and its TTL.
type TxtResult struct {
	TTL  uint32
	Data []byte
}

// Strings splits the record data into its RFC 1035 character-strings.
func (t TxtResult) Strings() ([]string, error) {
	return wire.ReadCharacterStrings(t.Data)
}
