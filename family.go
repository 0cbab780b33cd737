package srdns

import "fmt"

// AddressFamily selects which address records ResolveAddresses queries.
type AddressFamily uint8

const (
	// FamilyUnspecified resolves both IPv4 and IPv6 addresses.
	FamilyUnspecified AddressFamily = iota
	// FamilyIPv4 resolves A records only.
	FamilyIPv4
	// FamilyIPv6 resolves AAAA records only.
	FamilyIPv6
)

// String returns the textual representation of the address family.
func (f AddressFamily) String() string {
	switch f {
	case FamilyUnspecified:
		return "unspecified"
	case FamilyIPv4:
		return "ipv4"
	case FamilyIPv6:
		return "ipv6"
	default:
		return fmt.Sprintf("family(%d)", uint8(f))
	}
}
