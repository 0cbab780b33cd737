// Package osconf discovers the operating system's resolver
// configuration. On Unix-like systems it parses /etc/resolv.conf; other
// platforms report that no configuration is available. The resolver core
// works from an explicit options value and does not depend on which
// implementation is present.
package osconf

import (
	"errors"
	"net/netip"
)

// DefaultPort is the DNS port used for nameserver entries that carry a
// bare address.
const DefaultPort = 53

// ErrUnavailable is returned when the platform offers no usable resolver
// configuration.
var ErrUnavailable = errors.New("osconf: no name servers available")

// Config is the system-supplied resolver configuration.
type Config struct {
	Servers       []netip.AddrPort
	DefaultDomain string
	SearchDomains []string
}
