package srdns

import "net/netip"

// Options configures a Resolver. A populated value normally comes from
// the platform collaborator (DefaultResolver) or is built explicitly by
// the embedding application.
type Options struct {
	// Servers is the ordered, non-empty list of recursive name servers
	// to query.
	Servers []netip.AddrPort

	// DefaultDomain and SearchDomains are parsed from system
	// configuration but not yet applied to queried names.
	DefaultDomain string
	SearchDomains []string

	// UseHostsFile is accepted for compatibility; no code path honors
	// it yet.
	UseHostsFile bool
}

// validate checks that the options can drive a resolver.
func (o Options) validate() error {
	if len(o.Servers) == 0 {
		return ErrNoServers
	}
	return nil
}
