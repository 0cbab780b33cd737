// Package srdns is a stub DNS resolver: it answers address, service,
// and text lookups by querying configured recursive name servers over
// UDP with TCP fallback on truncation, following CNAME chains, and
// caching results (including RFC 2308 negative answers) by TTL. It is
// designed to be embedded in applications as a drop-in replacement for
// the operating system's stub resolver.
//
// The resolver never recurses itself; it relies on the upstream
// server's recursion. Only A, AAAA, CNAME, SRV, TXT, and SOA records
// are decoded; other types are carried as opaque bytes.
package srdns

import (
	"net"
	"net/netip"
	"sync/atomic"
	"time"

	"golang.org/x/net/proxy"

	"github.com/haukened/sr-dns/internal/dns/common/clock"
	"github.com/haukened/sr-dns/internal/dns/common/log"
	"github.com/haukened/sr-dns/internal/dns/osconf"
	"github.com/haukened/sr-dns/internal/dns/rescache"
)

const (
	// DefaultTimeout bounds each resolution when SetTimeout was never
	// called.
	DefaultTimeout = 5 * time.Second

	// InfiniteTimeout disables the per-query timeout; callers then bound
	// queries with their own context.
	InfiniteTimeout time.Duration = -1

	defaultCacheSize = 1024
)

// Resolver is a stub DNS resolver. It is safe for concurrent use; any
// number of resolutions may be in flight against one instance.
type Resolver struct {
	opts   Options
	clk    clock.Clock
	logger log.Logger
	dialer proxy.ContextDialer

	timeout atomic.Int64 // nanoseconds; negative disables the timeout
	gate    atomic.Pointer[gate]
	closed  atomic.Bool

	addresses *rescache.Cache[AddressResult]
	services  *rescache.Cache[ServiceResult]
	texts     *rescache.Cache[TxtResult]
	negative  *rescache.Negative
}

// New creates a Resolver from explicit options. The options value is
// immutable after construction.
func New(opts Options) (*Resolver, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	addresses, err := rescache.New[AddressResult](defaultCacheSize)
	if err != nil {
		return nil, err
	}
	services, err := rescache.New[ServiceResult](defaultCacheSize)
	if err != nil {
		return nil, err
	}
	texts, err := rescache.New[TxtResult](defaultCacheSize)
	if err != nil {
		return nil, err
	}
	negative, err := rescache.NewNegative(defaultCacheSize)
	if err != nil {
		return nil, err
	}
	r := &Resolver{
		opts:      opts,
		clk:       clock.RealClock{},
		logger:    log.GetLogger(),
		dialer:    &net.Dialer{},
		addresses: addresses,
		services:  services,
		texts:     texts,
		negative:  negative,
	}
	r.timeout.Store(int64(DefaultTimeout))
	r.gate.Store(newGate())
	return r, nil
}

// FromServers creates a Resolver querying the given servers in order.
func FromServers(servers ...netip.AddrPort) (*Resolver, error) {
	return New(Options{Servers: servers})
}

// FromServer creates a Resolver querying a single server.
func FromServer(server netip.AddrPort) (*Resolver, error) {
	return New(Options{Servers: []netip.AddrPort{server}})
}

// DefaultResolver creates a Resolver from the operating system's
// resolver configuration.
func DefaultResolver() (*Resolver, error) {
	cfg, err := osconf.Discover()
	if err != nil {
		return nil, err
	}
	return New(Options{
		Servers:       cfg.Servers,
		DefaultDomain: cfg.DefaultDomain,
		SearchDomains: cfg.SearchDomains,
	})
}

// SetTimeout changes the per-query timeout. The duration must be
// positive, or InfiniteTimeout to disable the timeout entirely.
func (r *Resolver) SetTimeout(d time.Duration) error {
	if d != InfiniteTimeout && d <= 0 {
		return wrapArg("timeout must be positive or InfiniteTimeout")
	}
	r.timeout.Store(int64(d))
	return nil
}

// queryTimeout returns the effective per-query timeout, or zero when
// disabled.
func (r *Resolver) queryTimeout() time.Duration {
	d := time.Duration(r.timeout.Load())
	if d < 0 {
		return 0
	}
	return d
}

// CancelAllPending cancels every in-flight resolution with ErrCancelled.
// Resolutions started afterwards are unaffected.
func (r *Resolver) CancelAllPending() {
	old := r.gate.Swap(newGate())
	old.cancel()
}

// Close cancels all in-flight resolutions and marks the resolver
// unusable. It is idempotent.
func (r *Resolver) Close() error {
	if r.closed.CompareAndSwap(false, true) {
		r.gate.Load().cancel()
	}
	return nil
}

// serverAddrs renders the configured endpoints as dial strings.
func (r *Resolver) serverAddrs() []string {
	addrs := make([]string, len(r.opts.Servers))
	for i, s := range r.opts.Servers {
		addrs[i] = s.String()
	}
	return addrs
}
