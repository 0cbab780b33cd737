package srdns

import (
	"errors"

	"github.com/haukened/sr-dns/internal/dns/wire"
)

// Error kinds surfaced to callers. Use errors.Is to discriminate; most
// failures carry wrapped detail underneath.
var (
	// ErrTimeout reports that the resolver's query timeout elapsed before
	// any configured server answered.
	ErrTimeout = errors.New("srdns: query timed out")

	// ErrCancelled reports that the caller's context or the resolver's
	// pending-request gate fired during the query.
	ErrCancelled = errors.New("srdns: query cancelled")

	// ErrArgument reports an invalid caller argument: an unsupported
	// address family or an over-length name. No network activity occurs.
	ErrArgument = errors.New("srdns: invalid argument")

	// ErrClosed reports use of a resolver after Close. This is a
	// programmer error.
	ErrClosed = errors.New("srdns: resolver is closed")

	// ErrNoServers reports that the options carry no name servers.
	ErrNoServers = errors.New("srdns: no name servers configured")

	// ErrProtocol reports a malformed or mismatched DNS response. It
	// aborts the current operation and is not retried across servers.
	ErrProtocol = wire.ErrProtocol
)
