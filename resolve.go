package srdns

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/haukened/sr-dns/internal/dns/domain"
	"github.com/haukened/sr-dns/internal/dns/rescache"
	"github.com/haukened/sr-dns/internal/dns/transport"
	"github.com/haukened/sr-dns/internal/dns/wire"
)

// wrapArg wraps a detail message in ErrArgument.
func wrapArg(detail string) error {
	return fmt.Errorf("%w: %s", ErrArgument, detail)
}

// errTCPFailure marks an I/O failure on the TCP fallback path, which is
// terminal for the call; only UDP failures fail over to the next server.
var errTCPFailure = errors.New("tcp exchange failed")

// ResolveAddresses resolves name to IP addresses of the requested
// family. FamilyUnspecified queries A then AAAA and concatenates the
// results.
func (r *Resolver) ResolveAddresses(ctx context.Context, name string, family AddressFamily) ([]AddressResult, error) {
	if r.closed.Load() {
		return nil, ErrClosed
	}
	if ctx.Err() != nil {
		return nil, ErrCancelled
	}
	switch family {
	case FamilyIPv4:
		return r.resolveAddressType(ctx, name, domain.RRTypeA)
	case FamilyIPv6:
		return r.resolveAddressType(ctx, name, domain.RRTypeAAAA)
	case FamilyUnspecified:
		v4, err := r.resolveAddressType(ctx, name, domain.RRTypeA)
		if err != nil {
			return nil, err
		}
		v6, err := r.resolveAddressType(ctx, name, domain.RRTypeAAAA)
		if err != nil {
			return nil, err
		}
		return append(v4, v6...), nil
	default:
		return nil, wrapArg(fmt.Sprintf("unsupported address family %s", family))
	}
}

// resolveAddressType resolves one address record type, consulting the
// caches before the network.
func (r *Resolver) resolveAddressType(ctx context.Context, name string, qtype domain.RRType) ([]AddressResult, error) {
	q, err := domain.NewQuestion(name, qtype)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrArgument, err)
	}
	now := r.clk.Now()
	if r.negative.Nonexistent(name, now) {
		return []AddressResult{}, nil
	}
	if cached, ok := r.addresses.Get(rescache.Key(name, qtype), now); ok {
		r.logger.Debug(map[string]any{"name": name, "type": qtype.String()}, "cache hit")
		return cached, nil
	}
	resp, err := r.exchange(ctx, q)
	if err != nil {
		return nil, err
	}
	return r.processAddresses(q, resp)
}

// ResolveService resolves the SRV records of name, stitching in any
// addresses the server volunteered in the additional section.
func (r *Resolver) ResolveService(ctx context.Context, name string) ([]ServiceResult, error) {
	if r.closed.Load() {
		return nil, ErrClosed
	}
	if ctx.Err() != nil {
		return nil, ErrCancelled
	}
	q, err := domain.NewQuestion(name, domain.RRTypeSRV)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrArgument, err)
	}
	now := r.clk.Now()
	if r.negative.Nonexistent(name, now) {
		return []ServiceResult{}, nil
	}
	if cached, ok := r.services.Get(rescache.Key(name, domain.RRTypeSRV), now); ok {
		r.logger.Debug(map[string]any{"name": name, "type": "SRV"}, "cache hit")
		return cached, nil
	}
	resp, err := r.exchange(ctx, q)
	if err != nil {
		return nil, err
	}
	return r.processServices(q, resp)
}

// ResolveText resolves the TXT records of name.
func (r *Resolver) ResolveText(ctx context.Context, name string) ([]TxtResult, error) {
	if r.closed.Load() {
		return nil, ErrClosed
	}
	if ctx.Err() != nil {
		return nil, ErrCancelled
	}
	q, err := domain.NewQuestion(name, domain.RRTypeTXT)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrArgument, err)
	}
	now := r.clk.Now()
	if r.negative.Nonexistent(name, now) {
		return []TxtResult{}, nil
	}
	if cached, ok := r.texts.Get(rescache.Key(name, domain.RRTypeTXT), now); ok {
		r.logger.Debug(map[string]any{"name": name, "type": "TXT"}, "cache hit")
		return cached, nil
	}
	resp, err := r.exchange(ctx, q)
	if err != nil {
		return nil, err
	}
	return r.processTexts(q, resp)
}

// exchange drives the configured servers in order until one returns
// NOERROR, falling back from UDP to TCP when a response arrives
// truncated. A response with any other code is kept so the answer
// processor can interpret the final one (negative caching); UDP transport
// failures move on to the next server, while protocol errors and TCP
// fallback failures end the call.
func (r *Resolver) exchange(callerCtx context.Context, q domain.Question) (*domain.Response, error) {
	g := r.gate.Load()
	qctx, cancel := context.WithCancel(callerCtx)
	defer cancel()
	stop := context.AfterFunc(g.ctx, cancel)
	defer stop()
	if d := r.queryTimeout(); d > 0 {
		var tcancel context.CancelFunc
		qctx, tcancel = context.WithTimeout(qctx, d)
		defer tcancel()
	}

	var resp *domain.Response
	var lastErr error
	for _, server := range r.serverAddrs() {
		started := r.clk.Now()
		res, err := r.queryServer(qctx, server, q, started)
		if err != nil {
			if qctx.Err() != nil {
				return nil, r.classify(callerCtx, g, err)
			}
			if errors.Is(err, wire.ErrProtocol) {
				// A malformed or mismatched response is not retried
				// against other servers.
				return nil, err
			}
			if errors.Is(err, errTCPFailure) {
				return nil, err
			}
			r.logger.Warn(map[string]any{
				"server": server,
				"name":   q.Name,
				"type":   q.Type.String(),
				"error":  err.Error(),
			}, "upstream query failed")
			lastErr = err
			continue
		}
		resp = res
		if res.RCode() == domain.RCodeNoError {
			break
		}
		r.logger.Debug(map[string]any{
			"server": server,
			"name":   q.Name,
			"rcode":  res.RCode().String(),
		}, "server answered with error code")
	}
	if resp == nil {
		if lastErr != nil {
			return nil, r.classify(callerCtx, g, lastErr)
		}
		return nil, ErrNoServers
	}
	return resp, nil
}

// queryServer performs one UDP exchange against server, refetching over
// TCP when the response is truncated, and reads the full response out of
// the transport buffer.
func (r *Resolver) queryServer(ctx context.Context, server string, q domain.Question, started time.Time) (*domain.Response, error) {
	id := uint16(rand.Uint32())
	ex, err := transport.ExchangeUDP(ctx, r.dialer, server, id, q)
	if err != nil {
		return nil, err
	}
	if ex.Header.Flags.Truncated() {
		r.logger.Debug(map[string]any{
			"server": server,
			"name":   q.Name,
		}, "truncated UDP response; retrying over TCP")
		ex.Close()
		id = uint16(rand.Uint32())
		ex, err = transport.ExchangeTCP(ctx, r.dialer, server, id, q)
		if err != nil {
			if errors.Is(err, wire.ErrProtocol) || ctx.Err() != nil {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %w", errTCPFailure, err)
		}
	}
	defer ex.Close()
	return readResponse(ex, q, started)
}

// readResponse validates the echoed question and copies every record out
// of the transport buffer into an owned Response. Parsing fewer records
// than the header claims is a protocol error.
func readResponse(ex *transport.Exchange, q domain.Question, started time.Time) (*domain.Response, error) {
	h := ex.Header
	if h.QuestionCount != 1 {
		return nil, fmt.Errorf("%w: expected one echoed question, got %d", wire.ErrProtocol, h.QuestionCount)
	}
	echoed, err := ex.Reader.ReadQuestion()
	if err != nil {
		return nil, err
	}
	if !q.Equivalent(echoed) {
		return nil, fmt.Errorf("%w: echoed question %s %s does not match query %s %s",
			wire.ErrProtocol, echoed.Name, echoed.Type, q.Name, q.Type)
	}
	answers, err := readSection(ex.Reader, h.AnswerCount)
	if err != nil {
		return nil, err
	}
	authority, err := readSection(ex.Reader, h.AuthorityCount)
	if err != nil {
		return nil, err
	}
	additional, err := readSection(ex.Reader, h.AdditionalCount)
	if err != nil {
		return nil, err
	}
	resp := domain.NewResponse(h, started, answers, authority, additional)
	return &resp, nil
}

// readSection reads count records, detaching each from the transport
// buffer.
func readSection(reader *wire.Reader, count uint16) ([]domain.ResourceRecord, error) {
	records := make([]domain.ResourceRecord, 0, count)
	for i := 0; i < int(count); i++ {
		rr, err := reader.ReadResourceRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, rr.Owned())
	}
	return records, nil
}

// classify maps a cancellation-induced failure to its cause: the
// caller's context or the resolver gate yields ErrCancelled, a bare
// deadline yields ErrTimeout, anything else passes through.
func (r *Resolver) classify(callerCtx context.Context, g *gate, err error) error {
	if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if callerCtx.Err() != nil || g.ctx.Err() != nil {
		return ErrCancelled
	}
	return ErrTimeout
}
