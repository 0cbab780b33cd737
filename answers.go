package srdns

import (
	"fmt"
	"net/netip"
	"time"

	"github.com/haukened/sr-dns/internal/dns/domain"
	"github.com/haukened/sr-dns/internal/dns/rescache"
	"github.com/haukened/sr-dns/internal/dns/wire"
)

// processAddresses converts a response into address results. NOERROR
// answers are walked as a CNAME chain; NODATA and NXDOMAIN responses
// install negative entries per RFC 2308 and yield an empty list.
func (r *Resolver) processAddresses(q domain.Question, resp *domain.Response) ([]AddressResult, error) {
	key := rescache.Key(q.Name, q.Type)
	switch {
	case resp.RCode() == domain.RCodeNoError && len(resp.Answers) > 0:
		results, err := r.walkAddressChain(q, resp)
		if err != nil {
			return nil, err
		}
		if len(results) > 0 {
			r.addresses.Set(key, results, resp.Expires, resp.Started)
		}
		return results, nil
	case resp.RCode() == domain.RCodeNoError:
		if expires, ok := nodataExpiry(resp); ok {
			r.addresses.Set(key, []AddressResult{}, expires, resp.Started)
			r.logger.Debug(map[string]any{"name": q.Name, "type": q.Type.String()}, "cached NODATA answer")
		}
		return []AddressResult{}, nil
	case resp.RCode() == domain.RCodeNameError:
		r.cacheNXDomain(q.Name, resp)
		return []AddressResult{}, nil
	default:
		return []AddressResult{}, nil
	}
}

// walkAddressChain walks the answer section with a moving alias: CNAMEs
// owned by the current alias redirect it, records of the queried type
// owned by it become results, everything else is skipped. Servers
// conventionally return the CNAME chain and the terminal address records
// in the same section, in order.
func (r *Resolver) walkAddressChain(q domain.Question, resp *domain.Response) ([]AddressResult, error) {
	alias := q.Name
	results := []AddressResult{}
	for _, rr := range resp.Answers {
		if !domain.EqualNames(rr.Name, alias) {
			continue
		}
		switch rr.Type {
		case domain.RRTypeCNAME:
			target, _, err := wire.ReadName(rr.Data, 0)
			if err != nil {
				return nil, err
			}
			alias = target
		case q.Type:
			addr, err := recordAddr(rr)
			if err != nil {
				return nil, err
			}
			results = append(results, AddressResult{
				ExpiresAt: rr.ExpiresAt(resp.Started),
				Addr:      addr,
			})
		}
	}
	return results, nil
}

// recordAddr converts A or AAAA record data to an address, enforcing the
// exact RDATA lengths of RFC 1035 and RFC 3596.
func recordAddr(rr domain.ResourceRecord) (netip.Addr, error) {
	wantLen := 4
	if rr.Type == domain.RRTypeAAAA {
		wantLen = 16
	}
	if len(rr.Data) != wantLen {
		return netip.Addr{}, fmt.Errorf("%w: %s record with %d data bytes", wire.ErrProtocol, rr.Type, len(rr.Data))
	}
	addr, _ := netip.AddrFromSlice(rr.Data)
	return addr, nil
}

// processServices converts a response into service results: every SRV
// answer, with addresses stitched in from additional-section A/AAAA
// records owned by the SRV target.
func (r *Resolver) processServices(q domain.Question, resp *domain.Response) ([]ServiceResult, error) {
	key := rescache.Key(q.Name, domain.RRTypeSRV)
	switch {
	case resp.RCode() == domain.RCodeNoError && len(resp.Answers) > 0:
		results := []ServiceResult{}
		for _, rr := range resp.Answers {
			if rr.Type != domain.RRTypeSRV {
				continue
			}
			srv, err := wire.ReadSRV(rr.Data)
			if err != nil {
				return nil, err
			}
			svc := ServiceResult{
				ExpiresAt: rr.ExpiresAt(resp.Started),
				Priority:  srv.Priority,
				Weight:    srv.Weight,
				Port:      srv.Port,
				Target:    srv.Target,
			}
			for _, ad := range resp.Additional {
				if !domain.EqualNames(ad.Name, srv.Target) {
					continue
				}
				if ad.Type != domain.RRTypeA && ad.Type != domain.RRTypeAAAA {
					continue
				}
				addr, err := recordAddr(ad)
				if err != nil {
					return nil, err
				}
				svc.Addresses = append(svc.Addresses, AddressResult{
					ExpiresAt: ad.ExpiresAt(resp.Started),
					Addr:      addr,
				})
			}
			results = append(results, svc)
		}
		if len(results) > 0 {
			r.services.Set(key, results, resp.Expires, resp.Started)
		}
		return results, nil
	case resp.RCode() == domain.RCodeNoError:
		if expires, ok := nodataExpiry(resp); ok {
			r.services.Set(key, []ServiceResult{}, expires, resp.Started)
		}
		return []ServiceResult{}, nil
	case resp.RCode() == domain.RCodeNameError:
		r.cacheNXDomain(q.Name, resp)
		return []ServiceResult{}, nil
	default:
		return []ServiceResult{}, nil
	}
}

// processTexts converts a response into text results, one per TXT
// answer.
func (r *Resolver) processTexts(q domain.Question, resp *domain.Response) ([]TxtResult, error) {
	key := rescache.Key(q.Name, domain.RRTypeTXT)
	switch {
	case resp.RCode() == domain.RCodeNoError && len(resp.Answers) > 0:
		results := []TxtResult{}
		for _, rr := range resp.Answers {
			if rr.Type != domain.RRTypeTXT {
				continue
			}
			results = append(results, TxtResult{TTL: rr.TTL, Data: rr.Data})
		}
		if len(results) > 0 {
			r.texts.Set(key, results, resp.Expires, resp.Started)
		}
		return results, nil
	case resp.RCode() == domain.RCodeNoError:
		if expires, ok := nodataExpiry(resp); ok {
			r.texts.Set(key, []TxtResult{}, expires, resp.Started)
		}
		return []TxtResult{}, nil
	case resp.RCode() == domain.RCodeNameError:
		r.cacheNXDomain(q.Name, resp)
		return []TxtResult{}, nil
	default:
		return []TxtResult{}, nil
	}
}

// cacheNXDomain installs a negative entry for name when the NXDOMAIN
// response carries a decodable SOA. An NXDOMAIN refutes every type, so
// the negative cache is keyed on the name alone.
func (r *Resolver) cacheNXDomain(name string, resp *domain.Response) {
	if expires, ok := soaExpiry(resp); ok {
		r.negative.Set(name, expires)
		r.logger.Debug(map[string]any{"name": name}, "cached NXDOMAIN answer")
	}
}

// nodataExpiry computes the negative-entry expiry for a NODATA response
// per RFC 2308: only when the authority section carries no NS record and
// an SOA with a decodable MINIMUM.
func nodataExpiry(resp *domain.Response) (time.Time, bool) {
	for _, rr := range resp.Authority {
		if rr.Type == domain.RRTypeNS {
			return time.Time{}, false
		}
	}
	return soaExpiry(resp)
}

// soaExpiry finds an SOA in the authority section and returns
// started + min(soa record TTL, SOA MINIMUM).
func soaExpiry(resp *domain.Response) (time.Time, bool) {
	for _, rr := range resp.Authority {
		if rr.Type != domain.RRTypeSOA {
			continue
		}
		soa, err := wire.ReadSOA(rr.Data)
		if err != nil {
			continue
		}
		ttl := rr.TTL
		if soa.Minimum < ttl {
			ttl = soa.Minimum
		}
		return resp.Started.Add(time.Duration(ttl) * time.Second), true
	}
	return time.Time{}, false
}
