package srdns

import (
	"encoding/binary"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/sr-dns/internal/dns/common/log"
	"github.com/haukened/sr-dns/internal/dns/domain"
	"github.com/haukened/sr-dns/internal/dns/rescache"
	"github.com/haukened/sr-dns/internal/dns/wire"
)

var testStarted = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := FromServer(netip.MustParseAddrPort("127.0.0.1:53"))
	require.NoError(t, err)
	r.logger = log.NewNoopLogger()
	t.Cleanup(func() { r.Close() })
	return r
}

func nameData(t *testing.T, name string) []byte {
	t.Helper()
	data, err := wire.AppendName(nil, name)
	require.NoError(t, err)
	return data
}

func aRecord(name string, ttl uint32, ip string) domain.ResourceRecord {
	addr := netip.MustParseAddr(ip)
	return domain.ResourceRecord{
		Name: name, Type: domain.RRTypeA, Class: domain.RRClassIN, TTL: ttl,
		Data: addr.AsSlice(),
	}
}

func cnameRecord(t *testing.T, name string, ttl uint32, target string) domain.ResourceRecord {
	return domain.ResourceRecord{
		Name: name, Type: domain.RRTypeCNAME, Class: domain.RRClassIN, TTL: ttl,
		Data: nameData(t, target),
	}
}

func soaRecord(t *testing.T, zone string, ttl, minimum uint32) domain.ResourceRecord {
	data := nameData(t, "ns1."+zone)
	data = append(data, nameData(t, "hostmaster."+zone)...)
	for _, v := range []uint32{1, 7200, 900, 1209600, minimum} {
		data = binary.BigEndian.AppendUint32(data, v)
	}
	return domain.ResourceRecord{
		Name: zone, Type: domain.RRTypeSOA, Class: domain.RRClassIN, TTL: ttl,
		Data: data,
	}
}

func srvRecord(t *testing.T, name string, ttl uint32, priority, weight, port uint16, target string) domain.ResourceRecord {
	data := binary.BigEndian.AppendUint16(nil, priority)
	data = binary.BigEndian.AppendUint16(data, weight)
	data = binary.BigEndian.AppendUint16(data, port)
	data = append(data, nameData(t, target)...)
	return domain.ResourceRecord{
		Name: name, Type: domain.RRTypeSRV, Class: domain.RRClassIN, TTL: ttl,
		Data: data,
	}
}

func noErrorResponse(answers, authority, additional []domain.ResourceRecord) *domain.Response {
	resp := domain.NewResponse(domain.Header{Flags: domain.FlagResponse}, testStarted, answers, authority, additional)
	return &resp
}

func nxdomainResponse(authority []domain.ResourceRecord) *domain.Response {
	h := domain.Header{Flags: domain.FlagResponse | domain.Flags(domain.RCodeNameError)}
	resp := domain.NewResponse(h, testStarted, nil, authority, nil)
	return &resp
}

func TestProcessAddressesSimpleAnswer(t *testing.T) {
	r := newTestResolver(t)
	q := domain.Question{Name: "www.example.com", Type: domain.RRTypeA, Class: domain.RRClassIN}
	resp := noErrorResponse([]domain.ResourceRecord{
		aRecord("www.example.com", 3600, "172.213.245.111"),
	}, nil, nil)

	results, err := r.processAddresses(q, resp)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, netip.MustParseAddr("172.213.245.111"), results[0].Addr)
	assert.Equal(t, testStarted.Add(3600*time.Second), results[0].ExpiresAt)

	// The result must now be cached.
	cached, ok := r.addresses.Get(rescache.Key(q.Name, q.Type), testStarted.Add(time.Hour-time.Second))
	require.True(t, ok)
	assert.Equal(t, results, cached)
}

func TestProcessAddressesFollowsCNAMEChain(t *testing.T) {
	r := newTestResolver(t)
	q := domain.Question{Name: "www.example.com", Type: domain.RRTypeA, Class: domain.RRClassIN}
	resp := noErrorResponse([]domain.ResourceRecord{
		cnameRecord(t, "www.example.com", 3600, "www.example2.com"),
		cnameRecord(t, "www.example2.com", 3600, "www.example3.com"),
		aRecord("www.example3.com", 3600, "172.213.245.111"),
	}, nil, nil)

	results, err := r.processAddresses(q, resp)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, netip.MustParseAddr("172.213.245.111"), results[0].Addr)
}

func TestProcessAddressesBrokenChainYieldsNothing(t *testing.T) {
	r := newTestResolver(t)
	q := domain.Question{Name: "www.example.com", Type: domain.RRTypeA, Class: domain.RRClassIN}
	resp := noErrorResponse([]domain.ResourceRecord{
		cnameRecord(t, "www.example.com", 3600, "www.example2.com"),
		cnameRecord(t, "www.example2.com", 3600, "www.example3.com"),
		aRecord("www.example4.com", 3600, "172.213.245.111"), // off the chain
	}, nil, nil)

	results, err := r.processAddresses(q, resp)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestProcessAddressesSkipsUnrelatedOwners(t *testing.T) {
	r := newTestResolver(t)
	q := domain.Question{Name: "www.example.com", Type: domain.RRTypeA, Class: domain.RRClassIN}
	resp := noErrorResponse([]domain.ResourceRecord{
		aRecord("other.example.com", 3600, "10.0.0.1"),
		aRecord("www.example.com", 3600, "172.213.245.111"),
	}, nil, nil)

	results, err := r.processAddresses(q, resp)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, netip.MustParseAddr("172.213.245.111"), results[0].Addr)
}

func TestProcessAddressesCaseInsensitiveOwners(t *testing.T) {
	r := newTestResolver(t)
	q := domain.Question{Name: "www.example.com", Type: domain.RRTypeA, Class: domain.RRClassIN}
	resp := noErrorResponse([]domain.ResourceRecord{
		aRecord("WWW.Example.COM", 3600, "172.213.245.111"),
	}, nil, nil)

	results, err := r.processAddresses(q, resp)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestProcessAddressesRejectsMalformedARecord(t *testing.T) {
	r := newTestResolver(t)
	q := domain.Question{Name: "www.example.com", Type: domain.RRTypeA, Class: domain.RRClassIN}
	resp := noErrorResponse([]domain.ResourceRecord{
		{Name: "www.example.com", Type: domain.RRTypeA, Class: domain.RRClassIN, TTL: 60, Data: []byte{1, 2}},
	}, nil, nil)

	_, err := r.processAddresses(q, resp)
	assert.ErrorIs(t, err, ErrProtocol)
}

func TestProcessAddressesNODATACachesEmptyResult(t *testing.T) {
	r := newTestResolver(t)
	q := domain.Question{Name: "www.example.com", Type: domain.RRTypeAAAA, Class: domain.RRClassIN}
	resp := noErrorResponse(nil, []domain.ResourceRecord{
		soaRecord(t, "example.com", 600, 300),
	}, nil)

	results, err := r.processAddresses(q, resp)
	require.NoError(t, err)
	assert.Empty(t, results)

	// Cached as an empty positive entry until started + min(ttl, minimum).
	cached, ok := r.addresses.Get(rescache.Key(q.Name, q.Type), testStarted.Add(299*time.Second))
	require.True(t, ok)
	assert.Empty(t, cached)
	_, ok = r.addresses.Get(rescache.Key(q.Name, q.Type), testStarted.Add(300*time.Second))
	assert.False(t, ok)
}

func TestProcessAddressesNODATAWithNSRecordNotCached(t *testing.T) {
	r := newTestResolver(t)
	q := domain.Question{Name: "www.example.com", Type: domain.RRTypeA, Class: domain.RRClassIN}
	resp := noErrorResponse(nil, []domain.ResourceRecord{
		{Name: "example.com", Type: domain.RRTypeNS, Class: domain.RRClassIN, TTL: 600, Data: nameData(t, "ns1.example.com")},
		soaRecord(t, "example.com", 600, 300),
	}, nil)

	results, err := r.processAddresses(q, resp)
	require.NoError(t, err)
	assert.Empty(t, results)

	_, ok := r.addresses.Get(rescache.Key(q.Name, q.Type), testStarted)
	assert.False(t, ok)
}

func TestProcessAddressesNXDOMAINPopulatesNegativeCache(t *testing.T) {
	r := newTestResolver(t)
	q := domain.Question{Name: "gone.example.com", Type: domain.RRTypeA, Class: domain.RRClassIN}
	resp := nxdomainResponse([]domain.ResourceRecord{
		soaRecord(t, "example.com", 900, 300),
	})

	results, err := r.processAddresses(q, resp)
	require.NoError(t, err)
	assert.Empty(t, results)

	// min(900, 300) = 300 seconds, on the name alone.
	assert.True(t, r.negative.Nonexistent("gone.example.com", testStarted.Add(299*time.Second)))
	assert.False(t, r.negative.Nonexistent("gone.example.com", testStarted.Add(300*time.Second)))
}

func TestProcessAddressesNXDOMAINWithoutSOANotCached(t *testing.T) {
	r := newTestResolver(t)
	q := domain.Question{Name: "gone.example.com", Type: domain.RRTypeA, Class: domain.RRClassIN}
	resp := nxdomainResponse(nil)

	results, err := r.processAddresses(q, resp)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.False(t, r.negative.Nonexistent("gone.example.com", testStarted))
}

func TestProcessServicesStitchesAdditionals(t *testing.T) {
	r := newTestResolver(t)
	q := domain.Question{Name: "_s0._tcp.example.com", Type: domain.RRTypeSRV, Class: domain.RRClassIN}
	resp := noErrorResponse(
		[]domain.ResourceRecord{
			srvRecord(t, "_s0._tcp.example.com", 3600, 1, 2, 8080, "www.example.com"),
		},
		nil,
		[]domain.ResourceRecord{
			aRecord("www.example.com", 3600, "172.213.245.111"),
			aRecord("unrelated.example.com", 3600, "10.0.0.9"),
		},
	)

	results, err := r.processServices(q, resp)
	require.NoError(t, err)
	require.Len(t, results, 1)
	svc := results[0]
	assert.Equal(t, uint16(1), svc.Priority)
	assert.Equal(t, uint16(2), svc.Weight)
	assert.Equal(t, uint16(8080), svc.Port)
	assert.Equal(t, "www.example.com", svc.Target)
	require.Len(t, svc.Addresses, 1)
	assert.Equal(t, netip.MustParseAddr("172.213.245.111"), svc.Addresses[0].Addr)
}

func TestProcessServicesPreservesAnswerOrder(t *testing.T) {
	r := newTestResolver(t)
	q := domain.Question{Name: "_s0._tcp.example.com", Type: domain.RRTypeSRV, Class: domain.RRClassIN}
	resp := noErrorResponse(
		[]domain.ResourceRecord{
			srvRecord(t, "_s0._tcp.example.com", 3600, 20, 0, 8081, "b.example.com"),
			srvRecord(t, "_s0._tcp.example.com", 3600, 10, 0, 8080, "a.example.com"),
		},
		nil, nil,
	)

	results, err := r.processServices(q, resp)
	require.NoError(t, err)
	require.Len(t, results, 2)
	// No RFC 2782 reordering: the answer section order is preserved.
	assert.Equal(t, "b.example.com", results[0].Target)
	assert.Equal(t, "a.example.com", results[1].Target)
}

func TestProcessTextsCollectsAnswers(t *testing.T) {
	r := newTestResolver(t)
	q := domain.Question{Name: "example.com", Type: domain.RRTypeTXT, Class: domain.RRClassIN}
	data := []byte{5, 'h', 'e', 'l', 'l', 'o', 5, 'w', 'o', 'r', 'l', 'd'}
	resp := noErrorResponse([]domain.ResourceRecord{
		{Name: "example.com", Type: domain.RRTypeTXT, Class: domain.RRClassIN, TTL: 120, Data: data},
	}, nil, nil)

	results, err := r.processTexts(q, resp)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, uint32(120), results[0].TTL)

	strs, err := results[0].Strings()
	require.NoError(t, err)
	assert.Equal(t, []string{"hello", "world"}, strs)
}
