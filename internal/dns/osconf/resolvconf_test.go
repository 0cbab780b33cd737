package osconf

import (
	"net/netip"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResolvConf(t *testing.T) {
	conf := `
# Generated by NetworkManager
nameserver 1.1.1.1
nameserver 2606:4700:4700::1111
search corp.example.com example.com
domain corp.example.com

options ndots:2
nameserver not-an-address
`
	cfg, err := parseResolvConf(strings.NewReader(conf))
	require.NoError(t, err)

	assert.Equal(t, []netip.AddrPort{
		netip.AddrPortFrom(netip.MustParseAddr("1.1.1.1"), 53),
		netip.AddrPortFrom(netip.MustParseAddr("2606:4700:4700::1111"), 53),
	}, cfg.Servers)
	assert.Equal(t, []string{"corp.example.com", "example.com"}, cfg.SearchDomains)
	assert.Equal(t, "corp.example.com", cfg.DefaultDomain)
}

func TestParseResolvConfComments(t *testing.T) {
	conf := `
nameserver 9.9.9.9 # primary
; full line comment
nameserver 149.112.112.112
`
	cfg, err := parseResolvConf(strings.NewReader(conf))
	require.NoError(t, err)
	assert.Len(t, cfg.Servers, 2)
}

func TestParseResolvConfLastDirectiveWins(t *testing.T) {
	conf := `
nameserver 1.1.1.1
search a.example
search b.example c.example
domain a.example
domain b.example
`
	cfg, err := parseResolvConf(strings.NewReader(conf))
	require.NoError(t, err)
	assert.Equal(t, []string{"b.example", "c.example"}, cfg.SearchDomains)
	assert.Equal(t, "b.example", cfg.DefaultDomain)
}

func TestParseResolvConfNoServers(t *testing.T) {
	_, err := parseResolvConf(strings.NewReader("search example.com\n"))
	assert.ErrorIs(t, err, ErrUnavailable)
}
