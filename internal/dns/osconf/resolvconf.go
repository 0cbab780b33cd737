package osconf

import (
	"bufio"
	"io"
	"net/netip"
	"strings"
)

// parseResolvConf consumes resolv.conf(5) syntax, honoring the
// nameserver, search, and domain directives and ignoring everything
// else. Later domain/search directives replace earlier ones, matching
// libc behavior.
func parseResolvConf(r io.Reader) (Config, error) {
	var cfg Config
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexAny(line, "#;"); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "nameserver":
			if len(fields) < 2 {
				continue
			}
			addr, err := netip.ParseAddr(fields[1])
			if err != nil {
				continue
			}
			cfg.Servers = append(cfg.Servers, netip.AddrPortFrom(addr, DefaultPort))
		case "search":
			if len(fields) > 1 {
				cfg.SearchDomains = fields[1:]
			}
		case "domain":
			if len(fields) > 1 {
				cfg.DefaultDomain = fields[1]
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return Config{}, err
	}
	if len(cfg.Servers) == 0 {
		return Config{}, ErrUnavailable
	}
	return cfg, nil
}
