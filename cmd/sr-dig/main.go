// Command sr-dig performs lookups with the sr-dns stub resolver and
// prints the typed results. Servers, timeout, and query type come from
// SRDNS_-prefixed environment variables; names to resolve come from the
// command line.
package main

import (
	"context"
	"fmt"
	"net/netip"
	"os"
	"strings"

	srdns "github.com/haukened/sr-dns"
	"github.com/haukened/sr-dns/internal/dns/common/log"
	"github.com/haukened/sr-dns/internal/dns/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	if err := log.Configure(cfg.Env, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Logging configuration error: %v\n", err)
		os.Exit(1)
	}

	names := os.Args[1:]
	if len(names) == 0 {
		fmt.Fprintf(os.Stderr, "usage: sr-dig name [name ...]\n")
		os.Exit(2)
	}

	resolver, err := buildResolver(cfg)
	if err != nil {
		log.Fatal(map[string]any{"error": err}, "Failed to build resolver")
	}
	defer resolver.Close()

	ctx := context.Background()
	exit := 0
	for _, name := range names {
		if err := lookup(ctx, resolver, cfg.QueryType, name); err != nil {
			log.Error(map[string]any{"name": name, "error": err}, "Lookup failed")
			exit = 1
		}
	}
	os.Exit(exit)
}

// buildResolver constructs the resolver from configured servers, or from
// the operating system's configuration when none are set.
func buildResolver(cfg *config.AppConfig) (*srdns.Resolver, error) {
	timeout, err := cfg.ParseTimeout()
	if err != nil {
		return nil, err
	}

	var resolver *srdns.Resolver
	if len(cfg.Servers) == 0 {
		resolver, err = srdns.DefaultResolver()
	} else {
		var servers []netip.AddrPort
		servers, err = parseServers(cfg.Servers)
		if err == nil {
			resolver, err = srdns.FromServers(servers...)
		}
	}
	if err != nil {
		return nil, err
	}
	if err := resolver.SetTimeout(timeout); err != nil {
		resolver.Close()
		return nil, err
	}
	return resolver, nil
}

// parseServers accepts host:port entries, falling back to port 53 for
// bare addresses.
func parseServers(entries []string) ([]netip.AddrPort, error) {
	servers := make([]netip.AddrPort, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if ap, err := netip.ParseAddrPort(entry); err == nil {
			servers = append(servers, ap)
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid server %q: %w", entry, err)
		}
		servers = append(servers, netip.AddrPortFrom(addr, 53))
	}
	return servers, nil
}

// lookup runs one query and prints its results.
func lookup(ctx context.Context, resolver *srdns.Resolver, qtype, name string) error {
	switch qtype {
	case "A", "AAAA":
		family := srdns.FamilyIPv4
		if qtype == "AAAA" {
			family = srdns.FamilyIPv6
		}
		results, err := resolver.ResolveAddresses(ctx, name, family)
		if err != nil {
			return err
		}
		for _, res := range results {
			fmt.Printf("%s\t%s\t%s\n", name, qtype, res.Addr)
		}
	case "SRV":
		results, err := resolver.ResolveService(ctx, name)
		if err != nil {
			return err
		}
		for _, res := range results {
			fmt.Printf("%s\tSRV\t%d %d %d %s", name, res.Priority, res.Weight, res.Port, res.Target)
			for _, addr := range res.Addresses {
				fmt.Printf(" %s", addr.Addr)
			}
			fmt.Println()
		}
	case "TXT":
		results, err := resolver.ResolveText(ctx, name)
		if err != nil {
			return err
		}
		for _, res := range results {
			strs, err := res.Strings()
			if err != nil {
				return err
			}
			fmt.Printf("%s\tTXT\t%s\n", name, strings.Join(strs, " "))
		}
	default:
		return fmt.Errorf("unsupported query type %q", qtype)
	}
	return nil
}
