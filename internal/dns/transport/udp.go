package transport

import (
	"context"
	"fmt"

	"golang.org/x/net/proxy"

	"github.com/haukened/sr-dns/internal/dns/domain"
	"github.com/haukened/sr-dns/internal/dns/wire"
)

// ExchangeUDP sends a single-question query to server over a connected
// UDP socket and receives the matching response into a pooled 512-byte
// buffer. Frames that are too short, fail to parse, carry the wrong
// transaction id, or are not responses are discarded and the receive
// continues: a late reply to an earlier query on a reused port must not
// satisfy this one.
func ExchangeUDP(ctx context.Context, dialer proxy.ContextDialer, server string, id uint16, q domain.Question) (*Exchange, error) {
	buf := rentUDPBuffer()
	release := func() { releaseUDPBuffer(buf) }

	query, err := wire.AppendQuery((*buf)[:0], id, q)
	if err != nil {
		release()
		return nil, err
	}

	conn, err := dialer.DialContext(ctx, "udp", server)
	if err != nil {
		release()
		return nil, fmt.Errorf("dial %s: %w", server, exchangeErr(ctx, err))
	}
	defer conn.Close()
	stop := guardDeadline(ctx, conn)
	defer stop()

	if _, err := conn.Write(query); err != nil {
		release()
		return nil, fmt.Errorf("send to %s: %w", server, exchangeErr(ctx, err))
	}

	for {
		n, err := conn.Read(*buf)
		if err != nil {
			release()
			return nil, fmt.Errorf("receive from %s: %w", server, exchangeErr(ctx, err))
		}
		if n < 12 {
			continue
		}
		r := wire.NewReader((*buf)[:n])
		h, err := r.ReadHeader()
		if err != nil {
			continue
		}
		if h.ID != id || !h.Flags.Response() {
			continue
		}
		return &Exchange{Header: h, Reader: r, release: release}, nil
	}
}
