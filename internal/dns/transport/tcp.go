package transport

import (
	"context"
	"encoding/binary"
	"fmt"

	"golang.org/x/net/proxy"

	"github.com/haukened/sr-dns/internal/dns/domain"
	"github.com/haukened/sr-dns/internal/dns/wire"
)

// ExchangeTCP sends a single-question query to server over TCP with the
// 2-byte big-endian length framing of RFC 1035 section 4.2.2 and reads
// the complete framed response. The initial 8 KiB pooled buffer is grown
// when the advertised response length exceeds it; ownership of the final
// buffer rests with the returned Exchange.
func ExchangeTCP(ctx context.Context, dialer proxy.ContextDialer, server string, id uint16, q domain.Question) (*Exchange, error) {
	buf := rentTCPBuffer()
	pooled := true
	release := func() {
		if pooled {
			releaseTCPBuffer(buf)
		}
	}

	// The first two bytes carry the length prefix so the framed query
	// goes out of the same buffer in one write.
	framed, err := wire.AppendQuery((*buf)[:2], id, q)
	if err != nil {
		release()
		return nil, err
	}
	binary.BigEndian.PutUint16(framed[:2], uint16(len(framed)-2))

	conn, err := dialer.DialContext(ctx, "tcp", server)
	if err != nil {
		release()
		return nil, fmt.Errorf("dial %s: %w", server, exchangeErr(ctx, err))
	}
	defer conn.Close()
	stop := guardDeadline(ctx, conn)
	defer stop()

	if _, err := conn.Write(framed); err != nil {
		release()
		return nil, fmt.Errorf("send to %s: %w", server, exchangeErr(ctx, err))
	}

	have := 0
	for have < 2 {
		n, err := conn.Read((*buf)[have:])
		if err != nil {
			release()
			return nil, fmt.Errorf("receive from %s: %w", server, exchangeErr(ctx, err))
		}
		have += n
	}
	total := 2 + int(binary.BigEndian.Uint16((*buf)[:2]))
	if total > len(*buf) {
		grown := make([]byte, total)
		copy(grown, (*buf)[:have])
		releaseTCPBuffer(buf)
		pooled = false
		buf = &grown
	}
	for have < total {
		n, err := conn.Read((*buf)[have:total])
		if err != nil {
			release()
			return nil, fmt.Errorf("receive from %s: %w", server, exchangeErr(ctx, err))
		}
		have += n
	}

	r := wire.NewReader((*buf)[2:total])
	h, err := r.ReadHeader()
	if err != nil {
		release()
		return nil, err
	}
	if h.ID != id || !h.Flags.Response() {
		release()
		return nil, fmt.Errorf("%w: unexpected response header from %s", wire.ErrProtocol, server)
	}
	return &Exchange{Header: h, Reader: r, release: release}, nil
}
