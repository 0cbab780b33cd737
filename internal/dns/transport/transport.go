// Package transport performs single DNS exchanges over UDP and TCP.
// Each exchange owns a pooled buffer from send to release; the caller
// must Close the returned Exchange on every path so the buffer returns
// to its pool.
package transport

import (
	"context"
	"net"
	"time"

	"golang.org/x/net/proxy"

	"github.com/haukened/sr-dns/internal/dns/domain"
	"github.com/haukened/sr-dns/internal/dns/wire"
)

// aLongTimeAgo is a non-zero time well in the past, used to force
// in-flight socket reads to fail when the context is cancelled.
var aLongTimeAgo = time.Unix(1, 0)

// Exchange is the outcome of one query/response round trip: the parsed
// header and a reader positioned immediately after it. Close returns the
// underlying buffer to its pool; the Reader and any record data aliasing
// it are invalid afterwards.
type Exchange struct {
	Header  domain.Header
	Reader  *wire.Reader
	release func()
}

// Close releases the exchange's buffer. Safe to call more than once.
func (e *Exchange) Close() {
	if e.release != nil {
		e.release()
		e.release = nil
	}
}

// guardDeadline arranges for conn reads and writes to abort when ctx is
// done, and applies the context deadline if one is set. The returned stop
// function must be called before conn is closed.
func guardDeadline(ctx context.Context, conn net.Conn) func() bool {
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}
	return context.AfterFunc(ctx, func() {
		conn.SetDeadline(aLongTimeAgo)
	})
}

// exchangeErr maps a socket failure to the context's error when the
// failure was induced by cancellation or deadline.
func exchangeErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}

var _ proxy.ContextDialer = (*net.Dialer)(nil)
