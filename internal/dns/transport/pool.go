package transport

import "sync"

// Buffer sizes. UDP replies never exceed 512 bytes without EDNS0; larger
// answers arrive truncated and are refetched over TCP, where 8 KiB covers
// the common case and the exchange grows past it on demand.
const (
	udpBufferSize = 512
	tcpBufferSize = 8192
)

var udpPool = sync.Pool{
	New: func() any {
		b := make([]byte, udpBufferSize)
		return &b
	},
}

var tcpPool = sync.Pool{
	New: func() any {
		b := make([]byte, tcpBufferSize)
		return &b
	},
}

func rentUDPBuffer() *[]byte {
	return udpPool.Get().(*[]byte)
}

func releaseUDPBuffer(b *[]byte) {
	udpPool.Put(b)
}

func rentTCPBuffer() *[]byte {
	return tcpPool.Get().(*[]byte)
}

func releaseTCPBuffer(b *[]byte) {
	tcpPool.Put(b)
}
