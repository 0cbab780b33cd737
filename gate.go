package srdns

import "context"

// gate is the resolver-scoped cancellation source covering every
// in-flight query. CancelAllPending rotates it: the new gate is swapped
// in atomically before the old one fires, so a racing second rotation
// cannot lose a cancellation. Close fires the current gate once without
// replacement.
type gate struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func newGate() *gate {
	ctx, cancel := context.WithCancel(context.Background())
	return &gate{ctx: ctx, cancel: cancel}
}
