package realtime

import (
	"context"
	"sync"
)

// MemoryBus is an in-process Bus for tests and single-node setups without
// redis. Delivery is synchronous in Publish order.
type MemoryBus struct {
	mu        sync.Mutex
	listeners []func(ChangeSignal)
	closed    bool
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{}
}

func (b *MemoryBus) Publish(_ context.Context, sig ChangeSignal) error {
	b.mu.Lock()
	listeners := make([]func(ChangeSignal), len(b.listeners))
	copy(listeners, b.listeners)
	b.mu.Unlock()
	for _, fn := range listeners {
		fn(sig)
	}
	return nil
}

func (b *MemoryBus) Subscribe(ctx context.Context, onSignal func(ChangeSignal)) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.listeners = append(b.listeners, func(sig ChangeSignal) {
		select {
		case <-ctx.Done():
		default:
			onSignal(sig)
		}
	})
	return nil
}

func (b *MemoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.listeners = nil
	return nil
}
