package testsupport

import (
	"context"
	"sync"

	"github.com/goliatone/go-contactform/pkg/transport"
)

// BlockingTransport records every send and holds it until Release is called.
type BlockingTransport struct {
	mu       sync.Mutex
	payloads []transport.Payload
	started  chan transport.Payload
	release  chan error
}

// NewBlockingTransport constructs a transport whose sends wait for Release.
func NewBlockingTransport() *BlockingTransport {
	return &BlockingTransport{
		started: make(chan transport.Payload, 16),
		release: make(chan error),
	}
}

// Send records payload and blocks until released or ctx ends.
func (b *BlockingTransport) Send(ctx context.Context, payload transport.Payload) error {
	b.mu.Lock()
	b.payloads = append(b.payloads, payload.Clone())
	b.mu.Unlock()
	b.started <- payload.Clone()

	select {
	case err := <-b.release:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Started yields each payload as its send begins.
func (b *BlockingTransport) Started() <-chan transport.Payload {
	return b.started
}

// Release completes the oldest waiting send with err.
func (b *BlockingTransport) Release(err error) {
	b.release <- err
}

// Calls returns the number of sends attempted.
func (b *BlockingTransport) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.payloads)
}

// Payloads returns a copy of every payload sent.
func (b *BlockingTransport) Payloads() []transport.Payload {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]transport.Payload, len(b.payloads))
	copy(out, b.payloads)
	return out
}
