// Package poller runs cancellable repeating fetch tasks. Each poller
// owns one read operation, re-runs it on a fixed interval and replaces
// its snapshot wholesale: last write wins, no merge semantics. Stopping
// is deterministic through context cancellation.
package poller

import (
	"context"
	"sync"
	"time"
)

// Fetch produces one snapshot value.
type Fetch[T any] func(ctx context.Context) (T, error)

// Poller re-runs a fetch on a fixed interval and keeps the latest
// result. The zero value is not usable; use New.
type Poller[T any] struct {
	interval time.Duration
	fetch    Fetch[T]

	mu     sync.RWMutex
	last   T
	lastAt time.Time
	err    error

	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a poller that runs fetch every interval once started.
func New[T any](interval time.Duration, fetch Fetch[T]) *Poller[T] {
	return &Poller[T]{interval: interval, fetch: fetch}
}

// Start launches the polling loop: one immediate fetch, then one per
// interval until the context is cancelled or Stop is called. Start must
// be called at most once.
func (p *Poller[T]) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})
	go p.run(ctx)
}

// Stop cancels the loop and waits for it to exit. Safe to call only
// after Start.
func (p *Poller[T]) Stop() {
	p.cancel()
	<-p.done
}

// Snapshot returns the latest value, the time it was taken and the error
// of the most recent fetch. A zero time means no fetch has completed
// yet.
func (p *Poller[T]) Snapshot() (T, time.Time, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last, p.lastAt, p.err
}

func (p *Poller[T]) run(ctx context.Context) {
	defer close(p.done)

	p.refresh(ctx)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

func (p *Poller[T]) refresh(ctx context.Context) {
	v, err := p.fetch(ctx)
	if ctx.Err() != nil {
		// A fetch that lost to cancellation must not clobber the
		// snapshot.
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
	p.lastAt = time.Now()
	if err == nil {
		p.last = v
	}
}
