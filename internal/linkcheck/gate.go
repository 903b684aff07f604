package linkcheck

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFired is returned by Gate.Wait when no probe was ever started.
var ErrNotFired = errors.New("probe not fired")

// Prober runs one health probe. *Checker implements it.
type Prober interface {
	Check(ctx context.Context, url string) Result
}

// ProberFunc adapts a function to Prober.
type ProberFunc func(ctx context.Context, url string) Result

func (f ProberFunc) Check(ctx context.Context, url string) Result { return f(ctx, url) }

// Gate owns the lifecycle of one bookmark's status indicator.
//
// Nothing is probed until the indicator is first reported visible. That first
// signal fires exactly one probe and every later signal is ignored. Once the
// owner calls Close, a probe still in flight is left to finish but its result
// is dropped.
type Gate struct {
	url      string
	prober   Prober
	onResult func(Result)

	mu     sync.Mutex
	fired  bool
	closed bool
	status Result
	done   chan struct{}
}

// NewGate returns a gate in the checking state. onResult may be nil.
func NewGate(url string, prober Prober, onResult func(Result)) *Gate {
	return &Gate{
		url:      url,
		prober:   prober,
		onResult: onResult,
		status:   Pending(),
		done:     make(chan struct{}),
	}
}

// Observe reports a visibility change.
func (g *Gate) Observe(visible bool) {
	if !visible {
		return
	}

	g.mu.Lock()
	if g.fired || g.closed {
		g.mu.Unlock()
		return
	}
	g.fired = true
	g.mu.Unlock()

	go g.run()
}

func (g *Gate) run() {
	defer close(g.done)

	// Detached: the probe is bounded only by the checker timeout, not by
	// whoever is watching.
	res := g.prober.Check(context.Background(), g.url)

	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.status = res
	cb := g.onResult
	g.mu.Unlock()

	if cb != nil {
		cb(res)
	}
}

// Close marks the owner as gone. Results arriving afterwards are discarded.
func (g *Gate) Close() {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()
}

// Status returns the last delivered result, or Pending.
func (g *Gate) Status() Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

// Fired reports whether the probe was started.
func (g *Gate) Fired() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fired
}

// URL is the bookmark URL this gate probes.
func (g *Gate) URL() string { return g.url }

// Wait blocks until the probe goroutine has finished (delivered or discarded).
func (g *Gate) Wait(ctx context.Context) error {
	if !g.Fired() {
		return ErrNotFired
	}
	select {
	case <-g.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
