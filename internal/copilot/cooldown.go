package copilot

import (
	"sync"
	"time"
)

// Gate is the process-wide cooldown gate in front of the AI provider. It has
// two states: open (calls permitted) and cooling (calls refused at the call
// site). Tripping schedules a single non-cancellable reopen after the
// configured duration; a trip while already cooling is ignored, so each
// activation cools for exactly one full window.
type Gate struct {
	mu       sync.Mutex
	cooling  bool
	duration time.Duration
	schedule func(time.Duration, func())
	onReopen func()
}

// NewGate constructs an open gate. onReopen is invoked once per activation
// when the cooldown window elapses; it may be nil.
func NewGate(duration time.Duration, onReopen func()) *Gate {
	return &Gate{
		duration: duration,
		schedule: func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
		onReopen: onReopen,
	}
}

// Trip moves the gate to cooling and schedules the reopen. It reports whether
// the gate transitioned; a trip while already cooling is a no-op.
func (g *Gate) Trip() bool {
	g.mu.Lock()
	if g.cooling {
		g.mu.Unlock()
		return false
	}
	g.cooling = true
	g.mu.Unlock()

	g.schedule(g.duration, g.reopen)
	return true
}

// Cooling reports whether provider calls are currently refused.
func (g *Gate) Cooling() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cooling
}

// Duration returns the cooldown window length.
func (g *Gate) Duration() time.Duration {
	return g.duration
}

func (g *Gate) reopen() {
	g.mu.Lock()
	g.cooling = false
	g.mu.Unlock()

	if g.onReopen != nil {
		g.onReopen()
	}
}
