package wizard

import (
	"sync"
	"time"
)

// SavePolicy decides when a scheduled draft write actually runs.
// Injectable so tests and the submit path can force immediate writes.
type SavePolicy interface {
	Schedule(key string, fn func())
	Cancel(key string)
}

// ImmediatePolicy runs every write inline
type ImmediatePolicy struct{}

func (ImmediatePolicy) Schedule(key string, fn func()) {
	fn()
}

func (ImmediatePolicy) Cancel(key string) {}

// DebouncePolicy coalesces writes per key: only the last write
// scheduled within the interval runs
type DebouncePolicy struct {
	Interval time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewDebouncePolicy creates a debounce policy with the given interval
func NewDebouncePolicy(interval time.Duration) *DebouncePolicy {
	return &DebouncePolicy{
		Interval: interval,
		timers:   make(map[string]*time.Timer),
	}
}

func (p *DebouncePolicy) Schedule(key string, fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if timer, ok := p.timers[key]; ok {
		timer.Stop()
	}
	p.timers[key] = time.AfterFunc(p.Interval, func() {
		p.mu.Lock()
		delete(p.timers, key)
		p.mu.Unlock()
		fn()
	})
}

// Cancel drops any pending write for key. Required before clearing a
// draft, or a queued save would resurrect it.
func (p *DebouncePolicy) Cancel(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if timer, ok := p.timers[key]; ok {
		timer.Stop()
		delete(p.timers, key)
	}
}
