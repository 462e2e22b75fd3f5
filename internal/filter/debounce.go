package filter

import (
	"sync"
	"time"
)

// DefaultQuietPeriod is the settle time for free-text criteria input.
const DefaultQuietPeriod = 300 * time.Millisecond

// Debouncer coalesces bursts of criteria changes so that at most one
// recomputation runs per quiet period. Only the most recent callback
// survives a burst; earlier ones are superseded before firing.
type Debouncer struct {
	mu      sync.Mutex
	quiet   time.Duration
	timer   *time.Timer
	pending func()
}

// NewDebouncer returns a debouncer with the given quiet period. A zero
// or negative period falls back to DefaultQuietPeriod.
func NewDebouncer(quiet time.Duration) *Debouncer {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &Debouncer{quiet: quiet}
}

// Trigger schedules fn to run once the input goes quiet, superseding
// any previously scheduled callback.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = fn
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Flush runs any pending callback immediately. Non-text criteria
// changes (dropdowns, sliders) use this to settle without waiting.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	d.fire()
}

// Stop cancels any pending callback without running it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
}
