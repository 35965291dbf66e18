package watcher

import (
	"sync"
	"time"
)

// DefaultDebounceDuration coalesces the bursts of writes editors and
// exporters produce when saving an event file.
const DefaultDebounceDuration = 300 * time.Millisecond

// Debouncer delays a callback until triggers stop arriving for the
// configured duration. Rapid successive triggers collapse into one call.
type Debouncer struct {
	mu    sync.Mutex
	d     time.Duration
	timer *time.Timer
}

// NewDebouncer creates a debouncer. A non-positive duration uses the default.
func NewDebouncer(d time.Duration) *Debouncer {
	if d <= 0 {
		d = DefaultDebounceDuration
	}
	return &Debouncer{d: d}
}

// Duration returns the configured debounce duration.
func (d *Debouncer) Duration() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.d
}

// Trigger schedules fn to run after the debounce window. A trigger while a
// callback is pending restarts the window and replaces the callback.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.d, fn)
}

// Cancel drops any pending callback.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
