// Package debounce provides the timer primitive behind search-as-you-type:
// schedule a function after a fixed delay, cancelling any previously
// scheduled call. Only the last Trigger within the window runs.
package debounce

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid Trigger calls into a single delayed execution.
// The zero value is not usable; construct with New.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// New returns a Debouncer with the given delay.
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn to run after the configured delay, replacing any
// pending schedule. fn runs on a timer goroutine.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending schedule. It does not wait for a running fn.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
