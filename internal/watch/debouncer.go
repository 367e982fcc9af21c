// Package watch regenerates documentation when the source tree or the
// templates change.
package watch

import (
	"context"
	"time"
)

// Debouncer coalesces bursts of triggers into one call of fn. Calls never
// overlap: triggers arriving while fn runs schedule exactly one follow-up.
type Debouncer struct {
	wait    time.Duration
	fn      func(context.Context)
	trigger chan struct{}
}

// NewDebouncer returns a debouncer calling fn once wait has passed without a
// new trigger.
func NewDebouncer(wait time.Duration, fn func(context.Context)) *Debouncer {
	return &Debouncer{wait: wait, fn: fn, trigger: make(chan struct{}, 1)}
}

// Trigger requests a call. It never blocks.
func (d *Debouncer) Trigger() {
	select {
	case d.trigger <- struct{}{}:
	default:
		// already pending
	}
}

// Run processes triggers until ctx is done. fn runs on the calling goroutine.
func (d *Debouncer) Run(ctx context.Context) {
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-d.trigger:
			if timer == nil {
				timer = time.NewTimer(d.wait)
			} else {
				timer.Stop()
				timer.Reset(d.wait)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			d.fn(ctx)
		}
	}
}
