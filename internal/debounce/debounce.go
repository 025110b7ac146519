// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package debounce coalesces bursts of triggers into a single call. Only the
// most recent trigger in a burst fires, once the delay has passed without a
// newer one.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the recompute delay used when nothing is configured.
const DefaultDelay = 200 * time.Millisecond

// Debouncer runs fn once per quiet period. It is safe for concurrent use.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	fn    func()
	timer *time.Timer
	gen   uint64
	done  bool
}

// New returns a Debouncer that calls fn after delay has elapsed since the last
// Trigger. A non-positive delay selects DefaultDelay.
func New(delay time.Duration, fn func()) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay, fn: fn}
}

// Delay returns the quiet period.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Trigger schedules a call, superseding any pending one.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.done {
		return
	}

	if d.timer != nil {
		d.timer.Stop()
	}

	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A timer that lost the race with Stop or a newer Trigger is stale.
		stale := d.done || gen != d.gen
		d.mu.Unlock()
		if !stale {
			d.fn()
		}
	})
}

// Flush cancels any pending call and runs fn immediately.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.done {
		d.mu.Unlock()
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	d.mu.Unlock()

	d.fn()
}

// Stop cancels any pending call. Triggers after Stop are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.done = true
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
