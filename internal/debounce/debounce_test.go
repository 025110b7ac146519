// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package debounce

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew_DefaultDelay(t *testing.T) {
	d := New(0, func() {})
	assert.Equal(t, DefaultDelay, d.Delay())

	d = New(-time.Second, func() {})
	assert.Equal(t, DefaultDelay, d.Delay())

	d = New(5*time.Millisecond, func() {})
	assert.Equal(t, 5*time.Millisecond, d.Delay())
}

func TestDebouncer_CoalescesBurst(t *testing.T) {
	var calls atomic.Int32
	d := New(30*time.Millisecond, func() { calls.Add(1) })
	defer d.Stop()

	for range 10 {
		d.Trigger()
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Never(t, func() bool { return calls.Load() > 1 }, 100*time.Millisecond, 10*time.Millisecond)
}

func TestDebouncer_SeparateBursts(t *testing.T) {
	var calls atomic.Int32
	d := New(10*time.Millisecond, func() { calls.Add(1) })
	defer d.Stop()

	d.Trigger()
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	d.Trigger()
	assert.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestDebouncer_LastWriteWins(t *testing.T) {
	var mu sync.Mutex
	var value, seen string

	d := New(20*time.Millisecond, func() {
		mu.Lock()
		defer mu.Unlock()
		seen = value
	})
	defer d.Stop()

	for _, v := range []string{"a", "ab", "abc"} {
		mu.Lock()
		value = v
		mu.Unlock()
		d.Trigger()
	}

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return seen == "abc"
	}, time.Second, 5*time.Millisecond)
}

func TestDebouncer_Stop(t *testing.T) {
	var calls atomic.Int32
	d := New(20*time.Millisecond, func() { calls.Add(1) })

	d.Trigger()
	d.Stop()
	d.Trigger()

	assert.Never(t, func() bool { return calls.Load() > 0 }, 100*time.Millisecond, 10*time.Millisecond)
}

func TestDebouncer_Flush(t *testing.T) {
	var calls atomic.Int32
	d := New(time.Hour, func() { calls.Add(1) })
	defer d.Stop()

	d.Trigger()
	d.Flush()
	assert.Equal(t, int32(1), calls.Load())

	d.Stop()
	d.Flush()
	assert.Equal(t, int32(1), calls.Load())
}
