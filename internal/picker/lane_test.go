// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package picker provides the active-command state machine for slashdeck.
package picker

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestLaneLastCallWins(t *testing.T) {
	var l lane
	var fired atomic.Int32
	var last atomic.Int32

	for i := 1; i <= 5; i++ {
		n := int32(i)
		l.Schedule(20*time.Millisecond, func() {
			fired.Add(1)
			last.Store(n)
		})
	}

	time.Sleep(100 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("fired %d times, want 1", got)
	}
	if got := last.Load(); got != 5 {
		t.Errorf("last fire = %d, want 5", got)
	}
}

func TestLaneCancel(t *testing.T) {
	var l lane
	var fired atomic.Int32

	l.Schedule(15*time.Millisecond, func() { fired.Add(1) })
	l.Cancel()

	time.Sleep(80 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("fired %d times after cancel, want 0", got)
	}
}

func TestLaneReusableAfterCancel(t *testing.T) {
	var l lane
	var fired atomic.Int32

	l.Schedule(15*time.Millisecond, func() { fired.Add(1) })
	l.Cancel()
	l.Schedule(15*time.Millisecond, func() { fired.Add(1) })

	time.Sleep(80 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("fired %d times, want 1", got)
	}
}
