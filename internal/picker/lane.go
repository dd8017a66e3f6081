// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package picker provides the active-command state machine for slashdeck.
package picker

import (
	"sync"
	"time"
)

// =============================================================================
// DEBOUNCE LANE
// =============================================================================

// lane is a cancellable scheduled task. Scheduling replaces any pending
// fire, so of a rapid series of calls only the last one runs. A stopped
// timer that has already fired is neutralized by the generation check,
// never by relying on Stop alone.
type lane struct {
	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

// Schedule arranges fn to run after d, cancelling any pending fire.
func (l *lane) Schedule(d time.Duration, fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.timer != nil {
		l.timer.Stop()
	}
	l.gen++
	g := l.gen

	l.timer = time.AfterFunc(d, func() {
		l.mu.Lock()
		live := g == l.gen
		l.mu.Unlock()
		if live {
			fn()
		}
	})
}

// Cancel drops any pending fire.
func (l *lane) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	l.gen++
}
