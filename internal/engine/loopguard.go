// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// LoopGuard marks the window during which scene mutations are caused by a
// remote apply rather than by the local participant.
//
// The flag is raised for the duration of WithRemoteApply and stays raised
// for the settle delay afterwards, so that mutation events a scene emits
// asynchronously while replaying a snapshot are not taken for local edits.
type LoopGuard struct {
	applying atomic.Bool

	mu      sync.Mutex
	settle  time.Duration
	gen     uint64
	timer   *time.Timer
	stopped bool
}

func NewLoopGuard(settle time.Duration) *LoopGuard {
	return &LoopGuard{settle: settle}
}

// IsApplyingRemote is safe to call from any goroutine.
func (g *LoopGuard) IsApplyingRemote() bool {
	return g.applying.Load()
}

// WithRemoteApply raises the flag, runs fn and schedules the flag to drop
// after the settle delay. The release is scheduled whether fn returns an
// error or panics.
func (g *LoopGuard) WithRemoteApply(fn func() error) error {
	g.mu.Lock()
	g.gen++
	gen := g.gen
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.applying.Store(true)
	g.mu.Unlock()

	defer g.release(gen)

	return fn()
}

func (g *LoopGuard) release(gen uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	// a newer apply owns the flag now
	if gen != g.gen {
		return
	}

	if g.stopped || g.settle <= 0 {
		g.applying.Store(false)
		return
	}

	g.timer = time.AfterFunc(g.settle, func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.gen == gen {
			g.applying.Store(false)
			g.timer = nil
		}
	})
}

// Stop cancels a pending release and lowers the flag immediately.
func (g *LoopGuard) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.stopped = true
	g.gen++
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.applying.Store(false)
}
