// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package replication

import (
	"sync"

	"github.com/MKhiriev/go-canvas-sync/internal/event"
	"github.com/MKhiriev/go-canvas-sync/models"
)

// remoteFeed fans remote states out to listeners. A state that arrives
// while nobody listens (the join snapshot, typically) is held and handed to
// the next listener.
type remoteFeed struct {
	mu      sync.Mutex
	emitter *event.Emitter[models.SceneState]
	held    models.SceneState
}

func newRemoteFeed() *remoteFeed {
	return &remoteFeed{emitter: event.NewEmitter[models.SceneState]()}
}

func (f *remoteFeed) Subscribe(fn func(models.SceneState)) event.Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()

	sub := f.emitter.Subscribe(fn)
	if f.held != nil && fn != nil {
		held := f.held
		f.held = nil
		fn(held)
	}
	return sub
}

func (f *remoteFeed) Deliver(state models.SceneState) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.emitter.Len() == 0 {
		f.held = state
		return
	}
	f.emitter.Emit(state)
}

func (f *remoteFeed) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.held = nil
	f.emitter.Clear()
}
