// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package engine

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/MKhiriev/go-canvas-sync/internal/event"
	"github.com/MKhiriev/go-canvas-sync/internal/replication"
	"github.com/MKhiriev/go-canvas-sync/models"
)

// fakeChannel records publishes and lets tests inject remote changes.
type fakeChannel struct {
	mu        sync.Mutex
	published []models.SceneState
	echo      bool
	failWith  error

	remote       *event.Emitter[models.SceneState]
	statusEvents *event.Emitter[models.ConnectionStatus]
	disconnects  atomic.Int64
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{
		remote:       event.NewEmitter[models.SceneState](),
		statusEvents: event.NewEmitter[models.ConnectionStatus](),
	}
}

func (f *fakeChannel) Publish(_ context.Context, state models.SceneState) error {
	f.mu.Lock()
	if f.failWith != nil {
		err := f.failWith
		f.mu.Unlock()
		return err
	}
	f.published = append(f.published, state.Clone())
	echo := f.echo
	f.mu.Unlock()

	if echo {
		go f.deliver(state.Clone())
	}
	return nil
}

func (f *fakeChannel) OnRemoteChange(fn func(models.SceneState)) event.Subscription {
	return f.remote.Subscribe(fn)
}

func (f *fakeChannel) OnStatusChange(fn func(models.ConnectionStatus)) event.Subscription {
	return f.statusEvents.Subscribe(fn)
}

func (f *fakeChannel) Status() models.ConnectionStatus {
	return models.StatusConnecting
}

func (f *fakeChannel) Disconnect() error {
	f.disconnects.Add(1)
	return nil
}

func (f *fakeChannel) deliver(state models.SceneState) {
	f.remote.Emit(state)
}

func (f *fakeChannel) setFail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failWith = err
}

func (f *fakeChannel) publishCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.published)
}

func (f *fakeChannel) lastPublished() models.SceneState {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.published) == 0 {
		return nil
	}
	return f.published[len(f.published)-1]
}

type fakeConnector struct {
	channel *fakeChannel
	err     error
	rooms   []string
}

func (c *fakeConnector) Connect(_ context.Context, room, _ string) (replication.Channel, error) {
	c.rooms = append(c.rooms, room)
	if c.err != nil {
		return nil, c.err
	}
	return c.channel, nil
}

// stubScene is a scene whose Restore behaviour is scripted.
type stubScene struct {
	mu        sync.Mutex
	state     models.SceneState
	restoreFn func(models.SceneState) error
	mutations *event.Emitter[models.MutationEvent]
}

func newStubScene(state string) *stubScene {
	return &stubScene{
		state:     models.SceneState(state),
		mutations: event.NewEmitter[models.MutationEvent](),
	}
}

func (s *stubScene) Snapshot() (models.SceneState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone(), nil
}

func (s *stubScene) Restore(state models.SceneState) error {
	s.mu.Lock()
	fn := s.restoreFn
	s.mu.Unlock()

	if fn != nil {
		if err := fn(state); err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.state = state.Clone()
	s.mu.Unlock()
	return nil
}

func (s *stubScene) OnMutation(fn func(models.MutationEvent)) event.Subscription {
	return s.mutations.Subscribe(fn)
}

func (s *stubScene) set(state string) {
	s.mu.Lock()
	s.state = models.SceneState(state)
	s.mu.Unlock()
	s.mutations.Emit(models.MutationEvent{Kind: models.MutationObjectModified})
}
