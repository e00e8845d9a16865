// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/MKhiriev/go-canvas-sync/internal/event"
	"github.com/MKhiriev/go-canvas-sync/internal/logger"
	"github.com/MKhiriev/go-canvas-sync/internal/replication"
	"github.com/MKhiriev/go-canvas-sync/internal/scene"
	"github.com/MKhiriev/go-canvas-sync/internal/utils"
	"github.com/MKhiriev/go-canvas-sync/models"
)

const remoteQueueSize = 64

// Stats counts what a session did with the events it saw.
type Stats struct {
	Published      int64
	PublishFailed  int64
	Duplicates     int64
	EchoesDropped  int64
	RemoteApplied  int64
	RemoteSkipped  int64
	RemoteRejected int64
}

type counters struct {
	published, publishFailed, duplicates, echoes atomic.Int64
	remoteApplied, remoteSkipped, remoteRejected atomic.Int64
}

// Session binds one scene to one room. It is created by [Engine.Start] and
// torn down by Stop.
//
// The fingerprint of the last state sent or applied is owned by the session
// goroutine. Mutation callbacks, channel callbacks and Stop only talk to it
// through channels and atomics.
type Session struct {
	id       string
	room     string
	endpoint string
	cfg      Config

	scene   scene.Adapter
	channel replication.Channel

	detector  *ChangeDetector
	debouncer *Debouncer
	guard     *LoopGuard

	state  atomic.Value // models.SessionState
	status atomic.Value // models.ConnectionStatus

	lastFingerprint models.Fingerprint

	mutations chan struct{}
	flush     chan struct{}
	remote    chan models.SceneState
	done      chan struct{}
	loopDone  chan struct{}

	disposed    atomic.Bool
	dispatching atomic.Bool
	stopping    atomic.Bool
	subs        []event.Subscription

	statusEvents *event.Emitter[models.ConnectionStatus]
	errorEvents  *event.Emitter[error]
	stats        counters

	logger *logger.Logger
}

func newSession(room, endpoint string, adapter scene.Adapter, cfg Config, log *logger.Logger) *Session {
	id := utils.NewID()
	s := &Session{
		id:           id,
		room:         room,
		endpoint:     endpoint,
		cfg:          cfg,
		scene:        adapter,
		detector:     NewChangeDetector(),
		debouncer:    NewDebouncer(cfg.DebounceWindow),
		guard:        NewLoopGuard(cfg.SettleDelay),
		mutations:    make(chan struct{}, 1),
		flush:        make(chan struct{}, 1),
		remote:       make(chan models.SceneState, remoteQueueSize),
		done:         make(chan struct{}),
		loopDone:     make(chan struct{}),
		statusEvents: event.NewEmitter[models.ConnectionStatus](),
		errorEvents:  event.NewEmitter[error](),
		logger:       &logger.Logger{Logger: log.WithRoom(room).With().Str("session", id).Logger()},
	}
	s.state.Store(models.SessionUninitialized)
	s.status.Store(models.StatusDisconnected)
	return s
}

func (s *Session) init(ctx context.Context, connector replication.Connector) (err error) {
	s.state.Store(models.SessionInitializing)

	defer func() {
		if err != nil {
			s.abort()
			s.logger.Err(err).Msg("sync session failed to start")
			err = fmt.Errorf("%w: %w", ErrInitialization, err)
		}
	}()

	if s.scene == nil {
		return ErrNoScene
	}
	if err := validateTarget(s.room, s.endpoint); err != nil {
		return err
	}

	channel, err := connector.Connect(ctx, s.room, s.endpoint)
	if err != nil {
		return fmt.Errorf("error connecting to %s: %w", s.endpoint, err)
	}
	s.channel = channel
	s.status.Store(channel.Status())

	s.subs = append(s.subs,
		s.channel.OnStatusChange(s.onStatusChange),
		s.channel.OnRemoteChange(s.onRemoteChange),
		s.scene.OnMutation(s.onLocalMutation),
	)

	go s.run()

	s.state.Store(models.SessionActive)
	s.logger.Info().Str("endpoint", s.endpoint).Msg("sync session started")
	return nil
}

// abort releases whatever init managed to build.
func (s *Session) abort() {
	s.disposed.Store(true)
	for _, sub := range s.subs {
		sub.Unsubscribe()
	}
	s.subs = nil
	if s.channel != nil {
		if err := s.channel.Disconnect(); err != nil {
			s.logger.Debug().Err(err).Msg("error disconnecting channel after failed start")
		}
	}
	s.debouncer.Stop()
	s.guard.Stop()
	s.scene = nil
	s.channel = nil
	close(s.loopDone)
	s.state.Store(models.SessionDisposed)
}

// ID identifies the session in logs.
func (s *Session) ID() string { return s.id }

// Room returns the room the session is bound to.
func (s *Session) Room() string { return s.room }

// Endpoint returns the replication endpoint.
func (s *Session) Endpoint() string { return s.endpoint }

// State returns the lifecycle state.
func (s *Session) State() models.SessionState {
	return s.state.Load().(models.SessionState)
}

// Status returns the last connectivity state reported by the channel.
func (s *Session) Status() models.ConnectionStatus {
	return s.status.Load().(models.ConnectionStatus)
}

// OnStatusChange forwards channel connectivity changes.
func (s *Session) OnStatusChange(fn func(models.ConnectionStatus)) event.Subscription {
	return s.statusEvents.Subscribe(fn)
}

// OnError reports recovered failures: malformed or rejected remote
// snapshots and failed publishes. Handlers run on the session goroutine.
func (s *Session) OnError(fn func(error)) event.Subscription {
	return s.errorEvents.Subscribe(fn)
}

// IsApplyingRemote reports whether the loop guard is currently raised.
func (s *Session) IsApplyingRemote() bool {
	return s.guard.IsApplyingRemote()
}

// Stats returns a snapshot of the session counters.
func (s *Session) Stats() Stats {
	return Stats{
		Published:      s.stats.published.Load(),
		PublishFailed:  s.stats.publishFailed.Load(),
		Duplicates:     s.stats.duplicates.Load(),
		EchoesDropped:  s.stats.echoes.Load(),
		RemoteApplied:  s.stats.remoteApplied.Load(),
		RemoteSkipped:  s.stats.remoteSkipped.Load(),
		RemoteRejected: s.stats.remoteRejected.Load(),
	}
}

// Done is closed once the session goroutine has exited.
func (s *Session) Done() <-chan struct{} {
	return s.loopDone
}

// Stop tears the session down: the pending publish is cancelled, listeners
// are removed, the channel is disconnected and the scene is released. A
// remote apply already in progress is allowed to finish first. Called while
// an error handler is running, Stop returns at once and the channel is
// disconnected after the handler returns. Calling Stop again is a no-op.
func (s *Session) Stop() error {
	// a second caller returns at once; waiting here would deadlock when the
	// first Stop is blocked on an error handler that calls Stop itself
	if !s.stopping.CompareAndSwap(false, true) || s.State() == models.SessionDisposed {
		return nil
	}

	s.disposed.Store(true)
	s.debouncer.Stop()
	for _, sub := range s.subs {
		sub.Unsubscribe()
	}
	close(s.done)

	// an error handler is running on the session goroutine, possibly the
	// caller itself: finish once the loop has exited
	if s.dispatching.Load() {
		go func() {
			<-s.loopDone
			if err := s.finish(); err != nil {
				s.logger.Error().Err(err).Msg("sync session teardown failed")
			}
		}()
		return nil
	}

	<-s.loopDone
	return s.finish()
}

// finish releases what the session goroutine used. It runs only after the
// loop has exited.
func (s *Session) finish() error {
	var err error
	s.guard.Stop()
	if derr := s.channel.Disconnect(); derr != nil {
		err = fmt.Errorf("error disconnecting channel: %w", derr)
	}

	s.statusEvents.Clear()
	s.errorEvents.Clear()
	s.state.Store(models.SessionDisposed)
	s.logger.Info().Interface("stats", s.Stats()).Msg("sync session stopped")
	return err
}

func (s *Session) run() {
	defer func() {
		s.scene = nil
		close(s.loopDone)
	}()

	for {
		select {
		case <-s.done:
			return
		case <-s.mutations:
			s.handleLocalMutation()
		case <-s.flush:
			s.publishCurrentState()
		case state := <-s.remote:
			s.applyRemote(state)
		}
	}
}

// onLocalMutation runs on whatever goroutine the scene emits from,
// including the session goroutine itself during a restore.
func (s *Session) onLocalMutation(ev models.MutationEvent) {
	if s.disposed.Load() {
		return
	}
	if s.guard.IsApplyingRemote() {
		s.stats.echoes.Add(1)
		s.logger.Debug().Str("kind", string(ev.Kind)).Msg("mutation during remote apply ignored")
		return
	}

	select {
	case s.mutations <- struct{}{}:
	default:
	}
}

func (s *Session) onRemoteChange(state models.SceneState) {
	if s.disposed.Load() {
		return
	}

	select {
	case s.remote <- state.Clone():
	case <-s.done:
	}
}

func (s *Session) onStatusChange(status models.ConnectionStatus) {
	s.status.Store(status)
	s.logger.Info().Str("status", string(status)).Msg("replication status changed")
	s.statusEvents.Emit(status)
}

func (s *Session) handleLocalMutation() {
	if s.disposed.Load() {
		return
	}
	if s.guard.IsApplyingRemote() {
		s.stats.echoes.Add(1)
		return
	}

	s.debouncer.Schedule(func() {
		select {
		case s.flush <- struct{}{}:
		default:
		}
	})
}

func (s *Session) publishCurrentState() {
	if s.disposed.Load() {
		return
	}

	state, err := s.scene.Snapshot()
	if err != nil {
		s.logger.Error().Err(err).Msg("error taking scene snapshot")
		s.report(err)
		return
	}

	fp := s.detector.Fingerprint(state)
	if s.detector.IsDuplicate(fp, s.lastFingerprint) {
		s.stats.duplicates.Add(1)
		s.logger.Debug().Str("fingerprint", string(fp)).Msg("unchanged scene, publish skipped")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.PublishTimeout)
	defer cancel()

	// the baseline moves only once the state reached the channel, so the
	// next flush retries an unsent state
	if err := s.channel.Publish(ctx, state); err != nil {
		s.stats.publishFailed.Add(1)
		s.logger.Debug().Err(err).Msg("publish failed, dropped")
		s.report(fmt.Errorf("%w: %w", ErrPublish, err))
		return
	}
	s.lastFingerprint = fp

	s.stats.published.Add(1)
	s.logger.Debug().Str("fingerprint", string(fp)).Int("bytes", len(state)).Msg("scene published")
}

func (s *Session) applyRemote(state models.SceneState) {
	if s.disposed.Load() {
		return
	}

	fp := s.detector.Fingerprint(state)
	if s.detector.IsDuplicate(fp, s.lastFingerprint) {
		s.stats.remoteSkipped.Add(1)
		s.logger.Debug().Str("fingerprint", string(fp)).Msg("remote state matches local, skipped")
		return
	}
	s.lastFingerprint = fp

	adapter := s.scene
	err := s.guard.WithRemoteApply(func() error {
		return restore(adapter, state)
	})

	// Stop may have run while the restore was in flight.
	if s.disposed.Load() {
		return
	}

	if err != nil {
		s.stats.remoteRejected.Add(1)
		if errors.Is(err, scene.ErrDeserialization) {
			s.logger.Warn().Err(err).Msg("malformed remote state ignored")
		} else {
			s.logger.Error().Err(err).Msg("scene rejected remote state")
		}
		s.report(err)
		return
	}

	s.stats.remoteApplied.Add(1)

	// the scene may normalize what it loaded; remember the form it will
	// produce so the next flush does not echo it
	if restored, err := adapter.Snapshot(); err == nil {
		s.lastFingerprint = s.detector.Fingerprint(restored)
	}
	s.logger.Debug().Str("fingerprint", string(fp)).Msg("remote state applied")
}

func restore(adapter scene.Adapter, state models.SceneState) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic during restore: %v", scene.ErrRestore, r)
		}
	}()
	return adapter.Restore(state)
}

func (s *Session) report(err error) {
	s.dispatching.Store(true)
	defer s.dispatching.Store(false)
	s.errorEvents.Emit(err)
}
