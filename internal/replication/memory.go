// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package replication

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-canvas-sync/internal/event"
	"github.com/MKhiriev/go-canvas-sync/internal/hub"
	"github.com/MKhiriev/go-canvas-sync/internal/logger"
	"github.com/MKhiriev/go-canvas-sync/internal/utils"
	"github.com/MKhiriev/go-canvas-sync/models"
)

// MemoryConnector attaches channels directly to an in-process hub. The
// endpoint is ignored. Deliveries are asynchronous, exactly like a network
// round trip, so a publisher also receives its own write back.
type MemoryConnector struct {
	hub    *hub.Hub
	logger *logger.Logger
}

func NewMemoryConnector(h *hub.Hub, logger *logger.Logger) *MemoryConnector {
	return &MemoryConnector{hub: h, logger: logger}
}

func (c *MemoryConnector) Connect(ctx context.Context, room, _ string) (Channel, error) {
	if room == "" {
		return nil, ErrInvalidRoom
	}

	ch := &memoryChannel{
		id:           utils.NewID(),
		room:         room,
		hub:          c.hub,
		wake:         make(chan struct{}, 1),
		done:         make(chan struct{}),
		remote:       newRemoteFeed(),
		statusEvents: event.NewEmitter[models.ConnectionStatus](),
		logger:       c.logger.WithRoom(room),
	}
	go ch.deliver()

	if err := c.hub.Join(ctx, room, ch); err != nil {
		close(ch.done)
		return nil, err
	}
	return ch, nil
}

type memoryChannel struct {
	id   string
	room string
	hub  *hub.Hub

	mu     sync.Mutex
	queue  []models.Message
	closed bool
	wake   chan struct{}
	done   chan struct{}

	remote       *remoteFeed
	statusEvents *event.Emitter[models.ConnectionStatus]

	logger *logger.Logger
}

func (ch *memoryChannel) ID() string { return ch.id }

// Send queues msg for the delivery goroutine.
func (ch *memoryChannel) Send(msg models.Message) bool {
	ch.mu.Lock()
	if ch.closed {
		ch.mu.Unlock()
		return false
	}
	ch.queue = append(ch.queue, msg)
	ch.mu.Unlock()

	select {
	case ch.wake <- struct{}{}:
	default:
	}
	return true
}

func (ch *memoryChannel) deliver() {
	for {
		select {
		case <-ch.done:
			return
		case <-ch.wake:
		}

		ch.mu.Lock()
		batch := ch.queue
		ch.queue = nil
		ch.mu.Unlock()

		for _, msg := range batch {
			if msg.Key != models.CanvasDataKey || len(msg.Value) == 0 {
				continue
			}
			select {
			case <-ch.done:
				return
			default:
			}
			ch.remote.Deliver(models.SceneState(msg.Value).Clone())
		}
	}
}

func (ch *memoryChannel) Publish(ctx context.Context, state models.SceneState) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ch.mu.Lock()
	closed := ch.closed
	ch.mu.Unlock()
	if closed {
		return ErrDisconnected
	}

	_, err := ch.hub.Update(ch.room, ch, models.CanvasDataKey, []byte(state))
	return err
}

func (ch *memoryChannel) OnRemoteChange(fn func(models.SceneState)) event.Subscription {
	return ch.remote.Subscribe(fn)
}

func (ch *memoryChannel) OnStatusChange(fn func(models.ConnectionStatus)) event.Subscription {
	return ch.statusEvents.Subscribe(fn)
}

func (ch *memoryChannel) Status() models.ConnectionStatus {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if ch.closed {
		return models.StatusDisconnected
	}
	return models.StatusConnected
}

func (ch *memoryChannel) Disconnect() error {
	ch.mu.Lock()
	if ch.closed {
		ch.mu.Unlock()
		return nil
	}
	ch.closed = true
	ch.queue = nil
	ch.mu.Unlock()

	close(ch.done)
	ch.hub.Leave(ch.room, ch)
	ch.statusEvents.Emit(models.StatusDisconnected)
	ch.remote.Clear()
	ch.statusEvents.Clear()
	return nil
}
