// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package replication

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MKhiriev/go-canvas-sync/internal/event"
	"github.com/MKhiriev/go-canvas-sync/internal/logger"
	"github.com/MKhiriev/go-canvas-sync/models"
)

// Settings tunes the websocket channel.
type Settings struct {
	ReconnectTimeout time.Duration
	PingInterval     time.Duration
	WriteTimeout     time.Duration
	HandshakeTimeout time.Duration
}

func DefaultSettings() Settings {
	return Settings{
		ReconnectTimeout: 2 * time.Second,
		PingInterval:     15 * time.Second,
		WriteTimeout:     5 * time.Second,
		HandshakeTimeout: 10 * time.Second,
	}
}

func (s Settings) readTimeout() time.Duration {
	return 2*s.PingInterval + s.WriteTimeout
}

// WSConnector opens channels against a relay's websocket endpoint. The room
// is appended to the endpoint path: ws://host/ws + room -> ws://host/ws/room.
type WSConnector struct {
	settings Settings
	dialer   *websocket.Dialer
	logger   *logger.Logger
}

func NewWSConnector(settings Settings, logger *logger.Logger) *WSConnector {
	return &WSConnector{
		settings: settings,
		dialer: &websocket.Dialer{
			HandshakeTimeout: settings.HandshakeTimeout,
		},
		logger: logger,
	}
}

// RoomURL builds the websocket URL of room under endpoint. http and https
// endpoints are mapped to ws and wss.
func RoomURL(endpoint, room string) (string, error) {
	if strings.TrimSpace(room) == "" {
		return "", ErrInvalidRoom
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidEndpoint, err)
	}

	switch u.Scheme {
	case "ws", "wss":
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidEndpoint, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: missing host", ErrInvalidEndpoint)
	}

	u.Path = strings.TrimRight(u.Path, "/") + "/" + url.PathEscape(room)
	u.RawPath = ""
	return u.String(), nil
}

// Connect dials the room once. A failed first dial is returned to the
// caller; later connection losses are retried in the background.
func (c *WSConnector) Connect(ctx context.Context, room, endpoint string) (Channel, error) {
	roomURL, err := RoomURL(endpoint, room)
	if err != nil {
		return nil, err
	}

	ch := newWSChannel(room, roomURL, c.settings, c.dialer, c.logger)
	ch.setStatus(models.StatusConnecting)

	ws, err := ch.dial(ctx)
	if err != nil {
		ch.cancel()
		return nil, fmt.Errorf("error dialing %s: %w", roomURL, err)
	}

	go ch.run(ws)
	return ch, nil
}

type wsChannel struct {
	room     string
	url      string
	settings Settings
	dialer   *websocket.Dialer

	ctx    context.Context
	cancel context.CancelFunc

	pendingMu sync.Mutex
	pending   []byte
	kick      chan struct{}

	status       atomic.Value
	closed       atomic.Bool
	closeOnce    sync.Once
	remote       *remoteFeed
	statusEvents *event.Emitter[models.ConnectionStatus]

	logger *logger.Logger
}

func newWSChannel(room, roomURL string, settings Settings, dialer *websocket.Dialer, log *logger.Logger) *wsChannel {
	ctx, cancel := context.WithCancel(context.Background())
	ch := &wsChannel{
		room:         room,
		url:          roomURL,
		settings:     settings,
		dialer:       dialer,
		ctx:          ctx,
		cancel:       cancel,
		kick:         make(chan struct{}, 1),
		remote:       newRemoteFeed(),
		statusEvents: event.NewEmitter[models.ConnectionStatus](),
		logger:       log.WithRoom(room),
	}
	ch.status.Store(models.StatusDisconnected)
	return ch
}

func (ch *wsChannel) Publish(ctx context.Context, state models.SceneState) error {
	if ch.closed.Load() {
		return ErrDisconnected
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	frame, err := json.Marshal(models.Message{
		Type:  models.MessageUpdate,
		Room:  ch.room,
		Key:   models.CanvasDataKey,
		Value: json.RawMessage(state),
	})
	if err != nil {
		return fmt.Errorf("error encoding update: %w", err)
	}

	// only the latest snapshot matters; an unsent older one is replaced
	ch.pendingMu.Lock()
	ch.pending = frame
	ch.pendingMu.Unlock()

	select {
	case ch.kick <- struct{}{}:
	default:
	}
	return nil
}

func (ch *wsChannel) OnRemoteChange(fn func(models.SceneState)) event.Subscription {
	return ch.remote.Subscribe(fn)
}

func (ch *wsChannel) OnStatusChange(fn func(models.ConnectionStatus)) event.Subscription {
	return ch.statusEvents.Subscribe(fn)
}

func (ch *wsChannel) Status() models.ConnectionStatus {
	return ch.status.Load().(models.ConnectionStatus)
}

// Disconnect stops the connection loop without waiting for it, so it is
// safe to call from a channel callback.
func (ch *wsChannel) Disconnect() error {
	ch.closeOnce.Do(func() {
		ch.closed.Store(true)
		ch.cancel()
		ch.setStatus(models.StatusDisconnected)
		ch.remote.Clear()
		ch.statusEvents.Clear()
	})
	return nil
}

func (ch *wsChannel) setStatus(status models.ConnectionStatus) {
	prev := ch.status.Swap(status)
	if prev == status {
		return
	}
	ch.logger.Debug().Str("status", string(status)).Msg("channel status")
	ch.statusEvents.Emit(status)
}

func (ch *wsChannel) dial(ctx context.Context) (*websocket.Conn, error) {
	ws, resp, err := ch.dialer.DialContext(ctx, ch.url, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}
	return ws, nil
}

func (ch *wsChannel) run(ws *websocket.Conn) {
	defer ch.cancel()

	for {
		ch.setStatus(models.StatusConnected)
		reconnect := newReconnect(ch.settings.ReconnectTimeout)
		ch.handle(ws)

		if ch.closed.Load() {
			return
		}
		ch.setStatus(models.StatusDisconnected)

		for {
			select {
			case <-ch.ctx.Done():
				return
			case <-reconnect.After():
			}

			reconnect = newReconnect(ch.settings.ReconnectTimeout)
			ch.setStatus(models.StatusConnecting)

			var err error
			ws, err = ch.dial(ch.ctx)
			if err == nil {
				break
			}
			if ch.closed.Load() {
				return
			}
			ch.logger.Debug().Err(err).Msg("reconnect failed")
			ch.setStatus(models.StatusDisconnected)
		}
	}
}

// handle serves one live connection until it fails or the channel closes.
func (ch *wsChannel) handle(ws *websocket.Conn) {
	defer ws.Close()

	handleCtx, handleCancel := context.WithCancel(ch.ctx)
	defer handleCancel()

	// a reconnect flushes whatever was published while offline
	ch.pendingMu.Lock()
	hasPending := ch.pending != nil
	ch.pendingMu.Unlock()
	if hasPending {
		select {
		case ch.kick <- struct{}{}:
		default:
		}
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		defer handleCancel()
		ch.writeLoop(handleCtx, ws)
	}()

	go func() {
		defer wg.Done()
		defer handleCancel()
		ch.readLoop(handleCtx, ws)
	}()

	<-handleCtx.Done()
	// unblock the reader
	ws.Close()
	wg.Wait()
}

func (ch *wsChannel) writeLoop(ctx context.Context, ws *websocket.Conn) {
	ping := time.NewTicker(ch.settings.PingInterval)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			deadline := time.Now().Add(ch.settings.WriteTimeout)
			_ = ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
			return
		case <-ch.kick:
			ch.pendingMu.Lock()
			frame := ch.pending
			ch.pending = nil
			ch.pendingMu.Unlock()
			if frame == nil {
				continue
			}

			ws.SetWriteDeadline(time.Now().Add(ch.settings.WriteTimeout))
			if err := ws.WriteMessage(websocket.TextMessage, frame); err != nil {
				ch.logger.Debug().Err(err).Msg("write failed")
				ch.pendingMu.Lock()
				if ch.pending == nil {
					ch.pending = frame
				}
				ch.pendingMu.Unlock()
				return
			}
		case <-ping.C:
			deadline := time.Now().Add(ch.settings.WriteTimeout)
			if err := ws.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				ch.logger.Debug().Err(err).Msg("ping failed")
				return
			}
		}
	}
}

func (ch *wsChannel) readLoop(ctx context.Context, ws *websocket.Conn) {
	readTimeout := ch.settings.readTimeout()
	ws.SetReadDeadline(time.Now().Add(readTimeout))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(readTimeout))
	})

	for {
		messageType, data, err := ws.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				ch.logger.Debug().Err(err).Msg("read failed")
			}
			return
		}
		ws.SetReadDeadline(time.Now().Add(readTimeout))

		if messageType != websocket.TextMessage {
			continue
		}

		var msg models.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			ch.logger.Warn().Err(err).Msg("undecodable frame dropped")
			continue
		}

		switch msg.Type {
		case models.MessageState, models.MessageUpdate:
			if msg.Key != models.CanvasDataKey || len(msg.Value) == 0 || string(msg.Value) == "null" {
				continue
			}
			if ch.closed.Load() {
				return
			}
			ch.remote.Deliver(models.SceneState(msg.Value).Clone())
		case models.MessageError:
			ch.logger.Warn().Str("error", msg.Error).Msg("relay reported an error")
		}
	}
}
