// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-canvas-sync/internal/logger"
	"github.com/MKhiriev/go-canvas-sync/internal/utils"
	"github.com/MKhiriev/go-canvas-sync/models"
)

const (
	// maxFrameSize bounds an inbound frame. Scenes embed images as data
	// URLs, so snapshots can be large.
	maxFrameSize = 16 << 20
	sendBuffer   = 64
)

// wsParticipant is a hub participant backed by a websocket connection.
// Messages are queued on send and written by writePump.
type wsParticipant struct {
	id   string
	send chan models.Message

	done      chan struct{}
	closeOnce sync.Once
}

func newWSParticipant(id string) *wsParticipant {
	return &wsParticipant{
		id:   id,
		send: make(chan models.Message, sendBuffer),
		done: make(chan struct{}),
	}
}

func (p *wsParticipant) ID() string {
	return p.id
}

// Send never blocks. A participant whose queue is full is closed; it
// reconnects and receives a fresh snapshot.
func (p *wsParticipant) Send(msg models.Message) bool {
	select {
	case <-p.done:
		return false
	default:
	}

	select {
	case p.send <- msg:
		return true
	default:
		p.close()
		return false
	}
}

func (p *wsParticipant) close() {
	p.closeOnce.Do(func() { close(p.done) })
}

// serveWS upgrades the request and attaches the connection to the room
// named in the path until either side closes it.
func (h *Handler) serveWS(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	room := chi.URLParam(r, "room")
	if strings.TrimSpace(room) == "" {
		utils.WriteError(w, "room name is empty", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already answered with an HTTP error
		log.Debug().Err(err).Str("room", room).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	// X-Trace-ID is client supplied; it tags the request log but never
	// names the participant
	p := newWSParticipant(uuid.NewString())
	log = log.WithRoom(room)
	log.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("participant", p.ID())
	})

	if err = h.hub.Join(r.Context(), room, p); err != nil {
		log.Err(err).Msg("join failed")
		h.writeClose(conn, websocket.CloseInternalServerErr, "room unavailable")
		return
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		h.writePump(conn, p, log)
	}()

	h.readPump(conn, room, p, log)

	h.hub.Leave(room, p)
	p.close()
	wg.Wait()
}

func (h *Handler) readPump(conn *websocket.Conn, room string, p *wsParticipant, log *logger.Logger) {
	conn.SetReadLimit(maxFrameSize)
	extend := func() error {
		return conn.SetReadDeadline(time.Now().Add(h.settings.readTimeout()))
	}
	_ = extend()
	conn.SetPongHandler(func(string) error { return extend() })
	conn.SetPingHandler(func(data string) error {
		_ = extend()
		err := conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(h.settings.WriteTimeout))
		if errors.Is(err, websocket.ErrCloseSent) {
			return nil
		}
		return err
	})

	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Msg("connection lost")
			}
			return
		}
		_ = extend()

		var msg models.Message
		if err = json.Unmarshal(frame, &msg); err != nil {
			p.Send(errorMessage(room, errMalformedMessage))
			continue
		}

		switch msg.Type {
		case models.MessageUpdate:
			if _, err = h.hub.Update(room, p, msg.Key, msg.Value); err != nil {
				log.Debug().Err(err).Str("slot", msg.Key).Msg("update rejected")
				p.Send(errorMessage(room, err))
			}
		default:
			p.Send(errorMessage(room, errUnsupportedType))
		}
	}
}

func (h *Handler) writePump(conn *websocket.Conn, p *wsParticipant, log *logger.Logger) {
	ticker := time.NewTicker(h.settings.PingInterval)
	defer ticker.Stop()
	// unblocks readPump when the participant is dropped
	defer conn.Close()

	for {
		select {
		case msg := <-p.send:
			_ = conn.SetWriteDeadline(time.Now().Add(h.settings.WriteTimeout))
			if err := conn.WriteJSON(msg); err != nil {
				log.Debug().Err(err).Msg("write failed")
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(h.settings.WriteTimeout)); err != nil {
				log.Debug().Err(err).Msg("ping failed")
				return
			}
		case <-p.done:
			h.writeClose(conn, websocket.CloseNormalClosure, "")
			return
		}
	}
}

func (h *Handler) writeClose(conn *websocket.Conn, code int, text string) {
	_ = conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(code, text),
		time.Now().Add(h.settings.WriteTimeout),
	)
}

func errorMessage(room string, err error) models.Message {
	return models.Message{
		Type:  models.MessageError,
		Room:  room,
		Error: err.Error(),
	}
}
