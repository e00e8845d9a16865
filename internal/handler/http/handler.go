// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MKhiriev/go-canvas-sync/internal/hub"
	"github.com/MKhiriev/go-canvas-sync/internal/logger"
	"github.com/MKhiriev/go-canvas-sync/internal/service"
)

// Settings tunes the relay's HTTP transport.
type Settings struct {
	// PingInterval is the websocket keepalive period. The read deadline of a
	// connection is twice this plus WriteTimeout.
	PingInterval time.Duration
	// WriteTimeout bounds a single websocket frame write.
	WriteTimeout time.Duration
	// RequestTimeout bounds REST requests. Zero disables the limit.
	RequestTimeout time.Duration
}

func (s Settings) withDefaults() Settings {
	if s.PingInterval <= 0 {
		s.PingInterval = 15 * time.Second
	}
	if s.WriteTimeout <= 0 {
		s.WriteTimeout = 5 * time.Second
	}
	return s
}

func (s Settings) readTimeout() time.Duration {
	return 2*s.PingInterval + s.WriteTimeout
}

type Handler struct {
	hub      *hub.Hub
	services *service.ServerServices
	settings Settings
	upgrader websocket.Upgrader

	logger *logger.Logger
}

func NewHandler(h *hub.Hub, services *service.ServerServices, settings Settings, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		hub:      h,
		services: services,
		settings: settings.withDefaults(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// participants are terminal and browser clients of any origin
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}
