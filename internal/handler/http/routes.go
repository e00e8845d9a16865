// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	// replication channel
	router.Get("/ws/{room}", h.serveWS)

	router.Route("/api", func(r chi.Router) {
		if h.settings.RequestTimeout > 0 {
			r.Use(middleware.Timeout(h.settings.RequestTimeout))
		}
		r.Get("/rooms", h.listRooms)
		r.Get("/rooms/{room}/document", h.getDocument)
		r.Get("/version", h.getServerVersion)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
