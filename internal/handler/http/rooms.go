// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-canvas-sync/internal/hub"
	"github.com/MKhiriev/go-canvas-sync/internal/logger"
	"github.com/MKhiriev/go-canvas-sync/internal/utils"
	"github.com/MKhiriev/go-canvas-sync/models"
)

func (h *Handler) listRooms(w http.ResponseWriter, r *http.Request) {
	rooms := h.hub.Rooms()

	if _, err := utils.WriteJSON(w, models.RoomsResponse{Rooms: rooms, Length: len(rooms)}, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.listRooms").Msg("error writing response")
	}
}

// getDocument serves the in-memory document of an active room and falls
// back to the persisted one for rooms the hub has evicted.
func (h *Handler) getDocument(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	room := chi.URLParam(r, "room")

	doc, err := h.hub.Document(room)
	if errors.Is(err, hub.ErrRoomNotFound) {
		doc, err = h.persistedDocument(r, room)
	}
	if err != nil {
		status := statusFromError(err)
		if status >= http.StatusInternalServerError {
			log.Err(err).Str("func", "*Handler.getDocument").Str("room", room).Msg("error getting document")
		}
		utils.WriteError(w, err.Error(), status)
		return
	}

	if _, err = utils.WriteJSON(w, doc, http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.getDocument").Msg("error writing response")
	}
}

func (h *Handler) persistedDocument(r *http.Request, room string) (models.DocumentResponse, error) {
	entries, err := h.services.DocumentService.LoadRoom(r.Context(), room)
	if err != nil {
		return models.DocumentResponse{}, err
	}
	if len(entries) == 0 {
		return models.DocumentResponse{}, hub.ErrRoomNotFound
	}
	return models.DocumentResponse{Room: room, Entries: entries}, nil
}
