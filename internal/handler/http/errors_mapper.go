// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-canvas-sync/internal/hub"
	"github.com/MKhiriev/go-canvas-sync/internal/service"
	"github.com/MKhiriev/go-canvas-sync/internal/store"
)

var errorStatusMap = map[error]int{
	hub.ErrEmptyRoom:    http.StatusBadRequest,
	hub.ErrEmptyKey:     http.StatusBadRequest,
	hub.ErrInvalidValue: http.StatusBadRequest,
	hub.ErrRoomNotFound: http.StatusNotFound,
	hub.ErrLoadRoom:     http.StatusServiceUnavailable,

	service.ErrEmptyRoom: http.StatusBadRequest,

	store.ErrDocumentNotFound: http.StatusNotFound,
	store.ErrRetryable:        http.StatusServiceUnavailable,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
