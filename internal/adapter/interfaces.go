// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client's REST view of the relay server.
//
// [RelayAdapter] decouples the client from the HTTP transport. Error values
// defined in errors.go are mapped from HTTP status codes by mapHTTPError so
// callers can match them with [errors.Is] (e.g. [ErrNotFound] for 404).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-canvas-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/relay_adapter_mock.go -package=mock

// RelayAdapter queries the relay's REST API.
type RelayAdapter interface {
	// ListRooms returns the rooms currently held by the relay.
	ListRooms(ctx context.Context) ([]models.RoomInfo, error)

	// GetDocument returns every slot of room's replicated document.
	GetDocument(ctx context.Context, room string) (models.DocumentResponse, error)

	// Version returns the relay's build information.
	Version(ctx context.Context) (models.VersionResponse, error)
}
