// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package hub

import (
	"context"

	"github.com/MKhiriev/go-canvas-sync/models"
)

// Participant is one connection attached to a room. Send must not block:
// it returns false when the message could not be queued.
type Participant interface {
	ID() string
	Send(msg models.Message) bool
}

// DocumentLoader restores a room's persisted slots on first join.
//
//go:generate mockgen -source=interfaces.go -destination=../mock/hub_mock.go -package=mock
type DocumentLoader interface {
	LoadRoom(ctx context.Context, room string) ([]models.DocumentEntry, error)
}
