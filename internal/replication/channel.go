// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package replication connects a sync session to the shared document of a
// room. A Channel publishes whole-scene snapshots into the document's
// canvasData slot and reports every change of that slot, including the
// participant's own writes.
package replication

import (
	"context"

	"github.com/MKhiriev/go-canvas-sync/internal/event"
	"github.com/MKhiriev/go-canvas-sync/models"
)

//go:generate mockgen -source=channel.go -destination=../mock/replication_mock.go -package=mock

// Channel is a live connection to one room's shared document.
type Channel interface {
	// Publish writes state into the shared slot. It does not wait for the
	// write to reach other participants.
	Publish(ctx context.Context, state models.SceneState) error

	// OnRemoteChange fires whenever the shared slot changes.
	OnRemoteChange(fn func(models.SceneState)) event.Subscription

	// OnStatusChange fires on every connectivity transition.
	OnStatusChange(fn func(models.ConnectionStatus)) event.Subscription

	// Status returns the current connectivity state.
	Status() models.ConnectionStatus

	// Disconnect releases all resources. Calling it again is a no-op.
	Disconnect() error
}

// Connector opens channels.
type Connector interface {
	Connect(ctx context.Context, room, endpoint string) (Channel, error)
}
