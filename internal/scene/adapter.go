// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package scene holds the drawing surface seen by the sync engine: the
// Adapter contract and Canvas, an in-memory implementation that backs the
// terminal client.
package scene

import (
	"github.com/MKhiriev/go-canvas-sync/internal/event"
	"github.com/MKhiriev/go-canvas-sync/models"
)

//go:generate mockgen -source=adapter.go -destination=../mock/scene_mock.go -package=mock

// Adapter wraps a drawing surface.
//
// Snapshot must reflect the current scene exactly and has no side effects.
// Restore replaces the whole scene atomically: on error the previous content
// stays in place. OnMutation fires on every local edit without a payload
// beyond the edit kind; listeners call Snapshot themselves.
type Adapter interface {
	Snapshot() (models.SceneState, error)
	Restore(state models.SceneState) error
	OnMutation(fn func(models.MutationEvent)) event.Subscription
}

// Loader is implemented by adapters that can replace the scene as a local
// edit, so the new content is announced through OnMutation even when it
// holds no objects.
type Loader interface {
	Load(state models.SceneState) error
}
