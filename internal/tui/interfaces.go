// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/MKhiriev/go-canvas-sync/internal/engine"
	"github.com/MKhiriev/go-canvas-sync/models"
)

// SyncSession is the part of a sync session the status bar reads.
type SyncSession interface {
	Room() string
	Status() models.ConnectionStatus
	Stats() engine.Stats
}
