// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the relay's periodic background jobs: persisting
// dirty room documents and evicting idle rooms.
package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-canvas-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/workers_mock.go -package=mock

// Worker is a background job. Start launches it and returns immediately;
// Stop blocks until it has exited.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}

// DirtySource hands out slots written since their last flush.
type DirtySource interface {
	Dirty() []models.DocumentEntry
	MarkClean(entry models.DocumentEntry)
}

// IdleEvicter drops rooms that have been idle for at least ttl.
type IdleEvicter interface {
	EvictIdle(ttl time.Duration) []string
}
