// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-canvas-sync/internal/logger"
)

const defaultIdleRoomTTL = 10 * time.Minute

// ReaperWorker evicts rooms that stayed empty and clean for longer than
// the idle TTL. It checks at a quarter of the TTL.
type ReaperWorker struct {
	tickerJob

	rooms  IdleEvicter
	ttl    time.Duration
	logger *logger.Logger
}

func NewReaperWorker(rooms IdleEvicter, ttl time.Duration, logger *logger.Logger) *ReaperWorker {
	if ttl <= 0 {
		ttl = defaultIdleRoomTTL
	}

	w := &ReaperWorker{
		rooms:  rooms,
		ttl:    ttl,
		logger: logger,
	}
	w.tickerJob = tickerJob{interval: ttl / 4, tick: func(context.Context) { w.Reap() }}
	return w
}

// Reap evicts idle rooms once and returns their names.
func (w *ReaperWorker) Reap() []string {
	evicted := w.rooms.EvictIdle(w.ttl)
	if len(evicted) > 0 {
		w.logger.Info().Strs("rooms", evicted).Msg("idle rooms evicted")
	}
	return evicted
}
