// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"

	"github.com/MKhiriev/go-canvas-sync/internal/config"
	"github.com/MKhiriev/go-canvas-sync/internal/hub"
	"github.com/MKhiriev/go-canvas-sync/internal/logger"
	"github.com/MKhiriev/go-canvas-sync/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewServerWorkers builds the relay's flush and reaper workers over h.
func NewServerWorkers(h *hub.Hub, documents service.DocumentService, cfg config.Workers, logger *logger.Logger) *Workers {
	return &Workers{workers: []Worker{
		NewFlushWorker(h, documents, cfg.FlushInterval, logger),
		NewReaperWorker(h, cfg.IdleRoomTTL, logger),
	}}
}

func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
}

// Stop stops the workers in start order.
func (w *Workers) Stop() {
	for _, worker := range w.workers {
		worker.Stop()
	}
}
