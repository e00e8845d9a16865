// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-canvas-sync/internal/logger"
	"github.com/MKhiriev/go-canvas-sync/internal/service"
	"github.com/MKhiriev/go-canvas-sync/internal/store"
)

const (
	defaultFlushInterval = 5 * time.Second
	finalFlushTimeout    = 10 * time.Second
)

// FlushWorker periodically persists dirty slots. Slots are marked clean
// only after a successful flush, so a failed batch is retried on the next
// tick.
type FlushWorker struct {
	tickerJob

	source    DirtySource
	documents service.DocumentService
	logger    *logger.Logger
}

func NewFlushWorker(source DirtySource, documents service.DocumentService, interval time.Duration, logger *logger.Logger) *FlushWorker {
	if interval <= 0 {
		interval = defaultFlushInterval
	}

	w := &FlushWorker{
		source:    source,
		documents: documents,
		logger:    logger,
	}
	w.tickerJob = tickerJob{interval: interval, tick: func(ctx context.Context) { _ = w.Flush(ctx) }}
	return w
}

// Stop stops the ticker and flushes whatever is still dirty.
func (w *FlushWorker) Stop() {
	w.tickerJob.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), finalFlushTimeout)
	defer cancel()
	if err := w.Flush(ctx); err != nil {
		w.logger.Error().Err(err).Msg("final flush failed, unsaved changes are lost")
	}
}

// Flush persists the current dirty slots once.
func (w *FlushWorker) Flush(ctx context.Context) error {
	entries := w.source.Dirty()
	if len(entries) == 0 {
		return nil
	}

	if err := w.documents.Flush(ctx, entries...); err != nil {
		if errors.Is(err, store.ErrRetryable) {
			w.logger.Warn().Err(err).Int("slots", len(entries)).Msg("flush postponed")
		} else {
			w.logger.Error().Err(err).Int("slots", len(entries)).Msg("flush failed")
		}
		return err
	}

	for _, entry := range entries {
		w.source.MarkClean(entry)
	}
	w.logger.Debug().Int("slots", len(entries)).Msg("documents flushed")
	return nil
}
