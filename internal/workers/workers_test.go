// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-canvas-sync/internal/config"
	"github.com/MKhiriev/go-canvas-sync/internal/hub"
	"github.com/MKhiriev/go-canvas-sync/internal/logger"
	"github.com/MKhiriev/go-canvas-sync/internal/mock"
	"github.com/MKhiriev/go-canvas-sync/internal/store"
	"github.com/MKhiriev/go-canvas-sync/models"
)

func entry(room string, version int64) models.DocumentEntry {
	return models.DocumentEntry{Room: room, Key: models.CanvasDataKey, Value: json.RawMessage(`{}`), Version: version}
}

func TestFlushWorker_Flush(t *testing.T) {
	e1, e2 := entry("a", 1), entry("b", 3)

	tests := []struct {
		name      string
		dirty     []models.DocumentEntry
		flushErr  error
		wantFlush bool
		wantClean bool
	}{
		{name: "nothing dirty"},
		{name: "flushed and marked clean", dirty: []models.DocumentEntry{e1, e2}, wantFlush: true, wantClean: true},
		{name: "retryable failure keeps slots dirty", dirty: []models.DocumentEntry{e1}, flushErr: fmt.Errorf("busy: %w", store.ErrRetryable), wantFlush: true},
		{name: "failure keeps slots dirty", dirty: []models.DocumentEntry{e1}, flushErr: errors.New("boom"), wantFlush: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			source := mock.NewMockDirtySource(ctrl)
			documents := mock.NewMockDocumentService(ctrl)

			source.EXPECT().Dirty().Return(tt.dirty)
			if tt.wantFlush {
				args := make([]any, 0, len(tt.dirty))
				for _, e := range tt.dirty {
					args = append(args, e)
				}
				documents.EXPECT().Flush(gomock.Any(), args...).Return(tt.flushErr)
			}
			if tt.wantClean {
				for _, e := range tt.dirty {
					source.EXPECT().MarkClean(e)
				}
			}

			w := NewFlushWorker(source, documents, time.Hour, logger.Nop())
			err := w.Flush(context.Background())

			if tt.flushErr != nil {
				assert.ErrorIs(t, err, tt.flushErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFlushWorker_FlushesOnTick(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mock.NewMockDirtySource(ctrl)
	documents := mock.NewMockDocumentService(ctrl)

	ticked := make(chan struct{}, 1)
	source.EXPECT().Dirty().DoAndReturn(func() []models.DocumentEntry {
		select {
		case ticked <- struct{}{}:
		default:
		}
		return nil
	}).MinTimes(1)

	w := NewFlushWorker(source, documents, 10*time.Millisecond, logger.Nop())
	w.Start(context.Background())

	select {
	case <-ticked:
	case <-time.After(2 * time.Second):
		t.Fatal("flush worker never ticked")
	}
	w.Stop()
}

func TestFlushWorker_StopFlushesRemaining(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mock.NewMockDirtySource(ctrl)
	documents := mock.NewMockDocumentService(ctrl)

	e := entry("a", 2)
	source.EXPECT().Dirty().Return([]models.DocumentEntry{e})
	documents.EXPECT().Flush(gomock.Any(), e).Return(nil)
	source.EXPECT().MarkClean(e)

	w := NewFlushWorker(source, documents, time.Hour, logger.Nop())
	w.Start(context.Background())
	w.Stop()
}

func TestNewFlushWorker_DefaultInterval(t *testing.T) {
	w := NewFlushWorker(nil, nil, 0, logger.Nop())
	assert.Equal(t, defaultFlushInterval, w.interval)
}

func TestReaperWorker_Reap(t *testing.T) {
	ctrl := gomock.NewController(t)
	rooms := mock.NewMockIdleEvicter(ctrl)
	rooms.EXPECT().EvictIdle(time.Minute).Return([]string{"a", "b"})

	w := NewReaperWorker(rooms, time.Minute, logger.Nop())

	assert.Equal(t, []string{"a", "b"}, w.Reap())
	assert.Equal(t, 15*time.Second, w.interval)
}

func TestReaperWorker_ReapsOnTick(t *testing.T) {
	ctrl := gomock.NewController(t)
	rooms := mock.NewMockIdleEvicter(ctrl)

	ticked := make(chan struct{}, 1)
	rooms.EXPECT().EvictIdle(40 * time.Millisecond).DoAndReturn(func(time.Duration) []string {
		select {
		case ticked <- struct{}{}:
		default:
		}
		return nil
	}).MinTimes(1)

	w := NewReaperWorker(rooms, 40*time.Millisecond, logger.Nop())
	w.Start(context.Background())

	select {
	case <-ticked:
	case <-time.After(2 * time.Second):
		t.Fatal("reaper never ticked")
	}
	w.Stop()
}

func TestTickerJob_StopWithoutStart(t *testing.T) {
	j := &tickerJob{interval: time.Second, tick: func(context.Context) {}}
	j.Stop()
	j.Stop()
}

func TestTickerJob_StopsWithContext(t *testing.T) {
	j := &tickerJob{interval: time.Millisecond, tick: func(context.Context) {}}
	ctx, cancel := context.WithCancel(context.Background())
	j.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		j.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not exit after context cancellation")
	}
}

func TestWorkers_StartStopInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	w1 := mock.NewMockWorker(ctrl)
	w2 := mock.NewMockWorker(ctrl)
	ctx := context.Background()

	gomock.InOrder(
		w1.EXPECT().Start(ctx),
		w2.EXPECT().Start(ctx),
		w1.EXPECT().Stop(),
		w2.EXPECT().Stop(),
	)

	ws := &Workers{workers: []Worker{w1, w2}}
	ws.Start(ctx)
	ws.Stop()
}

func TestWorkers_Empty(t *testing.T) {
	ws := &Workers{}
	ws.Start(context.Background())
	ws.Stop()
}

type participant string

func (p participant) ID() string                 { return string(p) }
func (p participant) Send(_ models.Message) bool { return true }

func TestNewServerWorkers_PersistsHubOnStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	documents := mock.NewMockDocumentService(ctrl)

	h := hub.New(logger.Nop())
	require.NoError(t, h.Join(context.Background(), "room", participant("p")))
	written, err := h.Update("room", participant("p"), models.CanvasDataKey, json.RawMessage(`{"objects":[]}`))
	require.NoError(t, err)

	documents.EXPECT().Flush(gomock.Any(), written).Return(nil)

	ws := NewServerWorkers(h, documents, config.Workers{FlushInterval: time.Hour, IdleRoomTTL: time.Hour}, logger.Nop())
	ws.Start(context.Background())
	ws.Stop()

	assert.Empty(t, h.Dirty())
}
