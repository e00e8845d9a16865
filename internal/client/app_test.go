// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-canvas-sync/internal/config"
	"github.com/MKhiriev/go-canvas-sync/internal/engine"
	"github.com/MKhiriev/go-canvas-sync/internal/hub"
	"github.com/MKhiriev/go-canvas-sync/internal/logger"
	"github.com/MKhiriev/go-canvas-sync/internal/mock"
	"github.com/MKhiriev/go-canvas-sync/internal/replication"
	"github.com/MKhiriev/go-canvas-sync/internal/scene"
	"github.com/MKhiriev/go-canvas-sync/internal/service"
	"github.com/MKhiriev/go-canvas-sync/internal/tui"
	"github.com/MKhiriev/go-canvas-sync/models"
)

type uiFunc func(ctx context.Context) error

func (f uiFunc) Run(ctx context.Context) error { return f(ctx) }

func testConfig(room string) *config.ClientConfig {
	return &config.ClientConfig{
		Adapter: config.Adapter{WSEndpoint: "ws://relay.test/ws"},
		Sync:    config.Sync{Room: room},
	}
}

func testEngine(connector replication.Connector) *engine.Engine {
	return engine.NewEngine(connector, engine.Config{
		DebounceWindow: 10 * time.Millisecond,
		SettleDelay:    5 * time.Millisecond,
	}, logger.Nop())
}

func TestNewAppRequiresEngine(t *testing.T) {
	_, err := NewApp(Deps{Canvas: scene.NewCanvas()}, testConfig("r"), nil, logger.Nop())
	assert.ErrorIs(t, err, ErrNoEngine)
}

func TestRunPublishesEdits(t *testing.T) {
	h := hub.New(logger.Nop())
	canvas := scene.NewCanvas()
	t.Cleanup(canvas.Close)

	ctrl := gomock.NewController(t)
	templates := mock.NewMockTemplateService(ctrl)

	var got tui.Deps
	newUI := func(deps tui.Deps) (UI, error) {
		got = deps
		return uiFunc(func(ctx context.Context) error {
			_, err := deps.Canvas.Add(models.SceneObject{Type: models.ObjectRect, Width: 10, Height: 10})
			require.NoError(t, err)

			assert.Eventually(t, func() bool {
				doc, err := h.Document("board")
				if err != nil || len(doc.Entries) == 0 {
					return false
				}
				return doc.Entries[0].Key == models.CanvasDataKey
			}, 2*time.Second, 10*time.Millisecond)
			return nil
		}), nil
	}

	app, err := NewApp(Deps{
		Canvas:   canvas,
		Engine:   testEngine(replication.NewMemoryConnector(h, logger.Nop())),
		Services: &service.ClientServices{TemplateService: templates},
	}, testConfig("board"), newUI, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, app.Run(context.Background()))

	require.NotNil(t, got.Session)
	assert.Equal(t, "board", got.Session.Room())
	assert.Equal(t, templates, got.Templates)
	assert.Same(t, canvas, got.Canvas)
	assert.GreaterOrEqual(t, got.Session.Stats().Published, int64(1))

	// the session has left the room
	assert.Eventually(t, func() bool {
		for _, r := range h.Rooms() {
			if r.Room == "board" && r.Participants > 0 {
				return false
			}
		}
		return true
	}, time.Second, 10*time.Millisecond)
}

func TestRunOffline(t *testing.T) {
	ctrl := gomock.NewController(t)
	connector := mock.NewMockConnector(ctrl)
	connector.EXPECT().Connect(gomock.Any(), "board", "ws://relay.test/ws").Return(nil, errors.New("connection refused"))

	canvas := scene.NewCanvas()
	t.Cleanup(canvas.Close)

	ran := false
	newUI := func(deps tui.Deps) (UI, error) {
		assert.Nil(t, deps.Session)
		assert.Nil(t, deps.Templates)
		return uiFunc(func(context.Context) error {
			ran = true
			return nil
		}), nil
	}

	app, err := NewApp(Deps{Canvas: canvas, Engine: testEngine(connector)}, testConfig("board"), newUI, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, app.Run(context.Background()))
	assert.True(t, ran)
}

func TestRunUIError(t *testing.T) {
	ctrl := gomock.NewController(t)
	connector := mock.NewMockConnector(ctrl)
	connector.EXPECT().Connect(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("offline"))

	canvas := scene.NewCanvas()
	t.Cleanup(canvas.Close)

	boom := errors.New("no terminal")
	app, err := NewApp(Deps{Canvas: canvas, Engine: testEngine(connector)}, testConfig("board"),
		func(tui.Deps) (UI, error) { return nil, boom }, logger.Nop())
	require.NoError(t, err)

	assert.ErrorIs(t, app.Run(context.Background()), boom)
}
