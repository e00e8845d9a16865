// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-canvas-sync/internal/adapter"
	"github.com/MKhiriev/go-canvas-sync/internal/config"
	"github.com/MKhiriev/go-canvas-sync/internal/engine"
	"github.com/MKhiriev/go-canvas-sync/internal/logger"
	"github.com/MKhiriev/go-canvas-sync/internal/scene"
	"github.com/MKhiriev/go-canvas-sync/internal/service"
	"github.com/MKhiriev/go-canvas-sync/internal/tui"
	"github.com/MKhiriev/go-canvas-sync/models"
)

var ErrNoEngine = errors.New("client needs a canvas and a sync engine")

// Deps are the parts the client app is assembled from.
type Deps struct {
	Canvas    *scene.Canvas
	Engine    *engine.Engine
	Services  *service.ClientServices
	Relay     adapter.RelayAdapter
	BuildInfo models.AppBuildInfo
}

type App struct {
	deps   Deps
	sync   config.Sync
	wsURL  string
	newUI  UIFactory
	logger *logger.Logger
}

// NewApp wires the client. newUI may be nil, in which case the terminal UI
// is used.
func NewApp(deps Deps, cfg *config.ClientConfig, newUI UIFactory, logger *logger.Logger) (*App, error) {
	if deps.Canvas == nil || deps.Engine == nil {
		return nil, ErrNoEngine
	}
	if newUI == nil {
		newUI = terminalUI
	}

	return &App{
		deps:   deps,
		sync:   cfg.Sync,
		wsURL:  cfg.Adapter.WSEndpoint,
		newUI:  newUI,
		logger: logger,
	}, nil
}

func terminalUI(deps tui.Deps) (UI, error) {
	return tui.New(deps)
}

// Run joins the configured room and blocks in the UI. When the relay cannot
// be reached the UI still runs against the local canvas.
func (a *App) Run(ctx context.Context) error {
	uiDeps := tui.Deps{
		Canvas:    a.deps.Canvas,
		Relay:     a.deps.Relay,
		BuildInfo: a.deps.BuildInfo,
		Logger:    a.logger,
	}
	if a.deps.Services != nil {
		uiDeps.Templates = a.deps.Services.TemplateService
	}

	session, err := a.deps.Engine.Start(ctx, a.sync.Room, a.wsURL, a.deps.Canvas)
	if err != nil {
		a.logger.Warn().Err(err).Str("room", a.sync.Room).Msg("sync is unavailable, running offline")
	} else {
		defer a.stop(session)
		uiDeps.Session = session
		a.watch(session)
	}

	ui, err := a.newUI(uiDeps)
	if err != nil {
		return fmt.Errorf("error creating ui: %w", err)
	}

	return ui.Run(ctx)
}

func (a *App) watch(session *engine.Session) {
	log := a.logger.WithRoom(session.Room())
	session.OnStatusChange(func(status models.ConnectionStatus) {
		log.Info().Str("status", string(status)).Msg("connection status changed")
	})
	session.OnError(func(err error) {
		log.Warn().Err(err).Msg("sync error")
	})
}

func (a *App) stop(session *engine.Session) {
	if err := session.Stop(); err != nil {
		a.logger.Err(err).Msg("error stopping sync session")
	}
}
