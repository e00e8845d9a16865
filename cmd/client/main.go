// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-canvas-sync/internal/adapter"
	"github.com/MKhiriev/go-canvas-sync/internal/client"
	"github.com/MKhiriev/go-canvas-sync/internal/config"
	"github.com/MKhiriev/go-canvas-sync/internal/engine"
	"github.com/MKhiriev/go-canvas-sync/internal/logger"
	"github.com/MKhiriev/go-canvas-sync/internal/replication"
	"github.com/MKhiriev/go-canvas-sync/internal/scene"
	"github.com/MKhiriev/go-canvas-sync/internal/service"
	"github.com/MKhiriev/go-canvas-sync/internal/store"
	"github.com/MKhiriev/go-canvas-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	cfg, err := config.GetClientConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewClientLogger("canvas-client", cfg.App.LogPath)
	log.Info().
		Str("version", build.BuildVersion()).
		Str("commit", build.BuildCommit()).
		Str("room", cfg.Sync.Room).
		Msg("starting client")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing local storage")
		}
	}()

	services := service.NewClientServices(storages, log)

	relay, err := adapter.NewHTTPRelayAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create relay adapter")
	}

	canvas := scene.NewCanvas(scene.WithLogger(log))
	defer canvas.Close()

	connector := replication.NewWSConnector(replication.Settings{
		ReconnectTimeout: cfg.Sync.ReconnectTimeout,
		PingInterval:     cfg.Sync.PingInterval,
		WriteTimeout:     cfg.Sync.WriteTimeout,
		HandshakeTimeout: cfg.Adapter.RequestTimeout,
	}, log)

	syncEngine := engine.NewEngine(connector, engine.Config{
		DebounceWindow: cfg.Sync.DebounceWindow,
		SettleDelay:    cfg.Sync.SettleDelay,
		PublishTimeout: cfg.Sync.WriteTimeout,
	}, log)

	app, err := client.NewApp(client.Deps{
		Canvas:    canvas,
		Engine:    syncEngine,
		Services:  services,
		Relay:     relay,
		BuildInfo: build,
	}, cfg, nil, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Err(err).Msg("client run error")
		fmt.Fprintf(os.Stderr, "client error: %v\n", err)
	}
}
