// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-canvas-sync/internal/config"
	"github.com/MKhiriev/go-canvas-sync/internal/handler"
	"github.com/MKhiriev/go-canvas-sync/internal/hub"
	"github.com/MKhiriev/go-canvas-sync/internal/logger"
	"github.com/MKhiriev/go-canvas-sync/internal/server"
	"github.com/MKhiriev/go-canvas-sync/internal/service"
	"github.com/MKhiriev/go-canvas-sync/internal/store"
	"github.com/MKhiriev/go-canvas-sync/internal/workers"
	"github.com/MKhiriev/go-canvas-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(build)

	log := logger.NewLogger("canvas-relay")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	storages, err := store.NewServerStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	services, err := service.NewServerServices(storages, cfg.App, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	rooms := hub.New(log, hub.WithLoader(services.DocumentService))

	handlers, err := handler.NewHandlers(rooms, services, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	background := workers.NewServerWorkers(rooms, services.DocumentService, cfg.Workers, log)

	srv, err := server.NewServer(handlers, background, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo(build models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", build.BuildVersion())
	fmt.Printf("Build date: %s\n", build.BuildDate())
	fmt.Printf("Build commit: %s\n", build.BuildCommit())
}
