// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// ServerConfig is the relay's view of [StructuredConfig].
type ServerConfig struct {
	App     App
	Storage Storage
	Server  Server
	Sync    Sync
	Workers Workers
}

// ClientConfig is the canvas client's view of [StructuredConfig].
type ClientConfig struct {
	App     App
	Storage Storage
	Adapter Adapter
	Sync    Sync
}

// GetServerConfig builds and validates the relay configuration from the
// process arguments and environment.
func GetServerConfig() (*ServerConfig, error) {
	return serverConfigFromArgs(os.Args[1:])
}

// GetClientConfig builds and validates the client configuration from the
// process arguments and environment.
func GetClientConfig() (*ClientConfig, error) {
	return clientConfigFromArgs(os.Args[1:])
}

func serverConfigFromArgs(args []string) (*ServerConfig, error) {
	cfg, err := loadStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := &ServerConfig{
		App:     cfg.App,
		Storage: cfg.Storage,
		Server:  cfg.Server,
		Sync:    cfg.Sync,
		Workers: cfg.Workers,
	}

	return serverCfg, serverCfg.validate()
}

func clientConfigFromArgs(args []string) (*ClientConfig, error) {
	cfg, err := loadStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App:     cfg.App,
		Storage: cfg.Storage,
		Adapter: cfg.Adapter,
		Sync:    cfg.Sync,
	}

	return clientCfg, clientCfg.validate()
}
