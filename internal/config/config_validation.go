// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks invariants that hold for every runtime regardless of role.
func (cfg *StructuredConfig) validate() error {
	s := cfg.Sync
	if s.DebounceWindow < 0 || s.SettleDelay < 0 || s.ReconnectTimeout < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalidSyncConfigs)
	}
	if cfg.Workers.FlushInterval < 0 || cfg.Workers.IdleRoomTTL < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalidWorkerConfigs)
	}

	return nil
}

func validateDB(db DB) error {
	switch db.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, db.Driver)
	}

	if db.DSN == "" {
		return fmt.Errorf("%w: empty dsn", ErrInvalidStorageConfigs)
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if err := validateDB(cfg.Storage.DB); err != nil {
		return err
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Sync.PingInterval <= 0 || cfg.Sync.WriteTimeout <= 0 {
		return ErrInvalidSyncConfigs
	}

	if cfg.Workers.FlushInterval <= 0 || cfg.Workers.IdleRoomTTL <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if err := validateDB(cfg.Storage.DB); err != nil {
		return err
	}
	if strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return fmt.Errorf("%w: templates need a persistent dsn", ErrInvalidStorageConfigs)
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.WSEndpoint == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	s := cfg.Sync
	if s.Room == "" || s.DebounceWindow <= 0 || s.SettleDelay <= 0 ||
		s.ReconnectTimeout <= 0 || s.PingInterval <= 0 || s.WriteTimeout <= 0 {
		return ErrInvalidSyncConfigs
	}

	return nil
}
