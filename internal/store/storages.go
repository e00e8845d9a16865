// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-canvas-sync/internal/config"
	"github.com/MKhiriev/go-canvas-sync/internal/logger"
)

// ServerStorages groups the relay's repositories.
type ServerStorages struct {
	DocumentRepository DocumentRepository

	db *DB
}

// NewServerStorages connects to the configured database, applies pending
// migrations and builds the relay's repositories.
func NewServerStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*ServerStorages, error) {
	logger.Info().Str("driver", cfg.DB.Driver).Msg("creating server storages...")

	db, err := openAndMigrate(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &ServerStorages{
		DocumentRepository: NewDocumentRepository(db, logger),
		db:                 db,
	}, nil
}

func (s *ServerStorages) Close() error {
	return s.db.Close()
}

// ClientStorages groups the client's local repositories.
type ClientStorages struct {
	TemplateRepository TemplateRepository

	db *DB
}

func NewClientStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating client storages...")

	db, err := openAndMigrate(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &ClientStorages{
		TemplateRepository: NewTemplateRepository(db, logger),
		db:                 db,
	}, nil
}

func (s *ClientStorages) Close() error {
	return s.db.Close()
}

func openAndMigrate(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*DB, error) {
	db, err := NewConnectDB(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("%s connection error: %w", cfg.DB.Driver, err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return db, nil
}
