// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-canvas-sync/internal/logger"
	"github.com/MKhiriev/go-canvas-sync/models"
)

// documentRepository stores relay room slots in the room_documents table.
type documentRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewDocumentRepository(db *DB, logger *logger.Logger) DocumentRepository {
	logger.Debug().Msg("creating document repository")
	return &documentRepository{
		db:     db,
		logger: logger,
	}
}

// LoadRoom returns every persisted slot of room. An unknown room yields an
// empty slice, not an error.
func (r *documentRepository) LoadRoom(ctx context.Context, room string) ([]models.DocumentEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildLoadRoomQuery(r.db.builder(), room)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*documentRepository.LoadRoom").Str("room", room).Msg("failed to load room")
		return nil, r.wrap(ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.DocumentEntry, 0, 1)
	for rows.Next() {
		var (
			entry     models.DocumentEntry
			value     string
			updatedAt time.Time
		)
		if err := rows.Scan(&entry.Room, &entry.Key, &value, &entry.Version, &entry.Origin, &updatedAt); err != nil {
			log.Err(err).Str("func", "*documentRepository.LoadRoom").Str("room", room).Msg("failed to scan slot")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		entry.Value = json.RawMessage(value)
		entry.UpdatedAt = updatedAt
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

// SaveEntries upserts entries in one transaction. A stored slot is only
// overwritten by a higher version.
func (r *documentRepository) SaveEntries(ctx context.Context, entries ...models.DocumentEntry) error {
	if len(entries) == 0 {
		return nil
	}
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*documentRepository.SaveEntries").Msg("failed to begin transaction")
		return r.wrap(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	builder := r.db.builder()
	for _, entry := range entries {
		query, args, err := buildUpsertEntryQuery(builder, entry)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).
				Str("func", "*documentRepository.SaveEntries").
				Str("room", entry.Room).
				Str("slot", entry.Key).
				Int64("version", entry.Version).
				Msg("failed to save slot")
			return r.wrap(ErrExecutingStatement, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*documentRepository.SaveEntries").Msg("failed to commit transaction")
		return r.wrap(ErrCommitingTransaction, err)
	}

	return nil
}

func (r *documentRepository) wrap(kind, err error) error {
	if r.db.retryable(err) {
		return fmt.Errorf("%w: %w: %w", kind, ErrRetryable, err)
	}
	return fmt.Errorf("%w: %w", kind, err)
}
