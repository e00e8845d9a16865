// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-canvas-sync/internal/logger"
	"github.com/MKhiriev/go-canvas-sync/internal/store"
	"github.com/MKhiriev/go-canvas-sync/models"
)

type documentService struct {
	repo   store.DocumentRepository
	logger *logger.Logger
}

func NewDocumentService(repo store.DocumentRepository, logger *logger.Logger) DocumentService {
	return &documentService{
		repo:   repo,
		logger: logger,
	}
}

func (s *documentService) LoadRoom(ctx context.Context, room string) ([]models.DocumentEntry, error) {
	if strings.TrimSpace(room) == "" {
		return nil, ErrEmptyRoom
	}

	entries, err := s.repo.LoadRoom(ctx, room)
	if err != nil {
		return nil, fmt.Errorf("error loading room %s: %w", room, err)
	}

	s.logger.Debug().Str("room", room).Int("slots", len(entries)).Msg("room document loaded")
	return entries, nil
}

// Flush persists entries. Malformed entries are skipped with a warning so
// that one bad slot cannot block the rest of the batch.
func (s *documentService) Flush(ctx context.Context, entries ...models.DocumentEntry) error {
	valid := make([]models.DocumentEntry, 0, len(entries))
	for _, entry := range entries {
		if err := validateEntry(entry); err != nil {
			s.logger.Warn().Err(err).Str("room", entry.Room).Str("slot", entry.Key).Msg("document entry skipped")
			continue
		}
		valid = append(valid, entry)
	}

	if len(valid) == 0 {
		return nil
	}

	if err := s.repo.SaveEntries(ctx, valid...); err != nil {
		return fmt.Errorf("error flushing %d entries: %w", len(valid), err)
	}
	return nil
}

func validateEntry(entry models.DocumentEntry) error {
	switch {
	case entry.Room == "":
		return fmt.Errorf("%w: empty room", ErrInvalidDocumentEntry)
	case entry.Key == "":
		return fmt.Errorf("%w: empty slot", ErrInvalidDocumentEntry)
	case entry.Version <= 0:
		return fmt.Errorf("%w: version %d", ErrInvalidDocumentEntry, entry.Version)
	case !json.Valid(entry.Value):
		return fmt.Errorf("%w: value is not JSON", ErrInvalidDocumentEntry)
	}
	return nil
}
