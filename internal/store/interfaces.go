// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-canvas-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// DocumentRepository persists the relay's room documents.
type DocumentRepository interface {
	LoadRoom(ctx context.Context, room string) ([]models.DocumentEntry, error)
	SaveEntries(ctx context.Context, entries ...models.DocumentEntry) error
}

// TemplateRepository persists the client's saved templates.
type TemplateRepository interface {
	ListTemplates(ctx context.Context) ([]models.Template, error)
	GetTemplate(ctx context.Context, id string) (models.Template, error)
	SaveTemplate(ctx context.Context, template models.Template) error
	DeleteTemplate(ctx context.Context, id string) error
}
