// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-canvas-sync/internal/scene"
	"github.com/MKhiriev/go-canvas-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// DocumentService persists the relay's room documents. It satisfies
// hub.DocumentLoader.
type DocumentService interface {
	LoadRoom(ctx context.Context, room string) ([]models.DocumentEntry, error)
	Flush(ctx context.Context, entries ...models.DocumentEntry) error
}

// TemplateService manages the client's saved scenes.
type TemplateService interface {
	List(ctx context.Context) ([]models.Template, error)
	Get(ctx context.Context, id string) (models.Template, error)
	Save(ctx context.Context, input models.TemplateInput, adapter scene.Adapter) (models.Template, error)
	Delete(ctx context.Context, id string) (bool, error)
	Apply(ctx context.Context, id string, adapter scene.Adapter) (models.Template, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) models.VersionResponse
}
