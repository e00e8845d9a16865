// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-canvas-sync/internal/logger"
	"github.com/MKhiriev/go-canvas-sync/internal/scene"
	"github.com/MKhiriev/go-canvas-sync/internal/store"
	"github.com/MKhiriev/go-canvas-sync/internal/utils"
	"github.com/MKhiriev/go-canvas-sync/models"
)

type templateService struct {
	repo   store.TemplateRepository
	ids    *utils.UUIDGenerator
	now    func() time.Time
	logger *logger.Logger
}

func NewTemplateService(repo store.TemplateRepository, logger *logger.Logger) TemplateService {
	return &templateService{
		repo:   repo,
		ids:    utils.NewUUIDGenerator(),
		now:    time.Now,
		logger: logger,
	}
}

func (s *templateService) List(ctx context.Context) ([]models.Template, error) {
	templates, err := s.repo.ListTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing templates: %w", err)
	}
	return templates, nil
}

func (s *templateService) Get(ctx context.Context, id string) (models.Template, error) {
	if id == "" {
		return models.Template{}, ErrEmptyTemplateID
	}

	t, err := s.repo.GetTemplate(ctx, id)
	if errors.Is(err, store.ErrTemplateNotFound) {
		return models.Template{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	}
	if err != nil {
		return models.Template{}, fmt.Errorf("error getting template %s: %w", id, err)
	}
	return t, nil
}

// Save stores the adapter's current scene under input.Name with a text
// thumbnail of it.
func (s *templateService) Save(ctx context.Context, input models.TemplateInput, adapter scene.Adapter) (models.Template, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Template{}, ErrEmptyTemplateName
	}
	if adapter == nil {
		return models.Template{}, ErrNoAdapter
	}

	state, err := adapter.Snapshot()
	if err != nil {
		return models.Template{}, fmt.Errorf("%w: %w", ErrSnapshot, err)
	}

	thumbnail, err := scene.Thumbnail(state)
	if err != nil {
		// the template is still usable without a preview
		s.logger.Warn().Err(err).Str("template", name).Msg("thumbnail not rendered")
	}

	t := models.Template{
		ID:          s.ids.Generate(),
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Thumbnail:   thumbnail,
		CanvasData:  state.Clone(),
		CreatedAt:   s.now().UTC(),
	}

	if err := s.repo.SaveTemplate(ctx, t); err != nil {
		return models.Template{}, fmt.Errorf("error saving template %s: %w", name, err)
	}

	s.logger.Info().Str("id", t.ID).Str("template", name).Msg("template saved")
	return t, nil
}

// Delete reports whether a template was removed.
func (s *templateService) Delete(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, ErrEmptyTemplateID
	}

	err := s.repo.DeleteTemplate(ctx, id)
	if errors.Is(err, store.ErrTemplateNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error deleting template %s: %w", id, err)
	}
	return true, nil
}

// Apply replaces the adapter's scene with the template. Adapters that
// implement scene.Loader announce the replacement as a local edit, so a
// running sync session publishes it.
func (s *templateService) Apply(ctx context.Context, id string, adapter scene.Adapter) (models.Template, error) {
	if adapter == nil {
		return models.Template{}, ErrNoAdapter
	}

	t, err := s.Get(ctx, id)
	if err != nil {
		return models.Template{}, err
	}

	if loader, ok := adapter.(scene.Loader); ok {
		err = loader.Load(t.CanvasData)
	} else {
		err = adapter.Restore(t.CanvasData)
	}
	if err != nil {
		return models.Template{}, fmt.Errorf("%w %s: %w", ErrApplyTemplate, id, err)
	}

	s.logger.Info().Str("id", id).Str("template", t.Name).Msg("template applied")
	return t, nil
}
