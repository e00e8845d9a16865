// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-canvas-sync/internal/config"
	"github.com/MKhiriev/go-canvas-sync/internal/logger"
	"github.com/MKhiriev/go-canvas-sync/internal/store"
	"github.com/MKhiriev/go-canvas-sync/models"
)

type ServerServices struct {
	DocumentService DocumentService
	AppInfoService  AppInfoService
}

func NewServerServices(storages *store.ServerStorages, cfg config.App, build models.AppBuildInfo, logger *logger.Logger) (*ServerServices, error) {
	appInfo, err := NewAppInfoService(cfg, build, logger)
	if err != nil {
		return nil, err
	}

	return &ServerServices{
		DocumentService: NewDocumentService(storages.DocumentRepository, logger),
		AppInfoService:  appInfo,
	}, nil
}

type ClientServices struct {
	TemplateService TemplateService
}

func NewClientServices(storages *store.ClientStorages, logger *logger.Logger) *ClientServices {
	return &ClientServices{
		TemplateService: NewTemplateService(storages.TemplateRepository, logger),
	}
}
