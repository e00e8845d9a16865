// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-canvas-sync/internal/config"
	"github.com/MKhiriev/go-canvas-sync/internal/logger"
	"github.com/MKhiriev/go-canvas-sync/internal/utils"
	"github.com/MKhiriev/go-canvas-sync/models"
)

type httpRelayAdapter struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPRelayAdapter builds a [RelayAdapter] for cfg.HTTPAddress. A bare
// "host:port" is treated as http.
func NewHTTPRelayAdapter(cfg config.Adapter, logger *logger.Logger) (RelayAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpRelayAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpRelayAdapter) ListRooms(ctx context.Context) ([]models.RoomInfo, error) {
	var rooms models.RoomsResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&rooms).
		Get("/api/rooms")
	if err != nil {
		return nil, fmt.Errorf("list rooms request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return rooms.Rooms, nil
}

func (h *httpRelayAdapter) GetDocument(ctx context.Context, room string) (models.DocumentResponse, error) {
	if strings.TrimSpace(room) == "" {
		return models.DocumentResponse{}, ErrEmptyRoom
	}

	var doc models.DocumentResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("room", room).
		SetResult(&doc).
		Get("/api/rooms/{room}/document")
	if err != nil {
		return models.DocumentResponse{}, fmt.Errorf("get document request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.DocumentResponse{}, err
	}

	return doc, nil
}

func (h *httpRelayAdapter) Version(ctx context.Context) (models.VersionResponse, error) {
	var version models.VersionResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&version).
		Get("/api/version")
	if err != nil {
		return models.VersionResponse{}, fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VersionResponse{}, err
	}

	return version, nil
}
