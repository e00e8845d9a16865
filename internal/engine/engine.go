// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package engine keeps a local scene and a room's replicated document in
// step.
//
// Local edits are debounced, fingerprinted and published; remote snapshots
// are fingerprinted and restored into the scene behind a LoopGuard so that
// the restore does not bounce back out as a local edit. Every Session runs
// its decisions on a single goroutine.
package engine

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-canvas-sync/internal/logger"
	"github.com/MKhiriev/go-canvas-sync/internal/replication"
	"github.com/MKhiriev/go-canvas-sync/internal/scene"
)

// Config holds session timing.
type Config struct {
	// DebounceWindow is the quiet period after the last local edit before
	// the scene is published.
	DebounceWindow time.Duration

	// SettleDelay keeps the loop guard raised after a remote apply.
	SettleDelay time.Duration

	// PublishTimeout bounds a single Publish call.
	PublishTimeout time.Duration
}

// Defaults.
const (
	DefaultDebounceWindow = 500 * time.Millisecond
	DefaultSettleDelay    = 100 * time.Millisecond
	DefaultPublishTimeout = 5 * time.Second
)

func (c Config) withDefaults() Config {
	if c.DebounceWindow <= 0 {
		c.DebounceWindow = DefaultDebounceWindow
	}
	if c.SettleDelay <= 0 {
		c.SettleDelay = DefaultSettleDelay
	}
	if c.PublishTimeout <= 0 {
		c.PublishTimeout = DefaultPublishTimeout
	}
	return c
}

// Engine starts sync sessions over a replication connector.
type Engine struct {
	connector replication.Connector
	cfg       Config
	logger    *logger.Logger
}

func NewEngine(connector replication.Connector, cfg Config, logger *logger.Logger) *Engine {
	return &Engine{
		connector: connector,
		cfg:       cfg.withDefaults(),
		logger:    logger,
	}
}

// Start binds adapter to the shared document of room at endpoint and returns
// an active session. On failure nothing started by Start stays alive and the
// returned error wraps ErrInitialization.
func (e *Engine) Start(ctx context.Context, room, endpoint string, adapter scene.Adapter) (*Session, error) {
	s := newSession(room, endpoint, adapter, e.cfg, e.logger)

	if err := s.init(ctx, e.connector); err != nil {
		return nil, err
	}

	return s, nil
}

func validateTarget(room, endpoint string) error {
	if strings.TrimSpace(room) == "" || strings.ContainsAny(room, "/?#") {
		return fmt.Errorf("%w: %q", ErrInvalidRoom, room)
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEndpoint, err)
	}
	if u.Scheme == "" || (u.Host == "" && u.Opaque == "") {
		return fmt.Errorf("%w: %q", ErrInvalidEndpoint, endpoint)
	}

	return nil
}
