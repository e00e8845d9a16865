// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the terminal drawing surface of the canvas client.
//
// The screen edits a [scene.Canvas] directly; a running sync session picks
// the edits up through the canvas mutation events, so the TUI never talks
// to the relay for replication. It only uses the REST adapter for the
// rooms and version views and the template service for saved scenes.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

type TUI struct {
	deps Deps
}

func New(deps Deps) (*TUI, error) {
	if deps.Canvas == nil {
		return nil, ErrNoCanvas
	}
	return &TUI{deps: deps}, nil
}

// Run blocks until the user quits or ctx is cancelled.
func (t *TUI) Run(ctx context.Context) error {
	model := newCanvasModel(ctx, t.deps)
	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
