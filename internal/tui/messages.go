// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/MKhiriev/go-canvas-sync/models"

// refreshMsg redraws the canvas; remote edits land on the scene without
// going through the model.
type refreshMsg struct{}

type templatesLoadedMsg struct {
	items []models.Template
	err   error
}

type templateSavedMsg struct {
	template models.Template
	err      error
}

type templateAppliedMsg struct {
	template models.Template
	err      error
}

type templateDeletedMsg struct {
	id      string
	deleted bool
	err     error
}

type roomsLoadedMsg struct {
	rooms []models.RoomInfo
	err   error
}

type versionLoadedMsg struct {
	version models.VersionResponse
	err     error
}

type copiedMsg struct {
	err error
}
