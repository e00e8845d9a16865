// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Template is a saved scene that can be re-applied to a canvas later.
type Template struct {
	// ID is a UUID assigned when the template is saved.
	ID string `json:"id"`

	// Name is the human-readable template title.
	Name string `json:"name"`

	// Description is optional free text.
	Description string `json:"description,omitempty"`

	// Thumbnail is a small text preview of the scene.
	Thumbnail string `json:"thumbnail"`

	// CanvasData is the scene snapshot the template restores.
	CanvasData SceneState `json:"canvasData"`

	// CreatedAt is the moment the template was saved.
	CreatedAt time.Time `json:"createdAt"`
}

// TemplateInput carries the user-provided fields of a new template.
type TemplateInput struct {
	Name        string
	Description string
}
