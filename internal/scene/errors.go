// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package scene

import "errors"

var (
	// ErrDeserialization is returned by Restore when the snapshot cannot be
	// decoded. The scene is left unchanged.
	ErrDeserialization = errors.New("malformed scene state")

	// ErrRestore is returned by Restore when a well-formed snapshot is
	// rejected. The scene is left unchanged.
	ErrRestore = errors.New("scene rejected snapshot")

	// ErrUnsupportedObject marks an object kind the scene cannot render.
	ErrUnsupportedObject = errors.New("unsupported object type")

	ErrObjectNotFound = errors.New("object not found")
	ErrNotEditable    = errors.New("object is not editable text")
	ErrEmptyStroke    = errors.New("stroke has no points")
	ErrClosed         = errors.New("scene is closed")
)
