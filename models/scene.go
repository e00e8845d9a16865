// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// Canvas-level defaults shared by every participant of a deployment.
const (
	DefaultBackground = "#ffffff"
	DefaultWidth      = 800
	DefaultHeight     = 600
)

// SceneState is an opaque serialized snapshot of a scene: every drawable
// object plus the canvas-level properties. It is produced by a scene
// adapter's Snapshot and consumed by its Restore.
//
// The sync engine never inspects or mutates a SceneState; it only compares
// states through their [Fingerprint].
type SceneState []byte

// MarshalJSON embeds the snapshot verbatim so that it travels as a JSON
// value (not as a base64 string) inside protocol messages and templates.
func (s SceneState) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("null"), nil
	}
	return json.RawMessage(s).MarshalJSON()
}

// UnmarshalJSON stores a copy of the raw JSON value.
func (s *SceneState) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = nil
		return nil
	}
	*s = append((*s)[:0], b...)
	return nil
}

// Clone returns an independent copy of the snapshot bytes.
func (s SceneState) Clone() SceneState {
	if s == nil {
		return nil
	}
	out := make(SceneState, len(s))
	copy(out, s)
	return out
}

// Fingerprint is a deterministic digest of a [SceneState]. Equal states
// always have equal fingerprints. The empty Fingerprint means "nothing seen
// yet" and never equals a real digest.
type Fingerprint string

// ObjectType names a drawable object kind, using the same identifiers as the
// browser whiteboard so snapshots stay interchangeable.
type ObjectType string

const (
	ObjectRect   ObjectType = "rect"
	ObjectCircle ObjectType = "circle"
	ObjectPath   ObjectType = "path"
	ObjectText   ObjectType = "i-text"
	ObjectImage  ObjectType = "image"
)

// Supported reports whether t is an object kind the scene can render.
func (t ObjectType) Supported() bool {
	switch t {
	case ObjectRect, ObjectCircle, ObjectPath, ObjectText, ObjectImage:
		return true
	default:
		return false
	}
}

// Point is a single vertex of a freehand stroke.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SceneObject is one drawable object of a [Scene].
type SceneObject struct {
	// ID uniquely identifies the object inside its scene.
	ID string `json:"id"`

	// Type selects how the object is rendered.
	Type ObjectType `json:"type"`

	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`

	// Text holds the content of an i-text object.
	Text     string  `json:"text,omitempty"`
	FontSize float64 `json:"fontSize,omitempty"`

	// Path holds the vertices of a freehand stroke.
	Path []Point `json:"path,omitempty"`

	// Src holds the data URL of an image object.
	Src string `json:"src,omitempty"`

	ScaleX float64 `json:"scaleX,omitempty"`
	ScaleY float64 `json:"scaleY,omitempty"`
}

// Scene is the structured document behind a [SceneState].
type Scene struct {
	Background string        `json:"background"`
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	Objects    []SceneObject `json:"objects"`
}

// NewScene returns an empty scene with the default canvas properties.
func NewScene() Scene {
	return Scene{
		Background: DefaultBackground,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Objects:    []SceneObject{},
	}
}

// Clone returns a deep copy of the scene.
func (s Scene) Clone() Scene {
	out := s
	out.Objects = make([]SceneObject, len(s.Objects))
	for i, obj := range s.Objects {
		if obj.Path != nil {
			obj.Path = append([]Point(nil), obj.Path...)
		}
		out.Objects[i] = obj
	}
	return out
}

// MutationKind identifies which local edit fired a mutation event.
type MutationKind string

const (
	MutationObjectAdded    MutationKind = "object:added"
	MutationObjectModified MutationKind = "object:modified"
	MutationPathCreated    MutationKind = "path:created"
	MutationTextChanged    MutationKind = "text:changed"
	MutationObjectRemoved  MutationKind = "object:removed"
	MutationCleared        MutationKind = "canvas:cleared"
)

// MutationEvent is emitted by a scene whenever its content changes. It
// carries no snapshot; listeners call Snapshot themselves.
type MutationEvent struct {
	Kind     MutationKind
	ObjectID string
}
