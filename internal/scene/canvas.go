// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-canvas-sync/internal/event"
	"github.com/MKhiriev/go-canvas-sync/internal/logger"
	"github.com/MKhiriev/go-canvas-sync/internal/utils"
	"github.com/MKhiriev/go-canvas-sync/models"
)

// Canvas is an in-memory scene. All methods are safe for concurrent use.
//
// Like browser drawing surfaces, Canvas re-emits an object-added event for
// every object it loads during Restore. With WithAsyncReplay those events
// arrive after Restore has returned.
type Canvas struct {
	mu     sync.RWMutex
	scene  models.Scene
	closed bool

	mutations   *event.Emitter[models.MutationEvent]
	replayDelay time.Duration
	replays     map[*time.Timer]struct{}

	ids    *utils.UUIDGenerator
	logger *logger.Logger
}

// Option configures a Canvas.
type Option func(*Canvas)

// WithAsyncReplay delays the object-added events fired by Restore by d.
func WithAsyncReplay(d time.Duration) Option {
	return func(c *Canvas) { c.replayDelay = d }
}

// WithLogger sets the canvas logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Canvas) { c.logger = l }
}

// WithScene seeds the canvas with s instead of an empty scene.
func WithScene(s models.Scene) Option {
	return func(c *Canvas) { c.scene = s.Clone() }
}

// NewCanvas returns an empty 800x600 white canvas.
func NewCanvas(opts ...Option) *Canvas {
	c := &Canvas{
		scene:     models.NewScene(),
		mutations: event.NewEmitter[models.MutationEvent](),
		replays:   make(map[*time.Timer]struct{}),
		ids:       utils.NewUUIDGenerator(),
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnMutation subscribes fn to local edit events.
func (c *Canvas) OnMutation(fn func(models.MutationEvent)) event.Subscription {
	return c.mutations.Subscribe(fn)
}

// Snapshot serializes the current scene.
func (c *Canvas) Snapshot() (models.SceneState, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := json.Marshal(c.scene)
	if err != nil {
		return nil, fmt.Errorf("error serializing scene: %w", err)
	}
	return data, nil
}

// Scene returns a deep copy of the current scene for rendering.
func (c *Canvas) Scene() models.Scene {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scene.Clone()
}

// Len returns the number of objects on the canvas.
func (c *Canvas) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.scene.Objects)
}

// Restore replaces the scene with state. Malformed input yields
// ErrDeserialization, unsupported objects yield ErrRestore. In both cases the
// scene is untouched.
func (c *Canvas) Restore(state models.SceneState) error {
	next, err := c.decode(state)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.scene = next
	c.mu.Unlock()

	c.replay(next.Objects)
	return nil
}

// Load replaces the scene like Restore and then reports the replacement as
// a local edit.
func (c *Canvas) Load(state models.SceneState) error {
	if err := c.Restore(state); err != nil {
		return err
	}
	c.emit(models.MutationCleared, "")
	return nil
}

func (c *Canvas) decode(state models.SceneState) (models.Scene, error) {
	trimmed := bytes.TrimSpace(state)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return models.Scene{}, fmt.Errorf("%w: expected a JSON object", ErrDeserialization)
	}

	var next models.Scene
	if err := json.Unmarshal(trimmed, &next); err != nil {
		return models.Scene{}, fmt.Errorf("%w: %w", ErrDeserialization, err)
	}

	for i := range next.Objects {
		obj := &next.Objects[i]
		if !obj.Type.Supported() {
			return models.Scene{}, fmt.Errorf("%w: %w %q", ErrRestore, ErrUnsupportedObject, obj.Type)
		}
		if obj.ID == "" {
			obj.ID = derivedID(i, *obj)
		}
	}

	if next.Background == "" {
		next.Background = models.DefaultBackground
	}
	if next.Width <= 0 {
		next.Width = models.DefaultWidth
	}
	if next.Height <= 0 {
		next.Height = models.DefaultHeight
	}
	if next.Objects == nil {
		next.Objects = []models.SceneObject{}
	}

	return next, nil
}

// derivedID names an object that arrived without an id. The id depends only
// on the object's position and content, so every peer restoring the same
// state assigns the same ids.
func derivedID(index int, obj models.SceneObject) string {
	data, err := json.Marshal(obj)
	if err != nil {
		return fmt.Sprintf("obj-%d", index)
	}
	prefix := []byte(fmt.Sprintf("%d:", index))
	return "obj-" + utils.HashString(append(prefix, data...))[:16]
}

func (c *Canvas) replay(objects []models.SceneObject) {
	if len(objects) == 0 {
		return
	}

	events := make([]models.MutationEvent, len(objects))
	for i, obj := range objects {
		events[i] = models.MutationEvent{Kind: models.MutationObjectAdded, ObjectID: obj.ID}
	}

	if c.replayDelay <= 0 {
		for _, ev := range events {
			c.mutations.Emit(ev)
		}
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	var t *time.Timer
	t = time.AfterFunc(c.replayDelay, func() {
		c.mu.Lock()
		_, pending := c.replays[t]
		delete(c.replays, t)
		c.mu.Unlock()
		if !pending {
			return
		}
		for _, ev := range events {
			c.mutations.Emit(ev)
		}
	})
	c.replays[t] = struct{}{}
}

// Add places obj on the canvas and returns its id. An empty id is generated.
func (c *Canvas) Add(obj models.SceneObject) (string, error) {
	if !obj.Type.Supported() {
		return "", fmt.Errorf("%w %q", ErrUnsupportedObject, obj.Type)
	}
	if obj.ID == "" {
		obj.ID = c.ids.Generate()
	}

	if err := c.mutate(func(s *models.Scene) error {
		s.Objects = append(s.Objects, obj)
		return nil
	}); err != nil {
		return "", err
	}

	c.emit(models.MutationObjectAdded, obj.ID)
	return obj.ID, nil
}

// Modify applies fn to the object with the given id.
func (c *Canvas) Modify(id string, fn func(obj *models.SceneObject)) error {
	if err := c.mutate(func(s *models.Scene) error {
		i := indexOf(s.Objects, id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrObjectNotFound, id)
		}
		obj := s.Objects[i]
		fn(&obj)
		if !obj.Type.Supported() {
			return fmt.Errorf("%w %q", ErrUnsupportedObject, obj.Type)
		}
		obj.ID = id
		s.Objects[i] = obj
		return nil
	}); err != nil {
		return err
	}

	c.emit(models.MutationObjectModified, id)
	return nil
}

// Move shifts an object by dx, dy.
func (c *Canvas) Move(id string, dx, dy float64) error {
	return c.Modify(id, func(obj *models.SceneObject) {
		obj.Left += dx
		obj.Top += dy
		for i := range obj.Path {
			obj.Path[i].X += dx
			obj.Path[i].Y += dy
		}
	})
}

// CompleteStroke turns a finished freehand gesture into a path object.
func (c *Canvas) CompleteStroke(points []models.Point, stroke string, width float64) (string, error) {
	if len(points) == 0 {
		return "", ErrEmptyStroke
	}

	minX, minY, maxX, maxY := bounds(points)
	obj := models.SceneObject{
		ID:          c.ids.Generate(),
		Type:        models.ObjectPath,
		Left:        minX,
		Top:         minY,
		Width:       maxX - minX,
		Height:      maxY - minY,
		Stroke:      stroke,
		StrokeWidth: width,
		Path:        append([]models.Point(nil), points...),
	}

	if err := c.mutate(func(s *models.Scene) error {
		s.Objects = append(s.Objects, obj)
		return nil
	}); err != nil {
		return "", err
	}

	c.emit(models.MutationPathCreated, obj.ID)
	return obj.ID, nil
}

// ChangeText replaces the content of an i-text object.
func (c *Canvas) ChangeText(id, text string) error {
	if err := c.mutate(func(s *models.Scene) error {
		i := indexOf(s.Objects, id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrObjectNotFound, id)
		}
		if s.Objects[i].Type != models.ObjectText {
			return fmt.Errorf("%w: %s", ErrNotEditable, id)
		}
		s.Objects[i].Text = text
		return nil
	}); err != nil {
		return err
	}

	c.emit(models.MutationTextChanged, id)
	return nil
}

// Remove deletes the object with the given id.
func (c *Canvas) Remove(id string) error {
	if err := c.mutate(func(s *models.Scene) error {
		i := indexOf(s.Objects, id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrObjectNotFound, id)
		}
		s.Objects = append(s.Objects[:i], s.Objects[i+1:]...)
		return nil
	}); err != nil {
		return err
	}

	c.emit(models.MutationObjectRemoved, id)
	return nil
}

// SetBackground changes the canvas background colour.
func (c *Canvas) SetBackground(color string) error {
	if err := c.mutate(func(s *models.Scene) error {
		s.Background = color
		return nil
	}); err != nil {
		return err
	}

	c.emit(models.MutationObjectModified, "")
	return nil
}

// Clear removes every object and resets the background to white.
func (c *Canvas) Clear() error {
	if err := c.mutate(func(s *models.Scene) error {
		s.Objects = []models.SceneObject{}
		s.Background = models.DefaultBackground
		return nil
	}); err != nil {
		return err
	}

	c.emit(models.MutationCleared, "")
	return nil
}

// ObjectAt returns the topmost object whose bounds contain (x, y).
func (c *Canvas) ObjectAt(x, y float64) (models.SceneObject, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i := len(c.scene.Objects) - 1; i >= 0; i-- {
		obj := c.scene.Objects[i]
		if contains(obj, x, y) {
			return obj, true
		}
	}
	return models.SceneObject{}, false
}

// Close drops all listeners and pending replays. Later edits fail with
// ErrClosed.
func (c *Canvas) Close() {
	c.mu.Lock()
	c.closed = true
	for t := range c.replays {
		t.Stop()
	}
	c.replays = make(map[*time.Timer]struct{})
	c.mu.Unlock()

	c.mutations.Clear()
}

func (c *Canvas) mutate(fn func(s *models.Scene) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	return fn(&c.scene)
}

func (c *Canvas) emit(kind models.MutationKind, id string) {
	c.logger.Debug().Str("kind", string(kind)).Str("object_id", id).Msg("scene mutation")
	c.mutations.Emit(models.MutationEvent{Kind: kind, ObjectID: id})
}

func indexOf(objects []models.SceneObject, id string) int {
	for i, obj := range objects {
		if obj.ID == id {
			return i
		}
	}
	return -1
}

func bounds(points []models.Point) (minX, minY, maxX, maxY float64) {
	minX, minY = points[0].X, points[0].Y
	maxX, maxY = minX, minY
	for _, p := range points[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return minX, minY, maxX, maxY
}

func contains(obj models.SceneObject, x, y float64) bool {
	w, h := extent(obj)
	return x >= obj.Left && x <= obj.Left+w && y >= obj.Top && y <= obj.Top+h
}

// extent returns the drawn width and height of obj, applying scale.
func extent(obj models.SceneObject) (float64, float64) {
	w, h := obj.Width, obj.Height
	if obj.ScaleX > 0 {
		w *= obj.ScaleX
	}
	if obj.ScaleY > 0 {
		h *= obj.ScaleY
	}
	if obj.Type == models.ObjectText && w == 0 {
		size := obj.FontSize
		if size <= 0 {
			size = DefaultFontSize
		}
		w = float64(len([]rune(obj.Text))) * size * 0.6
		h = size
	}
	return w, h
}

var _ Adapter = (*Canvas)(nil)
