// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-canvas-sync/internal/scene"
	"github.com/MKhiriev/go-canvas-sync/models"
)

const strokeWidth = 2

// gridSize is the canvas area in cells for the current terminal size.
func (m canvasModel) gridSize() (int, int) {
	if m.width == 0 || m.height == 0 {
		return defaultCols, defaultRows
	}
	// padding and border take four columns; header, border, footer and
	// help take six rows
	return max(m.width-4, minCols), max(m.height-6, minRows)
}

// sceneSize returns the logical dimensions of the scene.
func sceneSize(s models.Scene) (float64, float64) {
	w, h := float64(s.Width), float64(s.Height)
	if w <= 0 {
		w = models.DefaultWidth
	}
	if h <= 0 {
		h = models.DefaultHeight
	}
	return w, h
}

// cursorPoint maps the cursor cell to the scene point at the cell centre.
func (m canvasModel) cursorPoint() models.Point {
	cols, rows := m.gridSize()
	w, h := sceneSize(m.deps.Canvas.Scene())
	return models.Point{
		X: (float64(m.cursorX) + 0.5) * w / float64(cols),
		Y: (float64(m.cursorY) + 0.5) * h / float64(rows),
	}
}

// cellOf maps a scene point to its cell.
func (m canvasModel) cellOf(p models.Point, s models.Scene) (int, int) {
	cols, rows := m.gridSize()
	w, h := sceneSize(s)
	return int(math.Floor(p.X * float64(cols) / w)), int(math.Floor(p.Y * float64(rows) / h))
}

// cellStep is the scene distance of one cell.
func (m canvasModel) cellStep() (float64, float64) {
	cols, rows := m.gridSize()
	w, h := sceneSize(m.deps.Canvas.Scene())
	return w / float64(cols), h / float64(rows)
}

func (m *canvasModel) clampCursor() {
	cols, rows := m.gridSize()
	m.cursorX = min(max(m.cursorX, 0), cols-1)
	m.cursorY = min(max(m.cursorY, 0), rows-1)
}

func (m *canvasModel) moveCursor(dx, dy int) {
	m.cursorX += dx
	m.cursorY += dy
	m.clampCursor()

	if m.pen {
		m.stroke = append(m.stroke, m.cursorPoint())
	}
}

func (m *canvasModel) togglePen() {
	if !m.pen {
		m.anchor = nil
		m.pen = true
		m.stroke = []models.Point{m.cursorPoint()}
		m.setStatus("pen down: move to draw, space to finish")
		return
	}

	m.pen = false
	points := m.stroke
	m.stroke = nil
	if _, err := m.deps.Canvas.CompleteStroke(points, palette[m.color], strokeWidth); err != nil {
		m.report("stroke", err)
		return
	}
	m.setStatus(fmt.Sprintf("stroke of %d points added", len(points)))
}

// placeShape records the first corner on the first press and adds the
// shape on the second.
func (m *canvasModel) placeShape(shape models.ObjectType) {
	m.pen, m.stroke = false, nil

	p := m.cursorPoint()
	if m.anchor == nil || m.shape != shape {
		m.anchor = &p
		m.shape = shape
		m.setStatus(fmt.Sprintf("%s: move to the opposite corner and press again", shape))
		return
	}

	a := *m.anchor
	m.anchor = nil
	obj := models.SceneObject{
		Type:        shape,
		Left:        math.Min(a.X, p.X),
		Top:         math.Min(a.Y, p.Y),
		Width:       math.Abs(p.X - a.X),
		Height:      math.Abs(p.Y - a.Y),
		Stroke:      palette[m.color],
		StrokeWidth: strokeWidth,
	}
	if _, err := m.deps.Canvas.Add(obj); err != nil {
		m.report(string(shape), err)
		return
	}
	m.setStatus(string(shape) + " added")
}

func (m *canvasModel) cancelPending() {
	m.pen, m.stroke, m.anchor = false, nil, nil
}

// startText edits the text under the cursor or starts a new one.
func (m canvasModel) startText() (tea.Model, tea.Cmd) {
	m.cancelPending()
	m.editingID = ""
	m.textInput.SetValue("")

	p := m.cursorPoint()
	if obj, ok := m.deps.Canvas.ObjectAt(p.X, p.Y); ok && obj.Type == models.ObjectText {
		m.editingID = obj.ID
		m.textInput.SetValue(obj.Text)
	}

	m.mode = modeText
	return m, m.textInput.Focus()
}

func (m *canvasModel) commitText(text string) {
	if m.editingID != "" {
		if err := m.deps.Canvas.ChangeText(m.editingID, text); err != nil {
			m.report("text", err)
			return
		}
		m.setStatus("text changed")
		return
	}
	if text == "" {
		return
	}

	p := m.cursorPoint()
	if _, err := m.deps.Canvas.Add(models.SceneObject{
		Type:     models.ObjectText,
		Left:     p.X,
		Top:      p.Y,
		Text:     text,
		Fill:     palette[m.color],
		FontSize: scene.DefaultFontSize,
	}); err != nil {
		m.report("text", err)
		return
	}
	m.setStatus("text added")
}

func (m *canvasModel) closeText() {
	m.mode = modeDraw
	m.editingID = ""
	m.textInput.Blur()
	m.textInput.SetValue("")
}

func (m *canvasModel) deleteUnderCursor() {
	p := m.cursorPoint()
	obj, ok := m.deps.Canvas.ObjectAt(p.X, p.Y)
	if !ok {
		m.setStatus("nothing under the cursor")
		return
	}
	if err := m.deps.Canvas.Remove(obj.ID); err != nil {
		m.report("delete", err)
		return
	}
	m.setStatus(string(obj.Type) + " deleted")
}

// dragObject moves the object under the cursor by one cell and the cursor
// with it.
func (m *canvasModel) dragObject(dx, dy int) {
	p := m.cursorPoint()
	obj, ok := m.deps.Canvas.ObjectAt(p.X, p.Y)
	if !ok {
		m.setStatus("nothing under the cursor")
		return
	}

	sx, sy := m.cellStep()
	if err := m.deps.Canvas.Move(obj.ID, float64(dx)*sx, float64(dy)*sy); err != nil {
		m.report("move", err)
		return
	}
	m.cursorX += dx
	m.cursorY += dy
	m.clampCursor()
}

func (m *canvasModel) clearCanvas() {
	m.cancelPending()
	if err := m.deps.Canvas.Clear(); err != nil {
		m.report("clear", err)
		return
	}
	m.setStatus("canvas cleared")
}

// cycleBackground moves the scene to the next background colour. A colour
// set by a peer that is not in the list restarts the cycle.
func (m *canvasModel) cycleBackground() {
	current := m.deps.Canvas.Scene().Background
	next := backgrounds[0]
	for i, bg := range backgrounds {
		if strings.EqualFold(bg, current) {
			next = backgrounds[(i+1)%len(backgrounds)]
			break
		}
	}

	if err := m.deps.Canvas.SetBackground(next); err != nil {
		m.report("background", err)
		return
	}
	m.setStatus("background " + next)
}

func (m *canvasModel) report(action string, err error) {
	m.deps.Logger.Warn().Err(err).Str("action", action).Msg("canvas edit failed")
	if errors.Is(err, scene.ErrClosed) {
		m.errMsg = "canvas is closed"
		return
	}
	m.errMsg = action + ": " + err.Error()
}
