// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/go-canvas-sync/internal/scene"
	"github.com/MKhiriev/go-canvas-sync/models"
)

func (m canvasModel) View() string {
	switch m.mode {
	case modeTemplates:
		return appStyle.Render(m.templatesView())
	case modeConfirmDelete:
		t, _ := m.currentTemplate()
		return appStyle.Render(m.templatesView() + "\n\n" + renderConfirm(t.Name))
	case modeRooms:
		return appStyle.Render(m.roomsView())
	case modeInfo:
		return appStyle.Render(renderBuildInfoWindow(m.deps.BuildInfo, m.relay, m.loading))
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(canvasBoxStyle.Render(m.canvasView()))
	b.WriteString("\n")

	switch m.mode {
	case modeText:
		b.WriteString("text: " + m.textInput.View())
	case modeSave:
		b.WriteString("save as: " + m.nameInput.View())
	default:
		if m.errMsg != "" {
			b.WriteString(errorStyle.Render(m.errMsg))
		} else {
			b.WriteString(m.status)
		}
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fitText(drawHelp, m.width-4)))

	return appStyle.Render(b.String())
}

func (m canvasModel) headerView() string {
	room, status := "-", models.StatusDisconnected
	stats := ""
	if s, ok := m.session(); ok {
		room, status = s.Room(), s.Status()
		st := s.Stats()
		stats = fmt.Sprintf("  sent %d  received %d", st.Published, st.RemoteApplied)
	}

	indicator := string(status)
	if style, ok := statusStyles[status]; ok {
		indicator = style.Render("● " + indicator)
	}
	if m.deps.Session == nil {
		indicator = "offline"
	}

	tool := "cursor"
	switch {
	case m.pen:
		tool = "pen"
	case m.anchor != nil:
		tool = string(m.shape)
	}
	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(palette[m.color])).Render("■")

	return fmt.Sprintf("%s  room %s  %s  objects %d  tool %s %s%s",
		titleStyle.Render("canvas"), room, indicator, m.deps.Canvas.Len(), tool, swatch, stats)
}

// canvasView rasterizes the scene and overlays the pending stroke, the
// shape anchor and the cursor.
func (m canvasModel) canvasView() string {
	cols, rows := m.gridSize()
	s := m.deps.Canvas.Scene()
	grid := scene.Rasterize(s, cols, rows)

	mark := func(p models.Point, r rune) {
		x, y := m.cellOf(p, s)
		if y >= 0 && y < rows && x >= 0 && x < cols {
			grid[y][x] = scene.Cell{Rune: r, Color: palette[m.color]}
		}
	}
	for _, p := range m.stroke {
		mark(p, '·')
	}
	if m.anchor != nil {
		mark(*m.anchor, '┼')
	}

	lines := make([]string, rows)
	for y, row := range grid {
		lines[y] = renderRow(row, y == m.cursorY, m.cursorX)
	}
	return strings.Join(lines, "\n")
}

// renderRow styles runs of equally coloured cells together.
func renderRow(row []scene.Cell, hasCursor bool, cursorX int) string {
	var b strings.Builder
	var run strings.Builder
	runColor := ""

	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runColor == "" {
			b.WriteString(run.String())
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runColor)).Render(run.String()))
		}
		run.Reset()
	}

	for x, cell := range row {
		if hasCursor && x == cursorX {
			flush()
			r := cell.Rune
			if r == ' ' {
				r = '+'
			}
			b.WriteString(cursorStyle.Render(string(r)))
			continue
		}

		color := visibleColor(cell)
		if color != runColor {
			flush()
			runColor = color
		}
		run.WriteRune(cell.Rune)
	}
	flush()
	return b.String()
}

// visibleColor drops colours the terminal's default foreground already
// shows well, and the colour of empty cells.
func visibleColor(c scene.Cell) string {
	if c.Rune == ' ' {
		return ""
	}
	switch strings.ToLower(c.Color) {
	case "", "#000000", "#000", "black", "#ffffff", "#fff", "white":
		return ""
	}
	return c.Color
}
