// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package scene

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/MKhiriev/go-canvas-sync/models"
)

// DefaultFontSize is used for text objects without an explicit size.
const DefaultFontSize = 20

// Thumbnail dimensions in character cells.
const (
	ThumbnailCols = 40
	ThumbnailRows = 15
)

// Cell is one character of a rasterized scene.
type Cell struct {
	Rune  rune
	Color string
}

// Rasterize projects scene onto a cols x rows character grid. Later objects
// are drawn over earlier ones.
func Rasterize(scene models.Scene, cols, rows int) [][]Cell {
	grid := make([][]Cell, rows)
	for y := range grid {
		grid[y] = make([]Cell, cols)
		for x := range grid[y] {
			grid[y][x] = Cell{Rune: ' ', Color: scene.Background}
		}
	}
	if cols == 0 || rows == 0 {
		return grid
	}

	width, height := scene.Width, scene.Height
	if width <= 0 {
		width = models.DefaultWidth
	}
	if height <= 0 {
		height = models.DefaultHeight
	}
	p := projector{sx: float64(cols) / float64(width), sy: float64(rows) / float64(height), grid: grid}

	for _, obj := range scene.Objects {
		p.draw(obj)
	}
	return grid
}

// RenderText rasterizes scene into plain text lines.
func RenderText(scene models.Scene, cols, rows int) string {
	grid := Rasterize(scene, cols, rows)
	lines := make([]string, len(grid))
	for y, row := range grid {
		var b strings.Builder
		for _, c := range row {
			b.WriteRune(c.Rune)
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

// Thumbnail renders a serialized scene as a small text preview.
func Thumbnail(state models.SceneState) (string, error) {
	var s models.Scene
	if err := json.Unmarshal(state, &s); err != nil {
		return "", fmt.Errorf("%w: %w", ErrDeserialization, err)
	}
	return RenderText(s, ThumbnailCols, ThumbnailRows), nil
}

type projector struct {
	sx, sy float64
	grid   [][]Cell
}

func (p projector) cell(x, y float64) (int, int) {
	return int(math.Floor(x * p.sx)), int(math.Floor(y * p.sy))
}

func (p projector) set(cx, cy int, r rune, color string) {
	if cy < 0 || cy >= len(p.grid) || cx < 0 || cx >= len(p.grid[cy]) {
		return
	}
	p.grid[cy][cx] = Cell{Rune: r, Color: color}
}

func (p projector) draw(obj models.SceneObject) {
	color := obj.Stroke
	if color == "" {
		color = obj.Fill
	}

	switch obj.Type {
	case models.ObjectRect, models.ObjectImage:
		w, h := extent(obj)
		x0, y0 := p.cell(obj.Left, obj.Top)
		x1, y1 := p.cell(obj.Left+w, obj.Top+h)
		r := '#'
		if obj.Type == models.ObjectImage {
			r = '%'
		}
		for x := x0; x <= x1; x++ {
			p.set(x, y0, r, color)
			p.set(x, y1, r, color)
		}
		for y := y0; y <= y1; y++ {
			p.set(x0, y, r, color)
			p.set(x1, y, r, color)
		}
	case models.ObjectCircle:
		w, h := extent(obj)
		cx, cy := obj.Left+w/2, obj.Top+h/2
		steps := 64
		for i := 0; i < steps; i++ {
			a := 2 * math.Pi * float64(i) / float64(steps)
			x, y := p.cell(cx+w/2*math.Cos(a), cy+h/2*math.Sin(a))
			p.set(x, y, 'o', color)
		}
	case models.ObjectPath:
		for i := range obj.Path {
			if i == 0 {
				x, y := p.cell(obj.Path[0].X, obj.Path[0].Y)
				p.set(x, y, '*', color)
				continue
			}
			x0, y0 := p.cell(obj.Path[i-1].X, obj.Path[i-1].Y)
			x1, y1 := p.cell(obj.Path[i].X, obj.Path[i].Y)
			p.line(x0, y0, x1, y1, '*', color)
		}
	case models.ObjectText:
		x, y := p.cell(obj.Left, obj.Top)
		for i, r := range []rune(obj.Text) {
			p.set(x+i, y, r, obj.Fill)
		}
	}
}

// line draws a Bresenham segment between two cells.
func (p projector) line(x0, y0, x1, y1 int, r rune, color string) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		p.set(x0, y0, r, color)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
