// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-canvas-sync/internal/adapter"
	"github.com/MKhiriev/go-canvas-sync/internal/logger"
	"github.com/MKhiriev/go-canvas-sync/internal/scene"
	"github.com/MKhiriev/go-canvas-sync/internal/service"
	"github.com/MKhiriev/go-canvas-sync/models"
)

type mode int

const (
	modeDraw mode = iota
	modeText
	modeSave
	modeTemplates
	modeConfirmDelete
	modeRooms
	modeInfo
)

const refreshInterval = 100 * time.Millisecond

// Canvas area used until the terminal reports its size.
const (
	defaultCols = 78
	defaultRows = 18
	minCols     = 10
	minRows     = 4
)

var palette = []string{"#000000", "#e03131", "#2f9e44", "#1971c2", "#f08c00", "#9c36b5"}

var backgrounds = []string{models.DefaultBackground, "#fff9db", "#e7f5ff", "#f1f3f5"}

// Deps are the collaborators of the canvas screen. Session, Templates and
// Relay may be nil; the matching features then report themselves as
// unavailable.
type Deps struct {
	Canvas    *scene.Canvas
	Session   SyncSession
	Templates service.TemplateService
	Relay     adapter.RelayAdapter
	BuildInfo models.AppBuildInfo
	Logger    *logger.Logger
}

type canvasModel struct {
	ctx  context.Context
	deps Deps

	width, height    int
	cursorX, cursorY int

	mode  mode
	color int

	// pen is down while a freehand stroke is being recorded
	pen    bool
	stroke []models.Point
	// anchor is the first corner of a pending rect or circle
	anchor *models.Point
	shape  models.ObjectType

	textInput textinput.Model
	editingID string
	nameInput textinput.Model

	templates   []models.Template
	templateIdx int
	rooms       []models.RoomInfo
	relay       *models.VersionResponse
	loading     bool

	status string
	errMsg string
}

func newCanvasModel(ctx context.Context, deps Deps) canvasModel {
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}

	text := textinput.New()
	text.Placeholder = "text"
	text.CharLimit = 200

	name := textinput.New()
	name.Placeholder = "template name"
	name.CharLimit = 64

	m := canvasModel{
		ctx:       ctx,
		deps:      deps,
		textInput: text,
		nameInput: name,
	}
	m.cursorX, m.cursorY = defaultCols/2, defaultRows/2
	return m
}

func (m canvasModel) Init() tea.Cmd {
	return refreshTick()
}

func refreshTick() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg { return refreshMsg{} })
}

func (m canvasModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.clampCursor()
		return m, nil
	case refreshMsg:
		return m, refreshTick()
	case copiedMsg:
		if msg.err != nil {
			m.errMsg = "copy failed: " + msg.err.Error()
		} else {
			m.setStatus("scene copied to clipboard")
		}
		return m, nil
	case templatesLoadedMsg, templateSavedMsg, templateAppliedMsg, templateDeletedMsg:
		return m.updateTemplateResult(msg)
	case roomsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = "rooms: " + msg.err.Error()
			return m, nil
		}
		m.rooms = msg.rooms
		return m, nil
	case versionLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = "relay version: " + msg.err.Error()
			return m, nil
		}
		m.relay = &msg.version
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInputs(msg)
	}
	if keyMsg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case modeText:
		return m.updateText(keyMsg)
	case modeSave:
		return m.updateSave(keyMsg)
	case modeTemplates:
		return m.updateTemplates(keyMsg)
	case modeConfirmDelete:
		return m.updateConfirmDelete(keyMsg)
	case modeRooms, modeInfo:
		if key.Matches(keyMsg, keys.esc) || key.Matches(keyMsg, keys.quit) {
			m.mode = modeDraw
		}
		return m, nil
	default:
		return m.updateDraw(keyMsg)
	}
}

// updateInputs forwards non-key messages such as cursor blinks to the
// focused text input.
func (m canvasModel) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.mode {
	case modeText:
		m.textInput, cmd = m.textInput.Update(msg)
	case modeSave:
		m.nameInput, cmd = m.nameInput.Update(msg)
	}
	return m, cmd
}

func (m canvasModel) updateDraw(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errMsg = ""

	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.esc):
		m.cancelPending()
		m.setStatus("")
	case key.Matches(msg, keys.up):
		m.moveCursor(0, -1)
	case key.Matches(msg, keys.down):
		m.moveCursor(0, 1)
	case key.Matches(msg, keys.left):
		m.moveCursor(-1, 0)
	case key.Matches(msg, keys.right):
		m.moveCursor(1, 0)
	case key.Matches(msg, keys.moveUp):
		m.dragObject(0, -1)
	case key.Matches(msg, keys.moveDown):
		m.dragObject(0, 1)
	case key.Matches(msg, keys.moveLeft):
		m.dragObject(-1, 0)
	case key.Matches(msg, keys.moveRight):
		m.dragObject(1, 0)
	case key.Matches(msg, keys.pen):
		m.togglePen()
	case key.Matches(msg, keys.rect):
		m.placeShape(models.ObjectRect)
	case key.Matches(msg, keys.circle):
		m.placeShape(models.ObjectCircle)
	case key.Matches(msg, keys.text):
		return m.startText()
	case key.Matches(msg, keys.delete):
		m.deleteUnderCursor()
	case key.Matches(msg, keys.clear):
		m.clearCanvas()
	case key.Matches(msg, keys.color):
		m.color = (m.color + 1) % len(palette)
		m.setStatus("colour " + palette[m.color])
	case key.Matches(msg, keys.background):
		m.cycleBackground()
	case key.Matches(msg, keys.copy):
		return m, m.cmdCopyScene()
	case key.Matches(msg, keys.save):
		return m.startSave()
	case key.Matches(msg, keys.templates):
		return m.openTemplates()
	case key.Matches(msg, keys.rooms):
		return m.openRooms()
	case key.Matches(msg, keys.info):
		return m.openInfo()
	}
	return m, nil
}

func (m canvasModel) updateText(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.closeText()
		return m, nil
	case key.Matches(msg, keys.enter):
		m.commitText(m.textInput.Value())
		m.closeText()
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m canvasModel) updateSave(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.closeSave()
		return m, nil
	case key.Matches(msg, keys.enter):
		name := m.nameInput.Value()
		m.closeSave()
		m.setStatus("saving template...")
		return m, m.cmdSaveTemplate(name)
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *canvasModel) setStatus(s string) {
	m.status = s
}

func (m canvasModel) session() (SyncSession, bool) {
	return m.deps.Session, m.deps.Session != nil
}
