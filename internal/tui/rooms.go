// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

var errRelayUnavailable = errors.New("relay address is not configured")

func (m canvasModel) openRooms() (tea.Model, tea.Cmd) {
	if m.deps.Relay == nil {
		m.errMsg = errRelayUnavailable.Error()
		return m, nil
	}
	m.mode = modeRooms
	m.loading = true
	m.errMsg = ""
	ctx, relay := m.ctx, m.deps.Relay
	return m, func() tea.Msg {
		rooms, err := relay.ListRooms(ctx)
		return roomsLoadedMsg{rooms: rooms, err: err}
	}
}

func (m canvasModel) openInfo() (tea.Model, tea.Cmd) {
	m.mode = modeInfo
	m.errMsg = ""
	if m.deps.Relay == nil {
		return m, nil
	}
	m.loading = true
	ctx, relay := m.ctx, m.deps.Relay
	return m, func() tea.Msg {
		v, err := relay.Version(ctx)
		return versionLoadedMsg{version: v, err: err}
	}
}

func (m canvasModel) cmdCopyScene() tea.Cmd {
	canvas := m.deps.Canvas
	return func() tea.Msg {
		state, err := canvas.Snapshot()
		if err != nil {
			return copiedMsg{err: err}
		}
		return copiedMsg{err: clipboard.WriteAll(string(state))}
	}
}

func (m canvasModel) roomsView() string {
	var b strings.Builder
	switch {
	case m.loading:
		b.WriteString("loading...")
	case m.errMsg != "":
		b.WriteString(errorStyle.Render(m.errMsg))
	case len(m.rooms) == 0:
		b.WriteString("no active rooms")
	default:
		current := ""
		if s, ok := m.session(); ok {
			current = s.Room()
		}
		b.WriteString(fmt.Sprintf("%-24s %12s %6s\n", "ROOM", "PARTICIPANTS", "SLOTS"))
		for _, r := range m.rooms {
			line := fmt.Sprintf("%-24s %12d %6d", fitText(r.Room, 24), r.Participants, r.Slots)
			if r.Room == current {
				line = selectedStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	return renderPage(titleStyle.Render("ROOMS"), b.String(), "esc: back")
}
