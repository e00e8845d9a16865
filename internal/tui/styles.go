// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/go-canvas-sync/models"
)

var (
	appStyle        = lipgloss.NewStyle().Padding(0, 1)
	titleStyle      = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e03131"))
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	canvasBoxStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder())
	cursorStyle     = lipgloss.NewStyle().Reverse(true)
	selectedStyle   = lipgloss.NewStyle().Bold(true).Reverse(true)
)

// statusStyles colours the connection indicator.
var statusStyles = map[models.ConnectionStatus]lipgloss.Style{
	models.StatusConnecting:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f08c00")),
	models.StatusConnected:    lipgloss.NewStyle().Foreground(lipgloss.Color("#2f9e44")),
	models.StatusDisconnected: lipgloss.NewStyle().Foreground(lipgloss.Color("#e03131")),
}
