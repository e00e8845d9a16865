// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/go-canvas-sync/models"
)

func renderBuildInfoWindow(info models.AppBuildInfo, relay *models.VersionResponse, loading bool) string {
	var b strings.Builder

	b.WriteString("Application: go-canvas-sync\n")
	b.WriteString("Version: " + valueOrNA(info.BuildVersion()) + "\n")
	b.WriteString("Date: " + valueOrNA(info.BuildDate()) + "\n")
	b.WriteString("Commit: " + valueOrNA(info.BuildCommit()) + "\n\n")

	switch {
	case relay != nil:
		b.WriteString("Relay version: " + valueOrNA(relay.Version) + "\n")
		b.WriteString("Relay date: " + valueOrNA(relay.Date) + "\n")
		b.WriteString("Relay commit: " + valueOrNA(relay.Commit))
	case loading:
		b.WriteString("Relay: loading...")
	default:
		b.WriteString("Relay: N/A")
	}

	return renderPage(titleStyle.Render("ABOUT"), b.String(), "esc: back")
}
