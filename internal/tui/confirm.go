// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

func renderConfirm(subject string) string {
	content := "Delete \"" + subject + "\"?\n\n"
	content += "y yes    n no"
	return overlayBoxStyle.Render(content)
}
