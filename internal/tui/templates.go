// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-canvas-sync/internal/service"
	"github.com/MKhiriev/go-canvas-sync/models"
)

var errTemplatesUnavailable = errors.New("templates are unavailable")

func (m canvasModel) startSave() (tea.Model, tea.Cmd) {
	if m.deps.Templates == nil {
		m.errMsg = errTemplatesUnavailable.Error()
		return m, nil
	}
	m.cancelPending()
	m.mode = modeSave
	m.nameInput.SetValue("")
	return m, m.nameInput.Focus()
}

func (m *canvasModel) closeSave() {
	m.mode = modeDraw
	m.nameInput.Blur()
}

func (m canvasModel) openTemplates() (tea.Model, tea.Cmd) {
	if m.deps.Templates == nil {
		m.errMsg = errTemplatesUnavailable.Error()
		return m, nil
	}
	m.cancelPending()
	m.mode = modeTemplates
	m.loading = true
	return m, m.cmdListTemplates()
}

func (m canvasModel) updateTemplates(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc), key.Matches(msg, keys.quit):
		m.mode = modeDraw
	case key.Matches(msg, keys.up):
		if m.templateIdx > 0 {
			m.templateIdx--
		}
	case key.Matches(msg, keys.down):
		if m.templateIdx < len(m.templates)-1 {
			m.templateIdx++
		}
	case key.Matches(msg, keys.enter):
		t, ok := m.currentTemplate()
		if !ok {
			return m, nil
		}
		m.loading = true
		return m, m.cmdApplyTemplate(t.ID)
	case key.Matches(msg, keys.delete), msg.String() == "d":
		if _, ok := m.currentTemplate(); ok {
			m.mode = modeConfirmDelete
		}
	}
	return m, nil
}

func (m canvasModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.yes):
		t, ok := m.currentTemplate()
		m.mode = modeTemplates
		if !ok {
			return m, nil
		}
		m.loading = true
		return m, m.cmdDeleteTemplate(t.ID)
	case key.Matches(msg, keys.no), key.Matches(msg, keys.esc):
		m.mode = modeTemplates
	}
	return m, nil
}

func (m canvasModel) updateTemplateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.loading = false

	switch msg := msg.(type) {
	case templatesLoadedMsg:
		if msg.err != nil {
			m.errMsg = "templates: " + msg.err.Error()
			return m, nil
		}
		m.templates = msg.items
		if m.templateIdx >= len(m.templates) {
			m.templateIdx = max(len(m.templates)-1, 0)
		}
	case templateSavedMsg:
		if msg.err != nil {
			m.errMsg = "save: " + msg.err.Error()
			return m, nil
		}
		m.setStatus(fmt.Sprintf("template %q saved", msg.template.Name))
	case templateAppliedMsg:
		if msg.err != nil {
			m.errMsg = "apply: " + msg.err.Error()
			return m, nil
		}
		m.mode = modeDraw
		m.setStatus(fmt.Sprintf("template %q applied", msg.template.Name))
	case templateDeletedMsg:
		if msg.err != nil {
			m.errMsg = "delete: " + msg.err.Error()
			return m, nil
		}
		if !msg.deleted {
			m.setStatus("template was already gone")
		} else {
			m.setStatus("template deleted")
		}
		m.loading = true
		return m, m.cmdListTemplates()
	}
	return m, nil
}

func (m canvasModel) currentTemplate() (models.Template, bool) {
	if m.templateIdx < 0 || m.templateIdx >= len(m.templates) {
		return models.Template{}, false
	}
	return m.templates[m.templateIdx], true
}

func (m canvasModel) cmdListTemplates() tea.Cmd {
	ctx, svc := m.ctx, m.deps.Templates
	return func() tea.Msg {
		items, err := svc.List(ctx)
		return templatesLoadedMsg{items: items, err: err}
	}
}

func (m canvasModel) cmdSaveTemplate(name string) tea.Cmd {
	ctx, svc, canvas := m.ctx, m.deps.Templates, m.deps.Canvas
	return func() tea.Msg {
		t, err := svc.Save(ctx, models.TemplateInput{Name: strings.TrimSpace(name)}, canvas)
		if errors.Is(err, service.ErrEmptyTemplateName) {
			err = errors.New("name must not be empty")
		}
		return templateSavedMsg{template: t, err: err}
	}
}

func (m canvasModel) cmdApplyTemplate(id string) tea.Cmd {
	ctx, svc, canvas := m.ctx, m.deps.Templates, m.deps.Canvas
	return func() tea.Msg {
		t, err := svc.Apply(ctx, id, canvas)
		return templateAppliedMsg{template: t, err: err}
	}
}

func (m canvasModel) cmdDeleteTemplate(id string) tea.Cmd {
	ctx, svc := m.ctx, m.deps.Templates
	return func() tea.Msg {
		deleted, err := svc.Delete(ctx, id)
		return templateDeletedMsg{id: id, deleted: deleted, err: err}
	}
}

func (m canvasModel) templatesView() string {
	var b strings.Builder
	switch {
	case m.loading:
		b.WriteString("loading...")
	case len(m.templates) == 0:
		b.WriteString("no templates yet, press s on the canvas to save one")
	default:
		for i, t := range m.templates {
			line := fmt.Sprintf("%-24s %s", fitText(t.Name, 24), t.CreatedAt.Format("2006-01-02 15:04"))
			if i == m.templateIdx {
				line = selectedStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		if t, ok := m.currentTemplate(); ok && t.Thumbnail != "" {
			b.WriteString("\n")
			b.WriteString(canvasBoxStyle.Render(t.Thumbnail))
		}
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
	}

	return renderPage(titleStyle.Render("TEMPLATES"), b.String(), "enter: apply  d: delete  esc: back")
}
