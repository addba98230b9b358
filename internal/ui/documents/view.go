// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package documents

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/docquery-tui/internal/util"
)

// View renders the document management screen.
func (m *Model) View() string {
	switch m.mode {
	case modeConfirmDelete:
		return m.confirmView("Delete " + m.pendingDelete.Filename + "?")
	case modeConfirmClear:
		return m.confirmView("Delete ALL documents? This cannot be undone.")
	}

	var sb strings.Builder
	sb.WriteString(m.theme.HeaderTitle.Render("Documents"))
	sb.WriteString("  ")
	sb.WriteString(m.theme.StatusDesc.Render(strconv.Itoa(m.corpus.Len()) + " in corpus"))
	sb.WriteString("\n\n")

	switch m.mode {
	case modeFilter:
		sb.WriteString(m.filter.View())
		sb.WriteString("\n\n")
	case modeUpload:
		sb.WriteString(m.upload.View())
		sb.WriteString("\n\n")
	}

	sb.WriteString(m.listView())
	sb.WriteString("\n")

	if m.errText != "" {
		sb.WriteString(m.theme.ErrorBox.Render(m.errText))
		sb.WriteString("\n")
	} else if m.notice != "" {
		sb.WriteString(m.theme.SuccessMsg.Render(m.notice))
		sb.WriteString("\n")
	}

	sb.WriteString(m.statusView())
	return sb.String()
}

func (m *Model) listView() string {
	if len(m.visible) == 0 {
		if m.filter.Value() != "" {
			return m.theme.Placeholder.Render("no documents match the filter")
		}
		return m.theme.Placeholder.Render("no documents yet; press u to upload one")
	}

	nameWidth := m.width - 16
	if nameWidth < 20 {
		nameWidth = 20
	}

	rows := make([]string, 0, len(m.visible))
	for i, doc := range m.visible {
		state := m.theme.DocInactive.Render("[ ]")
		if m.corpus.TogglePending(doc.ID) {
			state = m.theme.DocPending.Render("[~]")
		} else if doc.Active {
			state = m.theme.DocActive.Render("[x]")
		}

		name := util.PadWidth(util.TruncateWidth(doc.Filename, nameWidth), nameWidth)
		row := state + " " + name

		if i == m.selected {
			rows = append(rows, m.theme.DocRowSelected.Render(row))
		} else {
			rows = append(rows, m.theme.DocRow.Render(row))
		}
	}
	return strings.Join(rows, "\n")
}

func (m *Model) confirmView(prompt string) string {
	body := m.theme.ConfirmText.Render(prompt) + "\n\n" +
		m.theme.FormHint.Render("y confirm · any other key cancel")
	box := m.theme.ConfirmBox.Render(body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) statusView() string {
	parts := []string{
		m.theme.StatusKey.Render("space") + m.theme.StatusDesc.Render(" toggle"),
		m.theme.StatusKey.Render("u") + m.theme.StatusDesc.Render(" upload"),
		m.theme.StatusKey.Render("d") + m.theme.StatusDesc.Render(" delete"),
		m.theme.StatusKey.Render("D") + m.theme.StatusDesc.Render(" clear all"),
		m.theme.StatusKey.Render("/") + m.theme.StatusDesc.Render(" filter"),
		m.theme.StatusKey.Render("esc") + m.theme.StatusDesc.Render(" back"),
	}
	return m.theme.StatusBar.Width(m.width).Render(strings.Join(parts, "  "))
}
