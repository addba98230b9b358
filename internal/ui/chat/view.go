// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/docquery-tui/internal/model"
)

// View renders the conversation screen.
func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}

	if m.settingsOpen {
		return m.settingsView()
	}

	var sb strings.Builder
	sb.WriteString(m.headerView())
	sb.WriteString("\n")
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")
	sb.WriteString(m.inputView())
	sb.WriteString("\n")
	sb.WriteString(m.statusView())
	return sb.String()
}

func (m *Model) headerView() string {
	title := m.theme.HeaderTitle.Render("docquery")
	return m.theme.Header.Width(m.width).Render(title)
}

func (m *Model) inputView() string {
	if m.session.Busy() {
		thinking := m.spinner.View() + " " + m.theme.ThinkingText.Render("thinking...")
		return m.theme.InputContainer.Width(m.width).Render(thinking)
	}
	return m.theme.InputContainer.Width(m.width).Render(m.input.View())
}

func (m *Model) statusView() string {
	if m.errText != "" {
		return m.theme.ErrorBox.Render(m.errText)
	}

	parts := []string{
		m.theme.StatusKey.Render("enter") + m.theme.StatusDesc.Render(" ask"),
		m.theme.StatusKey.Render("C-o") + m.theme.StatusDesc.Render(" documents"),
		m.theme.StatusKey.Render("C-s") + m.theme.StatusDesc.Render(" settings"),
		m.theme.StatusKey.Render("C-l") + m.theme.StatusDesc.Render(" clear"),
		m.theme.StatusKey.Render("C-x") + m.theme.StatusDesc.Render(" log out"),
		m.theme.StatusKey.Render("C-c") + m.theme.StatusDesc.Render(" quit"),
	}
	return m.theme.StatusBar.Width(m.width).Render(strings.Join(parts, "  "))
}

// refreshTranscript re-renders the whole conversation into the viewport.
func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}

	history := m.session.History()
	if len(history) == 0 {
		m.viewport.SetContent(m.theme.Placeholder.Render(
			"No messages yet. Upload documents with C-o, then ask away."))
		return
	}

	blocks := make([]string, 0, len(history))
	for _, msg := range history {
		blocks = append(blocks, m.renderMessage(msg))
	}
	m.viewport.SetContent(strings.Join(blocks, "\n\n"))
}

func (m *Model) renderMessage(msg model.Message) string {
	label := m.theme.StatusDesc.Render(msg.Role.DisplayName())

	switch {
	case msg.Role == model.RoleQuestion:
		body := m.theme.QuestionBubble.Width(m.width - 4).Render(msg.Text)
		return lipgloss.JoinVertical(lipgloss.Left, label, body)

	case msg.IsError:
		body := m.theme.ErrorBubble.Width(m.width - 4).Render(msg.Text)
		return lipgloss.JoinVertical(lipgloss.Left, label, body)

	default:
		text := msg.Text
		if m.renderer != nil {
			if rendered, err := m.renderer.Render(text); err == nil {
				text = strings.TrimRight(rendered, "\n")
			}
		}
		body := m.theme.AnswerBubble.Width(m.width - 2).Render(text)

		if citation := msg.FormatSources(); citation != "" {
			body = lipgloss.JoinVertical(lipgloss.Left, body,
				m.theme.SourceLine.Render(citation))
		}
		return lipgloss.JoinVertical(lipgloss.Left, label, body)
	}
}

// =============================================================================
// SETTINGS OVERLAY
// =============================================================================

func (m *Model) settingsView() string {
	rows := []struct {
		field settingsField
		label string
		value bool
	}{
		{fieldUseCloud, "Use cloud model", m.draft.UseCloudModel},
		{fieldDocSearch, "Search documents", m.draft.EnableDocumentSearch},
		{fieldHandleURLs, "Handle URLs in questions", m.draft.HandleURLs},
		{fieldCheckDB, "Check database", m.draft.CheckDatabase},
	}

	var sb strings.Builder
	sb.WriteString(m.theme.FormTitle.Render("Settings"))
	sb.WriteString("\n")
	for _, row := range rows {
		mark := "[ ]"
		if row.value {
			mark = "[x]"
		}
		line := mark + " " + row.label
		if row.field == m.cursor {
			line = m.theme.FocusedField.Render("> " + line)
		} else {
			line = m.theme.BlurredField.Render("  " + line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.theme.FormHint.Render("space toggle · esc save and close"))

	box := m.theme.FormBox.Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
