// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/docquery-tui/internal/session"
)

// Update handles chat view messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.settingsOpen {
			return m.updateSettings(msg)
		}
		return m.updateKeys(msg)

	case AnswerMsg:
		m.refreshTranscript()
		m.viewport.GotoBottom()
		return m, nil

	case SettingsLoadedMsg:
		m.draft = msg.Settings
		return m, nil

	case SettingsSavedMsg:
		if msg.Err != nil {
			m.errText = "settings save failed: " + msg.Err.Error()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.session.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateKeys(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.ScrollUp):
		m.viewport.LineUp(1)
		return m, nil

	case key.Matches(msg, m.keys.ScrollDn):
		m.viewport.LineDown(1)
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		if err := m.session.Clear(); err != nil {
			m.errText = "wait for the current answer before clearing"
			return m, nil
		}
		m.errText = ""
		m.refreshTranscript()
		return m, func() tea.Msg { return ConversationClearedMsg{} }

	case key.Matches(msg, m.keys.Documents):
		return m, func() tea.Msg { return OpenDocumentsMsg{} }

	case key.Matches(msg, m.keys.Logout):
		return m, func() tea.Msg { return LogoutMsg{} }

	case key.Matches(msg, m.keys.Settings):
		m.settingsOpen = true
		m.cursor = fieldUseCloud
		m.draft = m.settings.Current()
		if !m.settings.Loaded() {
			// The startup fetch may still be in flight or may have been
			// interrupted; retry so the overlay edits live values.
			return m, m.loadSettings()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit pushes the input line through the session manager. A busy
// session swallows the submit; the input keeps its text so nothing the
// user typed is lost.
func (m *Model) submit() (*Model, tea.Cmd) {
	question, err := m.session.Submit(m.input.Value())
	switch {
	case errors.Is(err, session.ErrEmptyQuestion):
		return m, nil
	case errors.Is(err, session.ErrBusy):
		m.errText = "still working on the previous question"
		return m, nil
	case err != nil:
		m.errText = err.Error()
		return m, nil
	}

	m.errText = ""
	m.input.Reset()
	m.refreshTranscript()
	m.viewport.GotoBottom()

	return m, tea.Batch(
		m.spinner.Tick,
		m.fetchAnswer(question.Text),
		func() tea.Msg { return QuestionSentMsg{Question: question} },
	)
}

// =============================================================================
// SETTINGS OVERLAY
// =============================================================================

func (m *Model) updateSettings(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < fieldCount-1 {
			m.cursor++
		}
	case " ", "enter":
		m.toggleField()
	case "esc", "ctrl+s":
		m.settingsOpen = false
		return m, m.saveSettings(m.draft)
	}
	return m, nil
}

func (m *Model) toggleField() {
	switch m.cursor {
	case fieldUseCloud:
		m.draft.UseCloudModel = !m.draft.UseCloudModel
	case fieldDocSearch:
		m.draft.EnableDocumentSearch = !m.draft.EnableDocumentSearch
	case fieldHandleURLs:
		m.draft.HandleURLs = !m.draft.HandleURLs
	case fieldCheckDB:
		m.draft.CheckDatabase = !m.draft.CheckDatabase
	}
}
