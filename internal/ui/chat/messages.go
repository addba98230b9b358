// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for the TUI.
//
// This file defines the Bubble Tea message types used by the chat
// interface and the commands that produce them.
package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/docquery-tui/internal/api"
	"github.com/jeranaias/docquery-tui/internal/model"
)

// =============================================================================
// MESSAGES
// =============================================================================

// QuestionSentMsg signals that a question entered the log and the fetch
// is about to start.
type QuestionSentMsg struct {
	Question model.Message
}

// AnswerMsg delivers the resolved answer (or error turn) for the
// in-flight question.
type AnswerMsg struct {
	Answer model.Message
}

// ConversationClearedMsg signals that the log was wiped.
type ConversationClearedMsg struct{}

// SettingsLoadedMsg delivers the user settings after the initial fetch.
type SettingsLoadedMsg struct {
	Settings api.UserSettings
}

// SettingsSavedMsg reports the outcome of a settings save.
type SettingsSavedMsg struct {
	Settings api.UserSettings
	Err      error
}

// OpenDocumentsMsg asks the root model to switch to the document view.
type OpenDocumentsMsg struct{}

// LogoutMsg asks the root model to tear the session down and return to
// the login view.
type LogoutMsg struct{}

// =============================================================================
// COMMANDS
// =============================================================================

// fetchAnswer runs the network half of a submitted question. The session
// manager already holds the question; this resolves it.
func (m *Model) fetchAnswer(question string) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.api.Ask(context.Background(), question)
		answer, rerr := m.session.Resolve(resp, err)
		if rerr != nil {
			// Resolution can only fail if nothing was in flight; treat
			// the response as stray and drop it.
			return nil
		}
		return AnswerMsg{Answer: answer}
	}
}

func (m *Model) loadSettings() tea.Cmd {
	return func() tea.Msg {
		return SettingsLoadedMsg{Settings: m.settings.Load(context.Background())}
	}
}

func (m *Model) saveSettings(next api.UserSettings) tea.Cmd {
	return func() tea.Msg {
		err := m.settings.Save(context.Background(), next)
		return SettingsSavedMsg{Settings: next, Err: err}
	}
}
