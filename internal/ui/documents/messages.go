// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package documents provides the corpus management view for the TUI.
//
// This file defines the Bubble Tea message types and commands used by
// the document list.
package documents

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/docquery-tui/internal/api"
)

// =============================================================================
// MESSAGES
// =============================================================================

// ListMsg delivers a fresh document list, or the error fetching it.
type ListMsg struct {
	Docs []api.Document
	Err  error
}

// ToggleDoneMsg reports the outcome of an active-flag toggle. On failure
// the manager has already rolled the flag back; the view only needs to
// re-read and surface the error.
type ToggleDoneMsg struct {
	ID  string
	Err error
}

// UploadDoneMsg reports the outcome of an upload.
type UploadDoneMsg struct {
	Resp *api.UploadResponse
	Err  error
}

// DeleteDoneMsg reports the outcome of a delete or clear-all.
type DeleteDoneMsg struct {
	Err error
}

// CloseMsg asks the root model to return to the chat view.
type CloseMsg struct{}

// =============================================================================
// COMMANDS
// =============================================================================

func (m *Model) fetchList() tea.Cmd {
	return func() tea.Msg {
		docs, err := m.corpus.List(context.Background())
		return ListMsg{Docs: docs, Err: err}
	}
}

func (m *Model) runToggle(id string, active bool) tea.Cmd {
	return func() tea.Msg {
		err := m.corpus.SetActive(context.Background(), id, active)
		return ToggleDoneMsg{ID: id, Err: err}
	}
}

func (m *Model) runUpload(path string) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.corpus.Upload(context.Background(), path)
		return UploadDoneMsg{Resp: resp, Err: err}
	}
}

// runDelete executes a delete whose confirmation already happened in the
// view; the manager-level gate is pre-answered.
func (m *Model) runDelete(id string) tea.Cmd {
	return func() tea.Msg {
		err := m.corpus.Delete(context.Background(), id, func(string) bool { return true })
		return DeleteDoneMsg{Err: err}
	}
}

func (m *Model) runClearAll() tea.Cmd {
	return func() tea.Msg {
		err := m.corpus.ClearAll(context.Background(), func(string) bool { return true })
		return DeleteDoneMsg{Err: err}
	}
}
