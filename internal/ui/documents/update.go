// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package documents

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/docquery-tui/internal/api"
	"github.com/jeranaias/docquery-tui/internal/corpus"
)

// Update handles document view messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeFilter:
			return m.updateFilter(msg)
		case modeUpload:
			return m.updateUpload(msg)
		case modeConfirmDelete, modeConfirmClear:
			return m.updateConfirm(msg)
		default:
			return m.updateList(msg)
		}

	case ListMsg:
		if msg.Err != nil {
			m.errText = "could not load documents: " + msg.Err.Error()
			return m, nil
		}
		m.errText = ""
		m.refresh()
		return m, nil

	case ToggleDoneMsg:
		if msg.Err != nil {
			// The manager already rolled the flag back.
			m.errText = describeToggleErr(msg.Err)
		}
		m.refresh()
		return m, nil

	case UploadDoneMsg:
		if msg.Err != nil {
			m.errText = msg.Err.Error()
			return m, nil
		}
		m.errText = ""
		if msg.Resp.Message != "" {
			m.notice = msg.Resp.Message
		} else {
			m.notice = "uploaded " + msg.Resp.Filename
		}
		m.refresh()
		return m, nil

	case DeleteDoneMsg:
		if msg.Err != nil {
			m.errText = msg.Err.Error()
		} else {
			m.errText = ""
		}
		m.refresh()
		return m, nil
	}

	return m, nil
}

func describeToggleErr(err error) string {
	if errors.Is(err, corpus.ErrTogglePending) {
		return "that document is still being updated"
	}
	return "toggle failed: " + err.Error()
}

// =============================================================================
// LIST MODE
// =============================================================================

func (m *Model) updateList(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.visible)-1 {
			m.selected++
		}
	case " ", "enter":
		if doc, ok := m.current(); ok {
			m.notice = ""
			return m, m.runToggle(doc.ID, !doc.Active)
		}
	case "/":
		m.mode = modeFilter
		m.filter.Focus()
		return m, nil
	case "u":
		m.mode = modeUpload
		m.upload.Reset()
		m.upload.Focus()
		return m, nil
	case "d", "delete":
		if doc, ok := m.current(); ok {
			m.pendingDelete = doc
			m.mode = modeConfirmDelete
		}
	case "D":
		if m.corpus.Len() > 0 {
			m.mode = modeConfirmClear
		}
	case "r":
		return m, m.fetchList()
	case "esc", "q":
		return m, func() tea.Msg { return CloseMsg{} }
	}
	return m, nil
}

// =============================================================================
// FILTER MODE
// =============================================================================

func (m *Model) updateFilter(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.mode = modeList
		m.filter.Blur()
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.refresh()
	return m, cmd
}

// =============================================================================
// UPLOAD MODE
// =============================================================================

func (m *Model) updateUpload(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		path := strings.TrimSpace(m.upload.Value())
		m.mode = modeList
		m.upload.Blur()
		if path == "" {
			return m, nil
		}
		return m, m.runUpload(path)
	case "esc":
		m.mode = modeList
		m.upload.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.upload, cmd = m.upload.Update(msg)
	return m, cmd
}

// =============================================================================
// CONFIRMATION MODE
// =============================================================================

// updateConfirm requires an explicit y; anything else declines. A
// declined confirmation must leave the corpus untouched.
func (m *Model) updateConfirm(msg tea.KeyMsg) (*Model, tea.Cmd) {
	confirmed := msg.String() == "y" || msg.String() == "Y"
	wasClear := m.mode == modeConfirmClear
	m.mode = modeList

	if !confirmed {
		m.pendingDelete = api.Document{}
		return m, nil
	}

	if wasClear {
		return m, m.runClearAll()
	}
	id := m.pendingDelete.ID
	m.pendingDelete = api.Document{}
	return m, m.runDelete(id)
}
