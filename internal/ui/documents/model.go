// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package documents

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/docquery-tui/internal/api"
	"github.com/jeranaias/docquery-tui/internal/corpus"
	"github.com/jeranaias/docquery-tui/internal/ui/styles"
)

// mode is the document view's input mode.
type mode int

const (
	modeList mode = iota
	modeFilter
	modeUpload
	modeConfirmDelete
	modeConfirmClear
)

// Model is the corpus management view: a filterable document list with
// toggle, upload, delete, and clear-all operations.
type Model struct {
	theme  *styles.Theme
	corpus *corpus.Manager
	logger *zap.Logger

	mode     mode
	visible  []api.Document
	selected int

	filter textinput.Model
	upload textinput.Model

	// pendingDelete holds the target of an open delete confirmation.
	pendingDelete api.Document

	width   int
	height  int
	errText string
	notice  string
}

func New(theme *styles.Theme, mgr *corpus.Manager, logger *zap.Logger) *Model {
	filter := textinput.New()
	filter.Placeholder = "filter by filename"
	filter.Prompt = "/ "
	filter.CharLimit = 128

	upload := textinput.New()
	upload.Placeholder = "/path/to/document.pdf"
	upload.Prompt = "upload: "
	upload.CharLimit = 512

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Model{
		theme:  theme,
		corpus: mgr,
		logger: logger,
		filter: filter,
		upload: upload,
	}
}

// Init fetches the document list.
func (m *Model) Init() tea.Cmd {
	return m.fetchList()
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
}

// refresh rebuilds the visible slice from the manager's list and the
// current filter, clamping the selection.
func (m *Model) refresh() {
	term := m.filter.Value()
	if term == "" {
		m.visible = m.corpus.SortedByFilename()
	} else {
		m.visible = m.corpus.Filter(term)
	}
	if m.selected >= len(m.visible) {
		m.selected = len(m.visible) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *Model) current() (api.Document, bool) {
	if len(m.visible) == 0 || m.selected >= len(m.visible) {
		return api.Document{}, false
	}
	return m.visible[m.selected], true
}
