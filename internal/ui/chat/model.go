// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/jeranaias/docquery-tui/internal/api"
	"github.com/jeranaias/docquery-tui/internal/session"
	"github.com/jeranaias/docquery-tui/internal/settings"
	"github.com/jeranaias/docquery-tui/internal/ui/styles"
)

// settingsField indexes the toggles in the settings overlay.
type settingsField int

const (
	fieldUseCloud settingsField = iota
	fieldDocSearch
	fieldHandleURLs
	fieldCheckDB
	fieldCount
)

// Model is the conversation view: a scrolling transcript, an input line,
// and an optional settings overlay.
type Model struct {
	theme    *styles.Theme
	keys     KeyMap
	api      *api.Client
	session  *session.Manager
	settings *settings.Store
	logger   *zap.Logger

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	markdown bool

	width  int
	height int
	ready  bool

	// Settings overlay state
	settingsOpen bool
	cursor       settingsField
	draft        api.UserSettings

	errText string
}

// New builds the chat view. The glamour renderer is created lazily on
// the first resize, once the terminal width is known.
func New(theme *styles.Theme, client *api.Client, sess *session.Manager, store *settings.Store, markdown bool, logger *zap.Logger) *Model {
	input := textinput.New()
	input.Placeholder = "Ask a question about your documents..."
	input.Prompt = "> "
	input.PromptStyle = theme.InputPrompt
	input.PlaceholderStyle = theme.Placeholder
	input.CharLimit = 2000
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = theme.Spinner

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Model{
		theme:    theme,
		keys:     DefaultKeyMap(),
		api:      client,
		session:  sess,
		settings: store,
		logger:   logger,
		input:    input,
		spinner:  spin,
		markdown: markdown,
	}
}

// Init loads the user settings and starts the spinner ticker.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadSettings(), textinput.Blink)
}

// Busy reports whether an answer is pending.
func (m *Model) Busy() bool {
	return m.session.Busy()
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	headerHeight := 1
	inputHeight := 3
	statusHeight := 1
	vpHeight := height - headerHeight - inputHeight - statusHeight
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}

	if m.markdown {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width-4),
		)
		if err != nil {
			m.logger.Warn("markdown renderer unavailable", zap.Error(err))
			m.renderer = nil
		} else {
			m.renderer = renderer
		}
	}

	m.refreshTranscript()
}
