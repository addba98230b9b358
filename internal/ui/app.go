// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui wires the login, chat, and document views into the root
// Bubble Tea model.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/docquery-tui/internal/api"
	"github.com/jeranaias/docquery-tui/internal/auth"
	"github.com/jeranaias/docquery-tui/internal/corpus"
	"github.com/jeranaias/docquery-tui/internal/session"
	"github.com/jeranaias/docquery-tui/internal/settings"
	"github.com/jeranaias/docquery-tui/internal/ui/chat"
	"github.com/jeranaias/docquery-tui/internal/ui/documents"
	"github.com/jeranaias/docquery-tui/internal/ui/login"
	"github.com/jeranaias/docquery-tui/internal/ui/styles"
)

// SessionExpiredMsg is injected from outside the event loop when the
// server rejects the stored credentials. The active view is abandoned
// and the login form takes over.
type SessionExpiredMsg struct{}

// view identifies the active screen.
type view int

const (
	viewLogin view = iota
	viewChat
	viewDocuments
)

// App is the root model.
type App struct {
	theme  *styles.Theme
	guard  *auth.Guard
	logger *zap.Logger

	active view

	login     *login.Model
	chat      *chat.Model
	documents *documents.Model

	width  int
	height int
}

// Deps bundles everything the root model needs.
type Deps struct {
	Theme    *styles.Theme
	API      *api.Client
	Guard    *auth.Guard
	Session  *session.Manager
	Settings *settings.Store
	Corpus   *corpus.Manager
	Markdown bool
	Logger   *zap.Logger
}

// NewApp builds the root model. A valid stored token skips the login
// screen; the first 401 will bounce back to it regardless.
func NewApp(deps Deps) *App {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	app := &App{
		theme:     deps.Theme,
		guard:     deps.Guard,
		logger:    logger,
		login:     login.New(deps.Theme, deps.Guard, logger),
		chat:      chat.New(deps.Theme, deps.API, deps.Session, deps.Settings, deps.Markdown, logger),
		documents: documents.New(deps.Theme, deps.Corpus, logger),
	}

	if deps.Guard.IsAuthenticated() {
		app.active = viewChat
	}
	return app
}

func (a *App) Init() tea.Cmd {
	if a.active == viewChat {
		return a.chat.Init()
	}
	return a.login.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.theme.SetSize(msg.Width, msg.Height)
		// Every view gets the new size so switching needs no reflow.
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		cmds = append(cmds, cmd)
		a.chat, cmd = a.chat.Update(msg)
		cmds = append(cmds, cmd)
		a.documents, cmd = a.documents.Update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}

	case SessionExpiredMsg:
		a.logger.Warn("session expired, returning to login")
		a.active = viewLogin
		return a, a.login.Init()

	case chat.LogoutMsg:
		if err := a.guard.Logout(); err != nil {
			a.logger.Warn("logout failed", zap.Error(err))
		}
		a.active = viewLogin
		return a, a.login.Init()

	case login.AuthenticatedMsg:
		a.active = viewChat
		return a, a.chat.Init()

	case chat.OpenDocumentsMsg:
		a.active = viewDocuments
		return a, a.documents.Init()

	case documents.CloseMsg:
		a.active = viewChat
		return a, nil
	}

	return a.route(msg)
}

// route forwards a message to the active view. Answer delivery is the
// exception: it must reach the chat model even while the document view
// is open, or the transcript would silently stall.
func (a *App) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(chat.AnswerMsg); ok {
		var cmd tea.Cmd
		a.chat, cmd = a.chat.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	switch a.active {
	case viewLogin:
		a.login, cmd = a.login.Update(msg)
	case viewDocuments:
		a.documents, cmd = a.documents.Update(msg)
	default:
		a.chat, cmd = a.chat.Update(msg)
	}
	return a, cmd
}

func (a *App) View() string {
	switch a.active {
	case viewLogin:
		return a.login.View()
	case viewDocuments:
		return a.documents.View()
	default:
		return a.chat.View()
	}
}
