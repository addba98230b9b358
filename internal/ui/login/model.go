// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package login renders the sign-in and registration forms.
package login

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jeranaias/docquery-tui/internal/auth"
	"github.com/jeranaias/docquery-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// AuthenticatedMsg signals a successful login; the root model switches
// to the chat view.
type AuthenticatedMsg struct{}

// RegisteredMsg signals a successful registration; the form flips back
// to login so the new account can sign in.
type RegisteredMsg struct{}

// authResultMsg carries the outcome of a login or register call.
type authResultMsg struct {
	registered bool
	err        error
}

// =============================================================================
// MODEL
// =============================================================================

type formMode int

const (
	formLogin formMode = iota
	formRegister
)

// Model is the authentication screen. Tab switches between the login
// and register forms.
type Model struct {
	theme  *styles.Theme
	guard  *auth.Guard
	logger *zap.Logger

	mode     formMode
	fields   []textinput.Model
	focused  int
	remember bool

	width   int
	height  int
	busy    bool
	errText string
	notice  string
}

const (
	fieldUsername = 0
	fieldPassword = 1
	fieldConfirm  = 2
)

func New(theme *styles.Theme, guard *auth.Guard, logger *zap.Logger) *Model {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	confirm := textinput.New()
	confirm.Placeholder = "confirm password"
	confirm.CharLimit = 128
	confirm.EchoMode = textinput.EchoPassword
	confirm.EchoCharacter = '*'

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Model{
		theme:    theme,
		guard:    guard,
		logger:   logger,
		fields:   []textinput.Model{username, password, confirm},
		remember: true,
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// fieldCount is how many inputs the active form shows.
func (m *Model) fieldCount() int {
	if m.mode == formRegister {
		return 3
	}
	return 2
}

// =============================================================================
// UPDATE
// =============================================================================

func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case authResultMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.errText = ""
		if msg.registered {
			m.mode = formLogin
			m.notice = "account created, sign in to continue"
			m.fields[fieldPassword].Reset()
			m.fields[fieldConfirm].Reset()
			m.setFocus(fieldUsername)
			return m, func() tea.Msg { return RegisteredMsg{} }
		}
		return m, func() tea.Msg { return AuthenticatedMsg{} }

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		return m.updateKeys(msg)
	}

	return m, m.updateFields(msg)
}

func (m *Model) updateKeys(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.toggleMode()
		return m, nil

	case "up", "shift+tab":
		m.setFocus((m.focused - 1 + m.fieldCount()) % m.fieldCount())
		return m, nil

	case "down":
		m.setFocus((m.focused + 1) % m.fieldCount())
		return m, nil

	case "ctrl+r":
		m.remember = !m.remember
		return m, nil

	case "enter":
		if m.focused < m.fieldCount()-1 {
			m.setFocus(m.focused + 1)
			return m, nil
		}
		return m.submit()
	}

	return m, m.updateFields(msg)
}

func (m *Model) updateFields(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for i := range m.fields {
		var cmd tea.Cmd
		m.fields[i], cmd = m.fields[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *Model) toggleMode() {
	if m.mode == formLogin {
		m.mode = formRegister
	} else {
		m.mode = formLogin
	}
	m.errText = ""
	m.notice = ""
	m.setFocus(fieldUsername)
}

func (m *Model) setFocus(idx int) {
	m.focused = idx
	for i := range m.fields {
		if i == idx {
			m.fields[i].Focus()
		} else {
			m.fields[i].Blur()
		}
	}
}

func (m *Model) submit() (*Model, tea.Cmd) {
	username := strings.TrimSpace(m.fields[fieldUsername].Value())
	password := m.fields[fieldPassword].Value()
	confirm := m.fields[fieldConfirm].Value()
	register := m.mode == formRegister
	remember := m.remember

	m.busy = true
	m.errText = ""
	return m, func() tea.Msg {
		var err error
		if register {
			err = m.guard.Register(context.Background(), username, password, confirm)
		} else {
			err = m.guard.Login(context.Background(), username, password, remember)
		}
		return authResultMsg{registered: register, err: err}
	}
}

// =============================================================================
// VIEW
// =============================================================================

func (m *Model) View() string {
	title := "Sign in"
	action := "register instead"
	if m.mode == formRegister {
		title = "Create account"
		action = "sign in instead"
	}

	var sb strings.Builder
	sb.WriteString(m.theme.FormTitle.Render(title))
	sb.WriteString("\n")

	for i := 0; i < m.fieldCount(); i++ {
		sb.WriteString(m.fields[i].View())
		sb.WriteString("\n")
	}

	if m.mode == formLogin {
		mark := "[ ]"
		if m.remember {
			mark = "[x]"
		}
		sb.WriteString(m.theme.FormLabel.Render(mark + " remember me (C-r)"))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	switch {
	case m.busy:
		sb.WriteString(m.theme.FormHint.Render("working..."))
	case m.errText != "":
		sb.WriteString(m.theme.FormError.Render(m.errText))
	case m.notice != "":
		sb.WriteString(m.theme.SuccessMsg.Render(m.notice))
	}
	sb.WriteString("\n")
	sb.WriteString(m.theme.FormHint.Render("enter submit · tab " + action))

	box := m.theme.FormBox.Render(sb.String())
	if m.width == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
