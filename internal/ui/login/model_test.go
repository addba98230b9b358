// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package login

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/docquery-tui/internal/api"
	"github.com/jeranaias/docquery-tui/internal/auth"
	"github.com/jeranaias/docquery-tui/internal/ui/styles"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.AuthResponse{AccessToken: "tok", TokenType: "bearer"})
	}))
	t.Cleanup(server.Close)

	tokens := auth.NewTokenStore(t.TempDir())
	guard := auth.NewGuard(api.NewClient(server.URL, tokens), tokens)
	return New(styles.NewTheme("dark"), guard, nil)
}

func TestTabSwitchesForms(t *testing.T) {
	m := newTestModel(t)
	require.Equal(t, formLogin, m.mode)
	assert.Equal(t, 2, m.fieldCount())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, formRegister, m.mode)
	assert.Equal(t, 3, m.fieldCount())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, formLogin, m.mode)
}

func TestEnterAdvancesThenSubmits(t *testing.T) {
	m := newTestModel(t)
	m.fields[fieldUsername].SetValue("alice")
	m.fields[fieldPassword].SetValue("hunter2hunter2")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd, "enter on the first field only advances focus")
	assert.Equal(t, fieldPassword, m.focused)

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd, "enter on the last field submits")
	assert.True(t, m.busy)

	result := cmd()
	res, ok := result.(authResultMsg)
	require.True(t, ok)
	assert.NoError(t, res.err)
}

func TestSubmitValidationErrorShown(t *testing.T) {
	m := newTestModel(t)
	m.fields[fieldUsername].SetValue("al")
	m.fields[fieldPassword].SetValue("short")
	m.setFocus(fieldPassword)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	m, _ = m.Update(cmd())
	assert.False(t, m.busy)
	assert.NotEmpty(t, m.errText)
}

func TestRegisterFlipsBackToLogin(t *testing.T) {
	m := newTestModel(t)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, formRegister, m.mode)

	m.fields[fieldUsername].SetValue("alice")
	m.fields[fieldPassword].SetValue("hunter2hunter2")
	m.fields[fieldConfirm].SetValue("hunter2hunter2")
	m.setFocus(fieldConfirm)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	m, followUp := m.Update(cmd())
	assert.Equal(t, formLogin, m.mode)
	assert.NotEmpty(t, m.notice)
	require.NotNil(t, followUp)
	assert.IsType(t, RegisteredMsg{}, followUp())
}

func TestKeysIgnoredWhileBusy(t *testing.T) {
	m := newTestModel(t)
	m.busy = true

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Nil(t, cmd)
	assert.Equal(t, formLogin, m.mode)
}
