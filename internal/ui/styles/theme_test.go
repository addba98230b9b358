// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTheme(t *testing.T) {
	theme := NewTheme("dark")
	require.NotNil(t, theme)

	// Every style must be initialized; a zero style renders nothing.
	assert.True(t, theme.QuestionBubble.GetBorderLeft())
	assert.True(t, theme.AnswerBubble.GetBorderLeft())
	assert.True(t, theme.Header.GetBold())
	assert.True(t, theme.ConfirmText.GetBold())
}

func TestNewThemeHonorsPreference(t *testing.T) {
	assert.True(t, NewTheme("dark").IsDark)
	assert.False(t, NewTheme("light").IsDark)
}

func TestSetSize(t *testing.T) {
	theme := NewTheme("dark")
	theme.SetSize(120, 40)
	assert.Equal(t, 120, theme.Width)
	assert.Equal(t, 40, theme.Height)
}
