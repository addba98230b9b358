// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session enforces the one-question-at-a-time conversation flow
// between the TUI and the answer endpoint.
package session
