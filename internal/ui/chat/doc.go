// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat renders the question/answer transcript, the input line,
// and the settings overlay.
package chat
