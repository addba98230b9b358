// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package documents renders the corpus list with upload, toggle, delete,
// and clear-all operations behind explicit confirmations.
package documents
