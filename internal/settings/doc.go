// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package settings caches the server-side user preferences and supplies
// safe defaults whenever the server cannot be reached.
package settings
