// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth provides session token persistence and the auth guard.
//
// The TokenStore is the single persisted piece of client state: one token
// file (plus an optional refresh token) under the config directory, written
// with 0600 permissions. Its lifecycle is explicit: created on login,
// destroyed on logout or when the server reports authentication expiry.
//
// The Guard sits in front of the session view. It answers IsAuthenticated
// from token presence alone and owns the login, register, and logout flows.
// Credential forms are validated locally before any network call.
package auth
