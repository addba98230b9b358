// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the authenticated HTTP gateway to the docquery server.
//
// All network traffic in the application flows through api.Client. The client
// attaches the bearer token from its TokenSource to every request, translates
// non-2xx responses into structured errors, and handles authentication expiry
// (401) by purging the token and firing the session-expired hook exactly once
// per failed call.
//
// # Error Taxonomy
//
//   - *APIError: structured 4xx/5xx with a server-provided detail message
//   - ErrRequestFailed: connectivity failures and unparseable error bodies
//   - ErrSessionExpired: 401 responses, after the token purge side effect
//
// # Usage
//
//	client := api.NewClient(cfg.ServerURL, tokens).
//		WithSessionExpiredHook(onExpired)
//	docs, err := client.ListDocuments(ctx)
//
// The client performs no retries and sets no request deadline of its own;
// cancellation is the caller's context's business.
package api
