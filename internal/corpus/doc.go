// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package corpus manages the server-side document corpus from the client.
//
// The Manager owns the local document list exclusively. Reads replace the
// list wholesale from a fresh fetch; nothing is cached between sessions.
// Mutations follow three failure contracts:
//
//   - Upload and Delete apply nothing locally until the server confirms,
//     then re-fetch, so a failure leaves the list untouched.
//   - SetActive is optimistic: the flag flips immediately and is reverted
//     if the PATCH fails. A second toggle on the same document is rejected
//     until the first resolves; different documents may toggle in parallel.
//   - ClearAll resets the local list only after the server succeeds.
//
// Destructive operations (Delete, ClearAll) run through a caller-supplied
// ConfirmFunc; declining is a silent no-op.
//
// ValidateUpload is the pure pre-flight gate: extension allow-list and a
// 10 MiB ceiling, checked before any bytes travel.
package corpus
