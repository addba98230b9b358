// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package corpus manages the server-side document corpus from the client.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/jeranaias/docquery-tui/internal/api"
)

// Error variables for corpus mutations.
var (
	// ErrTogglePending rejects a second toggle on a document whose
	// previous toggle has not resolved yet.
	ErrTogglePending = errors.New("toggle already in flight for this document")

	// ErrUnknownDocument indicates the id is not in the local list.
	ErrUnknownDocument = errors.New("unknown document")
)

// ConfirmFunc is the destructive-action gate supplied by the caller.
// It returns true to proceed. Declining is a silent no-op.
type ConfirmFunc func(prompt string) bool

// =============================================================================
// MANAGER
// =============================================================================

// Manager owns the local document list and performs all corpus mutations.
// The list is replaced wholesale on every fetch; the server remains the
// source of truth for ids and metadata. The one optimistic operation is
// SetActive, which flips the local flag before the server confirms and
// reverts it if the server rejects.
type Manager struct {
	mu     sync.Mutex
	api    *api.Client
	logger *zap.Logger

	docs []api.Document

	// pendingToggles guards the optimistic transaction per document id:
	// a toggle must commit or revert before the next one on the same id.
	pendingToggles map[string]struct{}
}

// NewManager creates a corpus manager over the given API client.
func NewManager(client *api.Client) *Manager {
	return &Manager{
		api:            client,
		logger:         zap.NewNop(),
		pendingToggles: make(map[string]struct{}),
	}
}

// WithLogger sets the debug logger.
func (m *Manager) WithLogger(logger *zap.Logger) *Manager {
	if logger != nil {
		m.logger = logger
	}
	return m
}

// =============================================================================
// READS
// =============================================================================

// List fetches the corpus and replaces the local list wholesale.
func (m *Manager) List(ctx context.Context) ([]api.Document, error) {
	docs, err := m.api.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.docs = docs
	m.mu.Unlock()

	return m.Documents(), nil
}

// Documents returns a copy of the current local list in fetch order.
func (m *Manager) Documents() []api.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]api.Document, len(m.docs))
	copy(out, m.docs)
	return out
}

// SortedByFilename returns the documents sorted for display. Sorting is a
// view concern; the authoritative list keeps the server's order.
func (m *Manager) SortedByFilename() []api.Document {
	docs := m.Documents()
	sort.SliceStable(docs, func(i, j int) bool {
		return strings.ToLower(docs[i].Filename) < strings.ToLower(docs[j].Filename)
	})
	return docs
}

// Filter returns documents whose filename contains the term,
// case-insensitively, sorted for display.
func (m *Manager) Filter(term string) []api.Document {
	docs := m.SortedByFilename()
	if term == "" {
		return docs
	}

	term = strings.ToLower(term)
	out := docs[:0]
	for _, doc := range docs {
		if strings.Contains(strings.ToLower(doc.Filename), term) {
			out = append(out, doc)
		}
	}
	return out
}

// Len returns the number of documents in the local list.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs)
}

// TogglePending reports whether a toggle is in flight for the document.
func (m *Manager) TogglePending(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, pending := m.pendingToggles[id]
	return pending
}

// =============================================================================
// UPLOAD
// =============================================================================

// Upload validates the file, uploads it, and re-fetches the list. There is
// no optimistic insert; the server assigns the id and metadata. On any
// failure the local list is left untouched.
func (m *Manager) Upload(ctx context.Context, path string) (*api.UploadResponse, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}

	filename := filepath.Base(path)
	if err := ValidateUpload(filename, info.Size()); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}
	defer f.Close()

	resp, err := m.api.UploadDocument(ctx, filename, f)
	if err != nil {
		return nil, err
	}

	m.logger.Info("document uploaded", zap.String("filename", filename))

	if _, err := m.List(ctx); err != nil {
		// The upload itself succeeded; surface the stale list rather
		// than failing the whole operation.
		m.logger.Warn("refresh after upload failed", zap.Error(err))
	}
	return resp, nil
}

// =============================================================================
// OPTIMISTIC TOGGLE
// =============================================================================

// toggleTxn captures the optimistic mutation as an explicit command:
// remember the prior state, apply locally, and revert if the server
// rejects the change.
type toggleTxn struct {
	id    string
	prior bool
}

// SetActive flips a document's retrieval-scope flag. The local flag changes
// immediately so the UI stays responsive; the PATCH follows. If the server
// rejects it, the flag is restored to its pre-toggle value and the error is
// surfaced. A second toggle on the same id is rejected until the first
// commits or reverts; toggles on different ids may overlap.
func (m *Manager) SetActive(ctx context.Context, id string, active bool) error {
	txn, err := m.beginToggle(id, active)
	if err != nil {
		return err
	}

	updated, err := m.api.SetDocumentActive(ctx, id, active)
	if err != nil {
		m.revertToggle(txn)
		return err
	}

	m.commitToggle(txn, updated)
	return nil
}

// beginToggle applies the optimistic flip under the lock and registers the
// pending transaction.
func (m *Manager) beginToggle(id string, active bool) (toggleTxn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, pending := m.pendingToggles[id]; pending {
		return toggleTxn{}, ErrTogglePending
	}

	idx := m.indexOf(id)
	if idx < 0 {
		return toggleTxn{}, ErrUnknownDocument
	}

	txn := toggleTxn{id: id, prior: m.docs[idx].Active}
	m.docs[idx].Active = active
	m.pendingToggles[id] = struct{}{}
	return txn, nil
}

// revertToggle restores the pre-toggle value after a rejected PATCH.
func (m *Manager) revertToggle(txn toggleTxn) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.pendingToggles, txn.id)
	if idx := m.indexOf(txn.id); idx >= 0 {
		m.docs[idx].Active = txn.prior
	}
	m.logger.Warn("toggle reverted", zap.String("id", txn.id))
}

// commitToggle finalizes the transaction with the server's view of the
// document.
func (m *Manager) commitToggle(txn toggleTxn, updated *api.Document) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.pendingToggles, txn.id)
	if updated == nil {
		return
	}
	if idx := m.indexOf(txn.id); idx >= 0 && updated.ID == txn.id {
		m.docs[idx] = *updated
	}
}

// indexOf returns the local index of a document id, or -1.
// Caller must hold the lock.
func (m *Manager) indexOf(id string) int {
	for i := range m.docs {
		if m.docs[i].ID == id {
			return i
		}
	}
	return -1
}

// =============================================================================
// DELETE
// =============================================================================

// Delete removes one document after the caller's confirmation gate agrees.
// On success the list is re-fetched; on failure it is left untouched.
func (m *Manager) Delete(ctx context.Context, id string, confirm ConfirmFunc) error {
	m.mu.Lock()
	idx := m.indexOf(id)
	var filename string
	if idx >= 0 {
		filename = m.docs[idx].Filename
	}
	m.mu.Unlock()

	if idx < 0 {
		return ErrUnknownDocument
	}

	if confirm != nil && !confirm("Delete "+filename+"?") {
		return nil
	}

	if err := m.api.DeleteDocument(ctx, id); err != nil {
		return err
	}

	m.logger.Info("document deleted", zap.String("id", id), zap.String("filename", filename))

	if _, err := m.List(ctx); err != nil {
		m.logger.Warn("refresh after delete failed", zap.Error(err))
	}
	return nil
}

// ClearAll deletes the entire corpus after the confirmation gate agrees.
// On success the local list is reset to empty.
func (m *Manager) ClearAll(ctx context.Context, confirm ConfirmFunc) error {
	if confirm != nil && !confirm("Delete ALL documents? This cannot be undone.") {
		return nil
	}

	if err := m.api.ClearDocuments(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	m.docs = nil
	m.mu.Unlock()

	m.logger.Info("corpus cleared")
	return nil
}
