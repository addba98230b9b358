// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth provides session token persistence and the auth guard.
package auth

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jeranaias/docquery-tui/internal/util"
)

// Token file names under the config directory.
const (
	tokenFile        = "token"
	refreshTokenFile = "refresh_token"
)

// =============================================================================
// TOKEN STORE
// =============================================================================

// TokenStore persists the session token as a single entry under the config
// directory with restricted permissions (0600). Token presence is the sole
// authentication signal; the store holds no other state.
//
// Writers are confined to the login flow (Set), logout (Clear), and the API
// client's 401 handling (Clear). Every outgoing request reads through Token.
type TokenStore struct {
	mu  sync.Mutex
	dir string

	// Cached token; loaded lazily from disk on first read.
	cached string
	loaded bool
}

// NewTokenStore creates a token store rooted at the given directory.
func NewTokenStore(dir string) *TokenStore {
	return &TokenStore{dir: dir}
}

// Token returns the current session token, or "" when logged out.
func (s *TokenStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		s.cached = s.readFile(tokenFile)
		s.loaded = true
	}
	return s.cached
}

// refreshToken returns the persisted refresh token, if any. It is stored
// alongside the access token on login but never attached to requests; no
// caller outside this package needs to read it back.
func (s *TokenStore) refreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readFile(refreshTokenFile)
}

// Set persists the access token (and refresh token when present),
// initializing the session.
func (s *TokenStore) Set(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := util.AtomicWriteFile(filepath.Join(s.dir, tokenFile), []byte(access), 0600); err != nil {
		return fmt.Errorf("failed to persist session token: %w", err)
	}
	if refresh != "" {
		if err := util.AtomicWriteFile(filepath.Join(s.dir, refreshTokenFile), []byte(refresh), 0600); err != nil {
			return fmt.Errorf("failed to persist refresh token: %w", err)
		}
	}

	s.cached = access
	s.loaded = true
	return nil
}

// Clear removes the persisted tokens, tearing the session down. Idempotent;
// clearing an empty store is not an error.
func (s *TokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cached = ""
	s.loaded = true

	var firstErr error
	for _, name := range []string{tokenFile, refreshTokenFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = fmt.Errorf("failed to remove %s: %w", name, err)
		}
	}
	return firstErr
}

// readFile returns the trimmed contents of a token file, or "".
func (s *TokenStore) readFile(name string) string {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
