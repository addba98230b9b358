// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package settings

import (
	"context"

	"go.uber.org/zap"

	"github.com/jeranaias/docquery-tui/internal/api"
)

// Defaults returns the settings a fresh installation runs with. A failed
// load falls back to these so the client is always in a usable state.
func Defaults() api.UserSettings {
	return api.UserSettings{
		UseCloudModel:        false,
		EnableDocumentSearch: true,
		HandleURLs:           true,
		CheckDatabase:        true,
	}
}

// Store keeps the server-side user settings cached locally. Loads are
// forgiving (defaults on any failure, logged only); saves are strict and
// surface their error to the caller.
type Store struct {
	api     *api.Client
	logger  *zap.Logger
	current api.UserSettings
	loaded  bool
}

func NewStore(client *api.Client) *Store {
	return &Store{
		api:     client,
		logger:  zap.NewNop(),
		current: Defaults(),
	}
}

func (s *Store) WithLogger(logger *zap.Logger) *Store {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Load fetches the settings from the server. Any failure, network or
// decode, yields the defaults: a broken settings endpoint must never
// block the rest of the client.
func (s *Store) Load(ctx context.Context) api.UserSettings {
	remote, err := s.api.GetSettings(ctx)
	if err != nil {
		s.logger.Warn("settings load failed, using defaults", zap.Error(err))
		s.current = Defaults()
		s.loaded = true
		return s.current
	}
	s.current = *remote
	s.loaded = true
	return s.current
}

// Current returns the last loaded settings, or the defaults if Load has
// never run.
func (s *Store) Current() api.UserSettings {
	return s.current
}

// Loaded reports whether Load has completed at least once.
func (s *Store) Loaded() bool {
	return s.loaded
}

// Save pushes new settings to the server. Unlike Load, a failure here is
// the caller's problem: the local cache keeps its previous value so the
// UI does not show a state the server never acknowledged.
func (s *Store) Save(ctx context.Context, next api.UserSettings) error {
	if err := s.api.SaveSettings(ctx, next); err != nil {
		return err
	}
	s.current = next
	s.logger.Info("settings saved",
		zap.Bool("use_cloud", next.UseCloudModel),
		zap.Bool("enable_document_search", next.EnableDocumentSearch),
		zap.Bool("handle_urls", next.HandleURLs),
		zap.Bool("check_db", next.CheckDatabase))
	return nil
}
