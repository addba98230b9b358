// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the authenticated HTTP gateway to the docquery server.
package api

import (
	"context"
	"io"
	"net/url"
)

// API paths consumed by this client.
const (
	pathQuestion       = "/api/question"
	pathDocuments      = "/api/documents"
	pathDocumentUpload = "/api/documents/upload"
	pathDocumentsClear = "/api/documents/clear"
	pathSettings       = "/api/settings"
	pathLogin          = "/api/auth/login"
	pathRegister       = "/api/auth/register"
)

// =============================================================================
// QUESTION ENDPOINT
// =============================================================================

// Ask submits a question and returns the server's answer with citations.
//
// By default the question travels as a POST body. With WithPathQuestions
// enabled it is sent as GET /api/question/{text} instead, double-encoded so
// URLs inside the question survive the path segment.
func (c *Client) Ask(ctx context.Context, question string) (*QuestionResponse, error) {
	var resp QuestionResponse

	if c.askByPath {
		// Double encode: the server decodes once at the routing layer
		// and once in the handler.
		encoded := url.PathEscape(url.PathEscape(question))
		if err := c.Get(ctx, pathQuestion+"/"+encoded, &resp); err != nil {
			return nil, err
		}
		return &resp, nil
	}

	if err := c.Post(ctx, pathQuestion, questionRequest{Question: question}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// =============================================================================
// DOCUMENT ENDPOINTS
// =============================================================================

// ListDocuments fetches the full corpus listing.
func (c *Client) ListDocuments(ctx context.Context) ([]Document, error) {
	var docs []Document
	if err := c.Get(ctx, pathDocuments, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// UploadDocument uploads a file into the corpus.
func (c *Client) UploadDocument(ctx context.Context, filename string, r io.Reader) (*UploadResponse, error) {
	var resp UploadResponse
	if err := c.Upload(ctx, pathDocumentUpload, filename, r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetDocumentActive updates a document's retrieval-scope flag.
func (c *Client) SetDocumentActive(ctx context.Context, id string, active bool) (*Document, error) {
	var doc Document
	body := map[string]bool{"active": active}
	if err := c.Patch(ctx, pathDocuments+"/"+url.PathEscape(id), body, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DeleteDocument removes a single document from the corpus.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	return c.Delete(ctx, pathDocuments+"/"+url.PathEscape(id))
}

// ClearDocuments removes the entire corpus server-side.
func (c *Client) ClearDocuments(ctx context.Context) error {
	return c.Delete(ctx, pathDocumentsClear)
}

// =============================================================================
// SETTINGS ENDPOINTS
// =============================================================================

// GetSettings fetches the user preference tuple.
func (c *Client) GetSettings(ctx context.Context) (*UserSettings, error) {
	var settings UserSettings
	if err := c.Get(ctx, pathSettings, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// SaveSettings persists the user preference tuple server-side.
func (c *Client) SaveSettings(ctx context.Context, settings UserSettings) error {
	return c.Post(ctx, pathSettings, settings, nil)
}

// =============================================================================
// AUTH ENDPOINTS
// =============================================================================

// Login exchanges credentials for session tokens. The caller persists them.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.Post(ctx, pathLogin, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new account. The server issues no tokens here; the
// caller follows up with Login.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.Post(ctx, pathRegister, req, nil)
}
