// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the authenticated HTTP gateway to the docquery server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Configuration constants for the docquery API.
const (
	// DefaultBaseURL is the server address used when none is configured.
	DefaultBaseURL = "http://localhost:8000"

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit
)

// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
// Shared transport for all server requests. No client-level timeout is set;
// requests run until the server answers or the caller's context is cancelled.
var sharedTransport = &http.Transport{
	MaxIdleConns:        100,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     90 * time.Second,
	TLSHandshakeTimeout: 10 * time.Second,
}

// Error variables for common API failures.
var (
	// ErrRequestFailed indicates the request could not complete or the
	// server returned an error body that carried no usable detail.
	ErrRequestFailed = errors.New("request failed")

	// ErrSessionExpired indicates the server rejected the session token.
	// By the time this error is returned the token has been purged and the
	// session-expired hook has fired.
	ErrSessionExpired = errors.New("session expired")
)

// APIError represents a structured error response from the server.
type APIError struct {
	Status int
	Detail string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed (HTTP %d)", e.Status)
}

// errorResponse is the JSON error payload the server sends on failure.
type errorResponse struct {
	Detail string `json:"detail"`
}

// =============================================================================
// TOKEN SOURCE
// =============================================================================

// TokenSource supplies the session token for outgoing requests and allows
// the client to purge it on authentication expiry. The token source and the
// auth guard are the only writers of the persisted token.
type TokenSource interface {
	// Token returns the current session token, or "" when logged out.
	Token() string

	// Clear removes the persisted token. Must be idempotent.
	Clear() error
}

// =============================================================================
// CLIENT
// =============================================================================

// Client is the single authenticated HTTP gateway to the docquery server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *zap.Logger

	// onSessionExpired fires after a 401 purges the token, once per
	// failed call. The TUI uses it to force the login view.
	onSessionExpired func()

	// askByPath selects GET /api/question/{q} over POST /api/question.
	askByPath bool
}

// NewClient creates a client for the given server base URL.
//
// The token source may be nil for a client that only performs
// unauthenticated calls (login, register).
func NewClient(baseURL string, tokens TokenSource) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Transport: sharedTransport},
		tokens:     tokens,
		logger:     zap.NewNop(),
	}
}

// WithHTTPClient sets a custom HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// WithLogger sets the debug logger.
func (c *Client) WithLogger(logger *zap.Logger) *Client {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// WithSessionExpiredHook sets the function fired after a 401 purges the token.
func (c *Client) WithSessionExpiredHook(fn func()) *Client {
	c.onSessionExpired = fn
	return c
}

// WithPathQuestions selects the GET question endpoint over the POST one.
func (c *Client) WithPathQuestions(enabled bool) *Client {
	c.askByPath = enabled
	return c
}

// BaseURL returns the configured server base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// REQUEST METHODS
// =============================================================================

// Get performs a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

// Post performs a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

// Patch performs a PATCH request with an optional JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPatch, path, body, out)
}

// Delete performs a DELETE request. Any response body is discarded.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, "", nil)
}

// Upload performs a multipart file upload. The auth header is attached as
// usual but the JSON content type is not; multipart sets its own boundary.
func (c *Client) Upload(ctx context.Context, path, filename string, r io.Reader, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("failed to build form: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize form: %w", err)
	}

	return c.do(ctx, http.MethodPost, path, &buf, writer.FormDataContentType(), out)
}

// doJSON marshals body (when non-nil) and performs the request.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, reader, contentType, out)
}

// do performs a single HTTP request against the server.
//
// Side effects are confined to network I/O and, on 401, the token purge and
// session-expired hook. There is deliberately no retry loop and no deadline
// beyond the caller's context.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	// Secure logging: method and path only, never headers or bodies.
	c.logger.Debug("api request", zap.String("method", method), zap.String("path", path))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("api request error", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	payload, err := readResponse(resp)
	if err != nil {
		return err
	}

	c.logger.Debug("api response",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleErrorResponse(resp.StatusCode, payload)
	}

	if out != nil && len(payload) > 0 {
		if err := json.Unmarshal(payload, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// token returns the current session token, or "" when none is held.
func (c *Client) token() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

// readResponse reads the response body with a size limit.
//
// SECURITY: Response size limit prevents memory exhaustion.
func readResponse(resp *http.Response) ([]byte, error) {
	limited := io.LimitReader(resp.Body, MaxResponseSize)
	payload, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	if int64(len(payload)) == MaxResponseSize {
		return nil, fmt.Errorf("%w: response exceeded %d bytes", ErrRequestFailed, MaxResponseSize)
	}
	return payload, nil
}

// handleErrorResponse converts a non-2xx response into a Go error.
//
// 401 is special-cased: the token is purged and the session-expired hook
// fires before the error propagates. Both happen here, at the single choke
// point every request goes through, so they run exactly once per failed
// call no matter how many consumers share the client.
func (c *Client) handleErrorResponse(statusCode int, payload []byte) error {
	if statusCode == http.StatusUnauthorized {
		c.expireSession()
		return ErrSessionExpired
	}

	var errResp errorResponse
	if err := json.Unmarshal(payload, &errResp); err == nil && errResp.Detail != "" {
		return &APIError{Status: statusCode, Detail: errResp.Detail}
	}

	return fmt.Errorf("%w (HTTP %d)", ErrRequestFailed, statusCode)
}

// expireSession purges the persisted token and fires the hook.
func (c *Client) expireSession() {
	if c.tokens != nil {
		if err := c.tokens.Clear(); err != nil {
			c.logger.Warn("failed to purge session token", zap.Error(err))
		}
	}
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}
