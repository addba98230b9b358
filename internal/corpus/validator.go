// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package corpus manages the server-side document corpus from the client.
package corpus

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Upload limits enforced before any network call.
const (
	// MaxUploadSize is the upload ceiling in bytes (10 MiB).
	MaxUploadSize = 10 * 1024 * 1024
)

// AllowedExtensions lists the file types the server can index.
// Matching is case-insensitive.
var AllowedExtensions = []string{".txt", ".pdf", ".html", ".htm", ".docx"}

// ErrInvalidUpload tags pre-flight validation failures so callers can tell
// them apart from network errors.
var ErrInvalidUpload = errors.New("invalid upload")

// ValidationError describes why a file was rejected before upload.
type ValidationError struct {
	Filename string
	Reason   string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Filename, e.Reason)
}

// Unwrap makes ValidationError match ErrInvalidUpload via errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidUpload
}

// ValidateUpload is the pure pre-flight gate run before every upload
// attempt. It performs no I/O; a failed validation must never reach the
// API client.
func ValidateUpload(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))

	allowed := false
	for _, a := range AllowedExtensions {
		if ext == a {
			allowed = true
			break
		}
	}
	if !allowed {
		return &ValidationError{
			Filename: filename,
			Reason:   "unsupported file type, accepted: " + strings.Join(AllowedExtensions, ", "),
		}
	}

	if size > MaxUploadSize {
		return &ValidationError{
			Filename: filename,
			Reason:   fmt.Sprintf("file exceeds the %d MiB limit", MaxUploadSize/(1024*1024)),
		}
	}

	return nil
}
