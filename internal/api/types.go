// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the authenticated HTTP gateway to the docquery server.
package api

import "time"

// =============================================================================
// DOCUMENT TYPES
// =============================================================================

// Document is a corpus entry as reported by the server. The server-assigned
// ID is the identity key for every mutation.
type Document struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`

	// Active marks the document as part of the retrieval scope. It is
	// independently toggleable; there is no cross-document invariant.
	Active bool `json:"active"`

	SizeBytes  int64      `json:"size,omitempty"`
	UploadedAt *time.Time `json:"uploadedAt,omitempty"`
}

// UploadResponse is the server's acknowledgement of a document upload.
type UploadResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Filename string `json:"filename"`
	Error    string `json:"error,omitempty"`
}

// =============================================================================
// QUESTION TYPES
// =============================================================================

// SourceNode is one retrieval citation attached to an answer.
type SourceNode struct {
	Filename string `json:"filename"`
	Text     string `json:"text,omitempty"`
}

// QuestionContext carries retrieval metadata for an answer.
type QuestionContext struct {
	SourceNodes []SourceNode `json:"source_nodes"`
	TimeTaken   float64      `json:"time_taken,omitempty"`
}

// QuestionResponse is the server's answer to a question.
type QuestionResponse struct {
	Answer  string          `json:"answer"`
	Context QuestionContext `json:"context"`

	// Some server versions report elapsed time at the top level instead
	// of inside the context block.
	TimeTaken float64 `json:"time_taken,omitempty"`
}

// SourceFilenames returns the cited filenames in citation order.
// Duplicates are preserved; de-duplication is the log's concern.
func (r *QuestionResponse) SourceFilenames() []string {
	if len(r.Context.SourceNodes) == 0 {
		return nil
	}
	names := make([]string, 0, len(r.Context.SourceNodes))
	for _, node := range r.Context.SourceNodes {
		names = append(names, node.Filename)
	}
	return names
}

// Elapsed returns the reported answer time in seconds, from whichever
// field the server populated.
func (r *QuestionResponse) Elapsed() float64 {
	if r.Context.TimeTaken > 0 {
		return r.Context.TimeTaken
	}
	return r.TimeTaken
}

// questionRequest is the POST body for the question endpoint.
type questionRequest struct {
	Question string `json:"question"`
}

// =============================================================================
// SETTINGS TYPES
// =============================================================================

// UserSettings is the server-side preference tuple. Every field always has
// a value in memory; fetch failure substitutes the fixed defaults.
type UserSettings struct {
	UseCloudModel        bool `json:"use_cloud"`
	EnableDocumentSearch bool `json:"enable_document_search"`
	HandleURLs           bool `json:"handle_urls"`
	CheckDatabase        bool `json:"check_db"`
}

// =============================================================================
// AUTH TYPES
// =============================================================================

// LoginRequest is the POST body for the login endpoint.
type LoginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

// RegisterRequest is the POST body for the register endpoint.
type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// AuthResponse carries the tokens issued on a successful login.
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}
