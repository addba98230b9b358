// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

// fakeTokens is an in-memory TokenSource for tests.
type fakeTokens struct {
	token  string
	clears atomic.Int32
}

func (f *fakeTokens) Token() string { return f.token }

func (f *fakeTokens) Clear() error {
	f.token = ""
	f.clears.Add(1)
	return nil
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, &fakeTokens{token: "tok-123"})
	if _, err := client.ListDocuments(context.Background()); err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}

	if gotAuth != "Bearer tok-123" {
		t.Errorf("Expected bearer header, got %q", gotAuth)
	}
}

func TestClient_OmitsHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	var hadHeader bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hadHeader = r.Header["Authorization"]
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, &fakeTokens{})
	if _, err := client.ListDocuments(context.Background()); err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}

	if hadHeader {
		t.Errorf("Expected no Authorization header, got %q", gotAuth)
	}
}

func TestClient_SurfacesDetailMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": "file type not supported"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.ListDocuments(context.Background())
	if err == nil {
		t.Fatal("Expected an error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Detail != "file type not supported" {
		t.Errorf("Expected server detail verbatim, got %q", apiErr.Detail)
	}
	if apiErr.Status != http.StatusUnprocessableEntity {
		t.Errorf("Expected status 422, got %d", apiErr.Status)
	}
}

func TestClient_GenericErrorWithoutDetail(t *testing.T) {
	for _, body := range []string{"", "not json", `{"message": "wrong field"}`} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(body))
		}))

		client := NewClient(server.URL, nil)
		_, err := client.ListDocuments(context.Background())
		server.Close()

		if !errors.Is(err, ErrRequestFailed) {
			t.Errorf("Body %q: expected ErrRequestFailed, got %v", body, err)
		}
	}
}

func TestClient_SessionExpiry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "token expired"}`))
	}))
	defer server.Close()

	tokens := &fakeTokens{token: "stale"}
	var hookFired atomic.Int32
	client := NewClient(server.URL, tokens).
		WithSessionExpiredHook(func() { hookFired.Add(1) })

	_, err := client.ListDocuments(context.Background())
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("Expected ErrSessionExpired, got %v", err)
	}

	// Purge and hook fire exactly once per failed call.
	if got := tokens.clears.Load(); got != 1 {
		t.Errorf("Expected exactly one token purge, got %d", got)
	}
	if got := hookFired.Load(); got != 1 {
		t.Errorf("Expected exactly one hook invocation, got %d", got)
	}
	if tokens.Token() != "" {
		t.Error("Expected token to be removed from the store")
	}
}

func TestClient_NetworkErrorWrapped(t *testing.T) {
	// Point at a closed server to force a connection error.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.ListDocuments(context.Background())
	if !errors.Is(err, ErrRequestFailed) {
		t.Errorf("Expected ErrRequestFailed for connectivity failure, got %v", err)
	}
}

func TestClient_UploadHeaders(t *testing.T) {
	var gotAuth, gotContentType string
	var gotFilename, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		gotFilename = header.Filename
		buf := new(strings.Builder)
		if _, err := io.Copy(buf, file); err != nil {
			t.Errorf("read form file: %v", err)
		}
		gotBody = buf.String()

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "success", "message": "indexed", "filename": "notes.txt"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, &fakeTokens{token: "tok"})
	resp, err := client.UploadDocument(context.Background(), "notes.txt", strings.NewReader("hello corpus"))
	if err != nil {
		t.Fatalf("UploadDocument: %v", err)
	}

	if gotAuth != "Bearer tok" {
		t.Errorf("Upload must still attach auth, got %q", gotAuth)
	}
	if !strings.HasPrefix(gotContentType, "multipart/form-data") {
		t.Errorf("Expected multipart content type, got %q", gotContentType)
	}
	if gotFilename != "notes.txt" || gotBody != "hello corpus" {
		t.Errorf("Unexpected form file %q / %q", gotFilename, gotBody)
	}
	if resp.Status != "success" || resp.Message != "indexed" {
		t.Errorf("Unexpected upload response: %+v", resp)
	}
}

func TestClient_AskPost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/question" {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"answer": "30 days",
			"context": {
				"source_nodes": [{"filename": "policy.pdf"}, {"filename": "policy.pdf"}],
				"time_taken": 1.5
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	resp, err := client.Ask(context.Background(), "What is the refund policy?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if resp.Answer != "30 days" {
		t.Errorf("Expected answer, got %q", resp.Answer)
	}
	if got := resp.SourceFilenames(); len(got) != 2 {
		t.Errorf("SourceFilenames preserves duplicates, got %v", got)
	}
	if resp.Elapsed() != 1.5 {
		t.Errorf("Expected elapsed 1.5, got %v", resp.Elapsed())
	}
}

func TestClient_AskByPathDoubleEncodes(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"answer": "ok", "context": {"source_nodes": []}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil).WithPathQuestions(true)
	if _, err := client.Ask(context.Background(), "what about https://example.com/a b?"); err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if !strings.HasPrefix(gotPath, "/api/question/") {
		t.Fatalf("Unexpected path %q", gotPath)
	}
	// A single decode must still leave an escaped payload, so questions
	// containing URLs survive path routing.
	if strings.Contains(gotPath, "://") {
		t.Errorf("Question was not double-encoded: %q", gotPath)
	}
}

func TestClient_ElapsedTopLevelFallback(t *testing.T) {
	resp := &QuestionResponse{TimeTaken: 2.25}
	if resp.Elapsed() != 2.25 {
		t.Errorf("Expected top-level fallback, got %v", resp.Elapsed())
	}
}
