// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the conversation log.
package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleQuestion Role = "question"
	RoleAnswer   Role = "answer"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleQuestion:
		return "You"
	case RoleAnswer:
		return "Assistant"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// DefaultAnswerText is shown when the server returns an empty answer.
const DefaultAnswerText = "No answer available"

// Message represents a single entry in the conversation log. Messages are
// never mutated after creation; the log only grows or is cleared wholesale.
type Message struct {
	// Identity
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	// Content
	Text string `json:"text"`

	// Sources lists the filenames that contributed context to an answer.
	// Insertion order is preserved and duplicates are removed.
	Sources []string `json:"sources,omitempty"`

	// ElapsedSeconds is how long the server took to answer, when reported.
	ElapsedSeconds float64 `json:"elapsed_seconds,omitempty"`

	// IsError marks an answer that carries a failure description
	// instead of server output.
	IsError bool `json:"is_error,omitempty"`
}

// NewQuestionMessage creates a question message.
func NewQuestionMessage(text string) Message {
	return Message{
		ID:        generateID(),
		Role:      RoleQuestion,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// NewAnswerMessage creates an answer message. An empty answer text is
// replaced with DefaultAnswerText, and sources are de-duplicated while
// preserving their original order.
func NewAnswerMessage(text string, sources []string, elapsedSeconds float64) Message {
	if strings.TrimSpace(text) == "" {
		text = DefaultAnswerText
	}
	return Message{
		ID:             generateID(),
		Role:           RoleAnswer,
		Text:           text,
		Sources:        DedupeSources(sources),
		ElapsedSeconds: elapsedSeconds,
		Timestamp:      time.Now(),
	}
}

// NewErrorAnswer creates an answer message carrying a failure description.
// The log always receives exactly one answer per question, success or not.
func NewErrorAnswer(description string) Message {
	msg := Message{
		ID:        generateID(),
		Role:      RoleAnswer,
		Text:      description,
		IsError:   true,
		Timestamp: time.Now(),
	}
	return msg
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// Preview returns a truncated preview of the message text.
// Uses rune-based truncation to handle Unicode correctly.
func (m Message) Preview(maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(m.Text)
	if len(runes) <= maxLen {
		return m.Text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// HasSources returns true if the answer cites at least one document.
func (m Message) HasSources() bool {
	return len(m.Sources) > 0
}

// FormatSources renders the citation block shown under an answer.
// Returns an empty string for messages without sources.
func (m Message) FormatSources() string {
	if len(m.Sources) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Sources:\n")
	sb.WriteString(strings.Join(m.Sources, "\n"))

	if m.ElapsedSeconds > 0 {
		sb.WriteString("\n\nTime: ")
		sb.WriteString(strconv.FormatFloat(m.ElapsedSeconds, 'f', 1, 64))
		sb.WriteString(" seconds")
	}

	return sb.String()
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// DedupeSources removes duplicate filenames while preserving first-seen order.
func DedupeSources(sources []string) []string {
	if len(sources) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(sources))
	out := make([]string, 0, len(sources))
	for _, s := range sources {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

// generateID creates a unique message ID.
func generateID() string {
	return "msg_" + uuid.NewString()
}
