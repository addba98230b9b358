// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the conversation log.
package model

import "time"

// =============================================================================
// LOG TYPE
// =============================================================================

// Log holds the ordered, append-only conversation history. Insertion order
// is display order. Entries are never edited in place; the only destructive
// operation is a full clear.
type Log struct {
	// Identity
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Messages
	Messages []Message `json:"messages"`
}

// NewLog creates an empty conversation log.
func NewLog() *Log {
	now := time.Now()
	return &Log{
		ID:        "log_" + now.Format("20060102_150405"),
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  make([]Message, 0),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// Append adds a message to the end of the log.
func (l *Log) Append(msg Message) {
	l.Messages = append(l.Messages, msg)
	l.UpdatedAt = time.Now()
}

// Last returns the most recent message and true, or a zero Message and
// false when the log is empty.
func (l *Log) Last() (Message, bool) {
	if len(l.Messages) == 0 {
		return Message{}, false
	}
	return l.Messages[len(l.Messages)-1], true
}

// History returns the messages in display order. The returned slice is a
// copy; callers cannot mutate the log through it.
func (l *Log) History() []Message {
	out := make([]Message, len(l.Messages))
	copy(out, l.Messages)
	return out
}

// Len returns the number of messages.
func (l *Log) Len() int {
	return len(l.Messages)
}

// IsEmpty returns true if there are no messages.
func (l *Log) IsEmpty() bool {
	return len(l.Messages) == 0
}

// Clear removes all messages from the log.
func (l *Log) Clear() {
	l.Messages = make([]Message, 0)
	l.UpdatedAt = time.Now()
}
