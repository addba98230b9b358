// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"testing"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewQuestionMessage(t *testing.T) {
	msg := NewQuestionMessage("What is the refund policy?")

	if msg.Role != RoleQuestion {
		t.Errorf("Expected role %q, got %q", RoleQuestion, msg.Role)
	}
	if msg.Text != "What is the refund policy?" {
		t.Errorf("Unexpected text: %q", msg.Text)
	}
	if msg.ID == "" {
		t.Error("Expected a generated message ID")
	}
	if msg.Timestamp.IsZero() {
		t.Error("Expected a timestamp")
	}
}

func TestNewAnswerMessage_DedupesSources(t *testing.T) {
	msg := NewAnswerMessage("30 days", []string{"policy.pdf", "policy.pdf", "faq.txt", "policy.pdf"}, 0)

	if len(msg.Sources) != 2 {
		t.Fatalf("Expected 2 unique sources, got %d: %v", len(msg.Sources), msg.Sources)
	}
	if msg.Sources[0] != "policy.pdf" || msg.Sources[1] != "faq.txt" {
		t.Errorf("Expected first-seen order preserved, got %v", msg.Sources)
	}
}

func TestNewAnswerMessage_DefaultText(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		msg := NewAnswerMessage(text, nil, 0)
		if msg.Text != DefaultAnswerText {
			t.Errorf("Answer %q: expected default text, got %q", text, msg.Text)
		}
	}
}

func TestNewErrorAnswer(t *testing.T) {
	msg := NewErrorAnswer("Request failed: connection refused")

	if msg.Role != RoleAnswer {
		t.Errorf("Error answers must still be answers, got role %q", msg.Role)
	}
	if !msg.IsError {
		t.Error("Expected IsError to be set")
	}
	if msg.HasSources() {
		t.Error("Error answers carry no sources")
	}
}

func TestFormatSources(t *testing.T) {
	msg := NewAnswerMessage("30 days", []string{"policy.pdf", "faq.txt"}, 1.5)

	got := msg.FormatSources()
	if !strings.HasPrefix(got, "Sources:\n") {
		t.Errorf("Expected sources header, got %q", got)
	}
	if !strings.Contains(got, "policy.pdf\nfaq.txt") {
		t.Errorf("Expected source list, got %q", got)
	}
	if !strings.Contains(got, "Time: 1.5 seconds") {
		t.Errorf("Expected elapsed time line, got %q", got)
	}
}

func TestFormatSources_Empty(t *testing.T) {
	msg := NewAnswerMessage("30 days", nil, 2.0)
	if got := msg.FormatSources(); got != "" {
		t.Errorf("Expected empty citation block, got %q", got)
	}
}

func TestDedupeSources(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, nil},
		{"empty strings dropped", []string{"", ""}, nil},
		{"no duplicates", []string{"a.txt", "b.txt"}, []string{"a.txt", "b.txt"}},
		{"duplicates removed", []string{"a.txt", "a.txt", "b.txt", "a.txt"}, []string{"a.txt", "b.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DedupeSources(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Index %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestPreview(t *testing.T) {
	msg := NewQuestionMessage(strings.Repeat("x", 100))
	preview := msg.Preview(10)
	if len([]rune(preview)) != 10 {
		t.Errorf("Expected 10 runes, got %d", len([]rune(preview)))
	}
	if !strings.HasSuffix(preview, "...") {
		t.Errorf("Expected ellipsis, got %q", preview)
	}
}

func TestPreview_TinyWidths(t *testing.T) {
	msg := NewQuestionMessage("hello world")

	if got := msg.Preview(0); got != "" {
		t.Errorf("Preview(0): expected empty, got %q", got)
	}
	if got := msg.Preview(-1); got != "" {
		t.Errorf("Preview(-1): expected empty, got %q", got)
	}
	if got := msg.Preview(2); got != "he" {
		t.Errorf("Preview(2): expected %q, got %q", "he", got)
	}
	if got := msg.Preview(3); got != "hel" {
		t.Errorf("Preview(3): expected %q, got %q", "hel", got)
	}
}

// =============================================================================
// LOG TESTS
// =============================================================================

func TestLog_AppendOrder(t *testing.T) {
	log := NewLog()
	log.Append(NewQuestionMessage("first"))
	log.Append(NewAnswerMessage("answer one", nil, 0))
	log.Append(NewQuestionMessage("second"))

	if log.Len() != 3 {
		t.Fatalf("Expected 3 messages, got %d", log.Len())
	}

	history := log.History()
	if history[0].Text != "first" || history[2].Text != "second" {
		t.Error("Insertion order must be display order")
	}
}

func TestLog_HistoryIsCopy(t *testing.T) {
	log := NewLog()
	log.Append(NewQuestionMessage("q"))

	history := log.History()
	history[0].Text = "mutated"

	if log.Messages[0].Text != "q" {
		t.Error("History must return a copy, not the backing slice")
	}
}

func TestLog_Clear(t *testing.T) {
	log := NewLog()
	log.Append(NewQuestionMessage("q"))
	log.Append(NewAnswerMessage("a", nil, 0))

	log.Clear()

	if !log.IsEmpty() {
		t.Errorf("Expected empty log after clear, got %d messages", log.Len())
	}
}

func TestLog_Last(t *testing.T) {
	log := NewLog()
	if _, ok := log.Last(); ok {
		t.Error("Empty log should report no last message")
	}

	log.Append(NewQuestionMessage("q"))
	log.Append(NewAnswerMessage("a", nil, 0))

	last, ok := log.Last()
	if !ok || last.Role != RoleAnswer {
		t.Errorf("Expected last message to be the answer, got %+v", last)
	}
}
