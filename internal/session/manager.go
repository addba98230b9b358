// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session drives the question/answer conversation. The manager is
// a two-state machine: idle, or awaiting exactly one in-flight answer.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/jeranaias/docquery-tui/internal/api"
	"github.com/jeranaias/docquery-tui/internal/model"
)

// =============================================================================
// STATE MACHINE
// =============================================================================

// State is the conversation phase.
type State int

const (
	// StateIdle means the session will accept a new question.
	StateIdle State = iota

	// StateAwaiting means a question is in flight and everything except
	// its resolution is rejected.
	StateAwaiting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaiting:
		return "awaiting"
	default:
		return "unknown"
	}
}

var (
	// ErrBusy is returned when a question is already awaiting its answer.
	ErrBusy = errors.New("session: a question is already in flight")

	// ErrEmptyQuestion is returned for blank or whitespace-only input.
	ErrEmptyQuestion = errors.New("session: question is empty")

	// ErrNotAwaiting is returned when Resolve is called with nothing in flight.
	ErrNotAwaiting = errors.New("session: no question awaiting an answer")
)

// =============================================================================
// MANAGER
// =============================================================================

// Manager owns the conversation log and enforces the single-in-flight
// rule. Submit and Resolve are the transaction boundary: the caller runs
// the network fetch between them, typically as a Bubble Tea command.
type Manager struct {
	mu     sync.Mutex
	api    *api.Client
	log    *model.Log
	state  State
	logger *zap.Logger
}

func NewManager(client *api.Client) *Manager {
	return &Manager{
		api:    client,
		log:    model.NewLog(),
		state:  StateIdle,
		logger: zap.NewNop(),
	}
}

func (m *Manager) WithLogger(logger *zap.Logger) *Manager {
	if logger != nil {
		m.logger = logger
	}
	return m
}

// State returns the current phase.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Busy reports whether a question is awaiting its answer.
func (m *Manager) Busy() bool {
	return m.State() == StateAwaiting
}

// History returns a copy of the conversation so far.
func (m *Manager) History() []model.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.log.History()
}

// Len returns the number of messages in the log.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.log.Len()
}

// =============================================================================
// SUBMIT / RESOLVE
// =============================================================================

// Submit validates the question, appends it to the log, and moves the
// session to awaiting. The caller must follow up with Resolve exactly
// once; until then every further Submit fails with ErrBusy.
func (m *Manager) Submit(question string) (model.Message, error) {
	trimmed := strings.TrimSpace(question)
	if trimmed == "" {
		return model.Message{}, ErrEmptyQuestion
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateAwaiting {
		return model.Message{}, ErrBusy
	}

	msg := model.NewQuestionMessage(trimmed)
	m.log.Append(msg)
	m.state = StateAwaiting

	m.logger.Info("question submitted",
		zap.String("id", msg.ID),
		zap.String("preview", msg.Preview(48)))
	return msg, nil
}

// Resolve completes the in-flight question with either a server response
// or the error the fetch produced. A fetch error becomes an error-styled
// answer in the log rather than losing the turn. The session returns to
// idle in every case.
func (m *Manager) Resolve(resp *api.QuestionResponse, fetchErr error) (model.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateAwaiting {
		return model.Message{}, ErrNotAwaiting
	}

	var msg model.Message
	switch {
	case fetchErr != nil:
		msg = model.NewErrorAnswer(fetchErr.Error())
		m.logger.Warn("question failed", zap.Error(fetchErr))
	case resp == nil:
		msg = model.NewAnswerMessage("", nil, 0)
	default:
		msg = model.NewAnswerMessage(resp.Answer, resp.SourceFilenames(), resp.Elapsed())
	}

	m.log.Append(msg)
	m.state = StateIdle
	return msg, nil
}

// Ask is the synchronous convenience path: Submit, fetch, Resolve. The
// TUI uses Submit/Resolve directly so the fetch can run as a command;
// Ask exists for callers without an event loop.
func (m *Manager) Ask(ctx context.Context, question string) (model.Message, error) {
	msg, err := m.Submit(question)
	if err != nil {
		return model.Message{}, err
	}
	// The wire payload is the logged text, not the raw input; Submit
	// already trimmed it.
	resp, err := m.api.Ask(ctx, msg.Text)
	return m.Resolve(resp, err)
}

// =============================================================================
// CLEAR
// =============================================================================

// Clear empties the conversation log. Only an idle session may be
// cleared; wiping the log out from under an in-flight question would
// orphan its answer.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateAwaiting {
		return ErrBusy
	}
	m.log.Clear()
	m.logger.Info("conversation cleared")
	return nil
}
