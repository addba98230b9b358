// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the conversation log.
//
// This package defines the domain types used throughout the application
// for representing the question/answer history shown to the operator.
//
// # Key Types
//
//   - Log: ordered, append-only conversation history
//   - Message: single question or answer with citation metadata
//   - Role: message role enumeration (question, answer)
//
// # Usage
//
// Create a log and append a turn:
//
//	log := model.NewLog()
//	log.Append(model.NewQuestionMessage("What is the refund policy?"))
//	log.Append(model.NewAnswerMessage("30 days", []string{"policy.pdf"}, 1.2))
//
// Answer messages de-duplicate their source filenames on construction, so
// a server response citing the same document twice renders a single line.
package model
