// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth provides session token persistence and the auth guard.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/jeranaias/docquery-tui/internal/api"
)

// ErrValidation wraps credential form failures caught before any network call.
var ErrValidation = errors.New("invalid credentials")

// =============================================================================
// CREDENTIAL FORMS
// =============================================================================

// loginForm carries login credentials through validation.
type loginForm struct {
	Username string `validate:"required,min=3,max=64"`
	Password string `validate:"required,min=8"`
}

// registerForm adds the confirmation field checked before registration.
type registerForm struct {
	Username string `validate:"required,min=3,max=64"`
	Password string `validate:"required,min=8"`
	Confirm  string `validate:"required,eqfield=Password"`
}

// =============================================================================
// GUARD
// =============================================================================

// Guard decides authentication state and owns the login/logout lifecycle.
// Token presence in the store is the sole authentication signal.
type Guard struct {
	api      *api.Client
	tokens   *TokenStore
	validate *validator.Validate
}

// NewGuard creates a guard over the given API client and token store.
func NewGuard(client *api.Client, tokens *TokenStore) *Guard {
	return &Guard{
		api:      client,
		tokens:   tokens,
		validate: validator.New(),
	}
}

// IsAuthenticated returns true iff a session token is present.
func (g *Guard) IsAuthenticated() bool {
	return g.tokens.Token() != ""
}

// Login exchanges credentials for a session token and persists it.
func (g *Guard) Login(ctx context.Context, username, password string, rememberMe bool) error {
	form := loginForm{Username: username, Password: password}
	if err := g.validate.Struct(form); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, describeFieldError(err))
	}

	resp, err := g.api.Login(ctx, api.LoginRequest{
		Username:   username,
		Password:   password,
		RememberMe: rememberMe,
	})
	if err != nil {
		return err
	}

	return g.tokens.Set(resp.AccessToken, resp.RefreshToken)
}

// Register creates a new account. Password confirmation is checked locally
// before the request is attempted.
func (g *Guard) Register(ctx context.Context, username, password, confirm string) error {
	form := registerForm{Username: username, Password: password, Confirm: confirm}
	if err := g.validate.Struct(form); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, describeFieldError(err))
	}

	return g.api.Register(ctx, api.RegisterRequest{
		Username:        username,
		Password:        password,
		ConfirmPassword: confirm,
	})
}

// Logout purges the persisted token. Idempotent; logging out while already
// logged out is not an error.
func (g *Guard) Logout() error {
	return g.tokens.Clear()
}

// describeFieldError turns the first validator failure into a message fit
// for the status line.
func describeFieldError(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "invalid input"
	}

	fe := fieldErrs[0]
	switch {
	case fe.Field() == "Confirm" && fe.Tag() == "eqfield":
		return "passwords do not match"
	case fe.Tag() == "required":
		return fmt.Sprintf("%s is required", fieldName(fe.Field()))
	case fe.Tag() == "min":
		return fmt.Sprintf("%s must be at least %s characters", fieldName(fe.Field()), fe.Param())
	case fe.Tag() == "max":
		return fmt.Sprintf("%s must be at most %s characters", fieldName(fe.Field()), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fieldName(fe.Field()))
	}
}

// fieldName maps struct fields to the labels users see.
func fieldName(field string) string {
	switch field {
	case "Username":
		return "username"
	case "Password":
		return "password"
	case "Confirm":
		return "password confirmation"
	default:
		return field
	}
}
