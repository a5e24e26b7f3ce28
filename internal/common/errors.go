// Package common defines shared constants and sentinel errors used across
// the LoanDesk client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Local validation errors, raised before any network call.
	ErrValidation = errors.New("validation error")

	// Transport and server-side errors.
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrMissingToken = errors.New("verification response carries no token")

	// Session and sign-in flow errors.
	ErrNotAuthenticated     = errors.New("not signed in")
	ErrAlreadyAuthenticated = errors.New("already signed in")
	ErrNoPendingEmail       = errors.New("no pending email, request a code first")
	ErrCooldownActive       = errors.New("resend is not available yet")

	// Underwriting errors.
	ErrAlreadyEvaluated   = errors.New("loan already evaluated")
	ErrEvaluationInFlight = errors.New("evaluation already in progress")
)
