// Package api is the REST client for the LoanDesk backend: OTP sign-in,
// loan applications and underwriting.
//
// # Error Handling
//
// Every failed call returns an *Error whose Error() text is fit for display:
// the server's "message" field when present, otherwise a per-call fallback.
// Transport failures unwrap to common.ErrUnavailable and 401/403 responses
// unwrap to common.ErrUnauthorized, so callers can use errors.Is.
package api

import (
	"context"

	"github.com/dmitrijs2005/loandesk/internal/client/models"
)

// Client is the transport-agnostic contract used by the services.
type Client interface {
	SendOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) (string, error)
	ResendOTP(ctx context.Context, email string) error
	ListMyLoans(ctx context.Context, token string) ([]models.Loan, error)
	SubmitApplication(ctx context.Context, token string, app models.Application) error
	Evaluate(ctx context.Context, token, loanID string) (models.UnderwritingResult, error)
}

// Fallback messages shown when the server gives none.
const (
	MsgSendOTPFailed  = "Failed to send OTP. Please try again."
	MsgVerifyFailed   = "OTP verification failed"
	MsgResendFailed   = "Failed to resend OTP"
	MsgListFailed     = "Failed to fetch loans"
	MsgApplyFailed    = "Application failed"
	MsgEvaluateFailed = "Failed to evaluate loan"
)
