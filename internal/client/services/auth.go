// Package services contains the client's application services.
// This file defines the OTP sign-in flow: request a code, verify it, resend
// it after a cooldown, and sign out.
package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/loandesk/internal/client/api"
	"github.com/dmitrijs2005/loandesk/internal/client/session"
	"github.com/dmitrijs2005/loandesk/internal/common"
	"github.com/dmitrijs2005/loandesk/internal/logging"
)

// FlowState is the position in the sign-in flow.
type FlowState int

const (
	StateIdle FlowState = iota
	StateAwaitingCode
	StateAuthenticated
)

func (s FlowState) String() string {
	switch s {
	case StateAwaitingCode:
		return "awaiting-code"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "idle"
	}
}

// SessionStore is the part of session.Store the services depend on.
type SessionStore interface {
	RequestEmail(ctx context.Context, address string) error
	Confirm(ctx context.Context, token, address string) error
	DiscardPending(ctx context.Context) error
	Clear(ctx context.Context) error
	Snapshot() session.Snapshot
}

// CooldownError is returned by ResendOTP while the cooldown is running.
type CooldownError struct {
	Remaining int
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("resend available in %ds", e.Remaining)
}

func (e *CooldownError) Unwrap() error {
	return common.ErrCooldownActive
}

// AuthService drives the two-step OTP sign-in.
//
// Contract:
//   - Resume: derive the flow state from the restored session.
//   - RequestOTP: ask the backend to email a code; Idle → AwaitingCode.
//   - VerifyOTP: check the code with the backend; AwaitingCode → Authenticated.
//   - ResendOTP: request a new code once the cooldown has elapsed.
//   - Cancel: abandon a sign-in in progress; AwaitingCode → Idle.
//   - Logout / Expire: drop the session; any state → Idle.
//   - Close: stop the cooldown timer.
type AuthService interface {
	Resume(ctx context.Context) FlowState
	RequestOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, code string) error
	ResendOTP(ctx context.Context) error
	Cancel(ctx context.Context) error
	Logout(ctx context.Context) error
	Expire(ctx context.Context) error
	State() FlowState
	CooldownRemaining() int
	Close()
}

type authService struct {
	client   api.Client
	store    SessionStore
	cooldown *Cooldown
	log      logging.Logger

	mu    sync.Mutex
	state FlowState
}

// NewAuthService constructs an AuthService. The cooldown is owned by the
// service from here on and is stopped by Close.
func NewAuthService(client api.Client, store SessionStore, cooldown *Cooldown, log logging.Logger) AuthService {
	return &authService{
		client:   client,
		store:    store,
		cooldown: cooldown,
		log:      log.With("component", "auth"),
	}
}

// Resume picks up where a previous run left off: a confirmed session is
// Authenticated, a pending email is AwaitingCode with a fresh cooldown.
func (a *authService) Resume(ctx context.Context) FlowState {
	snap := a.store.Snapshot()
	switch {
	case snap.IsAuthenticated():
		a.setState(StateAuthenticated)
	case snap.PendingEmail != "":
		a.cooldown.Start()
		a.setState(StateAwaitingCode)
		a.log.Info(ctx, "resuming sign-in", "email", snap.PendingEmail)
	default:
		a.setState(StateIdle)
	}
	return a.State()
}

func (a *authService) RequestOTP(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if err := validateEmail(email); err != nil {
		return err
	}
	if a.store.Snapshot().IsAuthenticated() {
		return common.ErrAlreadyAuthenticated
	}

	if err := a.client.SendOTP(ctx, email); err != nil {
		a.log.Warn(ctx, "send otp failed", "error", err)
		return err
	}

	if err := a.store.RequestEmail(ctx, email); err != nil {
		return err
	}

	a.cooldown.Start()
	a.setState(StateAwaitingCode)
	a.log.Info(ctx, "otp requested", "email", email)
	return nil
}

func (a *authService) VerifyOTP(ctx context.Context, code string) error {
	email, err := a.pendingEmail()
	if err != nil {
		return err
	}

	code = strings.TrimSpace(code)
	if err := validateCode(code); err != nil {
		return err
	}

	token, err := a.client.VerifyOTP(ctx, email, code)
	if err != nil {
		a.log.Warn(ctx, "verify otp failed", "error", err)
		return err
	}

	if err := a.store.Confirm(ctx, token, email); err != nil {
		return err
	}

	a.cooldown.Stop()
	a.setState(StateAuthenticated)
	a.log.Info(ctx, "signed in", "email", email)
	return nil
}

func (a *authService) ResendOTP(ctx context.Context) error {
	email, err := a.pendingEmail()
	if err != nil {
		return err
	}

	if remaining := a.cooldown.Remaining(); remaining > 0 {
		return &CooldownError{Remaining: remaining}
	}

	if err := a.client.ResendOTP(ctx, email); err != nil {
		a.log.Warn(ctx, "resend otp failed", "error", err)
		return err
	}

	a.cooldown.Start()
	a.setState(StateAwaitingCode)
	a.log.Info(ctx, "otp resent", "email", email)
	return nil
}

func (a *authService) Cancel(ctx context.Context) error {
	a.cooldown.Stop()
	if err := a.store.DiscardPending(ctx); err != nil {
		return err
	}
	if a.State() == StateAwaitingCode {
		a.setState(StateIdle)
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.cooldown.Stop()
	if err := a.store.Clear(ctx); err != nil {
		return err
	}
	a.setState(StateIdle)
	a.log.Info(ctx, "signed out")
	return nil
}

// Expire is Logout triggered by the backend rejecting the token.
func (a *authService) Expire(ctx context.Context) error {
	a.log.Warn(ctx, "session rejected by server, signing out")
	return a.Logout(ctx)
}

func (a *authService) State() FlowState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *authService) CooldownRemaining() int {
	return a.cooldown.Remaining()
}

func (a *authService) Close() {
	a.cooldown.Stop()
}

// pendingEmail guards the verify step: without a pending email the caller
// must go back to requesting a code.
func (a *authService) pendingEmail() (string, error) {
	email := a.store.Snapshot().PendingEmail
	if email == "" {
		if a.State() == StateAwaitingCode {
			a.cooldown.Stop()
			a.setState(StateIdle)
		}
		return "", common.ErrNoPendingEmail
	}
	return email, nil
}

func (a *authService) setState(s FlowState) {
	a.mu.Lock()
	a.state = s
	a.mu.Unlock()
}
