package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/loandesk/internal/client/api"
	"github.com/dmitrijs2005/loandesk/internal/client/models"
	"github.com/dmitrijs2005/loandesk/internal/client/session"
	"github.com/dmitrijs2005/loandesk/internal/common"
	"github.com/dmitrijs2005/loandesk/internal/logging"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExpirer struct {
	calls int
	err   error
}

func (f *fakeExpirer) Expire(context.Context) error {
	f.calls++
	return f.err
}

func newLoans(t *testing.T, fc *fakeClient, token string) (*loanService, *session.Store, *fakeExpirer) {
	t.Helper()
	store := newSessionStore(t)
	if token != "" {
		require.NoError(t, store.Confirm(context.Background(), token, "user@test.com"))
	}
	exp := &fakeExpirer{}
	svc := NewLoanService(fc, store, exp, logging.Discard()).(*loanService)
	return svc, store, exp
}

func unauthorized() error {
	return &api.Error{StatusCode: 401, Message: "Unauthorized", Err: common.ErrUnauthorized}
}

func TestList_ReturnsLoansInServerOrder(t *testing.T) {
	loans := []models.Loan{
		{ID: "L2", LoanType: models.LoanTypeHome, Amount: decimal.NewFromInt(500000), Status: models.LoanStatusApproved, CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "L1", LoanType: models.LoanTypePersonal, Amount: decimal.NewFromInt(20000), Status: models.LoanStatusApplied},
	}
	fc := &fakeClient{ListRet: loans}
	svc, _, _ := newLoans(t, fc, "abc")

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, loans, got)
	assert.Equal(t, []string{"abc"}, fc.ListTokens)
}

func TestList_RequiresSession(t *testing.T) {
	fc := &fakeClient{}
	svc, _, _ := newLoans(t, fc, "")

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, common.ErrNotAuthenticated)
	assert.Empty(t, fc.ListTokens)
}

func TestList_Unauthorized_ExpiresSession(t *testing.T) {
	fc := &fakeClient{ListErr: unauthorized()}
	svc, _, exp := newLoans(t, fc, "abc")

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Equal(t, 1, exp.calls)
}

func TestSubmit_InvalidForm_NoNetwork(t *testing.T) {
	fc := &fakeClient{}
	svc, _, _ := newLoans(t, fc, "abc")

	_, err := svc.Submit(context.Background(), models.Application{
		PanOrAadhaar: "ABCDE1234F", MonthlyIncome: "50000", LoanType: "Personal", Amount: "1000",
	})
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Empty(t, fc.SubmitApps)
}

func TestSubmit_SendsNormalisedForm(t *testing.T) {
	fc := &fakeClient{}
	svc, _, _ := newLoans(t, fc, "abc")

	sent, err := svc.Submit(context.Background(), models.Application{
		PanOrAadhaar: " ABCDE1234F ", MonthlyIncome: "50000", LoanType: "home", Amount: "250000", Purpose: "flat",
	})
	require.NoError(t, err)
	assert.Equal(t, "Home", sent.LoanType)
	require.Len(t, fc.SubmitApps, 1)
	assert.Equal(t, sent, fc.SubmitApps[0])
	assert.Equal(t, []string{"abc"}, fc.SubmitTokens)
}

func TestSubmit_WithoutToken_SendsNoAuth(t *testing.T) {
	fc := &fakeClient{}
	svc, _, _ := newLoans(t, fc, "")

	_, err := svc.Submit(context.Background(), validApplication())
	require.NoError(t, err)
	assert.Equal(t, []string{""}, fc.SubmitTokens)
}

func TestEvaluate_StoresResultAndRefusesSecondRequest(t *testing.T) {
	want := models.UnderwritingResult{Decision: "Approved", Score: 72, Reasons: []string{"stable income"}}
	fc := &fakeClient{EvaluateRet: want}
	svc, _, _ := newLoans(t, fc, "abc")
	ctx := context.Background()

	assert.True(t, svc.CanEvaluate("L1"))
	got, err := svc.Evaluate(ctx, "L1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, [][2]string{{"abc", "L1"}}, fc.EvaluateCalls)

	cached, ok := svc.Result("L1")
	require.True(t, ok)
	assert.Equal(t, want, cached)
	assert.False(t, svc.CanEvaluate("L1"))

	fc.EvaluateRet = models.UnderwritingResult{Decision: "Rejected"}
	_, err = svc.Evaluate(ctx, "L1")
	assert.ErrorIs(t, err, common.ErrAlreadyEvaluated)
	assert.Len(t, fc.EvaluateCalls, 1)

	cached, _ = svc.Result("L1")
	assert.Equal(t, "Approved", cached.Decision)
}

func TestEvaluate_InFlight(t *testing.T) {
	fc := &fakeClient{EvaluateRet: models.UnderwritingResult{Decision: "Approved", Score: 72}}
	svc, _, _ := newLoans(t, fc, "abc")
	ctx := context.Background()

	var nested error
	fc.EvaluateHook = func() {
		fc.EvaluateHook = nil
		assert.False(t, svc.CanEvaluate("L1"))
		_, nested = svc.Evaluate(ctx, "L1")
	}

	_, err := svc.Evaluate(ctx, "L1")
	require.NoError(t, err)
	assert.ErrorIs(t, nested, common.ErrEvaluationInFlight)
	assert.Len(t, fc.EvaluateCalls, 1)
}

func TestEvaluate_FailureAllowsRetry(t *testing.T) {
	fc := &fakeClient{EvaluateErr: &api.Error{StatusCode: 500, Message: api.MsgEvaluateFailed}}
	svc, _, exp := newLoans(t, fc, "abc")
	ctx := context.Background()

	_, err := svc.Evaluate(ctx, "L1")
	require.Error(t, err)
	assert.Equal(t, api.MsgEvaluateFailed, err.Error())
	assert.Equal(t, 0, exp.calls)
	assert.True(t, svc.CanEvaluate("L1"))

	_, ok := svc.Result("L1")
	assert.False(t, ok)
}

func TestEvaluate_Guards(t *testing.T) {
	fc := &fakeClient{}
	svc, _, _ := newLoans(t, fc, "")

	_, err := svc.Evaluate(context.Background(), "  ")
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Evaluate(context.Background(), "L1")
	assert.ErrorIs(t, err, common.ErrNotAuthenticated)
	assert.Empty(t, fc.EvaluateCalls)
}

func TestEvaluate_Unauthorized_ExpiresAndForgetsResults(t *testing.T) {
	fc := &fakeClient{EvaluateRet: models.UnderwritingResult{Decision: "Approved", Score: 72}}
	svc, _, exp := newLoans(t, fc, "abc")
	ctx := context.Background()

	_, err := svc.Evaluate(ctx, "L1")
	require.NoError(t, err)

	fc.EvaluateErr = unauthorized()
	_, err = svc.Evaluate(ctx, "L2")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Equal(t, 1, exp.calls)

	_, ok := svc.Result("L1")
	assert.False(t, ok)
}

func TestLoans_ExpireThroughAuthService(t *testing.T) {
	fc := &fakeClient{ListErr: unauthorized()}
	store := newSessionStore(t)
	ctx := context.Background()
	require.NoError(t, store.Confirm(ctx, "abc", "user@test.com"))

	auth := NewAuthService(fc, store, NewCooldown(60, time.Hour), logging.Discard())
	t.Cleanup(auth.Close)
	require.Equal(t, StateAuthenticated, auth.Resume(ctx))

	loans := NewLoanService(fc, store, auth, logging.Discard())
	_, err := loans.List(ctx)
	require.ErrorIs(t, err, common.ErrUnauthorized)

	assert.Equal(t, StateIdle, auth.State())
	assert.Equal(t, session.Snapshot{}, store.Snapshot())
}

func TestEvaluate_ResponseAfterResetIsDropped(t *testing.T) {
	fc := &fakeClient{EvaluateRet: models.UnderwritingResult{Decision: "Approved", Score: 72}}
	svc, _, _ := newLoans(t, fc, "abc")
	ctx := context.Background()

	fc.EvaluateHook = func() {
		fc.EvaluateHook = nil
		svc.Reset()
		assert.True(t, svc.CanEvaluate("L1"), "reset forgets the pending request")
	}

	_, err := svc.Evaluate(ctx, "L1")
	require.NoError(t, err)

	_, ok := svc.Result("L1")
	assert.False(t, ok)
	assert.True(t, svc.CanEvaluate("L1"))

	got, err := svc.Evaluate(ctx, "L1")
	require.NoError(t, err)
	assert.Equal(t, "Approved", got.Decision)
	cached, ok := svc.Result("L1")
	require.True(t, ok)
	assert.Equal(t, got, cached)
}
