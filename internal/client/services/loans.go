package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/dmitrijs2005/loandesk/internal/client/api"
	"github.com/dmitrijs2005/loandesk/internal/client/models"
	"github.com/dmitrijs2005/loandesk/internal/common"
	"github.com/dmitrijs2005/loandesk/internal/logging"
)

// SessionExpirer is told when the backend rejects the bearer token.
type SessionExpirer interface {
	Expire(ctx context.Context) error
}

// LoanService reads and writes loan applications and requests underwriting
// decisions. Results are cached in memory per loan id for the life of the
// process and are never replaced once received.
type LoanService interface {
	List(ctx context.Context) ([]models.Loan, error)
	Submit(ctx context.Context, app models.Application) (models.Application, error)
	Evaluate(ctx context.Context, loanID string) (models.UnderwritingResult, error)
	Result(loanID string) (models.UnderwritingResult, bool)
	CanEvaluate(loanID string) bool
	Reset()
}

type loanService struct {
	client  api.Client
	store   SessionStore
	expirer SessionExpirer
	log     logging.Logger

	mu       sync.Mutex
	results  map[string]models.UnderwritingResult
	inFlight map[string]struct{}

	// generation is bumped by Reset; a response from an older generation
	// is dropped.
	generation uint64
}

func NewLoanService(client api.Client, store SessionStore, expirer SessionExpirer, log logging.Logger) LoanService {
	return &loanService{
		client:   client,
		store:    store,
		expirer:  expirer,
		log:      log.With("component", "loans"),
		results:  make(map[string]models.UnderwritingResult),
		inFlight: make(map[string]struct{}),
	}
}

// List returns the signed-in user's applications in server order.
func (s *loanService) List(ctx context.Context) ([]models.Loan, error) {
	token := s.store.Snapshot().Token
	if token == "" {
		return nil, common.ErrNotAuthenticated
	}

	loans, err := s.client.ListMyLoans(ctx, token)
	if err != nil {
		return nil, s.handleErr(ctx, err)
	}
	return loans, nil
}

// Submit validates the form locally and posts it. Invalid forms never reach
// the network. The returned application is the normalised form that was sent.
func (s *loanService) Submit(ctx context.Context, app models.Application) (models.Application, error) {
	app, err := ValidateApplication(app)
	if err != nil {
		return app, err
	}

	if err := s.client.SubmitApplication(ctx, s.store.Snapshot().Token, app); err != nil {
		return app, s.handleErr(ctx, err)
	}

	s.log.Info(ctx, "application submitted", "loan_type", app.LoanType)
	return app, nil
}

// Evaluate requests a decision for loanID. It refuses when a result is
// already cached or a request for the same id is still running.
func (s *loanService) Evaluate(ctx context.Context, loanID string) (models.UnderwritingResult, error) {
	loanID = strings.TrimSpace(loanID)
	if loanID == "" {
		return models.UnderwritingResult{}, &ValidationError{Title: "Loan required", Message: "Please enter a loan id"}
	}

	token := s.store.Snapshot().Token
	if token == "" {
		return models.UnderwritingResult{}, common.ErrNotAuthenticated
	}

	gen, err := s.begin(loanID)
	if err != nil {
		return models.UnderwritingResult{}, err
	}

	res, err := s.client.Evaluate(ctx, token, loanID)

	s.mu.Lock()
	if gen == s.generation {
		delete(s.inFlight, loanID)
		if err == nil {
			s.results[loanID] = res
		}
	}
	s.mu.Unlock()

	if err != nil {
		return models.UnderwritingResult{}, s.handleErr(ctx, err)
	}

	s.log.Info(ctx, "loan evaluated", "loan_id", loanID, "decision", res.Decision)
	return res, nil
}

func (s *loanService) Result(loanID string) (models.UnderwritingResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.results[strings.TrimSpace(loanID)]
	return res, ok
}

// CanEvaluate is false once a result exists or while one is pending.
func (s *loanService) CanEvaluate(loanID string) bool {
	loanID = strings.TrimSpace(loanID)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, done := s.results[loanID]
	_, running := s.inFlight[loanID]
	return !done && !running
}

// Reset forgets cached results and pending requests, e.g. after sign-out.
// Requests still running complete without touching the cache.
func (s *loanService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = make(map[string]models.UnderwritingResult)
	s.inFlight = make(map[string]struct{})
	s.generation++
}

func (s *loanService) begin(loanID string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.results[loanID]; ok {
		return 0, common.ErrAlreadyEvaluated
	}
	if _, ok := s.inFlight[loanID]; ok {
		return 0, common.ErrEvaluationInFlight
	}
	s.inFlight[loanID] = struct{}{}
	return s.generation, nil
}

// handleErr signs the user out when the token was rejected.
func (s *loanService) handleErr(ctx context.Context, err error) error {
	if errors.Is(err, common.ErrUnauthorized) {
		s.Reset()
		if xerr := s.expirer.Expire(ctx); xerr != nil {
			s.log.Error(ctx, "sign-out after rejected token failed", "error", xerr)
		}
	}
	return err
}
