// Package session owns the signed-in state of the client: the bearer token,
// the email it belongs to, and the email an OTP was last requested for.
//
// Store is the single writer of that state. Every mutation is persisted to
// the local database before it becomes visible in memory, and subscribers
// are notified afterwards with a copy of the new state.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/loandesk/internal/client/repositories/kv"
	"github.com/dmitrijs2005/loandesk/internal/dbx"
	"github.com/dmitrijs2005/loandesk/internal/logging"
)

// Durable keys.
const (
	KeyAuthToken    = "authToken"
	KeyUserEmail    = "userEmail"
	KeyPendingEmail = "pendingEmail"
)

// Snapshot is an immutable copy of the session state.
type Snapshot struct {
	Token          string
	ConfirmedEmail string
	PendingEmail   string
}

// IsAuthenticated reports whether a token is present.
func (s Snapshot) IsAuthenticated() bool {
	return s.Token != ""
}

type Store struct {
	db  *sql.DB
	log logging.Logger

	// writeMu serialises mutations so that durable and in-memory state
	// change in the same order.
	writeMu sync.Mutex

	mu    sync.RWMutex
	state Snapshot

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(Snapshot)
}

// NewStore returns an empty store backed by db. Call Load to restore the
// persisted session.
func NewStore(db *sql.DB, log logging.Logger) *Store {
	return &Store{
		db:   db,
		log:  log.With("component", "session"),
		subs: make(map[int]func(Snapshot)),
	}
}

// Load restores the persisted session, including a pending email so that a
// restart while waiting for a code does not strand the sign-in. A token
// without its email (or the reverse) is treated as signed out and removed.
func (s *Store) Load(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	values, err := kv.NewSQLiteRepository(s.db).List(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	next := Snapshot{
		Token:          values[KeyAuthToken],
		ConfirmedEmail: values[KeyUserEmail],
		PendingEmail:   values[KeyPendingEmail],
	}

	if (next.Token == "") != (next.ConfirmedEmail == "") {
		s.log.Warn(ctx, "discarding partial session")
		next.Token, next.ConfirmedEmail = "", ""
		err := s.persist(ctx, func(ctx context.Context, repo kv.Repository) error {
			if err := repo.Delete(ctx, KeyAuthToken); err != nil {
				return err
			}
			return repo.Delete(ctx, KeyUserEmail)
		})
		if err != nil {
			return fmt.Errorf("load session: %w", err)
		}
	}

	s.update(func(st *Snapshot) { *st = next })
	return nil
}

// RequestEmail records address as the pending email. It does not contact
// the backend and does not affect authentication.
func (s *Store) RequestEmail(ctx context.Context, address string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	err := s.persist(ctx, func(ctx context.Context, repo kv.Repository) error {
		return repo.Set(ctx, KeyPendingEmail, address)
	})
	if err != nil {
		return fmt.Errorf("save pending email: %w", err)
	}

	s.update(func(st *Snapshot) { st.PendingEmail = address })
	return nil
}

// Confirm stores token and address together and drops the pending email.
// It must only be called after the backend has verified the code; the token
// is opaque and not inspected.
func (s *Store) Confirm(ctx context.Context, token, address string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	err := s.persist(ctx, func(ctx context.Context, repo kv.Repository) error {
		if err := repo.Set(ctx, KeyAuthToken, token); err != nil {
			return err
		}
		if err := repo.Set(ctx, KeyUserEmail, address); err != nil {
			return err
		}
		return repo.Delete(ctx, KeyPendingEmail)
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.update(func(st *Snapshot) { *st = Snapshot{Token: token, ConfirmedEmail: address} })
	return nil
}

// DiscardPending forgets the pending email when a sign-in is abandoned.
func (s *Store) DiscardPending(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	err := s.persist(ctx, func(ctx context.Context, repo kv.Repository) error {
		return repo.Delete(ctx, KeyPendingEmail)
	})
	if err != nil {
		return fmt.Errorf("discard pending email: %w", err)
	}

	s.update(func(st *Snapshot) { st.PendingEmail = "" })
	return nil
}

// Clear removes every session field. Clearing an empty store is a no-op.
func (s *Store) Clear(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	err := s.persist(ctx, func(ctx context.Context, repo kv.Repository) error {
		return repo.Clear(ctx)
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.update(func(st *Snapshot) { *st = Snapshot{} })
	return nil
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) IsAuthenticated() bool {
	return s.Snapshot().IsAuthenticated()
}

func (s *Store) Token() string {
	return s.Snapshot().Token
}

// Subscribe registers fn to be called after every state change. fn runs on
// the mutating goroutine and must not call back into the store's mutators.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) persist(ctx context.Context, fn func(ctx context.Context, repo kv.Repository) error) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, kv.NewSQLiteRepository(tx))
	})
}

func (s *Store) update(mutate func(*Snapshot)) {
	s.mu.Lock()
	mutate(&s.state)
	next := s.state
	s.mu.Unlock()

	s.subMu.Lock()
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}
