package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/loandesk/internal/client/api"
	"github.com/dmitrijs2005/loandesk/internal/client/config"
	"github.com/dmitrijs2005/loandesk/internal/client/services"
	"github.com/dmitrijs2005/loandesk/internal/client/session"
	"github.com/dmitrijs2005/loandesk/internal/client/storage"
	"github.com/dmitrijs2005/loandesk/internal/logging"
)

// sessionView is the read side of session.Store used by the commands.
type sessionView interface {
	Snapshot() session.Snapshot
}

type App struct {
	config      *config.Config
	db          *sql.DB
	session     sessionView
	authService services.AuthService
	loanService services.LoanService
	log         logging.Logger
	reader      *bufio.Reader
	out         io.Writer
	unsubscribe func()
	closeOnce   sync.Once
}

// NewApp opens the session database, restores the previous session and
// wires the services. The caller must call Close (Run does it).
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	store := session.NewStore(db, log)
	if err := store.Load(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("load session: %w", err)
	}

	apiClient := api.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, log)
	cooldown := services.NewCooldown(c.ResendCooldown, c.CooldownTick)

	as := services.NewAuthService(apiClient, store, cooldown, log)
	ls := services.NewLoanService(apiClient, store, as, log)

	unsubscribe := store.Subscribe(func(s session.Snapshot) {
		log.Debug(context.Background(), "session changed",
			"authenticated", s.IsAuthenticated(), "pending", s.PendingEmail != "")
	})

	return &App{
		config:      c,
		db:          db,
		session:     store,
		authService: as,
		loanService: ls,
		log:         log,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		unsubscribe: unsubscribe,
	}, nil
}

// Run resumes any earlier sign-in and blocks in the REPL until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	switch a.authService.Resume(ctx) {
	case services.StateAuthenticated:
		fmt.Fprintf(a.out, "Welcome back, %s\n", a.session.Snapshot().ConfirmedEmail)
	case services.StateAwaitingCode:
		fmt.Fprintf(a.out, "A code was sent to %s. Type 'verify' to enter it.\n", a.session.Snapshot().PendingEmail)
	}

	fmt.Fprintln(a.out, "Welcome to LoanDesk CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

// Close stops background work and closes the database. It is safe to call
// more than once.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		a.authService.Close()
		if a.unsubscribe != nil {
			a.unsubscribe()
		}
		if a.db != nil {
			if err := a.db.Close(); err != nil {
				a.log.Error(context.Background(), "error closing database", "error", err)
			}
		}
	})
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().IsAuthenticated()
}

func (a *App) getStatus() string {
	snap := a.session.Snapshot()
	switch {
	case snap.IsAuthenticated():
		return "(" + snap.ConfirmedEmail + ")"
	case snap.PendingEmail != "":
		return "(code sent to " + snap.PendingEmail + ")"
	default:
		return ""
	}
}
