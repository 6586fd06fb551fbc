package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/dmitrijs2005/gynecare/internal/client/client"
	"github.com/dmitrijs2005/gynecare/internal/client/config"
	"github.com/dmitrijs2005/gynecare/internal/client/services"
	"github.com/dmitrijs2005/gynecare/internal/client/session"
	"github.com/dmitrijs2005/gynecare/internal/logging"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	authService    services.AuthService
	chatService    services.ChatService
	doctorService  services.DoctorService
	reader         *bufio.Reader
	out            io.Writer
	activeChat     int64
	sessionExpired atomic.Bool
}

// NewApp opens the session database and wires the API client and services.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := session.OpenDatabase(ctx, c.SessionDBPath)
	if err != nil {
		logger.Error(ctx, "error initializing session database", "path", c.SessionDBPath, "error", err)
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(c.APIBaseURL, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	creds := services.ClientCredentials{ID: c.ClientID, Secret: c.ClientSecret}
	as := services.NewAuthService(apiClient, session.NewSQLiteStore(db), creds, logger)
	apiClient.Bind(as)

	return &App{
		config:        c,
		logger:        logger,
		db:            db,
		authService:   as,
		chatService:   services.NewChatService(apiClient, as, logger),
		doctorService: services.NewDoctorService(apiClient, logger),
		reader:        bufio.NewReader(os.Stdin),
		out:           os.Stdout,
	}, nil
}

// Run restores the stored session and blocks in the REPL until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.close(ctx)

	a.println("Welcome to gynecare (type 'help' for commands)")

	unsubscribe := a.authService.Subscribe(a.onAuthChange)
	defer unsubscribe()

	if err := a.authService.Restore(ctx); err != nil {
		a.logger.Error(ctx, "failed to restore session", "error", err)
	}

	// A stale stored session is reported here, not by the REPL.
	a.sessionExpired.Store(false)

	st := a.authService.State()
	switch {
	case st.User != nil:
		a.printf("Logged in as %s.\n", st.User.Email)
	case errors.Is(st.Err, client.ErrAuthenticationExpired):
		a.println(msgSessionExpired)
	default:
		a.println("You are not logged in. Use 'login' or 'register'.")
	}

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) close(ctx context.Context) {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error(ctx, "failed to close session database", "error", err)
	}
}

// onAuthChange reacts to provider transitions. A forced drop to anonymous is
// reported once and makes the REPL ask for credentials.
func (a *App) onAuthChange(st services.State) {
	if st.Status == services.StatusAuthenticated {
		a.sessionExpired.Store(false)
		return
	}
	if st.Status != services.StatusAnonymous {
		return
	}
	a.activeChat = 0
	if errors.Is(st.Err, client.ErrAuthenticationExpired) {
		a.sessionExpired.Store(true)
	}
}

// consumeSessionExpired reports and resets the pending expiry notice.
func (a *App) consumeSessionExpired() bool {
	return a.sessionExpired.Swap(false)
}

func (a *App) isLoggedIn() bool {
	return a.authService.State().Status == services.StatusAuthenticated
}

func (a *App) status() string {
	st := a.authService.State()
	if st.User == nil {
		return ""
	}
	s := st.User.Username
	if a.activeChat != 0 {
		s = fmt.Sprintf("%s chat #%d", s, a.activeChat)
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
