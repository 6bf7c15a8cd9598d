package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/savingsadmin/internal/client/client"
	"github.com/dmitrijs2005/savingsadmin/internal/client/config"
	"github.com/dmitrijs2005/savingsadmin/internal/client/models"
	"github.com/dmitrijs2005/savingsadmin/internal/client/services"
	"github.com/dmitrijs2005/savingsadmin/internal/client/session"
	"github.com/dmitrijs2005/savingsadmin/internal/common"
	"github.com/dmitrijs2005/savingsadmin/internal/filex"
	"github.com/dmitrijs2005/savingsadmin/internal/logging"
)

const sessionDBName = "session.db"

// genericFailure is shown for transport errors; details go to the log.
const genericFailure = "An error occurred. Please try again."

type App struct {
	config       *config.Config
	log          logging.Logger
	db           *sql.DB
	navigator    *client.PendingNavigator
	authService  services.AuthService
	adminService services.AdminService
	profile      *models.Profile
	reader       *bufio.Reader
	out          io.Writer

	// identityProvider obtains a federated identity assertion and hands it
	// to the hook. See terminalIdentityProvider.
	identityProvider func(ctx context.Context, deliver func(string) bool)
}

// NewApp wires the local session database, the API client and the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log, err := logging.New(c.LogBackend, c.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	dir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		log.Error(ctx, "error creating data directory", "dir", c.DataDir, "error", err)
		return nil, err
	}

	db, err := client.InitDatabase(ctx, filepath.Join(dir, sessionDBName))
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	store := session.NewSQLiteStore(db)
	nav := &client.PendingNavigator{}
	api := client.New(c.APIBaseURL, store, nav, client.WithLogger(log.With("component", "api")))

	a := &App{
		config:       c,
		log:          log,
		db:           db,
		navigator:    nav,
		authService:  services.NewAuthService(api, store, nav, log.With("component", "auth")),
		adminService: services.NewAdminService(api, nav, log.With("component", "admin")),
		reader:       bufio.NewReader(os.Stdin),
		out:          os.Stdout,
	}
	a.identityProvider = a.terminalIdentityProvider
	return a, nil
}

// Run resumes a stored session (or asks to sign in), starts the optional
// session watcher and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Savings Analyzer admin CLI (type 'help' for commands)")
	fmt.Fprintf(a.out, "Backend: %s\n", a.config.APIBaseURL)

	if err := a.resume(ctx); err != nil {
		a.fail(ctx, err)
	}
	if !a.isLoggedIn() {
		_ = a.SignIn(ctx)
	}

	if a.config.SessionCheckInterval > 0 {
		go a.StartSessionWatcher(ctx, a.config.SessionCheckInterval)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Error(context.Background(), "error closing database", "error", err)
		}
	}
}

// resume restores the signed-in state from the stored session after the
// backend confirms it. A rejected or invalid session is cleared. When the
// backend is unreachable the stored session is kept unverified.
func (a *App) resume(ctx context.Context) error {
	sess, err := a.authService.CurrentSession(ctx)
	if err != nil {
		if errors.Is(err, common.ErrSessionCorrupted) {
			a.log.Warn(ctx, "discarding unreadable stored session", "error", err)
			err = a.authService.SignOut(ctx)
			a.navigator.Take()
			return err
		}
		return err
	}
	if sess == nil {
		return nil
	}

	res, err := a.authService.Verify(ctx)
	switch {
	case err == nil && res.Valid:
		a.profile = &sess.Profile
		fmt.Fprintf(a.out, "Welcome back, %s\n", displayName(a.profile))
		return nil
	case errors.Is(err, client.ErrTransport):
		a.log.Warn(ctx, "stored session not verified", "error", err)
		a.profile = &sess.Profile
		fmt.Fprintf(a.out, "Welcome back, %s (session not verified)\n", displayName(a.profile))
		return nil
	case errors.Is(err, client.ErrAuthRequired):
		// the API client already cleared the session
	default:
		a.log.Info(ctx, "stored session rejected", "error", err)
		if err := a.authService.SignOut(ctx); err != nil {
			return err
		}
	}

	// Run prompts for sign-in next.
	a.navigator.Take()
	fmt.Fprintln(a.out, "Your session has expired. Please sign in.")
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.profile != nil
}

func (a *App) getStatus() string {
	if a.profile == nil {
		return "(signed out)"
	}
	return fmt.Sprintf("(%s %s)", a.profile.Email, a.profile.Role)
}

// handleNavigation consumes a pending navigation request. Sign-in drops the
// local signed-in state and prompts for credentials.
func (a *App) handleNavigation(ctx context.Context) {
	page, ok := a.navigator.Take()
	if !ok {
		return
	}

	switch page {
	case client.SignInPage:
		wasSignedIn := a.isLoggedIn()
		a.profile = nil
		if wasSignedIn {
			fmt.Fprintln(a.out, "You are signed out. Please sign in.")
			_ = a.SignIn(ctx)
		}
	case client.LandingPage:
		fmt.Fprintf(a.out, "Admin access required; %s is not an admin.\n", displayName(a.profile))
	}
}

// fail reports err to the user. Details of transport errors are logged only.
func (a *App) fail(ctx context.Context, err error) {
	var apiErr *client.APIError

	switch {
	case err == nil:
	case errors.Is(err, client.ErrAuthRequired):
		// navigation already issued
	case errors.As(err, &apiErr):
		fmt.Fprintf(a.out, "Error: %s\n", apiErr.Detail)
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrAdminRequired),
		errors.Is(err, common.ErrInvalidAssertion):
		fmt.Fprintf(a.out, "Error: %s\n", err)
	default:
		a.log.Error(ctx, "command failed", "error", err)
		fmt.Fprintln(a.out, genericFailure)
	}
}

// StartSessionWatcher re-verifies the stored session every interval. An
// expired session is cleared by the API client; the REPL picks up the
// resulting navigation after the next command.
func (a *App) StartSessionWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkSession(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkSession(ctx context.Context) {
	sess, err := a.authService.CurrentSession(ctx)
	if err != nil || sess == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err = a.authService.Verify(ctx)
	switch {
	case err == nil:
	case errors.Is(err, client.ErrAuthRequired):
		a.log.Warn(ctx, "session expired")
	default:
		a.log.Debug(ctx, "session check failed", "error", err)
	}
}

func displayName(p *models.Profile) string {
	if p == nil {
		return "-"
	}
	if p.Name != "" {
		return p.Name
	}
	return p.Email
}
