package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	handleNavigation(ctx context.Context)

	SignIn(ctx context.Context) error
	SignUp(ctx context.Context) error
	GoogleSignIn(ctx context.Context) error
	SignOut(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Verify(ctx context.Context) error

	Dashboard(ctx context.Context) error
	Users(ctx context.Context) error
	SetRole(ctx context.Context, args []string) error
	ToggleActive(ctx context.Context, args []string) error
	Analytics(ctx context.Context) error
	Settings(ctx context.Context) error
	EditSettings(ctx context.Context) error
	Logs(ctx context.Context, args []string) error
}

const (
	helpSignedOut = "Available commands: signin, signup, google, exit"
	helpSignedIn  = "Available commands: whoami, verify, dashboard, users, role <id> <user|admin>, toggle <id>, analytics, settings, setsettings, logs [level], signout, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a.
//
// Signed-out commands are signin, signup and google; everything else needs
// a session. After every command a pending navigation is handled, so an
// expired session drops the user back to sign-in. The loop exits on EOF or
// on "exit" / "quit".
//
// Handlers report their own errors; the loop ignores them.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("sa %s > ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		if cmd == "help" {
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpSignedOut)
			}
			continue
		}

		if !a.isLoggedIn() {
			switch cmd {
			case "signin", "login":
				_ = a.SignIn(ctx)
			case "signup", "register":
				_ = a.SignUp(ctx)
			case "google":
				_ = a.GoogleSignIn(ctx)
			default:
				printlnFn("Unknown command:", cmd, "(sign in first, type 'help')")
			}
			a.handleNavigation(ctx)
			continue
		}

		switch cmd {
		case "whoami":
			_ = a.WhoAmI(ctx)
		case "verify":
			_ = a.Verify(ctx)
		case "dashboard":
			_ = a.Dashboard(ctx)
		case "users":
			_ = a.Users(ctx)
		case "role":
			_ = a.SetRole(ctx, args)
		case "toggle":
			_ = a.ToggleActive(ctx, args)
		case "analytics":
			_ = a.Analytics(ctx)
		case "settings":
			_ = a.Settings(ctx)
		case "setsettings":
			_ = a.EditSettings(ctx)
		case "logs":
			_ = a.Logs(ctx, args)
		case "signout", "logout":
			_ = a.SignOut(ctx)
		default:
			printlnFn("Unknown command:", cmd)
		}
		a.handleNavigation(ctx)
	}
}
