package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/savingsadmin/internal/client/identity"
	"github.com/dmitrijs2005/savingsadmin/internal/client/models"
	"github.com/dmitrijs2005/savingsadmin/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// SignIn prompts for email and password and signs in. The password is
// wiped before returning.
func (a *App) SignIn(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.authService.SignIn(ctx, email, password)
	if err != nil {
		a.fail(ctx, err)
		return err
	}

	a.signedIn(sess)
	return nil
}

// SignUp prompts for name, email and password and creates an account.
func (a *App) SignUp(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.authService.SignUp(ctx, name, email, password)
	if err != nil {
		a.fail(ctx, err)
		return err
	}

	fmt.Fprintln(a.out, "Account created.")
	a.signedIn(sess)
	return nil
}

// GoogleSignIn runs the identity provider, waits for it to deliver an
// assertion and exchanges it for a session. The provider runs on the
// calling goroutine; one that answers asynchronously owns its goroutine.
func (a *App) GoogleSignIn(ctx context.Context) error {
	hook := identity.NewOneShot()
	a.identityProvider(ctx, hook.Deliver)

	assertion, err := hook.Wait(ctx)
	if err != nil {
		return err
	}

	sess, err := a.authService.FederatedSignIn(ctx, assertion)
	if err != nil {
		a.fail(ctx, err)
		return err
	}

	a.signedIn(sess)
	return nil
}

// terminalIdentityProvider asks the user to paste the ID token issued by
// Google Sign-In.
func (a *App) terminalIdentityProvider(ctx context.Context, deliver func(string) bool) {
	if ctx.Err() != nil {
		return
	}
	token, err := getSimpleText(a.reader, "Paste the Google ID token", a.out)
	if err != nil {
		a.log.Debug(ctx, "identity token not read", "error", err)
		deliver("")
		return
	}
	deliver(token)
}

func (a *App) signedIn(sess *models.Session) {
	a.profile = &sess.Profile
	fmt.Fprintf(a.out, "Signed in as %s (%s)\n", displayName(a.profile), a.profile.Role)
}

// SignOut clears the stored session. The resulting navigation returns the
// REPL to the signed-out state.
func (a *App) SignOut(ctx context.Context) error {
	if err := a.authService.SignOut(ctx); err != nil {
		a.fail(ctx, err)
		return err
	}
	return nil
}

// WhoAmI prints the stored profile and the token expiry, if known.
func (a *App) WhoAmI(ctx context.Context) error {
	sess, err := a.authService.CurrentSession(ctx)
	if err != nil {
		a.fail(ctx, err)
		return err
	}
	if sess == nil {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}

	printProfile(a.out, &sess.Profile)
	if exp, ok := identity.TokenExpiry(sess.Token); ok {
		fmt.Fprintf(a.out, "Token expires:\t%s (in %s)\n",
			exp.Local().Format(time.DateTime), time.Until(exp).Round(time.Second))
	}
	return nil
}

// Verify asks the backend whether the stored credential is still valid.
func (a *App) Verify(ctx context.Context) error {
	res, err := a.authService.Verify(ctx)
	if err != nil {
		a.fail(ctx, err)
		return err
	}

	if res.Valid {
		fmt.Fprintf(a.out, "Session valid for %s\n", displayName(&res.User))
	} else {
		fmt.Fprintln(a.out, "Session is not valid.")
	}
	return nil
}

