package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/savingsadmin/internal/client/models"
	"github.com/dmitrijs2005/savingsadmin/internal/common"
)

// Dashboard checks admin access and shows the full admin overview.
func (a *App) Dashboard(ctx context.Context) error {
	if _, err := a.adminService.EnsureAdmin(ctx); err != nil {
		a.fail(ctx, err)
		return err
	}

	d, err := a.adminService.Dashboard(ctx)
	if err != nil {
		a.fail(ctx, err)
		return err
	}

	printAnalytics(a.out, d.Analytics)
	fmt.Fprintln(a.out)
	printSettings(a.out, d.Settings)
	fmt.Fprintln(a.out)
	printUsers(a.out, d.Users)
	fmt.Fprintln(a.out)
	printLogs(a.out, d.Logs)
	return nil
}

func (a *App) Users(ctx context.Context) error {
	users, err := a.adminService.Users(ctx)
	if err != nil {
		a.fail(ctx, err)
		return err
	}
	printUsers(a.out, users)
	return nil
}

// SetRole handles "role <id> <user|admin>".
func (a *App) SetRole(ctx context.Context, args []string) error {
	if len(args) != 2 {
		printlnFn("Usage: role <id> <user|admin>")
		return errUsage
	}
	id, err := parseUserID(args[0])
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	if err := a.adminService.SetRole(ctx, id, args[1]); err != nil {
		a.fail(ctx, err)
		return err
	}
	fmt.Fprintf(a.out, "User %d is now %s.\n", id, args[1])
	return nil
}

// ToggleActive handles "toggle <id>".
func (a *App) ToggleActive(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: toggle <id>")
		return errUsage
	}
	id, err := parseUserID(args[0])
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	if err := a.adminService.ToggleActive(ctx, id); err != nil {
		a.fail(ctx, err)
		return err
	}
	fmt.Fprintf(a.out, "User %d status toggled.\n", id)
	return nil
}

func (a *App) Analytics(ctx context.Context) error {
	an, err := a.adminService.Analytics(ctx)
	if err != nil {
		a.fail(ctx, err)
		return err
	}
	printAnalytics(a.out, an)
	return nil
}

func (a *App) Settings(ctx context.Context) error {
	st, err := a.adminService.Settings(ctx)
	if err != nil {
		a.fail(ctx, err)
		return err
	}
	printSettings(a.out, st)
	return nil
}

// EditSettings prompts for each setting; empty answers keep the current
// value.
func (a *App) EditSettings(ctx context.Context) error {
	var upd models.SettingsUpdate

	name, err := getSimpleText(a.reader, "Site name (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if name != "" {
		upd.SiteName = &name
	}

	allow, set, err := GetYesNo(a.reader, "Allow signups?", a.out)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	if set {
		upd.AllowSignups = &allow
	}

	expiry, err := getSimpleText(a.reader, "Token expiry in minutes (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if expiry != "" {
		minutes, err := strconv.Atoi(expiry)
		if err != nil {
			err = fmt.Errorf("%w: token_expiry_minutes must be a number", common.ErrValidation)
			a.fail(ctx, err)
			return err
		}
		upd.TokenExpiryMinutes = &minutes
	}

	if upd == (models.SettingsUpdate{}) {
		fmt.Fprintln(a.out, "Nothing to change.")
		return nil
	}

	if err := a.adminService.SaveSettings(ctx, upd); err != nil {
		a.fail(ctx, err)
		return err
	}
	fmt.Fprintln(a.out, "Settings saved.")
	return nil
}

// Logs handles "logs [level]".
func (a *App) Logs(ctx context.Context, args []string) error {
	level := ""
	if len(args) > 0 {
		level = args[0]
	}

	logs, err := a.adminService.Logs(ctx, level)
	if err != nil {
		a.fail(ctx, err)
		return err
	}
	printLogs(a.out, logs)
	return nil
}

func parseUserID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id %q", s)
	}
	return id, nil
}
