package services

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/savingsadmin/internal/client/client"
	"github.com/dmitrijs2005/savingsadmin/internal/client/models"
	"github.com/dmitrijs2005/savingsadmin/internal/common"
	"github.com/dmitrijs2005/savingsadmin/internal/logging"
	"golang.org/x/sync/errgroup"
)

// AdminService covers the admin panel: user management, analytics,
// system settings and logs. Every call is authenticated.
type AdminService interface {
	EnsureAdmin(ctx context.Context) (*models.Profile, error)
	Users(ctx context.Context) ([]models.AdminUser, error)
	SetRole(ctx context.Context, userID int64, role string) error
	ToggleActive(ctx context.Context, userID int64) error
	Analytics(ctx context.Context) (*models.Analytics, error)
	Settings(ctx context.Context) (*models.Settings, error)
	SaveSettings(ctx context.Context, upd models.SettingsUpdate) error
	Logs(ctx context.Context, level string) ([]models.LogEntry, error)
	Dashboard(ctx context.Context) (*models.Dashboard, error)
}

type adminService struct {
	api       API
	navigator client.Navigator
	log       logging.Logger
}

func NewAdminService(api API, navigator client.Navigator, log logging.Logger) AdminService {
	if log == nil {
		log = logging.Nop()
	}
	return &adminService{api: api, navigator: navigator, log: log}
}

// EnsureAdmin confirms the current user is an admin. Users the backend
// does not recognise are sent to sign-in; non-admins to the landing page.
func (s *adminService) EnsureAdmin(ctx context.Context) (*models.Profile, error) {
	var p models.Profile
	err := call(ctx, s.api, common.RouteMe, client.RequestOptions{}, &p)

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		s.navigator.Navigate(client.SignInPage)
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	if !p.IsAdmin() {
		s.log.Warn(ctx, "admin access denied", "user_id", p.ID, "role", p.Role)
		s.navigator.Navigate(client.LandingPage)
		return nil, common.ErrAdminRequired
	}
	return &p, nil
}

func (s *adminService) Users(ctx context.Context) ([]models.AdminUser, error) {
	var users []models.AdminUser
	if err := call(ctx, s.api, common.RouteAdminUsers, client.RequestOptions{}, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func userPath(userID int64) string {
	return common.RouteAdminUsers + "/" + strconv.FormatInt(userID, 10)
}

func (s *adminService) SetRole(ctx context.Context, userID int64, role string) error {
	upd := models.RoleUpdate{Role: role}
	if err := validateInput(upd); err != nil {
		return err
	}
	return call(ctx, s.api, userPath(userID), client.RequestOptions{Method: http.MethodPatch, Body: upd}, nil)
}

func (s *adminService) ToggleActive(ctx context.Context, userID int64) error {
	toggle := true
	upd := models.UserUpdate{ToggleActive: &toggle}
	return call(ctx, s.api, userPath(userID), client.RequestOptions{Method: http.MethodPatch, Body: upd}, nil)
}

func (s *adminService) Analytics(ctx context.Context) (*models.Analytics, error) {
	var a models.Analytics
	if err := call(ctx, s.api, common.RouteAdminAnalytics, client.RequestOptions{}, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *adminService) Settings(ctx context.Context) (*models.Settings, error) {
	var st models.Settings
	if err := call(ctx, s.api, common.RouteAdminSettings, client.RequestOptions{}, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *adminService) SaveSettings(ctx context.Context, upd models.SettingsUpdate) error {
	if err := validateInput(upd); err != nil {
		return err
	}
	return call(ctx, s.api, common.RouteAdminSettings, client.RequestOptions{Method: http.MethodPut, Body: upd}, nil)
}

// Logs returns the latest backend log entries, optionally filtered by level.
func (s *adminService) Logs(ctx context.Context, level string) ([]models.LogEntry, error) {
	opts := client.RequestOptions{}
	if level != "" {
		opts.Query = url.Values{"level": {level}}
	}

	var logs []models.LogEntry
	if err := call(ctx, s.api, common.RouteAdminLogs, opts, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// Dashboard loads users, analytics, settings and logs concurrently. The
// first failure is returned; the other requests are not cancelled by it.
func (s *adminService) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	var (
		d models.Dashboard
		g errgroup.Group
	)

	g.Go(func() error {
		users, err := s.Users(ctx)
		d.Users = users
		return err
	})
	g.Go(func() error {
		a, err := s.Analytics(ctx)
		d.Analytics = a
		return err
	})
	g.Go(func() error {
		st, err := s.Settings(ctx)
		d.Settings = st
		return err
	})
	g.Go(func() error {
		logs, err := s.Logs(ctx, "")
		d.Logs = logs
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}
