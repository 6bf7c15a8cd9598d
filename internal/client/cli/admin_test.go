package cli

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/savingsadmin/internal/client/models"
	"github.com/dmitrijs2005/savingsadmin/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminRoutes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"GET " + common.RouteVerify:         reply(http.StatusOK, `{"valid":true,"user":{"id":1,"email":"ann@example.org","name":"Ann","role":"admin","is_active":true}}`),
		"GET " + common.RouteMe:             reply(http.StatusOK, `{"id":1,"email":"ann@example.org","name":"Ann","role":"admin","is_active":true}`),
		"GET " + common.RouteAdminUsers:     reply(http.StatusOK, `[{"id":1,"email":"ann@example.org","name":"Ann","role":"admin","is_active":1,"created_at":"2024-01-01T00:00:00"},{"id":2,"email":"bob@example.org","name":"Bob","role":"user","is_active":0,"created_at":"2024-02-01T00:00:00"}]`),
		"GET " + common.RouteAdminAnalytics: reply(http.StatusOK, `{"total_users":2,"total_savings_entries":3,"total_savings_amount":150,"average_per_entry":50}`),
		"GET " + common.RouteAdminSettings:  reply(http.StatusOK, `{"site_name":"Savings Analyzer","allow_signups":true,"token_expiry_minutes":45}`),
		"GET " + common.RouteAdminLogs:      reply(http.StatusOK, `[{"id":1,"level":"info","message":"User registered","meta":"{\"user_id\": 2}","created_at":"2024-03-01T12:00:00"}]`),
	}
}

func TestDashboard_RendersAllSections(t *testing.T) {
	ta := newTestApp(t, adminRoutes(), "")
	ta.seedSession(t, common.RoleAdmin)

	require.NoError(t, ta.Dashboard(context.Background()))

	out := ta.out.String()
	for _, want := range []string{
		"Total users:", "Rs. 150.00", "Rs. 50.00",
		"Savings Analyzer", "45 min",
		"bob@example.org", "inactive",
		"User registered", "INFO", "META", `{"user_id": 2}`,
	} {
		assert.Contains(t, out, want)
	}
}

func TestDashboard_NonAdmin(t *testing.T) {
	routes := adminRoutes()
	routes["GET "+common.RouteMe] = reply(http.StatusOK, `{"id":2,"email":"bob@example.org","name":"Bob","role":"user","is_active":true}`)
	ta := newTestApp(t, routes, "")
	ta.seedSession(t, common.RoleUser)
	require.NoError(t, ta.resume(context.Background()))

	err := ta.Dashboard(context.Background())
	require.ErrorIs(t, err, common.ErrAdminRequired)

	ta.handleNavigation(context.Background())
	assert.Contains(t, ta.out.String(), "is not an admin")
	assert.True(t, ta.isLoggedIn())
}

func TestDashboard_NonAdminThenExpiryEndsAtSignIn(t *testing.T) {
	var expired atomic.Bool
	routes := adminRoutes()
	routes["GET "+common.RouteMe] = reply(http.StatusOK, `{"id":2,"email":"bob@example.org","name":"Bob","role":"user","is_active":true}`)
	verifyOK := routes["GET "+common.RouteVerify]
	routes["GET "+common.RouteVerify] = func(w http.ResponseWriter, r *http.Request) {
		if expired.Load() {
			reply(http.StatusUnauthorized, `{"detail":"Token expired"}`)(w, r)
			return
		}
		verifyOK(w, r)
	}
	ta := newTestApp(t, routes, "")
	ta.seedSession(t, common.RoleUser)
	require.NoError(t, ta.resume(context.Background()))

	require.ErrorIs(t, ta.Dashboard(context.Background()), common.ErrAdminRequired)

	expired.Store(true)
	ta.checkSession(context.Background())
	assert.Empty(t, ta.store.Raw())

	origST := getSimpleText
	getSimpleText = func(*bufio.Reader, string, io.Writer) (string, error) { return "", io.EOF }
	t.Cleanup(func() { getSimpleText = origST })

	ta.handleNavigation(context.Background())
	assert.False(t, ta.isLoggedIn())
	assert.Contains(t, ta.out.String(), "You are signed out. Please sign in.")
	assert.NotContains(t, ta.out.String(), "is not an admin")

	_, pending := ta.navigator.Take()
	assert.False(t, pending)
}

func TestSetRole_Usage(t *testing.T) {
	silenceREPL(t)
	ta := newTestApp(t, nil, "")

	assert.ErrorIs(t, ta.SetRole(context.Background(), []string{"2"}), errUsage)
	assert.Error(t, ta.SetRole(context.Background(), []string{"x", "admin"}))
	assert.ErrorIs(t, ta.ToggleActive(context.Background(), nil), errUsage)
	assert.Error(t, ta.ToggleActive(context.Background(), []string{"-1"}))
}

func TestSetRole_InvalidRole(t *testing.T) {
	ta := newTestApp(t, nil, "")
	ta.seedSession(t, common.RoleAdmin)

	err := ta.SetRole(context.Background(), []string{"2", "owner"})
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, ta.out.String(), "role must be one of: user admin")
}

func TestToggleActive_Success(t *testing.T) {
	ta := newTestApp(t, map[string]http.HandlerFunc{
		"PATCH " + common.RouteAdminUsers + "/2": reply(http.StatusOK, `{"message":"User updated"}`),
	}, "")
	ta.seedSession(t, common.RoleAdmin)

	require.NoError(t, ta.ToggleActive(context.Background(), []string{"2"}))
	assert.Contains(t, ta.out.String(), "User 2 status toggled.")
}

func TestEditSettings(t *testing.T) {
	var sent models.SettingsUpdate
	ta := newTestApp(t, map[string]http.HandlerFunc{
		"PUT " + common.RouteAdminSettings: func(w http.ResponseWriter, r *http.Request) {
			_ = jsonDecode(r, &sent)
			reply(http.StatusOK, `{"message":"Settings updated"}`)(w, r)
		},
	}, "New name\nn\n60\n")
	ta.seedSession(t, common.RoleAdmin)

	require.NoError(t, ta.EditSettings(context.Background()))
	assert.Contains(t, ta.out.String(), "Settings saved.")

	require.NotNil(t, sent.SiteName)
	assert.Equal(t, "New name", *sent.SiteName)
	require.NotNil(t, sent.AllowSignups)
	assert.False(t, *sent.AllowSignups)
	require.NotNil(t, sent.TokenExpiryMinutes)
	assert.Equal(t, 60, *sent.TokenExpiryMinutes)
}

func TestEditSettings_NothingToChange(t *testing.T) {
	ta := newTestApp(t, nil, "\n\n\n")
	ta.seedSession(t, common.RoleAdmin)

	require.NoError(t, ta.EditSettings(context.Background()))
	assert.Contains(t, ta.out.String(), "Nothing to change.")
}

func TestEditSettings_BadExpiry(t *testing.T) {
	ta := newTestApp(t, nil, "\n\nsoon\n")
	ta.seedSession(t, common.RoleAdmin)

	err := ta.EditSettings(context.Background())
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestLogs_EmptyAndFiltered(t *testing.T) {
	var query string
	ta := newTestApp(t, map[string]http.HandlerFunc{
		"GET " + common.RouteAdminLogs: func(w http.ResponseWriter, r *http.Request) {
			query = r.URL.RawQuery
			reply(http.StatusOK, `[]`)(w, r)
		},
	}, "")
	ta.seedSession(t, common.RoleAdmin)

	require.NoError(t, ta.Logs(context.Background(), []string{"ERROR"}))
	assert.Equal(t, "level=ERROR", query)
	assert.Contains(t, ta.out.String(), "No logs found.")
}

func TestUsers_Forbidden(t *testing.T) {
	ta := newTestApp(t, map[string]http.HandlerFunc{
		"GET " + common.RouteAdminUsers: reply(http.StatusForbidden, `{"detail":"Admin access required"}`),
	}, "")
	ta.seedSession(t, common.RoleUser)

	require.Error(t, ta.Users(context.Background()))
	assert.Contains(t, ta.out.String(), "Error: Admin access required")
	assert.NotEmpty(t, ta.store.Raw())
}

func TestAnalyticsAndSettings(t *testing.T) {
	ta := newTestApp(t, adminRoutes(), "")
	ta.seedSession(t, common.RoleAdmin)

	require.NoError(t, ta.Analytics(context.Background()))
	require.NoError(t, ta.Settings(context.Background()))

	out := ta.out.String()
	assert.Contains(t, out, "Savings entries:")
	assert.Contains(t, out, "Allow signups:")
	assert.Contains(t, out, "yes")
}

