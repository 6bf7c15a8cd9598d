// Package common contains shared constants and sentinel errors used across
// the savings admin client.
package common

// Storage keys of the two session entities. They are always written and
// removed together.
const (
	TokenKey   = "auth_token"
	ProfileKey = "user_info"
)

// Outbound header names.
const (
	AuthorizationHeaderName = "Authorization"
	ContentTypeHeaderName   = "Content-Type"
	AcceptHeaderName        = "Accept"
	RequestIDHeaderName     = "X-Request-ID"

	BearerScheme    = "Bearer"
	JSONContentType = "application/json"
)

// Backend routes.
const (
	RouteRegister    = "/auth/register"
	RouteLogin       = "/auth/login"
	RouteGoogleLogin = "/auth/google"
	RouteVerify      = "/auth/verify"
	RouteMe          = "/auth/me"

	RouteAdminUsers     = "/admin/users"
	RouteAdminAnalytics = "/admin/analytics"
	RouteAdminSettings  = "/admin/settings"
	RouteAdminLogs      = "/admin/logs"
)

// Roles known to the backend.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
