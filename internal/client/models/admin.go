package models

// AdminUser is one row of the admin users listing.
type AdminUser struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	IsActive  Flag      `json:"is_active"`
	CreatedAt Timestamp `json:"created_at"`
}

// UserUpdate is the PATCH /admin/users/{id} body. ToggleActive flips the
// current state rather than setting it.
type UserUpdate struct {
	Role         string `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
	ToggleActive *bool  `json:"toggle_active,omitempty"`
}

// RoleUpdate is the role-only form of UserUpdate.
type RoleUpdate struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

type Analytics struct {
	TotalUsers          int64   `json:"total_users"`
	TotalSavingsEntries int64   `json:"total_savings_entries"`
	TotalSavingsAmount  float64 `json:"total_savings_amount"`
	AveragePerEntry     float64 `json:"average_per_entry"`
}

const DefaultTokenExpiryMinutes = 30

type Settings struct {
	SiteName           string `json:"site_name"`
	AllowSignups       *Flag  `json:"allow_signups"`
	TokenExpiryMinutes int    `json:"token_expiry_minutes"`
}

// SignupsAllowed defaults to true when the backend has no value yet.
func (s Settings) SignupsAllowed() bool {
	if s.AllowSignups == nil {
		return true
	}
	return bool(*s.AllowSignups)
}

// TokenExpiry defaults to DefaultTokenExpiryMinutes when unset.
func (s Settings) TokenExpiry() int {
	if s.TokenExpiryMinutes <= 0 {
		return DefaultTokenExpiryMinutes
	}
	return s.TokenExpiryMinutes
}

// SettingsUpdate is the PUT /admin/settings body; nil fields are left as-is.
type SettingsUpdate struct {
	SiteName           *string `json:"site_name,omitempty"`
	AllowSignups       *bool   `json:"allow_signups,omitempty"`
	TokenExpiryMinutes *int    `json:"token_expiry_minutes,omitempty" validate:"omitempty,gt=0"`
}

type LogEntry struct {
	ID        int64     `json:"id"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Meta      string    `json:"meta,omitempty"`
	CreatedAt Timestamp `json:"created_at"`
}

// Dashboard aggregates everything the admin overview shows.
type Dashboard struct {
	Users     []AdminUser
	Analytics *Analytics
	Settings  *Settings
	Logs      []LogEntry
}
