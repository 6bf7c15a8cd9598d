package models

import "github.com/dmitrijs2005/savingsadmin/internal/common"

// Profile is the cached identity of the signed-in user. It is used for
// display and role checks only; the backend stays authoritative.
type Profile struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Picture   string     `json:"picture,omitempty"`
	Role      string     `json:"role,omitempty"`
	IsActive  Flag       `json:"is_active"`
	CreatedAt *Timestamp `json:"created_at,omitempty"`
}

func (p Profile) IsAdmin() bool {
	return p.Role == common.RoleAdmin
}

// Session is the credential token together with the profile snapshot.
// The two are always stored and cleared as a pair.
type Session struct {
	Token   string
	Profile Profile
}

// AuthResponse is returned by the register, login and federated login
// endpoints.
type AuthResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	User        *Profile `json:"user"`
}

// VerifyResult is the /auth/verify payload.
type VerifyResult struct {
	Valid bool    `json:"valid"`
	User  Profile `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// FederatedLoginRequest forwards a third-party identity assertion. Email,
// Name and Picture are read from the assertion without verification.
type FederatedLoginRequest struct {
	Token   string `json:"token" validate:"required"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}
