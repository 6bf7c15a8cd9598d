// Package identity reads third-party identity assertions and bearer tokens
// on the client side.
//
// Nothing here verifies signatures: the backend is the source of truth. The
// fields extracted are used for optimistic display only.
package identity

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/savingsadmin/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the display fields of a federated identity assertion.
type Claims struct {
	jwt.RegisteredClaims
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

var parser = jwt.NewParser()

// ParseAssertion decodes the payload of a signed identity assertion without
// verifying it.
func ParseAssertion(raw string) (*Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty", common.ErrInvalidAssertion)
	}

	claims := &Claims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidAssertion, err)
	}
	return claims, nil
}

// TokenExpiry reports the "exp" claim of a bearer token, if it is a JWT
// carrying one.
func TokenExpiry(token string) (time.Time, bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
