// Package session persists the credential token and the profile snapshot.
//
// The two entities are one unit: Save writes both, Clear removes both, and
// Load reports no session unless both are present.
package session

import (
	"context"

	"github.com/dmitrijs2005/savingsadmin/internal/client/models"
)

// Store is the credential storage capability injected into the API client.
type Store interface {
	// Load returns the stored session, or (nil, nil) when there is none.
	Load(ctx context.Context) (*models.Session, error)
	// Save stores token and profile together.
	Save(ctx context.Context, s models.Session) error
	// Clear removes token and profile together. Clearing an empty store is
	// not an error.
	Clear(ctx context.Context) error
}
