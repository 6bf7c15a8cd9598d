package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/savingsadmin/internal/client/models"
	"github.com/dmitrijs2005/savingsadmin/internal/common"
)

// MemoryStore keeps the session in process memory, serialised the same way
// as the on-disk store. It is safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Load(_ context.Context) (*models.Session, error) {
	m.mu.RLock()
	token, hasToken := m.values[common.TokenKey]
	rawProfile, hasProfile := m.values[common.ProfileKey]
	m.mu.RUnlock()

	if !hasToken || !hasProfile || token == "" {
		return nil, nil
	}

	profile, err := decodeProfile(rawProfile)
	if err != nil {
		return nil, err
	}
	return &models.Session{Token: token, Profile: profile}, nil
}

func (m *MemoryStore) Save(_ context.Context, sess models.Session) error {
	rawProfile, err := encodeSession(sess)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[common.TokenKey] = sess.Token
	m.values[common.ProfileKey] = rawProfile
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, common.TokenKey)
	delete(m.values, common.ProfileKey)
	return nil
}

// Raw returns a copy of the stored key-value pairs.
func (m *MemoryStore) Raw() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

// SetRaw writes a single key, bypassing the pairing rule.
func (m *MemoryStore) SetRaw(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}
