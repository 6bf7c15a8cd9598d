package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/savingsadmin/internal/client/models"
	"github.com/dmitrijs2005/savingsadmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/savingsadmin/internal/common"
	"github.com/dmitrijs2005/savingsadmin/internal/dbx"
)

// SQLiteStore keeps the session in the local metadata table. Writes of the
// two keys share one transaction.
type SQLiteStore struct {
	db      *sql.DB
	newRepo func(dbx.DBTX) metadata.Repository
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{
		db: db,
		newRepo: func(q dbx.DBTX) metadata.Repository {
			return metadata.NewSQLiteRepository(q)
		},
	}
}

func (s *SQLiteStore) Load(ctx context.Context) (*models.Session, error) {
	var sess *models.Session

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.newRepo(tx)

		token, hasToken, err := repo.Get(ctx, common.TokenKey)
		if err != nil {
			return err
		}
		rawProfile, hasProfile, err := repo.Get(ctx, common.ProfileKey)
		if err != nil {
			return err
		}
		if !hasToken || !hasProfile || token == "" {
			return nil
		}

		profile, err := decodeProfile(rawProfile)
		if err != nil {
			return err
		}
		sess = &models.Session{Token: token, Profile: profile}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	return sess, nil
}

func (s *SQLiteStore) Save(ctx context.Context, sess models.Session) error {
	rawProfile, err := encodeSession(sess)
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.newRepo(tx)
		if err := repo.Set(ctx, common.TokenKey, sess.Token); err != nil {
			return err
		}
		return repo.Set(ctx, common.ProfileKey, rawProfile)
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	repo := s.newRepo(s.db)
	if err := repo.Delete(ctx, common.TokenKey, common.ProfileKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

var errEmptyToken = errors.New("empty token")

func encodeSession(sess models.Session) (string, error) {
	if sess.Token == "" {
		return "", fmt.Errorf("save session: %w", errEmptyToken)
	}
	b, err := json.Marshal(sess.Profile)
	if err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return string(b), nil
}

func decodeProfile(raw string) (models.Profile, error) {
	var p models.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return models.Profile{}, fmt.Errorf("%w: %v", common.ErrSessionCorrupted, err)
	}
	return p, nil
}
