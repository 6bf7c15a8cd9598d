package session_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dmitrijs2005/savingsadmin/internal/client/client"
	"github.com/dmitrijs2005/savingsadmin/internal/client/models"
	"github.com/dmitrijs2005/savingsadmin/internal/client/session"
	"github.com/dmitrijs2005/savingsadmin/internal/common"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func sampleSession() models.Session {
	return models.Session{
		Token: "T1",
		Profile: models.Profile{
			ID:       1,
			Email:    "admin@example.org",
			Name:     "Admin",
			Role:     common.RoleAdmin,
			IsActive: true,
		},
	}
}

func newSQLiteStore(t *testing.T) (*session.SQLiteStore, *sql.DB) {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return session.NewSQLiteStore(db), db
}

// storeContract runs the same checks against every Store implementation.
func storeContract(t *testing.T, newStore func(t *testing.T) session.Store) {
	ctx := context.Background()

	t.Run("empty store loads nil", func(t *testing.T) {
		s := newStore(t)
		got, err := s.Load(ctx)
		require.NoError(t, err)
		require.Nil(t, got)
	})

	t.Run("save then load round-trips both entities", func(t *testing.T) {
		s := newStore(t)
		want := sampleSession()
		require.NoError(t, s.Save(ctx, want))

		got, err := s.Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		if diff := cmp.Diff(want, *got); diff != "" {
			t.Fatalf("session mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("save overwrites previous session", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Save(ctx, sampleSession()))

		next := sampleSession()
		next.Token = "T2"
		next.Profile.Role = common.RoleUser
		require.NoError(t, s.Save(ctx, next))

		got, err := s.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, "T2", got.Token)
		require.Equal(t, common.RoleUser, got.Profile.Role)
	})

	t.Run("empty token is rejected and nothing is stored", func(t *testing.T) {
		s := newStore(t)
		bad := sampleSession()
		bad.Token = ""
		require.Error(t, s.Save(ctx, bad))

		got, err := s.Load(ctx)
		require.NoError(t, err)
		require.Nil(t, got)
	})

	t.Run("clear removes both and is idempotent", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Save(ctx, sampleSession()))
		require.NoError(t, s.Clear(ctx))
		require.NoError(t, s.Clear(ctx))

		got, err := s.Load(ctx)
		require.NoError(t, err)
		require.Nil(t, got)
	})

	t.Run("concurrent loads and saves", func(t *testing.T) {
		s := newStore(t)
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				_ = s.Save(ctx, sampleSession())
			}()
			go func() {
				defer wg.Done()
				got, err := s.Load(ctx)
				if err == nil && got != nil && got.Token != "T1" {
					t.Errorf("torn read: %+v", got)
				}
			}()
		}
		wg.Wait()
	})
}

func TestMemoryStore_Contract(t *testing.T) {
	storeContract(t, func(t *testing.T) session.Store { return session.NewMemoryStore() })
}

func TestSQLiteStore_Contract(t *testing.T) {
	storeContract(t, func(t *testing.T) session.Store {
		s, _ := newSQLiteStore(t)
		return s
	})
}

func TestSQLiteStore_OnlyTokenMeansNoSession(t *testing.T) {
	s, db := newSQLiteStore(t)
	_, err := db.Exec(`INSERT INTO metadata(key, value) VALUES (?, ?)`, common.TokenKey, "T1")
	require.NoError(t, err)

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestSQLiteStore_CorruptedProfile(t *testing.T) {
	s, db := newSQLiteStore(t)
	_, err := db.Exec(`INSERT INTO metadata(key, value) VALUES (?, ?), (?, ?)`,
		common.TokenKey, "T1", common.ProfileKey, "{broken")
	require.NoError(t, err)

	_, err = s.Load(context.Background())
	require.ErrorIs(t, err, common.ErrSessionCorrupted)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "session.db")

	db, err := client.InitDatabase(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, session.NewSQLiteStore(db).Save(ctx, sampleSession()))
	require.NoError(t, db.Close())

	db, err = client.InitDatabase(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	got, err := session.NewSQLiteStore(db).Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "T1", got.Token)
}

func TestSQLiteStore_ClosedDB(t *testing.T) {
	s, db := newSQLiteStore(t)
	require.NoError(t, db.Close())
	ctx := context.Background()

	_, err := s.Load(ctx)
	require.ErrorContains(t, err, "load session")
	require.ErrorContains(t, s.Save(ctx, sampleSession()), "save session")
	require.ErrorContains(t, s.Clear(ctx), "clear session")
}
