package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/staffkeeper/internal/client/models"
	"github.com/dmitrijs2005/staffkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*CredentialStore, *sql.DB) {
	t.Helper()
	db, err := OpenDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewCredentialStore(db), db
}

func TestToken_RoundTripThroughClearAll(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetToken(ctx, "header.payload.sig"))

	got, ok, err := s.GetToken(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "header.payload.sig", got)

	require.NoError(t, s.ClearAll(ctx))

	_, ok, err = s.GetToken(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestGetToken_EmptyStore(t *testing.T) {
	s, _ := newStore(t)

	tok, ok, err := s.GetToken(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, tok)
}

func TestUser_RoundTrip(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	u, err := s.GetUser(ctx)
	require.NoError(t, err)
	require.Nil(t, u)

	require.NoError(t, s.SetUser(ctx, models.Identity{SubjectID: 42, Role: models.RoleAdmin}))

	u, err = s.GetUser(ctx)
	require.NoError(t, err)
	require.Equal(t, &models.Identity{SubjectID: 42, Role: models.RoleAdmin}, u)
}

func TestGetUser_CorruptRecord(t *testing.T) {
	s, db := newStore(t)
	_, err := db.Exec(`INSERT INTO metadata(key, value) VALUES (?, ?)`, UserKey, []byte("{not json"))
	require.NoError(t, err)

	_, err = s.GetUser(context.Background())
	require.ErrorIs(t, err, common.ErrDecode)
}

func TestClearAll_IsIdempotent(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.ClearAll(ctx))

	require.NoError(t, s.Save(ctx, "t", models.Identity{SubjectID: 1, Role: models.RoleUser}))
	require.NoError(t, s.ClearAll(ctx))
	require.NoError(t, s.ClearAll(ctx))

	_, ok, err := s.GetToken(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	u, err := s.GetUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestClearAll_LeavesUnrelatedKeys(t *testing.T) {
	s, db := newStore(t)
	_, err := db.Exec(`INSERT INTO metadata(key, value) VALUES ('ui_theme', 'dark')`)
	require.NoError(t, err)

	require.NoError(t, s.ClearAll(context.Background()))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM metadata`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestSave_WritesBothKeys(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "tok", models.Identity{SubjectID: 9, Role: models.RoleUser}))

	tok, ok, err := s.GetToken(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok", tok)

	u, err := s.GetUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(9), u.SubjectID)
}

func TestSave_FailureLeavesPreviousRecord(t *testing.T) {
	s, db := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "old", models.Identity{SubjectID: 1, Role: models.RoleUser}))

	// Make the user write fail after the token write succeeded inside the tx.
	_, err := db.Exec(`
CREATE TRIGGER reject_user BEFORE UPDATE ON metadata
WHEN NEW.key = 'user'
BEGIN SELECT RAISE(ABORT, 'user write rejected'); END;`)
	require.NoError(t, err)

	err = s.Save(ctx, "new", models.Identity{SubjectID: 2, Role: models.RoleAdmin})
	require.Error(t, err)

	tok, _, err := s.GetToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "old", tok)
}

func TestOpenDatabase_MigrationsAreIdempotent(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "session.db")
	ctx := context.Background()

	db, err := OpenDatabase(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, db.Close())

	db, err = OpenDatabase(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('metadata', 'goose_db_version')`).Scan(&n))
	assert.Equal(t, 2, n)
}
