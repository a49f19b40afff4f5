package users

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE users (
  id            INTEGER PRIMARY KEY AUTOINCREMENT,
  username      TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestSQLiteCreate_AssignsIDs(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	a, err := r.Create(ctx, &models.User{UserName: "alice", PasswordHash: "h1"})
	require.NoError(t, err)
	b, err := r.Create(ctx, &models.User{UserName: "bob", PasswordHash: "h2"})
	require.NoError(t, err)

	assert.Positive(t, a.ID)
	assert.Greater(t, b.ID, a.ID)
}

func TestSQLiteCreate_DuplicateUsername(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	_, err := r.Create(ctx, &models.User{UserName: "alice", PasswordHash: "h1"})
	require.NoError(t, err)

	_, err = r.Create(ctx, &models.User{UserName: "alice", PasswordHash: "h2"})
	require.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestSQLiteGetUserByLogin(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	created, err := r.Create(ctx, &models.User{UserName: "alice", PasswordHash: "h1"})
	require.NoError(t, err)

	got, err := r.GetUserByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = r.GetUserByLogin(ctx, "ghost")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLiteGetUserByLogin_ClosedDB(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	require.NoError(t, db.Close())

	_, err := r.GetUserByLogin(context.Background(), "alice")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}
