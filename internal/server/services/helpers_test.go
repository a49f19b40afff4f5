package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/dbx"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
	"github.com/dmitrijs2005/bookshelf/internal/server/auth"
	"github.com/dmitrijs2005/bookshelf/internal/server/config"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/books"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

// openStore returns a migrated SQLite database in the test's temp dir.
func openStore(t *testing.T) (*sql.DB, repomanager.RepositoryManager) {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "books.db")
	db, m, err := repomanager.Open(context.Background(), config.DriverSQLite, dsn, logging.Nop{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, m
}

func newTokens(t *testing.T) *auth.TokenService {
	t.Helper()
	ts, err := auth.NewTokenService([]byte(testSecret), "HS256")
	require.NoError(t, err)
	return ts
}

func newUserService(t *testing.T, db *sql.DB, m repomanager.RepositoryManager) *UserService {
	t.Helper()
	return NewUserService(db, m, auth.NewPasswordHasher(bcrypt.MinCost), newTokens(t), 30*time.Minute)
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return u, nil
}

func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeRepoManager struct {
	u users.Repository
	b books.Repository
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository           { return m.u }
func (m *fakeRepoManager) Books(db dbx.DBTX) books.Repository           { return m.b }

type errBoom struct{}

func (errBoom) Error() string { return "boom" }
