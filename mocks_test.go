package accounts_test

import (
	"context"
	"database/sql"
	"testing"

	accounts "github.com/goliatone/go-accounts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/mattn/go-sqlite3"
)

// MockAuthenticator implements accounts.Authenticator
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Authorize(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthenticator) Login(ctx context.Context, username, password string) (accounts.AccountSummary, string, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(accounts.AccountSummary), args.String(1), args.Error(2)
}

func (m *MockAuthenticator) Logout(ctx context.Context, token string) (accounts.AccountSummary, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(accounts.AccountSummary), args.Error(1)
}

// MockAccountManager implements accounts.AccountManager
type MockAccountManager struct {
	mock.Mock
}

func (m *MockAccountManager) Register(ctx context.Context, msg accounts.RegisterAccountMessage) (accounts.AccountSummary, string, error) {
	args := m.Called(ctx, msg)
	return args.Get(0).(accounts.AccountSummary), args.String(1), args.Error(2)
}

func (m *MockAccountManager) Update(ctx context.Context, token string, msg accounts.UpdateAccountMessage) error {
	args := m.Called(ctx, token, msg)
	return args.Error(0)
}

func (m *MockAccountManager) Accounts(ctx context.Context) ([]accounts.AccountSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).([]accounts.AccountSummary), args.Error(1)
}

func (m *MockAccountManager) Account(ctx context.Context, id uuid.UUID) (accounts.AccountSummary, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(accounts.AccountSummary), args.Error(1)
}

const sqliteCreateAccounts = `CREATE TABLE accounts (
    id TEXT NOT NULL PRIMARY KEY,
    username TEXT NOT NULL,
    display_name TEXT NOT NULL,
    password TEXT NOT NULL,
    token TEXT,
    status TEXT NOT NULL DEFAULT 'offline',
    birth_date TIMESTAMP NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    CONSTRAINT uq_accounts_username UNIQUE (username),
    CONSTRAINT uq_accounts_display_name UNIQUE (display_name),
    CONSTRAINT uq_accounts_token UNIQUE (token)
);`

func setupRepositoryManager(t *testing.T) (accounts.RepositoryManager, func()) {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	bunDB := bun.NewDB(db, sqlitedialect.New())

	_, err = bunDB.Exec(sqliteCreateAccounts)
	require.NoError(t, err)

	cleanup := func() {
		_ = bunDB.Close()
		_ = db.Close()
	}

	return accounts.NewRepositoryManager(bunDB), cleanup
}
