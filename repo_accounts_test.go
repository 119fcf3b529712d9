package accounts_test

import (
	"context"
	"testing"
	"time"

	accounts "github.com/goliatone/go-accounts"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAccount(t *testing.T, repo accounts.RepositoryManager, username, displayName, token string) *accounts.Account {
	t.Helper()

	now := time.Now().UTC()
	record, err := repo.Accounts().Register(context.Background(), &accounts.Account{
		Username:    username,
		DisplayName: displayName,
		Password:    "secret",
		Token:       token,
		Status:      accounts.AccountStatusOnline,
		CreatedAt:   &now,
	})
	require.NoError(t, err)

	return record
}

func TestAccountsRepositoryRegisterAndLookups(t *testing.T) {
	repo, cleanup := setupRepositoryManager(t)
	defer cleanup()

	ctx := context.Background()
	record := seedAccount(t, repo, "alice", "Alice A", "token-alice")

	require.NotEqual(t, uuid.Nil, record.ID, "register assigns an id")

	byID, err := repo.Accounts().GetByUUID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	// the generic repository lookup keyed by string id stays usable
	embedded, err := repo.Accounts().GetByID(ctx, record.ID.String())
	require.NoError(t, err)
	assert.Equal(t, record.ID, embedded.ID)

	byUsername, err := repo.Accounts().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, record.ID, byUsername.ID)

	byName, err := repo.Accounts().GetByDisplayName(ctx, "Alice A")
	require.NoError(t, err)
	assert.Equal(t, record.ID, byName.ID)

	byToken, err := repo.Accounts().GetByToken(ctx, "token-alice")
	require.NoError(t, err)
	assert.Equal(t, record.ID, byToken.ID)
}

func TestAccountsRepositoryNotFound(t *testing.T) {
	repo, cleanup := setupRepositoryManager(t)
	defer cleanup()

	ctx := context.Background()

	_, err := repo.Accounts().GetByUsername(ctx, "ghost")
	require.Error(t, err)
	assert.True(t, goerrors.IsNotFound(err))

	_, err = repo.Accounts().GetByToken(ctx, "no-such-token")
	require.Error(t, err)
	assert.True(t, goerrors.IsNotFound(err))

	_, err = repo.Accounts().GetByUUID(ctx, uuid.New())
	require.Error(t, err)
	assert.True(t, goerrors.IsNotFound(err))
}

func TestAccountsRepositoryListAll(t *testing.T) {
	repo, cleanup := setupRepositoryManager(t)
	defer cleanup()

	ctx := context.Background()

	all, err := repo.Accounts().ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	seedAccount(t, repo, "alice", "Alice A", "token-alice")
	seedAccount(t, repo, "bob", "Bob B", "token-bob")

	all, err = repo.Accounts().ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAccountsRepositoryUniqueConstraints(t *testing.T) {
	repo, cleanup := setupRepositoryManager(t)
	defer cleanup()

	ctx := context.Background()
	seedAccount(t, repo, "alice", "Alice A", "token-alice")

	_, err := repo.Accounts().Register(ctx, &accounts.Account{
		Username:    "alice",
		DisplayName: "Someone Else",
		Password:    "secret",
		Token:       "token-other",
	})
	assert.Error(t, err, "duplicate username must not commit")

	_, err = repo.Accounts().Register(ctx, &accounts.Account{
		Username:    "someone",
		DisplayName: "Alice A",
		Password:    "secret",
		Token:       "token-another",
	})
	assert.Error(t, err, "duplicate display name must not commit")
}

func TestAccountsRepositorySetProfile(t *testing.T) {
	repo, cleanup := setupRepositoryManager(t)
	defer cleanup()

	ctx := context.Background()
	record := seedAccount(t, repo, "alice", "Alice A", "token-alice")

	birthDate := time.Date(1990, 4, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Accounts().SetProfile(ctx, record.ID, "alice2", &birthDate))

	updated, err := repo.Accounts().GetByUUID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice2", updated.Username)
	require.NotNil(t, updated.BirthDate)
	assert.Equal(t, birthDate.Year(), updated.BirthDate.Year())
	assert.Equal(t, "Alice A", updated.DisplayName, "display name untouched")
	assert.Equal(t, "token-alice", updated.Token, "token untouched")

	// a nil birth date clears the column
	require.NoError(t, repo.Accounts().SetProfile(ctx, record.ID, "alice2", nil))
	updated, err = repo.Accounts().GetByUUID(ctx, record.ID)
	require.NoError(t, err)
	assert.Nil(t, updated.BirthDate)
}

func TestAccountsRepositoryRevokeToken(t *testing.T) {
	repo, cleanup := setupRepositoryManager(t)
	defer cleanup()

	ctx := context.Background()
	record := seedAccount(t, repo, "alice", "Alice A", "token-alice")

	require.NoError(t, repo.Accounts().RevokeToken(ctx, record.ID))

	_, err := repo.Accounts().GetByToken(ctx, "token-alice")
	require.Error(t, err)
	assert.True(t, goerrors.IsNotFound(err))
}
