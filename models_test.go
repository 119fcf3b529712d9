package accounts_test

import (
	"testing"
	"time"

	accounts "github.com/goliatone/go-accounts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountSummaryOmitsCredentials(t *testing.T) {
	now := time.Now()
	birthDate := time.Date(1990, time.June, 12, 0, 0, 0, 0, time.UTC)

	record := &accounts.Account{
		ID:          uuid.New(),
		Username:    "alice",
		DisplayName: "Alice A",
		Password:    "secret",
		Token:       "session-token",
		Status:      accounts.AccountStatusOnline,
		BirthDate:   &birthDate,
		CreatedAt:   &now,
	}

	summary := record.Summary()

	assert.Equal(t, record.ID, summary.ID)
	assert.Equal(t, "alice", summary.Username)
	assert.Equal(t, "Alice A", summary.DisplayName)
	assert.Equal(t, accounts.AccountStatusOnline, summary.Status)
	require.NotNil(t, summary.BirthDate)
	assert.True(t, summary.BirthDate.Equal(birthDate))
}

func TestAccountSummaryCopiesDates(t *testing.T) {
	birthDate := time.Date(1990, time.June, 12, 0, 0, 0, 0, time.UTC)
	record := &accounts.Account{
		ID:        uuid.New(),
		Username:  "alice",
		BirthDate: &birthDate,
	}

	summary := record.Summary()

	// mutating the record must not reach through to the summary
	*record.BirthDate = record.BirthDate.AddDate(10, 0, 0)
	assert.True(t, summary.BirthDate.Equal(birthDate))
}

func TestEnsureStatus(t *testing.T) {
	record := &accounts.Account{}
	record.EnsureStatus()
	assert.Equal(t, accounts.AccountStatusOffline, record.Status)

	record.Status = accounts.AccountStatusOnline
	record.EnsureStatus()
	assert.Equal(t, accounts.AccountStatusOnline, record.Status)
}
