package accounts

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// AccountStatus is the account's presence status
type AccountStatus = string

const (
	// AccountStatusOnline marks an account with an active session
	AccountStatusOnline AccountStatus = "online"
	// AccountStatusOffline marks an account that logged out
	AccountStatusOffline AccountStatus = "offline"
)

// Account is the account model
type Account struct {
	bun.BaseModel `bun:"table:accounts,alias:acc"`
	ID            uuid.UUID     `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username      string        `bun:"username,notnull,unique" json:"username,omitempty"`
	DisplayName   string        `bun:"display_name,notnull,unique" json:"display_name,omitempty"`
	Password      string        `bun:"password,notnull" json:"-"`
	Token         string        `bun:"token,nullzero,unique" json:"-"`
	Status        AccountStatus `bun:"status,notnull" json:"status,omitempty"`
	BirthDate     *time.Time    `bun:"birth_date,nullzero" json:"birth_date,omitempty"`
	CreatedAt     *time.Time    `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time    `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// EnsureStatus sets the default status on records that have none
func (a *Account) EnsureStatus() {
	if a.Status == "" {
		a.Status = AccountStatusOffline
	}
}

// Summary returns the outward facing value copy of the account.
// Credential fields never leave the store through this path, and
// mutating the record afterwards does not leak into the copy.
func (a *Account) Summary() AccountSummary {
	s := AccountSummary{
		ID:          a.ID,
		Username:    a.Username,
		DisplayName: a.DisplayName,
		Status:      a.Status,
	}

	if a.BirthDate != nil {
		d := *a.BirthDate
		s.BirthDate = &d
	}

	if a.CreatedAt != nil {
		c := *a.CreatedAt
		s.CreatedAt = &c
	}

	return s
}

// AccountSummary is the API representation of an account
type AccountSummary struct {
	ID          uuid.UUID     `json:"id"`
	Username    string        `json:"username"`
	DisplayName string        `json:"display_name"`
	Status      AccountStatus `json:"status"`
	BirthDate   *time.Time    `json:"birth_date,omitempty"`
	CreatedAt   *time.Time    `json:"created_at,omitempty"`
}
