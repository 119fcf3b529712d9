package accounts

import (
	"context"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Accounts is the persistence collaborator for account records. Every lookup
// the service performs goes through here: by id, username, display name, and
// current token.
type Accounts interface {
	repository.Repository[*Account]

	GetByUUID(ctx context.Context, id uuid.UUID) (*Account, error)
	GetByUUIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*Account, error)
	GetByUsername(ctx context.Context, username string) (*Account, error)
	GetByUsernameTx(ctx context.Context, tx bun.IDB, username string) (*Account, error)
	GetByDisplayName(ctx context.Context, name string) (*Account, error)
	GetByDisplayNameTx(ctx context.Context, tx bun.IDB, name string) (*Account, error)
	GetByToken(ctx context.Context, token string) (*Account, error)
	GetByTokenTx(ctx context.Context, tx bun.IDB, token string) (*Account, error)
	ListAll(ctx context.Context) ([]*Account, error)
	ListAllTx(ctx context.Context, tx bun.IDB) ([]*Account, error)

	Register(ctx context.Context, record *Account) (*Account, error)
	RegisterTx(ctx context.Context, tx bun.IDB, record *Account) (*Account, error)
	Save(ctx context.Context, record *Account) (*Account, error)
	SaveTx(ctx context.Context, tx bun.IDB, record *Account) (*Account, error)
	SetProfile(ctx context.Context, id uuid.UUID, username string, birthDate *time.Time) error
	SetProfileTx(ctx context.Context, tx bun.IDB, id uuid.UUID, username string, birthDate *time.Time) error
	RevokeToken(ctx context.Context, id uuid.UUID) error
	RevokeTokenTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error
}

type accountsRepo struct {
	repository.Repository[*Account]
	db *bun.DB
}

var (
	_ Accounts                        = (*accountsRepo)(nil)
	_ repository.Repository[*Account] = (*accountsRepo)(nil)
)

func NewAccountsRepository(db *bun.DB) Accounts {
	repo := repository.NewRepository[*Account](db, repository.ModelHandlers[*Account]{
		NewRecord: func() *Account { return &Account{} },
		GetID: func(a *Account) uuid.UUID {
			if a == nil {
				return uuid.Nil
			}
			return a.ID
		},
		SetID: func(a *Account, id uuid.UUID) {
			if a != nil {
				a.ID = id
			}
		},
		GetIdentifier: func() string {
			return "username"
		},
	})

	return &accountsRepo{
		Repository: repo,
		db:         db,
	}
}

func (a *accountsRepo) GetByUUID(ctx context.Context, id uuid.UUID) (*Account, error) {
	return a.GetByUUIDTx(ctx, a.db, id)
}

func (a *accountsRepo) GetByUUIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*Account, error) {
	return a.getByColumnTx(ctx, tx, "id", id.String())
}

func (a *accountsRepo) GetByUsername(ctx context.Context, username string) (*Account, error) {
	return a.GetByUsernameTx(ctx, a.db, username)
}

func (a *accountsRepo) GetByUsernameTx(ctx context.Context, tx bun.IDB, username string) (*Account, error) {
	return a.getByColumnTx(ctx, tx, "username", username)
}

func (a *accountsRepo) GetByDisplayName(ctx context.Context, name string) (*Account, error) {
	return a.GetByDisplayNameTx(ctx, a.db, name)
}

func (a *accountsRepo) GetByDisplayNameTx(ctx context.Context, tx bun.IDB, name string) (*Account, error) {
	return a.getByColumnTx(ctx, tx, "display_name", name)
}

func (a *accountsRepo) GetByToken(ctx context.Context, token string) (*Account, error) {
	return a.GetByTokenTx(ctx, a.db, token)
}

func (a *accountsRepo) GetByTokenTx(ctx context.Context, tx bun.IDB, token string) (*Account, error) {
	return a.getByColumnTx(ctx, tx, "token", token)
}

func (a *accountsRepo) getByColumnTx(ctx context.Context, tx bun.IDB, column, value string) (*Account, error) {
	record := &Account{}

	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias."+column+" = ?", value).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					column: value,
				})
		}
		return nil, err
	}

	return record, nil
}

func (a *accountsRepo) ListAll(ctx context.Context) ([]*Account, error) {
	return a.ListAllTx(ctx, a.db)
}

func (a *accountsRepo) ListAllTx(ctx context.Context, tx bun.IDB) ([]*Account, error) {
	records := []*Account{}

	err := tx.NewSelect().
		Model(&records).
		Order("created_at ASC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return records, nil
}

func (a *accountsRepo) Register(ctx context.Context, record *Account) (*Account, error) {
	return a.RegisterTx(ctx, a.db, record)
}

func (a *accountsRepo) RegisterTx(ctx context.Context, tx bun.IDB, record *Account) (*Account, error) {
	prepareAccountDefaults(record)
	return a.Repository.CreateTx(ctx, tx, record)
}

func (a *accountsRepo) Save(ctx context.Context, record *Account) (*Account, error) {
	return a.SaveTx(ctx, a.db, record)
}

func (a *accountsRepo) SaveTx(ctx context.Context, tx bun.IDB, record *Account) (*Account, error) {
	return a.Repository.UpdateTx(ctx, tx, record, repository.UpdateByID(record.ID.String()))
}

func (a *accountsRepo) SetProfile(ctx context.Context, id uuid.UUID, username string, birthDate *time.Time) error {
	return a.SetProfileTx(ctx, a.db, id, username, birthDate)
}

// SetProfileTx writes username and birth_date in one statement. The raw
// update lets a nil birthDate clear the column, which the ORM update path
// skips as a zero value.
func (a *accountsRepo) SetProfileTx(ctx context.Context, tx bun.IDB, id uuid.UUID, username string, birthDate *time.Time) error {
	_, err := tx.NewRaw(`
		UPDATE "accounts" AS "acc"
		SET
			"username" = ?,
			"birth_date" = ?
		WHERE
			("acc".id = ?);
	`, username, birthDate, id).Exec(ctx)

	return err
}

func (a *accountsRepo) RevokeToken(ctx context.Context, id uuid.UUID) error {
	return a.RevokeTokenTx(ctx, a.db, id)
}

func (a *accountsRepo) RevokeTokenTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error {
	_, err := tx.NewRaw(`
		UPDATE "accounts" AS "acc"
		SET
			"token" = NULL
		WHERE
			("acc".id = ?);
	`, id).Exec(ctx)

	return err
}

func prepareAccountDefaults(record *Account) {
	if record == nil {
		return
	}

	record.EnsureStatus()

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}
