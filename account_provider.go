package accounts

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RegisterAccountMessage carries the data needed to create an account
type RegisterAccountMessage struct {
	Username    string     `json:"username"`
	DisplayName string     `json:"display_name"`
	Password    string     `json:"password"`
	BirthDate   *time.Time `json:"birth_date"`
}

func (e RegisterAccountMessage) Type() string { return "account.register" }

// UpdateAccountMessage carries the mutable profile fields
type UpdateAccountMessage struct {
	Username  string     `json:"username"`
	BirthDate *time.Time `json:"birth_date"`
}

func (e UpdateAccountMessage) Type() string { return "account.update" }

// AccountProvider handles account creation, profile updates, and reads. The
// uniqueness checks and the write they guard run in one transaction so two
// concurrent registrations for the same username cannot both commit.
type AccountProvider struct {
	repo      RepositoryManager
	logger    Logger
	mintToken TokenGenerator
}

var _ AccountManager = (*AccountProvider)(nil)

// NewAccountProvider will create a new AccountProvider
func NewAccountProvider(repo RepositoryManager) *AccountProvider {
	return &AccountProvider{
		repo:      repo,
		logger:    defLogger{},
		mintToken: MintToken,
	}
}

func (u *AccountProvider) WithLogger(logger Logger) *AccountProvider {
	u.logger = logger
	return u
}

// WithTokenGenerator overrides how registration mints the session token.
func (u *AccountProvider) WithTokenGenerator(mint TokenGenerator) *AccountProvider {
	if mint != nil {
		u.mintToken = mint
	}
	return u
}

// Register creates the account. A fresh id and session token are assigned,
// the account comes up online, and both uniqueness rules are policed first.
func (u *AccountProvider) Register(ctx context.Context, msg RegisterAccountMessage) (AccountSummary, string, error) {
	var summary AccountSummary
	var token string

	err := u.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := u.checkIfAccountExists(ctx, tx, msg.Username, msg.DisplayName); err != nil {
			return err
		}

		now := time.Now()
		account := &Account{
			ID:          uuid.New(),
			Username:    msg.Username,
			DisplayName: msg.DisplayName,
			Password:    msg.Password,
			Token:       u.mintToken(),
			Status:      AccountStatusOnline,
			BirthDate:   msg.BirthDate,
			CreatedAt:   &now,
		}

		account, err := u.repo.Accounts().RegisterTx(ctx, tx, account)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryConflict, "could not create account").
				WithCode(goerrors.CodeConflict)
		}

		summary = account.Summary()
		token = account.Token

		return nil
	})

	if err != nil {
		return AccountSummary{}, "", richOrInternal(err, "account registration transaction failed")
	}

	u.logger.Debug("created account", "username", summary.Username, "id", summary.ID)

	return summary, token, nil
}

// Update applies username and birth date to the account the token resolves
// to. Display name, credentials, status, and timestamps stay untouched.
func (u *AccountProvider) Update(ctx context.Context, token string, msg UpdateAccountMessage) error {
	err := u.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		account, err := u.repo.Accounts().GetByTokenTx(ctx, tx, token)
		if err != nil {
			if goerrors.IsNotFound(err) {
				return ErrAccountNotFound
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to resolve account for update")
		}

		if msg.Username == "" {
			return ErrUsernameEmpty
		}

		if err := u.checkIfUsernameIsAlreadyTaken(ctx, tx, msg.Username, account); err != nil {
			return err
		}

		if err := u.repo.Accounts().SetProfileTx(ctx, tx, account.ID, msg.Username, msg.BirthDate); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to persist account update")
		}

		return nil
	})

	if err != nil {
		return richOrInternal(err, "account update transaction failed")
	}

	return nil
}

// Accounts returns every stored account, oldest first.
func (u *AccountProvider) Accounts(ctx context.Context) ([]AccountSummary, error) {
	records, err := u.repo.Accounts().ListAll(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list accounts")
	}

	summaries := make([]AccountSummary, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, record.Summary())
	}

	return summaries, nil
}

// Account returns the account with the given id.
func (u *AccountProvider) Account(ctx context.Context, id uuid.UUID) (AccountSummary, error) {
	record, err := u.repo.Accounts().GetByUUID(ctx, id)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return AccountSummary{}, ErrAccountNotFound
		}
		return AccountSummary{}, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve account")
	}

	return record.Summary(), nil
}

// checkIfAccountExists polices both uniqueness rules. The status codes are
// asymmetric on purpose: a duplicate username alone is a conflict, a
// duplicate display name, or both together, is a bad request.
func (u *AccountProvider) checkIfAccountExists(ctx context.Context, tx bun.IDB, username, displayName string) error {
	byUsername, err := u.repo.Accounts().GetByUsernameTx(ctx, tx, username)
	if err != nil && !goerrors.IsNotFound(err) {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check username uniqueness")
	}

	byName, err := u.repo.Accounts().GetByDisplayNameTx(ctx, tx, displayName)
	if err != nil && !goerrors.IsNotFound(err) {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check display name uniqueness")
	}

	switch {
	case byUsername != nil && byName != nil:
		return ErrIdentityTaken
	case byUsername != nil:
		return ErrUsernameTaken
	case byName != nil:
		return ErrDisplayNameTaken
	}

	return nil
}

func (u *AccountProvider) checkIfUsernameIsAlreadyTaken(ctx context.Context, tx bun.IDB, username string, target *Account) error {
	holder, err := u.repo.Accounts().GetByUsernameTx(ctx, tx, username)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return nil
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check username uniqueness")
	}

	// renaming an account to its own username is a no-op
	if holder.Username == target.Username {
		return nil
	}

	return ErrUsernameAlreadyTaken
}
