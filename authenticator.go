package accounts

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Auther owns token issuance, authorization checks, and the online/offline
// transitions that login and logout drive.
type Auther struct {
	repo           RepositoryManager
	logger         Logger
	mintToken      TokenGenerator
	revokeOnLogout bool
}

var _ Authenticator = (*Auther)(nil)

// NewAuthenticator returns a new Auther backed by the given repositories
func NewAuthenticator(repo RepositoryManager) *Auther {
	return &Auther{
		repo:      repo,
		logger:    defLogger{},
		mintToken: MintToken,
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	return s
}

// WithTokenGenerator overrides how session tokens are minted.
func (s *Auther) WithTokenGenerator(mint TokenGenerator) *Auther {
	if mint != nil {
		s.mintToken = mint
	}
	return s
}

// WithRevokeTokenOnLogout makes Logout clear the stored token so the session
// cannot authorize again. Off by default: the historical behavior keeps the
// token alive after logout, and clients may depend on it.
func (s *Auther) WithRevokeTokenOnLogout(revoke bool) *Auther {
	s.revokeOnLogout = revoke
	return s
}

// Authorize reports whether some account currently holds the given token.
// It is a read only gate, used in front of every route that needs a session.
func (s *Auther) Authorize(ctx context.Context, token string) error {
	if token == "" {
		return ErrTokenUnauthorized
	}

	if _, err := s.repo.Accounts().GetByToken(ctx, token); err != nil {
		if goerrors.IsNotFound(err) {
			return ErrTokenUnauthorized
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up session token").
			WithCode(goerrors.CodeInternal)
	}

	return nil
}

// Login verifies the credentials and marks the account online. The first
// successful login mints the account token; later logins reuse it unchanged.
func (s *Auther) Login(ctx context.Context, username, password string) (AccountSummary, string, error) {
	var summary AccountSummary
	var token string

	err := s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		account, err := s.repo.Accounts().GetByUsernameTx(ctx, tx, username)
		if err != nil {
			if goerrors.IsNotFound(err) {
				return ErrAccountNotFound
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve account during login")
		}

		if account.Password != password {
			return ErrBadCredentials
		}

		account.Status = AccountStatusOnline
		if account.Token == "" {
			account.Token = s.mintToken()
		}

		if account, err = s.repo.Accounts().SaveTx(ctx, tx, account); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to persist login")
		}

		summary = account.Summary()
		token = account.Token

		return nil
	})

	if err != nil {
		s.logger.Error("login failed", "username", username, "error", err)
		return AccountSummary{}, "", richOrInternal(err, "login transaction failed")
	}

	s.logger.Debug("account logged in", "username", username)

	return summary, token, nil
}

// Logout marks the account holding the token offline. The token itself is
// retained unless WithRevokeTokenOnLogout was set.
func (s *Auther) Logout(ctx context.Context, token string) (AccountSummary, error) {
	var summary AccountSummary

	err := s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		account, err := s.repo.Accounts().GetByTokenTx(ctx, tx, token)
		if err != nil {
			if goerrors.IsNotFound(err) {
				return ErrAccountNotFound
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve account during logout")
		}

		account.Status = AccountStatusOffline
		if account, err = s.repo.Accounts().SaveTx(ctx, tx, account); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to persist logout")
		}

		if s.revokeOnLogout {
			if err := s.repo.Accounts().RevokeTokenTx(ctx, tx, account.ID); err != nil {
				return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to revoke session token")
			}
		}

		summary = account.Summary()

		return nil
	})

	if err != nil {
		s.logger.Error("logout failed", "error", err)
		return AccountSummary{}, richOrInternal(err, "logout transaction failed")
	}

	return summary, nil
}

func richOrInternal(err error, msg string) error {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, msg).
		WithCode(goerrors.CodeInternal)
}
