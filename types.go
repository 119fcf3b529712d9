package accounts

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Authenticator drives the session side of the service: token checks and the
// online/offline transitions login and logout produce.
type Authenticator interface {
	Authorize(ctx context.Context, token string) error
	Login(ctx context.Context, username, password string) (AccountSummary, string, error)
	Logout(ctx context.Context, token string) (AccountSummary, error)
}

// AccountManager handles account creation, profile updates, and reads.
type AccountManager interface {
	Register(ctx context.Context, msg RegisterAccountMessage) (AccountSummary, string, error)
	Update(ctx context.Context, token string, msg UpdateAccountMessage) error
	Accounts(ctx context.Context) ([]AccountSummary, error)
	Account(ctx context.Context, id uuid.UUID) (AccountSummary, error)
}

// TokenGenerator mints opaque session credentials. Tokens must be globally
// unique; the account table enforces that with a unique column.
type TokenGenerator func() string

// MintToken is the default TokenGenerator
func MintToken() string {
	return uuid.New().String()
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] ACCOUNTS "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] ACCOUNTS "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] ACCOUNTS "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
