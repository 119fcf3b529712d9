package accounts

import "github.com/goliatone/go-errors"

const (
	TextCodeAccountNotFound   = "account_not_found"
	TextCodeBadCredentials    = "bad_credentials"
	TextCodeTokenUnauthorized = "token_unauthorized"
	TextCodeUsernameTaken     = "username_taken"
	TextCodeDisplayNameTaken  = "display_name_taken"
	TextCodeIdentityTaken     = "username_and_display_name_taken"
	TextCodeUsernameEmpty     = "username_empty"
	TextCodeUsernameGrabbed   = "username_already_taken"
	TextCodeInvalidAccountID  = "invalid_account_id"
)

// ErrAccountNotFound is returned when no account matches the given id or username.
var ErrAccountNotFound = errors.New("account does not exist", errors.CategoryNotFound).
	WithTextCode(TextCodeAccountNotFound).
	WithCode(errors.CodeNotFound)

// ErrBadCredentials is returned on a password mismatch. It carries the same
// status as an unknown username so callers cannot probe which half was wrong.
var ErrBadCredentials = errors.New("username or password incorrect", errors.CategoryNotFound).
	WithTextCode(TextCodeBadCredentials).
	WithCode(errors.CodeNotFound)

// ErrTokenUnauthorized is returned when a request carries no token or a token
// no account currently holds.
var ErrTokenUnauthorized = errors.New("unauthorized access token", errors.CategoryAuth).
	WithTextCode(TextCodeTokenUnauthorized).
	WithCode(errors.CodeUnauthorized)

// ErrUsernameTaken is returned at registration when the username is in use.
var ErrUsernameTaken = errors.New("the username provided is not unique, the account could not be created", errors.CategoryConflict).
	WithTextCode(TextCodeUsernameTaken).
	WithCode(errors.CodeConflict)

// ErrDisplayNameTaken is returned at registration when the display name is in
// use. Registered clients rely on the 400 here, so it stays distinct from the
// 409 a duplicate username gets.
var ErrDisplayNameTaken = errors.New("the name provided is not unique, the account could not be created", errors.CategoryBadInput).
	WithTextCode(TextCodeDisplayNameTaken).
	WithCode(errors.CodeBadRequest)

// ErrIdentityTaken is returned at registration when both the username and the
// display name are in use.
var ErrIdentityTaken = errors.New("the username and the name provided are not unique, the account could not be created", errors.CategoryBadInput).
	WithTextCode(TextCodeIdentityTaken).
	WithCode(errors.CodeBadRequest)

// ErrUsernameEmpty is returned on profile updates without a username.
var ErrUsernameEmpty = errors.New("username can't be empty", errors.CategoryBadInput).
	WithTextCode(TextCodeUsernameEmpty).
	WithCode(errors.CodeBadRequest)

// ErrUsernameAlreadyTaken is returned on profile updates that rename the
// account to a username another account holds.
var ErrUsernameAlreadyTaken = errors.New("username is already taken", errors.CategoryBadInput).
	WithTextCode(TextCodeUsernameGrabbed).
	WithCode(errors.CodeBadRequest)

// ErrInvalidAccountID is returned when a path id is not a valid uuid.
var ErrInvalidAccountID = errors.New("invalid account id", errors.CategoryBadInput).
	WithTextCode(TextCodeInvalidAccountID).
	WithCode(errors.CodeBadRequest)
