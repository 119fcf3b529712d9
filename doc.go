// Package accounts provides a minimal user-account service core: bearer-token
// sessions, credential login, and account lifecycle with uniqueness policing,
// backed by Bun repositories.
//
// Sessions:
//   - Auther mints opaque session tokens (random uuids), authorizes requests by
//     exact token lookup, and drives the online/offline status transitions that
//     login and logout produce. The first successful login mints the account
//     token; later logins reuse it unchanged, and logout keeps the token alive
//     unless WithRevokeTokenOnLogout opts into revocation.
//
// Lifecycle:
//   - AccountProvider creates accounts and applies profile updates. Usernames
//     and display names are unique across all accounts; the checks and the
//     write they guard share one transaction, and the schema backs them with
//     unique constraints so concurrent conflicting writes cannot both commit.
//
// Transport:
//   - AccountsController maps the HTTP surface (list, get, create, update,
//     login, logout) onto the managers via go-router contexts. The session
//     token travels in a "token" header both ways.
package accounts
