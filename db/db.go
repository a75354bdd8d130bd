package db

import (
	"errors"
	"time"
)

var (
	// ErrConstraintUnique is returned when an insert violates the
	// unique email constraint.
	ErrConstraintUnique = errors.New("unique constraint violation")
)

// DbAuth is the store surface the auth core depends on. A nil *User
// with a nil error from the lookup methods means no matching record.
// Implementations guarantee row-level atomicity for single-user
// mutations; no multi-row transactions are required.
type DbAuth interface {
	GetUserById(id string) (*User, error)
	GetUserByEmail(email string) (*User, error)
	GetUserByVerificationToken(token string) (*User, error)

	// CreateUserWithPassword inserts a locally registered user.
	// Returns ErrConstraintUnique if the email is already taken.
	CreateUserWithPassword(user User) (*User, error)

	// CreateUserWithOauth2 inserts a user established by an external
	// identity provider: verified, no password hash.
	CreateUserWithOauth2(user User) (*User, error)

	UpdatePassword(userID string, newPassword string) error
	UpdateRole(userID string, role Role) error

	// SetVerificationToken binds a single-use token with purpose and
	// absolute expiry to the user, replacing any previous token.
	SetVerificationToken(userID string, token string, purpose TokenPurpose, expires time.Time) error

	// ConsumeVerificationToken atomically clears the token, marks the
	// user verified and, for PurposeEmailVerification, promotes a
	// guest to the standard role. Returns the number of affected rows:
	// 0 means the token was already consumed or never existed (or was
	// issued for a different purpose), which gives at-most-once
	// semantics under concurrent consumption.
	ConsumeVerificationToken(token string, purpose TokenPurpose) (int, error)

	CountUsers() (int, error)
}
