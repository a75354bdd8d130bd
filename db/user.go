package db

import "time"

// Role is the fixed set of access roles enforced by the auth middleware.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	// RoleGuest is the low-privilege default until the email is verified.
	RoleGuest Role = "guest"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleGuest:
		return true
	}
	return false
}

// AuthProvider records how an identity was established. Immutable after
// creation.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
	ProviderGithub AuthProvider = "github"
)

// TokenPurpose tags a stored verification token so a password-reset
// token cannot satisfy account-verification semantics and vice versa.
type TokenPurpose string

const (
	PurposeEmailVerification TokenPurpose = "email_verification"
	PurposePasswordReset     TokenPurpose = "password_reset"
)

// User represents a user from the database.
// Timestamps (Created and Updated) use RFC3339 format in UTC timezone.
// Example: "2024-03-07T15:04:05Z"
//
// Exactly one of the following holds: Password is non-empty (local
// registration) or Provider is not ProviderLocal (delegated login).
type User struct {
	ID    string
	Email string
	Name  string
	// Password is the encoded argon2id hash. Empty for accounts
	// established through an external identity provider.
	Password string
	Role     Role
	Provider AuthProvider
	Verified bool
	// VerificationToken is a single-use token bound to this user,
	// non-empty only together with TokenPurpose and TokenExpires.
	VerificationToken string
	TokenPurpose      TokenPurpose
	TokenExpires      time.Time
	Created           time.Time
	Updated           time.Time
}
