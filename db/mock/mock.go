package mock

import (
	"time"

	"github.com/joblane/backend/db"
)

// Compile-time check to ensure Db implements the DbAuth interface
var _ db.DbAuth = (*Db)(nil)

// Db implements db.DbAuth for testing purposes.
// Use function fields to allow overriding behavior in specific tests.
type Db struct {
	GetUserByIdFunc                func(id string) (*db.User, error)
	GetUserByEmailFunc             func(email string) (*db.User, error)
	GetUserByVerificationTokenFunc func(token string) (*db.User, error)
	CreateUserWithPasswordFunc     func(user db.User) (*db.User, error)
	CreateUserWithOauth2Func       func(user db.User) (*db.User, error)
	UpdatePasswordFunc             func(userID string, newPassword string) error
	UpdateRoleFunc                 func(userID string, role db.Role) error
	SetVerificationTokenFunc       func(userID string, token string, purpose db.TokenPurpose, expires time.Time) error
	ConsumeVerificationTokenFunc   func(token string, purpose db.TokenPurpose) (int, error)
	CountUsersFunc                 func() (int, error)
}

func (m *Db) GetUserById(id string) (*db.User, error) {
	if m.GetUserByIdFunc != nil {
		return m.GetUserByIdFunc(id)
	}
	return nil, nil // Default: not found
}

func (m *Db) GetUserByEmail(email string) (*db.User, error) {
	if m.GetUserByEmailFunc != nil {
		return m.GetUserByEmailFunc(email)
	}
	return nil, nil // Default: not found
}

func (m *Db) GetUserByVerificationToken(token string) (*db.User, error) {
	if m.GetUserByVerificationTokenFunc != nil {
		return m.GetUserByVerificationTokenFunc(token)
	}
	return nil, nil // Default: not found
}

func (m *Db) CreateUserWithPassword(user db.User) (*db.User, error) {
	if m.CreateUserWithPasswordFunc != nil {
		return m.CreateUserWithPasswordFunc(user)
	}
	user.ID = "mock-pw-user-id"
	return &user, nil
}

func (m *Db) CreateUserWithOauth2(user db.User) (*db.User, error) {
	if m.CreateUserWithOauth2Func != nil {
		return m.CreateUserWithOauth2Func(user)
	}
	user.ID = "mock-oauth-user-id"
	return &user, nil
}

func (m *Db) UpdatePassword(userID string, newPassword string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(userID, newPassword)
	}
	return nil
}

func (m *Db) UpdateRole(userID string, role db.Role) error {
	if m.UpdateRoleFunc != nil {
		return m.UpdateRoleFunc(userID, role)
	}
	return nil
}

func (m *Db) SetVerificationToken(userID string, token string, purpose db.TokenPurpose, expires time.Time) error {
	if m.SetVerificationTokenFunc != nil {
		return m.SetVerificationTokenFunc(userID, token, purpose, expires)
	}
	return nil
}

func (m *Db) ConsumeVerificationToken(token string, purpose db.TokenPurpose) (int, error) {
	if m.ConsumeVerificationTokenFunc != nil {
		return m.ConsumeVerificationTokenFunc(token, purpose)
	}
	return 1, nil // Default: consumed
}

func (m *Db) CountUsers() (int, error) {
	if m.CountUsersFunc != nil {
		return m.CountUsersFunc()
	}
	return 0, nil
}
