package core

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/joblane/backend/config"
	"github.com/joblane/backend/db"
	"github.com/joblane/backend/db/mock"
	"github.com/joblane/backend/mail"
)

const testSecret = "test_secret_32_bytes_long_ok_123"

// MockValidator implements Validator with an overridable function field.
type MockValidator struct {
	ContentTypeFunc func(r *http.Request, allowedType string) (error, jsonResponse)
}

func (m *MockValidator) ContentType(r *http.Request, allowedType string) (error, jsonResponse) {
	if m.ContentTypeFunc != nil {
		return m.ContentTypeFunc(r, allowedType)
	}
	return nil, jsonResponse{}
}

// Compile-time check to ensure MockMailer implements mail.Sender
var _ mail.Sender = (*MockMailer)(nil)

// MockMailer implements mail.Sender and records every send.
type MockMailer struct {
	mu       sync.Mutex
	SendFunc func(ctx context.Context, to, templateID string, placeholders map[string]string) error

	Sent []SentMail
}

type SentMail struct {
	To           string
	TemplateID   string
	Placeholders map[string]string
}

func (m *MockMailer) Send(ctx context.Context, to, templateID string, placeholders map[string]string) error {
	m.mu.Lock()
	m.Sent = append(m.Sent, SentMail{To: to, TemplateID: templateID, Placeholders: placeholders})
	m.mu.Unlock()

	if m.SendFunc != nil {
		return m.SendFunc(ctx, to, templateID, placeholders)
	}
	return nil
}

func testConfig() *config.Config {
	cfg := config.NewDefault()
	cfg.Jwt.AuthSecret = testSecret
	cfg.Server.BaseURL = "https://app.example.com"
	return cfg
}

// newTestApp builds an App around the given store mock with a discard
// logger, the default authenticator and validator, and a recording
// mailer.
func newTestApp(t *testing.T, dbMock *mock.Db) (*App, *MockMailer) {
	t.Helper()

	mailer := &MockMailer{}
	app, err := NewApp(
		WithDbAuth(dbMock),
		WithConfigProvider(config.NewProvider(testConfig())),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMailer(mailer),
	)
	if err != nil {
		t.Fatalf("failed to build test app: %v", err)
	}
	return app, mailer
}

// statefulMock returns a mock.Db backed by an in-memory user map, for
// tests that span several handler calls.
type memoryStore struct {
	mu    sync.Mutex
	users map[string]*db.User // keyed by id
}

func newMemoryStore() *memoryStore {
	return &memoryStore{users: make(map[string]*db.User)}
}

func (s *memoryStore) add(user *db.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *user
	s.users[user.ID] = &copied
}

func (s *memoryStore) byEmail(email string) *db.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied
		}
	}
	return nil
}

func (s *memoryStore) byToken(token string) *db.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.VerificationToken == token {
			copied := *u
			return &copied
		}
	}
	return nil
}

func (s *memoryStore) mock() *mock.Db {
	return &mock.Db{
		GetUserByIdFunc: func(id string) (*db.User, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if u, ok := s.users[id]; ok {
				copied := *u
				return &copied, nil
			}
			return nil, nil
		},
		GetUserByEmailFunc: func(email string) (*db.User, error) {
			return s.byEmail(email), nil
		},
		GetUserByVerificationTokenFunc: func(token string) (*db.User, error) {
			return s.byToken(token), nil
		},
		CreateUserWithPasswordFunc: func(user db.User) (*db.User, error) {
			if s.byEmail(user.Email) != nil {
				return nil, db.ErrConstraintUnique
			}
			user.ID = "mem-" + user.Email
			s.add(&user)
			return &user, nil
		},
		CreateUserWithOauth2Func: func(user db.User) (*db.User, error) {
			if s.byEmail(user.Email) != nil {
				return nil, db.ErrConstraintUnique
			}
			user.ID = "mem-" + user.Email
			user.Password = ""
			user.Verified = true
			s.add(&user)
			return &user, nil
		},
		UpdatePasswordFunc: func(userID string, newPassword string) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			if u, ok := s.users[userID]; ok {
				u.Password = newPassword
			}
			return nil
		},
		UpdateRoleFunc: func(userID string, role db.Role) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			if u, ok := s.users[userID]; ok {
				u.Role = role
			}
			return nil
		},
		SetVerificationTokenFunc: func(userID string, token string, purpose db.TokenPurpose, expires time.Time) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			if u, ok := s.users[userID]; ok {
				u.VerificationToken = token
				u.TokenPurpose = purpose
				u.TokenExpires = expires
			}
			return nil
		},
		ConsumeVerificationTokenFunc: func(token string, purpose db.TokenPurpose) (int, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			for _, u := range s.users {
				if u.VerificationToken != token || u.TokenPurpose != purpose {
					continue
				}
				u.VerificationToken = ""
				u.TokenPurpose = ""
				u.TokenExpires = time.Time{}
				u.Verified = true
				if purpose == db.PurposeEmailVerification && u.Role == db.RoleGuest {
					u.Role = db.RoleUser
				}
				return 1, nil
			}
			return 0, nil
		},
		CountUsersFunc: func() (int, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			return len(s.users), nil
		},
	}
}
