package core

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/joblane/backend/crypto"
	"github.com/joblane/backend/db"
	"github.com/joblane/backend/db/mock"
	"github.com/joblane/backend/mail"
)

func TestRequestPasswordResetHandler_GenericResponse(t *testing.T) {
	// Known and unknown emails must be indistinguishable from outside.
	testCases := []struct {
		name    string
		dbSetup func(*mock.Db)
	}{
		{
			name: "unknown email",
			dbSetup: func(m *mock.Db) {
				m.GetUserByEmailFunc = func(email string) (*db.User, error) {
					return nil, nil
				}
			},
		},
		{
			name: "known email",
			dbSetup: func(m *mock.Db) {
				m.GetUserByEmailFunc = func(email string) (*db.User, error) {
					return &db.User{ID: "user123", Email: email, Password: "$argon2id$..."}, nil
				}
			},
		},
		{
			name: "oauth2 only account",
			dbSetup: func(m *mock.Db) {
				m.GetUserByEmailFunc = func(email string) (*db.User, error) {
					return &db.User{ID: "user123", Email: email, Provider: db.ProviderGoogle}, nil
				}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dbMock := &mock.Db{}
			tc.dbSetup(dbMock)
			app, _ := newTestApp(t, dbMock)

			req := httptest.NewRequest("POST", "/auth/password-reset", strings.NewReader(`{"email":"someone@example.com"}`))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			app.RequestPasswordResetHandler(rr, req)

			if rr.Code != http.StatusAccepted {
				t.Errorf("expected status 202, got %d", rr.Code)
			}
			if got := decodeResponseCode(t, rr); got != CodeOkPasswordResetRequested {
				t.Errorf("expected code %q, got %q", CodeOkPasswordResetRequested, got)
			}
		})
	}
}

func TestRequestPasswordResetHandler_IssuesToken(t *testing.T) {
	var tokenSet struct {
		purpose db.TokenPurpose
		expires time.Time
	}
	dbMock := &mock.Db{
		GetUserByEmailFunc: func(email string) (*db.User, error) {
			return &db.User{ID: "user123", Email: email, Name: "Ada", Password: "$argon2id$..."}, nil
		},
		SetVerificationTokenFunc: func(userID, token string, purpose db.TokenPurpose, expires time.Time) error {
			tokenSet.purpose = purpose
			tokenSet.expires = expires
			return nil
		},
	}
	app, mailer := newTestApp(t, dbMock)

	req := httptest.NewRequest("POST", "/auth/password-reset", strings.NewReader(`{"email":"ada@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	app.RequestPasswordResetHandler(rr, req)

	if tokenSet.purpose != db.PurposePasswordReset {
		t.Errorf("token purpose = %q, want password_reset", tokenSet.purpose)
	}
	wantExpiry := time.Now().Add(30 * time.Minute)
	if tokenSet.expires.Before(wantExpiry.Add(-time.Minute)) || tokenSet.expires.After(wantExpiry.Add(time.Minute)) {
		t.Errorf("token expiry %v not close to +30m", tokenSet.expires)
	}

	if len(mailer.Sent) != 1 || mailer.Sent[0].TemplateID != mail.TemplatePasswordReset {
		t.Fatalf("expected one reset mail, got %+v", mailer.Sent)
	}
}

func TestConfirmPasswordResetHandler(t *testing.T) {
	now := time.Now()

	resetUser := func(purpose db.TokenPurpose, expires time.Time) func(token string) (*db.User, error) {
		return func(token string) (*db.User, error) {
			return &db.User{
				ID:                "user123",
				Email:             "ada@example.com",
				Password:          "$argon2id$old",
				VerificationToken: token,
				TokenPurpose:      purpose,
				TokenExpires:      expires,
			}, nil
		}
	}

	testCases := []struct {
		name        string
		requestBody string
		dbSetup     func(*mock.Db)
		wantStatus  int
		wantCode    string
	}{
		{
			name:        "missing fields",
			requestBody: `{"token":"tok1"}`,
			dbSetup:     func(m *mock.Db) {},
			wantStatus:  http.StatusBadRequest,
			wantCode:    CodeErrorMissingFields,
		},
		{
			name:        "password mismatch",
			requestBody: `{"token":"tok1","password":"newpassword1","password_confirm":"newpassword2"}`,
			dbSetup:     func(m *mock.Db) {},
			wantStatus:  http.StatusBadRequest,
			wantCode:    CodeErrorPasswordMismatch,
		},
		{
			name:        "password too short",
			requestBody: `{"token":"tok1","password":"short","password_confirm":"short"}`,
			dbSetup:     func(m *mock.Db) {},
			wantStatus:  http.StatusBadRequest,
			wantCode:    CodeErrorPasswordComplexity,
		},
		{
			name:        "unknown token",
			requestBody: `{"token":"tok1","password":"newpassword1","password_confirm":"newpassword1"}`,
			dbSetup: func(m *mock.Db) {
				m.GetUserByVerificationTokenFunc = func(token string) (*db.User, error) {
					return nil, nil
				}
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeErrorVerificationTokenInvalid,
		},
		{
			name:        "verification token cannot reset a password",
			requestBody: `{"token":"tok1","password":"newpassword1","password_confirm":"newpassword1"}`,
			dbSetup: func(m *mock.Db) {
				m.GetUserByVerificationTokenFunc = resetUser(db.PurposeEmailVerification, now.Add(time.Hour))
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeErrorVerificationTokenInvalid,
		},
		{
			name:        "expired token",
			requestBody: `{"token":"tok1","password":"newpassword1","password_confirm":"newpassword1"}`,
			dbSetup: func(m *mock.Db) {
				m.GetUserByVerificationTokenFunc = resetUser(db.PurposePasswordReset, now.Add(-time.Minute))
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeErrorVerificationTokenExpired,
		},
		{
			name:        "successful reset",
			requestBody: `{"token":"tok1","password":"newpassword1","password_confirm":"newpassword1"}`,
			dbSetup: func(m *mock.Db) {
				m.GetUserByVerificationTokenFunc = resetUser(db.PurposePasswordReset, now.Add(time.Hour))
			},
			wantStatus: http.StatusOK,
			wantCode:   CodeOkPasswordReset,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dbMock := &mock.Db{}
			tc.dbSetup(dbMock)
			app, _ := newTestApp(t, dbMock)

			req := httptest.NewRequest("POST", "/auth/password-reset/confirm", strings.NewReader(tc.requestBody))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			app.ConfirmPasswordResetHandler(rr, req)

			if rr.Code != tc.wantStatus {
				t.Errorf("expected status %d, got %d", tc.wantStatus, rr.Code)
			}
			if got := decodeResponseCode(t, rr); got != tc.wantCode {
				t.Errorf("expected code %q, got %q", tc.wantCode, got)
			}
		})
	}
}

// TestForgotThenResetFlow walks forgot-password end to end: request a
// reset, take the token from the mail, set a new password, log in with
// it, and check the token cannot be replayed.
func TestForgotThenResetFlow(t *testing.T) {
	hashed, err := crypto.HashPassword("oldpassword1")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	store := newMemoryStore()
	store.add(&db.User{
		ID:       "user123",
		Email:    "ada@example.com",
		Name:     "Ada",
		Password: hashed,
		Role:     db.RoleUser,
		Verified: true,
	})
	app, mailer := newTestApp(t, store.mock())

	// Request the reset.
	req := httptest.NewRequest("POST", "/auth/password-reset", strings.NewReader(`{"email":"ada@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	app.RequestPasswordResetHandler(rr, req)

	if rr.Code != http.StatusAccepted {
		t.Fatalf("request: expected 202, got %d", rr.Code)
	}
	if len(mailer.Sent) != 1 {
		t.Fatalf("request: expected 1 mail, got %d", len(mailer.Sent))
	}
	link := mailer.Sent[0].Placeholders[mail.PlaceholderResetLink]
	idx := strings.Index(link, "token=")
	if idx < 0 {
		t.Fatalf("request: no token in link %q", link)
	}
	token := link[idx+len("token="):]

	// Confirm with a new password.
	body := `{"token":"` + token + `","password":"newpassword1","password_confirm":"newpassword1"}`
	req = httptest.NewRequest("POST", "/auth/password-reset/confirm", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	app.ConfirmPasswordResetHandler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("confirm: expected 200, got %d", rr.Code)
	}

	// The new password works.
	req = httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"email":"ada@example.com","password":"newpassword1"}`))
	req.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	app.AuthWithPasswordHandler(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("login: expected 200 with new password, got %d", rr.Code)
	}

	// The token is burned.
	req = httptest.NewRequest("POST", "/auth/password-reset/confirm", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	app.ConfirmPasswordResetHandler(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("replay: expected 400, got %d", rr.Code)
	}
}
