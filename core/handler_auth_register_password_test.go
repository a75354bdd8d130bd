package core

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/joblane/backend/db"
	"github.com/joblane/backend/db/mock"
	"github.com/joblane/backend/mail"
)

func TestRegisterWithPasswordHandler_Validation(t *testing.T) {
	testCases := []struct {
		name        string
		contentType string
		requestBody string
		wantError   jsonResponse
	}{
		{
			name:        "invalid content type",
			contentType: "text/plain",
			requestBody: `{}`,
			wantError:   errorInvalidContentType,
		},
		{
			name:        "malformed json",
			contentType: "application/json",
			requestBody: `{"email":`,
			wantError:   errorInvalidRequest,
		},
		{
			name:        "missing fields",
			contentType: "application/json",
			requestBody: `{"email":"a@example.com","password":"password123"}`,
			wantError:   errorMissingFields,
		},
		{
			name:        "invalid email",
			contentType: "application/json",
			requestBody: `{"name":"A","email":"not-an-email","password":"password123","password_confirm":"password123"}`,
			wantError:   errorInvalidRequest,
		},
		{
			name:        "password confirmation mismatch",
			contentType: "application/json",
			requestBody: `{"name":"A","email":"a@example.com","password":"password123","password_confirm":"password456"}`,
			wantError:   errorPasswordMismatch,
		},
		{
			name:        "password too short",
			contentType: "application/json",
			requestBody: `{"name":"A","email":"a@example.com","password":"short","password_confirm":"short"}`,
			wantError:   errorPasswordComplexity,
		},
		{
			name:        "password too long",
			contentType: "application/json",
			requestBody: `{"name":"A","email":"a@example.com","password":"` + strings.Repeat("x", 65) + `","password_confirm":"` + strings.Repeat("x", 65) + `"}`,
			wantError:   errorPasswordComplexity,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app, _ := newTestApp(t, &mock.Db{})

			req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(tc.requestBody))
			req.Header.Set("Content-Type", tc.contentType)
			rr := httptest.NewRecorder()

			app.RegisterWithPasswordHandler(rr, req)
			wantResponse(t, rr, tc.wantError)
		})
	}
}

func TestRegisterWithPasswordHandler_Success(t *testing.T) {
	var created db.User
	var tokenSet struct {
		userID  string
		token   string
		purpose db.TokenPurpose
		expires time.Time
	}

	dbMock := &mock.Db{
		CreateUserWithPasswordFunc: func(user db.User) (*db.User, error) {
			created = user
			user.ID = "user123"
			return &user, nil
		},
		SetVerificationTokenFunc: func(userID, token string, purpose db.TokenPurpose, expires time.Time) error {
			tokenSet.userID = userID
			tokenSet.token = token
			tokenSet.purpose = purpose
			tokenSet.expires = expires
			return nil
		},
	}
	app, mailer := newTestApp(t, dbMock)

	req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(
		`{"name":"Ada","email":"ada@example.com","password":"password123","password_confirm":"password123"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	app.RegisterWithPasswordHandler(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}

	if created.Role != db.RoleGuest {
		t.Errorf("new users must start as guest, got %q", created.Role)
	}
	if created.Provider != db.ProviderLocal {
		t.Errorf("provider = %q, want local", created.Provider)
	}
	if created.Password == "password123" || created.Password == "" {
		t.Error("password must be stored hashed")
	}

	if tokenSet.userID != "user123" {
		t.Errorf("verification token bound to %q, want user123", tokenSet.userID)
	}
	if tokenSet.purpose != db.PurposeEmailVerification {
		t.Errorf("token purpose = %q", tokenSet.purpose)
	}
	wantExpiry := time.Now().Add(24 * time.Hour)
	if tokenSet.expires.Before(wantExpiry.Add(-time.Minute)) || tokenSet.expires.After(wantExpiry.Add(time.Minute)) {
		t.Errorf("token expiry %v not close to +24h", tokenSet.expires)
	}

	if len(mailer.Sent) != 1 {
		t.Fatalf("expected 1 mail, got %d", len(mailer.Sent))
	}
	sent := mailer.Sent[0]
	if sent.TemplateID != mail.TemplateVerification || sent.To != "ada@example.com" {
		t.Errorf("unexpected mail %+v", sent)
	}
	if !strings.Contains(sent.Placeholders[mail.PlaceholderVerificationLink], tokenSet.token) {
		t.Error("verification link must carry the issued token")
	}
}

func TestRegisterWithPasswordHandler_EmailConflict(t *testing.T) {
	dbMock := &mock.Db{
		CreateUserWithPasswordFunc: func(user db.User) (*db.User, error) {
			return nil, db.ErrConstraintUnique
		},
	}
	app, mailer := newTestApp(t, dbMock)

	req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(
		`{"name":"Ada","email":"taken@example.com","password":"password123","password_confirm":"password123"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	app.RegisterWithPasswordHandler(rr, req)

	if rr.Code != http.StatusConflict {
		t.Errorf("expected status 409, got %d", rr.Code)
	}
	if len(mailer.Sent) != 0 {
		t.Error("no mail may be sent on conflict")
	}
}

func TestRegisterWithPasswordHandler_MailFailureKeepsAccount(t *testing.T) {
	dbMock := &mock.Db{
		CreateUserWithPasswordFunc: func(user db.User) (*db.User, error) {
			user.ID = "user123"
			return &user, nil
		},
	}
	app, mailer := newTestApp(t, dbMock)
	mailer.SendFunc = func(ctx context.Context, to, templateID string, placeholders map[string]string) error {
		return errors.New("smtp down")
	}

	req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(
		`{"name":"Ada","email":"ada@example.com","password":"password123","password_confirm":"password123"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	app.RegisterWithPasswordHandler(rr, req)

	if rr.Code != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", rr.Code)
	}
	if got := decodeResponseCode(t, rr); got != CodeErrorMailDeliveryFailed {
		t.Errorf("expected code %q, got %q", CodeErrorMailDeliveryFailed, got)
	}
}
