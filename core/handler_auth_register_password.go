package core

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/joblane/backend/crypto"
	"github.com/joblane/backend/db"
	"github.com/joblane/backend/mail"
)

// MinPasswordLength is the lower bound for new passwords. The upper
// bound is crypto.MaxPasswordLength.
const MinPasswordLength = 8

// RegisterWithPasswordHandler handles password-based user registration.
// Endpoint: POST /auth/register
// Authenticated: No
// Allowed Mimetype: application/json
//
// New accounts start as unverified guests; the verification email
// carries the single-use token that upgrades them.
func (a *App) RegisterWithPasswordHandler(w http.ResponseWriter, r *http.Request) {
	if err, resp := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		writeJsonError(w, resp)
		return
	}

	var req struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		PasswordConfirm string `json:"password_confirm"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" || req.PasswordConfirm == "" {
		writeJsonError(w, errorMissingFields)
		return
	}

	if err := ValidateEmail(req.Email); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	if req.Password != req.PasswordConfirm {
		writeJsonError(w, errorPasswordMismatch)
		return
	}

	if len(req.Password) < MinPasswordLength {
		writeJsonError(w, errorPasswordComplexity)
		return
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, crypto.ErrPasswordTooLong) {
			writeJsonError(w, errorPasswordComplexity)
			return
		}
		a.Logger().Error("password hashing failed", "error", err)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}

	user, err := a.DbAuth().CreateUserWithPassword(db.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     db.RoleGuest,
		Provider: db.ProviderLocal,
	})
	if err != nil {
		if errors.Is(err, db.ErrConstraintUnique) {
			writeJsonError(w, errorEmailConflict)
			return
		}
		a.Logger().Error("user creation failed", "error", err)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}

	cfg := a.Config()
	token := crypto.NewVerificationToken()
	expires := time.Now().Add(cfg.Jwt.VerificationTokenDuration.Duration)
	if err := a.DbAuth().SetVerificationToken(user.ID, token, db.PurposeEmailVerification, expires); err != nil {
		a.Logger().Error("failed to store verification token", "user_id", user.ID, "error", err)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}

	// The account exists even when the mail bounces; the client gets an
	// upstream error and can retry without re-registering.
	if err := a.sendVerificationMail(r.Context(), user, token); err != nil {
		a.Logger().Error("verification mail failed", "user_id", user.ID, "error", err)
		writeJsonError(w, errorMailDeliveryFailed)
		return
	}

	a.Logger().Info("user registered", "user_id", user.ID)
	writeJsonOk(w, okVerificationRequested)
}

func (a *App) sendVerificationMail(ctx context.Context, user *db.User, token string) error {
	link := a.Config().Server.BaseURL + "/auth/verify-email?token=" + token
	return a.sendMail(ctx, user.Email, mail.TemplateVerification, map[string]string{
		mail.PlaceholderUsername:         user.Name,
		mail.PlaceholderVerificationLink: link,
	})
}
