package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/joblane/backend/crypto"
	"github.com/joblane/backend/db"
)

// ConfirmPasswordResetHandler sets a new password for the user holding
// a valid reset token.
// Endpoint: POST /auth/password-reset/confirm
// Authenticated: No
// Allowed Mimetype: application/json
func (a *App) ConfirmPasswordResetHandler(w http.ResponseWriter, r *http.Request) {
	if err, resp := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		writeJsonError(w, resp)
		return
	}

	var req struct {
		Token           string `json:"token"`
		Password        string `json:"password"`
		PasswordConfirm string `json:"password_confirm"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	if req.Token == "" || req.Password == "" || req.PasswordConfirm == "" {
		writeJsonError(w, errorMissingFields)
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

	user, err := a.DbAuth().GetUserByVerificationToken(req.Token)
	if err != nil {
		a.Logger().Error("reset token lookup failed", "error", err)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}
	if user == nil || user.TokenPurpose != db.PurposePasswordReset {
		writeJsonError(w, errorVerificationTokenInvalid)
		return
	}

	if time.Now().After(user.TokenExpires) {
		writeJsonError(w, errorVerificationTokenExpired)
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

	// Consume before writing the new password so a raced duplicate
	// request cannot reset twice.
	n, err := a.DbAuth().ConsumeVerificationToken(req.Token, db.PurposePasswordReset)
	if err != nil {
		a.Logger().Error("reset token consume failed", "user_id", user.ID, "error", err)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}
	if n == 0 {
		writeJsonError(w, errorVerificationTokenInvalid)
		return
	}

	if err := a.DbAuth().UpdatePassword(user.ID, hash); err != nil {
		a.Logger().Error("password update failed", "user_id", user.ID, "error", err)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}

	a.Logger().Info("password reset", "user_id", user.ID)
	writeJsonOk(w, okPasswordReset)
}
