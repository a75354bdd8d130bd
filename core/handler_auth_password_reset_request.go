package core

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/joblane/backend/crypto"
	"github.com/joblane/backend/db"
	"github.com/joblane/backend/mail"
)

// RequestPasswordResetHandler issues a password reset token.
// Endpoint: POST /auth/password-reset
// Authenticated: No
// Allowed Mimetype: application/json
//
// The response is the same whether or not the email is registered, so
// the endpoint cannot be used for enumeration. Accounts without a local
// password (OAuth2 only) are silently skipped for the same reason.
func (a *App) RequestPasswordResetHandler(w http.ResponseWriter, r *http.Request) {
	if err, resp := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		writeJsonError(w, resp)
		return
	}

	var req struct {
		Email string `json:"email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	if req.Email == "" {
		writeJsonError(w, errorMissingFields)
		return
	}
	if err := ValidateEmail(req.Email); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	user, err := a.DbAuth().GetUserByEmail(req.Email)
	if err != nil {
		a.Logger().Error("user lookup failed", "error", err)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}

	if user != nil && user.Password != "" {
		cfg := a.Config()
		token := crypto.NewVerificationToken()
		expires := time.Now().Add(cfg.Jwt.PasswordResetTokenDuration.Duration)

		if err := a.DbAuth().SetVerificationToken(user.ID, token, db.PurposePasswordReset, expires); err != nil {
			a.Logger().Error("failed to store reset token", "user_id", user.ID, "error", err)
			writeJsonError(w, errorAuthDatabaseError)
			return
		}

		link := cfg.Server.BaseURL + "/reset-password?token=" + token
		if err := a.sendMail(r.Context(), user.Email, mail.TemplatePasswordReset, map[string]string{
			mail.PlaceholderUsername:  user.Name,
			mail.PlaceholderResetLink: link,
		}); err != nil {
			// A distinct error here would reveal the account exists.
			a.Logger().Error("password reset mail failed", "user_id", user.ID, "error", err)
		}
	}

	writeJsonOk(w, okPasswordResetRequested)
}
