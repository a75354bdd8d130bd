package core

import (
	"net/http"
	"time"

	"github.com/joblane/backend/crypto"
	"github.com/joblane/backend/db"
	"github.com/joblane/backend/mail"
)

// VerifyEmailHandler consumes an email verification token.
// Endpoint: GET /auth/verify-email?token=...
// Authenticated: No
//
// An expired token answers distinctly from an unknown or already
// consumed one; the consume step is a single conditional update, so a
// token races to exactly one winner.
func (a *App) VerifyEmailHandler(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	user, err := a.DbAuth().GetUserByVerificationToken(token)
	if err != nil {
		a.Logger().Error("verification token lookup failed", "error", err)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}
	if user == nil || user.TokenPurpose != db.PurposeEmailVerification {
		writeJsonError(w, errorVerificationTokenInvalid)
		return
	}

	if time.Now().After(user.TokenExpires) {
		writeJsonError(w, errorVerificationTokenExpired)
		return
	}

	n, err := a.DbAuth().ConsumeVerificationToken(token, db.PurposeEmailVerification)
	if err != nil {
		a.Logger().Error("verification token consume failed", "user_id", user.ID, "error", err)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}
	if n == 0 {
		// Another request consumed it first.
		writeJsonError(w, errorVerificationTokenInvalid)
		return
	}

	user.Verified = true
	user.VerificationToken = ""
	user.TokenPurpose = ""
	if user.Role == db.RoleGuest {
		user.Role = db.RoleUser
	}

	// Verification already succeeded; a bounced welcome mail only gets logged.
	if err := a.sendMail(r.Context(), user.Email, mail.TemplateWelcome, map[string]string{
		mail.PlaceholderUsername: user.Name,
	}); err != nil {
		a.Logger().Error("welcome mail failed", "user_id", user.ID, "error", err)
	}

	cfg := a.Config()
	sessionToken, expires, err := crypto.NewSessionToken(user.ID, []byte(cfg.Jwt.AuthSecret), cfg.Jwt.AuthTokenDuration.Duration)
	if err != nil {
		a.Logger().Error("session token generation failed", "error", err)
		writeJsonError(w, errorTokenGeneration)
		return
	}

	a.Logger().Info("email verified", "user_id", user.ID)
	writeAuthResponse(w, sessionToken, expires, user)
}
