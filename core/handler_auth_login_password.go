package core

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/joblane/backend/crypto"
)

// AuthWithPasswordHandler handles password-based authentication (login)
// Endpoint: POST /auth/login
// Authenticated: No
// Allowed Mimetype: application/json
//
// Unknown email, wrong password and password-less OAuth2 accounts all
// answer with the same generic response so the endpoint cannot be used
// to probe which emails are registered.
func (a *App) AuthWithPasswordHandler(w http.ResponseWriter, r *http.Request) {
	if err, resp := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		writeJsonError(w, resp)
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		writeJsonError(w, errorMissingFields)
		return
	}

	if err := ValidateEmail(req.Email); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	if a.loginThrottled(req.Email) {
		a.Logger().Warn("login throttled", "ip", a.getClientIP(r))
		writeJsonError(w, errorTooManyRequests)
		return
	}

	user, err := a.DbAuth().GetUserByEmail(req.Email)
	if err != nil {
		a.Logger().Error("user lookup failed", "error", err)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}
	if user == nil || user.Password == "" {
		a.recordLoginFailure(req.Email)
		writeJsonError(w, errorInvalidCredentials)
		return
	}

	match, err := crypto.CheckPassword(req.Password, user.Password)
	if errors.Is(err, crypto.ErrEmptyPassword) || errors.Is(err, crypto.ErrPasswordTooLong) {
		// Malformed submitted passwords answer like any wrong password,
		// never differently from the unknown-email path.
		err = nil
		match = false
	}
	if err != nil {
		a.Logger().Error("password verification failed", "user_id", user.ID, "error", err)
		writeJsonError(w, errorAuthDatabaseError)
		return
	}
	if !match {
		a.recordLoginFailure(req.Email)
		a.Logger().Warn("failed login attempt", "ip", a.getClientIP(r))
		writeJsonError(w, errorInvalidCredentials)
		return
	}

	a.clearLoginFailures(req.Email)

	cfg := a.Config()
	token, expires, err := crypto.NewSessionToken(user.ID, []byte(cfg.Jwt.AuthSecret), cfg.Jwt.AuthTokenDuration.Duration)
	if err != nil {
		a.Logger().Error("session token generation failed", "error", err)
		writeJsonError(w, errorTokenGeneration)
		return
	}

	writeAuthResponse(w, token, expires, user)
}
