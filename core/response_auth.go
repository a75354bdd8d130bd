package core

import (
	"net/http"
	"time"

	"github.com/joblane/backend/db"
)

const (
	// CodeOkAuthentication is the success code for login, verification
	// and OAuth2 responses that carry a session token.
	CodeOkAuthentication = "ok_authentication"

	// SessionCookieName carries the session token for browser clients.
	// API clients use the Authorization header instead.
	SessionCookieName = "session"
)

// AuthRecord represents the user record in authentication responses
type AuthRecord struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Verified bool   `json:"verified"`
}

// AuthData represents the authentication response structure
type AuthData struct {
	TokenType   string     `json:"token_type"`
	AccessToken string     `json:"access_token"`
	ExpiresIn   int        `json:"expires_in"`
	Record      AuthRecord `json:"record"`
}

// NewAuthData creates a new AuthData instance
func NewAuthData(token string, expiresIn int, user *db.User) *AuthData {
	return &AuthData{
		TokenType:   "Bearer",
		AccessToken: token,
		ExpiresIn:   expiresIn,
		Record: AuthRecord{
			ID:       user.ID,
			Email:    user.Email,
			Name:     user.Name,
			Role:     string(user.Role),
			Verified: user.Verified,
		},
	}
}

// writeAuthResponse writes the standardized authentication response and
// sets the session cookie. The token goes out both ways so browser and
// API clients can each pick theirs up.
func writeAuthResponse(w http.ResponseWriter, token string, expires time.Time, user *db.User) {
	expiresIn := int(time.Until(expires).Seconds())

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   expiresIn,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJsonWithData(w, JsonWithData{
		JsonBasic: JsonBasic{
			Status:  http.StatusOK,
			Code:    CodeOkAuthentication,
			Message: "Authentication successful",
		},
		Data: NewAuthData(token, expiresIn, user),
	})
}
