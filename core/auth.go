package core

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/joblane/backend/config"
	"github.com/joblane/backend/crypto"
	"github.com/joblane/backend/db"
)

// Authenticator defines the interface for authentication operations
type Authenticator interface {
	Authenticate(r *http.Request) (*db.User, error, jsonResponse)
}

// DefaultAuthenticator implements Authenticator using the standard authentication flow
type DefaultAuthenticator struct {
	dbAuth         db.DbAuth
	logger         *slog.Logger
	configProvider *config.Provider
}

// NewDefaultAuthenticator creates a new DefaultAuthenticator instance
func NewDefaultAuthenticator(dbAuth db.DbAuth, logger *slog.Logger, configProvider *config.Provider) *DefaultAuthenticator {
	return &DefaultAuthenticator{
		dbAuth:         dbAuth,
		logger:         logger,
		configProvider: configProvider,
	}
}

// sessionTokenFromRequest extracts the session token from the
// Authorization header or, failing that, the session cookie.
func sessionTokenFromRequest(r *http.Request) (string, jsonResponse) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return "", errorInvalidTokenFormat
		}
		return tokenString, jsonResponse{}
	}

	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", errorNoAuthCredentials
	}
	return cookie.Value, jsonResponse{}
}

// Authenticate implements the Authenticator interface. Token
// verification failures all map to the same invalid-token response; a
// valid token whose user has since been deleted answers distinctly,
// still unauthorized.
func (a *DefaultAuthenticator) Authenticate(r *http.Request) (*db.User, error, jsonResponse) {
	errAuth := errors.New("auth error")

	tokenString, resp := sessionTokenFromRequest(r)
	if tokenString == "" {
		return nil, errAuth, resp
	}

	cfg := a.configProvider.Get()
	userID, err := crypto.ParseSessionToken(tokenString, []byte(cfg.Jwt.AuthSecret))
	if err != nil {
		return nil, errAuth, errorJwtInvalidToken
	}

	user, err := a.dbAuth.GetUserById(userID)
	if err != nil {
		a.logger.Error("user lookup failed during authentication", "error", err)
		return nil, errAuth, errorAuthDatabaseError
	}
	if user == nil {
		return nil, errAuth, errorSessionUserNotFound
	}

	return user, nil, jsonResponse{}
}
