package core

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/joblane/backend/config"
	"github.com/joblane/backend/crypto"
	"github.com/joblane/backend/db"
	"github.com/joblane/backend/mail"
	oauth2provider "github.com/joblane/backend/oauth2"
)

// oauth2TokenExchangeTimeout defines the maximum duration for OAuth2 token exchange operations.
// This timeout prevents hanging if the OAuth2 provider is unresponsive.
const oauth2TokenExchangeTimeout = 10 * time.Second

// oauth2CookieTTL bounds how long a started flow stays redeemable.
const oauth2CookieTTL = 10 * time.Minute

const (
	oauth2StateCookie    = "oauth_state"
	oauth2VerifierCookie = "oauth_verifier"
)

func oauth2Config(provider config.OAuth2Provider) oauth2.Config {
	return oauth2.Config{
		ClientID:     provider.ClientID,
		ClientSecret: provider.ClientSecret,
		RedirectURL:  provider.RedirectURL,
		Scopes:       provider.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  provider.AuthURL,
			TokenURL: provider.TokenURL,
		},
	}
}

func setFlowCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(oauth2CookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearFlowCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// OAuth2StartHandler begins the authorization code flow for the named
// provider.
// Endpoint: GET /auth/oauth2/{provider}
// Authenticated: No
//
// The anti-forgery state and the PKCE verifier travel back to the
// browser as short-lived http-only cookies; only their derived values
// (state, S256 challenge) go to the provider.
func (a *App) OAuth2StartHandler(providerName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider, ok := a.Config().OAuth2Providers[providerName]
		if !ok {
			writeJsonError(w, errorInvalidOAuth2Provider)
			return
		}

		state := crypto.Oauth2State()
		cfg := oauth2Config(provider)

		opts := []oauth2.AuthCodeOption{oauth2.AccessTypeOnline}
		if provider.PKCE {
			verifier := crypto.Oauth2CodeVerifier()
			opts = append(opts,
				oauth2.SetAuthURLParam("code_challenge", crypto.S256Challenge(verifier)),
				oauth2.SetAuthURLParam("code_challenge_method", crypto.PKCECodeChallengeMethod),
			)
			setFlowCookie(w, oauth2VerifierCookie, verifier)
		}
		setFlowCookie(w, oauth2StateCookie, state)

		http.Redirect(w, r, cfg.AuthCodeURL(state, opts...), http.StatusTemporaryRedirect)
	}
}

// OAuth2CallbackHandler completes the authorization code flow.
// Endpoint: GET /auth/oauth2/{provider}/callback
// Authenticated: No
//
// The state comparison happens before any provider round trip, and both
// flow cookies are cleared on every exit path so a failed attempt
// leaves nothing to replay.
func (a *App) OAuth2CallbackHandler(providerName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider, ok := a.Config().OAuth2Providers[providerName]
		if !ok {
			writeJsonError(w, errorInvalidOAuth2Provider)
			return
		}

		stateCookie, _ := r.Cookie(oauth2StateCookie)
		verifierCookie, _ := r.Cookie(oauth2VerifierCookie)
		clearFlowCookie(w, oauth2StateCookie)
		clearFlowCookie(w, oauth2VerifierCookie)

		state := r.URL.Query().Get("state")
		if state == "" || stateCookie == nil || stateCookie.Value != state {
			a.Logger().Warn("oauth2 state mismatch", "provider", providerName, "ip", a.getClientIP(r))
			writeJsonError(w, errorOAuth2StateMismatch)
			return
		}

		var verifier string
		if provider.PKCE {
			if verifierCookie == nil || verifierCookie.Value == "" {
				writeJsonError(w, errorOAuth2MissingVerifier)
				return
			}
			verifier = verifierCookie.Value
		}

		code := r.URL.Query().Get("code")
		if code == "" {
			writeJsonError(w, errorInvalidRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), oauth2TokenExchangeTimeout)
		defer cancel()

		cfg := oauth2Config(provider)
		var exchangeOpts []oauth2.AuthCodeOption
		if provider.PKCE {
			exchangeOpts = append(exchangeOpts, oauth2.SetAuthURLParam("code_verifier", verifier))
		}

		token, err := cfg.Exchange(ctx, code, exchangeOpts...)
		if err != nil {
			a.Logger().Error("oauth2 token exchange failed", "provider", providerName, "error", err)
			writeJsonError(w, errorOAuth2TokenExchangeFailed)
			return
		}

		oauthUser, err := oauth2provider.FetchUser(ctx, cfg.Client(ctx, token), provider)
		if err != nil {
			a.Logger().Error("oauth2 user info failed", "provider", providerName, "error", err)
			writeJsonError(w, errorOAuth2UserInfoFailed)
			return
		}
		if err := ValidateEmail(oauthUser.Email); err != nil {
			writeJsonError(w, errorOAuth2UserInfoProcessingFailed)
			return
		}

		user, err := a.findOrCreateOauth2User(r.Context(), oauthUser, providerName)
		if err != nil {
			a.Logger().Error("oauth2 user persistence failed", "provider", providerName, "error", err)
			writeJsonError(w, errorAuthDatabaseError)
			return
		}

		appCfg := a.Config()
		sessionToken, expires, err := crypto.NewSessionToken(user.ID, []byte(appCfg.Jwt.AuthSecret), appCfg.Jwt.AuthTokenDuration.Duration)
		if err != nil {
			a.Logger().Error("session token generation failed", "error", err)
			writeJsonError(w, errorTokenGeneration)
			return
		}

		writeAuthResponse(w, sessionToken, expires, user)
	}
}

// findOrCreateOauth2User links the provider identity to an existing
// account by email or creates a fresh verified account. An existing
// account keeps its id, role and password; the provider has proven
// control of the same mailbox.
func (a *App) findOrCreateOauth2User(ctx context.Context, oauthUser *oauth2provider.AuthUser, providerName string) (*db.User, error) {
	user, err := a.DbAuth().GetUserByEmail(oauthUser.Email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user, err = a.DbAuth().CreateUserWithOauth2(db.User{
		Name:     oauthUser.Name,
		Email:    oauthUser.Email,
		Role:     db.RoleUser,
		Provider: db.AuthProvider(providerName),
	})
	if err != nil {
		return nil, err
	}

	// First sign-in for this account; the mail is decoration, not state.
	if err := a.sendMail(ctx, user.Email, mail.TemplateWelcome, map[string]string{
		mail.PlaceholderUsername: user.Name,
	}); err != nil {
		a.Logger().Error("welcome mail failed", "user_id", user.ID, "error", err)
	}

	a.Logger().Info("oauth2 user created", "user_id", user.ID, "provider", providerName)
	return user, nil
}
