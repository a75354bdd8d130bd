package config

import "time"

// NewDefault returns a config with sensible defaults for everything a
// deployment is allowed to omit. Secrets and provider credentials stay
// empty until FillEnvVars.
func NewDefault() *Config {
	return &Config{
		DBFile: "joblane.db",
		Jwt: Jwt{
			AuthTokenDuration:          Duration{60 * time.Minute},
			VerificationTokenDuration:  Duration{24 * time.Hour},
			PasswordResetTokenDuration: Duration{30 * time.Minute},
		},
		Server: Server{
			Addr:              ":8080",
			BaseURL:           "http://localhost:8080",
			ReadTimeout:       Duration{5 * time.Second},
			ReadHeaderTimeout: Duration{3 * time.Second},
			WriteTimeout:      Duration{10 * time.Second},
			IdleTimeout:       Duration{120 * time.Second},
			ShutdownTimeout:   Duration{15 * time.Second},
		},
		Smtp: Smtp{
			Port:        587,
			SendTimeout: Duration{10 * time.Second},
		},
		LoginThrottle: LoginThrottle{
			MaxFailures: 10,
			Window:      Duration{15 * time.Minute},
		},
		OAuth2Providers: map[string]OAuth2Provider{
			OAuth2ProviderGoogle: {
				Name:        OAuth2ProviderGoogle,
				DisplayName: "Google",
				AuthURL:     "https://accounts.google.com/o/oauth2/v2/auth",
				TokenURL:    "https://oauth2.googleapis.com/token",
				UserInfoURL: "https://www.googleapis.com/oauth2/v3/userinfo",
				Scopes:      []string{"openid", "email", "profile"},
				PKCE:        true,
			},
			OAuth2ProviderGithub: {
				Name:        OAuth2ProviderGithub,
				DisplayName: "GitHub",
				AuthURL:     "https://github.com/login/oauth/authorize",
				TokenURL:    "https://github.com/login/oauth/access_token",
				UserInfoURL: "https://api.github.com/user",
				EmailsURL:   "https://api.github.com/user/emails",
				Scopes:      []string{"user:email", "read:user"},
				PKCE:        true,
			},
		},
	}
}
