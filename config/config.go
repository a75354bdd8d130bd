package config

import (
	"sync/atomic"
	"time"
)

const (
	EnvJwtSecret          = "JWT_SECRET"
	EnvSmtpPassword       = "SMTP_PASSWORD"
	EnvGoogleClientID     = "OAUTH2_GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret = "OAUTH2_GOOGLE_CLIENT_SECRET"
	EnvGithubClientID     = "OAUTH2_GITHUB_CLIENT_ID"
	EnvGithubClientSecret = "OAUTH2_GITHUB_CLIENT_SECRET"
)

const (
	OAuth2ProviderGoogle = "google"
	OAuth2ProviderGithub = "github"
)

// Duration wraps time.Duration for TOML text unmarshalling ("15m", "24h").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

type Jwt struct {
	// AuthSecret signs session tokens. Filled from JWT_SECRET, never
	// from the config file, and must never be logged.
	AuthSecret                 string   `toml:"-"`
	AuthTokenDuration          Duration `toml:"auth_token_duration"`
	VerificationTokenDuration  Duration `toml:"verification_token_duration"`
	PasswordResetTokenDuration Duration `toml:"password_reset_token_duration"`
}

type Server struct {
	Addr                string   `toml:"addr"`
	BaseURL             string   `toml:"base_url"`
	ReadTimeout         Duration `toml:"read_timeout"`
	ReadHeaderTimeout   Duration `toml:"read_header_timeout"`
	WriteTimeout        Duration `toml:"write_timeout"`
	IdleTimeout         Duration `toml:"idle_timeout"`
	ShutdownTimeout     Duration `toml:"shutdown_timeout"`
	ClientIpProxyHeader string   `toml:"client_ip_proxy_header"`
}

type Smtp struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	// Password is filled from SMTP_PASSWORD.
	Password string `toml:"-"`
	From     string `toml:"from"`
	FromName string `toml:"from_name"`
	// SendTimeout bounds every outbound dispatch, including the SMTP
	// dialog itself.
	SendTimeout Duration `toml:"send_timeout"`
}

type OAuth2Provider struct {
	Name         string   `toml:"name"`
	DisplayName  string   `toml:"display_name"`
	ClientID     string   `toml:"-"`
	ClientSecret string   `toml:"-"`
	RedirectURL  string   `toml:"redirect_url"`
	AuthURL      string   `toml:"auth_url"`
	TokenURL     string   `toml:"token_url"`
	UserInfoURL  string   `toml:"user_info_url"`
	// EmailsURL is a secondary endpoint for providers that may omit the
	// email from the primary user-info response (GitHub). Empty for
	// providers that always return it.
	EmailsURL string   `toml:"emails_url"`
	Scopes    []string `toml:"scopes"`
	PKCE      bool     `toml:"pkce"`
}

// Enabled reports whether the provider has credentials. Providers
// without them stay in the map but get no routes and no validation.
func (p OAuth2Provider) Enabled() bool {
	return p.ClientID != "" && p.ClientSecret != ""
}

type LoginThrottle struct {
	// MaxFailures within Window locks the identity out until the
	// window expires. Zero disables throttling.
	MaxFailures int      `toml:"max_failures"`
	Window      Duration `toml:"window"`
}

// Config is the process-wide immutable configuration. It is constructed
// once at startup and handed to components through a Provider; nothing
// reads configuration from ambient globals.
type Config struct {
	DBFile          string                    `toml:"db_file"`
	Jwt             Jwt                       `toml:"jwt"`
	Server          Server                    `toml:"server"`
	Smtp            Smtp                      `toml:"smtp"`
	OAuth2Providers map[string]OAuth2Provider `toml:"oauth2_providers"`
	LoginThrottle   LoginThrottle             `toml:"login_throttle"`
}

// Provider hands out the current *Config. Swapping the pointer is
// atomic so a future hot reload cannot tear a half-written config.
type Provider struct {
	config atomic.Pointer[Config]
}

func NewProvider(c *Config) *Provider {
	p := &Provider{}
	p.config.Store(c)
	return p
}

// Get returns the current configuration. Callers must not mutate it.
func (p *Provider) Get() *Config {
	return p.config.Load()
}

// Update atomically replaces the configuration.
func (p *Provider) Update(c *Config) {
	p.config.Store(c)
}
