package core

import (
	"fmt"
	"log/slog"

	"github.com/joblane/backend/cache"
	"github.com/joblane/backend/config"
	"github.com/joblane/backend/db"
	"github.com/joblane/backend/mail"
)

type Option func(*App)

// WithDbAuth sets the user store implementation
func WithDbAuth(d db.DbAuth) Option {
	return func(a *App) {
		a.dbAuth = d
	}
}

// WithCache sets the cache used by the login throttle
func WithCache(c cache.Cache[string, int]) Option {
	return func(a *App) {
		a.cache = c
	}
}

// WithConfigProvider sets the application's configuration provider.
func WithConfigProvider(p *config.Provider) Option {
	return func(a *App) {
		a.configProvider = p
	}
}

// WithLogger sets the logger implementation
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// WithMailer sets the outbound mail implementation
func WithMailer(m mail.Sender) Option {
	return func(a *App) {
		a.mailer = m
	}
}

// WithAuthenticator overrides the default authenticator
func WithAuthenticator(auth Authenticator) Option {
	return func(a *App) {
		a.authenticator = auth
	}
}

// WithValidator overrides the default request validator
func WithValidator(v Validator) Option {
	return func(a *App) {
		a.validator = v
	}
}

// NewApp assembles the application context from options. DbAuth,
// config provider and logger are required; authenticator and validator
// get default implementations when not provided.
func NewApp(opts ...Option) (*App, error) {
	a := &App{}
	for _, opt := range opts {
		opt(a)
	}

	if a.dbAuth == nil {
		return nil, fmt.Errorf("dbAuth is required but was not provided (use WithDbAuth)")
	}
	if a.configProvider == nil {
		return nil, fmt.Errorf("config provider is required but was not provided (use WithConfigProvider)")
	}
	if a.logger == nil {
		return nil, fmt.Errorf("logger is required but was not provided (use WithLogger)")
	}

	if a.authenticator == nil {
		a.authenticator = NewDefaultAuthenticator(a.dbAuth, a.logger, a.configProvider)
	}
	if a.validator == nil {
		a.validator = NewValidator()
	}

	return a, nil
}
