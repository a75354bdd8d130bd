package core

import (
	"log/slog"

	"github.com/joblane/backend/cache"
	"github.com/joblane/backend/config"
	"github.com/joblane/backend/db"
	"github.com/joblane/backend/mail"
)

// App is the application wide context.
// db connections and permanent structs should go here.
//
// All handlers and middleware have App as receiver; it is the only
// thing routes need to close over.
type App struct {
	dbAuth         db.DbAuth
	cache          cache.Cache[string, int]
	configProvider *config.Provider
	logger         *slog.Logger
	mailer         mail.Sender
	authenticator  Authenticator
	validator      Validator
}

func (a *App) DbAuth() db.DbAuth {
	return a.dbAuth
}

func (a *App) Logger() *slog.Logger {
	return a.logger
}

func (a *App) Cache() cache.Cache[string, int] {
	return a.cache
}

// Config returns the current configuration snapshot. Handlers call
// this once per request and work off that snapshot.
func (a *App) Config() *config.Config {
	return a.configProvider.Get()
}

func (a *App) Mailer() mail.Sender {
	return a.mailer
}

func (a *App) Auth() Authenticator {
	return a.authenticator
}

func (a *App) Validator() Validator {
	return a.validator
}
