package main

import (
	"net/http"

	"github.com/joblane/backend/core"
	"github.com/joblane/backend/db"
	"github.com/joblane/backend/router"
)

func registerRoutes(app *core.App, r router.Router) {
	// Public auth surface.
	r.Handle(http.MethodPost, "/auth/register", http.HandlerFunc(app.RegisterWithPasswordHandler))
	r.Handle(http.MethodPost, "/auth/login", http.HandlerFunc(app.AuthWithPasswordHandler))
	r.Handle(http.MethodGet, "/auth/verify-email", http.HandlerFunc(app.VerifyEmailHandler))
	r.Handle(http.MethodPost, "/auth/password-reset", http.HandlerFunc(app.RequestPasswordResetHandler))
	r.Handle(http.MethodPost, "/auth/password-reset/confirm", http.HandlerFunc(app.ConfirmPasswordResetHandler))

	// Delegated login, one start/callback pair per provider with
	// credentials.
	for name, provider := range app.Config().OAuth2Providers {
		if !provider.Enabled() {
			continue
		}
		r.Handle(http.MethodGet, "/auth/oauth2/"+name, app.OAuth2StartHandler(name))
		r.Handle(http.MethodGet, "/auth/oauth2/"+name+"/callback", app.OAuth2CallbackHandler(name))
	}

	// Admin surface, gated on the admin role.
	adminOnly := func(h http.Handler) http.Handler {
		return router.NewChain(h).
			WithMiddleware(app.RequireAuth, app.RequireRoles(db.RoleAdmin)).
			Handler()
	}
	r.Handle(http.MethodGet, "/admin/stats", adminOnly(http.HandlerFunc(app.AdminStatsHandler)))
	r.Handle(http.MethodPost, "/admin/users/role", adminOnly(http.HandlerFunc(app.AdminUpdateRoleHandler)))
}
