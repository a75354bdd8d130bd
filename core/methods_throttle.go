package core

// Login failure throttle. Repeated failed password attempts against one
// identity lock that identity out for the configured window. Counters
// live in the in-process cache with the window as TTL, so state resets
// on restart; that is an accepted trade-off for a cheap first line of
// defense against credential stuffing.

const loginFailurePrefix = "login_failures:"

// loginThrottled reports whether the identity has exhausted its failure
// budget for the current window.
func (a *App) loginThrottled(identity string) bool {
	cfg := a.Config().LoginThrottle
	if cfg.MaxFailures <= 0 || a.cache == nil {
		return false
	}

	count, ok := a.cache.Get(loginFailurePrefix + identity)
	return ok && count >= cfg.MaxFailures
}

// recordLoginFailure bumps the failure counter for the identity. Each
// failure restarts the window.
func (a *App) recordLoginFailure(identity string) {
	cfg := a.Config().LoginThrottle
	if cfg.MaxFailures <= 0 || a.cache == nil {
		return
	}

	key := loginFailurePrefix + identity
	count, _ := a.cache.Get(key)
	a.cache.SetWithTTL(key, count+1, 1, cfg.Window.Duration)
}

// clearLoginFailures forgets the counter after a successful login.
func (a *App) clearLoginFailures(identity string) {
	if a.cache == nil {
		return
	}
	a.cache.Del(loginFailurePrefix + identity)
}
