package config

import (
	"errors"
	"fmt"
)

const minJwtSecretLength = 32

// Validate rejects configurations that cannot possibly work. Providers
// without credentials are tolerated (the endpoint is simply disabled),
// but a configured provider must be structurally complete.
func Validate(c *Config) error {
	if len(c.Jwt.AuthSecret) < minJwtSecretLength {
		return fmt.Errorf("jwt auth secret must be at least %d bytes (set %s)", minJwtSecretLength, EnvJwtSecret)
	}
	if c.Jwt.AuthTokenDuration.Duration <= 0 {
		return errors.New("jwt auth token duration must be positive")
	}
	if c.Jwt.VerificationTokenDuration.Duration <= 0 {
		return errors.New("verification token duration must be positive")
	}
	if c.Jwt.PasswordResetTokenDuration.Duration <= 0 {
		return errors.New("password reset token duration must be positive")
	}
	if c.Server.Addr == "" {
		return errors.New("server addr is required")
	}
	if c.Server.BaseURL == "" {
		return errors.New("server base_url is required")
	}
	if c.Smtp.SendTimeout.Duration <= 0 {
		return errors.New("smtp send_timeout must be positive")
	}

	for name, p := range c.OAuth2Providers {
		if !p.Enabled() {
			continue
		}
		if p.AuthURL == "" || p.TokenURL == "" || p.UserInfoURL == "" {
			return fmt.Errorf("oauth2 provider %q is missing endpoint URLs", name)
		}
		if p.RedirectURL == "" {
			return fmt.Errorf("oauth2 provider %q is missing redirect_url", name)
		}
	}

	if c.LoginThrottle.MaxFailures > 0 && c.LoginThrottle.Window.Duration <= 0 {
		return errors.New("login throttle window must be positive when max_failures is set")
	}

	return nil
}
