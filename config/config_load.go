package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Load reads the TOML configuration file, fills secrets from the
// environment and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := NewDefault()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.FillEnvVars()

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FillEnvVars copies secrets from the environment into the config.
// Secrets never live in the config file.
func (c *Config) FillEnvVars() {
	c.Jwt.AuthSecret = os.Getenv(EnvJwtSecret)
	c.Smtp.Password = os.Getenv(EnvSmtpPassword)

	for name, provider := range c.OAuth2Providers {
		switch name {
		case OAuth2ProviderGoogle:
			provider.ClientID = os.Getenv(EnvGoogleClientID)
			provider.ClientSecret = os.Getenv(EnvGoogleClientSecret)
		case OAuth2ProviderGithub:
			provider.ClientID = os.Getenv(EnvGithubClientID)
			provider.ClientSecret = os.Getenv(EnvGithubClientSecret)
		}
		c.OAuth2Providers[name] = provider
	}
}
