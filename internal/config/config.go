package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	AppPort  string `env:"APP_PORT"  envDefault:"8000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	RedisAddr     string `env:"REDIS_ADDR"     envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"       envDefault:"0"`

	HubSpotClientID     string   `env:"HUBSPOT_CLIENT_ID"`
	HubSpotClientSecret string   `env:"HUBSPOT_CLIENT_SECRET"`
	HubSpotRedirectURL  string   `env:"HUBSPOT_REDIRECT_URL"  envDefault:"http://localhost:8000/integrations/hubspot/oauth2callback"`
	HubSpotAuthURL      string   `env:"HUBSPOT_AUTH_URL"      envDefault:"https://app.hubspot.com/oauth/authorize"`
	HubSpotTokenURL     string   `env:"HUBSPOT_TOKEN_URL"     envDefault:"https://api.hubapi.com/oauth/v1/token"`
	HubSpotAPIBaseURL   string   `env:"HUBSPOT_API_BASE_URL"  envDefault:"https://api.hubapi.com"`
	HubSpotScopes       []string `env:"HUBSPOT_SCOPES"        envDefault:"crm.objects.contacts.read oauth" envSeparator:" "`

	// StateTTL bounds the whole authorize/callback round trip.
	StateTTL time.Duration `env:"INTEGRATION_STATE_TTL" envDefault:"600s"`
	// CredentialsTTL bounds how long exchanged credentials wait to be consumed.
	CredentialsTTL time.Duration `env:"INTEGRATION_CREDENTIALS_TTL" envDefault:"600s"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
