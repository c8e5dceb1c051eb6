// Package hubspot connects a user's HubSpot account through the OAuth2
// authorization code grant and reads their contacts as canonical items.
package hubspot

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"integration-service/internal/kvstore"

	"github.com/hashicorp/go-cleanhttp"
	"golang.org/x/oauth2"
)

const providerName = "hubspot"

const (
	DefaultAuthURL    = "https://app.hubspot.com/oauth/authorize"
	DefaultTokenURL   = "https://api.hubapi.com/oauth/v1/token"
	DefaultAPIBaseURL = "https://api.hubapi.com"
	DefaultTTL        = 600 * time.Second
)

// DefaultScopes grants read access to contacts.
var DefaultScopes = []string{"crm.objects.contacts.read", "oauth"}

type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	AuthURL    string
	TokenURL   string
	APIBaseURL string
	Scopes     []string

	StateTTL       time.Duration
	CredentialsTTL time.Duration

	HTTPClient *http.Client
}

type Connector struct {
	oauthConfig    *oauth2.Config
	store          kvstore.Store
	httpClient     *http.Client
	apiBaseURL     string
	stateTTL       time.Duration
	credentialsTTL time.Duration
}

func New(cfg Config, store kvstore.Store) (*Connector, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RedirectURL == "" {
		return nil, errors.New("hubspot oauth config missing required fields")
	}
	if store == nil {
		return nil, errors.New("hubspot connector requires a store")
	}

	if cfg.AuthURL == "" {
		cfg.AuthURL = DefaultAuthURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = DefaultScopes
	}
	if cfg.StateTTL <= 0 {
		cfg.StateTTL = DefaultTTL
	}
	if cfg.CredentialsTTL <= 0 {
		cfg.CredentialsTTL = DefaultTTL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = cleanhttp.DefaultPooledClient()
	}

	return &Connector{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
			},
			Scopes: append([]string(nil), cfg.Scopes...),
		},
		store:          store,
		httpClient:     cfg.HTTPClient,
		apiBaseURL:     strings.TrimRight(cfg.APIBaseURL, "/"),
		stateTTL:       cfg.StateTTL,
		credentialsTTL: cfg.CredentialsTTL,
	}, nil
}

// Name returns the provider identifier used in store keys and routes.
func (c *Connector) Name() string {
	return providerName
}
