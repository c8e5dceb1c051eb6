package hubspot

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"integration-service/internal/integration"
	"integration-service/internal/kvstore"
	"integration-service/internal/logger"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/oauth2"
)

// Callback completes the flow started by Authorize: it verifies the
// returned state against the stored PendingState, exchanges the code and
// leaves the resulting credentials in the store for one-time pickup.
func (c *Connector) Callback(ctx context.Context, p integration.CallbackParams) error {
	if p.Error != "" {
		logger.Warn("hubspot callback returned error", map[string]any{
			"error": p.Error,
			"desc":  p.ErrorDescription,
		})
		return fmt.Errorf("%w: %s", integration.ErrProviderDenied, p.Error)
	}

	returned, err := decodeState(p.State)
	if err != nil {
		return err
	}

	stateKey := integration.StateKey(providerName, returned.OrgID, returned.UserID)
	if err := c.verifyState(ctx, stateKey, returned.State); err != nil {
		return err
	}

	if p.Code == "" {
		return fmt.Errorf("%w: missing authorization code", integration.ErrInvalidRequest)
	}

	// The state is single use, so it is dropped whether or not the
	// exchange succeeds. Both calls must finish before going on.
	var (
		g    multierror.Group
		blob []byte
	)
	g.Go(func() error {
		b, err := c.exchange(ctx, p.Code)
		if err != nil {
			return err
		}
		blob = b
		return nil
	})
	g.Go(func() error {
		return c.store.Delete(ctx, stateKey)
	})
	if err := g.Wait().ErrorOrNil(); err != nil {
		logger.Error("hubspot token exchange failed", map[string]any{
			"org_id":  returned.OrgID,
			"user_id": returned.UserID,
			"error":   err.Error(),
		})
		return err
	}

	credKey := integration.CredentialsKey(providerName, returned.OrgID, returned.UserID)
	if err := c.store.Set(ctx, credKey, blob, c.credentialsTTL); err != nil {
		return fmt.Errorf("hubspot: save credentials: %w", err)
	}

	logger.Info("hubspot credentials stored", map[string]any{
		"org_id":  returned.OrgID,
		"user_id": returned.UserID,
	})

	return nil
}

func decodeState(raw string) (integration.PendingState, error) {
	var s integration.PendingState
	if raw == "" {
		return s, fmt.Errorf("%w: missing state", integration.ErrCSRFMismatch)
	}
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return s, fmt.Errorf("%w: undecodable state", integration.ErrCSRFMismatch)
	}
	if s.State == "" || s.UserID == "" || s.OrgID == "" {
		return s, fmt.Errorf("%w: incomplete state", integration.ErrCSRFMismatch)
	}
	return s, nil
}

func (c *Connector) verifyState(ctx context.Context, key, token string) error {
	raw, err := c.store.Get(ctx, key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return fmt.Errorf("%w: no pending state", integration.ErrCSRFMismatch)
	}
	if err != nil {
		return fmt.Errorf("hubspot: load state: %w", err)
	}

	var saved integration.PendingState
	if err := json.Unmarshal(raw, &saved); err != nil {
		return fmt.Errorf("%w: corrupt pending state", integration.ErrCSRFMismatch)
	}
	if subtle.ConstantTimeCompare([]byte(saved.State), []byte(token)) != 1 {
		return integration.ErrCSRFMismatch
	}
	return nil
}

// exchange trades the authorization code for tokens and returns the
// response body unchanged.
func (c *Connector) exchange(ctx context.Context, code string) ([]byte, error) {
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {c.oauthConfig.RedirectURL},
		"client_id":     {c.oauthConfig.ClientID},
		"client_secret": {c.oauthConfig.ClientSecret},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.oauthConfig.Endpoint.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", integration.ErrTokenExchange, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", integration.ErrTokenExchange, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTokenBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", integration.ErrTokenExchange, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > maxErrorBodyBytes {
			body = body[:maxErrorBodyBytes]
		}
		return nil, fmt.Errorf("%w: status %d: %s", integration.ErrTokenExchange, resp.StatusCode, body)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: response is not JSON", integration.ErrTokenExchange)
	}

	var creds integration.Credentials
	if err := json.Unmarshal(body, &creds); err != nil || creds.AccessToken == "" {
		return nil, fmt.Errorf("%w: response has no access_token", integration.ErrTokenExchange)
	}
	return body, nil
}

// clientContext makes x/oauth2 use the connector's HTTP client.
func (c *Connector) clientContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}
