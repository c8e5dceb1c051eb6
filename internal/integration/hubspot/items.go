package hubspot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"integration-service/internal/integration"
	"integration-service/internal/logger"

	"golang.org/x/oauth2"
)

const (
	contactsPath         = "/crm/v3/objects/contacts"
	maxErrorBodyBytes    = 4 << 10
	maxResponseBodyBytes = 16 << 20
	maxTokenBodyBytes    = 1 << 20
)

type listResponse struct {
	Results []Record `json:"results"`
}

// Items lists one page of the account's non-archived contacts and
// normalizes each in response order. A non-success response from HubSpot
// is logged and yields an empty result rather than an error.
func (c *Connector) Items(ctx context.Context, creds *integration.Credentials) ([]integration.Item, error) {
	if creds == nil || creds.AccessToken == "" {
		return nil, fmt.Errorf("%w: access token is required", integration.ErrInvalidRequest)
	}

	endpoint := c.apiBaseURL + contactsPath + "?" + url.Values{"archived": {"false"}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("hubspot: build list request: %w", err)
	}

	client := oauth2.NewClient(c.clientContext(ctx), oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: creds.AccessToken,
		TokenType:   "Bearer",
	}))

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", integration.ErrUpstreamFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		logger.Warn("hubspot list contacts failed", map[string]any{
			"status": resp.StatusCode,
			"body":   string(body),
		})
		return []integration.Item{}, nil
	}

	var list listResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBodyBytes)).Decode(&list); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", integration.ErrUpstreamFetch, err)
	}

	items := make([]integration.Item, 0, len(list.Results))
	for _, r := range list.Results {
		items = append(items, Normalize(r))
	}

	logger.Debug("hubspot contacts loaded", map[string]any{
		"count": len(items),
	})

	return items, nil
}
