package hubspot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"integration-service/internal/integration"
	"integration-service/internal/kvstore"
)

// Credentials hands out the stored credentials of (org, user) exactly once.
// The read and the delete are one atomic store operation, so concurrent
// callers cannot both receive the same credentials.
func (c *Connector) Credentials(ctx context.Context, userID, orgID string) (*integration.Credentials, error) {
	if userID == "" || orgID == "" {
		return nil, fmt.Errorf("%w: user_id and org_id are required", integration.ErrInvalidRequest)
	}

	raw, err := c.store.GetDel(ctx, integration.CredentialsKey(providerName, orgID, userID))
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, integration.ErrMissingCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("hubspot: consume credentials: %w", err)
	}

	// An empty object counts as missing. It has already been removed by
	// the consuming read, which is fine since nothing could use it.
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("hubspot: decode credentials: %w", err)
	}
	if len(fields) == 0 {
		return nil, integration.ErrMissingCredentials
	}

	var creds integration.Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return nil, fmt.Errorf("hubspot: decode credentials: %w", err)
	}

	return &creds, nil
}
