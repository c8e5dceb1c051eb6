package hubspot

import (
	"context"
	"encoding/json"
	"fmt"

	"integration-service/internal/integration"
	"integration-service/internal/utils"
)

const csrfTokenBytes = 32

// Authorize records a fresh PendingState for (org, user), replacing any
// earlier one, and returns the HubSpot consent URL carrying it.
func (c *Connector) Authorize(ctx context.Context, userID, orgID string) (string, error) {
	if userID == "" || orgID == "" {
		return "", fmt.Errorf("%w: user_id and org_id are required", integration.ErrInvalidRequest)
	}

	token, err := utils.RandomString(csrfTokenBytes)
	if err != nil {
		return "", fmt.Errorf("hubspot: generate csrf token: %w", err)
	}

	encoded, err := json.Marshal(integration.PendingState{
		State:  token,
		UserID: userID,
		OrgID:  orgID,
	})
	if err != nil {
		return "", fmt.Errorf("hubspot: encode state: %w", err)
	}

	key := integration.StateKey(providerName, orgID, userID)
	if err := c.store.Set(ctx, key, encoded, c.stateTTL); err != nil {
		return "", fmt.Errorf("hubspot: save state: %w", err)
	}

	return c.oauthConfig.AuthCodeURL(string(encoded)), nil
}
