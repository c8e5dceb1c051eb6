package integration

import "fmt"

// StateKey addresses the PendingState of one (org, user) for a provider.
func StateKey(provider, orgID, userID string) string {
	return fmt.Sprintf("%s_state:%s:%s", provider, orgID, userID)
}

// CredentialsKey addresses the unconsumed Credentials of one (org, user).
func CredentialsKey(provider, orgID, userID string) string {
	return fmt.Sprintf("%s_credentials:%s:%s", provider, orgID, userID)
}
