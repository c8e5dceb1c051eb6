// Package integration holds the provider-agnostic pieces of a third-party
// connector: the records kept in the ephemeral store, the canonical item
// handed downstream and the error taxonomy shared by every connector.
package integration

import (
	"encoding/json"
	"time"
)

// PendingState is the CSRF record kept between authorization and callback.
// The same JSON document is sent to the provider as the OAuth state value.
type PendingState struct {
	State  string `json:"state"`
	UserID string `json:"user_id"`
	OrgID  string `json:"org_id"`
}

// CallbackParams are the query parameters a provider redirects back with.
type CallbackParams struct {
	Code             string
	State            string
	Error            string
	ErrorDescription string
}

// Credentials is the token endpoint response kept byte for byte as the
// provider sent it. AccessToken is read out of it for API calls; every other
// field travels untouched in the raw document.
type Credentials struct {
	AccessToken string
	raw         json.RawMessage
}

// Raw returns the stored document. It is nil for credentials built in code.
func (c Credentials) Raw() json.RawMessage {
	return c.raw
}

// MarshalJSON writes the raw document unchanged, or a minimal
// {"access_token": ...} object when there is none.
func (c Credentials) MarshalJSON() ([]byte, error) {
	if len(c.raw) > 0 {
		return c.raw, nil
	}
	return json.Marshal(struct {
		AccessToken string `json:"access_token"`
	}{c.AccessToken})
}

func (c *Credentials) UnmarshalJSON(b []byte) error {
	var fields struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	c.AccessToken = fields.AccessToken
	c.raw = append(json.RawMessage(nil), b...)
	return nil
}

// Item is the canonical, provider-agnostic form of one external record.
// Name is never empty.
type Item struct {
	ID               string     `json:"id"`
	Type             string     `json:"type,omitempty"`
	Name             string     `json:"name"`
	CreationTime     *time.Time `json:"creation_time,omitempty"`
	LastModifiedTime *time.Time `json:"last_modified_time,omitempty"`
	Visibility       bool       `json:"visibility"`
}
