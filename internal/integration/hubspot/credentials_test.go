package hubspot

import (
	"context"
	"sync"
	"testing"

	"integration-service/internal/integration"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentials(t *testing.T) {
	tests := []struct {
		name    string
		stored  string
		wantErr error
		want    string
	}{
		{name: "present", stored: `{"access_token":"at","refresh_token":"rt","hub_id":42}`, want: "at"},
		{name: "absent", wantErr: integration.ErrMissingCredentials},
		{name: "empty-object", stored: `{}`, wantErr: integration.ErrMissingCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert, require := assert.New(t), require.New(t)
			c, mr := testConnector(t, newFakeHubSpot(t))
			if tt.stored != "" {
				require.NoError(mr.Set("hubspot_credentials:org1:user1", tt.stored))
			}

			got, err := c.Credentials(context.Background(), "user1", "org1")
			if tt.wantErr != nil {
				assert.ErrorIs(err, tt.wantErr)
				assert.Nil(got)
			} else {
				require.NoError(err)
				assert.Equal(tt.want, got.AccessToken)
				assert.Equal(tt.stored, string(got.Raw()))
			}
			assert.False(mr.Exists("hubspot_credentials:org1:user1"))
		})
	}
}

func TestCredentials_Corrupt(t *testing.T) {
	c, mr := testConnector(t, newFakeHubSpot(t))
	require.NoError(t, mr.Set("hubspot_credentials:org1:user1", "{not json"))

	_, err := c.Credentials(context.Background(), "user1", "org1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, integration.ErrMissingCredentials)
}

func TestCredentials_InvalidRequest(t *testing.T) {
	c, _ := testConnector(t, newFakeHubSpot(t))
	_, err := c.Credentials(context.Background(), "", "org1")
	assert.ErrorIs(t, err, integration.ErrInvalidRequest)
}

func TestCredentials_ConsumedOnce(t *testing.T) {
	require := require.New(t)
	c, mr := testConnector(t, newFakeHubSpot(t))
	require.NoError(mr.Set("hubspot_credentials:org1:user1", `{"access_token":"at"}`))

	const callers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		got     int
		missing int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Credentials(context.Background(), "user1", "org1")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				got++
			case assert.ErrorIs(t, err, integration.ErrMissingCredentials):
				missing++
			}
		}()
	}
	wg.Wait()
	require.Equal(1, got)
	require.Equal(callers-1, missing)
}
