package hubspot

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"integration-service/internal/kvstore"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

const (
	testClientID     = "test-client-id"
	testClientSecret = "test-client-secret"
	testRedirectURL  = "http://localhost:8000/integrations/hubspot/oauth2callback"
)

// fakeHubSpot serves the token and contacts endpoints.
type fakeHubSpot struct {
	srv *httptest.Server

	mu          sync.Mutex
	tokenStatus int
	tokenBody   string
	listStatus  int
	listBody    string
	tokenForms  []url.Values
	listQueries []url.Values
	authHeaders []string
}

func newFakeHubSpot(t *testing.T) *fakeHubSpot {
	t.Helper()
	f := &fakeHubSpot{
		tokenStatus: http.StatusOK,
		tokenBody:   `{"access_token":"at-1","refresh_token":"rt-1","token_type":"bearer","expires_in":1800}`,
		listStatus:  http.StatusOK,
		listBody:    `{"results":[]}`,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.tokenForms = append(f.tokenForms, r.PostForm)
		status, body := f.tokenStatus, f.tokenBody
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
	mux.HandleFunc("/crm/v3/objects/contacts", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.listQueries = append(f.listQueries, r.URL.Query())
		f.authHeaders = append(f.authHeaders, r.Header.Get("Authorization"))
		status, body := f.listStatus, f.listBody
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeHubSpot) setToken(status int, body string) {
	f.mu.Lock()
	f.tokenStatus, f.tokenBody = status, body
	f.mu.Unlock()
}

func (f *fakeHubSpot) setList(status int, body string) {
	f.mu.Lock()
	f.listStatus, f.listBody = status, body
	f.mu.Unlock()
}

func (f *fakeHubSpot) listCalls() ([]url.Values, []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]url.Values(nil), f.listQueries...), append([]string(nil), f.authHeaders...)
}

func (f *fakeHubSpot) tokenCalls() []url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]url.Values(nil), f.tokenForms...)
}

func testConnector(t *testing.T, f *fakeHubSpot) (*Connector, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	c, err := New(Config{
		ClientID:       testClientID,
		ClientSecret:   testClientSecret,
		RedirectURL:    testRedirectURL,
		AuthURL:        "https://app.hubspot.test/oauth/authorize",
		TokenURL:       f.srv.URL + "/oauth/v1/token",
		APIBaseURL:     f.srv.URL,
		StateTTL:       600 * time.Second,
		CredentialsTTL: 600 * time.Second,
		HTTPClient:     f.srv.Client(),
	}, kvstore.NewRedisStore(client))
	require.NoError(t, err)
	return c, mr
}
