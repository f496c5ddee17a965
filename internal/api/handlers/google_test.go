package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/dom/meucoracao/internal/api"
	"github.com/dom/meucoracao/internal/api/respond"
	"github.com/dom/meucoracao/internal/domain"
	"github.com/dom/meucoracao/internal/service"
	"github.com/dom/meucoracao/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeGoogle struct {
	profile  service.GoogleProfile
	verifier string
}

func (f *fakeGoogle) AuthCodeURL(state, verifier string) string {
	f.verifier = verifier
	return "https://accounts.example.com/auth?" + url.Values{"state": {state}}.Encode()
}

func (f *fakeGoogle) Exchange(_ context.Context, code, verifier string) (service.GoogleProfile, error) {
	if code != "good-code" || verifier != f.verifier {
		return service.GoogleProfile{}, errors.Join(service.ErrGoogleAuth, errors.New("bad code"))
	}
	return f.profile, nil
}

func newGoogleServer(t *testing.T, google *fakeGoogle) (*testutil.TestServer, *httptest.Server) {
	t.Helper()

	ts := testutil.NewTestServer(t)
	services := *ts.Services
	services.Google = google
	cfg := *ts.Config
	cfg.GoogleSuccessRedirect = "http://app.example.com/login?from=google"

	srv := httptest.NewServer(api.NewRouter(&services, &cfg, zaptest.NewLogger(t)))
	t.Cleanup(srv.Close)
	return ts, srv
}

func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// startGoogle follows /auth/google and returns the state sent to the provider.
func startGoogle(t *testing.T, browser *http.Client, srv *httptest.Server) string {
	t.Helper()

	resp, err := browser.Get(srv.URL + "/auth/google")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)

	location, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "accounts.example.com", location.Host)
	state := location.Query().Get("state")
	require.NotEmpty(t, state)
	return state
}

func TestGoogleAuth_SignIn(t *testing.T) {
	google := &fakeGoogle{profile: service.GoogleProfile{Email: "ana@gmail.com", Name: "Ana Souza"}}
	ts, srv := newGoogleServer(t, google)
	browser := newBrowser(t)

	state := startGoogle(t, browser, srv)

	resp, err := browser.Get(srv.URL + "/auth/google/callback?" + url.Values{"state": {state}, "code": {"good-code"}}.Encode())
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)

	location, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "app.example.com", location.Host)
	assert.Equal(t, "google", location.Query().Get("from"))
	token := location.Query().Get("token")
	require.NotEmpty(t, token)

	req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, srv.URL+"/auth/me", nil, token)
	resp = testutil.Do(t, req)
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	var me domain.PublicUser
	testutil.AssertJSONResponse(t, resp, &me)
	assert.Equal(t, "ana@gmail.com", me.Email)
	assert.Equal(t, "Ana Souza", me.Name)

	loginResp := postJSON(t, ts.URL("/auth/login"), map[string]string{"email": "ana@gmail.com", "password": "whatever"})
	testutil.AssertErrorResponse(t, loginResp, http.StatusBadRequest, respond.CodeInvalidCredentials)
}

func TestGoogleAuth_CallbackRejected(t *testing.T) {
	google := &fakeGoogle{profile: service.GoogleProfile{Email: "ana@gmail.com", Name: "Ana"}}
	_, srv := newGoogleServer(t, google)

	tests := []struct {
		name  string
		start bool
		query func(state string) url.Values
	}{
		{
			name:  "no prior redirect",
			query: func(string) url.Values { return url.Values{"state": {"forged"}, "code": {"good-code"}} },
		},
		{
			name:  "state mismatch",
			start: true,
			query: func(string) url.Values { return url.Values{"state": {"forged"}, "code": {"good-code"}} },
		},
		{
			name:  "consent denied",
			start: true,
			query: func(state string) url.Values { return url.Values{"state": {state}, "error": {"access_denied"}} },
		},
		{
			name:  "bad code",
			start: true,
			query: func(state string) url.Values { return url.Values{"state": {state}, "code": {"bad-code"}} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			browser := newBrowser(t)
			state := ""
			if tt.start {
				state = startGoogle(t, browser, srv)
			}

			resp, err := browser.Get(srv.URL + "/auth/google/callback?" + tt.query(state).Encode())
			require.NoError(t, err)
			defer resp.Body.Close()

			testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, respond.CodeUnauthorized)
		})
	}
}

func TestGoogleAuth_DisabledWithoutCredentials(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp, err := newBrowser(t).Get(ts.URL("/auth/google"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
