package authflow

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// fakeBrowser plays the provider's part: parse the auth URL, then redirect
// the "user" straight back to the listener.
func fakeBrowser(t *testing.T, query string) func(string) error {
	t.Helper()
	return func(authURL string) error {
		u, err := url.Parse(authURL)
		require.NoError(t, err)
		redirectURI := u.Query().Get("redirect_uri")
		require.NotEmpty(t, redirectURI)
		go func() {
			resp, err := http.Get(redirectURI + "?" + query)
			if err == nil {
				resp.Body.Close()
			}
		}()
		return nil
	}
}

func TestFlowRun(t *testing.T) {
	endpoint := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "abc123", r.FormValue("code"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"at","refresh_token":"rt","expires_in":3600,"token_type":"Bearer"}`))
	})

	var out bytes.Buffer
	flow := &Flow{
		Credentials: testCreds(),
		Endpoint:    endpoint,
		Scopes:      DefaultScopes,
		Port:        0,
		Out:         &out,
		Log:         zerolog.Nop(),
		OpenBrowser: fakeBrowser(t, "code=abc123"),
	}

	set, err := flow.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, "at", set.AccessToken)
	require.Equal(t, "rt", set.RefreshToken)

	require.Contains(t, out.String(), "Opening browser for authorization...")
	require.Contains(t, out.String(), "Waiting for authorization...")
	require.Contains(t, out.String(), "Exchanging code for tokens...")
}

func TestFlowRunDenied(t *testing.T) {
	endpoint := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("token endpoint must not be called on denial")
	})

	flow := &Flow{
		Credentials: testCreds(),
		Endpoint:    endpoint,
		Port:        0,
		Out:         &bytes.Buffer{},
		Log:         zerolog.Nop(),
		OpenBrowser: fakeBrowser(t, "error=access_denied&error_description=User+declined"),
	}

	_, err := flow.Run(context.Background())
	var authErr *AuthorizationError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, "User declined", authErr.Reason)
}

func TestFlowRunBrowserFailureIsNotFatal(t *testing.T) {
	endpoint := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"at","expires_in":3600,"token_type":"Bearer"}`))
	})

	authURLs := make(chan string, 1)
	flow := &Flow{
		Credentials: testCreds(),
		Endpoint:    endpoint,
		Port:        0,
		Out:         &bytes.Buffer{},
		Log:         zerolog.Nop(),
		OpenBrowser: func(u string) error {
			authURLs <- u
			return http.ErrHandlerTimeout
		},
	}

	ctx := context.Background()
	done := make(chan error, 1)
	var set *TokenSet
	go func() {
		var err error
		set, err = flow.Run(ctx)
		done <- err
	}()

	// The user follows the printed URL by hand.
	var authURL string
	select {
	case authURL = <-authURLs:
	case <-time.After(time.Second):
		t.Fatal("browser launcher never invoked")
	}
	u, err := url.Parse(authURL)
	require.NoError(t, err)
	resp, err := http.Get(u.Query().Get("redirect_uri") + "?code=manual")
	require.NoError(t, err)
	resp.Body.Close()

	require.NoError(t, <-done)
	require.Equal(t, "at", set.AccessToken)
}
