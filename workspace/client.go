// Package workspace is a read-mostly client for the Google Workspace REST
// APIs used by the CLI: Calendar v3, Drive v3, and the Meet transcripts
// that Drive stores as Google Docs.
package workspace

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/jrsteele09/go-workspace-cli/authflow"
	"github.com/jrsteele09/go-workspace-cli/restclient"
)

const baseURL = "https://www.googleapis.com"

type Client struct {
	rest *restclient.Client
}

// New builds a client whose transport mints access tokens from the refresh
// token on demand. Token endpoint failures surface on the first API call.
func New(ctx context.Context, creds authflow.Credentials, refreshToken string, endpoint oauth2.Endpoint, log zerolog.Logger) *Client {
	cfg := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     endpoint,
	}
	src := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	return NewWithHTTPClient(baseURL, oauth2.NewClient(ctx, src), log)
}

// NewWithHTTPClient wires an explicit base URL and HTTP client; tests use
// it to point at a fake API server.
func NewWithHTTPClient(base string, httpClient *http.Client, log zerolog.Logger) *Client {
	return &Client{rest: restclient.New(base, httpClient, log)}
}
