// Package atlassian is a command-oriented client for Jira Cloud (REST v3
// and Agile 1.0) and Confluence, authenticated with email + API token.
package atlassian

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-workspace-cli/restclient"
)

type Client struct {
	rest *restclient.Client
}

// New builds a client for the given site, e.g.
// "https://your-domain.atlassian.net".
func New(domain, email, apiToken string, log zerolog.Logger) *Client {
	httpClient := &http.Client{Transport: &basicAuthTransport{email: email, token: apiToken}}
	return NewWithHTTPClient(domain, httpClient, log)
}

// NewWithHTTPClient wires an explicit site URL and HTTP client; tests use
// it to point at a fake API server.
func NewWithHTTPClient(domain string, httpClient *http.Client, log zerolog.Logger) *Client {
	return &Client{rest: restclient.New(domain, httpClient, log)}
}

// basicAuthTransport adds the Atlassian basic auth header to every request,
// including absolute-URL requests such as attachment downloads.
type basicAuthTransport struct {
	email string
	token string
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.SetBasicAuth(t.email, t.token)
	return http.DefaultTransport.RoundTrip(clone)
}
