// Package authflow implements the interactive OAuth2 authorization-code
// flow used to mint Google Workspace refresh tokens: a single-shot
// localhost callback listener, the login orchestrator, and the token
// exchanger.
package authflow

import "golang.org/x/oauth2"

// Credentials identifies the OAuth2 client on whose behalf the flow runs.
// The values are opaque to this package and never validated locally.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// TokenSet is the provider's token response. Nothing here is persisted;
// storing the refresh token securely is the caller's responsibility.
type TokenSet struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// DefaultScopes grant read-only access to Drive, Calendar, and calendar
// events, which covers every gworkspace command including Meet transcripts.
var DefaultScopes = []string{
	"https://www.googleapis.com/auth/drive.readonly",
	"https://www.googleapis.com/auth/calendar.readonly",
	"https://www.googleapis.com/auth/calendar.events.readonly",
}

// AuthCodeURL builds the provider authorization URL. access_type=offline
// and prompt=consent force the consent screen so a refresh token is
// re-issued even when the user has already granted these scopes.
func AuthCodeURL(creds Credentials, endpoint oauth2.Endpoint, scopes []string, redirectURI string) string {
	cfg := oauthConfig(creds, endpoint, scopes, redirectURI)
	return cfg.AuthCodeURL("",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

func oauthConfig(creds Credentials, endpoint oauth2.Endpoint, scopes []string, redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     endpoint,
		RedirectURL:  redirectURI,
		Scopes:       scopes,
	}
}
