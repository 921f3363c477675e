package authflow

import (
	"context"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleIssuer is the OIDC issuer whose discovery document names the
// authorization and token endpoints.
const GoogleIssuer = "https://accounts.google.com"

// GoogleEndpoint returns the published Google OAuth2 endpoints. Commands
// that only hit the token endpoint use these directly and skip discovery.
func GoogleEndpoint() oauth2.Endpoint {
	return google.Endpoint
}

// DiscoverEndpoint resolves the provider's OAuth2 endpoints from its OIDC
// discovery document. Discovery is best-effort: when the document cannot
// be fetched the published Google endpoints are used instead.
func DiscoverEndpoint(ctx context.Context, issuer string, log zerolog.Logger) oauth2.Endpoint {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		log.Debug().Err(err).Str("issuer", issuer).Msg("OIDC discovery failed, using published endpoints")
		return google.Endpoint
	}
	return provider.Endpoint()
}
