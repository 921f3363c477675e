package authflow

import (
	"context"
	"errors"

	"golang.org/x/oauth2"
)

// Exchanger performs the two stateless token-endpoint operations. Each call
// is a single attempt: no caching, no retry, transport failures propagate
// to the caller unchanged.
type Exchanger struct {
	creds    Credentials
	endpoint oauth2.Endpoint
}

func NewExchanger(creds Credentials, endpoint oauth2.Endpoint) *Exchanger {
	// Client credentials always travel form-encoded in the request body.
	endpoint.AuthStyle = oauth2.AuthStyleInParams
	return &Exchanger{creds: creds, endpoint: endpoint}
}

// ExchangeCode swaps an authorization code for a token set. The redirect
// URI must match the one used in the authorization request.
func (e *Exchanger) ExchangeCode(ctx context.Context, code, redirectURI string) (*TokenSet, error) {
	cfg := oauthConfig(e.creds, e.endpoint, nil, redirectURI)
	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, exchangeError(err)
	}
	return newTokenSet(tok), nil
}

// Refresh mints a fresh access token. Providers typically do not rotate the
// refresh token here, in which case TokenSet.RefreshToken is empty and the
// caller keeps using the original.
func (e *Exchanger) Refresh(ctx context.Context, refreshToken string) (*TokenSet, error) {
	cfg := oauthConfig(e.creds, e.endpoint, nil, "")
	tok, err := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		return nil, exchangeError(err)
	}
	set := newTokenSet(tok)
	// oauth2 echoes the request's refresh token back when the provider does
	// not rotate it; report only tokens the provider actually issued.
	if set.RefreshToken == refreshToken {
		set.RefreshToken = ""
	}
	return set, nil
}

func newTokenSet(tok *oauth2.Token) *TokenSet {
	return &TokenSet{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresIn:    tok.ExpiresIn,
		TokenType:    tok.TokenType,
	}
}

func exchangeError(err error) error {
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		return &TokenExchangeError{StatusCode: rerr.Response.StatusCode, Body: rerr.Body}
	}
	return err
}
