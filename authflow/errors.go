package authflow

import "fmt"

// BindError reports that the local redirect port could not be bound. The
// port is part of the client's registered redirect URI, so a collision is
// an environment problem the user has to resolve; there is no retry.
type BindError struct {
	Addr string
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("bind %s: %v", e.Addr, e.Err)
}

func (e *BindError) Unwrap() error { return e.Err }

// AuthorizationError is produced when the provider redirects back with an
// error parameter instead of an authorization code (for example the user
// clicked "Deny"). Reason carries error_description when the provider sent
// one, otherwise the raw error code.
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("authorization failed: %s", e.Reason)
}

// TokenExchangeError is a non-2xx response from the token endpoint. Body is
// the provider's response verbatim (JSON or text) for diagnosis.
type TokenExchangeError struct {
	StatusCode int
	Body       []byte
}

func (e *TokenExchangeError) Error() string {
	return fmt.Sprintf("token endpoint returned %d: %s", e.StatusCode, e.Body)
}
