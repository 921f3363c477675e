package authflow

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/browser"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// Flow drives one end-to-end interactive login: open the consent page,
// capture the redirect on the local listener, exchange the code.
type Flow struct {
	Credentials Credentials
	Endpoint    oauth2.Endpoint
	Scopes      []string
	Port        int
	Out         io.Writer
	Log         zerolog.Logger

	// OpenBrowser overrides the default browser launcher. Launch failures
	// are never fatal; the printed URL remains usable by hand.
	OpenBrowser func(url string) error
}

// Run executes the flow and returns the provider's token set. The caller
// stores the refresh token; nothing is persisted here. Run blocks until
// the redirect arrives or ctx is cancelled.
func (f *Flow) Run(ctx context.Context) (*TokenSet, error) {
	listener := NewCallbackListener(f.Port, f.Log)
	if err := listener.Start(); err != nil {
		return nil, err
	}
	defer listener.Close()

	redirectURI := listener.RedirectURI()
	authURL := AuthCodeURL(f.Credentials, f.Endpoint, NormalizeScopes(f.Scopes), redirectURI)

	fmt.Fprintln(f.Out, "Opening browser for authorization...")
	fmt.Fprintf(f.Out, "If the browser doesn't open, visit:\n%s\n\n", authURL)
	if err := f.openBrowser(authURL); err != nil {
		f.Log.Warn().Err(err).Msg("could not open browser")
	}

	fmt.Fprintln(f.Out, "Waiting for authorization...")
	code, err := listener.Await(ctx)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(f.Out, "Exchanging code for tokens...")
	return NewExchanger(f.Credentials, f.Endpoint).ExchangeCode(ctx, code, redirectURI)
}

func (f *Flow) openBrowser(url string) error {
	if f.OpenBrowser != nil {
		return f.OpenBrowser(url)
	}
	return browser.OpenURL(url)
}

// NormalizeScopes removes duplicates while preserving order, so the
// authorization URL always encodes a scope set.
func NormalizeScopes(scopes []string) []string {
	seen := make(map[string]struct{}, len(scopes))
	out := make([]string, 0, len(scopes))
	for _, s := range scopes {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
