package authflow

import (
	"context"
	"fmt"
	"html"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultPort is the fixed local port registered as part of the OAuth
// client's redirect URI.
const DefaultPort = 8089

const callbackPath = "/callback"

const confirmationPage = `<html><body style="font-family: sans-serif; text-align: center; padding: 50px;">
<h1>Authorization Successful!</h1>
<p>You can close this window and return to the terminal.</p>
</body></html>`

// callbackResult is the one terminal outcome of a listener: an
// authorization code or a denial reason, never both.
type callbackResult struct {
	code   string
	denied string
}

// CallbackListener accepts exactly one OAuth redirect on a local port and
// hands its outcome to Await. Stray requests (favicon probes, malformed
// queries) are answered but do not count as the callback.
type CallbackListener struct {
	port int
	log  zerolog.Logger

	ln      net.Listener
	srv     *http.Server
	once    sync.Once
	results chan callbackResult
}

// NewCallbackListener prepares a listener for the given port. Port 0 binds
// an ephemeral port; RedirectURI reflects the port actually bound.
func NewCallbackListener(port int, log zerolog.Logger) *CallbackListener {
	return &CallbackListener{
		port:    port,
		log:     log,
		results: make(chan callbackResult, 1),
	}
}

// Start binds the local port and begins serving. A port collision (for
// example a second login running concurrently) surfaces as *BindError.
func (l *CallbackListener) Start() error {
	addr := fmt.Sprintf("localhost:%d", l.port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return &BindError{Addr: addr, Err: err}
	}
	l.ln = ln
	l.srv = &http.Server{Handler: http.HandlerFunc(l.handle)}
	go func() {
		if err := l.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			l.log.Debug().Err(err).Msg("callback listener stopped")
		}
	}()
	return nil
}

// RedirectURI returns the redirect URI for the bound listener. Valid only
// after Start.
func (l *CallbackListener) RedirectURI() string {
	return fmt.Sprintf("http://localhost:%d%s", l.Port(), callbackPath)
}

// Port returns the port the listener is bound to.
func (l *CallbackListener) Port() int {
	if l.ln != nil {
		return l.ln.Addr().(*net.TCPAddr).Port
	}
	return l.port
}

// Await blocks until the provider redirect arrives or ctx is cancelled,
// then shuts the listener down. It returns the authorization code, or an
// *AuthorizationError when the provider reported a denial.
func (l *CallbackListener) Await(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		_ = l.Close()
		return "", ctx.Err()
	case res := <-l.results:
		l.shutdown()
		if res.denied != "" {
			return "", &AuthorizationError{Reason: res.denied}
		}
		return res.code, nil
	}
}

// Close tears the listener down without waiting for a result.
func (l *CallbackListener) Close() error {
	if l.srv == nil {
		return nil
	}
	return l.srv.Close()
}

// shutdown stops accepting connections, giving the in-flight response a
// moment to flush to the browser.
func (l *CallbackListener) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := l.srv.Shutdown(ctx); err != nil {
		l.log.Debug().Err(err).Msg("callback listener shutdown")
	}
}

func (l *CallbackListener) handle(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != callbackPath {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	switch {
	case q.Get("code") != "":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, confirmationPage)
		l.deliver(callbackResult{code: q.Get("code")})
	case q.Get("error") != "":
		reason := q.Get("error_description")
		if reason == "" {
			reason = q.Get("error")
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "<html><body><h1>Error</h1><p>%s</p></body></html>", html.EscapeString(reason))
		l.deliver(callbackResult{denied: reason})
	default:
		// Neither code nor error: answer and keep waiting for the real
		// redirect.
		http.Error(w, "missing code or error parameter", http.StatusBadRequest)
	}
}

// deliver publishes the terminal result. At most one result is ever sent,
// even if the browser replays the redirect.
func (l *CallbackListener) deliver(res callbackResult) {
	l.once.Do(func() { l.results <- res })
}
