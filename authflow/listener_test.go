package authflow

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func startListener(t *testing.T) *CallbackListener {
	t.Helper()
	l := NewCallbackListener(0, zerolog.Nop())
	require.NoError(t, l.Start())
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func awaitResult(ctx context.Context, l *CallbackListener) chan struct {
	code string
	err  error
} {
	done := make(chan struct {
		code string
		err  error
	}, 1)
	go func() {
		code, err := l.Await(ctx)
		done <- struct {
			code string
			err  error
		}{code, err}
	}()
	return done
}

func TestCallbackListenerDeliversCode(t *testing.T) {
	l := startListener(t)
	done := awaitResult(context.Background(), l)

	resp, err := http.Get(l.RedirectURI() + "?code=abc123")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	res := <-done
	require.NoError(t, res.err)
	require.Equal(t, "abc123", res.code)
}

func TestCallbackListenerReportsDenial(t *testing.T) {
	l := startListener(t)
	done := awaitResult(context.Background(), l)

	resp, err := http.Get(l.RedirectURI() + "?error=access_denied&error_description=User+said+no")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	res := <-done
	var authErr *AuthorizationError
	require.ErrorAs(t, res.err, &authErr)
	require.Equal(t, "User said no", authErr.Reason)
}

func TestCallbackListenerFallsBackToErrorCode(t *testing.T) {
	l := startListener(t)
	done := awaitResult(context.Background(), l)

	resp, err := http.Get(l.RedirectURI() + "?error=access_denied")
	require.NoError(t, err)
	resp.Body.Close()

	res := <-done
	var authErr *AuthorizationError
	require.ErrorAs(t, res.err, &authErr)
	require.Equal(t, "access_denied", authErr.Reason)
}

func TestCallbackListenerIgnoresStrayRequests(t *testing.T) {
	l := startListener(t)
	done := awaitResult(context.Background(), l)

	base := fmt.Sprintf("http://localhost:%d", l.Port())

	// A favicon probe must not consume the one result.
	resp, err := http.Get(base + "/favicon.ico")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// A callback with neither code nor error keeps the listener waiting.
	resp, err = http.Get(base + "/callback")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	select {
	case res := <-done:
		t.Fatalf("listener resolved early: %+v", res)
	case <-time.After(50 * time.Millisecond):
	}

	resp, err = http.Get(l.RedirectURI() + "?code=late")
	require.NoError(t, err)
	resp.Body.Close()

	res := <-done
	require.NoError(t, res.err)
	require.Equal(t, "late", res.code)
}

func TestCallbackListenerDeliversExactlyOnce(t *testing.T) {
	l := startListener(t)

	// Browser replays the redirect before Await drains the result.
	for _, code := range []string{"first", "second"} {
		resp, err := http.Get(l.RedirectURI() + "?code=" + code)
		require.NoError(t, err)
		resp.Body.Close()
	}

	code, err := l.Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, "first", code)
}

func TestCallbackListenerAwaitHonorsContext(t *testing.T) {
	l := startListener(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := l.Await(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCallbackListenerBindError(t *testing.T) {
	ln, err := net.Listen("tcp", "localhost:0")
	require.NoError(t, err)
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	l := NewCallbackListener(port, zerolog.Nop())
	err = l.Start()
	var bindErr *BindError
	require.ErrorAs(t, err, &bindErr)
	require.Equal(t, fmt.Sprintf("localhost:%d", port), bindErr.Addr)
}
