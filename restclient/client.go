// Package restclient is the thin authenticated HTTP layer shared by the
// workspace and atlassian clients: build the request, stamp a request id,
// decode JSON, surface non-2xx responses verbatim.
package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// APIError is a non-2xx API response. Body is forwarded verbatim (JSON or
// text) so the provider's own diagnostics reach the user.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, bytes.TrimSpace(e.Body))
}

// Client wraps an authenticated *http.Client with a base URL. The caller's
// transport supplies authentication (bearer token source or basic auth).
type Client struct {
	base string
	http *http.Client
	log  zerolog.Logger
}

func New(base string, httpClient *http.Client, log zerolog.Logger) *Client {
	return &Client{base: strings.TrimRight(base, "/"), http: httpClient, log: log}
}

// resolve joins a path to the base URL; absolute URLs pass through
// untouched (Jira attachment content URLs are absolute).
func (c *Client) resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.base + path
}

func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, withQuery(c.resolve(path), query), nil, "", out)
}

func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	r, err := encodeJSON(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, c.resolve(path), r, "application/json", out)
}

func (c *Client) PutJSON(ctx context.Context, path string, body, out any) error {
	r, err := encodeJSON(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, c.resolve(path), r, "application/json", out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, c.resolve(path), nil, "", nil)
}

// Download streams a raw (non-JSON) response body. The caller closes it.
func (c *Client) Download(ctx context.Context, path string, query url.Values) (io.ReadCloser, error) {
	req, err := c.newRequest(ctx, http.MethodGet, withQuery(c.resolve(path), query), nil, "")
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{StatusCode: resp.StatusCode, Body: body}
	}
	return resp.Body, nil
}

// UploadFile posts a single file as multipart/form-data under the given
// field name. Extra headers let Jira's attachment endpoint disable its
// XSRF check.
func (c *Client) UploadFile(ctx context.Context, path, field, filename string, content io.Reader, extra http.Header, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, content); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.resolve(path), &buf, mw.FormDataContentType())
	if err != nil {
		return err
	}
	for k, vs := range extra {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}
	return c.roundTrip(req, out)
}

func (c *Client) do(ctx context.Context, method, url string, body io.Reader, contentType string, out any) error {
	req, err := c.newRequest(ctx, method, url, body, contentType)
	if err != nil {
		return err
	}
	return c.roundTrip(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

func (c *Client) roundTrip(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Str("request_id", req.Header.Get("X-Request-Id")).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: body}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func withQuery(u string, query url.Values) string {
	if len(query) == 0 {
		return u
	}
	return u + "?" + query.Encode()
}

func encodeJSON(body any) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return bytes.NewReader(b), nil
}
