package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// Authenticator injects provider-specific credentials into an outgoing
// request. Each provider client implements its own scheme: Plex uses a token
// header, JMAP and Mailjet use basic auth, Imgur uses a client-identifier
// header.
type Authenticator interface {
	Authenticate(req *http.Request)
}

// AuthenticatorFunc adapts a plain function to the Authenticator interface.
type AuthenticatorFunc func(req *http.Request)

func (f AuthenticatorFunc) Authenticate(req *http.Request) { f(req) }

// Client is the shared request base for all provider clients. It resolves
// relative endpoints against a base URL, applies the provider's
// Authenticator, and decodes JSON response bodies.
//
// The base URL is mutable because the application lets the user change the
// media-server address at runtime; mutation is guarded for safe use from
// watcher callbacks.
type Client struct {
	mu         sync.RWMutex
	baseURL    string
	httpClient *http.Client
	auth       Authenticator
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. Nil clients are ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithAuthenticator sets the credential-injection hook applied to every request.
func WithAuthenticator(auth Authenticator) Option {
	return func(c *Client) { c.auth = auth }
}

// New creates a Client rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the current base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL replaces the base URL. Subsequent requests resolve against the
// new value.
func (c *Client) SetBaseURL(baseURL string) {
	c.mu.Lock()
	c.baseURL = baseURL
	c.mu.Unlock()
}

// resolve turns an endpoint into an absolute URL. Absolute endpoints are used
// verbatim so callers can hit discovered URLs (e.g. a JMAP session's apiUrl);
// relative endpoints resolve against the base URL.
func (c *Client) resolve(endpoint string) (string, error) {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return "", errors.Join(ErrInvalidEndpoint, err)
	}
	if ref.IsAbs() {
		return endpoint, nil
	}

	base, err := url.Parse(c.BaseURL())
	if err != nil || base.Scheme == "" {
		return "", fmt.Errorf("%w: base URL %q", ErrInvalidEndpoint, c.BaseURL())
	}
	return base.ResolveReference(ref).String(), nil
}

// Request is the single primitive all provider calls funnel through. It
// applies the Authenticator, fails with ErrRequestFailed on any non-2xx
// status, and decodes the JSON body into out when out is non-nil.
func (c *Client) Request(ctx context.Context, method, endpoint string, header http.Header, body io.Reader, out any) error {
	target, err := c.resolve(endpoint)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return errors.Join(ErrInvalidEndpoint, err)
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if c.auth != nil {
		c.auth.Authenticate(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Join(ErrRequestFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close on read path

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s", ErrRequestFailed, resp.Status)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Join(ErrDecodeResponse, err)
	}
	return nil
}

// Get issues a GET request with optional query parameters.
func (c *Client) Get(ctx context.Context, endpoint string, query url.Values, out any) error {
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	return c.Request(ctx, http.MethodGet, endpoint, nil, nil, out)
}

// Post issues a POST request with an arbitrary body and content type.
func (c *Client) Post(ctx context.Context, endpoint, contentType string, body io.Reader, out any) error {
	header := http.Header{"Content-Type": {contentType}}
	return c.Request(ctx, http.MethodPost, endpoint, header, body, out)
}

// PostJSON issues a POST request with a JSON-encoded body.
func (c *Client) PostJSON(ctx context.Context, endpoint string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return errors.Join(ErrEncodeRequest, err)
	}
	return c.Post(ctx, endpoint, "application/json", bytes.NewReader(payload), out)
}
