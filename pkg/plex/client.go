package plex

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/dmitrymomot/mediadigest/pkg/apiclient"
)

// Config holds media-server connection settings. Both values are also
// user-editable at runtime and persisted by the application state container;
// env values act as initial defaults.
type Config struct {
	Host  string `env:"PLEX_URL"`
	Token string `env:"PLEX_TOKEN"`
}

// Client talks to one Plex media server.
type Client struct {
	api *apiclient.Client

	mu    sync.RWMutex
	token string
}

// New creates a client for the server at cfg.Host.
func New(cfg Config, opts ...apiclient.Option) *Client {
	c := &Client{token: cfg.Token}
	opts = append([]apiclient.Option{apiclient.WithAuthenticator(c)}, opts...)
	c.api = apiclient.New(cfg.Host, opts...)
	return c
}

// Authenticate implements apiclient.Authenticator.
func (c *Client) Authenticate(req *http.Request) {
	req.Header.Set("X-Plex-Token", c.Token())
	req.Header.Set("Accept", "application/json")
}

// Host returns the current server address.
func (c *Client) Host() string { return c.api.BaseURL() }

// SetHost switches the client to a different server address.
func (c *Client) SetHost(host string) { c.api.SetBaseURL(host) }

// Token returns the current account token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken replaces the account token used on subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// GetServers lists servers reachable through this host.
func (c *Client) GetServers(ctx context.Context) ([]Server, error) {
	var env serversEnvelope
	if err := c.api.Get(ctx, "/servers", nil, &env); err != nil {
		return nil, err
	}
	return env.MediaContainer.Server, nil
}

// GetLibrarySections lists the server's library sections.
func (c *Client) GetLibrarySections(ctx context.Context) ([]Directory, error) {
	var env directoriesEnvelope
	if err := c.api.Get(ctx, "/library/sections", nil, &env); err != nil {
		return nil, err
	}
	return env.MediaContainer.Directory, nil
}

// GetRecentlyAdded lists recently-added items of one library section.
func (c *Client) GetRecentlyAdded(ctx context.Context, sectionKey string) ([]Metadata, error) {
	var env metadataEnvelope
	endpoint := fmt.Sprintf("/library/sections/%s/recentlyAdded", url.PathEscape(sectionKey))
	if err := c.api.Get(ctx, endpoint, nil, &env); err != nil {
		return nil, err
	}
	return env.MediaContainer.Metadata, nil
}

// ImageURL composes an authenticated absolute URL for a server image path
// such as a thumb or art reference.
func (c *Client) ImageURL(path string) string {
	if path == "" {
		return ""
	}
	base, err := url.Parse(c.Host())
	if err != nil || base.Scheme == "" {
		return ""
	}
	ref, err := url.Parse(path)
	if err != nil {
		return ""
	}
	u := base.ResolveReference(ref)
	q := u.Query()
	q.Set("X-Plex-Token", c.Token())
	u.RawQuery = q.Encode()
	return u.String()
}

// TranscodeImageURL composes a transcode-endpoint URL that resizes the image
// at path to the given dimensions server-side. The original authenticated
// image URL travels as a nested query parameter. Opacity is a percentage;
// 100 leaves the image untouched.
func (c *Client) TranscodeImageURL(path string, width, height, opacity int) string {
	source := c.ImageURL(path)
	if source == "" {
		return ""
	}

	base, err := url.Parse(c.Host())
	if err != nil || base.Scheme == "" {
		return ""
	}
	u := base.ResolveReference(&url.URL{Path: "/photo/:/transcode"})

	q := url.Values{}
	q.Set("width", strconv.Itoa(width))
	q.Set("height", strconv.Itoa(height))
	if opacity != 100 {
		q.Set("opacity", strconv.Itoa(opacity))
	}
	q.Set("minSize", "1")
	q.Set("url", source)
	q.Set("X-Plex-Token", c.Token())
	u.RawQuery = q.Encode()
	return u.String()
}
