package jmap

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/dmitrymomot/mediadigest/pkg/apiclient"
)

// Config holds mail-server connection settings.
type Config struct {
	Host     string `env:"JMAP_URL"`
	Username string `env:"JMAP_USERNAME"`
	Password string `env:"JMAP_PASSWORD"`
}

// Client talks to a JMAP mail server.
type Client struct {
	api      *apiclient.Client
	username string
	password string

	mu      sync.Mutex
	session *Session
}

// New creates a client for the server at cfg.Host.
func New(cfg Config, opts ...apiclient.Option) *Client {
	c := &Client{username: cfg.Username, password: cfg.Password}
	opts = append([]apiclient.Option{apiclient.WithAuthenticator(c)}, opts...)
	c.api = apiclient.New(cfg.Host, opts...)
	return c
}

// Authenticate implements apiclient.Authenticator.
func (c *Client) Authenticate(req *http.Request) {
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")
}

// GetSession returns the session document, fetching and caching it on first
// use. Pass force to refresh the cached copy.
func (c *Client) GetSession(ctx context.Context, force bool) (*Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != nil && !force {
		return c.session, nil
	}

	var session Session
	if err := c.api.Get(ctx, "/.well-known/jmap", nil, &session); err != nil {
		return nil, err
	}
	c.session = &session
	return c.session, nil
}

// mailAccountID returns the primary account ID for the mail capability.
func (c *Client) mailAccountID(ctx context.Context) (*Session, string, error) {
	session, err := c.GetSession(ctx, false)
	if err != nil {
		return nil, "", err
	}
	accountID, ok := session.PrimaryAccounts[URIMail]
	if !ok || accountID == "" {
		return nil, "", ErrNoMailAccount
	}
	return session, accountID, nil
}

// Call posts a batched method-call request to the session's API URL.
func (c *Client) Call(ctx context.Context, req Request) (*Response, error) {
	session, err := c.GetSession(ctx, false)
	if err != nil {
		return nil, err
	}

	var resp Response
	if err := c.api.PostJSON(ctx, session.APIURL, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetIdentities lists the account's sending identities.
func (c *Client) GetIdentities(ctx context.Context) ([]Identity, error) {
	_, accountID, err := c.mailAccountID(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.Call(ctx, Request{
		Using: []string{URICore, URIMail, URISubmission},
		MethodCalls: []Invocation{
			{Name: "Identity/get", Args: map[string]any{"accountId": accountID}, CallID: "a"},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.MethodResponses) == 0 {
		return nil, ErrUnexpectedResponse
	}

	var args struct {
		List []Identity `json:"list"`
	}
	if err := resp.MethodResponses[0].DecodeArgs(&args); err != nil {
		return nil, err
	}
	return args.List, nil
}

// GetDraftsMailbox returns the ID of the mailbox with the drafts role.
func (c *Client) GetDraftsMailbox(ctx context.Context) (string, error) {
	_, accountID, err := c.mailAccountID(ctx)
	if err != nil {
		return "", err
	}

	resp, err := c.Call(ctx, Request{
		Using: []string{URICore, URIMail},
		MethodCalls: []Invocation{
			{
				Name: "Mailbox/query",
				Args: map[string]any{
					"accountId": accountID,
					"filter":    map[string]string{"role": "drafts"},
				},
				CallID: "a",
			},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.MethodResponses) == 0 {
		return "", ErrUnexpectedResponse
	}

	var args struct {
		IDs []string `json:"ids"`
	}
	if err := resp.MethodResponses[0].DecodeArgs(&args); err != nil {
		return "", err
	}
	if len(args.IDs) == 0 {
		return "", ErrNoDraftsMailbox
	}
	return args.IDs[0], nil
}

// CreateEmails creates the given emails in one batched request, one
// Email/set create per email with call IDs email0, email1, and so on.
func (c *Client) CreateEmails(ctx context.Context, emails ...*Email) (*Response, error) {
	_, accountID, err := c.mailAccountID(ctx)
	if err != nil {
		return nil, err
	}

	calls := make([]Invocation, len(emails))
	for i, email := range emails {
		calls[i] = Invocation{
			Name: "Email/set",
			Args: map[string]any{
				"accountId": accountID,
				"create":    map[string]*Email{"email": email},
			},
			CallID: fmt.Sprintf("email%d", i),
		}
	}

	return c.Call(ctx, Request{
		Using:       []string{URICore, URIMail, URISubmission},
		MethodCalls: calls,
	})
}
