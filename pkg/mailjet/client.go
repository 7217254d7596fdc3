package mailjet

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrymomot/mediadigest/pkg/apiclient"
)

// DefaultHost is the public Mailjet API host.
const DefaultHost = "https://api.mailjet.com"

// pageLimit caps REST lookups; the account-scoped collections the workflow
// reads are small enough for one page.
const pageLimit = "1000"

// Config holds API credentials.
type Config struct {
	APIKey    string `env:"MAILJET_API_KEY"`
	SecretKey string `env:"MAILJET_SECRET_KEY"`
	Host      string `env:"MAILJET_HOST" envDefault:"https://api.mailjet.com"`
}

// Client talks to the Mailjet REST and send APIs.
type Client struct {
	api       *apiclient.Client
	apiKey    string
	secretKey string
}

// New creates a Mailjet client.
func New(cfg Config, opts ...apiclient.Option) *Client {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	c := &Client{apiKey: cfg.APIKey, secretKey: cfg.SecretKey}
	opts = append([]apiclient.Option{apiclient.WithAuthenticator(c)}, opts...)
	c.api = apiclient.New(cfg.Host, opts...)
	return c
}

// Authenticate implements apiclient.Authenticator.
func (c *Client) Authenticate(req *http.Request) {
	req.SetBasicAuth(c.apiKey, c.secretKey)
	req.Header.Set("Accept", "application/json")
}

// GetMyProfile returns the account profile. A zero-result lookup is an error.
func (c *Client) GetMyProfile(ctx context.Context) (Profile, error) {
	var resp PagedResponse[Profile]
	if err := c.api.Get(ctx, "/v3/REST/myprofile", nil, &resp); err != nil {
		return Profile{}, err
	}
	if resp.Total == 0 || len(resp.Data) == 0 {
		return Profile{}, ErrProfileNotFound
	}
	return resp.Data[0], nil
}

// GetLists returns the account's contact lists.
func (c *Client) GetLists(ctx context.Context) ([]ContactList, error) {
	var resp PagedResponse[ContactList]
	query := url.Values{"Limit": {pageLimit}}
	if err := c.api.Get(ctx, "/v3/REST/contactslist", query, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetContacts returns the contacts of one list, with contacts flagged
// excluded, opt-in pending, or spam complaining filtered out.
func (c *Client) GetContacts(ctx context.Context, listID int64) ([]Contact, error) {
	var resp PagedResponse[Contact]
	query := url.Values{
		"ContactsList": {strconv.FormatInt(listID, 10)},
		"Limit":        {pageLimit},
	}
	if err := c.api.Get(ctx, "/v3/REST/contact", query, &resp); err != nil {
		return nil, err
	}

	eligible := make([]Contact, 0, len(resp.Data))
	for _, contact := range resp.Data {
		if contact.IsExcludedFromCampaigns || contact.IsOptInPending || contact.IsSpamComplaining {
			continue
		}
		eligible = append(eligible, contact)
	}
	return eligible, nil
}

// GetTemplates returns the account's transactional-purpose templates.
func (c *Client) GetTemplates(ctx context.Context) ([]Template, error) {
	var resp PagedResponse[Template]
	query := url.Values{
		"Purposes":                {"transactional"},
		"PurposesSelectionMethod": {"containsall"},
		"Limit":                   {pageLimit},
	}
	if err := c.api.Get(ctx, "/v3/REST/template", query, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// SendTransactionalEmail submits a send request. Transport failures surface
// as apiclient errors; per-message structured errors in the response body
// surface as ErrSendFailed.
func (c *Client) SendTransactionalEmail(ctx context.Context, opts SendOptions) (*SendResponse, error) {
	var resp SendResponse
	if err := c.api.PostJSON(ctx, "/v3.1/send", opts, &resp); err != nil {
		return nil, err
	}
	for _, msg := range resp.Messages {
		if msg.Status != "success" {
			return &resp, sendError(msg)
		}
	}
	return &resp, nil
}

func sendError(msg MessageResult) error {
	if len(msg.Errors) == 0 {
		return ErrSendFailed
	}
	err := ErrSendFailed
	for _, e := range msg.Errors {
		err = fmt.Errorf("%w: %s", err, e.ErrorMessage)
	}
	return err
}
