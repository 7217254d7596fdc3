package digest

import (
	"context"

	"github.com/dmitrymomot/mediadigest/pkg/mailjet"
)

// TransactionalClient is the send surface the Mailjet providers need.
// *mailjet.Client satisfies it.
type TransactionalClient interface {
	SendTransactionalEmail(ctx context.Context, opts mailjet.SendOptions) (*mailjet.SendResponse, error)
}

// TransactionalProvider delivers the digest as one transactional broadcast.
// Artwork travels inline as base64 data URIs inside the markup, so the
// message is fully self-contained.
type TransactionalProvider struct {
	client   TransactionalClient
	fetcher  *ImageFetcher
	composer *Composer
	from     mailjet.EmailAddress
	sandbox  bool
}

// NewTransactionalProvider creates a Mailjet transactional provider sending
// from the given address.
func NewTransactionalProvider(client TransactionalClient, fetcher *ImageFetcher, composer *Composer, from mailjet.EmailAddress, sandbox bool) *TransactionalProvider {
	return &TransactionalProvider{
		client:   client,
		fetcher:  fetcher,
		composer: composer,
		from:     from,
		sandbox:  sandbox,
	}
}

func (p *TransactionalProvider) Name() string { return "mailjet-transactional" }

// Send renders once with a generic greeting and submits a single message
// addressed to every recipient.
func (p *TransactionalProvider) Send(ctx context.Context, req SendRequest) error {
	if len(req.Recipients) == 0 {
		return ErrNoRecipients
	}

	images := p.fetcher.FetchItemImages(ctx, req.Items)

	html, err := p.composer.Render(ctx, req, greetingFor(Contact{}), dataURISources(images))
	if err != nil {
		return err
	}

	to := make([]mailjet.EmailAddress, len(req.Recipients))
	for i, recipient := range req.Recipients {
		to[i] = mailjet.EmailAddress{Email: recipient.Email, Name: recipient.Name}
	}

	_, err = p.client.SendTransactionalEmail(ctx, mailjet.SendOptions{
		Messages: []mailjet.Message{
			{
				From:     &p.from,
				To:       to,
				Subject:  req.Subject,
				HTMLPart: html,
			},
		},
		SandboxMode: p.sandbox,
	})
	return err
}
