package digest

import (
	"context"

	"github.com/dmitrymomot/mediadigest/pkg/email"
)

// SenderProvider delivers the digest through any email.Sender, one
// personalized message per recipient with inline data-URI artwork. It backs
// the Postmark and local development delivery paths.
type SenderProvider struct {
	name     string
	sender   email.Sender
	fetcher  *ImageFetcher
	composer *Composer
	tag      string
}

// NewSenderProvider creates a provider registered under the given name.
func NewSenderProvider(name string, sender email.Sender, fetcher *ImageFetcher, composer *Composer, tag string) *SenderProvider {
	return &SenderProvider{
		name:     name,
		sender:   sender,
		fetcher:  fetcher,
		composer: composer,
		tag:      tag,
	}
}

func (p *SenderProvider) Name() string { return p.name }

// Send renders and delivers one message per recipient.
func (p *SenderProvider) Send(ctx context.Context, req SendRequest) error {
	if len(req.Recipients) == 0 {
		return ErrNoRecipients
	}

	sources := dataURISources(p.fetcher.FetchItemImages(ctx, req.Items))

	for _, recipient := range req.Recipients {
		html, err := p.composer.Render(ctx, req, greetingFor(recipient), sources)
		if err != nil {
			return err
		}

		err = p.sender.Send(ctx, email.Message{
			To:      recipient.Email,
			Subject: req.Subject,
			HTML:    html,
			Tag:     p.tag,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
