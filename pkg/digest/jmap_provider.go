package digest

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/mediadigest/pkg/async"
	"github.com/dmitrymomot/mediadigest/pkg/imagehost"
	"github.com/dmitrymomot/mediadigest/pkg/jmap"
)

// htmlPartID identifies the single HTML body part of a created draft.
const htmlPartID = "html"

// DraftsClient is the mail-protocol surface the drafts provider needs.
// *jmap.Client satisfies it.
type DraftsClient interface {
	GetIdentities(ctx context.Context) ([]jmap.Identity, error)
	GetDraftsMailbox(ctx context.Context) (string, error)
	CreateEmails(ctx context.Context, emails ...*jmap.Email) (*jmap.Response, error)
}

// DraftsProvider delivers the digest by creating one personalized draft per
// recipient in the mail account's drafts mailbox. Artwork is uploaded to an
// external image host so the drafts reference hosted links instead of
// carrying the payloads.
type DraftsProvider struct {
	client   DraftsClient
	images   imagehost.Host
	fetcher  *ImageFetcher
	composer *Composer
}

// NewDraftsProvider creates a JMAP drafts provider.
func NewDraftsProvider(client DraftsClient, images imagehost.Host, fetcher *ImageFetcher, composer *Composer) *DraftsProvider {
	return &DraftsProvider{
		client:   client,
		images:   images,
		fetcher:  fetcher,
		composer: composer,
	}
}

func (p *DraftsProvider) Name() string { return "jmap-drafts" }

// Send creates the drafts in one batched request.
func (p *DraftsProvider) Send(ctx context.Context, req SendRequest) error {
	if len(req.Recipients) == 0 {
		return ErrNoRecipients
	}

	identities, err := p.client.GetIdentities(ctx)
	if err != nil {
		return err
	}
	if len(identities) == 0 {
		return ErrNoIdentity
	}
	identity := identities[0]

	mailboxID, err := p.client.GetDraftsMailbox(ctx)
	if err != nil {
		return err
	}

	images := p.fetcher.FetchItemImages(ctx, req.Items)
	sources, err := p.uploadImages(ctx, images)
	if err != nil {
		return err
	}

	emails := make([]*jmap.Email, len(req.Recipients))
	for i, recipient := range req.Recipients {
		html, err := p.composer.Render(ctx, req, greetingFor(recipient), sources)
		if err != nil {
			return err
		}

		emails[i] = &jmap.Email{
			MailboxIDs: map[string]bool{mailboxID: true},
			Keywords:   map[string]bool{"$draft": true},
			From: []jmap.EmailAddress{
				{Name: identity.Name, Email: identity.Email},
			},
			To: []jmap.EmailAddress{
				{Name: recipient.Name, Email: recipient.Email},
			},
			Subject: req.Subject,
			BodyValues: map[string]jmap.BodyValue{
				htmlPartID: {Value: html},
			},
			HTMLBody: []jmap.BodyPart{
				{PartID: htmlPartID, Type: "text/html"},
			},
		}
	}

	_, err = p.client.CreateEmails(ctx, emails...)
	return err
}

// uploadImages pushes every payload to the image host concurrently and
// returns the hosted links in item order.
func (p *DraftsProvider) uploadImages(ctx context.Context, images []ItemImages) ([]ItemSources, error) {
	futures := make([]*async.Future[ItemSources], len(images))
	for i, img := range images {
		futures[i] = async.Run(ctx, func(ctx context.Context) (ItemSources, error) {
			poster, err := p.images.Upload(ctx, img.Poster.Data, fmt.Sprintf("media-%d-poster", i))
			if err != nil {
				return ItemSources{}, err
			}
			background, err := p.images.Upload(ctx, img.Background.Data, fmt.Sprintf("media-%d-background", i))
			if err != nil {
				return ItemSources{}, err
			}
			return ItemSources{Poster: poster, Background: background}, nil
		})
	}
	return async.WaitAll(futures...)
}
