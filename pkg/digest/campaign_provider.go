package digest

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/dmitrymomot/mediadigest/pkg/mailjet"
)

// CampaignProvider delivers the digest as a campaign send: artwork is
// attached as named inline attachments with deterministic content IDs and
// referenced from the markup via cid: URIs. The shared content lives in the
// Globals payload; each recipient gets one message entry.
type CampaignProvider struct {
	client   TransactionalClient
	fetcher  *ImageFetcher
	composer *Composer
	from     mailjet.EmailAddress
	sandbox  bool
}

// NewCampaignProvider creates a Mailjet campaign provider sending from the
// given address.
func NewCampaignProvider(client TransactionalClient, fetcher *ImageFetcher, composer *Composer, from mailjet.EmailAddress, sandbox bool) *CampaignProvider {
	return &CampaignProvider{
		client:   client,
		fetcher:  fetcher,
		composer: composer,
		from:     from,
		sandbox:  sandbox,
	}
}

func (p *CampaignProvider) Name() string { return "mailjet-campaign" }

// Send packages artwork as inline attachments and submits one message per
// recipient sharing a single Globals payload.
func (p *CampaignProvider) Send(ctx context.Context, req SendRequest) error {
	if len(req.Recipients) == 0 {
		return ErrNoRecipients
	}

	images := p.fetcher.FetchItemImages(ctx, req.Items)

	attachments := make([]mailjet.InlinedAttachment, 0, 2*len(images))
	sources := make([]ItemSources, len(images))
	for i, img := range images {
		posterCID := fmt.Sprintf("media-%d-poster", i)
		backgroundCID := fmt.Sprintf("media-%d-background", i)

		attachments = append(attachments,
			inlineAttachment(posterCID, img.Poster),
			inlineAttachment(backgroundCID, img.Background),
		)
		sources[i] = ItemSources{
			Poster:     "cid:" + posterCID,
			Background: "cid:" + backgroundCID,
		}
	}

	html, err := p.composer.Render(ctx, req, greetingFor(Contact{}), sources)
	if err != nil {
		return err
	}

	messages := make([]mailjet.Message, len(req.Recipients))
	for i, recipient := range req.Recipients {
		messages[i] = mailjet.Message{
			To: []mailjet.EmailAddress{
				{Email: recipient.Email, Name: recipient.Name},
			},
		}
	}

	_, err = p.client.SendTransactionalEmail(ctx, mailjet.SendOptions{
		Messages: messages,
		Globals: &mailjet.Message{
			From:               &p.from,
			Subject:            req.Subject,
			HTMLPart:           html,
			InlinedAttachments: attachments,
		},
		SandboxMode: p.sandbox,
	})
	return err
}

func inlineAttachment(cid string, img Image) mailjet.InlinedAttachment {
	return mailjet.InlinedAttachment{
		Attachment: mailjet.Attachment{
			Filename:      cid + imageExtension(img.ContentType),
			ContentType:   img.ContentType,
			Base64Content: base64.StdEncoding.EncodeToString(img.Data),
		},
		ContentID: cid,
	}
}

func imageExtension(contentType string) string {
	switch contentType {
	case "image/gif":
		return ".gif"
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".img"
	}
}
