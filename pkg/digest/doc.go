// Package digest assembles email digests of recently-added media items and
// delivers them through interchangeable provider backends.
//
// The workflow turns media-server metadata into Item values (title
// synthesis, artwork transcode URLs, deep links), downloads artwork with
// placeholder degradation, renders the embedded MJML layout through
// pkg/mjml, and packages images the way each backend needs them:
//
//   - DraftsProvider (JMAP) uploads artwork to an image host and creates one
//     personalized draft per recipient.
//   - TransactionalProvider (Mailjet) inlines artwork as base64 data URIs
//     and broadcasts a single message.
//   - CampaignProvider (Mailjet) attaches artwork as inline attachments with
//     deterministic content IDs referenced via cid: URIs, one message per
//     recipient sharing a Globals payload.
//   - SenderProvider delivers per-recipient messages through any
//     email.Sender (Postmark or the dev sender).
//
// Every provider refuses an empty recipient set with ErrNoRecipients before
// touching the network. A failed artwork download substitutes a fixed 1x1
// transparent GIF instead of failing the send.
//
// Providers register in a Registry keyed by name, so the application can
// dispatch on the user's configured backend:
//
//	registry := digest.NewRegistry(
//	    digest.NewDraftsProvider(jmapClient, imgur, fetcher, composer),
//	    digest.NewCampaignProvider(mailjetClient, fetcher, composer, from, false),
//	)
//
//	provider, err := registry.Get("jmap-drafts")
//	if err != nil {
//	    return err
//	}
//	return provider.Send(ctx, req)
package digest
