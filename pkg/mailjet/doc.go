// Package mailjet is a thin client for the Mailjet REST and send APIs
// covering the calls the digest workflow needs: profile lookup, contact
// lists, contacts, transactional templates, and sending.
//
// REST lookups return paged envelopes (Count/Total/Data); the client unwraps
// them. Contacts flagged as excluded from campaigns, opt-in pending, or spam
// complaining are filtered out before being returned.
//
// Send payloads support both inline data-URI images (transactional class)
// and named inline attachments referenced from the body via cid: URIs
// (campaign class, with a shared Globals part plus one message per
// recipient).
package mailjet
