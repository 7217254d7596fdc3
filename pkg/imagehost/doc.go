// Package imagehost uploads digest artwork to an external host and returns
// publicly reachable links for embedding in email markup.
//
// Two implementations sit behind the Host interface: ImgurHost uploads
// through the Imgur API (authenticated with a client-identifier header) and
// S3Host stores images in an S3-compatible bucket served from a public base
// URL. The drafts workflow uses whichever is configured; mail clients then
// load the artwork from the hosted links instead of attachments.
package imagehost
