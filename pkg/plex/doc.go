// Package plex is a thin client for the Plex media-server HTTP API covering
// the lookups the digest workflow needs: server discovery, library sections,
// and recently-added items.
//
// Every request carries the account token in the X-Plex-Token header.
// Responses arrive wrapped in a MediaContainer envelope which the client
// unwraps before returning.
//
// The client also composes authenticated image URLs, including server-side
// transcode URLs that resize artwork to fixed dimensions by passing the
// original authenticated image URL as a nested query parameter.
package plex
