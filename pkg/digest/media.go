package digest

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/mediadigest/pkg/plex"
)

// Target artwork dimensions requested from the media server's transcoder.
const (
	posterWidth  = 300
	posterHeight = 450

	backgroundWidth   = 1200
	backgroundHeight  = 600
	backgroundOpacity = 30
)

// ImageURLComposer composes authenticated, server-side transcoded image URLs.
// *plex.Client satisfies it.
type ImageURLComposer interface {
	TranscodeImageURL(path string, width, height, opacity int) string
}

// Item is one digest entry derived from a media-server metadata record.
type Item struct {
	Key           string
	Title         string
	Year          int
	Summary       string
	Genres        string
	Href          string
	PosterURL     string
	BackgroundURL string
	AddedAt       time.Time
}

// AddedAtISO returns the added-at timestamp in RFC 3339 UTC form.
func (i Item) AddedAtISO() string {
	return i.AddedAt.UTC().Format(time.RFC3339)
}

// AddedAtLocal returns the added-at date in the local time zone.
func (i Item) AddedAtLocal() string {
	return i.AddedAt.Local().Format("1/2/2006")
}

// MediaTitle derives the display title of a metadata record. Episodes are
// synthesized from show, season and episode fields; everything else shows
// its raw title.
func MediaTitle(m plex.Metadata) string {
	switch m.Type {
	case "episode":
		return fmt.Sprintf("%s - S%d E%d: %s", m.GrandparentTitle, m.ParentIndex, m.Index, m.Title)
	default:
		return m.Title
	}
}

// posterPath returns the artwork reference used for the item's poster.
// Episodes prefer show-level artwork over their own thumbnail; unrecognized
// types carry no artwork.
func posterPath(m plex.Metadata) string {
	switch m.Type {
	case "movie":
		return m.Thumb
	case "episode":
		if m.GrandparentThumb != "" {
			return m.GrandparentThumb
		}
		if m.ParentThumb != "" {
			return m.ParentThumb
		}
		return m.Thumb
	default:
		return ""
	}
}

// backgroundPath returns the artwork reference used for the item's backdrop.
func backgroundPath(m plex.Metadata) string {
	switch m.Type {
	case "movie":
		return m.Art
	case "episode":
		if m.GrandparentArt != "" {
			return m.GrandparentArt
		}
		return m.Art
	default:
		return ""
	}
}

// NewItem derives a digest entry from a metadata record. Artwork URLs are
// composed through the transcode endpoint at fixed target dimensions;
// backgrounds are additionally rendered at reduced opacity. The href deep
// links into the Plex web app on the given server.
func NewItem(urls ImageURLComposer, machineID string, m plex.Metadata) Item {
	item := Item{
		Key:     m.Key,
		Title:   MediaTitle(m),
		Year:    m.Year,
		Summary: m.Summary,
		Genres:  strings.Join(m.Genres(), ", "),
		AddedAt: time.Unix(m.AddedAt, 0),
	}

	if machineID != "" {
		q := url.Values{"key": {m.Key}}
		item.Href = "https://app.plex.tv/desktop#!/server/" + machineID + "/details?" + q.Encode()
	}

	if path := posterPath(m); path != "" {
		item.PosterURL = urls.TranscodeImageURL(path, posterWidth, posterHeight, 100)
	}
	if path := backgroundPath(m); path != "" {
		item.BackgroundURL = urls.TranscodeImageURL(path, backgroundWidth, backgroundHeight, backgroundOpacity)
	}
	return item
}

// NewItems derives digest entries for a metadata list, preserving order.
func NewItems(urls ImageURLComposer, machineID string, metadata []plex.Metadata) []Item {
	items := make([]Item, len(metadata))
	for i, m := range metadata {
		items[i] = NewItem(urls, machineID, m)
	}
	return items
}
