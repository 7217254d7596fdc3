package plex

// Server describes one media server visible to the account.
type Server struct {
	Name              string `json:"name"`
	Host              string `json:"host"`
	Address           string `json:"address"`
	Port              int    `json:"port"`
	MachineIdentifier string `json:"machineIdentifier"`
	Version           string `json:"version"`
}

// Directory describes a library section.
type Directory struct {
	Key      string `json:"key"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Agent    string `json:"agent"`
	Scanner  string `json:"scanner"`
	Language string `json:"language"`
	UUID     string `json:"uuid"`
}

// Tag is a generic tag record (genres, directors, writers share the shape).
type Tag struct {
	Tag string `json:"tag"`
}

// Metadata describes one media item. The type discriminant governs how the
// digest workflow derives display titles and artwork:
//
//	movie    title and artwork come from the item itself
//	episode  title is synthesized from show/season/episode fields, artwork
//	         prefers grandparent then parent then own references
//	other    raw title, blank artwork
type Metadata struct {
	Key              string `json:"key"`
	Type             string `json:"type"`
	Title            string `json:"title"`
	GrandparentTitle string `json:"grandparentTitle,omitempty"`
	ParentTitle      string `json:"parentTitle,omitempty"`
	Index            int    `json:"index,omitempty"`
	ParentIndex      int    `json:"parentIndex,omitempty"`
	Thumb            string `json:"thumb,omitempty"`
	Art              string `json:"art,omitempty"`
	ParentThumb      string `json:"parentThumb,omitempty"`
	GrandparentThumb string `json:"grandparentThumb,omitempty"`
	GrandparentArt   string `json:"grandparentArt,omitempty"`
	AddedAt          int64  `json:"addedAt"`
	Year             int    `json:"year,omitempty"`
	Summary          string `json:"summary,omitempty"`
	Genre            []Tag  `json:"Genre,omitempty"`
}

// Genres returns the item's genre tag values.
func (m Metadata) Genres() []string {
	out := make([]string, len(m.Genre))
	for i, g := range m.Genre {
		out[i] = g.Tag
	}
	return out
}

// Response envelopes. The API wraps every payload in a MediaContainer object.

type serversEnvelope struct {
	MediaContainer struct {
		Size   int      `json:"size"`
		Server []Server `json:"Server"`
	} `json:"MediaContainer"`
}

type directoriesEnvelope struct {
	MediaContainer struct {
		Size      int         `json:"size"`
		Directory []Directory `json:"Directory"`
	} `json:"MediaContainer"`
}

type metadataEnvelope struct {
	MediaContainer struct {
		Size     int        `json:"size"`
		Metadata []Metadata `json:"Metadata"`
	} `json:"MediaContainer"`
}
