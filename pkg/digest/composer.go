package digest

import (
	"context"
	"embed"
	"encoding/base64"

	"github.com/dmitrymomot/mediadigest/pkg/mjml"
)

//go:embed mjml/*.mjml
var fragmentFS embed.FS

// DefaultFragments serves the embedded digest layout fragments.
func DefaultFragments() mjml.FragmentSource {
	return mjml.NewFSSource(fragmentFS)
}

// Fragment names of the embedded digest layout.
const (
	digestFragment = "digest"
	mediaFragment  = "media"
)

// ItemSources carries the markup image references of one item: a hosted URL,
// a base64 data URI, or a cid: URI, depending on the provider's packaging.
type ItemSources struct {
	Poster     string
	Background string
}

// Composer renders the digest template tree into final email HTML.
type Composer struct {
	fragments mjml.FragmentSource
	compiler  mjml.Compiler
}

// ComposerOption configures a Composer.
type ComposerOption func(*Composer)

// WithFragments replaces the embedded fragment source.
func WithFragments(source mjml.FragmentSource) ComposerOption {
	return func(c *Composer) {
		if source != nil {
			c.fragments = source
		}
	}
}

// NewComposer creates a composer that compiles the rendered markup with the
// given compiler. Pass mjml.NopCompiler to skip compilation.
func NewComposer(compiler mjml.Compiler, opts ...ComposerOption) *Composer {
	c := &Composer{
		fragments: DefaultFragments(),
		compiler:  compiler,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Render produces the final digest HTML for one recipient greeting. images
// must line up with req.Items; each entry supplies the markup references the
// provider's packaging produced for that item.
func (c *Composer) Render(ctx context.Context, req SendRequest, greeting string, images []ItemSources) (string, error) {
	if len(images) != len(req.Items) {
		return "", ErrItemImageMismatch
	}

	media := make([]*mjml.Template, len(req.Items))
	for i, item := range req.Items {
		media[i] = mjml.New(c.fragments, mediaFragment, mjml.Variables{
			"title":      item.Title,
			"year":       item.Year,
			"summary":    item.Summary,
			"genres":     item.Genres,
			"href":       item.Href,
			"added":      item.AddedAtLocal(),
			"poster":     images[i].Poster,
			"background": images[i].Background,
		})
	}

	root := mjml.New(c.fragments, digestFragment, mjml.Variables{
		"greeting": greeting,
		"intro":    req.Intro,
		"subject":  req.Subject,
		"media":    media,
	})

	markup, err := root.Render(ctx)
	if err != nil {
		return "", err
	}
	return c.compiler.Compile(ctx, markup)
}

// DataURI encodes an image payload as an inline base64 data URI.
func DataURI(img Image) string {
	return "data:" + img.ContentType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

// dataURISources converts fetched payloads into inline data-URI references.
func dataURISources(images []ItemImages) []ItemSources {
	sources := make([]ItemSources, len(images))
	for i, img := range images {
		sources[i] = ItemSources{
			Poster:     DataURI(img.Poster),
			Background: DataURI(img.Background),
		}
	}
	return sources
}
