package digest_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mediadigest/pkg/digest"
	"github.com/dmitrymomot/mediadigest/pkg/mjml"
)

// testFragments keeps rendered output small and assertable.
func testFragments() mjml.FragmentSource {
	fragments := map[string]string{
		"digest": "{{ greeting }}|{{ intro }}|{!! media !!}",
		"media":  "[{{ title }};{{ poster }};{{ background }}]",
	}
	return mjml.FragmentSourceFunc(func(_ context.Context, name string) (string, error) {
		content, ok := fragments[name]
		if !ok {
			return "", fmt.Errorf("%w: %s", mjml.ErrFragmentNotFound, name)
		}
		return content, nil
	})
}

func testComposer() *digest.Composer {
	return digest.NewComposer(mjml.NopCompiler{}, digest.WithFragments(testFragments()))
}

func TestComposerRender(t *testing.T) {
	t.Parallel()

	t.Run("renders items into the layout", func(t *testing.T) {
		t.Parallel()

		req := digest.SendRequest{
			Items: []digest.Item{
				{Title: "Arrival"},
				{Title: "Dune"},
			},
			Intro: "Fresh on the server",
		}
		sources := []digest.ItemSources{
			{Poster: "cid:p0", Background: "cid:b0"},
			{Poster: "cid:p1", Background: "cid:b1"},
		}

		html, err := testComposer().Render(context.Background(), req, "Hi Al,", sources)
		require.NoError(t, err)

		assert.Equal(t,
			"Hi Al,|Fresh on the server|[Arrival;cid:p0;cid:b0]\n[Dune;cid:p1;cid:b1]",
			html)
	})

	t.Run("escapes item text", func(t *testing.T) {
		t.Parallel()

		req := digest.SendRequest{
			Items: []digest.Item{{Title: "Fast & Furious"}},
		}
		sources := []digest.ItemSources{{}}

		html, err := testComposer().Render(context.Background(), req, "Hello,", sources)
		require.NoError(t, err)
		assert.Contains(t, html, "Fast &amp; Furious")
	})

	t.Run("rejects mismatched image set", func(t *testing.T) {
		t.Parallel()

		req := digest.SendRequest{Items: []digest.Item{{Title: "X"}}}
		_, err := testComposer().Render(context.Background(), req, "Hello,", nil)
		assert.ErrorIs(t, err, digest.ErrItemImageMismatch)
	})

	t.Run("default fragments render", func(t *testing.T) {
		t.Parallel()

		composer := digest.NewComposer(mjml.NopCompiler{})
		req := digest.SendRequest{
			Items:   []digest.Item{{Title: "Arrival", Year: 2016, Genres: "Drama"}},
			Subject: "Recently added",
			Intro:   "Take a look.",
		}
		sources := []digest.ItemSources{{Poster: "https://img/p", Background: "https://img/b"}}

		markup, err := composer.Render(context.Background(), req, "Hello,", sources)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(strings.TrimSpace(markup), "<mjml>"))
		assert.Contains(t, markup, "Arrival")
		assert.Contains(t, markup, "https://img/p")
		assert.Contains(t, markup, "https://img/b")
		assert.Contains(t, markup, "Hello,")
	})
}
