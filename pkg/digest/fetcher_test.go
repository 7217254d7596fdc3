package digest_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mediadigest/pkg/digest"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestImageFetcher(t *testing.T) {
	t.Parallel()

	t.Run("downloads image", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("png-bytes"))
		}))
		defer srv.Close()

		fetcher := digest.NewImageFetcher(digest.WithFetcherLogger(discardLogger()))
		img := fetcher.Fetch(context.Background(), srv.URL)

		assert.Equal(t, []byte("png-bytes"), img.Data)
		assert.Equal(t, "image/png", img.ContentType)
	})

	t.Run("server error degrades to placeholder", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		fetcher := digest.NewImageFetcher(digest.WithFetcherLogger(discardLogger()))
		img := fetcher.Fetch(context.Background(), srv.URL)

		assert.Equal(t, digest.Placeholder(), img)
	})

	t.Run("unreachable host degrades to placeholder", func(t *testing.T) {
		t.Parallel()

		fetcher := digest.NewImageFetcher(digest.WithFetcherLogger(discardLogger()))
		img := fetcher.Fetch(context.Background(), "http://127.0.0.1:1/none")

		assert.Equal(t, digest.Placeholder(), img)
	})

	t.Run("empty url skips the request", func(t *testing.T) {
		t.Parallel()

		fetcher := digest.NewImageFetcher(digest.WithFetcherLogger(discardLogger()))
		img := fetcher.Fetch(context.Background(), "")

		assert.Equal(t, digest.Placeholder(), img)
	})

	t.Run("fetches item images in order", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write([]byte("img:" + r.URL.Path))
		}))
		defer srv.Close()

		items := []digest.Item{
			{PosterURL: srv.URL + "/p0", BackgroundURL: srv.URL + "/b0"},
			{PosterURL: srv.URL + "/p1"}, // no background
		}

		fetcher := digest.NewImageFetcher(digest.WithFetcherLogger(discardLogger()))
		images := fetcher.FetchItemImages(context.Background(), items)

		require.Len(t, images, 2)
		assert.Equal(t, []byte("img:/p0"), images[0].Poster.Data)
		assert.Equal(t, []byte("img:/b0"), images[0].Background.Data)
		assert.Equal(t, []byte("img:/p1"), images[1].Poster.Data)
		assert.Equal(t, digest.Placeholder(), images[1].Background)
	})
}

func TestDataURI(t *testing.T) {
	t.Parallel()

	uri := digest.DataURI(digest.Image{Data: []byte{1, 2, 3}, ContentType: "image/png"})
	assert.Equal(t, "data:image/png;base64,AQID", uri)
}
