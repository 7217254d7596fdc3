package digest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/mediadigest/pkg/async"
)

// Image is a downloaded artwork payload.
type Image struct {
	Data        []byte
	ContentType string
}

// ItemImages pairs the poster and background payloads of one digest item.
type ItemImages struct {
	Poster     Image
	Background Image
}

// ImageFetcher downloads artwork for digest packaging. Download failures
// degrade to the transparent placeholder and are only observable through
// logging; a fetch never fails the surrounding send.
type ImageFetcher struct {
	client *http.Client
	log    *slog.Logger
}

// FetcherOption configures an ImageFetcher.
type FetcherOption func(*ImageFetcher)

// WithFetcherClient replaces the HTTP client used for downloads.
func WithFetcherClient(client *http.Client) FetcherOption {
	return func(f *ImageFetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithFetcherLogger sets the logger failures are reported to.
func WithFetcherLogger(log *slog.Logger) FetcherOption {
	return func(f *ImageFetcher) {
		if log != nil {
			f.log = log
		}
	}
}

// NewImageFetcher creates a fetcher with a 30 second download timeout.
func NewImageFetcher(opts ...FetcherOption) *ImageFetcher {
	f := &ImageFetcher{
		client: &http.Client{Timeout: 30 * time.Second},
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads one image, returning the placeholder on any failure.
// An empty URL resolves to the placeholder without a request.
func (f *ImageFetcher) Fetch(ctx context.Context, url string) Image {
	if url == "" {
		return Placeholder()
	}

	img, err := f.fetch(ctx, url)
	if err != nil {
		f.log.WarnContext(ctx, "image download failed, using placeholder",
			slog.String("url", url),
			slog.Any("error", err),
		)
		return Placeholder()
	}
	return img
}

func (f *ImageFetcher) fetch(ctx context.Context, url string) (Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Image{}, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return Image{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Image{}, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Image{}, err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return Image{Data: data, ContentType: contentType}, nil
}

// FetchItemImages downloads poster and background artwork for every item
// concurrently and returns the payloads in item order.
func (f *ImageFetcher) FetchItemImages(ctx context.Context, items []Item) []ItemImages {
	futures := make([]*async.Future[ItemImages], len(items))
	for i, item := range items {
		futures[i] = async.Run(ctx, func(ctx context.Context) (ItemImages, error) {
			poster := async.Run(ctx, func(ctx context.Context) (Image, error) {
				return f.Fetch(ctx, item.PosterURL), nil
			})
			background := async.Run(ctx, func(ctx context.Context) (Image, error) {
				return f.Fetch(ctx, item.BackgroundURL), nil
			})

			p, _ := poster.Await()
			b, _ := background.Await()
			return ItemImages{Poster: p, Background: b}, nil
		})
	}

	images := make([]ItemImages, len(items))
	for i, future := range futures {
		img, err := future.Await()
		if err != nil {
			// Canceled before the work started; degrade like any other failure.
			img = ItemImages{Poster: Placeholder(), Background: Placeholder()}
		}
		images[i] = img
	}
	return images
}
