package imagehost

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/dmitrymomot/mediadigest/pkg/apiclient"
)

// ImgurConfig holds Imgur API credentials.
type ImgurConfig struct {
	ClientID string `env:"IMGUR_CLIENT_ID"`
	Host     string `env:"IMGUR_HOST" envDefault:"https://api.imgur.com/3/"`
}

// ImgurHost uploads images through the Imgur API.
type ImgurHost struct {
	api      *apiclient.Client
	clientID string
}

// NewImgurHost creates an Imgur-backed host.
func NewImgurHost(cfg ImgurConfig, opts ...apiclient.Option) (*ImgurHost, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("%w: ClientID is required", ErrInvalidConfig)
	}
	if cfg.Host == "" {
		cfg.Host = "https://api.imgur.com/3/"
	}

	h := &ImgurHost{clientID: cfg.ClientID}
	opts = append([]apiclient.Option{apiclient.WithAuthenticator(h)}, opts...)
	h.api = apiclient.New(cfg.Host, opts...)
	return h, nil
}

// Authenticate implements apiclient.Authenticator.
func (h *ImgurHost) Authenticate(req *http.Request) {
	req.Header.Set("Authorization", "Client-ID "+h.clientID)
}

type imgurImage struct {
	ID         string `json:"id"`
	DeleteHash string `json:"deletehash"`
	Link       string `json:"link"`
	Type       string `json:"type"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
}

type imgurResponse struct {
	Data    imgurImage `json:"data"`
	Success bool       `json:"success"`
	Status  int        `json:"status"`
}

// Upload posts the image as a multipart form and returns the hosted link.
func (h *ImgurHost) Upload(ctx context.Context, image []byte, name string) (string, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	part, err := form.CreateFormFile("image", name)
	if err != nil {
		return "", errors.Join(ErrUploadFailed, err)
	}
	if _, err := part.Write(image); err != nil {
		return "", errors.Join(ErrUploadFailed, err)
	}
	if err := form.WriteField("type", "file"); err != nil {
		return "", errors.Join(ErrUploadFailed, err)
	}
	if err := form.Close(); err != nil {
		return "", errors.Join(ErrUploadFailed, err)
	}

	var resp imgurResponse
	if err := h.api.Post(ctx, "image", form.FormDataContentType(), &body, &resp); err != nil {
		return "", errors.Join(ErrUploadFailed, err)
	}
	if !resp.Success || resp.Data.Link == "" {
		return "", fmt.Errorf("%w: status %d", ErrUploadFailed, resp.Status)
	}
	return resp.Data.Link, nil
}
