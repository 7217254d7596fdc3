package mjml

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrymomot/mediadigest/pkg/apiclient"
)

// Compiler turns rendered MJML markup into final email HTML.
type Compiler interface {
	Compile(ctx context.Context, source string) (string, error)
}

// NopCompiler returns markup unchanged. Used in tests and for backends that
// accept MJML directly.
type NopCompiler struct{}

func (NopCompiler) Compile(_ context.Context, source string) (string, error) {
	return source, nil
}

// CompilerConfig holds credentials for the hosted MJML render API.
type CompilerConfig struct {
	AppID     string `env:"MJML_APP_ID"`
	SecretKey string `env:"MJML_SECRET_KEY"`
	Endpoint  string `env:"MJML_ENDPOINT" envDefault:"https://api.mjml.io/v1/"`
}

// APICompiler compiles markup through the hosted MJML render API using basic
// auth credentials.
type APICompiler struct {
	api *apiclient.Client
}

// NewAPICompiler creates a render-API-backed compiler.
func NewAPICompiler(cfg CompilerConfig, opts ...apiclient.Option) (*APICompiler, error) {
	if cfg.AppID == "" {
		return nil, fmt.Errorf("%w: AppID is required", ErrInvalidConfig)
	}
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("%w: SecretKey is required", ErrInvalidConfig)
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://api.mjml.io/v1/"
	}

	auth := apiclient.AuthenticatorFunc(func(req *http.Request) {
		req.SetBasicAuth(cfg.AppID, cfg.SecretKey)
		req.Header.Set("Accept", "application/json")
	})
	opts = append([]apiclient.Option{apiclient.WithAuthenticator(auth)}, opts...)

	return &APICompiler{api: apiclient.New(cfg.Endpoint, opts...)}, nil
}

type renderRequest struct {
	MJML string `json:"mjml"`
}

type renderError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
	TagName string `json:"tagName"`
}

type renderResponse struct {
	HTML   string        `json:"html"`
	Errors []renderError `json:"errors,omitempty"`
}

// Compile submits the markup for rendering and returns the produced HTML.
func (c *APICompiler) Compile(ctx context.Context, source string) (string, error) {
	var resp renderResponse
	if err := c.api.PostJSON(ctx, "render", renderRequest{MJML: source}, &resp); err != nil {
		return "", errors.Join(ErrCompileFailed, err)
	}
	if len(resp.Errors) > 0 {
		messages := make([]string, len(resp.Errors))
		for i, e := range resp.Errors {
			messages[i] = e.Message
		}
		return "", fmt.Errorf("%w: %s", ErrCompileFailed, strings.Join(messages, "; "))
	}
	return resp.HTML, nil
}
