package imagehost

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Client is the subset of the S3 API the host uses.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config contains configuration for an S3-compatible image host.
type S3Config struct {
	Bucket      string `env:"S3_BUCKET"`
	Region      string `env:"S3_REGION" envDefault:"auto"`
	AccessKeyID string `env:"S3_ACCESS_KEY_ID"`
	SecretKey   string `env:"S3_SECRET_KEY"`
	Endpoint    string `env:"S3_ENDPOINT"`    // optional, for S3-compatible services
	BaseURL     string `env:"S3_BASE_URL"`    // public URL base the bucket is served from
	KeyPrefix   string `env:"S3_KEY_PREFIX" envDefault:"digest"`
}

// S3Host stores images in an S3-compatible bucket served from a public base
// URL.
type S3Host struct {
	client    S3Client
	bucket    string
	baseURL   string
	keyPrefix string
}

// S3Option configures an S3Host.
type S3Option func(*S3Host)

// WithS3Client sets a custom pre-configured S3 client.
func WithS3Client(client S3Client) S3Option {
	return func(h *S3Host) { h.client = client }
}

// NewS3Host creates an S3-backed host.
func NewS3Host(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Host, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: Bucket is required", ErrInvalidConfig)
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: BaseURL is required", ErrInvalidConfig)
	}

	h := &S3Host{
		bucket:    cfg.Bucket,
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		keyPrefix: strings.Trim(cfg.KeyPrefix, "/"),
	}
	for _, opt := range opts {
		opt(h)
	}

	if h.client == nil {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.Region),
			awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
			),
		)
		if err != nil {
			return nil, errors.Join(ErrInvalidConfig, err)
		}
		h.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
				o.UsePathStyle = true
			}
		})
	}
	return h, nil
}

// Upload stores the image under a unique key and returns its public URL.
func (h *S3Host) Upload(ctx context.Context, image []byte, name string) (string, error) {
	key := uuid.New().String() + "-" + sanitizeObjectName(name)
	if h.keyPrefix != "" {
		key = h.keyPrefix + "/" + key
	}

	contentType := http.DetectContentType(image)
	_, err := h.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(h.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(image),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", errors.Join(ErrUploadFailed, err)
	}
	return h.baseURL + "/" + key, nil
}

func sanitizeObjectName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '-'
		}
	}, name)
	if name == "" || name == "-" {
		name = "image"
	}
	return name
}
