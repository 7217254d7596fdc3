package imagehost_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mediadigest/pkg/imagehost"
)

type fakeS3 struct {
	lastInput *s3.PutObjectInput
	err       error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.lastInput = params
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestNewS3Host_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := imagehost.NewS3Host(context.Background(), imagehost.S3Config{BaseURL: "https://img.example.com"})
	assert.ErrorIs(t, err, imagehost.ErrInvalidConfig)

	_, err = imagehost.NewS3Host(context.Background(), imagehost.S3Config{Bucket: "b"})
	assert.ErrorIs(t, err, imagehost.ErrInvalidConfig)
}

func TestS3Host_Upload(t *testing.T) {
	t.Parallel()

	fake := &fakeS3{}
	host, err := imagehost.NewS3Host(context.Background(), imagehost.S3Config{
		Bucket:    "digest-images",
		BaseURL:   "https://img.example.com/",
		KeyPrefix: "digest",
	}, imagehost.WithS3Client(fake))
	require.NoError(t, err)

	link, err := host.Upload(context.Background(), []byte("GIF89a"), "poster one.jpg")
	require.NoError(t, err)

	require.NotNil(t, fake.lastInput)
	assert.Equal(t, "digest-images", *fake.lastInput.Bucket)
	assert.True(t, strings.HasPrefix(*fake.lastInput.Key, "digest/"))
	assert.True(t, strings.HasSuffix(*fake.lastInput.Key, "-poster-one.jpg"))

	body, err := io.ReadAll(fake.lastInput.Body)
	require.NoError(t, err)
	assert.Equal(t, "GIF89a", string(body))

	assert.Equal(t, "https://img.example.com/"+*fake.lastInput.Key, link)
}
