package email_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mediadigest/pkg/email"
)

func TestMessageValidate(t *testing.T) {
	t.Parallel()

	valid := email.Message{
		To:      "user@example.com",
		Subject: "Recently added",
		HTML:    "<p>hi</p>",
	}

	t.Run("valid message", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, valid.Validate())
	})

	t.Run("missing recipient", func(t *testing.T) {
		t.Parallel()
		msg := valid
		msg.To = ""
		assert.ErrorIs(t, msg.Validate(), email.ErrInvalidMessage)
	})

	t.Run("malformed recipient", func(t *testing.T) {
		t.Parallel()
		msg := valid
		msg.To = "not-an-address"
		assert.ErrorIs(t, msg.Validate(), email.ErrInvalidMessage)
	})

	t.Run("missing subject", func(t *testing.T) {
		t.Parallel()
		msg := valid
		msg.Subject = ""
		assert.ErrorIs(t, msg.Validate(), email.ErrInvalidMessage)
	})

	t.Run("missing body", func(t *testing.T) {
		t.Parallel()
		msg := valid
		msg.HTML = ""
		assert.ErrorIs(t, msg.Validate(), email.ErrInvalidMessage)
	})
}

func TestDevSender(t *testing.T) {
	t.Parallel()

	t.Run("writes html and metadata", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sender := email.NewDevSender(dir)

		err := sender.Send(context.Background(), email.Message{
			To:      "user@example.com",
			Subject: "What's New This Week",
			HTML:    "<html><body>digest</body></html>",
			Tag:     "media-digest",
		})
		require.NoError(t, err)

		htmlFiles, err := filepath.Glob(filepath.Join(dir, "*.html"))
		require.NoError(t, err)
		require.Len(t, htmlFiles, 1)
		assert.Contains(t, filepath.Base(htmlFiles[0]), "media-digest")

		content, err := os.ReadFile(htmlFiles[0])
		require.NoError(t, err)
		assert.Equal(t, "<html><body>digest</body></html>", string(content))

		jsonFiles, err := filepath.Glob(filepath.Join(dir, "*.json"))
		require.NoError(t, err)
		require.Len(t, jsonFiles, 1)

		raw, err := os.ReadFile(jsonFiles[0])
		require.NoError(t, err)
		var meta map[string]any
		require.NoError(t, json.Unmarshal(raw, &meta))
		assert.Equal(t, "user@example.com", meta["to"])
		assert.Equal(t, "What's New This Week", meta["subject"])
		assert.Equal(t, "media-digest", meta["tag"])
	})

	t.Run("falls back to subject for filename", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sender := email.NewDevSender(dir)

		err := sender.Send(context.Background(), email.Message{
			To:      "user@example.com",
			Subject: "Weekly Digest!",
			HTML:    "<p>hi</p>",
		})
		require.NoError(t, err)

		htmlFiles, err := filepath.Glob(filepath.Join(dir, "*.html"))
		require.NoError(t, err)
		require.Len(t, htmlFiles, 1)
		assert.Contains(t, filepath.Base(htmlFiles[0]), "weekly_digest")
	})

	t.Run("rejects invalid message", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sender := email.NewDevSender(dir)

		err := sender.Send(context.Background(), email.Message{To: "user@example.com"})
		require.ErrorIs(t, err, email.ErrInvalidMessage)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
