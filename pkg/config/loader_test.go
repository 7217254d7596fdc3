package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mediadigest/pkg/config"
)

type mediaServerConfig struct {
	Host        string   `env:"TEST_PLEX_URL"`
	Token       string   `env:"TEST_PLEX_TOKEN"`
	SectionKeys []string `env:"TEST_SECTION_KEYS" envSeparator:","`
	Subject     string   `env:"TEST_DIGEST_SUBJECT" envDefault:"What's new"`
	Sandbox     bool     `env:"TEST_SANDBOX"`
}

type mailerConfig struct {
	APIKey string `env:"TEST_MAILJET_KEY,required"`
}

func unsetTestEnv() {
	os.Unsetenv("TEST_PLEX_URL")
	os.Unsetenv("TEST_PLEX_TOKEN")
	os.Unsetenv("TEST_SECTION_KEYS")
	os.Unsetenv("TEST_DIGEST_SUBJECT")
	os.Unsetenv("TEST_SANDBOX")
	os.Unsetenv("TEST_MAILJET_KEY")
}

func TestLoad(t *testing.T) {
	unsetTestEnv()
	config.ResetCache()

	t.Setenv("TEST_PLEX_URL", "http://localhost:32400")
	t.Setenv("TEST_PLEX_TOKEN", "token")
	t.Setenv("TEST_SECTION_KEYS", "1,2")

	var cfg mediaServerConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "http://localhost:32400", cfg.Host)
	assert.Equal(t, "token", cfg.Token)
	assert.Equal(t, []string{"1", "2"}, cfg.SectionKeys)
	assert.Equal(t, "What's new", cfg.Subject, "default should apply when the variable is unset")
	assert.False(t, cfg.Sandbox)
}

func TestLoad_Cached(t *testing.T) {
	unsetTestEnv()
	config.ResetCache()

	t.Setenv("TEST_PLEX_URL", "http://first:32400")

	var first mediaServerConfig
	require.NoError(t, config.Load(&first))

	// Changing the environment must not affect the cached copy.
	t.Setenv("TEST_PLEX_URL", "http://second:32400")

	var second mediaServerConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "http://first:32400", second.Host)
}

func TestLoad_NilPointer(t *testing.T) {
	err := config.Load[mediaServerConfig](nil)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

func TestLoad_RequiredMissing(t *testing.T) {
	unsetTestEnv()
	config.ResetCache()

	var cfg mailerConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestForceReloadConfig(t *testing.T) {
	unsetTestEnv()
	config.ResetCache()

	t.Setenv("TEST_MAILJET_KEY", "old-key")

	var cfg mailerConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "old-key", cfg.APIKey)

	t.Setenv("TEST_MAILJET_KEY", "new-key")

	var reloaded mailerConfig
	require.NoError(t, config.ForceReloadConfig(&reloaded))
	assert.Equal(t, "new-key", reloaded.APIKey)
}

func TestLoadEnv(t *testing.T) {
	unsetTestEnv()
	config.ResetCache()

	require.NoError(t, config.LoadEnv("testdata/.env.media"))

	var cfg mediaServerConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "http://plex.local:32400", cfg.Host)
	assert.Equal(t, "abc123", cfg.Token)
	assert.Equal(t, []string{"1", "2", "5"}, cfg.SectionKeys)
	assert.Equal(t, "Recently added", cfg.Subject)
	assert.True(t, cfg.Sandbox)
}

func TestLoadEnv_MultiplePaths(t *testing.T) {
	unsetTestEnv()
	config.ResetCache()

	require.NoError(t, config.LoadEnv("testdata/.env.media", "testdata/.env.override"))

	var cfg mediaServerConfig
	require.NoError(t, config.Load(&cfg))

	// Values from the later file take precedence.
	assert.Equal(t, "http://plex.example.com:32400", cfg.Host)
	assert.Equal(t, "abc123", cfg.Token)

	var mailer mailerConfig
	require.NoError(t, config.Load(&mailer))
	assert.Equal(t, "mj-key", mailer.APIKey)
}

func TestLoadEnv_NonExistentPath(t *testing.T) {
	err := config.LoadEnv("testdata/missing.env")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrLoadingEnvFiles)
}

func TestMustLoadEnv(t *testing.T) {
	assert.NotPanics(t, func() {
		config.MustLoadEnv("testdata/.env.media")
	})

	assert.Panics(t, func() {
		config.MustLoadEnv("testdata/missing.env")
	})
}
