package mjml_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mediadigest/pkg/mjml"
)

func TestNopCompiler(t *testing.T) {
	t.Parallel()

	got, err := mjml.NopCompiler{}.Compile(context.Background(), "<mjml></mjml>")
	require.NoError(t, err)
	assert.Equal(t, "<mjml></mjml>", got)
}

func TestNewAPICompiler_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := mjml.NewAPICompiler(mjml.CompilerConfig{SecretKey: "s"})
	assert.ErrorIs(t, err, mjml.ErrInvalidConfig)

	_, err = mjml.NewAPICompiler(mjml.CompilerConfig{AppID: "a"})
	assert.ErrorIs(t, err, mjml.ErrInvalidConfig)
}

func TestAPICompiler_Compile(t *testing.T) {
	t.Parallel()

	t.Run("posts markup with basic auth", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			require.True(t, ok)
			assert.Equal(t, "app-id", user)
			assert.Equal(t, "secret", pass)
			assert.Equal(t, "/v1/render", r.URL.Path)

			var in struct {
				MJML string `json:"mjml"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, "<mjml></mjml>", in.MJML)

			_ = json.NewEncoder(w).Encode(map[string]string{"html": "<html></html>"})
		}))
		defer srv.Close()

		compiler, err := mjml.NewAPICompiler(mjml.CompilerConfig{
			AppID:     "app-id",
			SecretKey: "secret",
			Endpoint:  srv.URL + "/v1/",
		})
		require.NoError(t, err)

		html, err := compiler.Compile(context.Background(), "<mjml></mjml>")
		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
	})

	t.Run("render errors surface as compile failure", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"html":   "",
				"errors": []map[string]any{{"line": 3, "message": "unknown tag", "tagName": "mj-bogus"}},
			})
		}))
		defer srv.Close()

		compiler, err := mjml.NewAPICompiler(mjml.CompilerConfig{
			AppID:     "a",
			SecretKey: "s",
			Endpoint:  srv.URL + "/v1/",
		})
		require.NoError(t, err)

		_, err = compiler.Compile(context.Background(), "<mjml><mj-bogus/></mjml>")
		require.Error(t, err)
		assert.ErrorIs(t, err, mjml.ErrCompileFailed)
		assert.Contains(t, err.Error(), "unknown tag")
	})
}
