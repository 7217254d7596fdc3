package appstate_test

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mediadigest/pkg/appstate"
	"github.com/dmitrymomot/mediadigest/pkg/digest"
	"github.com/dmitrymomot/mediadigest/pkg/plex"
	"github.com/dmitrymomot/mediadigest/pkg/statestore"
)

// recordingProvider captures the request it was dispatched.
type recordingProvider struct {
	name  string
	calls atomic.Int32
	last  digest.SendRequest
	err   error
}

func (p *recordingProvider) Name() string { return p.name }

func (p *recordingProvider) Send(_ context.Context, req digest.SendRequest) error {
	p.calls.Add(1)
	p.last = req
	if p.err != nil {
		return p.err
	}
	if len(req.Recipients) == 0 {
		return digest.ErrNoRecipients
	}
	return nil
}

func TestSelectedItems(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	server := &fakeServer{
		servers: []plex.Server{{MachineIdentifier: "m1"}},
		recent: map[string][]plex.Metadata{
			"1": {
				{Key: "/m/a", Type: "movie", Title: "A", AddedAt: 300, Thumb: "/t/a"},
				{Key: "/m/b", Type: "movie", Title: "B", AddedAt: 200},
				{Key: "/m/c", Type: "movie", Title: "C", AddedAt: 100},
			},
		},
	}
	state := newState(t, server, digest.NewRegistry())
	require.NoError(t, state.Init(ctx))
	require.NoError(t, state.SetSelectedSectionKeys(ctx, []string{"1"}))

	state.ConnectToServer(ctx)
	state.UpdateRecentlyAdded(ctx)
	require.NoError(t, state.SetSelectedMediaKeys(ctx, []string{"/m/c", "/m/a"}))

	items := state.SelectedItems()
	require.Len(t, items, 2)
	// Recently-added order, not selection order.
	assert.Equal(t, "A", items[0].Title)
	assert.Equal(t, "C", items[1].Title)
	assert.Contains(t, items[0].Href, "m1")
	assert.Contains(t, items[0].PosterURL, "/t/a")
}

func TestSendDigest(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T, provider digest.Provider) *appstate.State {
		t.Helper()
		server := &fakeServer{
			recent: map[string][]plex.Metadata{"1": {{Key: "/m/a", Type: "movie", Title: "A", AddedAt: 1}}},
		}
		state := newState(t, server, digest.NewRegistry(provider))
		require.NoError(t, state.Init(context.Background()))
		return state
	}

	t.Run("dispatches to the named provider", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		provider := &recordingProvider{name: "dev"}
		state := setup(t, provider)
		require.NoError(t, state.SetSelectedSectionKeys(ctx, []string{"1"}))
		state.UpdateRecentlyAdded(ctx)
		require.NoError(t, state.SetSelectedMediaKeys(ctx, []string{"/m/a"}))
		require.NoError(t, state.AddContact(ctx, appstate.Contact{Email: "al@example.com", Active: true}))

		require.NoError(t, state.SendDigest(ctx, "dev", "Recently added", "New this week."))

		assert.Equal(t, int32(1), provider.calls.Load())
		assert.Equal(t, "Recently added", provider.last.Subject)
		assert.Equal(t, "New this week.", provider.last.Intro)
		require.Len(t, provider.last.Items, 1)
		require.Len(t, provider.last.Recipients, 1)
	})

	t.Run("falls back to persisted provider selection", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		provider := &recordingProvider{name: "dev"}
		state := setup(t, provider)
		require.NoError(t, state.SetProvider(ctx, "dev"))
		require.NoError(t, state.AddContact(ctx, appstate.Contact{Email: "al@example.com", Active: true}))

		require.NoError(t, state.SendDigest(ctx, "", "Subject", ""))
		assert.Equal(t, int32(1), provider.calls.Load())
	})

	t.Run("unknown provider", func(t *testing.T) {
		t.Parallel()

		state := setup(t, &recordingProvider{name: "dev"})
		err := state.SendDigest(context.Background(), "missing", "Subject", "")
		assert.ErrorIs(t, err, digest.ErrUnknownProvider)
	})

	t.Run("refresh then send carries the selected items", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		server := &fakeServer{
			servers:  []plex.Server{{MachineIdentifier: "m1"}},
			sections: []plex.Directory{{Key: "1", Title: "Movies"}},
			recent: map[string][]plex.Metadata{
				"1": {{Key: "/m/a", Type: "movie", Title: "A", AddedAt: 1, Thumb: "/t/a"}},
			},
		}
		provider := &recordingProvider{name: "dev"}
		state := newState(t, server, digest.NewRegistry(provider))
		require.NoError(t, state.Init(ctx))
		require.NoError(t, state.SetSelectedSectionKeys(ctx, []string{"1"}))
		require.NoError(t, state.SetSelectedMediaKeys(ctx, []string{"/m/a"}))
		require.NoError(t, state.AddContact(ctx, appstate.Contact{Email: "al@example.com", Active: true}))

		state.ConnectAndRefresh(ctx)
		require.NotEmpty(t, state.RecentlyAdded())

		require.NoError(t, state.SendDigest(ctx, "dev", "Recently added", ""))
		require.Len(t, provider.last.Items, 1)
		assert.Equal(t, "A", provider.last.Items[0].Title)
	})

	t.Run("empty recipients surfaces precondition error", func(t *testing.T) {
		t.Parallel()

		provider := &recordingProvider{name: "dev"}
		state := setup(t, provider)

		err := state.SendDigest(context.Background(), "dev", "Subject", "")
		assert.ErrorIs(t, err, digest.ErrNoRecipients)
	})

	t.Run("send failure logs component and provider", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(slog.NewJSONHandler(&buf, nil))
		store, err := statestore.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
		require.NoError(t, err)

		provider := &recordingProvider{name: "dev"}
		state := appstate.New(store, &fakeServer{}, digest.NewRegistry(provider), appstate.WithLogger(log))
		require.NoError(t, state.Init(context.Background()))

		require.Error(t, state.SendDigest(context.Background(), "dev", "Subject", ""))
		assert.Contains(t, buf.String(), `"component":"appstate"`)
		assert.Contains(t, buf.String(), `"provider":"dev"`)
		assert.Contains(t, buf.String(), `"error"`)
	})
}
