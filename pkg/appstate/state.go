package appstate

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/dmitrymomot/mediadigest/pkg/async"
	"github.com/dmitrymomot/mediadigest/pkg/digest"
	"github.com/dmitrymomot/mediadigest/pkg/logger"
	"github.com/dmitrymomot/mediadigest/pkg/plex"
	"github.com/dmitrymomot/mediadigest/pkg/staleguard"
	"github.com/dmitrymomot/mediadigest/pkg/statestore"
)

// Persisted storage keys. One entry per user-editable setting plus one
// JSON-serialized entry for the contact list.
const (
	keyPlexURL          = "plexUrl"
	keyPlexToken        = "plexToken"
	keySelectedSections = "selectedLibrarySectionsKeys"
	keySelectedMedia    = "selectedMediaKeys"
	keyContacts         = "contacts"
	keyProvider         = "provider"
)

// Guarded operation categories.
const (
	categoryConnect  = "connect-to-server"
	categorySections = "fetch-library-sections"
	categoryRecent   = "fetch-recently-added"
)

// recentLimit caps the merged recently-added list.
const recentLimit = 50

// MediaServer is the server surface the container drives. *plex.Client
// satisfies it.
type MediaServer interface {
	SetHost(host string)
	SetToken(token string)
	GetServers(ctx context.Context) ([]plex.Server, error)
	GetLibrarySections(ctx context.Context) ([]plex.Directory, error)
	GetRecentlyAdded(ctx context.Context, sectionKey string) ([]plex.Metadata, error)
	TranscodeImageURL(path string, width, height, opacity int) string
}

// Contact is one recipient entry of the persisted contact list.
type Contact struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Active bool   `json:"active"`
}

// State is the application state container. Every user-editable field is
// written through to the store on mutation; fetch operations apply their
// results under a last-call-wins guard and degrade to empty collections on
// failure so the application stays usable after partial outages.
type State struct {
	store     statestore.Store
	server    MediaServer
	providers *digest.Registry
	guard     *staleguard.Guard
	log       *slog.Logger

	mu              sync.RWMutex
	plexURL         string
	plexToken       string
	servers         []plex.Server
	librarySections []plex.Directory
	recentlyAdded   []plex.Metadata
	selectedKeys    []string
	selectedMedia   []string
	contacts        []Contact
	provider        string
}

// Option configures a State.
type Option func(*State)

// WithLogger sets the logger orchestration failures are reported to.
func WithLogger(log *slog.Logger) Option {
	return func(s *State) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a state container. Call Init to load persisted settings.
func New(store statestore.Store, server MediaServer, providers *digest.Registry, opts ...Option) *State {
	s := &State{
		store:     store,
		server:    server,
		providers: providers,
		guard:     staleguard.New(),
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("appstate"))
	return s
}

// Init loads persisted settings and pushes connection fields into the media
// server client. Missing keys fall back to zero values.
func (s *State) Init(ctx context.Context) error {
	plexURL, err := statestore.GetOr(ctx, s.store, keyPlexURL, "")
	if err != nil {
		return err
	}
	plexToken, err := statestore.GetOr(ctx, s.store, keyPlexToken, "")
	if err != nil {
		return err
	}
	sections, err := statestore.GetOr(ctx, s.store, keySelectedSections, "")
	if err != nil {
		return err
	}
	media, err := statestore.GetOr(ctx, s.store, keySelectedMedia, "")
	if err != nil {
		return err
	}
	provider, err := statestore.GetOr(ctx, s.store, keyProvider, "")
	if err != nil {
		return err
	}
	rawContacts, err := statestore.GetOr(ctx, s.store, keyContacts, "")
	if err != nil {
		return err
	}

	var contacts []Contact
	if rawContacts != "" {
		if err := json.Unmarshal([]byte(rawContacts), &contacts); err != nil {
			s.log.WarnContext(ctx, "discarding malformed contact list", logger.Error(err))
			contacts = nil
		}
	}

	s.mu.Lock()
	s.plexURL = plexURL
	s.plexToken = plexToken
	s.selectedKeys = splitKeys(sections)
	s.selectedMedia = splitKeys(media)
	s.provider = provider
	s.contacts = contacts
	s.mu.Unlock()

	s.server.SetHost(plexURL)
	s.server.SetToken(plexToken)
	return nil
}

// splitKeys splits a comma-joined key list, dropping empty entries.
func splitKeys(raw string) []string {
	parts := strings.Split(raw, ",")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			keys = append(keys, p)
		}
	}
	return keys
}

// SetPlexURL persists the server address and repoints the client.
func (s *State) SetPlexURL(ctx context.Context, value string) error {
	if err := s.store.Set(ctx, keyPlexURL, value); err != nil {
		return err
	}
	s.mu.Lock()
	s.plexURL = value
	s.mu.Unlock()
	s.server.SetHost(value)
	return nil
}

// SetPlexToken persists the account token and updates the client.
func (s *State) SetPlexToken(ctx context.Context, value string) error {
	if err := s.store.Set(ctx, keyPlexToken, value); err != nil {
		return err
	}
	s.mu.Lock()
	s.plexToken = value
	s.mu.Unlock()
	s.server.SetToken(value)
	return nil
}

func (s *State) PlexURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.plexURL
}

func (s *State) PlexToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.plexToken
}

// SetSelectedSectionKeys persists the library sections the digest draws from.
func (s *State) SetSelectedSectionKeys(ctx context.Context, keys []string) error {
	if err := s.store.Set(ctx, keySelectedSections, strings.Join(keys, ",")); err != nil {
		return err
	}
	s.mu.Lock()
	s.selectedKeys = append([]string(nil), keys...)
	s.mu.Unlock()
	return nil
}

func (s *State) SelectedSectionKeys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.selectedKeys...)
}

// SetSelectedMediaKeys persists the media items picked for the next digest.
func (s *State) SetSelectedMediaKeys(ctx context.Context, keys []string) error {
	if err := s.store.Set(ctx, keySelectedMedia, strings.Join(keys, ",")); err != nil {
		return err
	}
	s.mu.Lock()
	s.selectedMedia = append([]string(nil), keys...)
	s.mu.Unlock()
	return nil
}

func (s *State) SelectedMediaKeys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.selectedMedia...)
}

// SetProvider persists the selected delivery backend name.
func (s *State) SetProvider(ctx context.Context, name string) error {
	if err := s.store.Set(ctx, keyProvider, name); err != nil {
		return err
	}
	s.mu.Lock()
	s.provider = name
	s.mu.Unlock()
	return nil
}

func (s *State) Provider() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.provider
}

// Servers returns the last applied server list.
func (s *State) Servers() []plex.Server {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]plex.Server(nil), s.servers...)
}

// Server returns the first discovered server, or nil before a successful
// connect.
func (s *State) Server() *plex.Server {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.servers) == 0 {
		return nil
	}
	server := s.servers[0]
	return &server
}

// LibrarySections returns the last applied section list.
func (s *State) LibrarySections() []plex.Directory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]plex.Directory(nil), s.librarySections...)
}

// RecentlyAdded returns the last applied recently-added list.
func (s *State) RecentlyAdded() []plex.Metadata {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]plex.Metadata(nil), s.recentlyAdded...)
}

// ConnectToServer discovers servers. Failures are logged and collapse the
// list to empty. The result is applied only while no newer connect has
// started.
func (s *State) ConnectToServer(ctx context.Context) {
	token := s.guard.Begin(categoryConnect)

	servers, err := s.server.GetServers(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "connect to server failed", logger.Error(err))
		servers = nil
	}

	if s.guard.Current(token) {
		s.mu.Lock()
		s.servers = servers
		s.mu.Unlock()
	}
}

// UpdateLibrarySections refreshes the section list under the same guard and
// degradation rules as ConnectToServer.
func (s *State) UpdateLibrarySections(ctx context.Context) {
	token := s.guard.Begin(categorySections)

	sections, err := s.server.GetLibrarySections(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "fetch library sections failed", logger.Error(err))
		sections = nil
	}

	if s.guard.Current(token) {
		s.mu.Lock()
		s.librarySections = sections
		s.mu.Unlock()
	}
}

// UpdateRecentlyAdded fetches every selected section concurrently, merges the
// results sorted by added-at descending and capped at 50 items. Any fetch
// failure collapses the whole list to empty.
func (s *State) UpdateRecentlyAdded(ctx context.Context) {
	token := s.guard.Begin(categoryRecent)

	merged, err := s.fetchRecentlyAdded(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "fetch recently added failed", logger.Error(err))
		merged = nil
	}

	if s.guard.Current(token) {
		s.mu.Lock()
		s.recentlyAdded = merged
		s.mu.Unlock()
	}
}

func (s *State) fetchRecentlyAdded(ctx context.Context) ([]plex.Metadata, error) {
	keys := s.SelectedSectionKeys()

	futures := make([]*async.Future[[]plex.Metadata], len(keys))
	for i, key := range keys {
		futures[i] = async.Run(ctx, func(ctx context.Context) ([]plex.Metadata, error) {
			return s.server.GetRecentlyAdded(ctx, key)
		})
	}

	results, err := async.WaitAll(futures...)
	if err != nil {
		return nil, err
	}

	var merged []plex.Metadata
	for _, metadata := range results {
		merged = append(merged, metadata...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].AddedAt > merged[j].AddedAt
	})
	if len(merged) > recentLimit {
		merged = merged[:recentLimit]
	}
	return merged, nil
}

// ConnectAndRefresh connects and, only when a server was found, refreshes
// the section list and the recently-added media. A failed connect stops the
// chain.
func (s *State) ConnectAndRefresh(ctx context.Context) {
	s.ConnectToServer(ctx)
	if s.Server() == nil {
		return
	}
	s.UpdateLibrarySections(ctx)
	s.UpdateRecentlyAdded(ctx)
}
