package digest

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Contact is one digest recipient.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SendRequest carries everything a provider needs to deliver one digest.
type SendRequest struct {
	Items      []Item
	Recipients []Contact
	Subject    string
	Intro      string
}

// Provider is one interchangeable email delivery backend.
type Provider interface {
	Name() string
	Send(ctx context.Context, req SendRequest) error
}

// Registry holds the configured providers keyed by name.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry creates a registry pre-populated with the given providers.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		r.Register(p)
	}
	return r
}

// Register adds a provider, replacing any previous one with the same name.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	r.providers[p.Name()] = p
	r.mu.Unlock()
}

// Get returns the provider registered under name.
func (r *Registry) Get(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	return p, nil
}

// Names returns the registered provider names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// greetingFor composes the digest salutation. Recipients with a known name
// get a personalized greeting.
func greetingFor(c Contact) string {
	if c.Name == "" {
		return "Hello,"
	}
	return "Hi " + c.Name + ","
}
