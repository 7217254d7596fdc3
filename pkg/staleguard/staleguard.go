package staleguard

import (
	"sync"

	"github.com/google/uuid"
)

// Token is an opaque marker minted for one invocation of a cancellable
// operation category.
type Token struct {
	category string
	id       uuid.UUID
}

// Category returns the operation category the token belongs to.
func (t Token) Category() string { return t.category }

// Guard holds one "last token" slot per operation category and implements
// the last-call-wins write gate: a completion may only be applied to visible
// state while its token still owns the category slot, i.e. no newer
// invocation of the same category has started since.
//
// The guard never cancels in-flight work; it only gates result application.
type Guard struct {
	mu    sync.Mutex
	slots map[string]uuid.UUID
}

// New creates an empty Guard.
func New() *Guard {
	return &Guard{slots: make(map[string]uuid.UUID)}
}

// Begin mints a fresh token for the category and stores it in the category
// slot, superseding any still-in-flight older invocation. Call it before
// starting the asynchronous work.
func (g *Guard) Begin(category string) Token {
	id := uuid.New()

	g.mu.Lock()
	g.slots[category] = id
	g.mu.Unlock()

	return Token{category: category, id: id}
}

// Current reports whether the token still owns its category slot. A false
// result means a newer invocation has started and this completion must be
// discarded.
func (g *Guard) Current(t Token) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.slots[t.category] == t.id
}
