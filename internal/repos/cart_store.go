package repos

import (
	"sync"

	"essenza/internal/cart"
)

// CartStore holds the per-session carts. Nothing is persisted: a cart
// lives exactly as long as the process. The map is guarded because
// Fiber serves sessions concurrently even though each session is a
// single actor.
type CartStore struct {
	mu    sync.RWMutex
	carts map[string]cart.Cart
}

func NewCartStore() *CartStore {
	return &CartStore{carts: map[string]cart.Cart{}}
}

// Get returns the session's cart, or an empty cart for new sessions.
func (s *CartStore) Get(sessionID string) cart.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.carts[sessionID]
}

func (s *CartStore) Put(sessionID string, c cart.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionID] = c
}

// Clear drops the session's cart entirely (successful checkout).
func (s *CartStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}
