package repos

import (
	"errors"
	"sync"
	"time"

	"essenza/internal/cart"
	"essenza/internal/pricing"
)

var ErrOrderNotFound = errors.New("order not found")

// Order is the snapshot taken at checkout: the line items, the
// breakdown actually charged, and the payment token. It never changes
// after Put.
type Order struct {
	ID           string
	SessionID    string
	Customer     string
	Email        string
	Items        []cart.LineItem
	Breakdown    pricing.Breakdown
	PaymentToken string
	CreatedAt    time.Time
}

// OrderStore keeps placed orders in memory for the order-summary and
// history pages. Like the carts, orders do not survive a restart.
type OrderStore struct {
	mu     sync.RWMutex
	orders map[string]Order
	seq    []string // insertion order, newest last
}

func NewOrderStore() *OrderStore {
	return &OrderStore{orders: map[string]Order{}}
}

func (s *OrderStore) Put(o Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.orders[o.ID]; !exists {
		s.seq = append(s.seq, o.ID)
	}
	s.orders[o.ID] = o
}

func (s *OrderStore) Get(id string) (Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return Order{}, ErrOrderNotFound
	}
	return o, nil
}

// ListBySession returns the session's orders, newest first.
func (s *OrderStore) ListBySession(sessionID string) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Order
	for i := len(s.seq) - 1; i >= 0; i-- {
		if o := s.orders[s.seq[i]]; o.SessionID == sessionID {
			out = append(out, o)
		}
	}
	return out
}
