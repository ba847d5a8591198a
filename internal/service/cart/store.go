package cart

import (
	"io"
	"log"
	"sync"

	"shophub/internal/domain"

	"github.com/google/uuid"
)

// Store keeps session-scoped carts in memory. Carts live for a single
// browsing session and are never persisted. All mutations serialize on one
// mutex so interleaved add/update/remove cannot lose updates.
type Store struct {
	mu     sync.Mutex
	carts  map[string][]domain.CartLine
	logger *log.Logger
}

func NewStore(logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Store{carts: make(map[string][]domain.CartLine), logger: logger}
}

// NewSession registers an empty cart and returns its session id.
func (s *Store) NewSession() string {
	id := uuid.NewString()
	s.mu.Lock()
	s.carts[id] = nil
	s.mu.Unlock()
	s.logger.Printf("cart: session created id=%s", id)
	return id
}

// Add puts one unit of the product in the cart. An existing line for the same
// product id gets its quantity incremented; otherwise a new quantity-1 line is
// appended.
func (s *Store) Add(sessionID string, p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].ID == p.ID {
			lines[i].Quantity++
			return
		}
	}
	s.carts[sessionID] = append(lines, domain.CartLine{Product: p, Quantity: 1})
}

// UpdateQuantity sets the quantity of the line with the given product id.
// Quantity zero (or below, callers clamp at zero) removes the line. Absent ids
// are a no-op.
func (s *Store) UpdateQuantity(sessionID, productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].ID != productID {
			continue
		}
		if quantity <= 0 {
			s.carts[sessionID] = append(lines[:i], lines[i+1:]...)
		} else {
			lines[i].Quantity = quantity
		}
		return
	}
}

// Remove deletes the line with the given product id; no-op when absent.
func (s *Store) Remove(sessionID, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].ID == productID {
			s.carts[sessionID] = append(lines[:i], lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart. Checkout calls this once payment is confirmed.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.carts[sessionID]; ok {
		s.carts[sessionID] = nil
	}
}

// Lines returns a copy of the cart lines in insertion order.
func (s *Store) Lines(sessionID string) []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[sessionID]
	out := make([]domain.CartLine, len(lines))
	copy(out, lines)
	return out
}

// Get returns a copy of the whole cart.
func (s *Store) Get(sessionID string) domain.Cart {
	return domain.Cart{SessionID: sessionID, Lines: s.Lines(sessionID)}
}

// SubtotalCents is the current cart subtotal in minor units.
func (s *Store) SubtotalCents(sessionID string) int64 {
	return s.Get(sessionID).SubtotalCents()
}
