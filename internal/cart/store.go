// Package cart holds per-session shopping cart state. Lines snapshot the
// price captured when they were added; totals are derived on read through
// the pricing package.
package cart

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bazaarika/storefront-service/internal/model"
)

var (
	ErrLineNotFound      = errors.New("cart: line not found")
	ErrInvalidQuantity   = errors.New("cart: quantity must be at least 1")
	ErrInsufficientStock = errors.New("cart: not enough stock")
)

// Store owns every session's cart. Handlers for the same session can race,
// so mutations take the store lock; there is no cross-session sharing.
type Store struct {
	mu    sync.Mutex
	carts map[string][]model.CartLine
}

func NewStore() *Store {
	return &Store{carts: make(map[string][]model.CartLine)}
}

// Lines returns a copy of the session's cart lines in insertion order.
func (s *Store) Lines(sessionID string) []model.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[sessionID]
	out := make([]model.CartLine, len(lines))
	copy(out, lines)
	return out
}

// Add appends the line, or merges quantities when a line with the same
// (productID, variantID) key already exists. The existing line keeps its
// original price snapshot.
func (s *Store) Add(sessionID string, line model.CartLine) error {
	return s.AddWithLimit(sessionID, line, -1)
}

// AddWithLimit is Add with a cap on the line's resulting quantity; a
// negative limit means uncapped. The check and the mutation happen under the
// same lock, so concurrent adds on one session cannot jointly exceed the
// limit.
func (s *Store) AddWithLimit(sessionID string, line model.CartLine, limit int) error {
	if line.Quantity < 1 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].Key() == line.Key() {
			if limit >= 0 && lines[i].Quantity+line.Quantity > limit {
				return fmt.Errorf("%w: %d available", ErrInsufficientStock, limit)
			}
			lines[i].Quantity += line.Quantity
			return nil
		}
	}
	if limit >= 0 && line.Quantity > limit {
		return fmt.Errorf("%w: %d available", ErrInsufficientStock, limit)
	}
	s.carts[sessionID] = append(lines, line)
	return nil
}

// UpdateQuantity sets the line's quantity, flooring at 1. Setting 0 (or
// anything below 1) leaves the line at quantity 1 rather than removing it;
// removal is always an explicit Remove.
func (s *Store) UpdateQuantity(sessionID, key string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].Key() == key {
			lines[i].Quantity = quantity
			return nil
		}
	}
	return ErrLineNotFound
}

// Remove deletes the line entirely regardless of quantity.
func (s *Store) Remove(sessionID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].Key() == key {
			s.carts[sessionID] = append(lines[:i], lines[i+1:]...)
			return nil
		}
	}
	return ErrLineNotFound
}

// Clear empties the session's cart. Called after a successful order for the
// normal cart flow; the buy-now bypass never touches the persistent cart.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}
