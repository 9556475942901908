package cart

import (
	"context"
	"sync"

	"ShopCart/internal/catalog"
)

// MemStore keys in-memory carts by user id. Carts are created lazily on
// first touch and synchronize themselves, so the store lock only guards
// the user map.
type MemStore struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func NewMemStore() *MemStore {
	return &MemStore{carts: map[string]*Cart{}}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) cart(userID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[userID]
	if !ok {
		c = New()
		s.carts[userID] = c
	}
	return c
}

func (s *MemStore) Snapshot(ctx context.Context, userID string) (Snapshot, error) {
	return s.cart(userID).Snapshot(), nil
}

func (s *MemStore) Add(ctx context.Context, userID string, p catalog.Product) (bool, error) {
	return s.cart(userID).Add(p), nil
}

func (s *MemStore) Remove(ctx context.Context, userID, productID string) (bool, error) {
	return s.cart(userID).Remove(productID), nil
}

func (s *MemStore) Clear(ctx context.Context, userID string) error {
	s.cart(userID).Clear()
	return nil
}

// Cart exposes the live cart for a user so callers can Watch it. Only the
// in-memory store supports subscriptions; the Postgres store is pull-only.
func (s *MemStore) Cart(userID string) *Cart {
	return s.cart(userID)
}
