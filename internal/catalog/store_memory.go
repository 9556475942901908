package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var ErrDuplicateID = errors.New("duplicate product id")

// MemStore keeps the catalog in memory. Order of the backing slice is the
// display order; the map only serves id lookups.
type MemStore struct {
	mu    sync.RWMutex
	list  []Product
	byID  map[string]Product
	ready bool
}

// NewMemStore builds a store from an already-validated product list.
// Duplicate ids are rejected so the catalog invariant holds from the start.
func NewMemStore(products []Product) (*MemStore, error) {
	s := &MemStore{byID: make(map[string]Product, len(products)), ready: true}
	for _, p := range products {
		if _, dup := s.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
		}
		s.byID[p.ID] = p
		s.list = append(s.list, p)
	}
	return s, nil
}

// NewDemoStore seeds a small fixed catalog for local runs and tests.
func NewDemoStore() *MemStore {
	s, _ := NewMemStore([]Product{
		{ID: "p1", Title: "Keyboard", PriceCents: 4990, Image: "img/keyboard.png"},
		{ID: "p2", Title: "Mouse", PriceCents: 1990, Image: "img/mouse.png"},
		{ID: "p3", Title: "Monitor", PriceCents: 17990, Image: "img/monitor.png"},
		{ID: "p4", Title: "USB Cable", PriceCents: 790, Image: "img/cable.png"},
	})
	return s
}

// NewEmptyStore returns a store with no products that reports not ready.
// Replace fills it once an async load completes.
func NewEmptyStore() *MemStore {
	return &MemStore{byID: map[string]Product{}}
}

func (s *MemStore) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ready {
		return errors.New("catalog not loaded")
	}
	return nil
}

func (s *MemStore) List(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, len(s.list))
	copy(out, s.list)
	return out, nil
}

func (s *MemStore) Get(ctx context.Context, id string) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	return p, ok, nil
}

// Replace swaps in a freshly loaded catalog. Used exactly once per process,
// by the startup loader; the catalog stays read-only afterwards.
func (s *MemStore) Replace(products []Product) error {
	byID := make(map[string]Product, len(products))
	for _, p := range products {
		if _, dup := byID[p.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
		}
		byID[p.ID] = p
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = append([]Product(nil), products...)
	s.byID = byID
	s.ready = true
	return nil
}
