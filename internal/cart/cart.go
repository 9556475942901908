package cart

import (
	"sort"
	"sync"

	"ShopCart/internal/catalog"
)

// Snapshot is an immutable view of a cart at one point in time. Items are
// sorted by product id; member order carries no meaning. Total and count
// are derived from the members, never stored independently.
type Snapshot struct {
	Items      []catalog.Product `json:"items"`
	TotalCents int64             `json:"total_cents"`
	Count      int               `json:"count"`
}

// Cart is a set of products keyed by id. The full product value is stored,
// but only the id drives membership: adding a product whose id is already
// present is a no-op, as is removing an absent id. Mutators report whether
// the member set actually changed.
type Cart struct {
	mu       sync.RWMutex
	items    map[string]catalog.Product
	watchers map[int]func(Snapshot)
	nextID   int
}

func New() *Cart {
	return &Cart{items: map[string]catalog.Product{}}
}

// Add inserts p unless a member already carries its id. Products are stored
// by value, so later mutation of the caller's copy cannot leak in.
func (c *Cart) Add(p catalog.Product) bool {
	c.mu.Lock()
	if _, exists := c.items[p.ID]; exists {
		c.mu.Unlock()
		return false
	}
	c.items[p.ID] = p
	snap, fns := c.snapshotAndWatchersLocked()
	c.mu.Unlock()

	notify(fns, snap)
	return true
}

// Remove drops the member with the given id, if any.
func (c *Cart) Remove(id string) bool {
	c.mu.Lock()
	if _, exists := c.items[id]; !exists {
		c.mu.Unlock()
		return false
	}
	delete(c.items, id)
	snap, fns := c.snapshotAndWatchersLocked()
	c.mu.Unlock()

	notify(fns, snap)
	return true
}

// Clear empties the cart. Used at session end; an already empty cart is
// left untouched and watchers stay quiet.
func (c *Cart) Clear() bool {
	c.mu.Lock()
	if len(c.items) == 0 {
		c.mu.Unlock()
		return false
	}
	c.items = map[string]catalog.Product{}
	snap, fns := c.snapshotAndWatchersLocked()
	c.mu.Unlock()

	notify(fns, snap)
	return true
}

func (c *Cart) Contains(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.items[id]
	return ok
}

func (c *Cart) TotalCents() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return totalOf(c.items)
}

func (c *Cart) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Snapshot derives the current view. The result shares nothing with the
// cart's internal state.
func (c *Cart) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return snapshotOf(c.items)
}

func (c *Cart) snapshotAndWatchersLocked() (Snapshot, []func(Snapshot)) {
	fns := make([]func(Snapshot), 0, len(c.watchers))
	for _, fn := range c.watchers {
		fns = append(fns, fn)
	}
	return snapshotOf(c.items), fns
}

func snapshotOf(items map[string]catalog.Product) Snapshot {
	out := make([]catalog.Product, 0, len(items))
	for _, p := range items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return Snapshot{
		Items:      out,
		TotalCents: totalOf(items),
		Count:      len(items),
	}
}

func totalOf(items map[string]catalog.Product) int64 {
	var total int64
	for _, p := range items {
		total += p.PriceCents
	}
	return total
}
