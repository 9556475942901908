package cart_test

import (
	"context"
	"testing"

	"ShopCart/internal/cart"
	"ShopCart/internal/catalog"
)

var (
	keyboard = catalog.Product{ID: "a", Title: "Keyboard", PriceCents: 30}
	monitor  = catalog.Product{ID: "b", Title: "Monitor", PriceCents: 60}
)

func TestCart_AddAndTotals(t *testing.T) {
	c := cart.New()

	if c.Count() != 0 || c.TotalCents() != 0 {
		t.Fatalf("fresh cart: count=%d total=%d", c.Count(), c.TotalCents())
	}

	if !c.Add(keyboard) {
		t.Fatalf("first add must change the cart")
	}
	if !c.Add(monitor) {
		t.Fatalf("second add must change the cart")
	}

	if c.Count() != 2 {
		t.Fatalf("count=%d want=2", c.Count())
	}
	if c.TotalCents() != 90 {
		t.Fatalf("total=%d want=90", c.TotalCents())
	}
}

func TestCart_RemoveAndContains(t *testing.T) {
	c := cart.New()
	c.Add(keyboard)
	c.Add(monitor)

	if !c.Remove("a") {
		t.Fatalf("remove of present id must change the cart")
	}

	if c.Count() != 1 {
		t.Fatalf("count=%d want=1", c.Count())
	}
	if c.TotalCents() != 60 {
		t.Fatalf("total=%d want=60", c.TotalCents())
	}
	if c.Contains("a") {
		t.Fatalf("removed id still reported present")
	}
	if !c.Contains("b") {
		t.Fatalf("surviving id reported absent")
	}
}

func TestCart_AddIdempotent(t *testing.T) {
	c := cart.New()

	if !c.Add(keyboard) {
		t.Fatalf("first add must change the cart")
	}
	if c.Add(keyboard) {
		t.Fatalf("second add of same id must be a no-op")
	}

	if c.Count() != 1 {
		t.Fatalf("count=%d want=1", c.Count())
	}
	if c.TotalCents() != 30 {
		t.Fatalf("total=%d want=30", c.TotalCents())
	}
}

func TestCart_AddSameIDDifferentValueKeepsFirst(t *testing.T) {
	c := cart.New()
	c.Add(keyboard)

	// Same id, different price: membership is decided by id alone and the
	// stored member stays untouched.
	c.Add(catalog.Product{ID: "a", Title: "Fancy Keyboard", PriceCents: 9999})

	snap := c.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("count=%d want=1", snap.Count)
	}
	if snap.Items[0].PriceCents != 30 {
		t.Fatalf("stored member replaced: %#v", snap.Items[0])
	}
}

func TestCart_RemoveAbsentNoop(t *testing.T) {
	c := cart.New()
	c.Add(keyboard)

	if c.Remove("nope") {
		t.Fatalf("remove of absent id must be a no-op")
	}
	if c.Count() != 1 || c.TotalCents() != 30 {
		t.Fatalf("cart changed by no-op remove: count=%d total=%d", c.Count(), c.TotalCents())
	}
}

func TestCart_NoDuplicateIDsAfterMixedOps(t *testing.T) {
	c := cart.New()

	ops := []func(){
		func() { c.Add(keyboard) },
		func() { c.Add(monitor) },
		func() { c.Add(keyboard) },
		func() { c.Remove("b") },
		func() { c.Add(monitor) },
		func() { c.Add(monitor) },
		func() { c.Remove("missing") },
	}
	for _, op := range ops {
		op()
	}

	snap := c.Snapshot()
	seen := map[string]bool{}
	for _, p := range snap.Items {
		if seen[p.ID] {
			t.Fatalf("duplicate id %s in cart", p.ID)
		}
		seen[p.ID] = true
	}
	if snap.Count != 2 || snap.TotalCents != 90 {
		t.Fatalf("count=%d total=%d want 2/90", snap.Count, snap.TotalCents)
	}
}

func TestCart_Clear(t *testing.T) {
	c := cart.New()
	c.Add(keyboard)
	c.Add(monitor)

	if !c.Clear() {
		t.Fatalf("clear of non-empty cart must change it")
	}
	if c.Count() != 0 || c.TotalCents() != 0 {
		t.Fatalf("cart not empty after clear")
	}
	if c.Clear() {
		t.Fatalf("clear of empty cart must be a no-op")
	}
}

func TestCart_SnapshotIsDetached(t *testing.T) {
	c := cart.New()
	c.Add(keyboard)

	snap := c.Snapshot()
	snap.Items[0].PriceCents = 99999

	if c.TotalCents() != 30 {
		t.Fatalf("mutating a snapshot leaked into the cart")
	}
}

func TestCart_StoresByValue(t *testing.T) {
	p := catalog.Product{ID: "x", Title: "Cable", PriceCents: 790}

	c := cart.New()
	c.Add(p)

	p.PriceCents = 1

	if c.TotalCents() != 790 {
		t.Fatalf("caller mutation leaked into the cart: total=%d", c.TotalCents())
	}
}

func TestCart_WatchFiresOnEffectiveMutationOnly(t *testing.T) {
	c := cart.New()

	var calls []cart.Snapshot
	cancel := c.Watch(func(s cart.Snapshot) { calls = append(calls, s) })

	c.Add(keyboard)  // fires
	c.Add(keyboard)  // no-op, silent
	c.Remove("nope") // no-op, silent
	c.Remove("a")    // fires
	c.Clear()        // empty already, silent

	if len(calls) != 2 {
		t.Fatalf("watch fired %d times, want 2", len(calls))
	}
	if calls[0].Count != 1 || calls[0].TotalCents != 30 {
		t.Fatalf("first notification %#v", calls[0])
	}
	if calls[1].Count != 0 || calls[1].TotalCents != 0 {
		t.Fatalf("second notification %#v", calls[1])
	}

	cancel()
	c.Add(monitor)
	if len(calls) != 2 {
		t.Fatalf("watch fired after cancel")
	}
}

func TestCart_WatchMultipleSubscribers(t *testing.T) {
	c := cart.New()

	var a, b int
	cancelA := c.Watch(func(cart.Snapshot) { a++ })
	c.Watch(func(cart.Snapshot) { b++ })

	c.Add(keyboard)
	cancelA()
	c.Add(monitor)

	if a != 1 || b != 2 {
		t.Fatalf("a=%d b=%d want 1/2", a, b)
	}
}

func TestMemStore_IsolatesUsers(t *testing.T) {
	s := cart.NewMemStore()
	ctx := context.Background()

	if _, err := s.Add(ctx, "u1", keyboard); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.Add(ctx, "u2", monitor); err != nil {
		t.Fatalf("add: %v", err)
	}

	s1, err := s.Snapshot(ctx, "u1")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	s2, err := s.Snapshot(ctx, "u2")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	if s1.Count != 1 || s1.Items[0].ID != "a" {
		t.Fatalf("u1 cart %#v", s1)
	}
	if s2.Count != 1 || s2.Items[0].ID != "b" {
		t.Fatalf("u2 cart %#v", s2)
	}

	if err := s.Clear(ctx, "u1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	s2, _ = s.Snapshot(ctx, "u2")
	if s2.Count != 1 {
		t.Fatalf("clearing u1 touched u2: %#v", s2)
	}
}
