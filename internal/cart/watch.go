package cart

// Watch subscribes fn to cart changes and returns an unsubscribe function.
// fn runs synchronously after each effective mutation with the
// post-mutation snapshot; no-op mutations never fire. There is no
// dependency tracking here: observers get the whole snapshot and derive
// what they need from it.
func (c *Cart) Watch(fn func(Snapshot)) (cancel func()) {
	c.mu.Lock()
	if c.watchers == nil {
		c.watchers = map[int]func(Snapshot){}
	}
	id := c.nextID
	c.nextID++
	c.watchers[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.watchers, id)
		c.mu.Unlock()
	}
}

// notify runs outside the cart lock so a watcher may read the cart.
func notify(fns []func(Snapshot), snap Snapshot) {
	for _, fn := range fns {
		fn(snap)
	}
}
