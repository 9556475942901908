package catalog

import "context"

// Store serves a read-only catalog. List returns products in display order
// (insertion order at load time). Implementations never mutate the catalog
// after initialization.
type Store interface {
	Ping(ctx context.Context) error
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (Product, bool, error)
}
