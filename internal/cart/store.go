package cart

import (
	"context"

	"ShopCart/internal/catalog"
)

// Store keeps one cart per user. Mutators are total: adding a present id or
// removing an absent one succeeds without changing anything, and the bool
// result reports whether the member set changed.
type Store interface {
	Ping(ctx context.Context) error
	Snapshot(ctx context.Context, userID string) (Snapshot, error)
	Add(ctx context.Context, userID string, p catalog.Product) (bool, error)
	Remove(ctx context.Context, userID, productID string) (bool, error)
	Clear(ctx context.Context, userID string) error
}
