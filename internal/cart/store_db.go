package cart

import (
	"context"
	"database/sql"
	"time"

	"ShopCart/internal/catalog"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

// PostgresStore persists carts in cart_items with primary key
// (user_id, product_id). Add relies on ON CONFLICT DO NOTHING, so the
// no-duplicate invariant and add idempotence are enforced by the schema
// even across concurrent requests.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresStore) Snapshot(ctx context.Context, userID string) (Snapshot, error) {
	var items []catalog.Product

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT product_id, title, price_cents, image
			FROM cart_items
			WHERE user_id = $1
			ORDER BY product_id ASC
		`, userID)
		if err != nil {
			return err
		}
		defer rows.Close()

		items = make([]catalog.Product, 0, 8)
		for rows.Next() {
			var p catalog.Product
			if err := rows.Scan(&p.ID, &p.Title, &p.PriceCents, &p.Image); err != nil {
				return err
			}
			items = append(items, p)
		}
		return rows.Err()
	})
	if err != nil {
		return Snapshot{}, err
	}

	var total int64
	for _, p := range items {
		total += p.PriceCents
	}

	return Snapshot{Items: items, TotalCents: total, Count: len(items)}, nil
}

func (s *PostgresStore) Add(ctx context.Context, userID string, p catalog.Product) (bool, error) {
	var added bool

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		res, err := s.db.ExecContext(ctx, `
			INSERT INTO cart_items (user_id, product_id, title, price_cents, image)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (user_id, product_id) DO NOTHING
		`, userID, p.ID, p.Title, p.PriceCents, p.Image)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		added = n > 0
		return err
	})

	return added, err
}

func (s *PostgresStore) Remove(ctx context.Context, userID, productID string) (bool, error) {
	var removed bool

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		res, err := s.db.ExecContext(ctx, `
			DELETE FROM cart_items
			WHERE user_id = $1 AND product_id = $2
		`, userID, productID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		removed = n > 0
		return err
	})

	return removed, err
}

func (s *PostgresStore) Clear(ctx context.Context, userID string) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			DELETE FROM cart_items
			WHERE user_id = $1
		`, userID)
		return err
	})
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
