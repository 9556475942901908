package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrBlankID       = errors.New("product id is blank")
	ErrNegativePrice = errors.New("product price is negative")
)

// Product is an immutable catalog entry. Prices are kept in the smallest
// currency unit; zero is a legal price, negative is not. Image is an opaque
// reference for clients, never interpreted here.
type Product struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	PriceCents int64  `json:"price_cents"`
	Image      string `json:"image,omitempty"`
}

// NewProduct validates at construction. Malformed products are rejected
// here, never coerced into shape downstream.
func NewProduct(id, title string, priceCents int64, image string) (Product, error) {
	if strings.TrimSpace(id) == "" {
		return Product{}, ErrBlankID
	}
	if priceCents < 0 {
		return Product{}, fmt.Errorf("%w: id=%s price_cents=%d", ErrNegativePrice, id, priceCents)
	}

	return Product{
		ID:         id,
		Title:      title,
		PriceCents: priceCents,
		Image:      image,
	}, nil
}
