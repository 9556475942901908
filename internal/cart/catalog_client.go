package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ShopCart/internal/catalog"
)

var (
	ErrCatalogNotFound    = errors.New("catalog product not found")
	ErrCatalogBadStatus   = errors.New("catalog bad status")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// CatalogClient resolves product ids against the catalog service. The cart
// never trusts prices from the caller; the catalog is the only source of
// product data.
type CatalogClient struct {
	BaseURL string
	Client  *http.Client
}

func NewCatalogClient(baseURL string) *CatalogClient {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	return &CatalogClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 3 * time.Second},
	}
}

func (c *CatalogClient) GetProduct(ctx context.Context, id string) (catalog.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/products/%s", c.BaseURL, id), nil)
	if err != nil {
		return catalog.Product{}, err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return catalog.Product{}, ErrCatalogUnavailable
		}
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return catalog.Product{}, ErrCatalogUnavailable
		}
		return catalog.Product{}, ErrCatalogUnavailable
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return catalog.Product{}, ErrCatalogNotFound
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return catalog.Product{}, fmt.Errorf("%w: status=%d", ErrCatalogBadStatus, resp.StatusCode)
	}

	var p catalog.Product
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return catalog.Product{}, err
	}
	return p, nil
}
