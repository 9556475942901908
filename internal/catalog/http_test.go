package catalog_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"ShopCart/internal/catalog"
)

func newCatalogTS(t *testing.T) *httptest.Server {
	t.Helper()

	s := &catalog.Server{Store: catalog.NewDemoStore(), Log: zap.NewNop()}
	h := catalog.NewHandler(s, catalog.HTTPDeps{
		Log:     zap.NewNop(),
		Service: "catalog",
	})

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func getProducts(t *testing.T, url string) (int, []catalog.Product) {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil
	}

	var products []catalog.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		t.Fatalf("decode: %v body=%s", err, string(raw))
	}
	return resp.StatusCode, products
}

func TestCatalogHTTP_List(t *testing.T) {
	ts := newCatalogTS(t)

	status, products := getProducts(t, ts.URL+"/products")
	if status != http.StatusOK {
		t.Fatalf("status=%d", status)
	}
	if len(products) != 4 {
		t.Fatalf("len=%d want=4", len(products))
	}
	if products[0].ID != "p1" {
		t.Fatalf("display order lost: %#v", products)
	}
}

func TestCatalogHTTP_ListBelow(t *testing.T) {
	ts := newCatalogTS(t)

	status, products := getProducts(t, ts.URL+"/products?below=2000")
	if status != http.StatusOK {
		t.Fatalf("status=%d", status)
	}

	for _, p := range products {
		if p.PriceCents >= 2000 {
			t.Fatalf("product %s price=%d not below threshold", p.ID, p.PriceCents)
		}
	}
	if len(products) != 2 {
		t.Fatalf("len=%d want=2 (mouse and cable)", len(products))
	}
}

func TestCatalogHTTP_ListBelowBadThreshold(t *testing.T) {
	ts := newCatalogTS(t)

	status, _ := getProducts(t, ts.URL+"/products?below=cheap")
	if status != http.StatusBadRequest {
		t.Fatalf("status=%d want=400", status)
	}
}

func TestCatalogHTTP_Get(t *testing.T) {
	ts := newCatalogTS(t)

	resp, err := http.Get(ts.URL + "/products/p2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}

	var p catalog.Product
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.ID != "p2" || p.PriceCents != 1990 {
		t.Fatalf("got %#v", p)
	}
}

func TestCatalogHTTP_GetNotFound(t *testing.T) {
	ts := newCatalogTS(t)

	resp, err := http.Get(ts.URL + "/products/nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status=%d want=404", resp.StatusCode)
	}
}
