package cart_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"ShopCart/internal/cart"
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

func newCartTS(t *testing.T, catalogURL string) *httptest.Server {
	t.Helper()

	s := &cart.Server{
		Store:   cart.NewMemStore(),
		Catalog: cart.NewCatalogClient(catalogURL),
		Log:     zap.NewNop(),
	}

	h := cart.NewHandler(s, cart.HTTPDeps{
		Log:     zap.NewNop(),
		Service: "cart",
	})

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func doCart(t *testing.T, method, url, userID string, body any) (int, cart.Snapshot, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
		req.Header.Set("X-User-Role", "user")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	var snap cart.Snapshot
	if resp.StatusCode == http.StatusOK {
		if err := json.Unmarshal(raw, &snap); err != nil {
			t.Fatalf("decode snapshot: %v body=%s", err, string(raw))
		}
	}
	return resp.StatusCode, snap, raw
}

func TestCartHTTP_AddGetRemove(t *testing.T) {
	catalogTS := newCatalogTS(t)
	cartTS := newCartTS(t, catalogTS.URL)

	status, snap, raw := doCart(t, http.MethodPost, cartTS.URL+"/cart/items", "u1", map[string]any{"product_id": "p1"})
	if status != http.StatusOK {
		t.Fatalf("add status=%d body=%s", status, string(raw))
	}
	if snap.Count != 1 || snap.TotalCents != 4990 {
		t.Fatalf("after add: %#v", snap)
	}

	status, snap, _ = doCart(t, http.MethodPost, cartTS.URL+"/cart/items", "u1", map[string]any{"product_id": "p2"})
	if status != http.StatusOK || snap.Count != 2 || snap.TotalCents != 6980 {
		t.Fatalf("after second add: status=%d %#v", status, snap)
	}

	status, snap, _ = doCart(t, http.MethodGet, cartTS.URL+"/cart", "u1", nil)
	if status != http.StatusOK || snap.Count != 2 {
		t.Fatalf("get: status=%d %#v", status, snap)
	}
	if snap.Items[0].ID != "p1" || snap.Items[1].ID != "p2" {
		t.Fatalf("items not sorted by id: %#v", snap.Items)
	}

	status, snap, _ = doCart(t, http.MethodDelete, cartTS.URL+"/cart/items/p1", "u1", nil)
	if status != http.StatusOK || snap.Count != 1 || snap.TotalCents != 1990 {
		t.Fatalf("after remove: status=%d %#v", status, snap)
	}
}

func TestCartHTTP_AddTwiceIsNoop(t *testing.T) {
	catalogTS := newCatalogTS(t)
	cartTS := newCartTS(t, catalogTS.URL)

	for i := 0; i < 2; i++ {
		status, snap, raw := doCart(t, http.MethodPost, cartTS.URL+"/cart/items", "u1", map[string]any{"product_id": "p1"})
		if status != http.StatusOK {
			t.Fatalf("add #%d status=%d body=%s", i+1, status, string(raw))
		}
		if snap.Count != 1 {
			t.Fatalf("add #%d count=%d want=1", i+1, snap.Count)
		}
	}
}

func TestCartHTTP_RemoveAbsentIsNoop(t *testing.T) {
	catalogTS := newCatalogTS(t)
	cartTS := newCartTS(t, catalogTS.URL)

	status, snap, _ := doCart(t, http.MethodDelete, cartTS.URL+"/cart/items/ghost", "u1", nil)
	if status != http.StatusOK || snap.Count != 0 {
		t.Fatalf("status=%d %#v", status, snap)
	}
}

func TestCartHTTP_Clear(t *testing.T) {
	catalogTS := newCatalogTS(t)
	cartTS := newCartTS(t, catalogTS.URL)

	doCart(t, http.MethodPost, cartTS.URL+"/cart/items", "u1", map[string]any{"product_id": "p1"})
	doCart(t, http.MethodPost, cartTS.URL+"/cart/items", "u1", map[string]any{"product_id": "p2"})

	status, snap, _ := doCart(t, http.MethodDelete, cartTS.URL+"/cart", "u1", nil)
	if status != http.StatusOK || snap.Count != 0 || snap.TotalCents != 0 {
		t.Fatalf("after clear: status=%d %#v", status, snap)
	}
}

func TestCartHTTP_UnknownProduct(t *testing.T) {
	catalogTS := newCatalogTS(t)
	cartTS := newCartTS(t, catalogTS.URL)

	status, _, _ := doCart(t, http.MethodPost, cartTS.URL+"/cart/items", "u1", map[string]any{"product_id": "nope"})
	if status != http.StatusBadRequest {
		t.Fatalf("status=%d want=400", status)
	}
}

func TestCartHTTP_RequiresUser(t *testing.T) {
	catalogTS := newCatalogTS(t)
	cartTS := newCartTS(t, catalogTS.URL)

	status, _, _ := doCart(t, http.MethodGet, cartTS.URL+"/cart", "", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("status=%d want=401", status)
	}
}

func TestCartHTTP_CatalogDown(t *testing.T) {
	catalogTS := newCatalogTS(t)
	url := catalogTS.URL
	catalogTS.Close()

	cartTS := newCartTS(t, url)

	status, _, _ := doCart(t, http.MethodPost, cartTS.URL+"/cart/items", "u1", map[string]any{"product_id": "p1"})
	if status != http.StatusServiceUnavailable {
		t.Fatalf("status=%d want=503", status)
	}
}

func TestCartHTTP_BadJSON(t *testing.T) {
	catalogTS := newCatalogTS(t)
	cartTS := newCartTS(t, catalogTS.URL)

	req, _ := http.NewRequest(http.MethodPost, cartTS.URL+"/cart/items", bytes.NewReader([]byte(`{"product_id": "p1"} trailing`)))
	req.Header.Set("X-User-Id", "u1")
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status=%d want=400", resp.StatusCode)
	}
}
