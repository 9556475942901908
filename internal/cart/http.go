package cart

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ShopCart/pkg/kit"
)

type Server struct {
	Store   Store
	Catalog *CatalogClient
	Log     *zap.Logger
}

type addReq struct {
	ProductID string `json:"product_id"`
}

const maxAddBody = 1 << 20

func (s *Server) GetHandler() http.HandlerFunc        { return s.get }
func (s *Server) AddItemHandler() http.HandlerFunc    { return s.addItem }
func (s *Server) RemoveItemHandler() http.HandlerFunc { return s.removeItem }
func (s *Server) ClearHandler() http.HandlerFunc      { return s.clear }

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	snap, err := s.Store.Snapshot(r.Context(), u.ID)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("cart snapshot failed", zap.Error(err), zap.String("user_id", u.ID))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, snap)
}

// addItem resolves the product from the catalog and adds it to the user's
// cart. Adding an id that is already in the cart is a successful no-op;
// the response carries the snapshot either way.
func (s *Server) addItem(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	req, err := decodeAddRequest(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	pid := strings.TrimSpace(req.ProductID)
	if pid == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "product_id required", nil)
		return
	}

	p, err := s.Catalog.GetProduct(r.Context(), pid)
	if err != nil {
		s.writeCatalogError(w, r, err, pid)
		return
	}

	added, err := s.Store.Add(r.Context(), u.ID, p)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("cart add failed", zap.Error(err), zap.String("user_id", u.ID), zap.String("product_id", pid))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !added && s.Log != nil {
		s.Log.Debug("cart add no-op", zap.String("user_id", u.ID), zap.String("product_id", pid))
	}

	s.respondSnapshot(w, r, u.ID)
}

func (s *Server) removeItem(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	pid := chi.URLParam(r, "id")

	if _, err := s.Store.Remove(r.Context(), u.ID, pid); err != nil {
		if s.Log != nil {
			s.Log.Error("cart remove failed", zap.Error(err), zap.String("user_id", u.ID), zap.String("product_id", pid))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	s.respondSnapshot(w, r, u.ID)
}

func (s *Server) clear(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	if err := s.Store.Clear(r.Context(), u.ID); err != nil {
		if s.Log != nil {
			s.Log.Error("cart clear failed", zap.Error(err), zap.String("user_id", u.ID))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	s.respondSnapshot(w, r, u.ID)
}

func (s *Server) respondSnapshot(w http.ResponseWriter, r *http.Request, userID string) {
	snap, err := s.Store.Snapshot(r.Context(), userID)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("cart snapshot failed", zap.Error(err), zap.String("user_id", userID))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, snap)
}

func (s *Server) writeCatalogError(w http.ResponseWriter, r *http.Request, err error, pid string) {
	switch {
	case errors.Is(err, ErrCatalogNotFound):
		kit.WriteError(w, r, http.StatusBadRequest, "invalid product_id", map[string]any{"product_id": pid})
	case errors.Is(err, ErrCatalogUnavailable):
		kit.WriteError(w, r, http.StatusServiceUnavailable, "catalog unavailable", nil)
	default:
		if s.Log != nil {
			s.Log.Warn("catalog error", zap.Error(err), zap.String("product_id", pid))
		}
		kit.WriteError(w, r, http.StatusBadGateway, "catalog error", nil)
	}
}

func decodeAddRequest(w http.ResponseWriter, r *http.Request) (addReq, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAddBody)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req addReq
	if err := dec.Decode(&req); err != nil {
		return addReq{}, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return addReq{}, errors.New("extra data after json object")
	}

	return req, nil
}
