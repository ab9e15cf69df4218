package handlers

import (
	"errors"
	"net/http"

	"github.com/nikidav23/rizy-land-mini-a/internal/cache"
	"github.com/nikidav23/rizy-land-mini-a/internal/models"
	"github.com/nikidav23/rizy-land-mini-a/internal/store"
)

// Shop serves merchandise products.
type Shop struct {
	products *store.ProductStore
	cache    *cache.ResponseCache
}

// NewShop creates the shop handler group. rc may be nil.
func NewShop(products *store.ProductStore, rc *cache.ResponseCache) *Shop {
	return &Shop{products: products, cache: rc}
}

// ListProducts returns active products.
func (s *Shop) ListProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.products.List())
}

// GetProduct returns one product, active or not.
func (s *Shop) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusNotFound, "Shop product not found")
		return
	}
	p, err := s.products.FindByID(id)
	if errors.Is(err, store.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Shop product not found")
		return
	}
	if err != nil {
		writeServerError(w, r, "Failed to fetch shop product", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// CreateProduct adds a product.
func (s *Shop) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in models.ShopProductInput
	if !decodeValid(w, r, &in) {
		return
	}
	p := s.products.Create(in)
	s.cache.Invalidate(r.Context(), cache.FamilyShop)
	writeJSON(w, http.StatusCreated, p)
}

// UpdateProduct applies a partial update.
func (s *Shop) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusNotFound, "Shop product not found")
		return
	}
	var patch models.ShopProductPatch
	if !decodeValid(w, r, &patch) {
		return
	}
	p, err := s.products.Update(id, patch)
	if errors.Is(err, store.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Shop product not found")
		return
	}
	if err != nil {
		writeServerError(w, r, "Failed to update shop product", err)
		return
	}
	s.cache.Invalidate(r.Context(), cache.FamilyShop)
	writeJSON(w, http.StatusOK, p)
}

// DeleteProduct deactivates a product.
func (s *Shop) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok || !s.products.Delete(id) {
		writeMessage(w, http.StatusNotFound, "Shop product not found")
		return
	}
	s.cache.Invalidate(r.Context(), cache.FamilyShop)
	writeMessage(w, http.StatusOK, "Shop product deleted successfully")
}
