// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"github.com/nikidav23/rizy-land-mini-a/internal/models"
)

// ProductStore manages shop products. Delete deactivates a product; there
// is no restore, but an update may set isActive again.
type ProductStore struct {
	db *DB
}

// NewProductStore returns a new ProductStore.
func NewProductStore(db *DB) *ProductStore {
	return &ProductStore{db: db}
}

// List returns active products in creation order.
func (s *ProductStore) List() []models.ShopProduct {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	items := []models.ShopProduct{}
	s.db.products.each(func(p *models.ShopProduct) {
		if p.IsActive {
			items = append(items, *p)
		}
	})
	return items
}

// FindByID retrieves a product by id, active or not.
func (s *ProductStore) FindByID(id int) (*models.ShopProduct, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	p, ok := s.db.products.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	out := *p
	return &out, nil
}

// Create inserts a new product stamped with the current time. Products are
// active unless the input says otherwise.
func (s *ProductStore) Create(in models.ShopProductInput) *models.ShopProduct {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p := s.db.products.insert(func(id int) models.ShopProduct {
		return models.ShopProduct{
			ID:          id,
			Name:        in.Name,
			Description: in.Description,
			Price:       in.Price,
			Category:    in.Category,
			ImageURL:    in.ImageURL,
			Stock:       in.Stock,
			IsActive:    active,
			CreatedAt:   s.db.now(),
		}
	})
	out := *p
	return &out
}

// Update merges the patch onto an existing product.
func (s *ProductStore) Update(id int, patch models.ShopProductPatch) (*models.ShopProduct, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p, ok := s.db.products.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	patch.Apply(p)
	out := *p
	return &out, nil
}

// Delete deactivates a product and reports whether it existed.
func (s *ProductStore) Delete(id int) bool {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p, ok := s.db.products.get(id)
	if !ok {
		return false
	}
	p.IsActive = false
	return true
}
