// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"github.com/nikidav23/rizy-land-mini-a/internal/models"
)

// CategoryStore manages catalog categories.
type CategoryStore struct {
	db *DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *DB) *CategoryStore {
	return &CategoryStore{db: db}
}

func copyCategory(c *models.Category) models.Category {
	out := *c
	out.Description = clonePtr(c.Description)
	return out
}

// List returns all categories in creation order.
func (s *CategoryStore) List() []models.Category {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	items := make([]models.Category, 0, s.db.categories.len())
	s.db.categories.each(func(c *models.Category) {
		items = append(items, copyCategory(c))
	})
	return items
}

// FindByID retrieves a category by id.
func (s *CategoryStore) FindByID(id int) (*models.Category, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	c, ok := s.db.categories.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	out := copyCategory(c)
	return &out, nil
}

// Create inserts a new category and returns it.
func (s *CategoryStore) Create(in models.CategoryInput) *models.Category {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	c := s.db.categories.insert(func(id int) models.Category {
		return models.Category{
			ID:          id,
			Name:        in.Name,
			Description: clonePtr(in.Description),
			Icon:        in.Icon,
		}
	})
	out := copyCategory(c)
	return &out
}
