// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"strings"

	"github.com/nikidav23/rizy-land-mini-a/internal/models"
)

// AudioBookStore manages audiobooks. Unlike books, a deleted audiobook is
// gone for good.
type AudioBookStore struct {
	db *DB
}

// NewAudioBookStore returns a new AudioBookStore.
func NewAudioBookStore(db *DB) *AudioBookStore {
	return &AudioBookStore{db: db}
}

func copyAudioBook(a *models.AudioBook) models.AudioBook {
	out := *a
	out.Description = clonePtr(a.Description)
	out.CoverImage = clonePtr(a.CoverImage)
	out.CategoryID = clonePtr(a.CategoryID)
	out.Price = clonePtr(a.Price)
	out.Narrator = clonePtr(a.Narrator)
	return out
}

// List returns the audiobooks passing the filter, in creation order.
func (s *AudioBookStore) List(f models.CatalogFilter) []models.AudioBook {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	items := []models.AudioBook{}
	s.db.audioBooks.each(func(a *models.AudioBook) {
		if f.Match(a.CategoryID, a.IsPremium) {
			items = append(items, copyAudioBook(a))
		}
	})
	return items
}

// FindByID retrieves an audiobook by id.
func (s *AudioBookStore) FindByID(id int) (*models.AudioBook, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	a, ok := s.db.audioBooks.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	out := copyAudioBook(a)
	return &out, nil
}

// Create inserts a new audiobook stamped with the current time.
func (s *AudioBookStore) Create(in models.AudioBookInput) *models.AudioBook {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	a := s.db.audioBooks.insert(func(id int) models.AudioBook {
		return models.AudioBook{
			ID:          id,
			Title:       in.Title,
			Author:      in.Author,
			Description: clonePtr(in.Description),
			CoverImage:  clonePtr(in.CoverImage),
			AudioURL:    in.AudioURL,
			Duration:    in.Duration,
			CategoryID:  clonePtr(in.CategoryID),
			AgeGroup:    in.AgeGroup,
			IsPremium:   in.IsPremium,
			Price:       clonePtr(in.Price),
			Narrator:    clonePtr(in.Narrator),
			IsDeleted:   in.IsDeleted,
			CreatedAt:   s.db.now(),
		}
	})
	out := copyAudioBook(a)
	return &out
}

// Update merges the patch onto an existing audiobook.
func (s *AudioBookStore) Update(id int, patch models.AudioBookPatch) (*models.AudioBook, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	a, ok := s.db.audioBooks.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	patch.Apply(a)
	out := copyAudioBook(a)
	return &out, nil
}

// Delete removes an audiobook permanently and reports whether it existed.
func (s *AudioBookStore) Delete(id int) bool {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	return s.db.audioBooks.remove(id)
}

// Search returns audiobooks whose title, author or description contains q,
// ignoring case.
func (s *AudioBookStore) Search(q string) []models.AudioBook {
	needle := strings.ToLower(q)

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	items := []models.AudioBook{}
	s.db.audioBooks.each(func(a *models.AudioBook) {
		if matchesQuery(needle, a.Title, a.Author, a.Description) {
			items = append(items, copyAudioBook(a))
		}
	})
	return items
}
