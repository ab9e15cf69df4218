// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"strings"

	"github.com/nikidav23/rizy-land-mini-a/internal/models"
)

// BookStore manages books. Deleting a book only flags it; flagged books
// live in the trash until restored.
type BookStore struct {
	db *DB
}

// NewBookStore returns a new BookStore.
func NewBookStore(db *DB) *BookStore {
	return &BookStore{db: db}
}

func copyBook(b *models.Book) models.Book {
	out := *b
	out.Description = clonePtr(b.Description)
	out.CoverImage = clonePtr(b.CoverImage)
	out.CategoryID = clonePtr(b.CategoryID)
	out.Price = clonePtr(b.Price)
	out.ReadingTime = clonePtr(b.ReadingTime)
	return out
}

// List returns books that are not in the trash and pass the filter, in
// creation order.
func (s *BookStore) List(f models.CatalogFilter) []models.Book {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	items := []models.Book{}
	s.db.books.each(func(b *models.Book) {
		if b.IsDeleted || !f.Match(b.CategoryID, b.IsPremium) {
			return
		}
		items = append(items, copyBook(b))
	})
	return items
}

// ListDeleted returns the books currently in the trash.
func (s *BookStore) ListDeleted() []models.Book {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	items := []models.Book{}
	s.db.books.each(func(b *models.Book) {
		if b.IsDeleted {
			items = append(items, copyBook(b))
		}
	})
	return items
}

// FindByID retrieves a book by id, including books in the trash.
func (s *BookStore) FindByID(id int) (*models.Book, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	b, ok := s.db.books.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	out := copyBook(b)
	return &out, nil
}

// Create inserts a new book stamped with the current time.
func (s *BookStore) Create(in models.BookInput) *models.Book {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	b := s.db.books.insert(func(id int) models.Book {
		return models.Book{
			ID:          id,
			Title:       in.Title,
			Author:      in.Author,
			Description: clonePtr(in.Description),
			CoverImage:  clonePtr(in.CoverImage),
			Content:     in.Content,
			CategoryID:  clonePtr(in.CategoryID),
			AgeGroup:    in.AgeGroup,
			IsPremium:   in.IsPremium,
			Price:       clonePtr(in.Price),
			ReadingTime: clonePtr(in.ReadingTime),
			IsDeleted:   in.IsDeleted,
			CreatedAt:   s.db.now(),
		}
	})
	out := copyBook(b)
	return &out
}

// Update merges the patch onto an existing book.
func (s *BookStore) Update(id int, patch models.BookPatch) (*models.Book, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	b, ok := s.db.books.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	patch.Apply(b)
	out := copyBook(b)
	return &out, nil
}

// Delete moves a book to the trash. It reports true for any existing book,
// including one that is already in the trash.
func (s *BookStore) Delete(id int) bool {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	b, ok := s.db.books.get(id)
	if !ok {
		return false
	}
	b.IsDeleted = true
	return true
}

// Restore takes a book out of the trash. It reports false when the book
// does not exist or is not in the trash.
func (s *BookStore) Restore(id int) bool {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	b, ok := s.db.books.get(id)
	if !ok || !b.IsDeleted {
		return false
	}
	b.IsDeleted = false
	return true
}

// Search returns books outside the trash whose title, author or description
// contains q, ignoring case.
func (s *BookStore) Search(q string) []models.Book {
	needle := strings.ToLower(q)

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	items := []models.Book{}
	s.db.books.each(func(b *models.Book) {
		if b.IsDeleted {
			return
		}
		if matchesQuery(needle, b.Title, b.Author, b.Description) {
			items = append(items, copyBook(b))
		}
	})
	return items
}

// matchesQuery reports whether the lowercase needle occurs in title, author
// or the optional description. A missing description never matches.
func matchesQuery(needle, title, author string, description *string) bool {
	if strings.Contains(strings.ToLower(title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(author), needle) {
		return true
	}
	return description != nil && strings.Contains(strings.ToLower(*description), needle)
}
