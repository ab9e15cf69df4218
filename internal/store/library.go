// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"github.com/nikidav23/rizy-land-mini-a/internal/models"
)

// LibraryStore manages the per-user library: owned items and reading
// progress. User and content ids are weak references.
type LibraryStore struct {
	db *DB
}

// NewLibraryStore returns a new LibraryStore.
func NewLibraryStore(db *DB) *LibraryStore {
	return &LibraryStore{db: db}
}

func copyLibraryEntry(e *models.LibraryEntry) models.LibraryEntry {
	out := *e
	out.BookID = clonePtr(e.BookID)
	out.AudioBookID = clonePtr(e.AudioBookID)
	return out
}

// ListByUser returns every entry of the given user in the order added.
func (s *LibraryStore) ListByUser(userID int) []models.LibraryEntry {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	items := []models.LibraryEntry{}
	s.db.library.each(func(e *models.LibraryEntry) {
		if e.UserID == userID {
			items = append(items, copyLibraryEntry(e))
		}
	})
	return items
}

// Add inserts a library entry stamped with the current time.
func (s *LibraryStore) Add(in models.LibraryEntryInput) *models.LibraryEntry {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	e := s.db.library.insert(func(id int) models.LibraryEntry {
		return models.LibraryEntry{
			ID:          id,
			UserID:      in.UserID,
			BookID:      clonePtr(in.BookID),
			AudioBookID: clonePtr(in.AudioBookID),
			Progress:    in.Progress,
			AddedAt:     s.db.now(),
		}
	})
	out := copyLibraryEntry(e)
	return &out
}

// UpdateProgress overwrites the progress of the user's first entry matching
// ref. It reports false, leaving the library untouched, when no entry
// matches.
func (s *LibraryStore) UpdateProgress(userID int, ref models.ContentRef, progress int) bool {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var target *models.LibraryEntry
	s.db.library.each(func(e *models.LibraryEntry) {
		if target == nil && e.UserID == userID && ref.Matches(e.BookID, e.AudioBookID) {
			target = e
		}
	})
	if target == nil {
		return false
	}
	target.Progress = progress
	return true
}
