// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides the in-memory catalog database and one typed store
// per entity family. Every family store wraps the same *DB, the way a SQL
// store would wrap a shared connection pool.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/nikidav23/rizy-land-mini-a/internal/models"
)

// ErrNotFound is returned when no entity has the requested id.
var ErrNotFound = errors.New("not found")

// DB holds every entity table for the lifetime of the process. Nothing is
// persisted: state starts empty (or seeded via Seed) on each start.
type DB struct {
	mu  sync.RWMutex
	now func() time.Time

	// seedMu serialises Seed. It is taken before mu, never inside it.
	seedMu sync.Mutex

	users      *table[models.User]
	categories *table[models.Category]
	books      *table[models.Book]
	audioBooks *table[models.AudioBook]
	library    *table[models.LibraryEntry]
	purchases  *table[models.Purchase]
	products   *table[models.ShopProduct]
}

// NewDB returns an empty database.
func NewDB() *DB {
	return &DB{
		now:        time.Now,
		users:      newTable[models.User](),
		categories: newTable[models.Category](),
		books:      newTable[models.Book](),
		audioBooks: newTable[models.AudioBook](),
		library:    newTable[models.LibraryEntry](),
		purchases:  newTable[models.Purchase](),
		products:   newTable[models.ShopProduct](),
	}
}

// table is an insertion-ordered map with its own id sequence. Ids start at
// 1 and are never reissued, even after a row is removed.
type table[T any] struct {
	seq   int
	order []int
	rows  map[int]*T
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int]*T)}
}

// insert assigns the next id, builds the row with it and stores it.
func (t *table[T]) insert(build func(id int) T) *T {
	t.seq++
	row := build(t.seq)
	t.rows[t.seq] = &row
	t.order = append(t.order, t.seq)
	return &row
}

func (t *table[T]) get(id int) (*T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

// remove deletes a row and reports whether it existed.
func (t *table[T]) remove(id int) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// each visits rows in insertion order.
func (t *table[T]) each(fn func(row *T)) {
	for _, id := range t.order {
		fn(t.rows[id])
	}
}

func (t *table[T]) len() int {
	return len(t.rows)
}

// clonePtr returns a private copy of an optional value so callers can never
// write through to stored rows.
func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
