package store

import (
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

// newTestDB returns an empty database whose clock is frozen at testNow.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db := NewDB()
	db.now = func() time.Time { return testNow }
	return db
}

// seededDB returns a database loaded with the starter catalog.
func seededDB(t *testing.T) *DB {
	t.Helper()
	db := newTestDB(t)
	Seed(db)
	return db
}
