package store

import (
	"github.com/nikidav23/rizy-land-mini-a/internal/models"
)

// PurchaseStore records purchases. Purchases are append-only.
type PurchaseStore struct {
	db *DB
}

// NewPurchaseStore returns a new PurchaseStore.
func NewPurchaseStore(db *DB) *PurchaseStore {
	return &PurchaseStore{db: db}
}

func copyPurchase(p *models.Purchase) models.Purchase {
	out := *p
	out.BookID = clonePtr(p.BookID)
	out.AudioBookID = clonePtr(p.AudioBookID)
	return out
}

// ListByUser returns the user's purchases in the order made.
func (s *PurchaseStore) ListByUser(userID int) []models.Purchase {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	items := []models.Purchase{}
	s.db.purchases.each(func(p *models.Purchase) {
		if p.UserID == userID {
			items = append(items, copyPurchase(p))
		}
	})
	return items
}

// Create records a purchase stamped with the current time.
func (s *PurchaseStore) Create(in models.PurchaseInput) *models.Purchase {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p := s.db.purchases.insert(func(id int) models.Purchase {
		return models.Purchase{
			ID:          id,
			UserID:      in.UserID,
			BookID:      clonePtr(in.BookID),
			AudioBookID: clonePtr(in.AudioBookID),
			PurchasedAt: s.db.now(),
		}
	})
	out := copyPurchase(p)
	return &out
}

// HasPurchased reports whether the user bought the item named by ref.
func (s *PurchaseStore) HasPurchased(userID int, ref models.ContentRef) bool {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	found := false
	s.db.purchases.each(func(p *models.Purchase) {
		if !found && p.UserID == userID && ref.Matches(p.BookID, p.AudioBookID) {
			found = true
		}
	})
	return found
}
