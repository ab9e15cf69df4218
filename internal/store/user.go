package store

import (
	"github.com/nikidav23/rizy-land-mini-a/internal/models"
)

// UserStore handles user records.
type UserStore struct {
	db *DB
}

// NewUserStore creates a new UserStore over the given database.
func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

// FindByID retrieves a user by id.
func (s *UserStore) FindByID(id int) (*models.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	u, ok := s.db.users.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	c := *u
	return &c, nil
}

// FindByUsername returns the first user with an exactly matching username.
func (s *UserStore) FindByUsername(username string) (*models.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var found *models.User
	s.db.users.each(func(u *models.User) {
		if found == nil && u.Username == username {
			c := *u
			found = &c
		}
	})
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

// Create inserts a new user. Usernames are not required to be unique.
func (s *UserStore) Create(in models.UserInput) *models.User {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	u := s.db.users.insert(func(id int) models.User {
		return models.User{ID: id, Username: in.Username}
	})
	c := *u
	return &c
}

// List returns all users in creation order.
func (s *UserStore) List() []models.User {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	items := make([]models.User, 0, s.db.users.len())
	s.db.users.each(func(u *models.User) {
		items = append(items, *u)
	})
	return items
}
