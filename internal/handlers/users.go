package handlers

import (
	"errors"
	"net/http"

	"github.com/nikidav23/rizy-land-mini-a/internal/models"
	"github.com/nikidav23/rizy-land-mini-a/internal/store"
)

// Users serves the minimal user directory.
type Users struct {
	users *store.UserStore
}

// NewUsers creates the users handler group.
func NewUsers(users *store.UserStore) *Users {
	return &Users{users: users}
}

// ListUsers returns all users, or the user with the given ?username=.
func (u *Users) ListUsers(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("username")
	if name == "" {
		writeJSON(w, http.StatusOK, u.users.List())
		return
	}
	user, err := u.users.FindByUsername(name)
	if errors.Is(err, store.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		writeServerError(w, r, "Failed to fetch user", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// GetUser returns one user.
func (u *Users) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	user, err := u.users.FindByID(id)
	if errors.Is(err, store.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		writeServerError(w, r, "Failed to fetch user", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// CreateUser registers a username. Usernames need not be unique.
func (u *Users) CreateUser(w http.ResponseWriter, r *http.Request) {
	var in models.UserInput
	if !decodeValid(w, r, &in) {
		return
	}
	writeJSON(w, http.StatusCreated, u.users.Create(in))
}
