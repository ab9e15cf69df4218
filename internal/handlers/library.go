package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/nikidav23/rizy-land-mini-a/internal/models"
	"github.com/nikidav23/rizy-land-mini-a/internal/store"
)

// Library serves user libraries, reading progress and purchases. User and
// content ids are weak references: they are never checked against the
// catalog.
type Library struct {
	library   *store.LibraryStore
	purchases *store.PurchaseStore
}

// NewLibrary creates the library handler group.
func NewLibrary(library *store.LibraryStore, purchases *store.PurchaseStore) *Library {
	return &Library{library: library, purchases: purchases}
}

// progressResponse acknowledges a progress update. Updated is false when
// the user had no matching library entry.
type progressResponse struct {
	Message string `json:"message"`
	Updated bool   `json:"updated"`
}

// refErrors turns a content reference problem into a field error.
func refErrors(err error) []FieldError {
	field := "bookId"
	if errors.Is(err, models.ErrAmbiguousContentRef) {
		field = "audioBookId"
	}
	return []FieldError{{Field: field, Message: err.Error()}}
}

// ListLibrary returns a user's library entries.
func (l *Library) ListLibrary(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, l.library.ListByUser(userID))
}

// AddToLibrary records that a user owns or reads a content item.
func (l *Library) AddToLibrary(w http.ResponseWriter, r *http.Request) {
	var in models.LibraryEntryInput
	if !decodeValid(w, r, &in) {
		return
	}
	if err := in.Ref().Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid data", Errors: refErrors(err)})
		return
	}
	writeJSON(w, http.StatusCreated, l.library.Add(in))
}

// UpdateProgress overwrites the reading progress of a library entry.
func (l *Library) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	var in models.ProgressUpdate
	if err := decodeJSON(w, r, &in); err != nil {
		writeMessage(w, http.StatusBadRequest, "userId and progress are required")
		return
	}
	if in.UserID == nil || in.Progress == nil {
		writeMessage(w, http.StatusBadRequest, "userId and progress are required")
		return
	}
	if err := in.Ref().Validate(); err != nil {
		msg := "Either bookId or audioBookId is required"
		if errors.Is(err, models.ErrAmbiguousContentRef) {
			msg = "Only one of bookId or audioBookId may be set"
		}
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}
	if errs := Validate(&in); len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	updated := l.library.UpdateProgress(*in.UserID, in.Ref(), *in.Progress)
	writeJSON(w, http.StatusOK, progressResponse{
		Message: "Progress updated successfully",
		Updated: updated,
	})
}

// ListPurchases returns a user's purchases.
func (l *Library) ListPurchases(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, l.purchases.ListByUser(userID))
}

// CreatePurchase records a purchase. Payment happens elsewhere.
func (l *Library) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	var in models.PurchaseInput
	if !decodeValid(w, r, &in) {
		return
	}
	if err := in.Ref().Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid data", Errors: refErrors(err)})
		return
	}
	writeJSON(w, http.StatusCreated, l.purchases.Create(in))
}

// CheckPurchase reports whether a user bought the book or audiobook named
// in the query.
func (l *Library) CheckPurchase(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}

	var ref models.ContentRef
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  **int
	}{
		{"bookId", &ref.BookID},
		{"audioBookId", &ref.AudioBookID},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		id, err := strconv.Atoi(raw)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, p.name+" must be an integer")
			return
		}
		*p.dst = &id
	}
	if err := ref.Validate(); err != nil {
		msg := "Either bookId or audioBookId is required"
		if errors.Is(err, models.ErrAmbiguousContentRef) {
			msg = "Only one of bookId or audioBookId may be set"
		}
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{
		"hasPurchased": l.purchases.HasPurchased(userID, ref),
	})
}
