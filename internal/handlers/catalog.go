package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/nikidav23/rizy-land-mini-a/internal/cache"
	"github.com/nikidav23/rizy-land-mini-a/internal/models"
	"github.com/nikidav23/rizy-land-mini-a/internal/store"
)

// Catalog serves categories, books and audiobooks.
type Catalog struct {
	categories *store.CategoryStore
	books      *store.BookStore
	audioBooks *store.AudioBookStore
	cache      *cache.ResponseCache
}

// NewCatalog creates the catalog handler group. rc may be nil.
func NewCatalog(categories *store.CategoryStore, books *store.BookStore, audioBooks *store.AudioBookStore, rc *cache.ResponseCache) *Catalog {
	return &Catalog{categories: categories, books: books, audioBooks: audioBooks, cache: rc}
}

// parseCatalogFilter reads the categoryId and isPremium query parameters.
// isPremium is true only for the literal "true"; any other non-empty value
// means false.
func parseCatalogFilter(r *http.Request) (models.CatalogFilter, error) {
	var f models.CatalogFilter
	q := r.URL.Query()

	if raw := q.Get("categoryId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return f, err
		}
		f.CategoryID = &id
	}
	if raw := q.Get("isPremium"); raw != "" {
		premium := raw == "true"
		f.IsPremium = &premium
	}
	return f, nil
}

// --- Categories ---

// ListCategories returns every category.
func (c *Catalog) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, c.categories.List())
}

// GetCategory returns one category.
func (c *Catalog) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusNotFound, "Category not found")
		return
	}
	cat, err := c.categories.FindByID(id)
	if errors.Is(err, store.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Category not found")
		return
	}
	if err != nil {
		writeServerError(w, r, "Failed to fetch category", err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

// CreateCategory adds a category.
func (c *Catalog) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in models.CategoryInput
	if !decodeValid(w, r, &in) {
		return
	}
	cat := c.categories.Create(in)
	c.cache.Invalidate(r.Context(), cache.FamilyCategories)
	writeJSON(w, http.StatusCreated, cat)
}

// --- Books ---

// ListBooks returns books outside the trash, optionally filtered by
// category and premium flag.
func (c *Catalog) ListBooks(w http.ResponseWriter, r *http.Request) {
	f, err := parseCatalogFilter(r)
	if err != nil {
		writeServerError(w, r, "Failed to fetch books", err)
		return
	}
	writeJSON(w, http.StatusOK, c.books.List(f))
}

// SearchBooks finds books by title, author or description.
func (c *Catalog) SearchBooks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeMessage(w, http.StatusBadRequest, "Search query is required")
		return
	}
	writeJSON(w, http.StatusOK, c.books.Search(q))
}

// GetBook returns one book, even if it is in the trash.
func (c *Catalog) GetBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusNotFound, "Book not found")
		return
	}
	book, err := c.books.FindByID(id)
	if errors.Is(err, store.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Book not found")
		return
	}
	if err != nil {
		writeServerError(w, r, "Failed to fetch book", err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

// CreateBook adds a book. It answers 200, not 201, as clients expect.
func (c *Catalog) CreateBook(w http.ResponseWriter, r *http.Request) {
	var in models.BookInput
	if !decodeValid(w, r, &in) {
		return
	}
	book := c.books.Create(in)
	c.cache.Invalidate(r.Context(), cache.FamilyBooks)
	writeJSON(w, http.StatusOK, book)
}

// UpdateBook applies a partial update.
func (c *Catalog) UpdateBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusNotFound, "Book not found")
		return
	}
	var patch models.BookPatch
	if !decodeValid(w, r, &patch) {
		return
	}
	book, err := c.books.Update(id, patch)
	if errors.Is(err, store.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Book not found")
		return
	}
	if err != nil {
		writeServerError(w, r, "Failed to update book", err)
		return
	}
	c.cache.Invalidate(r.Context(), cache.FamilyBooks)
	writeJSON(w, http.StatusOK, book)
}

// DeleteBook moves a book to the trash.
func (c *Catalog) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok || !c.books.Delete(id) {
		writeMessage(w, http.StatusNotFound, "Book not found")
		return
	}
	c.cache.Invalidate(r.Context(), cache.FamilyBooks)
	writeMessage(w, http.StatusOK, "Book deleted successfully")
}

// ListDeletedBooks returns the trash.
func (c *Catalog) ListDeletedBooks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, c.books.ListDeleted())
}

// RestoreBook takes a book out of the trash.
func (c *Catalog) RestoreBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok || !c.books.Restore(id) {
		writeMessage(w, http.StatusNotFound, "Book not found in trash")
		return
	}
	c.cache.Invalidate(r.Context(), cache.FamilyBooks)
	writeMessage(w, http.StatusOK, "Book restored successfully")
}

// --- Audiobooks ---

// ListAudioBooks returns audiobooks, optionally filtered.
func (c *Catalog) ListAudioBooks(w http.ResponseWriter, r *http.Request) {
	f, err := parseCatalogFilter(r)
	if err != nil {
		writeServerError(w, r, "Failed to fetch audio books", err)
		return
	}
	writeJSON(w, http.StatusOK, c.audioBooks.List(f))
}

// SearchAudioBooks finds audiobooks by title, author or description.
func (c *Catalog) SearchAudioBooks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeMessage(w, http.StatusBadRequest, "Search query is required")
		return
	}
	writeJSON(w, http.StatusOK, c.audioBooks.Search(q))
}

// GetAudioBook returns one audiobook.
func (c *Catalog) GetAudioBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusNotFound, "Audio book not found")
		return
	}
	ab, err := c.audioBooks.FindByID(id)
	if errors.Is(err, store.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Audio book not found")
		return
	}
	if err != nil {
		writeServerError(w, r, "Failed to fetch audio book", err)
		return
	}
	writeJSON(w, http.StatusOK, ab)
}

// CreateAudioBook adds an audiobook.
func (c *Catalog) CreateAudioBook(w http.ResponseWriter, r *http.Request) {
	var in models.AudioBookInput
	if !decodeValid(w, r, &in) {
		return
	}
	ab := c.audioBooks.Create(in)
	c.cache.Invalidate(r.Context(), cache.FamilyAudioBooks)
	writeJSON(w, http.StatusOK, ab)
}

// UpdateAudioBook applies a partial update.
func (c *Catalog) UpdateAudioBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusNotFound, "Audio book not found")
		return
	}
	var patch models.AudioBookPatch
	if !decodeValid(w, r, &patch) {
		return
	}
	ab, err := c.audioBooks.Update(id, patch)
	if errors.Is(err, store.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Audio book not found")
		return
	}
	if err != nil {
		writeServerError(w, r, "Failed to update audio book", err)
		return
	}
	c.cache.Invalidate(r.Context(), cache.FamilyAudioBooks)
	writeJSON(w, http.StatusOK, ab)
}

// DeleteAudioBook removes an audiobook permanently.
func (c *Catalog) DeleteAudioBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok || !c.audioBooks.Delete(id) {
		writeMessage(w, http.StatusNotFound, "Audio book not found")
		return
	}
	c.cache.Invalidate(r.Context(), cache.FamilyAudioBooks)
	writeMessage(w, http.StatusOK, "Audio book deleted successfully")
}
