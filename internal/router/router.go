// Package router sets up all HTTP routes and middleware chains of the
// catalog API.
package router

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nikidav23/rizy-land-mini-a/internal/cache"
	"github.com/nikidav23/rizy-land-mini-a/internal/handlers"
	"github.com/nikidav23/rizy-land-mini-a/internal/middleware"
)

// Deps holds everything the router mounts. Cache and RateLimiter may be
// nil; MediaDir may be empty when images are published to S3.
type Deps struct {
	Catalog     *handlers.Catalog
	Library     *handlers.Library
	Shop        *handlers.Shop
	Users       *handlers.Users
	Uploads     *handlers.Uploads
	Cache       *cache.ResponseCache
	RateLimiter *middleware.RateLimiter

	MediaDir       string
	MediaURLPrefix string
}

// New creates the configured Chi router with all middleware and route
// groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request. RequestID runs first so
	// panic logs carry the id.
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	if d.RateLimiter != nil {
		r.Use(d.RateLimiter.Middleware)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Get("/", d.Users.ListUsers)
			r.Post("/", d.Users.CreateUser)
			r.Get("/{id}", d.Users.GetUser)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Use(d.Cache.Middleware(cache.FamilyCategories))
			r.Get("/", d.Catalog.ListCategories)
			r.Post("/", d.Catalog.CreateCategory)
			r.Get("/{id}", d.Catalog.GetCategory)
		})

		r.Route("/books", func(r chi.Router) {
			r.Use(d.Cache.Middleware(cache.FamilyBooks))
			r.Get("/", d.Catalog.ListBooks)
			r.Post("/", d.Catalog.CreateBook)
			r.Get("/search", d.Catalog.SearchBooks)
			r.Get("/{id}", d.Catalog.GetBook)
			r.Put("/{id}", d.Catalog.UpdateBook)
			r.Delete("/{id}", d.Catalog.DeleteBook)
			r.Post("/{id}/restore", d.Catalog.RestoreBook)
		})

		// The trash is a view of books and is invalidated with them.
		r.With(d.Cache.Middleware(cache.FamilyBooks)).Get("/trash/books", d.Catalog.ListDeletedBooks)

		r.Route("/audio-books", func(r chi.Router) {
			r.Use(d.Cache.Middleware(cache.FamilyAudioBooks))
			r.Get("/", d.Catalog.ListAudioBooks)
			r.Post("/", d.Catalog.CreateAudioBook)
			r.Get("/search", d.Catalog.SearchAudioBooks)
			r.Get("/{id}", d.Catalog.GetAudioBook)
			r.Put("/{id}", d.Catalog.UpdateAudioBook)
			r.Delete("/{id}", d.Catalog.DeleteAudioBook)
		})

		// Libraries and purchases change per user and are never cached.
		r.Route("/library", func(r chi.Router) {
			r.Post("/", d.Library.AddToLibrary)
			r.Patch("/progress", d.Library.UpdateProgress)
			r.Get("/{userId}", d.Library.ListLibrary)
		})

		r.Route("/purchases", func(r chi.Router) {
			r.Post("/", d.Library.CreatePurchase)
			r.Get("/{userId}", d.Library.ListPurchases)
			r.Get("/{userId}/check", d.Library.CheckPurchase)
		})

		r.Route("/shop-products", func(r chi.Router) {
			r.Use(d.Cache.Middleware(cache.FamilyShop))
			r.Get("/", d.Shop.ListProducts)
			r.Post("/", d.Shop.CreateProduct)
			r.Get("/{id}", d.Shop.GetProduct)
			r.Put("/{id}", d.Shop.UpdateProduct)
			r.Delete("/{id}", d.Shop.DeleteProduct)
		})

		r.Route("/upload", func(r chi.Router) {
			r.Post("/book-cover/{bookId}", d.Uploads.BookCover)
			r.Post("/audiobook-cover/{audioBookId}", d.Uploads.AudioBookCover)
			r.Post("/product-image/{productId}", d.Uploads.ProductImage)
		})
	})

	if d.MediaDir != "" {
		prefix := "/" + strings.Trim(d.MediaURLPrefix, "/")
		files := http.StripPrefix(prefix, http.FileServer(http.Dir(d.MediaDir)))
		r.Get(prefix+"/*", files.ServeHTTP)
	}

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
