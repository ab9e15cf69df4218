package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/nikidav23/rizy-land-mini-a/internal/store"
)

// testStores bundles the stores of one seeded in-memory database.
type testStores struct {
	db         *store.DB
	users      *store.UserStore
	categories *store.CategoryStore
	books      *store.BookStore
	audioBooks *store.AudioBookStore
	library    *store.LibraryStore
	purchases  *store.PurchaseStore
	products   *store.ProductStore
}

func newTestStores(t *testing.T) *testStores {
	t.Helper()
	db := store.NewDB()
	store.Seed(db)
	return &testStores{
		db:         db,
		users:      store.NewUserStore(db),
		categories: store.NewCategoryStore(db),
		books:      store.NewBookStore(db),
		audioBooks: store.NewAudioBookStore(db),
		library:    store.NewLibraryStore(db),
		purchases:  store.NewPurchaseStore(db),
		products:   store.NewProductStore(db),
	}
}

// serve routes one request to h mounted at pattern, so chi URL params
// resolve as they do in production.
func serve(h http.HandlerFunc, method, pattern, target string, body io.Reader) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, h)

	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

// jsonBody encodes v for use as a request body.
func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	if s, ok := v.(string); ok {
		return strings.NewReader(s)
	}
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

// decode unmarshals a recorded response body into T.
func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}
