package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikidav23/rizy-land-mini-a/internal/models"
)

func newTestLibrary(t *testing.T) (*Library, *testStores) {
	t.Helper()
	s := newTestStores(t)
	return NewLibrary(s.library, s.purchases), s
}

func TestAddToLibrary(t *testing.T) {
	l, _ := newTestLibrary(t)

	tests := []struct {
		name   string
		body   map[string]any
		status int
	}{
		{"book", map[string]any{"userId": 1, "bookId": 1}, http.StatusCreated},
		{"audiobook with progress", map[string]any{"userId": 1, "audioBookId": 1, "progress": 40}, http.StatusCreated},
		{"neither ref", map[string]any{"userId": 1}, http.StatusBadRequest},
		{"both refs", map[string]any{"userId": 1, "bookId": 1, "audioBookId": 1}, http.StatusBadRequest},
		{"missing user", map[string]any{"bookId": 1}, http.StatusBadRequest},
		{"negative progress", map[string]any{"userId": 1, "bookId": 2, "progress": -1}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(l.AddToLibrary, http.MethodPost, "/api/library", "/api/library", jsonBody(t, tt.body))
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}

	rec := serve(l.ListLibrary, http.MethodGet, "/api/library/{userId}", "/api/library/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	entries := decode[[]models.LibraryEntry](t, rec)
	require.Len(t, entries, 2)
	assert.Equal(t, 0, entries[0].Progress)
	assert.Equal(t, 40, entries[1].Progress)

	rec = serve(l.ListLibrary, http.MethodGet, "/api/library/{userId}", "/api/library/2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestUpdateProgress(t *testing.T) {
	l, s := newTestLibrary(t)
	s.library.Add(models.LibraryEntryInput{UserID: 7, BookID: intPtr(3)})

	tests := []struct {
		name    string
		body    any
		status  int
		message string
		updated bool
	}{
		{"matching entry", map[string]any{"userId": 7, "bookId": 3, "progress": 55}, http.StatusOK, "Progress updated successfully", true},
		{"no entry", map[string]any{"userId": 7, "bookId": 1, "progress": 10}, http.StatusOK, "Progress updated successfully", false},
		{"zero progress is allowed", map[string]any{"userId": 7, "bookId": 3, "progress": 0}, http.StatusOK, "Progress updated successfully", true},
		{"missing progress", map[string]any{"userId": 7, "bookId": 3}, http.StatusBadRequest, "userId and progress are required", false},
		{"missing user", map[string]any{"bookId": 3, "progress": 5}, http.StatusBadRequest, "userId and progress are required", false},
		{"no ref", map[string]any{"userId": 7, "progress": 5}, http.StatusBadRequest, "Either bookId or audioBookId is required", false},
		{"both refs", map[string]any{"userId": 7, "bookId": 3, "audioBookId": 1, "progress": 5}, http.StatusBadRequest, "Only one of bookId or audioBookId may be set", false},
		{"malformed body", "{", http.StatusBadRequest, "userId and progress are required", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(l.UpdateProgress, http.MethodPatch, "/api/library/progress", "/api/library/progress", jsonBody(t, tt.body))
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.status != http.StatusOK {
				assert.Equal(t, tt.message, decode[messageResponse](t, rec).Message)
				return
			}
			resp := decode[progressResponse](t, rec)
			assert.Equal(t, tt.message, resp.Message)
			assert.Equal(t, tt.updated, resp.Updated)
		})
	}

	entries := s.library.ListByUser(7)
	require.Len(t, entries, 1)
	assert.Equal(t, 0, entries[0].Progress)
}

func TestPurchases(t *testing.T) {
	l, _ := newTestLibrary(t)

	rec := serve(l.CreatePurchase, http.MethodPost, "/api/purchases", "/api/purchases",
		jsonBody(t, map[string]any{"userId": 4, "bookId": 3}))
	require.Equal(t, http.StatusCreated, rec.Code)
	p := decode[models.Purchase](t, rec)
	assert.Equal(t, 1, p.ID)
	assert.Nil(t, p.AudioBookID)

	rec = serve(l.CreatePurchase, http.MethodPost, "/api/purchases", "/api/purchases",
		jsonBody(t, map[string]any{"userId": 4}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(l.ListPurchases, http.MethodGet, "/api/purchases/{userId}", "/api/purchases/4", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Purchase](t, rec), 1)

	tests := []struct {
		name   string
		target string
		status int
		body   string
	}{
		{"bought book", "/api/purchases/4/check?bookId=3", http.StatusOK, `{"hasPurchased":true}`},
		{"other book", "/api/purchases/4/check?bookId=1", http.StatusOK, `{"hasPurchased":false}`},
		{"same id as audiobook", "/api/purchases/4/check?audioBookId=3", http.StatusOK, `{"hasPurchased":false}`},
		{"other user", "/api/purchases/5/check?bookId=3", http.StatusOK, `{"hasPurchased":false}`},
		{"no ref", "/api/purchases/4/check", http.StatusBadRequest, `{"message":"Either bookId or audioBookId is required"}`},
		{"both refs", "/api/purchases/4/check?bookId=3&audioBookId=1", http.StatusBadRequest, `{"message":"Only one of bookId or audioBookId may be set"}`},
		{"non-numeric ref", "/api/purchases/4/check?bookId=x", http.StatusBadRequest, `{"message":"bookId must be an integer"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(l.CheckPurchase, http.MethodGet, "/api/purchases/{userId}/check", tt.target, nil)
			require.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func intPtr(v int) *int { return &v }
