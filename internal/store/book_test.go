package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikidav23/rizy-land-mini-a/internal/models"
)

func bookInput(title string) models.BookInput {
	return models.BookInput{
		Title:    title,
		Author:   "Автор",
		Content:  "Жили-были.",
		AgeGroup: "3-6",
	}
}

func TestBookStoreCreateRoundTrip(t *testing.T) {
	s := NewBookStore(newTestDB(t))

	in := bookInput("Теремок")
	in.Price = ptr(0)
	in.CategoryID = ptr(2)
	created := s.Create(in)

	assert.Equal(t, 1, created.ID)
	assert.Equal(t, testNow, created.CreatedAt)
	assert.False(t, created.IsDeleted)
	require.NotNil(t, created.Price)
	assert.Equal(t, 0, *created.Price, "zero price is kept, not dropped")
	assert.Nil(t, created.ReadingTime)

	got, err := s.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestBookStoreReturnsCopies(t *testing.T) {
	s := NewBookStore(newTestDB(t))
	in := bookInput("Теремок")
	in.Description = ptr("original")
	created := s.Create(in)

	created.Title = "mutated"
	*created.Description = "mutated"

	got, err := s.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Теремок", got.Title)
	assert.Equal(t, "original", *got.Description)
}

func TestBookStoreUpdate(t *testing.T) {
	s := NewBookStore(newTestDB(t))
	in := bookInput("Теремок")
	in.ReadingTime = ptr(10)
	created := s.Create(in)

	updated, err := s.Update(created.ID, models.BookPatch{
		Title:     ptr("Теремок (новое издание)"),
		IsPremium: ptr(true),
	})
	require.NoError(t, err)

	assert.Equal(t, "Теремок (новое издание)", updated.Title)
	assert.True(t, updated.IsPremium)
	assert.Equal(t, created.Author, updated.Author)
	assert.Equal(t, created.Content, updated.Content)
	assert.Equal(t, 10, *updated.ReadingTime)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	_, err = s.Update(99, models.BookPatch{Title: ptr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookStoreSoftDeleteAndRestore(t *testing.T) {
	s := NewBookStore(newTestDB(t))
	keep := s.Create(bookInput("Репка"))
	gone := s.Create(bookInput("Колобок"))

	require.True(t, s.Delete(gone.ID))
	assert.True(t, s.Delete(gone.ID), "deleting twice still reports true")
	assert.False(t, s.Delete(99))

	list := s.List(models.CatalogFilter{})
	require.Len(t, list, 1)
	assert.Equal(t, keep.ID, list[0].ID)
	assert.Empty(t, s.Search("колобок"))

	trash := s.ListDeleted()
	require.Len(t, trash, 1)
	assert.Equal(t, gone.ID, trash[0].ID)

	got, err := s.FindByID(gone.ID)
	require.NoError(t, err, "trashed books are still readable by id")
	assert.True(t, got.IsDeleted)

	assert.False(t, s.Restore(keep.ID), "restoring a live book is a no-op")
	require.True(t, s.Restore(gone.ID))
	assert.False(t, s.Restore(gone.ID))
	assert.False(t, s.Restore(99))

	assert.Len(t, s.List(models.CatalogFilter{}), 2)
	assert.Empty(t, s.ListDeleted())
}

func TestBookStoreListFilter(t *testing.T) {
	s := NewBookStore(seededDB(t))

	tests := []struct {
		name   string
		filter models.CatalogFilter
		titles []string
	}{
		{"no filter", models.CatalogFilter{}, []string{"Колобок", "Репка", "Буратино"}},
		{"category", models.CatalogFilter{CategoryID: ptr(1)}, []string{"Колобок", "Репка"}},
		{"premium only", models.CatalogFilter{IsPremium: ptr(true)}, []string{"Буратино"}},
		{"free in category 1", models.CatalogFilter{CategoryID: ptr(1), IsPremium: ptr(false)}, []string{"Колобок", "Репка"}},
		{"premium in category 1", models.CatalogFilter{CategoryID: ptr(1), IsPremium: ptr(true)}, nil},
		{"unknown category", models.CatalogFilter{CategoryID: ptr(9)}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var titles []string
			for _, b := range s.List(tt.filter) {
				titles = append(titles, b.Title)
			}
			assert.Equal(t, tt.titles, titles)
		})
	}
}

func TestBookStoreSearch(t *testing.T) {
	s := NewBookStore(seededDB(t))

	tests := []struct {
		query  string
		titles []string
	}{
		{"колобок", []string{"Колобок"}},
		{"КОЛОБОК", []string{"Колобок"}},
		{"толстой", []string{"Буратино"}},
		{"народная", []string{"Колобок", "Репка"}},
		{"дружбе", []string{"Репка"}},
		{"нет такой книги", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var titles []string
			for _, b := range s.Search(tt.query) {
				titles = append(titles, b.Title)
			}
			assert.Equal(t, tt.titles, titles)
		})
	}
}

func TestBookStoreSearchSkipsMissingDescription(t *testing.T) {
	s := NewBookStore(newTestDB(t))
	s.Create(bookInput("Теремок"))

	assert.Empty(t, s.Search("описание"))
	assert.Len(t, s.Search(""), 1, "empty query matches every live book")
}
