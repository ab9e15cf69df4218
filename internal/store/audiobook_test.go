package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikidav23/rizy-land-mini-a/internal/models"
)

func audioBookInput(title string) models.AudioBookInput {
	return models.AudioBookInput{
		Title:    title,
		Author:   "Носов Н.Н.",
		AudioURL: "/audio.mp3",
		Duration: 120,
		AgeGroup: "3-8",
	}
}

func TestAudioBookStoreHardDelete(t *testing.T) {
	s := NewAudioBookStore(newTestDB(t))
	first := s.Create(audioBookInput("Автомобиль"))
	second := s.Create(audioBookInput("Мишкина каша"))

	require.True(t, s.Delete(first.ID))
	assert.False(t, s.Delete(first.ID), "second delete finds nothing")

	_, err := s.FindByID(first.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	list := s.List(models.CatalogFilter{})
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)

	third := s.Create(audioBookInput("Живая шляпа"))
	assert.Equal(t, 3, third.ID, "ids are not reissued after delete")
}

func TestAudioBookStoreUpdate(t *testing.T) {
	s := NewAudioBookStore(newTestDB(t))
	created := s.Create(audioBookInput("Автомобиль"))

	updated, err := s.Update(created.ID, models.AudioBookPatch{
		Duration: ptr(293),
		Narrator: ptr("Диктор"),
	})
	require.NoError(t, err)
	assert.Equal(t, 293, updated.Duration)
	assert.Equal(t, "Диктор", *updated.Narrator)
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.AudioURL, updated.AudioURL)

	_, err = s.Update(42, models.AudioBookPatch{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAudioBookStoreListAndSearch(t *testing.T) {
	s := NewAudioBookStore(seededDB(t))

	assert.Len(t, s.List(models.CatalogFilter{IsPremium: ptr(true)}), 1)
	assert.Empty(t, s.List(models.CatalogFilter{IsPremium: ptr(false)}))
	assert.Empty(t, s.List(models.CatalogFilter{CategoryID: ptr(2)}))

	found := s.Search("носов")
	require.Len(t, found, 1)
	assert.Equal(t, "Автомобиль", found[0].Title)
	assert.Empty(t, s.Search("колобок"))
}
