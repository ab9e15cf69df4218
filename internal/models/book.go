// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Book is a readable title with its full text. Books are soft-deleted:
// IsDeleted hides them from listings and search until restored.
type Book struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description *string   `json:"description"`
	CoverImage  *string   `json:"coverImage"`
	Content     string    `json:"content"`
	CategoryID  *int      `json:"categoryId"`
	AgeGroup    string    `json:"ageGroup"`
	IsPremium   bool      `json:"isPremium"`
	Price       *int      `json:"price"` // kopecks
	ReadingTime *int      `json:"readingTime"`
	IsDeleted   bool      `json:"isDeleted"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BookInput is the payload for creating a book. CategoryID is a weak
// reference and is never checked against the category table.
type BookInput struct {
	Title       string  `json:"title" validate:"required,max=300"`
	Author      string  `json:"author" validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	CoverImage  *string `json:"coverImage" validate:"omitempty,max=500"`
	Content     string  `json:"content" validate:"required"`
	CategoryID  *int    `json:"categoryId" validate:"omitempty,gt=0"`
	AgeGroup    string  `json:"ageGroup" validate:"required,max=20"`
	IsPremium   bool    `json:"isPremium"`
	Price       *int    `json:"price" validate:"omitempty,gte=0"`
	ReadingTime *int    `json:"readingTime" validate:"omitempty,gte=0"`
	IsDeleted   bool    `json:"isDeleted"`
}

// BookPatch carries a partial update. Nil fields keep their stored value.
type BookPatch struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=300"`
	Author      *string `json:"author" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	CoverImage  *string `json:"coverImage" validate:"omitempty,max=500"`
	Content     *string `json:"content" validate:"omitempty,min=1"`
	CategoryID  *int    `json:"categoryId" validate:"omitempty,gt=0"`
	AgeGroup    *string `json:"ageGroup" validate:"omitempty,min=1,max=20"`
	IsPremium   *bool   `json:"isPremium"`
	Price       *int    `json:"price" validate:"omitempty,gte=0"`
	ReadingTime *int    `json:"readingTime" validate:"omitempty,gte=0"`
	IsDeleted   *bool   `json:"isDeleted"`
}

// Apply merges the provided fields onto b.
func (p BookPatch) Apply(b *Book) {
	setString(&b.Title, p.Title)
	setString(&b.Author, p.Author)
	setOptional(&b.Description, p.Description)
	setOptional(&b.CoverImage, p.CoverImage)
	setString(&b.Content, p.Content)
	setOptional(&b.CategoryID, p.CategoryID)
	setString(&b.AgeGroup, p.AgeGroup)
	setBool(&b.IsPremium, p.IsPremium)
	setOptional(&b.Price, p.Price)
	setOptional(&b.ReadingTime, p.ReadingTime)
	setBool(&b.IsDeleted, p.IsDeleted)
}

// AudioBook is a narrated title. Unlike books, audiobooks are removed
// permanently on delete.
type AudioBook struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description *string   `json:"description"`
	CoverImage  *string   `json:"coverImage"`
	AudioURL    string    `json:"audioUrl"`
	Duration    int       `json:"duration"` // seconds
	CategoryID  *int      `json:"categoryId"`
	AgeGroup    string    `json:"ageGroup"`
	IsPremium   bool      `json:"isPremium"`
	Price       *int      `json:"price"`
	Narrator    *string   `json:"narrator"`
	IsDeleted   bool      `json:"isDeleted"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AudioBookInput is the payload for creating an audiobook.
type AudioBookInput struct {
	Title       string  `json:"title" validate:"required,max=300"`
	Author      string  `json:"author" validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	CoverImage  *string `json:"coverImage" validate:"omitempty,max=500"`
	AudioURL    string  `json:"audioUrl" validate:"required,max=500"`
	Duration    int     `json:"duration" validate:"gte=0"`
	CategoryID  *int    `json:"categoryId" validate:"omitempty,gt=0"`
	AgeGroup    string  `json:"ageGroup" validate:"required,max=20"`
	IsPremium   bool    `json:"isPremium"`
	Price       *int    `json:"price" validate:"omitempty,gte=0"`
	Narrator    *string `json:"narrator" validate:"omitempty,max=200"`
	IsDeleted   bool    `json:"isDeleted"`
}

// AudioBookPatch carries a partial update. Nil fields keep their stored value.
type AudioBookPatch struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=300"`
	Author      *string `json:"author" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	CoverImage  *string `json:"coverImage" validate:"omitempty,max=500"`
	AudioURL    *string `json:"audioUrl" validate:"omitempty,min=1,max=500"`
	Duration    *int    `json:"duration" validate:"omitempty,gte=0"`
	CategoryID  *int    `json:"categoryId" validate:"omitempty,gt=0"`
	AgeGroup    *string `json:"ageGroup" validate:"omitempty,min=1,max=20"`
	IsPremium   *bool   `json:"isPremium"`
	Price       *int    `json:"price" validate:"omitempty,gte=0"`
	Narrator    *string `json:"narrator" validate:"omitempty,max=200"`
	IsDeleted   *bool   `json:"isDeleted"`
}

// Apply merges the provided fields onto a.
func (p AudioBookPatch) Apply(a *AudioBook) {
	setString(&a.Title, p.Title)
	setString(&a.Author, p.Author)
	setOptional(&a.Description, p.Description)
	setOptional(&a.CoverImage, p.CoverImage)
	setString(&a.AudioURL, p.AudioURL)
	if p.Duration != nil {
		a.Duration = *p.Duration
	}
	setOptional(&a.CategoryID, p.CategoryID)
	setString(&a.AgeGroup, p.AgeGroup)
	setBool(&a.IsPremium, p.IsPremium)
	setOptional(&a.Price, p.Price)
	setOptional(&a.Narrator, p.Narrator)
	setBool(&a.IsDeleted, p.IsDeleted)
}

// CatalogFilter narrows book and audiobook listings. Nil fields do not
// constrain; set fields are ANDed.
type CatalogFilter struct {
	CategoryID *int
	IsPremium  *bool
}

// Match reports whether an item with the given category and premium flag
// passes the filter.
func (f CatalogFilter) Match(categoryID *int, isPremium bool) bool {
	if f.CategoryID != nil && (categoryID == nil || *categoryID != *f.CategoryID) {
		return false
	}
	if f.IsPremium != nil && isPremium != *f.IsPremium {
		return false
	}
	return true
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// setOptional replaces an optional field with a private copy of v.
func setOptional[T any](dst **T, v *T) {
	if v != nil {
		c := *v
		*dst = &c
	}
}
