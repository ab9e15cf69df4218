// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"errors"
	"time"
)

var (
	// ErrNoContentRef means neither a book nor an audiobook was named.
	ErrNoContentRef = errors.New("either bookId or audioBookId is required")
	// ErrAmbiguousContentRef means both a book and an audiobook were named.
	ErrAmbiguousContentRef = errors.New("only one of bookId or audioBookId may be set")
)

// ContentRef names one content item: a book or an audiobook.
type ContentRef struct {
	BookID      *int `json:"bookId"`
	AudioBookID *int `json:"audioBookId"`
}

// Validate checks that exactly one of BookID and AudioBookID is set.
func (r ContentRef) Validate() error {
	switch {
	case r.BookID == nil && r.AudioBookID == nil:
		return ErrNoContentRef
	case r.BookID != nil && r.AudioBookID != nil:
		return ErrAmbiguousContentRef
	}
	return nil
}

// Matches reports whether the reference points at the given item. The book
// id wins when set; otherwise the audiobook id is compared. An empty
// reference matches nothing.
func (r ContentRef) Matches(bookID, audioBookID *int) bool {
	if r.BookID != nil {
		return bookID != nil && *bookID == *r.BookID
	}
	if r.AudioBookID != nil {
		return audioBookID != nil && *audioBookID == *r.AudioBookID
	}
	return false
}

// LibraryEntry records that a user owns or is reading a content item.
type LibraryEntry struct {
	ID          int       `json:"id"`
	UserID      int       `json:"userId"`
	BookID      *int      `json:"bookId"`
	AudioBookID *int      `json:"audioBookId"`
	Progress    int       `json:"progress"`
	AddedAt     time.Time `json:"addedAt"`
}

// LibraryEntryInput is the payload for adding an item to a user's library.
type LibraryEntryInput struct {
	UserID      int  `json:"userId" validate:"required,gt=0"`
	BookID      *int `json:"bookId" validate:"omitempty,gt=0"`
	AudioBookID *int `json:"audioBookId" validate:"omitempty,gt=0"`
	Progress    int  `json:"progress" validate:"gte=0"`
}

// Ref returns the content reference of the input.
func (in LibraryEntryInput) Ref() ContentRef {
	return ContentRef{BookID: in.BookID, AudioBookID: in.AudioBookID}
}

// ProgressUpdate is the payload of a reading progress update.
type ProgressUpdate struct {
	UserID      *int `json:"userId" validate:"required,gt=0"`
	BookID      *int `json:"bookId" validate:"omitempty,gt=0"`
	AudioBookID *int `json:"audioBookId" validate:"omitempty,gt=0"`
	Progress    *int `json:"progress" validate:"required,gte=0"`
}

// Ref returns the content reference of the update.
func (u ProgressUpdate) Ref() ContentRef {
	return ContentRef{BookID: u.BookID, AudioBookID: u.AudioBookID}
}

// Purchase records a completed purchase. Purchases are never modified.
type Purchase struct {
	ID          int       `json:"id"`
	UserID      int       `json:"userId"`
	BookID      *int      `json:"bookId"`
	AudioBookID *int      `json:"audioBookId"`
	PurchasedAt time.Time `json:"purchasedAt"`
}

// PurchaseInput is the payload for recording a purchase.
type PurchaseInput struct {
	UserID      int  `json:"userId" validate:"required,gt=0"`
	BookID      *int `json:"bookId" validate:"omitempty,gt=0"`
	AudioBookID *int `json:"audioBookId" validate:"omitempty,gt=0"`
}

// Ref returns the content reference of the input.
func (in PurchaseInput) Ref() ContentRef {
	return ContentRef{BookID: in.BookID, AudioBookID: in.AudioBookID}
}
