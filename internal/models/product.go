// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// ShopProduct is a merchandise item. Category is a free-text shelf label,
// unrelated to the Category entity. Deleting a product only clears IsActive.
type ShopProduct struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int       `json:"price"` // kopecks
	Category    string    `json:"category"`
	ImageURL    string    `json:"imageUrl"`
	Stock       int       `json:"stock"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ShopProductInput is the payload for creating a product. IsActive defaults
// to true when omitted.
type ShopProductInput struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=2000"`
	Price       int    `json:"price" validate:"gte=0"`
	Category    string `json:"category" validate:"required,max=100"`
	ImageURL    string `json:"imageUrl" validate:"max=500"`
	Stock       int    `json:"stock" validate:"gte=0"`
	IsActive    *bool  `json:"isActive"`
}

// ShopProductPatch carries a partial update. Nil fields keep their stored value.
type ShopProductPatch struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Price       *int    `json:"price" validate:"omitempty,gte=0"`
	Category    *string `json:"category" validate:"omitempty,min=1,max=100"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,max=500"`
	Stock       *int    `json:"stock" validate:"omitempty,gte=0"`
	IsActive    *bool   `json:"isActive"`
}

// Apply merges the provided fields onto p.
func (patch ShopProductPatch) Apply(p *ShopProduct) {
	setString(&p.Name, patch.Name)
	setString(&p.Description, patch.Description)
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	setString(&p.Category, patch.Category)
	setString(&p.ImageURL, patch.ImageURL)
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	setBool(&p.IsActive, patch.IsActive)
}
