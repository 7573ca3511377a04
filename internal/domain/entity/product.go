package entity

import (
	"time"
)

type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"image_url,omitempty"`
	CategoryID  int64   `json:"category_id"`
	VendorID    int64   `json:"vendor_id"`
	IsOrganic   bool    `json:"is_organic"`
	IsLocal     bool    `json:"is_local"`

	CreatedAt time.Time `json:"created_at"`
}

type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
	ImageURL    *string
	CategoryID  *int64
	VendorID    *int64
	IsOrganic   *bool
	IsLocal     *bool
}

func (up ProductUpdate) Apply(p *Product) {
	if up.Name != nil {
		p.Name = *up.Name
	}
	if up.Description != nil {
		p.Description = *up.Description
	}
	if up.Price != nil {
		p.Price = *up.Price
	}
	if up.Stock != nil {
		p.Stock = *up.Stock
	}
	if up.ImageURL != nil {
		p.ImageURL = *up.ImageURL
	}
	if up.CategoryID != nil {
		p.CategoryID = *up.CategoryID
	}
	if up.VendorID != nil {
		p.VendorID = *up.VendorID
	}
	if up.IsOrganic != nil {
		p.IsOrganic = *up.IsOrganic
	}
	if up.IsLocal != nil {
		p.IsLocal = *up.IsLocal
	}
}
