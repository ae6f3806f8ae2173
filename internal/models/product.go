package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductFilter holds list filter criteria forwarded to the backend as
// query parameters.
type ProductFilter struct {
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
	Search     string     `json:"search,omitempty"`
	Offset     int        `json:"offset,omitempty"`
	Limit      int        `json:"limit,omitempty"`
}

type Product struct {
	ID          uuid.UUID      `json:"id"`
	CategoryID  uuid.UUID      `json:"category_id"`
	Name        string         `json:"name"`
	Description *string        `json:"description,omitempty"`
	Tags        []string       `json:"tags"`
	Points      []string       `json:"points"`
	Metadata    map[string]any `json:"metadata"`
	// SalePrice is in paise (minor units); forms divide by 100 for display.
	SalePrice int64            `json:"sale_price"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt *time.Time       `json:"updated_at,omitempty"`
	Category  *ProductCategory `json:"category,omitempty"`
	Images    []ProductImage   `json:"images,omitempty"`
}

// ProductImage links a product to an uploaded image resource. At most one
// association per product carries IsPrimary.
type ProductImage struct {
	ImageID   uuid.UUID      `json:"image_id"`
	IsPrimary bool           `json:"is_primary"`
	Image     *ImageResource `json:"image,omitempty"`
}

// PrimaryImage returns the association flagged primary, or nil.
func (p *Product) PrimaryImage() *ProductImage {
	for i := range p.Images {
		if p.Images[i].IsPrimary {
			return &p.Images[i]
		}
	}
	return nil
}

// CreateProduct is the payload for POST /products. SalePrice is in rupees;
// the backend multiplies by 100 when persisting.
type CreateProduct struct {
	CategoryID  uuid.UUID      `json:"category_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Tags        []string       `json:"tags"`
	Points      []string       `json:"points"`
	Metadata    map[string]any `json:"metadata"`
	SalePrice   float64        `json:"sale_price"`
	ImageID     uuid.UUID      `json:"image_id"`
}

// UpdateProduct is the payload for PUT /products/:id. Same shape as create.
type UpdateProduct = CreateProduct

// AddProductImage is the payload for POST /products/:id/images.
type AddProductImage struct {
	ImageID uuid.UUID `json:"image_id"`
}

type ProductList struct {
	Data []*Product `json:"data"`
	Meta *PageMeta  `json:"meta,omitempty"`
}
