package models

import (
	"time"

	"github.com/google/uuid"
)

type ProductCategory struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Description *string        `json:"description,omitempty"`
	ImageID     *uuid.UUID     `json:"image_id,omitempty"`
	Image       *ImageResource `json:"image,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   *time.Time     `json:"updated_at,omitempty"`
}

// CreateProductCategory is the payload for POST /product-categories.
type CreateProductCategory struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ImageID     uuid.UUID `json:"image_id"`
}

type UpdateProductCategory = CreateProductCategory

type ProductCategoryList struct {
	Data []*ProductCategory `json:"data"`
	Meta *PageMeta          `json:"meta,omitempty"`
}
