package forms

import (
	"strings"

	"github.com/google/uuid"

	"storeadmin/internal/models"
)

const (
	MaxTags        = 20
	MaxPoints      = 20
	MaxPointLength = 70
)

type ProductForm struct {
	CategoryID  string   `json:"category_id" validate:"required,uuid"`
	Name        string   `json:"name" validate:"required,min=3,max=255"`
	Description string   `json:"description" validate:"omitempty,max=2000"`
	Tags        []string `json:"tags" validate:"max=20,dive,required"`
	Points      []string `json:"points" validate:"max=20,dive,required,max=70"`
	SalePrice   string   `json:"sale_price" validate:"required"`
	ImageID     string   `json:"image_id" validate:"required,uuid"`

	salePrice Rupees
}

// Validate normalizes whitespace, dedupes tags, and checks every field.
// The price is parsed here so a malformed amount reads like any other
// field error.
func (f *ProductForm) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	f.Description = strings.TrimSpace(f.Description)

	// Tags are bounded by count only; length is left to the backend.
	tags := NewTagSet(MaxTags, 0)
	for _, tag := range f.Tags {
		tags.AddAll(tag)
	}
	f.Tags = tags.Values()

	points := f.Points[:0]
	for _, point := range f.Points {
		if trimmed := strings.TrimSpace(point); trimmed != "" {
			points = append(points, trimmed)
		}
	}
	f.Points = points

	errs := ValidationErrors{}
	if err := check(f); err != nil {
		fieldErrs, ok := err.(ValidationErrors)
		if !ok {
			return err
		}
		errs = fieldErrs
	}

	price, err := ParseRupees(f.SalePrice)
	if err != nil {
		errs["sale_price"] = err.Error()
	}
	f.salePrice = price

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Payload converts a validated form into the backend create/update shape.
func (f *ProductForm) Payload() (*models.CreateProduct, error) {
	categoryID, err := uuid.Parse(f.CategoryID)
	if err != nil {
		return nil, ValidationErrors{"category_id": "Invalid category id"}
	}
	imageID, err := uuid.Parse(f.ImageID)
	if err != nil {
		return nil, ValidationErrors{"image_id": "Invalid image id"}
	}
	return &models.CreateProduct{
		CategoryID:  categoryID,
		Name:        f.Name,
		Description: f.Description,
		Tags:        f.Tags,
		Points:      f.Points,
		SalePrice:   f.salePrice.Float64(),
		ImageID:     imageID,
	}, nil
}
