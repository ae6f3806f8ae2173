package forms

import (
	"strings"

	"github.com/google/uuid"

	"storeadmin/internal/models"
)

type CategoryForm struct {
	Name        string `json:"name" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	ImageID     string `json:"image_id" validate:"required,uuid"`
}

func (f *CategoryForm) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	f.Description = strings.TrimSpace(f.Description)
	return check(f)
}

// Payload converts a validated form into the backend create/update shape.
func (f *CategoryForm) Payload() (*models.CreateProductCategory, error) {
	imageID, err := uuid.Parse(f.ImageID)
	if err != nil {
		return nil, ValidationErrors{"image_id": "Invalid image id"}
	}
	return &models.CreateProductCategory{
		Name:        f.Name,
		Description: f.Description,
		ImageID:     imageID,
	}, nil
}
